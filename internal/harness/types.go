package harness

// TraceEvent records one applied or rejected step.
type TraceEvent struct {
	Seq     int64       `json:"seq"`
	Action  string      `json:"action"`
	Args    interface{} `json:"args,omitempty"`
	Outcome string      `json:"outcome"`
	Code    string      `json:"code,omitempty"`
	Value   interface{} `json:"value,omitempty"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every step matched its expectation and every assertion held.
	Pass bool `json:"pass"`

	// Trace contains every step in execution order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// State is the final state view decoded into generic JSON values,
	// the form state assertions navigate.
	State map[string]interface{} `json:"state,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
		State:  make(map[string]interface{}),
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends a step to the trace.
func (r *Result) AddTrace(ev TraceEvent) {
	r.Trace = append(r.Trace, ev)
}
