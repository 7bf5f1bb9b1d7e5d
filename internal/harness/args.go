package harness

import (
	"fmt"
	"strconv"
)

// Step arguments arrive as YAML-decoded values: int for integers, string,
// bool and []interface{} for sequences.

func argInt(args map[string]interface{}, key string) (int, error) {
	v, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("argument %q is required", key)
	}
	return toInt(key, v)
}

func argIntOr(args map[string]interface{}, key string, def int) (int, error) {
	if _, ok := args[key]; !ok {
		return def, nil
	}
	return argInt(args, key)
}

func toInt(key string, v interface{}) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n == float64(int(n)) {
			return int(n), nil
		}
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i, nil
		}
	}
	return 0, fmt.Errorf("argument %q must be an integer, got %v (%T)", key, v, v)
}

func argString(args map[string]interface{}, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", fmt.Errorf("argument %q is required", key)
	}
	switch s := v.(type) {
	case string:
		return s, nil
	case int:
		// Shorthand set entries such as 7 or -11 decode as integers.
		return strconv.Itoa(s), nil
	}
	return "", fmt.Errorf("argument %q must be a string, got %v (%T)", key, v, v)
}

func argStringOr(args map[string]interface{}, key, def string) (string, error) {
	if _, ok := args[key]; !ok {
		return def, nil
	}
	return argString(args, key)
}

func argBoolOr(args map[string]interface{}, key string, def bool) (bool, error) {
	v, ok := args[key]
	if !ok {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("argument %q must be a boolean, got %v (%T)", key, v, v)
	}
	return b, nil
}

func argInts(args map[string]interface{}, key string) ([]int, error) {
	v, ok := args[key]
	if !ok {
		return nil, fmt.Errorf("argument %q is required", key)
	}
	list, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("argument %q must be a list, got %T", key, v)
	}
	out := make([]int, len(list))
	for i, item := range list {
		n, err := toInt(fmt.Sprintf("%s[%d]", key, i), item)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}
