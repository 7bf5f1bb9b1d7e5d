// Package team implements the team-match score sheet: the singles rotation
// table, per-match substitutions with forward cascading, set-score entry with
// shorthand notation, and the derived row results, running team score and
// statistics.
//
// A Sheet owns its rows and substitution state. Derived values are recomputed
// from the rows on every query; nothing is cached.
package team
