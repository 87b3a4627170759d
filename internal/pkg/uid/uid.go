// Package uid generates identifiers: time-ordered UUID strings for sessions,
// tokens and correlation ids, and snowflake numbers for database rows.
package uid

// StringID generates string identifiers.
type StringID interface {
	Generate() string
}

// NumberID generates numeric identifiers.
type NumberID interface {
	Generate() int64
}
