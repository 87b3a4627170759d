// Package clock abstracts the wall clock so date rules can be tested with a
// fixed instant.
package clock
