// Package validator validates usecase inputs with go-playground/validator.
//
// Failures come back as a V10ValidationError keyed by snake_case field name
// with English messages, ready to be rendered in the "error" object of an
// API response.
package validator
