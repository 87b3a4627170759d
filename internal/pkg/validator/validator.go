package validator

// Validator validates a struct according to its `validate` tags.
type Validator interface {
	Validate(data any) error
}
