package domain

// ValidationError is raised before any network call when user input is
// incomplete or out of range.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
