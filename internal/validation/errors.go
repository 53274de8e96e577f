package validation

// Error reports input that failed validation. Handlers answer it with 400.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func invalid(message string) error {
	return &Error{Message: message}
}
