package apperror

// AppError is an error that carries the HTTP status code it should be
// translated to at the API boundary.
type AppError struct {
	Status  int    // HTTP status code (e.g. 400, 409)
	Message string // user-facing message
	Err     error  // underlying cause, never exposed to clients
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError with the given status code and message.
func New(status int, message string) *AppError {
	return &AppError{
		Status:  status,
		Message: message,
	}
}

// Wrap attaches an underlying error to a new AppError.
func Wrap(err error, status int, message string) *AppError {
	return &AppError{
		Status:  status,
		Message: message,
		Err:     err,
	}
}
