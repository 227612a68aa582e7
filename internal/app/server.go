package app

// ServerResponseError pairs an internal error with the HTTP status
// code and message the server should answer with. The wrapped error
// stays server side for logging; only Msg and StatusCode are written
// to the client, so Msg must never leak query internals or upstream
// page contents.
//
// Services return it for failures that already know their HTTP shape.
// The server recognizes it through the ServerErrorResponse method.
type ServerResponseError struct {
	// Err is the wrapped error.
	Err error

	// Msg is the HTTP response body.
	Msg string

	// StatusCode is the HTTP status code.
	StatusCode int
}

func (e *ServerResponseError) Error() string {
	return e.Err.Error()
}

func (e *ServerResponseError) Unwrap() error {
	return e.Err
}

// ServerErrorResponse returns the status code and the response body.
func (e *ServerResponseError) ServerErrorResponse() (int, string) {
	return e.StatusCode, e.Msg
}
