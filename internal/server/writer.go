package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
)

// Response pairs a status code with the body to encode as JSON.
type Response struct {
	Status int
	Body   any
}

// ErrorResponse is the JSON shape every failed request gets.
type ErrorResponse struct {
	Status   int    `json:"-"`
	ErrorMsg string `json:"error_msg"`
}

func (e *ErrorResponse) AsResponse() Response {
	return Response{
		Status: e.Status,
		Body:   e,
	}
}

// LogWriter writes responses and logs the writes it could not finish.
// Log lines carry the request method and path so one logger can serve
// every handler.
type LogWriter struct {
	logger *log.Logger
	rw     http.ResponseWriter
	r      *http.Request
}

func NewLogWriter(l *log.Logger, rw http.ResponseWriter, r *http.Request) *LogWriter {
	return &LogWriter{l, rw, r}
}

func (l *LogWriter) log(format string, v ...any) {
	l.logger.Printf("%s %s: %s\n", l.r.Method, l.r.URL.Path, fmt.Sprintf(format, v...))
}

func (l *LogWriter) Write(r Response) {
	l.rw.Header().Set("Content-Type", "application/json")
	l.rw.WriteHeader(r.Status)
	if err := json.NewEncoder(l.rw).Encode(r.Body); err != nil {
		l.log("failed to write json to http.ResponseWriter: %v", err)
	}
}

// WriteHTML writes a rendered page. The map endpoint is the only
// caller; everything else on the API speaks JSON.
func (l *LogWriter) WriteHTML(status int, body []byte) {
	l.rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	l.rw.WriteHeader(status)
	if _, err := l.rw.Write(body); err != nil {
		l.log("failed to write html to http.ResponseWriter: %v", err)
	}
}

// ServerErrorResponser is the contract error types implement to pick
// their own status code and client message. Errors that do not are
// written as a plain 500.
type ServerErrorResponser interface {
	ServerErrorResponse() (int, string)
}

func (l *LogWriter) WriteError(err error) {
	errResp := ErrorResponse{
		Status:   http.StatusInternalServerError,
		ErrorMsg: "Something went wrong",
	}

	var apiError ServerErrorResponser
	if errors.As(err, &apiError) {
		errResp.Status, errResp.ErrorMsg = apiError.ServerErrorResponse()
	}

	l.Write(errResp.AsResponse())
}
