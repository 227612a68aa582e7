package city

import (
	"fmt"
	"net/http"
)

type Error struct {
	error
	msg        string
	statusCode int
}

func (e *Error) ServerErrorResponse() (int, string) {
	return e.statusCode, e.msg
}

// UnknownCityError is returned when a request names a city that is
// not in the catalog.
type UnknownCityError struct {
	Slug string
}

func (e *UnknownCityError) Error() string {
	return fmt.Sprintf("city %q not found", e.Slug)
}

func (e *UnknownCityError) ServerErrorResponse() (int, string) {
	return http.StatusNotFound, fmt.Sprintf("%s is not a tracked city", e.Slug)
}

// UnknownZoneError is returned when a request names a zone the city
// does not have.
type UnknownZoneError struct {
	City string
	Slug string
}

func (e *UnknownZoneError) Error() string {
	return fmt.Sprintf("zone %q not found in city %q", e.Slug, e.City)
}

func (e *UnknownZoneError) ServerErrorResponse() (int, string) {
	return http.StatusNotFound, fmt.Sprintf("%s has no zone %s", e.City, e.Slug)
}
