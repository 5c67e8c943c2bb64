package parseErrors

import (
	"net/http"

	"github.com/gmaschi/go-recipe-book-api/pkg/tools/validators"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

const ContentType = "application/problem+json"

// Source of a binding failure that is not a field validation error.
const (
	SourceBody  = "body"
	SourceQuery = "query"
	SourcePath  = "path"
)

// Problem is the error payload returned for every failed request that has a body.
type Problem struct {
	Type      string              `json:"type"`
	Title     string              `json:"title"`
	Status    int                 `json:"status"`
	Detail    string              `json:"detail,omitempty"`
	Instance  string              `json:"instance,omitempty"`
	Errors    map[string][]string `json:"errors,omitempty"`
	RequestID string              `json:"requestId,omitempty"`
	TraceID   string              `json:"traceId,omitempty"`
}

var problemTypes = map[int]string{
	http.StatusBadRequest:          "https://tools.ietf.org/html/rfc9110#section-15.5.1",
	http.StatusNotFound:            "https://tools.ietf.org/html/rfc9110#section-15.5.5",
	http.StatusInternalServerError: "https://tools.ietf.org/html/rfc9110#section-15.6.1",
	http.StatusServiceUnavailable:  "https://tools.ietf.org/html/rfc9110#section-15.6.4",
}

// ErrorResponse builds a problem for status without exposing any error text.
func ErrorResponse(status int) Problem {
	title := http.StatusText(status)
	if status == http.StatusInternalServerError {
		title = "An error occurred while processing your request."
	}
	return Problem{
		Type:   problemTypes[status],
		Title:  title,
		Status: status,
	}
}

// ValidationResponse builds a 400 problem from a binding error. Field
// validation failures are keyed by field; anything else (malformed JSON,
// wrong types) is reported under source.
func ValidationResponse(err error, source string) Problem {
	problem := ErrorResponse(http.StatusBadRequest)
	problem.Title = "One or more validation errors occurred."
	problem.Errors = ValidationErrors(err, source)
	return problem
}

func ValidationErrors(err error, source string) map[string][]string {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		return validators.Errors(errs)
	}
	return map[string][]string{source: {sourceMessage(source)}}
}

func sourceMessage(source string) string {
	switch source {
	case SourceBody:
		return "The request body is not a valid JSON document for this operation."
	case SourceQuery:
		return "The query string contains an invalid value."
	default:
		return "The request contains an invalid value."
	}
}
