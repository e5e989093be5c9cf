package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

// Class is the failure taxonomy applied to every request.
type Class string

const (
	ClassUnauthorized Class = "unauthorized"
	ClassForbidden    Class = "forbidden"
	ClassNotFound     Class = "not_found"
	ClassValidation   Class = "validation"
	ClassServer       Class = "server"
	ClassHTTP         Class = "http"
	ClassNetwork      Class = "network"
	ClassRequest      Class = "request"
	ClassCanceled     Class = "canceled"
)

// Global notice texts, one per class that shows a notice.
const (
	MsgLoginRequired = "Login required."
	MsgLoginChanged  = "Your login changed while the request was running. Please try again."
	MsgForbidden     = "You do not have permission to access this resource."
	MsgNotFound      = "The requested resource could not be found."
	MsgServer        = "A server error occurred."
	MsgUnknown       = "An unknown error occurred."
	MsgNetwork       = "Check your network connection."
	MsgRequest       = "An error occurred."
)

// FieldErrors maps a form field to its validation messages.
type FieldErrors map[string][]string

type Error struct {
	Class   Class
	Status  int
	Message string
	Fields  FieldErrors
	Body    []byte
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("gateway %s (status %d): %s", e.Class, e.Status, msg)
	}
	return fmt.Sprintf("gateway %s: %s", e.Class, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ClassOf returns the class of a gateway failure, or "" for other errors.
func ClassOf(err error) Class {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr.Class
	}
	return ""
}

func IsValidation(err error) bool {
	return ClassOf(err) == ClassValidation
}

// FieldErrorsOf returns the field map of a validation failure.
func FieldErrorsOf(err error) (FieldErrors, bool) {
	var gerr *Error
	if errors.As(err, &gerr) && gerr.Class == ClassValidation {
		return gerr.Fields, true
	}
	return nil, false
}

func classify(status int) Class {
	switch status {
	case http.StatusUnauthorized:
		return ClassUnauthorized
	case http.StatusForbidden:
		return ClassForbidden
	case http.StatusNotFound:
		return ClassNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ClassValidation
	case http.StatusInternalServerError:
		return ClassServer
	default:
		return ClassHTTP
	}
}

func statusError(status int, body []byte) *Error {
	e := &Error{
		Class:  classify(status),
		Status: status,
		Body:   body,
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return e
	}

	for _, key := range []string{"error", "detail"} {
		if raw, ok := doc[key]; ok {
			var msg string
			if json.Unmarshal(raw, &msg) == nil {
				e.Message = msg
				break
			}
		}
	}

	if e.Class == ClassValidation {
		e.Fields = make(FieldErrors, len(doc))
		for field, raw := range doc {
			var v any
			if json.Unmarshal(raw, &v) == nil {
				e.Fields.collect(field, v)
			}
		}
	}
	return e
}

// collect flattens a validation value under field. Nested serializer errors
// get dotted names ("branch.name", "pt_registrations.0.sessions"); items of a
// list that passed validation come back as empty objects and are skipped.
func (f FieldErrors) collect(field string, v any) {
	switch v := v.(type) {
	case nil:
	case string:
		f[field] = append(f[field], v)
	case []any:
		for i, item := range v {
			switch item.(type) {
			case map[string]any, []any:
				f.collect(field+"."+strconv.Itoa(i), item)
			default:
				f.collect(field, item)
			}
		}
	case map[string]any:
		for key, item := range v {
			f.collect(field+"."+key, item)
		}
	default:
		f[field] = append(f[field], fmt.Sprint(v))
	}
}
