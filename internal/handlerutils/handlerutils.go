package handlerutils

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/TherealJvJ/TelMoz-2.0/internal/servererrors"
)

// APIHandler is a http handler that returns an error instead of
// writing error responses itself, so error handling stays in one
// place.
type APIHandler func(w http.ResponseWriter, r *http.Request) error

type successResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}

// MakeHandler adapts an [APIHandler] into a [http.HandlerFunc] and is
// the centralized place where returned errors become JSON error
// responses. Errors that are not a [servererrors.ServerError] are
// treated as internal and never leak their message to the client.
func MakeHandler(h APIHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		log.Println(err)

		var serverError *servererrors.ServerError
		if errors.As(err, &serverError) {
			WriteErrorJSON(
				w,
				serverError.StatusCode,
				serverError.Error(),
				serverError.Errors,
			)
			return
		}

		WriteErrorJSON(
			w,
			http.StatusInternalServerError,
			"something went wrong",
			nil,
		)
	}
}

func WriteSuccessJSON(w http.ResponseWriter, statusCode int, message string, data any) error {
	return writeJSON(
		w,
		statusCode,
		successResponse{
			Status:  "success",
			Message: message,
			Data:    data,
		},
	)
}

func WriteErrorJSON(w http.ResponseWriter, statusCode int, message string, errs any) error {
	return writeJSON(
		w,
		statusCode,
		errorResponse{
			Status:  "error",
			Message: message,
			Errors:  errs,
		},
	)
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return json.NewEncoder(w).Encode(v)
}

// FormValue returns a trimmed form field from an already-parsed form.
func FormValue(r *http.Request, field string) string {
	return strings.TrimSpace(r.PostFormValue(field))
}

// ParseFloatOrDefault leniently coerces a form field to a float64,
// falling back to defaultValue when the field is absent or
// unparseable. Deliberate policy for optional numeric form fields: a
// garbled value degrades to the default instead of failing the whole
// submission.
func ParseFloatOrDefault(defaultValue float64, field string) float64 {
	num, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return defaultValue
	}

	return num
}

// ParseUintOrDefault is [ParseFloatOrDefault] for non-negative
// integers; negative values count as unparseable.
func ParseUintOrDefault(defaultValue uint, field string) uint {
	num, err := strconv.ParseUint(field, 10, 0)
	if err != nil {
		return defaultValue
	}

	return uint(num)
}
