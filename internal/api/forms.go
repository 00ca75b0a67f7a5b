package api

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// parseFloat reads a numeric form value. Surrounding whitespace is ignored;
// an empty, unparsable or non-finite value yields fallback.
func parseFloat(value string, fallback float64) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fallback
	}
	return f
}

// formFloat parses the named form field with a fallback of 0.
func formFloat(r *http.Request, field string) float64 {
	return parseFloat(r.PostFormValue(field), 0)
}

// formName returns the trimmed value of the name field and whether one was given.
func formName(r *http.Request) (string, bool) {
	name := strings.TrimSpace(r.PostFormValue("name"))
	return name, name != ""
}

// containerID extracts the {id} URL parameter. The route pattern only admits
// digits, so the only failure is a value too large for int.
func containerID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, false
	}
	return id, true
}
