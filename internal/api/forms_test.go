package api

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"   ", 0},
		{"42", 42},
		{" 12.5 ", 12.5},
		{"-3", -3},
		{"1e2", 100},
		{"invalid", 0},
		{"10abc", 0},
		{"NaN", 0},
		{"Inf", 0},
		{"-Infinity", 0},
		{"1e400", 0},
	}

	for _, tt := range tests {
		if got := parseFloat(tt.in, 0); got != tt.want {
			t.Errorf("parseFloat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if got := parseFloat("nope", 7); got != 7 {
		t.Errorf("parseFloat fallback = %v, want 7", got)
	}
	if got := parseFloat("0", 7); got != 0 || math.Signbit(got) {
		t.Errorf("parseFloat(\"0\") = %v, want 0", got)
	}
}

func TestFormName(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.PostForm = map[string][]string{"name": {"  Flour "}}
	if name, ok := formName(req); !ok || name != "Flour" {
		t.Errorf("formName = %q, %v", name, ok)
	}

	req.PostForm = map[string][]string{"name": {"   "}}
	if _, ok := formName(req); ok {
		t.Error("formName accepted a blank name")
	}
}
