package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFlash_RoundTrip(t *testing.T) {
	set := httptest.NewRecorder()
	setFlash(set, flashWarning, "Only 1 of 2 could be added: the container is full.")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range set.Result().Cookies() {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	f := popFlash(w, req)
	if f == nil {
		t.Fatal("popFlash() = nil")
	}
	if f.Kind != flashWarning || f.Message != "Only 1 of 2 could be added: the container is full." {
		t.Errorf("flash = %+v", f)
	}

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Errorf("popFlash should expire the cookie, got %+v", cookies)
	}
}

func TestPopFlash_Invalid(t *testing.T) {
	tests := map[string]string{
		"not base64": "%%%",
		"not json":   "bm90IGpzb24=",
		"no message": "eyJraW5kIjoic3VjY2VzcyJ9",
	}

	for name, value := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(&http.Cookie{Name: flashCookie, Value: value})
			if f := popFlash(httptest.NewRecorder(), req); f != nil {
				t.Errorf("popFlash() = %+v, want nil", f)
			}
		})
	}
}

func TestPopFlash_UnknownKindFallsBack(t *testing.T) {
	set := httptest.NewRecorder()
	setFlash(set, "shout", "hello")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range set.Result().Cookies() {
		req.AddCookie(c)
	}
	f := popFlash(httptest.NewRecorder(), req)
	if f == nil || f.Kind != flashSuccess {
		t.Errorf("flash = %+v, want success kind", f)
	}
}

func TestPopFlash_NoCookie(t *testing.T) {
	w := httptest.NewRecorder()
	if f := popFlash(w, httptest.NewRequest(http.MethodGet, "/", nil)); f != nil {
		t.Errorf("popFlash() = %+v, want nil", f)
	}
	if len(w.Result().Cookies()) != 0 {
		t.Error("popFlash without a cookie should not set one")
	}
}
