package api

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"
)

// flashCookie carries one message from a form POST to the page it redirects to.
const flashCookie = "varasto_flash"

// flashMaxAge bounds how long an unread flash survives.
const flashMaxAge = time.Minute

// Flash kinds, matching the .flash.<kind> CSS classes.
const (
	flashSuccess = "success"
	flashWarning = "warning"
	flashError   = "error"
)

// flash is a one-shot user message.
type flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// setFlash stores a message for the next rendered page.
func setFlash(w http.ResponseWriter, kind, message string) {
	raw, err := json.Marshal(flash{Kind: kind, Message: message})
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.URLEncoding.EncodeToString(raw),
		Path:     "/",
		MaxAge:   int(flashMaxAge / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and clears the pending message. A missing or malformed
// cookie yields nil.
func popFlash(w http.ResponseWriter, r *http.Request) *flash {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	raw, err := base64.URLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var f flash
	if err := json.Unmarshal(raw, &f); err != nil || f.Message == "" {
		return nil
	}
	switch f.Kind {
	case flashSuccess, flashWarning, flashError:
	default:
		f.Kind = flashSuccess
	}
	return &f
}
