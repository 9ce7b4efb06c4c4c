package web

import (
	"net/http"
	"net/url"
	"strings"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Message  string
	Category string // success, danger, warning, info
}

const flashCookie = "flash"

// setFlash stores a flash message in a short-lived cookie so it survives
// the redirect that follows every mutation.
func setFlash(w http.ResponseWriter, category, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(category + "|" + message),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// popFlash reads and clears the flash cookie, if any.
func popFlash(w http.ResponseWriter, r *http.Request) *Flash {
	cookie, err := r.Cookie(flashCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	value, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return nil
	}

	category, message, ok := strings.Cut(value, "|")
	if !ok {
		return &Flash{Message: value, Category: "info"}
	}
	return &Flash{Message: message, Category: category}
}
