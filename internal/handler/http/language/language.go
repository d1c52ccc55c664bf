// Package language negotiates the UI language of a request and lets clients
// pin it with a cookie.
package language

import (
	"net/http"
	"strings"

	"newsportal/internal/domain/entity"
)

// CookieName is the cookie carrying the pinned language.
const CookieName = "lang"

const cookieMaxAge = 365 * 24 * 60 * 60

// FromRequest resolves the request language: the lang query parameter wins,
// then the cookie, then Accept-Language. Unsupported values fall through;
// the default is Russian.
func FromRequest(r *http.Request) string {
	if lang := entity.NormalizeLanguage(r.URL.Query().Get("lang")); entity.IsSupportedLanguage(lang) {
		return lang
	}
	if c, err := r.Cookie(CookieName); err == nil {
		if lang := entity.NormalizeLanguage(c.Value); entity.IsSupportedLanguage(lang) {
			return lang
		}
	}
	if lang := fromAcceptLanguage(r.Header.Get("Accept-Language")); lang != "" {
		return lang
	}
	return entity.DefaultLanguage
}

// fromAcceptLanguage returns the first supported language in the header, in
// order of appearance. Quality weights beyond ordering are ignored.
func fromAcceptLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag := part
		if idx := strings.IndexByte(tag, ';'); idx != -1 {
			tag = tag[:idx]
		}
		tag = strings.TrimSpace(tag)
		// Primary subtag only: ru-RU negotiates as ru.
		if idx := strings.IndexByte(tag, '-'); idx != -1 {
			tag = tag[:idx]
		}
		if lang := entity.NormalizeLanguage(tag); entity.IsSupportedLanguage(lang) {
			return lang
		}
	}
	return ""
}

// SetHandler pins the language from the URL path into the lang cookie.
// Registered as GET /language/{code}.
type SetHandler struct{}

func (SetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	code := entity.NormalizeLanguage(r.PathValue("code"))
	if !entity.IsSupportedLanguage(code) {
		http.Error(w, "unsupported language", http.StatusBadRequest)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    code,
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}
