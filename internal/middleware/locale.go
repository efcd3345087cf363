package middleware

import (
	"net/http"

	"finitefield.org/listing-web/internal/i18n"
)

// Locale resolves the page locale from the `lang` query parameter and stores
// it in the request context. Unsupported values resolve to the default.
func Locale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		locale := i18n.ResolveLocale(r.URL.Query())
		w.Header().Set("Content-Language", locale)
		next.ServeHTTP(w, r.WithContext(WithLocale(r.Context(), locale)))
	})
}

// Lang returns the locale resolved by Locale, or resolves it from the query
// when the middleware did not run.
func Lang(r *http.Request) string {
	if l, ok := LocaleFromContext(r.Context()); ok {
		return l
	}
	return i18n.ResolveLocale(r.URL.Query())
}
