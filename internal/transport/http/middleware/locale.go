package middleware

import (
	"net/http"

	"github.com/shop-assistant-api/internal/apperror"
	"golang.org/x/text/language"
)

// Locale picks the response language from Accept-Language, falling back to def.
func Locale(def language.Tag) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tag, ok := apperror.MatchAcceptLanguage(r.Header.Get("Accept-Language"))
			if !ok {
				tag = def
			}
			next.ServeHTTP(w, r.WithContext(apperror.WithLocale(r.Context(), tag)))
		})
	}
}
