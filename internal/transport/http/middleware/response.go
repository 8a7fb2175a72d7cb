package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/shop-assistant-api/internal/apperror"
)

// writeJSONError writes the API's {error, message} body with the correct Content-Type.
func writeJSONError(w http.ResponseWriter, status int, code apperror.Code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(apperror.Response{Error: code, Message: msg})
}

// NotFound answers unknown routes in the API's error shape.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSONError(w, http.StatusNotFound, apperror.CodeNotFound, apperror.ContextMessages(r.Context()).RouteNotFound)
}

// MethodNotAllowed answers a known route called with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSONError(w, http.StatusMethodNotAllowed, apperror.CodeMethodNotAllowed, apperror.ContextMessages(r.Context()).MethodNotAllowed)
}
