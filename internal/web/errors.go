package web

// errors.go turns handler errors into localized JSON responses.
//
// The flow:
//  1. A handler calls respondError(w, r, err)
//  2. core.MapError classifies err into a code and catalog key
//  3. The technical error is logged with the request ID
//  4. Message and action are rendered in the language the client asked
//     for with Accept-Language

import (
	"log/slog"
	"net/http"

	"github.com/JonMunkholm/droprows/internal/core"
	"github.com/JonMunkholm/droprows/internal/logging"
)

// ErrorResponse is the body of every error response. Kind and Value are
// set for row range errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
	Kind    string `json:"kind,omitempty"`
	Value   string `json:"value,omitempty"`
}

// statusByCode maps error codes to HTTP status. Codes not listed are 500.
var statusByCode = map[string]int{
	"RNG001":  http.StatusUnprocessableEntity,
	"RNG002":  http.StatusUnprocessableEntity,
	"TBL001":  http.StatusBadRequest,
	"TBL002":  http.StatusNotFound,
	"FILE001": http.StatusRequestEntityTooLarge,
	"FILE002": http.StatusBadRequest,
	"REQ001":  http.StatusBadRequest,
	"AUTH001": http.StatusUnauthorized,
	"AUTH002": http.StatusForbidden,
	"RND001":  http.StatusServiceUnavailable,
	"RATE001": http.StatusTooManyRequests,
}

func statusFor(msg core.UserMessage) int {
	if status, ok := statusByCode[msg.Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// respondError logs err and writes its localized description.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	msg := core.MapError(err)
	status := statusFor(msg)

	level := slog.LevelWarn
	if !msg.IsUserFacing() {
		level = slog.LevelError
	}
	logFor(r).Log(r.Context(), level, "request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"code", msg.Code,
		"error", err.Error(),
	)

	lang := s.catalog.Match(r.Header.Get("Accept-Language"))
	message, action := s.catalog.Explain(lang, msg.Key, msg)

	writeJSON(w, r, status, ErrorResponse{
		Error:   msg.Key,
		Message: message,
		Action:  action,
		Code:    msg.Code,
		Kind:    msg.Kind,
		Value:   msg.Value,
	})
}

func logFor(r *http.Request) *slog.Logger {
	return logging.FromContext(r.Context())
}
