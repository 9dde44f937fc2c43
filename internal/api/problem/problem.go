// Package problem translates store and validation failures into the API's
// JSON error responses. 5xx causes are logged server-side and never echoed
// to clients outside development.
package problem

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

type Details struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func Write(w http.ResponseWriter, r *http.Request, status int, message string, err error, env string) {
	details := Details{Error: message}
	if err != nil && (env == "development" || env == "test") {
		details.Detail = err.Error()
	}

	if err != nil && status >= 500 {
		logger := zerolog.Ctx(r.Context())
		logger.Error().
			Err(err).
			Int("status", status).
			Str("path", r.URL.Path).
			Str("method", r.Method).
			Msg(message)
	} else if err != nil && status >= 400 {
		logger := zerolog.Ctx(r.Context())
		logger.Warn().
			Err(err).
			Int("status", status).
			Str("path", r.URL.Path).
			Str("method", r.Method).
			Msg(message)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(details)
}
