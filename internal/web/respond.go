package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"spotify-insights/internal/apierr"
)

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondRaw writes an upstream JSON body through unchanged.
func respondRaw(w http.ResponseWriter, status int, body json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// respondError renders a taxonomy error as {status_code, message} with the
// error's own status. Anything that is not a taxonomy error becomes a
// generic 500.
func (h *Handlers) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) {
		apiErr = apierr.New(apierr.KindInternal, "")
	}
	h.logger.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"status", apiErr.StatusCode,
		"err", err,
	)
	respondJSON(w, apiErr.StatusCode, apiErr)
}

// respondClientError renders the {"error": msg} body used by the
// calculator routes, the bearer gate, and the router fallbacks. Proxy
// taxonomy errors use respondError's {status_code, message} shape instead.
func respondClientError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
