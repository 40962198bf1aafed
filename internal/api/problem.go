package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Problem represents an RFC 7807 Problem Details response.
type Problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Status int    `json:"status"`
}

// problemTypes maps HTTP status codes to RFC 7807 type URIs and titles.
var problemTypes = map[int]struct {
	typeURI string
	title   string
}{
	http.StatusBadRequest: {
		typeURI: "https://lumen.solstice.dev/errors/bad-request",
		title:   "Bad Request",
	},
	http.StatusNotFound: {
		typeURI: "https://lumen.solstice.dev/errors/not-found",
		title:   "Not Found",
	},
	http.StatusUnprocessableEntity: {
		typeURI: "https://lumen.solstice.dev/errors/quota-exceeded",
		title:   "Quota Exceeded",
	},
	http.StatusInternalServerError: {
		typeURI: "https://lumen.solstice.dev/errors/internal-error",
		title:   "Internal Server Error",
	},
}

// WriteProblem writes an RFC 7807 Problem Details response.
func WriteProblem(w http.ResponseWriter, r *http.Request, status int, detail string) {
	pt, ok := problemTypes[status]
	if !ok {
		pt = struct {
			typeURI string
			title   string
		}{
			typeURI: "about:blank",
			title:   http.StatusText(status),
		}
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)

	problem := Problem{
		Type:   pt.typeURI,
		Title:  pt.title,
		Status: status,
		Detail: detail,
	}
	if err := json.NewEncoder(w).Encode(problem); err != nil {
		slog.Error("Failed to encode problem response",
			"error", err,
			"path", r.URL.Path)
	}
}
