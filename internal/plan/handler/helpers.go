package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"planboard-service/internal/plan/service"
)

var errNoInput = errors.New("no input: upload a file or configure a source")

// parseAnyForm accepts both multipart uploads and plain form posts.
func parseAnyForm(r *http.Request, maxMB int) error {
	err := r.ParseMultipartForm(int64(maxMB) << 20)
	if err == nil || errors.Is(err, http.ErrNotMultipart) {
		return r.ParseForm()
	}
	return err
}

func formInt(r *http.Request, key string, def int) int {
	s := r.FormValue(key)
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func formBool(r *http.Request, key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(r.FormValue(key))) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

// formDate parses a form date day-first; zero time when absent or invalid.
func formDate(r *http.Request, key string) time.Time {
	d, ok := service.CoerceDate(r.FormValue(key), true)
	if !ok {
		return time.Time{}
	}
	return d
}

// formList gathers a multi-valued param, splitting comma-joined values.
func formList(r *http.Request, key string) []string {
	var out []string
	if r.Form == nil {
		return out
	}
	for _, v := range r.Form[key] {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
