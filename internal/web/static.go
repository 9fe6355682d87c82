// Package web serves the browser client and falls back to index.html so
// client-side routes load.
package web

import (
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"

	commonhttp "github.com/AlibekovAA/event-registration/internal/common/http"
	"github.com/AlibekovAA/event-registration/internal/common/logger"
)

const indexFile = "index.html"

type Handler struct {
	files fs.FS
	log   *logger.Logger
}

func NewHandler(files fs.FS, log *logger.Logger) *Handler {
	return &Handler{files: files, log: log}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api" || strings.HasPrefix(r.URL.Path, "/api/") {
		commonhttp.WriteError(w, http.StatusNotFound, commonhttp.CodeNotFound, "Not found", commonhttp.TraceIDFromContext(r.Context()))
		return
	}

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		commonhttp.MethodNotAllowed(w, r, http.MethodGet)
		return
	}

	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name == "" {
		name = indexFile
	}

	if h.isFile(name) {
		http.ServeFileFS(w, r, h.files, name)
		return
	}

	if !h.isFile(indexFile) {
		h.log.WithFields(r.Context(), logger.Fields{
			"path":   r.URL.Path,
			"action": "static_index_missing",
		}).Warn("static fallback requested but index.html is missing")
		commonhttp.WriteError(w, http.StatusNotFound, commonhttp.CodeNotFound, "Not found", commonhttp.TraceIDFromContext(r.Context()))
		return
	}

	http.ServeFileFS(w, r, h.files, indexFile)
}

func (h *Handler) isFile(name string) bool {
	info, err := fs.Stat(h.files, name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			h.log.Warnf("static stat %s failed: %v", name, err)
		}
		return false
	}
	return !info.IsDir()
}
