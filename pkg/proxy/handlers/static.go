package handlers

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"strings"

	"urbanvision-ao/urbanvision/pkg/proxy"
)

// indexFile is served for the root path.
const indexFile = "index.html"

// notFoundMessage is the body text of 404 responses.
const notFoundMessage = "Recurso não encontrado."

// StaticHandler serves files from Dir. "/" maps to index.html. Directories,
// missing files, paths that leave Dir and paths with a segment starting with
// "." all answer 404.
type StaticHandler struct {
	Dir string
}

// NewStaticHandler creates a handler serving dir.
func NewStaticHandler(dir string) *StaticHandler {
	return &StaticHandler{Dir: dir}
}

// ServeHTTP implements http.Handler.
func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !proxy.AllowMethods(w, r, http.MethodGet, http.MethodHead) {
		return
	}

	name, ok := cleanName(r.URL.Path)
	if !ok {
		h.notFound(w)
		return
	}

	// OpenInRoot refuses names that resolve outside Dir, symlinks included.
	f, err := os.OpenInRoot(h.Dir, name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.DebugContext(r.Context(), "static file rejected", "name", name, "error", err)
		}
		h.notFound(w)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		h.notFound(w)
		return
	}

	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

func (h *StaticHandler) notFound(w http.ResponseWriter) {
	_ = proxy.WriteErrorResponse(w, http.StatusNotFound, notFoundMessage)
}

// cleanName turns a URL path into a slash separated name relative to the
// served directory.
func cleanName(urlPath string) (string, bool) {
	name := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if name == "" {
		return indexFile, true
	}
	if !fs.ValidPath(name) {
		return "", false
	}
	for _, seg := range strings.Split(name, "/") {
		if strings.HasPrefix(seg, ".") {
			return "", false
		}
	}
	return name, true
}
