package api

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/BerylCAtieno/yodelstar-api/internal/models"
	"github.com/gin-gonic/gin"
)

const indexFile = "index.html"

// ServeIndex serves the frontend entry point.
func (h *Handler) ServeIndex(c *gin.Context) {
	index, ok := h.staticFile(indexFile)
	if !ok {
		h.requestLog(c).WithField("static_dir", h.staticDir).Error("frontend not available")
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Frontend not available"})
		return
	}
	c.File(index)
}

// ServeStatic serves a frontend asset, falling back to index.html so client
// side routes resolve.
func (h *Handler) ServeStatic(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "File not found"})
		return
	}
	if file, ok := h.staticFile(c.Request.URL.Path); ok {
		c.File(file)
		return
	}
	if index, ok := h.staticFile(indexFile); ok {
		c.File(index)
		return
	}
	h.requestLog(c).WithField("path", c.Request.URL.Path).Error("static file not found")
	c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "File not found"})
}

// staticFile resolves a URL path inside the static dir. Cleaning against "/"
// keeps ".." segments from leaving the directory.
func (h *Handler) staticFile(urlPath string) (string, bool) {
	if h.staticDir == "" {
		return "", false
	}
	clean := path.Clean("/" + urlPath)
	if clean == "/" {
		return "", false
	}
	full := filepath.Join(h.staticDir, filepath.FromSlash(clean))
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		return "", false
	}
	return full, true
}
