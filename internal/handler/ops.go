package handler

import (
	"context"
	"net/http"
	"path"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// ListActivity returns recent collection changes, newest first.
func (h *Handler) ListActivity(c *gin.Context) {
	if h.activity == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "activity log not configured"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	events, err := h.activity.List(c.Request.Context(), c.Query("collection"), limit)
	if err != nil {
		h.log.Errorw("list activity failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list activity failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// Healthz runs every registered check with a short timeout.
func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	body := gin.H{"status": "ok"}
	for name, check := range h.health {
		healthy := check(ctx)
		body[name] = healthy
		if !healthy {
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
		}
	}
	c.JSON(status, body)
}

// publicFallback serves other files from the public directory for GET and
// HEAD, mirroring a static file mount at the site root.
func (h *Handler) publicFallback(c *gin.Context) {
	method := c.Request.Method
	if method == http.MethodGet || method == http.MethodHead {
		name := path.Clean("/" + c.Request.URL.Path)
		if f, err := h.publicFS.Open(name); err == nil {
			defer f.Close()
			// Served directly so /index.html is not redirected to /.
			if info, err := f.Stat(); err == nil && !info.IsDir() {
				http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), f)
				return
			}
		}
	}
	c.String(http.StatusNotFound, "Cannot %s %s", method, c.Request.URL.Path)
}
