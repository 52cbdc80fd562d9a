package web

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Kaushik9989/portfolio/internal/analytics"
)

const adminSessionSeconds = 24 * 3600

func (h *handler) mountAdmin(r *gin.Engine) {
	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login", gin.H{})
	})
	r.POST("/admin/login", h.adminLogin)
	r.GET("/admin/logout", h.adminLogout)

	admin := r.Group("/admin")
	admin.Use(adminAuthMiddleware(h.opts.Admin.Token))
	admin.GET("/dashboard", h.adminDashboard)
	admin.GET("/api/stats", h.adminStatsJSON)
	admin.GET("/visitors", h.adminVisitors)
	admin.GET("/api/visitors/:id", h.adminVisit)
	admin.GET("/export/stats", h.adminExport)
	admin.POST("/privacy/cleanup", h.adminCleanup)
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func (h *handler) adminLogin(c *gin.Context) {
	client := h.opts.Hasher.Hash(c.ClientIP())
	if !h.logins.allow(client) {
		c.HTML(http.StatusTooManyRequests, "admin-login", gin.H{"error": "Too many attempts, try again later"})
		return
	}

	user := c.PostForm("username")
	pass := c.PostForm("password")
	// evaluate both so timing does not reveal which one failed
	okUser := equal(user, h.opts.Admin.Username)
	okPass := equal(pass, h.opts.Admin.Password)
	if !okUser || !okPass {
		h.logger.Warn("failed admin login", zap.String("client", client))
		c.HTML(http.StatusUnauthorized, "admin-login", gin.H{"error": "Invalid credentials"})
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(adminCookie, h.opts.Admin.Token, adminSessionSeconds, "/admin", "", c.Request.TLS != nil, true)
	h.logger.Info("admin login", zap.String("client", client))
	c.Redirect(http.StatusFound, "/admin/dashboard")
}

func (h *handler) adminLogout(c *gin.Context) {
	c.SetCookie(adminCookie, "", -1, "/admin", "", c.Request.TLS != nil, true)
	c.Redirect(http.StatusFound, "/admin/login")
}

func (h *handler) adminDashboard(c *gin.Context) {
	stats, err := h.opts.Store.Stats(c.Request.Context())
	if err != nil {
		h.logger.Error("loading admin stats", zap.Error(err))
		c.HTML(http.StatusInternalServerError, "admin-error", gin.H{"error": "Failed to load statistics"})
		return
	}
	c.HTML(http.StatusOK, "admin-dashboard", gin.H{"stats": stats})
}

func (h *handler) adminVisit(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid visitor id"})
		return
	}
	v, err := h.opts.Store.Visit(c.Request.Context(), id)
	if errors.Is(err, analytics.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "visitor not found"})
		return
	}
	if err != nil {
		h.logger.Error("loading visitor", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load visitor"})
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *handler) adminStatsJSON(c *gin.Context) {
	stats, err := h.opts.Store.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *handler) adminVisitors(c *gin.Context) {
	visitors, err := h.opts.Store.RecentVisitors(c.Request.Context(), 200)
	if err != nil {
		h.logger.Error("loading visitors", zap.Error(err))
		c.HTML(http.StatusInternalServerError, "admin-error", gin.H{"error": "Failed to load visitors"})
		return
	}
	c.HTML(http.StatusOK, "admin-visitors", gin.H{"visitors": visitors})
}

func (h *handler) adminExport(c *gin.Context) {
	stats, err := h.opts.Store.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
	c.JSON(http.StatusOK, stats)
}

func (h *handler) adminCleanup(c *gin.Context) {
	if h.opts.Retention == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "retention not configured"})
		return
	}
	n, err := h.opts.Retention.RunOnce(c.Request.Context())
	if err != nil {
		h.logger.Error("manual privacy cleanup", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cleanup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}
