package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Kaushik9989/portfolio/internal/export"
	"github.com/Kaushik9989/portfolio/internal/interact"
	"github.com/Kaushik9989/portfolio/internal/render"
	"github.com/Kaushik9989/portfolio/internal/viewport"
)

func (h *handler) initialView() render.PageView {
	r := h.opts.Renderer
	return r.View(viewport.Initial(r.Config()))
}

func (h *handler) index(c *gin.Context) {
	c.HTML(http.StatusOK, "page", h.initialView())
}

func (h *handler) print(c *gin.Context) {
	base := h.opts.BaseURL
	if base == "" {
		base = "/"
	}
	c.HTML(http.StatusOK, "page", h.opts.Renderer.PrintView(base))
}

// section serves one section as a fragment; unknown ids are 404.
func (h *handler) section(c *gin.Context) {
	id := c.Param("id")
	if !h.opts.Renderer.HasSection(id) {
		c.String(http.StatusNotFound, "unknown section %q", id)
		return
	}
	c.HTML(http.StatusOK, render.SectionTemplate(id), h.initialView())
}

func (h *handler) privacy(c *gin.Context) {
	c.HTML(http.StatusOK, "privacy", gin.H{
		"retention": h.opts.RetentionMonths,
	})
}

func (h *handler) healthz(c *gin.Context) {
	if h.opts.Store != nil {
		if err := h.opts.Store.Ping(c.Request.Context()); err != nil {
			h.logger.Error("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// viewportConfig exposes the same client configuration the page embeds.
func (h *handler) viewportConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.initialView().Client)
}

type copyEventRequest struct {
	Label string `json:"label" binding:"required"`
}

// copyEvent counts a successful copy-chip activation.
func (h *handler) copyEvent(c *gin.Context) {
	var ev copyEventRequest
	if err := c.ShouldBindJSON(&ev); err != nil || !interact.IsChipLabel(ev.Label) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown chip"})
		return
	}
	if h.opts.Store == nil || doNotTrack(c) {
		c.Status(http.StatusNoContent)
		return
	}
	if err := h.opts.Store.RecordCopy(c.Request.Context(), ev.Label, h.opts.Hasher.Hash(c.ClientIP())); err != nil {
		h.logger.Warn("recording copy failed", zap.Error(err))
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) resumePDF(c *gin.Context) {
	pdf, err := h.opts.Resume.PDF(c.Request.Context())
	if err != nil {
		if !errors.Is(err, export.ErrDisabled) {
			h.logger.Error("resume export failed", zap.Error(err))
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "résumé export unavailable"})
		return
	}
	c.Header("Content-Disposition", `inline; filename="resume.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
