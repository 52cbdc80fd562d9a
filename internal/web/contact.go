package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Kaushik9989/portfolio/internal/mail"
)

const (
	contactSent     = "Thank you for your message! I'll get back to you soon."
	contactInvalid  = "Please enter your name, a valid email address and a message."
	contactThrottle = "You've sent a few messages already. Please try again in a minute."
	contactFailed   = "Sorry, there was an error sending your message. Please try again later."
)

// submitContact answers with a success or error fragment the page swaps in.
func (h *handler) submitContact(c *gin.Context) {
	if !h.contact.allow(h.opts.Hasher.Hash(c.ClientIP())) {
		c.HTML(http.StatusTooManyRequests, "contact-error", gin.H{"error": contactThrottle})
		return
	}

	msg := mail.Message{
		Name:  c.PostForm("fullName"),
		Email: c.PostForm("email"),
		Body:  c.PostForm("message"),
	}
	if err := msg.Validate(); err != nil {
		c.HTML(http.StatusBadRequest, "contact-error", gin.H{"error": contactInvalid})
		return
	}

	if err := h.opts.Mailer.SendContact(c.Request.Context(), msg); err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, mail.ErrDisabled) {
			status = http.StatusServiceUnavailable
		}
		h.logger.Warn("contact form not delivered", zap.Error(err))
		c.HTML(status, "contact-error", gin.H{"error": contactFailed})
		return
	}

	c.HTML(http.StatusOK, "contact-success", gin.H{"success": contactSent})
}
