package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/internova/internova/internal/models"
)

func (h *Handlers) sendMessage(c *gin.Context) {
	var msg domain.Message
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg.From == "" || msg.To == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from_email and to_email are required"})
		return
	}

	msg.ID = "msg_" + uuid.NewString()
	msg.From = domain.NormalizeEmail(msg.From)
	msg.To = domain.NormalizeEmail(msg.To)
	if msg.Type == "" {
		msg.Type = domain.MessageTypeMessage
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	msg.Read = false

	if err := h.repos.Messages(h.db).Insert(c.Request.Context(), &msg); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (h *Handlers) listMessages(c *gin.Context) {
	email := domain.NormalizeEmail(c.Query("email"))
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email query parameter is required"})
		return
	}

	out, err := h.repos.Messages(h.db).SelectForUser(c.Request.Context(), email)
	if err != nil {
		h.fail(c, err)
		return
	}
	if out == nil {
		out = []domain.Message{}
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handlers) markMessageRead(c *gin.Context) {
	if err := h.repos.Messages(h.db).MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handlers) unreadCount(c *gin.Context) {
	email := domain.NormalizeEmail(c.Query("email"))
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email query parameter is required"})
		return
	}

	count, err := h.repos.Messages(h.db).UnreadCount(c.Request.Context(), email)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}
