package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/internova/internova/internal/match"
)

func (h *Handlers) resumeUploadURL(c *gin.Context) {
	key, url, err := h.resumes.PresignedPutURL(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url, "key": key})
}

func (h *Handlers) resumeDownloadURL(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "key query parameter is required"})
		return
	}

	url, err := h.resumes.PresignedGetURL(c.Request.Context(), key)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *Handlers) extractSkills(c *gin.Context) {
	var req struct {
		ResumeText string `json:"resume_text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	skills := match.FinalizeSkills(match.KeywordSkills(req.ResumeText), req.ResumeText)
	c.JSON(http.StatusOK, gin.H{"skills": skills})
}
