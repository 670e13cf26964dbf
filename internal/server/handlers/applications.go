package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/internova/internova/internal/common"
	domain "github.com/internova/internova/internal/models"
)

func (h *Handlers) createApplication(c *gin.Context) {
	var app domain.Application
	if err := c.ShouldBindJSON(&app); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if app.StudentID == "" || app.InternshipID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "student_id and internship_id are required"})
		return
	}

	ctx := c.Request.Context()

	app.ID = "app_" + uuid.NewString()
	if app.Status == "" {
		app.Status = domain.ApplicationStatusApplied
	}
	if app.AppliedAt.IsZero() {
		app.AppliedAt = time.Now()
	}
	if app.CompanyID == "" {
		if in, err := h.repos.Internships(h.db).Get(ctx, app.InternshipID); err == nil {
			app.CompanyID = in.CompanyID
		}
	}

	if err := h.repos.Applications(h.db).Insert(ctx, &app); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

func (h *Handlers) listApplications(c *gin.Context) {
	out, err := h.repos.Applications(h.db).SelectAll(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if out == nil {
		out = []domain.Application{}
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handlers) listApplicationsByStudent(c *gin.Context) {
	out, err := h.repos.Applications(h.db).SelectByStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if out == nil {
		out = []domain.Application{}
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handlers) listApplicationsByCompany(c *gin.Context) {
	out, err := h.repos.Applications(h.db).SelectByCompany(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if out == nil {
		out = []domain.Application{}
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handlers) updateApplicationStatus(c *gin.Context) {
	var req struct {
		Status domain.ApplicationStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	switch req.Status {
	case domain.ApplicationStatusApplied, domain.ApplicationStatusUnderReview,
		domain.ApplicationStatusAccepted, domain.ApplicationStatusRejected:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown application status"})
		return
	}

	app, err := h.repos.Applications(h.db).UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if errors.Is(err, common.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}
