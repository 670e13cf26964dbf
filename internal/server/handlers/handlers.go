// Package handlers exposes the backend's JSON API over gin.
package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/internova/internova/internal/logging"
	"github.com/internova/internova/internal/server/auth"
	"github.com/internova/internova/internal/server/config"
	"github.com/internova/internova/internal/server/repositories/repomanager"
	"github.com/internova/internova/internal/server/storage"
)

// Handlers carries the dependencies shared by all route handlers.
type Handlers struct {
	db      *sql.DB
	repos   repomanager.RepositoryManager
	config  *config.Config
	resumes *storage.ResumeStore
	log     logging.Logger
}

func New(db *sql.DB, repos repomanager.RepositoryManager, cfg *config.Config, resumes *storage.ResumeStore, log logging.Logger) *Handlers {
	return &Handlers{db: db, repos: repos, config: cfg, resumes: resumes, log: log}
}

// Router builds the gin engine with all routes registered.
func (h *Handlers) Router() *gin.Engine {
	if !h.config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())

	api := r.Group("/api")

	api.GET("/ping", h.ping)
	api.POST("/auth/register", h.register)
	api.POST("/auth/login", h.login)

	api.GET("/internships", h.listInternships)
	api.GET("/internships/company/:id", h.listInternshipsByCompany)
	api.GET("/internships/stats", h.internshipStats)
	api.POST("/internships/recommendations", h.recommendations)
	api.POST("/resumes/extract-skills", h.extractSkills)

	authed := api.Group("", auth.Middleware([]byte(h.config.SecretKey)))

	authed.PATCH("/users/:id/profile", h.updateProfile)

	authed.POST("/internships", h.createInternship)
	authed.PATCH("/internships/:id", h.updateInternship)
	authed.DELETE("/internships/:id", h.deleteInternship)
	authed.POST("/internships/import", h.importInternships)

	authed.POST("/applications", h.createApplication)
	authed.GET("/applications", h.listApplications)
	authed.GET("/applications/student/:id", h.listApplicationsByStudent)
	authed.GET("/applications/company/:id", h.listApplicationsByCompany)
	authed.PATCH("/applications/:id/status", h.updateApplicationStatus)

	authed.GET("/saved/:studentID", h.listSaved)
	authed.POST("/saved/:studentID/:internshipID", h.saveInternship)
	authed.DELETE("/saved/:studentID/:internshipID", h.unsaveInternship)

	authed.POST("/messages", h.sendMessage)
	authed.GET("/messages", h.listMessages)
	authed.GET("/messages/unread-count", h.unreadCount)
	authed.PATCH("/messages/:id/read", h.markMessageRead)

	authed.POST("/resumes/upload-url", h.resumeUploadURL)
	authed.GET("/resumes/download-url", h.resumeDownloadURL)

	return r
}

func (h *Handlers) ping(c *gin.Context) {
	c.Status(http.StatusOK)
}

// fail logs the error and answers with a generic 500.
func (h *Handlers) fail(c *gin.Context, err error) {
	h.log.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
