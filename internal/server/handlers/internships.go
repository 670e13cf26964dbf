package handlers

import (
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/internova/internova/internal/common"
	"github.com/internova/internova/internal/match"
	domain "github.com/internova/internova/internal/models"
	"github.com/internova/internova/internal/server/auth"
	"github.com/internova/internova/internal/server/importer"
)

const maxRecommendations = 50

func (h *Handlers) listInternships(c *gin.Context) {
	out, err := h.repos.Internships(h.db).SelectAll(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if out == nil {
		out = []domain.Internship{}
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handlers) listInternshipsByCompany(c *gin.Context) {
	out, err := h.repos.Internships(h.db).SelectByCompany(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if out == nil {
		out = []domain.Internship{}
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handlers) createInternship(c *gin.Context) {
	var in domain.Internship
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if in.Title == "" || in.Company == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and company are required"})
		return
	}

	// The server id is authoritative; ids minted offline by clients are
	// replaced here and reconciled client-side.
	in.ID = "int_" + uuid.NewString()
	if in.CompanyID == "" {
		in.CompanyID = auth.UserID(c)
	}
	if in.Status == "" {
		in.Status = domain.ListingStatusActive
	}
	now := time.Now()
	if in.Posted.IsZero() {
		in.Posted = now
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = now
	}
	in.Skills = domain.DedupeSkills(in.Skills)

	if err := h.repos.Internships(h.db).Insert(c.Request.Context(), &in); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, in)
}

func (h *Handlers) updateInternship(c *gin.Context) {
	var upd domain.InternshipUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	repo := h.repos.Internships(h.db)

	in, err := repo.Get(ctx, c.Param("id"))
	if errors.Is(err, common.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "listing not found"})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	upd.ApplyTo(in)
	if err := repo.Replace(ctx, in); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, in)
}

func (h *Handlers) deleteInternship(c *gin.Context) {
	if err := h.repos.Internships(h.db).Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handlers) recommendations(c *gin.Context) {
	var req struct {
		Skills []string `json:"skills"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	all, err := h.repos.Internships(h.db).SelectAll(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	ranked := make([]domain.Internship, 0, len(all))
	for _, in := range all {
		if in.Status == domain.ListingStatusClosed {
			continue
		}
		if match.MatchedCount(req.Skills, in.Skills) < 1 {
			continue
		}
		in.MatchScore = match.Score(req.Skills, in.Skills)
		ranked = append(ranked, in)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MatchScore > ranked[j].MatchScore
	})
	if len(ranked) > maxRecommendations {
		ranked = ranked[:maxRecommendations]
	}

	c.JSON(http.StatusOK, ranked)
}

func (h *Handlers) importInternships(c *gin.Context) {
	var req struct {
		CSVData     string `json:"csv_data" binding:"required"`
		Source      string `json:"source"`
		RemoveDupes bool   `json:"remove_dupes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Source == "" {
		req.Source = "csv"
	}

	ctx := c.Request.Context()
	repo := h.repos.Internships(h.db)

	existing, err := repo.SelectAll(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}

	res, err := importer.Parse(req.CSVData, req.Source, req.RemoveDupes, existing)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for i := range res.Listings {
		if err := repo.Insert(ctx, &res.Listings[i]); err != nil {
			h.fail(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, domain.ImportResult{
		Imported:       res.Imported,
		Skipped:        res.Skipped,
		Invalid:        res.Invalid,
		InvalidRecords: res.InvalidRecords,
	})
}

func (h *Handlers) internshipStats(c *gin.Context) {
	stats, err := h.repos.Internships(h.db).Stats(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
