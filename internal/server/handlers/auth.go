package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/internova/internova/internal/common"
	domain "github.com/internova/internova/internal/models"
	"github.com/internova/internova/internal/server/auth"
	"github.com/internova/internova/internal/server/models"
)

type registerRequest struct {
	Email    string             `json:"email" binding:"required"`
	Password string             `json:"password" binding:"required"`
	Name     string             `json:"name" binding:"required"`
	Type     domain.AccountType `json:"type" binding:"required"`
	Company  string             `json:"company"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Token string         `json:"token"`
	User  domain.Account `json:"user"`
}

func (h *Handlers) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Type != domain.AccountTypeStudent && req.Type != domain.AccountTypeCompany {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown account type"})
		return
	}

	ctx := c.Request.Context()
	email := domain.NormalizeEmail(req.Email)
	repo := h.repos.Users(h.db)

	if _, err := repo.GetByEmail(ctx, email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	} else if !errors.Is(err, common.ErrNotFound) {
		h.fail(c, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	user := &models.User{
		Account: domain.Account{
			ID:        uuid.NewString(),
			Email:     email,
			Name:      req.Name,
			Type:      req.Type,
			IsNewUser: true,
		},
		PasswordHash: hash,
	}
	if req.Type == domain.AccountTypeCompany {
		user.Profile.Company = req.Company
	}

	if err := repo.Create(ctx, user); err != nil {
		h.fail(c, err)
		return
	}

	h.issueToken(c, user)
}

func (h *Handlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	user, err := h.repos.Users(h.db).GetByEmail(ctx, domain.NormalizeEmail(req.Email))
	if errors.Is(err, common.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	h.issueToken(c, user)
}

func (h *Handlers) issueToken(c *gin.Context, user *models.User) {
	token, err := auth.GenerateToken(user.ID, []byte(h.config.SecretKey), h.config.TokenValidityDuration)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, authResponse{Token: token, User: user.Account})
}

func (h *Handlers) updateProfile(c *gin.Context) {
	id := c.Param("id")
	if id != auth.UserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot edit another user's profile"})
		return
	}

	var upd domain.Profile
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	repo := h.repos.Users(h.db)

	user, err := repo.GetByID(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	merged := user.Profile.Merge(upd)
	if err := repo.UpdateProfile(ctx, id, merged); err != nil {
		h.fail(c, err)
		return
	}

	user.Profile = merged
	c.JSON(http.StatusOK, user.Account)
}
