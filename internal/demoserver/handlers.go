package demoserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/klasora/console-go/internal/models"
	appErrors "github.com/klasora/console-go/pkg/errors"
	"github.com/klasora/console-go/pkg/response"
)

func (s *Server) handleLogin(c *gin.Context) {
	req := models.LoginRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid login payload"))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload"))
		return
	}

	fu, ok := s.data.userByEmail(req.Email)
	if !ok {
		response.Error(c, appErrors.ErrInvalidCredentials)
		return
	}
	if err := bcrypt.CompareHashAndPassword(fu.passwordHash, []byte(req.Password)); err != nil {
		response.Error(c, appErrors.ErrInvalidCredentials)
		return
	}
	if !fu.user.Active {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "account is inactive"))
		return
	}

	accessToken, err := s.issueAccessToken(&fu.user)
	if err != nil {
		response.Error(c, err)
		return
	}
	refreshToken, err := generateRefreshTokenString()
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := s.refreshTokens.Save(c.Request.Context(), refreshToken, fu.user.ID, s.cfg.RefreshTTL); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, models.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.cfg.AccessTTL.Seconds()),
		UserID:       fu.user.ID,
		TenantID:     fu.user.TenantID,
		Role:         fu.user.Role,
		IssuedAt:     time.Now().UTC(),
	}, nil)
}

func (s *Server) handleRefresh(c *gin.Context) {
	req := models.RefreshRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid refresh payload"))
		return
	}

	userID, err := s.refreshTokens.Consume(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "refresh token is expired or revoked"))
		return
	}

	fu, ok := s.data.userByID(userID)
	if !ok || !fu.user.Active {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "associated user no longer exists"))
		return
	}

	accessToken, err := s.issueAccessToken(&fu.user)
	if err != nil {
		response.Error(c, err)
		return
	}
	refreshToken, err := generateRefreshTokenString()
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := s.refreshTokens.Save(c.Request.Context(), refreshToken, fu.user.ID, s.cfg.RefreshTTL); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, models.RefreshResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.cfg.AccessTTL.Seconds()),
		IssuedAt:     time.Now().UTC(),
	}, nil)
}

func (s *Server) handleMe(c *gin.Context) {
	claims := currentClaims(c)
	fu, ok := s.data.userByID(claims.UserID)
	if !ok {
		response.Error(c, appErrors.ErrNotFound)
		return
	}
	response.JSON(c, http.StatusOK, fu.user, nil)
}

func (s *Server) handleGetTenant(c *gin.Context) {
	slug := c.Param("slug")
	profile, ok := s.data.tenantBySlug(slug)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "tenant not found"))
		return
	}
	response.JSON(c, http.StatusOK, profile, nil)
}

func (s *Server) handlePatchSettings(c *gin.Context) {
	slug := c.Param("slug")
	patch := models.TenantSettings{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid settings payload"))
		return
	}

	settings, ok := s.data.patchSettings(slug, patch)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "tenant not found"))
		return
	}
	response.JSON(c, http.StatusOK, settings, nil)
}

func (s *Server) handleListStudents(c *gin.Context) {
	page, pageSize := pageParams(c)
	students, pagination := s.data.listStudents(page, pageSize)
	response.JSON(c, http.StatusOK, students, pagination)
}

func (s *Server) handleListAnnouncements(c *gin.Context) {
	page, pageSize := pageParams(c)
	announcements, pagination := s.data.listAnnouncements(page, pageSize)
	response.JSON(c, http.StatusOK, announcements, pagination)
}

func (s *Server) handleAdminListTenants(c *gin.Context) {
	tenants := s.data.listTenants()
	response.JSON(c, http.StatusOK, tenants, &models.Pagination{
		Page: 1, PageSize: len(tenants), TotalCount: len(tenants),
	})
}

func (s *Server) handleAdminCreateTenant(c *gin.Context) {
	req := models.CreateTenantRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid tenant payload"))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid tenant payload"))
		return
	}

	tenant, ok := s.data.createTenant(req, time.Now().UTC())
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "slug is already taken"))
		return
	}
	response.Created(c, tenant)
}

func (s *Server) handleAdminSetTenantStatus(c *gin.Context) {
	body := struct {
		Status models.TenantStatus `json:"status" validate:"required,oneof=active inactive suspended"`
	}{}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid status payload"))
		return
	}
	if err := s.validate.Struct(body); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid status payload"))
		return
	}

	tenant, ok := s.data.setTenantStatus(c.Param("id"), body.Status)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "tenant not found"))
		return
	}
	response.JSON(c, http.StatusOK, tenant, nil)
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("page_size"))
	return page, pageSize
}
