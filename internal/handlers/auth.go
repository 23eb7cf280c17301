package handlers

import (
	"errors"
	"net/http"

	"fieldmate/internal/auth"
	dom "fieldmate/internal/domain"
	"fieldmate/internal/dto"
	"fieldmate/internal/response"
	"fieldmate/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles login, token reissue, logout and company sign-up.
type AuthHandler struct {
	members *service.MemberService
	tokens  *auth.TokenManager
	refresh *auth.RefreshStore
}

// NewAuthHandler returns a new AuthHandler.
func NewAuthHandler(members *service.MemberService, tokens *auth.TokenManager, refresh *auth.RefreshStore) *AuthHandler {
	return &AuthHandler{members: members, tokens: tokens, refresh: refresh}
}

// Login godoc
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  response.Body{result=dto.TokenResponse}
// @Failure      400   {object}  response.Body
// @Failure      401   {object}  response.Body
// @Router       /member/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	m, err := h.members.ValidateCredentials(c.Request.Context(), req.LoginID, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	tokens, err := h.issue(c, m)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, tokens)
}

// Reissue godoc
// @Summary      Rotate a refresh token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RefreshRequest  true  "Refresh token"
// @Success      200   {object}  response.Body{result=dto.TokenResponse}
// @Failure      401   {object}  response.Body
// @Router       /member/reissue [post]
func (h *AuthHandler) Reissue(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	memberID, err := h.refresh.Consume(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrRefreshNotFound) {
			response.Error(c, http.StatusUnauthorized, "refresh token expired")
			return
		}
		fail(c, err)
		return
	}
	m, err := h.members.ByID(c.Request.Context(), memberID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.Error(c, http.StatusUnauthorized, "member no longer exists")
			return
		}
		fail(c, err)
		return
	}
	tokens, err := h.issue(c, m)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, tokens)
}

// Logout godoc
// @Summary      Logout
// @Tags         auth
// @Accept       json
// @Param        body  body  dto.RefreshRequest  true  "Refresh token"
// @Success      200   {object}  response.Body
// @Router       /member/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.refresh.Delete(c.Request.Context(), req.RefreshToken); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil)
}

// RegisterCompany godoc
// @Summary      Register a company with its leader
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterCompanyRequest  true  "Company and leader"
// @Success      201   {object}  response.Body{result=dto.RegisterCompanyResponse}
// @Failure      400   {object}  response.Body
// @Failure      409   {object}  response.Body
// @Router       /company [post]
func (h *AuthHandler) RegisterCompany(c *gin.Context) {
	var req dto.RegisterCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	company, leader, err := h.members.RegisterCompany(c.Request.Context(), req.CompanyName, memberInput(req.Leader))
	if err != nil {
		fail(c, err)
		return
	}
	tokens, err := h.issue(c, leader)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, dto.RegisterCompanyResponse{
		Company:       dto.CompanyResponse{ID: company.ID, Name: company.Name, CreatedAt: company.CreatedAt},
		TokenResponse: tokens,
	})
}

func (h *AuthHandler) issue(c *gin.Context, m dom.Member) (dto.TokenResponse, error) {
	access, err := h.tokens.Issue(m)
	if err != nil {
		return dto.TokenResponse{}, err
	}
	refresh, err := h.refresh.Create(c.Request.Context(), m.ID)
	if err != nil {
		return dto.TokenResponse{}, err
	}
	return dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(h.tokens.AccessTTL().Seconds()),
		Member:       memberToResponse(m),
	}, nil
}

func memberInput(r dto.MemberRequest) service.MemberInput {
	return service.MemberInput{
		Name:        r.Name,
		LoginID:     r.LoginID,
		Password:    r.Password,
		Phone:       r.Phone,
		StaffRank:   r.StaffRank,
		StaffNumber: r.StaffNumber,
	}
}
