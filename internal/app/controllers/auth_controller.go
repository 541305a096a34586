// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/coachcenter/internal/app/models"
	"github.com/yigit/coachcenter/internal/app/models/dto"
	"github.com/yigit/coachcenter/internal/app/services"
	"github.com/yigit/coachcenter/internal/middleware"
	"github.com/yigit/coachcenter/internal/pkg/logger"
)

// AuthController handles administrator authentication
type AuthController struct {
	authService services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger.WithField("controller", "auth"),
	}
}

func newAuthResponse(result *services.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{
		Success: true,
		Token:   result.Token,
		Admin:   adminInfo(result.Admin),
	}
}

func adminInfo(admin *models.Admin) dto.AdminInfo {
	return dto.AdminInfo{ID: admin.ID, Email: admin.Email}
}

// Register handles administrator registration
// @Summary Register an administrator
// @Description Creates an administrator account and returns a signed token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Administrator credentials"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid email or password"
// @Failure 409 {object} dto.ErrorResponse "Admin already exists"
// @Failure 500 {object} dto.ErrorResponse "Server Error"
// @Router /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !middleware.BindJSON(c, &req) {
		return
	}

	result, err := ac.authService.Register(c.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	ac.logger.Info().Str("adminID", result.Admin.ID).Msg("Administrator registered")
	c.JSON(http.StatusCreated, newAuthResponse(result))
}

// Login handles administrator login
// @Summary Administrator login
// @Description Checks the credentials and returns a signed token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse "Missing email or password"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(c, &req) {
		return
	}

	result, err := ac.authService.Login(c.Request.Context(), req)
	if err != nil {
		ac.logger.Debug().Err(err).Msg("Login failed")
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, newAuthResponse(result))
}

// Me returns the authenticated administrator
// @Summary Current administrator
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.Admin}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Admin not found"
// @Router /auth/me [get]
func (ac *AuthController) Me(c *gin.Context) {
	current, ok := middleware.CurrentAdmin(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(middleware.NotAuthorizedMessage))
		return
	}

	admin := current.Admin
	if admin == nil {
		var err error
		admin, err = ac.authService.GetCurrent(c.Request.Context(), current.AdminID)
		if err != nil {
			middleware.HandleAPIError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, dto.NewDataResponse(admin))
}

// Logout acknowledges a logout. Tokens are stateless and expire on their own.
// @Summary Administrator logout
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Router /auth/logout [get]
func (ac *AuthController) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewMessageResponse("Successfully logged out"))
}
