package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/finpal/finpal-backend/internal/apperrors"
	"github.com/finpal/finpal-backend/internal/core/domain"
	portssvc "github.com/finpal/finpal-backend/internal/core/ports/services"
	"github.com/finpal/finpal-backend/internal/dto"
	"github.com/finpal/finpal-backend/internal/middleware"
	"github.com/finpal/finpal-backend/internal/platform/config"
	"github.com/gin-gonic/gin"
)

const oauthStateCookieName = "oauth_state"

// GoogleOAuthHandler handles Google OAuth related requests.
type GoogleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthSvcFacade
	userService        portssvc.UserSvcFacade
	tokenService       portssvc.TokenSvcFacade
	cfg                *config.Config
}

// NewGoogleOAuthHandler creates a new instance of GoogleOAuthHandler.
func NewGoogleOAuthHandler(services *portssvc.ServiceContainer, cfg *config.Config) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		googleOAuthService: services.GoogleOAuth,
		userService:        services.User,
		tokenService:       services.Token,
		cfg:                cfg,
	}
}

// registerGoogleOAuthRoutes registers the Google OAuth routes.
func registerGoogleOAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewGoogleOAuthHandler(services, cfg)

	google := rg.Group("/api/v1/auth/google")
	{
		google.GET("/login", h.LoginGoogle)
		google.GET("/callback", h.CallbackGoogle)
		google.POST("/exchange-code", h.ExchangeCodeGoogle)
	}
}

// LoginGoogle godoc
// @Summary Start Google OAuth login
// @Description Redirects the browser to Google's consent screen with a CSRF state cookie.
// @Tags oauth
// @Success 307
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/login [get]
func (h *GoogleOAuthHandler) LoginGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	state, err := h.googleOAuthService.GenerateStateString(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to generate OAuth state", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to start Google login"})
		return
	}

	// Short-lived state cookie checked again in the callback
	c.SetCookie(oauthStateCookieName, state, 300, "/api/v1/auth/google", "", h.cfg.IsProduction, true)
	c.Redirect(http.StatusTemporaryRedirect, h.googleOAuthService.GetGoogleLoginURL(ctx, state))
}

// CallbackGoogle godoc
// @Summary Google OAuth callback
// @Description Verifies the state and redirects to the frontend with the authorization code.
// @Tags oauth
// @Success 307
// @Failure 400 {object} ErrorResponse
// @Router /auth/google/callback [get]
func (h *GoogleOAuthHandler) CallbackGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	state := c.Query("state")
	storedState, err := c.Cookie(oauthStateCookieName)
	if err != nil || state == "" || state != storedState {
		logger.WarnContext(ctx, "OAuth state mismatch in Google callback")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid OAuth state"})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Authorization code missing"})
		return
	}

	// The SPA completes the exchange via /auth/google/exchange-code so the
	// app token never travels in a redirect URL.
	c.Redirect(http.StatusTemporaryRedirect, h.cfg.FrontendBaseURL+"/oauth/callback?code="+code+"&state="+state)
}

// ExchangeCodeGoogle handles the POST request from the frontend containing the
// authorization code from Google. It exchanges the code for Google tokens,
// validates the ID token, creates or retrieves the user, and returns an
// application JWT.
// @Summary Exchange authorization code for access token
// @Description Exchange authorization code for access token
// @Tags oauth
// @Accept  json
// @Produce  json
// @Param   code body dto.ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid authorization code"
// @Failure 500 {object} map[string]string "Failed to exchange authorization code for access token"
// @Router /auth/google/exchange-code [post]
func (h *GoogleOAuthHandler) ExchangeCodeGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.ErrorContext(ctx, "Failed to bind JSON for exchange code request", slog.String("error", err.Error()))
		appErr := apperrors.NewBadRequestError("Invalid request payload: " + err.Error())
		c.JSON(appErr.Code, appErr)
		return
	}

	if storedState, cookieErr := c.Cookie(oauthStateCookieName); cookieErr == nil && storedState != req.State {
		logger.WarnContext(ctx, "OAuth state mismatch in exchange code request")
		appErr := apperrors.NewBadRequestError("Invalid OAuth state.")
		c.JSON(appErr.Code, appErr)
		return
	}

	// 1. Exchange authorization code for Google tokens
	oauth2Token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		appErr := apperrors.NewGatewayTimeoutError("Failed to communicate with Google OAuth service.")
		if strings.Contains(strings.ToLower(err.Error()), "invalid_grant") || strings.Contains(strings.ToLower(err.Error()), "bad request") {
			appErr = apperrors.NewBadRequestError("Invalid or expired authorization code provided by Google.")
		}
		c.JSON(appErr.Code, appErr)
		return
	}

	var email, name, providerUserID string
	var emailVerified bool

	if idTokenString, ok := oauth2Token.Extra("id_token").(string); ok && idTokenString != "" {
		// 2. Validate Google's ID Token
		googleIDTokenPayload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, idTokenString)
		if err != nil {
			logger.ErrorContext(ctx, "Google ID token validation failed", slog.String("error", err.Error()))
			appErr := apperrors.NewUnauthorizedError("Invalid Google ID token: " + err.Error())
			c.JSON(appErr.Code, appErr)
			return
		}

		// 3. Extract user information from the validated payload
		email, _ = googleIDTokenPayload.Claims["email"].(string)
		name, _ = googleIDTokenPayload.Claims["name"].(string)
		emailVerified, _ = googleIDTokenPayload.Claims["email_verified"].(bool)
		providerUserID = googleIDTokenPayload.Subject
	} else {
		// No ID token in the response, fall back to the userinfo endpoint
		logger.WarnContext(ctx, "ID token not found in Google's token response, falling back to userinfo")
		userInfo, err := h.googleOAuthService.GetUserInfo(ctx, oauth2Token)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to fetch user info from Google", slog.String("error", err.Error()))
			appErr := apperrors.NewGatewayTimeoutError("Failed to retrieve user information from Google.")
			c.JSON(appErr.Code, appErr)
			return
		}
		email = userInfo.Email
		name = userInfo.Name
		emailVerified = userInfo.VerifiedEmail
		providerUserID = userInfo.ID
	}

	if email == "" || providerUserID == "" {
		logger.ErrorContext(ctx, "Essential claims (email or sub) missing from Google ID token payload")
		appErr := apperrors.NewInternalServerError("Essential user information missing from Google token.")
		c.JSON(appErr.Code, appErr)
		return
	}

	// 4. User lookup or creation
	finalUser, err := h.userService.CreateOAuthUser(
		ctx,
		name,
		email,
		string(domain.ProviderGoogle),
		providerUserID,
		emailVerified,
	)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create or get OAuth user from service", slog.String("error", err.Error()), slog.String("google_user_id", providerUserID))
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			c.JSON(appErr.Code, appErr)
		} else {
			defaultErr := apperrors.NewInternalServerError("Failed to process user authentication: " + err.Error())
			c.JSON(defaultErr.Code, defaultErr)
		}
		return
	}

	// 5. Generate the application access token
	accessToken, _, err := h.tokenService.GenerateAccessToken(ctx, finalUser)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to generate application access token", slog.String("error", err.Error()), slog.String("user_id", finalUser.UserID))
		appErr := apperrors.NewInternalServerError("Failed to generate access token.")
		c.JSON(appErr.Code, appErr)
		return
	}

	logger.InfoContext(ctx, "User authenticated via Google OAuth", slog.String("user_id", finalUser.UserID))
	c.JSON(http.StatusOK, dto.LoginResponse{Token: accessToken, User: dto.ToUserResponse(finalUser)})
}
