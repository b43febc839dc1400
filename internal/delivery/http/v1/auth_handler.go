package v1

import (
	"net/http"

	"vericv-backend/config"
	"vericv-backend/internal/delivery/http/response"
	"vericv-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
	config *config.Config
}

func NewAuthHandler(public, protected *gin.RouterGroup, authUC domain.AuthUsecase, cfg *config.Config, registerLimit, loginLimit gin.HandlerFunc) {
	handler := &AuthHandler{authUC: authUC, config: cfg}

	publicAuth := public.Group("/auth")
	{
		publicAuth.POST("/register", registerLimit, handler.Register)
		publicAuth.POST("/login", loginLimit, handler.Login)
	}

	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.GET("/me", handler.Me)
	}
}

// Register godoc
// @Summary      User Registration
// @Description  Register a new account and receive a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        register  body      domain.RegisterInput  true  "Registration details"
// @Success      201  {object}  response.Response{data=domain.AuthResult}
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req domain.RegisterInput
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	result, err := h.authUC.Register(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	h.setAuthCookie(c, result)
	response.Success(c, http.StatusCreated, "Registration successful", result)
}

// Login godoc
// @Summary      User Login
// @Description  Exchange email and password for a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login  body      domain.LoginInput  true  "Credentials"
// @Success      200  {object}  response.Response{data=domain.AuthResult}
// @Failure      401  {object}  response.Response
// @Failure      429  {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginInput
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	result, err := h.authUC.Login(c.Request.Context(), req, requestMeta(c))
	if err != nil {
		c.Error(err)
		return
	}

	h.setAuthCookie(c, result)
	response.Success(c, http.StatusOK, "Login successful", result)
}

// Me godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      401  {object}  response.Response
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	a, err := actor(c)
	if err != nil {
		c.Error(err)
		return
	}

	user, err := h.authUC.GetCurrentUser(c.Request.Context(), a.UserID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Current user", user)
}

func (h *AuthHandler) setAuthCookie(c *gin.Context, result *domain.AuthResult) {
	secure := h.config != nil && h.config.IsProduction()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("auth_token", result.Token, int(result.ExpiresIn), "/", "", secure, true)
}
