package v1

import (
	"net/http"

	"vericv-backend/internal/delivery/http/middleware"
	"vericv-backend/internal/delivery/http/response"
	"vericv-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	verificationUC domain.VerificationUsecase
}

func NewAdminHandler(protected *gin.RouterGroup, verificationUC domain.VerificationUsecase) {
	handler := &AdminHandler{verificationUC: verificationUC}

	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRole(domain.RoleAdmin))
	{
		admin.PUT("/users/:userId/verification", handler.VerifyUser)
		admin.PUT("/education/:educationId/verification", handler.VerifyEducation)
		admin.PUT("/experience/:experienceId/verification", handler.VerifyExperience)
	}
}

type verificationRequest struct {
	Verified *bool `json:"verified" binding:"required"`
}

func (h *AdminHandler) bind(c *gin.Context) (domain.Actor, bool, error) {
	a, err := actor(c)
	if err != nil {
		return a, false, err
	}
	var req verificationRequest
	if err := bindJSON(c, &req); err != nil {
		return a, false, err
	}
	return a, *req.Verified, nil
}

// VerifyUser godoc
// @Summary      Set user verification
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        userId  path  int                  true  "User ID"
// @Param        body    body  verificationRequest  true  "Verification flag"
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/users/{userId}/verification [put]
// @Security     BearerAuth
func (h *AdminHandler) VerifyUser(c *gin.Context) {
	id, err := pathID(c, "userId")
	if err != nil {
		c.Error(err)
		return
	}
	a, verified, err := h.bind(c)
	if err != nil {
		c.Error(err)
		return
	}

	user, err := h.verificationUC.VerifyUser(c.Request.Context(), a, id, verified)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User verification updated", user)
}

// VerifyEducation godoc
// @Summary      Set education verification
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        educationId  path  int                  true  "Education ID"
// @Param        body         body  verificationRequest  true  "Verification flag"
// @Success      200  {object}  response.Response{data=domain.Education}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/education/{educationId}/verification [put]
// @Security     BearerAuth
func (h *AdminHandler) VerifyEducation(c *gin.Context) {
	id, err := pathID(c, "educationId")
	if err != nil {
		c.Error(err)
		return
	}
	a, verified, err := h.bind(c)
	if err != nil {
		c.Error(err)
		return
	}

	edu, err := h.verificationUC.VerifyEducation(c.Request.Context(), a, id, verified)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Education verification updated", edu)
}

// VerifyExperience godoc
// @Summary      Set experience verification
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        experienceId  path  int                  true  "Experience ID"
// @Param        body          body  verificationRequest  true  "Verification flag"
// @Success      200  {object}  response.Response{data=domain.Experience}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/experience/{experienceId}/verification [put]
// @Security     BearerAuth
func (h *AdminHandler) VerifyExperience(c *gin.Context) {
	id, err := pathID(c, "experienceId")
	if err != nil {
		c.Error(err)
		return
	}
	a, verified, err := h.bind(c)
	if err != nil {
		c.Error(err)
		return
	}

	exp, err := h.verificationUC.VerifyExperience(c.Request.Context(), a, id, verified)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Experience verification updated", exp)
}
