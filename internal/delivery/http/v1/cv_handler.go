package v1

import (
	"net/http"

	"vericv-backend/internal/delivery/http/response"
	"vericv-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type CVHandler struct {
	cvUC domain.CVUsecase
}

func NewCVHandler(public, protected *gin.RouterGroup, cvUC domain.CVUsecase) {
	handler := &CVHandler{cvUC: cvUC}

	publicCV := public.Group("/cv")
	{
		publicCV.GET("/:cvId", handler.GetPublicCV)
		publicCV.GET("/user/:userId", handler.GetPublicCVByUser)
		publicCV.GET("/:cvId/education", handler.ListEducation)
		publicCV.GET("/:cvId/experience", handler.ListExperience)
	}

	cv := protected.Group("/cv")
	{
		cv.POST("", handler.CreateCV)
		cv.GET("/me", handler.GetMyCV)
		cv.PUT("/:cvId", handler.UpdateCV)
		cv.DELETE("/:cvId", handler.DeleteCV)

		cv.POST("/:cvId/education", handler.AddEducation)
		cv.PUT("/education/:educationId", handler.UpdateEducation)
		cv.DELETE("/education/:educationId", handler.DeleteEducation)

		cv.POST("/:cvId/experience", handler.AddExperience)
		cv.PUT("/experience/:experienceId", handler.UpdateExperience)
		cv.DELETE("/experience/:experienceId", handler.DeleteExperience)
	}
}

// CreateCV godoc
// @Summary      Create CV
// @Description  Create the CV of the logged-in user. A user can own one CV.
// @Tags         cv
// @Accept       json
// @Produce      json
// @Param        cv  body      domain.CVInput  true  "CV"
// @Success      201  {object}  response.Response{data=domain.CV}
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /cv [post]
// @Security     BearerAuth
func (h *CVHandler) CreateCV(c *gin.Context) {
	a, err := actor(c)
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.CVInput
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	cv, err := h.cvUC.CreateCV(c.Request.Context(), a.UserID, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "CV created", cv)
}

// GetMyCV godoc
// @Summary      Get my CV
// @Tags         cv
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.CVDetails}
// @Failure      404  {object}  response.Response
// @Router       /cv/me [get]
// @Security     BearerAuth
func (h *CVHandler) GetMyCV(c *gin.Context) {
	a, err := actor(c)
	if err != nil {
		c.Error(err)
		return
	}

	details, err := h.cvUC.GetMyCVDetails(c.Request.Context(), a.UserID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "CV", details)
}

// GetPublicCV godoc
// @Summary      Get public CV
// @Tags         cv
// @Produce      json
// @Param        cvId  path  int  true  "CV ID"
// @Success      200  {object}  response.Response{data=domain.CVDetails}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /cv/{cvId} [get]
func (h *CVHandler) GetPublicCV(c *gin.Context) {
	cvID, err := pathID(c, "cvId")
	if err != nil {
		c.Error(err)
		return
	}

	details, err := h.cvUC.GetPublicCV(c.Request.Context(), cvID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "CV", details)
}

// GetPublicCVByUser godoc
// @Summary      Get public CV of a user
// @Tags         cv
// @Produce      json
// @Param        userId  path  int  true  "User ID"
// @Success      200  {object}  response.Response{data=domain.CVDetails}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /cv/user/{userId} [get]
func (h *CVHandler) GetPublicCVByUser(c *gin.Context) {
	userID, err := pathID(c, "userId")
	if err != nil {
		c.Error(err)
		return
	}

	details, err := h.cvUC.GetPublicCVByUserID(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "CV", details)
}

// UpdateCV godoc
// @Summary      Update CV
// @Tags         cv
// @Accept       json
// @Produce      json
// @Param        cvId  path  int             true  "CV ID"
// @Param        cv    body  domain.CVInput  true  "CV"
// @Success      200  {object}  response.Response{data=domain.CV}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /cv/{cvId} [put]
// @Security     BearerAuth
func (h *CVHandler) UpdateCV(c *gin.Context) {
	a, err := actor(c)
	if err != nil {
		c.Error(err)
		return
	}
	cvID, err := pathID(c, "cvId")
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.CVInput
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	cv, err := h.cvUC.UpdateCV(c.Request.Context(), cvID, a.UserID, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "CV updated", cv)
}

// DeleteCV godoc
// @Summary      Delete CV
// @Description  Delete the CV together with all education and experience entries
// @Tags         cv
// @Produce      json
// @Param        cvId  path  int  true  "CV ID"
// @Success      200  {object}  response.Response{data=domain.CascadeDeleteResult}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /cv/{cvId} [delete]
// @Security     BearerAuth
func (h *CVHandler) DeleteCV(c *gin.Context) {
	a, err := actor(c)
	if err != nil {
		c.Error(err)
		return
	}
	cvID, err := pathID(c, "cvId")
	if err != nil {
		c.Error(err)
		return
	}

	result, err := h.cvUC.DeleteCV(c.Request.Context(), cvID, a.UserID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "CV deleted", result)
}

// ListEducation godoc
// @Summary      List education of a CV
// @Tags         cv
// @Produce      json
// @Param        cvId  path  int  true  "CV ID"
// @Success      200  {object}  response.Response{data=[]domain.Education}
// @Router       /cv/{cvId}/education [get]
func (h *CVHandler) ListEducation(c *gin.Context) {
	cvID, err := pathID(c, "cvId")
	if err != nil {
		c.Error(err)
		return
	}
	details, err := h.cvUC.GetPublicCV(c.Request.Context(), cvID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Education", details.Education)
}

// AddEducation godoc
// @Summary      Add education
// @Tags         cv
// @Accept       json
// @Produce      json
// @Param        cvId       path  int                    true  "CV ID"
// @Param        education  body  domain.EducationInput  true  "Education"
// @Success      201  {object}  response.Response{data=domain.Education}
// @Failure      403  {object}  response.Response
// @Router       /cv/{cvId}/education [post]
// @Security     BearerAuth
func (h *CVHandler) AddEducation(c *gin.Context) {
	a, err := actor(c)
	if err != nil {
		c.Error(err)
		return
	}
	cvID, err := pathID(c, "cvId")
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.EducationInput
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	edu, err := h.cvUC.AddEducation(c.Request.Context(), cvID, a.UserID, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Education added", edu)
}

// UpdateEducation godoc
// @Summary      Update education
// @Tags         cv
// @Accept       json
// @Produce      json
// @Param        educationId  path  int                    true  "Education ID"
// @Param        education    body  domain.EducationInput  true  "Education"
// @Success      200  {object}  response.Response{data=domain.Education}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /cv/education/{educationId} [put]
// @Security     BearerAuth
func (h *CVHandler) UpdateEducation(c *gin.Context) {
	a, err := actor(c)
	if err != nil {
		c.Error(err)
		return
	}
	id, err := pathID(c, "educationId")
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.EducationInput
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	edu, err := h.cvUC.UpdateEducation(c.Request.Context(), id, a.UserID, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Education updated", edu)
}

// DeleteEducation godoc
// @Summary      Delete education
// @Tags         cv
// @Produce      json
// @Param        educationId  path  int  true  "Education ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /cv/education/{educationId} [delete]
// @Security     BearerAuth
func (h *CVHandler) DeleteEducation(c *gin.Context) {
	a, err := actor(c)
	if err != nil {
		c.Error(err)
		return
	}
	id, err := pathID(c, "educationId")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.cvUC.DeleteEducation(c.Request.Context(), id, a.UserID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Education deleted", nil)
}

// ListExperience godoc
// @Summary      List experience of a CV
// @Tags         cv
// @Produce      json
// @Param        cvId  path  int  true  "CV ID"
// @Success      200  {object}  response.Response{data=[]domain.Experience}
// @Router       /cv/{cvId}/experience [get]
func (h *CVHandler) ListExperience(c *gin.Context) {
	cvID, err := pathID(c, "cvId")
	if err != nil {
		c.Error(err)
		return
	}
	details, err := h.cvUC.GetPublicCV(c.Request.Context(), cvID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Experience", details.Experience)
}

// AddExperience godoc
// @Summary      Add experience
// @Tags         cv
// @Accept       json
// @Produce      json
// @Param        cvId        path  int                     true  "CV ID"
// @Param        experience  body  domain.ExperienceInput  true  "Experience"
// @Success      201  {object}  response.Response{data=domain.Experience}
// @Failure      403  {object}  response.Response
// @Router       /cv/{cvId}/experience [post]
// @Security     BearerAuth
func (h *CVHandler) AddExperience(c *gin.Context) {
	a, err := actor(c)
	if err != nil {
		c.Error(err)
		return
	}
	cvID, err := pathID(c, "cvId")
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.ExperienceInput
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	exp, err := h.cvUC.AddExperience(c.Request.Context(), cvID, a.UserID, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Experience added", exp)
}

// UpdateExperience godoc
// @Summary      Update experience
// @Tags         cv
// @Accept       json
// @Produce      json
// @Param        experienceId  path  int                     true  "Experience ID"
// @Param        experience    body  domain.ExperienceInput  true  "Experience"
// @Success      200  {object}  response.Response{data=domain.Experience}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /cv/experience/{experienceId} [put]
// @Security     BearerAuth
func (h *CVHandler) UpdateExperience(c *gin.Context) {
	a, err := actor(c)
	if err != nil {
		c.Error(err)
		return
	}
	id, err := pathID(c, "experienceId")
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.ExperienceInput
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	exp, err := h.cvUC.UpdateExperience(c.Request.Context(), id, a.UserID, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Experience updated", exp)
}

// DeleteExperience godoc
// @Summary      Delete experience
// @Tags         cv
// @Produce      json
// @Param        experienceId  path  int  true  "Experience ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /cv/experience/{experienceId} [delete]
// @Security     BearerAuth
func (h *CVHandler) DeleteExperience(c *gin.Context) {
	a, err := actor(c)
	if err != nil {
		c.Error(err)
		return
	}
	id, err := pathID(c, "experienceId")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.cvUC.DeleteExperience(c.Request.Context(), id, a.UserID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Experience deleted", nil)
}
