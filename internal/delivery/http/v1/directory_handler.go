package v1

import (
	"net/http"

	"vericv-backend/internal/delivery/http/response"
	"vericv-backend/internal/domain"
	"vericv-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type DirectoryHandler struct {
	directoryUC domain.DirectoryUsecase
}

func NewDirectoryHandler(public, protected *gin.RouterGroup, directoryUC domain.DirectoryUsecase) {
	handler := &DirectoryHandler{directoryUC: directoryUC}

	publicDir := public.Group("/directory")
	{
		publicDir.GET("/search", handler.Search)
		publicDir.GET("/profile/:userId", handler.GetPublicProfile)
		publicDir.GET("/filter/badge/:badge", handler.FilterByBadge)
	}

	me := protected.Group("/directory/me")
	{
		me.GET("", handler.GetMyEntry)
		me.PUT("", handler.UpdateHeadlineAndLocation)
		me.POST("/join", handler.Join)
		me.DELETE("/leave", handler.Leave)
		me.PUT("/visibility", handler.UpdateVisibility)
		me.POST("/refresh", handler.Refresh)
	}
}

type visibilityRequest struct {
	IsVisible *bool `json:"isVisible" binding:"required"`
}

// Search godoc
// @Summary      Search the directory
// @Description  Case-insensitive substring search over name, headline and profile text. An empty query lists every visible entry.
// @Tags         directory
// @Produce      json
// @Param        q  query  string  false  "Keyword"
// @Success      200  {object}  response.Response{data=[]domain.DirectoryEntry}
// @Router       /directory/search [get]
func (h *DirectoryHandler) Search(c *gin.Context) {
	entries, err := h.directoryUC.SearchDirectory(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Directory entries", entries)
}

// GetPublicProfile godoc
// @Summary      Get a directory profile
// @Description  Returns a visible entry and counts the view. Hidden entries are not found.
// @Tags         directory
// @Produce      json
// @Param        userId  path  int  true  "User ID"
// @Success      200  {object}  response.Response{data=domain.DirectoryEntry}
// @Failure      404  {object}  response.Response
// @Router       /directory/profile/{userId} [get]
func (h *DirectoryHandler) GetPublicProfile(c *gin.Context) {
	userID, err := pathID(c, "userId")
	if err != nil {
		c.Error(err)
		return
	}

	entry, err := h.directoryUC.GetPublicProfile(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Directory entry", entry)
}

// FilterByBadge godoc
// @Summary      Filter the directory by badge
// @Tags         directory
// @Produce      json
// @Param        badge  path  string  true  "NONE, BRONZE, SILVER, GOLD or PLATINUM"
// @Success      200  {object}  response.Response{data=[]domain.DirectoryEntry}
// @Failure      400  {object}  response.Response
// @Router       /directory/filter/badge/{badge} [get]
func (h *DirectoryHandler) FilterByBadge(c *gin.Context) {
	badge, err := domain.ParseVerificationBadge(c.Param("badge"))
	if err != nil {
		c.Error(apperror.Validation("badge must be one of NONE, BRONZE, SILVER, GOLD, PLATINUM"))
		return
	}

	entries, err := h.directoryUC.GetByVerificationBadge(c.Request.Context(), badge)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Directory entries", entries)
}

// GetMyEntry godoc
// @Summary      Get my directory entry
// @Tags         directory
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.DirectoryEntry}
// @Failure      404  {object}  response.Response
// @Router       /directory/me [get]
// @Security     BearerAuth
func (h *DirectoryHandler) GetMyEntry(c *gin.Context) {
	a, err := actor(c)
	if err != nil {
		c.Error(err)
		return
	}

	entry, err := h.directoryUC.GetMyEntry(c.Request.Context(), a.UserID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Directory entry", entry)
}

// Join godoc
// @Summary      Join the directory
// @Tags         directory
// @Produce      json
// @Success      201  {object}  response.Response{data=domain.DirectoryEntry}
// @Failure      409  {object}  response.Response
// @Router       /directory/me/join [post]
// @Security     BearerAuth
func (h *DirectoryHandler) Join(c *gin.Context) {
	a, err := actor(c)
	if err != nil {
		c.Error(err)
		return
	}

	entry, err := h.directoryUC.AddToDirectory(c.Request.Context(), a.UserID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Joined directory", entry)
}

// Leave godoc
// @Summary      Leave the directory
// @Tags         directory
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /directory/me/leave [delete]
// @Security     BearerAuth
func (h *DirectoryHandler) Leave(c *gin.Context) {
	a, err := actor(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.directoryUC.RemoveFromDirectory(c.Request.Context(), a.UserID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Left directory", nil)
}

// UpdateHeadlineAndLocation godoc
// @Summary      Update headline and location
// @Description  Omitted fields are left unchanged
// @Tags         directory
// @Accept       json
// @Produce      json
// @Param        entry  body  domain.HeadlineLocationInput  true  "Fields"
// @Success      200  {object}  response.Response{data=domain.DirectoryEntry}
// @Failure      404  {object}  response.Response
// @Router       /directory/me [put]
// @Security     BearerAuth
func (h *DirectoryHandler) UpdateHeadlineAndLocation(c *gin.Context) {
	a, err := actor(c)
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.HeadlineLocationInput
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	entry, err := h.directoryUC.UpdateHeadlineAndLocation(c.Request.Context(), a.UserID, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Directory entry updated", entry)
}

// UpdateVisibility godoc
// @Summary      Show or hide my directory entry
// @Tags         directory
// @Accept       json
// @Produce      json
// @Param        visibility  body  visibilityRequest  true  "Visibility"
// @Success      200  {object}  response.Response{data=domain.DirectoryEntry}
// @Failure      404  {object}  response.Response
// @Router       /directory/me/visibility [put]
// @Security     BearerAuth
func (h *DirectoryHandler) UpdateVisibility(c *gin.Context) {
	a, err := actor(c)
	if err != nil {
		c.Error(err)
		return
	}
	var req visibilityRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	entry, err := h.directoryUC.UpdateVisibility(c.Request.Context(), a.UserID, *req.IsVisible)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Visibility updated", entry)
}

// Refresh godoc
// @Summary      Refresh my directory entry
// @Description  Recomputes name, badge and searchable text from the current profile
// @Tags         directory
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.DirectoryEntry}
// @Failure      404  {object}  response.Response
// @Router       /directory/me/refresh [post]
// @Security     BearerAuth
func (h *DirectoryHandler) Refresh(c *gin.Context) {
	a, err := actor(c)
	if err != nil {
		c.Error(err)
		return
	}

	entry, err := h.directoryUC.UpdateDirectoryEntry(c.Request.Context(), a.UserID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Directory entry refreshed", entry)
}
