package v1

import (
	"strconv"

	"vericv-backend/internal/delivery/http/middleware"
	"vericv-backend/internal/domain"
	"vericv-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// pathID parses a positive int64 path parameter.
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.Validation(name + " must be a positive integer")
	}
	return id, nil
}

func actor(c *gin.Context) (domain.Actor, error) {
	a, ok := middleware.CurrentActor(c)
	if !ok {
		return domain.Actor{}, apperror.Unauthenticated("User not authenticated")
	}
	return a, nil
}

func bindJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperror.Validation("Invalid request body")
	}
	return nil
}

func requestMeta(c *gin.Context) domain.RequestMeta {
	return domain.RequestMeta{
		IP:        c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
		RequestID: c.GetString(string(domain.KeyRequestID)),
	}
}
