package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ligasur/arena-console/internal/middleware"
	"github.com/ligasur/arena-console/internal/models"
	"github.com/ligasur/arena-console/internal/service"
	appErrors "github.com/ligasur/arena-console/pkg/errors"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// actorFromContext derives the journal actor from the token claims.
func actorFromContext(c *gin.Context) *service.Actor {
	claims := claimsFromContext(c)
	if claims == nil {
		return nil
	}
	id, _ := strconv.ParseInt(claims.UserID, 10, 64)
	return &service.Actor{ID: id, Name: claims.FullName}
}

// pathID parses a positive int64 path parameter.
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "identificador inválido")
	}
	return id, nil
}
