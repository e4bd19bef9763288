package helpers

import (
	"net/http"

	"estatery-api-io/api/internal/auth"
	"estatery-api-io/api/pkg/util"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MyId returns the authenticated user, writing a 401 when there is none.
func MyId(c *gin.Context) (primitive.ObjectID, bool) {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		util.HandleError(c, http.StatusUnauthorized, err)
		return primitive.NilObjectID, false
	}
	return userID, true
}

// ParamAndMyId returns a route parameter together with the authenticated user.
func ParamAndMyId(c *gin.Context, param string) (string, primitive.ObjectID, bool) {
	userID, ok := MyId(c)
	if !ok {
		return "", primitive.NilObjectID, false
	}
	return c.Param(param), userID, true
}
