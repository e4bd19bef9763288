package routers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"estatery-api-io/api/internal/container"
	"estatery-api-io/api/pkg/controllers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	sc := &container.ServiceContainer{
		AuthController:    controllers.InitAuthController(nil, nil, nil, false),
		UserController:    controllers.InitUserController(nil, nil, nil, false),
		ListingController: controllers.InitListingController(nil),
		UploadController:  controllers.InitUploadController(nil),
	}

	r := gin.New()
	denyAll := func(c *gin.Context) {
		c.AbortWithStatus(http.StatusUnauthorized)
	}
	RegisterRoutes(r.Group("/api"), sc, denyAll)
	return r
}

func TestRegisterRoutes_Table(t *testing.T) {
	registered := map[string]bool{}
	for _, route := range testEngine().Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	for _, want := range []string{
		"GET /api/ping",
		"POST /api/auth/signup",
		"POST /api/auth/signin",
		"POST /api/auth/google",
		"GET /api/auth/signout",
		"GET /api/user/:id",
		"POST /api/user/update/:id",
		"DELETE /api/user/delete/:id",
		"GET /api/user/listings/:id",
		"POST /api/listing/create",
		"DELETE /api/listing/delete/:id",
		"POST /api/listing/update/:id",
		"GET /api/listing/get/:id",
		"GET /api/listing/get",
		"POST /api/upload/images",
		"POST /api/upload/avatar",
	} {
		assert.True(t, registered[want], want)
	}
}

func TestRegisterRoutes_PrivateRoutesRequireAuth(t *testing.T) {
	r := testEngine()

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/auth/signout"},
		{http.MethodGet, "/api/user/abc"},
		{http.MethodPost, "/api/user/update/abc"},
		{http.MethodDelete, "/api/user/delete/abc"},
		{http.MethodGet, "/api/user/listings/abc"},
		{http.MethodPost, "/api/listing/create"},
		{http.MethodDelete, "/api/listing/delete/abc"},
		{http.MethodPost, "/api/listing/update/abc"},
		{http.MethodPost, "/api/upload/images"},
		{http.MethodPost, "/api/upload/avatar"},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(route.method, route.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, route.path)
	}
}
