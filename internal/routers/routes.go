package routers

import (
	"estatery-api-io/api/internal/auth"
	"estatery-api-io/api/internal/container"
	"estatery-api-io/api/internal/middleware"
	"estatery-api-io/api/pkg/controllers"

	"github.com/gin-gonic/gin"
)

// InitRoute creates the gin engine with every API route registered.
func InitRoute(sc *container.ServiceContainer) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(), middleware.CorsMiddleware())

	api := router.Group("/api", middleware.RateLimiter(sc.Redis, sc.Config.RateLimit))
	RegisterRoutes(api, sc, auth.Auth(sc.Tokens, sc.Blacklist))

	return router
}

// RegisterRoutes mounts the API on group, protecting private routes with requireAuth.
func RegisterRoutes(api *gin.RouterGroup, sc *container.ServiceContainer, requireAuth gin.HandlerFunc) {
	api.GET("/ping", controllers.Ping)

	authRoutes(api, sc, requireAuth)
	userRoutes(api, sc, requireAuth)
	listingRoutes(api, sc, requireAuth)
	uploadRoutes(api, sc, requireAuth)
}

func authRoutes(api *gin.RouterGroup, sc *container.ServiceContainer, requireAuth gin.HandlerFunc) {
	group := api.Group("/auth")

	group.POST("/signup", sc.AuthController.Signup())
	group.POST("/signin", sc.AuthController.Signin())
	group.POST("/google", sc.AuthController.GoogleSignin())
	group.GET("/signout", requireAuth, sc.AuthController.Signout())
}

func userRoutes(api *gin.RouterGroup, sc *container.ServiceContainer, requireAuth gin.HandlerFunc) {
	group := api.Group("/user", requireAuth)

	group.POST("/update/:id", sc.UserController.UpdateUser())
	group.DELETE("/delete/:id", sc.UserController.DeleteUser())
	group.GET("/listings/:id", sc.UserController.GetUserListings())
	group.GET("/:id", sc.UserController.GetUser())
}

func listingRoutes(api *gin.RouterGroup, sc *container.ServiceContainer, requireAuth gin.HandlerFunc) {
	group := api.Group("/listing")

	group.GET("/get/:id", sc.ListingController.GetListing())
	group.GET("/get", sc.ListingController.GetListings())

	secured := group.Group("", requireAuth)
	secured.POST("/create", sc.ListingController.CreateListing())
	secured.DELETE("/delete/:id", sc.ListingController.DeleteListing())
	secured.POST("/update/:id", sc.ListingController.UpdateListing())
}

func uploadRoutes(api *gin.RouterGroup, sc *container.ServiceContainer, requireAuth gin.HandlerFunc) {
	group := api.Group("/upload", requireAuth)

	group.POST("/images", sc.UploadController.UploadImages())
	group.POST("/avatar", sc.UploadController.UploadAvatar())
}
