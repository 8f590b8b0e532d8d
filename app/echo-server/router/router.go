package router

import (
	"myTerpMarket/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.POST("/login", handler.Login)

	users.POST("/register", handler.Register, authRequired, adminOnly)
	users.GET("", handler.GetAllUsers, authRequired, adminOnly)
	users.GET("/:id", handler.GetUserByID, authRequired, adminOnly)
	users.DELETE("/:id", handler.DeleteUser, authRequired, adminOnly)
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	products := api.Group("/products")

	products.GET("", handler.GetAllProducts, authRequired)
	products.GET("/:id", handler.GetProductByID, authRequired)
	products.GET("/:id/variants", handler.GetVariants, authRequired)
	products.POST("", handler.CreateProduct, authRequired, adminOnly)
	products.PUT("/:id", handler.UpdateProduct, authRequired, adminOnly)
	products.DELETE("/:id", handler.DeleteProduct, authRequired, adminOnly)
	products.POST("/:id/variants", handler.AddVariant, authRequired, adminOnly)
	products.PUT("/variants/:variant_id/inventory", handler.SetInventory, authRequired)
}

func SetupRecommendRoutes(api *echo.Group, handler *rest.RecommendHandler, authRequired echo.MiddlewareFunc) {
	reco := api.Group("/recommendations")

	// kiosk endpoint is anonymous, everything else needs a staff token
	reco.POST("/kiosk", handler.KioskRecommend)
	reco.POST("", handler.Recommend, authRequired)
}

func SetupVibeMapRoutes(api *echo.Group, handler *rest.VibeMapHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	vibes := api.Group("/admin/vibe-mappings", authRequired, adminOnly)

	vibes.GET("", handler.GetAllMappings)
	vibes.POST("", handler.CreateMapping)
	vibes.PUT("/:id", handler.UpdateMapping)
	vibes.DELETE("/:id", handler.DeleteMapping)
}

func SetupSearchLogRoutes(api *echo.Group, handler *rest.SearchLogHandler, authRequired echo.MiddlewareFunc) {
	searches := api.Group("/searches", authRequired)

	searches.GET("/recent", handler.GetRecentSearches)
}
