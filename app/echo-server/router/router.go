package router

import (
	"net/http"

	"customerAgent/internal/rest"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler) {
	reco := api.Group("/recommendations")

	reco.GET("/:customer_id", handler.GetRecommendations)
	reco.POST("/process-browsing", handler.ProcessBrowsing)
	reco.POST("/process-purchase", handler.ProcessPurchase)
}

func SetupCustomerRoutes(api *echo.Group, handler *rest.CustomerHandler) {
	customers := api.Group("/customer")

	customers.POST("/create", handler.CreateCustomer)
	customers.POST("/add-address", handler.AddAddresses)
	customers.GET("/get-profile/:customer_id", handler.GetProfile)
	customers.POST("/update-behavior", handler.UpdateBehavior)
}

func SetupOpsRoutes(api *echo.Group) {
	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	api.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
