package router

import (
	"github.com/gin-gonic/gin"

	"ecommerce_dataset/internal/interfaces/http/handler"
)

func RegisterRoutes(r *gin.Engine, reportHandler *handler.ReportHandler) {
	r.GET("/healthz", reportHandler.Health)

	reports := r.Group("/api/v1/reports")
	{
		reports.GET("/tables", reportHandler.Tables)
		reports.GET("/customers-by-city", reportHandler.CustomersByCity)
		reports.GET("/product-margins", reportHandler.ProductMargins)
		reports.GET("/recent-orders", reportHandler.RecentOrders)
		reports.GET("/revenue", reportHandler.Revenue)
		reports.GET("/top-products", reportHandler.TopProducts)
		reports.GET("/category-revenue", reportHandler.CategoryRevenue)
	}
}
