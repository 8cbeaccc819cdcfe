package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"ecommerce_dataset/internal/domain/report"
	"ecommerce_dataset/internal/domain/repository"
	"ecommerce_dataset/pkg/logger"
)

const maxLimit = 100

// Limits holds the defaults used when a request carries no limit parameter.
type Limits struct {
	RecentOrders int
	TopProducts  int
}

type ReportHandler struct {
	reader repository.ReportReader
	limits Limits
	log    logger.Logger
}

func NewReportHandler(reader repository.ReportReader, limits Limits, log logger.Logger) *ReportHandler {
	if limits.RecentOrders <= 0 {
		limits.RecentOrders = 10
	}
	if limits.TopProducts <= 0 {
		limits.TopProducts = 5
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &ReportHandler{reader: reader, limits: limits, log: log}
}

type revenueResponse struct {
	TotalRevenue decimal.Decimal         `json:"total_revenue"`
	Monthly      []report.MonthlyRevenue `json:"monthly"`
}

func (h *ReportHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *ReportHandler) Tables(c *gin.Context) {
	respond(c, h, "table counts", h.reader.TableCounts)
}

func (h *ReportHandler) CustomersByCity(c *gin.Context) {
	respond(c, h, "customers by city", h.reader.CustomersByCity)
}

func (h *ReportHandler) ProductMargins(c *gin.Context) {
	respond(c, h, "product margins", h.reader.ProductMargins)
}

func (h *ReportHandler) CategoryRevenue(c *gin.Context) {
	respond(c, h, "category revenue", h.reader.CategoryRevenue)
}

func (h *ReportHandler) RecentOrders(c *gin.Context) {
	limit, err := parseLimit(c, h.limits.RecentOrders)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respond(c, h, "recent orders", func(ctx context.Context) ([]report.RecentOrder, error) {
		return h.reader.RecentOrders(ctx, limit)
	})
}

func (h *ReportHandler) TopProducts(c *gin.Context) {
	limit, err := parseLimit(c, h.limits.TopProducts)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respond(c, h, "top products", func(ctx context.Context) ([]report.ProductSales, error) {
		return h.reader.TopProducts(ctx, limit)
	})
}

func (h *ReportHandler) Revenue(c *gin.Context) {
	ctx := c.Request.Context()
	total, err := h.reader.TotalRevenue(ctx)
	if err != nil {
		h.fail(c, "total revenue", err)
		return
	}
	monthly, err := h.reader.MonthlyRevenue(ctx)
	if err != nil {
		h.fail(c, "monthly revenue", err)
		return
	}
	c.JSON(http.StatusOK, revenueResponse{TotalRevenue: total, Monthly: emptyIfNil(monthly)})
}

func (h *ReportHandler) fail(c *gin.Context, what string, err error) {
	h.log.Error("report query failed", logger.String("report", what), logger.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("%s: %v", what, err)})
}

func respond[T any](c *gin.Context, h *ReportHandler, what string, query func(context.Context) ([]T, error)) {
	rows, err := query(c.Request.Context())
	if err != nil {
		h.fail(c, what, err)
		return
	}
	c.JSON(http.StatusOK, emptyIfNil(rows))
}

// parseLimit reads ?limit=N, which must lie in 1..maxLimit.
func parseLimit(c *gin.Context, def int) (int, error) {
	raw, ok := c.GetQuery("limit")
	if !ok || raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > maxLimit {
		return 0, fmt.Errorf("limit must be an integer between 1 and %d", maxLimit)
	}
	return n, nil
}

func emptyIfNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}
