package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/salesops/sales_etl_app/internal/apperrors"
	"github.com/salesops/sales_etl_app/internal/core/ports"
	"github.com/salesops/sales_etl_app/internal/dto"
	"github.com/salesops/sales_etl_app/internal/middleware"
)

// ReportingHandler serves read-only sales-in-USD aggregations.
type ReportingHandler struct {
	reportingService ports.ReportingSvcFacade
}

// NewReportingHandler creates a new ReportingHandler.
func NewReportingHandler(reportingService ports.ReportingSvcFacade) *ReportingHandler {
	return &ReportingHandler{reportingService: reportingService}
}

// GetAffiliateCategoryTotals handles GET /reports/affiliate-category.
func (h *ReportingHandler) GetAffiliateCategoryTotals(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var query dto.ReportWindowQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date bounds: " + err.Error()})
		return
	}

	totals, err := h.reportingService.TotalsByAffiliateCategory(c.Request.Context(), query.ToFilter())
	if err != nil {
		h.renderError(c, logger, err, "failed to aggregate affiliate/category totals")
		return
	}

	c.JSON(http.StatusOK, dto.ToAffiliateCategoryResponse(totals))
}

// GetMonthlySummary handles GET /reports/monthly.
func (h *ReportingHandler) GetMonthlySummary(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var query dto.ReportWindowQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date bounds: " + err.Error()})
		return
	}

	totals, err := h.reportingService.MonthlySummary(c.Request.Context(), query.ToFilter())
	if err != nil {
		h.renderError(c, logger, err, "failed to aggregate monthly summary")
		return
	}

	c.JSON(http.StatusOK, dto.ToMonthlyResponse(totals))
}

func (h *ReportingHandler) renderError(c *gin.Context, logger *slog.Logger, err error, msg string) {
	if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	logger.Error(msg, slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
