package handlers

import (
	"log/slog"
	"net/http"

	"github.com/dlcastillo/storefront/internal/api/middleware"
	service "github.com/dlcastillo/storefront/internal/services"
	"github.com/dlcastillo/storefront/internal/utils/response"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) SalesStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		stats, err := h.reportService.SalesStats(r.Context())

		if err != nil {
			logger.Error("Failed to build sales report", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, stats)
	}
}
