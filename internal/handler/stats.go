package handler

import (
	"net/http"

	"github.com/supplyline/catsync/internal/domain"
	"github.com/supplyline/catsync/internal/logger"
	"github.com/supplyline/catsync/internal/reporter"
)

// HandleGetStats serves aggregated sync run statistics.
// @Summary Sync statistics
// @Description Aggregated run stats for the requested range (daily, weekly, monthly)
// @Tags stats
// @Produce json
// @Param range query string false "daily|weekly|monthly" default(daily)
// @Success 200 {object} DataResponse
// @Router /api/v1/stats [get]
func HandleGetStats(rep *reporter.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		statRange := domain.ParseStatRange(r.URL.Query().Get("range"))

		buckets, err := rep.GetStats(r.Context(), statRange)
		if err != nil {
			logger.FromContext(r.Context()).Error("stats query failed", "error", err.Error())
			respondError(w, http.StatusInternalServerError, ErrMsgGetStatsFailed)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: buckets})
	}
}
