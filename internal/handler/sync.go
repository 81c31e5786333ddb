package handler

import (
	"encoding/json"
	"net/http"

	"github.com/supplyline/catsync/internal/sync"
)

// RunSyncRequest selects which passes a manual sync performs. Both default
// to true when the body is empty.
type RunSyncRequest struct {
	SyncCategories *bool `json:"sync_categories"`
	SyncProducts   *bool `json:"sync_products"`
}

// HandleRunSync triggers a sync run and surfaces the orchestrator's summary
// unchanged.
// @Summary Trigger a sync run
// @Description Runs category and/or product sync; rejected with 409 when a run is active
// @Tags sync
// @Accept json
// @Produce json
// @Success 200 {object} DataResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/sync/run [post]
func HandleRunSync(service *sync.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := RunSyncRequest{}
		if r.ContentLength > 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
				return
			}
		}

		categories := req.SyncCategories == nil || *req.SyncCategories
		products := req.SyncProducts == nil || *req.SyncProducts

		summary, err := service.RunManualSync(r.Context(), categories, products)
		if err != nil {
			status, msg := mapServiceErrorToStatus(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Message: MsgSyncCompleted, Data: summary})
	}
}

// HandleSyncStatus reports lock state and the last-run markers.
// @Summary Sync status
// @Tags sync
// @Produce json
// @Success 200 {object} sync.Status
// @Router /api/v1/sync/status [get]
func HandleSyncStatus(service *sync.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, service.GetStatus(r.Context()))
	}
}

// HandleClearLock force-releases a stuck run lock.
// @Summary Clear the sync run lock
// @Tags sync
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /api/v1/sync/clear-lock [post]
func HandleClearLock(service *sync.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		service.ClearLock()
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgLockCleared})
	}
}
