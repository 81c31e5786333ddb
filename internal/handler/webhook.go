package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/supplyline/catsync/internal/domain"
	"github.com/supplyline/catsync/internal/logger"
	"github.com/supplyline/catsync/internal/sync"
)

// WebhookKeyHeader carries the supplier's shared customer key.
const WebhookKeyHeader = "Apikey"

// HandleSupplierWebhook accepts supplier-pushed product updates. The shared
// customer key is compared case-insensitively; unauthorized requests are
// rejected before any processing.
// @Summary Supplier product webhook
// @Tags webhook
// @Accept json
// @Produce json
// @Success 200 {object} DataResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/webhook/product [post]
func HandleSupplierWebhook(service *sync.Service, customerKey func() string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		expected := customerKey()
		provided := r.Header.Get(WebhookKeyHeader)
		if expected == "" || !strings.EqualFold(provided, expected) {
			logger.FromContext(r.Context()).Warn("webhook rejected",
				"remote_addr", r.RemoteAddr,
				"has_key", provided != "",
			)
			respondError(w, http.StatusUnauthorized, ErrMsgWebhookUnauthorized)
			return
		}

		var remote domain.RemoteProduct
		if err := json.NewDecoder(r.Body).Decode(&remote); err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}
		if remote.ProductName == "" {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		result, err := service.SyncProduct(r.Context(), &remote)
		if err != nil {
			status, msg := mapServiceErrorToStatus(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Message: MsgProductAccepted, Data: result})
	}
}
