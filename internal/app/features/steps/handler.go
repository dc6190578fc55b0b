// internal/app/features/steps/handler.go
package steps

import (
	"encoding/json"
	"net/http"

	stepstore "github.com/dalemusser/stephub/internal/app/store/steps"
	"github.com/dalemusser/stephub/internal/app/system/httperr"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the step resource: listing, admin management, completion,
// and the per-user completion statistics.
type Handler struct {
	Steps *stepstore.Store
	Log   *zap.Logger
}

// NewHandler constructs a steps Handler over the given database.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Steps: stepstore.New(db),
		Log:   logger,
	}
}

// writeJSON renders v with the given status. Encoding failures after the
// header is written can only be logged.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Log.Error("response encode failed", zap.Error(err))
	}
}

// decodeJSON parses the request body into v, limiting its size.
func (h *Handler) decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	if err := dec.Decode(v); err != nil {
		return httperr.Validation("invalid JSON body")
	}
	return nil
}
