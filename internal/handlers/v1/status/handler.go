package status

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/carson-networks/budget-tracker/internal/logging"
)

// Pinger reports whether the data backend is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	Backend Pinger
}

// NewHandler creates a status handler. backend may be nil for backends that
// have nothing to ping.
func NewHandler(backend Pinger) Handler {
	return Handler{Backend: backend}
}

func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	}

	if h.Backend != nil {
		endTimer := logData.AddTiming("pingMs")
		err := h.Backend.PingContext(req.Context())
		endTimer()
		if err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return fmt.Errorf("status: backend unreachable: %w", err)
		}
	}

	w.WriteHeader(http.StatusOK)
	return nil
}
