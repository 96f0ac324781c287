package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/order-intake/internal/service"
)

// MaxOrderBodyBytes caps the size of an order document
const MaxOrderBodyBytes = 1 << 20

// ReferenceHeader carries the reference of an accepted order
const ReferenceHeader = "X-Order-Reference"

// OrderSubmitter accepts decoded order documents
type OrderSubmitter interface {
	Submit(ctx context.Context, raw any) (*service.Receipt, error)
}

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orders OrderSubmitter
	log    *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders OrderSubmitter, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		log:    log,
	}
}

// SubmitOrder handles /api/order. Only POST is accepted.
func (h *OrderHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		WriteError(w, http.StatusMethodNotAllowed, "Method Not Allowed", h.log)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxOrderBodyBytes))
	if err != nil {
		h.log.Error("failed to read order request", "error", err)
		WriteError(w, http.StatusInternalServerError, "Server error.", h.log)
		return
	}

	// an empty body is an empty document
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	// numbers stay json.Number so out-of-range values reach the validator
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw any
	err = dec.Decode(&raw)
	if err == nil && dec.More() {
		err = errors.New("unexpected data after order document")
	}
	if err != nil {
		h.log.Error("failed to decode order request", "error", err)
		WriteError(w, http.StatusInternalServerError, "Server error.", h.log)
		return
	}

	receipt, err := h.orders.Submit(r.Context(), raw)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			h.log.Info("order rejected", "reason", verr.Result.Reason.String())
			WriteError(w, http.StatusBadRequest, verr.Result.Reason.Message(), h.log)
		case errors.Is(err, service.ErrEmailNotConfigured):
			h.log.Error("order not processed", "error", err)
			WriteError(w, http.StatusInternalServerError, "Email service not configured.", h.log)
		default:
			h.log.Error("failed to submit order", "error", err)
			WriteError(w, http.StatusInternalServerError, "Server error.", h.log)
		}
		return
	}

	w.Header().Set(ReferenceHeader, receipt.Reference)
	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true}, h.log)
}
