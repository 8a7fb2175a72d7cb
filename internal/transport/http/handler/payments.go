package handler

import (
	"log/slog"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"

	"github.com/shop-assistant-api/internal/application/payment"
	"github.com/shop-assistant-api/internal/domain"
	"github.com/shop-assistant-api/internal/dto"
	"github.com/shop-assistant-api/internal/mapper"
	"github.com/shop-assistant-api/internal/transport/http/middleware"
)

type PaymentHandler struct {
	*Responder
	svc payment.Service
}

func NewPaymentHandler(svc payment.Service, rs *Responder) *PaymentHandler {
	return &PaymentHandler{Responder: rs, svc: svc}
}

// Credit is the administrator top-up.
func (h *PaymentHandler) Credit(w http.ResponseWriter, r *http.Request) {
	var in dto.PaymentInput
	if err := decode(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	p, err := h.svc.Credit(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.mapper.ToPaymentResponse(p))
}

func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	ps, err := h.svc.List(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newList(mapper.List(ps, h.mapper.ToPaymentResponse)))
}

func (h *PaymentHandler) CreateVNPay(w http.ResponseWriter, r *http.Request) {
	var in dto.VNPayCreateInput
	if err := decode(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	p, payURL, err := h.svc.CreateVNPay(r.Context(), middleware.UserID(r.Context()), in, middleware.ClientIP(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.VNPayCreateResponse{PaymentID: p.ID, TxnRef: p.TxnRef, PaymentURL: payURL})
}

// VNPayReturn receives the browser redirect from the gateway.
func (h *PaymentHandler) VNPayReturn(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.HandleVNPayReturn(r.Context(), r.URL.Query())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.mapper.ToPaymentResponse(p))
}

// VNPayIPN receives the gateway's server-to-server notification. It settles
// the payment exactly like VNPayReturn but always answers 200 with the
// gateway's acknowledgement codes.
func (h *PaymentHandler) VNPayIPN(w http.ResponseWriter, r *http.Request) {
	_, err := h.svc.HandleVNPayReturn(r.Context(), r.URL.Query())
	writeJSON(w, http.StatusOK, h.ipnAck(r, err))
}

func (h *PaymentHandler) ipnAck(r *http.Request, err error) dto.VNPayIPNResponse {
	var (
		invalid  *domain.InvalidArgumentError
		conflict *domain.StateConflictError
	)
	switch {
	case err == nil:
		return dto.VNPayIPNResponse{RspCode: "00", Message: "Confirm Success"}
	case errors.Is(err, domain.ErrNotFound):
		return dto.VNPayIPNResponse{RspCode: "01", Message: "Order not found"}
	case errors.As(err, &conflict):
		return dto.VNPayIPNResponse{RspCode: "02", Message: "Order already confirmed"}
	case errors.As(err, &invalid):
		return dto.VNPayIPNResponse{RspCode: "97", Message: "Invalid signature"}
	}
	// Classify logs the unexpected failure; its body is not sent.
	h.errs.Classify(r.Context(), err,
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("request_id", chimiddleware.GetReqID(r.Context())),
	)
	return dto.VNPayIPNResponse{RspCode: "99", Message: "Unknown error"}
}
