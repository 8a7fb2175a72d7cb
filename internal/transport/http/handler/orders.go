package handler

import (
	"net/http"

	"github.com/shop-assistant-api/internal/application/order"
	"github.com/shop-assistant-api/internal/dto"
	"github.com/shop-assistant-api/internal/mapper"
	"github.com/shop-assistant-api/internal/transport/http/middleware"
)

type OrderHandler struct {
	*Responder
	svc order.Service
}

func NewOrderHandler(svc order.Service, rs *Responder) *OrderHandler {
	return &OrderHandler{Responder: rs, svc: svc}
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in dto.OrderInput
	if err := decode(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	o, err := h.svc.Create(r.Context(), middleware.UserID(r.Context()), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.mapper.ToOrderResponse(o))
}

func (h *OrderHandler) ListByShop(w http.ResponseWriter, r *http.Request) {
	shopID, err := pathID(r, "shopID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	orders, err := h.svc.ListByShop(r.Context(), middleware.UserID(r.Context()), shopID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newList(mapper.List(orders, h.mapper.ToOrderResponse)))
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	o, err := h.svc.Get(r.Context(), middleware.UserID(r.Context()), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.mapper.ToOrderResponse(o))
}

func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var in dto.OrderUpdateInput
	if err := decode(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	o, err := h.svc.Update(r.Context(), middleware.UserID(r.Context()), id, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.mapper.ToOrderResponse(o))
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var in dto.OrderStatusInput
	if err := decode(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	o, err := h.svc.UpdateStatus(r.Context(), middleware.UserID(r.Context()), id, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.mapper.ToOrderResponse(o))
}
