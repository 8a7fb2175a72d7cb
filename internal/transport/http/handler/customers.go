package handler

import (
	"net/http"

	"github.com/shop-assistant-api/internal/application/customer"
	"github.com/shop-assistant-api/internal/dto"
	"github.com/shop-assistant-api/internal/mapper"
	"github.com/shop-assistant-api/internal/transport/http/middleware"
)

type CustomerHandler struct {
	*Responder
	svc customer.Service
}

func NewCustomerHandler(svc customer.Service, rs *Responder) *CustomerHandler {
	return &CustomerHandler{Responder: rs, svc: svc}
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in dto.CustomerInput
	if err := decode(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	c, err := h.svc.Create(r.Context(), middleware.UserID(r.Context()), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.mapper.ToCustomerResponse(c))
}

func (h *CustomerHandler) ListByShop(w http.ResponseWriter, r *http.Request) {
	shopID, err := pathID(r, "shopID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	cs, err := h.svc.ListByShop(r.Context(), middleware.UserID(r.Context()), shopID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newList(mapper.List(cs, h.mapper.ToCustomerResponse)))
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	c, err := h.svc.Get(r.Context(), middleware.UserID(r.Context()), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.mapper.ToCustomerResponse(c))
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var in dto.CustomerUpdateInput
	if err := decode(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	c, err := h.svc.Update(r.Context(), middleware.UserID(r.Context()), id, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.mapper.ToCustomerResponse(c))
}

func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.svc.Delete(r.Context(), middleware.UserID(r.Context()), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "customer deleted"})
}
