package handler

import (
	"net/http"

	"github.com/shop-assistant-api/internal/application/user"
	"github.com/shop-assistant-api/internal/dto"
	"github.com/shop-assistant-api/internal/transport/http/middleware"
)

// UserHandler handles registration, login and the current user's account.
type UserHandler struct {
	*Responder
	svc user.Service
}

func NewUserHandler(svc user.Service, rs *Responder) *UserHandler {
	return &UserHandler{Responder: rs, svc: svc}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in dto.RegistrationInput
	if err := decode(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	u, err := h.svc.Register(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.mapper.ToUserResponse(u))
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in dto.LoginInput
	if err := decode(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	u, token, err := h.svc.Login(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.AuthResponse{Token: token, User: h.mapper.ToUserResponse(u)})
}

func (h *UserHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var in dto.GoogleLoginInput
	if err := decode(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	u, token, err := h.svc.GoogleLogin(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.AuthResponse{Token: token, User: h.mapper.ToUserResponse(u)})
}

func (h *UserHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.VerifyEmail(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.mapper.ToUserResponse(u))
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Me(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.mapper.ToUserResponse(u))
}

func (h *UserHandler) DeductBalance(w http.ResponseWriter, r *http.Request) {
	var in dto.BalanceDeductionInput
	if err := decode(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	u, err := h.svc.DeductBalance(r.Context(), middleware.UserID(r.Context()), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.mapper.ToUserResponse(u))
}
