package handler

import (
	"net/http"

	"github.com/shop-assistant-api/internal/application/accesstoken"
	"github.com/shop-assistant-api/internal/application/shop"
	"github.com/shop-assistant-api/internal/dto"
	"github.com/shop-assistant-api/internal/mapper"
	"github.com/shop-assistant-api/internal/transport/http/middleware"
)

// ShopHandler handles the caller's shops and their access tokens.
type ShopHandler struct {
	*Responder
	shops  shop.Service
	tokens accesstoken.Service
}

func NewShopHandler(shops shop.Service, tokens accesstoken.Service, rs *Responder) *ShopHandler {
	return &ShopHandler{Responder: rs, shops: shops, tokens: tokens}
}

func (h *ShopHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in dto.ShopInput
	if err := decode(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	s, err := h.shops.Create(r.Context(), middleware.UserID(r.Context()), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.mapper.ToShopResponse(s))
}

func (h *ShopHandler) List(w http.ResponseWriter, r *http.Request) {
	shops, err := h.shops.List(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newList(mapper.List(shops, h.mapper.ToShopResponse)))
}

func (h *ShopHandler) Get(w http.ResponseWriter, r *http.Request) {
	shopID, err := pathID(r, "shopID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	s, err := h.shops.Get(r.Context(), middleware.UserID(r.Context()), shopID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.mapper.ToShopResponse(s))
}

func (h *ShopHandler) Update(w http.ResponseWriter, r *http.Request) {
	shopID, err := pathID(r, "shopID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var in dto.ShopInput
	if err := decode(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	s, err := h.shops.Update(r.Context(), middleware.UserID(r.Context()), shopID, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.mapper.ToShopResponse(s))
}

func (h *ShopHandler) Delete(w http.ResponseWriter, r *http.Request) {
	shopID, err := pathID(r, "shopID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.shops.Delete(r.Context(), middleware.UserID(r.Context()), shopID); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "shop deleted"})
}

// --- access tokens ---

func (h *ShopHandler) CreateToken(w http.ResponseWriter, r *http.Request) {
	var in dto.AccessTokenInput
	if err := decode(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	tok, err := h.tokens.Create(r.Context(), middleware.UserID(r.Context()), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.mapper.ToAccessTokenResponse(tok))
}

func (h *ShopHandler) ListTokens(w http.ResponseWriter, r *http.Request) {
	shopID, err := pathID(r, "shopID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	toks, err := h.tokens.ListByShop(r.Context(), middleware.UserID(r.Context()), shopID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newList(mapper.List(toks, h.mapper.ToAccessTokenResponse)))
}

func (h *ShopHandler) RevokeToken(w http.ResponseWriter, r *http.Request) {
	tokenID, err := pathID(r, "tokenID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	tok, err := h.tokens.Revoke(r.Context(), middleware.UserID(r.Context()), tokenID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.mapper.ToAccessTokenResponse(tok))
}
