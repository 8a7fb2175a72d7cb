package handler

import (
	"net/http"

	"github.com/shop-assistant-api/internal/application/feedback"
	"github.com/shop-assistant-api/internal/application/image"
	"github.com/shop-assistant-api/internal/application/product"
	"github.com/shop-assistant-api/internal/dto"
	"github.com/shop-assistant-api/internal/mapper"
	"github.com/shop-assistant-api/internal/transport/http/middleware"
)

// ProductHandler handles products along with their feedback and generated images.
type ProductHandler struct {
	*Responder
	products  product.Service
	feedbacks feedback.Service
	images    image.Service
}

func NewProductHandler(products product.Service, feedbacks feedback.Service, images image.Service, rs *Responder) *ProductHandler {
	return &ProductHandler{Responder: rs, products: products, feedbacks: feedbacks, images: images}
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	shopID, err := pathID(r, "shopID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var in dto.ProductInput
	if err := decode(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	p, err := h.products.Create(r.Context(), middleware.UserID(r.Context()), shopID, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.mapper.ToProductResponse(p))
}

func (h *ProductHandler) ListByShop(w http.ResponseWriter, r *http.Request) {
	shopID, err := pathID(r, "shopID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	ps, err := h.products.ListByShop(r.Context(), middleware.UserID(r.Context()), shopID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newList(mapper.List(ps, h.mapper.ToProductResponse)))
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	p, err := h.products.Get(r.Context(), middleware.UserID(r.Context()), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.mapper.ToProductResponse(p))
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var in dto.ProductUpdateInput
	if err := decode(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	p, err := h.products.Update(r.Context(), middleware.UserID(r.Context()), id, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.mapper.ToProductResponse(p))
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.products.Delete(r.Context(), middleware.UserID(r.Context()), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "product deleted"})
}

// --- feedback ---

func (h *ProductHandler) CreateFeedback(w http.ResponseWriter, r *http.Request) {
	var in dto.FeedbackInput
	if err := decode(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	f, err := h.feedbacks.Create(r.Context(), middleware.UserID(r.Context()), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.mapper.ToFeedbackResponse(f))
}

func (h *ProductHandler) ListFeedbacks(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	fs, err := h.feedbacks.ListByProduct(r.Context(), middleware.UserID(r.Context()), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newList(mapper.List(fs, h.mapper.ToFeedbackResponse)))
}

// --- images ---

func (h *ProductHandler) GenerateImage(w http.ResponseWriter, r *http.Request) {
	var in dto.ImageGenerationInput
	if err := decode(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	req, err := h.images.Generate(r.Context(), middleware.UserID(r.Context()), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.mapper.ToImageResponse(req))
}

func (h *ProductHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	reqs, err := h.images.ListByProduct(r.Context(), middleware.UserID(r.Context()), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newList(mapper.List(reqs, h.mapper.ToImageResponse)))
}
