package mcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/foomo/studio-gallery/assetstore"
	"github.com/foomo/studio-gallery/service"
	"github.com/foomo/studio-gallery/service/vo"
	"go.uber.org/zap"
)

type listingHandler struct {
	logger   *zap.Logger
	service  service.Service
	pageSize service.PageSizeConfig
}

func (h *listingHandler) carousel(w http.ResponseWriter, r *http.Request) {
	defer h.recoverListing(w, r)

	listing, err := h.service.ListCarousel(r.Context())
	if err != nil {
		h.logger.Error("failed to list carousel", zap.Error(err))
		writeListing(w, http.StatusInternalServerError, vo.Failed(err.Error()))
		return
	}
	writeListing(w, http.StatusOK, listing)
}

func (h *listingHandler) gallery(w http.ResponseWriter, r *http.Request) {
	defer h.recoverListing(w, r)

	category := r.PathValue("category")
	page, limit := service.ParsePage(r.URL.Query().Get("page"), r.URL.Query().Get("limit"), h.pageSize)

	listing, err := h.service.ListGallery(r.Context(), category, page, limit)
	switch {
	case errors.Is(err, assetstore.ErrNotConfigured):
		writeListing(w, http.StatusInternalServerError, vo.Failed(service.NotConfiguredMessage))
	case err != nil:
		h.logger.Error("failed to list gallery", zap.String("category", category), zap.Error(err))
		writeListing(w, http.StatusInternalServerError, vo.Failed(err.Error()))
	default:
		writeListing(w, http.StatusOK, listing)
	}
}

func (h *listingHandler) recoverListing(w http.ResponseWriter, r *http.Request) {
	if rec := recover(); rec != nil {
		h.logger.Error("listing handler panicked", zap.String("path", r.URL.Path), zap.Any("panic", rec))
		writeListing(w, http.StatusInternalServerError, vo.Failed(fmt.Sprintf("%v", rec)))
	}
}

func writeListing(w http.ResponseWriter, status int, listing *vo.Listing) {
	if listing.Images == nil {
		listing.Images = []vo.Image{}
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(listing)
}
