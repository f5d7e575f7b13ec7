package handler

import (
	"net/http"

	"github.com/xXRex45Xx/MyPortfolio/internal/model"
	"github.com/xXRex45Xx/MyPortfolio/internal/store"
)

// SocialMediaHandler serves CRUD for external profile links.
type SocialMediaHandler struct {
	store *store.Store
}

// NewSocialMediaHandler creates a new SocialMediaHandler.
func NewSocialMediaHandler(st *store.Store) *SocialMediaHandler {
	return &SocialMediaHandler{store: st}
}

// List returns all social links.
// GET /api/social-media
func (h *SocialMediaHandler) List(w http.ResponseWriter, r *http.Request) {
	links, err := h.store.ListSocialMedia(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, links)
}

type socialMediaRequest struct {
	Platform string `json:"platform"`
	Link     string `json:"link"`
}

func (req *socialMediaRequest) validate(w http.ResponseWriter) bool {
	if req.Platform == "" {
		writeFieldError(w, http.StatusBadRequest, "platform is required", "platform")
		return false
	}
	if req.Link == "" {
		writeFieldError(w, http.StatusBadRequest, "link is required", "link")
		return false
	}
	return true
}

// Create adds a social link. Each platform appears at most once.
// POST /api/social-media
func (h *SocialMediaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req socialMediaRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.validate(w) {
		return
	}

	link := &model.SocialMedia{Platform: req.Platform, Link: req.Link}
	if err := h.store.CreateSocialMedia(r.Context(), link); err != nil {
		writeStoreError(w, err, "social link", "social link for this platform already exists")
		return
	}
	writeJSON(w, http.StatusCreated, link)
}

// Update rewrites a social link.
// PUT /api/social-media/{id}
func (h *SocialMediaHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid social link id")
		return
	}
	var req socialMediaRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.validate(w) {
		return
	}

	link := &model.SocialMedia{ID: id, Platform: req.Platform, Link: req.Link}
	if err := h.store.UpdateSocialMedia(r.Context(), link); err != nil {
		writeStoreError(w, err, "social link", "social link for this platform already exists")
		return
	}
	writeJSON(w, http.StatusOK, link)
}

// Delete removes a social link.
// DELETE /api/social-media/{id}
func (h *SocialMediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid social link id")
		return
	}
	if err := h.store.DeleteSocialMedia(r.Context(), id); err != nil {
		writeStoreError(w, err, "social link", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
