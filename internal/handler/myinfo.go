package handler

import (
	"net/http"

	"github.com/xXRex45Xx/MyPortfolio/internal/model"
	"github.com/xXRex45Xx/MyPortfolio/internal/store"
)

// MyInfoHandler serves the personal info singleton.
type MyInfoHandler struct {
	store *store.Store
}

// NewMyInfoHandler creates a new MyInfoHandler.
func NewMyInfoHandler(st *store.Store) *MyInfoHandler {
	return &MyInfoHandler{store: st}
}

// Get returns the personal info shown on the landing page.
// GET /api/my-info
func (h *MyInfoHandler) Get(w http.ResponseWriter, r *http.Request) {
	info, err := h.store.GetMyInfo(r.Context())
	if err != nil {
		writeStoreError(w, err, "personal info", "")
		return
	}
	writeJSON(w, http.StatusOK, info)
}

type myInfoRequest struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	AboutMe string `json:"aboutMe"`
}

// Update overwrites the personal info in place.
// PUT /api/my-info
func (h *MyInfoHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req myInfoRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeFieldError(w, http.StatusBadRequest, "name is required", "name")
		return
	}
	if req.Title == "" {
		writeFieldError(w, http.StatusBadRequest, "title is required", "title")
		return
	}
	if req.Email == "" {
		writeFieldError(w, http.StatusBadRequest, "email is required", "email")
		return
	}

	info := &model.MyInfo{
		Name:    req.Name,
		Title:   req.Title,
		Email:   req.Email,
		Phone:   req.Phone,
		AboutMe: req.AboutMe,
	}
	if err := h.store.UpsertMyInfo(r.Context(), info); err != nil {
		writeStoreError(w, err, "personal info", "")
		return
	}
	writeJSON(w, http.StatusOK, info)
}
