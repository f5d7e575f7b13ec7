package handler

import (
	"net/http"

	"github.com/xXRex45Xx/MyPortfolio/internal/model"
	"github.com/xXRex45Xx/MyPortfolio/internal/store"
)

// SkillsHandler serves CRUD for the skill list.
type SkillsHandler struct {
	store *store.Store
}

// NewSkillsHandler creates a new SkillsHandler.
func NewSkillsHandler(st *store.Store) *SkillsHandler {
	return &SkillsHandler{store: st}
}

// List returns all skills.
// GET /api/skills
func (h *SkillsHandler) List(w http.ResponseWriter, r *http.Request) {
	skills, err := h.store.ListSkills(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, skills)
}

type skillRequest struct {
	Name string `json:"name"`
}

// Create adds a skill.
// POST /api/skills
func (h *SkillsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req skillRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeFieldError(w, http.StatusBadRequest, "name is required", "name")
		return
	}

	skill := &model.Skill{Name: req.Name}
	if err := h.store.CreateSkill(r.Context(), skill); err != nil {
		writeStoreError(w, err, "skill", "skill already exists")
		return
	}
	writeJSON(w, http.StatusCreated, skill)
}

// Update renames a skill.
// PUT /api/skills/{id}
func (h *SkillsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid skill id")
		return
	}
	var req skillRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeFieldError(w, http.StatusBadRequest, "name is required", "name")
		return
	}

	if err := h.store.UpdateSkill(r.Context(), id, req.Name); err != nil {
		writeStoreError(w, err, "skill", "skill already exists")
		return
	}
	writeJSON(w, http.StatusOK, model.Skill{ID: id, Name: req.Name})
}

// Delete removes a skill.
// DELETE /api/skills/{id}
func (h *SkillsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid skill id")
		return
	}
	if err := h.store.DeleteSkill(r.Context(), id); err != nil {
		writeStoreError(w, err, "skill", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
