package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/xXRex45Xx/MyPortfolio/internal/model"
	"github.com/xXRex45Xx/MyPortfolio/internal/store"
	"github.com/xXRex45Xx/MyPortfolio/internal/upload"
)

// ProjectsHandler serves CRUD for portfolio projects. Mutations arrive as
// multipart forms because they may carry the project image; the image is
// written to disk first and removed again if the database write fails, so
// the database never references a file that does not exist.
type ProjectsHandler struct {
	store   *store.Store
	uploads *upload.Store
}

// NewProjectsHandler creates a new ProjectsHandler.
func NewProjectsHandler(st *store.Store, uploads *upload.Store) *ProjectsHandler {
	return &ProjectsHandler{store: st, uploads: uploads}
}

// List returns the summary of every project, newest first.
// GET /api/projects
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.store.ListProjects(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

// Get returns one project in full.
// GET /api/projects/{id}
func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}
	project, err := h.store.GetProject(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "project", "")
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// parseProjectForm reads the non-file fields of a project multipart form
// into p. It writes the error response itself and reports whether parsing
// succeeded.
func parseProjectForm(w http.ResponseWriter, r *http.Request, p *model.Project) bool {
	title := r.FormValue("title")
	if title == "" {
		writeFieldError(w, http.StatusBadRequest, "title is required", "title")
		return false
	}
	shortDescription := r.FormValue("shortDescription")
	if shortDescription == "" {
		writeFieldError(w, http.StatusBadRequest, "short description is required", "shortDescription")
		return false
	}
	description := r.FormValue("description")
	if description == "" {
		writeFieldError(w, http.StatusBadRequest, "description is required", "description")
		return false
	}

	endDate, err := parseEndDate(r.FormValue("endDate"))
	if err != nil {
		writeFieldError(w, http.StatusBadRequest, "invalid end date", "endDate")
		return false
	}

	features, err := parseKeyFeatures(r.Form["keyFeatures"])
	if err != nil {
		writeFieldError(w, http.StatusBadRequest, "invalid key features", "keyFeatures")
		return false
	}

	p.Title = title
	p.Industry = r.FormValue("industry")
	p.ShortDescription = shortDescription
	p.Description = description
	p.EndDate = endDate
	p.KeyFeatures = features
	p.Link = r.FormValue("link")
	p.IsSourceCode = r.FormValue("isSourceCode") == "true" || r.FormValue("isSourceCode") == "1"
	return true
}

func parseEndDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("missing")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// parseKeyFeatures accepts either repeated form fields or a single field
// holding a JSON array.
func parseKeyFeatures(values []string) ([]string, error) {
	if len(values) == 1 && strings.HasPrefix(strings.TrimSpace(values[0]), "[") {
		var features []string
		if err := json.Unmarshal([]byte(values[0]), &features); err != nil {
			return nil, err
		}
		return features, nil
	}
	return values, nil
}

// saveProjectImage validates and stores the "image" part, returning the
// stored file name. It writes the error response itself; required reports a
// missing part as an error, otherwise ("", true) means no image was sent.
func (h *ProjectsHandler) saveProjectImage(w http.ResponseWriter, r *http.Request, required bool) (string, bool) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if !required {
			return "", true
		}
		writeFieldError(w, http.StatusBadRequest, "image is required", "image")
		return "", false
	}
	defer file.Close()

	name, err := h.uploads.Save(upload.ProjectImage, header.Size, header.Header.Get("Content-Type"), file)
	switch {
	case errors.Is(err, upload.ErrEmptyFile):
		writeFieldError(w, http.StatusBadRequest, "image is empty", "image")
		return "", false
	case errors.Is(err, upload.ErrFileTooLarge):
		writeFieldError(w, http.StatusBadRequest, "image is too large", "image")
		return "", false
	case errors.Is(err, upload.ErrBadType):
		writeFieldError(w, http.StatusBadRequest, "unsupported image type", "image")
		return "", false
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal server error")
		return "", false
	}
	return name, true
}

// Create adds a project. The image is required and is removed again if the
// database insert fails.
// POST /api/projects
func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(upload.ProjectImage.MaxSize + 1<<20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}

	var project model.Project
	if !parseProjectForm(w, r, &project) {
		return
	}
	imageName, ok := h.saveProjectImage(w, r, true)
	if !ok {
		return
	}
	project.ImageURL = "/images/" + imageName

	if err := h.store.CreateProject(r.Context(), &project); err != nil {
		h.uploads.Remove(upload.ProjectImage, imageName)
		writeStoreError(w, err, "project", "project with this title already exists")
		return
	}
	writeJSON(w, http.StatusCreated, &project)
}

// Update rewrites a project. A replacement image is optional; when one is
// sent the new file is stored first and the old one is deleted only after
// the database update succeeds.
// PUT /api/projects/{id}
func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}
	existing, err := h.store.GetProject(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "project", "")
		return
	}

	if err := r.ParseMultipartForm(upload.ProjectImage.MaxSize + 1<<20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}

	project := model.Project{ID: id, ImageURL: existing.ImageURL}
	if !parseProjectForm(w, r, &project) {
		return
	}
	imageName, ok := h.saveProjectImage(w, r, false)
	if !ok {
		return
	}
	if imageName != "" {
		project.ImageURL = "/images/" + imageName
	}

	if err := h.store.UpdateProject(r.Context(), &project); err != nil {
		h.uploads.Remove(upload.ProjectImage, imageName)
		writeStoreError(w, err, "project", "project with this title already exists")
		return
	}
	if imageName != "" && existing.ImageURL != project.ImageURL {
		h.uploads.Remove(upload.ProjectImage, path.Base(existing.ImageURL))
	}
	writeJSON(w, http.StatusOK, &project)
}

// Delete removes a project and its image file.
// DELETE /api/projects/{id}
func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}
	project, err := h.store.GetProject(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "project", "")
		return
	}
	if err := h.store.DeleteProject(r.Context(), id); err != nil {
		writeStoreError(w, err, "project", "")
		return
	}
	if project.ImageURL != "" {
		h.uploads.Remove(upload.ProjectImage, path.Base(project.ImageURL))
	}
	w.WriteHeader(http.StatusNoContent)
}
