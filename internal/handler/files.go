package handler

import (
	"errors"
	"net/http"

	"github.com/xXRex45Xx/MyPortfolio/internal/upload"
)

// FilesHandler serves resume and profile picture uploads. Both are
// singletons: a new upload replaces the previous file under a fixed name.
type FilesHandler struct {
	uploads *upload.Store
}

// NewFilesHandler creates a new FilesHandler.
func NewFilesHandler(uploads *upload.Store) *FilesHandler {
	return &FilesHandler{uploads: uploads}
}

// saveFormFile pulls the "file" part out of a multipart request, runs it
// through the kind's validation and stores it. It writes the error response
// itself and returns the stored name, or "" when it already responded.
func (h *FilesHandler) saveFormFile(w http.ResponseWriter, r *http.Request, k upload.Kind) string {
	if err := r.ParseMultipartForm(k.MaxSize + 1<<20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart request")
		return ""
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeFieldError(w, http.StatusBadRequest, "file is required", "file")
		return ""
	}
	defer file.Close()

	name, err := h.uploads.Save(k, header.Size, header.Header.Get("Content-Type"), file)
	switch {
	case errors.Is(err, upload.ErrEmptyFile):
		writeFieldError(w, http.StatusBadRequest, "file is empty", "file")
		return ""
	case errors.Is(err, upload.ErrFileTooLarge):
		writeFieldError(w, http.StatusBadRequest, "file is too large", "file")
		return ""
	case errors.Is(err, upload.ErrBadType):
		writeFieldError(w, http.StatusBadRequest, "unsupported file type", "file")
		return ""
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal server error")
		return ""
	}
	return name
}

// UploadResume stores the resume PDF.
// POST /api/files/resume
func (h *FilesHandler) UploadResume(w http.ResponseWriter, r *http.Request) {
	name := h.saveFormFile(w, r, upload.Resume)
	if name == "" {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": "/uploads/" + name})
}

// UploadProfilePicture stores the profile picture.
// POST /api/files/profile-picture
func (h *FilesHandler) UploadProfilePicture(w http.ResponseWriter, r *http.Request) {
	name := h.saveFormFile(w, r, upload.ProfilePicture)
	if name == "" {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": "/images/" + name})
}

// GetResume streams the stored resume. A missing resume is a 404, never a
// server error.
// GET /api/files/resume
func (h *FilesHandler) GetResume(w http.ResponseWriter, r *http.Request) {
	f, err := h.uploads.Open(upload.Resume, upload.Resume.FixedName)
	if errors.Is(err, upload.ErrFileNotFound) {
		writeError(w, http.StatusNotFound, "resume not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="resume.pdf"`)
	http.ServeContent(w, r, upload.Resume.FixedName, info.ModTime(), f)
}
