package handler

import (
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/xXRex45Xx/MyPortfolio/internal/openapi"
)

// OpenAPIHandler serves the generated API document. The surface is static,
// so the document is built once on first request and cached.
type OpenAPIHandler struct {
	baseURL string

	once sync.Once
	doc  *openapi3.T
}

// NewOpenAPIHandler creates a new OpenAPIHandler.
func NewOpenAPIHandler(baseURL string) *OpenAPIHandler {
	return &OpenAPIHandler{baseURL: baseURL}
}

// ServeSpec returns the OpenAPI document.
// GET /openapi.json
func (h *OpenAPIHandler) ServeSpec(w http.ResponseWriter, r *http.Request) {
	h.once.Do(func() {
		h.doc = openapi.Generate(h.baseURL)
	})
	writeJSON(w, http.StatusOK, h.doc)
}
