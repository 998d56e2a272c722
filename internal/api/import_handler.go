package api

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/blog-store-api/internal/models"
	"github.com/blog-store-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// maxImportSize bounds an uploaded import body
const maxImportSize = 32 << 20

// ImportHandler handles import endpoints
type ImportHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(services *service.Services, log zerolog.Logger) *ImportHandler {
	return &ImportHandler{
		services: services,
		log:      log.With().Str("handler", "import").Logger(),
	}
}

// CreateImport handles POST /v1/imports?resource=...
// Accepts an NDJSON file upload (multipart field "file") or a raw NDJSON body
func (h *ImportHandler) CreateImport(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportSize)

	resource := c.PostForm("resource")
	if resource == "" {
		resource = c.Query("resource")
	}
	if resource == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resource parameter is required (articles, categories, tags, comments)"})
		return
	}
	if !models.ValidResources[resource] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resource must be one of: articles, categories, tags, comments"})
		return
	}

	var body io.Reader
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		file, header, err := c.Request.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			return
		}
		defer file.Close()

		ext := strings.ToLower(filepath.Ext(header.Filename))
		if ext != ".ndjson" && ext != ".jsonl" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file must be NDJSON (.ndjson or .jsonl)"})
			return
		}
		body = file
	} else {
		body = c.Request.Body
	}

	importID := uuid.NewString()
	h.log.Info().Str("import_id", importID).Str("resource", resource).Msg("Import started")

	result, err := h.services.Import.Import(c.Request.Context(), resource, body)
	if err != nil {
		h.log.Error().Err(err).Str("import_id", importID).Msg("Import failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "import failed: " + err.Error(), "importId": importID})
		return
	}

	resp := *result
	resp.ImportID = importID
	if resp.Errors == nil {
		resp.Errors = []models.ImportError{}
	}
	c.JSON(http.StatusOK, resp)
}
