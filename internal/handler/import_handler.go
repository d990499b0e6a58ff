package handler

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"petledger/internal/csvexport"
	"petledger/internal/importer"
	"petledger/internal/service"
	"petledger/internal/validator/product"
)

// ImportHandler handles bulk product import endpoints.
type ImportHandler struct {
	importService service.ImportService
	maxBytes      int64
}

// NewImportHandler creates a new ImportHandler. Bodies larger than maxBytes
// are rejected before parsing; zero disables the limit.
func NewImportHandler(importService service.ImportService, maxBytes int64) *ImportHandler {
	return &ImportHandler{importService: importService, maxBytes: maxBytes}
}

// readUpload accepts either a multipart form with a "file" part or a raw
// request body. The raw form takes its name from the "filename" query
// parameter.
func (h *ImportHandler) readUpload(c *gin.Context) (service.ImportUpload, bool) {
	if h.maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+1<<20)
	}

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("file")
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "multipart upload needs a \"file\" part")
			return service.ImportUpload{}, false
		}
		f, err := fh.Open()
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "could not open uploaded file")
			return service.ImportUpload{}, false
		}
		defer f.Close()
		body, err := io.ReadAll(f)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "could not read uploaded file")
			return service.ImportUpload{}, false
		}
		return service.ImportUpload{
			FileName:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Body:        body,
		}, true
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		RespondError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size")
		return service.ImportUpload{}, false
	}
	return service.ImportUpload{
		FileName:    c.Query("filename"),
		ContentType: c.ContentType(),
		Body:        body,
	}, true
}

// Validate handles POST /api/v1/imports/validate.
func (h *ImportHandler) Validate(c *gin.Context) {
	upload, ok := h.readUpload(c)
	if !ok {
		return
	}
	result, err := h.importService.Validate(c.Request.Context(), upload)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, result)
}

// Submit handles POST /api/v1/imports/:id/submit.
func (h *ImportHandler) Submit(c *gin.Context) {
	result, err := h.importService.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// Get handles GET /api/v1/imports/:id.
func (h *ImportHandler) Get(c *gin.Context) {
	snap, err := h.importService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, snap)
}

// List handles GET /api/v1/imports.
func (h *ImportHandler) List(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "limit must be between 1 and 100")
		return
	}
	runs, err := h.importService.ListRuns(c.Request.Context(), limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, runs)
}

// Issues handles GET /api/v1/imports/:id/issues.csv. It streams every row
// that was rejected or carried a warning, in file order.
func (h *ImportHandler) Issues(c *gin.Context) {
	rep, fileName, err := h.importService.Report(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	buf.Write(csvexport.BOM)
	w := csvexport.NewWriter(&buf)
	if err := w.WriteHeader(); err != nil {
		HandleError(c, err)
		return
	}
	if err := w.WriteOutcomes(issueRows(rep)); err != nil {
		HandleError(c, err)
		return
	}
	w.Flush()
	if err := w.Error(); err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, csvexport.BuildFilename(fileName)))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// issueRows merges invalid and warned rows back into row order without
// repeating a row that is both.
func issueRows(rep *importer.Report) []*product.Outcome {
	seen := make(map[int]bool, len(rep.Invalid)+len(rep.Warned))
	out := make([]*product.Outcome, 0, len(rep.Invalid)+len(rep.Warned))
	i, j := 0, 0
	for i < len(rep.Invalid) || j < len(rep.Warned) {
		var next *product.Outcome
		switch {
		case j >= len(rep.Warned):
			next = rep.Invalid[i]
			i++
		case i >= len(rep.Invalid):
			next = rep.Warned[j]
			j++
		case rep.Invalid[i].RowIndex <= rep.Warned[j].RowIndex:
			next = rep.Invalid[i]
			i++
		default:
			next = rep.Warned[j]
			j++
		}
		if !seen[next.RowIndex] {
			seen[next.RowIndex] = true
			out = append(out, next)
		}
	}
	return out
}

// SchemaColumn describes one import column.
type SchemaColumn struct {
	Name     string   `json:"name"`
	Required bool     `json:"required"`
	Allowed  []string `json:"allowed,omitempty"`
}

// Schema is the body of GET /api/v1/imports/schema.
type Schema struct {
	Columns []SchemaColumn     `json:"columns"`
	Rules   []product.RuleInfo `json:"rules"`
}

// Schema handles GET /api/v1/imports/schema.
func (h *ImportHandler) Schema(c *gin.Context) {
	cols := make([]SchemaColumn, 0, len(product.RequiredColumns)+len(product.OptionalColumns))
	for _, name := range product.RequiredColumns {
		cols = append(cols, SchemaColumn{Name: name, Required: true, Allowed: allowedValues(name)})
	}
	for _, name := range product.OptionalColumns {
		cols = append(cols, SchemaColumn{Name: name, Allowed: allowedValues(name)})
	}
	RespondOK(c, Schema{Columns: cols, Rules: product.New().Rules()})
}

func allowedValues(col string) []string {
	switch col {
	case product.ColCategory:
		return product.Categories
	case product.ColPetSpecies:
		return product.PetSpecies
	case product.ColRequiresPrescription, product.ColIsActive:
		return []string{"true", "false"}
	}
	return nil
}
