package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/PlasmidCatalog/internal/application/recognition"
	"github.com/turtacn/PlasmidCatalog/pkg/errors"
	ptypes "github.com/turtacn/PlasmidCatalog/pkg/types/plasmid"
)

// DefaultMaxUploadBytes bounds multipart uploads when no limit is configured.
const DefaultMaxUploadBytes int64 = 32 << 20

// RecognitionHandler exposes the recognition service over HTTP.
type RecognitionHandler struct {
	svc            recognition.Service
	maxUploadBytes int64
}

func NewRecognitionHandler(svc recognition.Service, maxUploadBytes int64) *RecognitionHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &RecognitionHandler{svc: svc, maxUploadBytes: maxUploadBytes}
}

// RegisterRoutes registers the recognition endpoints on rg (typically /api/v1).
//
//	POST /recognize              recognise one filename
//	POST /recognize/content      recognise an upload or inline content
//	GET  /recognize/object       recognise an object storage key
//	POST /recognize/batch        recognise many filenames
//	POST /corrections            record a user correction
//	GET  /corrections            list recorded corrections
//	POST /context/reload         rebuild the vocabulary
//	GET  /vocabulary             vocabulary statistics
func (h *RecognitionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rec := rg.Group("/recognize")
	{
		rec.POST("", h.Recognize)
		rec.POST("/content", h.RecognizeContent)
		rec.GET("/object", h.RecognizeObject)
		rec.POST("/batch", h.RecognizeBatch)
	}
	rg.POST("/corrections", h.RecordCorrection)
	rg.GET("/corrections", h.ListCorrections)
	rg.POST("/context/reload", h.Reload)
	rg.GET("/vocabulary", h.Vocabulary)
}

// Recognize handles POST /recognize.
func (h *RecognitionHandler) Recognize(c *gin.Context) {
	var req ptypes.RecognizeRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.svc.Recognize(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RecognizeContent handles POST /recognize/content.  A multipart body must
// carry the bytes in the "file" part; "filename" and "path" form values
// override the part's own name.  Any other body is decoded as JSON with
// base64 content or an object_key.
func (h *RecognitionHandler) RecognizeContent(c *gin.Context) {
	var req ptypes.RecognizeContentRequest
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if !h.bindUpload(c, &req) {
			return
		}
	} else if !bindJSON(c, &req) {
		return
	}

	resp, err := h.svc.RecognizeContent(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RecognitionHandler) bindUpload(c *gin.Context, req *ptypes.RecognizeContentRequest) bool {
	fh, err := c.FormFile("file")
	if err != nil {
		respondError(c, errors.Wrap(err, errors.ErrCodeBadRequest, "multipart field \"file\" is required"))
		return false
	}
	if fh.Size > h.maxUploadBytes {
		respondError(c, errors.Newf(errors.ErrCodeContentTooLarge, "upload exceeds %d bytes", h.maxUploadBytes).WithDetail(fh.Filename))
		return false
	}
	f, err := fh.Open()
	if err != nil {
		respondError(c, errors.Wrap(err, errors.ErrCodeBadRequest, "cannot open upload"))
		return false
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxUploadBytes+1))
	if err != nil {
		respondError(c, errors.Wrap(err, errors.ErrCodeBadRequest, "cannot read upload"))
		return false
	}
	if int64(len(data)) > h.maxUploadBytes {
		respondError(c, errors.Newf(errors.ErrCodeContentTooLarge, "upload exceeds %d bytes", h.maxUploadBytes).WithDetail(fh.Filename))
		return false
	}

	req.Filename = c.PostForm("filename")
	if req.Filename == "" {
		req.Filename = fh.Filename
	}
	req.Path = c.PostForm("path")
	req.Content = data
	return true
}

// RecognizeObject handles GET /recognize/object?key=.
func (h *RecognitionHandler) RecognizeObject(c *gin.Context) {
	resp, err := h.svc.RecognizeObject(c.Request.Context(), c.Query("key"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RecognizeBatch handles POST /recognize/batch.  Item failures are part of
// a 200 response; only request-level failures produce an error status.
func (h *RecognitionHandler) RecognizeBatch(c *gin.Context) {
	var req ptypes.BatchRecognizeRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.svc.RecognizeBatch(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RecordCorrection handles POST /corrections.  A no-op edit answers 200 with
// applied=false; a stored correction answers 201.
func (h *RecognitionHandler) RecordCorrection(c *gin.Context) {
	var req ptypes.CorrectionRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.svc.RecordCorrection(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusOK
	if res.Applied {
		status = http.StatusCreated
	}
	c.JSON(status, res)
}

// ListCorrections handles GET /corrections.
func (h *RecognitionHandler) ListCorrections(c *gin.Context) {
	cs, err := h.svc.Corrections(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if cs == nil {
		cs = []ptypes.Correction{}
	}
	c.JSON(http.StatusOK, gin.H{"corrections": cs, "total": len(cs)})
}

// Reload handles POST /context/reload.
func (h *RecognitionHandler) Reload(c *gin.Context) {
	stats, err := h.svc.Reload(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Vocabulary handles GET /vocabulary.
func (h *RecognitionHandler) Vocabulary(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.VocabularyStats(c.Request.Context()))
}

//Personal.AI order the ending
