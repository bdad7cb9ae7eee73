package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/PlasmidCatalog/internal/application/recognition"
	"github.com/turtacn/PlasmidCatalog/pkg/errors"
	ptypes "github.com/turtacn/PlasmidCatalog/pkg/types/plasmid"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(svc recognition.Service, maxUpload int64) *gin.Engine {
	r := gin.New()
	NewRecognitionHandler(svc, maxUpload).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func do(r http.Handler, method, target, contentType string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sampleResponse(name string) *ptypes.RecognitionResponse {
	return &ptypes.RecognitionResponse{
		Filename:          name,
		Mode:              ptypes.ModeName,
		Fields:            map[string][]string{"vector": {"pcDNA3.1"}, "fluorophore": {"EGFP"}},
		Description:       "pcDNA3.1-EGFP",
		VocabularyVersion: 3,
	}
}

func TestRecognize(t *testing.T) {
	svc := new(mockService)
	svc.On("Recognize", mock.Anything, &ptypes.RecognizeRequest{Filename: "pcDNA3.1-EGFP.dna", Path: "lab/vectors"}).
		Return(sampleResponse("pcDNA3.1-EGFP.dna"), nil)

	w := do(newTestRouter(svc, 0), http.MethodPost, "/api/v1/recognize", "application/json",
		[]byte(`{"filename": "pcDNA3.1-EGFP.dna", "path": "lab/vectors"}`))

	require.Equal(t, http.StatusOK, w.Code)
	var got ptypes.RecognitionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, []string{"pcDNA3.1"}, got.Fields["vector"])
	assert.Equal(t, uint64(3), got.VocabularyVersion)
	svc.AssertExpectations(t)
}

func TestRecognize_BadBody(t *testing.T) {
	svc := new(mockService)
	r := newTestRouter(svc, 0)

	w := do(r, http.MethodPost, "/api/v1/recognize", "application/json", []byte(`{bad`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "COMMON_002")

	w = do(r, http.MethodPost, "/api/v1/recognize", "application/json", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Recognize", mock.Anything, mock.Anything)
}

func TestRecognize_ServiceError(t *testing.T) {
	svc := new(mockService)
	svc.On("Recognize", mock.Anything, mock.Anything).Return(nil, errors.InvalidParam("filename is required"))

	w := do(newTestRouter(svc, 0), http.MethodPost, "/api/v1/recognize", "application/json", []byte(`{"filename": " "}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "filename is required")
}

func TestRecognizeContent_JSON(t *testing.T) {
	svc := new(mockService)
	svc.On("RecognizeContent", mock.Anything, mock.MatchedBy(func(req *ptypes.RecognizeContentRequest) bool {
		return req.Filename == "x.gb" && string(req.Content) == "LOCUS pUC19"
	})).Return(sampleResponse("x.gb"), nil)

	// "TE9DVVMgcFVDMTk=" is base64 for "LOCUS pUC19".
	w := do(newTestRouter(svc, 0), http.MethodPost, "/api/v1/recognize/content", "application/json",
		[]byte(`{"filename": "x.gb", "content": "TE9DVVMgcFVDMTk="}`))
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func multipartBody(t *testing.T, filename string, content []byte, fields map[string]string) (string, []byte) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return mw.FormDataContentType(), buf.Bytes()
}

func TestRecognizeContent_Multipart(t *testing.T) {
	svc := new(mockService)
	svc.On("RecognizeContent", mock.Anything, &ptypes.RecognizeContentRequest{
		Filename: "upload.dna",
		Path:     "proj",
		Content:  []byte("ATGC"),
	}).Return(sampleResponse("upload.dna"), nil)

	ct, body := multipartBody(t, "upload.dna", []byte("ATGC"), map[string]string{"path": "proj"})
	w := do(newTestRouter(svc, 0), http.MethodPost, "/api/v1/recognize/content", ct, body)
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestRecognizeContent_MultipartTooLarge(t *testing.T) {
	svc := new(mockService)
	ct, body := multipartBody(t, "big.dna", bytes.Repeat([]byte("A"), 64), nil)

	w := do(newTestRouter(svc, 16), http.MethodPost, "/api/v1/recognize/content", ct, body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "REC_002")
	svc.AssertNotCalled(t, "RecognizeContent", mock.Anything, mock.Anything)
}

func TestRecognizeContent_MultipartMissingFile(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("filename", "a.dna"))
	require.NoError(t, mw.Close())

	w := do(newTestRouter(new(mockService), 0), http.MethodPost, "/api/v1/recognize/content", mw.FormDataContentType(), buf.Bytes())
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecognizeObject(t *testing.T) {
	svc := new(mockService)
	svc.On("RecognizeObject", mock.Anything, "incoming/pLKO.1-puro.gb").Return(sampleResponse("pLKO.1-puro.gb"), nil)
	svc.On("RecognizeObject", mock.Anything, "missing.gb").
		Return(nil, errors.New(errors.ErrCodeObjectNotFound, "object not found"))

	r := newTestRouter(svc, 0)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/v1/recognize/object?key=incoming/pLKO.1-puro.gb", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/v1/recognize/object?key=missing.gb", "", nil).Code)
}

func TestRecognizeBatch(t *testing.T) {
	svc := new(mockService)
	svc.On("RecognizeBatch", mock.Anything, mock.MatchedBy(func(req *ptypes.BatchRecognizeRequest) bool {
		return len(req.Items) == 2
	})).Return(&ptypes.BatchRecognitionResponse{
		Results: []*ptypes.RecognitionResponse{sampleResponse("a.dna"), nil},
		Errors:  []ptypes.BatchItemError{{Index: 1, Code: "COMMON_002", Message: "filename is required"}},
	}, nil)
	svc.On("RecognizeBatch", mock.Anything, mock.Anything).
		Return(nil, errors.New(errors.ErrCodeBatchTooLarge, "batch too large"))

	r := newTestRouter(svc, 0)
	w := do(r, http.MethodPost, "/api/v1/recognize/batch", "application/json",
		[]byte(`{"items": [{"filename": "a.dna"}, {"filename": ""}]}`))
	require.Equal(t, http.StatusOK, w.Code)
	var got ptypes.BatchRecognitionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Results, 2)
	assert.Nil(t, got.Results[1])
	assert.Equal(t, 1, got.Errors[0].Index)

	w = do(r, http.MethodPost, "/api/v1/recognize/batch", "application/json",
		[]byte(`{"items": [{"filename": "a"}, {"filename": "b"}, {"filename": "c"}]}`))
	assert.Equal(t, errors.HTTPStatusForCode(errors.ErrCodeBatchTooLarge), w.Code)
}

func TestRecordCorrection(t *testing.T) {
	svc := new(mockService)
	svc.On("RecordCorrection", mock.Anything, mock.MatchedBy(func(req *ptypes.CorrectionRequest) bool {
		return req.Filename == "a.dna"
	})).Return(&recognition.CorrectionResult{
		Correction: ptypes.Correction{Filename: "a.dna", Category: "species", NewSignature: "小鼠"},
		Applied:    true,
		Persisted:  true,
	}, nil)
	svc.On("RecordCorrection", mock.Anything, mock.Anything).
		Return(&recognition.CorrectionResult{Correction: ptypes.Correction{Filename: "b.dna", Category: "species"}}, nil)

	r := newTestRouter(svc, 0)
	w := do(r, http.MethodPost, "/api/v1/corrections", "application/json",
		[]byte(`{"filename": "a.dna", "category": "species", "old_signature": "人", "new_signature": "小鼠"}`))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"applied":true`)

	w = do(r, http.MethodPost, "/api/v1/corrections", "application/json",
		[]byte(`{"filename": "b.dna", "category": "species", "old_signature": "人", "new_signature": "人"}`))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"applied":false`)
}

func TestListCorrections(t *testing.T) {
	svc := new(mockService)
	svc.On("Corrections", mock.Anything).Return(nil, nil).Once()
	svc.On("Corrections", mock.Anything).Return(nil, errors.New(errors.ErrCodeCacheError, "redis down")).Once()

	r := newTestRouter(svc, 0)
	w := do(r, http.MethodGet, "/api/v1/corrections", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"corrections": [], "total": 0}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/v1/corrections", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "redis down")
}

func TestReloadAndVocabulary(t *testing.T) {
	stats := ptypes.VocabularyStats{Version: 4, Sizes: map[string]int{"vector": 120}, Records: 10}
	svc := new(mockService)
	svc.On("Reload", mock.Anything).Return(&stats, nil)
	svc.On("VocabularyStats", mock.Anything).Return(stats)

	r := newTestRouter(svc, 0)
	w := do(r, http.MethodPost, "/api/v1/context/reload", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `"version":4`))

	w = do(r, http.MethodGet, "/api/v1/vocabulary", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got ptypes.VocabularyStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 120, got.Sizes["vector"])
}

//Personal.AI order the ending
