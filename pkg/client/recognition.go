package client

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/turtacn/PlasmidCatalog/pkg/errors"
	ptypes "github.com/turtacn/PlasmidCatalog/pkg/types/plasmid"
)

// RecognitionClient wraps the /api/v1/recognize endpoints and the
// vocabulary endpoints.
type RecognitionClient struct {
	client *Client
}

// Recognize recognises a filename, optionally with its directory path.
func (r *RecognitionClient) Recognize(ctx context.Context, filename, dir string) (*ptypes.RecognitionResponse, error) {
	if filename == "" {
		return nil, errors.InvalidParam("filename is required")
	}
	var resp ptypes.RecognitionResponse
	if err := r.client.postJSON(ctx, "/api/v1/recognize", &ptypes.RecognizeRequest{Filename: filename, Path: dir}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RecognizeContent sends content inline as base64 JSON.
func (r *RecognitionClient) RecognizeContent(ctx context.Context, req *ptypes.RecognizeContentRequest) (*ptypes.RecognitionResponse, error) {
	if req == nil {
		return nil, errors.InvalidParam("request is required")
	}
	var resp ptypes.RecognitionResponse
	if err := r.client.postJSON(ctx, "/api/v1/recognize/content", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Upload sends content as a multipart file part.
func (r *RecognitionClient) Upload(ctx context.Context, filename, dir string, content []byte) (*ptypes.RecognitionResponse, error) {
	if filename == "" {
		return nil, errors.InvalidParam("filename is required")
	}
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if dir != "" {
		if err := mw.WriteField("path", dir); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to build upload")
		}
	}
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to build upload")
	}
	if _, err := fw.Write(content); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to build upload")
	}
	if err := mw.Close(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to build upload")
	}

	var resp ptypes.RecognitionResponse
	if err := r.client.do(ctx, http.MethodPost, "/api/v1/recognize/content", mw.FormDataContentType(), buf.Bytes(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RecognizeObject recognises a file held in the server's object store.
func (r *RecognitionClient) RecognizeObject(ctx context.Context, key string) (*ptypes.RecognitionResponse, error) {
	if key == "" {
		return nil, errors.InvalidParam("object key is required")
	}
	var resp ptypes.RecognitionResponse
	if err := r.client.getJSON(ctx, "/api/v1/recognize/object?key="+url.QueryEscape(key), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RecognizeBatch recognises many filenames in one call.  Per-item failures
// are in the response's Errors, not in the returned error.
func (r *RecognitionClient) RecognizeBatch(ctx context.Context, items []ptypes.RecognizeRequest) (*ptypes.BatchRecognitionResponse, error) {
	if len(items) == 0 {
		return &ptypes.BatchRecognitionResponse{Results: []*ptypes.RecognitionResponse{}}, nil
	}
	var resp ptypes.BatchRecognitionResponse
	if err := r.client.postJSON(ctx, "/api/v1/recognize/batch", &ptypes.BatchRecognizeRequest{Items: items}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Vocabulary returns the server's vocabulary statistics.
func (r *RecognitionClient) Vocabulary(ctx context.Context) (*ptypes.VocabularyStats, error) {
	var stats ptypes.VocabularyStats
	if err := r.client.getJSON(ctx, "/api/v1/vocabulary", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Reload asks the server to rebuild its vocabulary.
func (r *RecognitionClient) Reload(ctx context.Context) (*ptypes.VocabularyStats, error) {
	var stats ptypes.VocabularyStats
	if err := r.client.postJSON(ctx, "/api/v1/context/reload", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

//Personal.AI order the ending
