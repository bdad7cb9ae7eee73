package minio

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"

	domain "github.com/turtacn/PlasmidCatalog/internal/domain/plasmid"
	"github.com/turtacn/PlasmidCatalog/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/PlasmidCatalog/pkg/errors"
)

var (
	ErrObjectNotFound = errors.New(errors.ErrCodeObjectNotFound, "object not found")
	ErrInvalidRequest = errors.New(errors.ErrCodeValidation, "invalid request")
)

// ObjectInfo describes a stored plasmid file.
type ObjectInfo struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type,omitempty"`
	ETag         string    `json:"etag,omitempty"`
	LastModified time.Time `json:"last_modified"`
}

// opener reads an object body.  It is a seam over GetObject, whose
// *minio.Object result cannot be constructed outside a live connection.
type opener func(ctx context.Context, bucket, key string) (io.ReadCloser, error)

// ObjectStore reads and writes plasmid files in the catalog bucket.
type ObjectStore struct {
	client *Client
	open   opener
	logger logging.Logger
}

var _ domain.ContentFetcher = (*ObjectStore)(nil)

func NewObjectStore(client *Client, log logging.Logger) *ObjectStore {
	if log == nil {
		log = logging.NewNopLogger()
	}
	s := &ObjectStore{client: client, logger: log.Named("object-store")}
	s.open = func(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
		obj, err := client.api.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
		if err != nil {
			return nil, err
		}
		return obj, nil
	}
	return s
}

// Fetch returns the object body.  Objects larger than maxBytes are rejected
// from their stat before any body is read.
func (s *ObjectStore) Fetch(ctx context.Context, key string, maxBytes int64) ([]byte, error) {
	key = normalizeKey(key)
	if key == "" {
		return nil, ErrInvalidRequest
	}
	if s.client.isClosed() {
		return nil, ErrMinIOClientClosed
	}

	info, err := s.client.api.StatObject(ctx, s.client.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, mapError(err, key)
	}
	if maxBytes > 0 && info.Size > maxBytes {
		return nil, errors.Newf(errors.ErrCodeContentTooLarge, "object %s is %d bytes, limit %d", key, info.Size, maxBytes)
	}

	body, err := s.open(ctx, s.client.bucket, key)
	if err != nil {
		return nil, mapError(err, key)
	}
	defer body.Close()

	var r io.Reader = body
	if maxBytes > 0 {
		r = io.LimitReader(body, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, mapError(err, key)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, errors.Newf(errors.ErrCodeContentTooLarge, "object %s exceeds %d bytes", key, maxBytes)
	}

	s.logger.Debug("Object fetched", logging.String("key", key), logging.Int("bytes", len(data)))
	return data, nil
}

// Put stores data under key, sniffing the content type when not given.
func (s *ObjectStore) Put(ctx context.Context, key string, data []byte, contentType string) (*ObjectInfo, error) {
	key = normalizeKey(key)
	if key == "" {
		return nil, ErrInvalidRequest
	}
	if s.client.isClosed() {
		return nil, ErrMinIOClientClosed
	}
	if contentType == "" && len(data) > 0 {
		contentType = http.DetectContentType(data[:min(512, len(data))])
	}

	info, err := s.client.api.PutObject(ctx, s.client.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeObjectStorage, "upload failed")
	}
	return &ObjectInfo{
		Key:          info.Key,
		Size:         info.Size,
		ContentType:  contentType,
		ETag:         info.ETag,
		LastModified: info.LastModified,
	}, nil
}

// List returns objects under prefix sorted by key.  limit <= 0 means no
// limit.
func (s *ObjectStore) List(ctx context.Context, prefix string, limit int) ([]ObjectInfo, error) {
	if s.client.isClosed() {
		return nil, ErrMinIOClientClosed
	}
	ch := s.client.api.ListObjects(ctx, s.client.bucket, minio.ListObjectsOptions{
		Prefix:    strings.TrimLeft(prefix, "/"),
		Recursive: true,
	})

	var out []ObjectInfo
	for obj := range ch {
		if obj.Err != nil {
			return nil, errors.Wrap(obj.Err, errors.ErrCodeObjectStorage, "list failed")
		}
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		out = append(out, ObjectInfo{
			Key:          obj.Key,
			Size:         obj.Size,
			ContentType:  obj.ContentType,
			ETag:         obj.ETag,
			LastModified: obj.LastModified,
		})
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *ObjectStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.api.StatObject(ctx, s.client.bucket, normalizeKey(key), minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, errors.Wrap(err, errors.ErrCodeObjectStorage, "stat failed")
	}
	return true, nil
}

func (s *ObjectStore) Delete(ctx context.Context, key string) error {
	if err := s.client.api.RemoveObject(ctx, s.client.bucket, normalizeKey(key), minio.RemoveObjectOptions{}); err != nil {
		return errors.Wrap(err, errors.ErrCodeObjectStorage, "delete failed")
	}
	return nil
}

// RulesObject loads the rules document from one object.
type RulesObject struct {
	store *ObjectStore
	key   string
}

var _ domain.RulesSource = (*RulesObject)(nil)

func NewRulesObject(store *ObjectStore, key string) *RulesObject {
	return &RulesObject{store: store, key: key}
}

// LoadRules returns nil, nil when the object does not exist so that the
// curated vocabulary stays in use.
func (r *RulesObject) LoadRules(ctx context.Context) ([]byte, error) {
	data, err := r.store.Fetch(ctx, r.key, 0)
	if err != nil {
		if errors.IsCode(err, errors.ErrCodeObjectNotFound) {
			r.store.logger.Warn("Rules object missing", logging.String("key", r.key))
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func normalizeKey(key string) string {
	return strings.TrimLeft(strings.TrimSpace(key), "/")
}

func isNotFound(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || code == "NoSuchBucket"
}

func mapError(err error, key string) error {
	if isNotFound(err) {
		return errors.Wrap(err, errors.ErrCodeObjectNotFound, "object not found: "+key)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(err, errors.ErrCodeRecognitionCanceled, "fetch canceled")
	}
	return errors.Wrap(err, errors.ErrCodeObjectStorage, "fetch failed: "+key)
}

//Personal.AI order the ending
