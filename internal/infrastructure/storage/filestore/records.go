// Package filestore keeps the record corpus and the rules document in local
// JSON files.
package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	domain "github.com/turtacn/PlasmidCatalog/internal/domain/plasmid"
	"github.com/turtacn/PlasmidCatalog/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/PlasmidCatalog/pkg/errors"
	ptypes "github.com/turtacn/PlasmidCatalog/pkg/types/plasmid"
)

// RecordFile is a RecordRepository over the catalog's flat JSON document: an
// ordered array of records.  A document of the form {"records": [...]} is
// also read.  Writes rewrite the whole file through a temp file and rename,
// preserving record order.
type RecordFile struct {
	path   string
	logger logging.Logger
	mu     sync.Mutex
}

var _ domain.RecordRepository = (*RecordFile)(nil)

func NewRecordFile(path string, logger logging.Logger) *RecordFile {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &RecordFile{path: path, logger: logger.Named("record-file")}
}

// Path returns the document location.
func (f *RecordFile) Path() string { return f.path }

// List returns the records in document order.  A missing file is an empty
// corpus.
func (f *RecordFile) List(ctx context.Context) ([]ptypes.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load()
}

func (f *RecordFile) Get(ctx context.Context, id string) (*ptypes.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	recs, err := f.load()
	if err != nil {
		return nil, err
	}
	if i := indexOf(recs, id); i >= 0 {
		return &recs[i], nil
	}
	return nil, errors.New(errors.ErrCodeRecordNotFound, "record not found: "+id)
}

// Upsert replaces the record in place or appends it.
func (f *RecordFile) Upsert(ctx context.Context, rec *ptypes.Record) error {
	if rec == nil || strings.TrimSpace(rec.ID) == "" {
		return errors.New(errors.ErrCodeValidation, "record id is required")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	recs, err := f.load()
	if err != nil {
		return err
	}
	if i := indexOf(recs, rec.ID); i >= 0 {
		recs[i] = *rec
	} else {
		recs = append(recs, *rec)
	}
	return f.save(recs)
}

func (f *RecordFile) UpdateFields(ctx context.Context, id string, fields map[string]ptypes.FieldValues) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	recs, err := f.load()
	if err != nil {
		return err
	}
	i := indexOf(recs, id)
	if i < 0 {
		return errors.New(errors.ErrCodeRecordNotFound, "record not found: "+id)
	}
	if recs[i].Fields == nil {
		recs[i].Fields = make(map[string]ptypes.FieldValues, len(fields))
	}
	for k, v := range fields {
		if len(v) == 0 {
			delete(recs[i].Fields, k)
			continue
		}
		recs[i].Fields[k] = append(ptypes.FieldValues(nil), v...)
	}
	return f.save(recs)
}

func (f *RecordFile) Count(ctx context.Context) (int64, error) {
	recs, err := f.List(ctx)
	if err != nil {
		return 0, err
	}
	return int64(len(recs)), nil
}

func (f *RecordFile) load() ([]ptypes.Record, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrCodeCorpusUnavailable, "read record file")
	}
	recs, err := ParseRecords(data)
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (f *RecordFile) save(recs []ptypes.Record) error {
	if recs == nil {
		recs = []ptypes.Record{}
	}
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "encode record file")
	}
	if err := writeAtomic(f.path, data); err != nil {
		return errors.Wrap(err, errors.ErrCodeCorpusUnavailable, "write record file")
	}
	f.logger.Debug("Record file written", logging.String("path", f.path), logging.Int("records", len(recs)))
	return nil
}

// ParseRecords decodes a record document.  Empty input is an empty corpus.
func ParseRecords(data []byte) ([]ptypes.Record, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	if data[0] == '{' {
		var wrapped struct {
			Records []ptypes.Record `json:"records"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeCorpusMalformed, "decode record file")
		}
		return wrapped.Records, nil
	}
	var recs []ptypes.Record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCorpusMalformed, "decode record file")
	}
	return recs, nil
}

func indexOf(recs []ptypes.Record, id string) int {
	for i := range recs {
		if recs[i].ID == id {
			return i
		}
	}
	return -1
}

func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

//Personal.AI order the ending
