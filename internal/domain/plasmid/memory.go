package plasmid

import (
	"context"
	"sort"
	"sync"

	"github.com/turtacn/PlasmidCatalog/pkg/errors"
	ptypes "github.com/turtacn/PlasmidCatalog/pkg/types/plasmid"
)

// MemoryCorrectionStore is a process-local CorrectionStore.  It is the
// default when no shared store is configured.
type MemoryCorrectionStore struct {
	mu      sync.RWMutex
	entries map[string]ptypes.Correction
}

func NewMemoryCorrectionStore() *MemoryCorrectionStore {
	return &MemoryCorrectionStore{entries: make(map[string]ptypes.Correction)}
}

func (s *MemoryCorrectionStore) Save(ctx context.Context, c ptypes.Correction) error {
	if err := c.Validate(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCorrectionInvalid, "invalid correction")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[c.Key()] = c
	return nil
}

// List returns corrections ordered by RecordedAt so replay preserves
// most-recent-wins.
func (s *MemoryCorrectionStore) List(ctx context.Context) ([]ptypes.Correction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ptypes.Correction, 0, len(s.entries))
	for _, c := range s.entries {
		out = append(out, c)
	}
	SortCorrections(out)
	return out, nil
}

func (s *MemoryCorrectionStore) Delete(ctx context.Context, filename, category string) error {
	key := ptypes.Correction{Filename: filename, Category: category}.Key()
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[key]; !ok {
		return errors.New(errors.ErrCodeCorrectionNotFound, "correction not found")
	}
	delete(s.entries, key)
	return nil
}

// SortCorrections orders cs by RecordedAt, then by key.
func SortCorrections(cs []ptypes.Correction) {
	sort.SliceStable(cs, func(i, j int) bool {
		if !cs[i].RecordedAt.Equal(cs[j].RecordedAt) {
			return cs[i].RecordedAt.Before(cs[j].RecordedAt)
		}
		return cs[i].Key() < cs[j].Key()
	})
}

// MemoryRecordRepository keeps records in a map.  It backs the file-based
// corpus and tests.
type MemoryRecordRepository struct {
	mu      sync.RWMutex
	records map[string]ptypes.Record
}

func NewMemoryRecordRepository(records ...ptypes.Record) *MemoryRecordRepository {
	r := &MemoryRecordRepository{records: make(map[string]ptypes.Record, len(records))}
	for _, rec := range records {
		r.records[rec.ID] = cloneRecord(rec)
	}
	return r
}

func (r *MemoryRecordRepository) List(ctx context.Context) ([]ptypes.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ptypes.Record, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, cloneRecord(rec))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRecordRepository) Get(ctx context.Context, id string) (*ptypes.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeRecordNotFound, "record %s not found", id)
	}
	out := cloneRecord(rec)
	return &out, nil
}

func (r *MemoryRecordRepository) Upsert(ctx context.Context, rec *ptypes.Record) error {
	if rec == nil || rec.ID == "" {
		return errors.InvalidParam("record id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[rec.ID] = cloneRecord(*rec)
	return nil
}

func (r *MemoryRecordRepository) UpdateFields(ctx context.Context, id string, fields map[string]ptypes.FieldValues) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return errors.Newf(errors.ErrCodeRecordNotFound, "record %s not found", id)
	}
	rec = cloneRecord(rec)
	if rec.Fields == nil {
		rec.Fields = make(map[string]ptypes.FieldValues, len(fields))
	}
	for k, v := range fields {
		if len(v) == 0 {
			delete(rec.Fields, k)
			continue
		}
		rec.Fields[k] = append(ptypes.FieldValues(nil), v...)
	}
	r.records[id] = rec
	return nil
}

func (r *MemoryRecordRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.records)), nil
}

func cloneRecord(r ptypes.Record) ptypes.Record {
	out := ptypes.Record{ID: r.ID, Name: r.Name}
	if r.Fields != nil {
		out.Fields = make(map[string]ptypes.FieldValues, len(r.Fields))
		for k, v := range r.Fields {
			out.Fields[k] = append(ptypes.FieldValues(nil), v...)
		}
	}
	return out
}

//Personal.AI order the ending
