package redis

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	domain "github.com/turtacn/PlasmidCatalog/internal/domain/plasmid"
	"github.com/turtacn/PlasmidCatalog/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/PlasmidCatalog/pkg/errors"
	ptypes "github.com/turtacn/PlasmidCatalog/pkg/types/plasmid"
)

// Key layout:
//
//	{prefix}corrections:index          set of filenames with corrections
//	{prefix}corrections:file:{name}    hash category -> JSON correction
const (
	correctionsKey = "corrections"
	indexKey       = "index"
	fileKey        = "file"
)

// CorrectionStore persists corrections in Redis so every instance replays
// the same table on start-up.
type CorrectionStore struct {
	client *Client
	logger logging.Logger
}

var _ domain.CorrectionStore = (*CorrectionStore)(nil)

func NewCorrectionStore(client *Client, log logging.Logger) *CorrectionStore {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &CorrectionStore{client: client, logger: log}
}

func (s *CorrectionStore) indexKey() string {
	return s.client.Key(correctionsKey, indexKey)
}

func (s *CorrectionStore) fileKey(filename string) string {
	return s.client.Key(correctionsKey, fileKey, filename)
}

// Save overwrites the correction for (filename, category).
func (s *CorrectionStore) Save(ctx context.Context, c ptypes.Correction) error {
	if err := c.Validate(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCorrectionInvalid, "invalid correction")
	}
	if s.client.isClosed() {
		return ErrClientClosed
	}
	payload, err := json.Marshal(c)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "encode correction")
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, s.fileKey(c.Filename), c.Category, payload)
	pipe.SAdd(ctx, s.indexKey(), c.Filename)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, errors.ErrCodeCorrectionStore, "save correction")
	}
	return nil
}

// List returns every stored correction ordered by RecordedAt.  Entries that
// fail to decode are logged and skipped.
func (s *CorrectionStore) List(ctx context.Context) ([]ptypes.Correction, error) {
	names, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCorrectionStore, "list corrected files")
	}
	if len(names) == 0 {
		return []ptypes.Correction{}, nil
	}

	pipe := s.client.GetUnderlyingClient().Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(names))
	for i, name := range names {
		cmds[i] = pipe.HGetAll(ctx, s.fileKey(name))
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, errors.Wrap(err, errors.ErrCodeCorrectionStore, "read corrections")
	}

	out := make([]ptypes.Correction, 0, len(names))
	for i, cmd := range cmds {
		for category, raw := range cmd.Val() {
			var c ptypes.Correction
			if err := json.Unmarshal([]byte(raw), &c); err != nil {
				s.logger.Warn("skipping undecodable correction",
					logging.Filename(names[i]), logging.Category(category), logging.Err(err))
				continue
			}
			out = append(out, c)
		}
	}
	domain.SortCorrections(out)
	return out, nil
}

// Delete removes one correction and drops the filename from the index once
// its hash is empty.
func (s *CorrectionStore) Delete(ctx context.Context, filename, category string) error {
	n, err := s.client.HDel(ctx, s.fileKey(filename), category).Result()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeCorrectionStore, "delete correction")
	}
	if n == 0 {
		return errors.New(errors.ErrCodeCorrectionNotFound, "correction not found")
	}
	remaining, err := s.client.HGetAll(ctx, s.fileKey(filename)).Result()
	if err == nil && len(remaining) == 0 {
		s.client.GetUnderlyingClient().SRem(ctx, s.indexKey(), filename)
	}
	return nil
}

//Personal.AI order the ending
