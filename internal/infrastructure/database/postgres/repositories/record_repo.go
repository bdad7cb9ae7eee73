// Package repositories holds the PostgreSQL implementations of the plasmid
// domain's persistence contracts.
package repositories

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/turtacn/PlasmidCatalog/internal/domain/plasmid"
	"github.com/turtacn/PlasmidCatalog/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/PlasmidCatalog/pkg/errors"
	ptypes "github.com/turtacn/PlasmidCatalog/pkg/types/plasmid"
)

// DBTX is the part of *pgxpool.Pool the repositories need.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ DBTX = (*pgxpool.Pool)(nil)

// RecordRepository stores records in plasmid_records with native fields in
// a JSONB column.
type RecordRepository struct {
	db     DBTX
	logger logging.Logger
}

var _ domain.RecordRepository = (*RecordRepository)(nil)

func NewRecordRepository(db DBTX, logger logging.Logger) *RecordRepository {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &RecordRepository{db: db, logger: logger.Named("record-repo")}
}

func (r *RecordRepository) List(ctx context.Context) ([]ptypes.Record, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, fields FROM plasmid_records ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCorpusUnavailable, "failed to list records")
	}
	defer rows.Close()

	var out []ptypes.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			r.logger.Warn("Skipping undecodable record", logging.Err(err))
			continue
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCorpusUnavailable, "failed to iterate records")
	}
	return out, nil
}

func (r *RecordRepository) Get(ctx context.Context, id string) (*ptypes.Record, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, fields FROM plasmid_records WHERE id = $1`, id)
	rec, err := scanRecord(row)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, errors.New(errors.ErrCodeRecordNotFound, "record not found: "+id)
		}
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to get record")
	}
	return rec, nil
}

func (r *RecordRepository) Upsert(ctx context.Context, rec *ptypes.Record) error {
	if rec == nil || strings.TrimSpace(rec.ID) == "" {
		return errors.New(errors.ErrCodeValidation, "record id is required")
	}
	fields, err := encodeFields(rec.Fields)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO plasmid_records (id, name, fields, created_at, updated_at)
		VALUES ($1, $2, $3::jsonb, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, fields = EXCLUDED.fields, updated_at = NOW()`,
		rec.ID, rec.Name, fields)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to upsert record")
	}
	return nil
}

// UpdateFields merges non-empty fields into the stored JSONB and removes keys
// mapped to an empty slice, in one statement.
func (r *RecordRepository) UpdateFields(ctx context.Context, id string, fields map[string]ptypes.FieldValues) error {
	set := make(map[string]ptypes.FieldValues, len(fields))
	var remove []string
	for k, v := range fields {
		if len(v) == 0 {
			remove = append(remove, k)
		} else {
			set[k] = v
		}
	}
	sort.Strings(remove)
	patch, err := encodeFields(set)
	if err != nil {
		return err
	}
	if remove == nil {
		remove = []string{}
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE plasmid_records
		SET fields = (fields || $2::jsonb) - $3::text[], updated_at = NOW()
		WHERE id = $1`,
		id, patch, remove)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to update record fields")
	}
	if tag.RowsAffected() == 0 {
		return errors.New(errors.ErrCodeRecordNotFound, "record not found: "+id)
	}
	return nil
}

func (r *RecordRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM plasmid_records`).Scan(&n); err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to count records")
	}
	return n, nil
}

func scanRecord(row pgx.Row) (*ptypes.Record, error) {
	var (
		rec ptypes.Record
		raw []byte
	)
	if err := row.Scan(&rec.ID, &rec.Name, &raw); err != nil {
		return nil, err
	}
	fields, err := decodeFields(raw)
	if err != nil {
		return nil, err
	}
	rec.Fields = fields
	return &rec, nil
}

// encodeFields renders fields as a JSON object of string arrays.
func encodeFields(fields map[string]ptypes.FieldValues) (string, error) {
	out := make(map[string][]string, len(fields))
	for k, v := range fields {
		if len(v) > 0 {
			out[k] = []string(v)
		}
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode record fields")
	}
	return string(b), nil
}

// decodeFields accepts the stored object.  Values may be strings or arrays,
// matching what FieldValues accepts, so rows written by other tools load too.
func decodeFields(raw []byte) (map[string]ptypes.FieldValues, error) {
	out := make(map[string]ptypes.FieldValues)
	if len(raw) == 0 {
		return out, nil
	}
	var m map[string]ptypes.FieldValues
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCorpusMalformed, "record fields are not a JSON object")
	}
	for k, v := range m {
		if len(v) > 0 {
			out[k] = v
		}
	}
	return out, nil
}

//Personal.AI order the ending
