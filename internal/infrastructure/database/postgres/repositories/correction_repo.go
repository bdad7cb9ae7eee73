package repositories

import (
	"context"

	domain "github.com/turtacn/PlasmidCatalog/internal/domain/plasmid"
	"github.com/turtacn/PlasmidCatalog/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/PlasmidCatalog/pkg/errors"
	ptypes "github.com/turtacn/PlasmidCatalog/pkg/types/plasmid"
)

// CorrectionRepository stores one row per (filename, category).
type CorrectionRepository struct {
	db     DBTX
	logger logging.Logger
}

var _ domain.CorrectionStore = (*CorrectionRepository)(nil)

func NewCorrectionRepository(db DBTX, logger logging.Logger) *CorrectionRepository {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &CorrectionRepository{db: db, logger: logger.Named("correction-repo")}
}

func (r *CorrectionRepository) Save(ctx context.Context, c ptypes.Correction) error {
	if err := c.Validate(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCorrectionInvalid, "invalid correction")
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO plasmid_corrections (filename, category, old_signature, new_signature, recorded_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (filename, category) DO UPDATE
		SET old_signature = EXCLUDED.old_signature,
		    new_signature = EXCLUDED.new_signature,
		    recorded_at   = EXCLUDED.recorded_at`,
		c.Filename, c.Category, c.OldSignature, c.NewSignature, c.RecordedAt.UTC())
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeCorrectionStore, "failed to save correction")
	}
	return nil
}

// List returns corrections oldest first so replay keeps the latest edit.
func (r *CorrectionRepository) List(ctx context.Context) ([]ptypes.Correction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT filename, category, old_signature, new_signature, recorded_at
		FROM plasmid_corrections
		ORDER BY recorded_at, filename, category`)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCorrectionStore, "failed to list corrections")
	}
	defer rows.Close()

	var out []ptypes.Correction
	for rows.Next() {
		var c ptypes.Correction
		if err := rows.Scan(&c.Filename, &c.Category, &c.OldSignature, &c.NewSignature, &c.RecordedAt); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeCorrectionStore, "failed to scan correction")
		}
		c.RecordedAt = c.RecordedAt.UTC()
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCorrectionStore, "failed to iterate corrections")
	}
	domain.SortCorrections(out)
	return out, nil
}

func (r *CorrectionRepository) Delete(ctx context.Context, filename, category string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM plasmid_corrections WHERE filename = $1 AND category = $2`, filename, category)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeCorrectionStore, "failed to delete correction")
	}
	if tag.RowsAffected() == 0 {
		return errors.New(errors.ErrCodeCorrectionNotFound, "correction not found")
	}
	return nil
}

//Personal.AI order the ending
