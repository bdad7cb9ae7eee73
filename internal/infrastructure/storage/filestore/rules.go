package filestore

import (
	"context"
	stderrors "errors"
	"os"

	domain "github.com/turtacn/PlasmidCatalog/internal/domain/plasmid"
	"github.com/turtacn/PlasmidCatalog/pkg/errors"
)

// RulesFile reads the rules document from disk on every LoadRules so that a
// reload picks up edits.
type RulesFile struct {
	path string
}

var _ domain.RulesSource = (*RulesFile)(nil)

func NewRulesFile(path string) *RulesFile {
	return &RulesFile{path: path}
}

func (r *RulesFile) Path() string { return r.path }

// LoadRules returns nil, nil when no path is set or the file does not exist.
// The engine then runs on its curated vocabulary.
func (r *RulesFile) LoadRules(ctx context.Context) ([]byte, error) {
	if r.path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(r.path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrCodeRulesDocumentUnavailable, "read rules file")
	}
	return data, nil
}

//Personal.AI order the ending
