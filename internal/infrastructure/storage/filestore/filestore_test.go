package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/PlasmidCatalog/pkg/errors"
	ptypes "github.com/turtacn/PlasmidCatalog/pkg/types/plasmid"
)

const sampleDoc = `[
	{"id": "1", "name": "pcDNA3.1-Flag-hTP53", "载体": "pcDNA3.1", "物种": ["人"]},
	{"id": "2", "name": "pLKO.1-shGFP", "载体": ["pLKO.1-puro"], "荧光": "EGFP"}
]`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestParseRecords(t *testing.T) {
	recs, err := ParseRecords([]byte(sampleDoc))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, ptypes.FieldValues{"pcDNA3.1"}, recs[0].Fields["载体"])

	recs, err = ParseRecords([]byte(`{"records": [{"id": "9", "name": "x"}]}`))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "9", recs[0].ID)

	recs, err = ParseRecords([]byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, recs)

	_, err = ParseRecords([]byte(`[{"id": 1},`))
	assert.True(t, errors.IsCode(err, errors.ErrCodeCorpusMalformed))
}

func TestRecordFile_MissingIsEmpty(t *testing.T) {
	f := NewRecordFile(filepath.Join(t.TempDir(), "nope.json"), nil)
	recs, err := f.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, recs)

	n, err := f.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRecordFile_ReadWrite(t *testing.T) {
	ctx := context.Background()
	f := NewRecordFile(writeFile(t, "records.json", sampleDoc), nil)

	got, err := f.Get(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "pLKO.1-shGFP", got.Name)

	_, err = f.Get(ctx, "3")
	assert.True(t, errors.IsCode(err, errors.ErrCodeRecordNotFound))

	require.NoError(t, f.UpdateFields(ctx, "1", map[string]ptypes.FieldValues{
		"物种": {},
		"标签": {"Flag"},
	}))
	require.NoError(t, f.Upsert(ctx, &ptypes.Record{ID: "3", Name: "pEGFP-N1"}))
	require.NoError(t, f.Upsert(ctx, &ptypes.Record{ID: "2", Name: "renamed"}))

	recs, err := f.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{recs[0].ID, recs[1].ID, recs[2].ID}, "document order is kept")
	assert.NotContains(t, recs[0].Fields, "物种")
	assert.Equal(t, ptypes.FieldValues{"Flag"}, recs[0].Fields["标签"])
	assert.Equal(t, "renamed", recs[1].Name)

	err = f.UpdateFields(ctx, "404", map[string]ptypes.FieldValues{"a": {"b"}})
	assert.True(t, errors.IsCode(err, errors.ErrCodeRecordNotFound))
	assert.True(t, errors.IsCode(f.Upsert(ctx, &ptypes.Record{}), errors.ErrCodeValidation))

	_, err = os.Stat(f.Path() + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestRulesFile(t *testing.T) {
	ctx := context.Background()

	data, err := NewRulesFile("").LoadRules(ctx)
	require.NoError(t, err)
	assert.Nil(t, data)

	data, err = NewRulesFile(filepath.Join(t.TempDir(), "missing.json")).LoadRules(ctx)
	require.NoError(t, err)
	assert.Nil(t, data)

	p := writeFile(t, "rules.json", `{"carriers": ["pMyVec-1"]}`)
	data, err = NewRulesFile(p).LoadRules(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"carriers": ["pMyVec-1"]}`, string(data))
}

//Personal.AI order the ending
