package recognition

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/PlasmidCatalog/pkg/types/plasmid"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestLearner() *Learner {
	return NewLearner(func() time.Time { return fixedNow })
}

func TestLearner_Record(t *testing.T) {
	tests := []struct {
		name string
		c    plasmid.Correction
		ok   bool
	}{
		{"accepted", plasmid.Correction{Filename: "foo.dna", Category: "物种", OldSignature: "人", NewSignature: "小鼠"}, true},
		{"unknown category", plasmid.Correction{Filename: "foo.dna", Category: "colour", NewSignature: "red"}, false},
		{"empty filename", plasmid.Correction{Filename: " ", Category: "species", NewSignature: "小鼠"}, false},
		{"empty new signature", plasmid.Correction{Filename: "foo.dna", Category: "species", OldSignature: "人"}, false},
		{"unchanged", plasmid.Correction{Filename: "foo.dna", Category: "species", OldSignature: "Neo, Puro", NewSignature: "Puro,Neo"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLearner()
			_, ok := l.Record(tt.c)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, 1, l.Len())
			} else {
				assert.Zero(t, l.Len())
			}
		})
	}
}

func TestLearner_MostRecentWins(t *testing.T) {
	l := newTestLearner()
	_, ok := l.Record(plasmid.Correction{Filename: "foo.dna", Category: "species", OldSignature: "人", NewSignature: "小鼠"})
	require.True(t, ok)
	_, ok = l.Record(plasmid.Correction{Filename: "foo.dna", Category: "species", OldSignature: "小鼠", NewSignature: "大鼠"})
	require.True(t, ok)

	assert.Equal(t, 1, l.Len())
	r := newResult(1)
	r.Fields[CategorySpecies] = []string{"人"}
	touched := l.Apply(r, "foo.dna")
	assert.Equal(t, []Category{CategorySpecies}, touched)
	assert.Equal(t, []string{"大鼠"}, r.Fields[CategorySpecies])
	assert.Equal(t, touched, r.Corrected)

	cs := l.Corrections()
	require.Len(t, cs, 1)
	assert.Equal(t, "species", cs[0].Category)
	assert.Equal(t, fixedNow, cs[0].RecordedAt)
}

func TestLearner_ApplyIsExactFilename(t *testing.T) {
	l := newTestLearner()
	l.Record(plasmid.Correction{Filename: "foo.dna", Category: "vector", OldSignature: "pUC19", NewSignature: "pUC57"})

	r := newResult(1)
	r.Fields[CategoryVector] = []string{"pUC19"}
	assert.Nil(t, l.Apply(r, "foo2.dna"))
	assert.Equal(t, []string{"pUC19"}, r.Fields[CategoryVector])
	assert.Empty(t, r.Corrected)
}

func TestLearner_NoneClearsCategory(t *testing.T) {
	l := newTestLearner()
	_, ok := l.Record(plasmid.Correction{Filename: "x.gb", Category: "Protein tag", OldSignature: "HA", NewSignature: "none"})
	require.True(t, ok)

	r := newResult(1)
	r.Fields[CategoryProteinTag] = []string{"HA"}
	l.Apply(r, "x.gb")
	assert.Empty(t, r.Fields[CategoryProteinTag])
	assert.NotNil(t, r.Fields[CategoryProteinTag])
}

func TestLearner_AdjustIsIdempotentUnderReplay(t *testing.T) {
	l := newTestLearner()
	c := plasmid.Correction{Filename: "a.dna", Category: "promoter", OldSignature: "CMV, EF1a", NewSignature: "EF1a"}
	l.Record(c)
	first := l.Adjust("a.dna", CategoryPromoter, "CMV")
	l.Record(c)
	l.Record(c)

	assert.InDelta(t, -rejectPenalty, first, 1e-9)
	assert.InDelta(t, first, l.Adjust("a.dna", CategoryPromoter, "cmv"), 1e-9)
	assert.InDelta(t, acceptBonus, l.Adjust("a.dna", CategoryPromoter, "EF1a"), 1e-9)
	assert.Zero(t, l.Adjust("a.dna", CategoryPromoter, "PGK"))
	assert.Zero(t, l.Adjust("a.dna", CategoryVector, "CMV"))
}

func TestLearner_AdjustIsScopedToFilename(t *testing.T) {
	l := newTestLearner()
	for i := 0; i < 10; i++ {
		l.Record(plasmid.Correction{
			Filename:     fmt.Sprintf("f%d.dna", i),
			Category:     "fluorophore",
			OldSignature: "GFP",
			NewSignature: "EGFP",
		})
	}
	assert.InDelta(t, -rejectPenalty, l.Adjust("f3.dna", CategoryFluorophore, "GFP"), 1e-9)
	assert.InDelta(t, acceptBonus, l.Adjust(" f3.dna ", CategoryFluorophore, "EGFP"), 1e-9)
	assert.Zero(t, l.Adjust("other.dna", CategoryFluorophore, "GFP"))
	assert.Zero(t, l.Adjust("other.dna", CategoryFluorophore, "EGFP"))
	assert.Zero(t, l.Adjust("", CategoryFluorophore, "GFP"))
}

func TestLearner_ConcurrentAccess(t *testing.T) {
	l := newTestLearner()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("p%d.dna", i)
			l.Record(plasmid.Correction{Filename: name, Category: "vector", OldSignature: "", NewSignature: "pUC19"})
			r := newResult(1)
			l.Apply(r, name)
			_ = l.Adjust(name, CategoryVector, "pUC19")
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 8, l.Len())
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0.0, clampScore(-0.2))
	assert.Equal(t, 1.0, clampScore(1.3))
	assert.Equal(t, 0.5, clampScore(0.5))
}

//Personal.AI order the ending
