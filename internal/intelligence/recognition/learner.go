package recognition

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/turtacn/PlasmidCatalog/pkg/types/plasmid"
)

// ---------------------------------------------------------------------------
// Correction learner
// ---------------------------------------------------------------------------

// Trust adjustments derived from corrections and corpus frequency.
const (
	acceptBonus    = 0.05
	rejectPenalty  = 0.15
	frequencyBonus = 0.02
	frequencyCap   = 5
)

type correctionEntry struct {
	correction plasmid.Correction
	category   Category
	values     []string
	accepted   map[string]bool
	rejected   map[string]bool
}

// Learner stores the most recent correction per (filename, category) and
// derives per-value trust from it.  Trust never leaves the corrected
// filename, and replaying the same corrections leaves it unchanged.
type Learner struct {
	mu      sync.RWMutex
	entries map[string]map[Category]*correctionEntry
	now     func() time.Time
}

// NewLearner returns an empty learner.  now stamps corrections that arrive
// without a time; nil means time.Now.
func NewLearner(now func() time.Time) *Learner {
	if now == nil {
		now = time.Now
	}
	return &Learner{
		entries: make(map[string]map[Category]*correctionEntry),
		now:     now,
	}
}

// Record stores c.  It reports false, leaving the learner untouched, when the
// category is unknown, the filename or new signature is empty, or the new
// signature equals the old one.
func (l *Learner) Record(c plasmid.Correction) (Category, bool) {
	filename := normalizeText(c.Filename)
	cat, ok := ParseCategory(c.Category)
	if filename == "" || !ok {
		return "", false
	}
	newValues := plasmid.ParseSignature(normalizeText(c.NewSignature))
	if len(newValues) == 0 {
		return cat, false
	}
	oldValues := plasmid.ParseSignature(normalizeText(c.OldSignature))
	if plasmid.SignatureOf(newValues) == plasmid.SignatureOf(oldValues) {
		return cat, false
	}

	values := make([]string, 0, len(newValues))
	seen := make(map[string]bool, len(newValues))
	for _, v := range newValues {
		if strings.EqualFold(v, plasmid.NoneValue) {
			// An explicit "none" clears the category.
			values = values[:0]
			break
		}
		if key := strings.ToLower(v); !seen[key] {
			seen[key] = true
			values = append(values, v)
		}
	}
	sortValues(values)

	c.Filename = filename
	c.Category = string(cat)
	c.OldSignature = plasmid.SignatureOf(oldValues)
	c.NewSignature = plasmid.SignatureOf(newValues)
	if c.RecordedAt.IsZero() {
		c.RecordedAt = l.now()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	byCat := l.entries[filename]
	if byCat == nil {
		byCat = make(map[Category]*correctionEntry)
		l.entries[filename] = byCat
	}
	byCat[cat] = newCorrectionEntry(c, cat, values, oldValues)
	return cat, true
}

// newCorrectionEntry marks values kept or introduced by the correction as
// accepted and values it removed as rejected.
func newCorrectionEntry(c plasmid.Correction, cat Category, values, oldValues []string) *correctionEntry {
	e := &correctionEntry{
		correction: c,
		category:   cat,
		values:     values,
		accepted:   make(map[string]bool, len(values)),
		rejected:   make(map[string]bool, len(oldValues)),
	}
	for _, v := range values {
		e.accepted[strings.ToLower(v)] = true
	}
	for _, v := range oldValues {
		key := strings.ToLower(v)
		if !e.accepted[key] && !strings.EqualFold(v, plasmid.NoneValue) {
			e.rejected[key] = true
		}
	}
	return e
}

// Apply replaces every corrected category of r with the stored values for
// filename and returns the categories it touched.
func (l *Learner) Apply(r *Result, filename string) []Category {
	filename = normalizeText(filename)
	l.mu.RLock()
	defer l.mu.RUnlock()
	byCat := l.entries[filename]
	if len(byCat) == 0 {
		return nil
	}
	touched := make([]Category, 0, len(byCat))
	for _, c := range orderedCategories {
		e, ok := byCat[c]
		if !ok {
			continue
		}
		r.Fields[c] = append([]string{}, e.values...)
		touched = append(touched, c)
	}
	r.Corrected = touched
	return touched
}

// Adjust returns the score shift learned for value within c on filename.
// Corrections recorded for other filenames never contribute.
func (l *Learner) Adjust(filename string, c Category, value string) float64 {
	filename = normalizeText(filename)
	if filename == "" {
		return 0
	}
	key := strings.ToLower(strings.TrimSpace(value))
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.entries[filename][c]
	switch {
	case !ok:
		return 0
	case e.accepted[key]:
		return acceptBonus
	case e.rejected[key]:
		return -rejectPenalty
	default:
		return 0
	}
}

// Corrections returns the stored corrections ordered by filename and category.
func (l *Learner) Corrections() []plasmid.Correction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]plasmid.Correction, 0, len(l.entries))
	for _, byCat := range l.entries {
		for _, e := range byCat {
			out = append(out, e.correction)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Filename != out[j].Filename {
			return out[i].Filename < out[j].Filename
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// Len is the number of stored (filename, category) corrections.
func (l *Learner) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	n := 0
	for _, byCat := range l.entries {
		n += len(byCat)
	}
	return n
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func clampScore(s float64) float64 {
	switch {
	case s < 0:
		return 0
	case s > 1:
		return 1
	default:
		return s
	}
}

//Personal.AI order the ending
