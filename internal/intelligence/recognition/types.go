package recognition

import (
	"sort"
	"strings"
)

// ---------------------------------------------------------------------------
// Core data structures
// ---------------------------------------------------------------------------

// Candidate is one proposed value produced by a matcher pass.  Start and End
// are byte offsets into the normalised filename; both are -1 when the
// candidate is not anchored to the filename (path, content, backbone).
type Candidate struct {
	Category  Category `json:"category"`
	Value     string   `json:"value"`
	Text      string   `json:"text,omitempty"`
	Source    Source   `json:"source"`
	Score     float64  `json:"score"`
	Start     int      `json:"start"`
	End       int      `json:"end"`
	Confirmed bool     `json:"confirmed,omitempty"`
}

// HasSpan reports whether the candidate is anchored to the filename.
func (c *Candidate) HasSpan() bool {
	return c.Start >= 0 && c.End > c.Start
}

func (c *Candidate) spanLen() int {
	if !c.HasSpan() {
		return 0
	}
	return c.End - c.Start
}

// nestedIn reports whether c's span lies inside o's span and is strictly shorter.
func (c *Candidate) nestedIn(o *Candidate) bool {
	if !c.HasSpan() || !o.HasSpan() {
		return false
	}
	return o.Start <= c.Start && c.End <= o.End && o.spanLen() > c.spanLen()
}

func (c *Candidate) overlaps(o *Candidate) bool {
	if !c.HasSpan() || !o.HasSpan() {
		return false
	}
	return c.Start < o.End && o.Start < c.End
}

func newSpanCandidate(cat Category, value, text string, src Source, score float64, start, end int, confirmed bool) Candidate {
	return Candidate{
		Category:  cat,
		Value:     value,
		Text:      text,
		Source:    src,
		Score:     score,
		Start:     start,
		End:       end,
		Confirmed: confirmed,
	}
}

func newCandidate(cat Category, value string, src Source, score float64, confirmed bool) Candidate {
	return newSpanCandidate(cat, value, value, src, score, -1, -1, confirmed)
}

// Result is the outcome of one recognition call.  Every category is present
// in Fields; categories without evidence map to an empty slice.
type Result struct {
	Fields            map[Category][]string `json:"fields"`
	Description       string                `json:"description"`
	Evaluated         map[Category]bool     `json:"evaluated,omitempty"`
	VocabularyVersion uint64                `json:"vocabulary_version"`
	Corrected         []Category            `json:"corrected,omitempty"`
}

func newResult(version uint64) *Result {
	r := &Result{
		Fields:            make(map[Category][]string, len(orderedCategories)),
		VocabularyVersion: version,
	}
	for _, c := range orderedCategories {
		r.Fields[c] = []string{}
	}
	return r
}

// Values returns the values recognised for c.
func (r *Result) Values(c Category) []string {
	if r == nil {
		return nil
	}
	return r.Fields[c]
}

// Has reports whether value (case-insensitive) was recognised for c.
func (r *Result) Has(c Category, value string) bool {
	for _, v := range r.Values(c) {
		if strings.EqualFold(v, value) {
			return true
		}
	}
	return false
}

// Empty reports whether no category carries a value.
func (r *Result) Empty() bool {
	if r == nil {
		return true
	}
	for _, vs := range r.Fields {
		if len(vs) > 0 {
			return false
		}
	}
	return true
}

// Describe renders a result in the fixed category order as
// "Label: v1, v2; Label: v3".  Empty categories are omitted.
func Describe(r *Result) string {
	if r == nil {
		return ""
	}
	segments := make([]string, 0, len(orderedCategories))
	for _, c := range orderedCategories {
		vs := r.Fields[c]
		if len(vs) == 0 {
			continue
		}
		segments = append(segments, c.Label()+": "+strings.Join(vs, ", "))
	}
	return strings.Join(segments, "; ")
}

// sortValues orders values case-insensitively with a byte-order tiebreak.
func sortValues(vs []string) {
	sort.Slice(vs, func(i, j int) bool {
		li, lj := strings.ToLower(vs[i]), strings.ToLower(vs[j])
		if li != lj {
			return li < lj
		}
		return vs[i] < vs[j]
	})
}

// ---------------------------------------------------------------------------
// Configuration
// ---------------------------------------------------------------------------

// EngineConfig holds tuneable parameters of the recognition pipeline.
type EngineConfig struct {
	// MinMatchScore drops candidates whose adjusted score falls below it.
	MinMatchScore float64 `json:"min_match_score" yaml:"min_match_score"`
	// MaxContentBytes bounds decoded content; larger inputs are truncated.
	MaxContentBytes int64 `json:"max_content_bytes" yaml:"max_content_bytes"`
	// MaxAnnotations bounds the annotation lines scanned per content document.
	MaxAnnotations int `json:"max_annotations" yaml:"max_annotations"`
}

// DefaultEngineConfig returns production defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		MinMatchScore:   0.25,
		MaxContentBytes: 32 << 20,
		MaxAnnotations:  5000,
	}
}

func (c EngineConfig) sanitized() EngineConfig {
	d := DefaultEngineConfig()
	if c.MinMatchScore < 0 {
		c.MinMatchScore = 0
	}
	if c.MinMatchScore > 1 {
		c.MinMatchScore = 1
	}
	if c.MaxContentBytes <= 0 {
		c.MaxContentBytes = d.MaxContentBytes
	}
	if c.MaxAnnotations <= 0 {
		c.MaxAnnotations = d.MaxAnnotations
	}
	return c
}

//Personal.AI order the ending
