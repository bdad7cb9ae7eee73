package recognition

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/turtacn/PlasmidCatalog/pkg/types/plasmid"
)

// ---------------------------------------------------------------------------
// Vocabulary
// ---------------------------------------------------------------------------

// vocabEntry is one scannable spelling.  For aliases text differs from value.
type vocabEntry struct {
	category Category
	text     string
	lower    string
	value    string
	alias    bool
}

// Vocabulary is an immutable, versioned set of known values per category plus
// the backbone profile table.  A new Vocabulary is produced by LoadRules and
// MergeCorpus; existing instances are never modified, so readers may hold one
// for the duration of a call without locking.
type Vocabulary struct {
	version   uint64
	values    map[Category][]string
	canonical map[Category]map[string]string
	aliases   map[Category]map[string]string
	entries   []vocabEntry
	profiles  map[string]BackboneProfile
	frequency map[Category]map[string]int
	records   int
}

// LoadRules builds a vocabulary from the curated lists extended by doc.  A nil
// doc yields the curated vocabulary alone.  The result has version 1.
func LoadRules(doc *RulesDocument) *Vocabulary {
	b := newVocabularyBuilder()
	for _, c := range orderedCategories {
		for _, v := range doc.Values(c) {
			b.add(c, v, 1)
		}
		for _, v := range curatedValues(c) {
			b.add(c, v, 1)
		}
	}
	for _, a := range curatedAliases {
		b.addAlias(a)
	}
	for _, bb := range curatedBackbones {
		b.profiles[bb.name] = BackboneProfile{EColi: bb.ecoli, Mammal: bb.mammal}
	}
	if doc != nil {
		for _, name := range sortedProfileNames(doc.Profiles) {
			p := doc.Profiles[name]
			b.profiles[name] = p.clone()
			b.add(CategoryVector, name, 1)
		}
	}
	return b.build(1, 0)
}

// MergeCorpus returns a new vocabulary extended with every value found in
// records.  Field names are mapped with ParseCategory; unknown fields, empty
// values, "none" and single-character values are skipped.  Merging the same
// snapshot twice yields the same value sets.
func (v *Vocabulary) MergeCorpus(records []plasmid.Record) *Vocabulary {
	b := v.builder()
	counts := make(map[Category]map[string]int)
	for _, rec := range records {
		for field, values := range rec.Fields {
			c, ok := ParseCategory(field)
			if !ok {
				continue
			}
			for _, raw := range values {
				val, ok := cleanValue(raw)
				if !ok || utf8.RuneCountInString(val) < 2 {
					continue
				}
				b.add(c, val, 0)
				lower := strings.ToLower(val)
				if counts[c] == nil {
					counts[c] = make(map[string]int)
				}
				counts[c][lower]++
			}
		}
	}
	for c, m := range counts {
		if b.frequency[c] == nil {
			b.frequency[c] = make(map[string]int)
		}
		for lower, n := range m {
			if n > b.frequency[c][lower] {
				b.frequency[c][lower] = n
			}
		}
	}
	return b.build(v.version+1, len(records))
}

// withVersion returns a shallow copy stamped with version.
func (v *Vocabulary) withVersion(version uint64) *Vocabulary {
	cp := *v
	cp.version = version
	return &cp
}

// Version increases with every rebuild.
func (v *Vocabulary) Version() uint64 { return v.version }

// Records is the number of corpus records merged into this vocabulary.
func (v *Vocabulary) Records() int { return v.records }

// Values returns the sorted values known for c.
func (v *Vocabulary) Values(c Category) []string {
	return append([]string(nil), v.values[c]...)
}

// Contains reports whether value is known for c, ignoring case.
func (v *Vocabulary) Contains(c Category, value string) bool {
	_, ok := v.Canonical(c, value)
	return ok
}

// Canonical returns the vocabulary spelling of value within c.  Alias
// spellings ("AmpR", "c-Myc") resolve to the value they stand for.
func (v *Vocabulary) Canonical(c Category, value string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(value))
	if s, ok := v.canonical[c][key]; ok {
		return s, true
	}
	s, ok := v.aliases[c][key]
	return s, ok
}

// Frequency returns how many corpus records carry value for c.
func (v *Vocabulary) Frequency(c Category, value string) int {
	return v.frequency[c][strings.ToLower(strings.TrimSpace(value))]
}

// Size returns the number of values known for c.
func (v *Vocabulary) Size(c Category) int { return len(v.values[c]) }

// Sizes returns the value count of every category.
func (v *Vocabulary) Sizes() map[Category]int {
	out := make(map[Category]int, len(orderedCategories))
	for _, c := range orderedCategories {
		out[c] = len(v.values[c])
	}
	return out
}

// BackboneProfile returns the markers of the named backbone.  The lookup is
// exact and case-sensitive; unknown names yield an empty profile.
func (v *Vocabulary) BackboneProfile(name string) BackboneProfile {
	p, ok := v.profiles[name]
	if !ok {
		return BackboneProfile{}
	}
	return p.clone()
}

// ProfileCount is the number of backbones with a known profile.
func (v *Vocabulary) ProfileCount() int { return len(v.profiles) }

// ---------------------------------------------------------------------------
// Builder
// ---------------------------------------------------------------------------

type vocabularyBuilder struct {
	values    map[Category][]string
	canonical map[Category]map[string]string
	aliases   []valueAlias
	profiles  map[string]BackboneProfile
	frequency map[Category]map[string]int
}

func newVocabularyBuilder() *vocabularyBuilder {
	return &vocabularyBuilder{
		values:    make(map[Category][]string),
		canonical: make(map[Category]map[string]string),
		profiles:  make(map[string]BackboneProfile),
		frequency: make(map[Category]map[string]int),
	}
}

func (v *Vocabulary) builder() *vocabularyBuilder {
	b := newVocabularyBuilder()
	for c, vs := range v.values {
		b.values[c] = append([]string(nil), vs...)
	}
	for c, m := range v.canonical {
		cm := make(map[string]string, len(m))
		for k, s := range m {
			cm[k] = s
		}
		b.canonical[c] = cm
	}
	for _, e := range v.entries {
		if e.alias {
			b.aliases = append(b.aliases, valueAlias{text: e.text, category: e.category, value: e.value})
		}
	}
	for n, p := range v.profiles {
		b.profiles[n] = p
	}
	for c, m := range v.frequency {
		fm := make(map[string]int, len(m))
		for k, n := range m {
			fm[k] = n
		}
		b.frequency[c] = fm
	}
	return b
}

// add registers value under c.  The first spelling seen for a case-folded
// value is kept.  minRunes guards against noise from corpus data.
func (b *vocabularyBuilder) add(c Category, value string, minRunes int) {
	val, ok := cleanValue(value)
	if !ok || utf8.RuneCountInString(val) < minRunes {
		return
	}
	lower := strings.ToLower(val)
	m := b.canonical[c]
	if m == nil {
		m = make(map[string]string)
		b.canonical[c] = m
	}
	if _, exists := m[lower]; exists {
		return
	}
	m[lower] = val
	b.values[c] = append(b.values[c], val)
}

func (b *vocabularyBuilder) addAlias(a valueAlias) {
	b.aliases = append(b.aliases, a)
}

func (b *vocabularyBuilder) build(version uint64, records int) *Vocabulary {
	v := &Vocabulary{
		version:   version,
		values:    b.values,
		canonical: b.canonical,
		profiles:  b.profiles,
		frequency: b.frequency,
		records:   records,
		aliases:   make(map[Category]map[string]string),
	}
	for c := range v.values {
		sortValues(v.values[c])
	}

	seen := make(map[string]bool)
	for _, c := range orderedCategories {
		for _, val := range v.values[c] {
			v.entries = append(v.entries, vocabEntry{
				category: c,
				text:     val,
				lower:    lowerASCII(val),
				value:    val,
			})
			seen[string(c)+"\x00"+strings.ToLower(val)] = true
		}
	}
	for _, a := range b.aliases {
		key := string(a.category) + "\x00" + strings.ToLower(a.text)
		if seen[key] {
			continue
		}
		seen[key] = true
		canon, ok := v.canonical[a.category][strings.ToLower(a.value)]
		if !ok {
			canon = a.value
		}
		if v.aliases[a.category] == nil {
			v.aliases[a.category] = make(map[string]string)
		}
		v.aliases[a.category][strings.ToLower(a.text)] = canon
		v.entries = append(v.entries, vocabEntry{
			category: a.category,
			text:     a.text,
			lower:    lowerASCII(a.text),
			value:    canon,
			alias:    true,
		})
	}
	// Longest spellings first so nested matches are easy to spot in traces.
	sort.SliceStable(v.entries, func(i, j int) bool {
		return len(v.entries[i].lower) > len(v.entries[j].lower)
	})
	return v
}

//Personal.AI order the ending
