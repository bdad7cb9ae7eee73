package recognition

import (
	"sort"
	"strings"
)

// ---------------------------------------------------------------------------
// Disambiguation
// ---------------------------------------------------------------------------

// disambiguator turns raw candidates into final per-category value sets.
// filename scopes learned trust; it may be empty.
type disambiguator struct {
	vocab    *Vocabulary
	learner  *Learner
	filename string
	minScore float64
}

// resolution is the disambiguator output.
type resolution struct {
	fields map[Category][]string
	kept   []Candidate
}

func (d *disambiguator) resolve(cands []Candidate) resolution {
	// 1. Apply learned trust and drop unusable or low-scoring candidates.
	scored := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		val, ok := cleanValue(c.Value)
		if !ok {
			continue
		}
		c.Value = val
		c.Score = d.score(c)
		if c.Score < d.minScore {
			continue
		}
		scored = append(scored, c)
	}

	// 2. Cross-category suppression.
	scored = suppressInsideVector(scored)
	scored = suppressInsideTetSystem(scored)
	scored = suppressGeneOverlaps(scored)

	// 3. Containment within each category.
	kept := suppressContained(scored)

	// 4. Backbone-driven resistance inference.
	kept = append(kept, d.inferFromBackbones(kept)...)

	// 5. Canonical spelling, de-duplication and ordering.
	return resolution{fields: d.canonicalize(kept), kept: kept}
}

func (d *disambiguator) score(c Candidate) float64 {
	s := c.Score
	if d.learner != nil {
		s += d.learner.Adjust(d.filename, c.Category, c.Value)
	}
	if !c.Confirmed {
		s += frequencyBonus * float64(minInt(d.vocab.Frequency(c.Category, c.Value), frequencyCap))
	}
	return clampScore(s)
}

// suppressInsideVector drops unconfirmed candidates that sit inside a
// dictionary-confirmed vector name, e.g. "cDNA" inside "pcDNA3.1".
func suppressInsideVector(cands []Candidate) []Candidate {
	var vectors []*Candidate
	for i := range cands {
		if cands[i].Category == CategoryVector && cands[i].Confirmed && cands[i].HasSpan() {
			vectors = append(vectors, &cands[i])
		}
	}
	if len(vectors) == 0 {
		return cands
	}
	out := cands[:0:0]
	for i := range cands {
		c := &cands[i]
		drop := false
		if c.Category != CategoryVector && !c.Confirmed && c.HasSpan() {
			for _, v := range vectors {
				if v.Start <= c.Start && c.End <= v.End {
					drop = true
					break
				}
			}
		}
		if !drop {
			out = append(out, *c)
		}
	}
	return out
}

// suppressInsideTetSystem drops resistance candidates nested in a Tet system
// match, so "Tet-On" never yields the tetracycline marker "Tet".
func suppressInsideTetSystem(cands []Candidate) []Candidate {
	var systems []*Candidate
	for i := range cands {
		if cands[i].Category == CategoryTetInducible && cands[i].HasSpan() {
			systems = append(systems, &cands[i])
		}
	}
	if len(systems) == 0 {
		return cands
	}
	out := cands[:0:0]
	for i := range cands {
		c := &cands[i]
		drop := false
		if c.Category == CategoryEColiResistance || c.Category == CategoryMammalResistance {
			for _, s := range systems {
				if c.nestedIn(s) {
					drop = true
					break
				}
			}
		}
		if !drop {
			out = append(out, *c)
		}
	}
	return out
}

// geneBlockers are categories whose matches cannot double as a target gene.
var geneBlockers = map[Category]bool{
	CategoryVector:           true,
	CategoryEColiResistance:  true,
	CategoryMammalResistance: true,
	CategoryFunction:         true,
	CategoryInsertType:       true,
	CategoryProteinTag:       true,
	CategoryFluorophore:      true,
	CategoryPromoter:         true,
	CategoryTetInducible:     true,
}

// suppressGeneOverlaps drops target-gene candidates whose span overlaps a
// match of a more reliable category (the "MYC" gene under a "Myc" tag).
func suppressGeneOverlaps(cands []Candidate) []Candidate {
	out := cands[:0:0]
	for i := range cands {
		c := &cands[i]
		drop := false
		if c.Category == CategoryTargetGene && c.HasSpan() {
			for j := range cands {
				if geneBlockers[cands[j].Category] && c.overlaps(&cands[j]) {
					drop = true
					break
				}
			}
		}
		if !drop {
			out = append(out, *c)
		}
	}
	return out
}

// suppressContained drops, within a category, candidates dominated by a
// longer candidate of at least equal score.  Anchored pairs compare spans;
// otherwise values are compared as case-insensitive substrings, and two
// dictionary-confirmed values never suppress each other.
func suppressContained(cands []Candidate) []Candidate {
	out := cands[:0:0]
	for i := range cands {
		a := &cands[i]
		dominated := false
		for j := range cands {
			if i == j || cands[j].Category != a.Category {
				continue
			}
			if dominates(&cands[j], a) {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, *a)
		}
	}
	return out
}

func dominates(b, a *Candidate) bool {
	if b.Score < a.Score {
		return false
	}
	if a.HasSpan() && b.HasSpan() {
		return a.nestedIn(b)
	}
	if a.Confirmed && b.Confirmed {
		return false
	}
	la, lb := strings.ToLower(a.Value), strings.ToLower(b.Value)
	return len(lb) > len(la) && strings.Contains(lb, la)
}

func (d *disambiguator) inferFromBackbones(kept []Candidate) []Candidate {
	var out []Candidate
	seen := make(map[string]bool)
	for i := range kept {
		if kept[i].Category != CategoryVector {
			continue
		}
		name, ok := d.vocab.Canonical(CategoryVector, kept[i].Value)
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		p := d.vocab.BackboneProfile(name)
		for _, v := range p.EColi {
			out = append(out, newCandidate(CategoryEColiResistance, v, SourceBackbone, ScoreBackbone, true))
		}
		for _, v := range p.Mammal {
			out = append(out, newCandidate(CategoryMammalResistance, v, SourceBackbone, ScoreBackbone, true))
		}
	}
	filtered := out[:0]
	for _, c := range out {
		if c.Score = d.score(c); c.Score >= d.minScore {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// canonicalize groups candidates by case-folded value and picks one spelling
// per group: the vocabulary's if known, else the best-scoring literal.
func (d *disambiguator) canonicalize(kept []Candidate) map[Category][]string {
	type group struct {
		best  *Candidate
		value string
	}
	groups := make(map[Category]map[string]*group)
	for i := range kept {
		c := &kept[i]
		val := c.Value
		if canon, ok := d.vocab.Canonical(c.Category, val); ok {
			val = canon
		}
		key := strings.ToLower(val)
		if groups[c.Category] == nil {
			groups[c.Category] = make(map[string]*group)
		}
		g, ok := groups[c.Category][key]
		if !ok {
			groups[c.Category][key] = &group{best: c, value: val}
			continue
		}
		if better(c, g.best) {
			g.best = c
			if _, known := d.vocab.Canonical(c.Category, c.Value); !known {
				g.value = val
			}
		}
	}

	fields := make(map[Category][]string, len(orderedCategories))
	for _, cat := range orderedCategories {
		vals := make([]string, 0, len(groups[cat]))
		for _, g := range groups[cat] {
			if v, ok := cleanValue(g.value); ok {
				vals = append(vals, v)
			}
		}
		sortValues(vals)
		fields[cat] = vals
	}
	return fields
}

// better orders candidates by score, then earliest span, then value.
func better(a, b *Candidate) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Start != b.Start {
		return a.Start < b.Start
	}
	return a.Value < b.Value
}

// sourceCounts tallies kept candidates per source for metrics.
func sourceCounts(kept []Candidate) map[string]int {
	out := make(map[string]int)
	for i := range kept {
		out[string(kept[i].Source)]++
	}
	return out
}

func sortCandidates(cands []Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Category != cands[j].Category {
			return cands[i].Category < cands[j].Category
		}
		return better(&cands[i], &cands[j])
	})
}

//Personal.AI order the ending
