package recognition

import (
	"strings"
)

// ---------------------------------------------------------------------------
// Category
// ---------------------------------------------------------------------------

// Category is one classification axis of a plasmid record.  The set is fixed.
type Category string

const (
	CategoryVector           Category = "vector"
	CategorySpecies          Category = "species"
	CategoryEColiResistance  Category = "ecoli_resistance"
	CategoryMammalResistance Category = "mammal_resistance"
	CategoryFunction         Category = "function"
	CategoryInsertType       Category = "insert_type"
	CategoryProteinTag       Category = "protein_tag"
	CategoryFluorophore      Category = "fluorophore"
	CategoryPromoter         Category = "promoter"
	CategoryMutation         Category = "mutation"
	CategoryTetInducible     Category = "tet_inducible"
	CategoryTargetGene       Category = "target_gene"
)

// orderedCategories is the fixed description order.
var orderedCategories = []Category{
	CategoryVector,
	CategorySpecies,
	CategoryEColiResistance,
	CategoryMammalResistance,
	CategoryFunction,
	CategoryInsertType,
	CategoryProteinTag,
	CategoryFluorophore,
	CategoryPromoter,
	CategoryMutation,
	CategoryTetInducible,
	CategoryTargetGene,
}

var categoryLabels = map[Category]string{
	CategoryVector:           "Vector",
	CategorySpecies:          "Species",
	CategoryEColiResistance:  "E.coli resistance",
	CategoryMammalResistance: "Mammalian resistance",
	CategoryFunction:         "Function",
	CategoryInsertType:       "Insert",
	CategoryProteinTag:       "Protein tag",
	CategoryFluorophore:      "Fluorophore",
	CategoryPromoter:         "Promoter",
	CategoryMutation:         "Mutation",
	CategoryTetInducible:     "Tet system",
	CategoryTargetGene:       "Target gene",
}

// Categories returns every category in description order.
func Categories() []Category {
	out := make([]Category, len(orderedCategories))
	copy(out, orderedCategories)
	return out
}

// Label is the human-readable name used by Describe.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

func (c Category) String() string { return string(c) }

// categoryAliases maps normalised host field names onto categories.  Keys are
// lower-cased with "_", "-", "." and spaces removed.
var categoryAliases = map[string]Category{
	"vector": CategoryVector, "vectors": CategoryVector, "carrier": CategoryVector, "carriers": CategoryVector,
	"backbone": CategoryVector, "backbones": CategoryVector, "载体": CategoryVector, "载体类型": CategoryVector,

	"species": CategorySpecies, "organism": CategorySpecies, "物种": CategorySpecies, "种属": CategorySpecies,

	"ecoliresistance": CategoryEColiResistance, "resistancecoli": CategoryEColiResistance,
	"coliresistance": CategoryEColiResistance, "bacterialresistance": CategoryEColiResistance,
	"大肠杆菌抗性": CategoryEColiResistance, "抗性": CategoryEColiResistance, "细菌抗性": CategoryEColiResistance,

	"mammalresistance": CategoryMammalResistance, "resistancemammal": CategoryMammalResistance,
	"mammalianresistance": CategoryMammalResistance, "哺乳动物抗性": CategoryMammalResistance,
	"哺乳抗性": CategoryMammalResistance, "筛选标记": CategoryMammalResistance,

	"function": CategoryFunction, "functions": CategoryFunction, "tags": CategoryFunction, "功能": CategoryFunction,
	"用途": CategoryFunction,

	"inserttype": CategoryInsertType, "inserttypes": CategoryInsertType, "insert": CategoryInsertType,
	"插入类型": CategoryInsertType, "插入片段类型": CategoryInsertType,

	"proteintag": CategoryProteinTag, "proteintags": CategoryProteinTag, "tag": CategoryProteinTag,
	"蛋白标签": CategoryProteinTag, "标签": CategoryProteinTag,

	"fluorophore": CategoryFluorophore, "fluorophores": CategoryFluorophore, "fluorescence": CategoryFluorophore,
	"荧光": CategoryFluorophore, "荧光蛋白": CategoryFluorophore, "荧光标记": CategoryFluorophore,

	"promoter": CategoryPromoter, "promoters": CategoryPromoter, "启动子": CategoryPromoter,

	"mutation": CategoryMutation, "mutations": CategoryMutation, "突变": CategoryMutation, "突变位点": CategoryMutation,

	"tetinducible": CategoryTetInducible, "tet": CategoryTetInducible, "tetsystem": CategoryTetInducible,
	"四环素诱导": CategoryTetInducible, "诱导": CategoryTetInducible, "诱导系统": CategoryTetInducible,

	"targetgene": CategoryTargetGene, "gene": CategoryTargetGene, "genes": CategoryTargetGene,
	"靶基因": CategoryTargetGene, "目的基因": CategoryTargetGene, "基因": CategoryTargetGene,
}

// ParseCategory maps a category key, label or native field name onto a
// Category.  Matching ignores case and the separators "_", "-", "." and space.
func ParseCategory(name string) (Category, bool) {
	key := strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', '.', ' ':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(name)))
	if key == "" {
		return "", false
	}
	if c, ok := categoryAliases[key]; ok {
		return c, true
	}
	for _, c := range orderedCategories {
		if strings.ReplaceAll(string(c), "_", "") == key {
			return c, true
		}
		if strings.Map(func(r rune) rune {
			if r == ' ' || r == '.' {
				return -1
			}
			return r
		}, strings.ToLower(c.Label())) == key {
			return c, true
		}
	}
	return "", false
}

// ---------------------------------------------------------------------------
// Source and trust
// ---------------------------------------------------------------------------

// Source records which matcher pass produced a candidate.
type Source string

const (
	SourcePathFolder   Source = "path-folder"
	SourceDictionary   Source = "filename-dictionary"
	SourceHeuristic    Source = "filename-regex-heuristic"
	SourceContent      Source = "content-sequence"
	SourceBackbone     Source = "backbone-inferred"
	SourceNLP          Source = "nlp-noun"
	SourceGeneFallback Source = "gene-fallback"
)

// Base trust scores.  The learner shifts these per value.
const (
	ScoreDictionary   = 1.0
	ScorePath         = 0.9
	ScoreContent      = 0.9
	ScoreHeuristic    = 0.75
	ScoreMutation     = 0.7
	ScoreBackbone     = 0.5
	ScoreNLP          = 0.4
	ScoreGeneFallback = 0.3
)

// MergePolicy decides how content evidence combines with filename evidence.
type MergePolicy int

const (
	// MergeUnion always unions content and filename candidates.
	MergeUnion MergePolicy = iota
	// MergeAuthoritative treats content candidates as dictionary-grade evidence:
	// they stand alone when the filename found nothing and join it otherwise.
	MergeAuthoritative
)

// MergePolicyFor returns the cross-source policy of c.
func MergePolicyFor(c Category) MergePolicy {
	switch c {
	case CategoryEColiResistance, CategoryMammalResistance, CategoryPromoter,
		CategoryProteinTag, CategoryFluorophore:
		return MergeAuthoritative
	default:
		return MergeUnion
	}
}

// contentCategories are evaluated by the content pass and flagged in
// Result.Evaluated.  Authoritative categories come first.  Species is read
// from organism qualifiers only.
var contentCategories = []Category{
	CategoryEColiResistance,
	CategoryMammalResistance,
	CategoryPromoter,
	CategoryProteinTag,
	CategoryFluorophore,
	CategoryVector,
	CategoryInsertType,
	CategoryFunction,
	CategoryTetInducible,
	CategorySpecies,
}

func isContentCategory(c Category) bool {
	for _, cc := range contentCategories {
		if cc == c {
			return true
		}
	}
	return false
}

//Personal.AI order the ending
