package recognition

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidatesFor(cands []Candidate, c Category) []Candidate {
	var out []Candidate
	for _, cand := range cands {
		if cand.Category == c {
			out = append(out, cand)
		}
	}
	return out
}

func valuesOf(cands []Candidate) []string {
	out := make([]string, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.Value)
	}
	return out
}

func TestNormalizeHelpers(t *testing.T) {
	assert.Equal(t, "pcDNA3.1", normalizeText("  ｐｃＤＮＡ３．１ "))
	assert.Equal(t, "pcdna3.1-人", lowerASCII("pcDNA3.1-人"))
	assert.Equal(t, "x", stripExtension("x.gb.gz"))
	assert.Equal(t, "pLKO.1", stripExtension("pLKO.1"))
	assert.Equal(t, []string{"pcDNA3", "1", "EGFP"}, splitTokens("pcDNA3.1(EGFP)"))
	assert.Equal(t, []string{"lab", "vectors", "x.dna"}, splitPath(`lab\vectors/x.dna`))
	assert.True(t, isDigitsOnly("3.1"))
	assert.False(t, isDigitsOnly("3x"))

	_, ok := cleanValue(" None ")
	assert.False(t, ok)
	v, ok := cleanValue(" Puro ")
	assert.True(t, ok)
	assert.Equal(t, "Puro", v)
}

func TestBoundaries(t *testing.T) {
	s := "pLVX-3xFlag-EGFP"
	i := strings.Index(s, "Flag")
	assert.False(t, delimiterBounded(s, i, i+4))
	assert.True(t, delimiterBounded(s, 5, 11))
	assert.True(t, delimiterBounded("人GFP", len("人"), len("人GFP")))

	assert.False(t, letterBounded("myGFPX", 2, 5))
	assert.True(t, letterBounded("2GFP", 1, 4))
	assert.False(t, heuristicBounded("x12", 2, 3))

	assert.False(t, pathBounded("Campbell-lab", 1, 4), "short values need delimiters")
	assert.True(t, pathBounded("lab-Amp-stock", 4, 7))
	assert.True(t, pathBounded("xpcDNA3.1y", 1, 9), "longer values match as substrings")
}

func TestDictionaryPass_RequiresDelimiters(t *testing.T) {
	m := newMatcher(LoadRules(nil), nil)

	tests := []struct {
		name     string
		filename string
		category Category
		want     string
		absent   string
	}{
		{"vector at start", "pcDNA3.1-EGFP.dna", CategoryVector, "pcDNA3.1", ""},
		{"fluorophore framed", "x_EGFP_y.gb", CategoryFluorophore, "EGFP", ""},
		{"glued fluorophore", "myGFPX.dna", CategoryFluorophore, "", "GFP"},
		{"multiplied tag", "pLVX-3xFlag-EGFP.dna", CategoryProteinTag, "3xFlag", "Flag"},
		{"alias resolves", "pX-AmpR.gb", CategoryEColiResistance, "Amp", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := valuesOf(candidatesFor(m.dictionaryPass(tt.filename), tt.category))
			if tt.want != "" {
				assert.Contains(t, got, tt.want)
			}
			if tt.absent != "" {
				assert.NotContains(t, got, tt.absent)
			}
		})
	}
}

func TestDictionaryPass_SpansAndConfirmation(t *testing.T) {
	m := newMatcher(LoadRules(nil), nil)
	cands := candidatesFor(m.dictionaryPass("pcDNA3.1-EGFP.dna"), CategoryVector)
	require.NotEmpty(t, cands)
	for _, c := range cands {
		assert.True(t, c.Confirmed)
		assert.Equal(t, SourceDictionary, c.Source)
		assert.True(t, c.HasSpan())
		assert.Equal(t, "pcDNA3.1-EGFP.dna"[c.Start:c.End], c.Text)
	}
}

func TestHeuristicPass(t *testing.T) {
	m := newMatcher(LoadRules(nil), nil)

	cands := m.heuristicPass("p-mScarlet-I_2xHA.dna")
	assert.Contains(t, valuesOf(candidatesFor(cands, CategoryFluorophore)), "mScarlet-I")
	assert.Contains(t, valuesOf(candidatesFor(cands, CategoryProteinTag)), "2xHA")
	for _, c := range cands {
		assert.False(t, c.Confirmed)
		assert.Equal(t, ScoreHeuristic, c.Score)
	}

	assert.Empty(t, candidatesFor(m.heuristicPass("myGFPX.dna"), CategoryFluorophore))
	assert.Empty(t, candidatesFor(m.heuristicPass("shanghai.dna"), CategoryProteinTag))
}

func TestSpeciesPass(t *testing.T) {
	m := newMatcher(LoadRules(nil), nil)

	tests := []struct {
		name     string
		filename string
		path     string
		want     []string
	}{
		{"word", "human-IL6.dna", "", []string{"人"}},
		{"both species fire", "human_mouse_chimera.dna", "", []string{"人", "小鼠"}},
		{"short form", "pLV-hGAPDH.dna", "", []string{"人"}},
		{"from path", "IL6.dna", "/lab/Mouse/IL6.dna", []string{"小鼠"}},
		{"gene not species", "pLV-mTOR.dna", "", nil},
		{"promoter not species", "pLV-hPGK-EGFP.dna", "", nil},
		{"lowercase tail", "pLV-hello.dna", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := valuesOf(m.speciesPass(tt.filename, tt.path))
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
			if tt.want == nil {
				assert.Empty(t, got)
			}
		})
	}
}

func TestMutationPass(t *testing.T) {
	m := newMatcher(LoadRules(nil), nil)

	got := valuesOf(m.mutationPass("KRAS_G12D-P2A-EGFR_T790M.dna"))
	assert.Contains(t, got, "G12D")
	assert.Contains(t, got, "T790M")
	assert.NotContains(t, got, "P2A")

	got = valuesOf(m.mutationPass("CFTR-deltaF508.gb"))
	assert.Equal(t, []string{"deltaF508"}, got)

	assert.Empty(t, m.mutationPass("pcDNA3.1-EGFP.dna"))
}

type stubNouns struct{ nouns []string }

func (s stubNouns) ExtractNouns(string) []string { return s.nouns }

func TestNounPass(t *testing.T) {
	vocab := LoadRules(nil)

	m := newMatcher(vocab, nil)
	assert.Nil(t, m.nounPass("pLV-KRAS.dna", nil))

	m = newMatcher(vocab, stubNouns{nouns: []string{"KRAS", "pLKO.1", "a"}})
	cands := m.nounPass("pLV-KRAS.dna", nil)
	require.Len(t, cands, 1)
	assert.Equal(t, "KRAS", cands[0].Value)
	assert.Equal(t, SourceNLP, cands[0].Source)
	assert.Equal(t, 4, cands[0].Start)
	assert.Equal(t, 8, cands[0].End)
}

func TestGeneSymbolExtractor(t *testing.T) {
	g := NewGeneSymbolExtractor([]string{"KRAS", "TP53", " "})
	assert.Equal(t, 2, g.Size())
	assert.Equal(t, []string{"KRAS", "TP53"}, g.ExtractNouns("pLKO shKras hTP53 Control"))
	assert.Empty(t, g.ExtractNouns("nothing here"))
}

func TestGeneFallbackPass(t *testing.T) {
	m := newMatcher(LoadRules(nil), nil)

	tests := []struct {
		name     string
		filename string
		want     []string
		absent   []string
	}{
		{"rnai prefix", "pLKO.1-puro-shBRD4.dna", []string{"BRD4"}, []string{"shBRD4", "puro"}},
		{"species prefix", "pLV-hGAPDH.dna", []string{"GAPDH"}, []string{"hGAPDH"}},
		{"stopwords", "pLKO.1-shControl.dna", nil, []string{"Control"}},
		{"digits and short", "pUC19-12-ab.dna", nil, []string{"12", "ab"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filename := normalizeText(tt.filename)
			prior := m.dictionaryPass(filename)
			prior = append(prior, m.speciesPass(filename, "")...)
			got := valuesOf(m.geneFallbackPass(filename, prior))
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
			for _, a := range tt.absent {
				assert.NotContains(t, got, a)
			}
		})
	}

	prior := []Candidate{newCandidate(CategoryTargetGene, "KRAS", SourceNLP, ScoreNLP, true)}
	assert.Nil(t, m.geneFallbackPass("pLV-BRD4.dna", prior))
}

func TestPathPass(t *testing.T) {
	m := newMatcher(LoadRules(nil), nil)

	got := m.pathPass("/data/pLKO.1-puro constructs/Human/x.dna")
	vectors := valuesOf(candidatesFor(got, CategoryVector))
	assert.Contains(t, vectors, "pLKO.1-puro")
	assert.NotContains(t, vectors, "pLKO.1")
	for _, c := range got {
		assert.False(t, c.HasSpan())
		assert.True(t, c.Confirmed)
		assert.Equal(t, SourcePathFolder, c.Source)
	}

	// Short values need delimiters inside folder names.
	got = m.pathPass("/archive/shanghai/x.dna")
	assert.Empty(t, candidatesFor(got, CategoryProteinTag))

	// The last segment is the file itself.
	assert.Empty(t, m.pathPass("pcDNA3.1.dna"))
	assert.Nil(t, m.pathPass(""))
}

func TestMatchName_EmptyFilename(t *testing.T) {
	m := newMatcher(LoadRules(nil), nil)
	assert.Nil(t, m.matchName("", "/a/b"))
}

//Personal.AI order the ending
