package recognition

import (
	"strings"
)

// NounExtractor proposes candidate nouns from a filename whose delimiters
// have been replaced by spaces.  Implementations must be safe for concurrent
// use.
type NounExtractor interface {
	ExtractNouns(text string) []string
}

// NopNounExtractor disables the noun pass.
type NopNounExtractor struct{}

func (NopNounExtractor) ExtractNouns(string) []string { return nil }

// GeneSymbolExtractor recognises known gene symbols, including ones glued to
// an RNAi ("shKRAS", "sgTP53") or species ("hGAPDH") prefix.
type GeneSymbolExtractor struct {
	symbols map[string]string
}

// NewGeneSymbolExtractor builds an extractor over symbols.  Matching ignores
// case; the spelling given here is returned.
func NewGeneSymbolExtractor(symbols []string) *GeneSymbolExtractor {
	m := make(map[string]string, len(symbols))
	for _, s := range symbols {
		if s = strings.TrimSpace(s); s != "" {
			m[strings.ToLower(s)] = s
		}
	}
	return &GeneSymbolExtractor{symbols: m}
}

// ExtractNouns returns the recognised symbols in order of appearance.
func (g *GeneSymbolExtractor) ExtractNouns(text string) []string {
	var out []string
	for _, tok := range strings.Fields(text) {
		for _, cand := range []string{tok, tok[geneTokenPrefix(tok):]} {
			if sym, ok := g.symbols[strings.ToLower(cand)]; ok {
				out = append(out, sym)
				break
			}
		}
	}
	return out
}

// Size is the number of known symbols.
func (g *GeneSymbolExtractor) Size() int { return len(g.symbols) }

//Personal.AI order the ending
