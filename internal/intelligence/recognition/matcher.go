package recognition

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ---------------------------------------------------------------------------
// Lexical matcher
// ---------------------------------------------------------------------------

// matcher runs the filename passes against one vocabulary snapshot.
type matcher struct {
	vocab *Vocabulary
	nouns NounExtractor
}

func newMatcher(vocab *Vocabulary, nouns NounExtractor) *matcher {
	if nouns == nil {
		nouns = NopNounExtractor{}
	}
	return &matcher{vocab: vocab, nouns: nouns}
}

// matchName runs passes 1-7 in order.  filename must already be normalised.
func (m *matcher) matchName(filename, fullPath string) []Candidate {
	if filename == "" {
		return nil
	}
	var cands []Candidate

	// 1. Folder names.
	cands = append(cands, m.pathPass(fullPath)...)

	// 2. Vocabulary spellings framed by delimiters.
	cands = append(cands, m.dictionaryPass(filename)...)

	// 3. Pattern table.
	cands = append(cands, m.heuristicPass(filename)...)

	// 4. Species spellings and short-form prefixes.
	cands = append(cands, m.speciesPass(filename, fullPath)...)

	// 5. Point mutations and deletions.
	cands = append(cands, m.mutationPass(filename)...)

	// 6. Noun extraction.
	cands = append(cands, m.nounPass(filename, cands)...)

	// 7. Token fallback for target genes.
	cands = append(cands, m.geneFallbackPass(filename, cands)...)

	return cands
}

// ---------------------------------------------------------------------------
// Pass 1: path folders
// ---------------------------------------------------------------------------

// pathPass matches vocabulary values inside folder names.  The last path
// segment is the file itself and is skipped.  Values of three bytes or fewer
// must be delimiter-framed inside the folder name; longer values match as
// plain substrings.  Within one folder name the longest match wins.
func (m *matcher) pathPass(fullPath string) []Candidate {
	fullPath = normalizeText(fullPath)
	if fullPath == "" {
		return nil
	}
	segments := splitPath(fullPath)
	if !strings.HasSuffix(fullPath, "/") && !strings.HasSuffix(fullPath, "\\") && len(segments) > 0 {
		segments = segments[:len(segments)-1]
	}

	var out []Candidate
	seen := make(map[string]bool)
	for _, seg := range segments {
		found := dropNested(scanVocabulary(m.vocab, seg, SourcePathFolder, ScorePath, pathBounded, nil))
		for _, c := range found {
			key := string(c.Category) + "\x00" + c.Value
			if seen[key] || utf8.RuneCountInString(c.Value) < 2 {
				continue
			}
			seen[key] = true
			out = append(out, newCandidate(c.Category, c.Value, SourcePathFolder, ScorePath, true))
		}
	}
	return out
}

func pathBounded(segment string, i, j int) bool {
	return j-i > 3 || delimiterBounded(segment, i, j)
}

// dropNested removes candidates whose span lies strictly inside a longer
// candidate of the same category.  Used for text scanned outside the
// filename, where spans are discarded afterwards.
func dropNested(cands []Candidate) []Candidate {
	out := cands[:0:0]
	for i := range cands {
		nested := false
		for j := range cands {
			if i != j && cands[j].Category == cands[i].Category && cands[i].nestedIn(&cands[j]) {
				nested = true
				break
			}
		}
		if !nested {
			out = append(out, cands[i])
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Pass 2: dictionary
// ---------------------------------------------------------------------------

func (m *matcher) dictionaryPass(filename string) []Candidate {
	return scanVocabulary(m.vocab, filename, SourceDictionary, ScoreDictionary, delimiterBounded, nil)
}

// scanVocabulary finds every bounded, case-insensitive occurrence of a
// vocabulary spelling in text.  Values made only of non-ASCII characters
// (Chinese species names) need no framing.  When only is non-nil, categories
// outside it are skipped.
func scanVocabulary(vocab *Vocabulary, text string, src Source, score float64,
	bounded func(string, int, int) bool, only map[Category]bool) []Candidate {
	lower := lowerASCII(text)
	var out []Candidate
	for _, e := range vocab.entries {
		if e.lower == "" || (only != nil && !only[e.category]) {
			continue
		}
		free := isAllNonASCII(e.text)
		for off := 0; off < len(lower); {
			i := strings.Index(lower[off:], e.lower)
			if i < 0 {
				break
			}
			i += off
			j := i + len(e.lower)
			if free || bounded(lower, i, j) {
				out = append(out, newSpanCandidate(e.category, e.value, text[i:j], src, score, i, j, true))
			}
			off = i + 1
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Pass 3: heuristics
// ---------------------------------------------------------------------------

func (m *matcher) heuristicPass(filename string) []Candidate {
	return scanHeuristics(filename, SourceHeuristic, ScoreHeuristic, nil)
}

func scanHeuristics(text string, src Source, score float64, only map[Category]bool) []Candidate {
	var out []Candidate
	for _, rule := range heuristicRules {
		if only != nil && !only[rule.category] {
			continue
		}
		for _, loc := range findBounded(rule.re, text) {
			lit := text[loc[0]:loc[1]]
			out = append(out, newSpanCandidate(rule.category, lit, lit, src, score, loc[0], loc[1], false))
		}
	}
	return out
}

// findBounded returns the spans of re in text that are not glued to an
// adjacent ASCII letter, nor to an adjacent digit where the match itself
// starts or ends with a digit.  A rejected match is retried one byte later
// so shorter bounded matches are still found.
func findBounded(re *regexp.Regexp, text string) [][2]int {
	var out [][2]int
	for off := 0; off < len(text); {
		loc := re.FindStringIndex(text[off:])
		if loc == nil {
			break
		}
		i, j := loc[0]+off, loc[1]+off
		if j == i {
			off = i + 1
			continue
		}
		if heuristicBounded(text, i, j) {
			out = append(out, [2]int{i, j})
			off = j
			continue
		}
		off = i + 1
	}
	return out
}

func heuristicBounded(text string, i, j int) bool {
	if !letterBounded(text, i, j) {
		return false
	}
	if i > 0 && isASCIIDigit(text[i]) && isASCIIDigit(text[i-1]) {
		return false
	}
	if j < len(text) && isASCIIDigit(text[j-1]) && isASCIIDigit(text[j]) {
		return false
	}
	return true
}

// ---------------------------------------------------------------------------
// Pass 4: species
// ---------------------------------------------------------------------------

// speciesPass is multi-valued: every rule that fires contributes.
func (m *matcher) speciesPass(filename, fullPath string) []Candidate {
	var out []Candidate
	for _, rule := range speciesRules {
		for _, loc := range findBounded(rule.re, filename) {
			out = append(out, newSpanCandidate(CategorySpecies, rule.value, filename[loc[0]:loc[1]],
				SourceHeuristic, ScoreHeuristic, loc[0], loc[1], false))
		}
		if p := normalizeText(fullPath); p != "" && len(findBounded(rule.re, p)) > 0 {
			out = append(out, newCandidate(CategorySpecies, rule.value, SourceHeuristic, ScoreHeuristic, false))
		}
	}

	// Short form: "hGAPDH", "mActB2" style tokens.  A lowercase species
	// letter followed by at least two characters from [A-Z0-9], at least one
	// of them a letter.
	stem := stripExtension(filename)
	for _, sp := range tokenSpans(stem) {
		tok := stem[sp[0]:sp[1]]
		species, ok := speciesPrefixes[tok[0]]
		if !ok || !m.isSpeciesPrefixed(tok) {
			continue
		}
		out = append(out, newSpanCandidate(CategorySpecies, species, tok, SourceHeuristic, ScoreHeuristic, sp[0], sp[1], false))
	}
	return out
}

func (m *matcher) isSpeciesPrefixed(tok string) bool {
	rest := tok[1:]
	if len(rest) < 2 {
		return false
	}
	hasLetter := false
	for i := 0; i < len(rest); i++ {
		b := rest[i]
		switch {
		case b >= 'A' && b <= 'Z':
			hasLetter = true
		case isASCIIDigit(b):
		default:
			return false
		}
	}
	if !hasLetter {
		return false
	}
	// "mTOR" is a gene and "hPGK", "mCMV" are promoters, not species marks.
	for _, c := range orderedCategories {
		if m.vocab.Contains(c, tok) {
			return false
		}
	}
	for _, c := range []Category{CategoryPromoter, CategoryProteinTag, CategoryFluorophore} {
		if m.vocab.Contains(c, rest) {
			return false
		}
	}
	return true
}

// tokenSpans returns the byte spans of delimiter-separated tokens.
func tokenSpans(s string) [][2]int {
	var out [][2]int
	start := -1
	for i := 0; i <= len(s); i++ {
		if i == len(s) || (s[i] < utf8.RuneSelf && isDelimiter(s[i])) {
			if start >= 0 {
				out = append(out, [2]int{start, i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Pass 5: mutations
// ---------------------------------------------------------------------------

// mutationPass runs on the original-case filename; "_" is treated as a word
// break so "KRAS_G12D" is found.  Matches are emitted verbatim.
func (m *matcher) mutationPass(filename string) []Candidate {
	text := strings.ReplaceAll(stripExtension(filename), "_", " ")
	var out []Candidate
	for _, re := range []*regexp.Regexp{pointMutationRe, deltaMutationRe} {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			lit := filename[loc[0]:loc[1]]
			if nonMutationTokens[strings.ToUpper(lit)] || m.knownValue(lit) {
				continue
			}
			out = append(out, newSpanCandidate(CategoryMutation, lit, lit, SourceHeuristic, ScoreMutation, loc[0], loc[1], false))
		}
	}
	return out
}

func (m *matcher) knownValue(s string) bool {
	for _, c := range orderedCategories {
		if m.vocab.Contains(c, s) {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Pass 6: nouns
// ---------------------------------------------------------------------------

func (m *matcher) nounPass(filename string, prior []Candidate) []Candidate {
	if _, nop := m.nouns.(NopNounExtractor); nop {
		return nil
	}
	stem := stripExtension(filename)
	text := strings.Join(splitTokens(stem), " ")
	lower := lowerASCII(filename)

	var out []Candidate
	seen := make(map[string]bool)
	for _, noun := range m.nouns.ExtractNouns(text) {
		noun = strings.TrimSpace(noun)
		key := strings.ToLower(noun)
		if utf8.RuneCountInString(noun) < 2 || seen[key] || m.vocab.Contains(CategoryVector, noun) || matchedValue(prior, CategoryVector, noun) {
			continue
		}
		seen[key] = true
		c := newCandidate(CategoryTargetGene, noun, SourceNLP, ScoreNLP, m.vocab.Contains(CategoryTargetGene, noun))
		if i := strings.Index(lower, lowerASCII(noun)); i >= 0 {
			c.Start, c.End = i, i+len(noun)
			c.Text = filename[i : i+len(noun)]
		}
		out = append(out, c)
	}
	return out
}

func matchedValue(cands []Candidate, c Category, value string) bool {
	for i := range cands {
		if cands[i].Category == c && strings.EqualFold(cands[i].Value, value) {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Pass 7: gene fallback
// ---------------------------------------------------------------------------

// rnaiPrefixes mark knock-down or guide constructs named after their target.
var rnaiPrefixes = []string{"sh", "sg", "si"}

// geneFallbackPass proposes leftover tokens as target genes.  It runs only
// when no earlier pass produced a target gene.
func (m *matcher) geneFallbackPass(filename string, prior []Candidate) []Candidate {
	for i := range prior {
		if prior[i].Category == CategoryTargetGene {
			return nil
		}
	}
	matched := make([]string, 0, len(prior))
	for i := range prior {
		matched = append(matched, strings.ToLower(prior[i].Value))
		// A species prefix token ("hTP53") still names a gene.
		if prior[i].Text != "" && !(prior[i].Category == CategorySpecies && geneTokenPrefix(prior[i].Text) == 1) {
			matched = append(matched, strings.ToLower(prior[i].Text))
		}
	}

	stem := stripExtension(filename)
	var out []Candidate
	seen := make(map[string]bool)
	for _, sp := range tokenSpans(stem) {
		start, end := sp[0], sp[1]
		start += geneTokenPrefix(stem[start:end])
		tok := stem[start:end]
		lower := strings.ToLower(tok)
		if utf8.RuneCountInString(tok) <= 2 || isDigitsOnly(tok) || geneStopwords[lower] || seen[lower] {
			continue
		}
		if containedInAny(lower, matched) || containedInAny(strings.ToLower(stem[sp[0]:sp[1]]), matched) {
			continue
		}
		seen[lower] = true
		out = append(out, newSpanCandidate(CategoryTargetGene, tok, tok, SourceGeneFallback, ScoreGeneFallback, start, end, false))
	}
	return out
}

// geneTokenPrefix returns the length of an RNAi or species prefix glued to a
// gene symbol ("shKRAS", "hTP53"), or 0.
func geneTokenPrefix(tok string) int {
	for _, p := range rnaiPrefixes {
		if len(tok) > len(p)+1 && strings.HasPrefix(tok, p) && isUpperOrDigit(tok[len(p)]) {
			return len(p)
		}
	}
	if len(tok) > 2 {
		if _, ok := speciesPrefixes[tok[0]]; ok && isUpperOrDigit(tok[1]) && tok[1] >= 'A' {
			return 1
		}
	}
	return 0
}

func isUpperOrDigit(b byte) bool {
	return (b >= 'A' && b <= 'Z') || isASCIIDigit(b)
}

func containedInAny(s string, pool []string) bool {
	if s == "" {
		return false
	}
	for _, p := range pool {
		if strings.Contains(p, s) {
			return true
		}
	}
	return false
}

//Personal.AI order the ending
