package recognition

import (
	"regexp"
)

// heuristicRule emits the literal text of every bounded match of re.
type heuristicRule struct {
	category Category
	re       *regexp.Regexp
}

// Alternatives are ordered longest-first where they share a prefix; Go's
// leftmost-first matching would otherwise stop at the shorter spelling.
var heuristicRules = []heuristicRule{
	{CategoryFluorophore, regexp.MustCompile(`(?i)(?:e|sf|turbo|cop|ac|zs|t|pa)?gfp\d?|(?:mtag|tag|e|m)?[ycb]fp\d?|(?:mi|tag|m|i)?rfp\d*|mcherry|tdtomato|mscarlet(?:-i)?|mneongreen|dsred\d?|mkate\d?|m?venus|m?citrine|mturquoise\d?|mruby\d?|mapple|morange\d?|zsgreen|m?clover\d?|gcamp\d*[a-z]?`)},
	{CategoryProteinTag, regexp.MustCompile(`(?i)(?:\d+x)?(?:halo(?:tag)?|hibit|his\d*|ha|flag|(?:c-)?myc|v5|twin-strep|strep|gst|mbp|sbp|sumo|avi|snap|ty1|alfa|ollas)`)},
	{CategoryPromoter, regexp.MustCompile(`(?i)p?cmv|p?cag(?:gs)?|ef-?1(?:alpha|α|a)?|efs|p?pgk|sv40|ubc|u6|h1|7sk|cbh|tre3g|tre|t7|sp6|hsyn\d?|camkii(?:a|α)?|sffv|rsv|ltr|35s`)},
	{CategoryInsertType, regexp.MustCompile(`(?i)sh-?rna|sg-?rna|si-?rna|mi-?rna|lnc-?rna|circ-?rna|g-?rna|cdna|orf|cds`)},
	{CategoryTetInducible, regexp.MustCompile(`(?i)tet-?on(?:[- ]?3g|[- ]?advanced)?|tet-?off|tetone|rtta\d?|tta|dox(?:ycycline)?`)},
	{CategoryFunction, regexp.MustCompile(`(?i)(?:sp|sa|d|n|e)?cas9|cas12a|cas13[a-z]?|cre(?:ert2)?|flpo?|krab|vp64|vpr|bira|luciferase|[frn]luc|crispr[ia]?|overexpression|knock-?down|knock-?out|oe|ko|kd`)},
}

// speciesRule lists the spellings that identify one species.
type speciesRule struct {
	value string
	re    *regexp.Regexp
}

var speciesRules = []speciesRule{
	{"人", regexp.MustCompile(`(?i)human|homo sapiens|hsa`)},
	{"小鼠", regexp.MustCompile(`(?i)mouse|murine|mus musculus|mmu`)},
	{"大鼠", regexp.MustCompile(`(?i)rat|rattus(?: norvegicus)?|rno`)},
	{"猴", regexp.MustCompile(`(?i)monkey|macaque|rhesus|cynomolgus`)},
	{"斑马鱼", regexp.MustCompile(`(?i)zebrafish|danio(?: rerio)?`)},
	{"果蝇", regexp.MustCompile(`(?i)drosophila|fruit ?fly|dmel`)},
	{"酵母", regexp.MustCompile(`(?i)yeast|saccharomyces|s\. ?cerevisiae|pichia`)},
	{"拟南芥", regexp.MustCompile(`(?i)arabidopsis|a\. ?thaliana`)},
	{"鸡", regexp.MustCompile(`(?i)chicken|gallus`)},
	{"猪", regexp.MustCompile(`(?i)porcine|sus scrofa|pig`)},
	{"线虫", regexp.MustCompile(`(?i)c\. ?elegans|caenorhabditis`)},
}

// speciesPrefixes maps the one-letter species prefix of names such as
// "hGAPDH" or "mActb" onto the species value.
var speciesPrefixes = map[byte]string{
	'h': "人",
	'm': "小鼠",
	'r': "大鼠",
}

var (
	pointMutationRe = regexp.MustCompile(`\b[A-Z]\d+[A-Z*]\b`)
	deltaMutationRe = regexp.MustCompile(`(?i:\bdelta\w+\b)`)
)

// nonMutationTokens look like point mutations but name other things
// (self-cleaving peptides, histones).
var nonMutationTokens = map[string]bool{
	"T2A": true, "P2A": true, "E2A": true, "F2A": true,
	"H2A": true, "H2B": true, "H3K": true, "C1Q": true,
}

// geneStopwords are tokens that never name a target gene.
var geneStopwords = map[string]bool{
	"control": true, "ctrl": true, "scramble": true, "scrambled": true, "scr": true, "empty": true,
	"vector": true, "plasmid": true, "construct": true, "clone": true, "final": true, "new": true,
	"old": true, "test": true, "copy": true, "seq": true, "sequence": true, "map": true,
	"verified": true, "draft": true, "backup": true, "version": true, "fusion": true, "tag": true,
	"mutant": true, "wildtype": true, "insert": true, "promoter": true, "reporter": true, "the": true,
	"and": true, "for": true, "with": true, "from": true, "negative": true, "positive": true,
	"nc": true, "ntc": true, "mcs": true, "ires": true, "linker": true, "stuffer": true,
}

//Personal.AI order the ending
