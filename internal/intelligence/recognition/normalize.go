package recognition

import (
	"path"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// normalizeText applies NFKC so full-width forms ("ｐｃＤＮＡ３．１") match their
// ASCII spellings, then trims surrounding whitespace.
func normalizeText(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}

// lowerASCII lower-cases ASCII letters only, so byte offsets into the result
// are valid offsets into the input.
func lowerASCII(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= 'A' && c <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if b[j] >= 'A' && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}

// isDelimiter reports whether b separates tokens in a filename.  The base set
// is "-", "_", " " and "."; brackets, "+", "," and "/" also occur in lab file
// names such as "pcDNA3.1(+)".
func isDelimiter(b byte) bool {
	switch b {
	case '-', '_', ' ', '.', '(', ')', '[', ']', '+', ',', '/', '\\', '&', '\t':
		return true
	}
	return false
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isASCIIDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// delimiterBounded reports whether text[i:j] is framed by delimiters, the
// string edges or non-ASCII bytes.
func delimiterBounded(text string, i, j int) bool {
	if i > 0 {
		if b := text[i-1]; b < utf8.RuneSelf && !isDelimiter(b) {
			return false
		}
	}
	if j < len(text) {
		if b := text[j]; b < utf8.RuneSelf && !isDelimiter(b) {
			return false
		}
	}
	return true
}

// letterBounded reports whether text[i:j] has no ASCII letter on either side.
func letterBounded(text string, i, j int) bool {
	if i > 0 && isASCIILetter(text[i-1]) {
		return false
	}
	if j < len(text) && isASCIILetter(text[j]) {
		return false
	}
	return true
}

func isAllNonASCII(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < utf8.RuneSelf {
			return false
		}
	}
	return true
}

// knownExtensions are stripped before token-level passes.
var knownExtensions = map[string]bool{
	".dna": true, ".gb": true, ".gbk": true, ".genbank": true, ".gbff": true,
	".fa": true, ".fasta": true, ".fas": true, ".fna": true, ".seq": true,
	".txt": true, ".ape": true, ".xdna": true, ".sbd": true, ".embl": true,
	".gz": true, ".xml": true, ".sgd": true, ".prot": true,
}

// stripExtension removes known sequence-file extensions, repeatedly so that
// "x.gb.gz" becomes "x".
func stripExtension(name string) string {
	for {
		ext := strings.ToLower(path.Ext(name))
		if ext == "" || !knownExtensions[ext] {
			return name
		}
		name = name[:len(name)-len(ext)]
	}
}

// splitTokens splits on filename delimiters.
func splitTokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r < utf8.RuneSelf && isDelimiter(byte(r))
	})
}

// splitPath splits a path on both separator styles.
func splitPath(p string) []string {
	return strings.FieldsFunc(p, func(r rune) bool { return r == '/' || r == '\\' })
}

func isDigitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '.' {
			return false
		}
	}
	return true
}

// cleanValue trims a value and reports whether it is usable in a result.
func cleanValue(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, "none") {
		return "", false
	}
	return v, true
}

//Personal.AI order the ending
