package recognition

import (
	"bufio"
	"bytes"
	"context"
	"encoding/binary"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"
)

// ---------------------------------------------------------------------------
// Content decoding
// ---------------------------------------------------------------------------

// ContentFormat names the detected file format.
type ContentFormat string

const (
	FormatSnapGene    ContentFormat = "snapgene"
	FormatSnapGeneXML ContentFormat = "snapgene-xml"
	FormatGenBank     ContentFormat = "genbank"
	FormatFASTA       ContentFormat = "fasta"
	FormatRawSequence ContentFormat = "raw-sequence"
	FormatUnknown     ContentFormat = "unknown"
)

// ErrUndecodable is returned when content matches no supported format.
var ErrUndecodable = errors.New("content is not a recognised sequence format")

// ContentDocument is the text and sequence extracted from a plasmid file.
type ContentDocument struct {
	Format      ContentFormat
	Compressed  bool
	Name        string
	Annotations []string
	// Organisms holds GenBank /organism values, the only source of species.
	Organisms []string
	// Sequence holds upper-case nucleotides only.
	Sequence string
}

// Empty reports whether the document carries no annotation, organism or sequence.
func (d *ContentDocument) Empty() bool {
	return d == nil || (len(d.Annotations) == 0 && len(d.Organisms) == 0 && d.Sequence == "")
}

func (d *ContentDocument) addOrganism(s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	for _, o := range d.Organisms {
		if strings.EqualFold(o, s) {
			return
		}
	}
	d.Organisms = append(d.Organisms, s)
}

func (d *ContentDocument) addAnnotation(s string, limit int) {
	s = strings.TrimSpace(s)
	if s == "" || len(d.Annotations) >= limit {
		return
	}
	d.Annotations = append(d.Annotations, s)
}

var gzipMagic = []byte{0x1f, 0x8b}

// ctxCheckLines is how many scanned lines or packets pass between
// cancellation checks.
const ctxCheckLines = 512

// DecodeContent sniffs the format of data and extracts annotations and
// sequence.  Gzip input is inflated first, bounded by maxBytes.
func DecodeContent(data []byte, maxBytes int64, maxAnnotations int) (*ContentDocument, error) {
	return DecodeContentContext(context.Background(), data, maxBytes, maxAnnotations)
}

// DecodeContentContext is DecodeContent with cancellation.  The GenBank,
// FASTA and SnapGene decoders check ctx while scanning and return its error.
func DecodeContentContext(ctx context.Context, data []byte, maxBytes int64, maxAnnotations int) (*ContentDocument, error) {
	if maxAnnotations <= 0 {
		maxAnnotations = DefaultEngineConfig().MaxAnnotations
	}
	if maxBytes <= 0 {
		maxBytes = DefaultEngineConfig().MaxContentBytes
	}
	compressed := false
	if bytes.HasPrefix(data, gzipMagic) {
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("gzip header: %w", err)
		}
		inflated, err := io.ReadAll(io.LimitReader(zr, maxBytes))
		_ = zr.Close()
		if err != nil && len(inflated) == 0 {
			return nil, fmt.Errorf("gzip body: %w", err)
		}
		data = inflated
		compressed = true
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		data = data[:maxBytes]
	}

	var (
		doc *ContentDocument
		err error
	)
	switch {
	case isSnapGeneBinary(data):
		doc, err = decodeSnapGene(ctx, data, maxAnnotations)
	default:
		text := bytes.TrimLeft(data, "\ufeff \t\r\n")
		switch {
		case bytes.HasPrefix(text, []byte("LOCUS")):
			doc, err = decodeGenBank(ctx, text, maxAnnotations)
		case bytes.HasPrefix(text, []byte(">")):
			doc, err = decodeFASTA(ctx, text, maxAnnotations)
		case bytes.HasPrefix(text, []byte("<?xml")) || bytes.HasPrefix(text, []byte("<Features")) || bytes.HasPrefix(text, []byte("<Feature")):
			doc = &ContentDocument{Format: FormatSnapGeneXML}
			extractSnapGeneXML(text, doc, maxAnnotations)
		case looksLikeSequence(text):
			doc = &ContentDocument{Format: FormatRawSequence, Sequence: cleanSequence(text)}
		default:
			return nil, ErrUndecodable
		}
	}
	if err != nil {
		return nil, err
	}
	doc.Compressed = compressed
	if doc.Empty() {
		return doc, ErrUndecodable
	}
	return doc, nil
}

// ---------------------------------------------------------------------------
// SnapGene binary
// ---------------------------------------------------------------------------

// SnapGene files are a sequence of packets: one type byte, a big-endian
// uint32 length, then the body.  The first packet (type 0x09) carries the
// "SnapGene" cookie.
const (
	snapPacketCookie   = 0x09
	snapPacketDNA      = 0x00
	snapPacketPrimers  = 0x05
	snapPacketNotes    = 0x06
	snapPacketFeatures = 0x0a
)

func isSnapGeneBinary(data []byte) bool {
	return len(data) >= 13 && data[0] == snapPacketCookie && string(data[5:13]) == "SnapGene"
}

func decodeSnapGene(ctx context.Context, data []byte, maxAnnotations int) (*ContentDocument, error) {
	doc := &ContentDocument{Format: FormatSnapGene}
	for off, packets := 0, 0; off+5 <= len(data); packets++ {
		if packets%ctxCheckLines == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		typ := data[off]
		n := int(binary.BigEndian.Uint32(data[off+1 : off+5]))
		start := off + 5
		end := start + n
		if n < 0 || end > len(data) || end < start {
			// Truncated file: use what is there.
			end = len(data)
		}
		body := data[start:end]
		switch typ {
		case snapPacketDNA:
			if len(body) > 1 {
				doc.Sequence = cleanSequence(body[1:])
			}
		case snapPacketPrimers, snapPacketNotes, snapPacketFeatures:
			extractSnapGeneXML(body, doc, maxAnnotations)
		}
		off = end
	}
	return doc, nil
}

var htmlTagRe = regexp.MustCompile(`<[^>]*>`)

// snapNoteElements hold free text worth scanning in the notes packet.
var snapNoteElements = map[string]bool{
	"Description":    true,
	"CustomMapLabel": true,
	"Comments":       true,
	"Synonyms":       true,
}

// extractSnapGeneXML collects feature and primer names, qualifier values and
// note text.  Malformed XML ends extraction without error.
func extractSnapGeneXML(body []byte, doc *ContentDocument, limit int) {
	dec := xml.NewDecoder(bytes.NewReader(body))
	dec.Strict = false
	dec.CharsetReader = func(_ string, r io.Reader) (io.Reader, error) { return r, nil }

	var inNote string
	for {
		tok, err := dec.Token()
		if err != nil {
			return
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "Feature", "Primer":
				doc.addAnnotation(xmlAttr(t, "name"), limit)
			case "V":
				doc.addAnnotation(stripHTML(xmlAttr(t, "text")), limit)
			default:
				if snapNoteElements[t.Name.Local] {
					inNote = t.Name.Local
				}
			}
		case xml.EndElement:
			if t.Name.Local == inNote {
				inNote = ""
			}
		case xml.CharData:
			if inNote != "" {
				doc.addAnnotation(stripHTML(string(t)), limit)
			}
		}
	}
}

func xmlAttr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func stripHTML(s string) string {
	return strings.TrimSpace(htmlTagRe.ReplaceAllString(s, " "))
}

// ---------------------------------------------------------------------------
// GenBank
// ---------------------------------------------------------------------------

// genBankQualifiers are the feature qualifiers whose values are scanned.
var genBankQualifiers = map[string]bool{
	"gene":          true,
	"label":         true,
	"product":       true,
	"note":          true,
	"standard_name": true,
	"allele":        true,
}

func decodeGenBank(ctx context.Context, text []byte, limit int) (*ContentDocument, error) {
	doc := &ContentDocument{Format: FormatGenBank}
	sc := bufio.NewScanner(bytes.NewReader(text))
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var (
		seq        strings.Builder
		inOrigin   bool
		inDef      bool
		qualKey    string
		qualValue  strings.Builder
		qualOpen   bool
		definition strings.Builder
	)
	flushQualifier := func() {
		switch {
		case qualKey == "organism":
			doc.addOrganism(strings.Trim(qualValue.String(), `"`))
		case qualKey != "" && genBankQualifiers[qualKey]:
			doc.addAnnotation(strings.Trim(qualValue.String(), `"`), limit)
		}
		qualKey, qualOpen = "", false
		qualValue.Reset()
	}

	for lines := 0; sc.Scan(); lines++ {
		if lines%ctxCheckLines == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		line := sc.Text()
		switch {
		case inOrigin:
			if strings.HasPrefix(line, "//") {
				inOrigin = false
				continue
			}
			seq.WriteString(line)
			continue
		case strings.HasPrefix(line, "LOCUS"):
			if f := strings.Fields(line); len(f) > 1 {
				doc.Name = f[1]
				doc.addAnnotation(f[1], limit)
			}
			continue
		case strings.HasPrefix(line, "DEFINITION"):
			inDef = true
			definition.WriteString(strings.TrimSpace(strings.TrimPrefix(line, "DEFINITION")))
			continue
		case strings.HasPrefix(line, "ORIGIN"):
			flushQualifier()
			inOrigin = true
			continue
		}

		if inDef {
			if strings.HasPrefix(line, "            ") {
				definition.WriteString(" " + strings.TrimSpace(line))
				continue
			}
			inDef = false
			doc.addAnnotation(definition.String(), limit)
		}

		trimmed := strings.TrimSpace(line)
		if qualOpen {
			qualValue.WriteString(" " + trimmed)
			if strings.HasSuffix(trimmed, `"`) {
				flushQualifier()
			}
			continue
		}
		if !strings.HasPrefix(trimmed, "/") {
			continue
		}
		flushQualifier()
		key, value, ok := strings.Cut(trimmed[1:], "=")
		if !ok {
			continue
		}
		qualKey = key
		qualValue.WriteString(value)
		if strings.HasPrefix(value, `"`) && (len(value) == 1 || !strings.HasSuffix(value, `"`)) {
			qualOpen = true
			continue
		}
		flushQualifier()
	}
	flushQualifier()
	if inDef {
		doc.addAnnotation(definition.String(), limit)
	}
	doc.Sequence = cleanSequence([]byte(seq.String()))
	return doc, nil
}

// ---------------------------------------------------------------------------
// FASTA and raw sequence
// ---------------------------------------------------------------------------

func decodeFASTA(ctx context.Context, text []byte, limit int) (*ContentDocument, error) {
	doc := &ContentDocument{Format: FormatFASTA}
	sc := bufio.NewScanner(bytes.NewReader(text))
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	var seq bytes.Buffer
	for lines := 0; sc.Scan(); lines++ {
		if lines%ctxCheckLines == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		line := sc.Bytes()
		if len(line) > 0 && line[0] == '>' {
			header := strings.TrimSpace(string(line[1:]))
			if doc.Name == "" {
				doc.Name = header
			}
			doc.addAnnotation(header, limit)
			continue
		}
		seq.Write(line)
	}
	doc.Sequence = cleanSequence(seq.Bytes())
	return doc, nil
}

// looksLikeSequence accepts text that is at least 95% nucleotide codes,
// whitespace and position numbers, with at least 20 bases.
func looksLikeSequence(text []byte) bool {
	if !utf8.Valid(text) {
		return false
	}
	bases, other := 0, 0
	for _, b := range text {
		switch b {
		case 'A', 'C', 'G', 'T', 'U', 'N', 'a', 'c', 'g', 't', 'u', 'n':
			bases++
		case ' ', '\t', '\r', '\n', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		default:
			other++
		}
	}
	return bases >= 20 && other*20 <= bases
}

// cleanSequence keeps nucleotide letters, upper-cased, with U read as T.
func cleanSequence(raw []byte) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, c := range raw {
		switch c {
		case 'A', 'C', 'G', 'T', 'N':
			b.WriteByte(c)
		case 'a', 'c', 'g', 't', 'n':
			b.WriteByte(c - 'a' + 'A')
		case 'U', 'u':
			b.WriteByte('T')
		}
	}
	return b.String()
}

// ---------------------------------------------------------------------------
// Sequence signatures
// ---------------------------------------------------------------------------

type signatureHit struct {
	category Category
	value    string
}

// sequenceSignature is a marker fragment searched on both strands.
type sequenceSignature struct {
	name   string
	motifs []string
	hits   []signatureHit
}

var sequenceSignatures = []sequenceSignature{
	{"AmpR", []string{"ATGAGTATTCAACATTTCCGTGTCGCCCTTATTCCC"},
		[]signatureHit{{CategoryEColiResistance, "Amp"}}},
	{"KanR/NeoR", []string{"ATGATTGAACAAGATGGATTGCACGCAGG"},
		[]signatureHit{{CategoryEColiResistance, "Kan"}, {CategoryMammalResistance, "Neo"}}},
	{"PuroR", []string{"ATGACCGAGTACAAGCCCACGGTGCGCCTCGCC"},
		[]signatureHit{{CategoryMammalResistance, "Puro"}}},
	{"HygR", []string{"ATGAAAAAGCCTGAACTCACCGCGACG"},
		[]signatureHit{{CategoryMammalResistance, "Hygro"}}},
	{"EGFP", []string{"CTGACCCTGAAGTTCATCTGCACCACC"},
		[]signatureHit{{CategoryFluorophore, "EGFP"}}},
	{"mCherry", []string{"GATAACATGGCCATCATCAAGGAGTTCATGCGCTTCAAGG"},
		[]signatureHit{{CategoryFluorophore, "mCherry"}}},
	{"CMV enhancer", []string{"GTCAATGGGTGGAGTATTTACGG"},
		[]signatureHit{{CategoryPromoter, "CMV"}}},
	{"FLAG", []string{"GACTACAAAGACGATGACGACAAG", "GATTACAAGGATGACGACGATAAG"},
		[]signatureHit{{CategoryProteinTag, "Flag"}}},
	{"HA", []string{"TACCCATACGATGTTCCAGATTACGCT"},
		[]signatureHit{{CategoryProteinTag, "HA"}}},
	{"Myc", []string{"GAACAAAAACTCATCTCAGAAGAGGATCTG"},
		[]signatureHit{{CategoryProteinTag, "Myc"}}},
	{"6xHis", []string{"CATCACCATCACCATCAC", "CACCACCACCACCACCAC"},
		[]signatureHit{{CategoryProteinTag, "6xHis"}}},
	{"WPRE", []string{"AATCAACCTCTGGATTACAAAATTTGTGAAAGATTGACTGG"},
		[]signatureHit{{CategoryFunction, "WPRE"}}},
	{"SV40 ori", []string{"GTGTGGAAAGTCCCCAGGCTCCCCAGCAGGCAGAAGTATG"},
		[]signatureHit{{CategoryPromoter, "SV40"}}},
}

// maxMotifLen bounds the wrap-around window for circular sequences.
var maxMotifLen = func() int {
	n := 0
	for _, s := range sequenceSignatures {
		for _, m := range s.motifs {
			if len(m) > n {
				n = len(m)
			}
		}
	}
	return n
}()

func reverseComplement(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		var c byte
		switch s[i] {
		case 'A':
			c = 'T'
		case 'T':
			c = 'A'
		case 'C':
			c = 'G'
		case 'G':
			c = 'C'
		default:
			c = 'N'
		}
		out[len(s)-1-i] = c
	}
	return string(out)
}

// detectSignatures reports the markers whose motif occurs on either strand.
// Plasmids are circular, so the sequence is searched with its head appended.
func detectSignatures(seq string) []string {
	if len(seq) < 18 {
		return nil
	}
	wrapped := seq
	if len(seq) > maxMotifLen {
		wrapped = seq + seq[:maxMotifLen-1]
	}
	var found []string
	for _, sig := range sequenceSignatures {
		for _, m := range sig.motifs {
			if strings.Contains(wrapped, m) || strings.Contains(wrapped, reverseComplement(m)) {
				found = append(found, sig.name)
				break
			}
		}
	}
	return found
}

func signatureByName(name string) (sequenceSignature, bool) {
	for _, s := range sequenceSignatures {
		if s.name == name {
			return s, true
		}
	}
	return sequenceSignature{}, false
}

//Personal.AI order the ending
