// Package plasmid defines the plasmid-catalog Data Transfer Objects shared by
// every layer of PlasmidCatalog: corpus records, corrections, recognition
// requests/responses and the message payloads exchanged over Kafka.  No
// recognition logic lives here, only plain data types that are safe to import
// from any layer without creating circular dependencies.
package plasmid

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// NoneValue is the catalog's placeholder for "explicitly nothing".  It is
// never emitted in a recognition result.
const NoneValue = "none"

// ─────────────────────────────────────────────────────────────────────────────
// FieldValues — a record field that may be stored as a string or an array
// ─────────────────────────────────────────────────────────────────────────────

// FieldValues is the value list of one record field.  The catalog document
// stores a field either as a single string or as an array of strings; both
// decode into FieldValues.  A single string containing commas is split.
type FieldValues []string

// UnmarshalJSON accepts a string, an array of strings, or null.  Other JSON
// types decode to an empty list rather than failing the whole record.
func (f *FieldValues) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*f = nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = ParseSignature(s)
	case data[0] == '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		out := make([]string, 0, len(raw))
		for _, item := range raw {
			var s string
			if json.Unmarshal(item, &s) == nil {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
		*f = out
	default:
		*f = nil
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Record — one corpus entry
// ─────────────────────────────────────────────────────────────────────────────

// Record is a plasmid catalog entry as stored by the host application: a
// flat JSON object whose "id" and "name" keys are identity and whose other
// keys are native field names (e.g. "载体", "resistance.coli").
type Record struct {
	ID     string                 `json:"id"`
	Name   string                 `json:"name"`
	Fields map[string]FieldValues `json:"-"`
}

// UnmarshalJSON decodes the flat host representation.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Fields = make(map[string]FieldValues, len(raw))
	for key, value := range raw {
		switch key {
		case "id":
			r.ID = scalarString(value)
		case "name":
			r.Name = scalarString(value)
		default:
			var fv FieldValues
			if err := json.Unmarshal(value, &fv); err != nil {
				continue
			}
			if len(fv) > 0 {
				r.Fields[key] = fv
			}
		}
	}
	return nil
}

// MarshalJSON writes the flat host representation with sorted keys.
func (r Record) MarshalJSON() ([]byte, error) {
	flat := make(map[string]interface{}, len(r.Fields)+2)
	for k, v := range r.Fields {
		flat[k] = []string(v)
	}
	if r.ID != "" {
		flat["id"] = r.ID
	}
	if r.Name != "" {
		flat["name"] = r.Name
	}
	return json.Marshal(flat)
}

// scalarString accepts a JSON string or number and returns its text form.
func scalarString(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var n json.Number
	if json.Unmarshal(raw, &n) == nil {
		return n.String()
	}
	return ""
}

// ─────────────────────────────────────────────────────────────────────────────
// Signatures
// ─────────────────────────────────────────────────────────────────────────────

// SignatureOf renders a value set as the canonical ", "-joined signature
// used by corrections.  Values are sorted so equal sets compare equal.
func SignatureOf(values []string) string {
	clean := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			clean = append(clean, v)
		}
	}
	sort.Strings(clean)
	return strings.Join(clean, ", ")
}

// ParseSignature splits a signature on ASCII and full-width commas and
// semicolons.  Empty segments are dropped; "none" is preserved so callers can
// tell an explicit clear from an empty signature.
func ParseSignature(sig string) []string {
	parts := strings.FieldsFunc(sig, func(r rune) bool {
		return r == ',' || r == '，' || r == ';' || r == '；' || r == '、'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Correction
// ─────────────────────────────────────────────────────────────────────────────

// Correction is a human edit of a recognized field.  Category holds the
// category key (see recognition.Category) or a native field name.
type Correction struct {
	Filename     string    `json:"filename"`
	Category     string    `json:"category"`
	OldSignature string    `json:"old_signature"`
	NewSignature string    `json:"new_signature"`
	RecordedAt   time.Time `json:"recorded_at"`
}

// Key identifies the (filename, category) slot a correction occupies.
func (c Correction) Key() string {
	return c.Filename + "\x00" + c.Category
}

// Validate checks the fields a correction cannot do without.
func (c Correction) Validate() error {
	if strings.TrimSpace(c.Filename) == "" {
		return fmt.Errorf("filename must not be empty")
	}
	if strings.TrimSpace(c.Category) == "" {
		return fmt.Errorf("category must not be empty")
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Recognition request / response DTOs
// ─────────────────────────────────────────────────────────────────────────────

// RecognizeRequest asks for name-only recognition.
type RecognizeRequest struct {
	Filename string `json:"filename"`
	Path     string `json:"path,omitempty"`
}

// RecognizeContentRequest asks for content-augmented recognition.  Exactly
// one of Content (base64 in JSON) and ObjectKey is expected.
type RecognizeContentRequest struct {
	Filename  string `json:"filename"`
	Path      string `json:"path,omitempty"`
	Content   []byte `json:"content,omitempty"`
	ObjectKey string `json:"object_key,omitempty"`
}

// BatchRecognizeRequest recognizes many files in one call.
type BatchRecognizeRequest struct {
	Items []RecognizeRequest `json:"items"`
}

// Recognition modes reported in responses.
const (
	ModeName    = "name"
	ModeContent = "content"
)

// RecognitionResponse is the wire form of a recognition result.  Fields and
// Evaluated are keyed by category key.
type RecognitionResponse struct {
	Filename          string              `json:"filename"`
	Mode              string              `json:"mode"`
	Fields            map[string][]string `json:"fields"`
	Description       string              `json:"description"`
	Evaluated         map[string]bool     `json:"evaluated,omitempty"`
	VocabularyVersion uint64              `json:"vocabulary_version"`
	Corrected         []string            `json:"corrected,omitempty"`
	// FellBack is set when content gave no signal and the name-only result
	// was returned instead.
	FellBack bool `json:"fell_back,omitempty"`
}

// BatchItemError reports a failed batch item.
type BatchItemError struct {
	Index    int    `json:"index"`
	Filename string `json:"filename"`
	Code     string `json:"code"`
	Message  string `json:"message"`
}

// BatchRecognitionResponse preserves request order in Results.  Failed items
// leave a nil entry and a matching Errors element.
type BatchRecognitionResponse struct {
	Results []*RecognitionResponse `json:"results"`
	Errors  []BatchItemError       `json:"errors,omitempty"`
}

// CorrectionRequest is the API form of a correction.  Values may be given as
// signatures or as lists; lists win when both are present.
type CorrectionRequest struct {
	Filename     string   `json:"filename"`
	Category     string   `json:"category"`
	OldSignature string   `json:"old_signature,omitempty"`
	NewSignature string   `json:"new_signature,omitempty"`
	OldValues    []string `json:"old_values,omitempty"`
	NewValues    []string `json:"new_values,omitempty"`
}

// ToCorrection normalises the request into a Correction stamped with at.
func (r CorrectionRequest) ToCorrection(at time.Time) Correction {
	oldSig, newSig := r.OldSignature, r.NewSignature
	if len(r.OldValues) > 0 {
		oldSig = SignatureOf(r.OldValues)
	}
	if len(r.NewValues) > 0 {
		newSig = SignatureOf(r.NewValues)
	}
	return Correction{
		Filename:     strings.TrimSpace(r.Filename),
		Category:     strings.TrimSpace(r.Category),
		OldSignature: oldSig,
		NewSignature: newSig,
		RecordedAt:   at,
	}
}

// VocabularyStats summarises the live vocabulary.
type VocabularyStats struct {
	Version     uint64         `json:"version"`
	Sizes       map[string]int `json:"sizes"`
	Backbones   int            `json:"backbone_profiles"`
	Corrections int            `json:"corrections"`
	Records     int            `json:"records"`
	LoadedAt    time.Time      `json:"loaded_at"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Message payloads
// ─────────────────────────────────────────────────────────────────────────────

// RecognitionJob is consumed by the worker from the request topic.
type RecognitionJob struct {
	JobID       string    `json:"job_id"`
	ObjectKey   string    `json:"object_key,omitempty"`
	Filename    string    `json:"filename"`
	Path        string    `json:"path,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}

// RecognitionJobResult is published by the worker to the result topic.
type RecognitionJobResult struct {
	JobID       string               `json:"job_id"`
	Filename    string               `json:"filename"`
	Result      *RecognitionResponse `json:"result,omitempty"`
	ErrorCode   string               `json:"error_code,omitempty"`
	Error       string               `json:"error,omitempty"`
	CompletedAt time.Time            `json:"completed_at"`
}

//Personal.AI order the ending
