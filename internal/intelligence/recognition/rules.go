package recognition

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/turtacn/PlasmidCatalog/pkg/types/plasmid"
)

// RulesDocument is the parsed rules file.  Each list extends the built-in
// vocabulary of its category.
type RulesDocument struct {
	Carriers         []string                   `json:"carriers,omitempty"`
	Species          []string                   `json:"species,omitempty"`
	ResistanceColi   []string                   `json:"resistance.coli,omitempty"`
	ResistanceMammal []string                   `json:"resistance.mammal,omitempty"`
	Tags             []string                   `json:"tags,omitempty"`
	InsertTypes      []string                   `json:"insert_types,omitempty"`
	ProteinTags      []string                   `json:"protein_tags,omitempty"`
	Fluorescence     []string                   `json:"fluorescence,omitempty"`
	Promoters        []string                   `json:"promoters,omitempty"`
	TetInducible     []string                   `json:"tet_inducible,omitempty"`
	Functions        []string                   `json:"functions,omitempty"`
	Genes            []string                   `json:"genes,omitempty"`
	Profiles         map[string]BackboneProfile `json:"profiles,omitempty"`
}

// rulesKeys binds each accepted top-level key to its destination list.
func (d *RulesDocument) rulesKeys() map[string]*[]string {
	return map[string]*[]string{
		"carriers":          &d.Carriers,
		"backbones":         &d.Carriers,
		"vectors":           &d.Carriers,
		"species":           &d.Species,
		"resistance.coli":   &d.ResistanceColi,
		"resistance.mammal": &d.ResistanceMammal,
		"tags":              &d.Tags,
		"insert_types":      &d.InsertTypes,
		"protein_tags":      &d.ProteinTags,
		"fluorescence":      &d.Fluorescence,
		"promoters":         &d.Promoters,
		"tet_inducible":     &d.TetInducible,
		"functions":         &d.Functions,
		"genes":             &d.Genes,
	}
}

// ParseRulesDocument decodes a rules document.  The document must be a JSON
// object; unknown keys are ignored and list items that are not strings are
// skipped.  Resistance lists may be given flat ("resistance.coli") or nested
// ({"resistance": {"coli": [...], "mammal": [...]}}).
func ParseRulesDocument(data []byte) (*RulesDocument, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("rules document: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("rules document: not a JSON object")
	}

	doc := &RulesDocument{}
	keys := doc.rulesKeys()
	for key, value := range raw {
		if dst, ok := keys[key]; ok {
			var fv plasmid.FieldValues
			if err := json.Unmarshal(value, &fv); err != nil {
				return nil, fmt.Errorf("rules document: key %q: %w", key, err)
			}
			*dst = append(*dst, fv...)
			continue
		}
		switch key {
		case "resistance":
			var nested struct {
				Coli   plasmid.FieldValues `json:"coli"`
				Mammal plasmid.FieldValues `json:"mammal"`
			}
			if err := json.Unmarshal(value, &nested); err != nil {
				return nil, fmt.Errorf("rules document: key %q: %w", key, err)
			}
			doc.ResistanceColi = append(doc.ResistanceColi, nested.Coli...)
			doc.ResistanceMammal = append(doc.ResistanceMammal, nested.Mammal...)
		case "profiles":
			var profiles map[string]BackboneProfile
			if err := json.Unmarshal(value, &profiles); err != nil {
				return nil, fmt.Errorf("rules document: key %q: %w", key, err)
			}
			doc.Profiles = profiles
		}
	}
	return doc, nil
}

// Values returns the document's list for c.
func (d *RulesDocument) Values(c Category) []string {
	if d == nil {
		return nil
	}
	var out []string
	switch c {
	case CategoryVector:
		out = d.Carriers
	case CategorySpecies:
		out = d.Species
	case CategoryEColiResistance:
		out = d.ResistanceColi
	case CategoryMammalResistance:
		out = d.ResistanceMammal
	case CategoryFunction:
		out = append(append([]string(nil), d.Tags...), d.Functions...)
	case CategoryInsertType:
		out = d.InsertTypes
	case CategoryProteinTag:
		out = d.ProteinTags
	case CategoryFluorophore:
		out = d.Fluorescence
	case CategoryPromoter:
		out = d.Promoters
	case CategoryTetInducible:
		out = d.TetInducible
	case CategoryTargetGene:
		out = d.Genes
	}
	return out
}

// Size is the number of list entries across all categories.
func (d *RulesDocument) Size() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, c := range orderedCategories {
		n += len(d.Values(c))
	}
	return n
}

func sortedProfileNames(m map[string]BackboneProfile) []string {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

//Personal.AI order the ending
