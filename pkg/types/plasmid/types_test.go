package plasmid

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldValues_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want FieldValues
	}{
		{"string", `"Amp"`, FieldValues{"Amp"}},
		{"comma string", `"Amp, Kan；Spec"`, FieldValues{"Amp", "Kan", "Spec"}},
		{"array", `["Puro", " ", 3, "Neo"]`, FieldValues{"Puro", "Neo"}},
		{"null", `null`, nil},
		{"number", `42`, nil},
		{"object", `{"a": 1}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fv FieldValues
			require.NoError(t, json.Unmarshal([]byte(tt.in), &fv))
			assert.Equal(t, tt.want, fv)
		})
	}
}

func TestRecord_JSON(t *testing.T) {
	var r Record
	require.NoError(t, json.Unmarshal([]byte(`{"id": 17, "name": "p1", "载体": "pcDNA3.1", "荧光": ["EGFP"], "empty": []}`), &r))

	assert.Equal(t, "17", r.ID)
	assert.Equal(t, "p1", r.Name)
	assert.Equal(t, FieldValues{"pcDNA3.1"}, r.Fields["载体"])
	assert.Equal(t, FieldValues{"EGFP"}, r.Fields["荧光"])
	assert.NotContains(t, r.Fields, "empty")

	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": "17", "name": "p1", "载体": ["pcDNA3.1"], "荧光": ["EGFP"]}`, string(out))
}

func TestRecord_UnmarshalRejectsNonObject(t *testing.T) {
	var r Record
	assert.Error(t, json.Unmarshal([]byte(`["x"]`), &r))
}

func TestSignatures(t *testing.T) {
	assert.Equal(t, "Amp, Kan", SignatureOf([]string{"Kan", " ", "Amp"}))
	assert.Equal(t, "", SignatureOf(nil))
	assert.Equal(t, []string{"人", "小鼠"}, ParseSignature("人、小鼠"))
	assert.Equal(t, []string{"none"}, ParseSignature(" none "))
	assert.Empty(t, ParseSignature(" , ;"))
}

func TestCorrection_Validate(t *testing.T) {
	assert.NoError(t, Correction{Filename: "a.dna", Category: "vector"}.Validate())
	assert.Error(t, Correction{Category: "vector"}.Validate())
	assert.Error(t, Correction{Filename: "a.dna", Category: " "}.Validate())

	a := Correction{Filename: "a.dna", Category: "vector", NewSignature: "x"}
	b := Correction{Filename: "a.dna", Category: "vector", NewSignature: "y"}
	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), Correction{Filename: "a.dna", Category: "species"}.Key())
}

func TestCorrectionRequest_ToCorrection(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	c := CorrectionRequest{
		Filename:     " a.dna ",
		Category:     "species",
		OldSignature: "人",
		NewSignature: "ignored",
		NewValues:    []string{"小鼠", "大鼠"},
	}.ToCorrection(at)

	assert.Equal(t, "a.dna", c.Filename)
	assert.Equal(t, "人", c.OldSignature)
	assert.Equal(t, SignatureOf([]string{"小鼠", "大鼠"}), c.NewSignature)
	assert.Equal(t, at, c.RecordedAt)
}

//Personal.AI order the ending
