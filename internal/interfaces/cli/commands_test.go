package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/PlasmidCatalog/pkg/errors"
	ptypes "github.com/turtacn/PlasmidCatalog/pkg/types/plasmid"
)

func decodeReport(t *testing.T, out string) recognitionReport {
	t.Helper()
	var report recognitionReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	return report
}

func TestRecognize_NamesJSON(t *testing.T) {
	out, _, err := execute(t, "-o", "json", "recognize",
		"/data/lab/pcDNA3.1-EGFP-CMV-Puro.fasta",
		"pLKO.1-puro-shKRAS.dna")
	require.NoError(t, err)

	report := decodeReport(t, out)
	require.Len(t, report.Items, 2)
	assert.Equal(t, "/data/lab/pcDNA3.1-EGFP-CMV-Puro.fasta", report.Items[0].File)
	require.NotNil(t, report.Items[0].Result)
	assert.Equal(t, "pcDNA3.1-EGFP-CMV-Puro.fasta", report.Items[0].Result.Filename)
	assert.Equal(t, []string{"pcDNA3.1"}, report.Items[0].Result.Fields["vector"])
	assert.Contains(t, report.Items[0].Result.Fields["fluorophore"], "EGFP")
	assert.Equal(t, []string{"pLKO.1-puro"}, report.Items[1].Result.Fields["vector"])
}

func TestRecognize_Text(t *testing.T) {
	out, _, err := execute(t, "recognize", "pcDNA3.1-EGFP-CMV-Puro.fasta")
	require.NoError(t, err)
	assert.Contains(t, out, "pcDNA3.1-EGFP-CMV-Puro.fasta")
	assert.Contains(t, out, "Vector:")
	assert.Contains(t, out, "pcDNA3.1")
	assert.Contains(t, out, "mode: name")
}

func TestRecognize_Table(t *testing.T) {
	out, _, err := execute(t, "-o", "table", "recognize", "pcDNA3.1-EGFP.gb")
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	assert.True(t, strings.HasPrefix(lines[0], "FILE"))
	assert.Contains(t, lines[0], "VECTOR")
	assert.Contains(t, lines[2], "pcDNA3.1")
}

func TestRecognize_RequiresArgs(t *testing.T) {
	_, _, err := execute(t, "recognize")
	assert.Error(t, err)
}

func TestRecognize_ContentFallsBack(t *testing.T) {
	file := writeTemp(t, "pLKO.1-puro-shKRAS.dna", "Dear colleague, please find the plasmid attached.")

	out, _, err := execute(t, "-o", "json", "recognize", "--content", file)
	require.NoError(t, err)

	report := decodeReport(t, out)
	require.Len(t, report.Items, 1)
	res := report.Items[0].Result
	require.NotNil(t, res)
	assert.True(t, res.FellBack)
	assert.Equal(t, []string{"pLKO.1-puro"}, res.Fields["vector"])
}

func TestRecognize_ContentMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone.dna")
	good := writeTemp(t, "pcDNA3.1-EGFP.fa", ">x\nACGT\n")

	out, _, err := execute(t, "-o", "json", "recognize", "--content", missing, good)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeRecognitionFailed))

	report := decodeReport(t, out)
	require.Len(t, report.Items, 2)
	assert.NotEmpty(t, report.Items[0].Error)
	assert.Empty(t, report.Items[1].Error)
	assert.NotNil(t, report.Items[1].Result)
}

func TestRecognize_ContentAndObjectExclusive(t *testing.T) {
	_, _, err := execute(t, "recognize", "--content", "--object", "a.dna")
	assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest))
}

func TestRecognize_ObjectWithoutStorage(t *testing.T) {
	out, _, err := execute(t, "-o", "json", "recognize", "--object", "plasmids/a.dna")
	require.Error(t, err)
	report := decodeReport(t, out)
	assert.NotEmpty(t, report.Items[0].Error)
}

func TestRecognize_RulesAndCorpusFlags(t *testing.T) {
	rules := writeTemp(t, "rules.json", `{"carriers": ["pMyVec-1"]}`)
	corpus := writeTemp(t, "records.json", `[{"id": "1", "name": "x", "载体": "pNovel-7"}]`)

	out, _, err := execute(t, "-o", "json", "--rules", rules, "--corpus", corpus,
		"recognize", "pMyVec-1_a.dna", "pNovel-7_b.dna")
	require.NoError(t, err)

	report := decodeReport(t, out)
	assert.Equal(t, []string{"pMyVec-1"}, report.Items[0].Result.Fields["vector"])
	assert.Equal(t, []string{"pNovel-7"}, report.Items[1].Result.Fields["vector"])
}

func TestCorrect_Local(t *testing.T) {
	out, _, err := execute(t, "-o", "json", "correct", "archive/foo.dna", "物种", "人", "小鼠")
	require.NoError(t, err)

	var res correctionOutcome
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Applied)
	assert.Equal(t, "foo.dna", res.Correction.Filename)
	assert.Equal(t, "species", res.Correction.Category)
	assert.Equal(t, "小鼠", res.Correction.NewSignature)
}

func TestCorrect_UnknownCategory(t *testing.T) {
	_, _, err := execute(t, "correct", "a.dna", "colour", "red", "blue")
	assert.True(t, errors.IsCode(err, errors.ErrCodeCategoryUnknown))
}

func TestCorrect_Text(t *testing.T) {
	out, _, err := execute(t, "correct", "a.dna", "vector", "", "pUC19")
	require.NoError(t, err)
	assert.Contains(t, out, "a.dna vector")
	assert.Contains(t, out, "not persisted")
}

func TestVocab(t *testing.T) {
	corpus := writeTemp(t, "records.json", `[{"id": "1", "name": "x", "载体": "pNovel-7"}]`)

	out, _, err := execute(t, "-o", "json", "--corpus", corpus, "vocab")
	require.NoError(t, err)
	var stats ptypes.VocabularyStats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, 1, stats.Records)
	assert.Positive(t, stats.Sizes["vector"])

	out, _, err = execute(t, "-o", "table", "vocab")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "CATEGORY"))
	assert.Contains(t, out, "target_gene")

	out, _, err = execute(t, "vocab")
	require.NoError(t, err)
	assert.Contains(t, out, "Vector:")
}

func TestRemoteBackend(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/recognize/batch":
			var req ptypes.BatchRecognizeRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			resp := ptypes.BatchRecognitionResponse{}
			for _, it := range req.Items {
				resp.Results = append(resp.Results, &ptypes.RecognitionResponse{
					Filename: it.Filename,
					Mode:     ptypes.ModeName,
					Fields:   map[string][]string{"vector": {"remote"}},
				})
			}
			_ = json.NewEncoder(w).Encode(resp)
		case "/api/v1/vocabulary":
			_ = json.NewEncoder(w).Encode(ptypes.VocabularyStats{Version: 42, Records: 7})
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"code": "COMMON_005", "message": "route not found"}`))
		}
	}))
	defer srv.Close()

	out, _, err := execute(t, "-o", "json", "--server", srv.URL, "--api-key", "k1", "recognize", "a.dna")
	require.NoError(t, err)
	report := decodeReport(t, out)
	assert.Equal(t, []string{"remote"}, report.Items[0].Result.Fields["vector"])
	assert.Equal(t, "k1", gotKey)

	out, _, err = execute(t, "-o", "json", "--server", srv.URL, "vocab")
	require.NoError(t, err)
	assert.Contains(t, out, `"version": 42`)

	_, _, err = execute(t, "--server", srv.URL, "correct", "a.dna", "vector", "x", "y")
	assert.Error(t, err)
}

func TestMigrate(t *testing.T) {
	origUp, origDown, origStatus, origForce := migrateUp, migrateDown, migrateStatus, migrateForce
	t.Cleanup(func() {
		migrateUp, migrateDown, migrateStatus, migrateForce = origUp, origDown, origStatus, origForce
	})

	var calls []string
	var version uint = 2
	migrateUp = func(dbURL, path string) error {
		calls = append(calls, "up:"+path)
		assert.True(t, strings.HasPrefix(dbURL, "postgres://"))
		return nil
	}
	migrateDown = func(dbURL, path string, steps int) error {
		calls = append(calls, "down")
		version -= uint(steps)
		return nil
	}
	migrateStatus = func(dbURL, path string) (uint, bool, error) { return version, false, nil }
	migrateForce = func(dbURL, path string, v int) error {
		calls = append(calls, "force")
		version = uint(v)
		return nil
	}

	out, _, err := execute(t, "migrate", "up", "--path", "db/migrations")
	require.NoError(t, err)
	assert.Contains(t, out, "schema version 2")

	out, _, err = execute(t, "-o", "json", "migrate", "down", "--steps", "1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version": 1, "dirty": false}`, out)

	_, _, err = execute(t, "migrate", "down", "--steps", "0")
	assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest))

	_, _, err = execute(t, "migrate", "force", "x")
	assert.Error(t, err)

	out, _, err = execute(t, "migrate", "force", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "schema version 5")

	assert.Equal(t, []string{"up:db/migrations", "down", "force"}, calls)
}

func TestMigrate_StatusError(t *testing.T) {
	orig := migrateStatus
	t.Cleanup(func() { migrateStatus = orig })
	migrateStatus = func(string, string) (uint, bool, error) {
		return 0, false, errors.New(errors.ErrCodeDatabaseError, "connection refused")
	}
	_, _, err := execute(t, "migrate", "status")
	assert.True(t, errors.IsCode(err, errors.ErrCodeDatabaseError))
}

func TestContentRequest_SizeLimit(t *testing.T) {
	file := writeTemp(t, "big.fa", strings.Repeat("A", 64))
	_, err := contentRequest(file, &recognizeOptions{}, 16)
	assert.True(t, errors.IsCode(err, errors.ErrCodeContentTooLarge))

	req, err := contentRequest(file, &recognizeOptions{path: "lab"}, 0)
	require.NoError(t, err)
	assert.Equal(t, "big.fa", req.Filename)
	assert.Equal(t, "lab", req.Path)
	assert.Len(t, req.Content, 64)

	_, err = os.Stat(file)
	require.NoError(t, err)
}

//Personal.AI order the ending
