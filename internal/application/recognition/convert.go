package recognition

import (
	recog "github.com/turtacn/PlasmidCatalog/internal/intelligence/recognition"
	ptypes "github.com/turtacn/PlasmidCatalog/pkg/types/plasmid"
)

// toResponse flattens an engine result into the wire DTO.
func toResponse(filename, mode string, res *recog.Result) *ptypes.RecognitionResponse {
	resp := &ptypes.RecognitionResponse{
		Filename: filename,
		Mode:     mode,
		Fields:   make(map[string][]string, len(recog.Categories())),
	}
	if res == nil {
		return resp
	}
	for _, c := range recog.Categories() {
		vals := res.Values(c)
		out := make([]string, len(vals))
		copy(out, vals)
		resp.Fields[string(c)] = out
	}
	if len(res.Evaluated) > 0 {
		resp.Evaluated = make(map[string]bool, len(res.Evaluated))
		for c, ok := range res.Evaluated {
			resp.Evaluated[string(c)] = ok
		}
	}
	for _, c := range res.Corrected {
		resp.Corrected = append(resp.Corrected, string(c))
	}
	resp.Description = res.Description
	resp.VocabularyVersion = res.VocabularyVersion
	return resp
}

//Personal.AI order the ending
