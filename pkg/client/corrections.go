package client

import (
	"context"

	"github.com/turtacn/PlasmidCatalog/pkg/errors"
	ptypes "github.com/turtacn/PlasmidCatalog/pkg/types/plasmid"
)

// CorrectionsClient wraps /api/v1/corrections.
type CorrectionsClient struct {
	client *Client
}

// CorrectionResult mirrors the server's reply to a recorded correction.
type CorrectionResult struct {
	Correction ptypes.Correction `json:"correction"`
	Applied    bool              `json:"applied"`
	Persisted  bool              `json:"persisted"`
	Published  bool              `json:"published"`
}

// Record submits a correction.  Applied is false when the edit changed
// nothing.
func (cc *CorrectionsClient) Record(ctx context.Context, req *ptypes.CorrectionRequest) (*CorrectionResult, error) {
	if req == nil || req.Filename == "" || req.Category == "" {
		return nil, errors.InvalidParam("filename and category are required")
	}
	var res CorrectionResult
	if err := cc.client.postJSON(ctx, "/api/v1/corrections", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// List returns every stored correction.
func (cc *CorrectionsClient) List(ctx context.Context) ([]ptypes.Correction, error) {
	var resp struct {
		Corrections []ptypes.Correction `json:"corrections"`
		Total       int                 `json:"total"`
	}
	if err := cc.client.getJSON(ctx, "/api/v1/corrections", &resp); err != nil {
		return nil, err
	}
	return resp.Corrections, nil
}

//Personal.AI order the ending
