package plasmid

import (
	"github.com/turtacn/PlasmidCatalog/pkg/types/common"
	ptypes "github.com/turtacn/PlasmidCatalog/pkg/types/plasmid"
)

// CorrectionRecordedEvent is emitted after a correction has been stored.
// Origin identifies the emitting instance so it can skip its own events.
type CorrectionRecordedEvent struct {
	common.BaseEvent
	Correction ptypes.Correction `json:"correction"`
	Origin     string            `json:"origin"`
}

func NewCorrectionRecordedEvent(c ptypes.Correction, origin string) *CorrectionRecordedEvent {
	return &CorrectionRecordedEvent{
		BaseEvent:  common.NewBaseEvent(c.Key()),
		Correction: c,
		Origin:     origin,
	}
}

//Personal.AI order the ending
