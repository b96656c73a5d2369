package handler

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Pushkar3232/SitePilot-sub001/internal/usecase"
)

// positionRequest is the wire form of a placement. Kind is one of "start",
// "end", "before", "after"; the latter two require sibling_id. An absent
// position means "end", matching what the builder UI sends when appending.
type positionRequest struct {
	Kind      string     `json:"kind"`
	SiblingID *uuid.UUID `json:"sibling_id,omitempty"`
}

func (p *positionRequest) toPosition() (usecase.Position, error) {
	if p == nil || p.Kind == "" {
		return usecase.AtEnd(), nil
	}
	switch p.Kind {
	case "start":
		return usecase.AtStart(), nil
	case "end":
		return usecase.AtEnd(), nil
	case "before", "after":
		if p.SiblingID == nil {
			return usecase.Position{}, fmt.Errorf("position %q requires sibling_id", p.Kind)
		}
		if p.Kind == "before" {
			return usecase.Before(*p.SiblingID), nil
		}
		return usecase.After(*p.SiblingID), nil
	default:
		return usecase.Position{}, fmt.Errorf("unknown position kind %q", p.Kind)
	}
}
