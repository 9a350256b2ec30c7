package rpc

import (
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/percepta/journal/internal/insight"
	"github.com/percepta/journal/internal/journal"
	"github.com/percepta/journal/internal/userstate"
)

// #region messages

type perceptionRequest struct {
	Mood journal.Mood `json:"mood"`
	Note string       `json:"note,omitempty"`
}

type investmentRequest struct {
	Action journal.InvestmentAction `json:"action,omitempty"`
	Memo   string                   `json:"memo,omitempty"`
}

type thinkingRequest struct {
	Cause      journal.Cause      `json:"cause"`
	Effect     journal.Effect     `json:"effect"`
	Conclusion journal.Conclusion `json:"conclusion"`
}

type timelineRequest struct {
	Days int `json:"days"`
}

type eventRequest struct {
	Type       string            `json:"type"`
	Parameters map[string]string `json:"parameters,omitempty"`
}

// RefreshResult is the outcome of a RefreshInsight call.
type RefreshResult struct {
	State   userstate.State  `json:"state"`
	Action  string           `json:"action"`
	Reason  string           `json:"reason"`
	Insight *insight.Insight `json:"insight,omitempty"`
}

// #endregion messages

// #region conversion

var errBadRequest = errors.New("malformed request")

// encode converts v to a Struct through its JSON form.
func encode(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	return out, nil
}

// decode fills v from the JSON form of s. A nil or empty s leaves v unchanged.
func decode(s *structpb.Struct, v any) error {
	if s == nil || len(s.GetFields()) == 0 {
		return nil
	}
	data, err := protojson.Marshal(s)
	if err != nil {
		return fmt.Errorf("decode %T: %w", v, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %T: %w", v, err)
	}
	return nil
}

// #endregion conversion
