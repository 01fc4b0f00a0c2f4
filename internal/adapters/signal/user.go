package signal

import (
	"github.com/dkeye/Chatcord/internal/core"
	"github.com/dkeye/Chatcord/internal/domain"
)

// contextPayload carries what the client is looking at. The label is
// resolved by the server.
type contextPayload struct {
	Kind string `json:"kind" validate:"required,oneof=room group dm"`
	Ref  string `json:"ref" validate:"required_unless=Kind room,max=128"`
}

func (p *contextPayload) command(*SignalWSController) (core.Command, error) {
	return core.UpdateContext{Context: domain.Context{Kind: domain.ContextKind(p.Kind), Ref: p.Ref}}, nil
}
