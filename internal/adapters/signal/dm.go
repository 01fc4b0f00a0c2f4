package signal

import (
	"github.com/dkeye/Chatcord/internal/core"
	"github.com/dkeye/Chatcord/internal/domain"
)

type requestDMPayload struct {
	TargetUserID string `json:"targetUserId" validate:"required,max=128"`
}

func (p *requestDMPayload) command(*SignalWSController) (core.Command, error) {
	return core.RequestDM{TargetID: domain.SessionID(p.TargetUserID)}, nil
}

type dmMessagePayload struct {
	DMRoomID string `json:"dmRoomId" validate:"required,startswith=dm:,max=256"`
	bodyPayload
}

func (p *dmMessagePayload) command(ctl *SignalWSController) (core.Command, error) {
	body, err := p.body(ctl)
	if err != nil {
		return nil, err
	}
	return core.SendDM{Channel: core.ChannelID(p.DMRoomID), Body: body}, nil
}
