package signal

import (
	"github.com/dkeye/Chatcord/internal/core"
	"github.com/dkeye/Chatcord/internal/domain"
)

type createGroupPayload struct {
	GroupName string `json:"groupName" validate:"required,max=64"`
}

func (p *createGroupPayload) command(*SignalWSController) (core.Command, error) {
	return core.CreateGroup{Name: p.GroupName}, nil
}

// groupRefPayload serves every command that only names a group.
type groupRefPayload struct {
	typ     core.CommandType
	GroupID string `json:"groupId" validate:"required,max=128"`
}

func (p *groupRefPayload) command(*SignalWSController) (core.Command, error) {
	id := domain.GroupID(p.GroupID)
	switch p.typ {
	case core.CmdJoinGroup:
		return core.JoinGroup{GroupID: id}, nil
	case core.CmdLeaveGroup:
		return core.LeaveGroup{GroupID: id}, nil
	default:
		return core.DeleteGroup{GroupID: id}, nil
	}
}

type groupMessagePayload struct {
	GroupID string `json:"groupId" validate:"required,max=128"`
	bodyPayload
}

func (p *groupMessagePayload) command(ctl *SignalWSController) (core.Command, error) {
	body, err := p.body(ctl)
	if err != nil {
		return nil, err
	}
	return core.SendGroupMessage{GroupID: domain.GroupID(p.GroupID), Body: body}, nil
}

type invitePayload struct {
	GroupID      string `json:"groupId" validate:"required,max=128"`
	TargetUserID string `json:"targetUserId" validate:"required,max=128"`
}

func (p *invitePayload) command(*SignalWSController) (core.Command, error) {
	return core.InviteToGroup{GroupID: domain.GroupID(p.GroupID), TargetID: domain.SessionID(p.TargetUserID)}, nil
}
