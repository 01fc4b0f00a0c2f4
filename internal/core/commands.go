package core

import "github.com/dkeye/Chatcord/internal/domain"

type CommandType string

const (
	CmdJoinRoom         CommandType = "join-room"
	CmdSendRoomMessage  CommandType = "send-room-message"
	CmdUpdateContext    CommandType = "update-context"
	CmdCreateGroup      CommandType = "create-group"
	CmdGetAllGroups     CommandType = "get-all-groups"
	CmdJoinGroup        CommandType = "join-group"
	CmdLeaveGroup       CommandType = "leave-group"
	CmdSendGroupMessage CommandType = "send-group-message"
	CmdInviteToGroup    CommandType = "invite-to-group"
	CmdDeleteGroup      CommandType = "delete-group"
	CmdRequestDM        CommandType = "request-dm"
	CmdSendDM           CommandType = "send-dm"
	CmdGetAllUsers      CommandType = "get-all-users"
)

// Command is an inbound event from one session.
type Command interface {
	CommandType() CommandType
}

type JoinRoom struct {
	DisplayName string
	Room        domain.RoomName
}

type SendRoomMessage struct {
	Body domain.Body
}

type UpdateContext struct {
	Context domain.Context
}

type CreateGroup struct {
	Name string
}

type GetAllGroups struct{}

type JoinGroup struct {
	GroupID domain.GroupID
}

type LeaveGroup struct {
	GroupID domain.GroupID
}

type SendGroupMessage struct {
	GroupID domain.GroupID
	Body    domain.Body
}

type InviteToGroup struct {
	GroupID  domain.GroupID
	TargetID domain.SessionID
}

type DeleteGroup struct {
	GroupID domain.GroupID
}

type RequestDM struct {
	TargetID domain.SessionID
}

type SendDM struct {
	Channel ChannelID
	Body    domain.Body
}

type GetAllUsers struct{}

func (JoinRoom) CommandType() CommandType         { return CmdJoinRoom }
func (SendRoomMessage) CommandType() CommandType  { return CmdSendRoomMessage }
func (UpdateContext) CommandType() CommandType    { return CmdUpdateContext }
func (CreateGroup) CommandType() CommandType      { return CmdCreateGroup }
func (GetAllGroups) CommandType() CommandType     { return CmdGetAllGroups }
func (JoinGroup) CommandType() CommandType        { return CmdJoinGroup }
func (LeaveGroup) CommandType() CommandType       { return CmdLeaveGroup }
func (SendGroupMessage) CommandType() CommandType { return CmdSendGroupMessage }
func (InviteToGroup) CommandType() CommandType    { return CmdInviteToGroup }
func (DeleteGroup) CommandType() CommandType      { return CmdDeleteGroup }
func (RequestDM) CommandType() CommandType        { return CmdRequestDM }
func (SendDM) CommandType() CommandType           { return CmdSendDM }
func (GetAllUsers) CommandType() CommandType      { return CmdGetAllUsers }
