package core

import "github.com/dkeye/Chatcord/internal/domain"

type EventType string

const (
	EventJoinError        EventType = "join-error"
	EventRoomMessage      EventType = "room-message"
	EventRoomUsers        EventType = "room-users-snapshot"
	EventPresenceStats    EventType = "presence-stats-snapshot"
	EventGroupCreated     EventType = "group-created"
	EventGroupList        EventType = "group-list-snapshot"
	EventGroupJoined      EventType = "group-joined"
	EventGroupMessage     EventType = "group-message"
	EventGroupLeft        EventType = "group-left"
	EventGroupDeleted     EventType = "group-deleted"
	EventGroupInvitation  EventType = "group-invitation"
	EventDMReady          EventType = "dm-ready"
	EventDMMessage        EventType = "dm-message"
	EventUserLabelChanged EventType = "user-group-label-changed"
	EventUserList         EventType = "user-list-snapshot"
	EventError            EventType = "error"
	EventPong             EventType = "pong"
)

// Event is an outbound message. Each variant is a plain struct that is
// encoded as the "data" of a {"type", "data"} envelope.
type Event interface {
	EventType() EventType
}

// ParticipantDTO is a read-only view for APIs (no transport fields).
type ParticipantDTO struct {
	ID       domain.SessionID `json:"id"`
	Username string           `json:"username"`
	Room     domain.RoomName  `json:"room"`
}

type PresenceEntry struct {
	ID       domain.SessionID `json:"id"`
	Username string           `json:"username"`
	Room     domain.RoomName  `json:"room"`
	Context  domain.Context   `json:"context"`
}

func ToParticipantDTO(p domain.Participant) ParticipantDTO {
	return ParticipantDTO{ID: p.ID, Username: p.DisplayName, Room: p.Room}
}

func ToPresenceEntry(p domain.Participant) PresenceEntry {
	return PresenceEntry{ID: p.ID, Username: p.DisplayName, Room: p.Room, Context: p.Context}
}

type JoinError struct {
	Error string `json:"error"`
}

type RoomMessage struct {
	Room    domain.RoomName `json:"room"`
	Message domain.Message  `json:"message"`
}

type RoomUsers struct {
	Room  domain.RoomName  `json:"room"`
	Users []ParticipantDTO `json:"users"`
}

type PresenceStats struct {
	Total int             `json:"total"`
	Users []PresenceEntry `json:"users"`
}

type GroupCreated struct {
	Group domain.Group `json:"group"`
}

type GroupList struct {
	Groups []domain.Group `json:"groups"`
}

type GroupJoined struct {
	Group domain.Group `json:"group"`
}

type GroupMessage struct {
	GroupID domain.GroupID `json:"groupId"`
	Message domain.Message `json:"message"`
}

type GroupLeft struct {
	GroupID domain.GroupID `json:"groupId"`
}

type GroupDeleted struct {
	GroupID domain.GroupID `json:"groupId"`
}

type GroupInvitation struct {
	Group   domain.Group  `json:"group"`
	Inviter domain.Member `json:"inviter"`
}

// DMReady tells one side of a direct channel who is on the other side.
type DMReady struct {
	Channel ChannelID     `json:"dmRoomId"`
	Other   domain.Member `json:"otherUser"`
}

type DMMessage struct {
	Channel  ChannelID        `json:"dmRoomId"`
	Message  domain.Message   `json:"message"`
	SenderID domain.SessionID `json:"senderId"`
}

type UserLabelChanged struct {
	UserID   domain.SessionID `json:"userId"`
	Username string           `json:"username"`
	Context  domain.Context   `json:"context"`
}

type UserList struct {
	Users []ParticipantDTO `json:"users"`
}

type ErrorEvent struct {
	Error string `json:"error"`
}

type Pong struct{}

func (JoinError) EventType() EventType        { return EventJoinError }
func (RoomMessage) EventType() EventType      { return EventRoomMessage }
func (RoomUsers) EventType() EventType        { return EventRoomUsers }
func (PresenceStats) EventType() EventType    { return EventPresenceStats }
func (GroupCreated) EventType() EventType     { return EventGroupCreated }
func (GroupList) EventType() EventType        { return EventGroupList }
func (GroupJoined) EventType() EventType      { return EventGroupJoined }
func (GroupMessage) EventType() EventType     { return EventGroupMessage }
func (GroupLeft) EventType() EventType        { return EventGroupLeft }
func (GroupDeleted) EventType() EventType     { return EventGroupDeleted }
func (GroupInvitation) EventType() EventType  { return EventGroupInvitation }
func (DMReady) EventType() EventType          { return EventDMReady }
func (DMMessage) EventType() EventType        { return EventDMMessage }
func (UserLabelChanged) EventType() EventType { return EventUserLabelChanged }
func (UserList) EventType() EventType         { return EventUserList }
func (ErrorEvent) EventType() EventType       { return EventError }
func (Pong) EventType() EventType             { return EventPong }
