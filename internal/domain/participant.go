// Package domain contains entity without logic, just meta-data
package domain

import (
	"strings"
	"unicode/utf8"
)

const (
	MaxDisplayNameLen = 36
	MaxRoomNameLen    = 36
)

type (
	SessionID string
	RoomName  string
)

type ContextKind string

const (
	ContextRoom  ContextKind = "room"
	ContextGroup ContextKind = "group"
	ContextDM    ContextKind = "dm"
)

// Context is what a participant is currently looking at. Display only.
// Ref is the group id or direct channel id; empty for the room.
type Context struct {
	Kind  ContextKind `json:"kind"`
	Label string      `json:"label"`
	Ref   string      `json:"ref,omitempty"`
}

func RoomContext(room RoomName) Context {
	return Context{Kind: ContextRoom, Label: string(room)}
}

// Participant is one connected session.
type Participant struct {
	ID          SessionID `json:"id"`
	DisplayName string    `json:"username"`
	Room        RoomName  `json:"room"`
	Context     Context   `json:"context"`
}

// NewParticipant trims and checks the display name and room, and starts the
// participant looking at its room.
func NewParticipant(id SessionID, displayName string, room RoomName) (*Participant, error) {
	name := strings.TrimSpace(displayName)
	if name == "" {
		return nil, ErrNameEmpty
	}
	if utf8.RuneCountInString(name) > MaxDisplayNameLen {
		return nil, ErrNameTooLong
	}
	r := RoomName(strings.TrimSpace(string(room)))
	if r == "" {
		return nil, ErrRoomEmpty
	}
	if utf8.RuneCountInString(string(r)) > MaxRoomNameLen {
		return nil, ErrRoomTooLong
	}
	return &Participant{
		ID:          id,
		DisplayName: name,
		Room:        r,
		Context:     RoomContext(r),
	}, nil
}

// Member snapshots the participant for group membership.
func (p *Participant) Member() Member {
	return Member{ID: p.ID, DisplayName: p.DisplayName}
}
