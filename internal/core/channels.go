package core

import (
	"strings"

	"github.com/dkeye/Chatcord/internal/domain"
)

// ChannelID names a delivery scope: a room, a group or a direct channel.
type ChannelID string

const (
	roomPrefix  = "room:"
	groupPrefix = "group:"
	DMPrefix    = "dm:"
)

func RoomChannel(room domain.RoomName) ChannelID {
	return ChannelID(roomPrefix + string(room))
}

func GroupChannel(id domain.GroupID) ChannelID {
	return ChannelID(groupPrefix + string(id))
}

// Kind returns "room", "group", "dm" or "" for a malformed id.
func (c ChannelID) Kind() string {
	s := string(c)
	for kind, prefix := range map[string]string{"room": roomPrefix, "group": groupPrefix, "dm": DMPrefix} {
		if strings.HasPrefix(s, prefix) && len(s) > len(prefix) {
			return kind
		}
	}
	return ""
}
