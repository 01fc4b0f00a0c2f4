package app

import (
	"strings"

	"github.com/dkeye/Chatcord/internal/core"
	"github.com/dkeye/Chatcord/internal/domain"
)

// dmSeparator never appears in a session id (they are UUIDs).
const dmSeparator = "|"

// DeriveDMChannel returns the same channel for a pair regardless of which
// side asks.
func DeriveDMChannel(a, b core.SessionID) core.ChannelID {
	lo, hi := string(a), string(b)
	if hi < lo {
		lo, hi = hi, lo
	}
	return core.ChannelID(core.DMPrefix + lo + dmSeparator + hi)
}

// DMParties splits a channel produced by DeriveDMChannel.
func DMParties(ch core.ChannelID) (core.SessionID, core.SessionID, bool) {
	rest, ok := strings.CutPrefix(string(ch), core.DMPrefix)
	if !ok {
		return "", "", false
	}
	a, b, ok := strings.Cut(rest, dmSeparator)
	if !ok || a == "" || b == "" || strings.Contains(b, dmSeparator) {
		return "", "", false
	}
	return core.SessionID(a), core.SessionID(b), true
}

// DMPair is a resolved direct channel between two connected participants.
type DMPair struct {
	Channel   core.ChannelID
	Requester domain.Participant
	Target    domain.Participant
}

type ChannelResolver struct {
	presence *PresenceRegistry
}

func NewChannelResolver(presence *PresenceRegistry) *ChannelResolver {
	return &ChannelResolver{presence: presence}
}

func (r *ChannelResolver) Resolve(requester, target core.SessionID) (DMPair, error) {
	if requester == target {
		return DMPair{}, domain.ErrSelfChannel
	}
	from, ok := r.presence.Find(requester)
	if !ok {
		return DMPair{}, domain.ErrNotFound
	}
	to, ok := r.presence.Find(target)
	if !ok {
		return DMPair{}, domain.ErrNotFound
	}
	return DMPair{Channel: DeriveDMChannel(requester, target), Requester: from, Target: to}, nil
}

// IsParty reports whether sid is one of the two sides of ch.
func IsParty(ch core.ChannelID, sid core.SessionID) bool {
	a, b, ok := DMParties(ch)
	return ok && (a == sid || b == sid)
}
