// Package hub is the in-process publish/subscribe transport. It maps channels
// to the sessions subscribed to them and fans encoded events out to their
// signal connections.
package hub

import (
	"encoding/json"
	"sync"

	"github.com/dkeye/Chatcord/internal/core"
	"github.com/rs/zerolog/log"
)

type set[K comparable] map[K]struct{}

// Hub is a threadsafe core.Transport.
// It never closes adapter-owned resources except on Kick.
type Hub struct {
	mu          sync.RWMutex
	sessions    map[core.SessionID]core.SignalConnection
	channels    map[core.ChannelID]set[core.SessionID]
	memberships map[core.SessionID]set[core.ChannelID]
}

func New() *Hub {
	return &Hub{
		sessions:    make(map[core.SessionID]core.SignalConnection),
		channels:    make(map[core.ChannelID]set[core.SessionID]),
		memberships: make(map[core.SessionID]set[core.ChannelID]),
	}
}

type envelope struct {
	Type core.EventType `json:"type"`
	Data core.Event     `json:"data"`
}

func Encode(ev core.Event) (core.Frame, error) {
	return json.Marshal(envelope{Type: ev.EventType(), Data: ev})
}

// Attach makes sid reachable. A second Attach replaces the connection.
func (h *Hub) Attach(sid core.SessionID, conn core.SignalConnection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[sid] = conn
	if _, ok := h.memberships[sid]; !ok {
		h.memberships[sid] = make(set[core.ChannelID])
	}
	log.Info().Str("module", "hub").Str("sid", string(sid)).Msg("attached")
}

// Detach forgets sid and every subscription it had.
func (h *Hub) Detach(sid core.SessionID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.memberships[sid] {
		h.unsubscribeLocked(sid, ch)
	}
	delete(h.memberships, sid)
	delete(h.sessions, sid)
	log.Info().Str("module", "hub").Str("sid", string(sid)).Msg("detached")
}

// Subscribe is idempotent. Sessions that are not attached are ignored.
func (h *Hub) Subscribe(sid core.SessionID, ch core.ChannelID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.sessions[sid]; !ok {
		log.Debug().Str("module", "hub").Str("sid", string(sid)).Str("channel", string(ch)).Msg("subscribe: unknown session")
		return
	}
	members, ok := h.channels[ch]
	if !ok {
		members = make(set[core.SessionID])
		h.channels[ch] = members
	}
	members[sid] = struct{}{}
	h.memberships[sid][ch] = struct{}{}
}

func (h *Hub) Unsubscribe(sid core.SessionID, ch core.ChannelID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unsubscribeLocked(sid, ch)
}

func (h *Hub) unsubscribeLocked(sid core.SessionID, ch core.ChannelID) {
	if members, ok := h.channels[ch]; ok {
		delete(members, sid)
		if len(members) == 0 {
			delete(h.channels, ch)
		}
	}
	if m, ok := h.memberships[sid]; ok {
		delete(m, ch)
	}
}

// Subscribers lists who would receive a publish to ch.
func (h *Hub) Subscribers(ch core.ChannelID) []core.SessionID {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]core.SessionID, 0, len(h.channels[ch]))
	for sid := range h.channels[ch] {
		out = append(out, sid)
	}
	return out
}

func (h *Hub) Publish(ch core.ChannelID, ev core.Event) core.PublishResult {
	return h.publishFrom("", ch, ev)
}

func (h *Hub) PublishFrom(from core.SessionID, ch core.ChannelID, ev core.Event) core.PublishResult {
	return h.publishFrom(from, ch, ev)
}

func (h *Hub) publishFrom(from core.SessionID, ch core.ChannelID, ev core.Event) core.PublishResult {
	frame, ok := encode(ev)
	if !ok {
		return core.PublishResult{}
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	res := core.PublishResult{}
	for sid := range h.channels[ch] {
		if sid == from {
			continue
		}
		h.sendLocked(sid, frame, &res)
	}
	log.Debug().Str("module", "hub").Str("channel", string(ch)).Str("type", string(ev.EventType())).Int("sent_to", res.SendTo).Int("dropped", len(res.Dropped)).Msg("publish")
	return res
}

func (h *Hub) PublishToSession(sid core.SessionID, ev core.Event) core.PublishResult {
	frame, ok := encode(ev)
	if !ok {
		return core.PublishResult{}
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	res := core.PublishResult{}
	h.sendLocked(sid, frame, &res)
	return res
}

func (h *Hub) PublishToAll(ev core.Event) core.PublishResult {
	frame, ok := encode(ev)
	if !ok {
		return core.PublishResult{}
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	res := core.PublishResult{}
	for sid := range h.sessions {
		h.sendLocked(sid, frame, &res)
	}
	return res
}

func (h *Hub) sendLocked(sid core.SessionID, frame core.Frame, res *core.PublishResult) {
	conn, ok := h.sessions[sid]
	if !ok {
		return
	}
	if err := conn.TrySend(frame); err != nil {
		res.Dropped = append(res.Dropped, sid)
		return
	}
	res.SendTo++
}

func (h *Hub) Kick(sid core.SessionID) {
	h.mu.RLock()
	conn, ok := h.sessions[sid]
	h.mu.RUnlock()
	if !ok {
		return
	}
	log.Info().Str("module", "hub").Str("sid", string(sid)).Msg("kick")
	conn.Close()
}

func encode(ev core.Event) (core.Frame, bool) {
	frame, err := Encode(ev)
	if err != nil {
		log.Error().Err(err).Str("module", "hub").Str("type", string(ev.EventType())).Msg("encode event")
		return nil, false
	}
	return frame, true
}
