package orch

import "github.com/dkeye/Chatcord/internal/core"

// outbox collects publishes decided under the coordinator lock so they can
// be delivered after it is released.
type outbox struct {
	sends []func(core.Transport) core.PublishResult
}

func (o *outbox) toSession(sid core.SessionID, ev core.Event) {
	o.sends = append(o.sends, func(t core.Transport) core.PublishResult {
		return t.PublishToSession(sid, ev)
	})
}

func (o *outbox) toChannel(ch core.ChannelID, ev core.Event) {
	o.sends = append(o.sends, func(t core.Transport) core.PublishResult {
		return t.Publish(ch, ev)
	})
}

func (o *outbox) toOthers(from core.SessionID, ch core.ChannelID, ev core.Event) {
	o.sends = append(o.sends, func(t core.Transport) core.PublishResult {
		return t.PublishFrom(from, ch, ev)
	})
}

func (o *outbox) toAll(ev core.Event) {
	o.sends = append(o.sends, func(t core.Transport) core.PublishResult {
		return t.PublishToAll(ev)
	})
}

func (o *outbox) len() int { return len(o.sends) }
