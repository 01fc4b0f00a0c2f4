package orch

import (
	"github.com/dkeye/Chatcord/internal/app"
	"github.com/dkeye/Chatcord/internal/core"
	"github.com/dkeye/Chatcord/internal/metrics"
	"github.com/rs/zerolog/log"
)

// requestDM subscribes both sides to the pair's channel. Either side may ask
// first, or both at once; they always land on the same channel.
func (c *Coordinator) requestDM(sid core.SessionID, cmd core.RequestDM, out *outbox) {
	pair, err := c.channels.Resolve(sid, cmd.TargetID)
	if err != nil {
		log.Debug().Err(err).Str("module", "orch").Str("sid", string(sid)).Str("target", string(cmd.TargetID)).Msg("dm refused")
		return
	}
	c.transport.Subscribe(pair.Requester.ID, pair.Channel)
	c.transport.Subscribe(pair.Target.ID, pair.Channel)

	out.toSession(pair.Requester.ID, core.DMReady{Channel: pair.Channel, Other: pair.Target.Member()})
	out.toSession(pair.Target.ID, core.DMReady{Channel: pair.Channel, Other: pair.Requester.Member()})
}

func (c *Coordinator) sendDM(sid core.SessionID, cmd core.SendDM, out *outbox) {
	p, ok := c.presence.Find(sid)
	if !ok || !app.IsParty(cmd.Channel, sid) {
		return
	}
	out.toChannel(cmd.Channel, core.DMMessage{Channel: cmd.Channel, Message: c.format(p.DisplayName, cmd.Body), SenderID: sid})
	metrics.MessagesPublished.WithLabelValues("dm").Inc()
}
