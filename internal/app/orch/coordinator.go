package orch

import (
	"sync"
	"time"

	"github.com/dkeye/Chatcord/internal/app"
	"github.com/dkeye/Chatcord/internal/core"
	"github.com/dkeye/Chatcord/internal/domain"
	"github.com/dkeye/Chatcord/internal/metrics"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

const DefaultBotName = "Chatcord HR"

// Coordinator owns both registries and turns inbound commands into registry
// changes and outbound events.
//
// Every command runs its whole read-modify sequence under mu. Subscriptions
// change under the lock too; publishes are queued and delivered after it is
// released. deliverMu is taken before mu is released, so outboxes are
// flushed in the order their commands ran and a full snapshot is never
// overtaken by an older one.
type Coordinator struct {
	mu        sync.Mutex
	deliverMu sync.Mutex

	presence  *app.PresenceRegistry
	groups    *app.GroupRegistry
	channels  *app.ChannelResolver
	transport core.Transport

	Policy app.Policy

	BotName string
	Now     func() time.Time
}

func NewCoordinator(transport core.Transport, policy app.Policy, botName string) *Coordinator {
	if botName == "" {
		botName = DefaultBotName
	}
	presence := app.NewPresenceRegistry()
	return &Coordinator{
		presence:  presence,
		groups:    app.NewGroupRegistry(),
		channels:  app.NewChannelResolver(presence),
		transport: transport,
		Policy:    policy,
		BotName:   botName,
		Now:       time.Now,
	}
}

// Handle processes one command from sid. Commands from one session must be
// handed in arrival order; different sessions may call concurrently.
func (c *Coordinator) Handle(sid core.SessionID, cmd core.Command) {
	metrics.CommandsHandled.WithLabelValues(string(cmd.CommandType())).Inc()
	c.apply(func(out *outbox) {
		switch cmd := cmd.(type) {
		case core.JoinRoom:
			c.joinRoom(sid, cmd, out)
		case core.SendRoomMessage:
			c.sendRoomMessage(sid, cmd, out)
		case core.UpdateContext:
			c.updateContext(sid, cmd, out)
		case core.GetAllUsers:
			c.getAllUsers(sid, out)
		case core.CreateGroup:
			c.createGroup(sid, cmd, out)
		case core.GetAllGroups:
			out.toSession(sid, c.groupList())
		case core.JoinGroup:
			c.joinGroup(sid, cmd, out)
		case core.LeaveGroup:
			c.leaveGroup(sid, cmd, out)
		case core.SendGroupMessage:
			c.sendGroupMessage(sid, cmd, out)
		case core.InviteToGroup:
			c.inviteToGroup(sid, cmd, out)
		case core.DeleteGroup:
			c.deleteGroup(sid, cmd, out)
		case core.RequestDM:
			c.requestDM(sid, cmd, out)
		case core.SendDM:
			c.sendDM(sid, cmd, out)
		default:
			log.Warn().Str("module", "orch").Str("sid", string(sid)).Str("type", string(cmd.CommandType())).Msg("unhandled command")
		}
	})
}

// Disconnect removes every trace of sid. It never fails and is safe to call
// more than once.
func (c *Coordinator) Disconnect(sid core.SessionID) {
	c.apply(func(out *outbox) {
		c.disconnect(sid, out)
	})
}

func (c *Coordinator) ParticipantCount() int {
	return c.presence.Count()
}

func (c *Coordinator) GroupCount() int {
	return c.groups.Count()
}

// apply runs fn under mu and flushes what it queued under deliverMu.
// Transport publishes never block, so deliverMu is held only briefly.
func (c *Coordinator) apply(fn func(*outbox)) {
	out := &outbox{}
	c.mu.Lock()
	fn(out)
	metrics.ParticipantsConnected.Set(float64(c.presence.Count()))
	metrics.GroupsActive.Set(float64(c.groups.Count()))
	c.deliverMu.Lock()
	c.mu.Unlock()

	defer c.deliverMu.Unlock()
	c.flush(out)
}

func (c *Coordinator) flush(out *outbox) {
	if out.len() == 0 {
		return
	}
	var res core.PublishResult
	for _, send := range out.sends {
		res.Merge(send(c.transport))
	}
	if len(res.Dropped) == 0 {
		return
	}
	metrics.DeliveriesDropped.Add(float64(len(res.Dropped)))
	for _, sid := range lo.Uniq(res.Dropped) {
		if c.Policy == nil {
			continue
		}
		switch c.Policy.OnBackPressure(sid) {
		case app.KickMember:
			log.Warn().Str("module", "orch").Str("sid", string(sid)).Msg("kicking slow session")
			c.transport.Kick(sid)
		case app.MarkSlow, app.NoAction:
		}
	}
}

func (c *Coordinator) system(text string) domain.Message {
	return domain.SystemMessage(c.BotName, text, c.Now())
}

func (c *Coordinator) format(author string, body domain.Body) domain.Message {
	return domain.FormatMessage(author, body, c.Now())
}

func (c *Coordinator) roomUsers(room domain.RoomName) core.RoomUsers {
	return core.RoomUsers{
		Room:  room,
		Users: lo.Map(c.presence.ListByRoom(room), func(p domain.Participant, _ int) core.ParticipantDTO { return core.ToParticipantDTO(p) }),
	}
}

func (c *Coordinator) presenceStats() core.PresenceStats {
	all := c.presence.ListAll()
	return core.PresenceStats{
		Total: len(all),
		Users: lo.Map(all, func(p domain.Participant, _ int) core.PresenceEntry { return core.ToPresenceEntry(p) }),
	}
}

func (c *Coordinator) groupList() core.GroupList {
	return core.GroupList{Groups: c.groups.ListAll()}
}

// setContext records what p is looking at and tells everyone.
func (c *Coordinator) setContext(p domain.Participant, ctx domain.Context, out *outbox) {
	if !c.presence.UpdateContext(p.ID, ctx) {
		return
	}
	out.toAll(core.UserLabelChanged{UserID: p.ID, Username: p.DisplayName, Context: ctx})
	out.toAll(c.presenceStats())
}
