package orch

import (
	"errors"
	"fmt"

	"github.com/dkeye/Chatcord/internal/app"
	"github.com/dkeye/Chatcord/internal/core"
	"github.com/dkeye/Chatcord/internal/domain"
	"github.com/dkeye/Chatcord/internal/metrics"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

func (c *Coordinator) joinRoom(sid core.SessionID, cmd core.JoinRoom, out *outbox) {
	p, err := c.presence.Join(sid, cmd.DisplayName, cmd.Room)
	if err != nil {
		metrics.JoinsRejected.WithLabelValues(joinRejectReason(err)).Inc()
		log.Info().Err(err).Str("module", "orch").Str("sid", string(sid)).Msg("join rejected")
		out.toSession(sid, core.JoinError{Error: joinErrorText(err)})
		return
	}

	room := core.RoomChannel(p.Room)
	c.transport.Subscribe(sid, room)

	out.toSession(sid, core.RoomMessage{Room: p.Room, Message: c.system("Welcome to Chatcord")})
	out.toOthers(sid, room, core.RoomMessage{Room: p.Room, Message: c.system(fmt.Sprintf("%s has joined the chat", p.DisplayName))})
	out.toChannel(room, c.roomUsers(p.Room))
	out.toSession(sid, c.groupList())
	out.toAll(c.presenceStats())
}

func joinRejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrNameTaken):
		return "name_taken"
	case errors.Is(err, domain.ErrAlreadyJoined):
		return "already_joined"
	}
	return "invalid"
}

func joinErrorText(err error) string {
	switch {
	case errors.Is(err, domain.ErrNameTaken):
		return "Username is already taken."
	case errors.Is(err, domain.ErrAlreadyJoined):
		return "You have already joined."
	}
	return fmt.Sprintf("Cannot join: %v.", err)
}

func (c *Coordinator) sendRoomMessage(sid core.SessionID, cmd core.SendRoomMessage, out *outbox) {
	p, ok := c.presence.Find(sid)
	if !ok {
		return
	}
	out.toChannel(core.RoomChannel(p.Room), core.RoomMessage{Room: p.Room, Message: c.format(p.DisplayName, cmd.Body)})
	metrics.MessagesPublished.WithLabelValues("room").Inc()
}

func (c *Coordinator) updateContext(sid core.SessionID, cmd core.UpdateContext, out *outbox) {
	p, ok := c.presence.Find(sid)
	if !ok {
		return
	}
	ctx, ok := c.resolveContext(p, cmd.Context)
	if !ok {
		log.Debug().Str("module", "orch").Str("sid", string(sid)).Str("kind", string(cmd.Context.Kind)).Str("ref", cmd.Context.Ref).Msg("unknown context")
		return
	}
	c.setContext(p, ctx, out)
}

// resolveContext fills in the label from server state so clients cannot
// show something that does not exist.
func (c *Coordinator) resolveContext(p domain.Participant, want domain.Context) (domain.Context, bool) {
	switch want.Kind {
	case domain.ContextRoom:
		return domain.RoomContext(p.Room), true
	case domain.ContextGroup:
		g, ok := c.groups.Get(domain.GroupID(want.Ref))
		if !ok {
			return domain.Context{}, false
		}
		return groupContext(g), true
	case domain.ContextDM:
		ch := core.ChannelID(want.Ref)
		a, b, ok := app.DMParties(ch)
		if !ok || (a != p.ID && b != p.ID) {
			return domain.Context{}, false
		}
		other := lo.Ternary(a == p.ID, b, a)
		label := "Direct message"
		if o, ok := c.presence.Find(other); ok {
			label = o.DisplayName
		}
		return domain.Context{Kind: domain.ContextDM, Label: label, Ref: want.Ref}, true
	}
	return domain.Context{}, false
}

func groupContext(g domain.Group) domain.Context {
	return domain.Context{Kind: domain.ContextGroup, Label: g.Name, Ref: string(g.ID)}
}

func (c *Coordinator) getAllUsers(sid core.SessionID, out *outbox) {
	if _, ok := c.presence.Find(sid); !ok {
		return
	}
	others := lo.Filter(c.presence.ListAll(), func(p domain.Participant, _ int) bool { return p.ID != sid })
	out.toSession(sid, core.UserList{
		Users: lo.Map(others, func(p domain.Participant, _ int) core.ParticipantDTO { return core.ToParticipantDTO(p) }),
	})
}

func (c *Coordinator) disconnect(sid core.SessionID, out *outbox) {
	p, ok := c.presence.Leave(sid)
	if !ok {
		return
	}
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("username", p.DisplayName).Msg("disconnect")

	room := core.RoomChannel(p.Room)
	c.transport.Unsubscribe(sid, room)
	out.toChannel(room, core.RoomMessage{Room: p.Room, Message: c.system(fmt.Sprintf("%s has left the chat", p.DisplayName))})
	out.toChannel(room, c.roomUsers(p.Room))

	// Each group is cleaned up on its own; one that fails to update must not
	// stop the rest.
	groups := c.groups.ListForParticipant(sid)
	for _, g := range groups {
		if !c.groups.RemoveMember(g.ID, sid) {
			log.Warn().Str("module", "orch").Str("sid", string(sid)).Str("group", string(g.ID)).Msg("disconnect: membership already gone")
			continue
		}
		ch := core.GroupChannel(g.ID)
		c.transport.Unsubscribe(sid, ch)
		if c.deleteIfEmpty(g.ID) {
			continue
		}
		out.toChannel(ch, core.GroupMessage{GroupID: g.ID, Message: c.system(fmt.Sprintf("%s disconnected", p.DisplayName))})
	}
	if len(groups) > 0 {
		out.toAll(c.groupList())
	}
	out.toAll(c.presenceStats())
}
