package orch

import (
	"fmt"

	"github.com/dkeye/Chatcord/internal/core"
	"github.com/dkeye/Chatcord/internal/domain"
	"github.com/dkeye/Chatcord/internal/metrics"
	"github.com/rs/zerolog/log"
)

func (c *Coordinator) createGroup(sid core.SessionID, cmd core.CreateGroup, out *outbox) {
	p, ok := c.presence.Find(sid)
	if !ok {
		return
	}
	g, err := c.groups.Create(cmd.Name, p.ID, p.DisplayName)
	if err != nil {
		out.toSession(sid, core.ErrorEvent{Error: err.Error()})
		return
	}
	c.transport.Subscribe(sid, core.GroupChannel(g.ID))

	out.toSession(sid, core.GroupCreated{Group: g})
	out.toAll(c.groupList())
	out.toSession(sid, core.GroupMessage{GroupID: g.ID, Message: c.system(fmt.Sprintf("Welcome to %s! You are the creator.", g.Name))})
	c.setContext(p, groupContext(g), out)
}

func (c *Coordinator) joinGroup(sid core.SessionID, cmd core.JoinGroup, out *outbox) {
	p, ok := c.presence.Find(sid)
	if !ok {
		return
	}
	if _, ok := c.groups.Get(cmd.GroupID); !ok {
		out.toSession(sid, core.GroupMessage{GroupID: cmd.GroupID, Message: c.system("This group does not exist anymore")})
		return
	}
	if !c.groups.AddMember(cmd.GroupID, p.ID, p.DisplayName) {
		out.toSession(sid, core.GroupMessage{GroupID: cmd.GroupID, Message: c.system("You are already a member of this group")})
		return
	}
	g, _ := c.groups.Get(cmd.GroupID)
	ch := core.GroupChannel(g.ID)
	c.transport.Subscribe(sid, ch)

	out.toSession(sid, core.GroupJoined{Group: g})
	out.toChannel(ch, core.GroupMessage{GroupID: g.ID, Message: c.system(fmt.Sprintf("%s joined the group", p.DisplayName))})
	out.toAll(c.groupList())
	c.setContext(p, groupContext(g), out)
}

func (c *Coordinator) leaveGroup(sid core.SessionID, cmd core.LeaveGroup, out *outbox) {
	p, ok := c.presence.Find(sid)
	if !ok {
		return
	}
	if !c.groups.RemoveMember(cmd.GroupID, sid) {
		return
	}
	ch := core.GroupChannel(cmd.GroupID)
	c.transport.Unsubscribe(sid, ch)

	out.toChannel(ch, core.GroupMessage{GroupID: cmd.GroupID, Message: c.system(fmt.Sprintf("%s left the group", p.DisplayName))})
	out.toSession(sid, core.GroupLeft{GroupID: cmd.GroupID})
	out.toAll(c.groupList())
	if c.deleteIfEmpty(cmd.GroupID) {
		out.toAll(c.groupList())
	}
	if viewing(p, cmd.GroupID) {
		c.setContext(p, domain.RoomContext(p.Room), out)
	}
}

// deleteIfEmpty removes a group nobody is left in. Ownership is never
// transferred, so a group outlives its creator until it is empty.
func (c *Coordinator) deleteIfEmpty(id domain.GroupID) bool {
	g, ok := c.groups.Get(id)
	if !ok || len(g.Members) > 0 {
		return false
	}
	if !c.groups.Delete(id, g.Creator.ID) {
		return false
	}
	metrics.GroupsDeleted.WithLabelValues("empty").Inc()
	log.Info().Str("module", "orch").Str("group", string(id)).Msg("deleted empty group")
	return true
}

func (c *Coordinator) sendGroupMessage(sid core.SessionID, cmd core.SendGroupMessage, out *outbox) {
	p, ok := c.presence.Find(sid)
	if !ok || !c.groups.IsMember(cmd.GroupID, sid) {
		return
	}
	out.toChannel(core.GroupChannel(cmd.GroupID), core.GroupMessage{GroupID: cmd.GroupID, Message: c.format(p.DisplayName, cmd.Body)})
	metrics.MessagesPublished.WithLabelValues("group").Inc()
}

// inviteToGroup only reaches the invitee. Accepting is an ordinary join.
func (c *Coordinator) inviteToGroup(sid core.SessionID, cmd core.InviteToGroup, out *outbox) {
	p, ok := c.presence.Find(sid)
	if !ok || cmd.TargetID == sid {
		return
	}
	g, ok := c.groups.Get(cmd.GroupID)
	if !ok || !g.HasMember(sid) {
		return
	}
	if _, ok := c.presence.Find(cmd.TargetID); !ok {
		return
	}
	out.toSession(cmd.TargetID, core.GroupInvitation{Group: g, Inviter: p.Member()})
}

// deleteGroup is creator only. Anyone else gets no answer at all, so the
// request tells them nothing about the group.
func (c *Coordinator) deleteGroup(sid core.SessionID, cmd core.DeleteGroup, out *outbox) {
	if _, ok := c.presence.Find(sid); !ok {
		return
	}
	g, ok := c.groups.Get(cmd.GroupID)
	if !ok {
		return
	}
	if !c.groups.Delete(cmd.GroupID, sid) {
		log.Debug().Str("module", "orch").Str("sid", string(sid)).Str("group", string(cmd.GroupID)).Msg("delete refused")
		return
	}
	metrics.GroupsDeleted.WithLabelValues("creator").Inc()

	ch := core.GroupChannel(g.ID)
	for _, m := range g.Members {
		c.transport.Unsubscribe(m.ID, ch)
		out.toSession(m.ID, core.GroupDeleted{GroupID: g.ID})
	}
	out.toAll(c.groupList())
	for _, m := range g.Members {
		if p, ok := c.presence.Find(m.ID); ok && viewing(p, g.ID) {
			c.setContext(p, domain.RoomContext(p.Room), out)
		}
	}
}

func viewing(p domain.Participant, id domain.GroupID) bool {
	return p.Context.Kind == domain.ContextGroup && p.Context.Ref == string(id)
}
