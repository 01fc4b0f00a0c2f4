package orch

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dkeye/Chatcord/internal/adapters/hub"
	"github.com/dkeye/Chatcord/internal/adapters/hub/hubtest"
	"github.com/dkeye/Chatcord/internal/app"
	"github.com/dkeye/Chatcord/internal/core"
	"github.com/dkeye/Chatcord/internal/domain"
	"github.com/dkeye/Chatcord/internal/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type harness struct {
	coord *Coordinator
	hub   *hub.Hub
}

func newHarness() *harness {
	h := hub.New()
	c := NewCoordinator(h, app.SimplePolicy{}, "")
	c.Now = func() time.Time { return fixedNow }
	return &harness{coord: c, hub: h}
}

func (h *harness) connect(sid core.SessionID) *hubtest.Conn {
	conn := &hubtest.Conn{}
	h.hub.Attach(sid, conn)
	return conn
}

func (h *harness) join(sid core.SessionID, name string, room domain.RoomName) *hubtest.Conn {
	conn := h.connect(sid)
	h.coord.Handle(sid, core.JoinRoom{DisplayName: name, Room: room})
	return conn
}

func (h *harness) disconnect(sid core.SessionID) {
	h.coord.Disconnect(sid)
	h.hub.Detach(sid)
}

func roomTexts(conn *hubtest.Conn) []string {
	var out []string
	for _, f := range conn.Frames() {
		if f.Type != core.EventRoomMessage {
			continue
		}
		var m core.RoomMessage
		if err := json.Unmarshal(f.Data, &m); err == nil {
			out = append(out, m.Message.Text)
		}
	}
	return out
}

func TestJoinRoom_WelcomesAndAnnounces(t *testing.T) {
	req := require.New(t)
	h := newHarness()

	// Given alice is in the lobby
	alice := h.join("a", "alice", "lobby")
	req.Equal([]string{"Welcome to Chatcord"}, roomTexts(alice))
	var welcome core.RoomMessage
	req.True(alice.Last(core.EventRoomMessage, &welcome))
	req.Equal(DefaultBotName, welcome.Message.Author)
	req.True(fixedNow.Equal(welcome.Message.Time))
	req.Equal(1, alice.Count(core.EventGroupList))
	alice.Reset()

	// When bob joins
	bob := h.join("b", "bob", "lobby")

	// Then alice hears about bob, bob only gets his welcome
	req.Equal([]string{"bob has joined the chat"}, roomTexts(alice))
	req.Equal([]string{"Welcome to Chatcord"}, roomTexts(bob))

	// And both get the room list and the presence snapshot
	var users core.RoomUsers
	req.True(alice.Last(core.EventRoomUsers, &users))
	req.Equal(domain.RoomName("lobby"), users.Room)
	req.Len(users.Users, 2)
	var stats core.PresenceStats
	req.True(bob.Last(core.EventPresenceStats, &stats))
	req.Equal(2, stats.Total)
	req.Equal("lobby", stats.Users[1].Context.Label)
}

func TestJoinRoom_PresenceReachesOtherRooms(t *testing.T) {
	req := require.New(t)
	h := newHarness()
	dev := h.join("a", "alice", "dev")
	dev.Reset()

	h.join("b", "bob", "lobby")

	req.Empty(roomTexts(dev))
	req.Zero(dev.Count(core.EventRoomUsers))
	var stats core.PresenceStats
	req.True(dev.Last(core.EventPresenceStats, &stats))
	req.Equal(2, stats.Total)
}

func TestJoinRoom_NameTaken(t *testing.T) {
	req := require.New(t)
	h := newHarness()
	alice := h.join("a", "Alice", "lobby")
	alice.Reset()

	// When someone in another room claims the same name in another case
	imposter := h.join("x", "ALICE", "elsewhere")

	// Then only the requester hears about it
	var joinErr core.JoinError
	req.True(imposter.Last(core.EventJoinError, &joinErr))
	req.Equal("Username is already taken.", joinErr.Error)
	req.Equal([]core.EventType{core.EventJoinError}, imposter.Types())
	req.Empty(alice.Frames())

	// And nothing changed
	req.Equal(1, h.coord.presence.Count())
	req.Empty(h.hub.Subscribers(core.RoomChannel("elsewhere")))
}

func TestLobbyScenario_BobDisconnects(t *testing.T) {
	req := require.New(t)
	h := newHarness()
	alice := h.join("a", "alice", "lobby")
	h.join("b", "bob", "lobby")
	req.Len(h.coord.presence.ListByRoom("lobby"), 2)
	alice.Reset()

	h.disconnect("b")

	lobby := h.coord.presence.ListByRoom("lobby")
	req.Len(lobby, 1)
	req.Equal("alice", lobby[0].DisplayName)
	req.Equal([]string{"bob has left the chat"}, roomTexts(alice))
	var users core.RoomUsers
	req.True(alice.Last(core.EventRoomUsers, &users))
	req.Len(users.Users, 1)

	// Repeated disconnects are harmless
	alice.Reset()
	h.disconnect("b")
	req.Empty(alice.Frames())
}

func TestSendRoomMessage(t *testing.T) {
	req := require.New(t)
	h := newHarness()
	alice := h.join("a", "alice", "lobby")
	bob := h.join("b", "bob", "lobby")
	carol := h.join("c", "carol", "dev")
	for _, c := range []*hubtest.Conn{alice, bob, carol} {
		c.Reset()
	}

	att := &domain.Attachment{Ref: "blob:42", MIME: "image/png", Name: "cat.png"}
	h.coord.Handle("a", core.SendRoomMessage{Body: domain.Body{Text: "hello", Attachment: att}})

	var got core.RoomMessage
	req.True(bob.Last(core.EventRoomMessage, &got))
	req.Equal("alice", got.Message.Author)
	req.Equal("hello", got.Message.Text)
	req.Equal(att, got.Message.Attachment)
	req.Equal(1, alice.Count(core.EventRoomMessage))
	req.Empty(carol.Frames())

	// A stale session is ignored
	h.coord.Handle("ghost", core.SendRoomMessage{Body: domain.Body{Text: "boo"}})
	req.Equal(1, bob.Count(core.EventRoomMessage))
}

func TestGetAllUsers_ExcludesRequester(t *testing.T) {
	req := require.New(t)
	h := newHarness()
	alice := h.join("a", "alice", "lobby")
	h.join("b", "bob", "dev")

	h.coord.Handle("a", core.GetAllUsers{})

	var list core.UserList
	req.True(alice.Last(core.EventUserList, &list))
	req.Equal([]core.ParticipantDTO{{ID: "b", Username: "bob", Room: "dev"}}, list.Users)

	ghost := h.connect("g")
	h.coord.Handle("g", core.GetAllUsers{})
	req.Empty(ghost.Frames())
}

func TestUpdateContext_BroadcastsLabel(t *testing.T) {
	req := require.New(t)
	h := newHarness()
	alice := h.join("a", "alice", "lobby")
	bob := h.join("b", "bob", "dev")
	h.coord.Handle("a", core.CreateGroup{Name: "Study"})
	g := h.coord.groups.ListAll()[0]
	h.coord.Handle("a", core.UpdateContext{Context: domain.Context{Kind: domain.ContextRoom}})
	bob.Reset()

	// When alice looks at the group again
	h.coord.Handle("a", core.UpdateContext{Context: domain.Context{Kind: domain.ContextGroup, Ref: string(g.ID), Label: "spoofed"}})

	// Then everyone sees the server side label
	var changed core.UserLabelChanged
	req.True(bob.Last(core.EventUserLabelChanged, &changed))
	req.Equal(core.SessionID("a"), changed.UserID)
	req.Equal(domain.Context{Kind: domain.ContextGroup, Label: "Study", Ref: string(g.ID)}, changed.Context)
	req.Equal(1, bob.Count(core.EventPresenceStats))

	// And subscriptions did not change
	req.ElementsMatch([]core.SessionID{"a"}, h.hub.Subscribers(core.GroupChannel(g.ID)))

	// Unknown targets are ignored
	alice.Reset()
	h.coord.Handle("a", core.UpdateContext{Context: domain.Context{Kind: domain.ContextGroup, Ref: "group_nope"}})
	h.coord.Handle("a", core.UpdateContext{Context: domain.Context{Kind: domain.ContextDM, Ref: "dm:x|y"}})
	req.Empty(alice.Frames())
}

func TestUpdateContext_DMLabelIsOtherParty(t *testing.T) {
	req := require.New(t)
	h := newHarness()
	alice := h.join("a", "alice", "lobby")
	h.join("b", "bob", "lobby")

	h.coord.Handle("a", core.UpdateContext{Context: domain.Context{Kind: domain.ContextDM, Ref: string(app.DeriveDMChannel("a", "b"))}})

	var changed core.UserLabelChanged
	req.True(alice.Last(core.EventUserLabelChanged, &changed))
	req.Equal("bob", changed.Context.Label)
}

func TestConcurrentSessions_KeepRegistriesConsistent(t *testing.T) {
	req := require.New(t)
	h := newHarness()
	const n = 40
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sid := core.SessionID(fmt.Sprintf("s%02d", i))
			h.join(sid, fmt.Sprintf("user%d", i%10), "lobby")
			h.coord.Handle(sid, core.CreateGroup{Name: "g"})
			for _, g := range h.coord.groups.ListAll() {
				h.coord.Handle(sid, core.JoinGroup{GroupID: g.ID})
			}
			h.coord.Handle(sid, core.RequestDM{TargetID: "s00"})
			if i%2 == 0 {
				h.disconnect(sid)
			}
		}()
	}
	wg.Wait()

	// Names stayed unique
	seen := map[string]bool{}
	for _, p := range h.coord.presence.ListAll() {
		req.False(seen[p.DisplayName])
		seen[p.DisplayName] = true
	}
	// No group is empty and every member is a connected participant
	for _, g := range h.coord.groups.ListAll() {
		req.NotEmpty(g.Members)
		for _, m := range g.Members {
			_, ok := h.coord.presence.Find(m.ID)
			req.True(ok)
		}
		req.ElementsMatch(memberIDs(g), h.hub.Subscribers(core.GroupChannel(g.ID)))
	}
}

func memberIDs(g domain.Group) []core.SessionID {
	out := make([]core.SessionID, len(g.Members))
	for i, m := range g.Members {
		out[i] = m.ID
	}
	return out
}

func TestBackpressure_KicksSlowSession(t *testing.T) {
	req := require.New(t)
	h := newHarness()
	h.join("a", "alice", "lobby")
	bob := h.join("b", "bob", "lobby")
	bob.SetFull(true)

	h.coord.Handle("a", core.SendRoomMessage{Body: domain.Body{Text: "hi"}})

	req.True(bob.Closed())
}

func TestBackpressure_NoPolicyKeepsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	transport := mocks.NewMockTransport(ctrl)
	c := NewCoordinator(transport, nil, "")
	_, err := c.presence.Join("a", "alice", "lobby")
	require.NoError(t, err)

	// Kick is never expected
	transport.EXPECT().Publish(core.RoomChannel("lobby"), gomock.Any()).
		Return(core.PublishResult{Dropped: []core.SessionID{"b"}}).Times(1)

	c.Handle("a", core.SendRoomMessage{Body: domain.Body{Text: "hi"}})
}

func TestCounts(t *testing.T) {
	req := require.New(t)
	h := newHarness()
	h.join("a", "alice", "lobby")
	h.join("b", "bob", "lobby")
	h.coord.Handle("a", core.CreateGroup{Name: "Study"})

	req.Equal(2, h.coord.ParticipantCount())
	req.Equal(1, h.coord.GroupCount())

	h.disconnect("a")
	req.Equal(1, h.coord.ParticipantCount())
	req.Zero(h.coord.GroupCount())
}
