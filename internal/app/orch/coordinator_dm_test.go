package orch

import (
	"sync"
	"testing"

	"github.com/dkeye/Chatcord/internal/adapters/hub/hubtest"
	"github.com/dkeye/Chatcord/internal/app"
	"github.com/dkeye/Chatcord/internal/core"
	"github.com/dkeye/Chatcord/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestDMScenario(t *testing.T) {
	req := require.New(t)
	h := newHarness()
	alice := h.join("a", "alice", "lobby")
	bob := h.join("b", "bob", "dev")
	carol := h.join("c", "carol", "lobby")
	for _, c := range []*hubtest.Conn{alice, bob, carol} {
		c.Reset()
	}

	// When alice asks for a DM with bob
	h.coord.Handle("a", core.RequestDM{TargetID: "b"})

	// Then both get the same channel, each labelled with the other side
	var toAlice, toBob core.DMReady
	req.True(alice.Last(core.EventDMReady, &toAlice))
	req.True(bob.Last(core.EventDMReady, &toBob))
	req.Equal(toAlice.Channel, toBob.Channel)
	req.Equal(domain.Member{ID: "b", DisplayName: "bob"}, toAlice.Other)
	req.Equal(domain.Member{ID: "a", DisplayName: "alice"}, toBob.Other)
	req.Empty(carol.Frames())

	// When alice says hi
	h.coord.Handle("a", core.SendDM{Channel: toAlice.Channel, Body: domain.Body{Text: "hi"}})

	// Then only alice and bob receive it
	for _, c := range []*hubtest.Conn{alice, bob} {
		var msg core.DMMessage
		req.True(c.Last(core.EventDMMessage, &msg))
		req.Equal("hi", msg.Message.Text)
		req.Equal("alice", msg.Message.Author)
		req.Equal(core.SessionID("a"), msg.SenderID)
	}
	req.Empty(carol.Frames())
}

func TestRequestDM_BothSidesConverge(t *testing.T) {
	req := require.New(t)
	h := newHarness()
	alice := h.join("a", "alice", "lobby")
	bob := h.join("b", "bob", "lobby")
	alice.Reset()
	bob.Reset()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); h.coord.Handle("a", core.RequestDM{TargetID: "b"}) }()
	go func() { defer wg.Done(); h.coord.Handle("b", core.RequestDM{TargetID: "a"}) }()
	wg.Wait()

	ch := app.DeriveDMChannel("a", "b")
	req.ElementsMatch([]core.SessionID{"a", "b"}, h.hub.Subscribers(ch))
	req.Equal(2, alice.Count(core.EventDMReady))
	req.Equal(2, bob.Count(core.EventDMReady))
	var a, b core.DMReady
	req.True(alice.Last(core.EventDMReady, &a))
	req.True(bob.Last(core.EventDMReady, &b))
	req.Equal(ch, a.Channel)
	req.Equal(ch, b.Channel)
}

func TestRequestDM_Refused(t *testing.T) {
	req := require.New(t)
	h := newHarness()
	alice := h.join("a", "alice", "lobby")
	alice.Reset()

	h.coord.Handle("a", core.RequestDM{TargetID: "ghost"})
	h.coord.Handle("a", core.RequestDM{TargetID: "a"})

	req.Empty(alice.Frames())
}

func TestSendDM_OutsidersCannotPost(t *testing.T) {
	req := require.New(t)
	h := newHarness()
	alice := h.join("a", "alice", "lobby")
	bob := h.join("b", "bob", "lobby")
	h.join("c", "carol", "lobby")
	h.coord.Handle("a", core.RequestDM{TargetID: "b"})
	alice.Reset()
	bob.Reset()

	h.coord.Handle("c", core.SendDM{Channel: app.DeriveDMChannel("a", "b"), Body: domain.Body{Text: "psst"}})
	h.coord.Handle("a", core.SendDM{Channel: "dm:broken", Body: domain.Body{Text: "?"}})

	req.Empty(alice.Frames())
	req.Empty(bob.Frames())
}

func TestSendDM_AfterPeerLeft(t *testing.T) {
	req := require.New(t)
	h := newHarness()
	alice := h.join("a", "alice", "lobby")
	h.join("b", "bob", "lobby")
	h.coord.Handle("a", core.RequestDM{TargetID: "b"})
	h.disconnect("b")
	alice.Reset()

	ch := app.DeriveDMChannel("a", "b")
	h.coord.Handle("a", core.SendDM{Channel: ch, Body: domain.Body{Text: "still there?"}})

	req.Equal(1, alice.Count(core.EventDMMessage))
	req.Equal([]core.SessionID{"a"}, h.hub.Subscribers(ch))
}
