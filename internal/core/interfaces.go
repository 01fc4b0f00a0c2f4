package core

import "github.com/dkeye/Chatcord/internal/domain"

//go:generate mockgen -destination=../mocks/transport_mock.go -package=mocks github.com/dkeye/Chatcord/internal/core Transport

// Frame is an encoded outbound payload.
type Frame []byte

type SessionID = domain.SessionID

// SignalConnection abstracts for a system messaging transport
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// PublishResult reports delivery stats/backpressure to the coordinator.
type PublishResult struct {
	SendTo  int
	Dropped []SessionID
}

// Merge folds o into r.
func (r *PublishResult) Merge(o PublishResult) {
	r.SendTo += o.SendTo
	r.Dropped = append(r.Dropped, o.Dropped...)
}

// Transport is the publish/subscribe primitive the coordinator drives.
// Implementations must never block on a slow session.
type Transport interface {
	Subscribe(sid SessionID, ch ChannelID)
	Unsubscribe(sid SessionID, ch ChannelID)
	// Publish delivers ev to every session subscribed to ch.
	Publish(ch ChannelID, ev Event) PublishResult
	// PublishFrom delivers ev to every session subscribed to ch except from.
	PublishFrom(from SessionID, ch ChannelID, ev Event) PublishResult
	PublishToSession(sid SessionID, ev Event) PublishResult
	PublishToAll(ev Event) PublishResult
	// Kick closes the session's connection. The adapter reports the
	// disconnect as usual.
	Kick(sid SessionID)
}
