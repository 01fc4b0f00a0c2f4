// Package hubtest provides a recording core.SignalConnection for tests.
package hubtest

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/dkeye/Chatcord/internal/core"
)

var (
	ErrFull   = errors.New("buffer full")
	ErrClosed = errors.New("connection closed")
)

type Frame struct {
	Type core.EventType  `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Conn records every frame it accepts. Set Full to simulate a slow client.
type Conn struct {
	mu     sync.Mutex
	frames []Frame
	full   bool
	closed bool
}

func (c *Conn) TrySend(f core.Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.full {
		return ErrFull
	}
	var fr Frame
	if err := json.Unmarshal(f, &fr); err != nil {
		return err
	}
	c.frames = append(c.frames, fr)
	return nil
}

func (c *Conn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *Conn) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Conn) SetFull(full bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.full = full
}

func (c *Conn) Frames() []Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Frame(nil), c.frames...)
}

func (c *Conn) Types() []core.EventType {
	frames := c.Frames()
	out := make([]core.EventType, len(frames))
	for i, f := range frames {
		out[i] = f.Type
	}
	return out
}

// Count returns how many frames of type t were received.
func (c *Conn) Count(t core.EventType) int {
	n := 0
	for _, f := range c.Frames() {
		if f.Type == t {
			n++
		}
	}
	return n
}

// Last decodes the most recent frame of type t into v.
func (c *Conn) Last(t core.EventType, v any) bool {
	frames := c.Frames()
	for i := len(frames) - 1; i >= 0; i-- {
		if frames[i].Type == t {
			return json.Unmarshal(frames[i].Data, v) == nil
		}
	}
	return false
}

func (c *Conn) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = nil
}
