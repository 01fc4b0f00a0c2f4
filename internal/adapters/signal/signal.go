// Package signal is the websocket edge of the chat. It turns inbound frames
// into coordinator commands and owns every connection's read and write pumps.
package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/dkeye/Chatcord/internal/adapters/hub"
	"github.com/dkeye/Chatcord/internal/app/orch"
	"github.com/dkeye/Chatcord/internal/config"
	"github.com/dkeye/Chatcord/internal/core"
	"github.com/dkeye/Chatcord/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var (
	ErrBackpressure = errors.New("backpressure")
	ErrConnClosed   = errors.New("connection closed")
)

type SignalWSController struct {
	Coord   *orch.Coordinator
	Hub     *hub.Hub
	Cfg     *config.Config
	limiter *RateLimiter
}

func NewSignalWSController(coord *orch.Coordinator, h *hub.Hub, cfg *config.Config) *SignalWSController {
	return &SignalWSController{
		Coord:   coord,
		Hub:     h,
		Cfg:     cfg,
		limiter: NewRateLimiter(cfg.RateLimit, cfg.RateInterval),
	}
}

type WsSignalConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrConnClosed
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleSignal upgrades the request and starts the pumps. Every connection is
// its own session, so two tabs with the same client token are two participants.
func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	sid := core.SessionID(uuid.NewString())
	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("client", c.GetString("client_token")).Msg("new WS connection")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}

	conn := &WsSignalConn{
		conn: ws,
		send: make(chan core.Frame, ctl.Cfg.SendBuffer),
	}
	ctl.Hub.Attach(sid, conn)
	metrics.ConnectionsOpen.Inc()

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, cancel, sid, conn)
}

// reply goes to the requester only and bypasses the coordinator.
func (ctl *SignalWSController) reply(c core.SignalConnection, ev core.Event) {
	frame, err := hub.Encode(ev)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("reply encode")
		return
	}
	if err := c.TrySend(frame); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("type", string(ev.EventType())).Msg("reply dropped")
	}
}
