package signal

import "github.com/dkeye/Chatcord/internal/core"

const typePing = "ping"

func (ctl *SignalWSController) handlePing(conn core.SignalConnection) {
	ctl.reply(conn, core.Pong{})
}
