package signal

import (
	"github.com/dkeye/Chatcord/internal/core"
	"github.com/dkeye/Chatcord/internal/domain"
)

type joinRoomPayload struct {
	Username string `json:"username" validate:"required,max=36"`
	Room     string `json:"room" validate:"required,max=36"`
}

func (p *joinRoomPayload) command(*SignalWSController) (core.Command, error) {
	return core.JoinRoom{DisplayName: p.Username, Room: domain.RoomName(p.Room)}, nil
}

// bodyPayload is shared by every message command.
type bodyPayload struct {
	Text       string             `json:"text" validate:"required_without=Attachment,max=2000"`
	Attachment *attachmentPayload `json:"attachment"`
}

func (p *bodyPayload) body(ctl *SignalWSController) (domain.Body, error) {
	att, err := normalizeAttachment(p.Attachment, ctl.Cfg.MaxAttachmentBytes)
	if err != nil {
		return domain.Body{}, err
	}
	return domain.Body{Text: p.Text, Attachment: att}, nil
}

type roomMessagePayload struct {
	bodyPayload
}

func (p *roomMessagePayload) command(ctl *SignalWSController) (core.Command, error) {
	body, err := p.body(ctl)
	if err != nil {
		return nil, err
	}
	return core.SendRoomMessage{Body: body}, nil
}
