package signal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/dkeye/Chatcord/internal/core"
	"github.com/go-playground/validator/v10"
)

var (
	validate = newValidator()

	ErrBadPayload = errors.New("bad_payload")
)

// newValidator reports fields by their json names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// payload is the wire shape of one inbound command.
type payload interface {
	command(ctl *SignalWSController) (core.Command, error)
}

var payloads = map[core.CommandType]func() payload{
	core.CmdJoinRoom:         func() payload { return &joinRoomPayload{} },
	core.CmdSendRoomMessage:  func() payload { return &roomMessagePayload{} },
	core.CmdUpdateContext:    func() payload { return &contextPayload{} },
	core.CmdGetAllUsers:      func() payload { return &emptyPayload{cmd: core.GetAllUsers{}} },
	core.CmdCreateGroup:      func() payload { return &createGroupPayload{} },
	core.CmdGetAllGroups:     func() payload { return &emptyPayload{cmd: core.GetAllGroups{}} },
	core.CmdJoinGroup:        func() payload { return &groupRefPayload{typ: core.CmdJoinGroup} },
	core.CmdLeaveGroup:       func() payload { return &groupRefPayload{typ: core.CmdLeaveGroup} },
	core.CmdDeleteGroup:      func() payload { return &groupRefPayload{typ: core.CmdDeleteGroup} },
	core.CmdSendGroupMessage: func() payload { return &groupMessagePayload{} },
	core.CmdInviteToGroup:    func() payload { return &invitePayload{} },
	core.CmdRequestDM:        func() payload { return &requestDMPayload{} },
	core.CmdSendDM:           func() payload { return &dmMessagePayload{} },
}

var rateLimited = map[core.CommandType]bool{
	core.CmdSendRoomMessage:  true,
	core.CmdSendGroupMessage: true,
	core.CmdSendDM:           true,
	core.CmdCreateGroup:      true,
	core.CmdInviteToGroup:    true,
}

func (ctl *SignalWSController) decode(p payload, data json.RawMessage) (core.Command, error) {
	if len(data) > 0 && !bytes.Equal(data, []byte("null")) {
		if err := json.Unmarshal(data, p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
		}
	}
	if err := validate.Struct(p); err != nil {
		return nil, err
	}
	return p.command(ctl)
}

func payloadErrorText(err error) string {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		fe := verrs[0]
		return fmt.Sprintf("invalid %s: %s", fe.Field(), fe.Tag())
	case errors.Is(err, ErrAttachmentTooLarge):
		return "Attachment is too large."
	case errors.Is(err, ErrBadAttachment):
		return "Attachment is malformed."
	}
	return ErrBadPayload.Error()
}

type emptyPayload struct {
	cmd core.Command
}

func (p *emptyPayload) command(*SignalWSController) (core.Command, error) {
	return p.cmd, nil
}
