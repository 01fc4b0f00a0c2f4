package signal

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/dkeye/Chatcord/internal/domain"
	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrAttachmentTooLarge = errors.New("attachment too large")
	ErrBadAttachment      = errors.New("malformed attachment")
)

const fallbackMIME = "application/octet-stream"

type attachmentPayload struct {
	Ref  string `json:"ref" validate:"required"`
	MIME string `json:"mime" validate:"max=255"`
	Name string `json:"name" validate:"max=255"`
}

// normalizeAttachment bounds inline data and fills a missing MIME type.
// Inline data is sniffed; other refs are passed through untouched.
// maxBytes <= 0 disables the size check.
func normalizeAttachment(a *attachmentPayload, maxBytes int) (*domain.Attachment, error) {
	if a == nil {
		return nil, nil
	}
	out := &domain.Attachment{
		Ref:  a.Ref,
		MIME: strings.TrimSpace(a.MIME),
		Name: strings.TrimSpace(a.Name),
	}

	rest, inline := strings.CutPrefix(a.Ref, "data:")
	if !inline {
		if out.MIME == "" {
			out.MIME = fallbackMIME
		}
		return out, nil
	}

	meta, data, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, ErrBadAttachment
	}
	meta, isBase64 := strings.CutSuffix(meta, ";base64")
	declared, _, _ := strings.Cut(meta, ";")

	var raw []byte
	if isBase64 {
		if maxBytes > 0 && base64.StdEncoding.DecodedLen(len(data)) > maxBytes+2 {
			return nil, ErrAttachmentTooLarge
		}
		b, err := base64.StdEncoding.DecodeString(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadAttachment, err)
		}
		raw = b
	} else {
		s, err := url.PathUnescape(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadAttachment, err)
		}
		raw = []byte(s)
	}
	if maxBytes > 0 && len(raw) > maxBytes {
		return nil, ErrAttachmentTooLarge
	}

	if out.MIME == "" {
		out.MIME = strings.TrimSpace(declared)
	}
	if out.MIME == "" {
		out.MIME = mimetype.Detect(raw).String()
	}
	return out, nil
}
