package signal

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// 1x1 transparent PNG
var pngBase64 = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII="

func TestNormalizeAttachment(t *testing.T) {
	big := base64.StdEncoding.EncodeToString([]byte(strings.Repeat("x", 100)))

	cases := []struct {
		name     string
		in       *attachmentPayload
		max      int
		wantMIME string
		wantErr  error
	}{
		{"sniffed", &attachmentPayload{Ref: "data:;base64," + pngBase64}, 1024, "image/png", nil},
		{"declared in url", &attachmentPayload{Ref: "data:image/gif;base64," + pngBase64}, 1024, "image/gif", nil},
		{"client mime wins", &attachmentPayload{Ref: "data:image/gif;base64," + pngBase64, MIME: " image/webp "}, 1024, "image/webp", nil},
		{"plain text data", &attachmentPayload{Ref: "data:,hello%20world"}, 1024, "text/plain; charset=utf-8", nil},
		{"remote ref", &attachmentPayload{Ref: "https://cdn.example/cat.jpg"}, 1, fallbackMIME, nil},
		{"too large", &attachmentPayload{Ref: "data:;base64," + big}, 64, "", ErrAttachmentTooLarge},
		{"no limit", &attachmentPayload{Ref: "data:;base64," + big}, 0, "text/plain; charset=utf-8", nil},
		{"no comma", &attachmentPayload{Ref: "data:image/png;base64"}, 64, "", ErrBadAttachment},
		{"bad base64", &attachmentPayload{Ref: "data:;base64,@@@"}, 64, "", ErrBadAttachment},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := require.New(t)

			got, err := normalizeAttachment(tc.in, tc.max)

			if tc.wantErr != nil {
				req.ErrorIs(err, tc.wantErr)
				return
			}
			req.NoError(err)
			req.Equal(tc.wantMIME, got.MIME)
			req.Equal(tc.in.Ref, got.Ref)
		})
	}
}

func TestNormalizeAttachment_Nil(t *testing.T) {
	got, err := normalizeAttachment(nil, 10)
	require.NoError(t, err)
	require.Nil(t, got)
}
