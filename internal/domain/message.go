package domain

import "time"

const MaxMessageTextLen = 2000

// Attachment is an opaque blob reference; the server never looks inside Ref.
type Attachment struct {
	Ref  string `json:"ref"`
	MIME string `json:"mime"`
	Name string `json:"name,omitempty"`
}

// Body is what a client sends.
type Body struct {
	Text       string
	Attachment *Attachment
}

// Message is what other clients receive. Time is stamped by the server.
type Message struct {
	Author     string      `json:"username"`
	Text       string      `json:"text"`
	Attachment *Attachment `json:"attachment,omitempty"`
	Time       time.Time   `json:"time"`
}

func FormatMessage(author string, body Body, at time.Time) Message {
	return Message{
		Author:     author,
		Text:       body.Text,
		Attachment: body.Attachment,
		Time:       at.UTC(),
	}
}

// SystemMessage is a text-only message authored by the server.
func SystemMessage(bot, text string, at time.Time) Message {
	return FormatMessage(bot, Body{Text: text}, at)
}
