package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNormalizeGroupName(t *testing.T) {
	req := require.New(t)

	name, err := NormalizeGroupName("  Study ")
	req.NoError(err)
	req.Equal("Study", name)

	_, err = NormalizeGroupName(" \t ")
	req.ErrorIs(err, ErrGroupNameEmpty)

	_, err = NormalizeGroupName(strings.Repeat("g", MaxGroupNameLen+1))
	req.ErrorIs(err, ErrGroupNameTooLong)
}

func TestGroup_CloneDoesNotShareMembers(t *testing.T) {
	req := require.New(t)
	alice := Member{ID: "a", DisplayName: "alice"}
	g := &Group{ID: "g1", Name: "Study", Creator: alice, Members: []Member{alice}, CreatedAt: time.Now()}

	c := g.Clone()
	c.Members = append(c.Members, Member{ID: "b", DisplayName: "bob"})
	c.Members[0].DisplayName = "changed"

	req.Len(g.Members, 1)
	req.Equal("alice", g.Members[0].DisplayName)
	req.True(g.HasMember("a"))
	req.False(g.HasMember("b"))
}

func TestFormatMessage_StampsUTC(t *testing.T) {
	req := require.New(t)
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("X", 3600))
	att := &Attachment{Ref: "blob:1", MIME: "image/png", Name: "cat.png"}

	msg := FormatMessage("alice", Body{Text: "hi", Attachment: att}, at)

	req.Equal("alice", msg.Author)
	req.Equal("hi", msg.Text)
	req.Same(att, msg.Attachment)
	req.Equal(time.UTC, msg.Time.Location())
	req.True(at.Equal(msg.Time))
}
