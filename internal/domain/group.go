package domain

import (
	"slices"
	"strings"
	"time"
	"unicode/utf8"
)

const MaxGroupNameLen = 64

type GroupID string

// Member is a participant identity as it was when it joined a group.
type Member struct {
	ID          SessionID `json:"id"`
	DisplayName string    `json:"username"`
}

type Group struct {
	ID        GroupID   `json:"id"`
	Name      string    `json:"name"`
	Creator   Member    `json:"creator"`
	Members   []Member  `json:"members"`
	CreatedAt time.Time `json:"createdAt"`
}

func NormalizeGroupName(name string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return "", ErrGroupNameEmpty
	}
	if utf8.RuneCountInString(n) > MaxGroupNameLen {
		return "", ErrGroupNameTooLong
	}
	return n, nil
}

func (g *Group) HasMember(id SessionID) bool {
	return slices.ContainsFunc(g.Members, func(m Member) bool { return m.ID == id })
}

// Clone returns a copy that shares no member slice with g.
func (g *Group) Clone() Group {
	c := *g
	c.Members = slices.Clone(g.Members)
	return c
}
