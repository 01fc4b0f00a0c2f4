package app

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/dkeye/Chatcord/internal/core"
	"github.com/dkeye/Chatcord/internal/domain"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
)

const groupIDPrefix = "group_"

type groupEntry struct {
	seq   uint64
	group domain.Group
}

// GroupRegistry holds ad-hoc groups in memory. Every operation either fully
// applies or changes nothing. Emptied groups are not removed here; the
// coordinator decides that.
type GroupRegistry struct {
	mu     sync.RWMutex
	seq    uint64
	groups map[domain.GroupID]*groupEntry
	issued map[domain.GroupID]struct{}

	newID func() domain.GroupID
	now   func() time.Time
}

func NewGroupRegistry() *GroupRegistry {
	return &GroupRegistry{
		groups: make(map[domain.GroupID]*groupEntry),
		issued: make(map[domain.GroupID]struct{}),
		newID:  newGroupID,
		now:    time.Now,
	}
}

// newGroupID is a ULID: millisecond timestamp plus monotonic randomness.
func newGroupID() domain.GroupID {
	return domain.GroupID(groupIDPrefix + ulid.Make().String())
}

// Create stores a new group with the creator as its only member.
func (r *GroupRegistry) Create(name string, creatorID core.SessionID, creatorName string) (domain.Group, error) {
	n, err := domain.NormalizeGroupName(name)
	if err != nil {
		return domain.Group{}, err
	}
	creator := domain.Member{ID: creatorID, DisplayName: creatorName}

	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.newID()
	for {
		if _, used := r.issued[id]; !used {
			break
		}
		id = r.newID()
	}
	r.issued[id] = struct{}{}
	r.seq++
	g := domain.Group{
		ID:        id,
		Name:      n,
		Creator:   creator,
		Members:   []domain.Member{creator},
		CreatedAt: r.now().UTC(),
	}
	r.groups[id] = &groupEntry{seq: r.seq, group: g}
	log.Info().Str("module", "app.groups").Str("group", string(id)).Str("name", n).Str("creator", string(creatorID)).Msg("group created")
	return g.Clone(), nil
}

func (r *GroupRegistry) Get(id domain.GroupID) (domain.Group, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.groups[id]; ok {
		return e.group.Clone(), true
	}
	return domain.Group{}, false
}

// ListAll returns every group in creation order.
func (r *GroupRegistry) ListAll() []domain.Group {
	return r.list(func(*domain.Group) bool { return true })
}

// ListForParticipant returns the groups sid is currently a member of.
func (r *GroupRegistry) ListForParticipant(sid core.SessionID) []domain.Group {
	return r.list(func(g *domain.Group) bool { return g.HasMember(sid) })
}

func (r *GroupRegistry) list(keep func(*domain.Group) bool) []domain.Group {
	r.mu.RLock()
	entries := make([]groupEntry, 0, len(r.groups))
	for _, e := range r.groups {
		if keep(&e.group) {
			entries = append(entries, groupEntry{seq: e.seq, group: e.group.Clone()})
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(entries, func(a, b groupEntry) int { return cmp.Compare(a.seq, b.seq) })
	out := make([]domain.Group, len(entries))
	for i, e := range entries {
		out[i] = e.group
	}
	return out
}

// AddMember reports false when the group is missing or sid is already in it.
func (r *GroupRegistry) AddMember(id domain.GroupID, sid core.SessionID, displayName string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.groups[id]
	if !ok || e.group.HasMember(sid) {
		return false
	}
	e.group.Members = append(e.group.Members, domain.Member{ID: sid, DisplayName: displayName})
	log.Info().Str("module", "app.groups").Str("group", string(id)).Str("sid", string(sid)).Msg("member added")
	return true
}

// RemoveMember reports false when the group is missing or sid is not in it.
func (r *GroupRegistry) RemoveMember(id domain.GroupID, sid core.SessionID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.groups[id]
	if !ok {
		return false
	}
	i := slices.IndexFunc(e.group.Members, func(m domain.Member) bool { return m.ID == sid })
	if i < 0 {
		return false
	}
	e.group.Members = slices.Delete(e.group.Members, i, i+1)
	log.Info().Str("module", "app.groups").Str("group", string(id)).Str("sid", string(sid)).Int("left", len(e.group.Members)).Msg("member removed")
	return true
}

func (r *GroupRegistry) IsMember(id domain.GroupID, sid core.SessionID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.groups[id]
	return ok && e.group.HasMember(sid)
}

// Delete removes the group only when requester created it.
func (r *GroupRegistry) Delete(id domain.GroupID, requester core.SessionID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.groups[id]
	if !ok || e.group.Creator.ID != requester {
		return false
	}
	delete(r.groups, id)
	log.Info().Str("module", "app.groups").Str("group", string(id)).Str("sid", string(requester)).Msg("group deleted")
	return true
}

func (r *GroupRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.groups)
}
