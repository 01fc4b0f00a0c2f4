package app

import (
	"cmp"
	"slices"
	"sync"

	"github.com/dkeye/Chatcord/internal/core"
	"github.com/dkeye/Chatcord/internal/domain"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
)

type presenceEntry struct {
	seq         uint64
	participant domain.Participant
}

// PresenceRegistry tracks connected participants by session.
// Display names are unique across every connected participant, compared
// with Unicode case folding.
type PresenceRegistry struct {
	mu     sync.RWMutex
	seq    uint64
	bySID  map[core.SessionID]*presenceEntry
	byName map[string]core.SessionID
	fold   cases.Caser // not goroutine safe, used under mu only
}

func NewPresenceRegistry() *PresenceRegistry {
	return &PresenceRegistry{
		bySID:  make(map[core.SessionID]*presenceEntry),
		byName: make(map[string]core.SessionID),
		fold:   cases.Fold(),
	}
}

func (r *PresenceRegistry) Join(sid core.SessionID, displayName string, room domain.RoomName) (domain.Participant, error) {
	p, err := domain.NewParticipant(sid, displayName, room)
	if err != nil {
		return domain.Participant{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bySID[sid]; ok {
		return domain.Participant{}, domain.ErrAlreadyJoined
	}
	key := r.fold.String(p.DisplayName)
	if _, taken := r.byName[key]; taken {
		log.Info().Str("module", "app.presence").Str("sid", string(sid)).Str("username", p.DisplayName).Msg("username taken")
		return domain.Participant{}, domain.ErrNameTaken
	}
	r.seq++
	r.bySID[sid] = &presenceEntry{seq: r.seq, participant: *p}
	r.byName[key] = sid
	log.Info().Str("module", "app.presence").Str("sid", string(sid)).Str("username", p.DisplayName).Str("room", string(p.Room)).Msg("participant joined")
	return *p, nil
}

func (r *PresenceRegistry) Find(sid core.SessionID) (domain.Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.bySID[sid]; ok {
		return e.participant, true
	}
	return domain.Participant{}, false
}

// Leave removes the participant. Unknown sessions report false, so repeated
// disconnects are harmless.
func (r *PresenceRegistry) Leave(sid core.SessionID) (domain.Participant, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.bySID[sid]
	if !ok {
		return domain.Participant{}, false
	}
	delete(r.bySID, sid)
	delete(r.byName, r.fold.String(e.participant.DisplayName))
	log.Info().Str("module", "app.presence").Str("sid", string(sid)).Msg("participant left")
	return e.participant, true
}

// ListByRoom returns the room's participants in join order.
func (r *PresenceRegistry) ListByRoom(room domain.RoomName) []domain.Participant {
	return r.list(func(p *domain.Participant) bool { return p.Room == room })
}

func (r *PresenceRegistry) ListAll() []domain.Participant {
	return r.list(func(*domain.Participant) bool { return true })
}

func (r *PresenceRegistry) list(keep func(*domain.Participant) bool) []domain.Participant {
	r.mu.RLock()
	entries := make([]presenceEntry, 0, len(r.bySID))
	for _, e := range r.bySID {
		if keep(&e.participant) {
			entries = append(entries, *e)
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(entries, func(a, b presenceEntry) int { return cmp.Compare(a.seq, b.seq) })
	out := make([]domain.Participant, len(entries))
	for i, e := range entries {
		out[i] = e.participant
	}
	return out
}

func (r *PresenceRegistry) UpdateContext(sid core.SessionID, ctx domain.Context) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.bySID[sid]
	if !ok {
		return false
	}
	e.participant.Context = ctx
	log.Debug().Str("module", "app.presence").Str("sid", string(sid)).Str("kind", string(ctx.Kind)).Str("label", ctx.Label).Msg("updated context")
	return true
}

func (r *PresenceRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bySID)
}
