package adminservice

import (
	"sync"
	"time"

	adminevents "github.com/wordle-club/wordle-bot/app/modules/admin/events"
	"github.com/wordle-club/wordle-bot/app/shared"
)

// ConfirmationTTL is how long a reset request waits for its "yes".
const ConfirmationTTL = 30 * time.Second

type pendingReset struct {
	notice    adminevents.ResetNotice
	expiresAt time.Time
	timer     *time.Timer
}

// ConfirmationRegistry tracks armed reset requests per guild and actor.
// A request not confirmed within the TTL expires and fires the expiry
// callback exactly once.
type ConfirmationRegistry struct {
	mu       sync.Mutex
	pending  map[string]*pendingReset
	ttl      time.Duration
	now      func() time.Time
	onExpire func(notice adminevents.ResetNotice)
}

// NewConfirmationRegistry builds a registry. onExpire may be nil.
func NewConfirmationRegistry(ttl time.Duration, onExpire func(notice adminevents.ResetNotice)) *ConfirmationRegistry {
	return &ConfirmationRegistry{
		pending:  make(map[string]*pendingReset),
		ttl:      ttl,
		now:      time.Now,
		onExpire: onExpire,
	}
}

func confirmationKey(guildID, actorID shared.DiscordID) string {
	return string(guildID) + "/" + string(actorID)
}

// Arm registers a pending reset. It reports false when the same actor
// already has one waiting.
func (r *ConfirmationRegistry) Arm(notice adminevents.ResetNotice) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := confirmationKey(notice.GuildID, notice.ActorID)
	if _, exists := r.pending[key]; exists {
		return false
	}

	p := &pendingReset{
		notice:    notice,
		expiresAt: r.now().Add(r.ttl),
	}
	p.timer = time.AfterFunc(r.ttl, func() { r.expire(key) })
	r.pending[key] = p
	return true
}

// Claim consumes a pending reset for the actor. It reports false when
// none is armed or the window has already closed.
func (r *ConfirmationRegistry) Claim(guildID, actorID shared.DiscordID) (adminevents.ResetNotice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := confirmationKey(guildID, actorID)
	p, ok := r.pending[key]
	if !ok {
		return adminevents.ResetNotice{}, false
	}
	if r.now().After(p.expiresAt) {
		return adminevents.ResetNotice{}, false
	}
	p.timer.Stop()
	delete(r.pending, key)
	return p.notice, true
}

// Cancel drops a pending reset without running it.
func (r *ConfirmationRegistry) Cancel(guildID, actorID shared.DiscordID) (adminevents.ResetNotice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := confirmationKey(guildID, actorID)
	p, ok := r.pending[key]
	if !ok {
		return adminevents.ResetNotice{}, false
	}
	p.timer.Stop()
	delete(r.pending, key)
	return p.notice, true
}

func (r *ConfirmationRegistry) expire(key string) {
	r.mu.Lock()
	p, ok := r.pending[key]
	if ok {
		delete(r.pending, key)
	}
	r.mu.Unlock()

	if ok && r.onExpire != nil {
		r.onExpire(p.notice)
	}
}
