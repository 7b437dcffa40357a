// Package registry tracks which user occupies which game session per guild
// and enforces the uniqueness invariants around session creation.
package registry

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/turkeydev/gamesbot/internal/engine"
	"github.com/turkeydev/gamesbot/internal/model"
)

// Registry is the process-wide map from (guild, user) to the session that
// user currently occupies. It is the only cross-session shared mutable
// resource; all mutation goes through Register and Unregister.
//
// The check-and-insert in Register happens under one lock acquisition, so
// registration can never be observed half done.
type Registry struct {
	mu     sync.Mutex
	guilds map[model.GuildID]map[model.UserID]*engine.Session
	logger *slog.Logger
}

// New creates an empty Registry
func New(logger *slog.Logger) *Registry {
	return &Registry{
		guilds: make(map[model.GuildID]map[model.UserID]*engine.Session),
		logger: logger.With(slog.String("component", "registry")),
	}
}

// Register claims registry slots for the session's participants. It fails
// with ErrAlreadyInGame if the starter or opponent is already keyed in the
// guild, and with ErrDuplicateInstance if a session with the same game
// identity already exists there. Nothing is mutated on failure.
func (r *Registry) Register(guild model.GuildID, sess *engine.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := r.guilds[guild]

	starter := sess.Starter()
	if _, busy := users[starter.ID]; busy {
		return model.ErrAlreadyInGame
	}
	if opp := sess.Opponent(); opp != nil {
		if _, busy := users[opp.ID]; busy {
			return fmt.Errorf("opponent %s: %w", opp.Name, model.ErrOpponentInGame)
		}
	}
	for _, existing := range users {
		if existing.Identity() == sess.Identity() {
			return model.ErrDuplicateInstance
		}
	}

	if users == nil {
		users = make(map[model.UserID]*engine.Session)
		r.guilds[guild] = users
	}
	users[starter.ID] = sess
	if opp := sess.Opponent(); opp != nil {
		users[opp.ID] = sess
	}

	r.logger.Info("session registered",
		slog.String("guild", string(guild)),
		slog.String("game", string(sess.Identity())),
		slog.String("starter", string(starter.ID)),
	)
	return nil
}

// Unregister removes every slot held by the session, atomically for both
// participants. It is invoked exactly once per session, from the session's
// onEnd callback (or by the router when a start attempt fails).
func (r *Registry) Unregister(guild model.GuildID, sess *engine.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := r.guilds[guild]
	for id, s := range users {
		if s == sess {
			delete(users, id)
		}
	}
	if len(users) == 0 {
		delete(r.guilds, guild)
	}
}

// Lookup returns the session the user currently occupies in the guild, or
// nil if there is none
func (r *Registry) Lookup(guild model.GuildID, user model.UserID) *engine.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.guilds[guild][user]
}

// FindByMessage returns the sessions in the guild whose render surface is
// the given message
func (r *Registry) FindByMessage(guild model.GuildID, msg model.MessageID) []*engine.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*engine.Session
	seen := make(map[*engine.Session]bool)
	for _, sess := range r.guilds[guild] {
		if !seen[sess] && sess.MessageID() == msg {
			seen[sess] = true
			out = append(out, sess)
		}
	}
	return out
}

// Infos returns a snapshot of every registered session. The session
// snapshots are taken after the registry lock is released, so a session
// ending concurrently may appear with its terminal phase.
func (r *Registry) Infos() []engine.Info {
	r.mu.Lock()
	var sessions []*engine.Session
	seen := make(map[*engine.Session]bool)
	for _, users := range r.guilds {
		for _, sess := range users {
			if !seen[sess] {
				seen[sess] = true
				sessions = append(sessions, sess)
			}
		}
	}
	r.mu.Unlock()

	infos := make([]engine.Info, 0, len(sessions))
	for _, sess := range sessions {
		infos = append(infos, sess.Info())
	}
	return infos
}
