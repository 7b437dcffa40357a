package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/turkeydev/gamesbot/internal/dependencies/clock"
	"github.com/turkeydev/gamesbot/internal/discord"
	"github.com/turkeydev/gamesbot/internal/model"
)

// Session is one running instance of a game, bound to a starting user and
// an optional second player, rendered onto a single message.
//
// All entry points (Start, HandleReaction, HandleInteraction, ForceEnd,
// SurfaceDeleted) serialize on the session lock. The remaining exported
// methods are for use by the Logic while it runs inside one of those entry
// points, and by the registry before the session starts; they do not take
// the lock themselves. Info is the one accessor safe to call from any
// goroutine.
//
// Lock order: a session's onEnd callback runs while the session lock is
// held, so callbacks may take the registry lock but never another
// session's.
type Session struct {
	mu        sync.Mutex
	desc      Descriptor
	logic     Logic
	transport discord.Transport
	clock     clock.Clock
	logger    *slog.Logger

	guild       model.GuildID
	channel     model.ChannelID
	message     model.MessageID
	starter     model.PlayerRef
	opponent    *model.PlayerRef
	starterTurn bool
	phase       model.Phase
	startedAt   time.Time
	onEnd       func(model.Result)
}

// New creates a session for the given logic and participants. The opponent
// is nil for single-player games; in that case a game that supports one
// plays against the computer.
func New(logic Logic, starter model.PlayerRef, opponent *model.PlayerRef, transport discord.Transport, clk clock.Clock, logger *slog.Logger) *Session {
	desc := logic.Descriptor()
	return &Session{
		desc:      desc,
		logic:     logic,
		transport: transport,
		clock:     clk,
		logger: logger.With(
			slog.String("component", "session"),
			slog.String("game", string(desc.Identity)),
		),
		starter:  starter,
		opponent: opponent,
		phase:    model.PhaseNotStarted,
	}
}

// Identity returns the session's game type tag
func (s *Session) Identity() model.GameIdentity {
	return s.desc.Identity
}

// SupportsMultiplayer reports whether the game type accepts a second player
func (s *Session) SupportsMultiplayer() bool {
	return s.desc.SupportsMultiplayer
}

// Starter returns the user who initiated the session
func (s *Session) Starter() model.PlayerRef {
	return s.starter
}

// Opponent returns the second player, or nil for a computer opponent
func (s *Session) Opponent() *model.PlayerRef {
	return s.opponent
}

// Start transitions the session to in progress: game state is initialized,
// the initial render is sent, and onEnd is retained to fire exactly once at
// termination. An error means the session never started and must not stay
// registered.
func (s *Session) Start(ctx context.Context, ev model.CommandEvent, onEnd func(model.Result)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != model.PhaseNotStarted {
		return model.ErrAlreadyInProgress
	}

	if err := s.logic.Setup(ctx); err != nil {
		return fmt.Errorf("setup: %w", err)
	}

	s.guild = ev.Guild
	s.channel = ev.Channel
	s.starterTurn = true
	s.onEnd = onEnd

	msg, err := s.transport.SendGame(ctx, ev.Interaction, s.logic.Render(s))
	if err != nil {
		return fmt.Errorf("initial render: %w", err)
	}

	s.message = msg
	s.phase = model.PhaseInProgress
	s.startedAt = s.clock.Now()

	s.logger.Info("session started",
		slog.String("guild", string(s.guild)),
		slog.String("starter", string(s.starter.ID)),
	)
	return nil
}

// HandleReaction forwards a reaction to the game if the session is reaction
// driven and the reacting user is the active participant; anything else is
// ignored. Forwarded reactions are retracted afterwards so the control can
// be pressed again.
func (s *Session) HandleReaction(ctx context.Context, ev model.ReactionEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != model.PhaseInProgress || s.desc.Mode != ReactionDriven {
		return
	}
	if ev.User != s.activeUser() {
		return
	}

	s.logic.Apply(ctx, s, ev.Emoji, nil)

	if err := s.transport.RemoveReaction(ctx, ev.Channel, ev.Message, ev.User, ev.Emoji); err != nil {
		s.logger.Debug("failed to remove reaction", slog.String("error", err.Error()))
	}
}

// HandleInteraction forwards a button press to the game. Out-of-turn
// actors, stale sessions, and presses on reaction-driven games are
// acknowledged without any content change.
func (s *Session) HandleInteraction(ctx context.Context, ev model.InteractionEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != model.PhaseInProgress || s.desc.Mode != ButtonDriven {
		s.deferQuietly(ctx, ev.Interaction)
		return
	}
	if ev.User != s.activeUser() {
		s.logger.Debug("deferring out-of-turn interaction",
			slog.String("user", string(ev.User)),
		)
		s.deferQuietly(ctx, ev.Interaction)
		return
	}

	s.logic.Apply(ctx, s, ev.CustomID, &ev.Interaction)
}

// ForceEnd terminates the session at a participant's request
func (s *Session) ForceEnd(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.end(ctx, nil, model.Result{Kind: model.ResultForceEnded})
}

// SurfaceDeleted terminates the session because its render surface was
// removed externally. No final render is attempted.
func (s *Session) SurfaceDeleted(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.end(ctx, nil, model.Result{Kind: model.ResultDeleted})
}

// Advance re-renders current state without mutating game logic. Used when
// an inbound event did not produce a legal state change; calling it any
// number of times changes nothing.
func (s *Session) Advance(ctx context.Context) {
	if s.phase != model.PhaseInProgress {
		return
	}
	if err := s.transport.UpdateGame(ctx, s.channel, s.message, s.logic.Render(s)); err != nil {
		s.logger.Error("failed to update game message", slog.String("error", err.Error()))
	}
}

// AdvanceVia is Advance responding through a component interaction
func (s *Session) AdvanceVia(ctx context.Context, ref model.InteractionRef) {
	if s.phase != model.PhaseInProgress {
		s.deferQuietly(ctx, ref)
		return
	}
	if err := s.transport.UpdateOnInteraction(ctx, ref, s.logic.Render(s)); err != nil {
		s.logger.Error("failed to update game message", slog.String("error", err.Error()))
	}
}

// End is the sole path to the terminal phase. It renders the final state,
// then invokes onEnd synchronously before returning. Idempotent: a second
// call is a no-op and onEnd never fires twice.
func (s *Session) End(ctx context.Context, result model.Result) {
	s.end(ctx, nil, result)
}

// EndVia is End responding through a component interaction
func (s *Session) EndVia(ctx context.Context, ref model.InteractionRef, result model.Result) {
	s.end(ctx, &ref, result)
}

func (s *Session) end(ctx context.Context, ref *model.InteractionRef, result model.Result) {
	if s.phase == model.PhaseOver {
		return
	}
	wasInProgress := s.phase == model.PhaseInProgress
	s.phase = model.PhaseOver

	// A deleted surface cannot be rendered onto; everything else gets a
	// final state summary.
	if wasInProgress && result.Kind != model.ResultDeleted {
		req := s.logic.RenderFinal(s, result)
		var err error
		if ref != nil {
			err = s.transport.UpdateOnInteraction(ctx, *ref, req)
		} else {
			err = s.transport.UpdateGame(ctx, s.channel, s.message, req)
		}
		if err != nil {
			s.logger.Error("failed to render final state", slog.String("error", err.Error()))
		}
	}

	s.logger.Info("session ended",
		slog.String("guild", string(s.guild)),
		slog.String("result", string(result.Kind)),
	)

	if s.onEnd != nil {
		s.onEnd(result)
	}
}

// FlipTurn hands the turn to the other participant
func (s *Session) FlipTurn() {
	s.starterTurn = !s.starterTurn
}

// SetStarterTurn sets whose turn it is directly. Games with an immediate
// computer reply use this to hand the turn straight back.
func (s *Session) SetStarterTurn(b bool) {
	s.starterTurn = b
}

// StarterTurn reports whether the starter is the active player
func (s *Session) StarterTurn() bool {
	return s.starterTurn
}

// TurnName is the display name of the side whose turn it is
func (s *Session) TurnName() string {
	if s.starterTurn {
		return s.starter.Name
	}
	if s.opponent != nil {
		return s.opponent.Name
	}
	return "CPU"
}

// MessageID returns the render surface handle, empty until the first
// render completes
func (s *Session) MessageID() model.MessageID {
	return s.message
}

// Guild returns the guild the session lives in
func (s *Session) Guild() model.GuildID {
	return s.guild
}

// Phase returns the session's lifecycle phase
func (s *Session) Phase() model.Phase {
	return s.phase
}

// activeUser is the participant whose external actions are accepted. For
// single-player games the starter stays active even while the computer is
// nominally moving.
func (s *Session) activeUser() model.UserID {
	if s.starterTurn || s.opponent == nil {
		return s.starter.ID
	}
	return s.opponent.ID
}

func (s *Session) deferQuietly(ctx context.Context, ref model.InteractionRef) {
	if err := s.transport.Defer(ctx, ref); err != nil {
		s.logger.Debug("failed to defer interaction", slog.String("error", err.Error()))
	}
}

// Info is a point-in-time snapshot of a session for the status API
type Info struct {
	Guild     model.GuildID      `json:"guild"`
	Game      model.GameIdentity `json:"game"`
	Starter   string             `json:"starter"`
	Opponent  string             `json:"opponent,omitempty"`
	Phase     model.Phase        `json:"phase"`
	StartedAt time.Time          `json:"started_at"`
}

// Info returns a snapshot of the session. Safe to call from any goroutine.
func (s *Session) Info() Info {
	s.mu.Lock()
	defer s.mu.Unlock()

	info := Info{
		Guild:     s.guild,
		Game:      s.desc.Identity,
		Starter:   s.starter.Name,
		Phase:     s.phase,
		StartedAt: s.startedAt,
	}
	if s.opponent != nil {
		info.Opponent = s.opponent.Name
	}
	return info
}
