package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/turkeydev/gamesbot/internal/dependencies/mocks"
	"github.com/turkeydev/gamesbot/internal/discord"
	"github.com/turkeydev/gamesbot/internal/discord/discordtest"
	"github.com/turkeydev/gamesbot/internal/model"
	"github.com/turkeydev/gamesbot/internal/testutil"
)

// stubLogic is a minimal Logic for driving the session lifecycle
type stubLogic struct {
	desc     Descriptor
	setupErr error

	setupCalls int
	applied    []string
	applyFn    func(ctx context.Context, sess *Session, input string, via *model.InteractionRef)
}

func (l *stubLogic) Descriptor() Descriptor { return l.desc }

func (l *stubLogic) Setup(ctx context.Context) error {
	l.setupCalls++
	return l.setupErr
}

func (l *stubLogic) Apply(ctx context.Context, sess *Session, input string, via *model.InteractionRef) {
	l.applied = append(l.applied, input)
	if l.applyFn != nil {
		l.applyFn(ctx, sess, input, via)
	}
}

func (l *stubLogic) Render(sess *Session) discord.Request {
	return discord.Request{Embed: discord.Embed{Title: "in progress"}}
}

func (l *stubLogic) RenderFinal(sess *Session, result model.Result) discord.Request {
	return discord.Request{Embed: discord.Embed{Title: "final"}}
}

type SessionSuite struct {
	suite.Suite
	transport *discordtest.MockTransport
	clock     *mocks.MockClock
	logic     *stubLogic
	ctx       context.Context
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

func (s *SessionSuite) SetupTest() {
	s.transport = discordtest.NewMockTransport()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.logic = &stubLogic{desc: Descriptor{
		Identity:            "stubgame",
		SupportsMultiplayer: true,
		Mode:                ButtonDriven,
	}}
	s.ctx = context.Background()
}

func (s *SessionSuite) newSession(opponent *model.PlayerRef) *Session {
	starter := model.PlayerRef{ID: "user-1", Name: "Alice"}
	return New(s.logic, starter, opponent, s.transport, s.clock, testutil.NopLogger())
}

func (s *SessionSuite) commandEvent() model.CommandEvent {
	return model.CommandEvent{
		Guild:       "guild-1",
		Channel:     "channel-1",
		User:        model.PlayerRef{ID: "user-1", Name: "Alice"},
		Command:     "stubgame",
		Interaction: model.InteractionRef{ID: "i-1", AppID: "app-1", Token: "t-1"},
	}
}

func (s *SessionSuite) start(sess *Session, onEnd func(model.Result)) {
	s.Require().NoError(sess.Start(s.ctx, s.commandEvent(), onEnd))
}

// Start tests

func (s *SessionSuite) TestStartSendsInitialRender() {
	sess := s.newSession(nil)
	s.start(sess, nil)

	s.Equal(model.PhaseInProgress, sess.Phase())
	s.Equal(model.MessageID("msg-1"), sess.MessageID())
	s.Equal(model.GuildID("guild-1"), sess.Guild())
	s.True(sess.StarterTurn())

	sends := s.transport.CallsFor("send")
	s.Require().Len(sends, 1)
	s.Equal("in progress", sends[0].Request.Embed.Title)
}

func (s *SessionSuite) TestStartTwiceFails() {
	sess := s.newSession(nil)
	s.start(sess, nil)

	err := sess.Start(s.ctx, s.commandEvent(), nil)
	s.ErrorIs(err, model.ErrAlreadyInProgress)
}

func (s *SessionSuite) TestStartSetupFailureLeavesSessionUnstarted() {
	s.logic.setupErr = errors.New("no content")
	sess := s.newSession(nil)

	err := sess.Start(s.ctx, s.commandEvent(), nil)
	s.Require().Error(err)
	s.Equal(model.PhaseNotStarted, sess.Phase())
	s.Empty(s.transport.CallsFor("send"))
}

func (s *SessionSuite) TestStartSendFailureLeavesSessionUnstarted() {
	s.transport.Errs["send"] = errors.New("api down")
	sess := s.newSession(nil)

	err := sess.Start(s.ctx, s.commandEvent(), nil)
	s.Require().Error(err)
	s.Equal(model.PhaseNotStarted, sess.Phase())
}

func (s *SessionSuite) TestStartRecordsStartTime() {
	sess := s.newSession(nil)
	s.start(sess, nil)

	s.Equal(s.clock.Now(), sess.Info().StartedAt)
}

// End tests

func (s *SessionSuite) TestEndRendersFinalAndFiresCallbackOnce() {
	var results []model.Result
	sess := s.newSession(nil)
	s.start(sess, func(r model.Result) { results = append(results, r) })

	sess.End(s.ctx, model.Result{Kind: model.ResultWinner, Name: "Alice"})
	sess.End(s.ctx, model.Result{Kind: model.ResultTie})

	s.Equal(model.PhaseOver, sess.Phase())
	s.Require().Len(results, 1)
	s.Equal(model.ResultWinner, results[0].Kind)

	updates := s.transport.CallsFor("update")
	s.Require().Len(updates, 1)
	s.Equal("final", updates[0].Request.Embed.Title)
	s.Equal(model.MessageID("msg-1"), updates[0].Message)
}

func (s *SessionSuite) TestForceEndRendersFinal() {
	var results []model.Result
	sess := s.newSession(nil)
	s.start(sess, func(r model.Result) { results = append(results, r) })

	sess.ForceEnd(s.ctx)

	s.Equal(model.PhaseOver, sess.Phase())
	s.Require().Len(results, 1)
	s.Equal(model.ResultForceEnded, results[0].Kind)
	s.Len(s.transport.CallsFor("update"), 1)
}

func (s *SessionSuite) TestSurfaceDeletedSkipsFinalRender() {
	var results []model.Result
	sess := s.newSession(nil)
	s.start(sess, func(r model.Result) { results = append(results, r) })

	sess.SurfaceDeleted(s.ctx)

	s.Equal(model.PhaseOver, sess.Phase())
	s.Require().Len(results, 1)
	s.Equal(model.ResultDeleted, results[0].Kind)
	s.Empty(s.transport.CallsFor("update"))
	s.Empty(s.transport.CallsFor("update_interaction"))
}

func (s *SessionSuite) TestEndRenderFailureStillFiresCallback() {
	s.transport.Errs["update"] = errors.New("api down")
	var results []model.Result
	sess := s.newSession(nil)
	s.start(sess, func(r model.Result) { results = append(results, r) })

	sess.End(s.ctx, model.Result{Kind: model.ResultTie})

	s.Len(results, 1)
	s.Equal(model.PhaseOver, sess.Phase())
}

// Interaction handling tests

func (s *SessionSuite) TestInteractionFromActivePlayerIsApplied() {
	sess := s.newSession(nil)
	s.start(sess, nil)

	sess.HandleInteraction(s.ctx, model.InteractionEvent{
		Guild:    "guild-1",
		User:     "user-1",
		CustomID: "5",
	})

	s.Equal([]string{"5"}, s.logic.applied)
}

func (s *SessionSuite) TestOutOfTurnInteractionIsDeferred() {
	opponent := model.PlayerRef{ID: "user-2", Name: "Bob"}
	sess := s.newSession(&opponent)
	s.start(sess, nil)

	// Starter moves first, so the opponent is out of turn
	sess.HandleInteraction(s.ctx, model.InteractionEvent{
		Guild:    "guild-1",
		User:     "user-2",
		CustomID: "5",
	})

	s.Empty(s.logic.applied)
	s.Len(s.transport.CallsFor("defer"), 1)
}

func (s *SessionSuite) TestInteractionAfterEndIsDeferred() {
	sess := s.newSession(nil)
	s.start(sess, nil)
	sess.End(s.ctx, model.Result{Kind: model.ResultTie})

	sess.HandleInteraction(s.ctx, model.InteractionEvent{
		Guild:    "guild-1",
		User:     "user-1",
		CustomID: "5",
	})

	s.Empty(s.logic.applied)
	s.Len(s.transport.CallsFor("defer"), 1)
}

func (s *SessionSuite) TestInteractionOnReactionDrivenGameIsDeferred() {
	s.logic.desc.Mode = ReactionDriven
	sess := s.newSession(nil)
	s.start(sess, nil)

	sess.HandleInteraction(s.ctx, model.InteractionEvent{
		Guild:    "guild-1",
		User:     "user-1",
		CustomID: "5",
	})

	s.Empty(s.logic.applied)
	s.Len(s.transport.CallsFor("defer"), 1)
}

// Reaction handling tests

func (s *SessionSuite) TestReactionFromActivePlayerIsAppliedAndRemoved() {
	s.logic.desc.Mode = ReactionDriven
	sess := s.newSession(nil)
	s.start(sess, nil)

	sess.HandleReaction(s.ctx, model.ReactionEvent{
		Guild:   "guild-1",
		Channel: "channel-1",
		Message: "msg-1",
		User:    "user-1",
		Emoji:   "🅰️",
	})

	s.Equal([]string{"🅰️"}, s.logic.applied)

	removed := s.transport.CallsFor("remove_reaction")
	s.Require().Len(removed, 1)
	s.Equal("🅰️", removed[0].Emoji)
	s.Equal(model.UserID("user-1"), removed[0].User)
}

func (s *SessionSuite) TestReactionFromOtherUserIsIgnored() {
	s.logic.desc.Mode = ReactionDriven
	sess := s.newSession(nil)
	s.start(sess, nil)

	sess.HandleReaction(s.ctx, model.ReactionEvent{
		Guild: "guild-1",
		User:  "user-99",
		Emoji: "🅰️",
	})

	s.Empty(s.logic.applied)
	s.Empty(s.transport.CallsFor("remove_reaction"))
}

func (s *SessionSuite) TestReactionOnButtonDrivenGameIsIgnored() {
	sess := s.newSession(nil)
	s.start(sess, nil)

	sess.HandleReaction(s.ctx, model.ReactionEvent{
		Guild: "guild-1",
		User:  "user-1",
		Emoji: "🅰️",
	})

	s.Empty(s.logic.applied)
}

// Turn bookkeeping tests

func (s *SessionSuite) TestTurnNameAgainstComputer() {
	sess := s.newSession(nil)
	s.start(sess, nil)

	s.Equal("Alice", sess.TurnName())
	sess.FlipTurn()
	s.Equal("CPU", sess.TurnName())
}

func (s *SessionSuite) TestTurnNameAgainstOpponent() {
	opponent := model.PlayerRef{ID: "user-2", Name: "Bob"}
	sess := s.newSession(&opponent)
	s.start(sess, nil)

	s.Equal("Alice", sess.TurnName())
	sess.FlipTurn()
	s.Equal("Bob", sess.TurnName())
}

func (s *SessionSuite) TestInfoSnapshot() {
	opponent := model.PlayerRef{ID: "user-2", Name: "Bob"}
	sess := s.newSession(&opponent)
	s.start(sess, nil)

	info := sess.Info()
	s.Equal(model.GuildID("guild-1"), info.Guild)
	s.Equal(model.GameIdentity("stubgame"), info.Game)
	s.Equal("Alice", info.Starter)
	s.Equal("Bob", info.Opponent)
	s.Equal(model.PhaseInProgress, info.Phase)
}
