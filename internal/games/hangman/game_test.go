package hangman

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/turkeydev/gamesbot/internal/dependencies/mocks"
	"github.com/turkeydev/gamesbot/internal/discord/discordtest"
	"github.com/turkeydev/gamesbot/internal/engine"
	"github.com/turkeydev/gamesbot/internal/model"
	"github.com/turkeydev/gamesbot/internal/testutil"
)

// stubWords returns a fixed word, or an error when set
type stubWords struct {
	word string
	err  error
}

func (s stubWords) RandomWord(ctx context.Context) (string, error) {
	return s.word, s.err
}

type GameSuite struct {
	suite.Suite
	transport *discordtest.MockTransport
	clock     *mocks.MockClock
	results   []model.Result
	ctx       context.Context
}

func TestGameSuite(t *testing.T) {
	suite.Run(t, new(GameSuite))
}

func (s *GameSuite) SetupTest() {
	s.transport = discordtest.NewMockTransport()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.results = nil
	s.ctx = context.Background()
}

func (s *GameSuite) startSession(game *Game) *engine.Session {
	alice := model.PlayerRef{ID: "user-1", Name: "Alice"}
	sess := engine.New(game, alice, nil, s.transport, s.clock, testutil.NopLogger())
	err := sess.Start(s.ctx, model.CommandEvent{
		Guild:       "guild-1",
		Channel:     "channel-1",
		User:        alice,
		Command:     string(Identity),
		Interaction: model.InteractionRef{ID: "i-0", Token: "t-0"},
	}, func(r model.Result) { s.results = append(s.results, r) })
	s.Require().NoError(err)
	return sess
}

func (s *GameSuite) react(sess *engine.Session, emoji string) {
	sess.HandleReaction(s.ctx, model.ReactionEvent{
		Guild:   "guild-1",
		Channel: "channel-1",
		Message: sess.MessageID(),
		User:    "user-1",
		Emoji:   emoji,
	})
}

func (s *GameSuite) TestDescriptor() {
	game := New(stubWords{word: "cat"})
	desc := game.Descriptor()
	s.Equal(Identity, desc.Identity)
	s.False(desc.SupportsMultiplayer)
	s.Equal(engine.ReactionDriven, desc.Mode)
}

func (s *GameSuite) TestSetupFailureAbortsStart() {
	game := New(stubWords{err: errors.New("service down")})
	alice := model.PlayerRef{ID: "user-1", Name: "Alice"}
	sess := engine.New(game, alice, nil, s.transport, s.clock, testutil.NopLogger())

	err := sess.Start(s.ctx, model.CommandEvent{Guild: "guild-1"}, nil)
	s.Require().Error(err)
	s.Equal(model.PhaseNotStarted, sess.Phase())
	s.Empty(s.transport.CallsFor("send"))
}

func (s *GameSuite) TestCorrectGuessRevealsLetter() {
	game := New(stubWords{word: "cat"})
	sess := s.startSession(game)

	s.react(sess, "🇦")

	s.Equal("_A_", game.masked())
	s.Equal(model.PhaseInProgress, sess.Phase())
	s.Len(s.transport.CallsFor("update"), 1)
	s.Len(s.transport.CallsFor("remove_reaction"), 1)
}

func (s *GameSuite) TestWrongGuessAddsBodyPart() {
	game := New(stubWords{word: "cat"})
	sess := s.startSession(game)

	s.react(sess, "🇿")

	s.Equal(1, game.wrongs)
	s.Equal(model.PhaseInProgress, sess.Phase())
}

func (s *GameSuite) TestRepeatedGuessChangesNothing() {
	game := New(stubWords{word: "cat"})
	sess := s.startSession(game)

	s.react(sess, "🇿")
	s.react(sess, "🇿")

	s.Equal(1, game.wrongs)
	s.Len(game.guessed, 1)
}

func (s *GameSuite) TestNonLetterEmojiChangesNothing() {
	game := New(stubWords{word: "cat"})
	sess := s.startSession(game)

	s.react(sess, "🎉")

	s.Empty(game.guessed)
	s.Len(s.transport.CallsFor("update"), 1)
}

func (s *GameSuite) TestLetterAliasesDecodeToSameLetter() {
	game := New(stubWords{word: "cat"})
	sess := s.startSession(game)

	s.react(sess, "🅰️")
	s.react(sess, "🇦")

	// The alias counts as the same letter already guessed
	s.Equal([]string{"A"}, game.guessed)
}

func (s *GameSuite) TestGuessingWholeWordWins() {
	game := New(stubWords{word: "cat"})
	sess := s.startSession(game)

	s.react(sess, "🇨")
	s.react(sess, "🇦")
	s.react(sess, "🇹")

	s.Equal(model.PhaseOver, sess.Phase())
	s.Require().Len(s.results, 1)
	s.Equal(model.ResultWinner, s.results[0].Kind)
	s.Equal("Alice", s.results[0].Name)
	s.Equal("CAT", s.results[0].Summary)

	updates := s.transport.CallsFor("update")
	s.Require().NotEmpty(updates)
	final := updates[len(updates)-1]
	s.Contains(final.Request.Embed.Description, "Alice has won!")
	s.Contains(final.Request.Embed.Description, "CAT")
}

func (s *GameSuite) TestFiveWrongGuessesLose() {
	game := New(stubWords{word: "cat"})
	sess := s.startSession(game)

	for _, emoji := range []string{"🇧", "🇩", "🇪", "🇫", "🇬"} {
		s.react(sess, emoji)
	}

	s.Equal(model.PhaseOver, sess.Phase())
	s.Require().Len(s.results, 1)
	s.Equal(model.ResultLoser, s.results[0].Kind)
	s.Equal("Alice", s.results[0].Name)

	updates := s.transport.CallsFor("update")
	s.Require().NotEmpty(updates)
	s.Contains(updates[len(updates)-1].Request.Embed.Description, "Alice has lost!")
}

func (s *GameSuite) TestWordIsUppercased() {
	game := New(stubWords{word: "Turkey"})
	s.startSession(game)

	s.Equal("TURKEY", game.word)
}

func (s *GameSuite) TestRenderMasksWord() {
	game := New(stubWords{word: "cat"})
	sess := s.startSession(game)

	s.react(sess, "🇹")

	req := game.Render(sess)
	s.Contains(req.Embed.Description, strings.Join([]string{"_", "_", "T"}, " "))
	s.Require().NotEmpty(req.Embed.Fields)
	s.Equal("T", req.Embed.Fields[0].Value)
}
