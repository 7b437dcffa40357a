package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/turkeydev/gamesbot/internal/dependencies/mocks"
)

type SearchSuite struct {
	suite.Suite
	random *mocks.MockRandom
}

func TestSearchSuite(t *testing.T) {
	suite.Run(t, new(SearchSuite))
}

func (s *SearchSuite) SetupTest() {
	s.random = mocks.NewMockRandom()
}

func (s *SearchSuite) TestFullBoardHasNoMove() {
	// A drawn board with no line for either side
	b := Board{
		{MarkX, MarkX, MarkO},
		{MarkO, MarkO, MarkX},
		{MarkX, MarkO, MarkX},
	}

	search := NewSearch(s.random, 0)
	_, ok := search.BestMove(&b)
	s.False(ok)
}

func (s *SearchSuite) TestTakesImmediateWin() {
	var b Board
	b.Set(Position{X: 0, Y: 0}, MarkO)
	b.Set(Position{X: 0, Y: 1}, MarkO)
	b.Set(Position{X: 1, Y: 1}, MarkX)
	b.Set(Position{X: 2, Y: 2}, MarkX)

	search := NewSearch(s.random, 0)
	move, ok := search.BestMove(&b)
	s.Require().True(ok)
	s.Equal(Position{X: 0, Y: 2}, move)

	// No blunder roll happens when blunders are disabled
	s.Empty(s.random.Calls)
}

func (s *SearchSuite) TestBlocksImmediateLoss() {
	var b Board
	b.Set(Position{X: 0, Y: 0}, MarkX)
	b.Set(Position{X: 0, Y: 1}, MarkX)
	b.Set(Position{X: 1, Y: 1}, MarkO)

	search := NewSearch(s.random, 0)
	move, ok := search.BestMove(&b)
	s.Require().True(ok)
	s.Equal(Position{X: 0, Y: 2}, move)
}

func (s *SearchSuite) TestLostPositionStillReturnsLegalMove() {
	// Two threats at once; every reply loses but a move must still be made
	var b Board
	b.Set(Position{X: 0, Y: 0}, MarkX)
	b.Set(Position{X: 1, Y: 0}, MarkX)
	b.Set(Position{X: 0, Y: 1}, MarkX)

	search := NewSearch(s.random, 0)
	move, ok := search.BestMove(&b)
	s.Require().True(ok)
	s.Equal(MarkNone, b.Get(move))
}

func (s *SearchSuite) TestBlunderPlaysQueuedRandomMove() {
	var b Board
	b.Set(Position{X: 0, Y: 0}, MarkX)

	// Roll of 0 triggers the blunder, next value indexes the open cells
	s.random.QueueIntn(0, 3)

	search := NewSearch(s.random, 5)
	move, ok := search.BestMove(&b)
	s.Require().True(ok)

	open := b.Available()
	s.Equal(open[3], move)
	s.Equal([]int{5, len(open)}, s.random.Calls)
}

func (s *SearchSuite) TestBlunderChanceOneAlwaysBlunders() {
	var b Board

	s.random.QueueIntn(0, 0)

	search := NewSearch(s.random, 1)
	move, ok := search.BestMove(&b)
	s.Require().True(ok)
	s.Equal(Position{X: 0, Y: 0}, move)
	s.Equal([]int{1, 9}, s.random.Calls)
}

func (s *SearchSuite) TestNonZeroRollSearchesNormally() {
	var b Board
	b.Set(Position{X: 0, Y: 0}, MarkO)
	b.Set(Position{X: 0, Y: 1}, MarkO)
	b.Set(Position{X: 1, Y: 1}, MarkX)
	b.Set(Position{X: 2, Y: 2}, MarkX)

	s.random.QueueIntn(3)

	search := NewSearch(s.random, 5)
	move, ok := search.BestMove(&b)
	s.Require().True(ok)
	s.Equal(Position{X: 0, Y: 2}, move)

	// Only the blunder roll consumed randomness
	s.Equal([]int{5}, s.random.Calls)
}

func (s *SearchSuite) TestBoardRestoredAfterSearch() {
	var b Board
	b.Set(Position{X: 0, Y: 0}, MarkX)
	b.Set(Position{X: 1, Y: 1}, MarkO)
	b.Set(Position{X: 2, Y: 0}, MarkX)
	before := b

	search := NewSearch(s.random, 0)
	_, ok := search.BestMove(&b)
	s.Require().True(ok)
	s.Equal(before, b)
}
