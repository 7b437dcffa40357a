package tictactoe

import (
	"github.com/turkeydev/gamesbot/internal/dependencies/random"
)

// Search picks moves for the computer side (MarkO) with a full-depth
// minimax over the remaining game tree, small enough on a 3x3 board to
// need no depth limit.
//
// At the root only, a 1-in-blunderChance roll replaces the search with a
// uniformly random legal move, the deliberate imperfection that keeps the
// computer beatable. blunderChance 0 disables blunders; 1 always blunders.
type Search struct {
	random        random.Random
	blunderChance int

	move    Position
	hasMove bool
}

// NewSearch creates a Search with the given blunder chance denominator
func NewSearch(rnd random.Random, blunderChance int) *Search {
	return &Search{random: rnd, blunderChance: blunderChance}
}

// BestMove returns the computer's move for the board. ok is false only
// when the board has no legal moves. The board is always restored
// cell-for-cell before returning; exploration mutates it in place but
// every branch reverts its move.
func (s *Search) BestMove(b *Board) (Position, bool) {
	s.move = Position{}
	s.hasMove = false
	s.minimax(b, 0, MarkO)
	return s.move, s.hasMove
}

// minimax scores the position with MarkO maximizing. Terminal positions
// score +1 for a computer win, -1 for a starter win, 0 for a full board.
//
// The maximizer keeps the informal shortcuts the bot has always had: a
// candidate scoring >= 0 at the root is retained as the move (later
// candidates overwrite earlier ones), a branch ends as soon as a score of
// +1 (maximizing) or -1 (minimizing) appears, and if every root candidate
// loses, the last one considered is kept so a legal move is still made.
func (s *Search) minimax(b *Board, depth int, turn Mark) int {
	if b.HasWon(MarkO) {
		return 1
	}
	if b.HasWon(MarkX) {
		return -1
	}

	open := b.Available()
	if len(open) == 0 {
		return 0
	}

	if depth == 0 && s.blunderChance > 0 && s.random.Intn(s.blunderChance) == 0 {
		s.move = open[s.random.Intn(len(open))]
		s.hasMove = true
		return 0
	}

	min, max := 2, -2
	for i, p := range open {
		if turn == MarkO {
			b.Set(p, MarkO)
			score := s.minimax(b, depth+1, MarkX)
			if score > max {
				max = score
			}
			if depth == 0 && score >= 0 {
				s.move = p
				s.hasMove = true
			}
			if score == 1 {
				b.Set(p, MarkNone)
				break
			}
			if depth == 0 && i == len(open)-1 && max < 0 {
				s.move = p
				s.hasMove = true
			}
		} else {
			b.Set(p, MarkX)
			score := s.minimax(b, depth+1, MarkO)
			if score < min {
				min = score
			}
			if min == -1 {
				b.Set(p, MarkNone)
				break
			}
		}
		b.Set(p, MarkNone)
	}

	if turn == MarkO {
		return max
	}
	return min
}
