package tictactoe

// Mark is the content of one board cell
type Mark uint8

const (
	MarkNone Mark = iota
	MarkX         // the starter
	MarkO         // the opponent or the computer
)

// Position is a board coordinate; X is the column, Y the row
type Position struct {
	X int
	Y int
}

// Index returns the cell's 0-8 index in reading order
func (p Position) Index() int {
	return p.Y*3 + p.X
}

// Board is the 3x3 grid, indexed [x][y]
type Board [3][3]Mark

// Get returns the mark at the position
func (b Board) Get(p Position) Mark {
	return b[p.X][p.Y]
}

// Set places a mark at the position
func (b *Board) Set(p Position, m Mark) {
	b[p.X][p.Y] = m
}

// Available returns every empty position, column-major as the cells are
// stored
func (b *Board) Available() []Position {
	var open []Position
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if b[i][j] == MarkNone {
				open = append(open, Position{X: i, Y: j})
			}
		}
	}
	return open
}

// HasWon reports whether the mark holds a complete line
func (b *Board) HasWon(m Mark) bool {
	_, _, won := b.WinningLine(m)
	return won
}

// WinningLine returns the 0-8 cell indexes of the endpoints of the mark's
// completed line, for highlighting in the rendered board
func (b *Board) WinningLine(m Mark) (from, to int, won bool) {
	if b[0][0] == m && b[1][1] == m && b[2][2] == m {
		return 0, 8, true
	}
	if b[0][2] == m && b[1][1] == m && b[2][0] == m {
		return 6, 2, true
	}
	for i := 0; i < 3; i++ {
		if b[i][0] == m && b[i][1] == m && b[i][2] == m {
			return i, i + 6, true
		}
		if b[0][i] == m && b[1][i] == m && b[2][i] == m {
			return i * 3, i*3 + 2, true
		}
	}
	return -1, -1, false
}

// String encodes the board as nine digits in reading order, the format the
// board image endpoint expects
func (b *Board) String() string {
	buf := make([]byte, 0, 9)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			buf = append(buf, '0'+byte(b[x][y]))
		}
	}
	return string(buf)
}
