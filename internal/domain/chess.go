package domain

import "fmt"

// Square is a board coordinate such as "e4".
type Square string

// Files and ranks in display order (rank 8 at the top).
var (
	Files = []byte{'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h'}
	Ranks = []byte{'8', '7', '6', '5', '4', '3', '2', '1'}
)

// ParseSquare validates a coordinate like "c4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return "", fmt.Errorf("invalid square %q", s)
	}
	return Square(s), nil
}

// SquareAt returns the square at zero-based display row/col (row 0 = rank 8).
func SquareAt(row, col int) Square {
	return Square([]byte{Files[col], Ranks[row]})
}

// Dark reports whether the square is a dark square.
func (sq Square) Dark() bool {
	if len(sq) != 2 {
		return false
	}
	file := int(sq[0] - 'a')
	rank := int(sq[1] - '1')
	return (file+rank)%2 == 0
}

// Piece is a chess piece rendered with its unicode glyph.
type Piece rune

// Unicode glyphs used by the scripted position.
const (
	WhiteKing   Piece = '♔'
	WhiteQueen  Piece = '♕'
	WhiteRook   Piece = '♖'
	WhiteBishop Piece = '♗'
	WhiteKnight Piece = '♘'
	WhitePawn   Piece = '♙'
	BlackKing   Piece = '♚'
	BlackQueen  Piece = '♛'
	BlackRook   Piece = '♜'
	BlackBishop Piece = '♝'
	BlackKnight Piece = '♞'
	BlackPawn   Piece = '♟'
)

func (p Piece) String() string { return string(rune(p)) }

// Board maps occupied squares to pieces. Empty squares are absent.
type Board map[Square]Piece

// StartPosition returns the scripted mate-in-3 starting position.
func StartPosition() Board {
	return Board{
		"a8": BlackRook, "c8": BlackBishop, "e8": BlackRook, "g8": BlackKing, "h8": BlackQueen,
		"a7": BlackPawn, "b7": BlackPawn, "c7": BlackPawn, "d7": BlackKnight, "e7": BlackPawn,
		"f7": BlackPawn, "h7": BlackPawn, "b6": BlackKnight, "g6": BlackPawn,

		"a1": WhiteRook, "h1": WhiteRook, "e1": WhiteKing, "e2": WhiteQueen,
		"c3": WhiteKnight, "c4": WhiteBishop, "e4": WhiteKnight,
		"a2": WhitePawn, "b2": WhitePawn, "c2": WhitePawn, "b3": WhitePawn,
		"f2": WhitePawn, "g2": WhitePawn, "h4": WhitePawn,
	}
}

// Occupied reports whether a piece stands on sq.
func (b Board) Occupied(sq Square) bool {
	_, ok := b[sq]
	return ok
}

// Move relocates the piece on from to to, capturing any occupant of to.
// Moving from an empty square is a no-op and returns false.
func (b Board) Move(from, to Square) bool {
	p, ok := b[from]
	if !ok {
		return false
	}
	delete(b, from)
	b[to] = p
	return true
}

// Clone returns an independent copy of b.
func (b Board) Clone() Board {
	out := make(Board, len(b))
	for sq, p := range b {
		out[sq] = p
	}
	return out
}
