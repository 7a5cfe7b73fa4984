// Package board holds the chess board representation: squares, pieces,
// moves, castling rights, and the pure board value with its query and
// transform surface. Rule state (whose turn, legal moves, history) lives
// in the game package.
package board

import (
	"fmt"
	"strings"
)

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN representation of castling rights.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	if c == White {
		if kingSide {
			return cr&WhiteKingSideCastle != 0
		}
		return cr&WhiteQueenSideCastle != 0
	}
	if kingSide {
		return cr&BlackKingSideCastle != 0
	}
	return cr&BlackQueenSideCastle != 0
}

// Right returns the rights bit for one side and wing.
func Right(c Color, kingSide bool) CastlingRights {
	if c == White {
		if kingSide {
			return WhiteKingSideCastle
		}
		return WhiteQueenSideCastle
	}
	if kingSide {
		return BlackKingSideCastle
	}
	return BlackQueenSideCastle
}

// Board is the 64-square piece grid. It is a value type: deriving the
// board after a move yields a new Board and never mutates the receiver,
// so history entries can hold plain snapshots and undo is a copy back.
type Board [64]Piece

// NewBoard returns the standard starting position.
func NewBoard() Board {
	var b Board
	for sq := A1; sq <= H8; sq++ {
		b[sq] = NoPiece
	}

	backRow := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file := 0; file < 8; file++ {
		b[NewSquare(file, 0)] = NewPiece(backRow[file], White)
		b[NewSquare(file, 1)] = WhitePawn
		b[NewSquare(file, 6)] = BlackPawn
		b[NewSquare(file, 7)] = NewPiece(backRow[file], Black)
	}

	return b
}

// At returns the piece on the given square.
func (b Board) At(sq Square) Piece {
	return b[sq]
}

// AtCoords returns the piece at (file, rank), both 0-indexed.
func (b Board) AtCoords(file, rank int) Piece {
	return b[NewSquare(file, rank)]
}

// FindKing returns the square of the given side's king. A board without
// a king is unreachable from any position move generation produces, so
// a miss is an invariant violation and panics.
func (b Board) FindKing(c Color) Square {
	king := NewPiece(King, c)
	for sq := A1; sq <= H8; sq++ {
		if b[sq] == king {
			return sq
		}
	}
	panic(fmt.Sprintf("board: no %v king on board", c))
}

// Movement offset tables, as (file delta, rank delta) pairs. Shared by
// the attack test here and by move generation in the game package.
var (
	RookDirections   = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	BishopDirections = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	KnightOffsets    = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	KingOffsets      = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
)

// Offset returns the square displaced from sq by the given file and rank
// deltas, or NoSquare if that leaves the board.
func Offset(sq Square, df, dr int) Square {
	file := sq.File() + df
	rank := sq.Rank() + dr
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare
	}
	return NewSquare(file, rank)
}

// PawnDirection returns the rank delta a pawn of the given color advances by.
func PawnDirection(c Color) int {
	if c == White {
		return 1
	}
	return -1
}

// Attacked reports whether any piece of color `by` could reach sq on its
// next move. This is deliberately a pseudo-legal test: it applies the
// per-piece movement rules but ignores whether moving would expose the
// attacker's own king. Running the full legality filter here would
// recurse back into this function through the king-safety check.
func (b Board) Attacked(sq Square, by Color) bool {
	// Pawns attack one square diagonally forward.
	dir := PawnDirection(by)
	for _, df := range [2]int{-1, 1} {
		from := Offset(sq, df, -dir)
		if from != NoSquare && b[from] == NewPiece(Pawn, by) {
			return true
		}
	}

	for _, off := range KnightOffsets {
		from := Offset(sq, off[0], off[1])
		if from != NoSquare && b[from] == NewPiece(Knight, by) {
			return true
		}
	}

	for _, off := range KingOffsets {
		from := Offset(sq, off[0], off[1])
		if from != NoSquare && b[from] == NewPiece(King, by) {
			return true
		}
	}

	if b.attackedAlong(sq, by, RookDirections, Rook) {
		return true
	}
	return b.attackedAlong(sq, by, BishopDirections, Bishop)
}

// attackedAlong walks each ray until the first occupied square and checks
// whether that occupant is an enemy slider of the matching kind (or a queen).
func (b Board) attackedAlong(sq Square, by Color, dirs [4][2]int, slider PieceType) bool {
	for _, d := range dirs {
		cur := Offset(sq, d[0], d[1])
		for cur != NoSquare {
			p := b[cur]
			if p != NoPiece {
				if p.Color() == by && (p.Type() == slider || p.Type() == Queen) {
					return true
				}
				break
			}
			cur = Offset(cur, d[0], d[1])
		}
	}
	return false
}

// AfterMove returns a new board with the move applied for the given side:
// the piece relocates, a captured piece disappears, an en passant capture
// removes the bypassed pawn, a promotion replaces the pawn with the chosen
// kind, and castling relocates both king and rook. The receiver is
// untouched.
func (b Board) AfterMove(from Square, m Move, side Color) Board {
	next := b

	switch m.Kind {
	case KindPlain:
		next[m.To] = next[from]
		next[from] = NoPiece

	case KindEnPassant:
		next[m.To] = next[from]
		next[from] = NoPiece
		// The captured pawn sits beside the origin, on the target's file.
		next[NewSquare(m.To.File(), from.Rank())] = NoPiece

	case KindPromotion:
		next[m.To] = NewPiece(m.Promo, side)
		next[from] = NoPiece

	case KindCastleKingside:
		rank := backRank(side)
		next[NewSquare(6, rank)] = next[NewSquare(4, rank)]
		next[NewSquare(4, rank)] = NoPiece
		next[NewSquare(5, rank)] = next[NewSquare(7, rank)]
		next[NewSquare(7, rank)] = NoPiece

	case KindCastleQueenside:
		rank := backRank(side)
		next[NewSquare(2, rank)] = next[NewSquare(4, rank)]
		next[NewSquare(4, rank)] = NoPiece
		next[NewSquare(3, rank)] = next[NewSquare(0, rank)]
		next[NewSquare(0, rank)] = NoPiece
	}

	return next
}

// String returns a text rendering of the board from White's perspective,
// one rank per line, FEN piece letters, dots for empty squares.
func (b Board) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d ", rank+1)
		for file := 0; file < 8; file++ {
			p := b.AtCoords(file, rank)
			if p == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(p.String() + " ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
