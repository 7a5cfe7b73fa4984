package board

import "fmt"

// MoveKind discriminates the closed set of move variants.
type MoveKind uint8

const (
	KindPlain MoveKind = iota
	KindEnPassant
	KindPromotion
	KindCastleKingside
	KindCastleQueenside
	KindNone
)

// Move is one move of a piece, without its origin square. The origin is
// carried separately (it is the key of the legal-move table), so a Move
// value only holds the variant tag and its operands. Move is comparable;
// legality checks are plain equality against the move table.
type Move struct {
	Kind  MoveKind
	To    Square    // target square; NoSquare for castling
	Promo PieceType // promoted kind, set only for KindPromotion
}

// NoMove is the "no move selected" sentinel. It is never legal and has
// no wire representation.
var NoMove = Move{Kind: KindNone, To: NoSquare, Promo: NoPieceType}

// NewMove creates a plain move to the given square.
func NewMove(to Square) Move {
	return Move{Kind: KindPlain, To: to, Promo: NoPieceType}
}

// NewEnPassant creates an en passant capture landing on the given square.
func NewEnPassant(to Square) Move {
	return Move{Kind: KindEnPassant, To: to, Promo: NoPieceType}
}

// NewPromotion creates a pawn promotion to the given square and kind.
func NewPromotion(to Square, promo PieceType) Move {
	return Move{Kind: KindPromotion, To: to, Promo: promo}
}

// NewCastle creates a castling move for the given wing.
func NewCastle(kingSide bool) Move {
	if kingSide {
		return Move{Kind: KindCastleKingside, To: NoSquare, Promo: NoPieceType}
	}
	return Move{Kind: KindCastleQueenside, To: NoSquare, Promo: NoPieceType}
}

// IsPromotion returns true if this is a promotion move.
func (m Move) IsPromotion() bool {
	return m.Kind == KindPromotion
}

// IsCastling returns true if this is a castling move.
func (m Move) IsCastling() bool {
	return m.Kind == KindCastleKingside || m.Kind == KindCastleQueenside
}

// IsEnPassant returns true if this is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.Kind == KindEnPassant
}

// Target returns the square the moving piece ends up on. Castling moves
// carry no explicit target, so the king's destination is derived from
// the side playing the move.
func (m Move) Target(side Color) Square {
	switch m.Kind {
	case KindCastleKingside:
		return NewSquare(6, backRank(side))
	case KindCastleQueenside:
		return NewSquare(2, backRank(side))
	default:
		return m.To
	}
}

// Text returns the coordinate text of the move from the given origin,
// e.g. "e2e4" or "e7e8q". Castling renders as the king's two-file jump
// ("e1g1"), which ParseCoords and the game's coordinate lookup accept.
func (m Move) Text(from Square, side Color) string {
	s := from.String() + m.Target(side).String()
	if m.IsPromotion() {
		promoChars := []byte{'n', 'b', 'r', 'q'}
		s += string(promoChars[m.Promo-Knight])
	}
	return s
}

// ParseCoords parses coordinate move text ("e2e4", "e7e8q") into origin,
// target, and an optional promotion kind (NoPieceType when absent).
func ParseCoords(s string) (from, to Square, promo PieceType, err error) {
	if len(s) != 4 && len(s) != 5 {
		return NoSquare, NoSquare, NoPieceType, fmt.Errorf("invalid move text: %q", s)
	}

	from, err = ParseSquare(s[0:2])
	if err != nil {
		return NoSquare, NoSquare, NoPieceType, err
	}

	to, err = ParseSquare(s[2:4])
	if err != nil {
		return NoSquare, NoSquare, NoPieceType, err
	}

	promo = NoPieceType
	if len(s) == 5 {
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoSquare, NoSquare, NoPieceType, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
	}

	return from, to, promo, nil
}

// backRank returns the home rank for the given color (0 for White, 7 for Black).
func backRank(c Color) int {
	if c == White {
		return 0
	}
	return 7
}
