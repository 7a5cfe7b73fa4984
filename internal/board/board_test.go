package board

import (
	"testing"
)

func TestNewBoardSetup(t *testing.T) {
	b := NewBoard()

	cases := []struct {
		sq   Square
		want Piece
	}{
		{A1, WhiteRook},
		{E1, WhiteKing},
		{D1, WhiteQueen},
		{B1, WhiteKnight},
		{C1, WhiteBishop},
		{E2, WhitePawn},
		{E4, NoPiece},
		{D5, NoPiece},
		{E7, BlackPawn},
		{A8, BlackRook},
		{E8, BlackKing},
		{D8, BlackQueen},
		{G8, BlackKnight},
	}

	for _, c := range cases {
		if got := b.At(c.sq); got != c.want {
			t.Errorf("At(%v) = %v, want %v", c.sq, got, c.want)
		}
	}
}

func TestFindKing(t *testing.T) {
	b := NewBoard()

	if got := b.FindKing(White); got != E1 {
		t.Errorf("FindKing(White) = %v, want e1", got)
	}
	if got := b.FindKing(Black); got != E8 {
		t.Errorf("FindKing(Black) = %v, want e8", got)
	}

	t.Run("MissingKingPanics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("FindKing on an empty board should panic")
			}
		}()
		var empty Board
		for sq := A1; sq <= H8; sq++ {
			empty[sq] = NoPiece
		}
		empty.FindKing(White)
	})
}

func TestAfterMoveIsPure(t *testing.T) {
	b := NewBoard()
	after := b.AfterMove(E2, NewMove(E4), White)

	if b.At(E2) != WhitePawn || b.At(E4) != NoPiece {
		t.Error("AfterMove mutated the receiver")
	}
	if after.At(E2) != NoPiece || after.At(E4) != WhitePawn {
		t.Errorf("AfterMove did not apply the move: e2=%v e4=%v", after.At(E2), after.At(E4))
	}
}

func TestAfterMoveVariants(t *testing.T) {
	t.Run("Capture", func(t *testing.T) {
		s, err := ParseFEN("4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
		if err != nil {
			t.Fatal(err)
		}
		after := s.Board.AfterMove(E4, NewMove(D5), White)
		if after.At(D5) != WhitePawn {
			t.Errorf("d5 = %v, want white pawn", after.At(D5))
		}
		if after.At(E4) != NoPiece {
			t.Errorf("e4 = %v, want empty", after.At(E4))
		}
	})

	t.Run("EnPassant", func(t *testing.T) {
		// White pawn e5, black pawn just advanced d7-d5.
		s, err := ParseFEN("4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
		if err != nil {
			t.Fatal(err)
		}
		after := s.Board.AfterMove(E5, NewEnPassant(D6), White)
		if after.At(D6) != WhitePawn {
			t.Errorf("d6 = %v, want white pawn", after.At(D6))
		}
		if after.At(D5) != NoPiece {
			t.Error("the bypassed pawn on d5 should be removed")
		}
		if after.At(E5) != NoPiece {
			t.Error("e5 should be empty")
		}
	})

	t.Run("Promotion", func(t *testing.T) {
		s, err := ParseFEN("4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
		if err != nil {
			t.Fatal(err)
		}
		after := s.Board.AfterMove(A7, NewPromotion(A8, Queen), White)
		if after.At(A8) != WhiteQueen {
			t.Errorf("a8 = %v, want white queen", after.At(A8))
		}
		if after.At(A7) != NoPiece {
			t.Error("a7 should be empty")
		}
	})

	t.Run("CastleKingside", func(t *testing.T) {
		s, err := ParseFEN("4k3/8/8/8/8/8/8/4K2R w K - 0 1")
		if err != nil {
			t.Fatal(err)
		}
		after := s.Board.AfterMove(E1, NewCastle(true), White)
		if after.At(G1) != WhiteKing || after.At(F1) != WhiteRook {
			t.Errorf("kingside castle: g1=%v f1=%v", after.At(G1), after.At(F1))
		}
		if after.At(E1) != NoPiece || after.At(H1) != NoPiece {
			t.Error("e1 and h1 should be empty after castling")
		}
	})

	t.Run("CastleQueenside", func(t *testing.T) {
		s, err := ParseFEN("r3k3/8/8/8/8/8/8/4K3 b q - 0 1")
		if err != nil {
			t.Fatal(err)
		}
		after := s.Board.AfterMove(E8, NewCastle(false), Black)
		if after.At(C8) != BlackKing || after.At(D8) != BlackRook {
			t.Errorf("queenside castle: c8=%v d8=%v", after.At(C8), after.At(D8))
		}
		if after.At(E8) != NoPiece || after.At(A8) != NoPiece {
			t.Error("e8 and a8 should be empty after castling")
		}
	})
}

func TestAttacked(t *testing.T) {
	cases := []struct {
		name string
		fen  string
		sq   Square
		by   Color
		want bool
	}{
		{"PawnDiagonal", "4k3/8/8/8/4P3/8/8/4K3 w - - 0 1", D5, White, true},
		{"PawnNotForward", "4k3/8/8/8/4P3/8/8/4K3 w - - 0 1", E5, White, false},
		{"Knight", "4k3/8/8/8/8/2N5/8/4K3 w - - 0 1", D5, White, true},
		{"RookOpenFile", "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", A8, White, true},
		{"RookBlocked", "4k3/8/8/N7/8/8/8/R3K3 w - - 0 1", A8, White, false},
		{"BishopDiagonal", "4k3/8/8/8/8/8/1B6/4K3 w - - 0 1", G7, White, true},
		{"QueenAsRook", "4k3/8/8/8/8/8/8/Q3K3 w - - 0 1", A7, White, true},
		{"QueenAsBishop", "4k3/8/8/8/8/8/8/Q3K3 w - - 0 1", F6, White, true},
		{"KingAdjacent", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", D2, White, true},
		{"KingTooFar", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", C3, White, false},
		{"WrongColor", "4k3/8/8/8/8/2N5/8/4K3 w - - 0 1", D5, Black, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, err := ParseFEN(c.fen)
			if err != nil {
				t.Fatal(err)
			}
			if got := s.Board.Attacked(c.sq, c.by); got != c.want {
				t.Errorf("Attacked(%v, %v) = %v, want %v", c.sq, c.by, got, c.want)
			}
		})
	}
}

func TestMoveText(t *testing.T) {
	cases := []struct {
		name string
		from Square
		m    Move
		side Color
		want string
	}{
		{"Plain", E2, NewMove(E4), White, "e2e4"},
		{"Promotion", E7, NewPromotion(E8, Queen), White, "e7e8q"},
		{"Underpromotion", B2, NewPromotion(A1, Knight), Black, "b2a1n"},
		{"EnPassant", E5, NewEnPassant(D6), White, "e5d6"},
		{"WhiteKingside", E1, NewCastle(true), White, "e1g1"},
		{"BlackQueenside", E8, NewCastle(false), Black, "e8c8"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.m.Text(c.from, c.side); got != c.want {
				t.Errorf("Text = %q, want %q", got, c.want)
			}
		})
	}
}

func TestParseCoords(t *testing.T) {
	from, to, promo, err := ParseCoords("e2e4")
	if err != nil {
		t.Fatal(err)
	}
	if from != E2 || to != E4 || promo != NoPieceType {
		t.Errorf("ParseCoords(e2e4) = %v %v %v", from, to, promo)
	}

	from, to, promo, err = ParseCoords("a7a8r")
	if err != nil {
		t.Fatal(err)
	}
	if from != A7 || to != A8 || promo != Rook {
		t.Errorf("ParseCoords(a7a8r) = %v %v %v", from, to, promo)
	}

	for _, bad := range []string{"", "e2", "e2e9", "x2e4", "e7e8x", "e2e4qq"} {
		if _, _, _, err := ParseCoords(bad); err == nil {
			t.Errorf("ParseCoords(%q) should fail", bad)
		}
	}
}
