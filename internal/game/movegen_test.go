package game

import (
	"testing"

	"github.com/varekai/netchess/internal/board"
)

func TestStartingPositionMoves(t *testing.T) {
	g := NewGame()

	if got := g.MoveCount(); got != 20 {
		t.Errorf("starting position has %d legal moves, want 20", got)
	}

	// 16 pawn moves (one and two squares for each pawn), 4 knight moves.
	pawnMoves, knightMoves := 0, 0
	for sq := board.A1; sq <= board.H8; sq++ {
		moves := g.MovesFrom(sq)
		switch g.At(sq).Type() {
		case board.Pawn:
			pawnMoves += len(moves)
		case board.Knight:
			knightMoves += len(moves)
		default:
			if len(moves) != 0 {
				t.Errorf("%v (%v) should have no moves at the start, got %d", sq, g.At(sq), len(moves))
			}
		}
	}
	if pawnMoves != 16 {
		t.Errorf("pawn moves = %d, want 16", pawnMoves)
	}
	if knightMoves != 4 {
		t.Errorf("knight moves = %d, want 4", knightMoves)
	}
}

func TestNoMoveLeavesKingAttacked(t *testing.T) {
	fens := []string{
		board.StartFEN,
		"r3k2r/pppq1ppp/2n2n2/3pp3/1b1PP1b1/2NB1N2/PPPQ1PPP/R3K2R w KQkq - 0 1",
		"4k3/4r3/8/8/8/8/4R3/4K3 w - - 0 1",
		"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3",
		"8/8/8/K2pP2r/8/8/8/4k3 w - d6 0 1",
	}

	for _, fen := range fens {
		g, err := NewGameFEN(fen)
		if err != nil {
			t.Fatalf("NewGameFEN(%q): %v", fen, err)
		}
		side := g.SideToMove()

		for sq := board.A1; sq <= board.H8; sq++ {
			for _, m := range g.MovesFrom(sq) {
				after := g.Board().AfterMove(sq, m, side)
				if after.Attacked(after.FindKing(side), side.Other()) {
					t.Errorf("%q: move %s leaves own king attacked", fen, m.Text(sq, side))
				}
			}
		}
	}
}

func TestPinnedPieceMoves(t *testing.T) {
	// White rook on e2 is pinned against its king by the rook on e7:
	// it may slide along the e-file but never leave it.
	g, err := NewGameFEN("4k3/4r3/8/8/8/8/4R3/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	moves := g.MovesFrom(board.E2)
	if len(moves) != 5 {
		t.Fatalf("pinned rook has %d moves, want 5 (e3-e7)", len(moves))
	}
	for _, m := range moves {
		if m.To.File() != 4 {
			t.Errorf("pinned rook move %s leaves the e-file", m.Text(board.E2, board.White))
		}
	}
}

func TestEnPassantWindow(t *testing.T) {
	g := NewGame()

	play := func(from, to board.Square) {
		t.Helper()
		if _, err := g.PlayCoords(from, to); err != nil {
			t.Fatalf("PlayCoords(%v, %v): %v", from, to, err)
		}
	}

	// Push the e-pawn to e5, then let Black answer d7-d5 right beside it.
	play(board.E2, board.E4)
	play(board.A7, board.A6)
	play(board.E4, board.E5)
	play(board.D7, board.D5)

	want := board.NewEnPassant(board.D6)
	if !containsMove(g.MovesFrom(board.E5), want) {
		t.Fatal("en passant capture e5xd6 missing right after the double push")
	}

	// Any interleaved move closes the window.
	play(board.B1, board.C3)
	play(board.A6, board.A5)
	if containsMove(g.MovesFrom(board.E5), want) {
		t.Error("en passant capture still offered after an interleaved move")
	}
}

func TestEnPassantExposingKingIsIllegal(t *testing.T) {
	// Capturing en passant would clear the whole fifth rank between the
	// white king and the black rook. The capture must be filtered out.
	g, err := NewGameFEN("8/8/8/K2pP2r/8/8/8/4k3 w - d6 0 1")
	if err != nil {
		t.Fatal(err)
	}

	moves := g.MovesFrom(board.E5)
	if containsMove(moves, board.NewEnPassant(board.D6)) {
		t.Error("en passant capture exposing the king was generated")
	}
	if !containsMove(moves, board.NewMove(board.E6)) {
		t.Error("the plain push e5-e6 should still be legal")
	}
}

func TestPromotionGeneratesFourMoves(t *testing.T) {
	g, err := NewGameFEN("8/P6k/8/8/8/8/8/K7 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	moves := g.MovesFrom(board.A7)
	if len(moves) != 4 {
		t.Fatalf("promoting pawn has %d moves, want 4", len(moves))
	}

	seen := make(map[board.PieceType]bool)
	for _, m := range moves {
		if !m.IsPromotion() || m.To != board.A8 {
			t.Errorf("unexpected non-promotion move %s for promoting pawn", m.Text(board.A7, board.White))
			continue
		}
		seen[m.Promo] = true
	}
	for _, kind := range []board.PieceType{board.Queen, board.Rook, board.Bishop, board.Knight} {
		if !seen[kind] {
			t.Errorf("missing promotion to %v", kind)
		}
	}
}

func TestPromotionByCapture(t *testing.T) {
	// The a-pawn can push to a8 or capture the knight on b8; both
	// destinations promote, four kinds each.
	g, err := NewGameFEN("1n6/P6k/8/8/8/8/8/K7 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	moves := g.MovesFrom(board.A7)
	if len(moves) != 8 {
		t.Fatalf("promoting pawn has %d moves, want 8", len(moves))
	}
	for _, m := range moves {
		if !m.IsPromotion() {
			t.Errorf("unexpected non-promotion move %s", m.Text(board.A7, board.White))
		}
	}
}

func TestCastlingGeneration(t *testing.T) {
	t.Run("BothWingsOpen", func(t *testing.T) {
		g, err := NewGameFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
		if err != nil {
			t.Fatal(err)
		}
		moves := g.MovesFrom(board.E1)
		if !containsMove(moves, board.NewCastle(true)) {
			t.Error("kingside castle missing")
		}
		if !containsMove(moves, board.NewCastle(false)) {
			t.Error("queenside castle missing")
		}
	})

	t.Run("PathBlocked", func(t *testing.T) {
		g, err := NewGameFEN("r3k2r/8/8/8/8/8/8/RN2KB1R w KQkq - 0 1")
		if err != nil {
			t.Fatal(err)
		}
		moves := g.MovesFrom(board.E1)
		if containsMove(moves, board.NewCastle(true)) || containsMove(moves, board.NewCastle(false)) {
			t.Error("castling generated through occupied squares")
		}
	})

	t.Run("ThroughAttackedSquare", func(t *testing.T) {
		// The rook on f3 covers f1: the king may not cross it, so only
		// the queenside castle survives.
		g, err := NewGameFEN("r3k2r/8/8/8/8/5r2/8/R3K2R w KQkq - 0 1")
		if err != nil {
			t.Fatal(err)
		}
		moves := g.MovesFrom(board.E1)
		if containsMove(moves, board.NewCastle(true)) {
			t.Error("kingside castle generated through an attacked square")
		}
		if !containsMove(moves, board.NewCastle(false)) {
			t.Error("queenside castle should be unaffected")
		}
	})

	t.Run("NoRights", func(t *testing.T) {
		g, err := NewGameFEN("r3k2r/8/8/8/8/8/8/R3K2R w - - 0 1")
		if err != nil {
			t.Fatal(err)
		}
		moves := g.MovesFrom(board.E1)
		if containsMove(moves, board.NewCastle(true)) || containsMove(moves, board.NewCastle(false)) {
			t.Error("castling generated without rights")
		}
	})

	t.Run("RightLostAfterRookReturns", func(t *testing.T) {
		// A rook leaving home and coming back must not restore the
		// right: eligibility is history, not board shape.
		g, err := NewGameFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
		if err != nil {
			t.Fatal(err)
		}
		for _, mv := range [][2]board.Square{
			{board.H1, board.H2}, {board.A8, board.A7},
			{board.H2, board.H1}, {board.A7, board.A8},
		} {
			if _, err := g.PlayCoords(mv[0], mv[1]); err != nil {
				t.Fatalf("PlayCoords(%v, %v): %v", mv[0], mv[1], err)
			}
		}

		moves := g.MovesFrom(board.E1)
		if containsMove(moves, board.NewCastle(true)) {
			t.Error("kingside castle restored after the rook returned home")
		}
		if !containsMove(moves, board.NewCastle(false)) {
			t.Error("queenside castle should still be available")
		}
	})
}

func containsMove(moves []board.Move, want board.Move) bool {
	for _, m := range moves {
		if m == want {
			return true
		}
	}
	return false
}
