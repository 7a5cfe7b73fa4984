package game

import (
	"testing"

	"github.com/varekai/netchess/internal/board"
	"github.com/varekai/netchess/internal/testutil"
)

// moveTable snapshots the full legal-move table for comparison.
func moveTable(g *Game) map[board.Square][]board.Move {
	table := make(map[board.Square][]board.Move)
	for sq := board.A1; sq <= board.H8; sq++ {
		if moves := g.MovesFrom(sq); len(moves) > 0 {
			table[sq] = moves
		}
	}
	return table
}

func TestPlayUndoRoundTrip(t *testing.T) {
	g := NewGame()

	wantFEN := g.FEN()
	wantTable := moveTable(g)

	outcome, err := g.PlayCoords(board.E2, board.E4)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, outcome, Ok)

	if g.FEN() == wantFEN {
		t.Fatal("playing a move did not change the position")
	}

	testutil.AssertNoError(t, g.Undo(0))

	testutil.AssertEqual(t, g.FEN(), wantFEN)
	testutil.AssertEqual(t, g.SideToMove(), board.White)
	testutil.AssertEqual(t, moveTable(g), wantTable)
	testutil.AssertEqual(t, g.HistoryLen(), 0)
}

func TestPlayRejectsInvalidMoves(t *testing.T) {
	g := NewGame()
	before := g.FEN()

	cases := []struct {
		name string
		from board.Square
		m    board.Move
	}{
		{"NoMoveSentinel", board.E2, board.NoMove},
		{"EmptyOrigin", board.E4, board.NewMove(board.E5)},
		{"OpponentPiece", board.E7, board.NewMove(board.E5)},
		{"NotInMoveTable", board.E2, board.NewMove(board.E5)},
		{"WrongKind", board.E2, board.NewEnPassant(board.E4)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := g.Play(c.from, c.m)
			testutil.AssertErrorIs(t, err, ErrInvalidMove)
			testutil.AssertEqual(t, g.FEN(), before)
			testutil.AssertEqual(t, g.HistoryLen(), 0)
		})
	}
}

func TestUndoOutOfRange(t *testing.T) {
	g := NewGame()

	testutil.AssertErrorIs(t, g.Undo(0), ErrUndoOutOfRange)

	_, err := g.PlayCoords(board.E2, board.E4)
	testutil.AssertNoError(t, err)

	testutil.AssertErrorIs(t, g.Undo(1), ErrUndoOutOfRange)
	testutil.AssertNoError(t, g.Undo(0))
	testutil.AssertEqual(t, g.HistoryLen(), 0)
}

func TestUndoMultipleSteps(t *testing.T) {
	g := NewGame()

	moves := [][2]board.Square{
		{board.E2, board.E4},
		{board.E7, board.E5},
		{board.G1, board.F3},
		{board.B8, board.C6},
	}

	var fens []string
	for _, mv := range moves {
		fens = append(fens, g.FEN())
		_, err := g.PlayCoords(mv[0], mv[1])
		testutil.AssertNoError(t, err)
	}

	// Undo(1) discards the last two moves, landing after 1.e4 e5.
	testutil.AssertNoError(t, g.Undo(1))
	testutil.AssertEqual(t, g.FEN(), fens[2])
	testutil.AssertEqual(t, g.HistoryLen(), 2)
	testutil.AssertEqual(t, g.SideToMove(), board.White)
}

func TestFoolsMate(t *testing.T) {
	g := NewGame()

	script := []struct {
		from, to board.Square
		want     Outcome
	}{
		{board.F2, board.F3, Ok},
		{board.E7, board.E5, Ok},
		{board.G2, board.G4, Ok},
		{board.D8, board.H4, Checkmate},
	}

	for i, s := range script {
		outcome, err := g.PlayCoords(s.from, s.to)
		testutil.AssertNoError(t, err)
		if outcome != s.want {
			t.Fatalf("move %d: outcome = %v, want %v", i+1, outcome, s.want)
		}
	}

	if !g.InCheck() {
		t.Error("mated side should be in check")
	}
	testutil.AssertEqual(t, g.MoveCount(), 0)
}

func TestStalemate(t *testing.T) {
	// Qf3-f7 boxes the black king into h8 without attacking it.
	g, err := NewGameFEN("7k/8/6K1/8/8/5Q2/8/8 w - - 0 1")
	testutil.AssertNoError(t, err)

	outcome, err := g.PlayCoords(board.F3, board.F7)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, outcome, Stalemate)

	if g.InCheck() {
		t.Error("stalemated side must not be in check")
	}
	testutil.AssertEqual(t, g.MoveCount(), 0)
}

func TestCheckmateAfterUndoIsReplayable(t *testing.T) {
	g := NewGame()
	for _, mv := range [][2]board.Square{
		{board.F2, board.F3}, {board.E7, board.E5},
		{board.G2, board.G4}, {board.D8, board.H4},
	} {
		_, err := g.PlayCoords(mv[0], mv[1])
		testutil.AssertNoError(t, err)
	}

	// The game object keeps running after a terminal outcome: undoing
	// the mating move reopens the position.
	testutil.AssertNoError(t, g.Undo(0))
	testutil.AssertEqual(t, g.SideToMove(), board.Black)
	if g.MoveCount() == 0 {
		t.Fatal("position should be playable again after undo")
	}

	outcome, err := g.PlayCoords(board.D8, board.H4)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, outcome, Checkmate)
}

func TestHistoryQueries(t *testing.T) {
	g := NewGame()

	_, err := g.PlayCoords(board.E2, board.E4)
	testutil.AssertNoError(t, err)
	_, err = g.PlayCoords(board.E7, board.E5)
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, g.HistoryLen(), 2)

	latest, ok := g.HistoryAt(0)
	if !ok {
		t.Fatal("HistoryAt(0) should exist")
	}
	testutil.AssertEqual(t, latest.From, board.E7)
	testutil.AssertEqual(t, latest.Side, board.Black)

	first, ok := g.HistoryAt(1)
	if !ok {
		t.Fatal("HistoryAt(1) should exist")
	}
	testutil.AssertEqual(t, first.From, board.E2)

	if _, ok := g.HistoryAt(2); ok {
		t.Error("HistoryAt(2) should not exist")
	}

	// History is insertion order, oldest first.
	records := g.History()
	testutil.AssertEqual(t, len(records), 2)
	testutil.AssertEqual(t, records[0].From, board.E2)
	testutil.AssertEqual(t, records[1].From, board.E7)

	testutil.AssertEqual(t, g.MoveTexts(), []string{"e2e4", "e7e5"})
}

func TestResolveMove(t *testing.T) {
	t.Run("CastleByKingJump", func(t *testing.T) {
		g, err := NewGameFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
		testutil.AssertNoError(t, err)

		m := g.ResolveMove(board.E1, board.G1, board.NoPieceType)
		testutil.AssertEqual(t, m, board.NewCastle(true))

		m = g.ResolveMove(board.E1, board.C1, board.NoPieceType)
		testutil.AssertEqual(t, m, board.NewCastle(false))
	})

	t.Run("PromotionDefaultsToQueen", func(t *testing.T) {
		g, err := NewGameFEN("8/P6k/8/8/8/8/8/K7 w - - 0 1")
		testutil.AssertNoError(t, err)

		m := g.ResolveMove(board.A7, board.A8, board.NoPieceType)
		testutil.AssertEqual(t, m, board.NewPromotion(board.A8, board.Queen))

		m = g.ResolveMove(board.A7, board.A8, board.Knight)
		testutil.AssertEqual(t, m, board.NewPromotion(board.A8, board.Knight))
	})

	t.Run("NoMatch", func(t *testing.T) {
		g := NewGame()
		testutil.AssertEqual(t, g.ResolveMove(board.E2, board.E5, board.NoPieceType), board.NoMove)
		testutil.AssertEqual(t, g.ResolveMove(board.E2, board.E4, board.Queen), board.NoMove)
	})

	t.Run("PlayCoordsPromote", func(t *testing.T) {
		g, err := NewGameFEN("8/P6k/8/8/8/8/8/K7 w - - 0 1")
		testutil.AssertNoError(t, err)

		_, err = g.PlayCoordsPromote(board.A7, board.A8, board.Rook)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, g.At(board.A8), board.NewPiece(board.Rook, board.White))
	})
}

func TestReplay(t *testing.T) {
	g := NewGame()
	for _, mv := range [][2]board.Square{
		{board.E2, board.E4}, {board.E7, board.E5},
		{board.G1, board.F3}, {board.B8, board.C6},
		{board.F1, board.C4}, {board.G8, board.F6},
		{board.E1, board.G1}, // kingside castle
	} {
		_, err := g.PlayCoords(mv[0], mv[1])
		testutil.AssertNoError(t, err)
	}

	replayed, err := Replay(g.StartFEN(), g.MoveTexts())
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, replayed.FEN(), g.FEN())
	testutil.AssertEqual(t, replayed.HistoryLen(), g.HistoryLen())

	t.Run("RejectsIllegalRecord", func(t *testing.T) {
		_, err := Replay(board.StartFEN, []string{"e2e4", "e2e4"})
		testutil.AssertErrorIs(t, err, ErrInvalidMove)
	})

	t.Run("RejectsMalformedRecord", func(t *testing.T) {
		_, err := Replay(board.StartFEN, []string{"not a move"})
		testutil.AssertError(t, err)
	})
}

func TestNewGameFrom(t *testing.T) {
	g := NewGameFrom(board.NewBoard(), board.White)
	testutil.AssertEqual(t, g.MoveCount(), 20)

	// Castling eligibility is inferred from home squares only.
	b := board.NewBoard()
	b[board.H1] = board.NoPiece
	g = NewGameFrom(b, board.White)

	gf, err := NewGameFEN(g.FEN())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, gf.FEN(), g.FEN())
	if fen := g.FEN(); fen[len(fen)-len("Qkq - 0 1"):] != "Qkq - 0 1" {
		t.Errorf("rights after removing h1 rook: %s", fen)
	}
}
