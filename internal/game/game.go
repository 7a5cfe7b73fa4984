// Package game implements the rule engine: the authoritative position,
// legal move generation for the side to move, move application, terminal
// state detection, and move history with undo.
package game

import (
	"errors"
	"fmt"

	"github.com/varekai/netchess/internal/board"
)

// Outcome is the result of a successfully played move. Checkmate and
// Stalemate are not errors: the move stood, and they additionally tell
// the caller that no further moves should be submitted.
type Outcome int

const (
	Ok Outcome = iota
	Checkmate
	Stalemate
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	default:
		return "ok"
	}
}

// Sentinel errors for invalid user input. The game state is unchanged
// whenever one of these is returned.
var (
	ErrInvalidMove    = errors.New("game: move is not legal in this position")
	ErrUndoOutOfRange = errors.New("game: not enough history to undo")
)

// Record is one history entry: the full pre-move state plus the move
// that was played from it. Castling rights and the en passant window
// are move-history bookkeeping the board snapshot alone cannot carry,
// so they are folded into the record and restored together on undo.
type Record struct {
	Board     board.Board
	From      board.Square
	Move      board.Move
	Side      board.Color
	Rights    board.CastlingRights
	EnPassant board.Square
	HalfMoves int
	FullMove  int
}

// Game is the orchestrating state machine. It owns the current board,
// the per-turn legal-move table, the side to move, the cached king
// square for that side, and the history stack. A Game is synchronous
// and carries no locking; it is owned by one caller at a time.
type Game struct {
	board    board.Board
	moves    map[board.Square][]board.Move
	side     board.Color
	kingSq   board.Square
	rights   board.CastlingRights
	epTarget board.Square

	halfMoves int // half-move clock, reset by pawn moves and captures
	fullMove  int

	history  []Record
	startFEN string
}

// NewGame returns a game at the standard starting position, White to move.
func NewGame() *Game {
	g := &Game{
		board:    board.NewBoard(),
		side:     board.White,
		rights:   board.AllCastling,
		epTarget: board.NoSquare,
		fullMove: 1,
		startFEN: board.StartFEN,
	}
	g.refresh()
	return g
}

// NewGameFrom returns a game resumed from an arbitrary board and side to
// move. Castling rights are granted only where king and rook still stand
// on their home squares; a board cannot distinguish a rook that never
// moved from one that returned home, so this errs on the permissive side
// the way the standard rule reads a bare diagram.
func NewGameFrom(b board.Board, side board.Color) *Game {
	rights := board.NoCastling
	if b.At(board.E1) == board.WhiteKing {
		if b.At(board.H1) == board.WhiteRook {
			rights |= board.WhiteKingSideCastle
		}
		if b.At(board.A1) == board.WhiteRook {
			rights |= board.WhiteQueenSideCastle
		}
	}
	if b.At(board.E8) == board.BlackKing {
		if b.At(board.H8) == board.BlackRook {
			rights |= board.BlackKingSideCastle
		}
		if b.At(board.A8) == board.BlackRook {
			rights |= board.BlackQueenSideCastle
		}
	}

	g := &Game{
		board:    b,
		side:     side,
		rights:   rights,
		epTarget: board.NoSquare,
		fullMove: 1,
	}
	g.startFEN = g.FEN()
	g.refresh()
	return g
}

// NewGameFEN returns a game resumed from a full FEN record, including
// explicit castling rights and en passant target.
func NewGameFEN(fen string) (*Game, error) {
	s, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}

	g := &Game{
		board:     s.Board,
		side:      s.SideToMove,
		rights:    s.CastlingRights,
		epTarget:  s.EnPassant,
		halfMoves: s.HalfMoveClock,
		fullMove:  s.FullMoveNumber,
		startFEN:  fen,
	}
	g.refresh()
	return g, nil
}

// refresh recomputes the cached king square and the legal-move table.
// Called after every mutation of the position.
func (g *Game) refresh() {
	g.kingSq = g.board.FindKing(g.side)
	g.computeMoves()
}

// Play validates and commits one move for the side to move. It fails
// with ErrInvalidMove, leaving the game untouched, when the move is the
// NoMove sentinel, the origin holds no piece, or the legal-move table
// has no matching entry. On success the move is pushed onto history,
// the board advances, the turn flips, and the returned outcome reports
// whether the new side to move is mated, stalemated, or still playing.
func (g *Game) Play(from board.Square, m board.Move) (Outcome, error) {
	if m.Kind == board.KindNone || !from.IsValid() {
		return Ok, ErrInvalidMove
	}
	mover := g.board.At(from)
	if mover == board.NoPiece || !g.contains(from, m) {
		return Ok, ErrInvalidMove
	}

	g.history = append(g.history, Record{
		Board:     g.board,
		From:      from,
		Move:      m,
		Side:      g.side,
		Rights:    g.rights,
		EnPassant: g.epTarget,
		HalfMoves: g.halfMoves,
		FullMove:  g.fullMove,
	})

	target := m.Target(g.side)
	capture := g.board.At(target) != board.NoPiece || m.IsEnPassant()

	g.board = g.board.AfterMove(from, m, g.side)
	g.updateRights(mover, from, target)
	g.updateEnPassant(mover, from, target)

	if mover.Type() == board.Pawn || capture {
		g.halfMoves = 0
	} else {
		g.halfMoves++
	}
	if g.side == board.Black {
		g.fullMove++
	}

	if g.switchSide() {
		if g.InCheck() {
			return Checkmate, nil
		}
		return Stalemate, nil
	}
	return Ok, nil
}

// PlayCoords plays the legal move from one square to another, resolving
// the move kind from the legal-move table: a king moving two files
// resolves to the castle, a pawn landing on the en passant target to the
// capture, and an unqualified promotion to the queen.
func (g *Game) PlayCoords(from, to board.Square) (Outcome, error) {
	return g.Play(from, g.ResolveMove(from, to, board.NoPieceType))
}

// PlayCoordsPromote is PlayCoords with an explicit promotion kind.
func (g *Game) PlayCoordsPromote(from, to board.Square, promo board.PieceType) (Outcome, error) {
	return g.Play(from, g.ResolveMove(from, to, promo))
}

// ResolveMove finds the legal move from `from` whose destination is `to`.
// promo selects among promotion moves and defaults to Queen when
// NoPieceType; a promo given for a non-promotion target never matches.
// Returns NoMove when nothing in the table fits.
func (g *Game) ResolveMove(from, to board.Square, promo board.PieceType) board.Move {
	if !from.IsValid() || !to.IsValid() {
		return board.NoMove
	}
	for _, m := range g.moves[from] {
		if m.Target(g.side) != to {
			continue
		}
		if m.IsPromotion() {
			want := promo
			if want == board.NoPieceType {
				want = board.Queen
			}
			if m.Promo == want {
				return m
			}
			continue
		}
		if promo != board.NoPieceType {
			continue
		}
		return m
	}
	return board.NoMove
}

// Undo reverts to the state recorded `steps` entries back and truncates
// history to that point; Undo(0) reverts the most recent move. It fails
// with ErrUndoOutOfRange, leaving the game untouched, when fewer than
// steps+1 moves have been played.
func (g *Game) Undo(steps int) error {
	if steps < 0 || steps >= len(g.history) {
		return ErrUndoOutOfRange
	}

	rec := g.history[len(g.history)-1-steps]
	g.board = rec.Board
	g.side = rec.Side
	g.rights = rec.Rights
	g.epTarget = rec.EnPassant
	g.halfMoves = rec.HalfMoves
	g.fullMove = rec.FullMove
	g.history = g.history[:len(g.history)-1-steps]
	g.refresh()
	return nil
}

// switchSide flips the side to move, refreshes the cached king square
// and the legal-move table, and reports whether the new side has no
// legal move at all. Play uses the report to classify terminal outcomes.
func (g *Game) switchSide() bool {
	g.side = g.side.Other()
	g.refresh()
	return len(g.moves) == 0
}

// updateRights clears castling rights invalidated by the committed move:
// a king move clears both wings for the mover, and any move from or onto
// a rook home square clears the matching right, covering rook moves and
// rook captures alike.
func (g *Game) updateRights(mover board.Piece, from, target board.Square) {
	if mover.Type() == board.King {
		g.rights &^= board.Right(g.side, true) | board.Right(g.side, false)
	}

	corners := [4]struct {
		sq    board.Square
		right board.CastlingRights
	}{
		{board.A1, board.WhiteQueenSideCastle},
		{board.H1, board.WhiteKingSideCastle},
		{board.A8, board.BlackQueenSideCastle},
		{board.H8, board.BlackKingSideCastle},
	}
	for _, c := range corners {
		if from == c.sq || target == c.sq {
			g.rights &^= c.right
		}
	}
}

// updateEnPassant opens the en passant window after a double pawn push
// and closes it after every other move.
func (g *Game) updateEnPassant(mover board.Piece, from, target board.Square) {
	g.epTarget = board.NoSquare
	if mover.Type() != board.Pawn {
		return
	}
	if diff := target.Rank() - from.Rank(); diff == 2 || diff == -2 {
		g.epTarget = board.NewSquare(from.File(), (from.Rank()+target.Rank())/2)
	}
}

// contains reports whether m is a legal move from the given origin.
func (g *Game) contains(from board.Square, m board.Move) bool {
	for _, legal := range g.moves[from] {
		if legal == m {
			return true
		}
	}
	return false
}

// At returns the piece on the given square.
func (g *Game) At(sq board.Square) board.Piece {
	return g.board.At(sq)
}

// AtCoords returns the piece at (file, rank), both 0-indexed.
func (g *Game) AtCoords(file, rank int) board.Piece {
	return g.board.AtCoords(file, rank)
}

// Board returns a snapshot of the current board.
func (g *Game) Board() board.Board {
	return g.board
}

// SideToMove returns the color whose turn it is.
func (g *Game) SideToMove() board.Color {
	return g.side
}

// KingSquare returns the mover's king square.
func (g *Game) KingSquare() board.Square {
	return g.kingSq
}

// InCheck reports whether the side to move is in check.
func (g *Game) InCheck() bool {
	return g.board.Attacked(g.kingSq, g.side.Other())
}

// MovesFrom returns the legal moves from the given origin. The slice is
// empty when the square is empty, holds an opponent piece, or its piece
// has no legal move.
func (g *Game) MovesFrom(from board.Square) []board.Move {
	if !from.IsValid() {
		return nil
	}
	legal := g.moves[from]
	out := make([]board.Move, len(legal))
	copy(out, legal)
	return out
}

// MoveCount returns the total number of legal moves for the side to move.
func (g *Game) MoveCount() int {
	n := 0
	for _, legal := range g.moves {
		n += len(legal)
	}
	return n
}

// HistoryLen returns the number of moves played so far.
func (g *Game) HistoryLen() int {
	return len(g.history)
}

// HistoryAt returns the record `stepsBack` entries from the end, with 0
// being the most recent move. ok is false when no such entry exists.
func (g *Game) HistoryAt(stepsBack int) (Record, bool) {
	if stepsBack < 0 || stepsBack >= len(g.history) {
		return Record{}, false
	}
	return g.history[len(g.history)-1-stepsBack], true
}

// History returns a copy of all history records in insertion order,
// oldest move first.
func (g *Game) History() []Record {
	out := make([]Record, len(g.history))
	copy(out, g.history)
	return out
}

// MoveTexts returns the played moves as coordinate text, oldest first.
// Feeding the result to Replay with StartFEN reproduces the game.
func (g *Game) MoveTexts() []string {
	out := make([]string, len(g.history))
	for i, rec := range g.history {
		out[i] = rec.Move.Text(rec.From, rec.Side)
	}
	return out
}

// StartFEN returns the FEN the game was constructed from.
func (g *Game) StartFEN() string {
	return g.startFEN
}

// FEN returns the FEN record of the current position.
func (g *Game) FEN() string {
	s := &board.Setup{
		Board:          g.board,
		SideToMove:     g.side,
		CastlingRights: g.rights,
		EnPassant:      g.epTarget,
		HalfMoveClock:  g.halfMoves,
		FullMoveNumber: g.fullMove,
	}
	return s.FEN()
}

// Replay reconstructs a game by playing the given coordinate-text moves
// from the given starting FEN. A record that no longer resolves to a
// legal move aborts the replay with an error; no partially replayed game
// is returned.
func Replay(startFEN string, moves []string) (*Game, error) {
	g, err := NewGameFEN(startFEN)
	if err != nil {
		return nil, fmt.Errorf("replay start position: %w", err)
	}

	for i, text := range moves {
		from, to, promo, err := board.ParseCoords(text)
		if err != nil {
			return nil, fmt.Errorf("replay move %d (%q): %w", i+1, text, err)
		}
		if _, err := g.PlayCoordsPromote(from, to, promo); err != nil {
			return nil, fmt.Errorf("replay move %d (%q): %w", i+1, text, err)
		}
	}
	return g, nil
}
