package game

import "github.com/varekai/netchess/internal/board"

// promotionKinds is the order promotion moves are generated in.
var promotionKinds = [4]board.PieceType{board.Queen, board.Rook, board.Bishop, board.Knight}

// computeMoves rebuilds the legal-move table from scratch for the side
// to move: every occupied friendly square contributes its pseudo-legal
// moves, and each survives only if playing it leaves the mover's own
// king unattacked. The table holds entries only for origins that end up
// with at least one legal move, so an empty table means no legal moves.
func (g *Game) computeMoves() {
	moves := make(map[board.Square][]board.Move)

	for sq := board.A1; sq <= board.H8; sq++ {
		p := g.board.At(sq)
		if p == board.NoPiece || p.Color() != g.side {
			continue
		}

		var pseudo []board.Move
		switch p.Type() {
		case board.Pawn:
			pseudo = g.pawnMoves(sq)
		case board.Knight:
			pseudo = g.stepMoves(sq, board.KnightOffsets)
		case board.Bishop:
			pseudo = g.slideMoves(sq, board.BishopDirections)
		case board.Rook:
			pseudo = g.slideMoves(sq, board.RookDirections)
		case board.Queen:
			pseudo = append(g.slideMoves(sq, board.RookDirections), g.slideMoves(sq, board.BishopDirections)...)
		case board.King:
			pseudo = append(g.stepMoves(sq, board.KingOffsets), g.castleMoves(sq)...)
		}

		var legal []board.Move
		for _, m := range pseudo {
			if g.leavesKingSafe(sq, m) {
				legal = append(legal, m)
			}
		}
		if len(legal) > 0 {
			moves[sq] = legal
		}
	}

	g.moves = moves
}

// leavesKingSafe is the legality filter: it simulates the move on a
// board copy and tests whether the mover's king is attacked afterwards.
// Running it after full application is what catches pins and discovered
// checks; an occupancy pre-check cannot.
func (g *Game) leavesKingSafe(from board.Square, m board.Move) bool {
	after := g.board.AfterMove(from, m, g.side)

	kingSq := g.kingSq
	if from == kingSq {
		kingSq = m.Target(g.side)
	}
	return !after.Attacked(kingSq, g.side.Other())
}

// slideMoves walks each ray outward one square at a time. A ray stops at
// the first occupied square, which is included as a capture if it holds
// an enemy piece and excluded if friendly.
func (g *Game) slideMoves(from board.Square, dirs [4][2]int) []board.Move {
	var out []board.Move
	for _, d := range dirs {
		cur := board.Offset(from, d[0], d[1])
		for cur != board.NoSquare {
			p := g.board.At(cur)
			if p == board.NoPiece {
				out = append(out, board.NewMove(cur))
				cur = board.Offset(cur, d[0], d[1])
				continue
			}
			if p.Color() != g.side {
				out = append(out, board.NewMove(cur))
			}
			break
		}
	}
	return out
}

// stepMoves generates the fixed-offset jumps of knights and kings; a
// destination is excluded only when occupied by a friendly piece.
func (g *Game) stepMoves(from board.Square, offsets [8][2]int) []board.Move {
	var out []board.Move
	for _, off := range offsets {
		to := board.Offset(from, off[0], off[1])
		if to == board.NoSquare {
			continue
		}
		p := g.board.At(to)
		if p == board.NoPiece || p.Color() != g.side {
			out = append(out, board.NewMove(to))
		}
	}
	return out
}

// pawnMoves generates pushes, double pushes from the starting rank,
// diagonal captures, promotions, and en passant. A forward or capture
// destination on the last rank yields one promotion move per promotable
// kind instead of a plain move.
func (g *Game) pawnMoves(from board.Square) []board.Move {
	var out []board.Move
	dir := board.PawnDirection(g.side)

	one := board.Offset(from, 0, dir)
	if one != board.NoSquare && g.board.At(one) == board.NoPiece {
		out = g.appendPawnTargets(out, one)

		if from.RelativeRank(g.side) == 1 {
			two := board.Offset(from, 0, 2*dir)
			if two != board.NoSquare && g.board.At(two) == board.NoPiece {
				out = append(out, board.NewMove(two))
			}
		}
	}

	for _, df := range [2]int{-1, 1} {
		diag := board.Offset(from, df, dir)
		if diag == board.NoSquare {
			continue
		}
		p := g.board.At(diag)
		if p != board.NoPiece && p.Color() != g.side {
			out = g.appendPawnTargets(out, diag)
		} else if p == board.NoPiece && diag == g.epTarget {
			out = append(out, board.NewEnPassant(diag))
		}
	}

	return out
}

// appendPawnTargets adds either a plain move or the full promotion set,
// depending on whether the destination is the pawn's last rank.
func (g *Game) appendPawnTargets(out []board.Move, to board.Square) []board.Move {
	if to.RelativeRank(g.side) == 7 {
		for _, kind := range promotionKinds {
			out = append(out, board.NewPromotion(to, kind))
		}
		return out
	}
	return append(out, board.NewMove(to))
}

// castleMoves generates the castling moves available to the king on its
// home square: the wing's right must still be held, the rook must stand
// on its corner, the squares between them must be empty, and neither the
// king's current, crossed, nor destination square may be attacked.
func (g *Game) castleMoves(from board.Square) []board.Move {
	if from.File() != 4 || from.RelativeRank(g.side) != 0 {
		return nil
	}

	var out []board.Move
	enemy := g.side.Other()
	rank := from.Rank()
	rook := board.NewPiece(board.Rook, g.side)

	wings := [2]struct {
		kingSide bool
		rookFile int
		between  []int // files that must be empty
		path     []int // files the king occupies or crosses, all must be safe
	}{
		{true, 7, []int{5, 6}, []int{4, 5, 6}},
		{false, 0, []int{1, 2, 3}, []int{4, 3, 2}},
	}

	for _, w := range wings {
		if !g.rights.CanCastle(g.side, w.kingSide) {
			continue
		}
		if g.board.AtCoords(w.rookFile, rank) != rook {
			continue
		}

		clear := true
		for _, f := range w.between {
			if g.board.AtCoords(f, rank) != board.NoPiece {
				clear = false
				break
			}
		}
		if !clear {
			continue
		}

		safe := true
		for _, f := range w.path {
			if g.board.Attacked(board.NewSquare(f, rank), enemy) {
				safe = false
				break
			}
		}
		if !safe {
			continue
		}

		out = append(out, board.NewCastle(w.kingSide))
	}

	return out
}
