package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/varekai/netchess/internal/board"
)

// Theme defines the color scheme for the board.
type Theme struct {
	LightSquare    color.RGBA
	DarkSquare     color.RGBA
	SelectedSquare color.RGBA
	LegalMoveColor color.RGBA
	LastMoveColor  color.RGBA
	CheckColor     color.RGBA
	Background     color.RGBA
	TextColor      color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare:    color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:     color.RGBA{181, 136, 99, 255},  // Brown
		SelectedSquare: color.RGBA{247, 247, 105, 180}, // Yellow highlight
		LegalMoveColor: color.RGBA{130, 151, 105, 200}, // Green dots
		LastMoveColor:  color.RGBA{180, 190, 100, 90},  // Soft yellow-green
		CheckColor:     color.RGBA{255, 100, 100, 180}, // Red
		Background:     color.RGBA{40, 44, 52, 255},    // Dark gray
		TextColor:      color.RGBA{220, 220, 220, 255}, // Light gray
	}
}

// Renderer handles all board drawing operations.
type Renderer struct {
	sprites    *SpriteManager
	theme      *Theme
	boardSize  int
	squareSize int
	flipped    bool // true when Black's side is drawn at the bottom
}

// NewRenderer creates a new renderer.
func NewRenderer(boardSize, squareSize int) *Renderer {
	return &Renderer{
		sprites:    NewSpriteManager(squareSize),
		theme:      DefaultTheme(),
		boardSize:  boardSize,
		squareSize: squareSize,
	}
}

// SetFlipped draws the board from Black's point of view when true.
func (r *Renderer) SetFlipped(flipped bool) {
	r.flipped = flipped
}

// Flipped reports whether the board is drawn from Black's point of view.
func (r *Renderer) Flipped() bool {
	return r.flipped
}

// DrawBoard draws the chess board squares and coordinate labels.
func (r *Renderer) DrawBoard(screen *ebiten.Image) {
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			x, y := r.SquareToScreen(board.NewSquare(file, rank))

			var c color.RGBA
			if (rank+file)%2 == 0 {
				c = r.theme.DarkSquare
			} else {
				c = r.theme.LightSquare
			}

			vector.DrawFilledRect(screen, float32(x), float32(y),
				float32(r.squareSize), float32(r.squareSize), c, false)
		}
	}

	r.drawCoordinates(screen)
}

// drawCoordinates draws file letters and rank numbers along the board
// edges, each in the opposite color of its square.
func (r *Renderer) drawCoordinates(screen *ebiten.Image) {
	face := GetFaceWithSize(11)
	if face == nil {
		return
	}

	labelColor := func(file, rank int) color.RGBA {
		if (rank+file)%2 == 0 {
			return r.theme.LightSquare
		}
		return r.theme.DarkSquare
	}

	for file := 0; file < 8; file++ {
		// File letters sit in the bottom row of squares.
		bottomRank := 0
		if r.flipped {
			bottomRank = 7
		}
		x, y := r.SquareToScreen(board.NewSquare(file, bottomRank))

		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(x+r.squareSize-10), float64(y+r.squareSize-16))
		op.ColorScale.ScaleWithColor(labelColor(file, bottomRank))
		text.Draw(screen, string(rune('a'+file)), face, op)
	}

	for rank := 0; rank < 8; rank++ {
		leftFile := 0
		if r.flipped {
			leftFile = 7
		}
		x, y := r.SquareToScreen(board.NewSquare(leftFile, rank))

		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(x+3), float64(y+2))
		op.ColorScale.ScaleWithColor(labelColor(leftFile, rank))
		text.Draw(screen, string(rune('1'+rank)), face, op)
	}
}

// DrawHighlights draws the last move, the current selection, and legal
// move indicators. moves are the legal moves from the selected square;
// side is needed to place castling targets.
func (r *Renderer) DrawHighlights(screen *ebiten.Image, selected board.Square, moves []board.Move, side board.Color, lastFrom, lastTo board.Square) {
	r.highlightSquare(screen, lastFrom, r.theme.LastMoveColor)
	r.highlightSquare(screen, lastTo, r.theme.LastMoveColor)

	if selected != board.NoSquare {
		r.highlightSquare(screen, selected, r.theme.SelectedSquare)
	}

	for _, m := range moves {
		r.drawLegalMoveIndicator(screen, m.Target(side))
	}
}

// DrawCheck highlights the king's square when in check.
func (r *Renderer) DrawCheck(screen *ebiten.Image, kingSq board.Square) {
	if kingSq != board.NoSquare {
		r.highlightSquare(screen, kingSq, r.theme.CheckColor)
	}
}

// highlightSquare draws a colored overlay on a square.
func (r *Renderer) highlightSquare(screen *ebiten.Image, sq board.Square, c color.RGBA) {
	if sq == board.NoSquare {
		return
	}
	x, y := r.SquareToScreen(sq)
	vector.DrawFilledRect(screen, float32(x), float32(y),
		float32(r.squareSize), float32(r.squareSize), c, false)
}

// drawLegalMoveIndicator draws a circle on a legal move target square.
func (r *Renderer) drawLegalMoveIndicator(screen *ebiten.Image, sq board.Square) {
	x, y := r.SquareToScreen(sq)
	cx := float32(x) + float32(r.squareSize)/2
	cy := float32(y) + float32(r.squareSize)/2
	radius := float32(r.squareSize) * 0.15

	vector.DrawFilledCircle(screen, cx, cy, radius, r.theme.LegalMoveColor, false)
}

// DrawPieces draws all pieces on the board, skipping the square of a
// piece currently being dragged.
func (r *Renderer) DrawPieces(screen *ebiten.Image, b board.Board, dragging bool, dragSquare board.Square) {
	for sq := board.A1; sq <= board.H8; sq++ {
		if dragging && sq == dragSquare {
			continue
		}

		piece := b.At(sq)
		if piece == board.NoPiece {
			continue
		}

		x, y := r.SquareToScreen(sq)
		r.sprites.DrawPieceAt(screen, piece, x, y)
	}
}

// DrawDraggedPiece draws the piece being dragged, centered on the cursor.
func (r *Renderer) DrawDraggedPiece(screen *ebiten.Image, piece board.Piece, mouseX, mouseY int) {
	if piece == board.NoPiece {
		return
	}
	half := r.squareSize / 2
	r.sprites.DrawPieceAt(screen, piece, mouseX-half, mouseY-half)
}

// SquareToScreen converts a board square to screen coordinates.
func (r *Renderer) SquareToScreen(sq board.Square) (int, int) {
	file, rank := sq.File(), sq.Rank()
	if r.flipped {
		file, rank = 7-file, 7-rank
	}
	x := file * r.squareSize
	y := (7 - rank) * r.squareSize // rank 1 at the bottom
	return x, y
}

// ScreenToSquare converts screen coordinates to a board square.
func (r *Renderer) ScreenToSquare(x, y int) board.Square {
	if x < 0 || x >= r.boardSize || y < 0 || y >= r.boardSize {
		return board.NoSquare
	}
	file := x / r.squareSize
	rank := 7 - (y / r.squareSize)
	if r.flipped {
		file, rank = 7-file, 7-rank
	}
	return board.NewSquare(file, rank)
}

// BoardSize returns the board size in pixels.
func (r *Renderer) BoardSize() int {
	return r.boardSize
}

// SquareSize returns the size of one square in pixels.
func (r *Renderer) SquareSize() int {
	return r.squareSize
}

// Theme returns the current theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}

// Sprites returns the sprite manager.
func (r *Renderer) Sprites() *SpriteManager {
	return r.sprites
}
