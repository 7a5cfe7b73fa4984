package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/varekai/netchess/internal/board"
)

// Dialog colors
var (
	dialogOverlay = color.RGBA{0, 0, 0, 140}
	dialogBg      = color.RGBA{42, 45, 52, 255}
	dialogBorder  = color.RGBA{70, 75, 82, 255}
)

const (
	dialogW       = 380
	dialogBtnW    = 110
	dialogBtnH    = 34
	dialogPadding = 20
)

// DialogChoice is one button of a modal dialog.
type DialogChoice struct {
	Label    string
	Primary  bool
	OnSelect func()
}

// Dialog is a modal prompt drawn over the whole screen. It optionally
// carries a text input (for the join-game address). While visible it
// swallows all input.
type Dialog struct {
	title   string
	message string
	input   *TextInput
	buttons []*ModalButton
	visible bool
}

// NewDialog creates a hidden dialog; Show makes it visible.
func NewDialog() *Dialog {
	return &Dialog{}
}

// Show displays the dialog with the given content. An earlier dialog
// state is replaced.
func (d *Dialog) Show(title, message string, choices ...DialogChoice) {
	d.showWithInput(title, message, nil, choices...)
}

// ShowInput displays the dialog with a text input above the buttons.
// The input's current value can be read through Input().
func (d *Dialog) ShowInput(title, message, placeholder, value string, choices ...DialogChoice) {
	input := NewTextInput(0, 0, dialogW-dialogPadding*2, 34, placeholder, 64)
	input.Value = value
	input.SetFocused(true)
	d.showWithInput(title, message, input, choices...)
}

func (d *Dialog) showWithInput(title, message string, input *TextInput, choices ...DialogChoice) {
	d.title = title
	d.message = message
	d.input = input
	d.visible = true

	x, y := d.origin()
	h := d.height()

	d.buttons = nil
	btnY := y + h - dialogPadding - dialogBtnH
	totalW := len(choices)*dialogBtnW + (len(choices)-1)*10
	btnX := x + (dialogW-totalW)/2
	for _, choice := range choices {
		d.buttons = append(d.buttons, NewModalButton(
			btnX, btnY, dialogBtnW, dialogBtnH, choice.Label, choice.Primary, choice.OnSelect))
		btnX += dialogBtnW + 10
	}

	if d.input != nil {
		d.input.X = x + dialogPadding
		d.input.Y = y + 76
	}
}

// Hide dismisses the dialog.
func (d *Dialog) Hide() {
	d.visible = false
	d.input = nil
	d.buttons = nil
}

// IsVisible reports whether the dialog is on screen.
func (d *Dialog) IsVisible() bool {
	return d.visible
}

// Input returns the text input value, or "" when the dialog has none.
func (d *Dialog) Input() string {
	if d.input == nil {
		return ""
	}
	return d.input.Value
}

func (d *Dialog) height() int {
	h := 140
	if d.input != nil {
		h += 46
	}
	return h
}

func (d *Dialog) origin() (int, int) {
	return (ScreenWidth - dialogW) / 2, (ScreenHeight - d.height()) / 2
}

// Update handles dialog input. A button's OnSelect may hide or replace
// the dialog.
func (d *Dialog) Update(input *InputHandler) {
	if !d.visible {
		return
	}
	if d.input != nil {
		d.input.Update(input)
	}
	for _, btn := range d.buttons {
		if btn.Update(input) {
			return
		}
	}
}

// AnyButtonHovered reports whether any dialog button is hovered.
func (d *Dialog) AnyButtonHovered() bool {
	if !d.visible {
		return false
	}
	for _, btn := range d.buttons {
		if btn.IsHovered() {
			return true
		}
	}
	return false
}

// Draw renders the dialog over a dimmed screen.
func (d *Dialog) Draw(screen *ebiten.Image) {
	if !d.visible {
		return
	}

	vector.DrawFilledRect(screen, 0, 0, float32(ScreenWidth), float32(ScreenHeight), dialogOverlay, false)

	x, y := d.origin()
	h := d.height()
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(dialogW), float32(h), dialogBg, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(dialogW), float32(h), 1, dialogBorder, false)

	if bold := GetBoldFace(); bold != nil {
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(x+dialogPadding), float64(y+dialogPadding))
		op.ColorScale.ScaleWithColor(textPrimary)
		text.Draw(screen, d.title, bold, op)
	}

	if face := GetRegularFace(); face != nil && d.message != "" {
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(x+dialogPadding), float64(y+48))
		op.ColorScale.ScaleWithColor(textSecondary)
		text.Draw(screen, d.message, face, op)
	}

	if d.input != nil {
		d.input.Draw(screen)
	}
	for _, btn := range d.buttons {
		btn.Draw(screen)
	}
}

// promotionPieces in display order, queen first.
var promotionPieces = [4]board.PieceType{board.Queen, board.Rook, board.Bishop, board.Knight}

// PromotionPicker lets the player choose the promotion piece after
// dropping a pawn on the last rank. The move is held until a piece is
// picked; clicking elsewhere cancels the move.
type PromotionPicker struct {
	visible bool
	side    board.Color
	from    board.Square
	to      board.Square
	hovered int
}

// NewPromotionPicker creates a hidden picker.
func NewPromotionPicker() *PromotionPicker {
	return &PromotionPicker{hovered: -1}
}

// Show opens the picker for a pending promotion move.
func (pp *PromotionPicker) Show(side board.Color, from, to board.Square) {
	pp.visible = true
	pp.side = side
	pp.from = from
	pp.to = to
	pp.hovered = -1
}

// Hide dismisses the picker.
func (pp *PromotionPicker) Hide() {
	pp.visible = false
}

// IsVisible reports whether the picker is on screen.
func (pp *PromotionPicker) IsVisible() bool {
	return pp.visible
}

// Pending returns the held pawn move.
func (pp *PromotionPicker) Pending() (from, to board.Square) {
	return pp.from, pp.to
}

func (pp *PromotionPicker) origin() (int, int) {
	w := len(promotionPieces) * SquareSize
	return (BoardSize - w) / 2, (BoardSize - SquareSize) / 2
}

// Update handles picker input. It returns the chosen piece type, or
// NoPieceType with done=false while the picker stays open, or
// NoPieceType with done=true when the player clicked away to cancel.
func (pp *PromotionPicker) Update(input *InputHandler) (choice board.PieceType, done bool) {
	if !pp.visible {
		return board.NoPieceType, false
	}

	x, y := pp.origin()
	mx, my := input.MousePosition()

	pp.hovered = -1
	if my >= y && my < y+SquareSize {
		i := (mx - x) / SquareSize
		if mx >= x && i >= 0 && i < len(promotionPieces) {
			pp.hovered = i
		}
	}

	if !input.IsLeftJustPressed() {
		return board.NoPieceType, false
	}

	pp.visible = false
	if pp.hovered >= 0 {
		return promotionPieces[pp.hovered], true
	}
	return board.NoPieceType, true
}

// Draw renders the picker strip over the board.
func (pp *PromotionPicker) Draw(screen *ebiten.Image, r *Renderer) {
	if !pp.visible {
		return
	}

	vector.DrawFilledRect(screen, 0, 0, float32(BoardSize), float32(BoardSize), dialogOverlay, false)

	x, y := pp.origin()
	w := len(promotionPieces) * SquareSize
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(SquareSize), dialogBg, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(SquareSize), 1, dialogBorder, false)

	for i, pt := range promotionPieces {
		cellX := x + i*SquareSize
		if i == pp.hovered {
			vector.DrawFilledRect(screen, float32(cellX), float32(y),
				float32(SquareSize), float32(SquareSize), tabHoverBg, false)
		}
		r.Sprites().DrawPieceAt(screen, board.NewPiece(pt, pp.side), cellX, y)
	}
}
