package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Panel dimensions
const (
	PanelPadding    = 20
	SectionSpacing  = 26
	ButtonHeight    = 40
	TabHeight       = 34
	CollapsedWidth  = 20
	CollapseButtonW = 16
	CollapseButtonH = 48
	SectionLabelH   = 20
)

// Panel colors
var (
	panelBg         = color.RGBA{38, 40, 45, 255}    // Dark background
	sectionBg       = color.RGBA{48, 52, 58, 255}    // Slightly lighter section
	tabHoverBg      = color.RGBA{65, 70, 78, 255}    // Visible hover state
	buttonBg        = color.RGBA{50, 54, 60, 255}    // Button background (darker)
	buttonHoverBg   = color.RGBA{65, 70, 78, 255}    // Button hover (brighter)
	buttonPressedBg = color.RGBA{40, 44, 50, 255}    // Button pressed (darker)
	buttonBorder    = color.RGBA{70, 75, 82, 255}    // Subtle button border
	accentColor     = color.RGBA{76, 175, 120, 255}  // Green accent
	accentHover     = color.RGBA{96, 195, 140, 255}  // Lighter green on hover
	accentPressed   = color.RGBA{56, 155, 100, 255}  // Darker green on press
	textPrimary     = color.RGBA{240, 240, 245, 255} // Primary text
	textSecondary   = color.RGBA{160, 165, 175, 255} // Secondary text
	textMuted       = color.RGBA{120, 125, 135, 255} // Muted text
	dividerColor    = color.RGBA{60, 65, 72, 255}    // Divider line
	moveRowAlt      = color.RGBA{44, 48, 54, 255}    // Alternating row
	statusWaiting   = color.RGBA{100, 180, 255, 255} // Blue while waiting on the peer
	statusGameOver  = color.RGBA{255, 200, 80, 255}  // Yellow for game over
)

// Button represents a clickable UI element.
type Button struct {
	X, Y, W, H int
	Label      string
	OnClick    func()
	hovered    bool
	pressed    bool
}

// Panel represents the side panel with controls and move history.
type Panel struct {
	game      *Game
	collapsed bool

	collapseBtn *Button
	newGameBtn  *Button
	hostBtn     *Button
	joinBtn     *Button
	undoBtn     *Button
	drawBtn     *Button
	resignBtn   *Button
	soundBtn    *Button

	// Move history scroll
	scrollY    int
	maxScrollY int
}

// NewPanel creates a new panel for the given game.
func NewPanel(g *Game) *Panel {
	p := &Panel{game: g}
	p.createButtons()
	return p
}

// createButtons initializes all panel buttons.
func (p *Panel) createButtons() {
	// Collapse/expand tab at the panel edge, vertically centered
	tabY := (ScreenHeight - CollapseButtonH) / 2
	collapseX := BoardSize
	if p.collapsed {
		collapseX = BoardSize + 2
	}
	p.collapseBtn = &Button{
		X: collapseX, Y: tabY,
		W: CollapseButtonW, H: CollapseButtonH,
		OnClick: func() { p.toggleCollapse() },
	}

	contentX := BoardSize + PanelPadding
	contentW := PanelWidth - PanelPadding*2

	newGameY := PanelPadding + 8
	p.newGameBtn = &Button{
		X: contentX, Y: newGameY,
		W: contentW, H: ButtonHeight,
		Label:   "New Game",
		OnClick: p.game.NewGameAction,
	}

	// Network section: host a game or join one
	netY := newGameY + ButtonHeight + SectionSpacing + SectionLabelH - 8
	halfW := contentW / 2
	p.hostBtn = &Button{
		X: contentX, Y: netY, W: halfW, H: TabHeight,
		Label:   "Host",
		OnClick: p.game.HostAction,
	}
	p.joinBtn = &Button{
		X: contentX + halfW, Y: netY, W: halfW, H: TabHeight,
		Label:   "Join",
		OnClick: p.game.JoinAction,
	}

	// In-game actions
	actionY := netY + TabHeight + SectionSpacing + SectionLabelH - 8
	thirdW := contentW / 3
	p.undoBtn = &Button{
		X: contentX, Y: actionY, W: thirdW, H: TabHeight,
		Label:   "Undo",
		OnClick: p.game.UndoAction,
	}
	p.drawBtn = &Button{
		X: contentX + thirdW, Y: actionY, W: thirdW, H: TabHeight,
		Label:   "Draw",
		OnClick: p.game.OfferDrawAction,
	}
	p.resignBtn = &Button{
		X: contentX + thirdW*2, Y: actionY, W: thirdW, H: TabHeight,
		Label:   "Resign",
		OnClick: p.game.ResignAction,
	}

	soundY := actionY + TabHeight + 10
	p.soundBtn = &Button{
		X: contentX, Y: soundY, W: contentW, H: TabHeight - 6,
		OnClick: p.game.ToggleSoundAction,
	}
}

// buttons returns every content button except the collapse tab.
func (p *Panel) buttons() []*Button {
	return []*Button{
		p.newGameBtn, p.hostBtn, p.joinBtn,
		p.undoBtn, p.drawBtn, p.resignBtn, p.soundBtn,
	}
}

// HandleInput processes input for the panel. Returns true if input was handled.
func (p *Panel) HandleInput(input *InputHandler) bool {
	mx, my := input.MousePosition()

	p.collapseBtn.hovered = p.isInside(mx, my, p.collapseBtn)
	p.collapseBtn.pressed = input.IsLeftPressed() && p.collapseBtn.hovered

	if input.IsLeftJustPressed() && p.collapseBtn.hovered {
		p.collapseBtn.OnClick()
		return true
	}

	if p.collapsed {
		return false
	}

	// Scroll wheel over the move history
	_, wheelY := ebiten.Wheel()
	if wheelY != 0 {
		historyY := p.historyStartY()
		if mx >= BoardSize && my >= historyY && my < ScreenHeight-70 {
			p.scrollY -= int(wheelY * 30)
			if p.scrollY < 0 {
				p.scrollY = 0
			}
			if p.scrollY > p.maxScrollY {
				p.scrollY = p.maxScrollY
			}
		}
	}

	for _, btn := range p.buttons() {
		btn.hovered = p.isInside(mx, my, btn)
		btn.pressed = input.IsLeftPressed() && btn.hovered
	}

	if input.IsLeftJustPressed() {
		for _, btn := range p.buttons() {
			if btn.hovered {
				btn.OnClick()
				return true
			}
		}
	}

	return false
}

// AnyButtonHovered returns true if any button in the panel is hovered.
func (p *Panel) AnyButtonHovered() bool {
	if p.collapseBtn.hovered {
		return true
	}
	if p.collapsed {
		return false
	}
	for _, btn := range p.buttons() {
		if btn.hovered {
			return true
		}
	}
	return false
}

func (p *Panel) isInside(mx, my int, btn *Button) bool {
	return mx >= btn.X && mx < btn.X+btn.W && my >= btn.Y && my < btn.Y+btn.H
}

// Draw renders the panel.
func (p *Panel) Draw(screen *ebiten.Image) {
	panelX := float32(BoardSize)

	if p.collapsed {
		vector.DrawFilledRect(screen, panelX, 0, float32(CollapsedWidth), float32(ScreenHeight), panelBg, false)
		p.drawCollapseButton(screen, true)
		return
	}

	vector.DrawFilledRect(screen, panelX, 0, float32(PanelWidth), float32(ScreenHeight), panelBg, false)
	p.drawCollapseButton(screen, false)

	p.drawPrimaryButton(screen, p.newGameBtn)

	labelX := BoardSize + PanelPadding
	p.drawSectionLabel(screen, "Network", labelX, p.hostBtn.Y-SectionLabelH)
	p.drawSecondaryButton(screen, p.hostBtn)
	p.drawSecondaryButton(screen, p.joinBtn)

	p.drawSectionLabel(screen, "Game", labelX, p.undoBtn.Y-SectionLabelH)
	p.drawSecondaryButton(screen, p.undoBtn)
	p.drawSecondaryButton(screen, p.drawBtn)
	p.drawSecondaryButton(screen, p.resignBtn)

	if p.game.SoundOn() {
		p.soundBtn.Label = "Sound: On"
	} else {
		p.soundBtn.Label = "Sound: Off"
	}
	p.drawSecondaryButton(screen, p.soundBtn)

	historyY := p.historyStartY()
	p.drawSectionLabel(screen, "Moves", labelX, historyY)
	p.drawMoveHistory(screen, historyY+SectionLabelH+4)

	p.drawStatusBar(screen)
}

func (p *Panel) historyStartY() int {
	return p.soundBtn.Y + p.soundBtn.H + SectionSpacing - 4
}

func (p *Panel) drawCollapseButton(screen *ebiten.Image, expand bool) {
	btn := p.collapseBtn

	bgColor := panelBg
	if btn.hovered {
		bgColor = sectionBg
	}
	vector.DrawFilledRect(screen, float32(btn.X), float32(btn.Y), float32(btn.W), float32(btn.H), bgColor, false)

	arrow := "‹"
	if expand {
		arrow = "›"
	}
	textC := textMuted
	if btn.hovered {
		textC = textPrimary
	}
	p.drawTextCentered(screen, arrow, btn.X+btn.W/2, btn.Y+btn.H/2, textC)
}

func (p *Panel) drawPrimaryButton(screen *ebiten.Image, btn *Button) {
	bgColor := accentColor
	if btn.pressed {
		bgColor = accentPressed
	} else if btn.hovered {
		bgColor = accentHover
	}
	vector.DrawFilledRect(screen, float32(btn.X), float32(btn.Y), float32(btn.W), float32(btn.H), bgColor, false)

	borderC := accentPressed
	if btn.hovered {
		borderC = color.RGBA{116, 215, 160, 255}
	}
	vector.StrokeRect(screen, float32(btn.X), float32(btn.Y), float32(btn.W), float32(btn.H), 1, borderC, false)

	p.drawTextCentered(screen, btn.Label, btn.X+btn.W/2, btn.Y+btn.H/2, textPrimary)
}

func (p *Panel) drawSecondaryButton(screen *ebiten.Image, btn *Button) {
	bgColor := buttonBg
	if btn.pressed {
		bgColor = buttonPressedBg
	} else if btn.hovered {
		bgColor = buttonHoverBg
	}
	vector.DrawFilledRect(screen, float32(btn.X), float32(btn.Y), float32(btn.W), float32(btn.H), bgColor, false)

	borderC := buttonBorder
	if btn.hovered {
		borderC = accentColor
	}
	vector.StrokeRect(screen, float32(btn.X), float32(btn.Y), float32(btn.W), float32(btn.H), 1, borderC, false)

	p.drawTextCentered(screen, btn.Label, btn.X+btn.W/2, btn.Y+btn.H/2, textSecondary)
}

func (p *Panel) drawSectionLabel(screen *ebiten.Image, label string, x, y int) {
	DrawSectionHeader(screen, label, x, y+SectionLabelH/2)
}

func (p *Panel) drawMoveHistory(screen *ebiten.Image, startY int) {
	moves := p.game.MoveTexts()
	if len(moves) == 0 {
		p.drawText(screen, "No moves yet", BoardSize+PanelPadding, startY+5, textMuted)
		return
	}

	x := BoardSize + PanelPadding
	rowHeight := 22
	maxY := ScreenHeight - 70 // leave room for the status bar
	visibleHeight := maxY - startY

	totalRows := (len(moves) + 1) / 2
	contentHeight := totalRows * rowHeight
	p.maxScrollY = contentHeight - visibleHeight
	if p.maxScrollY < 0 {
		p.maxScrollY = 0
	}
	if p.scrollY > p.maxScrollY {
		p.scrollY = p.maxScrollY
	}

	startRow := p.scrollY / rowHeight
	startMoveIdx := startRow * 2
	y := startY - (p.scrollY % rowHeight)

	for i := startMoveIdx; i < len(moves); i += 2 {
		if y < startY-rowHeight {
			y += rowHeight
			continue
		}
		if y > maxY {
			break
		}

		if y >= startY-rowHeight && (i/2)%2 == 1 {
			bgY := y - 2
			if bgY < startY {
				bgY = startY
			}
			vector.DrawFilledRect(screen, float32(BoardSize+PanelPadding-4), float32(bgY),
				float32(PanelWidth-PanelPadding*2+8), float32(rowHeight), moveRowAlt, false)
		}

		if y >= startY {
			moveNum := (i / 2) + 1
			p.drawText(screen, fmt.Sprintf("%d.", moveNum), x, y, textMuted)
			p.drawText(screen, moves[i], x+30, y, textPrimary)
			if i+1 < len(moves) {
				p.drawText(screen, moves[i+1], x+110, y, textPrimary)
			}
		}

		y += rowHeight
	}

	if p.maxScrollY > 0 {
		scrollPct := float32(p.scrollY) / float32(p.maxScrollY)
		indicatorH := float32(visibleHeight) * float32(visibleHeight) / float32(contentHeight)
		if indicatorH < 20 {
			indicatorH = 20
		}
		indicatorY := float32(startY) + scrollPct*(float32(visibleHeight)-indicatorH)
		indicatorX := float32(BoardSize + PanelWidth - 8)
		vector.DrawFilledRect(screen, indicatorX, indicatorY, 4, indicatorH, textMuted, false)
	}
}

func (p *Panel) drawStatusBar(screen *ebiten.Image) {
	statusY := ScreenHeight - 70
	x := BoardSize + PanelPadding

	DrawDivider(screen, BoardSize+PanelPadding, statusY-10, PanelWidth-PanelPadding*2)

	username := p.game.Username()
	if len(username) > 12 {
		username = username[:12] + "..."
	}
	p.drawText(screen, username, x, statusY, textPrimary)

	if conn := p.game.ConnInfo(); conn != "" {
		p.drawText(screen, conn, x+130, statusY, accentColor)
	}

	statusText, statusColor := p.game.StatusLine()
	p.drawText(screen, statusText, x, statusY+22, statusColor)
}

// Text drawing helpers
func (p *Panel) drawText(screen *ebiten.Image, s string, x, y int, c color.Color) {
	face := GetRegularFace()
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

func (p *Panel) drawTextCentered(screen *ebiten.Image, s string, centerX, centerY int, c color.Color) {
	face := GetRegularFace()
	if face == nil {
		return
	}
	w, h := MeasureText(s, face)
	x := float64(centerX) - w/2
	y := float64(centerY) - h/2
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

// Collapsed returns whether the panel is collapsed.
func (p *Panel) Collapsed() bool {
	return p.collapsed
}

// toggleCollapse toggles the panel collapsed state and resizes the window.
func (p *Panel) toggleCollapse() {
	p.collapsed = !p.collapsed
	p.createButtons()

	if p.collapsed {
		ebiten.SetWindowSize(BoardSize+CollapsedWidth, ScreenHeight)
	} else {
		ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	}
}
