package ui

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/varekai/netchess/internal/board"
	"github.com/varekai/netchess/internal/game"
	"github.com/varekai/netchess/internal/netplay"
	"github.com/varekai/netchess/internal/storage"
	"github.com/varekai/netchess/internal/wire"
)

// UI Constants
const (
	ScreenWidth  = 960
	ScreenHeight = 640 // Match board height to eliminate unused space
	BoardSize    = 640
	SquareSize   = BoardSize / 8
	PanelWidth   = ScreenWidth - BoardSize
)

// netResult carries the outcome of an async host/join attempt.
type netResult struct {
	conn    *netplay.Conn
	err     error
	hosting bool
}

// Game implements ebiten.Game. It drives a local two-player game by
// default and a network game once a peer connection is up.
type Game struct {
	// Core game state
	g             *game.Game
	selected      board.Square
	selectedMoves []board.Move
	dragging      bool
	dragPiece     board.Piece
	dragSquare    board.Square
	lastFrom      board.Square
	lastTo        board.Square

	// Network state
	network   bool
	myColor   board.Color
	conn      *netplay.Conn
	listener  *netplay.Listener
	listening bool
	netCh     chan netResult

	// Storage
	storage *storage.Storage
	prefs   *storage.Preferences

	// Components
	renderer *Renderer
	input    *InputHandler
	panel    *Panel
	audio    *AudioManager
	dialog   *Dialog
	promo    *PromotionPicker

	// Game state
	gameOver       bool
	gameResult     string
	resultRecorded bool
	statusMsg      string
}

// NewGame creates the application state.
func NewGame() *Game {
	ui := &Game{
		g:        game.NewGame(),
		selected: board.NoSquare,
		lastFrom: board.NoSquare,
		lastTo:   board.NoSquare,
		myColor:  board.White,
		netCh:    make(chan netResult, 1),
		renderer: NewRenderer(BoardSize, SquareSize),
		input:    NewInputHandler(),
		audio:    NewAudioManager(),
		dialog:   NewDialog(),
		promo:    NewPromotionPicker(),
	}

	var err error
	ui.storage, err = storage.NewStorage()
	if err != nil {
		log.Printf("Warning: Failed to initialize storage: %v", err)
	}
	ui.loadPreferences()

	ui.panel = NewPanel(ui)

	ui.offerResume()

	return ui
}

// loadPreferences loads user preferences from storage.
func (ui *Game) loadPreferences() {
	if ui.storage == nil {
		ui.prefs = storage.DefaultPreferences()
		return
	}

	var err error
	ui.prefs, err = ui.storage.LoadPreferences()
	if err != nil {
		log.Printf("Warning: Failed to load preferences: %v", err)
		ui.prefs = storage.DefaultPreferences()
	}
	ui.audio.SetEnabled(ui.prefs.SoundEnabled)
}

// savePreferences saves current preferences to storage.
func (ui *Game) savePreferences() {
	if ui.storage == nil {
		return
	}
	ui.prefs.SoundEnabled = ui.audio.IsEnabled()
	if err := ui.storage.SavePreferences(ui.prefs); err != nil {
		log.Printf("Warning: Failed to save preferences: %v", err)
	}
}

// offerResume asks whether to pick up the saved local game, if one exists.
func (ui *Game) offerResume() {
	if ui.storage == nil {
		return
	}
	saved, err := ui.storage.LoadSavedGame()
	if err != nil || saved == nil {
		return
	}

	ui.dialog.Show("Resume", fmt.Sprintf("Resume your saved game (%d moves)?", len(saved.Moves)),
		DialogChoice{Label: "Resume", Primary: true, OnSelect: func() {
			ui.dialog.Hide()
			g, err := game.Replay(saved.StartFEN, saved.Moves)
			if err != nil {
				log.Printf("Warning: saved game is not replayable: %v", err)
				ui.clearSavedGame()
				return
			}
			ui.g = g
			ui.restoreLastMove()
		}},
		DialogChoice{Label: "Discard", OnSelect: func() {
			ui.dialog.Hide()
			ui.clearSavedGame()
		}},
	)
}

// restoreLastMove refreshes the last-move highlight from history.
func (ui *Game) restoreLastMove() {
	rec, ok := ui.g.HistoryAt(0)
	if !ok {
		ui.lastFrom, ui.lastTo = board.NoSquare, board.NoSquare
		return
	}
	ui.lastFrom = rec.From
	ui.lastTo = rec.Move.Target(rec.Side)
}

// Update handles game logic updates.
func (ui *Game) Update() error {
	ui.input.Update()
	ui.pollNetwork()

	if ui.dialog.IsVisible() {
		ui.dialog.Update(ui.input)
		ui.updateCursor()
		return nil
	}

	if ui.promo.IsVisible() {
		if choice, done := ui.promo.Update(ui.input); done {
			if choice != board.NoPieceType {
				from, to := ui.promo.Pending()
				ui.playMove(from, ui.g.ResolveMove(from, to, choice))
			}
			ui.clearSelection()
		}
		ui.updateCursor()
		return nil
	}

	if ui.panel.HandleInput(ui.input) {
		ui.updateCursor()
		return nil
	}

	ui.handleBoardInput()
	ui.updateCursor()
	return nil
}

// updateCursor sets the cursor shape based on what's being hovered.
func (ui *Game) updateCursor() {
	anyHovered := false
	if ui.dialog.IsVisible() {
		anyHovered = ui.dialog.AnyButtonHovered()
	} else {
		anyHovered = ui.panel.AnyButtonHovered()
	}

	if anyHovered {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}

// Draw renders the game.
func (ui *Game) Draw(screen *ebiten.Image) {
	screen.Fill(ui.renderer.Theme().Background)

	ui.renderer.DrawBoard(screen)

	if ui.g.InCheck() {
		ui.renderer.DrawCheck(screen, ui.g.KingSquare())
	}

	ui.renderer.DrawHighlights(screen, ui.selected, ui.selectedMoves,
		ui.g.SideToMove(), ui.lastFrom, ui.lastTo)

	ui.renderer.DrawPieces(screen, ui.g.Board(), ui.dragging, ui.dragSquare)

	if ui.dragging {
		mx, my := ui.input.MousePosition()
		ui.renderer.DrawDraggedPiece(screen, ui.dragPiece, mx, my)
	}

	ui.promo.Draw(screen, ui.renderer)
	ui.panel.Draw(screen)
	ui.dialog.Draw(screen)
}

// Layout returns the game's screen dimensions. Width is dynamic based
// on the panel collapsed state.
func (ui *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if ui.panel != nil && ui.panel.Collapsed() {
		return BoardSize + CollapsedWidth, ScreenHeight
	}
	return ScreenWidth, ScreenHeight
}

// myTurn reports whether the local player may move now.
func (ui *Game) myTurn() bool {
	return !ui.network || ui.g.SideToMove() == ui.myColor
}

// handleBoardInput processes mouse interactions with the board.
func (ui *Game) handleBoardInput() {
	if ui.gameOver || !ui.myTurn() {
		return
	}

	mx, my := ui.input.MousePosition()
	if mx >= BoardSize || my >= BoardSize {
		return
	}

	if ui.input.IsLeftJustPressed() {
		sq := ui.renderer.ScreenToSquare(mx, my)
		if sq == board.NoSquare {
			return
		}

		piece := ui.g.At(sq)
		if piece != board.NoPiece && piece.Color() == ui.g.SideToMove() {
			ui.selectSquare(sq)
			ui.startDrag(sq)
			return
		}

		if ui.selected != board.NoSquare {
			if ui.tryMove(ui.selected, sq) {
				return
			}
		}

		ui.clearSelection()
	}

	if ui.dragging && ui.input.IsLeftJustReleased() {
		ui.handleDragRelease(mx, my)
	}
}

// selectSquare selects a square and looks up its legal moves.
func (ui *Game) selectSquare(sq board.Square) {
	ui.selected = sq
	ui.selectedMoves = ui.g.MovesFrom(sq)
}

// clearSelection clears the current selection.
func (ui *Game) clearSelection() {
	ui.selected = board.NoSquare
	ui.selectedMoves = nil
	ui.dragging = false
	ui.dragPiece = board.NoPiece
	ui.dragSquare = board.NoSquare
}

// startDrag begins dragging a piece.
func (ui *Game) startDrag(sq board.Square) {
	ui.dragging = true
	ui.dragPiece = ui.g.At(sq)
	ui.dragSquare = sq
}

// handleDragRelease handles releasing a dragged piece.
func (ui *Game) handleDragRelease(mx, my int) {
	targetSq := ui.renderer.ScreenToSquare(mx, my)

	if targetSq != board.NoSquare && targetSq != ui.dragSquare {
		if ui.tryMove(ui.dragSquare, targetSq) {
			return
		}
		ui.audio.Play(SoundInvalid)
	}

	// Keep the selection so click-to-move still works after the drop
	ui.dragging = false
	ui.dragPiece = board.NoPiece
	ui.dragSquare = board.NoSquare
}

// tryMove matches the drop target against the legal moves from the
// selected square. A promotion opens the piece picker instead of
// playing immediately. Returns true if the input was consumed.
func (ui *Game) tryMove(from, to board.Square) bool {
	side := ui.g.SideToMove()
	backRank := 0
	if side == board.Black {
		backRank = 7
	}

	for _, m := range ui.g.MovesFrom(from) {
		if m.IsPromotion() && m.To == to {
			ui.promo.Show(side, from, to)
			ui.dragging = false
			return true
		}
		if m.Target(side) == to {
			ui.playMove(from, m)
			return true
		}

		// Dropping the king on its rook also castles.
		if m.Kind == board.KindCastleKingside && to == board.NewSquare(7, backRank) ||
			m.Kind == board.KindCastleQueenside && to == board.NewSquare(0, backRank) {
			ui.playMove(from, m)
			return true
		}
	}
	return false
}

// playMove commits a local move and forwards it to the peer when a
// network game is on.
func (ui *Game) playMove(from board.Square, m board.Move) {
	side := ui.g.SideToMove()
	outcome, ok := ui.commitMove(from, m)
	if !ok {
		return
	}

	if ui.network {
		if err := ui.conn.Send(wire.NewMoveMessage(from, m)); err != nil {
			log.Printf("Warning: failed to send move: %v", err)
			ui.connectionLost(err)
			return
		}
	}

	ui.finishOutcome(outcome, side, true)
}

// commitMove plays the move on the engine and updates board highlights
// and sounds. It reports whether the engine accepted the move.
func (ui *Game) commitMove(from board.Square, m board.Move) (game.Outcome, bool) {
	side := ui.g.SideToMove()
	isCapture := m.IsEnPassant() ||
		(m.To != board.NoSquare && ui.g.At(m.To) != board.NoPiece)

	outcome, err := ui.g.Play(from, m)
	if err != nil {
		ui.audio.Play(SoundInvalid)
		return outcome, false
	}

	ui.lastFrom = from
	ui.lastTo = m.Target(side)
	ui.statusMsg = ""
	ui.clearSelection()

	switch {
	case outcome != game.Ok:
		ui.audio.Play(SoundGameEnd)
	case ui.g.InCheck():
		ui.audio.Play(SoundCheck)
	case m.IsCastling():
		ui.audio.Play(SoundCastle)
	case isCapture:
		ui.audio.Play(SoundCapture)
	default:
		ui.audio.Play(SoundMove)
	}

	return outcome, true
}

// finishOutcome settles a terminal outcome. mover is the side that made
// the move; mine is true when the local player made it.
func (ui *Game) finishOutcome(outcome game.Outcome, mover board.Color, mine bool) {
	switch outcome {
	case game.Checkmate:
		ui.endGame(fmt.Sprintf("%v wins by checkmate", mover))
		if ui.network {
			if mine {
				// Our mating move; the peer confirms with a checkmate frame.
				ui.recordResult(storage.ResultWin)
			} else {
				if err := ui.conn.Send(wire.Message{Type: wire.TypeCheckmate}); err != nil {
					log.Printf("Warning: failed to confirm mate: %v", err)
				}
				ui.recordResult(storage.ResultLoss)
			}
		}
	case game.Stalemate:
		ui.endGame("Draw by stalemate")
		ui.recordResult(storage.ResultDraw)
	}
}

// endGame marks the game over and drops the stale saved game.
func (ui *Game) endGame(result string) {
	ui.gameOver = true
	ui.gameResult = result
	ui.clearSelection()
	if !ui.network {
		ui.clearSavedGame()
	}
}

// recordResult updates lifetime stats once per network game.
func (ui *Game) recordResult(result storage.Result) {
	if ui.storage == nil || !ui.network || ui.resultRecorded {
		return
	}
	ui.resultRecorded = true
	if err := ui.storage.RecordResult(result); err != nil {
		log.Printf("Warning: failed to record result: %v", err)
	}
}

// pollNetwork drains pending connection attempts and peer messages
// without blocking the frame.
func (ui *Game) pollNetwork() {
	select {
	case res := <-ui.netCh:
		ui.handleNetResult(res)
	default:
	}

	if ui.conn == nil {
		return
	}

	for {
		select {
		case msg, ok := <-ui.conn.Messages():
			if !ok {
				ui.connectionLost(ui.conn.Err())
				return
			}
			ui.handlePeer(msg)
		default:
			return
		}
	}
}

// handleNetResult finishes an async host/join attempt.
func (ui *Game) handleNetResult(res netResult) {
	if res.hosting {
		ui.listening = false
		if ui.listener != nil {
			ui.listener.Close()
			ui.listener = nil
		}
	}

	if res.err != nil {
		// A closed listener reports an error for the pending Accept;
		// only surface real failures.
		if res.conn == nil && !res.hosting {
			ui.statusMsg = fmt.Sprintf("Connection failed: %v", res.err)
		}
		return
	}

	ui.conn = res.conn
	ui.network = true
	ui.resultRecorded = false
	if res.hosting {
		ui.myColor = board.White
	} else {
		ui.myColor = board.Black
	}
	ui.renderer.SetFlipped(ui.myColor == board.Black)

	ui.resetBoard()
	ui.statusMsg = "Opponent connected"
	ui.audio.Play(SoundNotify)
}

// handlePeer reacts to one message from the opponent.
func (ui *Game) handlePeer(msg wire.Message) {
	switch msg.Type {
	case wire.TypeMove:
		ui.applyPeerMove(msg)

	case wire.TypeUndo:
		ui.audio.Play(SoundNotify)
		ui.dialog.Show("Take-back", "Your opponent asks to take back the last move pair.",
			DialogChoice{Label: "Accept", Primary: true, OnSelect: func() {
				ui.dialog.Hide()
				ui.answerOffer(true)
				ui.undoPair()
			}},
			DialogChoice{Label: "Decline", OnSelect: func() {
				ui.dialog.Hide()
				ui.answerOffer(false)
			}},
		)

	case wire.TypeDraw:
		ui.audio.Play(SoundNotify)
		ui.dialog.Show("Draw offer", "Your opponent offers a draw.",
			DialogChoice{Label: "Accept", Primary: true, OnSelect: func() {
				ui.dialog.Hide()
				ui.answerOffer(true)
				ui.endGame("Draw by agreement")
				ui.recordResult(storage.ResultDraw)
			}},
			DialogChoice{Label: "Decline", OnSelect: func() {
				ui.dialog.Hide()
				ui.answerOffer(false)
			}},
		)

	case wire.TypeAccept:
		ui.offerAccepted()

	case wire.TypeDecline:
		ui.statusMsg = "Opponent declined"

	case wire.TypeCheckmate:
		// Confirmation of our mating move; the game is already over.

	case wire.TypeResign:
		ui.endGame(fmt.Sprintf("%v wins by resignation", ui.myColor))
		ui.recordResult(storage.ResultWin)
	}
}

// applyPeerMove validates the opponent's move through the engine. A
// rejected move means the peers are out of sync; the session ends.
func (ui *Game) applyPeerMove(msg wire.Message) {
	from := msg.From
	if msg.Move.IsCastling() {
		from = ui.g.KingSquare()
	}

	mover := ui.g.SideToMove()
	outcome, ok := ui.commitMove(from, msg.Move)
	if !ok {
		log.Printf("[net] Protocol fault: peer move %s is illegal here",
			msg.Move.Text(from, mover))
		ui.endGame("Connection out of sync")
		ui.disconnect()
		return
	}

	ui.finishOutcome(outcome, mover, false)
}

// answerOffer replies to the pending take-back or draw offer.
func (ui *Game) answerOffer(accept bool) {
	reply := wire.Message{Type: wire.TypeDecline}
	if accept {
		reply.Type = wire.TypeAccept
	}
	if err := ui.conn.Send(reply); err != nil {
		log.Printf("Warning: failed to answer offer: %v", err)
		ui.connectionLost(err)
	}
}

// offerAccepted resolves an incoming Accept against our last offer.
func (ui *Game) offerAccepted() {
	last, ok := ui.conn.LastSent()
	if !ok {
		return
	}
	switch last.Type {
	case wire.TypeUndo:
		ui.statusMsg = "Take-back accepted"
		ui.undoPair()
	case wire.TypeDraw:
		ui.endGame("Draw by agreement")
		ui.recordResult(storage.ResultDraw)
	}
}

// undoPair reverts the last two half-moves of a network game.
func (ui *Game) undoPair() {
	if err := ui.g.Undo(1); err != nil {
		log.Printf("Warning: cannot undo: %v", err)
		return
	}
	ui.gameOver = false
	ui.gameResult = ""
	ui.clearSelection()
	ui.restoreLastMove()
}

// connectionLost tears down the network game after an error or EOF.
func (ui *Game) connectionLost(err error) {
	if err != nil {
		log.Printf("[net] Connection lost: %v", err)
		ui.statusMsg = "Connection lost"
	} else {
		ui.statusMsg = "Opponent disconnected"
	}
	if !ui.gameOver {
		ui.endGame("Game abandoned")
	}
	ui.disconnect()
}

// disconnect closes the peer connection and returns to local play.
func (ui *Game) disconnect() {
	if ui.conn != nil {
		ui.conn.Close()
		ui.conn = nil
	}
	ui.network = false
	ui.renderer.SetFlipped(false)
}

// resetBoard starts a fresh game on the board.
func (ui *Game) resetBoard() {
	ui.g = game.NewGame()
	ui.lastFrom = board.NoSquare
	ui.lastTo = board.NoSquare
	ui.gameOver = false
	ui.gameResult = ""
	ui.statusMsg = ""
	ui.clearSelection()
}

// NewGameAction resets to a fresh local game. During a network game it
// asks for confirmation first, since leaving means resigning.
func (ui *Game) NewGameAction() {
	if ui.network {
		ui.dialog.Show("Leave game", "Leave the network game? This counts as a resignation.",
			DialogChoice{Label: "Leave", Primary: true, OnSelect: func() {
				ui.dialog.Hide()
				ui.resignNetwork()
				ui.disconnect()
				ui.resetBoard()
			}},
			DialogChoice{Label: "Stay", OnSelect: func() { ui.dialog.Hide() }},
		)
		return
	}
	ui.resetBoard()
	ui.clearSavedGame()
}

// HostAction opens the hosting dialog, or cancels hosting while the
// listener is waiting.
func (ui *Game) HostAction() {
	if ui.network {
		ui.statusMsg = "Already in a game"
		return
	}
	if ui.listening {
		ui.stopListening()
		ui.statusMsg = "Stopped hosting"
		return
	}

	ui.dialog.ShowInput("Host a game", "Listen address:", ":7777", ui.prefs.ListenAddr,
		DialogChoice{Label: "Host", Primary: true, OnSelect: func() {
			addr := ui.dialog.Input()
			ui.dialog.Hide()
			ui.startHosting(addr)
		}},
		DialogChoice{Label: "Cancel", OnSelect: func() { ui.dialog.Hide() }},
	)
}

func (ui *Game) startHosting(addr string) {
	l, err := netplay.Listen(addr)
	if err != nil {
		ui.statusMsg = fmt.Sprintf("Cannot listen: %v", err)
		return
	}
	ui.prefs.ListenAddr = addr
	ui.savePreferences()

	ui.listener = l
	ui.listening = true
	ui.statusMsg = fmt.Sprintf("Hosting on %s", l.Addr())

	go func() {
		conn, err := l.Accept()
		ui.netCh <- netResult{conn: conn, err: err, hosting: true}
	}()
}

func (ui *Game) stopListening() {
	ui.listening = false
	if ui.listener != nil {
		ui.listener.Close()
		ui.listener = nil
	}
}

// JoinAction opens the join dialog and dials the peer.
func (ui *Game) JoinAction() {
	if ui.network {
		ui.statusMsg = "Already in a game"
		return
	}

	ui.dialog.ShowInput("Join a game", "Host address:", "host:7777", ui.prefs.DialAddr,
		DialogChoice{Label: "Join", Primary: true, OnSelect: func() {
			addr := ui.dialog.Input()
			ui.dialog.Hide()
			ui.prefs.DialAddr = addr
			ui.savePreferences()
			ui.statusMsg = fmt.Sprintf("Connecting to %s...", addr)
			go func() {
				conn, err := netplay.Dial(addr)
				ui.netCh <- netResult{conn: conn, err: err}
			}()
		}},
		DialogChoice{Label: "Cancel", OnSelect: func() { ui.dialog.Hide() }},
	)
}

// UndoAction takes back the last move locally, or offers a take-back to
// the peer in a network game.
func (ui *Game) UndoAction() {
	if ui.gameOver && ui.network {
		return
	}

	if !ui.network {
		if err := ui.g.Undo(0); err != nil {
			ui.audio.Play(SoundInvalid)
			return
		}
		ui.gameOver = false
		ui.gameResult = ""
		ui.clearSelection()
		ui.restoreLastMove()
		return
	}

	if !ui.myTurn() || ui.g.HistoryLen() < 2 {
		ui.statusMsg = "Take-back needs your turn after a full move"
		ui.audio.Play(SoundInvalid)
		return
	}
	if err := ui.conn.Send(wire.Message{Type: wire.TypeUndo}); err != nil {
		ui.connectionLost(err)
		return
	}
	ui.statusMsg = "Take-back requested"
}

// OfferDrawAction proposes a draw.
func (ui *Game) OfferDrawAction() {
	if ui.gameOver {
		return
	}

	if !ui.network {
		ui.dialog.Show("Draw", "End the game in a draw?",
			DialogChoice{Label: "Draw", Primary: true, OnSelect: func() {
				ui.dialog.Hide()
				ui.endGame("Draw by agreement")
			}},
			DialogChoice{Label: "Cancel", OnSelect: func() { ui.dialog.Hide() }},
		)
		return
	}

	if err := ui.conn.Send(wire.Message{Type: wire.TypeDraw}); err != nil {
		ui.connectionLost(err)
		return
	}
	ui.statusMsg = "Draw offered"
}

// ResignAction resigns the current game.
func (ui *Game) ResignAction() {
	if ui.gameOver {
		return
	}

	winner := ui.g.SideToMove().Other()
	if ui.network {
		winner = ui.myColor.Other()
	}

	ui.dialog.Show("Resign", "Resign the game?",
		DialogChoice{Label: "Resign", Primary: true, OnSelect: func() {
			ui.dialog.Hide()
			if ui.network {
				ui.resignNetwork()
			}
			ui.endGame(fmt.Sprintf("%v wins by resignation", winner))
		}},
		DialogChoice{Label: "Cancel", OnSelect: func() { ui.dialog.Hide() }},
	)
}

// resignNetwork notifies the peer and records the loss.
func (ui *Game) resignNetwork() {
	if ui.conn == nil {
		return
	}
	if err := ui.conn.Send(wire.Message{Type: wire.TypeResign}); err != nil {
		log.Printf("Warning: failed to send resignation: %v", err)
	}
	ui.recordResult(storage.ResultResigned)
}

// ToggleSoundAction flips the sound setting.
func (ui *Game) ToggleSoundAction() {
	ui.audio.SetEnabled(!ui.audio.IsEnabled())
	ui.savePreferences()
}

func (ui *Game) clearSavedGame() {
	if ui.storage == nil {
		return
	}
	if err := ui.storage.ClearSavedGame(); err != nil {
		log.Printf("Warning: failed to clear saved game: %v", err)
	}
}

// Panel queries

// Username returns the player's display name.
func (ui *Game) Username() string {
	return ui.prefs.PlayerName
}

// SoundOn reports whether sound effects are enabled.
func (ui *Game) SoundOn() bool {
	return ui.audio.IsEnabled()
}

// MoveTexts returns the move history in coordinate form.
func (ui *Game) MoveTexts() []string {
	return ui.g.MoveTexts()
}

// ConnInfo describes the network role for the status bar, or "" for a
// local game.
func (ui *Game) ConnInfo() string {
	switch {
	case ui.network:
		return fmt.Sprintf("Online: %v", ui.myColor)
	case ui.listening:
		return "Hosting..."
	default:
		return ""
	}
}

// StatusLine returns the status bar text and its color.
func (ui *Game) StatusLine() (string, color.RGBA) {
	switch {
	case ui.gameOver:
		return ui.gameResult, statusGameOver
	case ui.statusMsg != "":
		return ui.statusMsg, statusWaiting
	case ui.listening:
		return "Waiting for an opponent...", statusWaiting
	case ui.network && !ui.myTurn():
		return "Opponent to move", statusWaiting
	default:
		return fmt.Sprintf("%v to move", ui.g.SideToMove()), textPrimary
	}
}

// Close saves state and releases resources on shutdown.
func (ui *Game) Close() {
	wasNetwork := ui.network
	if ui.network {
		ui.resignNetwork()
	}
	ui.disconnect()
	ui.stopListening()

	if ui.storage != nil {
		if !wasNetwork && !ui.gameOver && ui.g.HistoryLen() > 0 {
			saved := &storage.SavedGame{
				StartFEN: ui.g.StartFEN(),
				Moves:    ui.g.MoveTexts(),
			}
			if err := ui.storage.SaveGame(saved); err != nil {
				log.Printf("Warning: failed to save game: %v", err)
			}
		}
		ui.storage.Close()
	}
}
