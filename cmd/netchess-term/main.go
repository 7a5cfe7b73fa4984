// netchess-term is the line-oriented netchess client: local two-player
// chess on one terminal, or a TCP game against a remote peer.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/varekai/netchess/internal/board"
	"github.com/varekai/netchess/internal/game"
	"github.com/varekai/netchess/internal/netplay"
	"github.com/varekai/netchess/internal/storage"
	"github.com/varekai/netchess/internal/wire"
)

func main() {
	hostAddr := flag.String("host", "", "listen address for a hosted game (e.g. :7777)")
	connectAddr := flag.String("connect", "", "address of a hosting peer (e.g. 192.168.1.5:7777)")
	resume := flag.Bool("resume", false, "resume the saved local game")
	startFEN := flag.String("fen", "", "start from the given FEN instead of the standard position")
	flag.Parse()

	if *hostAddr == "" && *connectAddr == "" {
		if addr := os.Getenv("NETCHESS_CONNECT"); addr != "" {
			*connectAddr = addr
		}
	}
	if *hostAddr != "" && *connectAddr != "" {
		log.Fatal("use either -host or -connect, not both")
	}

	c := &client{myColor: board.White}

	var err error
	c.store, err = storage.NewStorage()
	if err != nil {
		log.Printf("Warning: storage unavailable, continuing without it: %v", err)
	}

	c.g, err = openGame(c.store, *resume, *startFEN)
	if err != nil {
		log.Fatal(err)
	}

	switch {
	case *hostAddr != "":
		fmt.Printf("Waiting for an opponent on %s ...\n", *hostAddr)
		c.conn, err = netplay.Host(*hostAddr)
		if err != nil {
			log.Fatal(err)
		}
		c.myColor = board.White
		fmt.Printf("Opponent connected from %s, you play White.\n", c.conn.RemoteAddr())
	case *connectAddr != "":
		c.conn, err = netplay.Dial(*connectAddr)
		if err != nil {
			log.Fatal(err)
		}
		c.myColor = board.Black
		fmt.Printf("Connected to %s, you play Black.\n", c.conn.RemoteAddr())
	}

	c.run()

	if c.store != nil {
		c.store.Close()
	}
}

// openGame builds the starting game from the resume flag, an explicit
// FEN, or the standard position, in that order of preference.
func openGame(store *storage.Storage, resume bool, fen string) (*game.Game, error) {
	if resume {
		if store == nil {
			return nil, fmt.Errorf("cannot resume: storage unavailable")
		}
		saved, err := store.LoadSavedGame()
		if err != nil {
			return nil, fmt.Errorf("load saved game: %w", err)
		}
		if saved == nil {
			return nil, fmt.Errorf("no saved game to resume")
		}
		g, err := game.Replay(saved.StartFEN, saved.Moves)
		if err != nil {
			return nil, fmt.Errorf("saved game is not replayable: %w", err)
		}
		fmt.Printf("Resumed saved game (%d moves).\n", g.HistoryLen())
		return g, nil
	}

	if fen != "" {
		return game.NewGameFEN(fen)
	}
	return game.NewGame(), nil
}

// client drives one terminal session.
type client struct {
	g       *game.Game
	conn    *netplay.Conn // nil for a local game
	myColor board.Color
	store   *storage.Storage
	lines   chan string
	done    bool
}

func (c *client) run() {
	c.lines = make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			c.lines <- strings.TrimSpace(scanner.Text())
		}
		close(c.lines)
	}()
	lines := c.lines

	fmt.Println("Moves in coordinate form (e2e4, e7e8q). Commands: undo, draw, resign, fen, quit.")
	c.render()

	for !c.done {
		c.prompt()

		if c.conn == nil {
			line, ok := <-lines
			if !ok {
				c.quit()
				return
			}
			c.handleCommand(line)
			continue
		}

		select {
		case line, ok := <-lines:
			if !ok {
				c.quit()
				return
			}
			c.handleCommand(line)
		case msg, ok := <-c.conn.Messages():
			if !ok {
				if err := c.conn.Err(); err != nil {
					fmt.Printf("Connection lost: %v\n", err)
				} else {
					fmt.Println("Opponent disconnected.")
				}
				c.done = true
				continue
			}
			c.handlePeer(msg)
		}
	}
}

func (c *client) prompt() {
	if c.conn != nil && c.g.SideToMove() != c.myColor {
		fmt.Println("Waiting for opponent ...")
		return
	}
	fmt.Printf("%v to move> ", c.g.SideToMove())
}

func (c *client) handleCommand(line string) {
	switch line {
	case "":
		return
	case "quit":
		c.quit()
	case "fen":
		fmt.Println(c.g.FEN())
	case "undo":
		c.requestUndo()
	case "draw":
		c.offerDraw()
	case "resign":
		c.resign()
	case "accept", "decline":
		fmt.Println("Nothing to answer right now.")
	default:
		c.playText(line)
	}
}

// playText parses coordinate move text and submits it to the engine; in
// a network game the committed move is forwarded to the peer.
func (c *client) playText(text string) {
	if c.conn != nil && c.g.SideToMove() != c.myColor {
		fmt.Println("Not your turn.")
		return
	}

	from, to, promo, err := board.ParseCoords(text)
	if err != nil {
		fmt.Printf("Cannot read %q: type moves like e2e4 or e7e8q.\n", text)
		return
	}

	m := c.g.ResolveMove(from, to, promo)
	outcome, err := c.g.Play(from, m)
	if err != nil {
		fmt.Println("Illegal move.")
		return
	}

	if c.conn != nil {
		if err := c.conn.Send(wire.NewMoveMessage(from, m)); err != nil {
			fmt.Printf("Failed to send move: %v\n", err)
			c.done = true
			return
		}
	}

	c.render()
	c.reportOutcome(outcome, true)
}

// handlePeer reacts to one message from the opponent.
func (c *client) handlePeer(msg wire.Message) {
	switch msg.Type {
	case wire.TypeMove:
		c.applyPeerMove(msg)

	case wire.TypeUndo:
		fmt.Println("Opponent asks to take back the last move pair. accept/decline?")
		c.answerOffer(func() {
			if err := c.g.Undo(1); err != nil {
				fmt.Printf("Cannot undo: %v\n", err)
				return
			}
			c.render()
		})

	case wire.TypeDraw:
		fmt.Println("Opponent offers a draw. accept/decline?")
		c.answerOffer(func() {
			fmt.Println("Draw agreed.")
			c.recordResult(storage.ResultDraw)
			c.done = true
		})

	case wire.TypeAccept:
		c.offerAccepted()

	case wire.TypeDecline:
		fmt.Println("Opponent declined.")

	case wire.TypeCheckmate:
		fmt.Println("Opponent confirms the mate. You win!")
		c.recordResult(storage.ResultWin)
		c.done = true

	case wire.TypeResign:
		fmt.Println("Opponent resigned. You win!")
		c.recordResult(storage.ResultWin)
		c.done = true
	}
}

// applyPeerMove validates the opponent's move through the engine. A
// move the engine rejects is a protocol fault: the peers are out of
// sync and the session cannot continue.
func (c *client) applyPeerMove(msg wire.Message) {
	from := msg.From
	if msg.Move.IsCastling() {
		from = c.g.KingSquare()
	}

	outcome, err := c.g.Play(from, msg.Move)
	if err != nil {
		fmt.Printf("Protocol fault: opponent sent illegal move %s. Session ends.\n",
			msg.Move.Text(from, c.g.SideToMove()))
		c.done = true
		return
	}

	fmt.Printf("Opponent played %s.\n", msg.Move.Text(from, c.g.SideToMove().Other()))
	c.render()
	c.reportOutcome(outcome, false)
}

// answerOffer reads one accept/decline line from the player and answers
// the pending offer.
func (c *client) answerOffer(onAccept func()) {
	for line := range c.lines {
		switch line {
		case "accept":
			if err := c.conn.Send(wire.Message{Type: wire.TypeAccept}); err != nil {
				fmt.Printf("Failed to answer: %v\n", err)
				c.done = true
				return
			}
			onAccept()
			return
		case "decline":
			if err := c.conn.Send(wire.Message{Type: wire.TypeDecline}); err != nil {
				fmt.Printf("Failed to answer: %v\n", err)
				c.done = true
			}
			return
		default:
			fmt.Println("accept or decline?")
		}
	}
	// stdin closed
	c.done = true
}

// offerAccepted resolves an incoming Accept against our own last offer.
func (c *client) offerAccepted() {
	last, ok := c.conn.LastSent()
	if !ok {
		return
	}
	switch last.Type {
	case wire.TypeUndo:
		if err := c.g.Undo(1); err != nil {
			fmt.Printf("Cannot undo: %v\n", err)
			return
		}
		fmt.Println("Take-back accepted.")
		c.render()
	case wire.TypeDraw:
		fmt.Println("Draw agreed.")
		c.recordResult(storage.ResultDraw)
		c.done = true
	}
}

func (c *client) requestUndo() {
	if c.conn == nil {
		if err := c.g.Undo(0); err != nil {
			fmt.Println("Nothing to undo.")
			return
		}
		c.render()
		return
	}

	if c.g.SideToMove() != c.myColor || c.g.HistoryLen() < 2 {
		fmt.Println("You can ask for a take-back on your turn, after both sides have moved.")
		return
	}
	if err := c.conn.Send(wire.Message{Type: wire.TypeUndo}); err != nil {
		fmt.Printf("Failed to send: %v\n", err)
		c.done = true
		return
	}
	fmt.Println("Take-back requested.")
}

func (c *client) offerDraw() {
	if c.conn == nil {
		fmt.Println("Draw agreed.")
		c.done = true
		return
	}
	if err := c.conn.Send(wire.Message{Type: wire.TypeDraw}); err != nil {
		fmt.Printf("Failed to send: %v\n", err)
		c.done = true
		return
	}
	fmt.Println("Draw offered.")
}

func (c *client) resign() {
	if c.conn != nil {
		if err := c.conn.Send(wire.Message{Type: wire.TypeResign}); err != nil {
			log.Printf("Warning: failed to send resignation: %v", err)
		}
		c.recordResult(storage.ResultResigned)
	}
	fmt.Println("Resigned.")
	c.done = true
}

// quit ends the session; a local game in progress is saved for resume.
func (c *client) quit() {
	if c.conn != nil {
		c.resign()
		return
	}
	if c.store != nil && c.g.HistoryLen() > 0 {
		saved := &storage.SavedGame{
			StartFEN: c.g.StartFEN(),
			Moves:    c.g.MoveTexts(),
		}
		if err := c.store.SaveGame(saved); err != nil {
			log.Printf("Warning: failed to save game: %v", err)
		} else {
			fmt.Println("Game saved; resume with -resume.")
		}
	}
	c.done = true
}

// reportOutcome announces check and terminal results. mine is true when
// the local player made the move that produced the outcome.
func (c *client) reportOutcome(outcome game.Outcome, mine bool) {
	switch outcome {
	case game.Checkmate:
		fmt.Printf("Checkmate! %v wins.\n", c.g.SideToMove().Other())
		if c.conn != nil && !mine {
			// Confirm the opponent's mating move.
			if err := c.conn.Send(wire.Message{Type: wire.TypeCheckmate}); err != nil {
				log.Printf("Warning: failed to confirm mate: %v", err)
			}
			c.recordResult(storage.ResultLoss)
			c.done = true
		}
		if c.conn == nil {
			c.clearSaved()
			c.done = true
		}
	case game.Stalemate:
		fmt.Println("Stalemate. Draw.")
		c.recordResult(storage.ResultDraw)
		if c.conn == nil {
			c.clearSaved()
		}
		c.done = true
	default:
		if c.g.InCheck() {
			fmt.Println("Check!")
		}
	}
}

func (c *client) recordResult(result storage.Result) {
	if c.store == nil || c.conn == nil {
		return
	}
	if err := c.store.RecordResult(result); err != nil {
		log.Printf("Warning: failed to record result: %v", err)
	}
}

func (c *client) clearSaved() {
	if c.store == nil {
		return
	}
	if err := c.store.ClearSavedGame(); err != nil {
		log.Printf("Warning: failed to clear saved game: %v", err)
	}
}

// render prints the board with rank and file coordinates, flipped for
// the black side in a network game.
func (c *client) render() {
	flipped := c.conn != nil && c.myColor == board.Black
	b := c.g.Board()

	var sb strings.Builder
	sb.WriteByte('\n')
	for row := 0; row < 8; row++ {
		rank := 7 - row
		if flipped {
			rank = row
		}
		fmt.Fprintf(&sb, " %d ", rank+1)
		for col := 0; col < 8; col++ {
			file := col
			if flipped {
				file = 7 - col
			}
			fmt.Fprintf(&sb, " %c", b.AtCoords(file, rank).Rune())
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("    ")
	for col := 0; col < 8; col++ {
		file := col
		if flipped {
			file = 7 - col
		}
		fmt.Fprintf(&sb, "%c ", 'a'+file)
	}
	sb.WriteString("\n")
	fmt.Print(sb.String())
}
