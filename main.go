// netchess is a two-player network chess game: play locally at one
// machine, host a game over TCP, or join one.
package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/varekai/netchess/internal/ui"
)

func main() {
	game := ui.NewGame()
	defer game.Close()

	ebiten.SetWindowSize(ui.ScreenWidth, ui.ScreenHeight)
	ebiten.SetWindowTitle("NetChess")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
