package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/fpsdemo/common"
	"github.com/milk9111/fpsdemo/prefabs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var CLI struct {
	Debug bool `help:"Enable debug logging."`

	Play struct {
		Config     string `help:"Tuning file layered over the built-in values." type:"existingfile"`
		Scene      string `help:"Scene file to load instead of the embedded one." type:"existingfile"`
		Model      string `help:"Model file to load instead of the scene's model."`
		Watch      bool   `help:"Reload the tuning file when it changes."`
		Fullscreen bool   `help:"Start in fullscreen."`
		Overlay    bool   `help:"Start with the debug overlay visible."`
		Seed       uint64 `help:"Seed for the shot torque randomness. Zero picks one from the clock."`
	} `cmd:"" default:"withargs" help:"Start the demo."`

	Tuning struct{} `cmd:"" help:"Write the default tuning to standard output."`
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx := kong.Parse(&CLI,
		kong.Name("fpsdemo"),
		kong.Description("a first-person physics playground"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true, Summary: true}),
	)

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Debug().Msg("debug logging enabled")
	}

	switch ctx.Command() {
	case "tuning":
		if err := writeTuning(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			os.Exit(1)
		}
	default:
		if err := play(); err != nil {
			log.Fatal().Err(err).Msg("fpsdemo exited")
		}
	}
}

func writeTuning(w io.Writer) error {
	data, err := prefabs.PrefabsFS.ReadFile("tuning.yaml")
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write tuning: %w", err)
	}
	return nil
}

func play() error {
	seed := CLI.Play.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	game, err := NewGame(Options{
		ConfigPath:     CLI.Play.Config,
		ScenePath:      CLI.Play.Scene,
		ModelPath:      CLI.Play.Model,
		Watch:          CLI.Play.Watch,
		OverlayVisible: CLI.Play.Overlay,
		Seed:           seed,
	})
	if err != nil {
		return err
	}
	defer game.Close()

	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("fpsdemo")
	ebiten.SetFullscreen(CLI.Play.Fullscreen)
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}
