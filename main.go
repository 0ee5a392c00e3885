package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"NoteBoard/internal/board"
	"NoteBoard/internal/config"
	"NoteBoard/internal/quotes"
	"NoteBoard/internal/storage"
	"NoteBoard/internal/ui"
)

func run(ctx context.Context, cmd *cli.Command) error {
	ctrl, cfg, err := buildController(cmd)
	if err != nil {
		return err
	}
	ui.Run(ctrl, cfg.Autosave.Interval.Std())
	return nil
}

func runExport(ctx context.Context, cmd *cli.Command) error {
	ctrl, _, err := buildController(cmd)
	if err != nil {
		return err
	}

	out, err := os.Create(cmd.String("out"))
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer out.Close()

	switch format := cmd.String("format"); format {
	case "json":
		return ctrl.ExportJSON(out)
	case "pdf":
		return ctrl.ExportPDF(out)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// buildController loads the configuration, restores the persisted board and
// wires the controller to its collaborators.
func buildController(cmd *cli.Command) (*board.Controller, *config.Config, error) {
	cfg, err := config.LoadOrDefault(cmd.String("config"))
	if err != nil {
		return nil, nil, err
	}

	path := cfg.Storage.Path
	if override := cmd.String("data"); override != "" {
		path = override
	}

	store := storage.NewStore(path)
	source := quotes.NewClient(cfg.Quotes.URL, cfg.Quotes.Timeout.Std())
	ctrl := board.NewController(store, source, board.Geometry{
		BoardWidth:  float32(cfg.Board.Width),
		BoardHeight: float32(cfg.Board.Height),
		NoteWidth:   float32(cfg.Note.Width),
		NoteHeight:  float32(cfg.Note.Height),
		StackX:      float32(cfg.Sort.StackX),
		StackStep:   float32(cfg.Sort.StackStep),
	})
	if err := ctrl.Bootstrap(); err != nil {
		return nil, nil, fmt.Errorf("restore board: %w", err)
	}
	return ctrl, cfg, nil
}

func main() {
	sharedFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to config file",
			DefaultText: "config/config.yaml",
			Value:       "config/config.yaml",
			Sources:     cli.EnvVars("NOTEBOARD_CONFIG_FILE"),
		},
		&cli.StringFlag{
			Name:    "data",
			Usage:   "Override the board data file location",
			Sources: cli.EnvVars("NOTEBOARD_DATA_FILE"),
		},
	}

	cmd := &cli.Command{
		Name:   "noteboard",
		Usage:  "Sticky-notes board: double-click to add notes, drag to arrange, autosaved locally",
		Action: run,
		Flags:  sharedFlags,
		Commands: []*cli.Command{
			{
				Name:   "export",
				Usage:  "Export the saved board without opening the UI",
				Action: runExport,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "out",
						Usage: "Output file",
						Value: "board-export.json",
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Export format: json or pdf",
						Value: "json",
					},
				}, sharedFlags...),
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
