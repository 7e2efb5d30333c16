package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var version = "0.3.0"

var (
	good   = color.New(color.FgGreen)
	bad    = color.New(color.FgRed, color.Bold)
	subtle = color.New(color.FgHiBlack)
)

type cliOptions struct {
	configPath string
	seedPath   string
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:           "mailflow",
		Short:         "mailflow: drag emails into actions on a terminal canvas",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, seed, err := opts.load()
			if err != nil {
				bad.Fprintf(os.Stderr, "mailflow: %v\n", err)
				return err
			}
			return runTUI(cfg, seed)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default "+defaultConfigPath+")")
	root.PersistentFlags().StringVar(&opts.seedPath, "seed", "", "TOML file of [[email]] tables to load instead of the sample inbox")

	root.AddCommand(exportCmd(opts))
	return root
}

func (o *cliOptions) load() (Config, []Email, error) {
	cfg, err := loadConfig(o.configPath)
	if err != nil {
		return cfg, nil, err
	}
	seedPath := cfg.SeedFile
	if o.seedPath != "" {
		if seedPath, err = expandPath(o.seedPath); err != nil {
			return cfg, nil, err
		}
	}
	seed, err := loadSeed(seedPath)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, seed, nil
}

func runTUI(cfg Config, seed []Email) error {
	if os.Getenv("MAILFLOW_DEBUG") != "" {
		f, err := tea.LogToFile("mailflow-debug.log", "mailflow")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	p := tea.NewProgram(initialModel(cfg, seed), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func exportCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file.png|file.txt>",
		Short: "Render the inbox canvas to a PNG or text file without opening the TUI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, seed, err := opts.load()
			if err != nil {
				bad.Fprintf(os.Stderr, "mailflow: %v\n", err)
				return err
			}

			scene := NewScene(cfg.Layout)
			for _, e := range seed {
				scene.AddEmail(e)
			}

			path := args[0]
			if !filepath.IsAbs(path) && !strings.ContainsRune(path, filepath.Separator) {
				if path, err = cfg.ExportPath(path); err != nil {
					bad.Fprintf(os.Stderr, "mailflow: %v\n", err)
					return err
				}
			}

			switch strings.ToLower(filepath.Ext(path)) {
			case ".png":
				err = exportPNG(scene.Snapshot(), cfg.Layout, path)
			case ".txt":
				err = exportTXT(scene.Snapshot(), cfg.Layout, path)
			default:
				err = fmt.Errorf("unsupported export format %q (want .png or .txt)", filepath.Ext(path))
			}
			if err != nil {
				bad.Fprintf(os.Stderr, "mailflow: export failed: %v\n", err)
				return err
			}
			good.Printf("✓ Exported %d emails to %s\n", len(seed), path)
			subtle.Println("  open it with any image or text viewer")
			return nil
		},
	}
	return cmd
}
