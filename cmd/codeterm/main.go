package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"codeterm/internal/app"
	"codeterm/internal/stream"
	"codeterm/internal/transcript"
	"codeterm/internal/tui"
)

const version = "0.3.0"

func main() {
	var configPath string
	var sessionName string

	root := &cobra.Command{
		Use:   "codeterm",
		Short: "Terminal client for a streaming coding agent",
		Long: "codeterm attaches to an agent session, materializes its chunk\n" +
			"stream into a live transcript, and renders it in the terminal.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(resolveConfigPath(configPath))
			if err != nil {
				return err
			}

			logger, closeLog, err := openLogger(cfg)
			if err != nil {
				return err
			}
			defer closeLog()

			session := app.NewBackgroundSession(sessionName, cfg.BufferLimit, logger)
			engine := app.NewMockEngine(session)

			model := tui.NewMainModel(cfg, session, engine, logger)
			p := tea.NewProgram(model, tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/codeterm/config.yaml)")
	root.Flags().StringVar(&sessionName, "session", "main", "session name")

	root.AddCommand(newReplayCmd(&configPath))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("codeterm " + version)
		},
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// newReplayCmd folds a recorded chunk log into a transcript and prints
// it. Replay goes through the same reducer the live view uses, so the
// output matches what the session looked like on screen.
func newReplayCmd(configPath *string) *cobra.Command {
	var expanded bool
	cmd := &cobra.Command{
		Use:   "replay <chunk-log>",
		Short: "Materialize a recorded chunk log and print the transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(resolveConfigPath(*configPath))
			if err != nil {
				return err
			}

			path := args[0]
			if !filepath.IsAbs(path) && cfg.SessionDir != "" {
				if _, statErr := os.Stat(path); statErr != nil {
					path = filepath.Join(cfg.SessionDir, path)
				}
			}

			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			chunks, err := stream.ReadLog(f)
			if err != nil {
				return err
			}

			r := transcript.NewReducer(transcript.Options{
				ProgressWindow: cfg.ProgressWindow,
				DiffCollapse:   cfg.DiffCollapse,
				OutputCollapse: cfg.OutputCollapse,
				FinalizeText:   transcript.ReflowTables,
			})
			state := r.ReduceAll(transcript.NewState(), chunks)

			for i, b := range state.Blocks {
				if i > 0 {
					fmt.Println()
				}
				content := b.Content
				if expanded && b.FullContent != "" {
					content = b.FullContent
				}
				fmt.Println(content)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&expanded, "expanded", false, "print full tool output instead of collapsed views")
	return cmd
}

func resolveConfigPath(flag string) string {
	if flag != "" {
		return flag
	}
	return app.DefaultConfigPath()
}

func openLogger(cfg app.Config) (*app.Logger, func(), error) {
	if cfg.LogFile == "" {
		return nil, func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return app.NewLogger(f), func() { f.Close() }, nil
}
