package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"rig-cli/internal/rig"
	"rig-cli/internal/store"
	"rig-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Host       string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "rig",
		Short:        "Extension rig: simulate, configure and preview extension views",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  rig

  # Scriptable commands
  rig project create --local --name my-ext --owner me --secret s --client-id c --version 0.0.1
  rig views create --type panel --size 640x480
  rig views list

  # Preview the simulated frames in a browser
  rig web --addr 127.0.0.1:3336
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("RIG_DIR", ""), "Path to state dir (default: ~/.rig)")
	cmd.PersistentFlags().StringVar(&app.Host, "host", envOr("RIG_API_HOST", ""), "Backend API host (default: api.twitch.tv)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newProjectCmd(app))
	cmd.AddCommand(newViewsCmd(app))
	cmd.AddCommand(newTokenCmd(app))
	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newWebCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	s, err := resolveStore(app)
	if err != nil {
		return err
	}
	return tui.Run(s)
}

func resolveStore(app *App) (store.Store, error) {
	dir := app.Dir
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return store.Store{}, err
		}
		dir = d
		app.Dir = dir
	}
	return store.Store{Dir: dir}, nil
}

func loadController(app *App) (*rig.Controller, store.Store, error) {
	s, err := resolveStore(app)
	if err != nil {
		return nil, store.Store{}, err
	}
	c := rig.NewController(store.NewProjectStore(s), store.NewViewStore(s))
	return c, s, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if app.PrettyJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(map[string]any{"data": v})
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
