package cli

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"rig-cli/internal/web"

	"github.com/spf13/cobra"
)

func newWebCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "web",
		Short: "Serve a browser preview of the simulated frames (no JS)",
		Long: strings.TrimSpace(`
Serve the current project's simulated extension views as server-rendered
HTML. Each view is drawn at its resolved frame size with its decoded
identity claims alongside. Geometry edits and deletes are form posts.
`),
		Example: strings.TrimSpace(`
  rig web --addr 127.0.0.1:3336
  rig web --addr :0
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			listenAddr := strings.TrimSpace(addr)
			if listenAddr == "" {
				return writeErr(cmd, errors.New("web: missing --addr"))
			}

			srv, err := web.NewServer(web.ServerConfig{Dir: s.Dir})
			if err != nil {
				return writeErr(cmd, err)
			}

			ln, err := net.Listen("tcp", listenAddr)
			if err != nil {
				return writeErr(cmd, err)
			}

			url := "http://" + ln.Addr().String() + "/"
			fmt.Fprintf(cmd.ErrOrStderr(), "Rig preview running at %s\n", url)

			return http.Serve(ln, srv.Handler())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:3336", "Bind address (host:port or :port)")
	return cmd
}
