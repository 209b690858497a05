package cli

import (
	"errors"
	"strings"

	"rig-cli/internal/token"

	"github.com/spf13/cobra"
)

func newTokenCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue and inspect signed identity credentials",
	}
	cmd.AddCommand(newTokenIssueCmd(app))
	cmd.AddCommand(newTokenDecodeCmd(app))
	return cmd
}

func newTokenIssueCmd(app *App) *cobra.Command {
	var (
		role     string
		secret   string
		channel  string
		userID   string
		opaqueID string
	)

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue a credential (default secret: current project's)",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := loadController(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if secret == "" {
				p, found, err := c.Projects.Current(cmd.Context())
				if err != nil {
					return writeErr(cmd, err)
				}
				if !found {
					return writeErr(cmd, errors.New("no project to take a secret from; pass --secret"))
				}
				secret = p.Secret
				if channel == "" {
					channel = "RIG" + p.OwnerName
				}
			}
			cred, err := token.Issue(token.Spec{
				Role:      strings.TrimSpace(role),
				Secret:    secret,
				ChannelID: strings.TrimSpace(channel),
				UserID:    strings.TrimSpace(userID),
				OpaqueID:  strings.TrimSpace(opaqueID),
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, cred)
		},
	}

	cmd.Flags().StringVar(&role, "role", "viewer", "Role claim")
	cmd.Flags().StringVar(&secret, "secret", "", "Signing secret (default: current project's)")
	cmd.Flags().StringVar(&channel, "channel", "", "Channel id claim")
	cmd.Flags().StringVar(&userID, "user-id", "", "Linked subject id")
	cmd.Flags().StringVar(&opaqueID, "opaque-id", "", "Opaque subject id")
	return cmd
}

func newTokenDecodeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <credential>",
		Short: "Decode a credential's claims (no signature check)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			claims, err := token.Decode(strings.TrimSpace(args[0]))
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, claims)
		},
	}
}
