package cli

import (
	"errors"
	"strings"

	"rig-cli/internal/api"
	"rig-cli/internal/model"

	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var accessToken string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with an OAuth access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			tok := strings.TrimSpace(accessToken)
			if tok == "" {
				return writeErr(cmd, errors.New("missing --token"))
			}
			user, err := api.NewClient(app.Host).FetchUserInfo(cmd.Context(), tok)
			if err != nil {
				return writeErr(cmd, err)
			}
			login := model.Login{
				Login:           user.Login,
				AuthToken:       tok,
				ProfileImageURL: user.ProfileImageURL,
			}
			if err := s.SaveLogin(cmd.Context(), login); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, login)
		},
	}

	cmd.Flags().StringVar(&accessToken, "token", "", "OAuth access token")
	_ = cmd.MarkFlagRequired("token")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted sign-in record",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.ClearLogin(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, "signed out")
		},
	}
}
