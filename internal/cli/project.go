package cli

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"rig-cli/internal/api"
	"rig-cli/internal/model"
	"rig-cli/internal/token"

	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project commands",
	}
	cmd.AddCommand(newProjectCreateCmd(app))
	cmd.AddCommand(newProjectSetCmd(app))
	cmd.AddCommand(newProjectShowCmd(app))
	cmd.AddCommand(newProjectListCmd(app))
	cmd.AddCommand(newProjectUseCmd(app))
	cmd.AddCommand(newProjectFetchManifestCmd(app))
	return cmd
}

type projectFlags struct {
	local        bool
	name         string
	owner        string
	clientID     string
	secret       string
	version      string
	frontend     string
	backend      string
	manifestJSON string
	manifestFile string
}

func (f *projectFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.local, "local", false, "Local extension (vs. an already created online extension)")
	cmd.Flags().StringVar(&f.name, "name", "", "Project name")
	cmd.Flags().StringVar(&f.owner, "owner", "", "Extension owner name (default: signed-in login)")
	cmd.Flags().StringVar(&f.clientID, "client-id", envOr("EXT_CLIENT_ID", ""), "Extension client id")
	cmd.Flags().StringVar(&f.secret, "secret", envOr("EXT_SECRET", ""), "Extension secret")
	cmd.Flags().StringVar(&f.version, "version", envOr("EXT_VERSION", ""), "Extension version")
	cmd.Flags().StringVar(&f.frontend, "frontend", "", "Front-end directory")
	cmd.Flags().StringVar(&f.backend, "backend", "", "Back-end file")
	cmd.Flags().StringVar(&f.manifestJSON, "manifest", "", "Manifest JSON text")
	cmd.Flags().StringVar(&f.manifestFile, "manifest-file", "", "Path to a manifest JSON file")
}

// project builds the model from the flags. A malformed manifest is not fatal
// here: the parse error text is stored as the manifest result, matching the
// original rig's hand-entry behavior.
func (f *projectFlags) project() (model.Project, error) {
	p := model.Project{
		IsLocal:      f.local,
		Name:         strings.TrimSpace(f.name),
		OwnerName:    strings.TrimSpace(f.owner),
		ClientID:     strings.TrimSpace(f.clientID),
		Secret:       f.secret,
		Version:      strings.TrimSpace(f.version),
		FrontendPath: strings.TrimSpace(f.frontend),
		BackendPath:  strings.TrimSpace(f.backend),
	}
	text := f.manifestJSON
	if f.manifestFile != "" {
		b, err := os.ReadFile(f.manifestFile)
		if err != nil {
			return model.Project{}, err
		}
		text = string(b)
	}
	if strings.TrimSpace(text) != "" {
		p.Manifest = model.ParseManifest(text)
	}
	return p, nil
}

func newProjectCreateCmd(app *App) *cobra.Command {
	var flags projectFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project and make it current",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, s, err := loadController(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			p, err := flags.project()
			if err != nil {
				return writeErr(cmd, err)
			}
			if p.OwnerName == "" {
				if login, found, err := s.LoadLogin(cmd.Context()); err == nil && found {
					p.OwnerName = login.Login
				}
			}
			if p.Name == "" {
				return writeErr(cmd, errors.New("missing --name"))
			}
			saved, err := c.Projects.Add(cmd.Context(), p)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, saved)
		},
	}
	flags.register(cmd)
	return cmd
}

func newProjectSetCmd(app *App) *cobra.Command {
	var flags projectFlags

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update fields of the current project (unset flags keep prior values)",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := loadController(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, found, err := c.Projects.Current(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			} else if !found {
				return writeErr(cmd, errors.New("no project yet; run `rig project create`"))
			}
			p, err := flags.project()
			if err != nil {
				return writeErr(cmd, err)
			}
			saved, err := c.Projects.Upsert(cmd.Context(), p)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, saved)
		},
	}
	flags.register(cmd)
	return cmd
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current project",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := loadController(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			p, found, err := c.Projects.Current(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			if !found {
				return writeErr(cmd, errors.New("no project yet; run `rig project create`"))
			}
			return writeOut(cmd, app, p)
		},
	}
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List known projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := loadController(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			projects, err := c.Projects.List(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, projects)
		},
	}
}

func newProjectUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use <index>",
		Short: "Make the project at the given index current",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := loadController(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			idx, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil {
				return writeErr(cmd, errors.New("index must be a non-negative integer"))
			}
			p, err := c.Projects.Select(cmd.Context(), idx)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, p)
		},
	}
}

func newProjectFetchManifestCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch-manifest",
		Short: "Fetch the manifest for the current project from the backend",
		Long: strings.TrimSpace(`
Resolve the owner to a user id, sign a rig-role credential with the project
secret, and fetch the extension manifest with it. The result (or, on
failure, the error text) is stored as the current project's manifest.
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := loadController(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := cmd.Context()
			p, found, err := c.Projects.Current(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !found {
				return writeErr(cmd, errors.New("no project yet; run `rig project create`"))
			}
			result := fetchManifest(cmd, app, p)
			saved, err := c.Projects.Upsert(ctx, model.Project{IsLocal: p.IsLocal, Manifest: result})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, saved.Manifest)
		},
	}
	return cmd
}

// fetchManifest runs the original dialog's pipeline: user lookup, rig-role
// token, manifest fetch. Failures become a ManifestResult error, not a
// command error: the error text lands where the manifest would be shown.
func fetchManifest(cmd *cobra.Command, app *App, p model.Project) model.ManifestResult {
	client := api.NewClient(app.Host)
	ctx := cmd.Context()

	user, err := client.FetchUserByName(ctx, p.ClientID, p.OwnerName)
	if err != nil {
		return model.ManifestErr(err.Error())
	}
	bearer, err := token.Issue(token.Spec{
		Role:      token.RigRole,
		Secret:    p.Secret,
		ChannelID: "RIG" + p.OwnerName,
		UserID:    user.ID,
	})
	if err != nil {
		return model.ManifestErr(err.Error())
	}
	m, err := client.FetchExtensionManifest(ctx, p.ClientID, p.Version, bearer)
	if err != nil {
		return model.ManifestErr(err.Error())
	}
	return model.ManifestOK(m)
}
