package cli

import (
	"strings"

	"rig-cli/internal/geometry"
	"rig-cli/internal/model"
	"rig-cli/internal/rig"

	"github.com/spf13/cobra"
)

func newViewsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "views",
		Short: "Simulated extension view commands",
	}
	cmd.AddCommand(newViewsCreateCmd(app))
	cmd.AddCommand(newViewsListCmd(app))
	cmd.AddCommand(newViewsEditCmd(app))
	cmd.AddCommand(newViewsDeleteCmd(app))
	return cmd
}

func newViewsCreateCmd(app *App) *cobra.Command {
	var (
		typ         string
		mode        string
		role        string
		identity    string
		size        string
		width       int
		height      int
		x, y        int
		orientation string
		channel     string
		userID      string
		opaqueID    string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a simulated extension view",
		Example: strings.TrimSpace(`
  # An unlinked panel at a preset size
  rig views create --type panel --size 640x480

  # A linked mobile view
  rig views create --type mobile --size "iPhone X (375x822)" --identity linked

  # A broadcaster config view (always linked, whatever --identity says)
  rig views create --type component --mode config --role broadcaster --size 1280x720

  # Custom geometry
  rig views create --type video_overlay --size Custom --width 100 --height 100
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := loadController(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			draft := rig.ViewDraft{
				Type:           model.ViewType(strings.TrimSpace(typ)),
				Mode:           model.ViewMode(strings.TrimSpace(mode)),
				Role:           model.ViewerRole(strings.TrimSpace(role)),
				IdentityOption: model.IdentityOption(strings.TrimSpace(identity)),
				Size:           geometry.SizeSelection{Name: strings.TrimSpace(size), Width: width, Height: height},
				X:              x,
				Y:              y,
				Orientation:    model.Orientation(strings.TrimSpace(orientation)),
				ChannelID:      strings.TrimSpace(channel),
				UserID:         strings.TrimSpace(userID),
				OpaqueID:       strings.TrimSpace(opaqueID),
			}
			view, err := c.CreateView(cmd.Context(), draft)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, view)
		},
	}

	cmd.Flags().StringVar(&typ, "type", string(model.ViewTypePanel), "View type (panel|component|mobile|video_overlay)")
	cmd.Flags().StringVar(&mode, "mode", "", "View mode (viewer|config|dashboard; default viewer)")
	cmd.Flags().StringVar(&role, "role", "", "Viewer role (broadcaster|viewer|external; default viewer)")
	cmd.Flags().StringVar(&identity, "identity", string(model.IdentityUnlinked), "Identity option (linked|unlinked)")
	cmd.Flags().StringVar(&size, "size", "640x480", "Size preset name, or Custom")
	cmd.Flags().IntVar(&width, "width", 0, "Custom width in px (with --size Custom)")
	cmd.Flags().IntVar(&height, "height", 0, "Custom height in px (with --size Custom)")
	cmd.Flags().IntVar(&x, "x", 0, "Horizontal position")
	cmd.Flags().IntVar(&y, "y", 0, "Vertical position")
	cmd.Flags().StringVar(&orientation, "orientation", "", "Orientation (portrait|landscape)")
	cmd.Flags().StringVar(&channel, "channel", "", "Channel id (default: RIG<owner>)")
	cmd.Flags().StringVar(&userID, "user-id", "", "Linked subject id (default: owner name)")
	cmd.Flags().StringVar(&opaqueID, "opaque-id", "", "Opaque subject id (default: generated)")
	return cmd
}

func newViewsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List simulated views",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := loadController(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			views, err := c.ListViews(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, views)
		},
	}
}

func newViewsEditCmd(app *App) *cobra.Command {
	var (
		x, y        int
		orientation string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a view's geometry (position and orientation only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := loadController(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			patch := rig.ViewPatch{X: x, Y: y, Orientation: model.Orientation(strings.TrimSpace(orientation))}
			view, found, err := c.EditView(cmd.Context(), strings.TrimSpace(args[0]), patch)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !found {
				// The view was deleted meanwhile; a benign race, not an error.
				return writeOut(cmd, app, nil)
			}
			return writeOut(cmd, app, view)
		},
	}

	cmd.Flags().IntVar(&x, "x", 0, "Horizontal position")
	cmd.Flags().IntVar(&y, "y", 0, "Vertical position")
	cmd.Flags().StringVar(&orientation, "orientation", string(model.OrientationPortrait), "Orientation (portrait|landscape)")
	return cmd
}

func newViewsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a view (absent ids are a no-op)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := loadController(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := c.DeleteView(cmd.Context(), strings.TrimSpace(args[0])); err != nil {
				return writeErr(cmd, err)
			}
			views, err := c.ListViews(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, views)
		},
	}
}
