package rig

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"rig-cli/internal/geometry"
	"rig-cli/internal/model"
	"rig-cli/internal/store"
	"rig-cli/internal/token"
)

// ErrNoCurrentProject means a view was requested with no backing project:
// there is no secret to sign its identity with.
var ErrNoCurrentProject = errors.New("no current project")

// ErrInvalidFrameSize rejects non-positive dimensions. Preset tables only
// hold positive sizes, so this catches Custom selections with missing or
// negative width/height before they are persisted.
var ErrInvalidFrameSize = errors.New("frame size must be positive")

// Controller is the only component that creates, edits or deletes views.
// Each mutation reads the latest collection, computes a new one and performs
// a single ReplaceAll.
type Controller struct {
	Projects *store.ProjectStore
	Views    *store.ViewStore
}

func NewController(projects *store.ProjectStore, views *store.ViewStore) *Controller {
	return &Controller{Projects: projects, Views: views}
}

// ViewDraft is the create-view dialog's output.
type ViewDraft struct {
	Type           model.ViewType         `json:"type"`
	Mode           model.ViewMode         `json:"mode,omitempty"` // empty => viewer
	Role           model.ViewerRole       `json:"role,omitempty"`
	IdentityOption model.IdentityOption   `json:"identityOption,omitempty"`
	Size           geometry.SizeSelection `json:"size"`
	X              int                    `json:"x"`
	Y              int                    `json:"y"`
	Orientation    model.Orientation      `json:"orientation,omitempty"`
	ChannelID      string                 `json:"channelId,omitempty"` // default: RIG<owner>
	UserID         string                 `json:"userId,omitempty"`    // linked subject, default: owner name
	OpaqueID       string                 `json:"opaqueId,omitempty"`  // unlinked subject, default: generated
}

// ViewPatch carries the only fields that may change after creation.
type ViewPatch struct {
	X           int               `json:"x"`
	Y           int               `json:"y"`
	Orientation model.Orientation `json:"orientation"`
}

// CreateView derives mode and linking, resolves geometry, assigns the next
// id, issues the signed identity from the current project's secret, and
// appends the view to the persisted collection.
//
// Config and dashboard views are always linked, whatever identity option the
// dialog supplied.
func (c *Controller) CreateView(ctx context.Context, draft ViewDraft) (model.ExtensionView, error) {
	project, found, err := c.Projects.Current(ctx)
	if err != nil {
		return model.ExtensionView{}, err
	}
	if !found {
		return model.ExtensionView{}, ErrNoCurrentProject
	}

	mode := draft.Mode
	if mode == "" {
		mode = model.ViewModeViewer
	}
	linked := mode == model.ViewModeConfig || mode == model.ViewModeDashboard ||
		draft.IdentityOption == model.IdentityLinked

	frame, err := geometry.Resolve(draft.Size, draft.Type)
	if err != nil {
		return model.ExtensionView{}, err
	}
	if frame.Width <= 0 || frame.Height <= 0 {
		return model.ExtensionView{}, fmt.Errorf("%w: %dx%d", ErrInvalidFrameSize, frame.Width, frame.Height)
	}

	views, err := c.Views.Load(ctx)
	if err != nil {
		return model.ExtensionView{}, err
	}

	role := draft.Role
	if role == "" {
		role = model.RoleViewer
	}
	channel := draft.ChannelID
	if channel == "" {
		channel = "RIG" + project.OwnerName
	}
	spec := token.Spec{Role: string(role), Secret: project.Secret, ChannelID: channel}
	if linked {
		spec.UserID = draft.UserID
		if spec.UserID == "" {
			spec.UserID = project.OwnerName
		}
	} else {
		spec.OpaqueID = draft.OpaqueID
		if spec.OpaqueID == "" {
			opaque, err := store.NewOpaqueID()
			if err != nil {
				return model.ExtensionView{}, err
			}
			spec.OpaqueID = opaque
		}
	}
	credential, err := token.Issue(spec)
	if err != nil {
		return model.ExtensionView{}, err
	}

	orientation := draft.Orientation
	if orientation == "" {
		orientation = model.OrientationPortrait
	}

	view := model.ExtensionView{
		ID:          nextViewID(views),
		Type:        draft.Type,
		Mode:        mode,
		Role:        role,
		Linked:      linked,
		X:           draft.X,
		Y:           draft.Y,
		Orientation: orientation,
		FrameSize:   frame,
		Identity:    model.SignedIdentity{Credential: credential, IsLinked: linked},
	}

	next := make([]model.ExtensionView, 0, len(views)+1)
	next = append(next, views...)
	next = append(next, view)
	if err := c.Views.ReplaceAll(ctx, next); err != nil {
		return model.ExtensionView{}, err
	}
	return view, nil
}

// EditView applies geometry-only changes to the view with the given id.
// Editing a view that no longer exists is a benign race, not an error.
func (c *Controller) EditView(ctx context.Context, id string, patch ViewPatch) (model.ExtensionView, bool, error) {
	views, err := c.Views.Load(ctx)
	if err != nil {
		return model.ExtensionView{}, false, err
	}

	next := make([]model.ExtensionView, len(views))
	copy(next, views)

	for i := range next {
		if next[i].ID != id {
			continue
		}
		next[i].X = patch.X
		next[i].Y = patch.Y
		next[i].Orientation = patch.Orientation
		if err := c.Views.ReplaceAll(ctx, next); err != nil {
			return model.ExtensionView{}, false, err
		}
		return next[i], true, nil
	}
	return model.ExtensionView{}, false, nil
}

// DeleteView removes the view with the given id. Absent ids are a no-op.
func (c *Controller) DeleteView(ctx context.Context, id string) error {
	views, err := c.Views.Load(ctx)
	if err != nil {
		return err
	}
	next := make([]model.ExtensionView, 0, len(views))
	for _, v := range views {
		if v.ID != id {
			next = append(next, v)
		}
	}
	return c.Views.ReplaceAll(ctx, next)
}

// ListViews returns the persisted collection.
func (c *Controller) ListViews(ctx context.Context) ([]model.ExtensionView, error) {
	return c.Views.Load(ctx)
}

// nextViewID is max(existing ids)+1, starting at 1. Ids grow monotonically
// across creates; deleting a view below the max never frees its id.
func nextViewID(views []model.ExtensionView) string {
	max := 0
	for _, v := range views {
		if n, err := strconv.Atoi(v.ID); err == nil && n > max {
			max = n
		}
	}
	return strconv.Itoa(max + 1)
}
