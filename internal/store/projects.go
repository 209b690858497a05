package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"rig-cli/internal/model"
)

// ProjectStore owns the list of known projects and the single "current"
// project. The list and the current index are always persisted together.
type ProjectStore struct {
	S Store
}

func NewProjectStore(s Store) *ProjectStore {
	return &ProjectStore{S: s}
}

func (ps *ProjectStore) List(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	if _, err := ps.S.GetJSON(ctx, KeyProjects, &projects); err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []model.Project{}
	}
	return projects, nil
}

// Current returns the current project, or found == false when nothing has
// been persisted yet ("no project yet" is not an error; callers route to
// project creation).
func (ps *ProjectStore) Current(ctx context.Context) (model.Project, bool, error) {
	projects, err := ps.List(ctx)
	if err != nil {
		return model.Project{}, false, err
	}
	if len(projects) == 0 {
		return model.Project{}, false, nil
	}
	idx, err := ps.currentIndex(ctx)
	if err != nil {
		return model.Project{}, false, err
	}
	if idx < 0 || idx >= len(projects) {
		// Corrupted index (e.g. state copied between machines); fall back
		// to the first project rather than reporting no project.
		idx = 0
	}
	return projects[idx], true, nil
}

// Upsert merges p into the current project if one exists, else inserts p as
// the sole element and marks it current. Merge is shallow: non-empty incoming
// fields overwrite, empty ones keep the prior value (IsLocal is always taken
// from the incoming project, as is a manifest result carrying anything).
func (ps *ProjectStore) Upsert(ctx context.Context, p model.Project) (model.Project, error) {
	projects, err := ps.List(ctx)
	if err != nil {
		return model.Project{}, err
	}
	if len(projects) == 0 {
		projects = []model.Project{p}
		if err := ps.persist(ctx, projects, 0); err != nil {
			return model.Project{}, err
		}
		return p, nil
	}

	idx, err := ps.currentIndex(ctx)
	if err != nil {
		return model.Project{}, err
	}
	if idx < 0 || idx >= len(projects) {
		idx = 0
	}
	merged := mergeProject(projects[idx], p)
	projects[idx] = merged
	if err := ps.persist(ctx, projects, idx); err != nil {
		return model.Project{}, err
	}
	return merged, nil
}

// Add appends p as a new project and makes it current.
func (ps *ProjectStore) Add(ctx context.Context, p model.Project) (model.Project, error) {
	projects, err := ps.List(ctx)
	if err != nil {
		return model.Project{}, err
	}
	projects = append(projects, p)
	if err := ps.persist(ctx, projects, len(projects)-1); err != nil {
		return model.Project{}, err
	}
	return p, nil
}

// Select makes the project at index idx current.
func (ps *ProjectStore) Select(ctx context.Context, idx int) (model.Project, error) {
	projects, err := ps.List(ctx)
	if err != nil {
		return model.Project{}, err
	}
	if idx < 0 || idx >= len(projects) {
		return model.Project{}, errIndexOutOfRange(idx, len(projects))
	}
	if err := ps.persist(ctx, projects, idx); err != nil {
		return model.Project{}, err
	}
	return projects[idx], nil
}

func (ps *ProjectStore) currentIndex(ctx context.Context) (int, error) {
	var raw string
	found, err := ps.S.GetJSON(ctx, KeyCurrentProjectIndex, &raw)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, nil
	}
	return n, nil
}

func (ps *ProjectStore) persist(ctx context.Context, projects []model.Project, idx int) error {
	// The index is persisted as a string-encoded integer, matching the wire
	// format the original rig wrote to browser storage.
	return ps.S.SetJSONBatch(ctx, []KV{
		{Key: KeyProjects, Value: projects},
		{Key: KeyCurrentProjectIndex, Value: strconv.Itoa(idx)},
	})
}

func errIndexOutOfRange(idx, n int) error {
	return fmt.Errorf("project index %d out of range (have %d projects)", idx, n)
}

func mergeProject(prev, in model.Project) model.Project {
	out := prev
	out.IsLocal = in.IsLocal
	if in.Name != "" {
		out.Name = in.Name
	}
	if in.OwnerName != "" {
		out.OwnerName = in.OwnerName
	}
	if in.ClientID != "" {
		out.ClientID = in.ClientID
	}
	if in.Secret != "" {
		out.Secret = in.Secret
	}
	if in.Version != "" {
		out.Version = in.Version
	}
	if in.Manifest.OK() || in.Manifest.Error != "" {
		out.Manifest = in.Manifest
	}
	if in.FrontendPath != "" {
		out.FrontendPath = in.FrontendPath
	}
	if in.BackendPath != "" {
		out.BackendPath = in.BackendPath
	}
	return out
}
