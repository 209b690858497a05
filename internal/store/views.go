package store

import (
	"context"

	"rig-cli/internal/model"
)

// ViewStore owns the ordered collection of simulated extension views.
// It is storage only: id assignment and the mode/linking rules live in the
// lifecycle controller.
type ViewStore struct {
	S    Store
	subs []func([]model.ExtensionView)
}

func NewViewStore(s Store) *ViewStore {
	return &ViewStore{S: s}
}

// Subscribe registers fn to be called after every ReplaceAll with the new
// collection. Used by the TUI to re-render.
func (vs *ViewStore) Subscribe(fn func([]model.ExtensionView)) {
	vs.subs = append(vs.subs, fn)
}

// Load returns the persisted collection. First use establishes the key by
// persisting an empty collection.
func (vs *ViewStore) Load(ctx context.Context) ([]model.ExtensionView, error) {
	var views []model.ExtensionView
	found, err := vs.S.GetJSON(ctx, KeyExtensionViews, &views)
	if err != nil {
		return nil, err
	}
	if !found {
		views = []model.ExtensionView{}
		if err := vs.S.SetJSON(ctx, KeyExtensionViews, views); err != nil {
			return nil, err
		}
	}
	if views == nil {
		views = []model.ExtensionView{}
	}
	return views, nil
}

// ReplaceAll persists the full collection and notifies subscribers.
func (vs *ViewStore) ReplaceAll(ctx context.Context, views []model.ExtensionView) error {
	if views == nil {
		views = []model.ExtensionView{}
	}
	if err := vs.S.SetJSON(ctx, KeyExtensionViews, views); err != nil {
		return err
	}
	for _, fn := range vs.subs {
		fn(views)
	}
	return nil
}
