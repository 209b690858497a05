package store

import (
	"context"

	"rig-cli/internal/model"
)

// LoadLogin returns the persisted sign-in record, if any.
func (s Store) LoadLogin(ctx context.Context) (model.Login, bool, error) {
	var l model.Login
	found, err := s.GetJSON(ctx, KeyRigLogin, &l)
	if err != nil {
		return model.Login{}, false, err
	}
	return l, found, nil
}

// SaveLogin persists the sign-in record.
func (s Store) SaveLogin(ctx context.Context, l model.Login) error {
	return s.SetJSON(ctx, KeyRigLogin, l)
}

// ClearLogin removes the sign-in record. Clearing when signed out is a no-op.
func (s Store) ClearLogin(ctx context.Context) error {
	return s.Delete(ctx, KeyRigLogin)
}
