package store

import (
	"context"
	"testing"

	"rig-cli/internal/model"
)

func TestProjectStore_EmptyMeansNoProject(t *testing.T) {
	ps := NewProjectStore(Store{Dir: t.TempDir()})
	_, found, err := ps.Current(context.Background())
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if found {
		t.Fatal("expected no current project on first load")
	}
}

func TestProjectStore_UpsertInsertsThenMerges(t *testing.T) {
	ps := NewProjectStore(Store{Dir: t.TempDir()})
	ctx := context.Background()

	p, err := ps.Upsert(ctx, model.Project{IsLocal: true, Name: "ext", OwnerName: "owner", Secret: "s"})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if p.Name != "ext" {
		t.Fatalf("unexpected project: %+v", p)
	}

	cur, found, err := ps.Current(ctx)
	if err != nil || !found {
		t.Fatalf("current: found=%v err=%v", found, err)
	}
	if cur.Secret != "s" || !cur.IsLocal {
		t.Fatalf("unexpected current project: %+v", cur)
	}

	// Second upsert merges into the current project: empty fields keep the
	// prior value, set fields overwrite.
	merged, err := ps.Upsert(ctx, model.Project{IsLocal: true, ClientID: "c", Version: "0.0.1"})
	if err != nil {
		t.Fatalf("upsert merge: %v", err)
	}
	if merged.Name != "ext" || merged.Secret != "s" {
		t.Fatalf("merge lost prior fields: %+v", merged)
	}
	if merged.ClientID != "c" || merged.Version != "0.0.1" {
		t.Fatalf("merge dropped incoming fields: %+v", merged)
	}

	list, err := ps.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("upsert must not grow the list: %d", len(list))
	}
}

func TestProjectStore_ListAndIndexPersistTogether(t *testing.T) {
	dir := t.TempDir()
	ps := NewProjectStore(Store{Dir: dir})
	ctx := context.Background()

	if _, err := ps.Upsert(ctx, model.Project{Name: "one"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	var idx string
	found, err := ps.S.GetJSON(ctx, KeyCurrentProjectIndex, &idx)
	if err != nil || !found {
		t.Fatalf("index not persisted: found=%v err=%v", found, err)
	}
	if idx != "0" {
		t.Fatalf("expected string-encoded index \"0\", got %q", idx)
	}

	// A fresh store over the same dir sees the same state.
	ps2 := NewProjectStore(Store{Dir: dir})
	cur, found, err := ps2.Current(ctx)
	if err != nil || !found {
		t.Fatalf("reload current: found=%v err=%v", found, err)
	}
	if cur.Name != "one" {
		t.Fatalf("unexpected project after reload: %+v", cur)
	}
}

func TestProjectStore_AddAndSelect(t *testing.T) {
	ps := NewProjectStore(Store{Dir: t.TempDir()})
	ctx := context.Background()

	if _, err := ps.Upsert(ctx, model.Project{Name: "one"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := ps.Add(ctx, model.Project{Name: "two"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	cur, _, err := ps.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if cur.Name != "two" {
		t.Fatalf("add should make the new project current, got %+v", cur)
	}

	if _, err := ps.Select(ctx, 0); err != nil {
		t.Fatalf("select: %v", err)
	}
	cur, _, err = ps.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if cur.Name != "one" {
		t.Fatalf("select(0) should switch back, got %+v", cur)
	}

	if _, err := ps.Select(ctx, 5); err == nil {
		t.Fatal("expected error for out-of-range select")
	}
}
