package tui

import (
	"context"
	"testing"

	"rig-cli/internal/model"
	"rig-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel(t *testing.T) *appModel {
	t.Helper()

	s := store.Store{Dir: t.TempDir()}
	projects := store.NewProjectStore(s)
	if _, err := projects.Add(context.Background(), model.Project{
		IsLocal:   true,
		Name:      "test-ext",
		OwnerName: "owner",
		Secret:    "s",
	}); err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return newAppModel(s)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestNewAppModel_LoadsProject(t *testing.T) {
	m := newTestModel(t)

	if !m.hasProject {
		t.Fatal("expected a current project")
	}
	if m.project.Name != "test-ext" {
		t.Fatalf("project name = %q", m.project.Name)
	}
	if len(m.views) != 0 {
		t.Fatalf("expected no views, got %d", len(m.views))
	}
}

func TestCreateDialog_SubmitCreatesView(t *testing.T) {
	m := newTestModel(t)

	m.Update(keyMsg("n"))
	if !m.dialogs.CreateViewOpen() {
		t.Fatal("create dialog should be open")
	}

	// Defaults (panel, unlinked, 640x480) are enough for a valid view.
	m.Update(keyMsg("enter"))

	if m.dialogs.CreateViewOpen() {
		t.Fatal("create dialog should be closed after submit")
	}
	if len(m.views) != 1 {
		t.Fatalf("expected 1 view, got %d", len(m.views))
	}
	v := m.views[0]
	if v.ID != "1" || v.Type != model.ViewTypePanel || v.Linked {
		t.Fatalf("unexpected view: %+v", v)
	}
	if v.FrameSize.Width != 640 || v.FrameSize.Height != 480 {
		t.Fatalf("frame = %dx%d", v.FrameSize.Width, v.FrameSize.Height)
	}
}

func TestCreateDialog_EscCancels(t *testing.T) {
	m := newTestModel(t)

	m.Update(keyMsg("n"))
	m.Update(keyMsg("esc"))

	if m.dialogOpen() {
		t.Fatal("dialog should be closed")
	}
	if len(m.views) != 0 {
		t.Fatalf("cancel must not create a view, got %d", len(m.views))
	}
}

func TestEditDialog_TargetsSelectedView(t *testing.T) {
	m := newTestModel(t)

	m.Update(keyMsg("n"))
	m.Update(keyMsg("enter"))
	m.Update(keyMsg("n"))
	m.Update(keyMsg("enter"))
	if len(m.views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(m.views))
	}

	m.Update(keyMsg("j"))
	m.Update(keyMsg("e"))
	if !m.dialogs.EditViewOpen() {
		t.Fatal("edit dialog should be open")
	}
	if got := m.dialogs.EditViewID(); got != "2" {
		t.Fatalf("edit target = %q, want 2", got)
	}

	m.Update(keyMsg("esc"))
	if got := m.dialogs.EditViewID(); got != "0" {
		t.Fatalf("closed edit target = %q, want 0", got)
	}
}

func TestDeleteKey_RemovesSelectedView(t *testing.T) {
	m := newTestModel(t)

	m.Update(keyMsg("n"))
	m.Update(keyMsg("enter"))
	m.Update(keyMsg("x"))

	if len(m.views) != 0 {
		t.Fatalf("expected no views after delete, got %d", len(m.views))
	}
}

func TestSurfacedErrorBlocksDialogsUntilCleared(t *testing.T) {
	// No project seeded: submitting the create dialog fails.
	m := newAppModel(store.Store{Dir: t.TempDir()})

	m.Update(keyMsg("n"))
	m.Update(keyMsg("enter"))
	if m.errText == "" {
		t.Fatal("create without a project should surface an error")
	}
	m.Update(keyMsg("esc"))

	m.Update(keyMsg("n"))
	m.Update(keyMsg("e"))
	m.Update(keyMsg("p"))
	if m.dialogOpen() {
		t.Fatal("dialogs must stay closed while an error is surfaced")
	}

	m.Update(keyMsg("r"))
	if m.errText != "" {
		t.Fatalf("r should clear the error, still have %q", m.errText)
	}
	m.Update(keyMsg("n"))
	if !m.dialogs.CreateViewOpen() {
		t.Fatal("dialogs should open again once the error is cleared")
	}
}

func TestViewsChangedMsg_ReplacesCollection(t *testing.T) {
	m := newTestModel(t)

	m.Update(viewsChangedMsg{views: []model.ExtensionView{
		{ID: "7", Type: model.ViewTypePanel},
	}})

	if len(m.views) != 1 || m.views[0].ID != "7" {
		t.Fatalf("unexpected views: %+v", m.views)
	}
}
