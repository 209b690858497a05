package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"rig-cli/internal/geometry"
	"rig-cli/internal/model"
	"rig-cli/internal/rig"
	"rig-cli/internal/store"
)

func newTestServer(t *testing.T) (*Server, *rig.Controller) {
	t.Helper()

	dir := t.TempDir()
	s := store.Store{Dir: dir}
	projects := store.NewProjectStore(s)
	if _, err := projects.Add(context.Background(), model.Project{
		IsLocal:   true,
		Name:      "test-ext",
		OwnerName: "owner",
		Secret:    "s",
	}); err != nil {
		t.Fatalf("seed project: %v", err)
	}

	srv, err := NewServer(ServerConfig{Dir: dir})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return srv, rig.NewController(projects, store.NewViewStore(s))
}

func TestIndex_NoViews(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "test-ext") {
		t.Fatalf("project name missing from page:\n%s", body)
	}
	if !strings.Contains(body, "No views") {
		t.Fatalf("empty-state hint missing from page:\n%s", body)
	}
}

func TestIndex_RendersViewFrame(t *testing.T) {
	srv, ctrl := newTestServer(t)

	if _, err := ctrl.CreateView(context.Background(), rig.ViewDraft{
		Type: model.ViewTypePanel,
		Size: geometry.SizeSelection{Name: "640x480"},
	}); err != nil {
		t.Fatalf("CreateView: %v", err)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	body := rec.Body.String()
	for _, want := range []string{"#1", "panel", "640", "480", "opaque_user_id="} {
		if !strings.Contains(body, want) {
			t.Fatalf("page missing %q:\n%s", want, body)
		}
	}
	if strings.Contains(body, " user_id=") {
		t.Fatal("unlinked view must not carry user_id")
	}
}

func TestDelete_RemovesView(t *testing.T) {
	srv, ctrl := newTestServer(t)
	ctx := context.Background()

	if _, err := ctrl.CreateView(ctx, rig.ViewDraft{
		Type: model.ViewTypePanel,
		Size: geometry.SizeSelection{Name: "640x480"},
	}); err != nil {
		t.Fatalf("CreateView: %v", err)
	}

	form := url.Values{"id": {"1"}}
	req := httptest.NewRequest(http.MethodPost, "/views/delete", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	views, err := ctrl.ListViews(ctx)
	if err != nil {
		t.Fatalf("ListViews: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("expected no views, got %d", len(views))
	}
}

func TestEdit_GeometryOnly(t *testing.T) {
	srv, ctrl := newTestServer(t)
	ctx := context.Background()

	created, err := ctrl.CreateView(ctx, rig.ViewDraft{
		Type: model.ViewTypePanel,
		Size: geometry.SizeSelection{Name: "640x480"},
	})
	if err != nil {
		t.Fatalf("CreateView: %v", err)
	}

	form := url.Values{
		"id":          {created.ID},
		"x":           {"15"},
		"y":           {"25"},
		"orientation": {"landscape"},
	}
	req := httptest.NewRequest(http.MethodPost, "/views/edit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	views, err := ctrl.ListViews(ctx)
	if err != nil {
		t.Fatalf("ListViews: %v", err)
	}
	v := views[0]
	if v.X != 15 || v.Y != 25 || v.Orientation != model.OrientationLandscape {
		t.Fatalf("edit not applied: %+v", v)
	}
	if v.Identity.Credential != created.Identity.Credential {
		t.Fatal("edit must not reissue the credential")
	}
}
