package web

import (
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"rig-cli/internal/model"
	"rig-cli/internal/rig"
	"rig-cli/internal/store"
	"rig-cli/internal/token"
)

// Server renders the simulated extension frames as plain HTML + CSS.
// No JavaScript: edits and deletes are form posts against the controller.
type ServerConfig struct {
	Dir string
}

type Server struct {
	cfg  ServerConfig
	ctrl *rig.Controller
	tmpl *template.Template
}

func NewServer(cfg ServerConfig) (*Server, error) {
	s := store.Store{Dir: cfg.Dir}
	tmpl, err := template.New("rig").Parse(pageTemplate)
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg:  cfg,
		ctrl: rig.NewController(store.NewProjectStore(s), store.NewViewStore(s)),
		tmpl: tmpl,
	}, nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /views/delete", s.handleDelete)
	mux.HandleFunc("POST /views/edit", s.handleEdit)
	return mux
}

type viewVM struct {
	model.ExtensionView
	Claims    string
	BoxWidth  int
	BoxHeight int
}

type pageVM struct {
	ProjectName string
	HasProject  bool
	Manifest    model.ManifestResult
	Views       []viewVM
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vm := pageVM{}

	project, found, err := s.ctrl.Projects.Current(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	vm.HasProject = found
	if found {
		vm.ProjectName = project.Name
		vm.Manifest = project.Manifest
	}

	views, err := s.ctrl.ListViews(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	for _, v := range views {
		vm.Views = append(vm.Views, viewVM{
			ExtensionView: v,
			Claims:        claimsSummary(v.Identity.Credential),
			BoxWidth:      scaleDim(v.FrameSize.Width),
			BoxHeight:     scaleDim(v.FrameSize.Height),
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, vm); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.FormValue("id"))
	if err := s.ctrl.DeleteView(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.FormValue("id"))
	x, _ := strconv.Atoi(r.FormValue("x"))
	y, _ := strconv.Atoi(r.FormValue("y"))
	orientation := model.Orientation(strings.TrimSpace(r.FormValue("orientation")))
	if orientation == "" {
		orientation = model.OrientationPortrait
	}
	patch := rig.ViewPatch{X: x, Y: y, Orientation: orientation}
	if _, _, err := s.ctrl.EditView(r.Context(), id, patch); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// claimsSummary renders the decoded payload for display next to the frame.
func claimsSummary(credential string) string {
	claims, err := token.Decode(credential)
	if err != nil {
		return "(" + err.Error() + ")"
	}
	parts := make([]string, 0, len(claims))
	for _, k := range []string{"role", "channel_id", "user_id", "opaque_user_id"} {
		if v, ok := claims[k]; ok {
			parts = append(parts, fmt.Sprintf("%s=%v", k, v))
		}
	}
	return strings.Join(parts, " ")
}

// scaleDim shrinks frame dimensions to fit several on one page while keeping
// the aspect ratio readable.
func scaleDim(px int) int {
	const scalePct = 40
	out := px * scalePct / 100
	if out < 60 {
		out = 60
	}
	return out
}

const pageTemplate = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Extension Rig</title>
<style>
  body { font-family: sans-serif; margin: 1.5rem; background: #18181b; color: #efeff1; }
  a { color: #a970ff; }
  .frames { display: flex; flex-wrap: wrap; gap: 1rem; }
  .frame { border: 1px solid #3a3a3d; border-radius: 4px; padding: .5rem; background: #1f1f23; }
  .frame .box { background: #26262c; border: 1px dashed #53535f; display: flex;
                align-items: center; justify-content: center; color: #848494; }
  .meta { font-size: .8rem; color: #adadb8; margin-top: .5rem; max-width: 24rem;
          overflow-wrap: anywhere; }
  .badge { display: inline-block; padding: 0 .4rem; border-radius: 3px; background: #3a3a3d;
           font-size: .75rem; margin-right: .25rem; }
  .linked { background: #2e7d32; }
  form { display: inline; }
  input[type=number], select { width: 5rem; background: #26262c; color: #efeff1;
           border: 1px solid #3a3a3d; }
  .error { color: #ff8784; }
</style>
</head>
<body>
  <h1>Extension Rig</h1>
  {{if .HasProject}}
    <p>Project: <strong>{{.ProjectName}}</strong></p>
    {{if .Manifest.Error}}<p class="error">Manifest: {{.Manifest.Error}}</p>{{end}}
  {{else}}
    <p class="error">No project yet. Create one with <code>rig project create</code>.</p>
  {{end}}
  {{if not .Views}}
    <p>No views. Create one with <code>rig views create</code>.</p>
  {{end}}
  <div class="frames">
  {{range .Views}}
    <div class="frame">
      <div>
        <span class="badge">#{{.ID}}</span>
        <span class="badge">{{.Type}}</span>
        <span class="badge">{{.Mode}}</span>
        <span class="badge">{{.Role}}</span>
        {{if .Linked}}<span class="badge linked">linked</span>{{end}}
      </div>
      <div class="box" style="width: {{.BoxWidth}}px; height: {{.BoxHeight}}px;">
        {{.FrameSize.Width}}&times;{{.FrameSize.Height}}
      </div>
      <div class="meta">{{.Claims}}</div>
      <form method="post" action="/views/edit">
        <input type="hidden" name="id" value="{{.ID}}">
        x <input type="number" name="x" value="{{.X}}">
        y <input type="number" name="y" value="{{.Y}}">
        <select name="orientation">
          <option value="portrait"{{if eq .Orientation "portrait"}} selected{{end}}>portrait</option>
          <option value="landscape"{{if eq .Orientation "landscape"}} selected{{end}}>landscape</option>
        </select>
        <button type="submit">Save</button>
      </form>
      <form method="post" action="/views/delete">
        <input type="hidden" name="id" value="{{.ID}}">
        <button type="submit">Delete</button>
      </form>
    </div>
  {{end}}
  </div>
</body>
</html>
`
