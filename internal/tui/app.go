package tui

import (
	"context"
	"strconv"
	"strings"

	"rig-cli/internal/docs"
	"rig-cli/internal/model"
	"rig-cli/internal/rig"
	"rig-cli/internal/store"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type screen int

const (
	screenViews screen = iota
	screenDocs
)

// viewsChangedMsg arrives from the view store subscription whenever the
// collection is replaced, whichever code path replaced it.
type viewsChangedMsg struct {
	views []model.ExtensionView
}

type field struct {
	label string
	input textinput.Model
}

type appModel struct {
	store store.Store
	ctrl  *rig.Controller

	width          int
	height         int
	seenWindowSize bool

	screen screen
	docsMD string

	project    model.Project
	hasProject bool
	views      []model.ExtensionView
	cursor     int

	dialogs  rig.Dialogs
	fields   []field
	focusIdx int

	errText string
}

func newAppModel(s store.Store) *appModel {
	m := &appModel{
		store: s,
		ctrl:  rig.NewController(store.NewProjectStore(s), store.NewViewStore(s)),
	}
	m.refresh()
	return m
}

func (m *appModel) refresh() {
	ctx := context.Background()
	if p, found, err := m.ctrl.Projects.Current(ctx); err == nil {
		m.project, m.hasProject = p, found
	}
	if views, err := m.ctrl.ListViews(ctx); err == nil {
		m.views = views
	}
	if m.cursor >= len(m.views) {
		m.cursor = len(m.views) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *appModel) Init() tea.Cmd { return nil }

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.seenWindowSize = true
		return m, nil

	case viewsChangedMsg:
		m.views = msg.views
		if m.cursor >= len(m.views) && m.cursor > 0 {
			m.cursor = len(m.views) - 1
		}
		return m, nil

	case tea.KeyMsg:
		if m.dialogOpen() {
			return m.updateDialog(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m *appModel) dialogOpen() bool {
	return m.dialogs.CreateViewOpen() || m.dialogs.EditViewOpen() || m.dialogs.ProjectOpen()
}

func (m *appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.screen == screenDocs {
		switch msg.String() {
		case "q", "esc", "?":
			m.screen = screenViews
		case "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.views)-1 {
			m.cursor++
		}
	case "n":
		// A surfaced error blocks dialogs until it is cleared with r.
		if m.errText == "" {
			m.openCreateDialog()
		}
	case "e", "enter":
		if m.errText == "" && m.cursor < len(m.views) {
			m.openEditDialog(m.views[m.cursor])
		}
	case "x", "delete":
		if m.cursor < len(m.views) {
			m.errText = ""
			if err := m.ctrl.DeleteView(context.Background(), m.views[m.cursor].ID); err != nil {
				m.errText = err.Error()
			}
			m.refresh()
		}
	case "p":
		if m.errText == "" {
			m.openProjectDialog()
		}
	case "r":
		m.errText = ""
		m.refresh()
	case "?":
		if body, ok := docs.Get("views"); ok {
			m.docsMD = body
			m.screen = screenDocs
		}
	}
	return m, nil
}

func (m *appModel) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "ctrl+g":
		m.closeDialogs()
		return m, nil
	case "tab", "down":
		m.focusField(m.focusIdx + 1)
		return m, nil
	case "shift+tab", "up":
		m.focusField(m.focusIdx - 1)
		return m, nil
	case "enter":
		m.submitDialog()
		return m, nil
	}

	var cmd tea.Cmd
	m.fields[m.focusIdx].input, cmd = m.fields[m.focusIdx].input.Update(msg)
	return m, cmd
}

func (m *appModel) focusField(idx int) {
	if len(m.fields) == 0 {
		return
	}
	m.fields[m.focusIdx].input.Blur()
	m.focusIdx = ((idx % len(m.fields)) + len(m.fields)) % len(m.fields)
	m.fields[m.focusIdx].input.Focus()
}

func (m *appModel) closeDialogs() {
	m.dialogs.CloseCreateView()
	m.dialogs.CloseEditView()
	m.dialogs.CloseProject()
	m.fields = nil
	m.focusIdx = 0
}

func newField(label, placeholder, value string) field {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 120
	in.Width = 28
	in.SetValue(value)
	return field{label: label, input: in}
}

func (m *appModel) openCreateDialog() {
	m.dialogs.OpenCreateView()
	m.fields = []field{
		newField("Type", "panel|component|mobile|video_overlay", "panel"),
		newField("Mode", "viewer|config|dashboard", ""),
		newField("Role", "broadcaster|viewer|external", ""),
		newField("Identity", "linked|unlinked", "unlinked"),
		newField("Size", "preset name or Custom", "640x480"),
		newField("Width", "px, with Custom", ""),
		newField("Height", "px, with Custom", ""),
	}
	m.focusIdx = 0
	m.fields[0].input.Focus()
}

func (m *appModel) openEditDialog(v model.ExtensionView) {
	m.dialogs.OpenEditView(v.ID)
	m.fields = []field{
		newField("X", "0", strconv.Itoa(v.X)),
		newField("Y", "0", strconv.Itoa(v.Y)),
		newField("Orientation", "portrait|landscape", string(v.Orientation)),
	}
	m.focusIdx = 0
	m.fields[0].input.Focus()
}

func (m *appModel) openProjectDialog() {
	m.dialogs.OpenProject()
	m.fields = []field{
		newField("Name", "my-extension", m.project.Name),
		newField("Owner", "login name", m.project.OwnerName),
		newField("Client id", "", m.project.ClientID),
		newField("Secret", "", m.project.Secret),
		newField("Version", "0.0.1", m.project.Version),
	}
	m.focusIdx = 0
	m.fields[0].input.Focus()
}

func (m *appModel) fieldValue(i int) string {
	return strings.TrimSpace(m.fields[i].input.Value())
}

func (m *appModel) submitDialog() {
	ctx := context.Background()
	m.errText = ""

	switch {
	case m.dialogs.CreateViewOpen():
		width, _ := strconv.Atoi(m.fieldValue(5))
		height, _ := strconv.Atoi(m.fieldValue(6))
		draft := rig.ViewDraft{
			Type:           model.ViewType(m.fieldValue(0)),
			Mode:           model.ViewMode(m.fieldValue(1)),
			Role:           model.ViewerRole(m.fieldValue(2)),
			IdentityOption: model.IdentityOption(m.fieldValue(3)),
		}
		draft.Size.Name = m.fieldValue(4)
		draft.Size.Width = width
		draft.Size.Height = height
		if _, err := m.ctrl.CreateView(ctx, draft); err != nil {
			m.errText = err.Error()
			return
		}

	case m.dialogs.EditViewOpen():
		x, _ := strconv.Atoi(m.fieldValue(0))
		y, _ := strconv.Atoi(m.fieldValue(1))
		orientation := model.Orientation(m.fieldValue(2))
		if orientation == "" {
			orientation = model.OrientationPortrait
		}
		patch := rig.ViewPatch{X: x, Y: y, Orientation: orientation}
		if _, _, err := m.ctrl.EditView(ctx, m.dialogs.EditViewID(), patch); err != nil {
			m.errText = err.Error()
			return
		}

	case m.dialogs.ProjectOpen():
		p := model.Project{
			IsLocal:   m.project.IsLocal,
			Name:      m.fieldValue(0),
			OwnerName: m.fieldValue(1),
			ClientID:  m.fieldValue(2),
			Secret:    m.fieldValue(3),
			Version:   m.fieldValue(4),
		}
		if _, err := m.ctrl.Projects.Upsert(ctx, p); err != nil {
			m.errText = err.Error()
			return
		}
	}

	m.closeDialogs()
	m.refresh()
}
