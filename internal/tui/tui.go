package tui

import (
	"rig-cli/internal/model"
	"rig-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func Run(s store.Store) error {
	applyColorProfilePreference()
	applyThemePreference()

	m := newAppModel(s)
	p := tea.NewProgram(m, tea.WithAltScreen())
	m.ctrl.Views.Subscribe(func(views []model.ExtensionView) {
		p.Send(viewsChangedMsg{views: views})
	})
	_, err := p.Run()
	return err
}
