package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m *appModel) View() string {
	if m.screen == screenDocs {
		body := renderMarkdown(m.docsMD, m.contentWidth())
		help := styleMuted().Render("q/esc: back")
		return body + "\n\n" + help
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if m.dialogOpen() {
		b.WriteString(m.renderDialog())
	} else {
		b.WriteString(m.renderViewList())
	}

	if m.errText != "" {
		b.WriteString("\n\n")
		b.WriteString(styleError().Render(m.errText))
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m *appModel) contentWidth() int {
	if m.width > 8 {
		return m.width - 4
	}
	return 76
}

func (m *appModel) renderHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg).Render("Extension Rig")
	if !m.hasProject {
		return title + "  " + styleMuted().Render("no project (press p)")
	}
	name := lipgloss.NewStyle().Foreground(colorAccent).Render(m.project.Name)
	owner := styleMuted().Render("owner " + m.project.OwnerName)
	return title + "  " + name + "  " + owner
}

func (m *appModel) renderViewList() string {
	if len(m.views) == 0 {
		return styleMuted().Render("No views yet. Press n to create one.")
	}

	selected := lipgloss.NewStyle().Background(colorSelectedBg).Foreground(colorSelectedFg)
	linkedBadge := lipgloss.NewStyle().Foreground(colorLinked).Render("linked")

	var lines []string
	for i, v := range m.views {
		line := fmt.Sprintf("#%s  %-13s %-9s %-11s %dx%d @(%d,%d) %s",
			v.ID, v.Type, v.Mode, v.Role,
			v.FrameSize.Width, v.FrameSize.Height, v.X, v.Y, v.Orientation)
		if i == m.cursor {
			line = selected.Render(line)
		}
		if v.Linked {
			line += "  " + linkedBadge
		}
		lines = append(lines, "  "+line)
	}
	return strings.Join(lines, "\n")
}

func (m *appModel) renderDialog() string {
	var title string
	switch {
	case m.dialogs.CreateViewOpen():
		title = "New view"
	case m.dialogs.EditViewOpen():
		title = "Edit view #" + m.dialogs.EditViewID()
	case m.dialogs.ProjectOpen():
		title = "Project"
	}

	labelStyle := styleMuted().Width(12)
	inputBg := lipgloss.NewStyle().Background(colorInputBg)

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Render(title), "")
	for _, f := range m.fields {
		lines = append(lines, labelStyle.Render(f.label)+" "+inputBg.Render(f.input.View()))
	}
	lines = append(lines, "", styleMuted().Render("tab: next field   enter: save   esc: cancel"))
	return strings.Join(lines, "\n")
}

func (m *appModel) renderHelp() string {
	return styleMuted().Render("n: new   e: edit   x: delete   p: project   ?: help   q: quit")
}
