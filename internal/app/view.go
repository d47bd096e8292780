package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/Birkbeck/mobile-computing-project-sabbas16/internal/imageref"
	"github.com/Birkbeck/mobile-computing-project-sabbas16/internal/ui"
)

// AppTitle is shown on the splash screen and in the header.
const AppTitle = "My Recipe App"

// View renders the current screen.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	if m.screen == ScreenSplash {
		return m.renderSplash()
	}

	var sections []string

	// Header
	sections = append(sections, m.renderHeader())

	// Divider
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))

	// Screen body
	var body string
	switch m.screen {
	case ScreenList:
		body = m.renderList()
	case ScreenDetail:
		body = m.renderDetail()
	case ScreenAdd, ScreenEdit:
		body = m.renderForm()
	}
	sections = append(sections, padLines(body, m.bodyHeight()))

	// Divider
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))

	// Toast
	if m.toast != "" {
		sections = append(sections, m.renderToast())
	}

	// Footer
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

func (m Model) renderSplash() string {
	card := lipgloss.JoinVertical(lipgloss.Center,
		ui.SplashTitleStyle.Render("📖  "+AppTitle),
		"",
		ui.DimStyle.Render("your personal recipe book"),
	)
	return lipgloss.Place(m.width, max(m.height, 1), lipgloss.Center, lipgloss.Center, card)
}

func (m Model) renderHeader() string {
	title := ui.TitleStyle.Render(strings.ToUpper(AppTitle))

	var where string
	switch m.screen {
	case ScreenList:
		where = fmt.Sprintf("Recipes (%d)", len(m.recipes))
	case ScreenAdd:
		where = "Add Recipe"
	case ScreenDetail:
		where = "Recipe"
	case ScreenEdit:
		where = "Edit Recipe"
	}
	return title + ui.DimStyle.Render(" — "+where)
}

func (m Model) bodyHeight() int {
	if m.height == 0 {
		return 20
	}
	// Reserve: header(1) + dividers(2) + toast(1) + footer(1)
	return max(5, m.height-5)
}

func (m Model) renderList() string {
	if !m.loaded {
		return ui.DimStyle.Render("  Loading recipes...")
	}
	if len(m.recipes) == 0 {
		return "\n" + ui.DimStyle.Render("  No recipes yet. Press n to add one.")
	}

	height := m.bodyHeight()
	start := 0
	if m.selected >= height {
		start = m.selected - height + 1
	}
	end := min(len(m.recipes), start+height)

	var lines []string
	for i := start; i < end; i++ {
		r := m.recipes[i]
		category := ui.CategoryStyle.Render("  " + r.Category)
		var line string
		if i == m.selected {
			line = ui.SelectedStyle.Render("> "+r.Title) + category
		} else {
			line = "  " + r.Title + category
		}
		lines = append(lines, truncateToWidth(line, m.width))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderDetail() string {
	if m.detail == nil {
		return ui.DimStyle.Render("  Loading...")
	}
	r := m.detail
	width := max(10, m.width-4)

	var lines []string
	lines = append(lines, "  "+renderImage(r.ImageURI))
	lines = append(lines, "")
	lines = append(lines, "  "+ui.TitleStyle.Render(r.Title))
	lines = append(lines, "  "+ui.CategoryStyle.Render("Category: "+r.Category))
	lines = append(lines, "")
	lines = append(lines, "  "+ui.HeadingStyle.Render("Ingredients:"))
	for _, l := range wrapText(r.Ingredients, width) {
		lines = append(lines, "  "+l)
	}
	lines = append(lines, "")
	lines = append(lines, "  "+ui.HeadingStyle.Render("Instructions:"))
	for _, l := range wrapText(r.Instructions, width) {
		lines = append(lines, "  "+l)
	}

	if m.confirmDelete {
		dialog := ui.DialogStyle.Render(
			ui.ErrorStyle.Render("Delete Recipe") + "\n" +
				fmt.Sprintf("Are you sure you want to delete %q?", r.Title) + "\n\n" +
				ui.FooterKeyStyle.Render("y") + ui.FooterDescStyle.Render(" Delete  ") +
				ui.FooterKeyStyle.Render("n") + ui.FooterDescStyle.Render(" Cancel"),
		)
		lines = append(lines, "")
		lines = append(lines, dialog)
	}
	return strings.Join(lines, "\n")
}

func renderImage(ref string) string {
	img := imageref.Resolve(ref)
	if img.Placeholder {
		return ui.PlaceholderStyle.Render("[" + img.Label + "]")
	}
	return ui.ImageStyle.Render("[🖼 " + img.Label + "]")
}

func (m Model) renderForm() string {
	f := m.form
	width := max(10, m.width-6)

	var lines []string
	for field := FormField(0); field < fieldCount; field++ {
		focused := field == f.focus
		label := ui.LabelStyle.Render(fieldLabels[field])
		if focused {
			label = ui.LabelActiveStyle.Render(fieldLabels[field])
		}
		lines = append(lines, "  "+label)

		if field == FieldCategory {
			value := "< " + f.categoryName() + " >"
			if focused {
				value = ui.SelectedStyle.Render(value)
			}
			lines = append(lines, "    "+value)
			continue
		}

		text := *f.field(field)
		if focused {
			text += ui.CursorStyle.Render("▌")
		}
		for _, l := range wrapText(text, width) {
			lines = append(lines, "    "+l)
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderToast() string {
	if m.toastErr {
		return ui.ErrorStyle.Render(m.toast)
	}
	return ui.ToastStyle.Render(m.toast)
}

func (m Model) renderFooter() string {
	var parts []string
	key := func(k, desc string) {
		parts = append(parts, ui.FooterKeyStyle.Render(k)+ui.FooterDescStyle.Render(" "+desc))
	}

	switch m.screen {
	case ScreenList:
		key("j/k", "Nav")
		key("Enter", "Open")
		key("n", "New")
		key("q", "Quit")
	case ScreenDetail:
		if m.confirmDelete {
			key("y", "Delete")
			key("n", "Cancel")
		} else {
			key("e", "Edit")
			key("d", "Delete")
			key("Esc", "Back")
			key("q", "Quit")
		}
	case ScreenAdd, ScreenEdit:
		key("Tab", "Next")
		key("←→", "Category")
		key("Ctrl+S", "Save")
		key("Esc", "Cancel")
	}

	return strings.Join(parts, "  ")
}

// Helpers

func padLines(s string, height int) string {
	lines := strings.Split(s, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func truncateToWidth(s string, width int) string {
	if width <= 1 || ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		var current string
		for _, word := range strings.Fields(paragraph) {
			if current == "" {
				current = word
			} else if len(current)+1+len(word) <= width {
				current += " " + word
			} else {
				lines = append(lines, current)
				current = word
			}
		}
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
