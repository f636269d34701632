package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/progress/internal/store"
)

type boardModel struct {
	store  *store.Store
	width  int
	height int

	notes  []store.Note
	cursor int

	formActive bool
	form       *huh.Form
	formTitle  *string
	formBody   *string
	editingID  int64 // 0 = creating
}

func newBoardModel(s *store.Store) boardModel {
	title, body := "", ""
	return boardModel{
		store:     s,
		formTitle: &title,
		formBody:  &body,
	}
}

func (b *boardModel) setSize(w, h int) {
	b.width = w
	b.height = h
}

func (b boardModel) refresh() tea.Cmd {
	return func() tea.Msg {
		notes, _ := b.store.ListNotes()
		return notesDataMsg{notes: notes}
	}
}

func (b boardModel) update(msg tea.Msg) (boardModel, tea.Cmd) {
	if b.formActive && b.form != nil {
		return b.updateForm(msg)
	}

	switch msg := msg.(type) {
	case notesDataMsg:
		b.notes = msg.notes
		if b.cursor >= len(b.notes) {
			b.cursor = clampCursor(len(b.notes))
		}
		return b, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if b.cursor > 0 {
				b.cursor--
			}
		case key.Matches(msg, keys.Down):
			if b.cursor < len(b.notes)-1 {
				b.cursor++
			}
		case key.Matches(msg, keys.New):
			return b.showForm(false)
		case key.Matches(msg, keys.Edit):
			if len(b.notes) > 0 {
				return b.showForm(true)
			}
		case key.Matches(msg, keys.Pin):
			if len(b.notes) > 0 {
				b.store.TogglePinNote(b.notes[b.cursor].ID)
				return b, b.refresh()
			}
		case key.Matches(msg, keys.Delete):
			if len(b.notes) > 0 {
				b.store.DeleteNote(b.notes[b.cursor].ID)
				return b, b.refresh()
			}
		}
	}
	return b, nil
}

func (b boardModel) showForm(edit bool) (boardModel, tea.Cmd) {
	*b.formTitle = ""
	*b.formBody = ""
	b.editingID = 0
	if edit {
		n := b.notes[b.cursor]
		*b.formTitle = n.Title
		*b.formBody = n.Body
		b.editingID = n.ID
	}

	b.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(b.formTitle),
			huh.NewText().Title("Body").Value(b.formBody),
		),
	).WithShowHelp(true).WithShowErrors(true)

	b.formActive = true
	return b, b.form.Init()
}

func (b boardModel) updateForm(msg tea.Msg) (boardModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			b.formActive = false
			b.form = nil
			return b, nil
		}
	}

	form, cmd := b.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		b.form = f
	}

	if b.form.State == huh.StateCompleted {
		b.formActive = false
		if *b.formTitle != "" {
			if b.editingID != 0 {
				b.store.UpdateNote(b.editingID, *b.formTitle, *b.formBody)
			} else {
				b.store.CreateNote(*b.formTitle, *b.formBody)
			}
		}
		return b, b.refresh()
	}

	return b, cmd
}

func (b boardModel) view() string {
	w := b.width - 4

	if b.formActive && b.form != nil {
		title := "New Note"
		if b.editingID != 0 {
			title = "Edit Note"
		}
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), "", b.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Board")
	if len(b.notes) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("Nothing posted yet. Press n to write a note."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title, "")

	for i, n := range b.notes {
		cursor := "  "
		style := normalItemStyle
		if i == b.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		pin := "  "
		if n.Pinned {
			pin = warningStyle.Render("★ ")
		}
		date := mutedStyle.Render(n.CreatedAt.Format("2006-01-02"))
		rows = append(rows, style.Render(fmt.Sprintf("%s%s%-36s", cursor, pin, n.Title))+" "+date)
		if i == b.cursor && n.Body != "" {
			body := n.Body
			if len(body) > w-8 {
				body = body[:w-8] + "…"
			}
			rows = append(rows, mutedStyle.Render("      "+body))
		}
	}

	rows = append(rows, "", mutedStyle.Render("  n: new  e: edit  space: pin  d: delete"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
