package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/magdesk/internal/models"
	"github.com/desertthunder/magdesk/internal/shared"
	"github.com/desertthunder/magdesk/internal/tasks"
)

// field is one prompt of the form.
type field struct {
	label    string
	validate func(string) error // nil accepts anything
	input    textinput.Model
}

// Form collects an [tasks.EntryInput] interactively.
type Form struct {
	fields    []field
	focus     int
	err       error
	submitted bool
	cancelled bool
	help      help.Model
	keys      keyMap
}

var _ tea.Model = (*Form)(nil)

func validateAuthorName(v string) error {
	_, err := models.NewAuthor(v)
	return err
}

func validateMagazineName(v string) error {
	_, err := models.NewMagazine(v, "")
	return err
}

func validateArticleTitle(v string) error {
	_, err := models.NewArticle(v, "", 0, 0)
	return err
}

// NewForm creates a form, prefilled with any values already present in initial.
func NewForm(initial tasks.EntryInput) *Form {
	specs := []struct {
		label, placeholder, value string
		validate                  func(string) error
	}{
		{"Author's name", "Amara", initial.AuthorName, validateAuthorName},
		{"Magazine name", "Tech Weekly", initial.MagazineName, validateMagazineName},
		{"Magazine category (optional)", "Technology", initial.MagazineCategory, nil},
		{"Article title", "Intro to Systems", initial.ArticleTitle, validateArticleTitle},
		{"Article content", "body text...", initial.ArticleContent, nil},
	}

	f := &Form{help: help.New(), keys: newKeyMap()}
	for _, s := range specs {
		in := textinput.New()
		in.Placeholder = s.placeholder
		in.Prompt = "> "
		in.SetValue(s.value)
		f.fields = append(f.fields, field{label: s.label, validate: s.validate, input: in})
	}
	f.fields[0].input.Focus()
	return f
}

// Init starts the cursor blinking.
func (f *Form) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses and forwards everything else to the focused input.
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, f.keys.quit):
			f.cancelled = true
			return f, tea.Quit
		case key.Matches(msg, f.keys.prev):
			return f, f.move(-1)
		case key.Matches(msg, f.keys.next):
			if err := f.validateFocused(); err != nil {
				f.err = err
				return f, nil
			}
			if f.focus == len(f.fields)-1 {
				f.submitted = true
				return f, tea.Quit
			}
			return f, f.move(1)
		}
	}

	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return f, cmd
}

func (f *Form) validateFocused() error {
	fl := f.fields[f.focus]
	if fl.validate == nil {
		return nil
	}
	return fl.validate(fl.input.Value())
}

func (f *Form) move(delta int) tea.Cmd {
	next := f.focus + delta
	if next < 0 || next >= len(f.fields) {
		return nil
	}
	f.err = nil
	f.fields[f.focus].input.Blur()
	f.focus = next
	return f.fields[f.focus].input.Focus()
}

// View renders every field, the focused field's validation error and the key help.
func (f *Form) View() string {
	var b strings.Builder
	b.WriteString(Styles.Title("New article"))
	b.WriteString("\n")

	for i, fl := range f.fields {
		label := fl.label
		if i == f.focus {
			label = Styles.OK(label)
		}
		fmt.Fprintf(&b, "%s\n%s\n\n", label, fl.input.View())
	}

	if f.err != nil {
		b.WriteString(Styles.Err(f.err.Error()))
		b.WriteString("\n\n")
	}

	b.WriteString(f.help.View(f.keys))
	b.WriteString("\n")
	return b.String()
}

// Result returns the collected input, or [shared.ErrEntryCancelled] if the form was abandoned.
func (f *Form) Result() (tasks.EntryInput, error) {
	if f.cancelled || !f.submitted {
		return tasks.EntryInput{}, shared.ErrEntryCancelled
	}
	return tasks.EntryInput{
		AuthorName:       f.fields[0].input.Value(),
		MagazineName:     f.fields[1].input.Value(),
		MagazineCategory: f.fields[2].input.Value(),
		ArticleTitle:     f.fields[3].input.Value(),
		ArticleContent:   f.fields[4].input.Value(),
	}, nil
}

// RunForm runs the form as a bubbletea program and returns what the user entered.
func RunForm(ctx context.Context, initial tasks.EntryInput, opts ...tea.ProgramOption) (tasks.EntryInput, error) {
	form := NewForm(initial)
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)

	final, err := tea.NewProgram(form, opts...).Run()
	if err != nil {
		return tasks.EntryInput{}, fmt.Errorf("error running entry form: %w", err)
	}
	return final.(*Form).Result()
}
