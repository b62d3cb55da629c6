package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vmsouza/musicctl/internal/formatter"
	"github.com/vmsouza/musicctl/internal/models"
)

// form is a vertical stack of labelled text inputs with one focused at
// a time.
type form struct {
	title   string
	labels  []string
	inputs  []textinput.Model
	focused int
}

func newInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 120
	in.Width = 40
	return in
}

func newLoginForm() form {
	email := newInput("user@example.com")
	password := newInput("password")
	password.EchoMode = textinput.EchoPassword

	f := form{
		title:  "Login",
		labels: []string{"E-Mail", "Password"},
		inputs: []textinput.Model{email, password},
	}
	f.inputs[0].Focus()
	return f
}

// newRecordForm builds the add/edit form. The launch date is presented
// in the masked dd/mm/yyyy form regardless of how the record stores it.
func newRecordForm(m models.Music) form {
	title := newInput("title")
	title.SetValue(m.Title)
	artist := newInput("artist")
	artist.SetValue(m.Artist)
	launch := newInput("dd/mm/yyyy")
	launch.SetValue(formatter.MaskLaunchDate(m.LaunchDate))
	duration := newInput("mm:ss")
	duration.SetValue(m.Duration)
	views := newInput("views")
	if m.ViewsNumber != nil {
		views.SetValue(strconv.FormatInt(*m.ViewsNumber, 10))
	}
	feat := newInput("yes/no")
	feat.SetValue(formatter.FormatFeat(m.Feat))

	name := "Add Music"
	if m.Saved() {
		name = "Edit Music"
	}

	f := form{
		title:  name,
		labels: []string{"Title", "Artist", "Launch Date", "Duration", "Views", "Feat"},
		inputs: []textinput.Model{title, artist, launch, duration, views, feat},
	}
	f.inputs[0].Focus()
	return f
}

func (f *form) focusNext() {
	f.inputs[f.focused].Blur()
	f.focused = (f.focused + 1) % len(f.inputs)
	f.inputs[f.focused].Focus()
}

func (f *form) focusPrev() {
	f.inputs[f.focused].Blur()
	f.focused = (f.focused - 1 + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focused].Focus()
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(f.inputs))
	for i := range f.inputs {
		f.inputs[i], cmds[i] = f.inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

func (f form) view() string {
	var b strings.Builder
	b.WriteString(styles.title.Render(f.title))
	b.WriteString("\n\n")
	for i, in := range f.inputs {
		b.WriteString(fmt.Sprintf("%-12s %s\n", f.labels[i], in.View()))
	}
	return b.String()
}

// credentials reads the login form.
func (f form) credentials() models.Credentials {
	return models.Credentials{
		Email:    strings.TrimSpace(f.inputs[0].Value()),
		Password: f.inputs[1].Value(),
	}
}

// record reads the record form over the record it was opened with, so
// the ID survives an edit. The launch date stays in its masked form for
// validation; the catalog client unmasks it before the request.
func (f form) record(base models.Music) models.Music {
	base.Title = strings.TrimSpace(f.inputs[0].Value())
	base.Artist = strings.TrimSpace(f.inputs[1].Value())
	base.LaunchDate = strings.TrimSpace(f.inputs[2].Value())
	base.Duration = strings.TrimSpace(f.inputs[3].Value())

	base.ViewsNumber = nil
	if raw := strings.TrimSpace(f.inputs[4].Value()); raw != "" {
		if views, err := strconv.ParseInt(raw, 10, 64); err == nil {
			base.ViewsNumber = &views
		}
	}

	switch strings.ToLower(strings.TrimSpace(f.inputs[5].Value())) {
	case "y", "yes", "true", "1":
		base.Feat = true
	default:
		base.Feat = false
	}

	return base
}
