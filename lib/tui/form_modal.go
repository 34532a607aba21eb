// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// FieldKind selects the editor used for a form field.
type FieldKind int

const (
	// FieldText is a single-line text input.
	FieldText FieldKind = iota
	// FieldMultiline is a multi-line editor; enter inserts a newline.
	FieldMultiline
	// FieldChoice cycles through fixed options with left/right.
	FieldChoice
)

// FormField describes one row of a FormModal.
type FormField struct {
	Key         string // Identifies the field in FormEvent and Value.
	Label       string
	Kind        FieldKind
	Placeholder string
	CharLimit   int            // FieldText only; 0 means unlimited.
	Lines       int            // FieldMultiline visible height; defaults to 3.
	Options     []ChoiceOption // FieldChoice only.
}

// FormEventKind classifies the outcome of FormModal.Update.
type FormEventKind int

const (
	// FormNone means the key moved focus or the cursor only.
	FormNone FormEventKind = iota
	// FormChanged means the focused field's value changed.
	FormChanged
	// FormSubmit means the user asked to save.
	FormSubmit
	// FormCancel means the user dismissed the form.
	FormCancel
)

// FormEvent reports what a key did to the form. Key and Value are set
// for FormChanged.
type FormEvent struct {
	Kind  FormEventKind
	Key   string
	Value string
}

// FormKeyMap holds the keys the form handles itself. Everything else
// goes to the focused field.
type FormKeyMap struct {
	Next     key.Binding
	Previous key.Binding
	Submit   key.Binding
	Cancel   key.Binding
}

// DefaultFormKeyMap moves with tab/shift+tab, saves with ctrl+s and
// cancels with esc. Up and down also move between fields except inside
// a multi-line field, where they move the cursor.
var DefaultFormKeyMap = FormKeyMap{
	Next: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "next field"),
	),
	Previous: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-Tab", "previous field"),
	),
	Submit: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("C-s", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "cancel"),
	),
}

// formInput is the editor state behind one FormField. Exactly one of
// text, area and choice is in use, selected by field.Kind.
type formInput struct {
	field  FormField
	text   textinput.Model
	area   TextArea
	choice Choice
	err    string
}

func (input *formInput) value() string {
	switch input.field.Kind {
	case FieldMultiline:
		return input.area.Value()
	case FieldChoice:
		return input.choice.Selected().Value
	}
	return input.text.Value()
}

func (input *formInput) setValue(value string) {
	switch input.field.Kind {
	case FieldMultiline:
		input.area.SetValue(value)
	case FieldChoice:
		input.choice.Select(value)
	default:
		input.text.SetValue(value)
	}
}

// FormModal is a centered modal form. It owns only presentation
// state; the owner keeps the authoritative values and is told about
// every change through FormEvent.
type FormModal struct {
	Title string

	inputs []formInput
	focus  int
	keys   FormKeyMap
	theme  Theme

	// message is a form-wide line under the fields: an error when
	// messageIsError, otherwise a progress note such as "Saving…".
	message        string
	messageIsError bool
	busy           bool
}

// NewFormModal creates a form with the given fields, all empty, and
// focus on the first field.
func NewFormModal(title string, fields []FormField, theme Theme) FormModal {
	modal := FormModal{
		Title: title,
		keys:  DefaultFormKeyMap,
		theme: theme,
	}
	for _, field := range fields {
		input := formInput{field: field}
		switch field.Kind {
		case FieldMultiline:
			if input.field.Lines <= 0 {
				input.field.Lines = 3
			}
			input.area = NewTextArea("")
		case FieldChoice:
			input.choice = NewChoice(field.Options, "")
		default:
			input.text = textinput.New()
			input.text.Prompt = ""
			input.text.Placeholder = field.Placeholder
			input.text.CharLimit = field.CharLimit
		}
		modal.inputs = append(modal.inputs, input)
	}
	if len(modal.inputs) > 0 && modal.inputs[0].field.Kind == FieldText {
		modal.inputs[0].text.Focus()
	}
	return modal
}

// SetValue sets a field without producing a FormEvent. Unknown keys
// are ignored.
func (modal *FormModal) SetValue(fieldKey, value string) {
	if index := modal.indexOf(fieldKey); index >= 0 {
		modal.inputs[index].setValue(value)
	}
}

// Value returns a field's current value, or "" for an unknown key.
func (modal *FormModal) Value(fieldKey string) string {
	if index := modal.indexOf(fieldKey); index >= 0 {
		return modal.inputs[index].value()
	}
	return ""
}

// Values returns every field's current value keyed by field key.
func (modal *FormModal) Values() map[string]string {
	values := make(map[string]string, len(modal.inputs))
	for index := range modal.inputs {
		values[modal.inputs[index].field.Key] = modal.inputs[index].value()
	}
	return values
}

// Focused returns the key of the field with focus.
func (modal *FormModal) Focused() string {
	if len(modal.inputs) == 0 {
		return ""
	}
	return modal.inputs[modal.focus].field.Key
}

// Focus moves focus to the named field. Returns the text input's
// cursor command, or nil.
func (modal *FormModal) Focus(fieldKey string) tea.Cmd {
	index := modal.indexOf(fieldKey)
	if index < 0 {
		return nil
	}
	return modal.moveFocus(index)
}

// SetFieldError attaches a message shown under a field. An empty
// message clears it.
func (modal *FormModal) SetFieldError(fieldKey, message string) {
	if index := modal.indexOf(fieldKey); index >= 0 {
		modal.inputs[index].err = message
	}
}

// FieldError returns the message attached to a field.
func (modal *FormModal) FieldError(fieldKey string) string {
	if index := modal.indexOf(fieldKey); index >= 0 {
		return modal.inputs[index].err
	}
	return ""
}

// ClearFieldErrors removes every field message.
func (modal *FormModal) ClearFieldErrors() {
	for index := range modal.inputs {
		modal.inputs[index].err = ""
	}
}

// SetError shows a form-wide error. An empty message clears it.
func (modal *FormModal) SetError(message string) {
	modal.message = message
	modal.messageIsError = message != ""
}

// Error returns the form-wide error, if any.
func (modal *FormModal) Error() string {
	if !modal.messageIsError {
		return ""
	}
	return modal.message
}

// SetBusy marks the form as waiting for a save. While busy, edits are
// ignored; cancel still works.
func (modal *FormModal) SetBusy(busy bool) {
	modal.busy = busy
	if busy {
		modal.message = "Saving…"
		modal.messageIsError = false
	} else if !modal.messageIsError {
		modal.message = ""
	}
}

// Busy reports whether the form is waiting for a save.
func (modal *FormModal) Busy() bool {
	return modal.busy
}

// Update handles one message. Key messages are interpreted by the form
// or the focused field; other messages (cursor blink) go to the focused
// text input.
func (modal *FormModal) Update(message tea.Msg) (FormEvent, tea.Cmd) {
	keyMessage, ok := message.(tea.KeyMsg)
	if !ok {
		return FormEvent{}, modal.updateText(message)
	}
	if len(modal.inputs) == 0 {
		if key.Matches(keyMessage, modal.keys.Cancel) {
			return FormEvent{Kind: FormCancel}, nil
		}
		return FormEvent{}, nil
	}

	input := &modal.inputs[modal.focus]
	multiline := input.field.Kind == FieldMultiline

	switch {
	case key.Matches(keyMessage, modal.keys.Cancel):
		return FormEvent{Kind: FormCancel}, nil

	case key.Matches(keyMessage, modal.keys.Submit):
		if modal.busy {
			return FormEvent{}, nil
		}
		return FormEvent{Kind: FormSubmit}, nil

	case key.Matches(keyMessage, modal.keys.Next),
		!multiline && (keyMessage.Type == tea.KeyDown || keyMessage.Type == tea.KeyEnter):
		return FormEvent{}, modal.moveFocus((modal.focus + 1) % len(modal.inputs))

	case key.Matches(keyMessage, modal.keys.Previous),
		!multiline && keyMessage.Type == tea.KeyUp:
		return FormEvent{}, modal.moveFocus((modal.focus + len(modal.inputs) - 1) % len(modal.inputs))
	}

	if modal.busy {
		return FormEvent{}, nil
	}

	changed := false
	var command tea.Cmd
	switch input.field.Kind {
	case FieldMultiline:
		changed = input.area.Update(keyMessage)

	case FieldChoice:
		switch keyMessage.Type {
		case tea.KeyLeft:
			input.choice.Previous()
			changed = true
		case tea.KeyRight, tea.KeySpace:
			input.choice.Next()
			changed = true
		}

	default:
		before := input.text.Value()
		input.text, command = input.text.Update(keyMessage)
		changed = input.text.Value() != before
	}

	if !changed {
		return FormEvent{}, command
	}
	return FormEvent{Kind: FormChanged, Key: input.field.Key, Value: input.value()}, command
}

func (modal *FormModal) updateText(message tea.Msg) tea.Cmd {
	if len(modal.inputs) == 0 || modal.inputs[modal.focus].field.Kind != FieldText {
		return nil
	}
	var command tea.Cmd
	modal.inputs[modal.focus].text, command = modal.inputs[modal.focus].text.Update(message)
	return command
}

func (modal *FormModal) moveFocus(index int) tea.Cmd {
	if current := &modal.inputs[modal.focus]; current.field.Kind == FieldText {
		current.text.Blur()
	}
	modal.focus = index
	if next := &modal.inputs[index]; next.field.Kind == FieldText {
		return next.text.Focus()
	}
	return nil
}

func (modal *FormModal) indexOf(fieldKey string) int {
	for index := range modal.inputs {
		if modal.inputs[index].field.Key == fieldKey {
			return index
		}
	}
	return -1
}

// Modal sizing. Chrome is the border (2) plus one padding column on
// each side (2).
const (
	formModalChrome   = 4
	formModalMaxWidth = 76
	formModalMinWidth = 40
	formModalMargin   = 2
)

// Render produces the modal lines for splicing onto the view, and the
// anchor that centers them on the screen.
func (modal FormModal) Render(screenWidth, screenHeight int) ([]string, int, int) {
	modalWidth := min(screenWidth-formModalMargin*2, formModalMaxWidth)
	modalWidth = max(modalWidth, formModalMinWidth)
	modalWidth = min(modalWidth, screenWidth)
	innerWidth := max(modalWidth-formModalChrome, 1)

	background := lipgloss.NewStyle().Background(modal.theme.ModalBackground)
	titleStyle := background.Bold(true).Foreground(modal.theme.HeaderForeground)
	labelStyle := background.Foreground(modal.theme.FaintText)
	focusedLabelStyle := background.Bold(true).Foreground(modal.theme.FocusAccent)
	valueStyle := background.Foreground(modal.theme.ModalForeground)
	errorStyle := background.Foreground(modal.theme.ErrorForeground)
	busyStyle := background.Foreground(modal.theme.BusyForeground)
	footerStyle := background.Foreground(modal.theme.HelpText)

	labelWidth := 0
	for _, input := range modal.inputs {
		labelWidth = max(labelWidth, ansi.StringWidth(input.field.Label))
	}
	labelWidth += 2
	valueWidth := max(innerWidth-labelWidth, 1)

	var lines []string
	lines = append(lines, PadOverlayLine(titleStyle.Render(modal.Title), innerWidth, background))
	lines = append(lines, PadOverlayLine("", innerWidth, background))

	for index := range modal.inputs {
		input := modal.inputs[index]
		focused := index == modal.focus

		style := labelStyle
		if focused {
			style = focusedLabelStyle
		}
		label := style.Render(input.field.Label) +
			background.Render(strings.Repeat(" ", labelWidth-ansi.StringWidth(input.field.Label)))
		indent := background.Render(strings.Repeat(" ", labelWidth))

		switch input.field.Kind {
		case FieldMultiline:
			for lineIndex, text := range input.area.Render(valueWidth, input.field.Lines, valueStyle, focused) {
				prefix := indent
				if lineIndex == 0 {
					prefix = label
				}
				lines = append(lines, PadOverlayLine(prefix+text, innerWidth, background))
			}
		case FieldChoice:
			lines = append(lines, PadOverlayLine(label+input.choice.View(valueStyle, focused), innerWidth, background))
		default:
			text := input.text
			text.Width = max(valueWidth-1, 1)
			text.TextStyle = valueStyle
			text.PlaceholderStyle = labelStyle
			lines = append(lines, PadOverlayLine(label+text.View(), innerWidth, background))
		}

		if input.err != "" {
			lines = append(lines, PadOverlayLine(indent+errorStyle.Render(input.err), innerWidth, background))
		}
	}

	lines = append(lines, PadOverlayLine("", innerWidth, background))
	switch {
	case modal.message != "" && modal.messageIsError:
		lines = append(lines, PadOverlayLine(errorStyle.Render("Error: "+modal.message), innerWidth, background))
	case modal.message != "":
		lines = append(lines, PadOverlayLine(busyStyle.Render(modal.message), innerWidth, background))
	}
	footer := "Tab next  S-Tab previous  ←→ choose  Ctrl+S save  Esc cancel"
	lines = append(lines, PadOverlayLine(footerStyle.Render(footer), innerWidth, background))

	// Leave room for the top and bottom border.
	if limit := screenHeight - 2; limit > 0 && len(lines) > limit {
		lines = lines[:limit]
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(modal.theme.BorderColor).
		BorderBackground(modal.theme.ModalBackground)
	resultLines := strings.Split(borderStyle.Render(strings.Join(lines, "\n")), "\n")

	anchorX, anchorY := CenterAnchor(resultLines, screenWidth, screenHeight)
	return resultLines, anchorX, anchorY
}
