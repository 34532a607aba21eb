// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package personui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/persons/lib/personapi"
	"github.com/bureau-foundation/persons/lib/personsync"
	"github.com/bureau-foundation/persons/lib/schema/person"
	"github.com/bureau-foundation/persons/lib/tui"
)

// FocusRegion identifies what receives keyboard input.
type FocusRegion int

const (
	// FocusList means keys navigate and act on the list.
	FocusList FocusRegion = iota
	// FocusSearch means keystrokes go to the search bar.
	FocusSearch
	// FocusForm means the add/edit form is open and owns all input.
	FocusForm
	// FocusConfirmDelete means a delete is waiting for y/n.
	FocusConfirmDelete
)

// DefaultStatusFade is how long status bar notices stay visible.
const DefaultStatusFade = 5 * time.Second

// syncEventMsg wraps a synchronizer Event for delivery through the
// bubbletea message loop.
type syncEventMsg struct {
	event personsync.Event
}

// loadResultMsg is sent when a Load call completes.
type loadResultMsg struct {
	err error
}

// commitResultMsg is sent when a form save completes.
type commitResultMsg struct {
	commit personsync.Commit
	record person.Record
	err    error
}

// removeResultMsg is sent when a delete completes.
type removeResultMsg struct {
	id   person.ID
	name string
	err  error
}

// statusFadeMsg clears the status notice it was scheduled for. A newer
// notice has a higher sequence and is left alone.
type statusFadeMsg struct {
	sequence int
}

// heatTickMsg drives the change highlight animation.
type heatTickMsg struct{}

// statusLevel selects the status notice styling.
type statusLevel int

const (
	statusInfo statusLevel = iota
	statusError
)

// Model is the top-level bubbletea model for the persons viewer.
type Model struct {
	ctx     context.Context
	records *personsync.Synchronizer
	session personsync.EditSession
	logger  *slog.Logger
	theme   tui.Theme
	keys    KeyMap

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	focus  FocusRegion
	search SearchModel

	// visible is the search-filtered view of the synchronizer's records.
	// selectedID tracks the selection across refreshes.
	visible      []person.Record
	cursor       int
	scrollOffset int
	selectedID   person.ID

	// Load state. loadErr persists until a reload succeeds.
	loading bool
	loadErr error

	form          *tui.FormModal
	pendingDelete *person.Record

	status         string
	statusLevel    statusLevel
	statusSequence int
	statusFade     time.Duration

	heat         *tui.HeatTracker
	tickRunning  bool
	eventChannel <-chan personsync.Event
}

// NewModel creates a Model over records. Init starts the initial load;
// ctx bounds every request the viewer issues.
func NewModel(ctx context.Context, records *personsync.Synchronizer, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	model := Model{
		ctx:          ctx,
		records:      records,
		logger:       logger,
		theme:        tui.DefaultTheme,
		keys:         DefaultKeyMap,
		loading:      true,
		statusFade:   DefaultStatusFade,
		heat:         tui.NewHeatTracker(tui.HeatDecayDuration),
		eventChannel: records.Subscribe(),
	}
	model.refresh()
	return model
}

// SetStatusFade sets how long status notices stay visible. Call before
// running the program.
func (model *Model) SetStatusFade(fade time.Duration) {
	if fade > 0 {
		model.statusFade = fade
	}
}

// Init implements tea.Model. Starts the event listener and the initial
// load.
func (model Model) Init() tea.Cmd {
	return tea.Batch(
		listenForSyncEvent(model.eventChannel),
		model.loadCmd(),
	)
}

// listenForSyncEvent returns a tea.Cmd that blocks until an event
// arrives, then delivers it as a syncEventMsg. A closed channel ends
// the listener.
func listenForSyncEvent(channel <-chan personsync.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-channel
		if !ok {
			return nil
		}
		return syncEventMsg{event: event}
	}
}

func (model Model) loadCmd() tea.Cmd {
	ctx, records := model.ctx, model.records
	return func() tea.Msg {
		return loadResultMsg{err: records.Load(ctx)}
	}
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		if message.Type == tea.KeyCtrlC {
			return model, tea.Quit
		}
		switch model.focus {
		case FocusForm:
			return model.handleFormKeys(message)
		case FocusSearch:
			return model.handleSearchKeys(message)
		case FocusConfirmDelete:
			return model.handleConfirmKeys(message)
		}
		return model.handleListKeys(message)

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.ensureCursorVisible()

	case loadResultMsg:
		return model.handleLoadResult(message)

	case commitResultMsg:
		return model.handleCommitResult(message)

	case removeResultMsg:
		return model.handleRemoveResult(message)

	case syncEventMsg:
		return model.handleSyncEvent(message)

	case heatTickMsg:
		if model.heat.HasHot(time.Now()) {
			return model, scheduleHeatTick()
		}
		model.tickRunning = false

	case logRecordMsg:
		level := statusInfo
		if message.Level >= slog.LevelWarn {
			level = statusError
		}
		return model, model.setStatus(level, message.Summary)

	case statusFadeMsg:
		if message.sequence == model.statusSequence {
			model.status = ""
		}

	default:
		// Cursor blink and other component messages.
		if model.form != nil {
			_, command := model.form.Update(message)
			return model, command
		}
	}
	return model, nil
}

func (model Model) handleListKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.SearchActivate):
		model.focus = FocusSearch
		model.search.Active = true
		model.cursor = 0
		model.scrollOffset = 0

	case key.Matches(message, model.keys.SearchClear):
		if model.search.Input != "" {
			model.search.Clear()
			model.refresh()
		}

	case key.Matches(message, model.keys.Add):
		return model.openAdd()

	case key.Matches(message, model.keys.Edit):
		return model.openEdit()

	case key.Matches(message, model.keys.Delete):
		if record, ok := model.selectedRecord(); ok {
			model.pendingDelete = &record
			model.focus = FocusConfirmDelete
		}

	case key.Matches(message, model.keys.Reload):
		if model.loading {
			return model, nil
		}
		model.loading = true
		return model, model.loadCmd()

	default:
		model.handleNavigationKeys(message)
	}
	return model, nil
}

func (model *Model) handleNavigationKeys(message tea.KeyMsg) {
	switch {
	case key.Matches(message, model.keys.Up):
		if model.cursor > 0 {
			model.cursor--
		}
	case key.Matches(message, model.keys.Down):
		if model.cursor < len(model.visible)-1 {
			model.cursor++
		}
	case key.Matches(message, model.keys.PageUp):
		model.cursor = model.clampedIndex(model.cursor - model.visibleHeight())
	case key.Matches(message, model.keys.PageDown):
		model.cursor = model.clampedIndex(model.cursor + model.visibleHeight())
	case key.Matches(message, model.keys.Home):
		model.cursor = 0
	case key.Matches(message, model.keys.End):
		model.cursor = model.clampedIndex(len(model.visible) - 1)
	default:
		return
	}
	model.syncSelection()
	model.ensureCursorVisible()
}

func (model Model) handleSearchKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.SearchClear):
		// Esc: clear the text first, then leave search on the next press.
		if model.search.Input != "" {
			model.search.Input = ""
		} else {
			model.search.Active = false
			model.focus = FocusList
		}
		model.refresh()

	case message.Type == tea.KeyEnter:
		model.search.Active = false
		model.focus = FocusList

	case message.Type == tea.KeyBackspace:
		if model.search.HandleBackspace() {
			model.refresh()
		}

	case message.Type == tea.KeyRunes || message.Type == tea.KeySpace:
		for _, character := range message.Runes {
			model.search.HandleRune(character)
		}
		model.refresh()

	case message.Type == tea.KeyUp || message.Type == tea.KeyDown:
		model.handleNavigationKeys(message)
	}
	return model, nil
}

func (model Model) handleConfirmKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	pending := model.pendingDelete
	model.pendingDelete = nil
	model.focus = FocusList
	if pending == nil || !key.Matches(message, model.keys.Confirm) {
		return model, nil
	}

	ctx, records := model.ctx, model.records
	id, name := pending.ID, pending.Name
	return model, func() tea.Msg {
		return removeResultMsg{id: id, name: name, err: records.Remove(ctx, id)}
	}
}

func (model Model) openAdd() (tea.Model, tea.Cmd) {
	model.session.StartAdd()
	model.form = newPersonForm("Add Person", model.session.Buffer(), model.theme)
	model.focus = FocusForm
	return model, nil
}

func (model Model) openEdit() (tea.Model, tea.Cmd) {
	record, ok := model.selectedRecord()
	if !ok {
		return model, nil
	}
	if err := model.session.StartEdit(record); err != nil {
		return model, model.setStatus(statusError, err.Error())
	}
	model.form = newPersonForm("Edit "+record.Name, model.session.Buffer(), model.theme)
	model.focus = FocusForm
	return model, nil
}

func (model *Model) closeForm() {
	model.form = nil
	model.focus = FocusList
}

func (model Model) handleFormKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if model.form == nil || !model.session.Open() {
		model.closeForm()
		return model, nil
	}

	event, command := model.form.Update(message)
	switch event.Kind {
	case tui.FormChanged:
		field := person.Field(event.Key)
		if err := model.session.UpdateField(field, event.Value); err != nil {
			model.form.SetFieldError(event.Key, fieldInputError(field, err))
		} else {
			model.form.SetFieldError(event.Key, "")
		}

	case tui.FormCancel:
		model.session.Cancel()
		model.closeForm()
		return model, nil

	case tui.FormSubmit:
		return model.submitForm()
	}
	return model, command
}

// fieldInputError describes a value the edit buffer could not take.
func fieldInputError(field person.Field, err error) string {
	switch {
	case field == person.FieldDateOfBirth:
		return "use YYYY-MM-DD"
	case err == nil:
		return "invalid value"
	}
	return err.Error()
}

// submitForm checks the draft locally, then starts the save. Local
// problems keep the form open without contacting the server.
func (model Model) submitForm() (tea.Model, tea.Cmd) {
	// A form value that differs from the buffer is one the buffer
	// rejected as typed.
	buffer := model.session.Buffer()
	model.form.ClearFieldErrors()
	unparsed := false
	for _, field := range person.Fields {
		bufferValue, _ := buffer.Value(field)
		if model.form.Value(string(field)) != bufferValue {
			model.form.SetFieldError(string(field), fieldInputError(field, nil))
			unparsed = true
		}
	}
	if unparsed {
		model.form.SetError("fix the marked fields first")
		return model, nil
	}

	if err := buffer.Validate(); err != nil {
		applyFieldErrors(model.form, person.FieldErrors(err), "")
		return model, nil
	}

	commit, err := model.session.Begin()
	if err != nil {
		return model, nil
	}
	model.form.SetError("")
	model.form.SetBusy(true)

	ctx, records := model.ctx, model.records
	return model, func() tea.Msg {
		record, err := commit.Apply(ctx, records)
		return commitResultMsg{commit: commit, record: record, err: err}
	}
}

func (model Model) handleCommitResult(message commitResultMsg) (tea.Model, tea.Cmd) {
	if errors.Is(message.err, personsync.ErrClosed) {
		return model, nil
	}
	if !model.session.Finish(message.commit, message.err) {
		// The form this save came from was cancelled; the synchronizer
		// has applied or logged the outcome on its own.
		return model, nil
	}

	if message.err != nil {
		model.form.SetBusy(false)
		summary := describeSaveError(message.err)
		if fieldErrors := personapi.FieldErrors(message.err); fieldErrors != nil {
			applyFieldErrors(model.form, fieldErrors, summary)
		} else {
			model.form.SetError(summary)
		}
		return model, nil
	}

	model.closeForm()
	model.selectedID = message.record.ID
	model.refresh()
	model.ensureCursorVisible()
	verb := "Added"
	if message.commit.Mode() == personsync.ModeEditing {
		verb = "Saved"
	}
	model.logger.Info("person saved", "id", message.record.ID.String(), "mode", message.commit.Mode().String())
	return model, model.setStatus(statusInfo, fmt.Sprintf("%s %s", verb, message.record.Name))
}

func (model Model) handleRemoveResult(message removeResultMsg) (tea.Model, tea.Cmd) {
	if errors.Is(message.err, personsync.ErrClosed) {
		return model, nil
	}
	if message.err != nil {
		return model, model.setStatus(statusError,
			fmt.Sprintf("Could not delete %s: %v", message.name, message.err))
	}
	return model, model.setStatus(statusInfo, "Deleted "+message.name)
}

func (model Model) handleLoadResult(message loadResultMsg) (tea.Model, tea.Cmd) {
	model.loading = false
	if errors.Is(message.err, personsync.ErrClosed) {
		return model, nil
	}
	model.loadErr = message.err
	model.refresh()
	if message.err != nil {
		return model, model.setStatus(statusError, "Load failed: "+message.err.Error())
	}
	return model, nil
}

// handleSyncEvent refreshes the view after the synchronizer applied a
// change, and lights up the changed row.
func (model Model) handleSyncEvent(message syncEventMsg) (tea.Model, tea.Cmd) {
	event := message.event
	commands := []tea.Cmd{listenForSyncEvent(model.eventChannel)}

	if event.Kind != personsync.EventLoaded && !event.ID.IsZero() {
		kind := tui.HeatPut
		if event.Kind == personsync.EventRemoved {
			kind = tui.HeatRemove
		}
		model.heat.Ignite(event.ID.String(), kind, time.Now())
		if !model.tickRunning {
			model.tickRunning = true
			commands = append(commands, scheduleHeatTick())
		}
	}
	if event.Kind == personsync.EventLoaded {
		model.loadErr = nil
	}

	model.refresh()
	return model, tea.Batch(commands...)
}

func scheduleHeatTick() tea.Cmd {
	return tea.Tick(tui.HeatTickInterval, func(time.Time) tea.Msg {
		return heatTickMsg{}
	})
}

// setStatus shows a notice and schedules its removal.
func (model *Model) setStatus(level statusLevel, text string) tea.Cmd {
	model.statusSequence++
	model.status = text
	model.statusLevel = level
	sequence := model.statusSequence
	return tea.Tick(model.statusFade, func(time.Time) tea.Msg {
		return statusFadeMsg{sequence: sequence}
	})
}

// refresh recomputes the visible rows from the synchronizer and the
// search term, keeping the selection on the same record when it is
// still visible.
func (model *Model) refresh() {
	model.visible = model.search.Apply(model.records.Records())
	model.restoreSelection()
}

func (model *Model) restoreSelection() {
	if !model.selectedID.IsZero() {
		for index, record := range model.visible {
			if record.ID == model.selectedID {
				model.cursor = index
				return
			}
		}
	}
	model.cursor = model.clampedIndex(model.cursor)
	model.syncSelection()
}

func (model *Model) syncSelection() {
	if record, ok := model.selectedRecord(); ok {
		model.selectedID = record.ID
	} else {
		model.selectedID = person.ID{}
	}
}

func (model Model) selectedRecord() (person.Record, bool) {
	if model.cursor < 0 || model.cursor >= len(model.visible) {
		return person.Record{}, false
	}
	return model.visible[model.cursor], true
}

func (model Model) clampedIndex(position int) int {
	if len(model.visible) == 0 || position < 0 {
		return 0
	}
	return min(position, len(model.visible)-1)
}

// Chrome: header line, column titles, bottom separator, help bar.
const chromeHeight = 4

// visibleHeight returns the number of list rows that fit.
func (model Model) visibleHeight() int {
	return max(model.height-chromeHeight, 0)
}

func (model *Model) ensureCursorVisible() {
	visible := model.visibleHeight()
	if visible <= 0 {
		return
	}
	maxOffset := max(len(model.visible)-visible, 0)
	model.scrollOffset = min(model.scrollOffset, maxOffset)
	if model.cursor < model.scrollOffset {
		model.scrollOffset = model.cursor
	}
	if model.cursor >= model.scrollOffset+visible {
		model.scrollOffset = model.cursor - visible + 1
	}
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	var sections []string
	if searchView := model.search.View(model.theme, model.width); searchView != "" {
		sections = append(sections, searchView)
	} else {
		sections = append(sections, model.renderHeader())
	}

	rowWidth := max(model.width-1, 1)
	renderer := NewListRenderer(model.theme, rowWidth, model.search.Input)
	sections = append(sections, renderer.RenderHeader())
	sections = append(sections, model.renderListPane(renderer, rowWidth))

	sections = append(sections, lipgloss.NewStyle().
		Foreground(model.theme.BorderColor).
		Render(strings.Repeat("─", model.width)))
	sections = append(sections, model.renderHelp())

	output := strings.Join(sections, "\n")

	if model.pendingDelete != nil {
		lines := model.renderConfirm(*model.pendingDelete)
		anchorX, anchorY := tui.CenterAnchor(lines, model.width, model.height)
		output = tui.SpliceOverlay(output, lines, anchorX, anchorY)
	}
	if model.form != nil {
		lines, anchorX, anchorY := model.form.Render(model.width, model.height)
		output = tui.SpliceOverlay(output, lines, anchorX, anchorY)
	}
	return output
}

// renderListPane renders the visible rows plus a scrollbar, or a
// centered notice when there are no rows.
func (model Model) renderListPane(renderer ListRenderer, rowWidth int) string {
	visible := model.visibleHeight()
	if visible <= 0 {
		return ""
	}

	if len(model.visible) == 0 {
		return lipgloss.Place(model.width, visible,
			lipgloss.Center, lipgloss.Center,
			model.renderEmptyNotice())
	}

	now := time.Now()
	rows := make([]string, 0, visible)
	for index := model.scrollOffset; index < model.scrollOffset+visible && index < len(model.visible); index++ {
		record := model.visible[index]
		selected := index == model.cursor
		row := renderer.RenderRow(record, selected)
		if !selected {
			if heat := model.heat.Heat(record.ID.String(), now); heat > 0 {
				accent := model.theme.HotAccentPut
				if model.heat.Kind(record.ID.String()) == tui.HeatRemove {
					accent = model.theme.HotAccentRemove
				}
				row = lipgloss.NewStyle().
					Background(accent).
					Width(rowWidth).
					MaxWidth(rowWidth).
					Render(row)
			}
		}
		rows = append(rows, row)
	}

	scrollbar := tui.RenderScrollbar(model.theme, visible,
		len(model.visible), visible, model.scrollOffset,
		model.focus == FocusList)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(rowWidth).Height(visible).Render(strings.Join(rows, "\n")),
		scrollbar,
	)
}

func (model Model) renderEmptyNotice() string {
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	switch {
	case model.loadErr != nil:
		errorStyle := lipgloss.NewStyle().Foreground(model.theme.ErrorForeground).Bold(true)
		return errorStyle.Render("Could not load persons: "+model.loadErr.Error()) +
			"\n" + faint.Render("press r to retry")
	case model.loading:
		return faint.Render("Loading persons…")
	case model.search.Input != "":
		return faint.Render(fmt.Sprintf("No persons match %q.", model.search.Input))
	}
	return faint.Render("No persons yet. Press a to add one.")
}

func (model Model) renderConfirm(record person.Record) []string {
	background := lipgloss.NewStyle().Background(model.theme.ModalBackground)
	prompt := background.Foreground(model.theme.ModalForeground).Bold(true).
		Render(fmt.Sprintf("Delete %s?", record.Name))
	hint := background.Foreground(model.theme.HelpText).Render("y delete  any other key cancels")

	innerWidth := max(lipgloss.Width(prompt), lipgloss.Width(hint))
	inner := tui.PadOverlayLine(prompt, innerWidth, background) + "\n" +
		tui.PadOverlayLine(hint, innerWidth, background)

	return strings.Split(lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(model.theme.ErrorForeground).
		BorderBackground(model.theme.ModalBackground).
		Render(inner), "\n")
}

// renderHeader renders the title rule with counts on the right.
//
// Example: ─── Persons ────────────────────── 2 shown  5 total ─
func (model Model) renderHeader() string {
	separatorStyle := lipgloss.NewStyle().Foreground(model.theme.BorderColor)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground)
	statsStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	left := separatorStyle.Render("───") + " " + titleStyle.Render("Persons") + " "
	stats := fmt.Sprintf("%d shown  %d total", len(model.visible), model.records.Len())
	if model.search.Input != "" {
		stats = fmt.Sprintf("search %q  ", model.search.Input) + stats
	}
	right := " " + statsStyle.Render(stats) + " " + separatorStyle.Render("─")

	fill := max(model.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + separatorStyle.Render(strings.Repeat("─", fill)) + right
}

// renderHelp renders the bottom bar: key hints, position, and the
// current status notice.
func (model Model) renderHelp() string {
	style := lipgloss.NewStyle().Foreground(model.theme.HelpText)

	focusIndicator := "LIST"
	hints := "q quit  ↑↓ navigate  / search  a add  e edit  d delete  r reload"
	switch model.focus {
	case FocusSearch:
		focusIndicator = "SEARCH"
		hints = "type to search  Enter done  Esc clear"
	case FocusForm:
		focusIndicator = "FORM"
		hints = "Tab next field  Ctrl+S save  Esc cancel"
	case FocusConfirmDelete:
		focusIndicator = "DELETE"
		hints = "y confirm  any key cancel"
	}
	help := fmt.Sprintf(" [%s] %s", focusIndicator, hints)

	if len(model.visible) > 0 {
		position := tui.ScrollPosition(len(model.visible), model.visibleHeight(), model.scrollOffset)
		if position != "" {
			help += fmt.Sprintf("  [%s]", position)
		}
		help += fmt.Sprintf("  %d/%d", model.cursor+1, len(model.visible))
	}

	if model.loading {
		help += "  " + lipgloss.NewStyle().
			Foreground(model.theme.BusyForeground).
			Bold(true).
			Render("loading…")
	}

	if model.status != "" {
		color := model.theme.NoticeForeground
		text := model.status
		if model.statusLevel == statusError {
			color = model.theme.ErrorForeground
			text = "Error: " + text
		}
		help += "  " + lipgloss.NewStyle().Foreground(color).Bold(true).Render(text)
	}

	return style.Render(help)
}
