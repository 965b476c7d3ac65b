package repl

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

// draft is an unsubmitted input line and its cursor.
type draft struct {
	text   string
	cursor int
}

func (m *model) capture() draft {
	return draft{text: m.input.Value(), cursor: m.input.Position()}
}

func (m *model) restore(d draft) {
	m.input.SetValue(d.text)
	m.input.SetCursor(d.cursor)
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "repl key",
		slog.String("key", msg.String()),
		slog.Int("type", int(msg.Type)),
	)

	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		if msg.Type == tea.KeyCtrlC {
			m.cycling, m.altNav = false, false
			m.recall = m.history.Len()
			m.input.SetValue("")
			refreshMatches(&m, false)
		}

		return m, nil

	case tea.KeyEnter:
		m.altNav = false

		if !m.cycling || len(m.comp.matches) == 0 {
			return m.executeInput()
		}

		// Enter while cycling keeps the candidate without running it.
		m.cycling = false
		refreshMatches(&m, true)

		return m, nil

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp, tea.KeyDown:
		dir := 1
		if msg.Type == tea.KeyUp {
			dir = -1
		}

		if msg.Alt {
			return m.browseCommands(dir), nil
		}

		return m.step(dir), nil

	case tea.KeyShiftUp:
		return m.seek(-1, m.mode), nil

	case tea.KeyShiftDown:
		return m.seek(1, m.mode), nil

	case tea.KeyEsc:
		if m.cycling {
			m.cycling = false
			m.restore(m.preCycle)
			refreshMatches(&m, false)

			return m, nil
		}

		m.altNav = false

		return m.toggleMode()

	case tea.KeyRunes:
		// Space accepts the candidate being cycled.
		if m.cycling && msg.String() == " " {
			m.cycling = false
		}

		return m.edit(msg, true)
	}

	m.cycling, m.altNav = false, false

	return m.edit(msg, false)
}

// edit passes msg to the input field. Any edit leaves history browsing.
func (m model) edit(msg tea.KeyMsg, autoConfirm bool) (model, tea.Cmd) {
	var cmd tea.Cmd

	m.recall = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, autoConfirm)

	return m, cmd
}

// cycle moves the completion selection by dir, wrapping at either end. A
// single candidate is accepted outright.
func (m model) cycle(dir int) model {
	n := len(m.comp.matches)

	switch {
	case n == 0:
		return m

	case n == 1:
		m.replaceWord(m.comp.matches[0].Str)
		m.cycling = false
		m.comp.selected = -1
		m.comp.matches = nil

		return m

	case !m.cycling:
		m.cycling = true
		m.preCycle = m.capture()
		m.comp.selected = 0

		if dir < 0 {
			m.comp.selected = n - 1
		}

	default:
		m.comp.selected = (m.comp.selected + dir + n) % n
	}

	m.replaceWord(m.comp.matches[m.comp.selected].Str)

	return m
}

// replaceWord substitutes the word being completed and moves the cursor past
// it.
func (m *model) replaceWord(word string) {
	input := m.input.Value()
	end := m.comp.start + len(word)

	m.input.SetValue(input[:m.comp.start] + word + input[m.comp.end:])
	m.input.SetCursor(end)
	m.comp.end = end
}

// refreshMatches recomputes completions for the word at the cursor. With
// autoConfirm, a word that already equals its only candidate is accepted.
// Deletions and cursor movement pass false so editing never completes
// unexpectedly.
func refreshMatches(m *model, autoConfirm bool) {
	c := &m.comp
	c.matches, c.candidates, c.start, c.end = m.computeMatches()

	if !m.cycling {
		c.selected = -1
	}

	if !autoConfirm || len(c.matches) != 1 {
		return
	}

	if only := c.matches[0].Str; m.input.Value()[c.start:c.end] == only {
		m.replaceWord(only)
		m.cycling = false
		c.selected = -1
		c.matches = nil
	}
}

// show displays history entry i, switching to its mode if follow is set.
func (m model) show(i int, follow bool) model {
	entry, err := m.history.GetEntry(i)
	if err != nil {
		return m
	}

	if follow && entry.Mode != m.mode {
		m, _ = m.switchToMode(entry.Mode)
	}

	m.recall = i
	m.input.SetValue(entry.Line)
	m.input.SetCursor(len(entry.Line))
	refreshMatches(&m, false)

	return m
}

// step moves one entry through the whole history, following each entry into
// its mode. Stepping past the newest entry clears the input.
func (m model) step(dir int) model {
	next := m.recall + dir

	switch {
	case next < 0:
		return m

	case next >= m.history.Len():
		m.recall = m.history.Len()
		m.input.SetValue("")
		refreshMatches(&m, false)

		return m
	}

	return m.show(next, true)
}

// seek moves to the nearest entry in direction dir that was entered in mode.
// Seeking forward past the last such entry clears the input.
func (m model) seek(dir int, mode inputMode) model {
	if i, ok := m.find(dir, mode); ok {
		return m.show(i, false)
	}

	if dir > 0 && m.recall < m.history.Len() {
		m.recall = m.history.Len()
		m.input.SetValue("")
		refreshMatches(&m, false)
	}

	return m
}

func (m model) find(dir int, mode inputMode) (int, bool) {
	for i := m.recall + dir; 0 <= i && i < m.history.Len(); i += dir {
		if entry, err := m.history.GetEntry(i); err == nil && entry.Mode == mode {
			return i, true
		}
	}

	return 0, false
}

// browseCommands walks the command history from either mode. Running off
// either end restores the mode and input that were current when browsing
// began.
func (m model) browseCommands(dir int) model {
	if !m.altNav {
		m.altNav = true
		m.preAlt = m.capture()
		m.preAltMode = m.mode

		if m.mode != modeCtrl {
			m, _ = m.switchToMode(modeCtrl)
		}
	}

	if i, ok := m.find(dir, modeCtrl); ok {
		return m.show(i, false)
	}

	m.altNav = false

	if m.preAltMode != m.mode {
		m, _ = m.switchToMode(m.preAltMode)
	}

	m.restore(m.preAlt)
	m.recall = m.history.Len()
	refreshMatches(&m, false)

	return m
}

func (m model) toggleMode() (model, tea.Cmd) {
	if m.mode == modeEval {
		return m.switchToMode(modeCtrl)
	}

	return m.switchToMode(modeEval)
}

// switchToMode saves the input of the current mode and restores the input
// last left in mode.
func (m model) switchToMode(mode inputMode) (model, tea.Cmd) {
	m.drafts[m.mode] = m.capture()
	m.mode = mode

	m.input.Prompt = promptStyle.Render(evalPrompt)
	if mode == modeCtrl {
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
	}

	m.restore(m.drafts[mode])
	refreshMatches(&m, false)

	return m, nil
}
