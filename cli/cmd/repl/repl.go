package repl

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/ctext/engine"
	"github.com/ardnew/ctext/engine/builtin"
	"github.com/ardnew/ctext/log"
)

const (
	evalPrompt = "➜ "
	ctrlPrompt = " :"
)

// previewLen is the longest value shown in full.
const previewLen = 450

const helpMessage = `
Commands (Esc switches between operator and command input):

  help        Show this message
  ops [name]  List operators, or show the usage of each name
  values      Show the current values
  vars        Show the session variables
  undo        Restore the values from before the last operator
  reset       Restore the initial values and clear variables
  clear       Clear the screen
  quit        Leave the REPL

Operators are entered as: name[selection] argument
The leading dash is optional, and the operator runs on every current value.

Keys:
  Tab, Shift-Tab        Cycle through completions
  Space                 Accept the completion being cycled
  Up, Down              Browse history, switching modes to match each entry
  Shift-Up, Shift-Down  Browse history of the current mode only
  Alt-Up, Alt-Down      Browse command history from either mode
  Ctrl-C                Clear the line, or leave the REPL when it is empty
  Ctrl-D                Leave the REPL when the line is empty
`

// inputMode selects whether input is an operator invocation or a command.
type inputMode int

const (
	modeEval inputMode = iota
	modeCtrl
)

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

var (
	promptStyle     = fg("6").Bold(true)
	ctrlPromptStyle = fg("5").Bold(true)
	inputStyle      = fg("15")
	resultStyle     = fg("2")
	warnStyle       = fg("3")
	errorStyle      = fg("1")
	hintStyle       = fg("8")
	suggestionStyle = fg("4")
	selectedStyle   = fg("0").Background(lipgloss.Color("4"))
)

// formatValues renders one numbered line per value.
func formatValues(values []string) string {
	if len(values) == 0 {
		return hintStyle.Render("(no values)")
	}

	lines := make([]string, len(values))

	for i, v := range values {
		index := hintStyle.Render(strconv.Itoa(i) + ":")

		if n := len([]rune(v)); n > previewLen {
			lines[i] = index + " " + warnStyle.Render(
				fmt.Sprintf("value is longer than %d characters (%d)", previewLen, n),
			)

			continue
		}

		lines[i] = index + " " + resultStyle.Render(strconv.Quote(v))
	}

	return strings.Join(lines, "\n")
}

// Config holds the settings of a REPL session.
type Config struct {
	// Values are the initial values. No values means a single empty one.
	Values []string
	// CacheDir holds the history file.
	CacheDir string
	Logger   log.Logger
	// Engine configures the session executor.
	Engine []engine.Option
	// Program configures the terminal program.
	Program []tea.ProgramOption
}

// completion is the state of the completion bar.
type completion struct {
	matches    fuzzy.Matches
	candidates []string
	start, end int // byte bounds of the word being completed
	selected   int // index into matches, or -1
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc    func() context.Context
	input      textinput.Model
	state      *state
	logger     log.Logger
	history    *History
	recall     int        // history entry shown, or history.Len() for a new line
	comp       completion // completion bar
	cycling    bool       // Tab is cycling through comp.matches
	preCycle   draft      // input before cycling began
	altNav     bool       // Alt-Up/Alt-Down is browsing command history
	preAlt     draft      // input before command browsing began
	preAltMode inputMode  // mode before command browsing began
	drafts     [2]draft   // unsubmitted input of each mode
	width      int
	quitting   bool
	mode       inputMode
}

// Run starts the REPL over a new session of the operators in reg and blocks
// until the user quits or ctx is done.
func Run(ctx context.Context, reg *engine.Registry, cfg Config) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)
	defer func() { cancel(err) }()

	history := NewHistory(filepath.Join(cfg.CacheDir, baseHistory))
	if err := history.Load(); err != nil {
		cfg.Logger.WarnContext(ctx, "could not load history", slog.Any("error", err))
	}

	cfg.Logger.TraceContext(ctx, "repl start",
		slog.String("history", history.path),
		slog.Int("history_len", history.Len()),
		slog.Int("values", len(cfg.Values)),
	)

	m := newModel(ctx, newState(reg, cfg.Values, cfg.Logger, cfg.Engine...), history, cfg.Logger)

	_, err = tea.NewProgram(m, append([]tea.ProgramOption{tea.WithContext(ctx)}, cfg.Program...)...).Run()

	return err
}

const (
	defaultWidth = 80
	maxLineLen   = 1024
)

func newModel(
	ctx context.Context,
	st *state,
	history *History,
	logger log.Logger,
) model {
	input := textinput.New()
	input.Prompt = promptStyle.Render(evalPrompt)
	input.CharLimit = maxLineLen
	input.Width = defaultWidth
	input.Focus()

	return model{
		ctxFunc: func() context.Context { return ctx },
		input:   input,
		state:   st,
		logger:  logger,
		history: history,
		recall:  history.Len(),
		comp:    completion{selected: -1},
		width:   defaultWidth,
		mode:    modeEval,
	}
}

// Init prints the initial values above the prompt.
func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.Println(formatValues(m.state.values)))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-lipgloss.Width(evalPrompt)-2, 1)

	default:
		m.input, cmd = m.input.Update(msg)
	}

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	return m.input.View() + "\n" + m.hintLine() + "\n"
}

// hintLine returns the line shown beneath the input.
func (m model) hintLine() string {
	input := m.input.Value()

	if m.recall < m.history.Len() {
		return hintStyle.Render(fmt.Sprintf("history %d/%d", m.recall+1, m.history.Len()))
	}

	if strings.TrimSpace(input) == "" {
		if m.mode == modeEval {
			return hintStyle.Render("Type an operator or press Esc for commands")
		}

		return hintStyle.Render(
			"Type: " + strings.Join(ctrlCommands, ", ") + " (press Esc to return)",
		)
	}

	if call := detectInvocation(input, m.input.Position()); call.inArg && m.mode == modeEval {
		if name, params, ok := getSignature(m.state.registry(), call.name); ok {
			return renderSignatureHint(name, params, call.argIndex)
		}
	}

	return renderCandidateBar(m.comp.matches, m.comp.selected, m.cycling, m.width)
}

// executeInput submits the input line in the current mode.
func (m model) executeInput() (model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		return m, nil
	}

	m.drafts = [2]draft{}
	m.input.SetValue("")

	if _, err := m.history.WriteWithMode(line, m.mode); err != nil {
		m.logger.WarnContext(m.ctxFunc(), "could not save history", slog.Any("error", err))
	}

	m.recall = m.history.Len()

	if m.mode == modeCtrl {
		return m.executeCommand(line)
	}

	m.logger.TraceContext(m.ctxFunc(), "repl eval", slog.String("line", line))

	cmds := []tea.Cmd{tea.Println(promptStyle.Render(evalPrompt) + inputStyle.Render(line))}

	printed, err := m.state.eval(m.ctxFunc(), line)
	if printed != "" {
		cmds = append(cmds, tea.Println(strings.TrimSuffix(printed, "\n")))
	}

	if err != nil {
		m.logger.DebugContext(m.ctxFunc(), "repl eval failed", slog.Any("error", err))
		cmds = append(cmds, tea.Println(errorStyle.Render("error: "+err.Error())))
	} else {
		cmds = append(cmds, tea.Println(formatValues(m.state.values)))
	}

	return m, tea.Sequence(cmds...)
}

// executeCommand runs a control command. Commands may be abbreviated to
// their first letter, except vars and reset.
func (m model) executeCommand(line string) (model, tea.Cmd) {
	name, args := line, []string(nil)
	if fields := strings.Fields(line); len(fields) > 0 {
		name, args = fields[0], fields[1:]
	}

	m.logger.TraceContext(m.ctxFunc(), "repl command",
		slog.String("command", name),
		slog.Any("args", args),
	)

	echo := tea.Println(ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(line))
	reply := func(text string) tea.Cmd {
		return tea.Sequence(echo, tea.Println(text))
	}

	switch name {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return m, reply(helpMessage)

	case "o", "ops":
		return m, reply(m.operators(args))

	case "v", "values":
		return m, reply(formatValues(m.state.values))

	case "vars":
		return m, reply(m.variables())

	case "u", "undo":
		if err := m.state.revert(); err != nil {
			return m, reply(errorStyle.Render(err.Error()))
		}

		return m, reply(formatValues(m.state.values))

	case "reset":
		m.state.reset()

		return m, reply(formatValues(m.state.values))

	case "c", "clear":
		return m, tea.ClearScreen
	}

	return m, reply(errorStyle.Render(fmt.Sprintf("unknown command %q (try help)", name)))
}

// operators lists every operator, or documents the operators named in args.
func (m model) operators(args []string) string {
	reg := m.state.registry()

	var b strings.Builder

	if len(args) == 0 {
		for _, op := range reg.All() {
			fmt.Fprintf(&b, "  %s %s\n", op.Name, hintStyle.Render(op.Description))
		}

		return b.String()
	}

	for _, name := range args {
		op, err := reg.Lookup(name)
		if err != nil {
			b.WriteString(errorStyle.Render(err.Error()) + "\n")

			continue
		}

		builtin.WriteUsage(&b, op)
	}

	return b.String()
}

// variables lists the session variables and their values.
func (m model) variables() string {
	vars := m.state.vars

	names := vars.Names()
	if len(names) == 0 {
		return hintStyle.Render("(no variables)")
	}

	var b strings.Builder

	for _, name := range names {
		value, _ := vars.Get(name)
		fmt.Fprintf(&b, "  %s = %s\n", name, resultStyle.Render(strconv.Quote(value)))
	}

	return b.String()
}
