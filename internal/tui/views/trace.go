package views

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/f3rmion/abc/internal/gesture"
	"github.com/f3rmion/abc/internal/lesson"
	"github.com/f3rmion/abc/internal/llm"
	"github.com/f3rmion/abc/internal/samples"
	"github.com/f3rmion/abc/internal/tui/bigchar"
)

// Trace view styles
var (
	traceTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	traceProgressStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#888888"))

	traceMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#4ecdc4")).
				Italic(true)

	traceCanvasStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#3d5a80"))

	traceGuideStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3d5a80"))

	traceInkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffe66d")).
			Bold(true)

	traceStartStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8e6cf")).
			Bold(true)

	traceEndStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	traceBannerStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#1a1a2e")).
				Background(lipgloss.Color("#a8e6cf")).
				Padding(1, 4)

	traceStatusStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#a8e6cf")).
				Bold(true)

	traceHintStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF6B6B")).
			Padding(0, 1)
)

// Rows above the first canvas cell: title, message, blank line, top border.
const (
	canvasTop  = 4
	canvasLeft = 1
)

type traceKeyMap struct {
	Say    key.Binding
	Toggle key.Binding
	Clear  key.Binding
	Next   key.Binding
	Prev   key.Binding
	Save   key.Binding
	Copy   key.Binding
	Hint   key.Binding
}

func (k traceKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Say, k.Toggle, k.Clear, k.Prev, k.Next, k.Save, k.Copy, k.Hint}
}

func (k traceKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Say, k.Toggle, k.Clear}, {k.Prev, k.Next}, {k.Save, k.Copy, k.Hint}}
}

var traceKeys = traceKeyMap{
	Say:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "say letter")),
	Toggle: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tracing on/off")),
	Clear:  key.NewBinding(key.WithKeys("c", "backspace"), key.WithHelp("c", "clear")),
	Next:   key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("→/n", "next")),
	Prev:   key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("←/p", "previous")),
	Save:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save sample")),
	Copy:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy JSON")),
	Hint:   key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hint")),
}

type celebrationDoneMsg struct{ seq int }

type speechDoneMsg struct{ err error }

type hintMsg struct {
	letter rune
	text   string
	err    error
}

// lastStroke is the most recent completed stroke, kept for saving and copying.
type lastStroke struct {
	letter  rune
	stroke  gesture.Stroke
	matched bool
}

// TraceModel is the tracing canvas view.
type TraceModel struct {
	deps Deps
	ctl  *lesson.Controller
	help help.Model

	width, height    int
	originX, originY int // screen cell of the content area's top-left corner

	last        lastStroke
	celebrating rune
	celebSeq    int

	status    string
	statusSeq int

	hint        string
	hintLoading bool
}

// NewTraceModel creates the trace view.
func NewTraceModel(deps Deps) TraceModel {
	return TraceModel{
		deps: deps,
		ctl:  deps.Config.NewController(deps.Speech, deps.Tones),
		help: help.New(),
	}
}

// Init announces the first letter when auto speak is on.
func (m TraceModel) Init() tea.Cmd {
	if m.ctl.AutoSpeak() {
		return m.speak(m.ctl.Announce())
	}
	return nil
}

// Controller exposes the lesson state.
func (m TraceModel) Controller() *lesson.Controller { return m.ctl }

// Celebrating returns the letter whose success banner is showing, or 0.
func (m TraceModel) Celebrating() rune { return m.celebrating }

// SetSize updates the view dimensions.
func (m *TraceModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
}

// SetOrigin tells the view where its content starts on screen, so mouse
// coordinates can be mapped onto the canvas.
func (m *TraceModel) SetOrigin(x, y int) {
	m.originX = x
	m.originY = y
}

// Select jumps to a letter.
func (m *TraceModel) Select(letter rune) tea.Cmd {
	if !m.ctl.Select(letter) {
		return nil
	}
	m.celebrating = 0
	m.hint = ""
	return m.autoSpeak()
}

// Reconfigure rebuilds the controller after a settings change, keeping the
// current letter.
func (m *TraceModel) Reconfigure() {
	letter := m.ctl.Letter()
	m.ctl = m.deps.Config.NewController(m.deps.Speech, m.deps.Tones)
	m.ctl.Select(letter)
}

func (m TraceModel) canvasSize() (cols, rows int) {
	// Borders, plus message, status and help lines below the canvas.
	cols = max(m.width-2, 10)
	rows = max(m.height-canvasTop-1-3, 5)
	return cols, rows
}

// toCanvas maps a screen cell to canvas coordinates. Points outside are
// clamped to the edge and reported as outside.
func (m TraceModel) toCanvas(x, y int) (gesture.Point, bool) {
	cols, rows := m.canvasSize()
	cx := x - m.originX - canvasLeft
	cy := y - m.originY - canvasTop
	inside := cx >= 0 && cx < cols && cy >= 0 && cy < rows
	cx = max(0, min(cx, cols-1))
	cy = max(0, min(cy, rows-1))
	return gesture.Point{X: float64(cx), Y: float64(cy)}, inside
}

// Update handles messages.
func (m TraceModel) Update(msg tea.Msg) (TraceModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.celebrating != 0 {
			return m, nil
		}
		switch {
		case key.Matches(msg, traceKeys.Say):
			return m, m.speak(m.ctl.Announce())
		case key.Matches(msg, traceKeys.Toggle):
			m.ctl.ToggleTracing()
			return m, nil
		case key.Matches(msg, traceKeys.Clear):
			m.ctl.Clear()
			return m, nil
		case key.Matches(msg, traceKeys.Next):
			m.ctl.Next()
			m.hint = ""
			return m, m.autoSpeak()
		case key.Matches(msg, traceKeys.Prev):
			m.ctl.Prev()
			m.hint = ""
			return m, m.autoSpeak()
		case key.Matches(msg, traceKeys.Save):
			return m.saveSample()
		case key.Matches(msg, traceKeys.Copy):
			return m.copyStroke()
		case key.Matches(msg, traceKeys.Hint):
			return m.requestHint()
		}

	case celebrationDoneMsg:
		if msg.seq != m.celebSeq {
			return m, nil
		}
		m.celebrating = 0
		return m, m.autoSpeak()

	case speechDoneMsg:
		if msg.err != nil {
			log.Printf("speech: %v", msg.err)
		}
		return m, nil

	case hintMsg:
		m.hintLoading = false
		if msg.err != nil {
			log.Printf("hint: %v", msg.err)
			return m.setStatus("Hint failed: " + msg.err.Error())
		}
		if msg.letter == m.ctl.Letter() {
			m.hint = msg.text
		}
		return m, nil

	case SampleSavedMsg:
		if msg.Err != nil {
			return m.setStatus("Save failed: " + msg.Err.Error())
		}
		return m.setStatus(fmt.Sprintf("Saved sample of %c", msg.Sample.Letter))

	case clearStatusMsg:
		if msg.view == "trace" && msg.seq == m.statusSeq {
			m.status = ""
		}
	}
	return m, nil
}

func (m TraceModel) handleMouse(msg tea.MouseMsg) (TraceModel, tea.Cmd) {
	if m.celebrating != 0 {
		return m, nil
	}
	p, inside := m.toCanvas(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inside {
			return m, nil
		}
		m.ctl.Handle(lesson.PointerEvent{Kind: lesson.PointerDown, Point: p})

	case tea.MouseActionMotion:
		if !m.ctl.Drawing() {
			return m, nil
		}
		if last, ok := m.ctl.LastPoint(); ok && last == p {
			return m, nil
		}
		m.ctl.Handle(lesson.PointerEvent{Kind: lesson.PointerMove, Point: p})

	case tea.MouseActionRelease:
		if !m.ctl.Drawing() {
			return m, nil
		}
		stroke := m.ctl.Path()
		out, _ := m.ctl.Handle(lesson.PointerEvent{Kind: lesson.PointerUp, Point: p})
		return m.afterStroke(out, stroke)
	}
	return m, nil
}

func (m TraceModel) afterStroke(out lesson.Outcome, stroke gesture.Stroke) (TraceModel, tea.Cmd) {
	if out.Kind == lesson.OutcomeIgnored {
		return m, nil
	}
	m.last = lastStroke{letter: out.Expected, stroke: stroke, matched: out.Kind == lesson.OutcomeMatched}
	log.Printf("stroke: letter=%c points=%d outcome=%s", out.Expected, out.Points, out.Kind)

	cmds := []tea.Cmd{m.feedback(out)}
	if out.Kind == lesson.OutcomeMatched {
		m.hint = ""
		m.celebrating = out.Expected
		m.celebSeq++
		seq := m.celebSeq
		cmds = append(cmds, tea.Tick(m.deps.Config.CelebrationDuration(), func(time.Time) tea.Msg {
			return celebrationDoneMsg{seq: seq}
		}))
	}
	return m, tea.Batch(cmds...)
}

func (m TraceModel) feedback(out lesson.Outcome) tea.Cmd {
	ctl := m.ctl
	return func() tea.Msg {
		return speechDoneMsg{err: ctl.Feedback(context.Background(), out)}
	}
}

func (m TraceModel) speak(text string) tea.Cmd {
	ctl := m.ctl
	return func() tea.Msg {
		return speechDoneMsg{err: ctl.Speak(context.Background(), text)}
	}
}

func (m TraceModel) autoSpeak() tea.Cmd {
	if !m.ctl.AutoSpeak() {
		return nil
	}
	return m.speak(m.ctl.Announce())
}

func (m TraceModel) setStatus(s string) (TraceModel, tea.Cmd) {
	m.status = s
	m.statusSeq++
	return m, clearStatusAfter("trace", m.statusSeq, 2*time.Second)
}

func (m TraceModel) lastSample() (samples.Sample, bool) {
	if len(m.last.stroke) == 0 {
		return samples.Sample{}, false
	}
	return samples.Sample{
		Letter:  m.last.letter,
		Stroke:  m.last.stroke,
		Matched: m.last.matched,
		Source:  "tui",
	}, true
}

func (m TraceModel) saveSample() (TraceModel, tea.Cmd) {
	smp, ok := m.lastSample()
	if !ok {
		return m.setStatus("Trace a letter first")
	}
	if m.deps.Samples == nil {
		return m.setStatus("Sample store unavailable")
	}
	store := m.deps.Samples
	return m, func() tea.Msg {
		err := store.Save(context.Background(), &smp)
		return SampleSavedMsg{Sample: smp, Err: err}
	}
}

func (m TraceModel) copyStroke() (TraceModel, tea.Cmd) {
	smp, ok := m.lastSample()
	if !ok {
		return m.setStatus("Trace a letter first")
	}
	data, err := json.Marshal(smp)
	if err != nil {
		return m.setStatus("Copy failed: " + err.Error())
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		return m.setStatus("Copy failed: " + err.Error())
	}
	return m.setStatus("Copied stroke JSON")
}

func (m TraceModel) requestHint() (TraceModel, tea.Cmd) {
	if m.deps.Hints == nil {
		return m.setStatus("Set ANTHROPIC_API_KEY to get hints")
	}
	if m.hintLoading {
		return m, nil
	}
	m.hintLoading = true
	letter := m.ctl.Letter()
	info := m.ctl.Language().Info(letter)
	req := llm.HintRequest{
		Letter:        letter,
		Pronunciation: info.Pronunciation,
		Example:       info.Example,
		Language:      m.ctl.Language().Name,
		Attempts:      m.ctl.Attempts(),
	}
	hints := m.deps.Hints
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		text, err := hints(ctx, req)
		return hintMsg{letter: letter, text: text, err: err}
	}
}

// View renders the trace view.
func (m TraceModel) View() string {
	var b strings.Builder

	letter := m.ctl.Letter()
	title := traceTitleStyle.Render(fmt.Sprintf("Trace the letter %c", letter))
	progress := traceProgressStyle.Render(fmt.Sprintf("  %d/%d", m.ctl.Index()+1, len(lesson.Alphabet)))
	if m.ctl.Attempts() > 0 {
		progress += traceProgressStyle.Render(fmt.Sprintf("  attempts: %d", m.ctl.Attempts()))
	}
	if !m.ctl.Tracing() {
		progress += traceProgressStyle.Render("  tracing off")
	}
	b.WriteString(title + progress + "\n")

	cols, rows := m.canvasSize()
	b.WriteString(traceMessageStyle.Render(runewidth.Truncate(m.ctl.Message(), cols, "…")))
	b.WriteString("\n\n")

	if m.celebrating != 0 {
		b.WriteString(traceCanvasStyle.Render(m.renderBanner(cols, rows)))
	} else {
		b.WriteString(traceCanvasStyle.Render(m.renderCanvas(cols, rows)))
	}
	b.WriteString("\n")

	switch {
	case m.hintLoading:
		b.WriteString(traceProgressStyle.Render("Thinking of a hint..."))
	case m.hint != "":
		b.WriteString(traceHintStyle.Render(m.hint))
	case m.status != "":
		b.WriteString(traceStatusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(traceKeys))
	return b.String()
}

func (m TraceModel) renderBanner(cols, rows int) string {
	banner := traceBannerStyle.Render(fmt.Sprintf("★  %c  ★\n\n%s", m.celebrating, m.ctl.Message()))
	return lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center, banner)
}

// renderCanvas draws the guide letter with the current stroke on top.
func (m TraceModel) renderCanvas(cols, rows int) string {
	guide, err := bigchar.LetterMask(m.ctl.Letter(), cols, rows)
	if err != nil {
		log.Printf("guide letter: %v", err)
	}

	type cell int
	const (
		empty cell = iota
		guideCell
		inkCell
		startCell
		endCell
	)
	grid := make([][]cell, rows)
	for y := range grid {
		grid[y] = make([]cell, cols)
		for x := range grid[y] {
			if guide != nil && guide[y][x] {
				grid[y][x] = guideCell
			}
		}
	}

	set := func(p gesture.Point, c cell) {
		x, y := int(p.X), int(p.Y)
		if y >= 0 && y < rows && x >= 0 && x < cols {
			grid[y][x] = c
		}
	}
	path := m.ctl.Path()
	for i, p := range path {
		if i > 0 {
			for _, q := range cellsBetween(path[i-1], p) {
				set(q, inkCell)
			}
		}
		set(p, inkCell)
	}
	if len(path) > 0 {
		if !m.ctl.Drawing() && len(path) > 1 {
			set(path[len(path)-1], endCell)
		}
		set(path[0], startCell)
	}

	var b strings.Builder
	for y, row := range grid {
		for _, c := range row {
			switch c {
			case guideCell:
				b.WriteString(traceGuideStyle.Render("░"))
			case inkCell:
				b.WriteString(traceInkStyle.Render("●"))
			case startCell:
				b.WriteString(traceStartStyle.Render("◉"))
			case endCell:
				b.WriteString(traceEndStyle.Render("◎"))
			default:
				b.WriteByte(' ')
			}
		}
		if y < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// cellsBetween fills the gap between two cells so fast mouse movement still
// draws a continuous line.
func cellsBetween(a, b gesture.Point) []gesture.Point {
	dx, dy := b.X-a.X, b.Y-a.Y
	steps := int(max(abs(dx), abs(dy)))
	if steps <= 1 {
		return nil
	}
	out := make([]gesture.Point, 0, steps-1)
	for i := 1; i < steps; i++ {
		t := float64(i) / float64(steps)
		out = append(out, gesture.Point{X: float64(int(a.X + t*dx + 0.5)), Y: float64(int(a.Y + t*dy + 0.5))})
	}
	return out
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
