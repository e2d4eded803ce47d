package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/diffsim/internal/dynamo"
	"github.com/san-kum/diffsim/internal/physics"
	"github.com/san-kum/diffsim/internal/sim"
)

const (
	defaultWidth    = 72
	defaultHeight   = 16
	historyCapacity = 600
	maxStepsFrame   = 4096
	frameInterval   = time.Second / 30
)

type TickMsg time.Time

// Model steps a diffusion run a few iterations per frame and draws the profile.
type Model struct {
	cfg     sim.Config
	setup   *sim.Setup
	cur     dynamo.Field
	next    dynamo.Field
	step    int
	t       float64
	perTick int
	running bool

	curvature []float64
	width     int
	height    int
}

// NewModel validates cfg exactly as a batch run would and starts at step zero.
func NewModel(cfg sim.Config, profiles *physics.Profiles) (Model, error) {
	setup, err := sim.New(profiles).Prepare(cfg)
	if err != nil {
		return Model{}, err
	}
	m := Model{
		cfg:     cfg,
		setup:   setup,
		perTick: 10,
		running: true,
		width:   defaultWidth,
		height:  defaultHeight,
	}
	m.reset()
	return m, nil
}

func (m Model) Init() tea.Cmd { return tick() }

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "space":
			m.running = !m.running
		case "r":
			m.reset()
		case "+", "=":
			m.perTick = min(m.perTick*2, maxStepsFrame)
		case "-", "_":
			m.perTick = max(m.perTick/2, 1)
		}
	case tea.WindowSizeMsg:
		m.width = max(msg.Width-50, 20)
		m.height = max(msg.Height-8, 5)
	case TickMsg:
		if m.running {
			m.advance(m.perTick)
		}
		return m, tick()
	}
	return m, nil
}

// advance applies up to n steps without passing cfg.Steps.
func (m *Model) advance(n int) {
	for i := 0; i < n && m.step < m.cfg.Steps; i++ {
		m.setup.Stepper.StepInto(m.next, m.cur)
		m.cur, m.next = m.next, m.cur
		m.step++
		m.t = float64(m.step) * m.setup.Dt
	}
	m.curvature = append(m.curvature, m.cur.MaxCurvature())
	if len(m.curvature) > historyCapacity {
		m.curvature = m.curvature[1:]
	}
	if m.step >= m.cfg.Steps {
		m.running = false
	}
}

func (m *Model) reset() {
	m.cur = m.setup.Initial.Clone()
	m.next = make(dynamo.Field, len(m.cur))
	m.step = 0
	m.t = 0
	m.curvature = []float64{m.cur.MaxCurvature()}
	m.running = m.cfg.Steps > 0
}

func (m Model) Step() int           { return m.step }
func (m Model) Time() float64       { return m.t }
func (m Model) Running() bool       { return m.running }
func (m Model) StepsPerFrame() int  { return m.perTick }
func (m Model) Field() dynamo.Field { return m.cur.Clone() }
func (m Model) Done() bool          { return m.step >= m.cfg.Steps }

func (m Model) View() string {
	plot := graphStyle.Render(PlotProfile(m.cur, m.width, m.height, "C(x)"))

	var s strings.Builder
	s.WriteString(HeaderStyle.Render(strings.ToUpper("diffusion / "+m.cfg.Profile)) + "\n\n")

	switch {
	case m.Done():
		s.WriteString(StatusDone.Render("DONE"))
	case m.running:
		s.WriteString(StatusRunning.Render("RUNNING"))
	default:
		s.WriteString(StatusPaused.Render("PAUSED"))
	}
	s.WriteString("\n\n")

	progress := 1.0
	if m.cfg.Steps > 0 {
		progress = float64(m.step) / float64(m.cfg.Steps)
	}
	s.WriteString(ProgressBar(progress, 24) + "\n\n")

	lo, hi := m.cur.Bounds()
	s.WriteString(Metric("Step", fmt.Sprintf("%d/%d", m.step, m.cfg.Steps)) + "\n")
	s.WriteString(Metric("Time", fmt.Sprintf("%.4f", m.t)) + "\n")
	s.WriteString(Metric("dt", fmt.Sprintf("%.6f", m.setup.Dt)) + "\n")
	s.WriteString(Metric("r", fmt.Sprintf("%.3f", m.setup.Diffusion.Coefficient())) + "\n")
	s.WriteString(Metric("Range", fmt.Sprintf("[%.3f, %.3f]", lo, hi)) + "\n")
	s.WriteString(Metric("Mass", fmt.Sprintf("%.4f", m.cur.Integral(m.cfg.Dx))) + "\n")
	s.WriteString(Metric("Curvature", fmt.Sprintf("%.3e", m.cur.MaxCurvature())) + "\n")
	s.WriteString(Metric("Steps/frame", fmt.Sprintf("%d", m.perTick)) + "\n\n")
	s.WriteString(SparkMid.Render(Sparkline(m.curvature, 30)) + "\n")

	s.WriteString(KeyHint.Render("\nSPACE pause  R reset  +/- speed  Q quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, plot, statsStyle.Render(s.String()))
}
