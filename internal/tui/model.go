package tui

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	bprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibnum/internal/config"
	apperrors "github.com/agbru/fibnum/internal/errors"
	"github.com/agbru/fibnum/internal/fibonacci"
	"github.com/agbru/fibnum/internal/format"
	"github.com/agbru/fibnum/internal/metrics"
	"github.com/agbru/fibnum/internal/orchestration"
	"github.com/agbru/fibnum/internal/sysmon"
)

const (
	tickInterval  = 500 * time.Millisecond
	minBarWidth   = 10
	maxBarWidth   = 60
	resultDigits  = 20
	nameColumnMin = 12
)

var (
	memCollector = metrics.NewMemoryCollector()
	sysSampler   = sysmon.NewSampler()
)

// Model is the root bubbletea model of the dashboard.
type Model struct {
	header  HeaderModel
	metrics MetricsModel
	spinner spinner.Model
	help    help.Model
	keymap  KeyMap
	bar     bprogress.Model

	calculators []fibonacci.Calculator
	values      []float64
	average     float64
	eta         time.Duration
	results     []orchestration.CalculationResult
	final       *FinalResultMsg
	failure     *ErrorMsg

	parentCtx  context.Context
	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64
	done       bool
	paused     bool
	exitCode   int

	cfg   config.AppConfig
	ref   *programRef
	width int
}

// NewModel creates the dashboard for one set of calculators.
func NewModel(parentCtx context.Context, calculators []fibonacci.Calculator, cfg config.AppConfig, version string) Model {
	ctx, cancel := context.WithCancel(parentCtx)
	return Model{
		header:      NewHeaderModel(version, cfg.N, cfg.LimbBits),
		metrics:     NewMetricsModel(),
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(accentStyle)),
		help:        help.New(),
		keymap:      DefaultKeyMap(),
		bar:         newBar(maxBarWidth),
		calculators: calculators,
		values:      make([]float64, len(calculators)),
		parentCtx:   parentCtx,
		ctx:         ctx,
		cancel:      cancel,
		exitCode:    apperrors.ExitSuccess,
		cfg:         cfg,
		ref:         &programRef{},
	}
}

func newBar(width int) bprogress.Model {
	opts := []bprogress.Option{bprogress.WithWidth(width), bprogress.WithoutPercentage()}
	if barColorStart != "" {
		opts = append(opts, bprogress.WithGradient(barColorStart, barColorEnd))
	}
	return bprogress.New(opts...)
}

// Init starts the run, the spinner and the sampling ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		tickCmd(),
		startCalculationCmd(m.ref, m.ctx, m.calculators, m.cfg, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.header.SetWidth(msg.Width)
		m.metrics.SetWidth(msg.Width)
		m.help.Width = msg.Width
		m.bar.Width = min(max(msg.Width-nameColumnMin-24, minBarWidth), maxBarWidth)
		return m, nil

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ProgressMsg:
		if m.paused {
			return m, nil
		}
		if i := msg.CalculatorIndex; i >= 0 && i < len(m.values) {
			m.values[i] = min(max(msg.Value, 0), 1)
		}
		m.average = msg.AverageProgress
		m.eta = msg.ETA
		m.metrics.UpdateProgress(msg.AverageProgress)
		return m, nil

	case ComparisonResultsMsg:
		m.results = msg.Results
		return m, nil

	case FinalResultMsg:
		m.final = &msg
		return m, nil

	case ErrorMsg:
		m.failure = &msg
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		if m.paused {
			return m, tickCmd()
		}
		return m, tea.Batch(sampleMemStatsCmd(), tickCmd())

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil

	case CalculationCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		m.exitCode = msg.ExitCode
		m.header.SetDone()
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		m.header.SetDone()
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		return m, nil

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keymap.Restart):
		m.cancel()
		m.generation++
		m.ctx, m.cancel = context.WithCancel(m.parentCtx)

		m.header.Reset()
		m.metrics = NewMetricsModel()
		m.metrics.SetWidth(m.width)
		m.values = make([]float64, len(m.calculators))
		m.average, m.eta = 0, 0
		m.results, m.final, m.failure = nil, nil, nil
		m.done, m.paused = false, false
		m.exitCode = apperrors.ExitSuccess

		return m, tea.Batch(
			m.spinner.Tick,
			tickCmd(),
			startCalculationCmd(m.ref, m.ctx, m.calculators, m.cfg, m.generation),
			watchContextCmd(m.ctx, m.generation),
		)
	}
	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}
	sections := []string{m.header.View(), m.progressView()}
	if len(m.results) > 0 {
		sections = append(sections, m.resultsView())
	}
	sections = append(sections, m.metrics.View(), m.statusLine(), m.help.View(m.keymap))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) nameWidth() int {
	w := nameColumnMin
	for _, c := range m.calculators {
		w = max(w, lipgloss.Width(c.Name()))
	}
	return w
}

func (m Model) progressView() string {
	nw := m.nameWidth()
	var b strings.Builder
	for i, c := range m.calculators {
		fmt.Fprintf(&b, "%-*s %s %5.1f%%\n", nw, c.Name(), m.bar.ViewAs(m.values[i]), m.values[i]*100)
	}
	if len(m.calculators) > 1 {
		fmt.Fprintf(&b, "%-*s %s %5.1f%%\n", nw, "average", m.bar.ViewAs(m.average), m.average*100)
	}
	return panelStyle.Render(strings.TrimSuffix(b.String(), "\n"))
}

func (m Model) resultsView() string {
	nw := m.nameWidth()
	var b strings.Builder
	b.WriteString(tableHeadStyle.Render(fmt.Sprintf("%-*s %-12s %s", nw, "Algorithm", "Duration", "Status")))
	for _, r := range m.results {
		status := successStyle.Render("ok")
		if r.Err != nil {
			status = errorStyle.Render("failed: " + r.Err.Error())
		}
		fmt.Fprintf(&b, "\n%-*s %-12s %s", nw, r.Name, format.FormatExecutionDuration(r.Duration), status)
	}
	if m.final != nil && m.final.Result.Result != nil {
		v := m.final.Result.Result
		digits := v.String()
		fmt.Fprintf(&b, "\n\n%s %s", labelStyle.Render(fmt.Sprintf("F(%d)", m.final.Opts.N)), valueStyle.Render(format.TruncateDigits(digits, resultDigits)))
		fmt.Fprintf(&b, "\n%s %d digits, %d bits, %s",
			labelStyle.Render("Size"), len(digits), v.BitLen(), format.FormatThroughput(v.BitLen(), m.final.Result.Duration))
	}
	if m.failure != nil {
		fmt.Fprintf(&b, "\n\n%s", errorStyle.Render(m.failure.Err.Error()))
	}
	return panelStyle.Render(b.String())
}

func (m Model) statusLine() string {
	switch {
	case m.done && m.exitCode == apperrors.ExitSuccess:
		return successStyle.Render("✓ done") + dimStyle.Render(" · press r to run again")
	case m.done:
		return errorStyle.Render(fmt.Sprintf("✗ finished with exit code %d", m.exitCode))
	case m.paused:
		return warningStyle.Render("paused")
	}
	return m.spinner.View() + " computing" + dimStyle.Render(" · ETA "+format.FormatETA(m.eta))
}

// Run starts the dashboard and returns the exit code of the last run.
func Run(ctx context.Context, calculators []fibonacci.Calculator, cfg config.AppConfig, version string) int {
	initTUIStyles()

	model := NewModel(ctx, calculators, cfg, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.ref.SetProgram(p)

	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return apperrors.ExitErrorCanceled
		}
		return apperrors.ExitErrorGeneric
	}
	if fm, ok := final.(Model); ok {
		fm.cancel()
		return fm.exitCode
	}
	return apperrors.ExitSuccess
}

// startCalculationCmd runs the orchestration and reports its exit code.
func startCalculationCmd(ref *programRef, ctx context.Context, calculators []fibonacci.Calculator, cfg config.AppConfig, gen uint64) tea.Cmd {
	return func() tea.Msg {
		presenter := &TUIResultPresenter{ref: ref}
		results := orchestration.ExecuteCalculations(ctx, calculators, cfg.N, cfg.ToCalculationOptions(),
			&TUIProgressReporter{ref: ref}, io.Discard)
		opts := orchestration.PresentationOptions{
			N: cfg.N, Verbose: cfg.Verbose, Details: cfg.Details, Hex: cfg.HexOutput, LimbBits: cfg.LimbBits,
		}
		code := orchestration.AnalyzeComparisonResults(results, opts, presenter, presenter, io.Discard)
		return CalculationCompleteMsg{ExitCode: code, Generation: gen}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		return MemStatsMsg{
			MemorySnapshot: memCollector.Snapshot(),
			NumGoroutine:   runtime.NumGoroutine(),
			System:         sysSampler.Sample(),
		}
	}
}

func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
