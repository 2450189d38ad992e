// Package tui implements the interactive dashboard behind the -tui flag.
// It shows live worker progress, counter drift, and system stats while the
// demonstration runs, and surfaces the same comparison results as the CLI.
package tui

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	bprogress "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/darknoon/debugtargets/internal/config"
	"github.com/darknoon/debugtargets/internal/counter"
	apperrors "github.com/darknoon/debugtargets/internal/errors"
	"github.com/darknoon/debugtargets/internal/format"
	"github.com/darknoon/debugtargets/internal/metrics"
	"github.com/darknoon/debugtargets/internal/racedemo"
	"github.com/darknoon/debugtargets/internal/sysmon"
)

const tickInterval = 500 * time.Millisecond

// Model is the root bubbletea model for the dashboard.
type Model struct {
	keymap  KeyMap
	bar     bprogress.Model
	version string

	parentCtx context.Context
	ctx       context.Context
	cancel    context.CancelFunc

	cfg     config.AppConfig
	factory counter.Factory
	ref     *programRef

	width  int
	height int

	startTime  time.Time
	avg        float64
	eta        time.Duration
	mem        MemStatsMsg
	sys        SysStatsMsg
	results    []racedemo.RunResult
	final      *racedemo.RunResult
	runErr     error
	generation uint64
	paused     bool
	done       bool
	exitCode   int
}

// NewModel creates a dashboard model for the given configuration.
func NewModel(parentCtx context.Context, factory counter.Factory, cfg config.AppConfig, version string) Model {
	ctx, cancel := context.WithCancel(parentCtx)
	return Model{
		keymap:    DefaultKeyMap(),
		bar:       bprogress.New(bprogress.WithDefaultGradient()),
		version:   version,
		parentCtx: parentCtx,
		ctx:       ctx,
		cancel:    cancel,
		cfg:       cfg,
		factory:   factory,
		ref:       &programRef{},
		startTime: time.Now(),
		exitCode:  apperrors.ExitSuccess,
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startRunCmd(m.ref, m.ctx, m.factory, m.cfg, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = m.width/2 - 8
		return m, nil

	case ProgressMsg:
		if !m.paused {
			m.avg = msg.AverageProgress
			m.eta = msg.ETA
		}
		return m, nil

	case ProgressDoneMsg:
		m.avg = 1.0
		m.eta = 0
		return m, nil

	case ComparisonResultsMsg:
		m.results = msg.Results
		return m, nil

	case FinalResultMsg:
		res := msg.Result
		m.final = &res
		return m, nil

	case ErrorMsg:
		m.runErr = msg.Err
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		if m.paused {
			return m, tickCmd()
		}
		return m, tea.Batch(sampleMemStatsCmd(), sampleSysStatsCmd(), tickCmd())

	case MemStatsMsg:
		m.mem = msg
		return m, nil

	case SysStatsMsg:
		m.sys = msg
		return m, nil

	case RunCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from a previous run
		}
		m.done = true
		m.exitCode = msg.ExitCode
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		if m.cancel != nil {
			m.cancel()
		}

		m.generation++
		ctx, cancel := context.WithCancel(m.parentCtx)
		m.ctx = ctx
		m.cancel = cancel

		m.startTime = time.Now()
		m.avg = 0
		m.eta = 0
		m.results = nil
		m.final = nil
		m.runErr = nil
		m.done = false
		m.paused = false
		m.exitCode = apperrors.ExitSuccess

		return m, tea.Batch(
			tickCmd(),
			startRunCmd(m.ref, m.ctx, m.factory, m.cfg, m.generation),
			watchContextCmd(m.ctx, m.generation),
		)
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	header := headerStyle.Render("Shared Counter Dashboard") +
		versionStyle.Render(" "+m.version) +
		labelStyle.Render(fmt.Sprintf("  strategy=%s workers=%d iterations=%d",
			m.cfg.Sync, m.cfg.Workers, m.cfg.Iterations))

	var b strings.Builder
	b.WriteString(labelStyle.Render("Progress "))
	b.WriteString(m.bar.ViewAs(m.avg))
	b.WriteString(fmt.Sprintf(" %5.1f%%  ", m.avg*100))
	b.WriteString(labelStyle.Render("ETA " + format.FormatETA(m.eta)))
	progressPanel := panelStyle.Width(m.width - 2).Render(b.String())

	stats := fmt.Sprintf("%s %s  %s %d  %s %.1f%%  %s %.1f%%",
		labelStyle.Render("heap"), valueStyle.Render(metrics.FormatBytes(m.mem.Alloc)),
		labelStyle.Render("goroutines"), m.mem.NumGoroutine,
		labelStyle.Render("cpu"), m.sys.CPUPercent,
		labelStyle.Render("mem"), m.sys.MemPercent)
	statsPanel := panelStyle.Width(m.width - 2).Render(stats)

	resultsPanel := panelStyle.Width(m.width - 2).Render(m.renderResults())

	var status string
	switch {
	case m.runErr != nil:
		status = errorStyle.Render("ERROR: " + m.runErr.Error())
	case m.done:
		status = statusDoneStyle.Render("DONE")
	case m.paused:
		status = statusPauseStyle.Render("PAUSED")
	default:
		status = successStyle.Render(fmt.Sprintf("RUNNING %s", time.Since(m.startTime).Round(time.Second)))
	}
	footer := status + "  " +
		footerKeyStyle.Render("q") + footerDescStyle.Render(" quit  ") +
		footerKeyStyle.Render("p") + footerDescStyle.Render(" pause  ") +
		footerKeyStyle.Render("r") + footerDescStyle.Render(" restart")

	return lipgloss.JoinVertical(lipgloss.Left, header, progressPanel, statsPanel, resultsPanel, footer)
}

func (m Model) renderResults() string {
	if len(m.results) == 0 && m.final == nil {
		return labelStyle.Render("waiting for results...")
	}

	var b strings.Builder
	for i, res := range m.results {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(valueStyle.Render(fmt.Sprintf("%-8s", res.Strategy)))
		b.WriteString(fmt.Sprintf(" %10d / %d  %s  ",
			res.Actual, res.Expected, format.FormatExecutionDuration(res.Duration)))
		switch {
		case res.Err != nil:
			b.WriteString(errorStyle.Render("failed: " + res.Err.Error()))
		case res.Lost() > 0:
			b.WriteString(warningStyle.Render(fmt.Sprintf("lost %d (%.1f%%)", res.Lost(), res.LossPercent())))
		default:
			b.WriteString(successStyle.Render("exact"))
		}
	}

	if m.final != nil && len(m.results) == 0 {
		b.WriteString(fmt.Sprintf("Expected: %d\nActual:   %d", m.final.Expected, m.final.Actual))
		if m.final.Lost() > 0 {
			b.WriteString("\n" + warningStyle.Render(
				fmt.Sprintf("lost %d updates (%.1f%%)", m.final.Lost(), m.final.LossPercent())))
		}
	}

	return b.String()
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, factory counter.Factory, cfg config.AppConfig, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, factory, cfg, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so bridge goroutines can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}

	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// startRunCmd returns a tea.Cmd that launches the run orchestration.
// Counters are fetched fresh from the factory each generation so a restart
// never reuses an already incremented counter.
func startRunCmd(ref *programRef, ctx context.Context, factory counter.Factory, cfg config.AppConfig, gen uint64) tea.Cmd {
	return func() tea.Msg {
		counters, err := racedemo.GetCountersToRun(cfg.Sync, factory)
		if err != nil {
			ref.Send(ErrorMsg{Err: err})
			return RunCompleteMsg{ExitCode: apperrors.ExitCodeForError(err), Generation: gen}
		}

		reporter := &TUIProgressReporter{ref: ref}
		presenter := &TUIResultPresenter{ref: ref}

		results := racedemo.ExecuteRuns(ctx, counters, cfg.ToRunOptions(), reporter, io.Discard)
		exitCode := racedemo.AnalyzeComparisonResults(results, presenter, presenter, cfg.Verbose, io.Discard)

		return RunCompleteMsg{ExitCode: exitCode, Generation: gen}
	}
}

// tickCmd returns a command that sends a TickMsg after the tick interval.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleMemStatsCmd reads runtime memory stats and returns a MemStatsMsg.
func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		return MemStatsMsg{
			Alloc:        ms.Alloc,
			HeapSys:      ms.HeapSys,
			NumGC:        ms.NumGC,
			PauseTotalNs: ms.PauseTotalNs,
			NumGoroutine: runtime.NumGoroutine(),
		}
	}
}

// sampleSysStatsCmd reads system-wide CPU and memory stats.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{
			CPUPercent: s.CPUPercent,
			MemPercent: s.MemPercent,
		}
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
