// Package model contains the Bubble Tea models backing the interactive
// CLI commands.
package model

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dollycam/dolly/internal/cinematic"
	"github.com/dollycam/dolly/internal/cli/styles"
	"github.com/dollycam/dolly/internal/director"
)

// PlayerModel plays a camera sequence in the terminal, acting as the
// host frame loop: every tick advances the director and renders the
// resulting pose.
type PlayerModel struct {
	ctx      context.Context
	dir      *director.Director
	rig      *TerminalRig
	seq      *cinematic.Sequence
	progress progress.Model
	theme    *styles.Theme

	tickRate int
	width    int
	done     bool
	started  time.Time
}

// TerminalRig captures the latest pose for rendering instead of driving
// a real camera.
type TerminalRig struct {
	state cinematic.CameraState
	set   bool
}

// Apply records the pose for the next View call.
func (r *TerminalRig) Apply(state cinematic.CameraState) {
	r.state = state
	r.set = true
}

// State returns the last applied pose.
func (r *TerminalRig) State() (cinematic.CameraState, bool) {
	return r.state, r.set
}

// NewPlayerModel creates a player for the given sequence. The director
// must already be armed (Start or Replay) with the same sequence.
func NewPlayerModel(ctx context.Context, theme *styles.Theme, dir *director.Director, rig *TerminalRig, seq *cinematic.Sequence, tickRate int) PlayerModel {
	if tickRate < 1 {
		tickRate = 60
	}
	return PlayerModel{
		ctx:      ctx,
		dir:      dir,
		rig:      rig,
		seq:      seq,
		theme:    theme,
		tickRate: tickRate,
		width:    80,
		progress: progress.New(progress.WithDefaultGradient()),
	}
}

type frameMsg time.Time

func (m PlayerModel) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.tickRate), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Init implements tea.Model.
func (m PlayerModel) Init() tea.Cmd {
	return m.tick()
}

// Update implements tea.Model.
func (m PlayerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = msg.Width - 8
		if m.progress.Width > 60 {
			m.progress.Width = 60
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit

		case "s":
			m.dir.Skip()

		case "r":
			m.dir.Replay(m.ctx, m.seq)
			m.done = false
			m.started = time.Time{}
			return m, m.tick()
		}

	case frameMsg:
		if m.done {
			return m, nil
		}
		now := time.Time(msg)
		if m.started.IsZero() {
			m.started = now
		}
		m.dir.Tick(now)
		if m.dir.Mode() != director.ModeCinematic {
			m.done = true
			return m, nil
		}
		return m, m.tick()
	}

	return m, nil
}

// View implements tea.Model.
func (m PlayerModel) View() string {
	var elapsed float64
	if !m.started.IsZero() {
		elapsed = time.Since(m.started).Seconds()
	}
	if elapsed > m.seq.Duration() {
		elapsed = m.seq.Duration()
	}

	header := m.theme.Title.Render(fmt.Sprintf("▶ %s", m.seq.Name())) + "  " +
		m.theme.Subtle.Render(fmt.Sprintf("%.1fs / %.1fs", elapsed, m.seq.Duration()))

	bar := m.progress.ViewAs(m.seq.Progress(elapsed))

	pose := m.theme.Subtle.Render("waiting for first frame")
	if state, ok := m.rig.State(); ok {
		pose = fmt.Sprintf("pos (%6.2f, %6.2f, %6.2f)   look (%6.2f, %6.2f, %6.2f)   fov %5.1f°",
			state.Position.X, state.Position.Y, state.Position.Z,
			state.Target.X, state.Target.Y, state.Target.Z,
			state.FOV)
		pose = m.theme.Normal.Render(pose)
	}

	status := m.theme.Subtle.Render("playing")
	if m.done {
		status = m.theme.SuccessStyle.Render("completed — camera handed back to orbit")
	}

	help := lipgloss.JoinHorizontal(lipgloss.Left,
		m.theme.HelpKey.Render("s"), m.theme.HelpDesc.Render(" skip  "),
		m.theme.HelpKey.Render("r"), m.theme.HelpDesc.Render(" replay  "),
		m.theme.HelpKey.Render("q"), m.theme.HelpDesc.Render(" quit"),
	)

	body := lipgloss.JoinVertical(lipgloss.Left, header, "", bar, "", pose, "", status, "", help)
	return m.theme.Box.Render(body) + "\n"
}
