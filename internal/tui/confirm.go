package tui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// confirmModel is a yes/no dialog run as its own bubbletea program.
//
// Navigation: left/right/tab move focus between Yes and No buttons.
// Enter activates the focused button. y/n/esc are shortcut accelerators.
type confirmModel struct {
	message   string
	focusYes  bool
	done      bool
	confirmed bool
}

func newConfirmModel(message string) confirmModel {
	// Yes is focused so Enter accepts the install.
	return confirmModel{message: message, focusYes: true}
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Yes):
		return m.finish(true)
	case key.Matches(keyMsg, keys.No), key.Matches(keyMsg, keys.Quit):
		return m.finish(false)
	case key.Matches(keyMsg, keys.Enter):
		return m.finish(m.focusYes)
	case key.Matches(keyMsg, keys.Left), key.Matches(keyMsg, keys.Right),
		key.Matches(keyMsg, keys.Tab):
		m.focusYes = !m.focusYes
	}
	return m, nil
}

func (m confirmModel) finish(confirmed bool) (tea.Model, tea.Cmd) {
	m.done = true
	m.confirmed = confirmed
	return m, tea.Quit
}

// View renders a bordered dialog with the message and Yes / No buttons.
// Nothing is left on screen once an answer was given.
func (m confirmModel) View() string {
	if m.done {
		return ""
	}

	var yesBtn, noBtn string
	if m.focusYes {
		yesBtn = dialogActiveButtonStyle.Render("Yes")
		noBtn = dialogButtonStyle.Render("No")
	} else {
		yesBtn = dialogButtonStyle.Render("Yes")
		noBtn = dialogActiveButtonStyle.Render("No")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Top, yesBtn, "  ", noBtn)
	help := helpStyle.Render("y/n  enter select  esc cancel")
	ui := lipgloss.JoinVertical(lipgloss.Left, m.message, "", buttons, "", help)
	return dialogBoxStyle.Render(ui) + "\n"
}

// Confirm asks a yes/no question. When in and out are both terminals an
// interactive dialog is shown; otherwise a line is read from in and only
// "y" or "yes" (case-insensitive) count as consent. EOF counts as no.
// Cancelling ctx abandons the prompt and returns ctx.Err().
func Confirm(ctx context.Context, in io.Reader, out io.Writer, message string) (bool, error) {
	if isTerminal(in) && isTerminal(out) {
		return confirmInteractive(ctx, in, out, message)
	}
	return confirmLine(ctx, in, out, message)
}

func confirmInteractive(ctx context.Context, in io.Reader, out io.Writer, message string) (bool, error) {
	p := tea.NewProgram(newConfirmModel(message),
		tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return false, fmt.Errorf("running prompt: %w", err)
	}
	m, ok := final.(confirmModel)
	return ok && m.confirmed, nil
}

type lineResult struct {
	answer string
	err    error
}

func confirmLine(ctx context.Context, in io.Reader, out io.Writer, message string) (bool, error) {
	if _, err := fmt.Fprintf(out, "%s [y/N] ", message); err != nil {
		return false, err
	}

	// The read cannot be interrupted, so it runs apart from the wait on ctx.
	read := make(chan lineResult, 1)
	go func() {
		answer, err := bufio.NewReader(in).ReadString('\n')
		read <- lineResult{answer, err}
	}()

	var res lineResult
	select {
	case <-ctx.Done():
		fmt.Fprintln(out)
		return false, ctx.Err()
	case res = <-read:
	}

	if res.err != nil && res.err != io.EOF {
		return false, fmt.Errorf("reading answer: %w", res.err)
	}
	if res.err == io.EOF && res.answer == "" {
		fmt.Fprintln(out)
	}

	switch strings.ToLower(strings.TrimSpace(res.answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func isTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
