package tui

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvka-141/frameseq/internal/tui/components"
	"github.com/vvka-141/frameseq/pkg/frameseq"
)

// Conflict resolutions offered for an existing target.
const (
	ChoiceOverwrite = "overwrite"
	ChoiceSkip      = "skip"
	ChoiceAll       = "all"
	ChoiceAbort     = "abort"
)

func conflictOptions() []components.Option {
	return []components.Option{
		{Label: "Overwrite", Description: "Replace this file", Value: ChoiceOverwrite},
		{Label: "Skip", Description: "Keep the existing file", Value: ChoiceSkip},
		{Label: "Overwrite all", Description: "Replace this and every later conflict", Value: ChoiceAll},
		{Label: "Abort", Description: "Stop the transfer", Value: ChoiceAbort},
	}
}

// conflictModel wraps a Selector with single-key shortcuts.
type conflictModel struct {
	selector components.Selector
	keys     ConflictKeyMap
}

func newConflictModel(target string) conflictModel {
	keys := DefaultConflictKeyMap()
	title := fmt.Sprintf("%s already exists", target)
	return conflictModel{
		selector: components.NewSelector(title, conflictOptions()).WithHelp(keys.HelpText()),
		keys:     keys,
	}
}

func (m conflictModel) Init() tea.Cmd { return nil }

func (m conflictModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Overwrite):
			m.selector = m.selector.Choose(ChoiceOverwrite)
			return m, tea.Quit
		case key.Matches(msg, m.keys.Skip):
			m.selector = m.selector.Choose(ChoiceSkip)
			return m, tea.Quit
		case key.Matches(msg, m.keys.All):
			m.selector = m.selector.Choose(ChoiceAll)
			return m, tea.Quit
		case key.Matches(msg, m.keys.Abort):
			m.selector = m.selector.Choose(ChoiceAbort)
			return m, tea.Quit
		}
	}
	updated, cmd := m.selector.Update(msg)
	m.selector = updated.(components.Selector)
	return m, cmd
}

func (m conflictModel) View() string {
	return m.selector.View()
}

// choice returns the picked resolution. A prompt closed without a pick
// counts as an abort.
func (m conflictModel) choice() string {
	if !m.selector.Submitted() {
		return ChoiceAbort
	}
	return m.selector.Value()
}

// ConflictApprover asks, through a terminal selector, what to do with a
// transfer target that already exists.
type ConflictApprover struct {
	run ProgramRunner

	mu     sync.Mutex
	always bool
}

// NewConflictApprover creates an approver drawing on stderr.
func NewConflictApprover() *ConflictApprover {
	return NewConflictApproverWithRunner(NewProgramRunner(os.Stdin, os.Stderr))
}

// NewConflictApproverWithRunner creates an approver with a custom program runner.
func NewConflictApproverWithRunner(run ProgramRunner) *ConflictApprover {
	return &ConflictApprover{run: run}
}

// RequestApproval implements frameseq.Approver.
func (a *ConflictApprover) RequestApproval(ctx context.Context, target string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.always {
		return true, nil
	}

	final, err := a.run(ctx, newConflictModel(target))
	if err != nil {
		return false, err
	}
	m, ok := final.(conflictModel)
	if !ok {
		return false, fmt.Errorf("unexpected prompt model %T", final)
	}

	switch m.choice() {
	case ChoiceOverwrite:
		return true, nil
	case ChoiceAll:
		a.always = true
		return true, nil
	case ChoiceSkip:
		return false, nil
	default:
		return false, fmt.Errorf("overwrite of %s: %w", target, frameseq.ErrApprovalDenied)
	}
}

var _ frameseq.Approver = (*ConflictApprover)(nil)
