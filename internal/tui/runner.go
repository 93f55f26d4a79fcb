package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// ProgramRunner runs a model to completion and returns its final state.
type ProgramRunner func(ctx context.Context, model tea.Model) (tea.Model, error)

// NewProgramRunner returns a runner that drives models with bubbletea,
// reading keys from in and drawing on out.
func NewProgramRunner(in io.Reader, out io.Writer) ProgramRunner {
	return func(ctx context.Context, model tea.Model) (tea.Model, error) {
		p := tea.NewProgram(model,
			tea.WithContext(ctx),
			tea.WithInput(in),
			tea.WithOutput(out),
		)
		final, err := p.Run()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, fmt.Errorf("prompt failed: %w", err)
		}
		return final, nil
	}
}
