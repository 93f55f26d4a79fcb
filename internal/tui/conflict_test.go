package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/frameseq/pkg/frameseq"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m conflictModel, msgs ...tea.Msg) (conflictModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var updated tea.Model
		updated, cmd = m.Update(msg)
		m = updated.(conflictModel)
	}
	return m, cmd
}

func TestConflictModel_Shortcuts(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.Msg
		want string
	}{
		{"y overwrites", runes("y"), ChoiceOverwrite},
		{"n skips", runes("n"), ChoiceSkip},
		{"s skips", runes("s"), ChoiceSkip},
		{"a overwrites all", runes("a"), ChoiceAll},
		{"q aborts", runes("q"), ChoiceAbort},
		{"esc aborts", tea.KeyMsg{Type: tea.KeyEsc}, ChoiceAbort},
		{"ctrl+c aborts", tea.KeyMsg{Type: tea.KeyCtrlC}, ChoiceAbort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, cmd := press(t, newConflictModel("out/a.1.exr"), tt.msg)
			assert.Equal(t, tt.want, m.choice())
			assert.NotNil(t, cmd, "shortcut should quit the program")
		})
	}
}

func TestConflictModel_NavigateAndSelect(t *testing.T) {
	m, cmd := press(t, newConflictModel("out/a.1.exr"),
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyEnter},
	)

	assert.Equal(t, ChoiceAll, m.choice())
	assert.NotNil(t, cmd)
}

func TestConflictModel_UnansweredCountsAsAbort(t *testing.T) {
	m, cmd := press(t, newConflictModel("out/a.1.exr"), tea.KeyMsg{Type: tea.KeyDown})

	assert.Equal(t, ChoiceAbort, m.choice())
	assert.Nil(t, cmd)
}

func TestConflictModel_ViewNamesTarget(t *testing.T) {
	view := newConflictModel("out/a.1.exr").View()

	assert.Contains(t, view, "out/a.1.exr already exists")
	assert.Contains(t, view, "Overwrite all")
	assert.Contains(t, view, "q abort")
}

// scriptedRunner feeds fixed key presses to the model instead of a terminal.
func scriptedRunner(calls *int, msgs ...tea.Msg) ProgramRunner {
	return func(ctx context.Context, model tea.Model) (tea.Model, error) {
		*calls++
		for _, msg := range msgs {
			model, _ = model.Update(msg)
		}
		return model, nil
	}
}

func TestConflictApprover_Choices(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		approved bool
		denied   bool
	}{
		{"overwrite", "y", true, false},
		{"skip", "n", false, false},
		{"abort", "q", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			a := NewConflictApproverWithRunner(scriptedRunner(&calls, runes(tt.key)))

			approved, err := a.RequestApproval(context.Background(), "out/a.1.exr")
			assert.Equal(t, tt.approved, approved)
			if tt.denied {
				require.Error(t, err)
				assert.True(t, errors.Is(err, frameseq.ErrApprovalDenied))
				assert.True(t, strings.Contains(err.Error(), "out/a.1.exr"))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestConflictApprover_AllStopsPrompting(t *testing.T) {
	calls := 0
	a := NewConflictApproverWithRunner(scriptedRunner(&calls, runes("a")))

	for i := 0; i < 3; i++ {
		approved, err := a.RequestApproval(context.Background(), "out/a.1.exr")
		require.NoError(t, err)
		assert.True(t, approved)
	}
	assert.Equal(t, 1, calls)
}

func TestConflictApprover_RunnerError(t *testing.T) {
	a := NewConflictApproverWithRunner(func(ctx context.Context, model tea.Model) (tea.Model, error) {
		return nil, context.Canceled
	})

	approved, err := a.RequestApproval(context.Background(), "out/a.1.exr")
	assert.False(t, approved)
	assert.ErrorIs(t, err, context.Canceled)
}
