// Package tui holds the terminal pieces of frameseq: interaction mode
// detection, the shared lipgloss palette, and the bubbletea overwrite
// prompt used by copy and move.
package tui
