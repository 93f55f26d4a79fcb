package checksum

import (
	"errors"
	"strings"
	"testing"
)

func TestSHA256Calculator_CalculateRaw(t *testing.T) {
	calc := New()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "Empty content",
			content:  "",
			expected: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:     "abc",
			content:  "abc",
			expected: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := calc.CalculateRaw([]byte(tt.content)); got != tt.expected {
				t.Errorf("CalculateRaw() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestSHA256Calculator_ReaderMatchesRaw(t *testing.T) {
	calc := New()
	content := strings.Repeat("frame data ", 10000)

	got, err := calc.CalculateReader(strings.NewReader(content))
	if err != nil {
		t.Fatalf("CalculateReader() error = %v", err)
	}
	if want := calc.CalculateRaw([]byte(content)); got != want {
		t.Errorf("CalculateReader() = %s, want %s", got, want)
	}
}

func TestSHA256Calculator_DifferentContent(t *testing.T) {
	calc := New()

	if calc.CalculateRaw([]byte("frame 1")) == calc.CalculateRaw([]byte("frame 2")) {
		t.Error("different content produced the same checksum")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestSHA256Calculator_ReaderError(t *testing.T) {
	_, err := New().CalculateReader(failingReader{})
	if err == nil || !strings.Contains(err.Error(), "disk gone") {
		t.Errorf("expected wrapped read error, got %v", err)
	}
}
