package shared

import (
	"strings"
	"testing"
)

func TestFormatDuration(t *testing.T) {
	tc := []struct {
		name string
		ms   int
		want string
	}{
		{
			name: "three minutes",
			ms:   180000,
			want: "3:00",
		},
		{
			name: "padded seconds",
			ms:   185000,
			want: "3:05",
		},
		{
			name: "under a minute",
			ms:   42000,
			want: "0:42",
		},
		{
			name: "zero is unavailable",
			ms:   0,
			want: "?:??",
		},
		{
			name: "negative is unavailable",
			ms:   -1000,
			want: "?:??",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatDuration(tt.ms)
			if got != tt.want {
				t.Errorf("FormatDuration(%d) = %v, want %v", tt.ms, got, tt.want)
			}
		})
	}
}

func TestExtractPlaylistID(t *testing.T) {
	tc := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare ID",
			input: "3cEYpjA9oz9GiPac4AsH4n",
			want:  "3cEYpjA9oz9GiPac4AsH4n",
		},
		{
			name:  "share URL",
			input: "https://open.spotify.com/playlist/3cEYpjA9oz9GiPac4AsH4n",
			want:  "3cEYpjA9oz9GiPac4AsH4n",
		},
		{
			name:  "share URL with tracking query",
			input: "https://open.spotify.com/playlist/3cEYpjA9oz9GiPac4AsH4n?si=abc123",
			want:  "3cEYpjA9oz9GiPac4AsH4n",
		},
		{
			name:  "spotify URI",
			input: "spotify:playlist:3cEYpjA9oz9GiPac4AsH4n",
			want:  "3cEYpjA9oz9GiPac4AsH4n",
		},
		{
			name:  "surrounding whitespace",
			input: "  3cEYpjA9oz9GiPac4AsH4n\n",
			want:  "3cEYpjA9oz9GiPac4AsH4n",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractPlaylistID(tt.input)
			if got != tt.want {
				t.Errorf("ExtractPlaylistID(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestVisibilityString(t *testing.T) {
	if got := VisibilityString(true); got != "Public" {
		t.Errorf("VisibilityString(true) = %v, want Public", got)
	}
	if got := VisibilityString(false); got != "Private" {
		t.Errorf("VisibilityString(false) = %v, want Private", got)
	}
}

func TestGenerateState(t *testing.T) {
	first, err := GenerateState()
	if err != nil {
		t.Fatalf("failed to generate state: %v", err)
	}

	if len(first) != 32 {
		t.Errorf("expected 32 hex characters, got %d", len(first))
	}

	second, err := GenerateState()
	if err != nil {
		t.Fatalf("failed to generate second state: %v", err)
	}

	if first == second {
		t.Error("expected successive states to differ")
	}
}

func TestGenerateID(t *testing.T) {
	id := GenerateID()
	if strings.Count(id, "-") != 4 {
		t.Errorf("expected UUID format, got %s", id)
	}

	if id == GenerateID() {
		t.Error("expected successive IDs to differ")
	}
}

func TestMarshalJSON(t *testing.T) {
	data := map[string]string{"key": "value"}

	compact, err := MarshalJSON(data, false)
	if err != nil {
		t.Fatalf("failed to marshal compact JSON: %v", err)
	}
	if string(compact) != `{"key":"value"}` {
		t.Errorf("unexpected compact JSON: %s", compact)
	}

	pretty, err := MarshalJSON(data, true)
	if err != nil {
		t.Fatalf("failed to marshal pretty JSON: %v", err)
	}
	if !strings.Contains(string(pretty), "\n") {
		t.Errorf("expected indented JSON, got %s", pretty)
	}
}
