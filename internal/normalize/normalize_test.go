package normalize

import "testing"

func TestTitle(t *testing.T) {
	tc := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "plain title untouched",
			title: "Thunder Road",
			want:  "thunder road",
		},
		{
			name:  "parenthesized qualifier",
			title: "Song (Remastered 2011)",
			want:  "song",
		},
		{
			name:  "bracketed qualifier with year",
			title: "Song [2011 Remaster]",
			want:  "song",
		},
		{
			name:  "trailing dash qualifier",
			title: "Song - 2011 Remaster",
			want:  "song",
		},
		{
			name:  "qualifier case insensitive",
			title: "Song (REMASTERED)",
			want:  "song",
		},
		{
			name:  "radio edit suffix",
			title: "Dancing Queen - Radio Edit",
			want:  "dancing queen",
		},
		{
			name:  "album version in brackets",
			title: "Hold On [Album Version]",
			want:  "hold on",
		},
		{
			name:  "reissue with trailing noise",
			title: "Waterloo - 2025 reissue extended",
			want:  "waterloo",
		},
		{
			name:  "bare trailing year",
			title: "Fernando - 1976",
			want:  "fernando",
		},
		{
			name:  "en dash unified",
			title: "Song – 2011 Remaster",
			want:  "song",
		},
		{
			name:  "em dash unified",
			title: "Song — Remastered",
			want:  "song",
		},
		{
			name:  "internal whitespace collapsed",
			title: "  Take   It  Easy ",
			want:  "take it easy",
		},
		{
			name:  "mono qualifier",
			title: "Paint It Black (Mono)",
			want:  "paint it black",
		},
		{
			name:  "non-qualifier parenthetical kept",
			title: "Time (Clock of the Heart)",
			want:  "time (clock of the heart)",
		},
		{
			name:  "five digit suffix is not a year",
			title: "Song - 20111",
			want:  "song - 20111",
		},
		{
			name:  "empty string",
			title: "",
			want:  "",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := Title(tt.title)
			if got != tt.want {
				t.Errorf("Title(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestTitleIdempotent(t *testing.T) {
	inputs := []string{
		"Song (Remastered 2011)",
		"Song [2011 Remaster]",
		"Song - 2011 Remaster",
		"Dancing Queen - Radio Edit",
		"Time (Clock of the Heart)",
		"Fernando - 1976",
		"  Take   It  Easy ",
		"",
		"mix",
		"remix culture",
	}

	for _, in := range inputs {
		once := Title(in)
		twice := Title(once)
		if once != twice {
			t.Errorf("Title not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestArtist(t *testing.T) {
	tc := []struct {
		name   string
		artist string
		want   string
	}{
		{name: "lowercased", artist: "ABBA", want: "abba"},
		{name: "trimmed", artist: "  Fleetwood Mac ", want: "fleetwood mac"},
		{name: "qualifiers untouched", artist: "The Remix Artist", want: "the remix artist"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := Artist(tt.artist); got != tt.want {
				t.Errorf("Artist(%q) = %q, want %q", tt.artist, got, tt.want)
			}
		})
	}
}

func TestNewKey(t *testing.T) {
	a := NewKey("Song (Remastered 2011)", "ABBA")
	b := NewKey("Song - 2011 Remaster", "abba ")
	if a != b {
		t.Errorf("expected equal keys, got %v and %v", a, b)
	}

	c := NewKey("Song", "Someone Else")
	if a == c {
		t.Error("different artists must produce different keys")
	}

	if a.String() != "song|abba" {
		t.Errorf("unexpected key string %q", a.String())
	}
}
