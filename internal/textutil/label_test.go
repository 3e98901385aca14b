package textutil

import "testing"

func TestHumanizeLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"MY_DISC_2", "My Disc 2"},
		{"  the_MATRIX  ", "The Matrix"},
		{"STAR__WARS_EPISODE_IV", "Star Wars Episode Iv"},
		{"already Nice", "Already Nice"},
		{"___", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := HumanizeLabel(tt.in); got != tt.want {
			t.Errorf("HumanizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsGenericLabel(t *testing.T) {
	tests := []struct {
		label string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"DVD_VIDEO", true},
		{"LOGICAL_VOLUME_ID", true},
		{"12345", true},
		{"X1", true},
		{"Untitled", true},
		{"THE_MATRIX", false},
		{"Sample Disc", false},
	}
	for _, tt := range tests {
		if got := IsGenericLabel(tt.label); got != tt.want {
			t.Errorf("IsGenericLabel(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		disc, volume, want string
	}{
		{"Sample Disc", "SAMPLE_DISC", "Sample Disc"},
		{"", "THE_MATRIX", "The Matrix"},
		{"", "DVD_VIDEO", ""},
		{"  ", "", ""},
	}
	for _, tt := range tests {
		if got := DisplayName(tt.disc, tt.volume); got != tt.want {
			t.Errorf("DisplayName(%q, %q) = %q, want %q", tt.disc, tt.volume, got, tt.want)
		}
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Movie: Part 1", "Movie- Part 1"},
		{`What? "Quoted" <x>|`, "What Quoted x"},
		{"a/b\\c*d", "a-b-c-d"},
		{"../etc", "-etc"},
		{"  ", ""},
	}
	for _, tt := range tests {
		if got := SanitizeFileName(tt.in); got != tt.want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
