package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	allDigitsPattern = regexp.MustCompile(`^\d+$`)
	shortCodePattern = regexp.MustCompile(`^[A-Z0-9]{1,3}$`)
	separatorPattern = regexp.MustCompile(`[_\s]+`)
)

// genericPatterns are substrings of authoring-tool placeholder labels.
var genericPatterns = []string{
	"LOGICAL_VOLUME_ID", "VOLUME_ID", "DVD_VIDEO", "BLURAY", "BD_ROM",
	"UNTITLED", "UNKNOWN DISC", "VOLUME_", "VOLUME ID", "DISK_", "TRACK_",
}

// IsGenericLabel reports whether label is too generic to name a disc.
func IsGenericLabel(label string) bool {
	label = strings.TrimSpace(label)
	if label == "" {
		return true
	}
	upper := strings.ToUpper(label)
	for _, pattern := range genericPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return allDigitsPattern.MatchString(label) || shortCodePattern.MatchString(upper)
}

// HumanizeLabel turns a volume label into title case words:
// "MY_DISC_2" becomes "My Disc 2".
func HumanizeLabel(label string) string {
	words := separatorPattern.ReplaceAllString(strings.TrimSpace(label), " ")
	words = strings.TrimSpace(words)
	if words == "" {
		return ""
	}
	return cases.Title(language.Und).String(strings.ToLower(words))
}

// DisplayName picks the best name for a disc: the disc name when makemkvcon
// found one, otherwise the humanized volume label unless it is generic.
func DisplayName(discName, volumeName string) string {
	if name := strings.TrimSpace(discName); name != "" {
		return name
	}
	if IsGenericLabel(volumeName) {
		return ""
	}
	return HumanizeLabel(volumeName)
}
