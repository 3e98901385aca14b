package makemkv

import (
	"strconv"
	"strings"
)

// Source is a makemkvcon input specifier such as "disc:0" or "dev:/dev/sr0".
type Source string

// DiscSource addresses a drive by makemkvcon's drive index.
func DiscSource(index int) Source {
	return Source("disc:" + strconv.Itoa(index))
}

// DeviceSource addresses a drive by its OS device path.
func DeviceSource(path string) Source {
	return Source("dev:" + strings.TrimSpace(path))
}

// ISOSource addresses an ISO image.
func ISOSource(path string) Source {
	return Source("iso:" + strings.TrimSpace(path))
}

// FileSource addresses a VIDEO_TS or BDMV folder.
func FileSource(path string) Source {
	return Source("file:" + strings.TrimSpace(path))
}

// ParseSource normalizes user input into a Source. Bare /dev paths become
// dev: sources, bare integers become disc: sources and an empty string means
// the first drive.
func ParseSource(value string) Source {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return DiscSource(0)
	}
	lower := strings.ToLower(trimmed)
	for _, prefix := range []string{"disc:", "dev:", "iso:", "file:"} {
		if strings.HasPrefix(lower, prefix) {
			return Source(trimmed)
		}
	}
	if strings.HasPrefix(lower, "/dev/") {
		return DeviceSource(trimmed)
	}
	if index, err := strconv.Atoi(trimmed); err == nil && index >= 0 {
		return DiscSource(index)
	}
	if strings.HasSuffix(lower, ".iso") {
		return ISOSource(trimmed)
	}
	return FileSource(trimmed)
}

// DevicePath returns the raw /dev path for dev: sources, or "" otherwise.
func (s Source) DevicePath() string {
	trimmed := strings.TrimSpace(string(s))
	if strings.HasPrefix(trimmed, "dev:") {
		return strings.TrimPrefix(trimmed, "dev:")
	}
	return ""
}

func (s Source) String() string { return string(s) }
