package robot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Rejection reasons returned by Decode. They are filterable signals, not
// failures: a caller parsing a whole stream normally skips these lines.
var (
	ErrEmptyLine       = errors.New("empty line")
	ErrNoDelimiter     = errors.New("no type delimiter")
	ErrUnknownType     = errors.New("unknown record type")
	ErrMalformedFields = errors.New("malformed fields")
)

// Record type tags as printed by makemkvcon.
const (
	TagMessage         = "MSG"
	TagProgressCurrent = "PRGC"
	TagProgressTotal   = "PRGT"
	TagProgressValue   = "PRGV"
	TagDrive           = "DRV"
	TagTitleCount      = "TCOUT"
	TagDiscInfo        = "CINFO"
	TagTitleInfo       = "TINFO"
	TagStreamInfo      = "SINFO"
)

// Decode turns one robot line into a Record. Lines that are empty, lack a
// TAG: prefix, carry an unknown tag, or have too few or non-numeric fields
// return a nil Record and an error matching one of the Err* sentinels.
func Decode(line string) (Record, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil, ErrEmptyLine
	}
	tag, payload, ok := strings.Cut(trimmed, ":")
	if !ok {
		return nil, ErrNoDelimiter
	}

	var decode func([]string) (Record, error)
	switch tag {
	case TagMessage:
		decode = decodeMessage
	case TagProgressCurrent:
		decode = decodeProgress(ProgressCurrent)
	case TagProgressTotal:
		decode = decodeProgress(ProgressTotal)
	case TagProgressValue:
		decode = decodeProgressValue
	case TagDrive:
		decode = decodeDrive
	case TagTitleCount:
		decode = decodeTitleCount
	case TagDiscInfo:
		decode = decodeInfo(ScopeDisc)
	case TagTitleInfo:
		decode = decodeInfo(ScopeTitle)
	case TagStreamInfo:
		decode = decodeInfo(ScopeStream)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, tag)
	}

	record, err := decode(Tokenize(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedFields, tag, err)
	}
	return record, nil
}

func decodeMessage(fields []string) (Record, error) {
	if err := requireFields(fields, 5); err != nil {
		return nil, err
	}
	ints, err := parseInts(fields[:3])
	if err != nil {
		return nil, err
	}
	msg := Message{
		Code:    ints[0],
		Flags:   ints[1],
		Count:   ints[2],
		Message: fields[3],
		Format:  fields[4],
	}
	if len(fields) > 5 {
		msg.Params = append([]string(nil), fields[5:]...)
	}
	return msg, nil
}

func decodeProgress(scope ProgressScope) func([]string) (Record, error) {
	return func(fields []string) (Record, error) {
		if err := requireFields(fields, 3); err != nil {
			return nil, err
		}
		ints, err := parseInts(fields[:2])
		if err != nil {
			return nil, err
		}
		return Progress{Scope: scope, Code: ints[0], ID: ints[1], Name: fields[2]}, nil
	}
}

func decodeProgressValue(fields []string) (Record, error) {
	if err := requireFields(fields, 3); err != nil {
		return nil, err
	}
	ints, err := parseInts(fields[:3])
	if err != nil {
		return nil, err
	}
	return ProgressValue{Current: ints[0], Total: ints[1], Max: ints[2]}, nil
}

func decodeDrive(fields []string) (Record, error) {
	if err := requireFields(fields, 6); err != nil {
		return nil, err
	}
	index, err := parseInt(fields[0])
	if err != nil {
		return nil, err
	}
	flags, err := parseInt(fields[3])
	if err != nil {
		return nil, err
	}
	drive := Drive{
		Index:     index,
		Visible:   parseFlag(fields[1]),
		Enabled:   parseFlag(fields[2]),
		Flags:     flags,
		DriveName: fields[4],
		DiscName:  fields[5],
	}
	if len(fields) > 6 {
		drive.Device = fields[6]
	}
	return drive, nil
}

func decodeTitleCount(fields []string) (Record, error) {
	if err := requireFields(fields, 1); err != nil {
		return nil, err
	}
	count, err := parseInt(fields[0])
	if err != nil {
		return nil, err
	}
	return TitleCount{Count: count}, nil
}

func decodeInfo(scope Scope) func([]string) (Record, error) {
	return func(fields []string) (Record, error) {
		if err := requireFields(fields, 3); err != nil {
			return nil, err
		}
		ints, err := parseInts(fields[:2])
		if err != nil {
			return nil, err
		}
		last := len(fields) - 1
		info := Info{Scope: scope, ID: ints[0], Code: ints[1], Value: fields[last]}
		if last > 2 {
			info.Extra = append([]string(nil), fields[2:last]...)
		}
		return info, nil
	}
}

func requireFields(fields []string, n int) error {
	if len(fields) < n {
		return fmt.Errorf("want at least %d fields, got %d", n, len(fields))
	}
	return nil
}

func parseInts(fields []string) ([]int, error) {
	out := make([]int, len(fields))
	for i, field := range fields {
		v, err := parseInt(field)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// parseFlag reads a DRV boolean field, trimmed like the integer fields.
func parseFlag(field string) bool {
	return strings.TrimSpace(field) == "1"
}

func parseInt(field string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(field))
	if err != nil {
		return 0, fmt.Errorf("field %q is not an integer", field)
	}
	return v, nil
}
