package robot

// Kind identifies a decoded record variant.
type Kind int

const (
	KindMessage Kind = iota + 1
	KindProgress
	KindProgressValue
	KindDrive
	KindTitleCount
	KindInfo
)

func (k Kind) String() string {
	switch k {
	case KindMessage:
		return "message"
	case KindProgress:
		return "progress"
	case KindProgressValue:
		return "progress_value"
	case KindDrive:
		return "drive"
	case KindTitleCount:
		return "title_count"
	case KindInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Record is one decoded robot line. The concrete type is one of Message,
// Progress, ProgressValue, Drive, TitleCount or Info; the interface is sealed
// so a type switch over those six covers every value Decode returns.
type Record interface {
	Kind() Kind
	isRecord()
}

// Message is an MSG line: a user-facing status or error string.
type Message struct {
	Code    int      `json:"code"`
	Flags   int      `json:"flags"`
	Count   int      `json:"count"`
	Message string   `json:"message"`
	Format  string   `json:"format"`
	Params  []string `json:"params,omitempty"`
}

// ProgressScope tells apart the two progress-title lines.
type ProgressScope int

const (
	// ProgressCurrent is a PRGC line naming the current sub-operation.
	ProgressCurrent ProgressScope = iota + 1
	// ProgressTotal is a PRGT line naming the overall operation.
	ProgressTotal
)

func (s ProgressScope) String() string {
	switch s {
	case ProgressCurrent:
		return "current"
	case ProgressTotal:
		return "total"
	default:
		return "unknown"
	}
}

// Progress is a PRGC or PRGT line.
type Progress struct {
	Scope ProgressScope `json:"scope"`
	Code  int           `json:"code"`
	ID    int           `json:"id"`
	Name  string        `json:"name"`
}

// ProgressValue is a PRGV line. Current and Total are both measured against Max.
type ProgressValue struct {
	Current int `json:"current"`
	Total   int `json:"total"`
	Max     int `json:"max"`
}

// Drive is a DRV line describing one drive slot.
type Drive struct {
	Index     int    `json:"index"`
	Visible   bool   `json:"visible"`
	Enabled   bool   `json:"enabled"`
	Flags     int    `json:"flags"`
	DriveName string `json:"drive_name"`
	DiscName  string `json:"disc_name"`
	// Device is the OS device path newer makemkvcon builds print as a
	// seventh field; empty when absent.
	Device string `json:"device,omitempty"`
}

// TitleCount is a TCOUT line.
type TitleCount struct {
	Count int `json:"count"`
}

// Scope is the hierarchy level an Info record applies to.
type Scope int

const (
	ScopeDisc Scope = iota + 1
	ScopeTitle
	ScopeStream
)

func (s Scope) String() string {
	switch s {
	case ScopeDisc:
		return "disc"
	case ScopeTitle:
		return "title"
	case ScopeStream:
		return "stream"
	default:
		return "unknown"
	}
}

// Info is a CINFO, TINFO or SINFO line.
//
// ID and Code are the first two integer fields; which of them names the
// attribute depends on Scope (see Aggregate). Value is the last field of the
// line. Extra holds any fields between the second and the last, untouched.
type Info struct {
	Scope Scope    `json:"scope"`
	ID    int      `json:"id"`
	Code  int      `json:"code"`
	Value string   `json:"value"`
	Extra []string `json:"extra,omitempty"`
}

func (Message) Kind() Kind       { return KindMessage }
func (Progress) Kind() Kind      { return KindProgress }
func (ProgressValue) Kind() Kind { return KindProgressValue }
func (Drive) Kind() Kind         { return KindDrive }
func (TitleCount) Kind() Kind    { return KindTitleCount }
func (Info) Kind() Kind          { return KindInfo }

func (Message) isRecord()       {}
func (Progress) isRecord()      {}
func (ProgressValue) isRecord() {}
func (Drive) isRecord()         {}
func (TitleCount) isRecord()    {}
func (Info) isRecord()          {}

// Percent returns Total/Max as a percentage, or 0 when Max is not positive.
func (v ProgressValue) Percent() float64 {
	if v.Max <= 0 {
		return 0
	}
	return float64(v.Total) / float64(v.Max) * 100
}

// CurrentPercent returns Current/Max as a percentage, or 0 when Max is not positive.
func (v ProgressValue) CurrentPercent() float64 {
	if v.Max <= 0 {
		return 0
	}
	return float64(v.Current) / float64(v.Max) * 100
}

// HasDisc reports whether makemkvcon named a disc in this drive slot.
func (d Drive) HasDisc() bool {
	return d.DiscName != ""
}
