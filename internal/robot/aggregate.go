package robot

// Attributes maps an attribute identifier to the raw value makemkvcon printed.
type Attributes map[int]string

// Get returns the value stored for id, or "" when absent.
func (a Attributes) Get(id AttributeID) string {
	return a[int(id)]
}

// Lookup returns the value stored for id and whether it was present.
func (a Attributes) Lookup(id AttributeID) (string, bool) {
	v, ok := a[int(id)]
	return v, ok
}

// DiscInfo is the aggregated view of one makemkvcon info run.
type DiscInfo struct {
	Attributes Attributes `json:"attributes"`
	// Titles are ordered by first appearance in the input.
	Titles []Title `json:"titles"`
	// Streams holds stream records that did not name an owning title.
	Streams []Stream `json:"streams,omitempty"`
}

// Title is one title (playlist) on the disc.
type Title struct {
	ID         int        `json:"id"`
	Attributes Attributes `json:"attributes"`
	Streams    []Stream   `json:"streams,omitempty"`
}

// Stream is one audio, video or subtitle stream.
type Stream struct {
	ID         int        `json:"id"`
	Attributes Attributes `json:"attributes"`
}

// Title returns the title with the given identifying number.
func (d *DiscInfo) Title(id int) (Title, bool) {
	if d == nil {
		return Title{}, false
	}
	for _, t := range d.Titles {
		if t.ID == id {
			return t, true
		}
	}
	return Title{}, false
}

// Stream returns the stream with the given identifying number.
func (t Title) Stream(id int) (Stream, bool) {
	for _, s := range t.Streams {
		if s.ID == id {
			return s, true
		}
	}
	return Stream{}, false
}

// Aggregate folds Info records into a DiscInfo. Records of other kinds are
// ignored; use Messages, Drives and TitleCountOf for those.
//
// Disc-scope records store Value under ID. Title-scope records create (or
// reuse) the title numbered ID and store Value under Code. Stream-scope
// records in the five-field form makemkvcon prints (title, stream, attribute,
// code, value) attach to stream Code of title ID under attribute Extra[0];
// shorter stream records land in DiscInfo.Streams keyed by ID, storing Value
// under Code. A five-field stream record for a title with no TINFO lines
// creates that title at the stream's position in the input. Later writes to
// the same attribute replace earlier ones.
func Aggregate(records []Record) *DiscInfo {
	return fold(records, newAccumulator(), accumulator.add).disc
}

type streamKey struct {
	title  int
	stream int
}

// accumulator carries the partially built DiscInfo plus lookup indexes for
// titles and streams.
type accumulator struct {
	disc    *DiscInfo
	titles  map[int]int
	streams map[streamKey]int
	loose   map[int]int
}

func newAccumulator() accumulator {
	return accumulator{
		disc:    &DiscInfo{Attributes: Attributes{}, Titles: []Title{}},
		titles:  make(map[int]int),
		streams: make(map[streamKey]int),
		loose:   make(map[int]int),
	}
}

func (a accumulator) add(record Record) accumulator {
	info, ok := record.(Info)
	if !ok {
		return a
	}
	switch info.Scope {
	case ScopeDisc:
		a.disc.Attributes[info.ID] = info.Value
	case ScopeTitle:
		idx := a.title(info.ID)
		a.disc.Titles[idx].Attributes[info.Code] = info.Value
	case ScopeStream:
		if attr, ok := streamAttribute(info); ok {
			stream := a.stream(info.ID, info.Code)
			stream.Attributes[attr] = info.Value
			return a
		}
		idx, seen := a.loose[info.ID]
		if !seen {
			idx = len(a.disc.Streams)
			a.loose[info.ID] = idx
			a.disc.Streams = append(a.disc.Streams, Stream{ID: info.ID, Attributes: Attributes{}})
		}
		a.disc.Streams[idx].Attributes[info.Code] = info.Value
	}
	return a
}

func (a accumulator) title(id int) int {
	if idx, ok := a.titles[id]; ok {
		return idx
	}
	idx := len(a.disc.Titles)
	a.titles[id] = idx
	a.disc.Titles = append(a.disc.Titles, Title{ID: id, Attributes: Attributes{}})
	return idx
}

func (a accumulator) stream(titleID, streamID int) *Stream {
	tIdx := a.title(titleID)
	title := &a.disc.Titles[tIdx]
	key := streamKey{title: titleID, stream: streamID}
	idx, ok := a.streams[key]
	if !ok {
		idx = len(title.Streams)
		a.streams[key] = idx
		title.Streams = append(title.Streams, Stream{ID: streamID, Attributes: Attributes{}})
	}
	return &title.Streams[idx]
}

// streamAttribute reports the attribute identifier of a five-field stream
// record, which sits in the first extra field.
func streamAttribute(info Info) (int, bool) {
	if len(info.Extra) < 2 {
		return 0, false
	}
	attr, err := parseInt(info.Extra[0])
	if err != nil {
		return 0, false
	}
	return attr, true
}

func fold[T, A any](items []T, acc A, step func(A, T) A) A {
	for _, item := range items {
		acc = step(acc, item)
	}
	return acc
}

// Messages returns every Message record in input order.
func Messages(records []Record) []Message {
	return collect[Message](records)
}

// Drives returns every Drive record in input order.
func Drives(records []Record) []Drive {
	return collect[Drive](records)
}

// Progresses returns every PRGC/PRGT record in input order.
func Progresses(records []Record) []Progress {
	return collect[Progress](records)
}

// TitleCountOf returns the count from the last TCOUT record, if any.
func TitleCountOf(records []Record) (int, bool) {
	count, found := 0, false
	for _, record := range records {
		if tc, ok := record.(TitleCount); ok {
			count, found = tc.Count, true
		}
	}
	return count, found
}

func collect[T Record](records []Record) []T {
	var out []T
	for _, record := range records {
		if v, ok := record.(T); ok {
			out = append(out, v)
		}
	}
	return out
}
