package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"mkvrobot/internal/robot"
	"mkvrobot/internal/textutil"
)

type discRenderOptions struct {
	streams    bool
	attributes bool
	messages   bool
	colorize   bool
}

func renderResult(out io.Writer, result *robot.Result, opts discRenderOptions) {
	disc := result.Disc
	for _, line := range renderSectionHeader("Disc", opts.colorize) {
		fmt.Fprintln(out, line)
	}
	name := textutil.DisplayName(disc.Name(), disc.VolumeName())
	if name == "" {
		name = "(unknown)"
	}
	fmt.Fprintln(out, renderField("Name", name))
	if volume := disc.VolumeName(); volume != "" {
		fmt.Fprintln(out, renderField("Volume", volume))
	}
	if kind := disc.Attributes.Get(robot.AttrType); kind != "" {
		fmt.Fprintln(out, renderField("Type", kind))
	}
	fmt.Fprintln(out, renderField("Titles", titleCountText(result)))
	fmt.Fprintln(out, renderField("Lines", statsText(result.Stats)))
	fmt.Fprintln(out)

	if len(disc.Titles) > 0 {
		fmt.Fprintln(out, renderTitles(disc.Titles))
	}

	if opts.streams {
		for _, title := range disc.Titles {
			if len(title.Streams) == 0 {
				continue
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, renderStreams(fmt.Sprintf("Title %d streams", title.ID), title.Streams))
		}
		if len(disc.Streams) > 0 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, renderStreams("Unassigned streams", disc.Streams))
		}
	}

	if opts.attributes {
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderAttributes("Disc attributes", disc.Attributes))
		for _, title := range disc.Titles {
			fmt.Fprintln(out)
			fmt.Fprintln(out, renderAttributes(fmt.Sprintf("Title %d attributes", title.ID), title.Attributes))
		}
	}

	if opts.messages && len(result.Messages) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderMessages(result.Messages))
	}
}

func titleCountText(result *robot.Result) string {
	text := strconv.Itoa(len(result.Disc.Titles))
	if result.HasTitleCount && result.TitleCount != len(result.Disc.Titles) {
		text += fmt.Sprintf(" (makemkvcon reported %d)", result.TitleCount)
	}
	return text
}

func statsText(stats robot.Stats) string {
	parts := []string{
		fmt.Sprintf("%d read", stats.Lines),
		fmt.Sprintf("%d decoded", stats.Decoded),
	}
	if stats.Rejected() > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", stats.Rejected()))
	}
	return strings.Join(parts, ", ")
}

func renderTitles(titles []robot.Title) string {
	tableRows := make([][]string, 0, len(titles))
	for _, title := range titles {
		tableRows = append(tableRows, []string{
			strconv.Itoa(title.ID),
			title.Name(),
			title.Duration(),
			title.ChapterCount(),
			title.Size(),
			title.SourceFileName(),
			strconv.Itoa(len(title.Streams)),
		})
	}
	return tableLayout{
		title:   "Titles",
		headers: []string{"ID", "Name", "Duration", "Chapters", "Size", "Source", "Streams"},
		aligns:  []columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight, alignLeft, alignRight},
		rows:    tableRows,
	}.render()
}

func renderStreams(title string, streams []robot.Stream) string {
	rows := make([][]string, 0, len(streams))
	for _, stream := range streams {
		rows = append(rows, []string{
			strconv.Itoa(stream.ID),
			stream.Type(),
			stream.Codec(),
			stream.Language(),
			stream.Attributes.Get(robot.AttrName),
		})
	}
	return tableLayout{
		title:   title,
		headers: []string{"ID", "Type", "Codec", "Language", "Name"},
		aligns:  []columnAlignment{alignRight},
		rows:    rows,
	}.render()
}

func renderAttributes(title string, attrs robot.Attributes) string {
	ids := make([]int, 0, len(attrs))
	for id := range attrs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, []string{strconv.Itoa(id), robot.AttributeName(id), attrs[id]})
	}
	return tableLayout{
		title:   title,
		headers: []string{"ID", "Attribute", "Value"},
		aligns:  []columnAlignment{alignRight},
		rows:    rows,
	}.render()
}

func renderMessages(messages []robot.Message) string {
	rows := make([][]string, 0, len(messages))
	for _, msg := range messages {
		rows = append(rows, []string{strconv.Itoa(msg.Code), msg.Message})
	}
	return tableLayout{
		title:   "Messages",
		headers: []string{"Code", "Message"},
		aligns:  []columnAlignment{alignRight},
		rows:    rows,
	}.render()
}

// namedAttributes keys attributes by their snake_case name for JSON output.
func namedAttributes(attrs robot.Attributes) map[string]string {
	out := make(map[string]string, len(attrs))
	for id, value := range attrs {
		out[robot.AttributeName(id)] = value
	}
	return out
}

type streamView struct {
	ID         int               `json:"id"`
	Attributes map[string]string `json:"attributes"`
}

type titleView struct {
	ID         int               `json:"id"`
	Attributes map[string]string `json:"attributes"`
	Streams    []streamView      `json:"streams,omitempty"`
}

type discView struct {
	Name          string            `json:"name"`
	Attributes    map[string]string `json:"attributes"`
	Titles        []titleView       `json:"titles"`
	Streams       []streamView      `json:"streams,omitempty"`
	TitleCount    int               `json:"title_count"`
	HasTitleCount bool              `json:"has_title_count"`
	Messages      []robot.Message   `json:"messages,omitempty"`
	Stats         robot.Stats       `json:"stats"`
}

func newDiscView(result *robot.Result) discView {
	disc := result.Disc
	view := discView{
		Name:          textutil.DisplayName(disc.Name(), disc.VolumeName()),
		Attributes:    namedAttributes(disc.Attributes),
		Titles:        make([]titleView, 0, len(disc.Titles)),
		Streams:       streamViews(disc.Streams),
		TitleCount:    result.TitleCount,
		HasTitleCount: result.HasTitleCount,
		Messages:      result.Messages,
		Stats:         result.Stats,
	}
	for _, title := range disc.Titles {
		view.Titles = append(view.Titles, titleView{
			ID:         title.ID,
			Attributes: namedAttributes(title.Attributes),
			Streams:    streamViews(title.Streams),
		})
	}
	return view
}

func streamViews(streams []robot.Stream) []streamView {
	if len(streams) == 0 {
		return nil
	}
	out := make([]streamView, 0, len(streams))
	for _, stream := range streams {
		out = append(out, streamView{ID: stream.ID, Attributes: namedAttributes(stream.Attributes)})
	}
	return out
}
