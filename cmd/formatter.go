package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"

	"github.com/s0up4200/wistia/wistia"
)

// ConsoleFormatter provides tree-style console output
type ConsoleFormatter struct {
	// Account enables dashboard links when set
	Account string
}

// writeResult prints v as indented JSON or as the formatter's text
func writeResult(w io.Writer, format string, v any, text func() string) error {
	if format == "json" {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	_, err := fmt.Fprint(w, text())
	return err
}

// treeItem writes the branch of item i out of n and returns the indent for
// its detail lines
func treeItem(sb *strings.Builder, i, n int, title string) string {
	isLast := i == n-1
	prefix := "├"
	indent := "│   "
	if isLast {
		prefix = "╰"
		indent = "    "
	}
	fmt.Fprintf(sb, "%s── %s\n", prefix, title)
	return indent
}

func header(sb *strings.Builder, noun string, n int) {
	sb.WriteString("\n" + noun)
	if n != 1 {
		sb.WriteString("s")
	}
	fmt.Fprintf(sb, " (%d):\n\n", n)
}

// FormatMediaList formats a list of medias for console display
func (f *ConsoleFormatter) FormatMediaList(medias []wistia.Media) string {
	if len(medias) == 0 {
		return "No medias found\n"
	}

	var sb strings.Builder
	header(&sb, "Media", len(medias))

	for i, media := range medias {
		indent := treeItem(&sb, i, len(medias), fmt.Sprintf("%s [%s]", media.Name, media.HashedID))
		f.formatMediaDetails(&sb, indent, media)

		if i != len(medias)-1 {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatMedia formats a single media with its assets
func (f *ConsoleFormatter) FormatMedia(media *wistia.Media) string {
	if media == nil {
		return "No media returned\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s [%s]\n", media.Name, media.HashedID)
	f.formatMediaDetails(&sb, "  ", *media)
	if media.Description != "" {
		fmt.Fprintf(&sb, "  Description: %s\n", media.Description)
	}
	if len(media.Assets) > 0 {
		sb.WriteString(f.FormatAssets(media.Assets))
	}
	return sb.String()
}

func (f *ConsoleFormatter) formatMediaDetails(sb *strings.Builder, indent string, media wistia.Media) {
	var parts []string
	parts = append(parts, media.Type)
	if media.Duration != nil {
		parts = append(parts, formatDuration(*media.Duration))
	}
	if media.Status != "" {
		parts = append(parts, media.Status)
	}
	fmt.Fprintf(sb, "%s%s\n", indent, strings.Join(parts, " | "))

	if media.Project != nil {
		fmt.Fprintf(sb, "%sProject: %s\n", indent, media.Project.Name)
	}
	if media.Section != nil && *media.Section != "" {
		fmt.Fprintf(sb, "%sSection: %s\n", indent, *media.Section)
	}

	var dateParts []string
	if media.Created != nil {
		dateParts = append(dateParts, fmt.Sprintf("Created: %s", media.Created.Format("2006-01-02")))
	}
	if media.Updated != nil && (media.Created == nil || !media.Updated.Equal(*media.Created)) {
		dateParts = append(dateParts, fmt.Sprintf("Updated: %s", humanize.Time(*media.Updated)))
	}
	if len(dateParts) > 0 {
		fmt.Fprintf(sb, "%s%s\n", indent, strings.Join(dateParts, " | "))
	}

	if len(media.Assets) > 0 {
		fmt.Fprintf(sb, "%sAssets: %d\n", indent, len(media.Assets))
	}
	if f.Account != "" {
		fmt.Fprintf(sb, "%s%s\n", indent, media.AdminURL(f.Account))
	}
}

// FormatAssets formats the assets of a media
func (f *ConsoleFormatter) FormatAssets(assets []wistia.Asset) string {
	if len(assets) == 0 {
		return "No assets found\n"
	}

	var sb strings.Builder
	header(&sb, "Asset", len(assets))

	for i, asset := range assets {
		indent := treeItem(&sb, i, len(assets), asset.Type.String())

		details := []string{asset.ContentType, asset.FormattedFileSize()}
		if asset.Width > 0 && asset.Height > 0 {
			details = append(details, fmt.Sprintf("%dx%d", asset.Width, asset.Height))
		}
		fmt.Fprintf(&sb, "%s%s\n", indent, strings.Join(details, " | "))
		fmt.Fprintf(&sb, "%s%s\n", indent, asset.URL)
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatCaptions formats the captions tracks of a media
func (f *ConsoleFormatter) FormatCaptions(captions []wistia.Caption) string {
	if len(captions) == 0 {
		return "No captions found\n"
	}

	var sb strings.Builder
	header(&sb, "Caption", len(captions))

	for i, caption := range captions {
		title := caption.EnglishName
		if caption.NativeName != "" && caption.NativeName != caption.EnglishName {
			title += " (" + caption.NativeName + ")"
		}
		indent := treeItem(&sb, i, len(captions), title)
		fmt.Fprintf(&sb, "%sLanguage: %s | %d lines\n", indent, caption.Language, strings.Count(caption.Text, "\n"))
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatProjectList formats a list of projects
func (f *ConsoleFormatter) FormatProjectList(projects []wistia.Project) string {
	if len(projects) == 0 {
		return "No projects found\n"
	}

	var sb strings.Builder
	header(&sb, "Project", len(projects))

	for i, project := range projects {
		indent := treeItem(&sb, i, len(projects), fmt.Sprintf("%s [%s]", project.Name, project.HashedID))
		f.formatProjectDetails(&sb, indent, project)

		if i != len(projects)-1 {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatProject formats a project and its medias
func (f *ConsoleFormatter) FormatProject(project *wistia.Project) string {
	if project == nil {
		return "No project returned\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s [%s]\n", project.Name, project.HashedID)
	f.formatProjectDetails(&sb, "  ", *project)
	if len(project.Medias) > 0 {
		sb.WriteString(f.FormatMediaList(project.Medias))
	}
	return sb.String()
}

func (f *ConsoleFormatter) formatProjectDetails(sb *strings.Builder, indent string, project wistia.Project) {
	visibility := "private"
	if project.Public {
		visibility = "public"
	}
	fmt.Fprintf(sb, "%sMedias: %d | %s\n", indent, project.MediaCount, visibility)
	if project.Description != "" {
		fmt.Fprintf(sb, "%s%s\n", indent, project.Description)
	}
	if project.Created != nil {
		fmt.Fprintf(sb, "%sCreated: %s\n", indent, project.Created.Format("2006-01-02"))
	}
}

// FormatPlayStats formats load and play counters
func (f *ConsoleFormatter) FormatPlayStats(title string, loads, plays int64, hours float64) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s\n", title)
	fmt.Fprintf(&sb, "  Loads: %s\n", humanize.Comma(loads))
	fmt.Fprintf(&sb, "  Plays: %s\n", humanize.Comma(plays))
	if loads > 0 {
		fmt.Fprintf(&sb, "  Play rate: %.1f%%\n", float64(plays)/float64(loads)*100)
	}
	fmt.Fprintf(&sb, "  Hours watched: %s\n", humanize.FormatFloat("#,###.##", hours))
	return sb.String()
}

// FormatEngagement formats a media engagement graph summary
func (f *ConsoleFormatter) FormatEngagement(eng *wistia.MediaEngagement) string {
	if eng == nil {
		return "No engagement data returned\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\nEngagement: %.1f%%\n", eng.Engagement*100)
	fmt.Fprintf(&sb, "  Data points: %d\n", len(eng.EngagementData))
	var rewatches int64
	for _, n := range eng.RewatchData {
		rewatches += n
	}
	fmt.Fprintf(&sb, "  Rewatches: %s\n", humanize.Comma(rewatches))
	return sb.String()
}

// FormatVisitors formats a list of visitors
func (f *ConsoleFormatter) FormatVisitors(visitors []wistia.Visitor) string {
	if len(visitors) == 0 {
		return "No visitors found\n"
	}

	var sb strings.Builder
	header(&sb, "Visitor", len(visitors))

	for i, visitor := range visitors {
		indent := treeItem(&sb, i, len(visitors), visitorTitle(visitor))
		fmt.Fprintf(&sb, "%sLoads: %d | Plays: %d\n", indent, visitor.LoadCount, visitor.PlayCount)
		if visitor.LastActiveAt != nil {
			fmt.Fprintf(&sb, "%sLast active: %s\n", indent, humanize.Time(*visitor.LastActiveAt))
		}
		if ua := visitor.UserAgentDetails; ua != nil {
			fmt.Fprintf(&sb, "%s%s %s on %s\n", indent, ua.Browser, ua.BrowserVersion, ua.Platform)
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

func visitorTitle(v wistia.Visitor) string {
	if id := v.VisitorIdentity; id != nil {
		switch {
		case id.Name != nil && *id.Name != "":
			return *id.Name + " [" + v.VisitorKey + "]"
		case id.Email != nil && *id.Email != "":
			return *id.Email + " [" + v.VisitorKey + "]"
		}
	}
	return v.VisitorKey
}

// FormatEvents formats a list of viewing events
func (f *ConsoleFormatter) FormatEvents(events []wistia.Event) string {
	if len(events) == 0 {
		return "No events found\n"
	}

	var sb strings.Builder
	header(&sb, "Event", len(events))

	for i, event := range events {
		indent := treeItem(&sb, i, len(events), fmt.Sprintf("%s [%s]", event.MediaName, event.EventKey))
		fmt.Fprintf(&sb, "%sViewed: %.0f%%\n", indent, event.PercentViewed*100)
		if event.ReceivedAt != nil {
			fmt.Fprintf(&sb, "%sReceived: %s\n", indent, event.ReceivedAt.Format(time.RFC3339))
		}
		var location []string
		for _, part := range []string{event.City, event.Region, event.Country} {
			if part != "" {
				location = append(location, part)
			}
		}
		if len(location) > 0 {
			fmt.Fprintf(&sb, "%sLocation: %s\n", indent, strings.Join(location, ", "))
		}
		if event.VisitorKey != "" {
			fmt.Fprintf(&sb, "%sVisitor: %s\n", indent, event.VisitorKey)
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

func formatDuration(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second)).Round(time.Second)
	return d.String()
}
