package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/wistia/wistia"
)

var (
	eventMedia   string
	eventVisitor string
	startDate    string
	endDate      string
	heatmapLink  bool
)

// statsCmd groups the Stats API commands
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Account, media and visitor statistics",
}

var statsAccountCmd = &cobra.Command{
	Use:   "account",
	Short: "Show account wide play totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := client.AccountStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get account stats: %w", err)
		}
		return writeResult(cmd.OutOrStdout(), cfg.Output.Format, stats, func() string {
			if stats == nil {
				return "No stats returned\n"
			}
			return formatter().FormatPlayStats("Account", stats.LoadCount, stats.PlayCount, stats.HoursWatched)
		})
	},
}

var statsProjectCmd = &cobra.Command{
	Use:   "project <project-id>",
	Short: "Show play totals of a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := client.ProjectStats(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get project stats: %w", err)
		}
		return writeResult(cmd.OutOrStdout(), cfg.Output.Format, stats, func() string {
			if stats == nil {
				return "No stats returned\n"
			}
			title := fmt.Sprintf("Project %s (%d videos)", args[0], stats.NumberOfVideos)
			return formatter().FormatPlayStats(title, stats.LoadCount, stats.PlayCount, stats.HoursWatched)
		})
	},
}

var statsMediaCmd = &cobra.Command{
	Use:   "media <media-id>",
	Short: "Show play totals of a media",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := client.MediaStats(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get media stats: %w", err)
		}
		return writeResult(cmd.OutOrStdout(), cfg.Output.Format, stats, func() string {
			if stats == nil {
				return "No stats returned\n"
			}
			out := formatter().FormatPlayStats("Media "+args[0], stats.LoadCount, stats.PlayCount, stats.HoursWatched)
			return out + fmt.Sprintf("  Visitors: %d\n  Engagement: %.1f%%\n", stats.Visitors, stats.Engagement*100)
		})
	},
}

var statsEngagementCmd = &cobra.Command{
	Use:   "engagement <media-id>",
	Short: "Show the engagement graph summary of a media",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := client.MediaEngagement(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get engagement: %w", err)
		}
		return writeResult(cmd.OutOrStdout(), cfg.Output.Format, eng, func() string {
			return formatter().FormatEngagement(eng)
		})
	},
}

var statsVisitorsCmd = &cobra.Command{
	Use:   "visitors",
	Short: "List visitors",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		visitors, err := client.ListVisitors(cmd.Context(), listOptions())
		if err != nil {
			return fmt.Errorf("failed to list visitors: %w", err)
		}
		return writeResult(cmd.OutOrStdout(), cfg.Output.Format, visitors, func() string {
			return formatter().FormatVisitors(visitors)
		})
	},
}

var statsVisitorCmd = &cobra.Command{
	Use:   "visitor <visitor-key>",
	Short: "Show a visitor and their recent events",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		visitor, err := client.ShowVisitor(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to show visitor: %w", err)
		}
		events, err := client.EventsForVisitor(ctx, args[0], listOptions())
		if err != nil {
			return fmt.Errorf("failed to list visitor events: %w", err)
		}

		result := struct {
			Visitor *wistia.Visitor `json:"visitor"`
			Events  []wistia.Event  `json:"events"`
		}{visitor, events}

		return writeResult(cmd.OutOrStdout(), cfg.Output.Format, result, func() string {
			if visitor == nil {
				return "No visitor returned\n"
			}
			f := formatter()
			return f.FormatVisitors([]wistia.Visitor{*visitor}) + f.FormatEvents(events)
		})
	},
}

var statsEventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List viewing events",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := &wistia.EventListOptions{
			ListOptions: *listOptions(),
			VisitorKey:  eventVisitor,
			MediaID:     eventMedia,
			StartDate:   startDate,
			EndDate:     endDate,
		}
		events, err := client.ListEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("failed to list events: %w", err)
		}
		return writeResult(cmd.OutOrStdout(), cfg.Output.Format, events, func() string {
			return formatter().FormatEvents(events)
		})
	},
}

var statsEventCmd = &cobra.Command{
	Use:   "event <event-key>",
	Short: "Show a viewing event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		event, err := client.ShowEvent(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to show event: %w", err)
		}
		return writeResult(cmd.OutOrStdout(), cfg.Output.Format, event, func() string {
			if event == nil {
				return "No event returned\n"
			}
			return formatter().FormatEvents([]wistia.Event{*event})
		})
	},
}

var statsHeatmapCmd = &cobra.Command{
	Use:   "heatmap <event-key> <public-token>",
	Short: "Fetch the heatmap page of an event, or print its embed link",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if heatmapLink {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), wistia.HeatmapURL(args[0], args[1]))
			return err
		}

		page, err := client.Heatmap(cmd.Context(), args[0], args[1])
		if err != nil {
			return fmt.Errorf("failed to fetch heatmap: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(page)
		return err
	},
}

func init() {
	addPagingFlags(statsVisitorsCmd)
	addPagingFlags(statsVisitorCmd)
	addPagingFlags(statsEventsCmd)

	statsEventsCmd.Flags().StringVar(&eventMedia, "media", "", "only events of this media id")
	statsEventsCmd.Flags().StringVar(&eventVisitor, "visitor", "", "only events of this visitor key")
	statsEventsCmd.Flags().StringVar(&startDate, "start-date", "", "first day, YYYY-MM-DD")
	statsEventsCmd.Flags().StringVar(&endDate, "end-date", "", "last day, YYYY-MM-DD")

	statsHeatmapCmd.Flags().BoolVar(&heatmapLink, "link", false, "print the embeddable link instead of fetching the page")

	statsCmd.AddCommand(
		statsAccountCmd,
		statsProjectCmd,
		statsMediaCmd,
		statsEngagementCmd,
		statsVisitorsCmd,
		statsVisitorCmd,
		statsEventsCmd,
		statsEventCmd,
		statsHeatmapCmd,
	)
}
