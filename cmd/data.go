package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/wistia/filter"
	"github.com/s0up4200/wistia/wistia"
)

var (
	// Paging flags shared by list commands
	search  string
	page    int
	perPage int

	filterExpr string
	preset     string
	assetType  string
)

func addPagingFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&search, "search", "s", "", "search term")
	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "results per page")
}

func listOptions() *wistia.ListOptions {
	return &wistia.ListOptions{Search: search, Page: page, PerPage: perPage}
}

func formatter() *ConsoleFormatter {
	return &ConsoleFormatter{Account: cfg.Output.Account}
}

// projectsCmd groups project commands
var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List and show projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects in the account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		projects, err := client.ListProjects(cmd.Context(), listOptions())
		if err != nil {
			return fmt.Errorf("failed to list projects: %w", err)
		}
		return writeResult(cmd.OutOrStdout(), cfg.Output.Format, projects, func() string {
			return formatter().FormatProjectList(projects)
		})
	},
}

var projectsShowCmd = &cobra.Command{
	Use:   "show <hashed-id>",
	Short: "Show a project and its medias",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := client.ShowProject(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to show project: %w", err)
		}
		return writeResult(cmd.OutOrStdout(), cfg.Output.Format, project, func() string {
			return formatter().FormatProject(project)
		})
	},
}

// mediasCmd groups media commands
var mediasCmd = &cobra.Command{
	Use:   "medias",
	Short: "List, show and inspect medias",
}

var mediasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List medias, optionally filtered by an expression",
	Long: `List medias in the account. --filter and --preset select medias locally
with an expression, for example:

  wistia medias list --filter 'Type == "Video" and Duration > 600'
  wistia medias list --filter 'hasAsset("HdMp4VideoFile") and daysSince(Created) < 30'
  wistia medias list --filter 'icontains(Name, "launch") or hasPrefix(Project, "demo")'

String helpers icontains, hasPrefix and hasSuffix ignore case. The operators
contains, startsWith and endsWith are case-sensitive: Name startsWith "Demo".`,
	Args: cobra.NoArgs,
	RunE: runMediasList,
}

func runMediasList(cmd *cobra.Command, args []string) error {
	expression, err := getFilterExpression()
	if err != nil {
		return err
	}

	var f *filter.Filter
	if expression != "" {
		f, err = filter.Compile(expression)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
	}

	medias, err := client.ListMedias(cmd.Context(), listOptions())
	if err != nil {
		return fmt.Errorf("failed to list medias: %w", err)
	}

	matched := filter.Apply(f, medias)
	if f != nil {
		logger.Debug().
			Str("filter", expression).
			Int("total", len(medias)).
			Int("matched", len(matched)).
			Msg("Filtered medias")
	}

	return writeResult(cmd.OutOrStdout(), cfg.Output.Format, matched, func() string {
		return formatter().FormatMediaList(matched)
	})
}

var mediasShowCmd = &cobra.Command{
	Use:   "show <hashed-id>...",
	Short: "Show one or more medias",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			media, err := client.ShowMedia(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to show media: %w", err)
			}
			return writeResult(cmd.OutOrStdout(), cfg.Output.Format, media, func() string {
				return formatter().FormatMedia(media)
			})
		}

		medias, err := client.ShowMedias(cmd.Context(), args)
		if err != nil {
			return fmt.Errorf("failed to show medias: %w", err)
		}
		return writeResult(cmd.OutOrStdout(), cfg.Output.Format, medias, func() string {
			var out string
			for _, media := range medias {
				out += formatter().FormatMedia(media)
			}
			return out
		})
	},
}

var mediasCaptionsCmd = &cobra.Command{
	Use:   "captions <hashed-id>",
	Short: "List the captions of a media",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		captions, err := client.ShowMediaCaptions(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to list captions: %w", err)
		}
		return writeResult(cmd.OutOrStdout(), cfg.Output.Format, captions, func() string {
			return formatter().FormatCaptions(captions)
		})
	},
}

var mediasAssetsCmd = &cobra.Command{
	Use:   "assets <hashed-id>",
	Short: "List the assets of a media, optionally of one type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if assetType != "" {
			if _, err := wistia.ParseAssetKind(assetType); err != nil {
				return fmt.Errorf("invalid --type: %w", err)
			}
		}

		assets, err := client.ShowAssetsForMedia(cmd.Context(), args[0], assetType)
		if err != nil {
			return fmt.Errorf("failed to list assets: %w", err)
		}
		return writeResult(cmd.OutOrStdout(), cfg.Output.Format, assets, func() string {
			return formatter().FormatAssets(assets)
		})
	},
}

func init() {
	addPagingFlags(projectsListCmd)
	projectsCmd.AddCommand(projectsListCmd, projectsShowCmd)

	addPagingFlags(mediasListCmd)
	mediasListCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	mediasListCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	mediasAssetsCmd.Flags().StringVarP(&assetType, "type", "t", "", "asset type, e.g. HdMp4VideoFile")
	mediasCmd.AddCommand(mediasListCmd, mediasShowCmd, mediasCaptionsCmd, mediasAssetsCmd)
}

// getFilterExpression determines the filter expression to use
func getFilterExpression() (string, error) {
	// Priority: command line filter > preset > default
	if filterExpr != "" {
		return filterExpr, nil
	}

	if preset != "" {
		return cfg.Preset(preset)
	}

	return cfg.Filter.Default, nil
}
