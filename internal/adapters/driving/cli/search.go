package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/promptstash/promptstash-cli/internal/core/domain"
)

var (
	searchLimit    int
	searchSkip     int
	searchTags     []string
	searchPinned   bool
	searchJSON     bool
	searchNoIndex  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search stored prompts",
	Long: `Searches the prompt library with full-text ranking.

Exact tag matches rank highest, exact text matches next, then partial
matches by BM25 relevance. With an empty query all prompts are listed,
pinned first. If the search index is unavailable the command degrades
to a substring scan.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (0 = configured default)")
	searchCmd.Flags().IntVar(&searchSkip, "skip", 0, "number of results to skip")
	searchCmd.Flags().StringSliceVarP(&searchTags, "tag", "t", nil, "filter by tag slug (repeatable, any match)")
	searchCmd.Flags().BoolVar(&searchPinned, "pinned", false, "only pinned prompts")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVar(&searchNoIndex, "no-index", false, "skip the search index and use the substring scan")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	q := domain.SearchQuery{
		Query: query,
		Skip:  searchSkip,
		Limit: searchLimit,
	}
	if searchPinned {
		pinned := true
		q.PinnedOnly = &pinned
	}
	if searchNoIndex {
		useIndex := false
		q.UseIndex = &useIndex
	}

	tagIDs, err := resolveTagSlugs(cmd, searchTags)
	if err != nil {
		return err
	}
	q.TagIDs = tagIDs

	page, err := searchService.Search(cmd.Context(), q)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputJSON(cmd, page)
	}
	return outputSearchTable(cmd, page)
}

// resolveTagSlugs maps tag slugs to ids, failing on unknown slugs.
func resolveTagSlugs(cmd *cobra.Command, slugs []string) ([]int64, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	if tagService == nil {
		return nil, errors.New("tag service not configured")
	}

	ids := make([]int64, 0, len(slugs))
	for _, slug := range slugs {
		tag, err := tagService.GetBySlug(cmd.Context(), slug)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("unknown tag: %s", slug)
			}
			return nil, fmt.Errorf("resolving tag %s: %w", slug, err)
		}
		ids = append(ids, tag.ID)
	}
	return ids, nil
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, page domain.SearchPage) error {
	if len(page.Items) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Printf("Results (%d total):\n", page.Total)
	cmd.Println()
	for i := range page.Items {
		p := &page.Items[i]

		marker := " "
		if p.Pinned {
			marker = "*"
		}
		cmd.Printf("  [%d]%s #%d %s\n", i+1, marker, p.ID, firstLine(p.Text))
		if len(p.Tags) > 0 {
			names := make([]string, len(p.Tags))
			for j, tag := range p.Tags {
				names[j] = tag.Name
			}
			cmd.Printf("      Tags: %s\n", strings.Join(names, ", "))
		}
		cmd.Println()
	}
	return nil
}

// firstLine truncates text to its first line, capped at 80 runes.
func firstLine(text string) string {
	line := text
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	runes := []rune(line)
	if len(runes) > 80 {
		return string(runes[:77]) + "..."
	}
	return line
}
