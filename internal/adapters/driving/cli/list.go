package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promptstash/promptstash-cli/internal/core/domain"
)

var (
	listLimit  int
	listSkip   int
	listTags   []string
	listPinned bool
	listJSON   bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored prompts",
	Long:  `Lists prompts, pinned first then newest first.`,
	RunE:  runList,
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "maximum number of prompts (0 = configured default)")
	listCmd.Flags().IntVar(&listSkip, "skip", 0, "number of prompts to skip")
	listCmd.Flags().StringSliceVarP(&listTags, "tag", "t", nil, "filter by tag slug (repeatable, any match)")
	listCmd.Flags().BoolVar(&listPinned, "pinned", false, "only pinned prompts")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	// An empty query lists prompts through the search facade so the
	// same filters and pagination apply.
	q := domain.SearchQuery{
		Skip:  listSkip,
		Limit: listLimit,
	}
	if listPinned {
		pinned := true
		q.PinnedOnly = &pinned
	}

	tagIDs, err := resolveTagSlugs(cmd, listTags)
	if err != nil {
		return err
	}
	q.TagIDs = tagIDs

	page, err := searchService.Search(cmd.Context(), q)
	if err != nil {
		return fmt.Errorf("failed to list prompts: %w", err)
	}

	if listJSON {
		return outputJSON(cmd, page)
	}

	if len(page.Items) == 0 {
		cmd.Println("No prompts stored.")
		return nil
	}

	cmd.Printf("Prompts (%d total):\n", page.Total)
	for i := range page.Items {
		p := &page.Items[i]
		marker := " "
		if p.Pinned {
			marker = "*"
		}
		cmd.Printf(" %s #%-5d %s\n", marker, p.ID, firstLine(p.Text))
	}
	return nil
}
