// Package cli implements the command-line interface for promptstash.
// Commands are thin adapters over the driving ports; services are
// injected by main before Execute runs.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/promptstash/promptstash-cli/internal/core/ports/driving"
	"github.com/promptstash/promptstash-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services injected by main (or by tests).
var (
	searchService driving.SearchService
	promptService driving.PromptService
	tagService    driving.TagService
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "promptstash",
	Short: "A local store for reusable prompts",
	Long: `Promptstash keeps a searchable library of prompts with tags,
pinning and full-text search.

Prompts are stored in a local SQLite database with an FTS5 search
index. When the index is unavailable, searches fall back to a plain
substring scan so results keep flowing.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
	SilenceUsage: true,
}

// Services bundles the driving ports the CLI depends on.
type Services struct {
	Search driving.SearchService
	Prompt driving.PromptService
	Tag    driving.TagService
}

// SetServices injects the service implementations used by commands.
func SetServices(s Services) {
	searchService = s.Search
	promptService = s.Prompt
	tagService = s.Tag
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}
