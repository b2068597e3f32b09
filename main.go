// Command promptstash is a local, searchable prompt library.
package main

import (
	"fmt"
	"os"

	configfile "github.com/promptstash/promptstash-cli/internal/adapters/driven/config/file"
	"github.com/promptstash/promptstash-cli/internal/adapters/driven/storage/sqlite"
	"github.com/promptstash/promptstash-cli/internal/adapters/driving/cli"
	"github.com/promptstash/promptstash-cli/internal/core/domain"
	"github.com/promptstash/promptstash-cli/internal/core/ports/driven"
	"github.com/promptstash/promptstash-cli/internal/core/services"
	"github.com/promptstash/promptstash-cli/internal/normalisers/searchtext"
)

// version is injected at build time via ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	config, err := configfile.NewConfigStore(os.Getenv("PROMPTSTASH_CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	store, err := sqlite.NewStore(config.GetString("storage.data_dir"))
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer store.Close()

	normaliser := searchtext.New()

	searchSvc := services.NewSearchService(
		searchConfig(config),
		store.PromptStore(),
		store.SearchIndex(),
		normaliser,
	)
	promptSvc := services.NewPromptService(store.PromptStore(), store.TagStore(), normaliser)
	tagSvc := services.NewTagService(store.TagStore(), searchtext.Slugify)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Search: searchSvc,
		Prompt: promptSvc,
		Tag:    tagSvc,
	})

	return cli.Execute()
}

// searchConfig reads search settings, falling back to stock defaults.
func searchConfig(config driven.ConfigStore) domain.SearchConfig {
	cfg := domain.DefaultSearchConfig()
	if v := config.GetInt("search.default_limit"); v > 0 {
		cfg.DefaultLimit = v
	}
	if v := config.GetInt("search.max_limit"); v > 0 {
		cfg.MaxLimit = v
	}
	if _, ok := config.Get("search.use_index"); ok {
		cfg.UseIndex = config.GetBool("search.use_index")
	}
	return cfg
}
