package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"icons8dl/pkg/cache"
	"icons8dl/pkg/catalog"
	"icons8dl/pkg/config"
	"icons8dl/pkg/ui"
)

var (
	cacheStyle  string
	cacheQuery  string
	cacheOffset int
)

// cacheCmd represents the cache command
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the catalog response cache",
	Long: `Inspect the on-disk cache of catalog pages.

Entries are never expired. Delete the directory, or pass --no-cache to a
download, to force fresh catalog requests.`,
}

// cachePathCmd represents the cache path command
var cachePathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the cache directory, or the entry for one catalog page",
	Example: `  icons8dl cache path
  icons8dl cache path --style ios --offset 200`,
	Args: cobra.NoArgs,
	RunE: runCachePath,
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cachePathCmd)

	cachePathCmd.Flags().StringVar(&cacheStyle, "style", "", "icon style of the page")
	cachePathCmd.Flags().StringVarP(&cacheQuery, "query", "q", "", "search term of the page")
	cachePathCmd.Flags().IntVar(&cacheOffset, "offset", 0, "page offset")
}

func runCachePath(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		return err
	}

	c := cache.New(cfg.Cache.Dir, nil)
	filter := catalog.Filter{Style: cacheStyle, Query: cacheQuery}
	if filter.Validate() != nil {
		fmt.Println(c.Dir())
		return nil
	}

	fetcher := catalog.NewFetcher(nil, nil, catalog.Options{
		BaseURL:   cfg.API.CatalogURL,
		Language:  cfg.API.Language,
		SortBy:    cfg.API.SortBy,
		IncludeAI: cfg.API.IncludeAI,
	}, nil)
	pageURL := fetcher.PageURL(filter, cacheOffset)
	entry := c.Path(pageURL)

	ui.PrintInfo("URL", pageURL)
	ui.PrintInfo("Key", cache.Key(pageURL))
	ui.PrintInfo("Entry", entry)
	if info, err := os.Stat(entry); err == nil {
		ui.PrintInfo("Cached", info.ModTime().Format("2006-01-02 15:04:05"))
	} else {
		ui.PrintInfo("Cached", "no")
	}
	return nil
}
