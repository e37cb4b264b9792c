package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/amishk599/jobscout/internal/model"
	"github.com/amishk599/jobscout/internal/review"
)

var checkKeyword string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Search once, print what each board returns, exit",
	Long: "One-shot crawl with a single keyword (the first configured one by default). " +
		"Prints per-board counts and listings. Nothing is scored or stored.",
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&checkKeyword, "keyword", "k", "", "keyword to search (default: first configured keyword)")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	keyword := checkKeyword
	if keyword == "" {
		keyword = cfg.Keywords[0]
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// With --debug the crawler logs every board; otherwise a spinner keeps stdout clean.
	var listings []model.Listing
	if debug {
		listings, err = buildCrawler(cfg, logger).RunAll(ctx, []string{keyword})
	} else {
		c := buildCrawler(cfg, silentLogger())
		label := fmt.Sprintf("Searching %d boards for %q", len(cfg.Sites), keyword)
		listings, err = review.RunLoader(ctx, label, func(ctx context.Context) ([]model.Listing, error) {
			return c.RunAll(ctx, []string{keyword})
		})
	}
	if err != nil {
		// A timed-out crawl still returns what it gathered; show it.
		logger.Warn("crawl incomplete", "error", err)
	}

	printCheckResults(keyword, cfg.Sites, listings)
	return nil
}

func printCheckResults(keyword string, sites []string, listings []model.Listing) {
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.FgHiBlack).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	bySource := make(map[string][]model.Listing)
	for _, l := range listings {
		bySource[l.Source] = append(bySource[l.Source], l)
	}
	sources := make([]string, 0, len(bySource))
	for s := range bySource {
		sources = append(sources, s)
	}
	sort.Strings(sources)

	fmt.Printf("%s %q on %d boards: %s listings\n\n", bold("check"), keyword, len(sites), green(len(listings)))
	for _, s := range sources {
		fmt.Printf("%s (%d)\n", bold(s), len(bySource[s]))
		for _, l := range bySource[s] {
			fmt.Printf("  %s · %s · %s\n", l.Title, l.Company, dim(l.Location))
			fmt.Printf("    %s\n", dim(l.Link))
		}
		fmt.Println()
	}
	if missing := len(sites) - len(sources); missing > 0 {
		fmt.Println(dim(fmt.Sprintf("%d board(s) returned nothing; rerun with --debug to see why.", missing)))
	}
	fmt.Println(strings.Repeat("─", 47))
}
