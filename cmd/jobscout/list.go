package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/amishk599/jobscout/internal/filter"
	"github.com/amishk599/jobscout/internal/model"
)

var (
	listStatus   string
	listMinScore int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print stored listings",
	Long:  "Prints stored listings, best score first. IDs shown here are what `jobscout apply` takes.",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listStatus, "status", "all", "new, applied, reviewed or all")
	listCmd.Flags().IntVar(&listMinScore, "min-score", 0, "hide listings scoring below this")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	var want model.Status
	switch strings.ToLower(listStatus) {
	case "all", "":
	case "new":
		want = model.StatusNew
	case "applied":
		want = model.StatusApplied
	case "reviewed", "decided":
		want = model.StatusReviewed
	default:
		fmt.Fprintf(os.Stderr, "unknown --status %q (want new, applied, reviewed or all)\n", listStatus)
		os.Exit(1)
	}

	// Keep table output free of store log lines.
	all, err := loadListings(cfg, silentLogger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read store: %v\n", err)
		os.Exit(1)
	}

	var shown []model.Listing
	for _, l := range all {
		if want != "" && l.Status != want {
			continue
		}
		if l.RelevanceScore < listMinScore {
			continue
		}
		shown = append(shown, l)
	}
	filter.SortForReport(shown)

	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	fmt.Printf("%-36s  %5s  %-18s  %-40s  %-20s  %s\n", "ID", "Score", "Status", "Title", "Company", "Source")
	fmt.Println(strings.Repeat("─", 140))
	for _, l := range shown {
		score := fmt.Sprintf("%5d", l.RelevanceScore)
		switch {
		case l.RelevanceScore >= cfg.Notification.MinScore:
			score = green(score)
		case l.RelevanceScore >= 40:
			score = yellow(score)
		default:
			score = red(score)
		}
		status := fmt.Sprintf("%-18s", l.Status)
		if l.Status == model.StatusApplied {
			status = cyan(status)
		}
		fmt.Printf("%-36s  %s  %s  %-40s  %-20s  %s\n",
			l.ID, score, status, clip(l.Title, 40), clip(l.Company, 20), l.Source)
	}

	fmt.Printf("\nShowing %d of %d listings\n", len(shown), len(all))
	return nil
}

// clip shortens s to at most n runes, marking the cut with an ellipsis.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
