package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobscout/internal/review"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Browse stored listings interactively (TUI)",
	Long:  "Shows the board picker, then a split-pane view where listings can be marked applied or decided.",
	RunE:  runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Store logs would corrupt the alt-screen.
	st, err := openStore(cfg, silentLogger())
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	guard := &applyGuard{store: st, maxPerDay: cfg.Applications.MaxPerDay, now: time.Now}

	for {
		all, err := st.All()
		if err != nil {
			logger.Error("failed to read store", "error", err)
			os.Exit(1)
		}
		if len(all) == 0 {
			fmt.Println("No listings stored yet. Run `jobscout run` first.")
			return nil
		}

		choice, ok, err := review.RunBoardPicker(all)
		if err != nil {
			fmt.Printf("Picker error: %v\n", err)
			return nil
		}
		if !ok {
			return nil
		}

		listings := all
		if choice.Source != "" {
			listings = nil
			for _, l := range all {
				if l.Source == choice.Source {
					listings = append(listings, l)
				}
			}
		}

		wantQuit, err := review.RunReviewTUI(listings, guard)
		if err != nil {
			fmt.Printf("TUI error: %v\n", err)
		}
		if wantQuit {
			return nil
		}
		// else: back to the picker with fresh data
	}
}

// Ensure applyGuard can drive the review TUI.
var _ review.Actions = (*applyGuard)(nil)
