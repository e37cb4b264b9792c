package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobscout/internal/filter"
	"github.com/amishk599/jobscout/internal/model"
)

var (
	applyConfirmed bool
	applyForce     bool
)

var applyCmd = &cobra.Command{
	Use:   "apply <listing-id>",
	Short: "Record that you applied to a listing",
	Long: "Marks a stored listing as applied and prints its application link. Requires --yes, " +
		"and respects applications.max_per_day unless --force is given.",
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().BoolVarP(&applyConfirmed, "yes", "y", false, "confirm the application")
	applyCmd.Flags().BoolVar(&applyForce, "force", false, "ignore applications.max_per_day")
	rootCmd.AddCommand(applyCmd)
}

var errDailyLimit = errors.New("daily application limit reached")

// applyGuard enforces applications.max_per_day in front of a store.
// A zero maxPerDay disables the limit.
type applyGuard struct {
	store     model.ListingStore
	maxPerDay int
	force     bool
	now       func() time.Time
}

func (g *applyGuard) MarkApplied(id string) (bool, error) {
	if !g.force && g.maxPerDay > 0 {
		all, err := g.store.All()
		if err != nil {
			return false, err
		}
		if n := filter.AppliedOn(all, g.now()); n >= g.maxPerDay {
			return false, fmt.Errorf("%w (%d of %d today)", errDailyLimit, n, g.maxPerDay)
		}
	}
	return g.store.MarkApplied(id)
}

func (g *applyGuard) MarkReviewed(id string) (bool, error) {
	return g.store.MarkReviewed(id)
}

func runApply(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)
	id := args[0]

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	st, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	l, ok, err := st.Get(id)
	if err != nil {
		logger.Error("failed to read listing", "listing_id", id, "error", err)
		os.Exit(1)
	}
	if !ok {
		logger.Error("listing not found", "listing_id", id)
		os.Exit(1)
	}

	if !applyConfirmed {
		logger.Warn("application not confirmed, nothing changed; rerun with --yes",
			"listing_id", id,
			"title", l.Title,
			"company", l.Company,
		)
		return nil
	}
	if l.Status == model.StatusApplied {
		logger.Info("already applied", "listing_id", id, "applied_at", l.AppliedAt)
		return nil
	}

	guard := &applyGuard{store: st, maxPerDay: cfg.Applications.MaxPerDay, force: applyForce, now: time.Now}
	if _, err := guard.MarkApplied(id); err != nil {
		if errors.Is(err, errDailyLimit) {
			logger.Warn("not applying", "reason", err, "hint", "use --force to override")
			return nil
		}
		logger.Error("failed to record application", "listing_id", id, "error", err)
		os.Exit(1)
	}

	logger.Info("application recorded, visit the link to finish applying",
		"listing_id", id,
		"title", l.Title,
		"company", l.Company,
		"link", l.ApplyURL(),
	)
	return nil
}
