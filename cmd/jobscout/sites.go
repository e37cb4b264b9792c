package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/amishk599/jobscout/internal/adapter"
)

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List supported job boards",
	Long:  "Reads the config and prints every supported board and whether it is enabled.",
	RunE:  runSites,
}

func init() {
	rootCmd.AddCommand(sitesCmd)
}

func runSites(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	green := color.New(color.FgGreen).SprintFunc()
	dim := color.New(color.FgHiBlack).SprintFunc()

	fmt.Printf("%-20s %s\n", "Board", "Status")
	fmt.Println(strings.Repeat("─", 32))

	enabled := 0
	for _, name := range adapter.KnownBoards {
		if slices.Contains(cfg.Sites, name) {
			enabled++
			fmt.Printf("%-20s %s\n", name, green("enabled"))
		} else {
			fmt.Printf("%-20s %s\n", name, dim("disabled"))
		}
	}

	fmt.Printf("\nTotal: %d boards (%d enabled, %d disabled)\n",
		len(adapter.KnownBoards), enabled, len(adapter.KnownBoards)-enabled)
	return nil
}
