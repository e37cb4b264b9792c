package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobscout/internal/config"
	"github.com/amishk599/jobscout/internal/secrets"
)

var secretsProvider string

var secretsCmd = &cobra.Command{
	Use:   "secrets",
	Short: "Manage the LLM API key in the OS keychain",
	Long:  "The key stored here is used when ai.api_key is empty in the config.",
}

var secretsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store an API key (read from stdin)",
	Args:  cobra.NoArgs,
	RunE:  runSecretsSet,
}

var secretsDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove the stored API key",
	Args:  cobra.NoArgs,
	RunE:  runSecretsDelete,
}

func init() {
	secretsCmd.PersistentFlags().StringVarP(&secretsProvider, "provider", "p", config.ProviderGemini, "LLM provider the key belongs to (gemini or openai)")
	secretsCmd.AddCommand(secretsSetCmd, secretsDeleteCmd)
	rootCmd.AddCommand(secretsCmd)
}

func runSecretsSet(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	fmt.Fprintf(os.Stderr, "Paste the %s API key and press Enter: ", secretsProvider)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		logger.Error("failed to read key", "error", err)
		os.Exit(1)
	}

	if err := secrets.SetAPIKey(secretsProvider, strings.TrimSpace(line)); err != nil {
		logger.Error("failed to store key", "provider", secretsProvider, "error", err)
		os.Exit(1)
	}
	logger.Info("api key stored in keychain", "provider", secretsProvider, "account", secrets.Account(secretsProvider))
	return nil
}

func runSecretsDelete(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	err := secrets.DeleteAPIKey(secretsProvider)
	if errors.Is(err, secrets.ErrNotFound) {
		logger.Info("no api key stored", "provider", secretsProvider)
		return nil
	}
	if err != nil {
		logger.Error("failed to delete key", "provider", secretsProvider, "error", err)
		os.Exit(1)
	}
	logger.Info("api key removed from keychain", "provider", secretsProvider)
	return nil
}
