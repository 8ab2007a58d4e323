package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/config"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/db"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/logger"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/models"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/services"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var revoke bool

var rootCmd = &cobra.Command{
	Use:   "create-api-key [name]",
	Short: "Create, check or revoke keys for the backoffice API",
	Args:  cobra.MaximumNArgs(1),
	RunE:  run,
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check a key against the stored keys without echoing it",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(func() error {
			fmt.Print("API key: ")
			raw, err := term.ReadPassword(int(syscall.Stdin))
			fmt.Println()
			if err != nil {
				return fmt.Errorf("failed to read key: %w", err)
			}

			apiKey, err := services.VerifyAPIKey(db.DB, strings.TrimSpace(string(raw)))
			if err != nil {
				return err
			}
			fmt.Printf("Key is valid and belongs to %q\n", apiKey.Name)
			return nil
		})
	},
}

func init() {
	rootCmd.Flags().BoolVar(&revoke, "revoke", false, "deactivate every key with the given name")
	rootCmd.AddCommand(verifyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log := logger.WithComponent("cmd")
		log.Error().Err(err).Msg("Command execution failed")
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	name := ""
	if len(args) == 1 {
		name = args[0]
	} else {
		reader := bufio.NewReader(os.Stdin)
		if term.IsTerminal(int(syscall.Stdin)) {
			fmt.Print("Key name (e.g. admin-production): ")
		}
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("failed to read name: %w", err)
		}
		name = line
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("a key name is required")
	}

	return withDatabase(func() error {
		if revoke {
			if err := services.RevokeAPIKey(db.DB, name); err != nil {
				return fmt.Errorf("failed to revoke %q: %w", name, err)
			}
			fmt.Printf("Revoked keys named %q\n", name)
			return nil
		}

		apiKey, key, err := services.CreateAPIKey(db.DB, name)
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Printf("Created API key %q (prefix %s)\n", apiKey.Name, apiKey.Prefix)
		fmt.Println("Store it now, it will not be shown again:")
		fmt.Println()
		fmt.Println("  " + key)
		fmt.Println()
		fmt.Println("Set API_KEY to this value for the admin to reach the API.")
		return nil
	})
}

func withDatabase(fn func() error) error {
	cfg := config.Load()
	if err := logger.Setup(logger.LogConfig{Level: "warn", Format: cfg.LogFormat}); err != nil {
		return err
	}

	if err := db.Initialize(cfg); err != nil {
		return err
	}
	defer db.Close()

	if err := db.AutoMigrate(&models.APIKey{}); err != nil {
		return err
	}
	return fn()
}
