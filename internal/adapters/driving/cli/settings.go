package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
)

var (
	settingsStorageDir  string
	settingsSynModel    string
	settingsSynAPIKey   string
	settingsSynValidate bool
)

// synonymValidator pings the configured provider. Set by the composition root.
var synonymValidator func(ctx context.Context, settings domain.SynonymSettings) error

// SetSynonymValidator installs the provider check used by "settings synonyms --check".
func SetSynonymValidator(v func(ctx context.Context, settings domain.SynonymSettings) error) {
	synonymValidator = v
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the span expansion, storage backend and synonym provider.

Settings live in config.toml inside the configuration directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsExpansionCmd = &cobra.Command{
	Use:   "expansion [none|sentence|paragraph]",
	Short: "Set how matches grow before indexing and tabulation",
	Long: `Set the span expansion.

Available expansions:
  none       - Keep the exact match
  sentence   - Grow to the enclosing '.'-delimited sentence
  paragraph  - Grow to the enclosing blank-line-delimited paragraph

Saved searches keep their spans until 'quala search refresh'.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsExpansion,
}

var settingsMaxMatchesCmd = &cobra.Command{
	Use:   "max-matches [n]",
	Short: "Set the cap on matches collected per scan",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsMaxMatches,
}

var settingsStorageCmd = &cobra.Command{
	Use:   "storage [file|sqlite|memory]",
	Short: "Select where projects are stored",
	Long: `Select the storage backend for the project snapshot.

Available backends:
  file    - One JSON document in the data directory
  sqlite  - A key-value table in quala.db
  memory  - Nothing is persisted (useful for trying things out)

The change takes effect on the next invocation.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsStorage,
}

var settingsSynonymsCmd = &cobra.Command{
	Use:   "synonyms [openai|none]",
	Short: "Configure the synonym provider",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsSynonyms,
}

func init() {
	settingsStorageCmd.Flags().StringVar(&settingsStorageDir, "dir", "", "Data directory (default <config-dir>/data)")
	settingsSynonymsCmd.Flags().StringVar(&settingsSynModel, "model", "", "Model name")
	settingsSynonymsCmd.Flags().StringVar(&settingsSynAPIKey, "api-key", "", "API key (default $OPENAI_API_KEY)")
	settingsSynonymsCmd.Flags().BoolVar(&settingsSynValidate, "check", false, "Contact the provider to verify the settings")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsExpansionCmd)
	settingsCmd.AddCommand(settingsMaxMatchesCmd)
	settingsCmd.AddCommand(settingsStorageCmd)
	settingsCmd.AddCommand(settingsSynonymsCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Analysis]")
	cmd.Printf("  Expansion: %s\n", settings.Analysis.Expansion.Description())
	cmd.Printf("  Max matches: %d\n", settings.Analysis.MaxMatches)
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage.Backend.Description())
	dir := settings.Storage.Dir
	if dir == "" {
		dir = "(default)"
	}
	cmd.Printf("  Directory: %s\n", dir)
	cmd.Println()

	cmd.Println("[Synonyms]")
	cmd.Printf("  Provider: %s\n", settings.Synonyms.Provider.Description())
	if settings.Synonyms.Provider != domain.SynonymProviderNone {
		cmd.Printf("  Model: %s\n", settings.Synonyms.Model)
		cmd.Printf("  Base URL: %s\n", settings.Synonyms.BaseURL)
		if settings.Synonyms.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(settings.Synonyms.APIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	status := "configured"
	if !settings.Synonyms.IsConfigured() {
		status = "not configured (local suggestions only)"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Println("[Workspace]")
	cmd.Printf("  Project: %s\n", orNone(settings.Workspace.Project))
	cmd.Printf("  File: %s\n", orNone(settings.Workspace.File))
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runSettingsExpansion(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	e, err := domain.ParseExpansion(args[0])
	if err != nil {
		return err
	}
	if err := settingsService.SetExpansion(e); err != nil {
		return fmt.Errorf("failed to set expansion: %w", err)
	}
	cmd.Printf("Expansion set to: %s\n", e.Description())
	return nil
}

func runSettingsMaxMatches(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("max matches %q: %w", args[0], domain.ErrInvalidInput)
	}
	if err := settingsService.SetMaxMatches(n); err != nil {
		return fmt.Errorf("failed to set max matches: %w", err)
	}
	cmd.Printf("Max matches set to: %d\n", n)
	return nil
}

func runSettingsStorage(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	backend := domain.StorageBackend(args[0])
	if err := settingsService.SetStorage(backend, settingsStorageDir); err != nil {
		return fmt.Errorf("failed to set storage: %w", err)
	}
	cmd.Printf("Storage set to: %s\n", backend.Description())
	return nil
}

func runSettingsSynonyms(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	provider := domain.SynonymProviderKind(args[0])
	if err := settingsService.SetSynonymProvider(provider, settingsSynModel, settingsSynAPIKey); err != nil {
		return fmt.Errorf("failed to set synonym provider: %w", err)
	}
	cmd.Printf("Synonym provider set to: %s\n", provider.Description())

	if !settingsSynValidate || synonymValidator == nil {
		return nil
	}
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if err := synonymValidator(cmd.Context(), settings.Synonyms); err != nil {
		cmd.Printf("Warning: %v\n", err)
		return nil
	}
	cmd.Println("Provider is reachable.")
	return nil
}

// maskAPIKey masks an API key for display.
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
