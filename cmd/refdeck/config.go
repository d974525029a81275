package main

import (
	"github.com/refdeck/refdeck/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Get or set repository configuration",
}

// ConfigResponse is the response for config get.
type ConfigResponse struct {
	PDFRoot string `json:"pdf_root,omitempty"`
	Mailto  string `json:"mailto,omitempty"`
}

// UpdateResponse is the response for config set.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show repository configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in .refdeck/config.json.

Keys:
  pdf_root   Path to the folder holding PDF files (~ allowed)
  mailto     Contact e-mail sent to CrossRef/OpenAlex polite pools

Examples:
  refdeck config set pdf_root ~/papers
  refdeck config set mailto user@example.org`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)

	if humanOutput {
		outputHuman("pdf_root: %s\n", cfg.PDFRoot)
		outputHuman("mailto:   %s\n", cfg.Mailto)
		outputHuman("global:   %s\n", config.GlobalConfigPath())
	} else {
		outputJSON(ConfigResponse{PDFRoot: cfg.PDFRoot, Mailto: cfg.Mailto})
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)

	key, value := args[0], args[1]
	switch key {
	case "pdf_root":
		if err := config.ValidatePDFRoot(value); err != nil {
			exitWithError(ExitConfigError, "invalid pdf_root: %v", err)
		}
		cfg.PDFRoot = value
	case "mailto":
		cfg.Mailto = value
	default:
		exitWithError(ExitError, "unknown config key: %s (valid: pdf_root, mailto)", key)
	}

	if err := cfg.Save(repoRoot); err != nil {
		exitWithError(ExitConfigError, "saving config: %v", err)
	}

	if humanOutput {
		outputHuman("%s = %s\n", key, value)
	} else {
		outputJSON(UpdateResponse{Status: "updated", Key: key, Value: value})
	}
	return nil
}
