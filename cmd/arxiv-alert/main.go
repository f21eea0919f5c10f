// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the arxiv-alert CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-alert/internal/secrets"
	"github.com/pdiddy/arxiv-alert/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds channel credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback if set, otherwise the secret value for key.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the arxiv-alert CLI.
var rootCmd = &cobra.Command{
	Use:   "arxiv-alert",
	Short: "Monitor arXiv for new papers and send notifications",
	Long: `arxiv-alert monitors arXiv for newly submitted papers in configured
categories, filters out papers it has already announced, and delivers the
rest through email, Slack, and webhook channels.

A local SQLite ledger records every paper offered for notification, so a
paper is announced at most once no matter how often the bot runs.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./arxiv-alert.yaml or ~/.config/arxiv-alert/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("arxiv-alert")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "arxiv-alert"))
		}
	}

	viper.SetEnvPrefix("ARXIV_ALERT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig unmarshals the viper state into a Config, applies defaults,
// and fills credential fields from loaded secrets.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing configuration: %w", err)
	}
	cfg.ApplyDefaults()

	cfg.Notifications.Email.Password = secretDefault("smtp-password", cfg.Notifications.Email.Password)
	cfg.Notifications.Slack.WebhookURL = secretDefault("slack-webhook-url", cfg.Notifications.Slack.WebhookURL)
	cfg.Notifications.Webhook.URL = secretDefault("webhook-url", cfg.Notifications.Webhook.URL)

	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
