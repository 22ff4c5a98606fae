// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citecheck/internal/secrets"
	"github.com/pdiddy/citecheck/pkg/types"
)

// configureEnv maps CITECHECK_* variables onto config keys.
func configureEnv(v *viper.Viper) {
	v.SetEnvPrefix("CITECHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
}

// setDefaults registers every config key so that AutomaticEnv can resolve
// CITECHECK_* variables during Unmarshal.
func setDefaults(v *viper.Viper) {
	d := types.DefaultConfig()

	v.SetDefault("http.timeout", d.HTTP.Timeout)
	v.SetDefault("http.user_agent", d.HTTP.UserAgent)
	v.SetDefault("http.http_proxy", d.HTTP.HTTPProxy)
	v.SetDefault("http.https_proxy", d.HTTP.HTTPSProxy)
	v.SetDefault("http.max_idle_conns_per_host", d.HTTP.MaxIdleConnsPerHost)

	v.SetDefault("registries.crossref_base", d.Registries.CrossrefBase)
	v.SetDefault("registries.openalex_base", d.Registries.OpenAlexBase)
	v.SetDefault("registries.pubmed_base", d.Registries.PubMedBase)
	v.SetDefault("registries.arxiv_base", d.Registries.ArxivBase)
	v.SetDefault("registries.contact_email", d.Registries.ContactEmail)
	v.SetDefault("registries.requests_per_second", d.Registries.RequestsPerSecond)
	v.SetDefault("registries.burst", d.Registries.Burst)
	v.SetDefault("registries.max_retries", d.Registries.MaxRetries)

	v.SetDefault("verify.max_candidates", d.Verify.MaxCandidates)
	v.SetDefault("verify.max_concurrent", d.Verify.MaxConcurrent)

	v.SetDefault("serve.addr", d.Serve.Addr)
	v.SetDefault("serve.max_upload_bytes", d.Serve.MaxUploadBytes)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	// The short form is the documented one.
	_ = v.BindEnv("registries.contact_email", "CITECHECK_CONTACT_EMAIL", "CITECHECK_REGISTRIES_CONTACT_EMAIL")
}

// loadConfig resolves the effective configuration: flags, environment and
// config file through viper, then the contact-email secret when nothing
// else set an address.
func loadConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
	}); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Registries.ContactEmail = secretDefault(secrets.ContactEmail, cfg.Registries.ContactEmail)
	return cfg, nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the citecheck configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		return enc.Close()
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
