/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/toc2me/polcat/internal/iofs"
	"github.com/toc2me/polcat/internal/iologger"
	polcat "github.com/toc2me/polcat/pkg"
	"github.com/toc2me/polcat/pkg/config"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config

	// cfgIngest keeps ingest settings as they were read, before options
	// dropped invalid values.
	cfgIngest config.IngestConfig
)

// getRootCmd returns the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", polcat.Version, polcat.Build),
		Use:     "polcat",
		Short:   "polcat normalizes seismic P-wave polarity data",
		Long: `polcat reads P-wave first-motion polarity data and earthquake
catalogs in several legacy and modern formats, and writes them as
SKHASH pick and eq_catalog tables.

Supported formats:
  skhash        SKHASH delimited polarity table
  ncsn          NCSN/hypoinverse archive (alias hypoinverse)
  hash1         HASH driver 1 fixed-width file
  hash3         HASH driver 2, 3, 5 fixed-width file (aliases hash2, hash5)
  hash4         HASH driver 4 fixed-width file
  quakeml       QuakeML 1.2 document

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (POLCAT_*)
  3. Config file (~/.config/polcat/config.yaml)
  4. Built-in defaults

Environment Variables:
  Nested fields use underscores (ingest.format → POLCAT_INGEST_FORMAT).

  Examples:
    POLCAT_INGEST_FORMAT            Format of input files
    POLCAT_INGEST_KEY_FIELDS        Station key components
    POLCAT_EXPORT_DIR               Directory for output tables
    POLCAT_LOG_LEVEL                Log level (debug/info/warn/error)
    POLCAT_JOBS_NUMBER              Files decoded concurrently`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "polcat version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "version for polcat")

	rootCmd.AddCommand(
		getIngestCmd(),
		getBatchCmd(),
		getPolhashCmd(),
		getFormatsCmd(),
	)
	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.New().Log
	if err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfgIngest = cfgViper.Ingest
	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded", "config_file", config.ConfigFilePath(homeDir))
	return nil
}

// reconfigureLogging reinitializes the logger with the loaded configuration.
func reconfigureLogging(cfg *config.Config) error {
	logDir := config.LogDir(cfg.HomeDir)
	return iologger.Init(logDir, cfg.Log)
}

func runRoot(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Environment variables are bound one by one so the allowed set is
	// visible here. They match the fields of config.ToOptions().
	v.SetEnvPrefix("POLCAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Ingest configuration
	v.BindEnv("ingest.format", "POLCAT_INGEST_FORMAT")
	v.BindEnv("ingest.key_fields", "POLCAT_INGEST_KEY_FIELDS")
	v.BindEnv("ingest.p_weight_i", "POLCAT_INGEST_P_WEIGHT_I")
	v.BindEnv("ingest.p_weight_e", "POLCAT_INGEST_P_WEIGHT_E")
	v.BindEnv("ingest.use_weight_code", "POLCAT_INGEST_USE_WEIGHT_CODE")
	v.BindEnv("ingest.station_name_length", "POLCAT_INGEST_STATION_NAME_LENGTH")

	// Export configuration
	v.BindEnv("export.dir", "POLCAT_EXPORT_DIR")
	v.BindEnv("export.delimiter", "POLCAT_EXPORT_DELIMITER")
	v.BindEnv("export.sqlite_path", "POLCAT_EXPORT_SQLITE_PATH")
	v.BindEnv("export.metrics_file", "POLCAT_EXPORT_METRICS_FILE")

	// Log configuration
	v.BindEnv("log.level", "POLCAT_LOG_LEVEL")
	v.BindEnv("log.format", "POLCAT_LOG_FORMAT")
	v.BindEnv("log.destination", "POLCAT_LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "POLCAT_JOBS_NUMBER")

	v.AutomaticEnv()
}
