// internal/commands/root.go
package tccc

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mwiater/tccc/internal/appconfig"
	"github.com/mwiater/tccc/internal/logging"
)

const envPrefix = "TCCC"

var (
	cfgFile       string
	urgentFlag    bool
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// rootCmd answers a single query given as arguments, or starts the
// interactive loop when there are none.
var rootCmd = &cobra.Command{
	Use:   "tccc [query...]",
	Short: "tccc: offline Tactical Combat Casualty Care emergency reference",
	Long: `tccc answers emergency medical questions from the TCCC handbook.

The handbook is split into chunks, the chunks most relevant to the question are
selected by keyword scoring, and a local language model turns them into field
guidance. Prefix a query with "urgent:", "emergency:" or "critical:" (or pass
--urgent) to mark it urgent.`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		cfg.ConfigPath = viper.ConfigFileUsed()
		if err := cfg.Validate(); err != nil {
			return err
		}
		currentConfig = &cfg

		if err := logging.Init(currentConfig.LogFilePath(), currentConfig.Debug); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	RunE: runRoot,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	err := rootCmd.Execute()
	_ = logging.Close()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")
	flags.StringP("document", "d", appconfig.DefaultDocumentPath, "TCCC handbook to load (.pdf, .txt or .md); alias --pdf")
	flags.String("host", "", "generation backend base URL")
	flags.String("model", "", "generation model name")
	flags.String("backend", "", "generation backend type (ollama or openai)")
	flags.Int("timeout", 0, "seconds to wait for a generation response (0 = default)")
	flags.Bool("debug", false, "enable debug logging")
	flags.Bool("plain", false, "disable colours in terminal output")
	flags.String("logFile", "", "path to the log file")
	flags.String("metricsFile", "", "write Prometheus metrics to this file on exit")

	rootCmd.Flags().BoolVarP(&urgentFlag, "urgent", "u", false, "mark the query as urgent")
	rootCmd.SetGlobalNormalizationFunc(normalizeFlagName)

	bindings := map[string]string{
		"document":    "document",
		"host.url":    "host",
		"host.model":  "model",
		"host.type":   "backend",
		"timeout":     "timeout",
		"debug":       "debug",
		"plain":       "plain",
		"logFile":     "logFile",
		"metricsFile": "metricsFile",
	}
	for key, flag := range bindings {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}
}

// normalizeFlagName maps --pdf onto --document.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if name == "pdf" {
		name = "document"
	}
	return pflag.NormalizedName(name)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// ensureConfigLoaded reads the config and sets safe defaults. A missing
// config file is not an error.
func ensureConfigLoaded() error {
	for key, value := range appconfig.DefaultSettings() {
		viper.SetDefault(key, value)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}
