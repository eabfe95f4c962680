// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the getdata-demo CLI.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/pdiddy/getdata-demo/internal/demo"
	"github.com/pdiddy/getdata-demo/internal/httputil"
	"github.com/pdiddy/getdata-demo/internal/secrets"
	"github.com/pdiddy/getdata-demo/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is configured in PersistentPreRunE.
var logger = slog.Default()

// rootCmd runs the search demo when invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "getdata-demo",
	Short: "Authenticate to Infobel GetData and print one page of business listings",
	Long: `getdata-demo exchanges INFOBEL_USERNAME and INFOBEL_PASSWORD for an OAuth
access token, runs a fixed GetData search, and prints the first page of
business records.

Credentials may also come from a .env file or from a .secrets/ directory
holding infobel-username and infobel-password files. Variables already set
in the environment take precedence.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runSearch,
}

// viperFlags maps config keys to the persistent flags that set them.
var viperFlags = map[string]string{
	"env_file":     "env-file",
	"secrets_dir":  "secrets-dir",
	"http.timeout": "timeout",
	"output":       "output",
	"no_color":     "no-color",
	"log.level":    "log-level",
	"log.file":     "log-file",
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./getdata-demo.yaml or ~/.config/getdata-demo/getdata-demo.yaml)")
	pf.String("env-file", ".env", "dotenv file to load before reading credentials")
	pf.String("secrets-dir", ".secrets/", "directory of secret files (infobel-username, infobel-password)")
	pf.Duration("timeout", httputil.DefaultTimeout, "timeout for each API request")
	pf.StringP("output", "o", "text", "output format: text, json, yaml")
	pf.Bool("no-color", false, "disable styled output")
	pf.String("log-level", "warn", "log level: debug, info, warn, error")
	pf.String("log-file", "", "write JSON logs to a rotating file instead of stderr")

	for key, flag := range viperFlags {
		if err := viper.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", flag, err))
		}
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("getdata-demo")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "getdata-demo"))
		}
	}

	viper.SetDefault("http.user_agent", "getdata-demo/"+version)
	viper.SetDefault("log.max_size", 10)
	viper.SetDefault("log.max_files", 5)

	viper.SetEnvPrefix("GETDATA_DEMO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setup configures logging and loads credentials into the environment
// before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	l, err := newLogger(LogConfig{
		Level:    viper.GetString("log.level"),
		File:     viper.GetString("log.file"),
		MaxSize:  viper.GetInt("log.max_size"),
		MaxFiles: viper.GetInt("log.max_files"),
	}, os.Stderr)
	if err != nil {
		return err
	}
	logger = l
	slog.SetDefault(l)

	envFile := viper.GetString("env_file")
	loaded, err := secrets.LoadEnvFile(envFile)
	if err != nil {
		return err
	}
	if loaded {
		logger.Info("loaded env file", "path", envFile)
	}

	s, err := secrets.Load(viper.GetString("secrets_dir"))
	if err != nil {
		return err
	}
	exported, err := secrets.Export(s)
	if err != nil {
		return err
	}
	if len(exported) > 0 {
		logger.Info("loaded secrets", "vars", exported)
	}
	return nil
}

// demoConfig assembles the run configuration from viper.
func demoConfig() types.DemoConfig {
	return types.DemoConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("http.timeout"),
			UserAgent: viper.GetString("http.user_agent"),
		},
		Output:            viper.GetString("output"),
		Styled:            !viper.GetBool("no_color") && term.IsTerminal(int(os.Stdout.Fd())),
		SearchURL:         viper.GetString("endpoints.search"),
		BizSearchTokenURL: viper.GetString("endpoints.token_bizsearch"),
		GetDataTokenURL:   viper.GetString("endpoints.token_getdata"),
	}
}

// execute runs the CLI with args and returns the process exit status.
// Results and errors both go to stdout.
func execute(args []string, stdout io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(stdout, err)
		return demo.ExitCode(err)
	}
	return 0
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout))
}
