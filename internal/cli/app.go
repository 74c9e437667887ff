// Package cli реализует консольную утилиту kyc-screening: интерактивное меню
// и команды для скрининга, поиска, статистики, выгрузок и отчетов.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"kyc-screening/internal/bootstrap"
	"kyc-screening/internal/config"
	"kyc-screening/internal/logger"

	"github.com/rs/zerolog/log"
	urfave "github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const (
	appConfigKey   = "app-config"
	cliServiceName = "kyc-cli"

	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	version = "v0.1.0-default"
	commit  = ""
	date    = ""

	debugFlag = &urfave.BoolFlag{
		Name:  "debug",
		Usage: "Prints verbose logs (optional, default: false)",
	}

	dbFilePathFlag = &urfave.StringFlag{
		Name:    "db",
		Usage:   "Path to the SQLite database file (default: $DB_PATH or ./data/kyc_screening.db)",
		EnvVars: []string{"KYC_DB"},
	}

	formatFlag = &urfave.StringFlag{
		Name:  "format",
		Usage: "Output format [json, yaml]",
		Value: formatJSON,
	}

	rulesFlag = &urfave.StringFlag{
		Name:  "rules",
		Usage: "Path to the YAML screening rules file (default: $RULES_FILE or built-in rules)",
	}

	interactiveFlag = &urfave.BoolFlag{
		Name:    "interactive",
		Aliases: []string{"i"},
		Usage:   "Start the interactive menu",
	}
)

// Execute создает и запускает консольное приложение
func Execute() {
	logger.Init("info", true)

	app := newApp(os.Stdin, os.Stdout)
	if err := app.Run(os.Args); err != nil {
		log.Error().Err(err).Msg("fatal error")
		os.Exit(1)
	}
}

type appConfig struct {
	Config *config.Config
	Core   *bootstrap.Core
	Format string
}

func getConfig(c *urfave.Context) *appConfig {
	return c.App.Metadata[appConfigKey].(*appConfig)
}

func newApp(in io.Reader, out io.Writer) *urfave.App {
	return &urfave.App{
		Name:                 "kyc-screening",
		Version:              fmt.Sprintf("%s (%s - %s)", version, commit, date),
		Compiled:             time.Now(),
		EnableBashCompletion: true,
		HideHelpCommand:      true,
		Usage:                "KYC and sanctions screening tool",
		Reader:               in,
		Writer:               out,
		Flags: []urfave.Flag{
			debugFlag,
			dbFilePathFlag,
			formatFlag,
			rulesFlag,
			interactiveFlag,
		},
		Commands: []*urfave.Command{
			interactiveCmd,
			screenCmd,
			batchCmd,
			historyCmd,
			searchCmd,
			statsCmd,
			exportCmd,
			configCmd,
			reportCmd,
			importCmd,
			reviewCmd,
			generateCmd,
		},
		// Без команды (или с --interactive) запускается интерактивное меню
		Action: cmdInteractive,
		Before: func(c *urfave.Context) error {
			cfg := config.Load()

			level := cfg.LogLevel
			if c.Bool(debugFlag.Name) {
				level = "debug"
			}
			logger.Init(level, true)

			if p := c.String(dbFilePathFlag.Name); p != "" {
				cfg.DB.DBPath = p
			}
			if p := c.String(rulesFlag.Name); p != "" {
				cfg.RulesFile = p
			}

			format := strings.ToLower(c.String(formatFlag.Name))
			if format == "yml" {
				format = formatYAML
			}
			if format != formatJSON && format != formatYAML {
				return fmt.Errorf("unsupported output format: %s", format)
			}

			rules, err := bootstrap.LoadRules(cfg)
			if err != nil {
				return fmt.Errorf("loading rules: %w", err)
			}

			core, err := bootstrap.NewCore(c.Context, cfg, rules, bootstrap.CoreOptions{Service: cliServiceName})
			if err != nil {
				return fmt.Errorf("initializing storage: %w", err)
			}

			c.App.Metadata[appConfigKey] = &appConfig{
				Config: cfg,
				Core:   core,
				Format: format,
			}
			return nil
		},
		After: func(c *urfave.Context) error {
			if cfg, ok := c.App.Metadata[appConfigKey].(*appConfig); ok && cfg.Core != nil {
				cfg.Core.Close()
			}
			return nil
		},
	}
}

// encode выводит значение в формате, выбранном флагом --format
func encode(c *urfave.Context, v any) error {
	if getConfig(c).Format == formatYAML {
		e := yaml.NewEncoder(c.App.Writer)
		defer e.Close()
		return e.Encode(v)
	}
	e := json.NewEncoder(c.App.Writer)
	e.SetIndent("", "  ")
	return e.Encode(v)
}
