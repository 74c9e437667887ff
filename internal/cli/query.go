package cli

import (
	"fmt"
	"strings"

	"kyc-screening/internal/config"
	"kyc-screening/internal/models"
	"kyc-screening/internal/report"
	"kyc-screening/internal/services"

	urfave "github.com/urfave/cli/v2"
)

const (
	historyLimitDefault = 20
	searchLimitDefault  = 50
)

var (
	customerFlag = &urfave.StringFlag{
		Name:  "customer",
		Usage: "Filter by customer code",
	}

	resultFlag = &urfave.StringFlag{
		Name:  "result",
		Usage: "Filter by screening result (CLEAR, REJECTED, ...)",
	}

	limitFlag = &urfave.IntFlag{
		Name:  "limit",
		Usage: "Limit the number of results",
		Value: historyLimitDefault,
	}

	fuzzyFlag = &urfave.BoolFlag{
		Name:  "fuzzy",
		Usage: "Rank results by fuzzy name similarity and include close matches",
	}

	summaryFlag = &urfave.BoolFlag{
		Name:  "summary",
		Usage: "Print a human-readable summary instead of structured output",
	}

	exportDirFlag = &urfave.StringFlag{
		Name:  "dir",
		Usage: "Export directory (default: $EXPORT_DIR or ./exports)",
	}

	daysFlag = &urfave.IntFlag{
		Name:  "days",
		Usage: "Reporting period in days",
		Value: report.DefaultPeriodDays,
	}

	historyCmd = &urfave.Command{
		Name:    "history",
		Aliases: []string{"h"},
		Usage:   "List screening history",
		Action:  cmdHistory,
		Flags: []urfave.Flag{
			customerFlag,
			resultFlag,
			limitFlag,
		},
	}

	searchCmd = &urfave.Command{
		Name:      "search",
		Usage:     "Search the sanctions lists by name",
		ArgsUsage: "QUERY",
		UsageText: `kyc-screening search Petrov
   kyc-screening search --fuzzy "Mohamed Hasan"`,
		Action: cmdSearch,
		Flags: []urfave.Flag{
			fuzzyFlag,
			&urfave.IntFlag{
				Name:  limitFlag.Name,
				Usage: limitFlag.Usage,
				Value: searchLimitDefault,
			},
		},
	}

	statsCmd = &urfave.Command{
		Name:   "stats",
		Usage:  "Show database statistics",
		Action: cmdStats,
		Flags: []urfave.Flag{
			summaryFlag,
		},
	}

	exportCmd = &urfave.Command{
		Name:      "export",
		Usage:     fmt.Sprintf("Export data [%s]", strings.Join(report.ExportKinds(), ", ")),
		ArgsUsage: "KIND",
		Action:    cmdExport,
		Flags: []urfave.Flag{
			exportDirFlag,
		},
	}

	configCmd = &urfave.Command{
		Name:   "config",
		Usage:  "Show the active configuration and screening rules",
		Action: cmdConfig,
	}

	reportCmd = &urfave.Command{
		Name:      "report",
		Usage:     "Generate a compliance report [risk, activity, compliance]",
		ArgsUsage: "KIND",
		Action:    cmdReport,
		Flags: []urfave.Flag{
			daysFlag,
		},
	}

	importCmd = &urfave.Command{
		Name:      "import",
		Usage:     "Import a sanctions list from a JSON/CSV file or URL",
		ArgsUsage: "FILE|URL",
		Action:    cmdImport,
	}

	reviewerFlag = &urfave.StringFlag{
		Name:     "reviewer",
		Usage:    "Compliance officer name",
		Required: true,
	}

	reviewResultFlag = &urfave.StringFlag{
		Name:     "result",
		Usage:    "Review decision [CLEAR, CLEAR_WITH_WARNING, REVIEW_REQUIRED, REJECTED]",
		Required: true,
	}

	notesFlag = &urfave.StringFlag{
		Name:  "notes",
		Usage: "Review notes",
	}

	reviewCmd = &urfave.Command{
		Name:      "review",
		Usage:     "Record a compliance officer decision for a screening",
		ArgsUsage: "SCREENING_ID",
		UsageText: `kyc-screening review --reviewer "J. Smith" --result CLEAR --notes "False positive" SCR20240615103000A1B2C3D4`,
		Action:    cmdReview,
		Flags: []urfave.Flag{
			reviewerFlag,
			reviewResultFlag,
			notesFlag,
		},
	}
)

func cmdHistory(c *urfave.Context) error {
	cfg := getConfig(c)

	list, err := cfg.Core.ScreeningService.ListScreenings(c.Context, models.ScreeningFilter{
		CustomerCode: c.String(customerFlag.Name),
		Result:       strings.ToUpper(c.String(resultFlag.Name)),
		Limit:        c.Int(limitFlag.Name),
	})
	if err != nil {
		return fmt.Errorf("failed to list screenings: %w", err)
	}

	if err := encode(c, list); err != nil {
		return fmt.Errorf("error encoding list: %w", err)
	}
	return nil
}

// SearchResult представляет результат команды search
type SearchResult struct {
	Query   string                         `json:"query" yaml:"query"`
	Fuzzy   bool                           `json:"fuzzy" yaml:"fuzzy"`
	Count   int                            `json:"count" yaml:"count"`
	Results []*models.SanctionSearchResult `json:"results" yaml:"results"`
}

func cmdSearch(c *urfave.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return urfave.ShowSubcommandHelp(c)
	}

	fuzzy := c.Bool(fuzzyFlag.Name)
	results, err := getConfig(c).Core.SanctionsService.Search(c.Context, query, c.Int(limitFlag.Name), fuzzy)
	if err != nil {
		return fmt.Errorf("failed to search sanctions: %w", err)
	}

	res := &SearchResult{
		Query:   query,
		Fuzzy:   fuzzy,
		Count:   len(results),
		Results: results,
	}
	if err := encode(c, res); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}

func cmdStats(c *urfave.Context) error {
	reports := getConfig(c).Core.ReportService

	if c.Bool(summaryFlag.Name) {
		summary, err := reports.Summary(c.Context)
		if err != nil {
			return fmt.Errorf("failed to build summary: %w", err)
		}
		fmt.Fprintln(c.App.Writer, summary)
		return nil
	}

	stats, err := reports.Statistics(c.Context)
	if err != nil {
		return fmt.Errorf("failed to get statistics: %w", err)
	}
	if err := encode(c, stats); err != nil {
		return fmt.Errorf("error encoding statistics: %w", err)
	}
	return nil
}

// ExportResult представляет результат команды export
type ExportResult struct {
	Kind string `json:"kind" yaml:"kind"`
	Path string `json:"path" yaml:"path"`
}

func cmdExport(c *urfave.Context) error {
	kind := strings.ToLower(c.Args().First())
	if kind == "" {
		return urfave.ShowSubcommandHelp(c)
	}

	cfg := getConfig(c)
	reports := cfg.Core.ReportService
	if dir := c.String(exportDirFlag.Name); dir != "" {
		reports = services.NewReportService(cfg.Core.Repo, report.NewGenerator(cfg.Core.Rules), dir)
	}

	path, err := reports.Export(c.Context, kind)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if err := encode(c, &ExportResult{Kind: kind, Path: path}); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}

// ConfigView представляет активную конфигурацию для команды config
type ConfigView struct {
	Database   string        `json:"database" yaml:"database"`
	ReportsDir string        `json:"reports_dir" yaml:"reports_dir"`
	ExportDir  string        `json:"export_dir" yaml:"export_dir"`
	RulesFile  string        `json:"rules_file,omitempty" yaml:"rules_file,omitempty"`
	Sanctions  int           `json:"sanctions_loaded" yaml:"sanctions_loaded"`
	Rules      *config.Rules `json:"rules" yaml:"rules"`
}

func cmdConfig(c *urfave.Context) error {
	view, err := configView(c)
	if err != nil {
		return err
	}
	if err := encode(c, view); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	return nil
}

func configView(c *urfave.Context) (*ConfigView, error) {
	cfg := getConfig(c)

	count, err := cfg.Core.SanctionsService.Count(c.Context)
	if err != nil {
		return nil, fmt.Errorf("failed to count sanctions: %w", err)
	}

	return &ConfigView{
		Database:   cfg.Config.DB.DBPath,
		ReportsDir: cfg.Config.Output.ReportsDir,
		ExportDir:  cfg.Config.Output.ExportDir,
		RulesFile:  cfg.Config.RulesFile,
		Sanctions:  count,
		Rules:      cfg.Core.Rules,
	}, nil
}

func cmdReport(c *urfave.Context) error {
	kind := strings.ToLower(c.Args().First())
	if kind == "" {
		return urfave.ShowSubcommandHelp(c)
	}

	rep, err := getConfig(c).Core.ReportService.ComplianceReport(c.Context, kind, c.Int(daysFlag.Name))
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	if err := encode(c, rep); err != nil {
		return fmt.Errorf("error encoding report: %w", err)
	}
	return nil
}

func cmdImport(c *urfave.Context) error {
	location := c.Args().First()
	if location == "" {
		return urfave.ShowSubcommandHelp(c)
	}

	res, err := getConfig(c).Core.SanctionsService.Import(c.Context, location)
	if err != nil {
		return fmt.Errorf("failed to import sanctions: %w", err)
	}

	if err := encode(c, res); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}

func cmdReview(c *urfave.Context) error {
	screeningID := c.Args().First()
	if screeningID == "" {
		return urfave.ShowSubcommandHelp(c)
	}

	sc, err := getConfig(c).Core.ScreeningService.Review(c.Context, screeningID, &models.ReviewRequest{
		ReviewedBy: c.String(reviewerFlag.Name),
		Result:     c.String(reviewResultFlag.Name),
		Notes:      c.String(notesFlag.Name),
	})
	if err != nil {
		return fmt.Errorf("failed to review screening: %w", err)
	}

	if err := encode(c, sc); err != nil {
		return fmt.Errorf("error encoding screening: %w", err)
	}
	return nil
}
