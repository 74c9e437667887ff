package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"kyc-screening/internal/models"
	"kyc-screening/internal/report"

	urfave "github.com/urfave/cli/v2"
)

const menuText = `
==================================================
        KYC & Sanctions Screening System
==================================================
 1. Screen new customer
 2. Screening history
 3. Search sanctions lists
 4. Statistics
 5. Export data
 6. View configuration
 7. Reports
 8. Help
 9. Exit
==================================================`

const helpText = `
Screening checks a customer against the loaded sanctions lists, calculates
a risk score and decides a result:
  CLEAR               no sanctions matches
  CLEAR_WITH_WARNING  partial matches only, enhanced due diligence
  REVIEW_REQUIRED     high or critical risk, manual review needed
  REJECTED            exact match with a sanctioned entity
Accepted customers (CLEAR, CLEAR_WITH_WARNING) are saved to the database.
Run "kyc-screening --help" for the non-interactive commands.`

var interactiveCmd = &urfave.Command{
	Name:   "interactive",
	Usage:  "Start the interactive menu (default when no command is given)",
	Action: cmdInteractive,
}

// session хранит ввод и вывод интерактивного меню
type session struct {
	c   *urfave.Context
	ctx context.Context
	in  *bufio.Scanner
	out io.Writer
}

func cmdInteractive(c *urfave.Context) error {
	if c.Args().Present() {
		return fmt.Errorf("unknown command: %s", c.Args().First())
	}

	s := &session{
		c:   c,
		ctx: c.Context,
		in:  bufio.NewScanner(c.App.Reader),
		out: c.App.Writer,
	}
	return s.run()
}

func (s *session) run() error {
	for {
		fmt.Fprintln(s.out, menuText)
		choice, ok := s.prompt("Select an option (1-9)")
		if !ok {
			return nil
		}

		var err error
		switch choice {
		case "1":
			err = s.screenCustomer()
		case "2":
			err = s.history()
		case "3":
			err = s.search()
		case "4":
			err = s.statistics()
		case "5":
			err = s.export()
		case "6":
			err = s.showConfig()
		case "7":
			err = s.reports()
		case "8":
			fmt.Fprintln(s.out, helpText)
		case "9", "q", "exit":
			fmt.Fprintln(s.out, "Goodbye")
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid option, choose 1-9")
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
	}
}

// prompt читает строку ввода; false означает конец ввода
func (s *session) prompt(label string) (string, bool) {
	fmt.Fprintf(s.out, "%s: ", label)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *session) promptDefault(label, def string) (string, error) {
	v, ok := s.prompt(fmt.Sprintf("%s [%s]", label, def))
	if !ok {
		return "", io.EOF
	}
	if v == "" {
		return def, nil
	}
	return v, nil
}

func (s *session) confirm(label string) (bool, error) {
	v, ok := s.prompt(label + " (y/N)")
	if !ok {
		return false, io.EOF
	}
	v = strings.ToLower(v)
	return v == "y" || v == "yes", nil
}

func (s *session) screenCustomer() error {
	fields := []struct {
		label string
		set   func(c *models.Customer, v string)
	}{
		{"Full name (English)", func(c *models.Customer, v string) { c.FullNameEn = v }},
		{"Full name (Arabic, optional)", func(c *models.Customer, v string) { c.FullNameAr = v }},
		{"Date of birth (YYYY-MM-DD)", func(c *models.Customer, v string) { c.DateOfBirth = v }},
		{"Nationality code (e.g. EG)", func(c *models.Customer, v string) { c.NationalityCode = strings.ToUpper(v) }},
		{"ID number", func(c *models.Customer, v string) { c.IDNumber = v }},
		{"Gender (M/F/O)", func(c *models.Customer, v string) { c.Gender = strings.ToUpper(v) }},
		{"Occupation", func(c *models.Customer, v string) { c.Occupation = v }},
	}

	customer := models.Customer{}
	for _, f := range fields {
		v, ok := s.prompt(f.label)
		if !ok {
			return io.EOF
		}
		f.set(&customer, v)
	}
	idType, err := s.promptDefault("ID type", models.IDTypePassport)
	if err != nil {
		return err
	}
	customer.IDType = strings.ToUpper(idType)

	saveReport, err := s.confirm("Save JSON report")
	if err != nil {
		return err
	}

	resp, err := getConfig(s.c).Core.ScreeningService.ScreenCustomer(s.ctx, &models.ScreeningRequest{
		Customer:      customer,
		ScreeningType: models.ScreeningTypeOnboarding,
		PerformedBy:   cliServiceName,
		SaveReport:    saveReport,
	})
	if err != nil {
		return err
	}

	s.printScreening(resp.Screening)
	if resp.Report != nil && len(resp.Report.Recommendations) > 0 {
		fmt.Fprintln(s.out, "\nRecommendations:")
		for _, r := range resp.Report.Recommendations {
			fmt.Fprintf(s.out, "  - %s\n", r)
		}
	}
	if resp.Saved {
		fmt.Fprintf(s.out, "\nCustomer %s saved\n", resp.Screening.CustomerCode)
	}
	if resp.ReportPath != "" {
		fmt.Fprintf(s.out, "Report saved to %s\n", resp.ReportPath)
	}
	return nil
}

func (s *session) printScreening(sc *models.Screening) {
	fmt.Fprintf(s.out, "\nScreening ID:  %s\n", sc.ScreeningID)
	fmt.Fprintf(s.out, "Customer:      %s\n", sc.CustomerCode)
	fmt.Fprintf(s.out, "Result:        %s\n", sc.Result)
	fmt.Fprintf(s.out, "Risk:          %d (%s)\n", sc.RiskScore, sc.RiskLevel)
	fmt.Fprintf(s.out, "Matches:       %d (exact %d, partial %d)\n", sc.TotalMatches, sc.ExactMatches, sc.PartialMatches)
	for _, m := range sc.Matches {
		fmt.Fprintf(s.out, "  - %s [%s] %s %.1f%%\n", m.SanctionName, m.SanctionSource, m.MatchType, m.MatchScore)
	}
	for _, f := range sc.RiskFactors {
		fmt.Fprintf(s.out, "  * %s\n", f)
	}
}

func (s *session) history() error {
	list, err := getConfig(s.c).Core.ScreeningService.ListScreenings(s.ctx, models.ScreeningFilter{Limit: historyLimitDefault})
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(s.out, "No screenings found")
		return nil
	}
	for _, sc := range list {
		fmt.Fprintf(s.out, "%s  %-20s  %-18s  %3d %-8s  %s\n",
			sc.ScreeningDate.Format("2006-01-02 15:04"), sc.CustomerCode, sc.Result,
			sc.RiskScore, sc.RiskLevel, sc.ScreeningID)
	}
	return nil
}

func (s *session) search() error {
	query, ok := s.prompt("Name to search")
	if !ok {
		return io.EOF
	}
	if query == "" {
		return nil
	}
	fuzzy, err := s.confirm("Fuzzy search")
	if err != nil {
		return err
	}

	results, err := getConfig(s.c).Core.SanctionsService.Search(s.ctx, query, searchLimitDefault, fuzzy)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Found %d record(s)\n", len(results))
	for _, r := range results {
		line := fmt.Sprintf("  [%d] %s (%s %s, %s)", r.ID, r.FullNameEn, r.ListSource, r.ReferenceID, r.NationalityCode)
		if fuzzy {
			line += fmt.Sprintf(" score %.1f", r.Score)
		}
		fmt.Fprintln(s.out, line)
	}
	return nil
}

func (s *session) statistics() error {
	summary, err := getConfig(s.c).Core.ReportService.Summary(s.ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, summary)
	return nil
}

func (s *session) export() error {
	kind, err := s.promptDefault(fmt.Sprintf("Export kind (%s)", strings.Join(report.ExportKinds(), ", ")), report.ExportScreenings)
	if err != nil {
		return err
	}
	path, err := getConfig(s.c).Core.ReportService.Export(s.ctx, strings.ToLower(kind))
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Exported to %s\n", path)
	return nil
}

func (s *session) showConfig() error {
	view, err := configView(s.c)
	if err != nil {
		return err
	}
	return encode(s.c, view)
}

func (s *session) reports() error {
	kind, err := s.promptDefault("Report (risk, activity, compliance)", report.KindCompliance)
	if err != nil {
		return err
	}
	daysStr, err := s.promptDefault("Period in days", strconv.Itoa(report.DefaultPeriodDays))
	if err != nil {
		return err
	}
	days, err := strconv.Atoi(daysStr)
	if err != nil || days <= 0 {
		return fmt.Errorf("invalid period: %s", daysStr)
	}

	rep, err := getConfig(s.c).Core.ReportService.ComplianceReport(s.ctx, strings.ToLower(kind), days)
	if err != nil {
		return err
	}
	return encode(s.c, rep)
}
