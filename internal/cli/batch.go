package cli

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"kyc-screening/internal/models"

	urfave "github.com/urfave/cli/v2"
)

var (
	workersFlag = &urfave.IntFlag{
		Name:  "workers",
		Usage: "Number of parallel screening workers (default: batch_workers from rules)",
	}

	batchTypeFlag = &urfave.StringFlag{
		Name:  "type",
		Usage: "Screening type for the batch",
		Value: models.ScreeningTypeBatch,
	}

	batchCmd = &urfave.Command{
		Name:      "batch",
		Aliases:   []string{"b"},
		Usage:     "Screen customers from a CSV file",
		ArgsUsage: "FILE",
		UsageText: `kyc-screening batch --workers 8 customers.csv

   CSV header: customer_code,full_name_en,full_name_ar,date_of_birth,nationality_code,id_type,id_number,gender,occupation,customer_type`,
		Action: cmdBatch,
		Flags: []urfave.Flag{
			workersFlag,
			batchTypeFlag,
		},
	}
)

func cmdBatch(c *urfave.Context) error {
	path := c.Args().First()
	if path == "" {
		return urfave.ShowSubcommandHelp(c)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open batch file: %w", err)
	}
	defer f.Close()

	customers, err := readCustomersCSV(f)
	if err != nil {
		return err
	}

	cfg := getConfig(c)
	if workers := c.Int(workersFlag.Name); workers > 0 {
		cfg.Core.Rules.Screening.BatchWorkers = workers
	}

	resp, err := cfg.Core.ScreeningService.ScreenBatch(c.Context, &models.BatchScreeningRequest{
		ScreeningType: strings.ToUpper(c.String(batchTypeFlag.Name)),
		PerformedBy:   cliServiceName,
		Customers:     customers,
	})
	if err != nil {
		return fmt.Errorf("batch screening failed: %w", err)
	}

	if err := encode(c, resp); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}

var customerColumns = map[string]func(c *models.Customer, v string){
	"customer_code":    func(c *models.Customer, v string) { c.CustomerCode = v },
	"full_name_en":     func(c *models.Customer, v string) { c.FullNameEn = v },
	"full_name_ar":     func(c *models.Customer, v string) { c.FullNameAr = v },
	"date_of_birth":    func(c *models.Customer, v string) { c.DateOfBirth = v },
	"nationality_code": func(c *models.Customer, v string) { c.NationalityCode = strings.ToUpper(v) },
	"nationality_name": func(c *models.Customer, v string) { c.NationalityName = v },
	"id_type":          func(c *models.Customer, v string) { c.IDType = strings.ToUpper(v) },
	"id_number":        func(c *models.Customer, v string) { c.IDNumber = v },
	"gender":           func(c *models.Customer, v string) { c.Gender = strings.ToUpper(v) },
	"occupation":       func(c *models.Customer, v string) { c.Occupation = v },
	"customer_type":    func(c *models.Customer, v string) { c.CustomerType = strings.ToUpper(v) },
	"pep_flag":         func(c *models.Customer, v string) { c.PEPFlag, _ = strconv.ParseBool(v) },
	"notes":            func(c *models.Customer, v string) { c.Notes = v },
}

// readCustomersCSV читает клиентов из CSV с заголовком; неизвестные колонки игнорируются
func readCustomersCSV(r io.Reader) ([]models.Customer, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("batch file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	setters := make([]func(*models.Customer, string), len(header))
	for i, name := range header {
		setters[i] = customerColumns[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))]
	}

	var customers []models.Customer
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}

		var customer models.Customer
		for i, value := range record {
			if i < len(setters) && setters[i] != nil {
				setters[i](&customer, strings.TrimSpace(value))
			}
		}
		customers = append(customers, customer)
	}

	if len(customers) == 0 {
		return nil, errors.New("batch file contains no customers")
	}
	return customers, nil
}
