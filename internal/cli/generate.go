package cli

import (
	"fmt"
	"strings"

	"kyc-screening/internal/generator"
	"kyc-screening/internal/models"

	urfave "github.com/urfave/cli/v2"
)

const generateCountDefault = 10

var (
	riskProfileFlag = &urfave.StringFlag{
		Name:  "risk",
		Usage: "Risk profile of generated customers [low, medium, high] (default: random)",
	}

	countFlag = &urfave.IntFlag{
		Name:  "count",
		Usage: "Number of customers to generate",
		Value: generateCountDefault,
	}

	screenGeneratedFlag = &urfave.BoolFlag{
		Name:  "screen",
		Usage: "Screen the generated customers as a batch",
	}

	seedFlag = &urfave.Int64Flag{
		Name:  "seed",
		Usage: "Random seed for a reproducible set of customers",
	}

	generateCmd = &urfave.Command{
		Name:  "generate",
		Usage: "Generate test customers with a given risk profile",
		UsageText: `kyc-screening generate --risk high --count 5
   kyc-screening generate --count 100 --screen`,
		Action: cmdGenerate,
		Flags: []urfave.Flag{
			riskProfileFlag,
			countFlag,
			screenGeneratedFlag,
			seedFlag,
		},
	}
)

func cmdGenerate(c *urfave.Context) error {
	risk := strings.ToLower(c.String(riskProfileFlag.Name))
	switch risk {
	case "", generator.RiskLow, generator.RiskMedium, generator.RiskHigh:
	default:
		return fmt.Errorf("unsupported risk profile: %s", risk)
	}

	count := c.Int(countFlag.Name)
	if count <= 0 {
		return fmt.Errorf("count must be positive, got %d", count)
	}

	gen := generator.NewCustomerGenerator()
	if c.IsSet(seedFlag.Name) {
		gen = generator.NewCustomerGeneratorWithSeed(c.Int64(seedFlag.Name))
	}
	customers := gen.GenerateBatch(count, risk)

	if !c.Bool(screenGeneratedFlag.Name) {
		if err := encode(c, customers); err != nil {
			return fmt.Errorf("error encoding customers: %w", err)
		}
		return nil
	}

	resp, err := getConfig(c).Core.ScreeningService.ScreenBatch(c.Context, &models.BatchScreeningRequest{
		PerformedBy: cliServiceName,
		Customers:   customers,
	})
	if err != nil {
		return fmt.Errorf("batch screening failed: %w", err)
	}
	if err := encode(c, resp); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}
