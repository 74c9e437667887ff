package cli

import (
	"fmt"
	"strings"

	"kyc-screening/internal/models"

	urfave "github.com/urfave/cli/v2"
)

var (
	nameFlag = &urfave.StringFlag{
		Name:  "name",
		Usage: "Full name in English",
	}

	nameArFlag = &urfave.StringFlag{
		Name:  "name-ar",
		Usage: "Full name in Arabic",
	}

	dobFlag = &urfave.StringFlag{
		Name:  "dob",
		Usage: "Date of birth (YYYY-MM-DD)",
	}

	nationalityFlag = &urfave.StringFlag{
		Name:  "nationality",
		Usage: "Nationality code (ISO 3166-1 alpha-2, e.g. EG)",
	}

	idTypeFlag = &urfave.StringFlag{
		Name:  "id-type",
		Usage: "ID type [PASSPORT, NATIONAL_ID, DRIVERS_LICENSE, RESIDENCE_PERMIT]",
		Value: models.IDTypePassport,
	}

	idNumberFlag = &urfave.StringFlag{
		Name:  "id-number",
		Usage: "ID document number",
	}

	genderFlag = &urfave.StringFlag{
		Name:  "gender",
		Usage: "Gender [M, F, O]",
	}

	occupationFlag = &urfave.StringFlag{
		Name:  "occupation",
		Usage: "Occupation",
	}

	codeFlag = &urfave.StringFlag{
		Name:  "code",
		Usage: "Customer code (generated when empty)",
	}

	screeningTypeFlag = &urfave.StringFlag{
		Name:  "type",
		Usage: "Screening type [ONBOARDING, PERIODIC, AD_HOC, BATCH]",
		Value: models.ScreeningTypeOnboarding,
	}

	saveReportFlag = &urfave.BoolFlag{
		Name:  "save-report",
		Usage: "Save the JSON report to the reports directory",
	}

	screenCmd = &urfave.Command{
		Name:    "screen",
		Aliases: []string{"s"},
		Usage:   "Screen a customer against the sanctions lists",
		UsageText: `kyc-screening screen --name "Karim Mostafa" --nationality EG --id-number A7654321 --dob 1985-03-10
   kyc-screening --format yaml screen --name "Mohamed Hassan" --nationality SY --id-number S78901234 --save-report`,
		Action: cmdScreen,
		Flags: []urfave.Flag{
			nameFlag,
			nameArFlag,
			dobFlag,
			nationalityFlag,
			idTypeFlag,
			idNumberFlag,
			genderFlag,
			occupationFlag,
			codeFlag,
			screeningTypeFlag,
			saveReportFlag,
		},
	}
)

func cmdScreen(c *urfave.Context) error {
	cfg := getConfig(c)

	req := &models.ScreeningRequest{
		Customer: models.Customer{
			CustomerCode:    c.String(codeFlag.Name),
			FullNameEn:      strings.TrimSpace(c.String(nameFlag.Name)),
			FullNameAr:      strings.TrimSpace(c.String(nameArFlag.Name)),
			DateOfBirth:     c.String(dobFlag.Name),
			NationalityCode: strings.ToUpper(c.String(nationalityFlag.Name)),
			IDType:          strings.ToUpper(c.String(idTypeFlag.Name)),
			IDNumber:        strings.TrimSpace(c.String(idNumberFlag.Name)),
			Gender:          strings.ToUpper(c.String(genderFlag.Name)),
			Occupation:      c.String(occupationFlag.Name),
		},
		ScreeningType: c.String(screeningTypeFlag.Name),
		PerformedBy:   cliServiceName,
		SaveReport:    c.Bool(saveReportFlag.Name),
	}

	resp, err := cfg.Core.ScreeningService.ScreenCustomer(c.Context, req)
	if err != nil {
		return fmt.Errorf("screening failed: %w", err)
	}

	if err := encode(c, resp); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}
