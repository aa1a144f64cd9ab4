package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"portal_final_backend/internal/consultation/domain"
)

// requiredColumns are the header names the workbook format contracts on
// (§6 "Catalog file format"). Order in the sheet doesn't matter; presence
// does.
var requiredColumns = []string{
	"CommunityID",
	"Care Level",
	"Monthly Fee",
	"ZIP",
	"Work with Placement?",
	"Contract Rate",
	"Est. Waitlist",
	"Enhanced",
	"Enriched",
	"Deposit",
	"Move-In Fee",
	"Community Fee - One Time",
	"Pet Fee",
	"2nd Person Fee",
	"Apartment Type",
}

var zipPattern = regexp.MustCompile(`^\d{5}$`)

// LoadSummary reports load-time outcomes for the catalog-integrity error
// policy (§7 "Catalog integrity errors"): malformed rows are skipped, not
// fatal, and the counts are surfaced at startup.
type LoadSummary struct {
	RowsLoaded int
	RowsSkipped int
	Errors      []string
}

// LoadWorkbook reads the single-sheet tabular workbook at path and returns
// the normalized communities plus a load summary. Malformed rows are
// skipped and recorded rather than aborting the whole load.
func LoadWorkbook(path string) ([]domain.Community, LoadSummary, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, LoadSummary{}, fmt.Errorf("open catalog workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, LoadSummary{}, fmt.Errorf("read catalog sheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, LoadSummary{}, fmt.Errorf("catalog workbook has no rows")
	}

	colIdx, err := indexColumns(rows[0])
	if err != nil {
		return nil, LoadSummary{}, err
	}

	var summary LoadSummary
	var communities []domain.Community
	seen := make(map[int]bool)

	for i, row := range rows[1:] {
		c, err := parseRow(row, colIdx)
		if err != nil {
			summary.RowsSkipped++
			summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: %v", i+2, err))
			continue
		}
		if seen[c.CommunityID] {
			summary.RowsSkipped++
			summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: duplicate CommunityID %d", i+2, c.CommunityID))
			continue
		}
		seen[c.CommunityID] = true
		communities = append(communities, c)
		summary.RowsLoaded++
	}

	return communities, summary, nil
}

func indexColumns(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("catalog workbook missing required columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

func cell(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseRow(row []string, idx map[string]int) (domain.Community, error) {
	idRaw := cell(row, idx, "CommunityID")
	id, err := strconv.Atoi(idRaw)
	if err != nil {
		return domain.Community{}, fmt.Errorf("invalid CommunityID %q: %w", idRaw, err)
	}

	careLevel := cell(row, idx, "Care Level")
	if !domain.IsKnownCareLevel(careLevel) {
		return domain.Community{}, fmt.Errorf("invalid Care Level %q", careLevel)
	}

	monthlyFee, err := parseFloat(cell(row, idx, "Monthly Fee"))
	if err != nil || monthlyFee < 0 {
		return domain.Community{}, fmt.Errorf("invalid Monthly Fee: %w", err)
	}

	zip := cell(row, idx, "ZIP")
	if zip != "" && !zipPattern.MatchString(zip) {
		return domain.Community{}, fmt.Errorf("invalid ZIP %q", zip)
	}

	contractRate, _ := parseFloat(cell(row, idx, "Contract Rate"))
	deposit, _ := parseFloat(cell(row, idx, "Deposit"))
	moveIn, _ := parseFloat(cell(row, idx, "Move-In Fee"))
	communityFee, _ := parseFloat(cell(row, idx, "Community Fee - One Time"))
	petFee, _ := parseFloat(cell(row, idx, "Pet Fee"))
	secondPersonRaw := cell(row, idx, "2nd Person Fee")
	secondPersonFee, secondPersonErr := parseFloat(secondPersonRaw)

	worksWithPlacement := parseBool(cell(row, idx, "Work with Placement?"))
	waitlist := cell(row, idx, "Est. Waitlist")

	c := domain.Community{
		CommunityID: id,
		CareLevel:   careLevel,
		MonthlyFee:  monthlyFee,
		Upfront: domain.UpfrontCosts{
			Deposit:              deposit,
			MoveInFee:            moveIn,
			CommunityFee:         communityFee,
			PetFee:               petFee,
			SecondPersonFee:      secondPersonFee,
			SecondPersonFeeKnown: secondPersonErr == nil && secondPersonRaw != "",
		},
		ZIPCode:               zip,
		ApartmentTypeCategory: normalizeApartmentType(cell(row, idx, "Apartment Type")),
		WaitlistStatus:        waitlist,
		AvailabilityScore:     waitlistToAvailability(waitlist),
		WorksWithPlacement:    worksWithPlacement,
		ContractRate:          contractRate,
		WillingnessScore:      willingnessScore(worksWithPlacement),
		Enhanced:              parseBool(cell(row, idx, "Enhanced")),
		Enriched:              parseBool(cell(row, idx, "Enriched")),
	}
	return c, nil
}

func parseFloat(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	cleaned := strings.NewReplacer("$", "", ",", "", "%", "").Replace(raw)
	return strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
}
