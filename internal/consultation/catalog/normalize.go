package catalog

import "strings"

// waitlistToAvailability maps a free-text waitlist bucket to an
// availability_score per the fixed table in §4.1 / §9 design note (c).
func waitlistToAvailability(raw string) int {
	text := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case text == "available" || text == "available now":
		return 0
	case strings.Contains(text, "<1 month") || strings.Contains(text, "less than 1 month"):
		return 15
	case strings.Contains(text, "1-3 month") || strings.Contains(text, "1 - 3 month") || strings.Contains(text, "1 to 3 month"):
		return 45
	case strings.Contains(text, "3-6 month") || strings.Contains(text, "3 - 6 month") || strings.Contains(text, "3 to 6 month"):
		return 75
	default:
		return 99
	}
}

// normalizeApartmentType folds free-text apartment descriptions into the
// closed tag set by keyword rules (§4.1).
func normalizeApartmentType(raw string) string {
	text := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case text == "":
		return "unknown"
	case strings.Contains(text, "studio") || strings.Contains(text, "efficiency"):
		return "studio"
	case strings.Contains(text, "2 bed") || strings.Contains(text, "2br") || strings.Contains(text, "two bed"):
		return "2BR"
	case strings.Contains(text, "1 bed") || strings.Contains(text, "1br") || strings.Contains(text, "one bed"):
		return "1BR"
	case strings.Contains(text, "double") || strings.Contains(text, "shared") || strings.Contains(text, "companion"):
		return "double-occupancy"
	default:
		return "unknown"
	}
}

// willingnessScore derives the 0/10 willingness signal from the placement
// partnership flag (§4.1).
func willingnessScore(worksWithPlacement bool) int {
	if worksWithPlacement {
		return 10
	}
	return 0
}

func parseBool(raw string) bool {
	text := strings.ToLower(strings.TrimSpace(raw))
	switch text {
	case "true", "yes", "y", "1":
		return true
	default:
		return false
	}
}
