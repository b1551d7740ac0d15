package probe

import "github.com/okian/disasterdash/internal/domain/model"

// buildChecks returns one check per year plus one per risk tier of the
// prediction year.
func buildChecks(years []int, predictionYear int) []Check {
	checks := make([]Check, 0, len(years)+len(model.RiskOptions))
	for _, y := range years {
		if y != predictionYear {
			checks = append(checks, Check{Year: y})
			continue
		}
		for _, r := range model.RiskOptions {
			checks = append(checks, Check{Year: y, Risk: r.String()})
		}
	}
	return checks
}
