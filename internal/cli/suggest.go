package cli

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/couchcryptid/fbp-service/internal/fbp"
)

// maxSuggestDistance bounds how far a typo may be from a real code.
const maxSuggestDistance = 2

// parseFuel resolves a fuel code, suggesting the closest known code when s
// is not one.
func parseFuel(s string) (fbp.FuelType, error) {
	ft, err := fbp.ParseFuelType(s)
	if err == nil {
		return ft, nil
	}
	if hint := suggestFuel(s); hint != "" {
		return fbp.NonFuel, fmt.Errorf("%w (did you mean %s?)", err, hint)
	}
	return fbp.NonFuel, err
}

func suggestFuel(s string) string {
	needle := strings.ToUpper(strings.TrimSpace(s))
	best, bestDist := "", maxSuggestDistance+1
	for _, ft := range fbp.FuelTypes {
		dist := levenshtein.ComputeDistance(needle, strings.ToUpper(ft.String()))
		if dist < bestDist {
			best, bestDist = ft.String(), dist
		}
	}
	return best
}

func parseFuels(codes []string) ([]fbp.FuelType, error) {
	out := make([]fbp.FuelType, 0, len(codes))
	for _, c := range codes {
		ft, err := parseFuel(c)
		if err != nil {
			return nil, err
		}
		out = append(out, ft)
	}
	return out, nil
}
