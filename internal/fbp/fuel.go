package fbp

import (
	"fmt"
	"strings"
)

// FuelType identifies one of the FBP System fuel classes.
type FuelType uint8

const (
	NonFuel FuelType = iota
	C1
	C2
	C3
	C4
	C5
	C6
	C7
	D1
	M1
	M2
	M3
	M4
	S1
	S2
	S3
	O1a
	O1b
)

// FuelTypes lists every burnable fuel type in catalog order.
var FuelTypes = []FuelType{C1, C2, C3, C4, C5, C6, C7, D1, M1, M2, M3, M4, S1, S2, S3, O1a, O1b}

var fuelNames = [...]string{
	NonFuel: "NF",
	C1:      "C1",
	C2:      "C2",
	C3:      "C3",
	C4:      "C4",
	C5:      "C5",
	C6:      "C6",
	C7:      "C7",
	D1:      "D1",
	M1:      "M1",
	M2:      "M2",
	M3:      "M3",
	M4:      "M4",
	S1:      "S1",
	S2:      "S2",
	S3:      "S3",
	O1a:     "O1a",
	O1b:     "O1b",
}

var fuelDescriptions = [...]string{
	NonFuel: "Non-fuel",
	C1:      "Spruce-lichen woodland",
	C2:      "Boreal spruce",
	C3:      "Mature jack or lodgepole pine",
	C4:      "Immature jack or lodgepole pine",
	C5:      "Red and white pine",
	C6:      "Conifer plantation",
	C7:      "Ponderosa pine-Douglas-fir",
	D1:      "Leafless aspen",
	M1:      "Boreal mixedwood, leafless",
	M2:      "Boreal mixedwood, green",
	M3:      "Dead balsam fir mixedwood, leafless",
	M4:      "Dead balsam fir mixedwood, green",
	S1:      "Jack or lodgepole pine slash",
	S2:      "White spruce-balsam slash",
	S3:      "Coastal cedar-hemlock-Douglas-fir slash",
	O1a:     "Matted grass",
	O1b:     "Standing grass",
}

func (ft FuelType) String() string {
	if int(ft) < len(fuelNames) {
		return fuelNames[ft]
	}
	return fmt.Sprintf("FuelType(%d)", uint8(ft))
}

// Description returns the fuel type's common name.
func (ft FuelType) Description() string {
	if int(ft) < len(fuelDescriptions) {
		return fuelDescriptions[ft]
	}
	return ""
}

// IsGrass reports whether ft is one of the open grass types.
func (ft FuelType) IsGrass() bool { return ft == O1a || ft == O1b }

// IsMixedwood reports whether ft blends conifer and deciduous behaviour.
func (ft FuelType) IsMixedwood() bool { return ft >= M1 && ft <= M4 }

// ParseFuelType resolves a fuel code such as "C2" or "o1a". Matching is
// case-insensitive; "NF" and "NonFuel" both name the non-fuel sentinel.
func ParseFuelType(s string) (FuelType, error) {
	code := strings.TrimSpace(s)
	if strings.EqualFold(code, "nonfuel") || strings.EqualFold(code, "non-fuel") {
		return NonFuel, nil
	}
	for i, name := range fuelNames {
		if strings.EqualFold(code, name) {
			return FuelType(i), nil
		}
	}
	return NonFuel, fmt.Errorf("unknown fuel type %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (ft FuelType) MarshalText() ([]byte, error) {
	if int(ft) >= len(fuelNames) {
		return nil, fmt.Errorf("invalid fuel type %d", uint8(ft))
	}
	return []byte(fuelNames[ft]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (ft *FuelType) UnmarshalText(text []byte) error {
	parsed, err := ParseFuelType(string(text))
	if err != nil {
		return err
	}
	*ft = parsed
	return nil
}

// FuelConstants holds the published per-fuel-type model constants.
type FuelConstants struct {
	// Spread rate coefficients for RSI = A * (1 - exp(-B*ISI))^C.
	A, B, C float64
	// BUIAvg is the average buildup index for the fuel type.
	BUIAvg float64
	// Q is the proportion of maximum ROS at BUIAvg.
	Q float64
	// MaxBE caps the buildup effect.
	MaxBE float64
	// CBH is crown base height (m).
	CBH float64
	// CFL is crown fuel load (kg/m^2).
	CFL float64
}

// Constants returns the catalog entry for ft. NonFuel and unknown values
// return the zero entry.
func Constants(ft FuelType) FuelConstants {
	switch ft {
	case C1:
		return FuelConstants{A: 90, B: 0.0649, C: 4.5, BUIAvg: 72, Q: 0.9, MaxBE: 1.076, CBH: 2, CFL: 0.75}
	case C2:
		return FuelConstants{A: 110, B: 0.0282, C: 1.5, BUIAvg: 64, Q: 0.7, MaxBE: 1.321, CBH: 3, CFL: 0.8}
	case C3:
		return FuelConstants{A: 110, B: 0.0444, C: 3.0, BUIAvg: 62, Q: 0.75, MaxBE: 1.261, CBH: 8, CFL: 1.15}
	case C4:
		return FuelConstants{A: 110, B: 0.0293, C: 1.5, BUIAvg: 66, Q: 0.8, MaxBE: 1.184, CBH: 4, CFL: 1.2}
	case C5:
		return FuelConstants{A: 30, B: 0.0697, C: 4.0, BUIAvg: 56, Q: 0.8, MaxBE: 1.220, CBH: 18, CFL: 1.2}
	case C6:
		return FuelConstants{A: 30, B: 0.0800, C: 3.0, BUIAvg: 62, Q: 0.8, MaxBE: 1.197, CBH: 7, CFL: 1.8}
	case C7:
		return FuelConstants{A: 45, B: 0.0305, C: 2.0, BUIAvg: 106, Q: 0.85, MaxBE: 1.134, CBH: 10, CFL: 0.5}
	case D1:
		return FuelConstants{A: 30, B: 0.0232, C: 1.6, BUIAvg: 32, Q: 0.9, MaxBE: 1.179}
	case M1:
		return FuelConstants{BUIAvg: 50, Q: 0.8, MaxBE: 1.250, CBH: 6, CFL: 0.8}
	case M2:
		return FuelConstants{BUIAvg: 50, Q: 0.8, MaxBE: 1.250, CBH: 6, CFL: 0.8}
	case M3:
		return FuelConstants{A: 120, B: 0.0572, C: 1.4, BUIAvg: 50, Q: 0.8, MaxBE: 1.250, CBH: 6, CFL: 0.8}
	case M4:
		return FuelConstants{A: 100, B: 0.0404, C: 1.48, BUIAvg: 50, Q: 0.8, MaxBE: 1.250, CBH: 6, CFL: 0.8}
	case S1:
		return FuelConstants{A: 75, B: 0.0297, C: 1.3, BUIAvg: 38, Q: 0.75, MaxBE: 1.460}
	case S2:
		return FuelConstants{A: 40, B: 0.0438, C: 1.7, BUIAvg: 63, Q: 0.75, MaxBE: 1.256}
	case S3:
		return FuelConstants{A: 55, B: 0.0829, C: 3.2, BUIAvg: 31, Q: 0.75, MaxBE: 1.590}
	case O1a:
		return FuelConstants{A: 190, B: 0.0310, C: 1.4, BUIAvg: 1, Q: 1, MaxBE: 1}
	case O1b:
		return FuelConstants{A: 250, B: 0.0350, C: 1.7, BUIAvg: 1, Q: 1, MaxBE: 1}
	default:
		return FuelConstants{}
	}
}

// CrownBaseHeight returns the tabulated crown base height for ft. C6 is
// normally derived from stand structure; see PlantationCrownBaseHeight.
func CrownBaseHeight(ft FuelType) float64 { return Constants(ft).CBH }

// CrownFuelLoad returns the tabulated crown fuel load for ft.
func CrownFuelLoad(ft FuelType) float64 { return Constants(ft).CFL }

// PlantationCrownBaseHeight estimates C6 crown base height from stand
// density (stems/ha) and stand height (m).
func PlantationCrownBaseHeight(sd, sh float64) float64 {
	return -11.2 + 1.06*sh + 0.0017*sd
}
