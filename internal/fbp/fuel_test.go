package fbp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFuelType(t *testing.T) {
	tests := []struct {
		in   string
		want FuelType
	}{
		{"C2", C2},
		{"c2", C2},
		{" M4 ", M4},
		{"O1a", O1a},
		{"o1B", O1b},
		{"NF", NonFuel},
		{"NonFuel", NonFuel},
		{"non-fuel", NonFuel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFuelType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFuelType_Unknown(t *testing.T) {
	_, err := ParseFuelType("C8")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"C8"`)
}

func TestFuelType_StringRoundTripsEveryType(t *testing.T) {
	for _, ft := range append([]FuelType{NonFuel}, FuelTypes...) {
		parsed, err := ParseFuelType(ft.String())
		require.NoError(t, err, ft.String())
		assert.Equal(t, ft, parsed)
		assert.NotEmpty(t, ft.Description())
	}
	assert.Equal(t, "FuelType(200)", FuelType(200).String())
}

func TestFuelType_JSON(t *testing.T) {
	type doc struct {
		Fuels []FuelType `json:"fuels"`
	}

	var d doc
	require.NoError(t, json.Unmarshal([]byte(`{"fuels":["C2","m1","O1b"]}`), &d))
	assert.Equal(t, []FuelType{C2, M1, O1b}, d.Fuels)

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"fuels":["C2","M1","O1b"]}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"fuels":["X9"]}`), &d))
}

func TestConstants_NonFuelIsZero(t *testing.T) {
	assert.Equal(t, FuelConstants{}, Constants(NonFuel))
	assert.Equal(t, FuelConstants{}, Constants(FuelType(99)))
}

func TestConstants_Catalog(t *testing.T) {
	tests := []struct {
		ft      FuelType
		a, b, c float64
		cbh     float64
		cfl     float64
	}{
		{C1, 90, 0.0649, 4.5, 2, 0.75},
		{C2, 110, 0.0282, 1.5, 3, 0.8},
		{C3, 110, 0.0444, 3.0, 8, 1.15},
		{C5, 30, 0.0697, 4.0, 18, 1.2},
		{C7, 45, 0.0305, 2.0, 10, 0.5},
		{D1, 30, 0.0232, 1.6, 0, 0},
		{M1, 0, 0, 0, 6, 0.8},
		{M3, 120, 0.0572, 1.4, 6, 0.8},
		{M4, 100, 0.0404, 1.48, 6, 0.8},
		{S3, 55, 0.0829, 3.2, 0, 0},
		{O1b, 250, 0.035, 1.7, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.ft.String(), func(t *testing.T) {
			k := Constants(tt.ft)
			assert.Equal(t, tt.a, k.A)
			assert.Equal(t, tt.b, k.B)
			assert.Equal(t, tt.c, k.C)
			assert.Equal(t, tt.cbh, CrownBaseHeight(tt.ft))
			assert.Equal(t, tt.cfl, CrownFuelLoad(tt.ft))
		})
	}
}

func TestPlantationCrownBaseHeight(t *testing.T) {
	assert.InDelta(t, 6.4, PlantationCrownBaseHeight(1000, 15), 1e-12)
	assert.InDelta(t, -11.2, PlantationCrownBaseHeight(0, 0), 1e-12)
}
