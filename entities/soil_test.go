package entities

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSoil() SoilData {
	return SoilData{
		PH: 7.0, EC: 1.5, Moisture: 30, Nitrogen: 60,
		Phosphorus: 35, Potassium: 180, Microbial: 5.5, Temperature: 25,
	}
}

func TestValidateAcceptsInRangeValues(t *testing.T) {
	assert.NoError(t, validSoil().Validate())

	// boundary values are valid
	s := SoilData{PH: 0, EC: 0, Moisture: 100, Nitrogen: 0, Phosphorus: 0, Potassium: 0, Microbial: 10, Temperature: -10}
	assert.NoError(t, s.Validate())
}

func TestValidateRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SoilData)
		field   string
		message string
	}{
		{"pH above 14", func(s *SoilData) { s.PH = 15.0 }, "pH", "pH must be between 0 and 14"},
		{"pH negative", func(s *SoilData) { s.PH = -0.1 }, "pH", "pH must be between 0 and 14"},
		{"EC negative", func(s *SoilData) { s.EC = -1 }, "EC", "EC cannot be negative"},
		{"moisture above 100", func(s *SoilData) { s.Moisture = 150.0 }, "Moisture", "Moisture must be between 0 and 100%"},
		{"nitrogen negative", func(s *SoilData) { s.Nitrogen = -5 }, "Nitrogen", "Nitrogen cannot be negative"},
		{"phosphorus negative", func(s *SoilData) { s.Phosphorus = -5 }, "Phosphorus", "Phosphorus cannot be negative"},
		{"potassium negative", func(s *SoilData) { s.Potassium = -5 }, "Potassium", "Potassium cannot be negative"},
		{"microbial above 10", func(s *SoilData) { s.Microbial = 10.5 }, "Microbial", "Microbial must be between 0 and 10"},
		{"temperature below -10", func(s *SoilData) { s.Temperature = -20 }, "Temperature", "Temperature must be between -10 and 60°C"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSoil()
			tt.mutate(&s)
			err := s.Validate()
			require.Error(t, err)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, tt.message, ve.Message)
		})
	}
}

func TestCanonicalJSONIsKeySortedWithReprFloats(t *testing.T) {
	got := validSoil().CanonicalJSON()
	want := `{"EC": 1.5, "Microbial": 5.5, "Moisture": 30.0, "Nitrogen": 60.0, ` +
		`"Phosphorus": 35.0, "Potassium": 180.0, "Temperature": 25.0, "pH": 7.0}`
	assert.Equal(t, want, got)
}

func TestValidateRejectsNonFiniteValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SoilData)
		field  string
	}{
		{"NaN pH", func(s *SoilData) { s.PH = math.NaN() }, "pH"},
		{"NaN EC", func(s *SoilData) { s.EC = math.NaN() }, "EC"},
		{"positive infinity nitrogen", func(s *SoilData) { s.Nitrogen = math.Inf(1) }, "Nitrogen"},
		{"negative infinity temperature", func(s *SoilData) { s.Temperature = math.Inf(-1) }, "Temperature"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSoil()
			tt.mutate(&s)
			err := s.Validate()
			require.Error(t, err)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.Contains(t, ve.Message, "finite")
		})
	}
}

func TestCanonicalJSONOfValidatedDataIsDecodable(t *testing.T) {
	s := validSoil()
	require.NoError(t, s.Validate())

	var back SoilData
	require.NoError(t, json.Unmarshal([]byte(s.CanonicalJSON()), &back))
	assert.Equal(t, s, back)
}

func TestReprFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{7, "7.0"},
		{0, "0.0"},
		{1.5, "1.5"},
		{0.1, "0.1"},
		{-2.5, "-2.5"},
		{32.5, "32.5"},
		{1e16, "1e+16"},
		{0.00005, "5e-05"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ReprFloat(tt.in), "ReprFloat(%v)", tt.in)
	}
}

func TestDataHashDependsOnMeasurementValuesOnly(t *testing.T) {
	a := validSoil()
	b := validSoil()
	assert.Equal(t, a.DataHash(), b.DataHash())

	c := validSoil()
	c.PH = 6.9
	assert.NotEqual(t, a.DataHash(), c.DataHash())

	// 32-char hex digest
	h := a.DataHash()
	assert.Len(t, h, 32)
	assert.Equal(t, strings.ToLower(h), h)
}
