package serviceImp

import (
	"math"
	"time"

	"nutrisense/entities"
	"nutrisense/pkg/analysis/service"
)

type analysisSvc struct{}

func New() service.AnalysisService { return &analysisSvc{} }

// HealthScore combines four weighted components into a 0-100 score:
// pH 25 pts (optimal at 7.0), EC 25 pts (lower is better, capped at 4.0),
// moisture 20 pts (flat optimum 25-40%), NPK 30 pts (10 per nutrient).
// Each component clamps to its own max before summation.
func (a *analysisSvc) HealthScore(s entities.SoilData) float64 {
	if !finite(s) {
		// Neutral sentinel kept for compatibility with the deployed scorer,
		// which swallowed computation errors and reported 50.0.
		return 50.0
	}

	ph := clamp(25-math.Abs(s.PH-7.0)*3.5, 0, 25)
	ec := clamp(25-math.Min(s.EC, 4.0)*6.25, 0, 25)

	var moist float64
	if s.Moisture >= 25 && s.Moisture <= 40 {
		moist = 20
	} else {
		moist = clamp(20-math.Abs(s.Moisture-32.5)*0.5, 0, 20)
	}

	n := math.Min(s.Nitrogen/80*10, 10)
	p := math.Min(s.Phosphorus/50*10, 10)
	k := math.Min(s.Potassium/250*10, 10)

	score := clamp(ph+ec+moist+n+p+k, 0, 100)
	return math.Round(score*100) / 100
}

// statusRange classifies values with low <= v < high.
type statusRange struct {
	low, high float64
	status    string
	emoji     string
}

var interpretationTable = map[string][]statusRange{
	"pH": {
		{0, 5.5, "Acidic", "🔴"},
		{5.5, 6.5, "Low", "🟡"},
		{6.5, 7.5, "Optimal", "🟢"},
		{7.5, 8.5, "High", "🟡"},
		{8.5, 15, "Alkaline", "🔴"},
	},
	"EC": {
		{0, 0.8, "Low", "🟢"},
		{0.8, 2, "Moderate", "🟡"},
		{2, 4, "High", "🟠"},
		{4, 25, "Very High", "🔴"},
	},
	"Moisture": {
		{0, 15, "Dry", "🔴"},
		{15, 25, "Low", "🟡"},
		{25, 40, "Optimal", "🟢"},
		{40, 60, "High", "🟡"},
		{60, 101, "Wet", "🔴"},
	},
	"Nitrogen": {
		{0, 40, "Low", "🔴"},
		{40, 80, "Optimal", "🟢"},
		{80, 501, "High", "🟡"},
	},
	"Phosphorus": {
		{0, 20, "Low", "🔴"},
		{20, 50, "Optimal", "🟢"},
		{50, 201, "High", "🟡"},
	},
	"Potassium": {
		{0, 100, "Low", "🔴"},
		{100, 250, "Optimal", "🟢"},
		{250, 501, "High", "🟡"},
	},
	"Microbial": {
		{0, 3, "Poor", "🔴"},
		{3, 7, "Good", "🟢"},
		{7, 11, "Excellent", "💚"},
	},
	"Temperature": {
		{0, 10, "Cold", "🔵"},
		{10, 30, "Optimal", "🟢"},
		{30, 51, "Hot", "🔴"},
	},
}

var parameterUnits = map[string]string{
	"pH":          "pH",
	"EC":          "dS/m",
	"Moisture":    "%",
	"Nitrogen":    "mg/kg",
	"Phosphorus":  "mg/kg",
	"Potassium":   "mg/kg",
	"Microbial":   "Index",
	"Temperature": "°C",
}

func (a *analysisSvc) Interpret(param string, value float64) entities.ParameterInterpretation {
	out := entities.ParameterInterpretation{
		Value:  value,
		Status: "Unknown",
		Emoji:  "⚪",
		Unit:   parameterUnits[param],
	}
	for _, r := range interpretationTable[param] {
		if value >= r.low && value < r.high {
			out.Status = r.status
			out.Emoji = r.emoji
			break
		}
	}
	return out
}

func (a *analysisSvc) Analyze(s entities.SoilData, location string) entities.AnalysisResult {
	params := make(map[string]entities.ParameterInterpretation, 8)
	for name, value := range s.Fields() {
		params[name] = a.Interpret(name, value)
	}
	return entities.AnalysisResult{
		HealthScore: a.HealthScore(s),
		Parameters:  params,
		Timestamp:   time.Now(),
		Location:    location,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func finite(s entities.SoilData) bool {
	for _, v := range s.Fields() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
