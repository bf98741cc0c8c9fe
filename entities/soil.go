package entities

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// SoilData is one set of eight lab-measured soil parameters. Treat a value
// that passed Validate as immutable.
type SoilData struct {
	PH          float64 `json:"pH"`
	EC          float64 `json:"EC"`
	Moisture    float64 `json:"Moisture"`
	Nitrogen    float64 `json:"Nitrogen"`
	Phosphorus  float64 `json:"Phosphorus"`
	Potassium   float64 `json:"Potassium"`
	Microbial   float64 `json:"Microbial"`
	Temperature float64 `json:"Temperature"`
}

// ValidationError reports the out-of-range field and the violated bound.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func rangeErr(field string, lo, hi float64, unit string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("%s must be between %g and %g%s", field, lo, hi, unit),
	}
}

// Validate checks every parameter against its physical range. Validation, not
// agronomy: a valid value can still be Critical. Non-finite values are
// rejected here so that canonical serialization of validated data is always
// well-formed JSON.
func (s SoilData) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"pH", s.PH}, {"EC", s.EC}, {"Moisture", s.Moisture},
		{"Nitrogen", s.Nitrogen}, {"Phosphorus", s.Phosphorus},
		{"Potassium", s.Potassium}, {"Microbial", s.Microbial},
		{"Temperature", s.Temperature},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &ValidationError{
				Field:   f.name,
				Message: f.name + " must be a finite number",
			}
		}
	}
	if s.PH < 0 || s.PH > 14 {
		return rangeErr("pH", 0, 14, "")
	}
	if s.EC < 0 {
		return &ValidationError{Field: "EC", Message: "EC cannot be negative"}
	}
	if s.Moisture < 0 || s.Moisture > 100 {
		return rangeErr("Moisture", 0, 100, "%")
	}
	if s.Nitrogen < 0 {
		return &ValidationError{Field: "Nitrogen", Message: "Nitrogen cannot be negative"}
	}
	if s.Phosphorus < 0 {
		return &ValidationError{Field: "Phosphorus", Message: "Phosphorus cannot be negative"}
	}
	if s.Potassium < 0 {
		return &ValidationError{Field: "Potassium", Message: "Potassium cannot be negative"}
	}
	if s.Microbial < 0 || s.Microbial > 10 {
		return rangeErr("Microbial", 0, 10, "")
	}
	if s.Temperature < -10 || s.Temperature > 60 {
		return rangeErr("Temperature", -10, 60, "°C")
	}
	return nil
}

// Fields returns the parameter values keyed by their canonical names.
func (s SoilData) Fields() map[string]float64 {
	return map[string]float64{
		"pH":          s.PH,
		"EC":          s.EC,
		"Moisture":    s.Moisture,
		"Nitrogen":    s.Nitrogen,
		"Phosphorus":  s.Phosphorus,
		"Potassium":   s.Potassium,
		"Microbial":   s.Microbial,
		"Temperature": s.Temperature,
	}
}

// CanonicalJSON serializes the measurement with byte-sorted keys and
// repr-style floats ("7.0", never "7"). The previous deployment hashed
// exactly this form, so dedup keeps working against rows it wrote.
func (s SoilData) CanonicalJSON() string {
	fields := s.Fields()
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('"')
		b.WriteString(k)
		b.WriteString(`": `)
		b.WriteString(ReprFloat(fields[k]))
	}
	b.WriteByte('}')
	return b.String()
}

// DataHash is the content-addressed dedup key. Measurement values only;
// location and timestamp never participate.
func (s SoilData) DataHash() string {
	sum := md5.Sum([]byte(s.CanonicalJSON()))
	return hex.EncodeToString(sum[:])
}

// ReprFloat mimics the shortest round-trip decimal form the old writer used:
// integral floats keep a trailing ".0", scientific notation only outside
// [1e-4, 1e16). Both the content hash and the history export depend on it.
func ReprFloat(v float64) string {
	abs := v
	if abs < 0 {
		abs = -abs
	}
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	out := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(out, ".") {
		out += ".0"
	}
	return out
}

// SoilRecord maps onto the pre-existing soil_records table. Column names and
// types must stay as deployed; do not let automigrate rename anything.
type SoilRecord struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	DataHash    string    `gorm:"column:data_hash;uniqueIndex" json:"data_hash"`
	SoilData    string    `gorm:"column:soil_data" json:"-"`
	Timestamp   time.Time `gorm:"column:timestamp;index" json:"timestamp"`
	Summary     *string   `gorm:"column:summary" json:"summary,omitempty"`
	Location    *string   `gorm:"column:location" json:"location,omitempty"`
	HealthScore float64   `gorm:"column:health_score" json:"health_score"`
}

func (SoilRecord) TableName() string { return "soil_records" }

// ParameterInterpretation is the per-parameter classification shown to users.
type ParameterInterpretation struct {
	Value  float64 `json:"value"`
	Status string  `json:"status"`
	Emoji  string  `json:"emoji"`
	Unit   string  `json:"unit"`
}

// AnalysisResult is computed on demand from a SoilData and never mutated.
type AnalysisResult struct {
	HealthScore float64                            `json:"health_score"`
	Parameters  map[string]ParameterInterpretation `json:"parameters"`
	Timestamp   time.Time                          `json:"timestamp"`
	Location    string                             `json:"location,omitempty"`
}

// Recommendation is one AI-generated advisory text.
type Recommendation struct {
	RecommendationType string    `json:"recommendation_type"`
	Content            string    `json:"content"`
	ModelUsed          string    `json:"model_used"`
	Timestamp          time.Time `json:"timestamp"`
}
