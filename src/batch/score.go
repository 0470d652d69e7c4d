package batch

import (
	"math"
	"strconv"
	"strings"
)

const (
	MinMoisture = 0.0
	MaxMoisture = 100.0
	MinPurity   = 1.0
	MaxPurity   = 10.0
	MaxScore    = 10.0

	PurityWeight   = 0.7
	MoistureWeight = 0.3

	InvalidScoreText = "Invalid Input"
)

// Result of scoring. The zero value is the invalid score.
type QualityScore struct {
	value float64
	valid bool
}

var InvalidScore = QualityScore{}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func inRange(v, min, max float64) bool {
	return !math.IsNaN(v) && v >= min && v <= max
}

// Weighted average of purity (70%) and inverse moisture (30%), rounded to one decimal.
// Inputs outside moisture [0,100] or purity [1,10] give InvalidScore.
func Score(moisture, purity float64) QualityScore {
	if !inRange(moisture, MinMoisture, MaxMoisture) || !inRange(purity, MinPurity, MaxPurity) {
		return InvalidScore
	}
	return QualityScore{
		value: round1(purity*PurityWeight + (10-moisture/10)*MoistureWeight),
		valid: true,
	}
}

func parseNumber(text string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Scores text inputs, non-numeric input gives InvalidScore
func ParseScore(moisture, purity string) QualityScore {
	m, ok := parseNumber(moisture)
	if !ok {
		return InvalidScore
	}
	p, ok := parseNumber(purity)
	if !ok {
		return InvalidScore
	}
	return Score(m, p)
}

// Score assessed directly by the collector, must lie in [0,10]
func ScoreFromValue(v float64) QualityScore {
	if !inRange(v, 0, MaxScore) {
		return InvalidScore
	}
	return QualityScore{value: round1(v), valid: true}
}

func ParseScoreValue(text string) QualityScore {
	v, ok := parseNumber(text)
	if !ok {
		return InvalidScore
	}
	return ScoreFromValue(v)
}

func (self QualityScore) Valid() bool {
	return self.valid
}

func (self QualityScore) Value() float64 {
	return self.value
}

func (self QualityScore) String() string {
	if !self.valid {
		return InvalidScoreText
	}
	return strconv.FormatFloat(self.value, 'f', 1, 64)
}
