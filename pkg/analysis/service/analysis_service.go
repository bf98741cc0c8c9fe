package service

import (
	"nutrisense/entities"
)

type AnalysisService interface {
	HealthScore(s entities.SoilData) float64
	Interpret(param string, value float64) entities.ParameterInterpretation
	Analyze(s entities.SoilData, location string) entities.AnalysisResult
}
