package ai

import (
	"fmt"

	"nutrisense/entities"
)

const systemPrompt = "You are an agricultural expert. Provide practical advice for Indian farmers in simple language."

// Task instructions appended below the soil block. The wording is load-bearing:
// downstream consumers parse the numbered sections, so keep it verbatim.
var taskPrompts = map[RecommendationType]string{
	TaskSummary:    "Provide: 1) Overall condition 2) Main concerns 3) Top 3 actions. Keep brief.",
	TaskCrops:      "Suggest TOP 5 suitable crops with reasons. Include Indian varieties.",
	TaskFertilizer: "Provide: NPK ratio, kg/hectare, timing, organic alternatives.",
	TaskIrrigation: "Provide: frequency, water amount, best timing for irrigation.",
}

func renderPrompt(soil entities.SoilData, task RecommendationType, location string) string {
	loc := ""
	if location != "" {
		loc = " - " + location
	}
	base := fmt.Sprintf(`Soil Data%s:
pH: %.2f, EC: %.2f dS/m, Moisture: %.1f%%
N: %.2f, P: %.2f, K: %.2f mg/kg
Microbial: %.2f/10, Temp: %.1f°C`,
		loc,
		soil.PH, soil.EC, soil.Moisture,
		soil.Nitrogen, soil.Phosphorus, soil.Potassium,
		soil.Microbial, soil.Temperature,
	)
	if instr, ok := taskPrompts[task]; ok {
		return base + "\n\n" + instr
	}
	return base
}
