package application

import "math"

// Emission factors in kg CO2 per unit of activity.
const (
	FactorEnergyUsageMWh      = 700.0 // kg CO2 per MWh
	FactorFuelConsumptionL    = 2.31  // diesel, kg CO2 per L
	FactorIndustrialOutputTon = 150.0 // kg CO2 per ton
	FactorWasteGeneratedTon   = 50.0  // kg CO2 per ton
	FactorTransportDistanceKm = 0.2   // kg CO2 per km
)

// DepartmentActivity is one department's activity data for a reporting period.
type DepartmentActivity struct {
	Name              string
	EnergyUsageMWh    float64
	FuelConsumptionL  float64
	IndustrialOutput  float64 // tons
	WasteGenerated    float64 // tons
	TransportDistance float64 // km
}

type DepartmentEmission struct {
	Department string  `json:"department"`
	Emission   float64 `json:"emission"`
	Percentage float64 `json:"percentage"`
}

type ActivityEmission struct {
	Activity   string  `json:"activity"`
	Emission   float64 `json:"emission"`
	Percentage float64 `json:"percentage"`
}

// QuantificationResult is the emissions breakdown for a set of departments.
// Emissions are kg CO2; credits are the same total expressed in tons.
type QuantificationResult struct {
	TotalEmissions        float64              `json:"total_emissions"`
	CarbonCreditsRequired float64              `json:"carbon_credits_required"`
	DepartmentEmissions   []DepartmentEmission `json:"department_emissions"`
	ActivityEmissions     []ActivityEmission   `json:"activity_emissions"`
}

// emissionActivities fixes the activity order in every breakdown.
var emissionActivities = []struct {
	Label  string
	Factor float64
	Value  func(DepartmentActivity) float64
}{
	{"Energy Usage (MWh)", FactorEnergyUsageMWh, func(d DepartmentActivity) float64 { return d.EnergyUsageMWh }},
	{"Fuel Consumption (L)", FactorFuelConsumptionL, func(d DepartmentActivity) float64 { return d.FuelConsumptionL }},
	{"Industrial Output (tons)", FactorIndustrialOutputTon, func(d DepartmentActivity) float64 { return d.IndustrialOutput }},
	{"Waste Generated (tons)", FactorWasteGeneratedTon, func(d DepartmentActivity) float64 { return d.WasteGenerated }},
	{"Transport Distance (km)", FactorTransportDistanceKm, func(d DepartmentActivity) float64 { return d.TransportDistance }},
}

// QuantifyEmissions multiplies each department's activity data by the fixed
// emission factors and returns per-department and per-activity breakdowns.
// The total is the plain factor sum; required credits are total/1000 (kg to
// tons of CO2e).
func QuantifyEmissions(departments []DepartmentActivity) QuantificationResult {
	total := 0.0
	deptTotals := make([]float64, len(departments))
	activityTotals := make([]float64, len(emissionActivities))

	for i, d := range departments {
		for j, a := range emissionActivities {
			e := a.Value(d) * a.Factor
			deptTotals[i] += e
			activityTotals[j] += e
		}
		total += deptTotals[i]
	}

	res := QuantificationResult{
		TotalEmissions:        round2(total),
		CarbonCreditsRequired: round2(total / 1000),
		DepartmentEmissions:   make([]DepartmentEmission, 0, len(departments)),
		ActivityEmissions:     make([]ActivityEmission, 0, len(emissionActivities)),
	}

	for i, d := range departments {
		res.DepartmentEmissions = append(res.DepartmentEmissions, DepartmentEmission{
			Department: d.Name,
			Emission:   round2(deptTotals[i]),
			Percentage: round2(share(deptTotals[i], total)),
		})
	}
	for j, a := range emissionActivities {
		res.ActivityEmissions = append(res.ActivityEmissions, ActivityEmission{
			Activity:   a.Label,
			Emission:   round2(activityTotals[j]),
			Percentage: round2(share(activityTotals[j], total)),
		})
	}
	return res
}

// EmissionFactors returns the factor table keyed by activity label.
func EmissionFactors() map[string]float64 {
	out := make(map[string]float64, len(emissionActivities))
	for _, a := range emissionActivities {
		out[a.Label] = a.Factor
	}
	return out
}

// EmissionFactorUnits returns the unit of each factor, keyed like EmissionFactors.
func EmissionFactorUnits() map[string]string {
	return map[string]string{
		"Energy Usage (MWh)":       "kg CO2/MWh",
		"Fuel Consumption (L)":     "kg CO2/L",
		"Industrial Output (tons)": "kg CO2/ton",
		"Waste Generated (tons)":   "kg CO2/ton",
		"Transport Distance (km)":  "kg CO2/km",
	}
}

func share(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return part / total * 100
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
