package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	app "github.com/carbonsaathi/carbonsaathi-api/internal/application"
	"github.com/carbonsaathi/carbonsaathi-api/pkg/response"
	"github.com/carbonsaathi/carbonsaathi-api/pkg/validation"
)

// CarbonHandler serves the emissions quantification endpoints.
type CarbonHandler struct{}

func NewCarbonHandler() *CarbonHandler { return &CarbonHandler{} }

type departmentRequest struct {
	Name              string  `json:"name" binding:"required"`
	EnergyUsage       float64 `json:"energy_usage"`       // MWh
	FuelConsumption   float64 `json:"fuel_consumption"`   // L
	IndustrialOutput  float64 `json:"industrial_output"`  // tons
	WasteGenerated    float64 `json:"waste_generated"`    // tons
	TransportDistance float64 `json:"transport_distance"` // km
}

type quantifyRequest struct {
	Departments []departmentRequest `json:"departments" binding:"required,min=1,dive"`
}

// Quantify handles POST /api/carbon/quantify
func (h *CarbonHandler) Quantify(c *gin.Context) {
	var req quantifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "At least one department must be provided", validation.ToDetails(err))
		return
	}

	departments := make([]app.DepartmentActivity, 0, len(req.Departments))
	for _, d := range req.Departments {
		departments = append(departments, app.DepartmentActivity{
			Name:              d.Name,
			EnergyUsageMWh:    d.EnergyUsage,
			FuelConsumptionL:  d.FuelConsumption,
			IndustrialOutput:  d.IndustrialOutput,
			WasteGenerated:    d.WasteGenerated,
			TransportDistance: d.TransportDistance,
		})
	}

	response.Success(c, http.StatusOK, app.QuantifyEmissions(departments), "quantification complete")
}

// EmissionFactors handles GET /api/carbon/emission-factors
func (h *CarbonHandler) EmissionFactors(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"emission_factors": app.EmissionFactors(),
		"units":            app.EmissionFactorUnits(),
	}, "emission factors")
}

// Example handles GET /api/carbon/example with a sample quantify payload.
func (h *CarbonHandler) Example(c *gin.Context) {
	response.Success(c, http.StatusOK, quantifyRequest{
		Departments: []departmentRequest{
			{Name: "Manufacturing", EnergyUsage: 300, FuelConsumption: 500, IndustrialOutput: 340, WasteGenerated: 450, TransportDistance: 550},
			{Name: "Logistics", EnergyUsage: 650, FuelConsumption: 50, IndustrialOutput: 3, WasteGenerated: 5, TransportDistance: 45},
			{Name: "Marketing", EnergyUsage: 5, FuelConsumption: 4500, IndustrialOutput: 450, WasteGenerated: 40, TransportDistance: 6500},
		},
	}, "example request")
}
