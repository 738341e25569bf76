package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/carbonsaathi/carbonsaathi-api/internal/container"
	handlers "github.com/carbonsaathi/carbonsaathi-api/internal/interface/http"
	"github.com/carbonsaathi/carbonsaathi-api/internal/interface/middleware"
)

// CarbonModule exposes the emissions quantification endpoints.
// Public like the original API; the compute is cheap, so only the POST
// endpoint carries a limiter.
type CarbonModule struct {
	Handler *handlers.CarbonHandler
}

func NewCarbonModule(h *handlers.CarbonHandler) *CarbonModule {
	return &CarbonModule{Handler: h}
}

func (m *CarbonModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/carbon/quantify", rl, m.Handler.Quantify)
	rg.GET("/carbon/emission-factors", m.Handler.EmissionFactors)
	rg.GET("/carbon/example", m.Handler.Example)
}
