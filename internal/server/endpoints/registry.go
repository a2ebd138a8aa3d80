package endpoints

import (
	"github.com/lectern-ai/lectern/internal/api"
)

// Config holds dependencies needed by some endpoints.
type Config struct {
	SwaggerSpecPath string
}

// All returns all endpoint instances.
func All(cfg Config) []api.Endpoint {
	return []api.Endpoint{
		// Health endpoint
		&HealthEndpoint{},

		// Streaming analysis endpoint
		&StudyTextEndpoint{},

		// Single-turn analyzer endpoints
		&CleanlinessEndpoint{},
		&PolishEndpoint{},
		&FinalizeEndpoint{},
		&GlossaryLookupEndpoint{},

		// Swagger/OpenAPI endpoints
		&SwaggerEndpoint{SpecPath: cfg.SwaggerSpecPath},
		&SwaggerUIEndpoint{},
	}
}
