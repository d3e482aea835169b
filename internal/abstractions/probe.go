package abstractions

import (
	"github.com/model-health/model-health/internal/executioncontext"
	"github.com/model-health/model-health/pkg/api"
)

// Probe interface defines the methods for checking one endpoint category. Concrete
// implementations hold the category-specific acceptance rules (model, pages, api).
// No other places in the code should be pointing directly to category specific details.

type Probe interface {
	Category() api.EndpointCategory
	Check(ctx *executioncontext.ExecutionContext, endpoint api.Endpoint) api.CheckResult
}
