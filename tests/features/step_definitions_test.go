package features

import (
	gocontext "context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/cucumber/godog"

	"github.com/model-health/model-health/internal/checker"
	"github.com/model-health/model-health/internal/config"
	"github.com/model-health/model-health/internal/executioncontext"
	"github.com/model-health/model-health/internal/probes"
	"github.com/model-health/model-health/pkg/api"
)

// scenarioState carries the stub servers and the resulting report across
// the steps of one scenario.
type scenarioState struct {
	servers  []*httptest.Server
	cfg      *config.Config
	pagesURL string
	apiURL   string
	report   *api.HealthReport
}

func newScenarioState() *scenarioState {
	return &scenarioState{
		cfg: &config.Config{
			ExpectedResponseTime: 2.0,
			MaxErrorRate:         0.1,
			Timeout:              5,
			Concurrency:          4,
		},
	}
}

func (s *scenarioState) close() {
	for _, server := range s.servers {
		server.Close()
	}
}

func (s *scenarioState) statusServer(status int, body string) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		if body != "" {
			w.Write([]byte(body))
		}
	}))
	s.servers = append(s.servers, server)
	return server
}

func (s *scenarioState) aPagesEndpointRespondingWithStatus(status int) error {
	server := s.statusServer(status, "")
	s.pagesURL = server.URL
	s.cfg.GitHubPagesEndpoints = append(s.cfg.GitHubPagesEndpoints, server.URL)
	return nil
}

func (s *scenarioState) anAPIEndpointRespondingWithStatus(status int) error {
	server := s.statusServer(status, "")
	s.apiURL = server.URL
	s.cfg.GitHubAPIEndpoints = append(s.cfg.GitHubAPIEndpoints, server.URL)
	return nil
}

func (s *scenarioState) aModelEndpointReturningAPrediction() error {
	server := s.statusServer(http.StatusOK, `{"prediction": 0.42}`)
	s.cfg.ModelEndpoints = append(s.cfg.ModelEndpoints, server.URL)
	return nil
}

func (s *scenarioState) theHealthCheckRuns() error {
	executionContext := executioncontext.NewExecutionContext(
		gocontext.Background(), "feature-run", slog.Default())
	report, err := checker.New(s.cfg, probes.NewHTTPClient()).Run(executionContext)
	if err != nil {
		return err
	}
	s.report = report
	return nil
}

func (s *scenarioState) theVerdictIs(verdict string) error {
	if s.report == nil {
		return fmt.Errorf("no report produced")
	}
	if s.report.Verdict.String() != verdict {
		return fmt.Errorf("expected verdict %s, got %s", verdict, s.report.Verdict)
	}
	return nil
}

func (s *scenarioState) outcomeFor(url string, outcome string) error {
	if s.report == nil {
		return fmt.Errorf("no report produced")
	}
	want, err := api.GetOutcome(outcome)
	if err != nil {
		return err
	}
	for _, result := range s.report.Results {
		if result.URL == url {
			if result.Outcome != want {
				return fmt.Errorf("expected outcome %s for %s, got %s", want, url, result.Outcome)
			}
			return nil
		}
	}
	return fmt.Errorf("no result for %s in the report", url)
}

func (s *scenarioState) theOutcomeForThePagesEndpointIs(outcome string) error {
	return s.outcomeFor(s.pagesURL, outcome)
}

func (s *scenarioState) theOutcomeForTheAPIEndpointIs(outcome string) error {
	return s.outcomeFor(s.apiURL, outcome)
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	state := newScenarioState()

	ctx.Before(func(c gocontext.Context, sc *godog.Scenario) (gocontext.Context, error) {
		*state = *newScenarioState()
		return c, nil
	})
	ctx.After(func(c gocontext.Context, sc *godog.Scenario, err error) (gocontext.Context, error) {
		state.close()
		return c, nil
	})

	ctx.Step(`^a pages endpoint responding with status (\d+)$`, state.aPagesEndpointRespondingWithStatus)
	ctx.Step(`^an API endpoint responding with status (\d+)$`, state.anAPIEndpointRespondingWithStatus)
	ctx.Step(`^a model endpoint returning a prediction$`, state.aModelEndpointReturningAPrediction)
	ctx.Step(`^the health check runs$`, state.theHealthCheckRuns)
	ctx.Step(`^the verdict is "([^"]*)"$`, state.theVerdictIs)
	ctx.Step(`^the outcome for the pages endpoint is "([^"]*)"$`, state.theOutcomeForThePagesEndpointIs)
	ctx.Step(`^the outcome for the API endpoint is "([^"]*)"$`, state.theOutcomeForTheAPIEndpointIs)
}
