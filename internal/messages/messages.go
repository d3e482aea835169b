package messages

import (
	"fmt"
	"strings"

	"github.com/model-health/model-health/internal/constants"
)

// This package provides all the error messages that should be reported to the user.
// Note that we add a comment with the message parameters so that it is possible
// to see the parameters in the IDE when creating an error message.
// The code attached to each message is the process exit code the condition maps to.
var (
	// Configuration errors. All of these abort the run before any
	// network request is made.

	// ConfigFileNotFound The configuration file '{{.Path}}' was not found: '{{.Error}}'.
	ConfigFileNotFound = createMessage(
		constants.ExitConfigError,
		"The configuration file '{{.Path}}' was not found: '{{.Error}}'.",
	)

	// ConfigParseFailed The configuration file '{{.Path}}' could not be parsed: '{{.Error}}'.
	ConfigParseFailed = createMessage(
		constants.ExitConfigError,
		"The configuration file '{{.Path}}' could not be parsed: '{{.Error}}'.",
	)

	// ConfigSchemaInvalid The configuration does not match the expected schema: '{{.Error}}'.
	ConfigSchemaInvalid = createMessage(
		constants.ExitConfigError,
		"The configuration does not match the expected schema: '{{.Error}}'.",
	)

	// ConfigValidationFailed The configuration validation failed: '{{.Error}}'. Please check the configuration and try again.
	ConfigValidationFailed = createMessage(
		constants.ExitConfigError,
		"The configuration validation failed: '{{.Error}}'. Please check the configuration and try again.",
	)

	// SecretNotResolved The API key reference '{{.Reference}}' for endpoint '{{.URL}}' could not be resolved from the environment.
	SecretNotResolved = createMessage(
		constants.ExitConfigError,
		"The API key reference '{{.Reference}}' for endpoint '{{.URL}}' could not be resolved from the environment.",
	)

	// Per-endpoint check failures. These are recorded in the report and
	// never abort the run.

	// EndpointUnreachable The endpoint '{{.URL}}' is unreachable: '{{.Error}}'.
	EndpointUnreachable = createMessage(
		constants.ExitChecksFailed,
		"The endpoint '{{.URL}}' is unreachable: '{{.Error}}'.",
	)

	// EndpointTimeout The endpoint '{{.URL}}' did not respond within {{.Timeout}}.
	EndpointTimeout = createMessage(
		constants.ExitChecksFailed,
		"The endpoint '{{.URL}}' did not respond within {{.Timeout}}.",
	)

	// UnexpectedStatusCode The endpoint '{{.URL}}' returned an unexpected status code {{.Code}}.
	UnexpectedStatusCode = createMessage(
		constants.ExitChecksFailed,
		"The endpoint '{{.URL}}' returned an unexpected status code {{.Code}}.",
	)

	// LatencyOverThreshold The endpoint '{{.URL}}' responded in {{.Latency}}, over the expected {{.Threshold}}.
	LatencyOverThreshold = createMessage(
		constants.ExitChecksFailed,
		"The endpoint '{{.URL}}' responded in {{.Latency}}, over the expected {{.Threshold}}.",
	)

	// MissingPredictionPayload The model endpoint '{{.URL}}' returned a response without a recognizable prediction payload.
	MissingPredictionPayload = createMessage(
		constants.ExitChecksFailed,
		"The model endpoint '{{.URL}}' returned a response without a recognizable prediction payload.",
	)

	// PredicateNotSatisfied The response from '{{.URL}}' does not satisfy the predicate '{{.Predicate}}': '{{.Error}}'.
	PredicateNotSatisfied = createMessage(
		constants.ExitChecksFailed,
		"The response from '{{.URL}}' does not satisfy the predicate '{{.Predicate}}': '{{.Error}}'.",
	)

	// AuthenticationFailed The API endpoint '{{.URL}}' rejected the supplied credentials with status code {{.Code}}.
	AuthenticationFailed = createMessage(
		constants.ExitChecksFailed,
		"The API endpoint '{{.URL}}' rejected the supplied credentials with status code {{.Code}}.",
	)

	// Report and persistence errors

	// ReportWriteFailed The health report could not be written to '{{.Path}}': '{{.Error}}'.
	ReportWriteFailed = createMessage(
		constants.ExitConfigError,
		"The health report could not be written to '{{.Path}}': '{{.Error}}'.",
	)

	// ReportUploadFailed The health report could not be uploaded to '{{.Bucket}}': '{{.Error}}'.
	ReportUploadFailed = createMessage(
		constants.ExitConfigError,
		"The health report could not be uploaded to '{{.Bucket}}': '{{.Error}}'.",
	)

	// ReportParseFailed The health report could not be parsed: '{{.Error}}'.
	ReportParseFailed = createMessage(
		constants.ExitConfigError,
		"The health report could not be parsed: '{{.Error}}'.",
	)

	// HistoryStoreFailed The history store operation failed: '{{.Error}}'.
	HistoryStoreFailed = createMessage(
		constants.ExitConfigError,
		"The history store operation failed: '{{.Error}}'.",
	)

	// Telemetry errors

	// TracingSetupFailed The tracing setup failed: '{{.Error}}'.
	TracingSetupFailed = createMessage(
		constants.ExitConfigError,
		"The tracing setup failed: '{{.Error}}'.",
	)

	// MetricsPushFailed The metrics push to '{{.Gateway}}' failed: '{{.Error}}'.
	MetricsPushFailed = createMessage(
		constants.ExitConfigError,
		"The metrics push to '{{.Gateway}}' failed: '{{.Error}}'.",
	)

	// UnknownError An unknown error occurred: {{.Error}}.
	UnknownError = createMessage(
		constants.ExitConfigError,
		"An unknown error occurred: {{.Error}}.",
	)
)

type MessageCode struct {
	status int
	one    string
}

func (m *MessageCode) GetCode() int {
	return m.status
}

func (m *MessageCode) GetMessage() string {
	return m.one
}

func createMessage(status int, one string) *MessageCode {
	return &MessageCode{
		status,
		one,
	}
}

func GetErrorMesssage(messageCode *MessageCode, messageParams ...any) string {
	msg := messageCode.GetMessage()
	for i := 0; i < len(messageParams); i += 2 {
		param := messageParams[i]
		var paramValue any
		if i+1 < len(messageParams) {
			paramValue = messageParams[i+1]
		} else {
			paramValue = "NOT_DEFINED" // this is a placeholder for a missing parameter value - if you see this value then the code needs to be fixed
		}
		msg = strings.ReplaceAll(msg, fmt.Sprintf("{{.%v}}", param), fmt.Sprintf("%v", paramValue))
	}
	return msg
}
