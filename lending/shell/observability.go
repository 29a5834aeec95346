package shell

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AntonStoeckl/intellib/recordstore"
)

const (
	// CommandHandlerDurationMetric tracks command handler execution duration (OpenTelemetry-compatible).
	CommandHandlerDurationMetric = "commandhandler_handle_duration_seconds"

	// CommandHandlerCallsMetric tracks total command handler calls.
	CommandHandlerCallsMetric = "commandhandler_handle_calls_total"

	// CommandHandlerRejectedMetric tracks commands the lending rules refused.
	CommandHandlerRejectedMetric = "commandhandler_rejected_operations_total"

	// CommandHandlerBackendUnavailableMetric tracks commands that could not reach the record store.
	CommandHandlerBackendUnavailableMetric = "commandhandler_backend_unavailable_total"

	CommandHandlerCanceledMetric = "commandhandler_canceled_operations_total"
	CommandHandlerTimeoutMetric  = "commandhandler_timeout_operations_total"

	// QueryHandlerDurationMetric tracks query handler execution duration (OpenTelemetry-compatible).
	QueryHandlerDurationMetric = "queryhandler_handle_duration_seconds"

	// QueryHandlerCallsMetric tracks total query handler calls.
	QueryHandlerCallsMetric = "queryhandler_handle_calls_total"

	QueryHandlerRejectedMetric           = "queryhandler_rejected_operations_total"
	QueryHandlerBackendUnavailableMetric = "queryhandler_backend_unavailable_total"
	QueryHandlerCanceledMetric           = "queryhandler_canceled_operations_total"
	QueryHandlerTimeoutMetric            = "queryhandler_timeout_operations_total"

	// StatusSuccess indicates successful completion.
	StatusSuccess = "success"

	// StatusRejected indicates a refusal by the lending rules, e.g. an unknown student.
	StatusRejected = "rejected"

	// StatusBackendUnavailable indicates the record store could not be reached.
	StatusBackendUnavailable = "backend_unavailable"

	// StatusError indicates any other processing error.
	StatusError = "error"

	// StatusCanceled indicates the operation was canceled due to context cancellation.
	StatusCanceled = "canceled"

	// StatusTimeout indicates the operation timed out due to context deadline exceeded.
	StatusTimeout = "timeout"

	LogMsgCommandStarted   = "command handler started"
	LogMsgCommandCompleted = "command handler completed"
	LogMsgCommandRejected  = "command handler rejected"
	LogMsgCommandFailed    = "command handler failed"

	LogMsgQueryStarted   = "query handler started"
	LogMsgQueryCompleted = "query handler completed"
	LogMsgQueryRejected  = "query handler rejected"
	LogMsgQueryFailed    = "query handler failed"

	LogAttrCommandType     = "command_type"
	LogAttrQueryType       = "query_type"
	LogAttrStatus          = "status"
	LogAttrDurationMS      = "duration_ms"
	LogAttrBusinessOutcome = "business_outcome"
	LogAttrError           = "error"

	// SpanNameCommandHandle is the tracing span name for command handling.
	SpanNameCommandHandle = "commandhandler.handle"

	// SpanNameQueryHandle is the tracing span name for query handling.
	SpanNameQueryHandle = "queryhandler.handle"
)

// Interface aliases so that wrappers and the desk depend on one set of observability interfaces.

type MetricsCollector = recordstore.MetricsCollector

type ContextualMetricsCollector = recordstore.ContextualMetricsCollector

type TracingCollector = recordstore.TracingCollector

type SpanContext = recordstore.SpanContext

type ContextualLogger = recordstore.ContextualLogger

type Logger = recordstore.Logger

// handlerMetricNames groups the metric names of one handler kind.
type handlerMetricNames struct {
	labelKey           string
	duration           string
	calls              string
	rejected           string
	backendUnavailable string
	canceled           string
	timeout            string
}

var commandMetricNames = handlerMetricNames{
	labelKey:           LogAttrCommandType,
	duration:           CommandHandlerDurationMetric,
	calls:              CommandHandlerCallsMetric,
	rejected:           CommandHandlerRejectedMetric,
	backendUnavailable: CommandHandlerBackendUnavailableMetric,
	canceled:           CommandHandlerCanceledMetric,
	timeout:            CommandHandlerTimeoutMetric,
}

var queryMetricNames = handlerMetricNames{
	labelKey:           LogAttrQueryType,
	duration:           QueryHandlerDurationMetric,
	calls:              QueryHandlerCallsMetric,
	rejected:           QueryHandlerRejectedMetric,
	backendUnavailable: QueryHandlerBackendUnavailableMetric,
	canceled:           QueryHandlerCanceledMetric,
	timeout:            QueryHandlerTimeoutMetric,
}

// StatusFor derives the observability status of a finished handler call from its error.
func StatusFor(err error) string {
	switch {
	case err == nil:
		return StatusSuccess
	case IsCancellationError(err):
		return StatusCanceled
	case IsTimeoutError(err):
		return StatusTimeout
	case IsBusinessError(err):
		return StatusRejected
	case errors.Is(ClassifyError(err), ErrBackendUnavailable):
		return StatusBackendUnavailable
	default:
		return StatusError
	}
}

// BuildCommandLabels creates standard metric labels for command handler operations.
func BuildCommandLabels(commandType, status string) map[string]string {
	return map[string]string{
		LogAttrCommandType: commandType,
		LogAttrStatus:      status,
	}
}

// BuildQueryLabels creates standard metric labels for query handler operations.
func BuildQueryLabels(queryType, status string) map[string]string {
	return map[string]string{
		LogAttrQueryType: queryType,
		LogAttrStatus:    status,
	}
}

// ToMilliseconds converts a time.Duration to float64 milliseconds with precision.
func ToMilliseconds(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}

// RecordCommandMetrics records duration and call count of a command, plus the counter matching a non-success status.
// It handles both context-aware and basic metrics collectors.
func RecordCommandMetrics(
	ctx context.Context,
	collector MetricsCollector,
	commandType string,
	status string,
	duration time.Duration,
) {
	recordHandlerMetrics(ctx, collector, commandMetricNames, commandType, status, duration)
}

// RecordQueryMetrics records duration and call count of a query, plus the counter matching a non-success status.
func RecordQueryMetrics(
	ctx context.Context,
	collector MetricsCollector,
	queryType string,
	status string,
	duration time.Duration,
) {
	recordHandlerMetrics(ctx, collector, queryMetricNames, queryType, status, duration)
}

func recordHandlerMetrics(
	ctx context.Context,
	collector MetricsCollector,
	names handlerMetricNames,
	handlerType string,
	status string,
	duration time.Duration,
) {
	if collector == nil {
		return
	}

	labels := map[string]string{
		names.labelKey: handlerType,
		LogAttrStatus:  status,
	}

	contextualCollector, isContextual := collector.(ContextualMetricsCollector)

	if isContextual {
		contextualCollector.RecordDurationContext(ctx, names.duration, duration, labels)
		contextualCollector.IncrementCounterContext(ctx, names.calls, labels)
	} else {
		collector.RecordDuration(names.duration, duration, labels)
		collector.IncrementCounter(names.calls, labels)
	}

	var statusMetric string

	switch status {
	case StatusRejected:
		statusMetric = names.rejected
	case StatusBackendUnavailable:
		statusMetric = names.backendUnavailable
	case StatusCanceled:
		statusMetric = names.canceled
	case StatusTimeout:
		statusMetric = names.timeout
	default:
		return
	}

	if isContextual {
		contextualCollector.IncrementCounterContext(ctx, statusMetric, labels)
	} else {
		collector.IncrementCounter(statusMetric, labels)
	}
}

// StartCommandSpan starts a tracing span for command operations.
// Returns the original context and nil if tracing is disabled.
func StartCommandSpan(ctx context.Context, tracingCollector TracingCollector, commandType string) (context.Context, SpanContext) {
	if tracingCollector == nil {
		return ctx, nil
	}

	return tracingCollector.StartSpan(ctx, SpanNameCommandHandle, map[string]string{LogAttrCommandType: commandType})
}

// StartQuerySpan starts a tracing span for query operations.
func StartQuerySpan(ctx context.Context, tracingCollector TracingCollector, queryType string) (context.Context, SpanContext) {
	if tracingCollector == nil {
		return ctx, nil
	}

	return tracingCollector.StartSpan(ctx, SpanNameQueryHandle, map[string]string{LogAttrQueryType: queryType})
}

// FinishSpan completes a command or query span with the operation outcome.
func FinishSpan(
	tracingCollector TracingCollector,
	span SpanContext,
	status string,
	duration time.Duration,
	err error,
) {
	if tracingCollector == nil || span == nil {
		return
	}

	attrs := map[string]string{
		LogAttrStatus:     status,
		LogAttrDurationMS: formatDurationMS(duration),
	}

	if err != nil {
		attrs[LogAttrError] = err.Error()
	}

	tracingCollector.FinishSpan(span, status, attrs)
}

// LogCommandStart logs the beginning of command processing.
func LogCommandStart(ctx context.Context, logger Logger, contextualLogger ContextualLogger, commandType string) {
	logInfo(ctx, logger, contextualLogger, LogMsgCommandStarted, LogAttrCommandType, commandType)
}

// LogCommandSuccess logs successful command completion.
func LogCommandSuccess(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	commandType string,
	businessOutcome Outcome,
	duration time.Duration,
) {
	logInfo(ctx, logger, contextualLogger, LogMsgCommandCompleted,
		LogAttrCommandType, commandType,
		LogAttrBusinessOutcome, string(businessOutcome),
		LogAttrDurationMS, ToMilliseconds(duration),
	)
}

// LogCommandError logs command errors; rejections by the lending rules are logged at info level.
func LogCommandError(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	commandType string,
	status string,
	err error,
) {
	args := []any{LogAttrCommandType, commandType, LogAttrStatus, status, LogAttrError, err.Error()}

	if status == StatusRejected {
		logInfo(ctx, logger, contextualLogger, LogMsgCommandRejected, args...)
		return
	}

	logError(ctx, logger, contextualLogger, LogMsgCommandFailed, args...)
}

// LogQueryStart logs the beginning of query processing.
func LogQueryStart(ctx context.Context, logger Logger, contextualLogger ContextualLogger, queryType string) {
	logInfo(ctx, logger, contextualLogger, LogMsgQueryStarted, LogAttrQueryType, queryType)
}

// LogQuerySuccess logs successful query completion.
func LogQuerySuccess(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	queryType string,
	businessOutcome Outcome,
	duration time.Duration,
) {
	logInfo(ctx, logger, contextualLogger, LogMsgQueryCompleted,
		LogAttrQueryType, queryType,
		LogAttrBusinessOutcome, string(businessOutcome),
		LogAttrDurationMS, ToMilliseconds(duration),
	)
}

// LogQueryError logs query errors; rejections are logged at info level.
func LogQueryError(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	queryType string,
	status string,
	err error,
) {
	args := []any{LogAttrQueryType, queryType, LogAttrStatus, status, LogAttrError, err.Error()}

	if status == StatusRejected {
		logInfo(ctx, logger, contextualLogger, LogMsgQueryRejected, args...)
		return
	}

	logError(ctx, logger, contextualLogger, LogMsgQueryFailed, args...)
}

func logInfo(ctx context.Context, logger Logger, contextualLogger ContextualLogger, msg string, args ...any) {
	if contextualLogger != nil {
		contextualLogger.InfoContext(ctx, msg, args...)
	} else if logger != nil {
		logger.Info(msg, args...)
	}
}

func logError(ctx context.Context, logger Logger, contextualLogger ContextualLogger, msg string, args ...any) {
	if contextualLogger != nil {
		contextualLogger.ErrorContext(ctx, msg, args...)
	} else if logger != nil {
		logger.Error(msg, args...)
	}
}

// formatDurationMS formats duration in milliseconds for span attributes.
func formatDurationMS(duration time.Duration) string {
	return fmt.Sprintf("%.2f", ToMilliseconds(duration))
}
