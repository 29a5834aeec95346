package postgresengine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/AntonStoeckl/intellib/recordstore"
)

const (
	metricOperationDuration = "recordstore_operation_duration_seconds"
	metricDocumentsAffected = "recordstore_documents_affected"
	metricDatabaseErrors    = "recordstore_database_errors_total"
	metricNotFound          = "recordstore_not_found_total"

	spanNamePrefix        = "recordstore."
	spanAttrOperation     = "operation"
	spanAttrCollection    = "collection"
	spanAttrErrorType     = "error_type"
	spanAttrDocumentCount = "document_count"
	spanAttrDocumentID    = "document_id"
	spanAttrField         = "field"
	spanAttrDurationMS    = "duration_ms"
	spanAttrConsistency   = "consistency"

	labelStatus = "status"

	operationPing    = "ping"
	operationFind    = "find"
	operationFindOne = "find_one"
	operationInsert  = "insert"
	operationUpdate  = "update_one"
	operationDelete  = "delete_one"
	operationSum     = "sum"

	statusSuccess  = "success"
	statusError    = "error"
	statusNotFound = "not_found"

	errorTypeBuildQuery    = "build_query"
	errorTypeDatabaseQuery = "database_query"
	errorTypeDatabaseExec  = "database_exec"
	errorTypeRowScan       = "row_scan"
	errorTypeRowsAffected  = "rows_affected"
	errorTypePing          = "ping"
)

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

/*** Logging ***/

// logQueryWithDuration logs SQL statements with execution time at debug level.
func (s *Store) logQueryWithDuration(ctx context.Context, sqlQuery string, action string, duration time.Duration) {
	s.logDebug(ctx, logMsgSQLExecuted+action, logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery)
}

// logOperation logs operational information at info level.
func (s *Store) logOperation(ctx context.Context, action string, args ...any) {
	switch {
	case s.contextualLogger != nil:
		s.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
	case s.logger != nil:
		s.logger.Info(logMsgOperation+action, args...)
	}
}

func (s *Store) logDebug(ctx context.Context, msg string, args ...any) {
	switch {
	case s.contextualLogger != nil:
		s.contextualLogger.DebugContext(ctx, msg, args...)
	case s.logger != nil:
		s.logger.Debug(msg, args...)
	}
}

func (s *Store) logWarn(ctx context.Context, msg string, err error) {
	switch {
	case s.contextualLogger != nil:
		s.contextualLogger.WarnContext(ctx, msg, logAttrError, err.Error())
	case s.logger != nil:
		s.logger.Warn(msg, logAttrError, err.Error())
	}
}

// logError logs error information at error level.
func (s *Store) logError(ctx context.Context, msg string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	switch {
	case s.contextualLogger != nil:
		s.contextualLogger.ErrorContext(ctx, msg, allArgs...)
	case s.logger != nil:
		s.logger.Error(msg, allArgs...)
	}
}

/*** Metrics ***/

func (s *Store) recordDuration(ctx context.Context, duration time.Duration, labels map[string]string) {
	if s.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := s.metricsCollector.(recordstore.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metricOperationDuration, duration, labels)
	} else {
		s.metricsCollector.RecordDuration(metricOperationDuration, duration, labels)
	}
}

func (s *Store) recordValue(ctx context.Context, metric string, value float64, labels map[string]string) {
	if s.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := s.metricsCollector.(recordstore.ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(ctx, metric, value, labels)
	} else {
		s.metricsCollector.RecordValue(metric, value, labels)
	}
}

func (s *Store) incrementCounter(ctx context.Context, metric string, labels map[string]string) {
	if s.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := s.metricsCollector.(recordstore.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metric, labels)
	} else {
		s.metricsCollector.IncrementCounter(metric, labels)
	}
}

/*** Operation Observer ***/
// The observer bundles span lifecycle and metrics recording for one store operation.

type operationObserver struct {
	s          *Store
	ctx        context.Context
	operation  string
	collection string
	span       recordstore.SpanContext
	start      time.Time
	finished   bool
}

// startOperation starts the span (if tracing is configured) and the clock for one operation.
func (s *Store) startOperation(ctx context.Context, operation string, collection string) (*operationObserver, context.Context) {
	obs := &operationObserver{
		s:          s,
		operation:  operation,
		collection: collection,
		start:      time.Now(),
	}

	if s.tracingCollector != nil {
		attrs := map[string]string{
			spanAttrOperation:   operation,
			spanAttrConsistency: recordstore.GetConsistencyLevel(ctx).String(),
		}

		if collection != "" {
			attrs[spanAttrCollection] = collection
		}

		ctx, obs.span = s.tracingCollector.StartSpan(ctx, spanNamePrefix+operation, attrs)
	}

	obs.ctx = ctx

	return obs, ctx
}

func (o *operationObserver) elapsed() time.Duration {
	return time.Since(o.start)
}

func (o *operationObserver) labels(status string) map[string]string {
	labels := map[string]string{
		spanAttrOperation: o.operation,
		labelStatus:       status,
	}

	if o.collection != "" {
		labels[spanAttrCollection] = o.collection
	}

	return labels
}

// finishSuccess records the metrics and closes the span of a successful operation.
// A negative documentCount means the operation does not touch documents.
func (o *operationObserver) finishSuccess(attrs map[string]string, documentCount int) {
	if o.finished {
		return
	}
	o.finished = true

	duration := o.elapsed()
	o.s.recordDuration(o.ctx, duration, o.labels(statusSuccess))

	if documentCount >= 0 {
		o.s.recordValue(o.ctx, metricDocumentsAffected, float64(documentCount), o.labels(statusSuccess))
	}

	if o.span == nil {
		return
	}

	finalAttrs := map[string]string{spanAttrDurationMS: fmt.Sprintf("%.2f", toMilliseconds(duration))}
	if documentCount >= 0 {
		finalAttrs[spanAttrDocumentCount] = fmt.Sprintf("%d", documentCount)
	}

	for key, value := range attrs {
		finalAttrs[key] = value
	}

	o.s.tracingCollector.FinishSpan(o.span, statusSuccess, finalAttrs)
}

// finishNotFound closes an operation whose match selected nothing; this is a valid outcome, not an error.
func (o *operationObserver) finishNotFound() {
	if o.finished {
		return
	}
	o.finished = true

	duration := o.elapsed()
	o.s.recordDuration(o.ctx, duration, o.labels(statusNotFound))
	o.s.incrementCounter(o.ctx, metricNotFound, o.labels(statusNotFound))

	if o.span == nil {
		return
	}

	o.s.tracingCollector.FinishSpan(o.span, statusNotFound, map[string]string{
		spanAttrDurationMS: fmt.Sprintf("%.2f", toMilliseconds(duration)),
	})
}

// finishError records the error metrics and closes the span of a failed operation.
func (o *operationObserver) finishError(errorType string) {
	if o.finished {
		return
	}
	o.finished = true

	duration := o.elapsed()
	o.s.recordDuration(o.ctx, duration, o.labels(statusError))

	errorLabels := o.labels(statusError)
	errorLabels[spanAttrErrorType] = errorType
	o.s.incrementCounter(o.ctx, metricDatabaseErrors, errorLabels)

	if o.span == nil {
		return
	}

	o.span.SetStatus(statusError)
	o.s.tracingCollector.FinishSpan(o.span, statusError, map[string]string{
		spanAttrErrorType:  errorType,
		spanAttrDurationMS: fmt.Sprintf("%.2f", toMilliseconds(duration)),
	})
}
