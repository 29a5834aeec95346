package recordstore

import "context"

// ConsistencyLevel defines which database a RecordStore read is allowed to hit.
type ConsistencyLevel int

const (
	// StrongConsistency reads from the primary database, so a read sees every earlier write.
	// Command handlers that read before they write use it.
	StrongConsistency ConsistencyLevel = iota

	// EventualConsistency allows reads from a replica database, if one is configured.
	// Pure query handlers use it.
	EventualConsistency
)

type contextKey string

// ConsistencyLevelKey is the context key used to store consistency level preferences.
const ConsistencyLevelKey contextKey = "recordstore.consistency_level"

// WithStrongConsistency returns a context that makes RecordStore reads use the primary database.
//
// Example usage:
//
//	ctx = recordstore.WithStrongConsistency(ctx)
//	document, err := store.FindOne(ctx, "student_record", match)
func WithStrongConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, StrongConsistency)
}

// WithEventualConsistency returns a context that allows RecordStore reads from a replica database.
//
// Example usage:
//
//	ctx = recordstore.WithEventualConsistency(ctx)
//	documents, err := store.Find(ctx, "book_issue", match)
func WithEventualConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, EventualConsistency)
}

// GetConsistencyLevel extracts the consistency level from the context.
// Without one, StrongConsistency is returned.
func GetConsistencyLevel(ctx context.Context) ConsistencyLevel {
	if level, ok := ctx.Value(ConsistencyLevelKey).(ConsistencyLevel); ok {
		return level
	}

	return StrongConsistency
}

// String provides a string representation of ConsistencyLevel for logging and debugging.
func (c ConsistencyLevel) String() string {
	switch c {
	case StrongConsistency:
		return "strong"
	case EventualConsistency:
		return "eventual"
	default:
		return "unknown"
	}
}
