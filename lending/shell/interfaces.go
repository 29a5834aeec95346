package shell

import "context"

// Command is implemented by every command of the lending desk.
// CommandType names it in logs, metrics, and spans.
type Command interface {
	CommandType() string
}

// Query is implemented by every query of the lending desk.
type Query interface {
	QueryType() string
}

// Result is implemented by every handler result through the embedded HandlerResult.
type Result interface {
	GetOutcome() Outcome
}

// CoreCommandHandler processes one command: query the store, decide, write.
// Implementations contain no observability, wrappers in package observable add it.
type CoreCommandHandler[C Command, R Result] interface {
	Handle(ctx context.Context, command C) (R, error)
}

// CoreQueryHandler processes one query: query the store, project.
type CoreQueryHandler[Q Query, R Result] interface {
	Handle(ctx context.Context, query Q) (R, error)
}
