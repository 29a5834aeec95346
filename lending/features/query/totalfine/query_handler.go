package totalfine

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/intellib/lending/shell"
	"github.com/AntonStoeckl/intellib/recordstore"
)

// RecordStore defines the record store operations needed by the QueryHandler.
type RecordStore interface {
	Sum(ctx context.Context, collection recordstore.CollectionName, match recordstore.Match, field string) (decimal.Decimal, error)
}

// QueryHandler runs Sum -> Project.
type QueryHandler struct {
	store RecordStore
}

func NewQueryHandler(store RecordStore) QueryHandler {
	return QueryHandler{store: store}
}

func (h QueryHandler) Handle(ctx context.Context, query Query) (TotalFine, error) {
	ctx = recordstore.WithEventualConsistency(ctx)

	sum, err := h.store.Sum(ctx, shell.CollectionBookIssue, shell.MatchLoansOf(query.EnrollmentNo), shell.FieldFine)
	if err != nil {
		err = shell.ClassifyError(err)

		return TotalFine{HandlerResult: shell.NewResultFor(err), Total: decimal.Zero}, err
	}

	return ProjectTotalFine(sum, query), nil
}
