package overduebooks

import (
	"context"

	"github.com/AntonStoeckl/intellib/lending/shell"
	"github.com/AntonStoeckl/intellib/recordstore"
)

// RecordStore defines the record store operations needed by the QueryHandler.
type RecordStore interface {
	Find(ctx context.Context, collection recordstore.CollectionName, match recordstore.Match) (recordstore.StorableDocuments, error)
}

// QueryHandler runs Query -> Decode -> Project.
type QueryHandler struct {
	store RecordStore
}

func NewQueryHandler(store RecordStore) QueryHandler {
	return QueryHandler{store: store}
}

func (h QueryHandler) Handle(ctx context.Context, query Query) (OverdueBooks, error) {
	ctx = recordstore.WithEventualConsistency(ctx)

	documents, err := h.store.Find(ctx, shell.CollectionBookIssue, shell.MatchLoansOf(query.EnrollmentNo))
	if err != nil {
		return failed(err)
	}

	loans, err := shell.IssuedBooksFromDocuments(documents)
	if err != nil {
		return failed(err)
	}

	return ProjectOverdueBooks(loans, query), nil
}

func failed(err error) (OverdueBooks, error) {
	err = shell.ClassifyError(err)

	return OverdueBooks{HandlerResult: shell.NewResultFor(err)}, err
}
