package postgresengine

import (
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/doug-martin/goqu/v9/exp"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/intellib/recordstore"
)

const (
	colSeq          = "seq"
	colID           = "id"
	colDocument     = "document"
	dialectPostgres = "postgres"
	aliasTotal      = "total"
	castText        = "TEXT"
	litContainment  = "? @> ?::jsonb"
	litJSONB        = "?::jsonb"
	litJSONBSet     = "jsonb_set(?, ARRAY[?]::text[], ?::jsonb, true)"
	litNumericField = "(? ->> ?)::numeric"
)

var predicateJSON = jsoniter.ConfigCompatibleWithStandardLibrary

func (s *Store) table(collection recordstore.CollectionName) exp.IdentifierExpression {
	return goqu.S(s.schema).Table(collection)
}

func (s *Store) buildSelectQuery(
	collection recordstore.CollectionName,
	match recordstore.Match,
	firstOnly bool,
) (sqlQueryString, error) {

	if collection == "" {
		return "", errors.Join(recordstore.ErrBuildingQueryFailed, recordstore.ErrEmptyCollectionName)
	}

	selectStmt := goqu.Dialect(dialectPostgres).
		From(s.table(collection)).
		Select(
			goqu.Cast(goqu.C(colID), castText).As(colID),
			goqu.Cast(goqu.C(colDocument), castText).As(colDocument),
		).
		Order(goqu.C(colSeq).Asc())

	selectStmt, whereErr := addWhereClause(match, selectStmt)
	if whereErr != nil {
		return "", whereErr
	}

	if firstOnly {
		selectStmt = selectStmt.Limit(1)
	}

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(recordstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (s *Store) buildInsertQuery(
	collection recordstore.CollectionName,
	document recordstore.StorableDocument,
) (sqlQueryString, error) {

	if collection == "" {
		return "", errors.Join(recordstore.ErrBuildingQueryFailed, recordstore.ErrEmptyCollectionName)
	}

	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(s.table(collection)).
		Cols(colID, colDocument).
		Vals(goqu.Vals{document.ID.String(), goqu.L(litJSONB, string(document.PayloadJSON))})

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(recordstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (s *Store) buildUpdateOneQuery(
	collection recordstore.CollectionName,
	match recordstore.Match,
	update recordstore.FieldUpdate,
) (sqlQueryString, error) {

	if update.Field() == "" {
		return "", errors.Join(recordstore.ErrBuildingQueryFailed, recordstore.ErrEmptyFieldName)
	}

	firstSeq, buildErr := s.firstMatchingSeq(collection, match)
	if buildErr != nil {
		return "", buildErr
	}

	updateStmt := goqu.Dialect(dialectPostgres).
		Update(s.table(collection)).
		Set(goqu.Record{
			colDocument: goqu.L(litJSONBSet, goqu.C(colDocument), update.Field(), string(update.ValueJSON())),
		}).
		Where(goqu.C(colSeq).In(firstSeq))

	sqlQuery, _, toSQLErr := updateStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(recordstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (s *Store) buildDeleteOneQuery(
	collection recordstore.CollectionName,
	match recordstore.Match,
) (sqlQueryString, error) {

	firstSeq, buildErr := s.firstMatchingSeq(collection, match)
	if buildErr != nil {
		return "", buildErr
	}

	deleteStmt := goqu.Dialect(dialectPostgres).
		Delete(s.table(collection)).
		Where(goqu.C(colSeq).In(firstSeq))

	sqlQuery, _, toSQLErr := deleteStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(recordstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (s *Store) buildSumQuery(
	collection recordstore.CollectionName,
	match recordstore.Match,
	field string,
) (sqlQueryString, error) {

	if collection == "" {
		return "", errors.Join(recordstore.ErrBuildingQueryFailed, recordstore.ErrEmptyCollectionName)
	}

	if field == "" {
		return "", errors.Join(recordstore.ErrBuildingQueryFailed, recordstore.ErrEmptyFieldName)
	}

	selectStmt := goqu.Dialect(dialectPostgres).
		From(s.table(collection)).
		Select(goqu.COALESCE(goqu.SUM(goqu.L(litNumericField, goqu.C(colDocument), field)), 0).As(aliasTotal))

	selectStmt, whereErr := addWhereClause(match, selectStmt)
	if whereErr != nil {
		return "", whereErr
	}

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(recordstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// firstMatchingSeq builds the subquery selecting the seq of the first matching document in insertion order.
func (s *Store) firstMatchingSeq(
	collection recordstore.CollectionName,
	match recordstore.Match,
) (*goqu.SelectDataset, error) {

	if collection == "" {
		return nil, errors.Join(recordstore.ErrBuildingQueryFailed, recordstore.ErrEmptyCollectionName)
	}

	subSelect := goqu.Dialect(dialectPostgres).
		From(s.table(collection)).
		Select(colSeq).
		Order(goqu.C(colSeq).Asc()).
		Limit(1)

	return addWhereClause(match, subSelect)
}

// addWhereClause adds one JSONB containment expression per predicate, all of them AND-ed.
func addWhereClause(match recordstore.Match, selectStmt *goqu.SelectDataset) (*goqu.SelectDataset, error) {
	if match.IsEmpty() {
		return selectStmt, nil
	}

	predicateExpressions := make([]goqu.Expression, 0, len(match.Predicates()))

	for _, predicate := range match.Predicates() {
		containment, marshalErr := predicateJSON.MarshalToString(map[string]string{predicate.Key(): predicate.Val()})
		if marshalErr != nil {
			return nil, errors.Join(recordstore.ErrBuildingQueryFailed, marshalErr)
		}

		predicateExpressions = append(
			predicateExpressions,
			goqu.L(litContainment, goqu.C(colDocument), containment),
		)
	}

	return selectStmt.Where(goqu.And(predicateExpressions...)), nil
}
