// Package recordstore provides the core abstractions for a document store holding
// named collections of JSON documents.
//
// This package defines the types shared by all record store engines: match criteria,
// storable documents, single-field updates, observability interfaces, and the
// common error definitions.
//
// Documents are matched by exact equality on top-level string fields. All predicates
// of a Match must hold (AND); an empty Match selects every document of a collection.
// Results are always returned in insertion order, and the "one" operations
// (FindOne, UpdateOne, DeleteOne) act on the first matching document in that order.
//
// Key types:
//   - Match: Defines criteria for selecting documents
//   - StorableDocument: A JSON document as stored in and read back from a collection
//   - FieldUpdate: Overwrites one top-level field of a document
//
// Common usage pattern:
//
//	match := recordstore.MatchAll(
//		recordstore.P("book_issued", bookID),
//		recordstore.P("enrollment_no", enrollmentNo))
//
//	document, err := store.FindOne(ctx, "book_issue", match)
//	if err != nil {
//		// handle error, errors.Is(err, recordstore.ErrDocumentNotFound) when nothing matched
//	}
//
//	update, err := recordstore.Set("fine", 1.5)
//	err = store.UpdateOne(ctx, "book_issue", match, update)
package recordstore
