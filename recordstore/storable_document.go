package recordstore

import (
	"bytes"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

var documentJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// StorableDocuments is an alias type for a slice of StorableDocument
type StorableDocuments = []StorableDocument

// StorableDocument is a DTO (data transfer object) used by the RecordStore to insert documents and query them back.
//
// It is built on scalars to be completely agnostic of the document types in the client code.
//
// While its properties are exported, it should only be constructed with the supplied factory method BuildStorableDocument.
type StorableDocument struct {
	ID          uuid.UUID
	PayloadJSON []byte
}

// BuildStorableDocument is a factory method for StorableDocument.
//
// Returns an error if payloadJSON is not a valid JSON object.
func BuildStorableDocument(id uuid.UUID, payloadJSON []byte) (StorableDocument, error) {
	trimmed := bytes.TrimSpace(payloadJSON)

	if len(trimmed) == 0 || trimmed[0] != '{' || !documentJSON.Valid(trimmed) {
		return StorableDocument{}, ErrInvalidDocumentJSON
	}

	return StorableDocument{
		ID:          id,
		PayloadJSON: trimmed,
	}, nil
}

// Decode unmarshals the document payload into a generic field map.
func (d StorableDocument) Decode() (map[string]any, error) {
	fields := make(map[string]any)

	if err := documentJSON.Unmarshal(d.PayloadJSON, &fields); err != nil {
		return nil, err
	}

	return fields, nil
}

/***** FieldUpdate *****/

// FieldUpdate overwrites a single top-level field of a document with a JSON value.
type FieldUpdate struct {
	field     string
	valueJSON []byte
}

// Set builds a FieldUpdate that will overwrite field with the JSON encoding of value.
func Set(field string, value any) (FieldUpdate, error) {
	if field == "" {
		return FieldUpdate{}, ErrEmptyFieldName
	}

	valueJSON, err := documentJSON.Marshal(value)
	if err != nil {
		return FieldUpdate{}, err
	}

	return FieldUpdate{field: field, valueJSON: valueJSON}, nil
}

func (u FieldUpdate) Field() string {
	return u.field
}

func (u FieldUpdate) ValueJSON() []byte {
	return u.valueJSON
}

// Apply returns a copy of the document with the update applied.
func (u FieldUpdate) Apply(d StorableDocument) (StorableDocument, error) {
	fields := make(map[string]jsoniter.RawMessage)

	if err := documentJSON.Unmarshal(d.PayloadJSON, &fields); err != nil {
		return StorableDocument{}, err
	}

	fields[u.field] = u.valueJSON

	payloadJSON, err := documentJSON.Marshal(fields)
	if err != nil {
		return StorableDocument{}, err
	}

	return StorableDocument{ID: d.ID, PayloadJSON: payloadJSON}, nil
}
