package shell

import (
	"bytes"
	"errors"
	"strconv"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/intellib/lending/core"
	"github.com/AntonStoeckl/intellib/recordstore"
)

const (
	CollectionBookIssue     recordstore.CollectionName = "book_issue"
	CollectionStudentRecord recordstore.CollectionName = "student_record"

	FieldEnrollmentNo = "enrollment_no"
	FieldBookIssued   = "book_issued"
	FieldFine         = "fine"
)

var documentJSON = jsoniter.ConfigCompatibleWithStandardLibrary

var jsonNull = []byte("null")

type studentRecordDocument struct {
	EnrollmentNo string              `json:"enrollment_no"`
	FirstName    string              `json:"first_name"`
	LastName     string              `json:"last_name"`
	Semester     jsoniter.RawMessage `json:"semester"`
}

type issuedBookDocument struct {
	BookIssued      string              `json:"book_issued"`
	IssueDate       string              `json:"issue_date"`
	ReturnDate      string              `json:"return_date"`
	EnrollmentNo    string              `json:"enrollment_no"`
	IssuerFirstName string              `json:"issuer_first_name"`
	IssuerLastName  string              `json:"issuer_last_name"`
	IssuerSemester  jsoniter.RawMessage `json:"issuer_semester"`
	Status          string              `json:"status"`
	Fine            float64             `json:"fine"`
}

// MatchStudent selects the student record of an enrollment number.
func MatchStudent(enrollmentNo core.EnrollmentNoString) recordstore.Match {
	return recordstore.MatchAll(recordstore.P(FieldEnrollmentNo, enrollmentNo))
}

// MatchLoansOf selects all loans of a student.
func MatchLoansOf(enrollmentNo core.EnrollmentNoString) recordstore.Match {
	return recordstore.MatchAll(recordstore.P(FieldEnrollmentNo, enrollmentNo))
}

// MatchLoan selects the loans of one book to one student.
func MatchLoan(enrollmentNo core.EnrollmentNoString, bookID core.BookIDString) recordstore.Match {
	return recordstore.MatchAll(
		recordstore.P(FieldEnrollmentNo, enrollmentNo),
		recordstore.P(FieldBookIssued, bookID),
	)
}

// StudentRecordFromDocument decodes a student_record document.
// The semester may be stored as a JSON number or string.
func StudentRecordFromDocument(document recordstore.StorableDocument) (core.StudentRecord, error) {
	var doc studentRecordDocument
	if err := documentJSON.Unmarshal(document.PayloadJSON, &doc); err != nil {
		return core.StudentRecord{}, errors.Join(ErrInvalidDocument, err)
	}

	semester, err := semesterFromJSON(doc.Semester)
	if err != nil {
		return core.StudentRecord{}, errors.Join(ErrInvalidDocument, err)
	}

	return core.StudentRecord{
		EnrollmentNo: doc.EnrollmentNo,
		FirstName:    doc.FirstName,
		LastName:     doc.LastName,
		Semester:     semester,
	}, nil
}

// StudentRecordToDocument encodes a student record with a fresh document id.
func StudentRecordToDocument(student core.StudentRecord) (recordstore.StorableDocument, error) {
	payloadJSON, err := documentJSON.Marshal(studentRecordDocument{
		EnrollmentNo: student.EnrollmentNo,
		FirstName:    student.FirstName,
		LastName:     student.LastName,
		Semester:     semesterToJSON(student.Semester),
	})
	if err != nil {
		return recordstore.StorableDocument{}, errors.Join(ErrInvalidDocument, err)
	}

	return recordstore.BuildStorableDocument(uuid.New(), payloadJSON)
}

// IssuedBookFromDocument decodes a book_issue document.
func IssuedBookFromDocument(document recordstore.StorableDocument) (core.IssuedBook, error) {
	var doc issuedBookDocument
	if err := documentJSON.Unmarshal(document.PayloadJSON, &doc); err != nil {
		return core.IssuedBook{}, errors.Join(ErrInvalidDocument, err)
	}

	issueDate, err := core.ParseDate(doc.IssueDate)
	if err != nil {
		return core.IssuedBook{}, errors.Join(ErrInvalidDocument, err)
	}

	returnDate, err := core.ParseDate(doc.ReturnDate)
	if err != nil {
		return core.IssuedBook{}, errors.Join(ErrInvalidDocument, err)
	}

	semester, err := semesterFromJSON(doc.IssuerSemester)
	if err != nil {
		return core.IssuedBook{}, errors.Join(ErrInvalidDocument, err)
	}

	return core.IssuedBook{
		EnrollmentNo:    doc.EnrollmentNo,
		BookID:          doc.BookIssued,
		IssueDate:       issueDate,
		ReturnDate:      returnDate,
		Status:          doc.Status,
		Fine:            decimal.NewFromFloat(doc.Fine),
		IssuerFirstName: doc.IssuerFirstName,
		IssuerLastName:  doc.IssuerLastName,
		IssuerSemester:  semester,
	}, nil
}

// IssuedBooksFromDocuments decodes book_issue documents, keeping their order.
func IssuedBooksFromDocuments(documents recordstore.StorableDocuments) (core.IssuedBooks, error) {
	loans := make(core.IssuedBooks, 0, len(documents))

	for _, document := range documents {
		loan, err := IssuedBookFromDocument(document)
		if err != nil {
			return nil, err
		}

		loans = append(loans, loan)
	}

	return loans, nil
}

// IssuedBookToDocument encodes a loan with a fresh document id.
func IssuedBookToDocument(loan core.IssuedBook) (recordstore.StorableDocument, error) {
	payloadJSON, err := documentJSON.Marshal(issuedBookDocument{
		BookIssued:      loan.BookID,
		IssueDate:       loan.IssueDate.String(),
		ReturnDate:      loan.ReturnDate.String(),
		EnrollmentNo:    loan.EnrollmentNo,
		IssuerFirstName: loan.IssuerFirstName,
		IssuerLastName:  loan.IssuerLastName,
		IssuerSemester:  semesterToJSON(loan.IssuerSemester),
		Status:          loan.Status,
		Fine:            loan.Fine.InexactFloat64(),
	})
	if err != nil {
		return recordstore.StorableDocument{}, errors.Join(ErrInvalidDocument, err)
	}

	return recordstore.BuildStorableDocument(uuid.New(), payloadJSON)
}

// FineUpdate overwrites the fine field of a loan document.
func FineUpdate(fine decimal.Decimal) (recordstore.FieldUpdate, error) {
	return recordstore.Set(FieldFine, fine.InexactFloat64())
}

func semesterFromJSON(raw jsoniter.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)

	if len(trimmed) == 0 || bytes.Equal(trimmed, jsonNull) {
		return "", nil
	}

	if trimmed[0] == '"' {
		var semester string
		if err := documentJSON.Unmarshal(trimmed, &semester); err != nil {
			return "", err
		}

		return semester, nil
	}

	return string(trimmed), nil
}

// semesterToJSON writes integral semesters back as JSON numbers, anything else as a string.
func semesterToJSON(semester string) jsoniter.RawMessage {
	if semester == "" {
		return jsonNull
	}

	if _, err := strconv.Atoi(semester); err == nil {
		return jsoniter.RawMessage(semester)
	}

	quoted, _ := documentJSON.Marshal(semester)

	return quoted
}
