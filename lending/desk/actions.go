package desk

import (
	"context"
	"fmt"
	"strings"

	"github.com/AntonStoeckl/intellib/lending/core"
	"github.com/AntonStoeckl/intellib/lending/features/command/issuebook"
	"github.com/AntonStoeckl/intellib/lending/features/command/returnbook"
	"github.com/AntonStoeckl/intellib/lending/features/query/issuedbooks"
	"github.com/AntonStoeckl/intellib/lending/features/query/overduebooks"
	"github.com/AntonStoeckl/intellib/lending/features/query/totalfine"
	"github.com/AntonStoeckl/intellib/lending/shell"
)

const (
	logMsgAction    = "desk action answered"
	logAttrAction   = "action"
	logAttrLevel    = "level"
	logAttrTitle    = "title"
	logAttrOutcome  = "outcome"
	actionIssued    = "issued_books"
	actionDeadlines = "deadlines"
	actionFine      = "fine"
	actionIssue     = "issue_book"
	actionReturn    = "return_book"
)

// CheckIssuedBooks lists all books issued to the student.
func (d *Desk) CheckIssuedBooks(ctx context.Context, enrollmentInput string) Notice {
	return d.run(ctx, actionIssued, enrollmentInput, func(ctx context.Context, enrollmentNo core.EnrollmentNoString) Notice {
		result, err := d.issuedBooks.Handle(ctx, issuedbooks.BuildQuery(enrollmentNo))
		if err != nil {
			return FailureNotice(err)
		}

		if result.Count == 0 {
			return infoNotice(TitleNoBooksIssued, MsgNoBooksIssued)
		}

		lines := make([]string, 0, result.Count)
		for _, book := range result.Books {
			lines = append(lines, issuedBookLine(book.BookID, book.IssueDate, book.ReturnDate, book.Fine))
		}

		return infoNotice(TitleBooksIssued, listMessage(headerBooksIssued, lines))
	})
}

// CheckDeadlines lists the books of the student whose return date has passed.
func (d *Desk) CheckDeadlines(ctx context.Context, enrollmentInput string) Notice {
	return d.run(ctx, actionDeadlines, enrollmentInput, func(ctx context.Context, enrollmentNo core.EnrollmentNoString) Notice {
		result, err := d.overdueBooks.Handle(ctx, overduebooks.BuildQuery(enrollmentNo, d.clock.Now()))
		if err != nil {
			return FailureNotice(err)
		}

		if result.LoanCount == 0 {
			return infoNotice(TitleNoBooksIssued, MsgNoBooksIssued)
		}

		if result.Count == 0 {
			return infoNotice(TitleNoDeadlinesPassed, MsgNoDeadlinesPassed)
		}

		lines := make([]string, 0, result.Count)
		for _, book := range result.Books {
			lines = append(lines, deadlineLine(book.BookID, book.ReturnDate))
		}

		return infoNotice(TitleDeadlinesPassed, listMessage(headerDeadlinesPassed, lines))
	})
}

// CheckFine shows the total fine of the student.
func (d *Desk) CheckFine(ctx context.Context, enrollmentInput string) Notice {
	return d.run(ctx, actionFine, enrollmentInput, func(ctx context.Context, enrollmentNo core.EnrollmentNoString) Notice {
		result, err := d.totalFine.Handle(ctx, totalfine.BuildQuery(enrollmentNo))
		if err != nil {
			return FailureNotice(err)
		}

		if !result.FineDue {
			return infoNotice(TitleNoFine, MsgNoFine)
		}

		return infoNotice(TitleFine, fmt.Sprintf(formatTotalFine, formatAmount(result.Total)))
	})
}

// IssueBook issues a book to the student. An empty bookID is taken from the barcode source.
func (d *Desk) IssueBook(ctx context.Context, enrollmentInput string, bookID core.BookIDString) Notice {
	return d.run(ctx, actionIssue, enrollmentInput, func(ctx context.Context, enrollmentNo core.EnrollmentNoString) Notice {
		bookID, err := d.bookID(ctx, bookID)
		if err != nil {
			return FailureNotice(err)
		}

		if _, err = d.issueBook.Handle(ctx, issuebook.BuildCommand(enrollmentNo, bookID, d.clock.Now())); err != nil {
			return FailureNotice(err)
		}

		return infoNotice(TitleSuccess, MsgBookIssued)
	})
}

// ReturnBook returns a book of the student, charging a fine when it is late.
// An empty bookID is taken from the barcode source.
func (d *Desk) ReturnBook(ctx context.Context, enrollmentInput string, bookID core.BookIDString) Notice {
	return d.run(ctx, actionReturn, enrollmentInput, func(ctx context.Context, enrollmentNo core.EnrollmentNoString) Notice {
		bookID, err := d.bookID(ctx, bookID)
		if err != nil {
			return FailureNotice(err)
		}

		result, err := d.returnBook.Handle(ctx, returnbook.BuildCommand(enrollmentNo, bookID, d.clock.Now()))
		if err != nil {
			return FailureNotice(err)
		}

		if result.FineCharged {
			return infoNotice(TitleSuccess, fmt.Sprintf(formatReturnedLate, formatAmount(result.Fine)))
		}

		return infoNotice(TitleSuccess, MsgBookReturned)
	})
}

// run applies the checks shared by all actions: backend first, then the enrollment input.
func (d *Desk) run(
	ctx context.Context,
	action string,
	enrollmentInput string,
	operation func(ctx context.Context, enrollmentNo core.EnrollmentNoString) Notice,
) Notice {

	var notice Notice

	enrollmentNo := strings.TrimSpace(enrollmentInput)

	switch {
	case !d.backend.Available():
		notice = FailureNotice(d.backend.Err())
	case enrollmentNo == "":
		notice = FailureNotice(shell.ErrMissingInput)
	default:
		actionCtx, cancel := context.WithTimeout(ctx, d.actionTimeout)
		notice = operation(actionCtx, enrollmentNo)
		cancel()
	}

	d.logNotice(ctx, action, notice)

	return notice
}

func (d *Desk) bookID(ctx context.Context, bookID core.BookIDString) (core.BookIDString, error) {
	if trimmed := strings.TrimSpace(bookID); trimmed != "" {
		return trimmed, nil
	}

	scanned, err := d.barcodes.ScanBarcode(ctx)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(scanned) == "" {
		return "", ErrNoBarcodeScanned
	}

	return strings.TrimSpace(scanned), nil
}

func (d *Desk) logNotice(ctx context.Context, action string, notice Notice) {
	args := []any{
		logAttrAction, action,
		logAttrLevel, string(notice.Level),
		logAttrTitle, notice.Title,
		logAttrOutcome, string(notice.Outcome),
	}

	switch {
	case d.contextualLogger != nil:
		d.contextualLogger.DebugContext(ctx, logMsgAction, args...)
	case d.logger != nil:
		d.logger.Debug(logMsgAction, args...)
	}
}
