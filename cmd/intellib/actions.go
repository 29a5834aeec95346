package main

import (
	"context"
	"fmt"
	"io"

	"github.com/AntonStoeckl/intellib/lending/core"
	"github.com/AntonStoeckl/intellib/lending/desk"
)

type lendingDesk interface {
	CheckIssuedBooks(ctx context.Context, enrollmentInput string) desk.Notice
	CheckDeadlines(ctx context.Context, enrollmentInput string) desk.Notice
	CheckFine(ctx context.Context, enrollmentInput string) desk.Notice
	IssueBook(ctx context.Context, enrollmentInput string, bookID core.BookIDString) desk.Notice
	ReturnBook(ctx context.Context, enrollmentInput string, bookID core.BookIDString) desk.Notice
}

// dispatch runs one named action; the name must be one of knownActions.
func dispatch(ctx context.Context, d lendingDesk, action string, enrollmentNo string, bookID string) (desk.Notice, error) {
	switch action {
	case actionIssued:
		return d.CheckIssuedBooks(ctx, enrollmentNo), nil
	case actionDeadlines:
		return d.CheckDeadlines(ctx, enrollmentNo), nil
	case actionFine:
		return d.CheckFine(ctx, enrollmentNo), nil
	case actionIssue:
		return d.IssueBook(ctx, enrollmentNo, bookID), nil
	case actionReturn:
		return d.ReturnBook(ctx, enrollmentNo, bookID), nil
	default:
		return desk.Notice{}, fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}
}

func printNotice(out io.Writer, notice desk.Notice) {
	_, _ = fmt.Fprintf(out, "[%s] %s\n", notice.Title, notice.Message)
}

// runOneShot answers one action and returns the process exit code.
func runOneShot(ctx context.Context, d lendingDesk, flags cliFlags, out io.Writer) int {
	notice, err := dispatch(ctx, d, flags.Action, flags.EnrollmentNo, flags.BookID)
	if err != nil {
		_, _ = fmt.Fprintln(out, err)
		return exitUsage
	}

	printNotice(out, notice)

	if notice.IsError() {
		return exitNotice
	}

	return exitOK
}
