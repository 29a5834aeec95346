package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

const (
	promptEnrollment = "Enrollment No: "
	promptAction     = "Action [issued, deadlines, fine, issue, return, quit]: "
	promptBook       = "Book ID (empty to scan): "
	commandQuit      = "quit"
	formTitle        = "IntelliLib lending desk"
)

// runForm is the terminal form: it keeps the entered enrollment number between actions
// like the input field of a desk window. An empty line at the action prompt asks for a new
// enrollment number. It returns on quit or end of input.
func runForm(ctx context.Context, d lendingDesk, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	readLine := func(prompt string) (string, bool) {
		_, _ = fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			return "", false
		}

		return strings.TrimSpace(scanner.Text()), true
	}

	_, _ = fmt.Fprintln(out, formTitle)

	enrollmentNo, ok := readLine(promptEnrollment)
	if !ok {
		return scanner.Err()
	}

	for {
		if ctx.Err() != nil {
			return nil
		}

		action, ok := readLine(promptAction)
		if !ok {
			return scanner.Err()
		}

		switch action {
		case commandQuit:
			return nil
		case "":
			if enrollmentNo, ok = readLine(promptEnrollment); !ok {
				return scanner.Err()
			}

			continue
		}

		bookID := ""
		if action == actionIssue || action == actionReturn {
			if bookID, ok = readLine(promptBook); !ok {
				return scanner.Err()
			}
		}

		notice, err := dispatch(ctx, d, action, enrollmentNo, bookID)
		if err != nil {
			_, _ = fmt.Fprintln(out, err)
			continue
		}

		printNotice(out, notice)
	}
}
