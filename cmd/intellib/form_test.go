package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/intellib/lending/desk"
	"github.com/AntonStoeckl/intellib/lending/shell"
	"github.com/AntonStoeckl/intellib/testutil/testdoubles"
)

func newTestDesk(t *testing.T) *desk.Desk {
	t.Helper()

	store := testdoubles.NewRecordStoreFake()
	store.Seed(shell.CollectionStudentRecord, `{"enrollment_no":"E001","first_name":"Ada","last_name":"Lovelace","semester":3}`)
	clock := testdoubles.NewFixedClock(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC))

	d, err := desk.New(shell.NewConnectedBackend(store), desk.WithClock(clock))
	require.NoError(t, err)

	return d
}

func Test_runForm_IssueListAndQuit(t *testing.T) {
	// arrange
	in := strings.NewReader("E001\nissue\nB1\nissued\nfine\nquit\nfine\n")
	out := &bytes.Buffer{}

	// act
	err := runForm(context.Background(), newTestDesk(t), in, out)

	// assert
	require.NoError(t, err)
	assert.Contains(t, out.String(), "[Success] Book issued successfully.\n")
	assert.Contains(t, out.String(), "[Books Issued] Books issued on your name:\nB1 - Issue Date: 2025-01-01, Return Date: 2025-01-08, Fine: 0.00\n")
	assert.Equal(t, 1, strings.Count(out.String(), "[No Fine] No fine to pay."))
}

func Test_runForm_EmptyActionAsksForANewEnrollment(t *testing.T) {
	// arrange
	in := strings.NewReader("E404\nissued\n\nE001\nfine\n")
	out := &bytes.Buffer{}

	// act
	err := runForm(context.Background(), newTestDesk(t), in, out)

	// assert
	require.NoError(t, err)
	assert.Contains(t, out.String(), "[No Books Issued] No books issued on your name.")
	assert.Contains(t, out.String(), "[No Fine] No fine to pay.")
	assert.Equal(t, 2, strings.Count(out.String(), promptEnrollment))
}

func Test_runForm_UnknownActionKeepsTheFormOpen(t *testing.T) {
	// arrange
	in := strings.NewReader("E001\nrenew\nfine\n")
	out := &bytes.Buffer{}

	// act
	err := runForm(context.Background(), newTestDesk(t), in, out)

	// assert
	require.NoError(t, err)
	assert.Contains(t, out.String(), "unknown action: renew")
	assert.Contains(t, out.String(), "[No Fine] No fine to pay.")
}

func Test_runForm_BlankEnrollment(t *testing.T) {
	// arrange
	in := strings.NewReader("\ndeadlines\n")
	out := &bytes.Buffer{}

	// act
	err := runForm(context.Background(), newTestDesk(t), in, out)

	// assert
	require.NoError(t, err)
	assert.Contains(t, out.String(), "[Error] "+desk.MsgMissingInput)
}

func Test_runOneShot_ExitCodes(t *testing.T) {
	testCases := []struct {
		name   string
		flags  cliFlags
		exit   int
		output string
	}{
		{"info notice", cliFlags{Action: actionFine, EnrollmentNo: "E001"}, exitOK, "[No Fine] No fine to pay.\n"},
		{"error notice", cliFlags{Action: actionIssue, EnrollmentNo: "E404", BookID: "B1"}, exitNotice, "[Error] Student record not found.\n"},
		{"unknown action", cliFlags{Action: "renew", EnrollmentNo: "E001"}, exitUsage, "unknown action: renew\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			out := &bytes.Buffer{}

			// act
			exit := runOneShot(context.Background(), newTestDesk(t), tc.flags, out)

			// assert
			assert.Equal(t, tc.exit, exit)
			assert.Equal(t, tc.output, out.String())
		})
	}
}

func Test_run_WithoutDatabase_AnswersUnavailable(t *testing.T) {
	// arrange
	t.Setenv("INTELLIB_DATABASE_URL", "")
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	// act
	exit := run([]string{"-action", "issued", "-enrollment", "E001"}, strings.NewReader(""), stdout, stderr)

	// assert
	assert.Equal(t, exitNotice, exit)
	assert.Equal(t, "[Error] Database connection not available.\n", stdout.String())
	assert.Contains(t, stderr.String(), "starting without record store")
}

func Test_run_MigrateWithoutDatabase_Fails(t *testing.T) {
	// arrange
	t.Setenv("INTELLIB_DATABASE_URL", "")
	stderr := &bytes.Buffer{}

	// act
	exit := run([]string{"-migrate"}, strings.NewReader(""), &bytes.Buffer{}, stderr)

	// assert
	assert.Equal(t, exitFatal, exit)
	assert.Contains(t, stderr.String(), logMsgMigrateNoBackend)
}

func Test_run_InvalidFlags(t *testing.T) {
	// act
	exit := run([]string{"-action", "renew"}, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})

	// assert
	assert.Equal(t, exitUsage, exit)
}
