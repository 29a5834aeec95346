package deskhttp_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/intellib/lending/desk"
	"github.com/AntonStoeckl/intellib/lending/desk/deskhttp"
	"github.com/AntonStoeckl/intellib/lending/shell"
	"github.com/AntonStoeckl/intellib/testutil/testdoubles"
)

func newServer(t *testing.T, backend shell.Backend, logOutput io.Writer) http.Handler {
	t.Helper()

	clock := testdoubles.NewFixedClock(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC))
	d, err := desk.New(backend, desk.WithClock(clock))
	require.NoError(t, err)

	return deskhttp.NewServer(d, slog.New(slog.NewJSONHandler(logOutput, nil)))
}

func post(t *testing.T, server http.Handler, path string, body string) (*httptest.ResponseRecorder, deskhttp.NoticeResponse) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	server.ServeHTTP(rec, req)

	var response deskhttp.NoticeResponse
	_ = jsoniter.Unmarshal(rec.Body.Bytes(), &response)

	return rec, response
}

func seededStore() *testdoubles.RecordStoreFake {
	store := testdoubles.NewRecordStoreFake()
	store.Seed(shell.CollectionStudentRecord, `{"enrollment_no":"E001","first_name":"Ada","last_name":"Lovelace","semester":3}`)

	return store
}

func Test_Server_IssueThenList(t *testing.T) {
	// arrange
	server := newServer(t, shell.NewConnectedBackend(seededStore()), io.Discard)

	// act
	issueRec, issued := post(t, server, "/desk/issue", `{"enrollment_no":"E001","book_id":"B1"}`)
	listRec, listed := post(t, server, "/desk/issued", `{"enrollment_no":"E001"}`)

	// assert
	assert.Equal(t, http.StatusOK, issueRec.Code)
	assert.Equal(t, deskhttp.NoticeResponse{Level: "info", Title: desk.TitleSuccess, Message: desk.MsgBookIssued, Outcome: "success"}, issued)

	assert.Equal(t, http.StatusOK, listRec.Code)
	assert.Equal(t, desk.TitleBooksIssued, listed.Title)
	assert.Equal(t, "Books issued on your name:\nB1 - Issue Date: 2025-01-01, Return Date: 2025-01-08, Fine: 0.00", listed.Message)
}

func Test_Server_StatusCodes(t *testing.T) {
	testCases := []struct {
		name    string
		backend shell.Backend
		path    string
		body    string
		status  int
		message string
	}{
		{"no fine", shell.NewConnectedBackend(seededStore()), "/desk/fine", `{"enrollment_no":"E001"}`, http.StatusOK, desk.MsgNoFine},
		{"no deadlines", shell.NewConnectedBackend(seededStore()), "/desk/deadlines", `{"enrollment_no":"E001"}`, http.StatusOK, desk.MsgNoBooksIssued},
		{"blank enrollment", shell.NewConnectedBackend(seededStore()), "/desk/fine", `{"enrollment_no":"  "}`, http.StatusUnprocessableEntity, desk.MsgMissingInput},
		{"missing enrollment", shell.NewConnectedBackend(seededStore()), "/desk/issued", `{}`, http.StatusUnprocessableEntity, desk.MsgMissingInput},
		{"unknown student", shell.NewConnectedBackend(seededStore()), "/desk/issue", `{"enrollment_no":"E404","book_id":"B1"}`, http.StatusUnprocessableEntity, desk.MsgStudentNotFound},
		{"loan missing", shell.NewConnectedBackend(seededStore()), "/desk/return", `{"enrollment_no":"E001","book_id":"B1"}`, http.StatusUnprocessableEntity, desk.MsgLoanNotFound},
		{"no backend", shell.NewUnavailableBackend(errors.New("no url")), "/desk/issued", `{"enrollment_no":"E001"}`, http.StatusServiceUnavailable, desk.MsgBackendUnavailable},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			server := newServer(t, tc.backend, io.Discard)

			// act
			rec, response := post(t, server, tc.path, tc.body)

			// assert
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.message, response.Message)
		})
	}
}

func Test_Server_RejectsMalformedRequests(t *testing.T) {
	// arrange
	server := newServer(t, shell.NewConnectedBackend(seededStore()), io.Discard)

	// act
	invalidJSON, _ := post(t, server, "/desk/issue", `{"enrollment_no":`)
	tooLong, _ := post(t, server, "/desk/issue", `{"enrollment_no":"`+strings.Repeat("9", 65)+`"}`)

	// assert
	assert.Equal(t, http.StatusBadRequest, invalidJSON.Code)
	assert.Contains(t, invalidJSON.Body.String(), "invalid JSON")
	assert.Equal(t, http.StatusBadRequest, tooLong.Code)
	assert.Contains(t, tooLong.Body.String(), "validation error")
}

func Test_Server_Health(t *testing.T) {
	testCases := []struct {
		name    string
		backend shell.Backend
		status  string
	}{
		{"connected", shell.NewConnectedBackend(seededStore()), "ok"},
		{"degraded", shell.NewUnavailableBackend(nil), "degraded"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			server := newServer(t, tc.backend, io.Discard)
			rec := httptest.NewRecorder()

			// act
			server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			// assert
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), `"status":"`+tc.status+`"`)
		})
	}
}

func Test_Server_LogsEveryRequest(t *testing.T) {
	// arrange
	logBuffer := &bytes.Buffer{}
	server := newServer(t, shell.NewConnectedBackend(seededStore()), logBuffer)

	// act
	rec, _ := post(t, server, "/desk/fine", `{"enrollment_no":"E001"}`)

	// assert
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	assert.Contains(t, logBuffer.String(), `"msg":"http request"`)
	assert.Contains(t, logBuffer.String(), `"path":"/desk/fine"`)
	assert.Contains(t, logBuffer.String(), `"status":200`)
}

func Test_Serve_StopsWhenContextIsDone(t *testing.T) {
	// arrange
	clock := testdoubles.NewFixedClock(time.Now())
	d, err := desk.New(shell.NewUnavailableBackend(nil), desk.WithClock(clock))
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := deskhttp.NewServer(d, logger)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- deskhttp.Serve(ctx, e, "127.0.0.1:0", logger) }()

	// act
	time.Sleep(50 * time.Millisecond)
	cancel()

	// assert
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func Test_StatusFor(t *testing.T) {
	assert.Equal(t, http.StatusOK, deskhttp.StatusFor(desk.Notice{Level: desk.LevelInfo}))
	assert.Equal(t, http.StatusUnprocessableEntity, deskhttp.StatusFor(desk.Notice{Level: desk.LevelError, Outcome: shell.OutcomeFailed}))
	assert.Equal(t, http.StatusServiceUnavailable, deskhttp.StatusFor(desk.Notice{Level: desk.LevelError, Outcome: shell.OutcomeBackendUnavailable}))
}
