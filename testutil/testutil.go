// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/danielhkuo/quickly-tally/cliparse"
	"github.com/danielhkuo/quickly-tally/controller"
	"github.com/danielhkuo/quickly-tally/models"
	"github.com/danielhkuo/quickly-tally/storage"
)

// TestCandidates is the candidate list used across tests
var TestCandidates = []models.Candidate{"NixOS", "Windows"}

// BrokenStore fails every read and write with Err (storage.ErrIO by default)
type BrokenStore struct {
	Err error
}

func (s BrokenStore) err() error {
	if s.Err == nil {
		return storage.ErrIO
	}
	return s.Err
}

func (s BrokenStore) Read(context.Context) (*models.VotingMachine, error) {
	return nil, s.err()
}

func (s BrokenStore) Write(context.Context, *models.VotingMachine) error {
	return s.err()
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:       3318,
		Host:       "127.0.0.1",
		Candidates: []string{"NixOS", "Windows"},
		Storage:    storage.BackendMemory,
		Service:    cliparse.ServiceWeb,
		Language:   "en",
		FilePath:   storage.DefaultFilePath,
	}
}

// NewTestController returns a controller over a fresh in-memory machine.
// With no candidates given, TestCandidates is used.
func NewTestController(t *testing.T, candidates ...models.Candidate) *controller.VotingController {
	t.Helper()
	if len(candidates) == 0 {
		candidates = TestCandidates
	}
	machine := models.NewVotingMachine(candidates)
	return controller.NewVotingController(storage.NewMemoryStore(machine), nil)
}

// SubmitTestBallot submits a ballot and fails the test on error
func SubmitTestBallot(t *testing.T, ctrl *controller.VotingController, voter, candidate string) models.VoteOutcome {
	t.Helper()
	outcome, err := ctrl.Submit(context.Background(), models.NewBallotPaper(voter, candidate))
	if err != nil {
		t.Fatalf("Failed to submit test ballot: %v", err)
	}
	return outcome
}

// Snapshot returns the controller's machine and fails the test on error
func Snapshot(t *testing.T, ctrl *controller.VotingController) *models.VotingMachine {
	t.Helper()
	machine, err := ctrl.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Failed to snapshot: %v", err)
	}
	return machine
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeFormRequest creates a url-encoded form POST request
func MakeFormRequest(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
