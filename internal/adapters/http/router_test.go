package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kirillkom/ai-interview-coach/internal/core/domain"
)

type interviewServiceFake struct {
	session      *domain.Session
	startErr     error
	submitResult domain.ScoreResult
	submitErr    error
	gotFilename  string
	gotAnswer    string
	gotQuestion  int
	restarted    bool
}

func (f *interviewServiceFake) Start(_ context.Context, filename string, _ []byte) (*domain.Session, error) {
	f.gotFilename = filename
	if f.startErr != nil {
		return nil, f.startErr
	}
	return f.session, nil
}

func (f *interviewServiceFake) Get(_ context.Context, id string) (*domain.Session, error) {
	if f.session == nil || f.session.ID != id {
		return nil, domain.ErrSessionNotFound
	}
	return f.session, nil
}

func (f *interviewServiceFake) SubmitAnswer(_ context.Context, id string, questionIndex int, answer string) (domain.ScoreResult, error) {
	if f.session == nil || f.session.ID != id {
		return domain.ScoreResult{}, domain.ErrSessionNotFound
	}
	f.gotQuestion = questionIndex
	f.gotAnswer = answer
	if f.submitErr != nil {
		return domain.ScoreResult{}, f.submitErr
	}
	return f.submitResult, nil
}

func (f *interviewServiceFake) Restart(_ context.Context, id string) (*domain.Session, error) {
	if f.session == nil || f.session.ID != id {
		return nil, domain.ErrSessionNotFound
	}
	f.restarted = true
	f.session.Reset(time.Now().UTC())
	return f.session, nil
}

func newTestHandler(fake *interviewServiceFake) http.Handler {
	return NewRouter(fake, nil, 0, 0, 0).Handler()
}

func inProgressSession() *domain.Session {
	now := time.Now().UTC()
	s := domain.NewSession("sess-1", now)
	s.Begin("cv.pdf", []string{"Python"}, []string{"Tell me about Python."}, []string{"ideal"}, now)
	return s
}

func multipartBody(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestStartInterviewReturnsSessionView(t *testing.T) {
	fake := &interviewServiceFake{session: inProgressSession()}
	handler := newTestHandler(fake)

	body, contentType := multipartBody(t, "cv.pdf", []byte("%PDF-"))
	req := httptest.NewRequest(http.MethodPost, "/v1/interviews", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", res.Code, res.Body.String())
	}
	if fake.gotFilename != "cv.pdf" {
		t.Fatalf("service received filename %q", fake.gotFilename)
	}

	var view struct {
		ID        string   `json:"id"`
		State     string   `json:"state"`
		Skills    []string `json:"skills"`
		Questions []string `json:"questions"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if view.ID != "sess-1" || view.State != string(domain.StateInProgress) {
		t.Fatalf("unexpected view: %+v", view)
	}
	if len(view.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(view.Questions))
	}
	if strings.Contains(res.Body.String(), "ideal") {
		t.Fatalf("ideal answers must not be exposed: %s", res.Body.String())
	}
}

func TestStartInterviewWithoutFile(t *testing.T) {
	handler := newTestHandler(&interviewServiceFake{})

	req := httptest.NewRequest(http.MethodPost, "/v1/interviews", strings.NewReader("no file"))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestStartInterviewNoSkillsMapsTo422(t *testing.T) {
	fake := &interviewServiceFake{startErr: domain.ErrNoSkillsFound}
	handler := newTestHandler(fake)

	body, contentType := multipartBody(t, "cv.pdf", []byte("%PDF-"))
	req := httptest.NewRequest(http.MethodPost, "/v1/interviews", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", res.Code)
	}
}

func TestGetUnknownInterviewReturns404(t *testing.T) {
	handler := newTestHandler(&interviewServiceFake{})

	req := httptest.NewRequest(http.MethodGet, "/v1/interviews/missing", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestSubmitAnswerReturnsScoreAndAggregate(t *testing.T) {
	fake := &interviewServiceFake{
		session: inProgressSession(),
		submitResult: domain.ScoreResult{
			QuestionIndex: 1,
			Score:         0.91,
			Feedback:      domain.FeedbackGreat,
			Aggregate:     0.91,
			HasAggregate:  true,
		},
	}
	handler := newTestHandler(fake)

	req := httptest.NewRequest(
		http.MethodPost,
		"/v1/interviews/sess-1/answers",
		strings.NewReader(`{"question":1,"answer":"a long enough answer"}`),
	)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}
	if fake.gotQuestion != 1 || fake.gotAnswer != "a long enough answer" {
		t.Fatalf("service received %d/%q", fake.gotQuestion, fake.gotAnswer)
	}

	var view struct {
		Skipped   bool     `json:"skipped"`
		Score     *float64 `json:"score"`
		Feedback  string   `json:"feedback"`
		Aggregate *float64 `json:"aggregate_score"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if view.Skipped || view.Score == nil || *view.Score != 0.91 {
		t.Fatalf("unexpected score view: %+v", view)
	}
	if view.Feedback != string(domain.FeedbackGreat) {
		t.Fatalf("unexpected feedback: %q", view.Feedback)
	}
	if view.Aggregate == nil || *view.Aggregate != 0.91 {
		t.Fatalf("unexpected aggregate: %+v", view.Aggregate)
	}
}

func TestSubmitSkippedAnswerHasNoScore(t *testing.T) {
	fake := &interviewServiceFake{
		session:      inProgressSession(),
		submitResult: domain.ScoreResult{QuestionIndex: 1, Skipped: true},
	}
	handler := newTestHandler(fake)

	req := httptest.NewRequest(
		http.MethodPost,
		"/v1/interviews/sess-1/answers",
		strings.NewReader(`{"question":1,"answer":"ok"}`),
	)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if strings.Contains(res.Body.String(), `"score"`) {
		t.Fatalf("skipped answer must not carry a score: %s", res.Body.String())
	}
}

func TestSubmitAnswerInvalidJSON(t *testing.T) {
	handler := newTestHandler(&interviewServiceFake{session: inProgressSession()})

	req := httptest.NewRequest(http.MethodPost, "/v1/interviews/sess-1/answers", strings.NewReader("{"))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestRestartInterview(t *testing.T) {
	fake := &interviewServiceFake{session: inProgressSession()}
	handler := newTestHandler(fake)

	req := httptest.NewRequest(http.MethodPost, "/v1/interviews/sess-1/restart", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if !fake.restarted {
		t.Fatalf("restart did not reach the service")
	}

	var view struct {
		State     string   `json:"state"`
		Skills    []string `json:"skills"`
		Questions []string `json:"questions"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if view.State != string(domain.StateNotStarted) || len(view.Skills) != 0 || len(view.Questions) != 0 {
		t.Fatalf("expected cleared session view, got %+v", view)
	}
}

func TestReportDownloadSetsSpreadsheetHeaders(t *testing.T) {
	handler := newTestHandler(&interviewServiceFake{session: inProgressSession()})

	req := httptest.NewRequest(http.MethodGet, "/v1/interviews/sess-1/report", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if got := res.Header().Get("Content-Type"); !strings.Contains(got, "spreadsheetml") {
		t.Fatalf("unexpected content type %q", got)
	}
	if res.Body.Len() == 0 {
		t.Fatalf("expected workbook bytes")
	}
}

func TestMethodGuards(t *testing.T) {
	handler := newTestHandler(&interviewServiceFake{session: inProgressSession()})

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/v1/interviews"},
		{http.MethodPost, "/v1/interviews/sess-1"},
		{http.MethodGet, "/v1/interviews/sess-1/answers"},
		{http.MethodGet, "/v1/interviews/sess-1/restart"},
		{http.MethodPost, "/v1/interviews/sess-1/report"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req)
		if res.Code != http.StatusMethodNotAllowed {
			t.Fatalf("%s %s: expected 405, got %d", tc.method, tc.path, res.Code)
		}
	}
}

func TestRateLimitReturns429(t *testing.T) {
	fake := &interviewServiceFake{session: inProgressSession()}
	handler := NewRouter(fake, nil, 1, 1, 0).Handler()

	req1 := httptest.NewRequest(http.MethodGet, "/v1/interviews/sess-1", nil)
	res1 := httptest.NewRecorder()
	handler.ServeHTTP(res1, req1)
	if res1.Code != http.StatusOK {
		t.Fatalf("first request expected 200, got %d", res1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/v1/interviews/sess-1", nil)
	res2 := httptest.NewRecorder()
	handler.ServeHTTP(res2, req2)
	if res2.Code != http.StatusTooManyRequests {
		t.Fatalf("second request expected 429, got %d", res2.Code)
	}
	if res2.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header for 429 response")
	}
}

func TestRequestIDHeaderIsSet(t *testing.T) {
	handler := newTestHandler(&interviewServiceFake{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Header().Get(requestIDHeader) == "" {
		t.Fatalf("expected generated request id header")
	}
}
