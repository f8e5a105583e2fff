package httpadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/kirillkom/ai-interview-coach/internal/core/domain"
	"github.com/kirillkom/ai-interview-coach/internal/core/ports"
	"github.com/kirillkom/ai-interview-coach/internal/infrastructure/export"
	"github.com/kirillkom/ai-interview-coach/internal/observability/metrics"
)

const serviceName = "api"

type Router struct {
	interviews     ports.InterviewService
	metrics        *metrics.HTTPServerMetrics
	limiter        *rate.Limiter
	maxUploadBytes int64
}

func NewRouter(
	interviews ports.InterviewService,
	m *metrics.HTTPServerMetrics,
	rateLimitRPS, rateLimitBurst int,
	maxUploadBytes int64,
) *Router {
	var limiter *rate.Limiter
	if rateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(rateLimitRPS), rateLimitBurst)
	}
	return &Router{
		interviews:     interviews,
		metrics:        m,
		limiter:        limiter,
		maxUploadBytes: maxUploadBytes,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", rt.indexPage)
	mux.HandleFunc("/healthz", rt.healthz)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}
	mux.HandleFunc("/v1/interviews", rt.startInterview)
	mux.HandleFunc("/v1/interviews/", rt.interviewByID)

	var handler http.Handler = mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	handler = rateLimitMiddleware(handler, rt.limiter)
	handler = accessLogMiddleware(handler)
	return requestIDMiddleware(handler)
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) startInterview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	if rt.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, rt.maxUploadBytes)
	}
	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "read uploaded file: " + err.Error()})
		return
	}

	start := time.Now()
	session, err := rt.interviews.Start(r.Context(), fileHeader.Filename, data)
	if err != nil {
		rt.recordStart(startOutcome(err), 0, 0, time.Since(start))
		writeError(w, err)
		return
	}
	rt.recordStart("started", len(session.Skills), len(session.Questions), time.Since(start))

	writeJSON(w, http.StatusCreated, newSessionView(session))
}

func (rt *Router) interviewByID(w http.ResponseWriter, r *http.Request) {
	id, action := splitInterviewPath(r.URL.Path)
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "session id is required"})
		return
	}

	switch {
	case action == "" && r.Method == http.MethodGet:
		rt.getInterview(w, r, id)
	case action == "answers" && r.Method == http.MethodPost:
		rt.submitAnswer(w, r, id)
	case action == "restart" && r.Method == http.MethodPost:
		rt.restartInterview(w, r, id)
	case action == "report" && r.Method == http.MethodGet:
		rt.downloadReport(w, r, id)
	case action == "" || action == "answers" || action == "restart" || action == "report":
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown resource"})
	}
}

func (rt *Router) getInterview(w http.ResponseWriter, r *http.Request, id string) {
	session, err := rt.interviews.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionView(session))
}

func (rt *Router) submitAnswer(w http.ResponseWriter, r *http.Request, id string) {
	var req struct {
		Question int    `json:"question"`
		Answer   string `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	result, err := rt.interviews.SubmitAnswer(r.Context(), id, req.Question, req.Answer)
	if err != nil {
		writeError(w, err)
		return
	}
	if rt.metrics != nil {
		if result.Skipped {
			rt.metrics.RecordAnswerSkipped()
		} else {
			rt.metrics.RecordAnswerScored(result.Score)
		}
	}

	writeJSON(w, http.StatusOK, newScoreView(result))
}

func (rt *Router) restartInterview(w http.ResponseWriter, r *http.Request, id string) {
	session, err := rt.interviews.Restart(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionView(session))
}

func (rt *Router) downloadReport(w http.ResponseWriter, r *http.Request, id string) {
	session, err := rt.interviews.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	workbook, err := export.TranscriptWorkbook(session)
	if err != nil {
		writeError(w, err)
		return
	}
	defer workbook.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "interview-"+id+".xlsx"))
	if err := workbook.Write(w); err != nil {
		// Headers are already sent; nothing to repair here.
		return
	}
}

func (rt *Router) recordStart(outcome string, skills, pairs int, duration time.Duration) {
	if rt.metrics == nil {
		return
	}
	rt.metrics.RecordInterviewStart(serviceName, outcome, skills, pairs, duration)
}

func startOutcome(err error) string {
	if domain.IsKind(err, domain.ErrNoSkillsFound) {
		return "no_skills"
	}
	return "error"
}

// splitInterviewPath splits "/v1/interviews/{id}[/{action}]".
func splitInterviewPath(path string) (id, action string) {
	rest := strings.TrimPrefix(path, "/v1/interviews/")
	id, action, found := strings.Cut(rest, "/")
	if !found {
		return id, ""
	}
	return id, action
}

type answerView struct {
	Question int      `json:"question"`
	Text     string   `json:"text"`
	Scored   bool     `json:"scored"`
	Score    *float64 `json:"score,omitempty"`
	Feedback string   `json:"feedback,omitempty"`
	Message  string   `json:"message,omitempty"`
}

type sessionView struct {
	ID        string       `json:"id"`
	State     string       `json:"state"`
	Filename  string       `json:"filename,omitempty"`
	Skills    []string     `json:"skills,omitempty"`
	Questions []string     `json:"questions,omitempty"`
	Answers   []answerView `json:"answers,omitempty"`
	Aggregate *float64     `json:"aggregate_score,omitempty"`
}

// newSessionView projects a session for clients. Ideal answers are never
// included; they only appear in the report export.
func newSessionView(session *domain.Session) sessionView {
	view := sessionView{
		ID:        session.ID,
		State:     string(session.State),
		Filename:  session.Filename,
		Skills:    session.Skills,
		Questions: session.Questions,
	}
	for idx := 1; idx <= len(session.Questions); idx++ {
		answer, ok := session.Answers[idx]
		if !ok {
			continue
		}
		av := answerView{Question: idx, Text: answer.Text, Scored: answer.Scored}
		if answer.Scored {
			score := answer.Score
			av.Score = &score
			av.Feedback = string(answer.Feedback)
			av.Message = answer.Feedback.Message()
		}
		view.Answers = append(view.Answers, av)
	}
	if aggregate, ok := session.AggregateScore(); ok {
		view.Aggregate = &aggregate
	}
	return view
}

type scoreView struct {
	Question  int      `json:"question"`
	Skipped   bool     `json:"skipped"`
	Score     *float64 `json:"score,omitempty"`
	Feedback  string   `json:"feedback,omitempty"`
	Message   string   `json:"message,omitempty"`
	Aggregate *float64 `json:"aggregate_score,omitempty"`
}

func newScoreView(result domain.ScoreResult) scoreView {
	view := scoreView{
		Question: result.QuestionIndex,
		Skipped:  result.Skipped,
	}
	if !result.Skipped {
		score := result.Score
		view.Score = &score
		view.Feedback = string(result.Feedback)
		view.Message = result.Feedback.Message()
	}
	if result.HasAggregate {
		aggregate := result.Aggregate
		view.Aggregate = &aggregate
	}
	return view
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": errorMessage(err)})
}

func errorMessage(err error) string {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return "uploaded file is too large"
	}
	return err.Error()
}
