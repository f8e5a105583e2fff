package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	interviewsStartedTotal *prometheus.CounterVec
	skillsMatched          prometheus.Histogram
	questionPairsParsed    prometheus.Histogram
	answersScoredTotal     prometheus.Counter
	answersSkippedTotal    prometheus.Counter
	answerScores           prometheus.Histogram
	startDuration          prometheus.Histogram
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aic",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "aic",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace:   "aic",
			Subsystem:   "http",
			Name:        "in_flight_requests",
			Help:        "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{"service": service},
		},
	)
	interviewsStartedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aic",
			Subsystem: "interview",
			Name:      "starts_total",
			Help:      "Total interview start attempts by outcome.",
		},
		[]string{"service", "outcome"},
	)
	skillsMatched := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace:   "aic",
			Subsystem:   "interview",
			Name:        "skills_matched",
			Help:        "Distribution of skills matched per resume.",
			Buckets:     []float64{0, 1, 2, 3, 5, 8, 13, 17},
			ConstLabels: prometheus.Labels{"service": service},
		},
	)
	questionPairsParsed := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace:   "aic",
			Subsystem:   "interview",
			Name:        "question_pairs_parsed",
			Help:        "Distribution of well-formed question pairs parsed per generation.",
			Buckets:     []float64{0, 1, 2, 3, 5, 8, 13, 17},
			ConstLabels: prometheus.Labels{"service": service},
		},
	)
	answersScoredTotal := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace:   "aic",
			Subsystem:   "interview",
			Name:        "answers_scored_total",
			Help:        "Total answers scored against an ideal answer.",
			ConstLabels: prometheus.Labels{"service": service},
		},
	)
	answersSkippedTotal := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace:   "aic",
			Subsystem:   "interview",
			Name:        "answers_skipped_total",
			Help:        "Total submitted answers too short to score.",
			ConstLabels: prometheus.Labels{"service": service},
		},
	)
	answerScores := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace:   "aic",
			Subsystem:   "interview",
			Name:        "answer_scores",
			Help:        "Distribution of per-answer similarity scores.",
			Buckets:     []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.65, 0.75, 0.85, 0.95, 1},
			ConstLabels: prometheus.Labels{"service": service},
		},
	)
	startDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace:   "aic",
			Subsystem:   "interview",
			Name:        "start_duration_seconds",
			Help:        "Duration of extract + match + generate per interview start.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: prometheus.Labels{"service": service},
		},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		interviewsStartedTotal,
		skillsMatched,
		questionPairsParsed,
		answersScoredTotal,
		answersSkippedTotal,
		answerScores,
		startDuration,
	)

	return &HTTPServerMetrics{
		registry:               registry,
		requestTotal:           requestTotal,
		requestDuration:        requestDuration,
		requestInFlight:        requestInFlight,
		interviewsStartedTotal: interviewsStartedTotal,
		skillsMatched:          skillsMatched,
		questionPairsParsed:    questionPairsParsed,
		answersScoredTotal:     answersScoredTotal,
		answersSkippedTotal:    answersSkippedTotal,
		answerScores:           answerScores,
		startDuration:          startDuration,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func normalizePath(path string) string {
	if rest, ok := strings.CutPrefix(path, "/v1/interviews/"); ok {
		if idx := strings.IndexByte(rest, '/'); idx >= 0 {
			return "/v1/interviews/{session_id}" + rest[idx:]
		}
		return "/v1/interviews/{session_id}"
	}
	return path
}

func (m *HTTPServerMetrics) RecordInterviewStart(service, outcome string, skills, pairs int, duration time.Duration) {
	if outcome == "" {
		outcome = "unknown"
	}
	m.interviewsStartedTotal.WithLabelValues(service, outcome).Inc()
	m.startDuration.Observe(duration.Seconds())
	if outcome == "started" {
		m.skillsMatched.Observe(float64(skills))
		m.questionPairsParsed.Observe(float64(pairs))
	}
}

func (m *HTTPServerMetrics) RecordAnswerScored(score float64) {
	m.answersScoredTotal.Inc()
	m.answerScores.Observe(score)
}

func (m *HTTPServerMetrics) RecordAnswerSkipped() {
	m.answersSkippedTotal.Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}
