package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	catalogdomain "github.com/ironvale/stockledger/internal/catalog/domain"
	"github.com/ironvale/stockledger/internal/decision"
	"github.com/ironvale/stockledger/internal/ledger/projector"
	"github.com/ironvale/stockledger/internal/report/domain"
	"github.com/ironvale/stockledger/internal/report/usecase/query"
	"github.com/ironvale/stockledger/pkg/logger"
)

// ReportHandler handles HTTP requests for stock reports
type ReportHandler struct {
	reportHandler *query.GetReportHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewReportHandler creates a new report handler
func NewReportHandler(
	catalog catalogdomain.ProductRepository,
	proj *projector.Projector,
	policy decision.Policy,
) *ReportHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_report_requests_total",
			Help: "Total number of stock report requests",
		},
		[]string{"kind", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stock_report_duration_seconds",
			Help:    "Duration of stock report generation in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &ReportHandler{
		reportHandler:  query.NewGetReportHandler(catalog, proj, policy),
		requestCounter: requestCounter,
		requestLatency: requestLatency,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// GetReport handles GET /api/reports/{kind}
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	kind := mux.Vars(r)["kind"]
	start := time.Now()

	filters := domain.Filters{
		Text:     r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
	}
	if tier := r.URL.Query().Get("tier"); tier != "" {
		parsed := decision.Tier(tier)
		if !parsed.Valid() {
			h.requestCounter.WithLabelValues(kind, strconv.Itoa(http.StatusBadRequest)).Inc()
			respondJSON(w, http.StatusBadRequest, Response{
				Success: false,
				Error:   "Unknown urgency tier: " + tier,
			})
			return
		}
		filters.Tier = parsed
	}

	result, err := h.reportHandler.Handle(query.GetReportQuery{
		Kind:    domain.ReportKind(kind),
		Filters: filters,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrUnknownReportKind) {
			status = http.StatusNotFound
		} else {
			logger.Logger.Error().Err(err).Str("kind", kind).Msg("Report generation failed")
		}
		h.requestCounter.WithLabelValues(kind, strconv.Itoa(status)).Inc()
		respondJSON(w, status, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	h.requestLatency.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	h.requestCounter.WithLabelValues(kind, strconv.Itoa(http.StatusOK)).Inc()

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

// RegisterRoutes registers all report routes
func (h *ReportHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/reports/{kind}", h.GetReport).Methods("GET")
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
