package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	catalogdomain "github.com/ironvale/stockledger/internal/catalog/domain"
	"github.com/ironvale/stockledger/internal/decision"
	"github.com/ironvale/stockledger/internal/ledger/domain"
	"github.com/ironvale/stockledger/internal/ledger/projector"
	"github.com/ironvale/stockledger/internal/ledger/usecase/command"
	"github.com/ironvale/stockledger/internal/ledger/usecase/query"
	"github.com/ironvale/stockledger/kafka"
	"github.com/ironvale/stockledger/pkg/logger"
)

// LedgerHandler handles HTTP requests for stock movements and snapshots
type LedgerHandler struct {
	// Command handlers
	recordHandler *command.RecordMovementHandler
	repairHandler *command.RepairProjectionHandler

	// Query handlers
	snapshotHandler *query.GetSnapshotHandler
	listHandler     *query.ListMovementsHandler
	verifyHandler   *query.VerifyProjectionHandler

	catalog   catalogdomain.ProductRepository
	projector *projector.Projector

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	quarantined    prometheus.GaugeFunc
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(
	catalog catalogdomain.ProductRepository,
	movements domain.MovementRepository,
	proj *projector.Projector,
	kafkaPublisher *kafka.Publisher,
) *LedgerHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockledger_requests_total",
			Help: "Total number of requests to the stock ledger service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stockledger_request_duration_seconds",
			Help:    "Duration of stock ledger requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	quarantined := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "stockledger_quarantined_projections",
			Help: "Number of product projections refusing writes pending repair",
		},
		func() float64 { return float64(proj.QuarantinedCount()) },
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(quarantined)

	// A typed-nil publisher must stay a nil interface so the command
	// handler's nil check holds
	var events command.EventPublisher
	if kafkaPublisher != nil {
		events = kafkaPublisher
	}

	return &LedgerHandler{
		recordHandler:   command.NewRecordMovementHandler(catalog, movements, proj, events),
		repairHandler:   command.NewRepairProjectionHandler(proj),
		snapshotHandler: query.NewGetSnapshotHandler(proj),
		listHandler:     query.NewListMovementsHandler(movements),
		verifyHandler:   query.NewVerifyProjectionHandler(proj),
		catalog:         catalog,
		projector:       proj,
		requestCounter:  requestCounter,
		requestLatency:  requestLatency,
		quarantined:     quarantined,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *LedgerHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// statusForError maps the ledger error taxonomy onto HTTP codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidDirection):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnknownProduct),
		errors.Is(err, domain.ErrMovementNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrProjectionDrift):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNegativeStockDetected),
		errors.Is(err, domain.ErrProjectionQuarantined):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// RecordMovement handles POST /api/movements
func (h *LedgerHandler) RecordMovement(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID  uint   `json:"product_id"`
		Direction  string `json:"direction"`
		Quantity   int    `json:"quantity"`
		Reason     string `json:"reason"`
		Reference  string `json:"reference"`
		OccurredAt string `json:"occurred_at"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	cmd := command.RecordMovementCommand{
		ProductID: req.ProductID,
		Direction: domain.Direction(req.Direction),
		Quantity:  req.Quantity,
		Reason:    req.Reason,
		Reference: req.Reference,
	}
	if req.OccurredAt != "" {
		occurredAt, err := time.Parse(time.RFC3339, req.OccurredAt)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, Response{
				Success: false,
				Error:   "occurred_at must be RFC3339",
			})
			return
		}
		cmd.OccurredAt = occurredAt
	}

	result, err := h.recordHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Logger.Warn().
			Err(err).
			Uint("product_id", req.ProductID).
			Str("direction", req.Direction).
			Int("quantity", req.Quantity).
			Msg("Movement rejected")
		respondJSON(w, statusForError(err), Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Movement recorded successfully",
		Data: map[string]interface{}{
			"movement": result.Movement,
			"snapshot": result.Snapshot,
		},
	})
}

// ListMovements handles GET /api/movements
func (h *LedgerHandler) ListMovements(w http.ResponseWriter, r *http.Request) {
	productID, _ := strconv.ParseUint(r.URL.Query().Get("product_id"), 10, 32)
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	movements, err := h.listHandler.Handle(query.ListMovementsQuery{
		ProductID: uint(productID),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list movements")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list movements",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    movements,
	})
}

// GetSnapshot handles GET /api/stock/{product_id}
func (h *LedgerHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	productID, err := productIDVar(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid product ID",
		})
		return
	}

	snapshot, err := h.snapshotHandler.Handle(query.GetSnapshotQuery{ProductID: productID})
	if err != nil {
		respondJSON(w, statusForError(err), Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	data := map[string]interface{}{
		"snapshot": snapshot,
	}
	if product, perr := h.catalog.FindByID(productID); perr == nil {
		data["tier"] = decision.Classify(snapshot.CurrentStock, product.ReorderLevel)
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// VerifyProjection handles POST /api/stock/{product_id}/verify
func (h *LedgerHandler) VerifyProjection(w http.ResponseWriter, r *http.Request) {
	productID, err := productIDVar(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid product ID",
		})
		return
	}

	result, err := h.verifyHandler.Handle(query.VerifyProjectionQuery{ProductID: productID})
	if err != nil {
		respondJSON(w, statusForError(err), Response{
			Success: false,
			Error:   err.Error(),
			Data:    result,
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Projection consistent with ledger replay",
		Data:    result,
	})
}

// RepairProjection handles POST /api/stock/{product_id}/repair
func (h *LedgerHandler) RepairProjection(w http.ResponseWriter, r *http.Request) {
	productID, err := productIDVar(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid product ID",
		})
		return
	}

	snapshot, err := h.repairHandler.Handle(command.RepairProjectionCommand{ProductID: productID})
	if err != nil {
		logger.Logger.Error().
			Err(err).
			Uint("product_id", productID).
			Msg("Projection repair failed")
		respondJSON(w, statusForError(err), Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Projection repaired",
		Data:    snapshot,
	})
}

func productIDVar(r *http.Request) (uint, error) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["product_id"], 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid product id")
	}
	return uint(id), nil
}

// RegisterRoutes registers all ledger routes
func (h *LedgerHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/movements", h.metricsMiddleware("/api/movements", h.RecordMovement)).Methods("POST")
	router.HandleFunc("/api/movements", h.metricsMiddleware("/api/movements", h.ListMovements)).Methods("GET")
	router.HandleFunc("/api/stock/{product_id}", h.metricsMiddleware("/api/stock/{product_id}", h.GetSnapshot)).Methods("GET")
	router.HandleFunc("/api/stock/{product_id}/verify", h.metricsMiddleware("/api/stock/{product_id}/verify", h.VerifyProjection)).Methods("POST")
	router.HandleFunc("/api/stock/{product_id}/repair", h.metricsMiddleware("/api/stock/{product_id}/repair", h.RepairProjection)).Methods("POST")
}

// RegisterHealthCheck registers health check endpoint
func (h *LedgerHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.Ping(); err != nil {
				respondJSON(w, http.StatusServiceUnavailable, Response{
					Success: false,
					Error:   "Database unavailable",
				})
				return
			}
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Stock ledger service is healthy",
		})
	}).Methods("GET")
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
