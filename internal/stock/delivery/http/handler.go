package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/product-inventory/internal/stock/domain"
	"github.com/tair/product-inventory/internal/stock/usecase/command"
	"github.com/tair/product-inventory/internal/stock/usecase/query"
	"github.com/tair/product-inventory/kafka"
	"github.com/tair/product-inventory/pkg/logger"
)

// EventPublisher emits the audit event for a recorded stock transaction
type EventPublisher interface {
	PublishStockAdjusted(ctx context.Context, event kafka.StockAdjustedEvent) error
}

// StockHandler handles HTTP requests for stock movements using CQRS pattern
type StockHandler struct {
	addHandler    *command.AddStockHandler
	removeHandler *command.RemoveStockHandler
	listHandler   *query.ListTransactionsHandler

	publisher EventPublisher

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	adjustments    *prometheus.CounterVec
}

// NewStockHandler creates a new stock handler. publisher may be nil, in
// which case no events are emitted. Collectors register on reg so tests can
// pass a fresh registry.
func NewStockHandler(
	addHandler *command.AddStockHandler,
	removeHandler *command.RemoveStockHandler,
	listHandler *query.ListTransactionsHandler,
	publisher EventPublisher,
	reg prometheus.Registerer,
) *StockHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_stock_requests_total",
			Help: "Total number of requests to stock endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inventory_stock_request_duration_seconds",
			Help:    "Duration of stock endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	adjustments := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_stock_adjustments_total",
			Help: "Total number of recorded stock adjustments by type",
		},
		[]string{"type"},
	)

	reg.MustRegister(requestCounter, requestLatency, adjustments)

	return &StockHandler{
		addHandler:     addHandler,
		removeHandler:  removeHandler,
		listHandler:    listHandler,
		publisher:      publisher,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
		adjustments:    adjustments,
	}
}

// Response is the uniform API envelope
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
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
func (h *StockHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *StockHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/stock/purchase", h.metricsMiddleware("/api/stock/purchase", h.AddStock)).Methods("POST")
	router.HandleFunc("/api/stock/sale", h.metricsMiddleware("/api/stock/sale", h.RemoveStock)).Methods("POST")
	router.HandleFunc("/api/stock/transactions", h.metricsMiddleware("/api/stock/transactions", h.ListTransactions)).Methods("GET")
}

type stockRequest struct {
	ProductID    string  `json:"product_id"`
	SubVariantID string  `json:"sub_variant_id"`
	Quantity     float64 `json:"quantity"`
	Notes        string  `json:"notes"`
}

// validate returns field-level validation errors, empty when the request is
// well formed
func (req *stockRequest) validate() map[string]string {
	errs := map[string]string{}
	if _, err := uuid.Parse(req.ProductID); req.ProductID == "" || err != nil {
		errs["product_id"] = "Product id must be a valid UUID."
	}
	if _, err := uuid.Parse(req.SubVariantID); req.SubVariantID == "" || err != nil {
		errs["sub_variant_id"] = "Sub-variant id must be a valid UUID."
	}
	if req.Quantity <= 0 {
		errs["quantity"] = "Quantity must be greater than 0."
	}
	if len(req.Notes) > 500 {
		errs["notes"] = "Notes must be at most 500 characters."
	}
	return errs
}

// AddStock handles POST /api/stock/purchase
func (h *StockHandler) AddStock(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeStockRequest(w, r)
	if !ok {
		return
	}

	cmd := command.AddStockCommand{
		ProductID:    uuid.MustParse(req.ProductID),
		SubVariantID: uuid.MustParse(req.SubVariantID),
		Quantity:     req.Quantity,
		Notes:        req.Notes,
	}

	txn, err := h.addHandler.Handle(r.Context(), cmd)
	if err != nil {
		h.respondStockError(w, r, err)
		return
	}

	h.adjustments.WithLabelValues(domain.TransactionTypePurchase).Inc()
	h.publishStockAdjusted(r, txn)

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Stock added successfully.",
		Data:    txn,
	})
}

// RemoveStock handles POST /api/stock/sale
func (h *StockHandler) RemoveStock(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeStockRequest(w, r)
	if !ok {
		return
	}

	cmd := command.RemoveStockCommand{
		ProductID:    uuid.MustParse(req.ProductID),
		SubVariantID: uuid.MustParse(req.SubVariantID),
		Quantity:     req.Quantity,
		Notes:        req.Notes,
	}

	txn, err := h.removeHandler.Handle(r.Context(), cmd)
	if err != nil {
		h.respondStockError(w, r, err)
		return
	}

	h.adjustments.WithLabelValues(domain.TransactionTypeSale).Inc()
	h.publishStockAdjusted(r, txn)

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Stock removed successfully.",
		Data:    txn,
	})
}

// ListTransactions handles GET /api/stock/transactions
func (h *StockHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))

	var productID *uuid.UUID
	if raw := r.URL.Query().Get("productId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, Response{
				Success: false,
				Message: "Validation failed.",
				Errors:  map[string]string{"productId": "Product id must be a valid UUID."},
			})
			return
		}
		productID = &id
	}

	q := query.ListTransactionsQuery{
		Page:      page,
		PageSize:  pageSize,
		ProductID: productID,
	}

	result, err := h.listHandler.Handle(r.Context(), q)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list stock transactions")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Message: "An unexpected error occurred.",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

func (h *StockHandler) decodeStockRequest(w http.ResponseWriter, r *http.Request) (*stockRequest, bool) {
	var req stockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Message: "Invalid request body.",
		})
		return nil, false
	}

	if errs := req.validate(); len(errs) > 0 {
		logger.Warn(r.Context()).Int("fields", len(errs)).Msg("Stock request validation failed")
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Message: "Validation failed.",
			Errors:  errs,
		})
		return nil, false
	}

	return &req, true
}

func (h *StockHandler) respondStockError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrSubVariantNotFound):
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Message: "Sub-variant not found for this product.",
		})
	case errors.Is(err, domain.ErrInsufficientStock):
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Message: "Insufficient stock.",
		})
	default:
		logger.Error(r.Context()).Err(err).Msg("Stock adjustment failed")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Message: "An unexpected error occurred.",
		})
	}
}

// publishStockAdjusted emits the audit event for a recorded transaction.
// Publishing failures are logged, not surfaced: the adjustment is already
// committed.
func (h *StockHandler) publishStockAdjusted(r *http.Request, txn *domain.StockTransaction) {
	if h.publisher == nil {
		return
	}

	event := kafka.StockAdjustedEvent{
		TransactionID:   txn.ID.String(),
		ProductID:       txn.ProductID.String(),
		SubVariantID:    txn.SubVariantID.String(),
		TransactionType: txn.TransactionType,
		Quantity:        txn.Quantity,
		Notes:           txn.Notes,
		Timestamp:       txn.CreatedAt,
	}

	if err := h.publisher.PublishStockAdjusted(r.Context(), event); err != nil {
		logger.Error(r.Context()).
			Err(err).
			Str("transaction_id", event.TransactionID).
			Msg("Failed to publish stock adjusted event")
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
