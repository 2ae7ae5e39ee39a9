package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/product-inventory/internal/product/domain"
	"github.com/tair/product-inventory/internal/product/usecase/command"
	"github.com/tair/product-inventory/internal/product/usecase/query"
	"github.com/tair/product-inventory/pkg/logger"
)

// ProductHandler handles HTTP requests for products using CQRS pattern
type ProductHandler struct {
	createHandler *command.CreateProductHandler
	listHandler   *query.ListProductsHandler

	repo           domain.ProductRepository
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	totalProducts  prometheus.Gauge
}

// NewProductHandler creates a new product handler with its usecase handlers
// and Prometheus collectors. Collectors register on reg so tests can pass a
// fresh registry.
func NewProductHandler(
	createHandler *command.CreateProductHandler,
	listHandler *query.ListProductsHandler,
	repo domain.ProductRepository,
	reg prometheus.Registerer,
) *ProductHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_product_requests_total",
			Help: "Total number of requests to product endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inventory_product_request_duration_seconds",
			Help:    "Duration of product endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	totalProducts := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "inventory_total_products",
			Help: "Total number of products in the system",
		},
	)

	reg.MustRegister(requestCounter, requestLatency, totalProducts)

	return &ProductHandler{
		createHandler:  createHandler,
		listHandler:    listHandler,
		repo:           repo,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
		totalProducts:  totalProducts,
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
func (h *ProductHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *ProductHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", h.CreateProduct)).Methods("POST")
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", h.ListProducts)).Methods("GET")
}

type createVariantRequest struct {
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

type createProductRequest struct {
	Name        string                 `json:"name"`
	HSNCode     string                 `json:"hsn_code"`
	ProductCode string                 `json:"product_code"`
	CreatedUser string                 `json:"created_user"`
	IsFavourite bool                   `json:"is_favourite"`
	Variants    []createVariantRequest `json:"variants"`
}

// validate returns field-level validation errors, empty when the request is
// well formed
func (req *createProductRequest) validate() map[string]string {
	errs := map[string]string{}
	switch {
	case req.Name == "":
		errs["name"] = "Product name is required."
	case len(req.Name) > 200:
		errs["name"] = "Product name must be at most 200 characters."
	}
	switch {
	case req.HSNCode == "":
		errs["hsn_code"] = "HSN code is required."
	case len(req.HSNCode) > 100:
		errs["hsn_code"] = "HSN code must be at most 100 characters."
	}
	switch {
	case req.ProductCode == "":
		errs["product_code"] = "Product code is required."
	case len(req.ProductCode) > 50:
		errs["product_code"] = "Product code must be at most 50 characters."
	}
	if req.CreatedUser != "" {
		if _, err := uuid.Parse(req.CreatedUser); err != nil {
			errs["created_user"] = "Created user must be a valid UUID."
		}
	}
	if len(req.Variants) == 0 {
		errs["variants"] = "At least one variant is required."
	}
	for i, v := range req.Variants {
		if v.Name == "" {
			errs["variants["+strconv.Itoa(i)+"].name"] = "Variant name is required."
		}
		if len(v.Options) == 0 {
			errs["variants["+strconv.Itoa(i)+"].options"] = "At least one option is required."
		}
	}
	return errs
}

// CreateProduct handles POST /api/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Message: "Invalid request body.",
		})
		return
	}

	if errs := req.validate(); len(errs) > 0 {
		logger.Warn(r.Context()).Int("fields", len(errs)).Msg("Product creation validation failed")
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Message: "Validation failed.",
			Errors:  errs,
		})
		return
	}

	createdUser := uuid.Nil
	if req.CreatedUser != "" {
		createdUser, _ = uuid.Parse(req.CreatedUser)
	}

	cmd := command.CreateProductCommand{
		Name:        req.Name,
		HSNCode:     req.HSNCode,
		ProductCode: req.ProductCode,
		CreatedUser: createdUser,
		IsFavourite: req.IsFavourite,
	}
	for _, v := range req.Variants {
		cmd.Variants = append(cmd.Variants, command.VariantInput{Name: v.Name, Options: v.Options})
	}

	product, err := h.createHandler.Handle(r.Context(), cmd)
	if err != nil {
		if errors.Is(err, domain.ErrProductCodeExists) {
			respondJSON(w, http.StatusConflict, Response{
				Success: false,
				Message: "Product code '" + req.ProductCode + "' already exists.",
			})
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to create product")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Message: "An unexpected error occurred.",
		})
		return
	}

	h.updateProductsMetric(r)

	logger.Info(r.Context()).
		Str("product_id", product.ID.String()).
		Str("product_code", product.ProductCode).
		Msg("Product created")

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Product created successfully.",
		Data:    map[string]interface{}{"id": product.ID},
	})
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))

	var active *bool
	if raw := r.URL.Query().Get("active"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			active = &v
		}
	}

	q := query.ListProductsQuery{
		Page:     page,
		PageSize: pageSize,
		Active:   active,
	}

	result, err := h.listHandler.Handle(r.Context(), q)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list products")
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

func (h *ProductHandler) RegisterHealthCheck(router *mux.Router, ping func() error) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := ping(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, Response{
				Success: false,
				Message: "Database unavailable.",
			})
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Inventory service is healthy.",
		})
	}).Methods("GET")
}

// updateProductsMetric updates the total products gauge
func (h *ProductHandler) updateProductsMetric(r *http.Request) {
	count, err := h.repo.Count(r.Context(), nil)
	if err == nil {
		h.totalProducts.Set(float64(count))
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
