package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/product-inventory/internal/stock/domain"
	"github.com/tair/product-inventory/internal/stock/usecase/command"
	"github.com/tair/product-inventory/internal/stock/usecase/query"
	"github.com/tair/product-inventory/kafka"
)

type stockLevel struct {
	productID uuid.UUID
	stock     float64
}

type fakeStockRepo struct {
	levels map[uuid.UUID]*stockLevel
	txns   []domain.StockTransaction
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{levels: map[uuid.UUID]*stockLevel{}}
}

func (f *fakeStockRepo) AdjustStock(_ context.Context, productID, subVariantID uuid.UUID, delta float64, txn *domain.StockTransaction) error {
	level, ok := f.levels[subVariantID]
	if !ok || level.productID != productID {
		return domain.ErrSubVariantNotFound
	}
	if level.stock+delta < 0 {
		return domain.ErrInsufficientStock
	}
	level.stock += delta
	f.txns = append([]domain.StockTransaction{*txn}, f.txns...)
	return nil
}

func (f *fakeStockRepo) FindTransactions(_ context.Context, productID *uuid.UUID, limit, offset int) ([]domain.StockTransaction, error) {
	var matched []domain.StockTransaction
	for _, txn := range f.txns {
		if productID == nil || txn.ProductID == *productID {
			matched = append(matched, txn)
		}
	}
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (f *fakeStockRepo) CountTransactions(_ context.Context, productID *uuid.UUID) (int64, error) {
	var count int64
	for _, txn := range f.txns {
		if productID == nil || txn.ProductID == *productID {
			count++
		}
	}
	return count, nil
}

type fakePublisher struct {
	events []kafka.StockAdjustedEvent
	err    error
}

func (f *fakePublisher) PublishStockAdjusted(_ context.Context, event kafka.StockAdjustedEvent) error {
	f.events = append(f.events, event)
	return f.err
}

func setupStockRouter(t *testing.T) (*fakeStockRepo, *fakePublisher, *mux.Router) {
	t.Helper()
	repo := newFakeStockRepo()
	publisher := &fakePublisher{}
	handler := NewStockHandler(
		command.NewAddStockHandler(repo),
		command.NewRemoveStockHandler(repo),
		query.NewListTransactionsHandler(repo),
		publisher,
		prometheus.NewRegistry(),
	)
	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	return repo, publisher, router
}

func doStockJSON(t *testing.T, router *mux.Router, method, path, body string) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var resp Response
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body %q: %v", rr.Body.String(), err)
	}
	return rr, resp
}

func stockBody(productID, subVariantID uuid.UUID, quantity float64) string {
	raw, _ := json.Marshal(map[string]interface{}{
		"product_id":     productID.String(),
		"sub_variant_id": subVariantID.String(),
		"quantity":       quantity,
		"notes":          "restock",
	})
	return string(raw)
}

func TestAddStock_Success(t *testing.T) {
	repo, publisher, router := setupStockRouter(t)
	productID := uuid.New()
	subVariantID := uuid.New()
	repo.levels[subVariantID] = &stockLevel{productID: productID}

	rr, resp := doStockJSON(t, router, http.MethodPost, "/api/stock/purchase", stockBody(productID, subVariantID, 5))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if !resp.Success {
		t.Errorf("expected success envelope")
	}

	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("expected transaction payload, got %v", resp.Data)
	}
	if data["transaction_type"] != domain.TransactionTypePurchase {
		t.Errorf("transaction_type = %v, want %s", data["transaction_type"], domain.TransactionTypePurchase)
	}
	if data["quantity"].(float64) != 5 {
		t.Errorf("quantity = %v, want 5", data["quantity"])
	}

	if repo.levels[subVariantID].stock != 5 {
		t.Errorf("stock = %v, want 5", repo.levels[subVariantID].stock)
	}

	if len(publisher.events) != 1 {
		t.Fatalf("expected one published event, got %d", len(publisher.events))
	}
	event := publisher.events[0]
	if event.ProductID != productID.String() || event.SubVariantID != subVariantID.String() {
		t.Errorf("event ids do not match request: %+v", event)
	}
	if event.TransactionType != domain.TransactionTypePurchase || event.Quantity != 5 {
		t.Errorf("unexpected event payload: %+v", event)
	}
}

func TestRemoveStock_InsufficientStock(t *testing.T) {
	repo, publisher, router := setupStockRouter(t)
	productID := uuid.New()
	subVariantID := uuid.New()
	repo.levels[subVariantID] = &stockLevel{productID: productID, stock: 3}

	rr, resp := doStockJSON(t, router, http.MethodPost, "/api/stock/sale", stockBody(productID, subVariantID, 10))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if resp.Success {
		t.Errorf("expected failure envelope")
	}
	if repo.levels[subVariantID].stock != 3 {
		t.Errorf("stock changed on rejected sale: %v", repo.levels[subVariantID].stock)
	}
	if len(repo.txns) != 0 {
		t.Errorf("transaction recorded for rejected sale")
	}
	if len(publisher.events) != 0 {
		t.Errorf("event published for rejected sale")
	}
}

func TestAddStock_SubVariantNotFound(t *testing.T) {
	_, _, router := setupStockRouter(t)

	rr, resp := doStockJSON(t, router, http.MethodPost, "/api/stock/purchase", stockBody(uuid.New(), uuid.New(), 5))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if resp.Success {
		t.Errorf("expected failure envelope")
	}
}

func TestAddStock_Validation(t *testing.T) {
	_, publisher, router := setupStockRouter(t)

	tests := []struct {
		name   string
		body   string
		fields []string
	}{
		{
			name:   "invalid ids and zero quantity",
			body:   `{"product_id": "nope", "sub_variant_id": "", "quantity": 0}`,
			fields: []string{"product_id", "sub_variant_id", "quantity"},
		},
		{
			name:   "negative quantity",
			body:   stockBody(uuid.New(), uuid.New(), -2),
			fields: []string{"quantity"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, resp := doStockJSON(t, router, http.MethodPost, "/api/stock/purchase", tt.body)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rr.Code)
			}
			errs, ok := resp.Errors.(map[string]interface{})
			if !ok {
				t.Fatalf("expected field-level errors, got %v", resp.Errors)
			}
			for _, field := range tt.fields {
				if _, ok := errs[field]; !ok {
					t.Errorf("missing validation detail for %q", field)
				}
			}
		})
	}
	if len(publisher.events) != 0 {
		t.Errorf("event published for invalid request")
	}
}

func TestAddStock_InvalidBody(t *testing.T) {
	_, _, router := setupStockRouter(t)

	rr, resp := doStockJSON(t, router, http.MethodPost, "/api/stock/purchase", `{broken`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if resp.Success {
		t.Errorf("expected failure envelope")
	}
}

func TestListTransactions_FilterAndPaging(t *testing.T) {
	repo, _, router := setupStockRouter(t)
	productID := uuid.New()
	otherID := uuid.New()
	subVariantID := uuid.New()
	repo.levels[subVariantID] = &stockLevel{productID: productID}

	for i := 0; i < 3; i++ {
		repo.txns = append(repo.txns, domain.StockTransaction{
			ID:              uuid.New(),
			ProductID:       productID,
			SubVariantID:    subVariantID,
			TransactionType: domain.TransactionTypePurchase,
			Quantity:        1,
		})
	}
	repo.txns = append(repo.txns, domain.StockTransaction{
		ID:              uuid.New(),
		ProductID:       otherID,
		SubVariantID:    uuid.New(),
		TransactionType: domain.TransactionTypeSale,
		Quantity:        1,
	})

	rr, resp := doStockJSON(t, router, http.MethodGet, "/api/stock/transactions?productId="+productID.String(), "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("expected page payload, got %v", resp.Data)
	}
	if data["total_count"].(float64) != 3 {
		t.Errorf("total_count = %v, want 3", data["total_count"])
	}
	items := data["items"].([]interface{})
	for _, raw := range items {
		item := raw.(map[string]interface{})
		if item["product_id"] != productID.String() {
			t.Errorf("item for foreign product leaked into filtered page: %v", item)
		}
	}
}

func TestListTransactions_InvalidProductID(t *testing.T) {
	_, _, router := setupStockRouter(t)

	rr, resp := doStockJSON(t, router, http.MethodGet, "/api/stock/transactions?productId=not-a-uuid", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if resp.Success {
		t.Errorf("expected failure envelope")
	}
}

func TestAddStock_NilPublisher(t *testing.T) {
	repo := newFakeStockRepo()
	handler := NewStockHandler(
		command.NewAddStockHandler(repo),
		command.NewRemoveStockHandler(repo),
		query.NewListTransactionsHandler(repo),
		nil,
		prometheus.NewRegistry(),
	)
	router := mux.NewRouter()
	handler.RegisterRoutes(router)

	productID := uuid.New()
	subVariantID := uuid.New()
	repo.levels[subVariantID] = &stockLevel{productID: productID}

	rr, resp := doStockJSON(t, router, http.MethodPost, "/api/stock/purchase", stockBody(productID, subVariantID, 2))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 without publisher, got %d", rr.Code)
	}
	if !resp.Success {
		t.Errorf("expected success envelope")
	}
}
