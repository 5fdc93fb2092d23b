package leads

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wolfman30/window-quote/pkg/logging"
)

func seedLead(t *testing.T, repo Repository, zip string) *Lead {
	t.Helper()
	lead, err := repo.Create(context.Background(), &CreateLeadRequest{
		SessionID:  "sess-" + zip,
		PostalCode: zip,
		Email:      zip + "@example.com",
	})
	if err != nil {
		t.Fatalf("seed lead: %v", err)
	}
	return lead
}

func TestListLeads(t *testing.T) {
	repo := NewInMemoryRepository()
	seedLead(t, repo, "10001")
	seedLead(t, repo, "94103")
	handler := NewHandler(repo, logging.Discard())

	req := httptest.NewRequest(http.MethodGet, "/?postal_code=94103&limit=500", nil)
	w := httptest.NewRecorder()
	handler.Routes().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp ListLeadsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 1 || resp.Leads[0].PostalCode != "94103" {
		t.Fatalf("unexpected leads: %+v", resp.Leads)
	}
	if resp.Limit != 50 {
		t.Fatalf("out-of-range limit should fall back to 50, got %d", resp.Limit)
	}
}

func TestGetLead(t *testing.T) {
	repo := NewInMemoryRepository()
	lead := seedLead(t, repo, "10001")
	handler := NewHandler(repo, logging.Discard())

	req := httptest.NewRequest(http.MethodGet, "/"+lead.ID, nil)
	w := httptest.NewRecorder()
	handler.Routes().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var got Lead
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.ID != lead.ID {
		t.Fatalf("expected ID %s, got %s", lead.ID, got.ID)
	}
}

func TestGetLead_NotFound(t *testing.T) {
	handler := NewHandler(NewInMemoryRepository(), logging.Discard())

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	w := httptest.NewRecorder()
	handler.Routes().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

type failingRepository struct{}

func (failingRepository) Create(context.Context, *CreateLeadRequest) (*Lead, error) {
	return nil, errors.New("boom")
}

func (failingRepository) GetByID(context.Context, string) (*Lead, error) {
	return nil, errors.New("boom")
}

func (failingRepository) List(context.Context, ListLeadsFilter) ([]*Lead, error) {
	return nil, errors.New("boom")
}

func TestHandler_RepositoryError(t *testing.T) {
	handler := NewHandler(failingRepository{}, logging.Discard())

	for _, path := range []string{"/", "/some-id"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		handler.Routes().ServeHTTP(w, req)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("%s: expected %d, got %d", path, http.StatusInternalServerError, w.Code)
		}
	}
}

func TestRepository_Create(t *testing.T) {
	repo := NewInMemoryRepository()
	req := &CreateLeadRequest{
		SessionID:  "sess-9",
		PostalCode: "73301",
		FirstName:  "Jane",
		Email:      "jane@example.com",
		Answers:    map[string]string{"timeline": "flexible"},
	}

	lead, err := repo.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lead.ID == "" {
		t.Error("expected lead ID to be set")
	}
	if lead.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	req.Answers["timeline"] = "changed"
	if lead.Answers["timeline"] != "flexible" {
		t.Error("lead answers must not alias the request map")
	}
}

func TestRepository_CreateValidation(t *testing.T) {
	repo := NewInMemoryRepository()
	if _, err := repo.Create(context.Background(), &CreateLeadRequest{Email: "x@y.z"}); !errors.Is(err, ErrMissingSession) {
		t.Fatalf("expected ErrMissingSession, got %v", err)
	}
	if _, err := repo.Create(context.Background(), &CreateLeadRequest{SessionID: "s"}); !errors.Is(err, ErrMissingContact) {
		t.Fatalf("expected ErrMissingContact, got %v", err)
	}
}

func TestRepository_ListPaging(t *testing.T) {
	repo := NewInMemoryRepository()
	for _, zip := range []string{"10001", "10002", "10003"} {
		seedLead(t, repo, zip)
	}
	page, err := repo.List(context.Background(), ListLeadsFilter{Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected 2 leads, got %d", len(page))
	}
	rest, err := repo.List(context.Background(), ListLeadsFilter{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rest) != 1 {
		t.Fatalf("expected 1 lead, got %d", len(rest))
	}
	empty, _ := repo.List(context.Background(), ListLeadsFilter{Offset: 10})
	if len(empty) != 0 {
		t.Fatalf("expected no leads past the end, got %d", len(empty))
	}
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	_, err := NewInMemoryRepository().GetByID(context.Background(), "nonexistent")
	if err != ErrLeadNotFound {
		t.Errorf("expected ErrLeadNotFound, got %v", err)
	}
}
