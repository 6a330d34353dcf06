package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Dan9191/advisory-service/internal/models"
	"github.com/Dan9191/advisory-service/internal/repository"
	"github.com/Dan9191/advisory-service/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	submitted []models.ContactInput
	contacts  []models.ContactRequest
	unread    *bool
	read      []int64
}

func (f *fakeService) SubmitContact(_ context.Context, in models.ContactInput) (*models.ContactRequest, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	f.submitted = append(f.submitted, in)
	return &models.ContactRequest{ID: int64(len(f.submitted)), Name: in.Name, Email: in.Email, Phone: in.Phone, Message: in.Message}, nil
}

func (f *fakeService) Login(creds models.Credentials) (*models.Token, error) {
	if creds.Username != "admin" || creds.Password != "s3cret" {
		return nil, service.ErrInvalidCredentials
	}
	return &models.Token{Token: "tok", ExpiresAt: 100}, nil
}

func (f *fakeService) ListContacts(_ context.Context, unreadOnly bool) ([]models.ContactRequest, error) {
	f.unread = &unreadOnly
	return f.contacts, nil
}

func (f *fakeService) MarkContactRead(_ context.Context, id int64) error {
	if id != 1 {
		return repository.ErrNotFound
	}
	f.read = append(f.read, id)
	return nil
}

type fakeRates struct {
	rate float64
	err  error
}

func (f fakeRates) Rate(context.Context) (float64, error) { return f.rate, f.err }

// passAuth lets requests carrying "Bearer ok" through
func passAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer ok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func newRouter(t *testing.T, svc *fakeService, rates RateSource) *mux.Router {
	t.Helper()
	log, _ := test.NewNullLogger()
	h := NewHandler(svc, rates, log)
	h.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	r := mux.NewRouter()
	h.Routes(r, passAuth)
	return r
}

func do(r http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

func TestSubmitContact(t *testing.T) {
	svc := &fakeService{}
	r := newRouter(t, svc, fakeRates{})

	rec := do(r, http.MethodPost, "/api/contact", `{"name":"Asha","email":"asha@example.com","message":"Please call me"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var got models.ContactRequest
	decodeBody(t, rec, &got)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "Asha", got.Name)
}

func TestSubmitContactValidation(t *testing.T) {
	r := newRouter(t, &fakeService{}, fakeRates{})

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"short name", `{"name":"A","email":"a@example.com","message":"Hello there"}`, "name"},
		{"bad email", `{"name":"Asha","email":"nope","message":"Hello there"}`, "email"},
		{"short message", `{"name":"Asha","email":"a@example.com","message":"hi"}`, "message"},
		{"malformed", `{"name":`, "body"},
		{"empty", ``, "body"},
		{"wrong type", `{"name":5}`, "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(r, http.MethodPost, "/api/contact", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var got errorResponse
			decodeBody(t, rec, &got)
			assert.Equal(t, tt.field, got.Field)
			assert.NotEmpty(t, got.Message)
		})
	}
}

func TestLogin(t *testing.T) {
	r := newRouter(t, &fakeService{}, fakeRates{})

	rec := do(r, http.MethodPost, "/api/admin/login", `{"username":"admin","password":"s3cret"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var tok models.Token
	decodeBody(t, rec, &tok)
	assert.Equal(t, "tok", tok.Token)

	rec = do(r, http.MethodPost, "/api/admin/login", `{"username":"admin","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	svc := &fakeService{contacts: []models.ContactRequest{{ID: 1, Name: "Asha"}}}
	r := newRouter(t, svc, fakeRates{})

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/api/admin/contacts", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPatch, "/api/admin/contacts/1/read", "").Code)

	rec := do(r, http.MethodGet, "/api/admin/contacts?unread=true", "", "Authorization", "Bearer ok")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.unread)
	assert.True(t, *svc.unread)
	var got []models.ContactRequest
	decodeBody(t, rec, &got)
	assert.Len(t, got, 1)

	rec = do(r, http.MethodGet, "/api/admin/contacts?unread=maybe", "", "Authorization", "Bearer ok")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMarkRead(t *testing.T) {
	svc := &fakeService{}
	r := newRouter(t, svc, fakeRates{})

	rec := do(r, http.MethodPatch, "/api/admin/contacts/1/read", "", "Authorization", "Bearer ok")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []int64{1}, svc.read)

	rec = do(r, http.MethodPatch, "/api/admin/contacts/42/read", "", "Authorization", "Bearer ok")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSavingsCalculator(t *testing.T) {
	r := newRouter(t, &fakeService{}, fakeRates{})

	rec := do(r, http.MethodPost, "/api/calculators/savings", `{"initial":100000,"monthly_contribution":0,"annual_rate_percent":0,"years":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Result struct {
			FinalBalance float64 `json:"final_balance"`
			Points       []struct {
				Year int `json:"year"`
			} `json:"points"`
		} `json:"result"`
		Words map[string]string `json:"words"`
	}
	decodeBody(t, rec, &got)
	assert.InDelta(t, 100000, got.Result.FinalBalance, 1e-6)
	assert.Len(t, got.Result.Points, 3)
	assert.Equal(t, "₹1 Lakh", got.Words["final_balance"])
}

func TestHealthCalculator(t *testing.T) {
	r := newRouter(t, &fakeService{}, fakeRates{})

	rec := do(r, http.MethodPost, "/api/calculators/health", `{"variant":"finscore","adults":1,"self_age":40,"city":"tier3"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Result struct {
			Variant string  `json:"variant"`
			Cover   float64 `json:"cover"`
		} `json:"result"`
		Words map[string]string `json:"words"`
	}
	decodeBody(t, rec, &got)
	assert.Equal(t, "finscore", got.Result.Variant)
	assert.Equal(t, 500000.0, got.Result.Cover)
	assert.Equal(t, "₹5 Lakh", got.Words["cover"])

	rec = do(r, http.MethodPost, "/api/calculators/health", `{"variant":"platinum"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthCalculatorRejectsUnknownEnums(t *testing.T) {
	r := newRouter(t, &fakeService{}, fakeRates{})

	tests := []struct {
		path  string
		body  string
		field string
	}{
		{"/api/calculators/health", `{"variant":"finscore","adults":1,"city":"tier9"}`, "city"},
		{"/api/calculators/health", `{"variant":"gap","adults":1,"procedure":"liposuction"}`, "procedure"},
		{"/api/calculators/score", `{"age":30,"city":"metro"}`, "city"},
		{"/api/finscore/report", `{"age":30,"city":"metro"}`, "city"},
	}
	for _, tt := range tests {
		rec := do(r, http.MethodPost, tt.path, tt.body)
		require.Equal(t, http.StatusBadRequest, rec.Code, tt.body)

		var got errorResponse
		decodeBody(t, rec, &got)
		assert.Equal(t, tt.field, got.Field, tt.body)
	}

	rec := do(r, http.MethodPost, "/api/calculators/health", `{"variant":"finscore","adults":1,"self_age":40,"city":"Tier2"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Result struct {
			Cover float64 `json:"cover"`
		} `json:"result"`
	}
	decodeBody(t, rec, &got)
	assert.Equal(t, 600000.0, got.Result.Cover)
}

func TestOtherCalculators(t *testing.T) {
	r := newRouter(t, &fakeService{}, fakeRates{})

	for path, body := range map[string]string{
		"/api/calculators/retirement": `{"current_age":30,"retirement_age":60,"annual_expenses":600000}`,
		"/api/calculators/term":       `{"monthly_income":100000,"total_debt":0,"age":30,"children":1}`,
		"/api/calculators/score":      `{"score":{"monthly_income":100000,"monthly_savings":30000,"health_insurance":true}}`,
		"/api/calculators/dime":       `{"debt":100000,"income":500000,"mortgage":0,"education":0,"assets":50000}`,
	} {
		rec := do(r, http.MethodPost, path, body)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		var got calculation
		decodeBody(t, rec, &got)
		assert.NotNil(t, got.Result, path)
		assert.NotEmpty(t, got.Words, path)
	}
}

func TestLedgerReduce(t *testing.T) {
	r := newRouter(t, &fakeService{}, fakeRates{})

	body := `{"entries":[],"actions":[
		{"kind":"add","entry":{"id":"a","type":"income","category":"salary","amount":50000,"date":"2024-03-01"}},
		{"kind":"add","entry":{"id":"b","type":"expense","category":"rent","amount":20000,"date":"2024-03-05"}}
	]}`
	rec := do(r, http.MethodPost, "/api/ledger/reduce", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var got ledgerResponse
	decodeBody(t, rec, &got)
	require.Len(t, got.Entries, 2)
	assert.Equal(t, "b", got.Entries[0].ID)
	assert.Equal(t, "rent", got.Entries[0].Description)
	assert.Equal(t, 30000.0, got.Summary.NetSavings)
	assert.Equal(t, int64(60), got.Summary.SavingsRate)

	rec = do(r, http.MethodPost, "/api/ledger/reduce", `{"actions":[{"kind":"add","entry":{"type":"income","category":"rent","amount":1,"date":"2024-03-01"}}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(r, http.MethodPost, "/api/ledger/reduce", `{"actions":[{"kind":"clear"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &got)
	assert.NotNil(t, got.Entries)
	assert.Empty(t, got.Entries)
}

func TestLedgerSummary(t *testing.T) {
	r := newRouter(t, &fakeService{}, fakeRates{})

	rec := do(r, http.MethodPost, "/api/ledger/summary", `{"entries":[{"id":"a","type":"income","category":"salary","amount":150000,"date":"2024-03-01"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var got calculation
	decodeBody(t, rec, &got)
	assert.Equal(t, "₹1.5 Lakh", got.Words["total_income"])
}

func TestFinScoreReport(t *testing.T) {
	r := newRouter(t, &fakeService{}, fakeRates{})

	rec := do(r, http.MethodPost, "/api/finscore/report", `{"score":{"monthly_income":80000,"monthly_savings":16000},"age":32,"city":"tier1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
}

func TestReferenceRate(t *testing.T) {
	rec := do(newRouter(t, &fakeService{}, fakeRates{rate: 7.25}), http.MethodGet, "/api/reference-rate", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]float64
	decodeBody(t, rec, &got)
	assert.Equal(t, 7.25, got["rate"])

	rec = do(newRouter(t, &fakeService{}, fakeRates{err: errors.New("feed down")}), http.MethodGet, "/api/reference-rate", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
