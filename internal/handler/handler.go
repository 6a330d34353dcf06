package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/Dan9191/advisory-service/internal/finance"
	"github.com/Dan9191/advisory-service/internal/ledger"
	"github.com/Dan9191/advisory-service/internal/models"
	"github.com/Dan9191/advisory-service/internal/report"
	"github.com/Dan9191/advisory-service/internal/repository"
	"github.com/Dan9191/advisory-service/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 1 << 20

// ContactService is the contact and admin inbox logic the handlers call
type ContactService interface {
	SubmitContact(ctx context.Context, in models.ContactInput) (*models.ContactRequest, error)
	Login(creds models.Credentials) (*models.Token, error)
	ListContacts(ctx context.Context, unreadOnly bool) ([]models.ContactRequest, error)
	MarkContactRead(ctx context.Context, id int64) error
}

// RateSource returns the current reference rate in percent
type RateSource interface {
	Rate(ctx context.Context) (float64, error)
}

type Handler struct {
	svc   ContactService
	rates RateSource
	log   *logrus.Logger
	now   func() time.Time
}

func NewHandler(svc ContactService, rates RateSource, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, rates: rates, log: log, now: time.Now}
}

// Routes registers every endpoint. Admin routes go through auth.
func (h *Handler) Routes(r *mux.Router, auth mux.MiddlewareFunc) {
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/contact", h.SubmitContact).Methods(http.MethodPost)
	api.HandleFunc("/admin/login", h.Login).Methods(http.MethodPost)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(auth)
	admin.HandleFunc("/contacts", h.ListContacts).Methods(http.MethodGet)
	admin.HandleFunc("/contacts/{id:[0-9]+}/read", h.MarkRead).Methods(http.MethodPatch)

	api.HandleFunc("/calculators/savings", h.Savings).Methods(http.MethodPost)
	api.HandleFunc("/calculators/retirement", h.Retirement).Methods(http.MethodPost)
	api.HandleFunc("/calculators/health", h.Health).Methods(http.MethodPost)
	api.HandleFunc("/calculators/term", h.Term).Methods(http.MethodPost)
	api.HandleFunc("/calculators/score", h.Score).Methods(http.MethodPost)
	api.HandleFunc("/calculators/dime", h.Dime).Methods(http.MethodPost)
	api.HandleFunc("/ledger/reduce", h.LedgerReduce).Methods(http.MethodPost)
	api.HandleFunc("/ledger/summary", h.LedgerSummary).Methods(http.MethodPost)
	api.HandleFunc("/finscore/report", h.FinScoreReport).Methods(http.MethodPost)
	api.HandleFunc("/reference-rate", h.ReferenceRate).Methods(http.MethodGet)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
}

type errorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// calculation pairs a calculator result with display labels for its amounts
type calculation struct {
	Result interface{}       `json:"result"`
	Words  map[string]string `json:"words"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: verr.Message, Field: verr.Field})
	case errors.Is(err, ledger.ErrInvalidEntry), errors.Is(err, ledger.ErrUnknownAction):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Message: err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Message: err.Error()})
	default:
		h.log.Errorf("Request failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "Internal server error"})
	}
}

// decode reads a JSON body, reporting malformed input as a validation error
func decode(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return &models.ValidationError{Field: "body", Message: "request body is empty"}
		}
		var inErr *finance.InputError
		if errors.As(err, &inErr) {
			return &models.ValidationError{Field: inErr.Field, Message: inErr.Error()}
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return &models.ValidationError{Field: typeErr.Field, Message: fmt.Sprintf("%s must be %s", typeErr.Field, typeErr.Type)}
		}
		return &models.ValidationError{Field: "body", Message: "invalid JSON"}
	}
	return nil
}

func words(pairs ...interface{}) map[string]string {
	out := make(map[string]string, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out[pairs[i].(string)] = finance.AmountToWords(pairs[i+1].(float64))
	}
	return out
}

// SubmitContact stores a consultation request from the public form
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var in models.ContactInput
	if err := decode(w, r, &in); err != nil {
		h.writeError(w, err)
		return
	}
	req, err := h.svc.SubmitContact(r.Context(), in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

// Login handles admin authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := decode(w, r, &creds); err != nil {
		h.writeError(w, err)
		return
	}
	token, err := h.svc.Login(creds)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, token)
}

// ListContacts returns the inbox, newest first
func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	unread := false
	if v := r.URL.Query().Get("unread"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			h.writeError(w, &models.ValidationError{Field: "unread", Message: "unread must be true or false"})
			return
		}
		unread = b
	}
	reqs, err := h.svc.ListContacts(r.Context(), unread)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reqs)
}

// MarkRead flags one contact request as read
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.writeError(w, &models.ValidationError{Field: "id", Message: "id must be a number"})
		return
	}
	if err := h.svc.MarkContactRead(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Savings(w http.ResponseWriter, r *http.Request) {
	var in finance.SavingsInput
	if err := decode(w, r, &in); err != nil {
		h.writeError(w, err)
		return
	}
	p := finance.ProjectSavings(in)
	writeJSON(w, http.StatusOK, calculation{Result: p, Words: words(
		"final_balance", p.FinalBalance,
		"total_invested", p.TotalInvested,
		"total_interest", p.TotalInterest,
	)})
}

func (h *Handler) Retirement(w http.ResponseWriter, r *http.Request) {
	var in finance.RetirementInput
	if err := decode(w, r, &in); err != nil {
		h.writeError(w, err)
		return
	}
	g := finance.EstimateRetirementGap(in)
	writeJSON(w, http.StatusOK, calculation{Result: g, Words: words(
		"future_annual_expenses", g.FutureAnnualExpenses,
		"corpus_needed", g.CorpusNeeded,
	)})
}

type healthRequest struct {
	Variant string `json:"variant"`
	finance.HealthInput
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	var req healthRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	variant, err := finance.HealthVariantByName(req.Variant)
	if err != nil {
		h.writeError(w, &models.ValidationError{Field: "variant", Message: err.Error()})
		return
	}
	rec := finance.EstimateHealthCover(variant, req.HealthInput)
	labels := words("cover", rec.Cover, "premium", rec.Premium)
	if rec.Parents != nil {
		labels["parents_cover"] = finance.AmountToWords(rec.Parents.Cover)
	}
	writeJSON(w, http.StatusOK, calculation{Result: rec, Words: labels})
}

func (h *Handler) Term(w http.ResponseWriter, r *http.Request) {
	var in finance.TermInput
	if err := decode(w, r, &in); err != nil {
		h.writeError(w, err)
		return
	}
	rec := finance.EstimateTermCover(in)
	writeJSON(w, http.StatusOK, calculation{Result: rec, Words: words(
		"cover", rec.Cover,
		"premium", rec.Premium,
		"total_need", rec.TotalNeed,
	)})
}

func (h *Handler) Score(w http.ResponseWriter, r *http.Request) {
	var in finance.AssessmentInput
	if err := decode(w, r, &in); err != nil {
		h.writeError(w, err)
		return
	}
	a := finance.Assess(in)
	labels := words(
		"health_cover", a.Health.Cover,
		"health_premium", a.Health.Premium,
		"term_cover", a.Term.Cover,
		"term_premium", a.Term.Premium,
	)
	writeJSON(w, http.StatusOK, calculation{Result: a, Words: labels})
}

func (h *Handler) Dime(w http.ResponseWriter, r *http.Request) {
	var in finance.DimeInput
	if err := decode(w, r, &in); err != nil {
		h.writeError(w, err)
		return
	}
	g := finance.CalculateDimeGap(in)
	writeJSON(w, http.StatusOK, calculation{Result: g, Words: words(
		"total_needs", g.TotalNeeds,
		"gap", g.Gap,
	)})
}

type ledgerReduceRequest struct {
	Entries []ledger.Entry  `json:"entries"`
	Actions []ledger.Action `json:"actions"`
}

type ledgerResponse struct {
	Entries []ledger.Entry `json:"entries"`
	Summary ledger.Summary `json:"summary"`
}

// LedgerReduce applies actions to the caller's entries and returns the new list
func (h *Handler) LedgerReduce(w http.ResponseWriter, r *http.Request) {
	var req ledgerReduceRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	entries, err := ledger.ReduceAll(req.Entries, req.Actions...)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if entries == nil {
		entries = []ledger.Entry{}
	}
	writeJSON(w, http.StatusOK, ledgerResponse{Entries: entries, Summary: ledger.Summarize(entries)})
}

func (h *Handler) LedgerSummary(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Entries []ledger.Entry `json:"entries"`
	}
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	s := ledger.Summarize(req.Entries)
	writeJSON(w, http.StatusOK, calculation{Result: s, Words: words(
		"total_income", s.TotalIncome,
		"total_expenses", s.TotalExpenses,
		"net_savings", s.NetSavings,
	)})
}

// FinScoreReport renders the assessment as a PDF download
func (h *Handler) FinScoreReport(w http.ResponseWriter, r *http.Request) {
	var in finance.AssessmentInput
	if err := decode(w, r, &in); err != nil {
		h.writeError(w, err)
		return
	}
	pdf, err := report.FinScorePDF(finance.Assess(in), h.now())
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="finscore-report.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

// ReferenceRate suggests a default savings rate from the configured feed
func (h *Handler) ReferenceRate(w http.ResponseWriter, r *http.Request) {
	rate, err := h.rates.Rate(r.Context())
	if err != nil {
		h.log.Warnf("Failed to get reference rate: %v", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Message: "reference rate unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"rate": rate})
}
