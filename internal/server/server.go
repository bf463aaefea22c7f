package server

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strconv"
	"strings"

	"github.com/iwvelando/deposit-calculator/internal/calc"
	"github.com/iwvelando/deposit-calculator/internal/filter"
	"github.com/iwvelando/deposit-calculator/internal/input"
	"github.com/iwvelando/deposit-calculator/internal/store"
	"github.com/iwvelando/deposit-calculator/internal/tablesort"
	"github.com/iwvelando/deposit-calculator/internal/views"
	"github.com/iwvelando/deposit-calculator/pkg/constants"
	"go.uber.org/zap"
)

//go:embed static/*
var staticFiles embed.FS

// Settings are the handler options that do not come from the store.
type Settings struct {
	MaxBodySize            int64
	Version                string
	DefaultWithholdingRate float64
}

type handler struct {
	logger             *zap.Logger
	store              *store.Store
	maxBodySize        int64
	version            string
	defaultWithholding float64

	// one sort state per collection key
	sorts map[string]*tablesort.State
}

// tableSource projects a collection for a request, before sorting.
type tableSource func(r *http.Request) tableResponse

// NewHandler constructs the HTTP handler that serves the web UI and the
// calculator API.
func NewHandler(logger *zap.Logger, st *store.Store, settings Settings) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	maxBodySize := settings.MaxBodySize
	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(settings.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	defaultWithholding := settings.DefaultWithholdingRate
	if defaultWithholding <= 0 {
		defaultWithholding = constants.DefaultWithholdingRate
	}

	h := &handler{
		logger:             logger,
		store:              st,
		maxBodySize:        maxBodySize,
		version:            trimmedVersion,
		defaultWithholding: defaultWithholding,
		sorts: map[string]*tablesort.State{
			constants.InvestmentsKey:    tablesort.NewState(),
			constants.TaxCalcsKey:       tablesort.NewState(),
			constants.DateOffsetCalcKey: tablesort.NewState(),
		},
	}

	mux := http.NewServeMux()

	// Version endpoint for UI metadata
	mux.HandleFunc("GET /api/version", h.handleVersion)

	// Investments
	h.registerCollection(mux, "/api/investments", constants.InvestmentsKey, h.investmentsTable)
	mux.HandleFunc("POST /api/investments", h.handleCreateInvestment)
	mux.HandleFunc("GET /api/investments/options", h.handleInvestmentOptions)

	// 4x1000 calculations
	h.registerCollection(mux, "/api/tax-calcs", constants.TaxCalcsKey, h.taxCalcsTable)
	mux.HandleFunc("POST /api/tax-calcs", h.handleCreateTaxCalc)

	// Date offsets
	h.registerCollection(mux, "/api/date-calcs", constants.DateOffsetCalcKey, h.dateCalcsTable)
	mux.HandleFunc("POST /api/date-calcs", h.handleCreateDateCalc)
	mux.HandleFunc("GET /api/date-calcs/preview", h.handleDatePreview)

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	fileServer := http.FileServer(http.FS(sub))
	mux.Handle("GET /", fileServer)

	return withRequestID(logger, mux)
}

type sortStatus struct {
	Column    int                 `json:"column"`
	Direction tablesort.Direction `json:"direction"`
}

type tableResponse struct {
	Table  tablesort.Table `json:"table"`
	Sort   sortStatus      `json:"sort"`
	Count  int             `json:"count"`
	Totals *filter.Totals  `json:"totals,omitempty"`
}

type createResponse struct {
	Record any `json:"record"`
}

type removeResponse struct {
	Removed bool `json:"removed"`
}

type clearRequest struct {
	Confirm bool `json:"confirm"`
}

type clearResponse struct {
	Cleared bool `json:"cleared"`
}

type sortRequest struct {
	Column int `json:"column"`
}

type errorResponse struct {
	Error  string             `json:"error"`
	Fields []input.FieldError `json:"fields,omitempty"`
}

func (h *handler) registerCollection(mux *http.ServeMux, prefix, key string, source tableSource) {
	state := h.sorts[key]

	mux.HandleFunc("GET "+prefix, func(w http.ResponseWriter, r *http.Request) {
		h.writeJSON(w, http.StatusOK, sorted(source(r), state))
	})

	mux.HandleFunc("DELETE "+prefix+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		op := "server.remove"
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid id %q", r.PathValue("id")), op)
			return
		}
		coll, err := h.store.Collection(key)
		if err != nil {
			h.respondError(w, r, http.StatusNotFound, err.Error(), op)
			return
		}
		removed, err := coll.RemoveByID(id)
		if err != nil {
			h.respondError(w, r, http.StatusInternalServerError, err.Error(), op)
			return
		}
		h.logger.Info("record removed",
			zap.String("op", op),
			zap.String("collection", key),
			zap.Int64("id", id),
			zap.Bool("removed", removed),
		)
		h.writeJSON(w, http.StatusOK, removeResponse{Removed: removed})
	})

	mux.HandleFunc("POST "+prefix+"/clear", func(w http.ResponseWriter, r *http.Request) {
		op := "server.clear"
		var req clearRequest
		if err := h.decode(w, r, &req); err != nil {
			h.respondDecodeError(w, r, err, op)
			return
		}
		coll, err := h.store.Collection(key)
		if err != nil {
			h.respondError(w, r, http.StatusNotFound, err.Error(), op)
			return
		}
		cleared, err := coll.Clear(store.ConfirmFunc(func(string) bool { return req.Confirm }))
		if err != nil {
			h.respondError(w, r, http.StatusInternalServerError, err.Error(), op)
			return
		}
		if cleared {
			state.Reset()
		}
		h.logger.Info("collection clear requested",
			zap.String("op", op),
			zap.String("collection", key),
			zap.Bool("cleared", cleared),
		)
		h.writeJSON(w, http.StatusOK, clearResponse{Cleared: cleared})
	})

	mux.HandleFunc("POST "+prefix+"/sort", func(w http.ResponseWriter, r *http.Request) {
		op := "server.sort"
		var req sortRequest
		if err := h.decode(w, r, &req); err != nil {
			h.respondDecodeError(w, r, err, op)
			return
		}
		resp := source(r)
		if req.Column < 0 || req.Column >= len(resp.Table.Columns) {
			h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("column %d out of range", req.Column), op)
			return
		}
		state.Click(resp.Table, req.Column)
		h.writeJSON(w, http.StatusOK, sorted(resp, state))
	})
}

func sorted(resp tableResponse, state *tablesort.State) tableResponse {
	resp.Table = state.Apply(resp.Table)
	column, dir := state.Active()
	resp.Sort = sortStatus{Column: column, Direction: dir}
	resp.Count = resp.Table.SortableRows()
	return resp
}

func (h *handler) investmentsTable(r *http.Request) tableResponse {
	q := r.URL.Query()
	form := input.FilterForm{
		Institution: q.Get("institution"),
		Rate:        q.Get("rate"),
		MinAmount:   q.Get("minAmount"),
		MaxAmount:   q.Get("maxAmount"),
		MinDays:     q.Get("minDays"),
		MaxDays:     q.Get("maxDays"),
	}
	result := filter.Apply(h.store.Investments.List(), form.Criteria())
	return tableResponse{Table: views.Investments(result), Totals: &result.Totals}
}

func (h *handler) taxCalcsTable(*http.Request) tableResponse {
	return tableResponse{Table: views.TaxCalcs(h.store.TaxCalcs.List())}
}

func (h *handler) dateCalcsTable(*http.Request) tableResponse {
	return tableResponse{Table: views.DateCalcs(h.store.DateCalcs.List())}
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleCreateInvestment(w http.ResponseWriter, r *http.Request) {
	op := "server.handleCreateInvestment"
	var form input.InvestmentForm
	if err := h.decode(w, r, &form); err != nil {
		h.respondDecodeError(w, r, err, op)
		return
	}
	in, err := form.Parse(h.defaultWithholding)
	if err != nil {
		h.respondInputError(w, r, err, op)
		return
	}
	record, err := h.store.AddInvestment(in)
	if err != nil {
		h.respondError(w, r, http.StatusInternalServerError, err.Error(), op)
		return
	}
	h.writeJSON(w, http.StatusCreated, createResponse{Record: record})
}

func (h *handler) handleInvestmentOptions(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, filter.OptionsFor(h.store.Investments.List()))
}

type taxRequest struct {
	Amount string `json:"amount"`
}

func (h *handler) handleCreateTaxCalc(w http.ResponseWriter, r *http.Request) {
	op := "server.handleCreateTaxCalc"
	var req taxRequest
	if err := h.decode(w, r, &req); err != nil {
		h.respondDecodeError(w, r, err, op)
		return
	}
	amount, err := input.ParseTaxAmount(req.Amount)
	if err != nil {
		h.respondInputError(w, r, err, op)
		return
	}
	record, err := h.store.AddTaxCalc(amount)
	if err != nil {
		h.respondError(w, r, http.StatusInternalServerError, err.Error(), op)
		return
	}
	h.writeJSON(w, http.StatusCreated, createResponse{Record: record})
}

func (h *handler) handleCreateDateCalc(w http.ResponseWriter, r *http.Request) {
	op := "server.handleCreateDateCalc"
	var form input.DateForm
	if err := h.decode(w, r, &form); err != nil {
		h.respondDecodeError(w, r, err, op)
		return
	}
	base, days, err := form.Parse()
	if err != nil {
		h.respondInputError(w, r, err, op)
		return
	}
	record, err := h.store.AddDateCalc(base, days)
	if err != nil {
		h.respondInputError(w, r, err, op)
		return
	}
	h.writeJSON(w, http.StatusCreated, createResponse{Record: record})
}

func (h *handler) handleDatePreview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	base, days := input.DateForm{BaseDate: q.Get("base"), Days: q.Get("days")}.Preview()
	h.writeJSON(w, http.StatusOK, map[string]string{
		"preview": calc.PreviewOffset(base, days),
	})
}

// decode reads a JSON body no larger than the configured limit. An empty body
// leaves v unchanged.
func (h *handler) decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (h *handler) respondDecodeError(w http.ResponseWriter, r *http.Request, err error, op string) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		h.respondError(w, r, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), op)
		return
	}
	h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
}

// respondInputError maps rejected input to 400 and anything else to 500.
func (h *handler) respondInputError(w http.ResponseWriter, r *http.Request, err error, op string) {
	var verr *input.ValidationError
	switch {
	case errors.As(err, &verr):
		h.logger.Info("input rejected",
			zap.String("op", op),
			zap.String("requestID", requestID(r)),
			zap.String("error", err.Error()),
		)
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Fields: verr.Fields})
	case errors.Is(err, store.ErrNegativeDays), errors.Is(err, store.ErrMissingBaseDate):
		h.respondError(w, r, http.StatusBadRequest, err.Error(), op)
	default:
		h.respondError(w, r, http.StatusInternalServerError, err.Error(), op)
	}
}

func (h *handler) respondError(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.String("requestID", requestID(r)),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, errorResponse{Error: msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
