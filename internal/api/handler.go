// Package api serves validator queries over REST and reports liveness over
// gRPC health checks.
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/roadledger/internal/ledger"
	"github.com/goodnatureofminers/roadledger/internal/model"
	"github.com/goodnatureofminers/roadledger/internal/validator"
)

// DefaultRadius applies when /v1/events omits radius.
const DefaultRadius = 100.0

// Handler maps REST routes onto node queries run through a Runner.
type Handler struct {
	node      Node
	loop      Runner
	logger    *zap.Logger
	marshaler gwruntime.Marshaler
}

// NewHandler builds a Handler.
func NewHandler(node Node, loop Runner, logger *zap.Logger) (*Handler, error) {
	if node == nil {
		return nil, errors.New("api node is required")
	}
	if loop == nil {
		return nil, errors.New("api runner is required")
	}
	return &Handler{node: node, loop: loop, logger: logger, marshaler: &gwruntime.JSONBuiltin{}}, nil
}

// Register installs the routes on mux.
func (h *Handler) Register(mux *gwruntime.ServeMux) error {
	routes := []struct {
		method  string
		pattern string
		handler gwruntime.HandlerFunc
	}{
		{http.MethodGet, "/v1/vehicles", h.getVehicles},
		{http.MethodGet, "/v1/vehicles/{id}", h.getVehicle},
		{http.MethodPost, "/v1/vehicles", h.postVehicle},
		{http.MethodPost, "/v1/reports", h.postReport},
		{http.MethodGet, "/v1/chain", h.getChain},
		{http.MethodGet, "/v1/chain/tip", h.getTip},
		{http.MethodGet, "/v1/blocks/{height}", h.getBlock},
		{http.MethodGet, "/v1/events", h.getEvents},
		{http.MethodGet, "/v1/events/{id}", h.getEvent},
		{http.MethodGet, "/v1/stats", h.getStats},
	}
	for _, r := range routes {
		if err := mux.HandlePath(r.method, r.pattern, r.handler); err != nil {
			return fmt.Errorf("register %s %s: %w", r.method, r.pattern, err)
		}
	}
	return nil
}

func (h *Handler) getVehicle(w http.ResponseWriter, r *http.Request, params map[string]string) {
	var (
		v  ledger.Vehicle
		ok bool
	)
	if !h.run(w, r, func() { v, ok = h.node.Vehicle(params["id"]) }) {
		return
	}
	if !ok {
		h.fail(w, http.StatusNotFound, fmt.Errorf("vehicle %q not registered", params["id"]))
		return
	}
	h.write(w, http.StatusOK, newVehicleView(v))
}

func (h *Handler) getVehicles(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var vehicles []ledger.Vehicle
	if !h.run(w, r, func() { vehicles = h.node.Vehicles() }) {
		return
	}
	out := make([]vehicleView, len(vehicles))
	for i, v := range vehicles {
		out[i] = newVehicleView(v)
	}
	h.write(w, http.StatusOK, out)
}

func (h *Handler) postVehicle(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var req registerRequest
	if err := h.marshaler.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, http.StatusBadRequest, fmt.Errorf("decode registration: %w", err))
		return
	}
	var err error
	if !h.run(w, r, func() { err = h.node.Register(req.VehicleID, req.PublicKey) }) {
		return
	}
	if err != nil {
		h.fail(w, http.StatusBadRequest, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) postReport(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var req reportRequest
	if err := h.marshaler.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, http.StatusBadRequest, fmt.Errorf("decode report: %w", err))
		return
	}
	if !h.run(w, r, func() { h.node.SubmitReport(req.report()) }) {
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) getTip(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var tip model.Block
	if !h.run(w, r, func() { tip = h.node.Tip() }) {
		return
	}
	h.write(w, http.StatusOK, newBlockView(tip))
}

func (h *Handler) getChain(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var blocks []model.Block
	if !h.run(w, r, func() { blocks = h.node.Chain() }) {
		return
	}
	out := make([]blockView, len(blocks))
	for i, b := range blocks {
		out[i] = newBlockView(b)
	}
	h.write(w, http.StatusOK, out)
}

func (h *Handler) getBlock(w http.ResponseWriter, r *http.Request, params map[string]string) {
	height, err := strconv.ParseUint(params["height"], 10, 64)
	if err != nil {
		h.fail(w, http.StatusBadRequest, fmt.Errorf("height %q: %w", params["height"], err))
		return
	}
	var (
		b  model.Block
		ok bool
	)
	if !h.run(w, r, func() { b, ok = h.node.Block(height) }) {
		return
	}
	if !ok {
		h.fail(w, http.StatusNotFound, fmt.Errorf("block %d not committed", height))
		return
	}
	h.write(w, http.StatusOK, newBlockView(b))
}

func (h *Handler) getEvents(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	q := r.URL.Query()
	var loc model.Location
	var err error
	if loc.X, err = strconv.ParseFloat(q.Get("x"), 64); err != nil {
		h.fail(w, http.StatusBadRequest, fmt.Errorf("x: %w", err))
		return
	}
	if loc.Y, err = strconv.ParseFloat(q.Get("y"), 64); err != nil {
		h.fail(w, http.StatusBadRequest, fmt.Errorf("y: %w", err))
		return
	}
	radius := DefaultRadius
	if s := q.Get("radius"); s != "" {
		if radius, err = strconv.ParseFloat(s, 64); err != nil || radius < 0 {
			h.fail(w, http.StatusBadRequest, fmt.Errorf("radius %q is not a non-negative number", s))
			return
		}
	}

	var decisions []model.EventDecision
	if !h.run(w, r, func() { decisions = h.node.DecisionsNear(loc, radius) }) {
		return
	}
	out := make([]decisionView, len(decisions))
	for i, d := range decisions {
		out[i] = newDecisionView(d)
	}
	h.write(w, http.StatusOK, out)
}

func (h *Handler) getEvent(w http.ResponseWriter, r *http.Request, params map[string]string) {
	var (
		d  model.EventDecision
		ok bool
	)
	if !h.run(w, r, func() { d, ok = h.node.Decision(params["id"]) }) {
		return
	}
	if !ok {
		h.fail(w, http.StatusNotFound, fmt.Errorf("event %q not decided", params["id"]))
		return
	}
	h.write(w, http.StatusOK, newDecisionView(d))
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var s validator.Stats
	if !h.run(w, r, func() { s = h.node.Stats() }) {
		return
	}
	h.write(w, http.StatusOK, newStatsView(s))
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request, fn func()) bool {
	if err := h.loop.Do(r.Context(), fn); err != nil {
		h.fail(w, http.StatusServiceUnavailable, err)
		return false
	}
	return true
}

func (h *Handler) write(w http.ResponseWriter, status int, v any) {
	body, err := h.marshaler.Marshal(v)
	if err != nil {
		h.logger.Error("response not encoded", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", h.marshaler.ContentType(v))
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		h.logger.Debug("response not written", zap.Error(err))
	}
}

func (h *Handler) fail(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		h.logger.Warn("request failed", zap.Int("status", status), zap.Error(err))
	}
	h.write(w, status, errorView{Error: err.Error()})
}
