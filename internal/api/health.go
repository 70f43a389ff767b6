package api

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health-check service reported for a validator.
const ServiceName = "roadledger.Validator"

// Health reports NOT_SERVING until the node loop runs.
type Health struct {
	server *health.Server
}

// NewHealth registers a health service on srv.
func NewHealth(srv *grpc.Server) *Health {
	h := &Health{server: health.NewServer()}
	h.server.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	h.server.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	if srv != nil {
		healthpb.RegisterHealthServer(srv, h.server)
	}
	return h
}

// Serving marks the validator ready.
func (h *Health) Serving() {
	h.server.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	h.server.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
}

// Shutdown marks every service NOT_SERVING and ignores later updates.
func (h *Health) Shutdown() {
	h.server.Shutdown()
}

// Server exposes the underlying health implementation.
func (h *Health) Server() healthpb.HealthServer {
	return h.server
}
