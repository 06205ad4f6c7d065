// Package grpcserver implements the Execute RPC handler: admission
// control, coordinator construction, and gRPC status mapping for the
// two distinguished failure classes the REDESIGN FLAGS call for.
package grpcserver

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dcodex/sandboxrunner/internal/admission"
	"github.com/dcodex/sandboxrunner/internal/coordinator"
	"github.com/dcodex/sandboxrunner/internal/metrics"
	"github.com/dcodex/sandboxrunner/internal/pb"
	"github.com/dcodex/sandboxrunner/internal/sandbox"
)

// Server implements pb.SandboxServer.
type Server struct {
	orchestrator *sandbox.Orchestrator
	gate         *admission.Gate
	logger       zerolog.Logger
}

// New builds a Server around an already-constructed orchestrator and the
// process-wide admission gate.
func New(orchestrator *sandbox.Orchestrator, gate *admission.Gate, logger zerolog.Logger) *Server {
	return &Server{orchestrator: orchestrator, gate: gate, logger: logger}
}

// Execute admits the request against the gate, then hands off to a fresh
// per-RPC Coordinator. Admission denial is a resource-exhausted status
// returned before any stream message, per spec.md §4.6. Each admitted job
// gets a correlation ID carried only in log lines, the same way the
// teacher's worker pool logged a per-job ID alongside its queue depth.
func (s *Server) Execute(req *pb.CodeRequest, stream pb.SandboxExecuteServer) error {
	jobID := uuid.NewString()

	if !s.gate.Admit() {
		metrics.AdmissionRejectedTotal.Inc()
		s.logger.Warn().Str("job_id", jobID).Str("language", req.Language).Msg("admission rejected")
		return status.Error(codes.ResourceExhausted, "too many active sandboxes")
	}

	s.logger.Info().Str("job_id", jobID).Str("language", req.Language).Msg("job admitted")
	coord := coordinator.New(s.orchestrator, s.gate)
	err := mapError(coord.Run(stream, req.Language, req.Code))
	if err != nil {
		s.logger.Warn().Str("job_id", jobID).Err(err).Msg("job finished with error")
	} else {
		s.logger.Info().Str("job_id", jobID).Msg("job finished")
	}
	return err
}

func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, coordinator.ErrUnsupportedLanguage):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, coordinator.ErrSpawnFailure):
		return status.Error(codes.Internal, err.Error())
	default:
		// Typically a failed stream.Send from a disconnected client;
		// the coordinator has already torn down, nothing more to map.
		return err
	}
}
