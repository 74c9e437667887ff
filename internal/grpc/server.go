package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"kyc-screening/internal/config"
	"kyc-screening/internal/models"
	"kyc-screening/internal/services"
	"kyc-screening/internal/storage"
	"kyc-screening/internal/validation"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const defaultSearchLimit = 50

var _ ScreeningServer = (*ScreeningGRPCServer)(nil)

// ScreeningGRPCServer реализует ScreeningServer поверх сервисов скрининга
type ScreeningGRPCServer struct {
	screening services.ScreeningService
	sanctions services.SanctionsService
}

func NewScreeningGRPCServer(screening services.ScreeningService, sanctions services.SanctionsService) *ScreeningGRPCServer {
	return &ScreeningGRPCServer{
		screening: screening,
		sanctions: sanctions,
	}
}

// ScreenCustomer принимает JSON представление ScreeningRequest и возвращает ScreeningResponse
func (s *ScreeningGRPCServer) ScreenCustomer(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in models.ScreeningRequest
	if err := FromStruct(req, &in); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid screening request: %v", err)
	}

	resp, err := s.screening.ScreenCustomer(ctx, &in)
	if err != nil {
		return nil, toStatus(err, "Failed to screen customer")
	}
	return ToStruct(resp)
}

// GetScreening возвращает скрининг по полю screening_id
func (s *ScreeningGRPCServer) GetScreening(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id := strings.TrimSpace(req.GetFields()["screening_id"].GetStringValue())
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "screening_id is required")
	}

	sc, err := s.screening.GetScreening(ctx, id)
	if err != nil {
		return nil, toStatus(err, "Failed to get screening")
	}
	if sc == nil {
		return nil, status.Errorf(codes.NotFound, "Screening not found")
	}
	return ToStruct(sc)
}

// SearchSanctions ищет по полям query, limit и fuzzy
func (s *ScreeningGRPCServer) SearchSanctions(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()
	query := strings.TrimSpace(fields["query"].GetStringValue())
	if query == "" {
		return nil, status.Error(codes.InvalidArgument, "query is required")
	}
	limit := int(fields["limit"].GetNumberValue())
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	results, err := s.sanctions.Search(ctx, query, limit, fields["fuzzy"].GetBoolValue())
	if err != nil {
		return nil, toStatus(err, "Failed to search sanctions")
	}
	return ToStruct(map[string]any{
		"query":   query,
		"count":   len(results),
		"results": results,
	})
}

// toStatus переводит ошибку сервиса в gRPC статус
func toStatus(err error, message string) error {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		return status.Error(codes.InvalidArgument, verr.Error())
	case errors.Is(err, validation.ErrValidation), errors.Is(err, services.ErrInvalidReview):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	default:
		log.Error().Err(err).Msg(message)
		return status.Error(codes.Internal, message)
	}
}

// ToStruct кодирует модель в google.protobuf.Struct через ее JSON представление
func ToStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return out, nil
}

// FromStruct декодирует google.protobuf.Struct в модель
func FromStruct(s *structpb.Struct, v any) error {
	data, err := json.Marshal(s.AsMap())
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// loggingInterceptor пишет в журнал каждый unary вызов
func loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	event := log.Debug()
	if err != nil {
		event = log.Warn().Err(err)
	}
	event.Str("method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Msg("gRPC call")
	return resp, err
}

// NewGRPCServer создает grpc.Server с зарегистрированным сервисом и reflection API
func NewGRPCServer(server ScreeningServer, opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(loggingInterceptor)}, opts...)
	s := grpc.NewServer(opts...)
	RegisterScreeningServer(s, server)

	// Включаем reflection API для grpcurl и других инструментов
	reflection.Register(s)
	return s
}

// StartGRPCServer запускает gRPC сервер и блокируется до его остановки
func StartGRPCServer(cfg *config.Config, s *grpc.Server) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	log.Info().Int("port", cfg.Server.GRPCPort).Msg("gRPC server listening")
	if err := s.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}
