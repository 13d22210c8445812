package grpc

import (
	"context"
	"errors"

	"github.com/godiecl/fivet-grpc/internal/common"
	pb "github.com/godiecl/fivet-grpc/internal/proto"
	"github.com/godiecl/fivet-grpc/internal/server/models"
	"github.com/godiecl/fivet-grpc/internal/server/repositories"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func toAccountInfo(p *models.Persona) *pb.AccountInfo {
	return &pb.AccountInfo{
		ID:          p.ID,
		LoginID:     p.LoginID,
		DisplayName: p.DisplayName,
		Email:       p.Email,
		Address:     p.Address,
	}
}

func (s *GRPCServer) Authenticate(ctx context.Context, req *pb.AuthenticateRequest) (*pb.AuthenticateResponse, error) {
	if req.Login == "" || req.Password == "" {
		return nil, status.Error(codes.InvalidArgument, "login and password are required")
	}

	p, ok, err := s.accounts.Authenticate(ctx, req.Login, req.Password)
	if err != nil {
		s.logger.Error(ctx, "authentication error", "request_id", requestIDFromContext(ctx), "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "invalid credentials")
	}

	token, err := s.tokens.Issue(p.ID)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &pb.AuthenticateResponse{Account: toAccountInfo(p), AccessToken: token}, nil
}

func (s *GRPCServer) Register(ctx context.Context, req *pb.RegisterRequest) (*pb.RegisterResponse, error) {
	required := []struct{ name, value string }{
		{"login_id", req.LoginID},
		{"display_name", req.DisplayName},
		{"email", req.Email},
		{"password", req.Password},
	}
	for _, f := range required {
		if f.value == "" {
			return nil, status.Errorf(codes.InvalidArgument, "%v: %s", common.ErrorMissingField, f.name)
		}
	}

	p := &models.Persona{
		LoginID:     req.LoginID,
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Address:     req.Address,
	}
	if err := s.accounts.Add(ctx, p, req.Password); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, status.Error(codes.AlreadyExists, "login id or email already registered")
		}
		s.logger.Error(ctx, "registration error", "request_id", requestIDFromContext(ctx), "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	s.logger.Info(ctx, "persona registered", "id", p.ID)
	return &pb.RegisterResponse{Account: toAccountInfo(p)}, nil
}

func (s *GRPCServer) DeleteAccount(ctx context.Context, _ *pb.DeleteAccountRequest) (*pb.DeleteAccountResponse, error) {
	id, ok := personaIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	if err := s.accounts.Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, status.Error(codes.NotFound, "account not found")
		}
		s.logger.Error(ctx, "delete error", "request_id", requestIDFromContext(ctx), "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &pb.DeleteAccountResponse{}, nil
}

func (s *GRPCServer) GetAccount(ctx context.Context, _ *pb.GetAccountRequest) (*pb.GetAccountResponse, error) {
	id, ok := personaIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	p, found, err := s.accounts.Get(ctx, id)
	if err != nil {
		s.logger.Error(ctx, "lookup error", "request_id", requestIDFromContext(ctx), "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}
	if !found {
		return nil, status.Error(codes.NotFound, "account not found")
	}

	return &pb.GetAccountResponse{Account: toAccountInfo(p)}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *pb.PingRequest) (*pb.PingResponse, error) {
	return &pb.PingResponse{Status: "OK"}, nil
}
