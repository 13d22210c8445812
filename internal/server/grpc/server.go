package grpc

import (
	"context"
	"net"

	"github.com/godiecl/fivet-grpc/internal/logging"
	pb "github.com/godiecl/fivet-grpc/internal/proto"
	"github.com/godiecl/fivet-grpc/internal/server/models"
	"google.golang.org/grpc"
)

// AccountService is the persona management the server exposes.
type AccountService interface {
	Authenticate(ctx context.Context, login, password string) (*models.Persona, bool, error)
	Add(ctx context.Context, p *models.Persona, password string) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*models.Persona, bool, error)
}

// TokenIssuer mints access tokens and resolves them back to persona ids.
type TokenIssuer interface {
	Issue(personaID int64) (string, error)
	PersonaID(token string) (int64, error)
}

type GRPCServer struct {
	pb.UnimplementedFivetServiceServer
	address  string
	accounts AccountService
	tokens   TokenIssuer
	logger   logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, accounts AccountService, tokens TokenIssuer) *GRPCServer {
	if l == nil {
		l = logging.Nop{}
	}
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		accounts: accounts,
		tokens:   tokens,
	}
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	pb.RegisterFivetServiceServer(srv, s)

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(context.Background(), "stopping gRPC server")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	<-stopped
	return nil
}
