package client

import (
	"context"
	"fmt"
	"time"

	"github.com/godiecl/fivet-grpc/internal/common"
	pb "github.com/godiecl/fivet-grpc/internal/proto"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// Account is the client-side view of a registered persona.
type Account struct {
	ID          int64
	LoginID     string
	DisplayName string
	Email       string
	Address     string
}

// Registration holds what is needed to create an account.
type Registration struct {
	LoginID     string
	DisplayName string
	Email       string
	Address     string
	Password    string
}

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      pb.FivetServiceClient
	accessToken string
}

func NewFivetClient(endpointURL string, timeout time.Duration) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}

	conn, err := grpc.NewClient(endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.metadataInterceptor),
	)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = pb.NewFivetServiceClient(conn)
	return c, nil
}

// SetAccessToken sets the token sent with every following call.
func (s *GRPCClient) SetAccessToken(token string) { s.accessToken = token }

// AccessToken returns the token obtained by the last Authenticate.
func (s *GRPCClient) AccessToken() string { return s.accessToken }

func (s *GRPCClient) metadataInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	pairs := []string{common.RequestIDHeaderName, uuid.NewString()}
	if s.accessToken != "" {
		pairs = append(pairs, common.AccessTokenHeaderName, s.accessToken)
	}
	ctx = metadata.AppendToOutgoingContext(ctx, pairs...)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	return invoker(ctx, method, req, reply, cc, opts...)
}

func toAccount(a *pb.AccountInfo) *Account {
	if a == nil {
		return nil
	}
	return &Account{
		ID:          a.ID,
		LoginID:     a.LoginID,
		DisplayName: a.DisplayName,
		Email:       a.Email,
		Address:     a.Address,
	}
}

func (s *GRPCClient) Register(ctx context.Context, r Registration) (*Account, error) {
	resp, err := s.client.Register(ctx, &pb.RegisterRequest{
		LoginID:     r.LoginID,
		DisplayName: r.DisplayName,
		Email:       r.Email,
		Address:     r.Address,
		Password:    r.Password,
	})
	if err != nil {
		return nil, s.mapError(err)
	}
	return toAccount(resp.Account), nil
}

// Authenticate logs in with a login id or email and keeps the returned
// access token for later calls.
func (s *GRPCClient) Authenticate(ctx context.Context, login, password string) (*Account, error) {
	resp, err := s.client.Authenticate(ctx, &pb.AuthenticateRequest{Login: login, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}
	s.accessToken = resp.AccessToken
	return toAccount(resp.Account), nil
}

func (s *GRPCClient) GetAccount(ctx context.Context) (*Account, error) {
	resp, err := s.client.GetAccount(ctx, &pb.GetAccountRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return toAccount(resp.Account), nil
}

func (s *GRPCClient) DeleteAccount(ctx context.Context) error {
	if _, err := s.client.DeleteAccount(ctx, &pb.DeleteAccountRequest{}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &pb.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.AlreadyExists:
		return ErrAlreadyExists
	case codes.NotFound:
		return ErrNotFound
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidInput, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
