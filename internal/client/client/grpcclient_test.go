package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/godiecl/fivet-grpc/internal/common"
	pb "github.com/godiecl/fivet-grpc/internal/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

/*************
 * Fake pb client
 *************/

type fakePB struct {
	lastRegisterReq *pb.RegisterRequest
	lastAuthReq     *pb.AuthenticateRequest

	registerResp *pb.RegisterResponse
	registerErr  error

	authResp *pb.AuthenticateResponse
	authErr  error

	getResp *pb.GetAccountResponse
	getErr  error

	deleteErr error

	pingResp *pb.PingResponse
	pingErr  error
}

func (f *fakePB) Register(ctx context.Context, in *pb.RegisterRequest, opts ...grpc.CallOption) (*pb.RegisterResponse, error) {
	f.lastRegisterReq = in
	return f.registerResp, f.registerErr
}

func (f *fakePB) Authenticate(ctx context.Context, in *pb.AuthenticateRequest, opts ...grpc.CallOption) (*pb.AuthenticateResponse, error) {
	f.lastAuthReq = in
	return f.authResp, f.authErr
}

func (f *fakePB) GetAccount(ctx context.Context, in *pb.GetAccountRequest, opts ...grpc.CallOption) (*pb.GetAccountResponse, error) {
	return f.getResp, f.getErr
}

func (f *fakePB) DeleteAccount(ctx context.Context, in *pb.DeleteAccountRequest, opts ...grpc.CallOption) (*pb.DeleteAccountResponse, error) {
	return &pb.DeleteAccountResponse{}, f.deleteErr
}

func (f *fakePB) Ping(ctx context.Context, in *pb.PingRequest, opts ...grpc.CallOption) (*pb.PingResponse, error) {
	return f.pingResp, f.pingErr
}

func newWithFake(f *fakePB) *GRPCClient {
	return &GRPCClient{client: f}
}

/*************
 * Tests
 *************/

func TestAuthenticate_StoresToken(t *testing.T) {
	f := &fakePB{authResp: &pb.AuthenticateResponse{
		Account:     &pb.AccountInfo{ID: 3, LoginID: "130144918", Email: "a@b.cl"},
		AccessToken: "tok",
	}}
	c := newWithFake(f)

	acc, err := c.Authenticate(context.Background(), "a@b.cl", "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(3), acc.ID)
	assert.Equal(t, "tok", c.AccessToken())
	assert.Equal(t, &pb.AuthenticateRequest{Login: "a@b.cl", Password: "secret"}, f.lastAuthReq)
}

func TestAuthenticate_Unauthorized(t *testing.T) {
	c := newWithFake(&fakePB{authErr: status.Error(codes.Unauthenticated, "invalid credentials")})

	_, err := c.Authenticate(context.Background(), "a@b.cl", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, c.AccessToken())
}

func TestRegister(t *testing.T) {
	f := &fakePB{registerResp: &pb.RegisterResponse{Account: &pb.AccountInfo{ID: 1, Address: "Calle 1"}}}
	c := newWithFake(f)

	acc, err := c.Register(context.Background(), Registration{LoginID: "1", DisplayName: "One", Email: "e", Address: "Calle 1", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "Calle 1", acc.Address)
	assert.Equal(t, "pw", f.lastRegisterReq.Password)
}

func TestMapError(t *testing.T) {
	c := &GRPCClient{}
	tests := []struct {
		in   error
		want error
	}{
		{status.Error(codes.Unauthenticated, "x"), ErrUnauthorized},
		{status.Error(codes.PermissionDenied, "x"), ErrUnauthorized},
		{status.Error(codes.AlreadyExists, "x"), ErrAlreadyExists},
		{status.Error(codes.NotFound, "x"), ErrNotFound},
		{status.Error(codes.InvalidArgument, "email"), ErrInvalidInput},
		{status.Error(codes.Unavailable, "x"), ErrUnavailable},
		{status.Error(codes.DeadlineExceeded, "x"), ErrUnavailable},
	}
	for _, tt := range tests {
		assert.ErrorIs(t, c.mapError(tt.in), tt.want, tt.in.Error())
	}

	err := c.mapError(status.Error(codes.Internal, "boom"))
	assert.ErrorContains(t, err, "rpc error")
	assert.NoError(t, c.mapError(nil))
}

func TestPing(t *testing.T) {
	c := newWithFake(&fakePB{pingResp: &pb.PingResponse{Status: "OK"}})
	assert.NoError(t, c.Ping(context.Background()))

	c = newWithFake(&fakePB{pingResp: &pb.PingResponse{Status: "DEGRADED"}})
	assert.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)

	c = newWithFake(&fakePB{pingErr: errors.New("dial")})
	assert.Error(t, c.Ping(context.Background()))
}

func TestDeleteAndGetAccount(t *testing.T) {
	c := newWithFake(&fakePB{getResp: &pb.GetAccountResponse{Account: &pb.AccountInfo{ID: 9}}})

	acc, err := c.GetAccount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(9), acc.ID)
	assert.NoError(t, c.DeleteAccount(context.Background()))

	c = newWithFake(&fakePB{deleteErr: status.Error(codes.NotFound, "gone")})
	assert.ErrorIs(t, c.DeleteAccount(context.Background()), ErrNotFound)
}

func TestMetadataInterceptor(t *testing.T) {
	c := &GRPCClient{timeout: time.Second}
	c.SetAccessToken("tok")

	err := c.metadataInterceptor(context.Background(), "/m", nil, nil, nil,
		func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
			md, ok := metadata.FromOutgoingContext(ctx)
			require.True(t, ok)
			assert.Equal(t, []string{"tok"}, md.Get(common.AccessTokenHeaderName))
			assert.Len(t, md.Get(common.RequestIDHeaderName), 1)

			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			return nil
		})
	require.NoError(t, err)

	anon := &GRPCClient{}
	_ = anon.metadataInterceptor(context.Background(), "/m", nil, nil, nil,
		func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
			md, _ := metadata.FromOutgoingContext(ctx)
			assert.Empty(t, md.Get(common.AccessTokenHeaderName))
			_, hasDeadline := ctx.Deadline()
			assert.False(t, hasDeadline)
			return nil
		})
}

func TestNewFivetClient_Close(t *testing.T) {
	c, err := NewFivetClient("127.0.0.1:1", time.Second)
	require.NoError(t, err)
	assert.NoError(t, c.Close())
}
