package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/godiecl/fivet-grpc/internal/client/client"
	"github.com/godiecl/fivet-grpc/internal/client/config"
	"github.com/godiecl/fivet-grpc/internal/common"
)

// ErrUsage is returned for a missing or unknown command.
var ErrUsage = errors.New("usage: fivet-cli [-c file] [-a addr] [-timeout d] [-token t] register|login|whoami|delete|ping")

// Service is the part of client.GRPCClient the commands use.
type Service interface {
	Register(ctx context.Context, r client.Registration) (*client.Account, error)
	Authenticate(ctx context.Context, login, password string) (*client.Account, error)
	GetAccount(ctx context.Context) (*client.Account, error)
	DeleteAccount(ctx context.Context) error
	Ping(ctx context.Context) error
	SetAccessToken(token string)
	AccessToken() string
	Close() error
}

type App struct {
	config  *config.Config
	service Service
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp connects to the server named in c. Prompts are read from in and
// everything the user sees is written to out.
func NewApp(c *config.Config, in io.Reader, out io.Writer) (*App, error) {
	svc, err := client.NewFivetClient(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		return nil, err
	}
	return newApp(c, svc, in, out), nil
}

func newApp(c *config.Config, svc Service, in io.Reader, out io.Writer) *App {
	if c.AccessToken != "" {
		svc.SetAccessToken(c.AccessToken)
	}
	return &App{config: c, service: svc, reader: bufio.NewReader(in), out: out}
}

// Run executes the first positional argument in args as a command.
func (a *App) Run(ctx context.Context, args []string) error {
	defer a.service.Close()

	if len(args) == 0 {
		return ErrUsage
	}

	switch strings.ToLower(args[0]) {
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "whoami":
		return a.WhoAmI(ctx)
	case "delete":
		return a.Delete(ctx)
	case "ping":
		return a.Ping(ctx)
	default:
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
}

func (a *App) Register(ctx context.Context) error {
	var r client.Registration
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Enter login id", &r.LoginID},
		{"Enter display name", &r.DisplayName},
		{"Enter email", &r.Email},
		{"Enter address (optional)", &r.Address},
	}
	for _, f := range fields {
		v, err := GetSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	r.Password = string(password)

	acc, err := a.service.Register(ctx, r)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}

	fmt.Fprintln(a.out, "Registered:")
	a.printAccount(acc)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	login, err := GetSimpleText(a.reader, "Enter login id or email", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	acc, err := a.service.Authenticate(ctx, login, string(password))
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	fmt.Fprintf(a.out, "Welcome, %s\n", acc.DisplayName)
	a.printAccount(acc)
	fmt.Fprintf(a.out, "Access token: %s\n", a.service.AccessToken())
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	if err := a.requireToken(); err != nil {
		return err
	}
	acc, err := a.service.GetAccount(ctx)
	if err != nil {
		return fmt.Errorf("whoami: %w", err)
	}
	a.printAccount(acc)
	return nil
}

func (a *App) Delete(ctx context.Context) error {
	if err := a.requireToken(); err != nil {
		return err
	}
	if err := a.service.DeleteAccount(ctx); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	fmt.Fprintln(a.out, "Account deleted")
	return nil
}

func (a *App) Ping(ctx context.Context) error {
	if err := a.service.Ping(ctx); err != nil {
		return fmt.Errorf("ping %s: %w", a.config.ServerEndpointAddr, err)
	}
	fmt.Fprintf(a.out, "%s is up\n", a.config.ServerEndpointAddr)
	return nil
}

func (a *App) requireToken() error {
	if a.service.AccessToken() == "" {
		return fmt.Errorf("%w: pass -token or set %s", client.ErrUnauthorized, config.EnvToken)
	}
	return nil
}

func (a *App) printAccount(acc *client.Account) {
	if acc == nil {
		return
	}
	fmt.Fprintf(a.out, "  id:       %d\n", acc.ID)
	fmt.Fprintf(a.out, "  login id: %s\n", acc.LoginID)
	fmt.Fprintf(a.out, "  name:     %s\n", acc.DisplayName)
	fmt.Fprintf(a.out, "  email:    %s\n", acc.Email)
	if acc.Address != "" {
		fmt.Fprintf(a.out, "  address:  %s\n", acc.Address)
	}
}
