// Package services contains server-side business logic. AuthController
// manages personas and checks their credentials; TokenService mints and
// validates the access tokens handed out after a successful login.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/godiecl/fivet-grpc/internal/dbx"
	"github.com/godiecl/fivet-grpc/internal/logging"
	"github.com/godiecl/fivet-grpc/internal/server/auth"
	"github.com/godiecl/fivet-grpc/internal/server/models"
	"github.com/godiecl/fivet-grpc/internal/server/repositories"
	"github.com/godiecl/fivet-grpc/internal/server/repositories/personas"
	"github.com/godiecl/fivet-grpc/internal/server/repositories/repomanager"
)

// dummyPassword is hashed once per controller so unknown logins cost the
// same verification work as known ones.
const dummyPassword = "dummy_password_for_timing_attack_prevention"

// AuthController looks personas up by login, verifies their passwords and
// manages their lifecycle.
type AuthController struct {
	repo   personas.Repository
	hasher auth.PasswordHasher
	log    logging.Logger

	// db is set when the controller opened the connection itself.
	db *sql.DB

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthController builds a controller over an existing repository. A nil
// hasher means auth.DefaultArgon2id.
func NewAuthController(repo personas.Repository, hasher auth.PasswordHasher, logger logging.Logger) *AuthController {
	if logger == nil {
		logger = logging.Nop{}
	}
	if hasher == nil {
		hasher = auth.DefaultArgon2id
	}
	return &AuthController{
		repo:   repo,
		hasher: hasher,
		log:    logger.With("module", "auth_controller"),
	}
}

// OpenAuthController connects to the database described by dsn and
// provisions the personas table. With initialize set the table is dropped
// and recreated, destroying stored personas; otherwise pending migrations
// are applied. Close releases the connection.
func OpenAuthController(ctx context.Context, dsn string, initialize bool, hasher auth.PasswordHasher, logger logging.Logger) (*AuthController, error) {
	if logger == nil {
		logger = logging.Nop{}
	}

	db, dialect, err := dbx.Open(ctx, dsn)
	if err != nil {
		return nil, err
	}

	rm := repomanager.New(dialect, logger)
	if initialize {
		err = rm.ResetSchema(ctx, db)
	} else {
		err = rm.RunMigrations(ctx, db)
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("provision schema: %w", err)
	}

	repo, err := rm.Personas(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	c := NewAuthController(repo, hasher, logger)
	c.db = db
	c.log.Info(ctx, "storage ready", "engine", dialect.Name, "initialized", initialize)
	return c, nil
}

// Close releases the connection opened by OpenAuthController. It is a no-op
// for controllers built with NewAuthController.
func (c *AuthController) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// RetrieveByLogin finds the live persona whose login id, or failing that
// whose email, equals login.
func (c *AuthController) RetrieveByLogin(ctx context.Context, login string) (*models.Persona, bool, error) {
	if login == "" {
		return nil, false, nil
	}

	p, ok, err := c.repo.GetBy(ctx, personas.AttrLoginID, login)
	if err != nil || ok {
		return p, ok, err
	}

	return c.repo.GetBy(ctx, personas.AttrEmail, login)
}

// Authenticate returns the persona when login resolves to one and password
// matches its hash. An unknown login and a wrong password both yield
// ok == false and no error.
func (c *AuthController) Authenticate(ctx context.Context, login, password string) (*models.Persona, bool, error) {
	p, ok, err := c.RetrieveByLogin(ctx, login)
	if err != nil {
		return nil, false, err
	}

	if !ok {
		c.burnVerification(password)
		c.log.Info(ctx, "authentication failed: not found", "login", login)
		return nil, false, nil
	}

	match, err := c.hasher.Verify(password, p.PasswordHash)
	if err != nil {
		c.log.Error(ctx, "stored password hash is unreadable", "id", p.ID, "error", err)
		return nil, false, fmt.Errorf("verify password: %w", err)
	}
	if !match {
		c.log.Info(ctx, "authentication failed: wrong password", "login", login)
		return nil, false, nil
	}

	c.log.Debug(ctx, "authenticated", "id", p.ID)
	return p, true, nil
}

// burnVerification verifies password against a throwaway hash.
func (c *AuthController) burnVerification(password string) {
	c.dummyOnce.Do(func() {
		c.dummyHash, _ = c.hasher.Hash(dummyPassword)
	})
	if c.dummyHash != "" {
		_, _ = c.hasher.Verify(password, c.dummyHash)
	}
}

// Add hashes password into p.PasswordHash and stores p. The plaintext is
// neither stored nor logged.
func (c *AuthController) Add(ctx context.Context, p *models.Persona, password string) error {
	hash, err := c.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	p.PasswordHash = hash

	if err := c.repo.Save(ctx, p); err != nil {
		if repositories.IsUniqueViolation(err) {
			c.log.Warn(ctx, "persona rejected: login id or email already taken",
				"login_id", p.LoginID, "email", p.Email)
		} else {
			c.log.Error(ctx, "persona not saved", "error", err)
		}
		return err
	}

	c.log.Info(ctx, "persona added", "id", p.ID)
	return nil
}

// Delete soft-deletes the persona with the given id.
func (c *AuthController) Delete(ctx context.Context, id int64) error {
	if err := c.repo.Delete(ctx, id); err != nil {
		return err
	}
	c.log.Info(ctx, "persona deleted", "id", id)
	return nil
}

// Get returns the live persona with the given id.
func (c *AuthController) Get(ctx context.Context, id int64) (*models.Persona, bool, error) {
	return c.repo.Get(ctx, id)
}
