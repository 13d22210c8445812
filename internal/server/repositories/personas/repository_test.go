package personas_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/godiecl/fivet-grpc/internal/common"
	"github.com/godiecl/fivet-grpc/internal/dbx"
	"github.com/godiecl/fivet-grpc/internal/server/migrations"
	"github.com/godiecl/fivet-grpc/internal/server/models"
	"github.com/godiecl/fivet-grpc/internal/server/repositories"
	"github.com/godiecl/fivet-grpc/internal/server/repositories/personas"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) *repositories.SQLRepository[*models.Persona] {
	t.Helper()
	ctx := context.Background()

	db, dialect, err := dbx.Open(ctx, fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	m, err := migrations.New(db, dialect, nil)
	require.NoError(t, err)
	require.NoError(t, m.Up(ctx))

	repo, err := personas.NewRepository(db, nil)
	require.NoError(t, err)
	return repo
}

func newPersona(login, email string) *models.Persona {
	return &models.Persona{
		LoginID:      login,
		DisplayName:  "Persona " + login,
		Email:        email,
		PasswordHash: "$argon2id$placeholder",
	}
}

func TestSaveGet_RoundTrip(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	p := newPersona("130144918", "a@b.cl")
	p.Address = "Av. Angamos 0610"
	require.NoError(t, repo.Save(ctx, p))
	assert.NotZero(t, p.ID)

	got, ok, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, ok)
	if diff := cmp.Diff(p, got); diff != "" {
		t.Fatalf("round trip mismatch (-saved +loaded):\n%s", diff)
	}
}

func TestSave_EmptyAddressIsStoredAsNull(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	p := newPersona("1", "one@b.cl")
	require.NoError(t, repo.Save(ctx, p))

	got, ok, err := repo.GetBy(ctx, personas.AttrLoginID, "1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "", got.Address)
}

func TestSave_IDsAreDistinct(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	a := newPersona("1", "one@b.cl")
	b := newPersona("2", "two@b.cl")
	require.NoError(t, repo.Save(ctx, a))
	require.NoError(t, repo.Save(ctx, b))
	assert.NotEqual(t, a.ID, b.ID)
}

func TestDelete_HidesRowFromEveryRead(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	p := newPersona("130144918", "a@b.cl")
	require.NoError(t, repo.Save(ctx, p))
	require.NoError(t, repo.Delete(ctx, p.ID))

	_, ok, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = repo.GetBy(ctx, personas.AttrEmail, "a@b.cl")
	require.NoError(t, err)
	assert.False(t, ok)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestDelete_MissingOrAlreadyDeleted(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	err := repo.Delete(ctx, 404)
	assert.True(t, errors.Is(err, common.ErrorNotFound))

	p := newPersona("1", "one@b.cl")
	require.NoError(t, repo.Save(ctx, p))
	require.NoError(t, repo.DeleteEntity(ctx, p))
	assert.True(t, p.IsDeleted())

	err = repo.DeleteEntity(ctx, p)
	var nf *repositories.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, p.ID, nf.ID)
}

func TestSave_DuplicateEmailFails(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newPersona("1", "dup@b.cl")))

	err := repo.Save(ctx, newPersona("2", "dup@b.cl"))
	var perr *repositories.PersistenceError
	require.True(t, errors.As(err, &perr))
	assert.True(t, repositories.IsUniqueViolation(err))
}

func TestSave_UniquenessIncludesDeletedRows(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	p := newPersona("1", "one@b.cl")
	require.NoError(t, repo.Save(ctx, p))
	require.NoError(t, repo.Delete(ctx, p.ID))

	err := repo.Save(ctx, newPersona("1", "other@b.cl"))
	assert.True(t, repositories.IsUniqueViolation(err))
}

func TestReads_AreIdempotent(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	p := newPersona("1", "one@b.cl")
	require.NoError(t, repo.Save(ctx, p))

	first, _, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	second, _, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGetAll_OrderedAndExcludesDeleted(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	var saved []*models.Persona
	for i := 1; i <= 3; i++ {
		p := newPersona(fmt.Sprint(i), fmt.Sprintf("p%d@b.cl", i))
		require.NoError(t, repo.Save(ctx, p))
		saved = append(saved, p)
	}
	require.NoError(t, repo.Delete(ctx, saved[1].ID))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, saved[0].ID, all[0].ID)
	assert.Equal(t, saved[2].ID, all[1].ID)
}

func TestUpdate_ChangesColumnsAndKeepsCreatedAt(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	p := newPersona("1", "one@b.cl")
	require.NoError(t, repo.Save(ctx, p))
	created := p.CreatedAt

	p.DisplayName = "Renamed"
	p.Address = "Calle 2"
	require.NoError(t, repo.Update(ctx, p))

	got, ok, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Renamed", got.DisplayName)
	assert.Equal(t, "Calle 2", got.Address)
	assert.True(t, created.Equal(got.CreatedAt))
	assert.False(t, got.UpdatedAt.Before(created))
}

func TestGetBy_UnknownAttribute(t *testing.T) {
	repo := newRepo(t)

	_, _, err := repo.GetBy(context.Background(), "rut", "1")
	assert.ErrorIs(t, err, common.ErrorUnknownAttribute)
}
