package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/sowforge/internal/ratecard/domain"
	"github.com/smallbiznis/sowforge/internal/ratecard/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newService(t *testing.T) domain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Entry{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.NewRepository(db),
	})
}

func TestCreateAndSnapshot(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateRequest{
		RoleName:   "Tech - Head Of - Senior Project Management",
		HourlyRate: 365,
	})
	require.NoError(t, err)
	assert.True(t, created.Mandatory)

	_, err = svc.Create(ctx, domain.CreateRequest{
		RoleName:   "Creative - Senior Designer",
		HourlyRate: 120,
	})
	require.NoError(t, err)

	catalog, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, catalog, 2)
}

func TestCreateRejectsDuplicateRole(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateRequest{RoleName: "Creative - Senior Designer", HourlyRate: 120})
	require.NoError(t, err)

	// Same role after normalization, different spelling.
	_, err = svc.Create(ctx, domain.CreateRequest{RoleName: "CREATIVE  Senior   Designer", HourlyRate: 150})
	assert.ErrorIs(t, err, domain.ErrDuplicateRole)
}

func TestCreateValidatesInput(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateRequest{RoleName: "  ", HourlyRate: 120})
	assert.ErrorIs(t, err, domain.ErrInvalidRoleName)

	_, err = svc.Create(ctx, domain.CreateRequest{RoleName: "Creative - Senior Designer", HourlyRate: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidHourlyRate)
}

func TestUpdateEntry(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateRequest{RoleName: "Creative - Senior Designer", HourlyRate: 120})
	require.NoError(t, err)

	newRate := 140.0
	updated, err := svc.Update(ctx, domain.UpdateRequest{ID: created.ID, HourlyRate: &newRate})
	require.NoError(t, err)
	assert.Equal(t, 140.0, updated.HourlyRate)

	_, err = svc.Update(ctx, domain.UpdateRequest{ID: "not-an-id", HourlyRate: &newRate})
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestUpdateRejectsRenameOntoExistingRole(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateRequest{RoleName: "Creative - Senior Designer", HourlyRate: 120})
	require.NoError(t, err)
	second, err := svc.Create(ctx, domain.CreateRequest{RoleName: "Creative - Junior Designer", HourlyRate: 90})
	require.NoError(t, err)

	rename := "Creative - Senior Designer"
	_, err = svc.Update(ctx, domain.UpdateRequest{ID: second.ID, RoleName: &rename})
	assert.ErrorIs(t, err, domain.ErrDuplicateRole)
}

func TestDeleteEntry(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateRequest{RoleName: "Creative - Senior Designer", HourlyRate: 120})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), domain.ErrNotFound)
}
