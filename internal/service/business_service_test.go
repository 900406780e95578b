package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gladgrade/gladgrade-server/internal/dto"
	"github.com/gladgrade/gladgrade-server/internal/model"
	"github.com/gladgrade/gladgrade-server/internal/repository"
	"github.com/gladgrade/gladgrade-server/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newBusinessService(db *gorm.DB) BusinessService {
	// nil search client keeps the index mirror as a no-op
	return NewBusinessService(repository.NewBusinessRepository(db), NewSearchService(nil))
}

func TestBusinessService_CreateAndTaxonomy(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := newBusinessService(db)

	owner := createUserWithRole(t, db, "sub-biz", model.RoleBusinessOwner)
	actor := actorFor(owner, model.RoleBusinessOwner)

	sector, err := svc.CreateSector(ctx, dto.CreateSectorRequest{Name: "Food & Dining"})
	require.NoError(t, err)

	bt, err := svc.CreateType(ctx, dto.CreateBusinessTypeRequest{SectorID: sector.ID, Name: "Cafe"})
	require.NoError(t, err)

	unknown := bt.ID + 100
	_, err = svc.Create(ctx, actor, dto.CreateBusinessRequest{
		Name:           "Bad Type Cafe",
		BusinessTypeID: &unknown,
	})
	assert.True(t, errors.Is(err, apperror.ErrBadRequest))

	business, err := svc.Create(ctx, actor, dto.CreateBusinessRequest{
		Name:           "Corner Cafe",
		BusinessTypeID: &bt.ID,
		City:           strPtr("Miami"),
	})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, business.OwnerID)
	assert.False(t, business.IsVerified)
}

func TestBusinessService_VerifyAndListMine(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := newBusinessService(db)

	owner := createUserWithRole(t, db, "sub-biz2", model.RoleBusinessOwner)
	other := createUserWithRole(t, db, "sub-biz3", model.RoleBusinessOwner)

	business, err := svc.Create(ctx, actorFor(owner, model.RoleBusinessOwner), dto.CreateBusinessRequest{Name: "Mine"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, actorFor(other, model.RoleBusinessOwner), dto.CreateBusinessRequest{Name: "Theirs"})
	require.NoError(t, err)

	verified, err := svc.Verify(ctx, business.ID, true)
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)

	mine, _, err := svc.ListMine(ctx, actorFor(owner, model.RoleBusinessOwner), pageQuery(1, 10))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Mine", mine[0].Name)
}

func TestBusinessService_UpdateOwnership(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := newBusinessService(db)

	owner := createUserWithRole(t, db, "sub-biz4", model.RoleBusinessOwner)
	other := createUserWithRole(t, db, "sub-biz5", model.RoleBusinessOwner)
	admin := createUserWithRole(t, db, "sub-biz6", model.RoleAdmin)

	business, err := svc.Create(ctx, actorFor(owner, model.RoleBusinessOwner), dto.CreateBusinessRequest{Name: "Original"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, actorFor(other, model.RoleBusinessOwner), business.ID, dto.UpdateBusinessRequest{Name: strPtr("Hijacked")})
	assert.True(t, errors.Is(err, apperror.ErrForbidden))

	updated, err := svc.Update(ctx, actorFor(admin, model.RoleAdmin), business.ID, dto.UpdateBusinessRequest{Name: strPtr("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
}

func TestBusinessService_ListHidesInactive(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := newBusinessService(db)

	owner := createUserWithRole(t, db, "sub-biz7", model.RoleBusinessOwner)
	actor := actorFor(owner, model.RoleBusinessOwner)

	visible, err := svc.Create(ctx, actor, dto.CreateBusinessRequest{Name: "Open"})
	require.NoError(t, err)
	closed, err := svc.Create(ctx, actor, dto.CreateBusinessRequest{Name: "Closed"})
	require.NoError(t, err)

	inactive := false
	_, err = svc.Update(ctx, actor, closed.ID, dto.UpdateBusinessRequest{IsActive: &inactive})
	require.NoError(t, err)

	businesses, _, err := svc.List(ctx, dto.BusinessListQuery{})
	require.NoError(t, err)
	require.Len(t, businesses, 1)
	assert.Equal(t, visible.ID, businesses[0].ID)
}
