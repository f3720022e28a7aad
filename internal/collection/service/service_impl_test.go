package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/mall/internal/collection/domain"
	collectionrepo "github.com/smallbiznis/mall/internal/collection/repository"
	"github.com/smallbiznis/mall/internal/tenant"
	"github.com/smallbiznis/mall/pkg/globalid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func setup(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node, tenant.Scope) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&domain.Collection{},
		&domain.CollectionProduct{},
	))

	node, err := snowflake.NewNode(5)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zaptest.NewLogger(t),
		GenID: node,
		Repo:  collectionrepo.Provide(),
	})

	scope := tenant.Scope{OrgID: node.Generate(), Language: "en"}
	return svc, db, node, scope
}

func TestCreateSlugifiesName(t *testing.T) {
	svc, _, _, scope := setup(t)

	c, err := svc.Create(context.Background(), scope, domain.CreateRequest{
		Name: "  Summer Sale 2025  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Summer Sale 2025", c.Name)
	assert.Equal(t, "summer-sale-2025", c.Slug)
	assert.False(t, c.IsPublished)
}

func TestCreateRequiresName(t *testing.T) {
	svc, _, _, scope := setup(t)

	_, err := svc.Create(context.Background(), scope, domain.CreateRequest{Name: "   "})
	require.Error(t, err)
	assert.Equal(t, "The name is required!", err.Error())
}

func TestCreateRejectsDuplicateSlug(t *testing.T) {
	svc, _, _, scope := setup(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, scope, domain.CreateRequest{Name: "Summer Sale"})
	require.NoError(t, err)

	// Distinct names can still collide after slugification.
	_, err = svc.Create(ctx, scope, domain.CreateRequest{Name: "summer   sale"})
	require.Error(t, err)
	assert.Equal(t, "The slug is already in use!", err.Error())

	// Another organization is free to reuse it.
	other := tenant.Scope{OrgID: scope.OrgID + 1, Language: "en"}
	_, err = svc.Create(ctx, other, domain.CreateRequest{Name: "Summer Sale"})
	assert.NoError(t, err)
}

func TestGetRejectsUnknownID(t *testing.T) {
	svc, _, node, scope := setup(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, scope, "junk")
	require.Error(t, err)
	assert.Equal(t, "Bad Request!", err.Error())

	ghost := globalid.Encode("Collection", node.Generate().Int64())
	_, err = svc.Get(ctx, scope, ghost)
	require.Error(t, err)
	assert.Equal(t, "Bad Request!", err.Error())

	c, err := svc.Create(ctx, scope, domain.CreateRequest{Name: "Featured"})
	require.NoError(t, err)
	got, err := svc.Get(ctx, scope, globalid.Encode("Collection", c.ID))
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
}

func TestListFiltersByPublished(t *testing.T) {
	svc, _, _, scope := setup(t)
	ctx := context.Background()

	published := true
	_, err := svc.Create(ctx, scope, domain.CreateRequest{Name: "Featured", IsPublished: &published})
	require.NoError(t, err)
	_, err = svc.Create(ctx, scope, domain.CreateRequest{Name: "Drafts"})
	require.NoError(t, err)

	_, total, err := svc.List(ctx, scope, domain.ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	items, total, err := svc.List(ctx, scope, domain.ListRequest{IsPublished: &published})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "featured", items[0].Slug)
}

func TestForProductReturnsMemberships(t *testing.T) {
	svc, db, node, scope := setup(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, scope, domain.CreateRequest{Name: "Featured"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, scope, domain.CreateRequest{Name: "Clearance"})
	require.NoError(t, err)

	productID := node.Generate().Int64()
	now := time.Now().UTC()
	require.NoError(t, db.Create(&domain.CollectionProduct{
		ID:           node.Generate().Int64(),
		CollectionID: first.ID,
		ProductID:    productID,
		IsPrimary:    true,
		CreatedAt:    now,
	}).Error)
	require.NoError(t, db.Create(&domain.CollectionProduct{
		ID:           node.Generate().Int64(),
		CollectionID: second.ID,
		ProductID:    productID,
		CreatedAt:    now,
	}).Error)

	memberships, err := svc.ForProduct(ctx, scope, productID)
	require.NoError(t, err)
	assert.Len(t, memberships, 2)

	none, err := svc.ForProduct(ctx, scope, node.Generate().Int64())
	require.NoError(t, err)
	assert.Empty(t, none)
}
