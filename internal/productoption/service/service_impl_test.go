package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/mall/internal/clock"
	"github.com/smallbiznis/mall/internal/config"
	valuedomain "github.com/smallbiznis/mall/internal/optionvalue/domain"
	productdomain "github.com/smallbiznis/mall/internal/product/domain"
	productrepo "github.com/smallbiznis/mall/internal/product/repository"
	"github.com/smallbiznis/mall/internal/productoption/domain"
	optionrepo "github.com/smallbiznis/mall/internal/productoption/repository"
	"github.com/smallbiznis/mall/internal/tenant"
	variantdomain "github.com/smallbiznis/mall/internal/variant/domain"
	"github.com/smallbiznis/mall/pkg/globalid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type fixture struct {
	svc   domain.Service
	db    *gorm.DB
	node  *snowflake.Node
	fake  *clock.FakeClock
	scope tenant.Scope

	product *productdomain.Product
}

func setup(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&productdomain.Product{},
		&productdomain.ProductTranslation{},
		&domain.ProductOption{},
		&domain.ProductOptionTranslation{},
		&valuedomain.ProductOptionValue{},
		&valuedomain.ProductOptionValueTranslation{},
		&variantdomain.Variant{},
		&variantdomain.VariantOptionValue{},
	))

	node, err := snowflake.NewNode(3)
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	holder := config.StaticCatalogConfigHolder(config.CatalogConfig{
		Languages:       []string{"en"},
		DefaultLanguage: "en",
		DefaultCurrency: "USD",
	})

	svc := New(Params{
		DB:          db,
		Log:         zaptest.NewLogger(t),
		GenID:       node,
		Clock:       fake,
		Catalog:     holder,
		Repo:        optionrepo.Provide(),
		ProductRepo: productrepo.Provide(),
	})

	scope := tenant.Scope{OrgID: node.Generate(), Language: "en"}
	now := fake.Now()

	product := &productdomain.Product{
		ID:          node.Generate().Int64(),
		OrgID:       scope.OrgID.Int64(),
		Slug:        "tee",
		CanSearch:   true,
		IsPublished: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, db.Create(product).Error)

	return &fixture{
		svc:     svc,
		db:      db,
		node:    node,
		fake:    fake,
		scope:   scope,
		product: product,
	}
}

func (f *fixture) productGID() string { return globalid.Encode("Product", f.product.ID) }

func en(name string) []domain.TranslationInput {
	return []domain.TranslationInput{{LanguageCode: "en", Name: name}}
}

func TestCreateRequiresExistingProduct(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.scope, domain.CreateRequest{
		ProductID:    "not-an-id",
		Translations: en("Size"),
	})
	require.Error(t, err)
	assert.Equal(t, "Can not find this product!", err.Error())

	ghost := globalid.Encode("Product", f.node.Generate().Int64())
	_, err = f.svc.Create(ctx, f.scope, domain.CreateRequest{
		ProductID:    ghost,
		Translations: en("Size"),
	})
	require.Error(t, err)
	assert.Equal(t, "Can not find this product!", err.Error())
}

func TestCreateRequiresFullTranslations(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.scope, domain.CreateRequest{
		ProductID: f.productGID(),
	})
	require.Error(t, err)
	assert.Equal(t, "The productOption translation (en) is required!", err.Error())

	_, err = f.svc.Create(ctx, f.scope, domain.CreateRequest{
		ProductID:    f.productGID(),
		Translations: en("   "),
	})
	require.Error(t, err)
	assert.Equal(t, "The productOption translation (en) name is required!", err.Error())
}

func TestCreateStoresOptionWithTranslations(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	option, err := f.svc.Create(ctx, f.scope, domain.CreateRequest{
		ProductID:    f.productGID(),
		SortKey:      3,
		Translations: en("  Size  "),
	})
	require.NoError(t, err)
	assert.Equal(t, f.product.ID, option.ProductID)
	assert.Equal(t, 3, option.SortKey)

	tr, err := f.svc.Translation(ctx, option.ID, "en")
	require.NoError(t, err)
	require.NotNil(t, tr)
	assert.Equal(t, "Size", tr.Name)
}

func TestUpdateResolvesTargetByOwnID(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	option, err := f.svc.Create(ctx, f.scope, domain.CreateRequest{
		ProductID:    f.productGID(),
		Translations: en("Size"),
	})
	require.NoError(t, err)

	// The product's own id is not an option id.
	_, err = f.svc.Update(ctx, f.scope, domain.UpdateRequest{
		ID:           f.productGID(),
		Translations: en("Color"),
	})
	require.Error(t, err)
	assert.Equal(t, "Can not find this productOption!", err.Error())

	updated, err := f.svc.Update(ctx, f.scope, domain.UpdateRequest{
		ID:           globalid.Encode("ProductOption", option.ID),
		SortKey:      7,
		Translations: en("Color"),
	})
	require.NoError(t, err)
	assert.Equal(t, 7, updated.SortKey)

	tr, err := f.svc.Translation(ctx, option.ID, "en")
	require.NoError(t, err)
	require.NotNil(t, tr)
	assert.Equal(t, "Color", tr.Name)

	// Upsert keeps a single row per language.
	all, err := f.svc.Translations(ctx, option.ID)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestDeleteBatchCascadesToValuesAndLinks(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	now := f.fake.Now()

	option, err := f.svc.Create(ctx, f.scope, domain.CreateRequest{
		ProductID:    f.productGID(),
		Translations: en("Size"),
	})
	require.NoError(t, err)

	value := &valuedomain.ProductOptionValue{
		ID:        f.node.Generate().Int64(),
		OrgID:     f.scope.OrgID.Int64(),
		OptionID:  option.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, f.db.Create(value).Error)

	variant := &variantdomain.Variant{
		ID:        f.node.Generate().Int64(),
		OrgID:     f.scope.OrgID.Int64(),
		ProductID: f.product.ID,
		Slug:      "token",
		Currency:  "USD",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, f.db.Create(variant).Error)
	require.NoError(t, f.db.Create(&variantdomain.VariantOptionValue{
		ID:        f.node.Generate().Int64(),
		VariantID: variant.ID,
		ValueID:   value.ID,
		CreatedAt: now,
	}).Error)

	gid := globalid.Encode("ProductOption", option.ID)
	report, err := f.svc.DeleteBatch(ctx, f.scope, []string{gid, "garbage"})
	require.NoError(t, err)
	assert.Equal(t, []string{gid}, report.Done)
	assert.Equal(t, []string{"garbage"}, report.Error)

	_, err = f.svc.Get(ctx, f.scope, gid)
	require.Error(t, err)
	assert.Equal(t, "Bad Request!", err.Error())

	var liveValues, liveLinks int64
	require.NoError(t, f.db.Model(&valuedomain.ProductOptionValue{}).
		Where("option_id = ? AND deleted_at IS NULL", option.ID).Count(&liveValues).Error)
	require.NoError(t, f.db.Model(&variantdomain.VariantOptionValue{}).
		Where("option_value_id = ? AND deleted_at IS NULL", value.ID).Count(&liveLinks).Error)
	assert.Zero(t, liveValues)
	assert.Zero(t, liveLinks)
}

func TestGetVisibleRequiresSearchableLiveProduct(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	option, err := f.svc.Create(ctx, f.scope, domain.CreateRequest{
		ProductID:    f.productGID(),
		Translations: en("Size"),
	})
	require.NoError(t, err)
	gid := globalid.Encode("ProductOption", option.ID)

	_, err = f.svc.GetVisible(ctx, f.scope, gid)
	assert.NoError(t, err)

	require.NoError(t, f.db.Model(&productdomain.Product{}).
		Where("id = ?", f.product.ID).Update("can_search", false).Error)
	_, err = f.svc.GetVisible(ctx, f.scope, gid)
	require.Error(t, err)
	assert.Equal(t, "Bad Request!", err.Error())

	require.NoError(t, f.db.Model(&productdomain.Product{}).
		Where("id = ?", f.product.ID).
		Updates(map[string]any{"can_search": true, "is_published": false}).Error)
	_, err = f.svc.GetVisible(ctx, f.scope, gid)
	require.Error(t, err)
	assert.Equal(t, "Bad Request!", err.Error())
}

func TestListFiltersByProductAndName(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.scope, domain.CreateRequest{
		ProductID:    f.productGID(),
		Translations: en("Size"),
	})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, f.scope, domain.CreateRequest{
		ProductID:    f.productGID(),
		SortKey:      1,
		Translations: en("Color"),
	})
	require.NoError(t, err)

	_, total, err := f.svc.List(ctx, f.scope, domain.ListRequest{ProductID: f.productGID()})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	items, total, err := f.svc.List(ctx, f.scope, domain.ListRequest{Name: "col"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)

	_, _, err = f.svc.List(ctx, f.scope, domain.ListRequest{ProductID: "junk"})
	require.Error(t, err)
	assert.Equal(t, "Bad Request!", err.Error())
}
