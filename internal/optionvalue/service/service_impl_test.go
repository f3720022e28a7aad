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
	"github.com/smallbiznis/mall/internal/optionvalue/domain"
	valuerepo "github.com/smallbiznis/mall/internal/optionvalue/repository"
	productdomain "github.com/smallbiznis/mall/internal/product/domain"
	productrepo "github.com/smallbiznis/mall/internal/product/repository"
	optiondomain "github.com/smallbiznis/mall/internal/productoption/domain"
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
	option  *optiondomain.ProductOption
}

func setup(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&productdomain.Product{},
		&productdomain.ProductTranslation{},
		&optiondomain.ProductOption{},
		&optiondomain.ProductOptionTranslation{},
		&domain.ProductOptionValue{},
		&domain.ProductOptionValueTranslation{},
		&variantdomain.Variant{},
		&variantdomain.VariantOptionValue{},
	))

	node, err := snowflake.NewNode(4)
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
		Repo:        valuerepo.Provide(),
		OptionRepo:  optionrepo.Provide(),
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

	option := &optiondomain.ProductOption{
		ID:        node.Generate().Int64(),
		OrgID:     scope.OrgID.Int64(),
		ProductID: product.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(option).Error)

	return &fixture{
		svc:     svc,
		db:      db,
		node:    node,
		fake:    fake,
		scope:   scope,
		product: product,
		option:  option,
	}
}

func (f *fixture) optionGID() string { return globalid.Encode("ProductOption", f.option.ID) }

func en(name string) []domain.TranslationInput {
	return []domain.TranslationInput{{LanguageCode: "en", Name: name}}
}

func TestCreateRequiresExistingOption(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.scope, domain.CreateRequest{
		OptionID:     "junk",
		Translations: en("Small"),
	})
	require.Error(t, err)
	assert.Equal(t, "Can not find this productOption!", err.Error())

	ghost := globalid.Encode("ProductOption", f.node.Generate().Int64())
	_, err = f.svc.Create(ctx, f.scope, domain.CreateRequest{
		OptionID:     ghost,
		Translations: en("Small"),
	})
	require.Error(t, err)
	assert.Equal(t, "Can not find this productOption!", err.Error())
}

func TestCreateRequiresFullTranslations(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Create(context.Background(), f.scope, domain.CreateRequest{
		OptionID: f.optionGID(),
	})
	require.Error(t, err)
	assert.Equal(t, "The productOptionValue translation (en) is required!", err.Error())
}

func TestUpdateResolvesTargetByOwnID(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	value, err := f.svc.Create(ctx, f.scope, domain.CreateRequest{
		OptionID:     f.optionGID(),
		Translations: en("Small"),
	})
	require.NoError(t, err)

	// The parent option's id is not a value id.
	_, err = f.svc.Update(ctx, f.scope, domain.UpdateRequest{
		ID:           f.optionGID(),
		Translations: en("Medium"),
	})
	require.Error(t, err)
	assert.Equal(t, "Can not find this productOptionValue!", err.Error())

	updated, err := f.svc.Update(ctx, f.scope, domain.UpdateRequest{
		ID:           globalid.Encode("ProductOptionValue", value.ID),
		SortKey:      2,
		Translations: en("Medium"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.SortKey)

	tr, err := f.svc.Translation(ctx, value.ID, "en")
	require.NoError(t, err)
	require.NotNil(t, tr)
	assert.Equal(t, "Medium", tr.Name)

	all, err := f.svc.Translations(ctx, value.ID)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestForOptionLinkedOnly(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	now := f.fake.Now()

	linked, err := f.svc.Create(ctx, f.scope, domain.CreateRequest{
		OptionID:     f.optionGID(),
		Translations: en("Small"),
	})
	require.NoError(t, err)
	unlinked, err := f.svc.Create(ctx, f.scope, domain.CreateRequest{
		OptionID:     f.optionGID(),
		SortKey:      1,
		Translations: en("Medium"),
	})
	require.NoError(t, err)

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
		ValueID:   linked.ID,
		CreatedAt: now,
	}).Error)

	all, err := f.svc.ForOption(ctx, f.option.ID, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, linked.ID, all[0].ID)
	assert.Equal(t, unlinked.ID, all[1].ID)

	public, err := f.svc.ForOption(ctx, f.option.ID, true)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, linked.ID, public[0].ID)

	// Deleting a variant soft-deletes its links, unanchoring the value.
	require.NoError(t, f.db.Exec(
		"UPDATE variant_option_values SET deleted_at = ? WHERE variant_id = ?", now, variant.ID).Error)
	public, err = f.svc.ForOption(ctx, f.option.ID, true)
	require.NoError(t, err)
	assert.Empty(t, public)
}

func TestByIDsScopedToOrg(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	value, err := f.svc.Create(ctx, f.scope, domain.CreateRequest{
		OptionID:     f.optionGID(),
		Translations: en("Small"),
	})
	require.NoError(t, err)

	values, err := f.svc.ByIDs(ctx, f.scope, []int64{value.ID})
	require.NoError(t, err)
	assert.Len(t, values, 1)

	other := tenant.Scope{OrgID: f.node.Generate(), Language: "en"}
	values, err = f.svc.ByIDs(ctx, other, []int64{value.ID})
	require.NoError(t, err)
	assert.Empty(t, values)

	values, err = f.svc.ByIDs(ctx, f.scope, nil)
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestGetVisibleWalksOptionAndProduct(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	value, err := f.svc.Create(ctx, f.scope, domain.CreateRequest{
		OptionID:     f.optionGID(),
		Translations: en("Small"),
	})
	require.NoError(t, err)
	gid := globalid.Encode("ProductOptionValue", value.ID)

	_, err = f.svc.GetVisible(ctx, f.scope, gid)
	assert.NoError(t, err)

	require.NoError(t, f.db.Model(&productdomain.Product{}).
		Where("id = ?", f.product.ID).Update("is_published", false).Error)
	_, err = f.svc.GetVisible(ctx, f.scope, gid)
	require.Error(t, err)
	assert.Equal(t, "Bad Request!", err.Error())
}
