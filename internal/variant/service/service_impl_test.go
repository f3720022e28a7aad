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
	valuerepo "github.com/smallbiznis/mall/internal/optionvalue/repository"
	productdomain "github.com/smallbiznis/mall/internal/product/domain"
	productrepo "github.com/smallbiznis/mall/internal/product/repository"
	optiondomain "github.com/smallbiznis/mall/internal/productoption/domain"
	optionrepo "github.com/smallbiznis/mall/internal/productoption/repository"
	"github.com/smallbiznis/mall/internal/tenant"
	"github.com/smallbiznis/mall/internal/variant/domain"
	variantrepo "github.com/smallbiznis/mall/internal/variant/repository"
	"github.com/smallbiznis/mall/pkg/globalid"
	"github.com/smallbiznis/mall/pkg/optional"
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
	primary *domain.Variant
	option  *optiondomain.ProductOption
	valueS  *valuedomain.ProductOptionValue
	valueM  *valuedomain.ProductOptionValue
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
		&valuedomain.ProductOptionValue{},
		&valuedomain.ProductOptionValueTranslation{},
		&domain.Variant{},
		&domain.VariantOptionValue{},
	))

	node, err := snowflake.NewNode(2)
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
		Repo:        variantrepo.Provide(),
		ProductRepo: productrepo.Provide(),
		OptionRepo:  optionrepo.Provide(),
		ValueRepo:   valuerepo.Provide(),
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

	primary := &domain.Variant{
		ID:          node.Generate().Int64(),
		OrgID:       scope.OrgID.Int64(),
		ProductID:   product.ID,
		Slug:        "primarytoken",
		Currency:    "USD",
		IsPrimary:   true,
		IsPublished: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, db.Create(primary).Error)

	option := &optiondomain.ProductOption{
		ID:        node.Generate().Int64(),
		OrgID:     scope.OrgID.Int64(),
		ProductID: product.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(option).Error)

	valueS := &valuedomain.ProductOptionValue{
		ID:        node.Generate().Int64(),
		OrgID:     scope.OrgID.Int64(),
		OptionID:  option.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(valueS).Error)

	valueM := &valuedomain.ProductOptionValue{
		ID:        node.Generate().Int64(),
		OrgID:     scope.OrgID.Int64(),
		OptionID:  option.ID,
		SortKey:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(valueM).Error)

	return &fixture{
		svc:     svc,
		db:      db,
		node:    node,
		fake:    fake,
		scope:   scope,
		product: product,
		primary: primary,
		option:  option,
		valueS:  valueS,
		valueM:  valueM,
	}
}

func (f *fixture) productGID() string { return globalid.Encode("Product", f.product.ID) }
func (f *fixture) valueGID(v *valuedomain.ProductOptionValue) string {
	return globalid.Encode("ProductOptionValue", v.ID)
}

func TestCreateLinksOptionValues(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	sku := "TEE-S"
	v, err := f.svc.Create(ctx, f.scope, domain.CreateRequest{
		ProductID:    f.productGID(),
		SKU:          &sku,
		OptionValues: []string{f.valueGID(f.valueS)},
	})
	require.NoError(t, err)
	assert.False(t, v.IsPrimary)
	assert.Equal(t, "USD", v.Currency)
	require.NotNil(t, v.SKU)
	assert.Equal(t, "TEE-S", *v.SKU)

	ids, err := f.svc.SelectedValueIDs(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{f.valueS.ID}, ids)
}

func TestCreateEnforcesOptionCoverage(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	// The product defines one option; zero supplied values is a length
	// mismatch.
	_, err := f.svc.Create(ctx, f.scope, domain.CreateRequest{
		ProductID: f.productGID(),
	})
	require.Error(t, err)
	assert.Equal(t, "The length of the optionValues is invalid!", err.Error())

	// A second option brings the expected count to two; supplying two
	// values of the same option must still be rejected.
	second := &optiondomain.ProductOption{
		ID:        f.node.Generate().Int64(),
		OrgID:     f.scope.OrgID.Int64(),
		ProductID: f.product.ID,
		SortKey:   1,
		CreatedAt: f.fake.Now(),
		UpdatedAt: f.fake.Now(),
	}
	require.NoError(t, f.db.Create(second).Error)

	_, err = f.svc.Create(ctx, f.scope, domain.CreateRequest{
		ProductID:    f.productGID(),
		OptionValues: []string{f.valueGID(f.valueS), f.valueGID(f.valueM)},
	})
	require.Error(t, err)
	assert.Equal(t, "The optionValues is invalid!", err.Error())

	require.NoError(t, f.db.Exec("UPDATE product_options SET deleted_at = ? WHERE id = ?", f.fake.Now(), second.ID).Error)

	// A malformed value id.
	_, err = f.svc.Create(ctx, f.scope, domain.CreateRequest{
		ProductID:    f.productGID(),
		OptionValues: []string{"garbage"},
	})
	require.Error(t, err)
	assert.Equal(t, "The optionValues is invalid!", err.Error())

	// A value that does not exist.
	ghost := globalid.Encode("ProductOptionValue", f.node.Generate().Int64())
	_, err = f.svc.Create(ctx, f.scope, domain.CreateRequest{
		ProductID:    f.productGID(),
		OptionValues: []string{ghost},
	})
	require.Error(t, err)
	assert.Equal(t, "The optionValues is invalid!", err.Error())
}

func TestCreateRejectsDuplicateSKU(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	sku := "TEE-S"
	_, err := f.svc.Create(ctx, f.scope, domain.CreateRequest{
		ProductID:    f.productGID(),
		SKU:          &sku,
		OptionValues: []string{f.valueGID(f.valueS)},
	})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, f.scope, domain.CreateRequest{
		ProductID:    f.productGID(),
		SKU:          &sku,
		OptionValues: []string{f.valueGID(f.valueM)},
	})
	require.Error(t, err)
	assert.Equal(t, "The sku is already in use!", err.Error())
}

func TestUpdateRejectsPrimary(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Update(context.Background(), f.scope, domain.UpdateRequest{
		ID:           globalid.Encode("Variant", f.primary.ID),
		ProductID:    f.productGID(),
		OptionValues: []string{f.valueGID(f.valueS)},
	})
	require.Error(t, err)
	assert.Equal(t, "This operation is not allowed!", err.Error())
}

func TestUpdateReplacesLinksAndClearsSKU(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	sku := "TEE-S"
	v, err := f.svc.Create(ctx, f.scope, domain.CreateRequest{
		ProductID:    f.productGID(),
		SKU:          &sku,
		OptionValues: []string{f.valueGID(f.valueS)},
	})
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, f.scope, domain.UpdateRequest{
		ID:           globalid.Encode("Variant", v.ID),
		ProductID:    f.productGID(),
		SKU:          optional.Null[string](),
		OptionValues: []string{f.valueGID(f.valueM)},
	})
	require.NoError(t, err)
	assert.Nil(t, updated.SKU)

	ids, err := f.svc.SelectedValueIDs(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{f.valueM.ID}, ids)

	// The old link is soft-deleted, not gone.
	var total int64
	require.NoError(t, f.db.Model(&domain.VariantOptionValue{}).
		Where("variant_id = ?", v.ID).Count(&total).Error)
	assert.Equal(t, int64(2), total)
}

func TestUpdateRejectsVariantFromOtherProduct(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	now := f.fake.Now()

	other := &productdomain.Product{
		ID:        f.node.Generate().Int64(),
		OrgID:     f.scope.OrgID.Int64(),
		Slug:      "hoodie",
		CanSearch: true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, f.db.Create(other).Error)

	v, err := f.svc.Create(ctx, f.scope, domain.CreateRequest{
		ProductID:    f.productGID(),
		OptionValues: []string{f.valueGID(f.valueS)},
	})
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, f.scope, domain.UpdateRequest{
		ID:        globalid.Encode("Variant", v.ID),
		ProductID: globalid.Encode("Product", other.ID),
	})
	require.Error(t, err)
	assert.Equal(t, "Can not find this variant!", err.Error())
}

func TestDeleteBatchFlagsPrimaryYetDeletesIt(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	secondary, err := f.svc.Create(ctx, f.scope, domain.CreateRequest{
		ProductID:    f.productGID(),
		OptionValues: []string{f.valueGID(f.valueS)},
	})
	require.NoError(t, err)

	primaryGID := globalid.Encode("Variant", f.primary.ID)
	secondaryGID := globalid.Encode("Variant", secondary.ID)

	report, err := f.svc.DeleteBatch(ctx, f.scope, []string{primaryGID, secondaryGID})
	require.NoError(t, err)
	assert.Equal(t, []string{primaryGID}, report.InProtected)
	assert.ElementsMatch(t, []string{primaryGID, secondaryGID}, report.Done)
	assert.Empty(t, report.NotFound)
	assert.Empty(t, report.Error)

	var live int64
	require.NoError(t, f.db.Model(&domain.Variant{}).
		Where("product_id = ? AND deleted_at IS NULL", f.product.ID).Count(&live).Error)
	assert.Zero(t, live)
}

func TestGetVisibleRequiresVariantAndProductPublished(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	v, err := f.svc.Create(ctx, f.scope, domain.CreateRequest{
		ProductID:    f.productGID(),
		OptionValues: []string{f.valueGID(f.valueS)},
	})
	require.NoError(t, err)
	gid := globalid.Encode("Variant", v.ID)

	// Fresh secondary variants are unpublished.
	_, err = f.svc.GetVisible(ctx, f.scope, gid)
	require.Error(t, err)
	assert.Equal(t, "Bad Request!", err.Error())

	published := optional.Of(true)
	_, err = f.svc.Update(ctx, f.scope, domain.UpdateRequest{
		ID:           gid,
		ProductID:    f.productGID(),
		IsPublished:  published,
		OptionValues: []string{f.valueGID(f.valueS)},
	})
	require.NoError(t, err)

	_, err = f.svc.GetVisible(ctx, f.scope, gid)
	assert.NoError(t, err)

	// Unpublishing the parent hides the variant again.
	require.NoError(t, f.db.Model(&productdomain.Product{}).
		Where("id = ?", f.product.ID).Update("is_published", false).Error)

	_, err = f.svc.GetVisible(ctx, f.scope, gid)
	require.Error(t, err)
	assert.Equal(t, "Bad Request!", err.Error())
}

func TestListVisibleFiltersUnpublished(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	published := true
	_, err := f.svc.Create(ctx, f.scope, domain.CreateRequest{
		ProductID:    f.productGID(),
		IsPublished:  &published,
		OptionValues: []string{f.valueGID(f.valueS)},
	})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, f.scope, domain.CreateRequest{
		ProductID:    f.productGID(),
		OptionValues: []string{f.valueGID(f.valueM)},
	})
	require.NoError(t, err)

	// Dashboard: primary + both secondaries.
	_, total, err := f.svc.List(ctx, f.scope, domain.ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	// Public: primary and the published secondary.
	_, total, err = f.svc.ListVisible(ctx, f.scope, domain.ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}
