package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/mall/internal/clock"
	collectiondomain "github.com/smallbiznis/mall/internal/collection/domain"
	collectionrepo "github.com/smallbiznis/mall/internal/collection/repository"
	"github.com/smallbiznis/mall/internal/config"
	optionvaluedomain "github.com/smallbiznis/mall/internal/optionvalue/domain"
	"github.com/smallbiznis/mall/internal/product/domain"
	productrepo "github.com/smallbiznis/mall/internal/product/repository"
	productoptiondomain "github.com/smallbiznis/mall/internal/productoption/domain"
	referencedomain "github.com/smallbiznis/mall/internal/reference/domain"
	referencerepo "github.com/smallbiznis/mall/internal/reference/repository"
	"github.com/smallbiznis/mall/internal/tenant"
	variantdomain "github.com/smallbiznis/mall/internal/variant/domain"
	variantrepo "github.com/smallbiznis/mall/internal/variant/repository"
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
}

func setup(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&referencedomain.ProductPlace{},
		&referencedomain.ProductSupplier{},
		&domain.Product{},
		&domain.ProductTranslation{},
		&productoptiondomain.ProductOption{},
		&productoptiondomain.ProductOptionTranslation{},
		&optionvaluedomain.ProductOptionValue{},
		&optionvaluedomain.ProductOptionValueTranslation{},
		&variantdomain.Variant{},
		&variantdomain.VariantOptionValue{},
		&collectiondomain.Collection{},
		&collectiondomain.CollectionProduct{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	holder := config.StaticCatalogConfigHolder(config.CatalogConfig{
		Languages:       []string{"en"},
		DefaultLanguage: "en",
		DefaultCurrency: "USD",
	})

	svc := New(Params{
		DB:             db,
		Log:            zaptest.NewLogger(t),
		GenID:          node,
		Clock:          fake,
		Catalog:        holder,
		Repo:           productrepo.Provide(),
		VariantRepo:    variantrepo.Provide(),
		CollectionRepo: collectionrepo.Provide(),
		ReferenceRepo:  referencerepo.Provide(),
	})

	return &fixture{
		svc:   svc,
		db:    db,
		node:  node,
		fake:  fake,
		scope: tenant.Scope{OrgID: node.Generate(), Language: "en"},
	}
}

func translationsEN(name string) []domain.TranslationInput {
	return []domain.TranslationInput{{LanguageCode: "en", Name: name}}
}

func TestCreateMintsPrimaryVariant(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	price := 29.99
	sale := 19.99
	published := true
	p, err := f.svc.Create(ctx, f.scope, domain.CreateRequest{
		Slug:            "basic-tee",
		PriceAmount:     &price,
		PriceSaleAmount: &sale,
		IsPublished:     &published,
		Translations:    translationsEN("Basic Tee"),
	})
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "basic-tee", p.Slug)
	assert.True(t, p.CanSearch)

	var variants []variantdomain.Variant
	require.NoError(t, f.db.Where("product_id = ?", p.ID).Find(&variants).Error)
	require.Len(t, variants, 1)

	primary := variants[0]
	assert.True(t, primary.IsPrimary)
	assert.Nil(t, primary.SKU)
	assert.Equal(t, "USD", primary.Currency)
	assert.NotEmpty(t, primary.Slug)
	assert.True(t, primary.IsPublished)
	require.NotNil(t, primary.PriceAmount)
	assert.Equal(t, price, *primary.PriceAmount)
	require.NotNil(t, primary.PriceSaleAmount)
	assert.Equal(t, sale, *primary.PriceSaleAmount)
}

func TestCreateRejectsInvalidSlug(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	for _, slug := range []string{"", "white shirt", `white\shirt`, "s!"} {
		_, err := f.svc.Create(ctx, f.scope, domain.CreateRequest{
			Slug:         slug,
			Translations: translationsEN("Shirt"),
		})
		require.Error(t, err, "slug %q", slug)
		assert.Equal(t, "The slug is invalid!", err.Error())
	}
}

func TestCreateRejectsMissingTranslation(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Create(context.Background(), f.scope, domain.CreateRequest{Slug: "tee"})
	require.Error(t, err)
	assert.Equal(t, "The product translation (en) is required!", err.Error())
}

func TestCreateRejectsNegativePrice(t *testing.T) {
	f := setup(t)

	bad := -1.0
	_, err := f.svc.Create(context.Background(), f.scope, domain.CreateRequest{
		Slug:         "tee",
		PriceAmount:  &bad,
		Translations: translationsEN("Tee"),
	})
	require.Error(t, err)
	assert.Equal(t, "The priceAmount must be a positive number or zero!", err.Error())
}

func TestCreateRejectsDuplicateSlug(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.scope, domain.CreateRequest{
		Slug:         "tee",
		Translations: translationsEN("Tee"),
	})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, f.scope, domain.CreateRequest{
		Slug:         "tee",
		Translations: translationsEN("Another Tee"),
	})
	require.Error(t, err)
	assert.Equal(t, "The slug is already in use!", err.Error())
}

func TestCreatePrimaryCollectionMustBeInSet(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	member := globalid.Encode("Collection", f.node.Generate().Int64())
	outsider := globalid.Encode("Collection", f.node.Generate().Int64())

	_, err := f.svc.Create(ctx, f.scope, domain.CreateRequest{
		Slug:          "tee",
		CollectionID:  &outsider,
		CollectionIDs: []string{member},
		Translations:  translationsEN("Tee"),
	})
	require.Error(t, err)
	assert.Equal(t, "The collectionId must in collectionIds!", err.Error())

	// Validation fires before any write.
	var count int64
	require.NoError(t, f.db.Model(&domain.Product{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateRejectsUnknownCollections(t *testing.T) {
	f := setup(t)

	ghost := globalid.Encode("Collection", f.node.Generate().Int64())
	_, err := f.svc.Create(context.Background(), f.scope, domain.CreateRequest{
		Slug:          "tee",
		CollectionIDs: []string{ghost},
		Translations:  translationsEN("Tee"),
	})
	require.Error(t, err)
	assert.Equal(t, "Can not find some collection!", err.Error())
}

func TestUpdateOptionalFieldSemantics(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	serial := "SN-100"
	p, err := f.svc.Create(ctx, f.scope, domain.CreateRequest{
		Slug:         "tee",
		Serial:       &serial,
		Translations: translationsEN("Tee"),
	})
	require.NoError(t, err)
	id := globalid.Encode("Product", p.ID)

	// An absent serial keeps the stored value.
	updated, err := f.svc.Update(ctx, f.scope, domain.UpdateRequest{
		ID:           id,
		Translations: translationsEN("Tee"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Serial)
	assert.Equal(t, "SN-100", *updated.Serial)
	assert.Equal(t, "tee", updated.Slug)

	// An explicit null clears it.
	updated, err = f.svc.Update(ctx, f.scope, domain.UpdateRequest{
		ID:           id,
		Serial:       nullString(),
		Translations: translationsEN("Tee"),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Serial)

	// The slug is not nullable.
	_, err = f.svc.Update(ctx, f.scope, domain.UpdateRequest{
		ID:           id,
		Slug:         nullString(),
		Translations: translationsEN("Tee"),
	})
	require.Error(t, err)
	assert.Equal(t, "The slug is invalid!", err.Error())
}

func TestUpdateRejectsDuplicateSlug(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.scope, domain.CreateRequest{
		Slug:         "tee",
		Translations: translationsEN("Tee"),
	})
	require.NoError(t, err)

	other, err := f.svc.Create(ctx, f.scope, domain.CreateRequest{
		Slug:         "hoodie",
		Translations: translationsEN("Hoodie"),
	})
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, f.scope, domain.UpdateRequest{
		ID:           globalid.Encode("Product", other.ID),
		Slug:         ofString("tee"),
		Translations: translationsEN("Hoodie"),
	})
	require.Error(t, err)
	assert.Equal(t, "The slug is already in use!", err.Error())

	// Re-submitting its own slug is fine.
	_, err = f.svc.Update(ctx, f.scope, domain.UpdateRequest{
		ID:           globalid.Encode("Product", other.ID),
		Slug:         ofString("hoodie"),
		Translations: translationsEN("Hoodie"),
	})
	assert.NoError(t, err)
}

func TestUpdatePropagatesPublishStateToPrimary(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	p, err := f.svc.Create(ctx, f.scope, domain.CreateRequest{
		Slug:         "tee",
		Translations: translationsEN("Tee"),
	})
	require.NoError(t, err)

	published := ofBool(true)
	price := ofFloat(12.5)
	_, err = f.svc.Update(ctx, f.scope, domain.UpdateRequest{
		ID:           globalid.Encode("Product", p.ID),
		IsPublished:  published,
		PriceAmount:  price,
		Translations: translationsEN("Tee"),
	})
	require.NoError(t, err)

	var primary variantdomain.Variant
	require.NoError(t, f.db.Where("product_id = ? AND is_primary = ?", p.ID, true).First(&primary).Error)
	assert.True(t, primary.IsPublished)
	assert.Nil(t, primary.SKU)
	require.NotNil(t, primary.PriceAmount)
	assert.Equal(t, 12.5, *primary.PriceAmount)
}

func TestTranslationUpsertKeepsOneRowPerLanguage(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	p, err := f.svc.Create(ctx, f.scope, domain.CreateRequest{
		Slug:         "tee",
		Translations: translationsEN("Tee"),
	})
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, f.scope, domain.UpdateRequest{
		ID:           globalid.Encode("Product", p.ID),
		Translations: translationsEN("Tee v2"),
	})
	require.NoError(t, err)

	var rows []domain.ProductTranslation
	require.NoError(t, f.db.Where("product_id = ? AND deleted_at IS NULL", p.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "Tee v2", rows[0].Name)
}

func TestDeleteBatchBuckets(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	p, err := f.svc.Create(ctx, f.scope, domain.CreateRequest{
		Slug:         "tee",
		Translations: translationsEN("Tee"),
	})
	require.NoError(t, err)

	valid := globalid.Encode("Product", p.ID)
	missing := globalid.Encode("Product", f.node.Generate().Int64())
	malformed := "not-a-global-id"

	report, err := f.svc.DeleteBatch(ctx, f.scope, []string{valid, missing, malformed})
	require.NoError(t, err)
	assert.Equal(t, []string{valid}, report.Done)
	assert.Equal(t, []string{missing}, report.NotFound)
	assert.Equal(t, []string{malformed}, report.Error)
	assert.Empty(t, report.InProtected)
	assert.Empty(t, report.InUse)

	// The deleted product is gone from the management surface too.
	_, err = f.svc.Get(ctx, f.scope, valid)
	require.Error(t, err)
	assert.Equal(t, "Bad Request!", err.Error())

	// Its variants went with it.
	var liveVariants int64
	require.NoError(t, f.db.Model(&variantdomain.Variant{}).
		Where("product_id = ? AND deleted_at IS NULL", p.ID).Count(&liveVariants).Error)
	assert.Zero(t, liveVariants)
}

func TestVisibilityGate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	p, err := f.svc.Create(ctx, f.scope, domain.CreateRequest{
		Slug:         "tee",
		Translations: translationsEN("Tee"),
	})
	require.NoError(t, err)
	id := globalid.Encode("Product", p.ID)

	// Unpublished: dashboard sees it, the public surface does not.
	got, err := f.svc.Get(ctx, f.scope, id)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = f.svc.GetVisible(ctx, f.scope, id)
	require.Error(t, err)
	assert.Equal(t, "Bad Request!", err.Error())

	// Published today: visible (the cutoff is the start of tomorrow).
	_, err = f.svc.Update(ctx, f.scope, domain.UpdateRequest{
		ID:           id,
		IsPublished:  ofBool(true),
		PublishedAt:  ofTime(f.fake.Now()),
		Translations: translationsEN("Tee"),
	})
	require.NoError(t, err)

	_, err = f.svc.GetVisible(ctx, f.scope, id)
	assert.NoError(t, err)

	// Publish date pushed past the cutoff: hidden again.
	_, err = f.svc.Update(ctx, f.scope, domain.UpdateRequest{
		ID:           id,
		PublishedAt:  ofTime(f.fake.Now().Add(48 * time.Hour)),
		Translations: translationsEN("Tee"),
	})
	require.NoError(t, err)

	_, err = f.svc.GetVisible(ctx, f.scope, id)
	require.Error(t, err)
	assert.Equal(t, "Bad Request!", err.Error())
}

func TestListVisibleFiltersAndOrdersBySalePrice(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	published := true
	cheap := 5.0
	pricey := 50.0

	_, err := f.svc.Create(ctx, f.scope, domain.CreateRequest{
		Slug:            "cheap",
		IsPublished:     &published,
		PriceSaleAmount: &cheap,
		Translations:    translationsEN("Cheap"),
	})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, f.scope, domain.CreateRequest{
		Slug:            "pricey",
		IsPublished:     &published,
		PriceSaleAmount: &pricey,
		Translations:    translationsEN("Pricey"),
	})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, f.scope, domain.CreateRequest{
		Slug:         "hidden",
		Translations: translationsEN("Hidden"),
	})
	require.NoError(t, err)

	items, total, err := f.svc.ListVisible(ctx, f.scope, domain.ListRequest{
		OrderBy: []string{"-priceSaleAmount"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, items, 2)
	assert.Equal(t, "pricey", items[0].Slug)
	assert.Equal(t, "cheap", items[1].Slug)

	// Dashboard listing still returns all three.
	_, total, err = f.svc.List(ctx, f.scope, domain.ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestListFiltersByTranslatedName(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.scope, domain.CreateRequest{
		Slug:         "tee",
		Translations: translationsEN("Basic Tee"),
	})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, f.scope, domain.CreateRequest{
		Slug:         "hoodie",
		Translations: translationsEN("Cozy Hoodie"),
	})
	require.NoError(t, err)

	items, total, err := f.svc.List(ctx, f.scope, domain.ListRequest{Name: "hood"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "hoodie", items[0].Slug)
}

func TestIncrementAccess(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	p, err := f.svc.Create(ctx, f.scope, domain.CreateRequest{
		Slug:         "tee",
		Translations: translationsEN("Tee"),
	})
	require.NoError(t, err)
	id := globalid.Encode("Product", p.ID)

	first, err := f.svc.IncrementAccess(ctx, f.scope, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.CountAccess)

	second, err := f.svc.IncrementAccess(ctx, f.scope, id)
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.CountAccess)

	_, err = f.svc.IncrementAccess(ctx, f.scope, globalid.Encode("Product", f.node.Generate().Int64()))
	require.Error(t, err)
	assert.Equal(t, "Can not find this product!", err.Error())
}

func TestTenantIsolation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	p, err := f.svc.Create(ctx, f.scope, domain.CreateRequest{
		Slug:         "tee",
		Translations: translationsEN("Tee"),
	})
	require.NoError(t, err)

	otherScope := tenant.Scope{OrgID: f.node.Generate(), Language: "en"}
	_, err = f.svc.Get(ctx, otherScope, globalid.Encode("Product", p.ID))
	require.Error(t, err)
	assert.Equal(t, "Bad Request!", err.Error())

	// The same slug is free in another organization.
	_, err = f.svc.Create(ctx, otherScope, domain.CreateRequest{
		Slug:         "tee",
		Translations: translationsEN("Tee"),
	})
	assert.NoError(t, err)
}
