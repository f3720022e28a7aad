package migration

import (
	collectiondomain "github.com/smallbiznis/mall/internal/collection/domain"
	"github.com/smallbiznis/mall/internal/config"
	optionvaluedomain "github.com/smallbiznis/mall/internal/optionvalue/domain"
	organizationdomain "github.com/smallbiznis/mall/internal/organization/domain"
	productdomain "github.com/smallbiznis/mall/internal/product/domain"
	productoptiondomain "github.com/smallbiznis/mall/internal/productoption/domain"
	referencedomain "github.com/smallbiznis/mall/internal/reference/domain"
	"github.com/smallbiznis/mall/internal/seed"
	variantdomain "github.com/smallbiznis/mall/internal/variant/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			if err := conn.AutoMigrate(
				&organizationdomain.Organization{},
				&referencedomain.ProductPlace{},
				&referencedomain.ProductSupplier{},
				&productdomain.Product{},
				&productdomain.ProductTranslation{},
				&productoptiondomain.ProductOption{},
				&productoptiondomain.ProductOptionTranslation{},
				&optionvaluedomain.ProductOptionValue{},
				&optionvaluedomain.ProductOptionValueTranslation{},
				&variantdomain.Variant{},
				&variantdomain.VariantOptionValue{},
				&collectiondomain.Collection{},
				&collectiondomain.CollectionProduct{},
			); err != nil {
				return err
			}
		}

		if cfg.DefaultOrgID != 0 {
			return seed.EnsureMainOrgWithID(conn, cfg.DefaultOrgID)
		}
		return seed.EnsureMainOrg(conn)
	}),
)
