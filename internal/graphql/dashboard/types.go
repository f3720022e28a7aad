package dashboard

import (
	"encoding/json"

	"github.com/graphql-go/graphql"
	collectiondomain "github.com/smallbiznis/mall/internal/collection/domain"
	optionvaluedomain "github.com/smallbiznis/mall/internal/optionvalue/domain"
	productdomain "github.com/smallbiznis/mall/internal/product/domain"
	productoptiondomain "github.com/smallbiznis/mall/internal/productoption/domain"
	"github.com/smallbiznis/mall/internal/tenant"
	variantdomain "github.com/smallbiznis/mall/internal/variant/domain"
	"github.com/smallbiznis/mall/pkg/db/pagination"
	"github.com/smallbiznis/mall/pkg/globalid"
)

// connection is the listing envelope every plural query returns.
type connection struct {
	Items      interface{}          `json:"items"`
	TotalCount int64                `json:"totalCount"`
	PageInfo   *pagination.PageInfo `json:"pageInfo"`
}

type typeSet struct {
	product            *graphql.Object
	productConnection  *graphql.Object
	productTranslation *graphql.Object

	option            *graphql.Object
	optionConnection  *graphql.Object
	optionTranslation *graphql.Object

	value            *graphql.Object
	valueConnection  *graphql.Object
	valueTranslation *graphql.Object

	variant           *graphql.Object
	variantConnection *graphql.Object

	collection           *graphql.Object
	collectionConnection *graphql.Object

	pageInfo    *graphql.Object
	taskWarning *graphql.Object

	productTranslationInput *graphql.InputObject
	nameTranslationInput    *graphql.InputObject
}

func asProduct(src interface{}) (*productdomain.Product, bool) {
	switch v := src.(type) {
	case *productdomain.Product:
		return v, v != nil
	case productdomain.Product:
		return &v, true
	}
	return nil, false
}

func asOption(src interface{}) (*productoptiondomain.ProductOption, bool) {
	switch v := src.(type) {
	case *productoptiondomain.ProductOption:
		return v, v != nil
	case productoptiondomain.ProductOption:
		return &v, true
	}
	return nil, false
}

func asValue(src interface{}) (*optionvaluedomain.ProductOptionValue, bool) {
	switch v := src.(type) {
	case *optionvaluedomain.ProductOptionValue:
		return v, v != nil
	case optionvaluedomain.ProductOptionValue:
		return &v, true
	}
	return nil, false
}

func asVariant(src interface{}) (*variantdomain.Variant, bool) {
	switch v := src.(type) {
	case *variantdomain.Variant:
		return v, v != nil
	case variantdomain.Variant:
		return &v, true
	}
	return nil, false
}

func asCollection(src interface{}) (*collectiondomain.Collection, bool) {
	switch v := src.(type) {
	case *collectiondomain.Collection:
		return v, v != nil
	case collectiondomain.Collection:
		return &v, true
	}
	return nil, false
}

func connectionOf(name string, item *graphql.Object, pageInfo *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: name,
		Fields: graphql.Fields{
			"items":      &graphql.Field{Type: graphql.NewList(item)},
			"totalCount": &graphql.Field{Type: graphql.Int},
			"pageInfo":   &graphql.Field{Type: pageInfo},
		},
	})
}

func (r *resolver) buildTypes() *typeSet {
	t := &typeSet{}

	t.pageInfo = graphql.NewObject(graphql.ObjectConfig{
		Name: "PageInfo",
		Fields: graphql.Fields{
			"pageNumber": &graphql.Field{Type: graphql.Int},
			"pageSize":   &graphql.Field{Type: graphql.Int},
			"totalCount": &graphql.Field{Type: graphql.Int},
			"totalPages": &graphql.Field{Type: graphql.Int},
			"hasNext":    &graphql.Field{Type: graphql.Boolean},
		},
	})

	t.taskWarning = graphql.NewObject(graphql.ObjectConfig{
		Name: "TaskWarning",
		Fields: graphql.Fields{
			"done":        &graphql.Field{Type: graphql.NewList(graphql.String)},
			"error":       &graphql.Field{Type: graphql.NewList(graphql.String)},
			"inProtected": &graphql.Field{Type: graphql.NewList(graphql.String)},
			"inUse":       &graphql.Field{Type: graphql.NewList(graphql.String)},
			"notFound":    &graphql.Field{Type: graphql.NewList(graphql.String)},
		},
	})

	t.productTranslation = graphql.NewObject(graphql.ObjectConfig{
		Name: "ProductTranslation",
		Fields: graphql.Fields{
			"languageCode": &graphql.Field{Type: graphql.String},
			"name":         &graphql.Field{Type: graphql.String},
			"description":  &graphql.Field{Type: graphql.String},
			"summary":      &graphql.Field{Type: graphql.String},
			"content":      &graphql.Field{Type: graphql.String},
			"createdAt":    &graphql.Field{Type: graphql.DateTime},
			"updatedAt":    &graphql.Field{Type: graphql.DateTime},
		},
	})

	t.optionTranslation = graphql.NewObject(graphql.ObjectConfig{
		Name: "ProductOptionTranslation",
		Fields: graphql.Fields{
			"languageCode": &graphql.Field{Type: graphql.String},
			"name":         &graphql.Field{Type: graphql.String},
		},
	})

	t.valueTranslation = graphql.NewObject(graphql.ObjectConfig{
		Name: "ProductOptionValueTranslation",
		Fields: graphql.Fields{
			"languageCode": &graphql.Field{Type: graphql.String},
			"name":         &graphql.Field{Type: graphql.String},
		},
	})

	t.value = graphql.NewObject(graphql.ObjectConfig{
		Name: "ProductOptionValue",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.ID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					value, ok := asValue(p.Source)
					if !ok {
						return nil, nil
					}
					return globalid.Encode("ProductOptionValue", value.ID), nil
				},
			},
			"optionId": &graphql.Field{
				Type: graphql.ID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					value, ok := asValue(p.Source)
					if !ok {
						return nil, nil
					}
					return globalid.Encode("ProductOption", value.OptionID), nil
				},
			},
			"sortKey":   &graphql.Field{Type: graphql.Int},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
			"updatedAt": &graphql.Field{Type: graphql.DateTime},
			"translation": &graphql.Field{
				Type: t.valueTranslation,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					value, ok := asValue(p.Source)
					if !ok {
						return nil, nil
					}
					scope, err := tenant.FromContext(p.Context)
					if err != nil {
						return nil, err
					}
					return r.values.Translation(p.Context, value.ID, scope.Language)
				},
			},
			"translations": &graphql.Field{
				Type: graphql.NewList(t.valueTranslation),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					value, ok := asValue(p.Source)
					if !ok {
						return nil, nil
					}
					return r.values.Translations(p.Context, value.ID)
				},
			},
		},
	})
	t.valueConnection = connectionOf("ProductOptionValueConnection", t.value, t.pageInfo)

	t.option = graphql.NewObject(graphql.ObjectConfig{
		Name: "ProductOption",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.ID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					option, ok := asOption(p.Source)
					if !ok {
						return nil, nil
					}
					return globalid.Encode("ProductOption", option.ID), nil
				},
			},
			"productId": &graphql.Field{
				Type: graphql.ID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					option, ok := asOption(p.Source)
					if !ok {
						return nil, nil
					}
					return globalid.Encode("Product", option.ProductID), nil
				},
			},
			"sortKey":   &graphql.Field{Type: graphql.Int},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
			"updatedAt": &graphql.Field{Type: graphql.DateTime},
			"translation": &graphql.Field{
				Type: t.optionTranslation,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					option, ok := asOption(p.Source)
					if !ok {
						return nil, nil
					}
					scope, err := tenant.FromContext(p.Context)
					if err != nil {
						return nil, err
					}
					return r.options.Translation(p.Context, option.ID, scope.Language)
				},
			},
			"translations": &graphql.Field{
				Type: graphql.NewList(t.optionTranslation),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					option, ok := asOption(p.Source)
					if !ok {
						return nil, nil
					}
					return r.options.Translations(p.Context, option.ID)
				},
			},
			"values": &graphql.Field{
				Type: graphql.NewList(t.value),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					option, ok := asOption(p.Source)
					if !ok {
						return nil, nil
					}
					return r.values.ForOption(p.Context, option.ID, false)
				},
			},
		},
	})
	t.optionConnection = connectionOf("ProductOptionConnection", t.option, t.pageInfo)

	t.variant = graphql.NewObject(graphql.ObjectConfig{
		Name: "Variant",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.ID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					variant, ok := asVariant(p.Source)
					if !ok {
						return nil, nil
					}
					return globalid.Encode("Variant", variant.ID), nil
				},
			},
			"productId": &graphql.Field{
				Type: graphql.ID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					variant, ok := asVariant(p.Source)
					if !ok {
						return nil, nil
					}
					return globalid.Encode("Product", variant.ProductID), nil
				},
			},
			"slug":            &graphql.Field{Type: graphql.String},
			"sku":             &graphql.Field{Type: graphql.String},
			"currency":        &graphql.Field{Type: graphql.String},
			"priceAmount":     &graphql.Field{Type: graphql.Float},
			"priceSaleAmount": &graphql.Field{Type: graphql.Float},
			"isPrimary":       &graphql.Field{Type: graphql.Boolean},
			"isPublished":     &graphql.Field{Type: graphql.Boolean},
			"publishedAt":     &graphql.Field{Type: graphql.DateTime},
			"createdAt":       &graphql.Field{Type: graphql.DateTime},
			"updatedAt":       &graphql.Field{Type: graphql.DateTime},
			"selectedOptionValues": &graphql.Field{
				Type: graphql.NewList(t.value),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					variant, ok := asVariant(p.Source)
					if !ok {
						return nil, nil
					}
					scope, err := tenant.FromContext(p.Context)
					if err != nil {
						return nil, err
					}
					ids, err := r.variants.SelectedValueIDs(p.Context, variant.ID)
					if err != nil {
						return nil, err
					}
					return r.values.ByIDs(p.Context, scope, ids)
				},
			},
		},
	})
	t.variantConnection = connectionOf("VariantConnection", t.variant, t.pageInfo)

	t.collection = graphql.NewObject(graphql.ObjectConfig{
		Name: "Collection",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.ID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					collection, ok := asCollection(p.Source)
					if !ok {
						return nil, nil
					}
					return globalid.Encode("Collection", collection.ID), nil
				},
			},
			"slug":        &graphql.Field{Type: graphql.String},
			"name":        &graphql.Field{Type: graphql.String},
			"isPublished": &graphql.Field{Type: graphql.Boolean},
			"publishedAt": &graphql.Field{Type: graphql.DateTime},
			"createdAt":   &graphql.Field{Type: graphql.DateTime},
			"updatedAt":   &graphql.Field{Type: graphql.DateTime},
		},
	})
	t.collectionConnection = connectionOf("CollectionConnection", t.collection, t.pageInfo)

	t.product = graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.ID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					product, ok := asProduct(p.Source)
					if !ok {
						return nil, nil
					}
					return globalid.Encode("Product", product.ID), nil
				},
			},
			"slug":        &graphql.Field{Type: graphql.String},
			"serial":      &graphql.Field{Type: graphql.String},
			"sortKey":     &graphql.Field{Type: graphql.Int},
			"canSearch":   &graphql.Field{Type: graphql.Boolean},
			"isPublished": &graphql.Field{Type: graphql.Boolean},
			"publishedAt": &graphql.Field{Type: graphql.DateTime},
			"countAccess": &graphql.Field{Type: graphql.Int},
			"createdAt":   &graphql.Field{Type: graphql.DateTime},
			"updatedAt":   &graphql.Field{Type: graphql.DateTime},
			"metadata": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					product, ok := asProduct(p.Source)
					if !ok || product.Metadata == nil {
						return nil, nil
					}
					raw, err := json.Marshal(product.Metadata)
					if err != nil {
						return nil, err
					}
					return string(raw), nil
				},
			},
			"translation": &graphql.Field{
				Type: t.productTranslation,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					product, ok := asProduct(p.Source)
					if !ok {
						return nil, nil
					}
					scope, err := tenant.FromContext(p.Context)
					if err != nil {
						return nil, err
					}
					return r.products.Translation(p.Context, product.ID, scope.Language)
				},
			},
			"translations": &graphql.Field{
				Type: graphql.NewList(t.productTranslation),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					product, ok := asProduct(p.Source)
					if !ok {
						return nil, nil
					}
					return r.products.Translations(p.Context, product.ID)
				},
			},
			"options": &graphql.Field{
				Type: graphql.NewList(t.option),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					product, ok := asProduct(p.Source)
					if !ok {
						return nil, nil
					}
					return r.options.ForProduct(p.Context, product.ID)
				},
			},
			"variants": &graphql.Field{
				Type: graphql.NewList(t.variant),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					product, ok := asProduct(p.Source)
					if !ok {
						return nil, nil
					}
					scope, err := tenant.FromContext(p.Context)
					if err != nil {
						return nil, err
					}
					return r.variants.ForProduct(p.Context, scope, product.ID, false)
				},
			},
			"collections": &graphql.Field{
				Type: graphql.NewList(t.collection),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					product, ok := asProduct(p.Source)
					if !ok {
						return nil, nil
					}
					scope, err := tenant.FromContext(p.Context)
					if err != nil {
						return nil, err
					}
					return r.collections.ForProduct(p.Context, scope, product.ID)
				},
			},
		},
	})
	t.productConnection = connectionOf("ProductConnection", t.product, t.pageInfo)

	t.productTranslationInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ProductTranslationInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"languageCode": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"name":         &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"description":  &graphql.InputObjectFieldConfig{Type: graphql.String},
			"summary":      &graphql.InputObjectFieldConfig{Type: graphql.String},
			"content":      &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	t.nameTranslationInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "NameTranslationInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"languageCode": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"name":         &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	return t
}
