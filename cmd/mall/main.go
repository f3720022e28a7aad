package main

import (
	"os"
	"strconv"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/mall/internal/clock"
	"github.com/smallbiznis/mall/internal/collection"
	"github.com/smallbiznis/mall/internal/config"
	"github.com/smallbiznis/mall/internal/graphql/dashboard"
	"github.com/smallbiznis/mall/internal/graphql/storefront"
	"github.com/smallbiznis/mall/internal/migration"
	"github.com/smallbiznis/mall/internal/observability"
	"github.com/smallbiznis/mall/internal/optionvalue"
	"github.com/smallbiznis/mall/internal/organization"
	"github.com/smallbiznis/mall/internal/product"
	"github.com/smallbiznis/mall/internal/productoption"
	"github.com/smallbiznis/mall/internal/ratelimit"
	"github.com/smallbiznis/mall/internal/reference"
	"github.com/smallbiznis/mall/internal/server"
	"github.com/smallbiznis/mall/internal/variant"
	"github.com/smallbiznis/mall/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		ratelimit.Module,

		// Catalog domains
		organization.Module,
		reference.Module,
		collection.Module,
		product.Module,
		productoption.Module,
		optionvalue.Module,
		variant.Module,

		// GraphQL surfaces and HTTP transport
		dashboard.Module,
		storefront.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	nodeID := int64(1)
	if raw := os.Getenv("SNOWFLAKE_NODE"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil {
			nodeID = parsed
		}
	}
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		panic(err)
	}
	return node
}
