package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/mall/internal/config"
	organizationdomain "github.com/smallbiznis/mall/internal/organization/domain"
	"github.com/smallbiznis/mall/internal/tenant"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const orgIDHeader = "X-Org-Id"

// TenantMiddleware resolves the organization, the request language and the
// client address into a tenant scope, stored on the request context. Both
// GraphQL surfaces run behind it.
func TenantMiddleware(db *gorm.DB, orgs organizationdomain.Repository, catalog *config.CatalogConfigHolder, cfg config.Config, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orgID := cfg.DefaultOrgID
		if raw := c.GetHeader(orgIDHeader); raw != "" {
			parsed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || parsed == 0 {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid organization"})
				return
			}
			orgID = parsed
		}
		if orgID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing organization"})
			return
		}

		org, err := orgs.FindByID(c.Request.Context(), db, orgID)
		if err != nil {
			log.Error("organization lookup failed", zap.Int64("org_id", orgID), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if org == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown organization"})
			return
		}

		settings := catalog.Get()
		scope := tenant.Scope{
			OrgID:    snowflake.ID(org.ID),
			Language: requestLanguage(c.GetHeader("Accept-Language"), settings),
			ClientIP: c.ClientIP(),
		}
		c.Request = c.Request.WithContext(tenant.WithScope(c.Request.Context(), scope))
		c.Next()
	}
}

// requestLanguage picks the first Accept-Language tag the catalog supports,
// falling back to the catalog default. Quality weights are ignored; tags are
// taken in header order.
func requestLanguage(header string, settings config.CatalogConfig) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" {
			continue
		}
		tag = strings.ToLower(tag)
		for _, supported := range settings.Languages {
			if tag == strings.ToLower(supported) {
				return supported
			}
		}
		primary := strings.SplitN(tag, "-", 2)[0]
		for _, supported := range settings.Languages {
			if primary == strings.ToLower(supported) {
				return supported
			}
		}
	}
	return settings.DefaultLanguage
}
