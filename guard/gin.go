package guard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portalauth "github.com/portalauth/portalauth"
)

// GinPublicAuth is the gin adapter of [PublicAuth].
func GinPublicAuth(client *portalauth.Client) gin.HandlerFunc {
	return ginWrap(client, func(*gin.Context) portalauth.RouteRequirement {
		return portalauth.RouteRequirement{Class: portalauth.RoutePublicAuth}
	})
}

// GinDeveloper is the gin adapter of [Developer].
func GinDeveloper(client *portalauth.Client) gin.HandlerFunc {
	return ginWrap(client, func(*gin.Context) portalauth.RouteRequirement {
		return portalauth.RouteRequirement{Class: portalauth.RouteDeveloper}
	})
}

// GinBusiness is the gin adapter of [Business]. companyParam names the gin
// route parameter; "" selects [DefaultCompanyParam].
func GinBusiness(client *portalauth.Client, companyParam string) gin.HandlerFunc {
	if companyParam == "" {
		companyParam = DefaultCompanyParam
	}
	return ginWrap(client, func(c *gin.Context) portalauth.RouteRequirement {
		return portalauth.RouteRequirement{
			Class:        portalauth.RouteBusiness,
			CompanyParam: c.Param(companyParam),
		}
	})
}

func ginWrap(client *portalauth.Client, requirement func(*gin.Context) portalauth.RouteRequirement) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := portalauth.WithRequestPath(c.Request.Context(), c.Request.URL.Path)
		ctx = portalauth.WithClientIP(ctx, c.ClientIP())
		if ua := c.Request.UserAgent(); ua != "" {
			ctx = portalauth.WithUserAgent(ctx, ua)
		}

		decision := client.Evaluate(ctx, requirement(c))
		if !decision.Allowed() {
			c.Redirect(http.StatusFound, decision.Location)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
