package httpapi

import (
	"context"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/consentchain/consentchain/internal/common"
	"github.com/consentchain/consentchain/internal/server/auth"
	"github.com/consentchain/consentchain/internal/server/models"
)

const userKey = "authUser"

// accessTokenMiddleware verifies the identity token on every /files request,
// upserts the user it names and stores the record in the request context.
// The token comes from the Authorization header, or from a ?token query
// parameter for direct download links.
func (s *HTTPServer) accessTokenMiddleware(ctx context.Context, c *app.RequestContext) {

	token := string(c.GetHeader(common.AuthHeaderName))
	if token == "" {
		token = c.Query("token")
	}
	if token == "" {
		c.JSON(consts.StatusForbidden, utils.H{"error": "Token missing"})
		c.Abort()
		return
	}
	token = strings.TrimPrefix(token, common.BearerPrefix)

	claims, err := auth.VerifyToken(token, s.jwtSecret)
	if err != nil {
		c.JSON(consts.StatusUnauthorized, utils.H{"error": "Invalid token"})
		c.Abort()
		return
	}

	user, err := s.users.EnsureUser(ctx, claims.Email, claims.Name)
	if err != nil {
		s.logger.Error(ctx, "User upsert failed", "email", claims.Email, "error", err.Error())
		c.JSON(consts.StatusInternalServerError, utils.H{"error": "Server error"})
		c.Abort()
		return
	}

	c.Set(userKey, user)
	c.Next(ctx)
}

// currentUser returns the user stored by accessTokenMiddleware.
func currentUser(c *app.RequestContext) (*models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok
}
