package httpapi

import (
	"context"
	"errors"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/consentchain/consentchain/internal/common"
)

// renderError maps service errors to HTTP statuses. Expected control-flow
// outcomes keep their specific message; anything else is logged and returned
// as an opaque server error.
func (s *HTTPServer) renderError(ctx context.Context, c *app.RequestContext, err error) {
	switch {
	case errors.Is(err, common.ErrUserNotFound):
		c.JSON(consts.StatusNotFound, utils.H{"error": "User not found"})
	case errors.Is(err, common.ErrFileNotFound):
		c.JSON(consts.StatusNotFound, utils.H{"error": "File not found"})
	case errors.Is(err, common.ErrNotOwner):
		c.JSON(consts.StatusForbidden, utils.H{"error": "You do not own this file"})
	case errors.Is(err, common.ErrNoAccess):
		c.JSON(consts.StatusForbidden, utils.H{"error": "Access denied"})
	case errors.Is(err, common.ErrGrantExpired):
		c.JSON(consts.StatusForbidden, utils.H{"error": "Access expired"})
	case errors.Is(err, common.ErrAlreadyGranted):
		c.JSON(consts.StatusConflict, utils.H{"error": "Access already granted"})
	case errors.Is(err, common.ErrNoActiveGrant):
		c.JSON(consts.StatusConflict, utils.H{"error": "No active grant for this user"})
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(consts.StatusNotFound, utils.H{"error": "Not found"})
	default:
		s.logger.Error(ctx, "Request failed", "error", err.Error())
		c.JSON(consts.StatusInternalServerError, utils.H{"error": "Server error"})
	}
}
