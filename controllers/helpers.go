package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/studyhive/studyhive/middleware"
	"github.com/studyhive/studyhive/services"
	"github.com/studyhive/studyhive/utils"
)

// getUserID extracts the authenticated user ID stored by the auth middleware.
func getUserID(ctx *gin.Context) (uint, bool) {
	v, ok := ctx.Get(middleware.ContextUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// parsePagination normalizes page/page_size query values.
func parsePagination(pageStr, sizeStr string) (int, int) {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(sizeStr)
	if err != nil || size < 1 {
		size = 20
	}
	if size > 100 {
		size = 100
	}
	return page, size
}

// parseUintParam parses a numeric path parameter.
func parseUintParam(ctx *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(ctx.Param(name))
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// respondServiceError maps a service failure onto the JSON envelope. Domain
// errors keep their message; anything unexpected is logged and surfaced as a
// generic 500 so internals never leak to the caller.
func respondServiceError(ctx *gin.Context, err error) {
	switch services.KindOf(err) {
	case services.KindInvalidArgument:
		utils.Error(ctx, http.StatusBadRequest, 40010, err.Error())
	case services.KindUnauthenticated:
		utils.Error(ctx, http.StatusUnauthorized, 40110, err.Error())
	case services.KindPermissionDenied:
		utils.Error(ctx, http.StatusForbidden, 40310, err.Error())
	case services.KindNotFound:
		utils.Error(ctx, http.StatusNotFound, 40410, err.Error())
	case services.KindFailedPrecondition:
		utils.Error(ctx, http.StatusConflict, 40910, err.Error())
	default:
		utils.Sugar.Errorf("%s %s failed: %v", ctx.Request.Method, ctx.FullPath(), err)
		utils.Error(ctx, http.StatusInternalServerError, 50010, "internal server error")
	}
}

func paginationPayload(page, pageSize int, total int64) gin.H {
	return gin.H{
		"page":        page,
		"page_size":   pageSize,
		"total":       total,
		"total_pages": int((total + int64(pageSize) - 1) / int64(pageSize)),
	}
}
