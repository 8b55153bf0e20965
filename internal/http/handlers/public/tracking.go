package public

import (
	"strconv"

	"github.com/tavolo-next/internal/http/response"
	"github.com/tavolo-next/internal/service"

	"github.com/gin-gonic/gin"
)

var trackingErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: service.ErrOrderNotFound.Error()},
	{target: service.ErrTrackingNotFound, code: response.CodeNotFound, msg: service.ErrTrackingNotFound.Error()},
}

// GetOrderTracking 查询订单配送进度
func (h *Handler) GetOrderTracking(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "订单标识无效", nil)
		return
	}

	tracking, err := h.TrackingService.GetForUser(uint(orderID), userID)
	if err != nil {
		respondWithMappedError(c, err, trackingErrorRules, response.CodeInternal, "获取配送进度失败")
		return
	}
	response.Success(c, tracking)
}
