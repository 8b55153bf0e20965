package public

import (
	"strconv"
	"strings"

	handlershared "github.com/tavolo-next/internal/http/handlers/shared"
	"github.com/tavolo-next/internal/http/response"
	"github.com/tavolo-next/internal/repository"
	"github.com/tavolo-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListOrders 当前用户订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
		Status:   service.NormalizeOrderStatus(c.Query("status")),
	}

	orders, total, err := h.OrderService.ListByUser(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "获取订单列表失败", err)
		return
	}

	totalPage := (total + int64(pageSize) - 1) / int64(pageSize)
	response.SuccessWithPage(c, orders, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}

// GetOrder 当前用户订单详情（按 ID）
func (h *Handler) GetOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "订单标识无效", nil)
		return
	}

	order, err := h.OrderService.GetForUser(uint(orderID), userID)
	if err != nil {
		respondWithMappedError(c, err, orderCommonErrorRules, response.CodeInternal, "获取订单失败")
		return
	}
	response.Success(c, order)
}

// GetOrderByNo 当前用户订单详情（按订单编号）
func (h *Handler) GetOrderByNo(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	orderNo := strings.TrimSpace(c.Param("order_no"))
	if orderNo == "" {
		respondError(c, response.CodeBadRequest, "订单编号无效", nil)
		return
	}

	order, err := h.OrderService.GetByOrderNoForUser(orderNo, userID)
	if err != nil {
		respondWithMappedError(c, err, orderCommonErrorRules, response.CodeInternal, "获取订单失败")
		return
	}
	response.Success(c, order)
}
