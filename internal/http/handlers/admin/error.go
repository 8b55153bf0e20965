package admin

import (
	"errors"

	"github.com/tavolo-next/internal/constants"
	handlershared "github.com/tavolo-next/internal/http/handlers/shared"
	"github.com/tavolo-next/internal/http/response"
	"github.com/tavolo-next/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var menuAdminErrorRules = []mappedHandlerError{
	{target: service.ErrMenuItemNotFound, code: response.CodeNotFound, msg: service.ErrMenuItemNotFound.Error()},
	{target: service.ErrCategoryNotFound, code: response.CodeBadRequest, msg: service.ErrCategoryNotFound.Error()},
	{target: service.ErrSlugExists, code: response.CodeBadRequest, msg: service.ErrSlugExists.Error()},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: service.ErrInvalidInput.Error()},
}

var categoryAdminErrorRules = []mappedHandlerError{
	{target: service.ErrCategoryNotFound, code: response.CodeNotFound, msg: service.ErrCategoryNotFound.Error()},
	{target: service.ErrCategoryNotEmpty, code: response.CodeBadRequest, msg: service.ErrCategoryNotEmpty.Error()},
	{target: service.ErrSlugExists, code: response.CodeBadRequest, msg: service.ErrSlugExists.Error()},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: service.ErrInvalidInput.Error()},
}

var orderAdminErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: service.ErrOrderNotFound.Error()},
	{target: service.ErrStatusInvalid, code: response.CodeBadRequest, msg: service.ErrStatusInvalid.Error()},
	{target: service.ErrStatusUpdateFailed, code: response.CodeInternal, msg: constants.ErrCodeStatusUpdateFailed},
}
