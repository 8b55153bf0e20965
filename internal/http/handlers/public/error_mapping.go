package public

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

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var authCommonErrorRules = []mappedHandlerError{
	{target: service.ErrAuthRequired, code: response.CodeUnauthorized, msg: constants.ErrCodeAuthRequired},
	{target: service.ErrInvalidCredentials, code: response.CodeBadRequest, msg: service.ErrInvalidCredentials.Error()},
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, msg: service.ErrInvalidEmail.Error()},
	{target: service.ErrEmailExists, code: response.CodeBadRequest, msg: service.ErrEmailExists.Error()},
	{target: service.ErrInvalidPassword, code: response.CodeBadRequest, msg: service.ErrInvalidPassword.Error()},
	{target: service.ErrUserDisabled, code: response.CodeForbidden, msg: service.ErrUserDisabled.Error()},
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: service.ErrNotFound.Error()},
}

var cartCommonErrorRules = []mappedHandlerError{
	{target: service.ErrMenuItemNotFound, code: response.CodeNotFound, msg: service.ErrMenuItemNotFound.Error()},
	{target: service.ErrMenuItemNotAvailable, code: response.CodeBadRequest, msg: service.ErrMenuItemNotAvailable.Error()},
	{target: service.ErrQuantityInvalid, code: response.CodeBadRequest, msg: service.ErrQuantityInvalid.Error()},
}

var orderCommonErrorRules = []mappedHandlerError{
	{target: service.ErrEmptyCart, code: response.CodeBadRequest, msg: constants.ErrCodeEmptyCart},
	{target: service.ErrMenuItemNotAvailable, code: response.CodeBadRequest, msg: service.ErrMenuItemNotAvailable.Error()},
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: service.ErrOrderNotFound.Error()},
	{target: service.ErrOrderCreateFailed, code: response.CodeInternal, msg: constants.ErrCodeOrderCreateFailed},
	{target: service.ErrOrderItemsFailed, code: response.CodeInternal, msg: constants.ErrCodeOrderItemsFailed},
	{target: service.ErrPaymentUpdateFailed, code: response.CodeInternal, msg: constants.ErrCodePaymentUpdateFailed},
}

var checkoutCommonErrorRules = []mappedHandlerError{
	{target: service.ErrCheckoutExpired, code: response.CodeBadRequest, msg: service.ErrCheckoutExpired.Error()},
	{target: service.ErrCheckoutStateInvalid, code: response.CodeBadRequest, msg: service.ErrCheckoutStateInvalid.Error()},
	{target: service.ErrAddressInvalid, code: response.CodeBadRequest, msg: service.ErrAddressInvalid.Error()},
	{target: service.ErrOTPInvalid, code: response.CodeBadRequest, msg: service.ErrOTPInvalid.Error()},
}

var addressCommonErrorRules = []mappedHandlerError{
	{target: service.ErrAddressNotFound, code: response.CodeNotFound, msg: service.ErrAddressNotFound.Error()},
	{target: service.ErrAddressInvalid, code: response.CodeBadRequest, msg: service.ErrAddressInvalid.Error()},
}

func respondCheckoutError(c *gin.Context, err error) {
	respondWithMappedError(c, err,
		concatMappedHandlerErrors(checkoutCommonErrorRules, orderCommonErrorRules),
		response.CodeInternal, "结账流程处理失败")
}
