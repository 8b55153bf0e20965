package service

import "errors"

// 服务层业务错误，由各 handler 统一映射为响应码
var (
	ErrAuthRequired         = errors.New("需要登录")
	ErrInvalidCredentials   = errors.New("邮箱或密码错误")
	ErrEmailExists          = errors.New("邮箱已注册")
	ErrInvalidEmail         = errors.New("邮箱格式无效")
	ErrUserDisabled         = errors.New("账号已禁用")
	ErrInvalidPassword      = errors.New("密码错误")
	ErrNotFound             = errors.New("资源不存在")
	ErrInvalidInput         = errors.New("参数无效")
	ErrMenuItemNotFound     = errors.New("菜品不存在")
	ErrMenuItemNotAvailable = errors.New("菜品暂不可售")
	ErrCategoryNotFound     = errors.New("分类不存在")
	ErrCategoryNotEmpty     = errors.New("分类下仍有菜品")
	ErrSlugExists           = errors.New("slug 已存在")
	ErrQuantityInvalid      = errors.New("数量超出允许范围")
	ErrEmptyCart            = errors.New("购物车为空")
	ErrAddressNotFound      = errors.New("地址不存在")
	ErrAddressInvalid       = errors.New("地址信息不完整")
	ErrOrderNotFound        = errors.New("订单不存在")
	ErrOrderCreateFailed    = errors.New("订单创建失败")
	ErrOrderItemsFailed     = errors.New("订单项写入失败")
	ErrPaymentUpdateFailed  = errors.New("支付状态更新失败")
	ErrStatusUpdateFailed   = errors.New("订单状态更新失败")
	ErrStatusInvalid        = errors.New("不允许的状态流转")
	ErrAlreadyPaid          = errors.New("订单已支付")
	ErrOTPInvalid           = errors.New("验证码错误")
	ErrCheckoutStateInvalid = errors.New("结账流程状态无效")
	ErrCheckoutExpired      = errors.New("结账会话已过期")
	ErrTrackingNotFound     = errors.New("配送进度不存在")
)
