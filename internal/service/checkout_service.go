package service

import (
	"context"
	"strings"
	"time"

	"github.com/tavolo-next/internal/cache"
	"github.com/tavolo-next/internal/config"
	"github.com/tavolo-next/internal/constants"
	"github.com/tavolo-next/internal/logger"
	"github.com/tavolo-next/internal/models"
	"github.com/tavolo-next/internal/repository"
)

// CheckoutService 结账流程服务
// 流程固定为 address -> payment -> otp -> processing -> success，
// 步骤只能按序推进，会话按 TTL 过期
type CheckoutService struct {
	orderService *OrderService
	cartRepo     repository.CartRepository
	otpCode      string
	sessionTTL   time.Duration
}

// NewCheckoutService 创建结账流程服务
func NewCheckoutService(orderService *OrderService, cartRepo repository.CartRepository, cfg config.CheckoutConfig) *CheckoutService {
	otpCode := strings.TrimSpace(cfg.OTPCode)
	if otpCode == "" {
		otpCode = "123456"
	}
	ttlMinutes := cfg.SessionTTLMinutes
	if ttlMinutes <= 0 {
		ttlMinutes = 30
	}
	return &CheckoutService{
		orderService: orderService,
		cartRepo:     cartRepo,
		otpCode:      otpCode,
		sessionTTL:   time.Duration(ttlMinutes) * time.Minute,
	}
}

// Start 开始结账（要求购物车非空）
func (s *CheckoutService) Start(ctx context.Context, userID uint) (*cache.CheckoutSession, error) {
	if userID == 0 {
		return nil, ErrAuthRequired
	}
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	session := &cache.CheckoutSession{
		UserID: userID,
		Step:   constants.CheckoutStepAddress,
	}
	if err := cache.SetCheckoutSession(ctx, session, s.sessionTTL); err != nil {
		return nil, err
	}
	return session, nil
}

// Get 获取当前结账会话
func (s *CheckoutService) Get(ctx context.Context, userID uint) (*cache.CheckoutSession, error) {
	if userID == 0 {
		return nil, ErrAuthRequired
	}
	session, err := cache.GetCheckoutSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrCheckoutExpired
	}
	return session, nil
}

// SubmitAddress 提交收货地址（address -> payment）
func (s *CheckoutService) SubmitAddress(ctx context.Context, userID uint, address models.JSON) (*cache.CheckoutSession, error) {
	session, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session.Step != constants.CheckoutStepAddress {
		return nil, ErrCheckoutStateInvalid
	}
	if len(address) == 0 {
		return nil, ErrAddressInvalid
	}

	session.Address = address
	session.Step = constants.CheckoutStepPayment
	if err := cache.SetCheckoutSession(ctx, session, s.sessionTTL); err != nil {
		return nil, err
	}
	return session, nil
}

// SubmitPayment 提交支付方式（payment -> otp，可携带优惠码）
func (s *CheckoutService) SubmitPayment(ctx context.Context, userID uint, promoCode string) (*cache.CheckoutSession, error) {
	session, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session.Step != constants.CheckoutStepPayment {
		return nil, ErrCheckoutStateInvalid
	}

	session.PromoCode = strings.TrimSpace(promoCode)
	session.Step = constants.CheckoutStepOTP
	if err := cache.SetCheckoutSession(ctx, session, s.sessionTTL); err != nil {
		return nil, err
	}
	return session, nil
}

// VerifyOTP 校验支付验证码（otp -> processing -> success）
// 校验通过后在服务端创建订单并标记支付完成，返回生成的订单
func (s *CheckoutService) VerifyOTP(ctx context.Context, userID uint, code string) (*models.Order, *cache.CheckoutSession, error) {
	session, err := s.Get(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if session.Step != constants.CheckoutStepOTP {
		return nil, nil, ErrCheckoutStateInvalid
	}
	if strings.TrimSpace(code) != s.otpCode {
		return nil, nil, ErrOTPInvalid
	}

	session.Step = constants.CheckoutStepProcessing
	if err := cache.SetCheckoutSession(ctx, session, s.sessionTTL); err != nil {
		return nil, nil, err
	}

	order, err := s.orderService.CreateFromCart(CreateOrderInput{
		UserID:          userID,
		PromoCode:       session.PromoCode,
		DeliveryAddress: session.Address,
	})
	if err != nil {
		s.rewindToOTP(ctx, session)
		return nil, session, err
	}
	paid, err := s.orderService.MarkPaid(order.ID, userID)
	if err != nil {
		s.rewindToOTP(ctx, session)
		return nil, session, err
	}

	session.OrderID = paid.ID
	session.Step = constants.CheckoutStepSuccess
	if err := cache.SetCheckoutSession(ctx, session, s.sessionTTL); err != nil {
		logger.Warnw("checkout_session_finalize_failed", "user_id", userID, "error", err)
	}
	return paid, session, nil
}

// rewindToOTP 下单或支付失败时把会话退回 otp 步骤，允许重试
func (s *CheckoutService) rewindToOTP(ctx context.Context, session *cache.CheckoutSession) {
	session.Step = constants.CheckoutStepOTP
	if err := cache.SetCheckoutSession(ctx, session, s.sessionTTL); err != nil {
		logger.Warnw("checkout_session_rewind_failed", "user_id", session.UserID, "error", err)
	}
}

// Cancel 取消结账流程
func (s *CheckoutService) Cancel(ctx context.Context, userID uint) error {
	if userID == 0 {
		return ErrAuthRequired
	}
	return cache.DelCheckoutSession(ctx, userID)
}
