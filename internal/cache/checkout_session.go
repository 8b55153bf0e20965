package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tavolo-next/internal/models"
)

// CheckoutSession 结账会话快照
// 每个用户同一时刻至多一条，按 TTL 过期
type CheckoutSession struct {
	UserID    uint        `json:"user_id"`
	Step      string      `json:"step"`
	Address   models.JSON `json:"address,omitempty"`
	PromoCode string      `json:"promo_code,omitempty"`
	OrderID   uint        `json:"order_id,omitempty"`
	ExpiresAt int64       `json:"expires_at"`
	UpdatedAt int64       `json:"updated_at"`
}

func checkoutSessionKey(userID uint) string {
	return fmt.Sprintf("checkout:session:%d", userID)
}

// Redis 不可用时退化到进程内存储，单实例语义不变
var (
	checkoutMemMu    sync.Mutex
	checkoutMemStore = map[uint]*CheckoutSession{}
)

// GetCheckoutSession 获取结账会话
func GetCheckoutSession(ctx context.Context, userID uint) (*CheckoutSession, error) {
	if userID == 0 {
		return nil, nil
	}
	if Enabled() {
		var session CheckoutSession
		hit, err := GetJSON(ctx, checkoutSessionKey(userID), &session)
		if err != nil || !hit {
			return nil, err
		}
		return &session, nil
	}

	checkoutMemMu.Lock()
	defer checkoutMemMu.Unlock()
	session, ok := checkoutMemStore[userID]
	if !ok {
		return nil, nil
	}
	if session.ExpiresAt > 0 && session.ExpiresAt < time.Now().Unix() {
		delete(checkoutMemStore, userID)
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

// SetCheckoutSession 写入结账会话
func SetCheckoutSession(ctx context.Context, session *CheckoutSession, ttl time.Duration) error {
	if session == nil || session.UserID == 0 {
		return nil
	}
	now := time.Now()
	session.UpdatedAt = now.Unix()
	if ttl > 0 {
		session.ExpiresAt = now.Add(ttl).Unix()
	}
	if Enabled() {
		return SetJSON(ctx, checkoutSessionKey(session.UserID), session, ttl)
	}

	checkoutMemMu.Lock()
	defer checkoutMemMu.Unlock()
	copied := *session
	checkoutMemStore[session.UserID] = &copied
	return nil
}

// DelCheckoutSession 删除结账会话
func DelCheckoutSession(ctx context.Context, userID uint) error {
	if userID == 0 {
		return nil
	}
	if Enabled() {
		return Del(ctx, checkoutSessionKey(userID))
	}

	checkoutMemMu.Lock()
	defer checkoutMemMu.Unlock()
	delete(checkoutMemStore, userID)
	return nil
}
