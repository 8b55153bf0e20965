package admin

import "github.com/tavolo-next/internal/provider"

// Handler 后台管理接口处理器入口
// 接口由 JWT 鉴权加 Casbin 角色策略共同保护
type Handler struct {
	*provider.Container
}

// New 创建后台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
