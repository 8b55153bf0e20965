package router

import (
	"fmt"
	"strings"

	"github.com/tavolo-next/internal/cache"
	"github.com/tavolo-next/internal/config"
	adminhandlers "github.com/tavolo-next/internal/http/handlers/admin"
	publichandlers "github.com/tavolo-next/internal/http/handlers/public"
	"github.com/tavolo-next/internal/http/response"
	"github.com/tavolo-next/internal/logger"
	"github.com/tavolo-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.Z()
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "tv"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "登录尝试过于频繁",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（菜品图片）
	r.Static("/uploads", "./uploads")

	r.GET("/healthz", func(ctx *gin.Context) {
		response.Success(ctx, gin.H{"status": "ok"})
	})

	apiV1 := r.Group("/api/v1")
	{
		// 公开接口（无需登录即可浏览菜单）
		public := apiV1.Group("/public")
		{
			public.GET("/menu-items", publicHandler.ListMenuItems)
			public.GET("/menu-items/featured", publicHandler.ListFeaturedMenuItems)
			public.GET("/menu-items/:id", publicHandler.GetMenuItem)
			public.GET("/menu-items/:id/related", publicHandler.ListRelatedMenuItems)
			public.GET("/categories", publicHandler.ListCategories)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.UserMe)
			user.PUT("/me/profile", publicHandler.UserUpdateProfile)
			user.PUT("/me/password", publicHandler.UserChangePassword)

			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart/items", publicHandler.AddCartItem)
			user.PUT("/cart/items/:id", publicHandler.UpdateCartItem)
			user.DELETE("/cart/items/:id", publicHandler.RemoveCartItem)
			user.DELETE("/cart", publicHandler.ClearCart)

			user.POST("/checkout/start", publicHandler.StartCheckout)
			user.GET("/checkout", publicHandler.GetCheckout)
			user.POST("/checkout/address", publicHandler.SubmitCheckoutAddress)
			user.POST("/checkout/payment", publicHandler.SubmitCheckoutPayment)
			user.POST("/checkout/verify-otp", publicHandler.VerifyCheckoutOTP)
			user.DELETE("/checkout", publicHandler.CancelCheckout)

			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
			user.GET("/orders/by-order-no/:order_no", publicHandler.GetOrderByNo)
			user.GET("/orders/:id/tracking", publicHandler.GetOrderTracking)

			user.GET("/addresses", publicHandler.ListAddresses)
			user.POST("/addresses", publicHandler.CreateAddress)
			user.PUT("/addresses/:id", publicHandler.UpdateAddress)
			user.DELETE("/addresses/:id", publicHandler.DeleteAddress)
			user.POST("/addresses/:id/default", publicHandler.SetDefaultAddress)
		}

		// 后台接口（JWT 鉴权 + Casbin 角色策略）
		admin := apiV1.Group("/admin")
		admin.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo), AdminRBACMiddleware(c.AuthzService))
		{
			admin.GET("/menu-items", adminHandler.ListMenuItems)
			admin.GET("/menu-items/:id", adminHandler.GetMenuItem)
			admin.POST("/menu-items", adminHandler.CreateMenuItem)
			admin.PUT("/menu-items/:id", adminHandler.UpdateMenuItem)
			admin.DELETE("/menu-items/:id", adminHandler.DeleteMenuItem)
			admin.PATCH("/menu-items/:id/availability", adminHandler.SetMenuItemAvailability)

			admin.GET("/categories", adminHandler.ListCategories)
			admin.POST("/categories", adminHandler.CreateCategory)
			admin.PUT("/categories/:id", adminHandler.UpdateCategory)
			admin.DELETE("/categories/:id", adminHandler.DeleteCategory)

			admin.GET("/orders", adminHandler.ListOrders)
			admin.GET("/orders/:id", adminHandler.GetOrder)
			admin.PATCH("/orders/:id/status", adminHandler.UpdateOrderStatus)
		}
	}

	return r
}
