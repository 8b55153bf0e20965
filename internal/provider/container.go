package provider

import (
	"time"

	"github.com/tavolo-next/internal/authz"
	"github.com/tavolo-next/internal/cache"
	"github.com/tavolo-next/internal/config"
	"github.com/tavolo-next/internal/logger"
	"github.com/tavolo-next/internal/models"
	"github.com/tavolo-next/internal/queue"
	"github.com/tavolo-next/internal/repository"
	"github.com/tavolo-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config           *config.Config
	QueueClient      *queue.Client
	TrackingInterval time.Duration

	// Repositories
	UserRepo     repository.UserRepository
	CategoryRepo repository.CategoryRepository
	MenuItemRepo repository.MenuItemRepository
	CartRepo     repository.CartRepository
	OrderRepo    repository.OrderRepository
	AddressRepo  repository.AddressRepository
	TrackingRepo repository.TrackingRepository

	// Services
	AuthzService    *authz.Service
	UserAuthService *service.UserAuthService
	MenuService     *service.MenuService
	CategoryService *service.CategoryService
	PricingService  *service.PricingService
	CartService     *service.CartService
	OrderService    *service.OrderService
	CheckoutService *service.CheckoutService
	TrackingService *service.TrackingService
	AddressService  *service.AddressService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	trackingInterval := time.Duration(cfg.Tracking.IntervalMS) * time.Millisecond
	if trackingInterval <= 0 {
		trackingInterval = 900 * time.Millisecond
	}

	c := &Container{
		Config:           cfg,
		QueueClient:      queueClient,
		TrackingInterval: trackingInterval,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.MenuItemRepo = repository.NewMenuItemRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.AddressRepo = repository.NewAddressRepository(db)
	c.TrackingRepo = repository.NewTrackingRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.MenuService = service.NewMenuService(c.MenuItemRepo, c.CategoryRepo)
	c.PricingService = service.NewPricingService(c.Config.Pricing)
	c.CartService = service.NewCartService(c.CartRepo, c.MenuItemRepo, c.PricingService)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.CartRepo, c.MenuItemRepo, c.TrackingRepo, c.PricingService, c.QueueClient, c.TrackingInterval)
	c.CheckoutService = service.NewCheckoutService(c.OrderService, c.CartRepo, c.Config.Checkout)
	c.TrackingService = service.NewTrackingService(c.TrackingRepo, c.OrderRepo, c.Config.Tracking.StepPercent)
	c.AddressService = service.NewAddressService(c.AddressRepo)
}
