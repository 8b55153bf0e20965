package main

import (
	"fmt"

	"github.com/tavolo-next/internal/config"
	"github.com/tavolo-next/internal/constants"
	"github.com/tavolo-next/internal/logger"
	"github.com/tavolo-next/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{Slug: "antipasti", Name: "Antipasti", Description: "开胃小食", SortOrder: 500},
		{Slug: "pasta", Name: "Pasta", Description: "手工意面", SortOrder: 400},
		{Slug: "pizza", Name: "Pizza", Description: "柴火窑烤披萨", SortOrder: 300},
		{Slug: "dolci", Name: "Dolci", Description: "意式甜品", SortOrder: 200},
		{Slug: "bevande", Name: "Bevande", Description: "饮品", SortOrder: 100},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	// 获取分类ID
	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	// 添加菜品
	items := []models.MenuItem{
		{
			CategoryID:  categoryIDs["antipasti"],
			Slug:        "bruschetta-classica",
			Name:        "Bruschetta Classica",
			Description: "烤面包片配番茄、罗勒与特级初榨橄榄油",
			Price:       models.NewMoneyFromFloat(7.50),
			ImageURL:    "https://images.unsplash.com/photo-1572695157366-5e585ab2b69f?w=800",
			Tags:        models.StringArray{"招牌", "轻食"},
			IsVegan:     true,
			IsFeatured:  true,
			IsAvailable: true,
			SortOrder:   500,
		},
		{
			CategoryID:  categoryIDs["antipasti"],
			Slug:        "caprese",
			Name:        "Insalata Caprese",
			Description: "水牛芝士、番茄与新鲜罗勒",
			Price:       models.NewMoneyFromFloat(9.00),
			ImageURL:    "https://images.unsplash.com/photo-1608897013039-887f21d8c804?w=800",
			Tags:        models.StringArray{"轻食"},
			IsGlutenFree: true,
			IsAvailable:  true,
			SortOrder:    480,
		},
		{
			CategoryID:  categoryIDs["pasta"],
			Slug:        "spaghetti-carbonara",
			Name:        "Spaghetti alla Carbonara",
			Description: "罗马经典：腌猪颊肉、蛋黄与佩克立诺芝士",
			Price:       models.NewMoneyFromFloat(14.50),
			ImageURL:    "https://images.unsplash.com/photo-1612874742237-6526221588e3?w=800",
			Tags:        models.StringArray{"招牌", "经典"},
			IsFeatured:  true,
			IsAvailable: true,
			Allergens:   "鸡蛋、乳制品、麸质",
			SortOrder:   500,
		},
		{
			CategoryID:  categoryIDs["pasta"],
			Slug:        "penne-arrabbiata",
			Name:        "Penne all'Arrabbiata",
			Description: "辣味番茄酱配蒜与干辣椒",
			Price:       models.NewMoneyFromFloat(12.00),
			ImageURL:    "https://images.unsplash.com/photo-1563379926898-05f4575a45d8?w=800",
			Tags:        models.StringArray{"素食"},
			IsVegan:     true,
			IsSpicy:     true,
			IsAvailable: true,
			SortOrder:   460,
		},
		{
			CategoryID:    categoryIDs["pizza"],
			Slug:          "margherita",
			Name:          "Pizza Margherita",
			Description:   "番茄、马苏里拉与罗勒",
			Price:         models.NewMoneyFromFloat(11.00),
			OriginalPrice: models.NewMoneyFromFloat(13.00),
			ImageURL:      "https://images.unsplash.com/photo-1574071318508-1cdbab80d002?w=800",
			Tags:          models.StringArray{"招牌", "经典"},
			IsFeatured:    true,
			IsAvailable:   true,
			Allergens:     "麸质、乳制品",
			SortOrder:     500,
		},
		{
			CategoryID:  categoryIDs["pizza"],
			Slug:        "diavola",
			Name:        "Pizza Diavola",
			Description: "辣味萨拉米与辣椒油",
			Price:       models.NewMoneyFromFloat(13.50),
			ImageURL:    "https://images.unsplash.com/photo-1565299624946-b28f40a0ae38?w=800",
			Tags:        models.StringArray{"辣味"},
			IsSpicy:     true,
			IsAvailable: true,
			SortOrder:   470,
		},
		{
			CategoryID:   categoryIDs["dolci"],
			Slug:         "tiramisu",
			Name:         "Tiramisù della Casa",
			Description:  "自家制提拉米苏，马斯卡彭与浓缩咖啡",
			Price:        models.NewMoneyFromFloat(6.50),
			ImageURL:     "https://images.unsplash.com/photo-1571877227200-a0d98ea607e9?w=800",
			Tags:         models.StringArray{"招牌", "甜品"},
			IsFeatured:   true,
			IsAvailable:  true,
			Allergens:    "鸡蛋、乳制品",
			SortOrder:    500,
		},
		{
			CategoryID:   categoryIDs["dolci"],
			Slug:         "panna-cotta",
			Name:         "Panna Cotta ai Frutti di Bosco",
			Description:  "意式奶冻配森林莓果酱",
			Price:        models.NewMoneyFromFloat(6.00),
			ImageURL:     "https://images.unsplash.com/photo-1488477181946-6428a0291777?w=800",
			Tags:         models.StringArray{"甜品"},
			IsGlutenFree: true,
			IsAvailable:  true,
			SortOrder:    460,
		},
		{
			CategoryID:  categoryIDs["bevande"],
			Slug:        "limonata",
			Name:        "Limonata Fresca",
			Description: "鲜榨柠檬汽水",
			Price:       models.NewMoneyFromFloat(4.00),
			ImageURL:    "https://images.unsplash.com/photo-1523677011781-c91d1bbe2f9e?w=800",
			Tags:        models.StringArray{"饮品"},
			IsVegan:      true,
			IsGlutenFree: true,
			IsAvailable:  true,
			SortOrder:    500,
		},
		{
			CategoryID:  categoryIDs["bevande"],
			Slug:        "espresso",
			Name:        "Espresso",
			Description: "意式浓缩咖啡",
			Price:       models.NewMoneyFromFloat(2.50),
			Tags:        models.StringArray{"饮品", "咖啡"},
			IsVegan:      true,
			IsGlutenFree: true,
			IsAvailable:  false,
			SortOrder:    480,
		},
	}

	for _, item := range items {
		if item.CategoryID == 0 {
			stdLog.Printf("Skip menu item %s: category_id missing", item.Slug)
			continue
		}
		var existing models.MenuItem
		if err := models.DB.Where("slug = ?", item.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&item).Error; err != nil {
				stdLog.Printf("Failed to create menu item %s: %v", item.Slug, err)
			} else {
				stdLog.Printf("Created menu item: %s", item.Slug)
			}
		} else {
			existing.CategoryID = item.CategoryID
			existing.Name = item.Name
			existing.Description = item.Description
			existing.Price = item.Price
			existing.OriginalPrice = item.OriginalPrice
			existing.ImageURL = item.ImageURL
			existing.Tags = item.Tags
			existing.IsVegan = item.IsVegan
			existing.IsGlutenFree = item.IsGlutenFree
			existing.IsSpicy = item.IsSpicy
			existing.IsFeatured = item.IsFeatured
			existing.IsAvailable = item.IsAvailable
			existing.Allergens = item.Allergens
			existing.SortOrder = item.SortOrder
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update menu item %s: %v", item.Slug, err)
			} else {
				stdLog.Printf("Updated menu item: %s", item.Slug)
			}
		}
	}

	// 添加演示账号
	demoUsers := []struct {
		Email    string
		Password string
		Name     string
		Role     string
	}{
		{Email: "admin@tavolo.local", Password: "admin123456", Name: "Admin", Role: constants.RoleAdmin},
		{Email: "staff@tavolo.local", Password: "staff123456", Name: "Staff", Role: constants.RoleStaff},
		{Email: "mario@tavolo.local", Password: "mario123456", Name: "Mario", Role: constants.RoleCustomer},
	}

	for _, demo := range demoUsers {
		var existing models.User
		if err := models.DB.Where("email = ?", demo.Email).First(&existing).Error; err == nil {
			stdLog.Printf("User already exists: %s", demo.Email)
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(demo.Password), bcrypt.DefaultCost)
		if err != nil {
			stdLog.Printf("Failed to hash password for %s: %v", demo.Email, err)
			continue
		}
		user := models.User{
			Email:        demo.Email,
			PasswordHash: string(hash),
			Name:         demo.Name,
			Role:         demo.Role,
			Status:       constants.UserStatusActive,
		}
		if err := models.DB.Create(&user).Error; err != nil {
			stdLog.Printf("Failed to create user %s: %v", demo.Email, err)
		} else {
			stdLog.Printf("Created user: %s (%s)", demo.Email, demo.Role)
		}
	}

	fmt.Println("\n✅ Seed data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 5 Categories")
	fmt.Println("- 10 Menu items (含 1 个下架示例)")
	fmt.Println("- 3 Demo users (admin / staff / customer)")
}
