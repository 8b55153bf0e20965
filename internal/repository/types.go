package repository

import "time"

// MenuListFilter 查询菜品列表的过滤条件
type MenuListFilter struct {
	Page          int
	PageSize      int
	CategoryID    string
	Search        string
	MinPrice      *float64
	MaxPrice      *float64
	IsVegan       bool
	IsGlutenFree  bool
	IsSpicy       bool
	OnlyFeatured  bool
	OnlyAvailable bool
	WithCategory  bool
	SortBy        string // name / price / created_at
	SortOrder     string // asc / desc
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	OrderNo     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
