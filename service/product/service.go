/*
 * @module service/product/service
 * @description 产品目录服务：增删改查、模糊搜索、CSV 批量导入
 * @architecture 分层架构 - 业务服务层
 * @documentReference dev_docs/requirements.md
 * @stateFlow 创建/导入 -> 被检验计划与检验引用 -> 更新/删除
 * @rules 产品编码唯一；被检验计划或检验引用的产品不可删除
 * @dependencies inspection-service/service/models, gorm.io/gorm
 * @refs service/product/import.go
 */

package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"inspection-service/service/models"

	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("产品不存在")
	ErrDuplicateCode   = errors.New("产品编码已存在")
	ErrInvalidProduct  = errors.New("产品数据无效")
	ErrProductInUse    = errors.New("产品已被检验计划或检验记录引用")
)

// 搜索结果上限
const searchLimit = 20

// ListFilter 列表过滤条件
type ListFilter struct {
	Page         int
	Size         int
	BusinessUnit string
	Category     string
}

// Service 产品服务
type Service struct {
	db *gorm.DB
}

// NewService 创建产品服务实例
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Validate 校验并规整产品字段
func Validate(p *models.Product) error {
	p.Code = strings.TrimSpace(p.Code)
	p.EAN = strings.TrimSpace(p.EAN)
	p.Description = strings.TrimSpace(p.Description)
	p.Category = strings.TrimSpace(p.Category)
	p.BusinessUnit = strings.ToUpper(strings.TrimSpace(p.BusinessUnit))

	if p.Code == "" {
		return fmt.Errorf("%w: 产品编码不能为空", ErrInvalidProduct)
	}
	if p.Description == "" {
		return fmt.Errorf("%w: 产品描述不能为空", ErrInvalidProduct)
	}
	if p.Category == "" {
		return fmt.Errorf("%w: 产品类别不能为空", ErrInvalidProduct)
	}
	if p.BusinessUnit == "" {
		p.BusinessUnit = models.BusinessUnitNA
	}
	if !models.IsValidBusinessUnit(p.BusinessUnit) {
		return fmt.Errorf("%w: 事业部无效 %q", ErrInvalidProduct, p.BusinessUnit)
	}
	return nil
}

// Create 创建产品
func (s *Service) Create(ctx context.Context, p *models.Product) error {
	if err := Validate(p); err != nil {
		return err
	}
	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.Product{}).Where("code = ?", p.Code).Count(&count).Error; err != nil {
		return fmt.Errorf("检查产品编码失败: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateCode, p.Code)
	}

	if err := db.Create(p).Error; err != nil {
		return fmt.Errorf("创建产品失败: %w", err)
	}
	return nil
}

// Get 获取产品详情
func (s *Service) Get(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("查询产品失败: %w", err)
	}
	return &p, nil
}

// GetByCode 按产品编码获取
func (s *Service) GetByCode(ctx context.Context, code string) (*models.Product, error) {
	var p models.Product
	if err := s.db.WithContext(ctx).First(&p, "code = ?", strings.TrimSpace(code)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("查询产品失败: %w", err)
	}
	return &p, nil
}

// List 分页查询产品
func (s *Service) List(ctx context.Context, filter ListFilter) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Product{})
	if filter.BusinessUnit != "" {
		query = query.Where("business_unit = ?", strings.ToUpper(filter.BusinessUnit))
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("统计产品失败: %w", err)
	}

	page, size := normalizePage(filter.Page, filter.Size)
	err := query.Order("code ASC").Offset((page - 1) * size).Limit(size).Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("查询产品列表失败: %w", err)
	}
	return products, total, nil
}

// Search 按编码、EAN 或描述模糊搜索，忽略大小写，最多返回 20 条
func (s *Service) Search(ctx context.Context, keyword string) ([]models.Product, error) {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return []models.Product{}, nil
	}
	pattern := "%" + keyword + "%"

	var products []models.Product
	err := s.db.WithContext(ctx).
		Where("LOWER(code) LIKE ? OR ean LIKE ? OR LOWER(description) LIKE ?", pattern, pattern, pattern).
		Order("code ASC").
		Limit(searchLimit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("搜索产品失败: %w", err)
	}
	return products, nil
}

// Update 更新产品
func (s *Service) Update(ctx context.Context, id string, changes *models.Product) (*models.Product, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	changes.ID = existing.ID
	changes.CreatedAt = existing.CreatedAt
	if err := Validate(changes); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	if changes.Code != existing.Code {
		var count int64
		if err := db.Model(&models.Product{}).Where("code = ? AND id <> ?", changes.Code, id).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("检查产品编码失败: %w", err)
		}
		if count > 0 {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, changes.Code)
		}
	}

	if err := db.Save(changes).Error; err != nil {
		return nil, fmt.Errorf("更新产品失败: %w", err)
	}
	return changes, nil
}

// Delete 删除产品
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	db := s.db.WithContext(ctx)

	var planCount, inspectionCount int64
	db.Model(&models.InspectionPlan{}).Where("product_id = ?", id).Count(&planCount)
	db.Model(&models.Inspection{}).Where("product_id = ?", id).Count(&inspectionCount)
	if planCount > 0 || inspectionCount > 0 {
		return ErrProductInUse
	}

	if err := db.Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("删除产品失败: %w", err)
	}
	return nil
}

func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}
	if size > 100 {
		size = 100
	}
	return page, size
}
