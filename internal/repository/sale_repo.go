package repository

import (
	"context"

	"shopledger/internal/model"

	"gorm.io/gorm"
)

type SaleRepository interface {
	CreateTx(ctx context.Context, tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uint) (*model.Sale, error)
	List(ctx context.Context, limit int) ([]model.Sale, error)
	DeleteTx(tx *gorm.DB, id uint) error
	ExistsByProductID(ctx context.Context, productID uint) (bool, error)
	DB() *gorm.DB // exposes the DB for transaction creation in the service layer
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) CreateTx(ctx context.Context, tx *gorm.DB, s *model.Sale) error {
	return tx.WithContext(ctx).Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uint) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).Preload("Product").First(&s, id).Error
	return &s, err
}

func (r *saleRepo) List(ctx context.Context, limit int) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).Preload("Product").
		Order("sale_date DESC").
		Limit(limit).
		Find(&sales).Error
	return sales, err
}

// DeleteTx removes the sale row, reporting ErrRecordNotFound when the
// row was already gone. Callers rely on this to restore stock exactly
// once when two deletes race on the same sale.
func (r *saleRepo) DeleteTx(tx *gorm.DB, id uint) error {
	res := tx.Delete(&model.Sale{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *saleRepo) ExistsByProductID(ctx context.Context, productID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Where("product_id = ?", productID).Limit(1).Count(&count).Error
	return count > 0, err
}
