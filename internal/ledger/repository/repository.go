package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ironvale/stockledger/internal/ledger/domain"
)

type GormMovementRepository struct {
	db *gorm.DB
}

func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

func (r *GormMovementRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Movement{})
}

// Append inserts a movement. The database sequence supplies the strictly
// increasing ledger id; the struct is never saved again after this.
func (r *GormMovementRepository) Append(movement *domain.Movement) error {
	return r.db.Create(movement).Error
}

func (r *GormMovementRepository) FindByID(id uint) (*domain.Movement, error) {
	var movement domain.Movement
	err := r.db.First(&movement, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrMovementNotFound
	}
	if err != nil {
		return nil, err
	}
	return &movement, nil
}

func (r *GormMovementRepository) FindByProduct(productID uint) ([]domain.Movement, error) {
	var movements []domain.Movement
	err := r.db.Where("product_id = ?", productID).
		Order("id ASC").
		Find(&movements).Error
	return movements, err
}

func (r *GormMovementRepository) FindByProductUpTo(productID, maxID uint) ([]domain.Movement, error) {
	var movements []domain.Movement
	err := r.db.Where("product_id = ? AND id <= ?", productID, maxID).
		Order("id ASC").
		Find(&movements).Error
	return movements, err
}

func (r *GormMovementRepository) FindAll(limit, offset int) ([]domain.Movement, error) {
	var movements []domain.Movement
	err := r.db.Order("id DESC").Limit(limit).Offset(offset).Find(&movements).Error
	return movements, err
}

func (r *GormMovementRepository) LastID() (uint, error) {
	var movement domain.Movement
	err := r.db.Order("id DESC").First(&movement).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return movement.ID, nil
}
