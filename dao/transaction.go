package dao

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Inteli-Club5/trbe-backend/stores/gdb/trbe"
)

func (d *Dao) CreateTransaction(c context.Context, tx *gorm.DB, t *trbe.Transaction) error {
	return d.orDB(tx).WithContext(c).Create(t).Error
}

func (d *Dao) GetTransactionByID(c context.Context, id string) (*trbe.Transaction, error) {
	var t trbe.Transaction
	err := d.DB.WithContext(c).Where("id = ?", id).First(&t).Error
	return &t, err
}

type TransactionFilter struct {
	Type     trbe.TransactionType
	DateFrom *time.Time
	DateTo   *time.Time
}

func (d *Dao) ListTransactions(c context.Context, userID string, page, pageSize int, filter TransactionFilter) ([]trbe.Transaction, int64, error) {
	query := d.DB.WithContext(c).Model(&trbe.Transaction{}).Where("user_id = ?", userID)
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.DateFrom != nil {
		query = query.Where("created_at >= ?", filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("created_at <= ?", filter.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var transactions []trbe.Transaction
	err := query.Order("created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&transactions).Error
	return transactions, total, err
}

func (d *Dao) RecentTransactions(c context.Context, userID string, limit int) ([]trbe.Transaction, error) {
	var transactions []trbe.Transaction
	err := d.DB.WithContext(c).
		Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).
		Find(&transactions).Error
	return transactions, err
}

// SumTransactionsByType returns the summed amount per transaction type for
// the user within the optional window.
func (d *Dao) SumTransactionsByType(c context.Context, userID string, from, to *time.Time) (map[trbe.TransactionType]int64, error) {
	type row struct {
		Type  trbe.TransactionType
		Total int64
	}
	query := d.DB.WithContext(c).Model(&trbe.Transaction{}).
		Select("type, SUM(amount) AS total").
		Where("user_id = ?", userID).
		Group("type")
	if from != nil {
		query = query.Where("created_at >= ?", from)
	}
	if to != nil {
		query = query.Where("created_at <= ?", to)
	}

	var rows []row
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	sums := make(map[trbe.TransactionType]int64, len(rows))
	for _, r := range rows {
		sums[r.Type] = r.Total
	}
	return sums, nil
}

func (d *Dao) CreateReputationHistory(c context.Context, tx *gorm.DB, h *trbe.ReputationHistory) error {
	return d.orDB(tx).WithContext(c).Create(h).Error
}

func (d *Dao) ListReputationHistory(c context.Context, userID string, page, pageSize int) ([]trbe.ReputationHistory, int64, error) {
	query := d.DB.WithContext(c).Model(&trbe.ReputationHistory{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var history []trbe.ReputationHistory
	err := query.Order("created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&history).Error
	return history, total, err
}
