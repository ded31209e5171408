package dao

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Inteli-Club5/trbe-backend/stores/gdb/trbe"
)

func (d *Dao) CreateUser(c context.Context, user *trbe.User) error {
	return d.DB.WithContext(c).Create(user).Error
}

func (d *Dao) GetUserByID(c context.Context, id string) (*trbe.User, error) {
	var user trbe.User
	err := d.DB.WithContext(c).
		Where("id = ? AND deleted_at IS NULL", id).First(&user).Error
	return &user, err
}

func (d *Dao) GetUserByEmail(c context.Context, email string) (*trbe.User, error) {
	var user trbe.User
	err := d.DB.WithContext(c).
		Where("email = ? AND deleted_at IS NULL", email).First(&user).Error
	return &user, err
}

func (d *Dao) GetUserByUsername(c context.Context, username string) (*trbe.User, error) {
	var user trbe.User
	err := d.DB.WithContext(c).
		Where("username = ? AND deleted_at IS NULL", username).First(&user).Error
	return &user, err
}

func (d *Dao) GetUserByWallet(c context.Context, address string) (*trbe.User, error) {
	var user trbe.User
	err := d.DB.WithContext(c).
		Where("LOWER(wallet_address) = LOWER(?) AND deleted_at IS NULL", address).
		First(&user).Error
	return &user, err
}

// GetUserForUpdate locks the user row for the rest of the surrounding
// transaction. Every progression mutation goes through this read so that
// concurrent updates to the same aggregate serialize instead of racing.
func (d *Dao) GetUserForUpdate(c context.Context, tx *gorm.DB, id string) (*trbe.User, error) {
	var user trbe.User
	err := locked(d.orDB(tx).WithContext(c)).
		Where("id = ? AND deleted_at IS NULL", id).First(&user).Error
	return &user, err
}

func (d *Dao) SaveUser(c context.Context, tx *gorm.DB, user *trbe.User) error {
	return d.orDB(tx).WithContext(c).Save(user).Error
}

func (d *Dao) UpdateUserFields(c context.Context, id string, fields map[string]interface{}) error {
	return d.DB.WithContext(c).Model(&trbe.User{}).Where("id = ?", id).Updates(fields).Error
}

func (d *Dao) SoftDeleteUser(c context.Context, id string) error {
	now := time.Now()
	return d.DB.WithContext(c).Model(&trbe.User{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]interface{}{
			"status":     trbe.UserStatusBanned,
			"deleted_at": &now,
		}).Error
}

type UserFilter struct {
	Search string
	Status trbe.UserStatus
	Role   trbe.UserRole
	Level  int
}

func (d *Dao) ListUsers(c context.Context, page, pageSize int, filter UserFilter) ([]trbe.User, int64, error) {
	query := d.DB.WithContext(c).Model(&trbe.User{}).Where("deleted_at IS NULL")
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("username LIKE ? OR display_name LIKE ? OR email LIKE ?", like, like, like)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Level > 0 {
		query = query.Where("level = ?", filter.Level)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []trbe.User
	err := query.Order("created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&users).Error
	return users, total, err
}

// ListUsersRanked orders live users by the given aggregate column,
// descending. orderBy must be a known column; callers pass "tokens" or
// "reputation_score".
func (d *Dao) ListUsersRanked(c context.Context, orderBy string, page, pageSize int) ([]trbe.User, int64, error) {
	query := d.DB.WithContext(c).Model(&trbe.User{}).Where("deleted_at IS NULL")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []trbe.User
	err := query.Order(orderBy + " DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&users).Error
	return users, total, err
}

func (d *Dao) CountUsersAheadByTokens(c context.Context, tokens int64) (int64, error) {
	var count int64
	err := d.DB.WithContext(c).Model(&trbe.User{}).
		Where("tokens > ? AND deleted_at IS NULL", tokens).Count(&count).Error
	return count, err
}

func (d *Dao) CountUsersAheadByReputation(c context.Context, score int) (int64, error) {
	var count int64
	err := d.DB.WithContext(c).Model(&trbe.User{}).
		Where("reputation_score > ? AND deleted_at IS NULL", score).Count(&count).Error
	return count, err
}

func (d *Dao) GetSocialStats(c context.Context, userID string) (*trbe.SocialStats, error) {
	var stats trbe.SocialStats
	err := d.DB.WithContext(c).Where("user_id = ?", userID).First(&stats).Error
	return &stats, err
}

func (d *Dao) SaveSocialStats(c context.Context, tx *gorm.DB, stats *trbe.SocialStats) error {
	return d.orDB(tx).WithContext(c).Save(stats).Error
}

func (d *Dao) GetSocialStatsForUpdate(c context.Context, tx *gorm.DB, userID string) (*trbe.SocialStats, error) {
	var stats trbe.SocialStats
	err := locked(d.orDB(tx).WithContext(c)).
		Where("user_id = ?", userID).First(&stats).Error
	return &stats, err
}
