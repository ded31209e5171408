package dao

import (
	"context"

	"gorm.io/gorm"

	"github.com/Inteli-Club5/trbe-backend/stores/gdb/trbe"
)

func (d *Dao) CreateBadge(c context.Context, badge *trbe.Badge) error {
	return d.DB.WithContext(c).Create(badge).Error
}

func (d *Dao) GetBadgeByID(c context.Context, id string) (*trbe.Badge, error) {
	var badge trbe.Badge
	err := d.DB.WithContext(c).Where("id = ?", id).First(&badge).Error
	return &badge, err
}

func (d *Dao) UpdateBadgeFields(c context.Context, id string, fields map[string]interface{}) error {
	return d.DB.WithContext(c).Model(&trbe.Badge{}).Where("id = ?", id).Updates(fields).Error
}

func (d *Dao) DeleteBadge(c context.Context, id string) error {
	return d.DB.WithContext(c).Where("id = ?", id).Delete(&trbe.Badge{}).Error
}

func (d *Dao) ListBadges(c context.Context, page, pageSize int, rarity trbe.BadgeRarity, onlyActive bool) ([]trbe.Badge, int64, error) {
	query := d.DB.WithContext(c).Model(&trbe.Badge{})
	if rarity != "" {
		query = query.Where("rarity = ?", rarity)
	}
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var badges []trbe.Badge
	err := query.Order("created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&badges).Error
	return badges, total, err
}

func (d *Dao) GetUserBadge(c context.Context, userID, badgeID string) (*trbe.UserBadge, error) {
	var userBadge trbe.UserBadge
	err := d.DB.WithContext(c).Preload("Badge").
		Where("user_id = ? AND badge_id = ?", userID, badgeID).First(&userBadge).Error
	return &userBadge, err
}

func (d *Dao) GetUserBadgeForUpdate(c context.Context, tx *gorm.DB, userID, badgeID string) (*trbe.UserBadge, error) {
	var userBadge trbe.UserBadge
	err := locked(d.orDB(tx).WithContext(c)).
		Where("user_id = ? AND badge_id = ?", userID, badgeID).First(&userBadge).Error
	return &userBadge, err
}

func (d *Dao) CreateUserBadge(c context.Context, tx *gorm.DB, userBadge *trbe.UserBadge) error {
	return d.orDB(tx).WithContext(c).Create(userBadge).Error
}

func (d *Dao) SaveUserBadge(c context.Context, tx *gorm.DB, userBadge *trbe.UserBadge) error {
	return d.orDB(tx).WithContext(c).Save(userBadge).Error
}

func (d *Dao) ListUserBadges(c context.Context, userID string, page, pageSize int) ([]trbe.UserBadge, int64, error) {
	query := d.DB.WithContext(c).Model(&trbe.UserBadge{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var userBadges []trbe.UserBadge
	err := query.Preload("Badge").Order("updated_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&userBadges).Error
	return userBadges, total, err
}

func (d *Dao) RecentEarnedUserBadges(c context.Context, userID string, limit int) ([]trbe.UserBadge, error) {
	var userBadges []trbe.UserBadge
	err := d.DB.WithContext(c).Preload("Badge").
		Where("user_id = ? AND earned_at IS NOT NULL", userID).
		Order("earned_at DESC").Limit(limit).
		Find(&userBadges).Error
	return userBadges, err
}

// PopularBadges orders badges by how many users have earned them.
func (d *Dao) PopularBadges(c context.Context, limit int) ([]trbe.Badge, error) {
	var badges []trbe.Badge
	err := d.DB.WithContext(c).Model(&trbe.Badge{}).
		Joins("LEFT JOIN user_badges ON user_badges.badge_id = badges.id AND user_badges.earned_at IS NOT NULL").
		Group("badges.id").
		Order("COUNT(user_badges.id) DESC").
		Limit(limit).
		Find(&badges).Error
	return badges, err
}
