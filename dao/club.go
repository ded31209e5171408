package dao

import (
	"context"

	"gorm.io/gorm"

	"github.com/Inteli-Club5/trbe-backend/stores/gdb/trbe"
)

func (d *Dao) CreateClub(c context.Context, club *trbe.Club) error {
	return d.DB.WithContext(c).Create(club).Error
}

func (d *Dao) GetClubByID(c context.Context, id string) (*trbe.Club, error) {
	var club trbe.Club
	err := d.DB.WithContext(c).Where("id = ?", id).First(&club).Error
	return &club, err
}

func (d *Dao) UpdateClubFields(c context.Context, id string, fields map[string]interface{}) error {
	return d.DB.WithContext(c).Model(&trbe.Club{}).Where("id = ?", id).Updates(fields).Error
}

func (d *Dao) DeleteClub(c context.Context, id string) error {
	return d.DB.WithContext(c).Where("id = ?", id).Delete(&trbe.Club{}).Error
}

func (d *Dao) ListClubs(c context.Context, page, pageSize int, search string) ([]trbe.Club, int64, error) {
	query := d.DB.WithContext(c).Model(&trbe.Club{}).Where("is_active = ?", true)
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clubs []trbe.Club
	err := query.Order("followers_count DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&clubs).Error
	return clubs, total, err
}

func (d *Dao) GetClubFollow(c context.Context, userID string) (*trbe.ClubFollow, error) {
	var follow trbe.ClubFollow
	err := d.DB.WithContext(c).Preload("Club").
		Where("user_id = ?", userID).First(&follow).Error
	return &follow, err
}

func (d *Dao) CreateClubFollow(c context.Context, tx *gorm.DB, follow *trbe.ClubFollow) error {
	db := d.orDB(tx).WithContext(c)
	if err := db.Create(follow).Error; err != nil {
		return err
	}
	return db.Model(&trbe.Club{}).Where("id = ?", follow.ClubID).
		UpdateColumn("followers_count", gorm.Expr("followers_count + 1")).Error
}

func (d *Dao) DeleteClubFollow(c context.Context, tx *gorm.DB, follow *trbe.ClubFollow) error {
	db := d.orDB(tx).WithContext(c)
	if err := db.Where("user_id = ?", follow.UserID).Delete(&trbe.ClubFollow{}).Error; err != nil {
		return err
	}
	return db.Model(&trbe.Club{}).Where("id = ? AND followers_count > 0", follow.ClubID).
		UpdateColumn("followers_count", gorm.Expr("followers_count - 1")).Error
}

func (d *Dao) ListClubFollowers(c context.Context, clubID string, page, pageSize int) ([]trbe.User, int64, error) {
	base := d.DB.WithContext(c).Model(&trbe.ClubFollow{}).Where("club_id = ?", clubID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []trbe.User
	err := d.DB.WithContext(c).Model(&trbe.User{}).
		Joins("JOIN club_follows ON club_follows.user_id = users.id").
		Where("club_follows.club_id = ? AND users.deleted_at IS NULL", clubID).
		Order("club_follows.followed_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&users).Error
	return users, total, err
}
