package dao

import (
	"context"

	"gorm.io/gorm"

	"github.com/Inteli-Club5/trbe-backend/stores/gdb/trbe"
)

func (d *Dao) CreateFanGroup(c context.Context, group *trbe.FanGroup) error {
	return d.DB.WithContext(c).Create(group).Error
}

func (d *Dao) GetFanGroupByID(c context.Context, id string) (*trbe.FanGroup, error) {
	var group trbe.FanGroup
	err := d.DB.WithContext(c).Where("id = ?", id).First(&group).Error
	return &group, err
}

func (d *Dao) UpdateFanGroupFields(c context.Context, id string, fields map[string]interface{}) error {
	return d.DB.WithContext(c).Model(&trbe.FanGroup{}).Where("id = ?", id).Updates(fields).Error
}

func (d *Dao) DeleteFanGroup(c context.Context, id string) error {
	return d.DB.WithContext(c).Where("id = ?", id).Delete(&trbe.FanGroup{}).Error
}

func (d *Dao) ListFanGroups(c context.Context, page, pageSize int, clubID, search string) ([]trbe.FanGroup, int64, error) {
	query := d.DB.WithContext(c).Model(&trbe.FanGroup{}).Where("is_active = ?", true)
	if clubID != "" {
		query = query.Where("club_id = ?", clubID)
	}
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var groups []trbe.FanGroup
	err := query.Order("members_count DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&groups).Error
	return groups, total, err
}

func (d *Dao) GetMembership(c context.Context, userID string) (*trbe.FanGroupMembership, error) {
	var membership trbe.FanGroupMembership
	err := d.DB.WithContext(c).Preload("FanGroup").
		Where("user_id = ?", userID).First(&membership).Error
	return &membership, err
}

func (d *Dao) GetGroupMembership(c context.Context, groupID, userID string) (*trbe.FanGroupMembership, error) {
	var membership trbe.FanGroupMembership
	err := d.DB.WithContext(c).
		Where("fan_group_id = ? AND user_id = ?", groupID, userID).First(&membership).Error
	return &membership, err
}

// CreateMembership inserts the row; public groups approve on the spot, so
// the members counter follows the initial status.
func (d *Dao) CreateMembership(c context.Context, membership *trbe.FanGroupMembership) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(c).Create(membership).Error; err != nil {
			return err
		}
		if membership.Status != trbe.MembershipStatusApproved {
			return nil
		}
		return tx.WithContext(c).Model(&trbe.FanGroup{}).
			Where("id = ?", membership.FanGroupID).
			UpdateColumn("members_count", gorm.Expr("members_count + 1")).Error
	})
}

func (d *Dao) SaveMembership(c context.Context, membership *trbe.FanGroupMembership) error {
	return d.DB.WithContext(c).Save(membership).Error
}

// CancelMembership removes the row so the user can join another group; the
// members counter follows.
func (d *Dao) CancelMembership(c context.Context, membership *trbe.FanGroupMembership) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		wasApproved := membership.Status == trbe.MembershipStatusApproved
		if err := tx.WithContext(c).Where("user_id = ?", membership.UserID).
			Delete(&trbe.FanGroupMembership{}).Error; err != nil {
			return err
		}
		if !wasApproved {
			return nil
		}
		return tx.WithContext(c).Model(&trbe.FanGroup{}).
			Where("id = ? AND members_count > 0", membership.FanGroupID).
			UpdateColumn("members_count", gorm.Expr("members_count - 1")).Error
	})
}

func (d *Dao) ApproveMembership(c context.Context, membership *trbe.FanGroupMembership) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		membership.Status = trbe.MembershipStatusApproved
		if err := tx.WithContext(c).Save(membership).Error; err != nil {
			return err
		}
		return tx.WithContext(c).Model(&trbe.FanGroup{}).
			Where("id = ?", membership.FanGroupID).
			UpdateColumn("members_count", gorm.Expr("members_count + 1")).Error
	})
}

func (d *Dao) ListGroupMembers(c context.Context, groupID string, status trbe.MembershipStatus, page, pageSize int) ([]trbe.FanGroupMembership, int64, error) {
	query := d.DB.WithContext(c).Model(&trbe.FanGroupMembership{}).
		Where("fan_group_id = ?", groupID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var members []trbe.FanGroupMembership
	err := query.Order("joined_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&members).Error
	return members, total, err
}
