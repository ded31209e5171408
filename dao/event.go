package dao

import (
	"context"

	"gorm.io/gorm"

	"github.com/Inteli-Club5/trbe-backend/stores/gdb/trbe"
)

func (d *Dao) CreateEvent(c context.Context, event *trbe.Event) error {
	return d.DB.WithContext(c).Create(event).Error
}

func (d *Dao) GetEventByID(c context.Context, id string) (*trbe.Event, error) {
	var event trbe.Event
	err := d.DB.WithContext(c).Where("id = ?", id).First(&event).Error
	return &event, err
}

func (d *Dao) GetEventForUpdate(c context.Context, tx *gorm.DB, id string) (*trbe.Event, error) {
	var event trbe.Event
	err := locked(d.orDB(tx).WithContext(c)).
		Where("id = ?", id).First(&event).Error
	return &event, err
}

func (d *Dao) UpdateEventFields(c context.Context, id string, fields map[string]interface{}) error {
	return d.DB.WithContext(c).Model(&trbe.Event{}).Where("id = ?", id).Updates(fields).Error
}

func (d *Dao) DeleteEvent(c context.Context, id string) error {
	return d.DB.WithContext(c).Where("id = ?", id).Delete(&trbe.Event{}).Error
}

func (d *Dao) ListEvents(c context.Context, page, pageSize int, clubID string, status trbe.EventStatus) ([]trbe.Event, int64, error) {
	query := d.DB.WithContext(c).Model(&trbe.Event{})
	if clubID != "" {
		query = query.Where("club_id = ?", clubID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []trbe.Event
	err := query.Order("start_time ASC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&events).Error
	return events, total, err
}

func (d *Dao) GetRegistration(c context.Context, userID, eventID string) (*trbe.EventRegistration, error) {
	var reg trbe.EventRegistration
	err := d.DB.WithContext(c).Preload("Event").
		Where("user_id = ? AND event_id = ?", userID, eventID).First(&reg).Error
	return &reg, err
}

func (d *Dao) GetRegistrationForUpdate(c context.Context, tx *gorm.DB, userID, eventID string) (*trbe.EventRegistration, error) {
	var reg trbe.EventRegistration
	err := locked(d.orDB(tx).WithContext(c)).
		Where("user_id = ? AND event_id = ?", userID, eventID).First(&reg).Error
	return &reg, err
}

func (d *Dao) CreateRegistration(c context.Context, tx *gorm.DB, reg *trbe.EventRegistration) error {
	db := d.orDB(tx).WithContext(c)
	if err := db.Create(reg).Error; err != nil {
		return err
	}
	return db.Model(&trbe.Event{}).Where("id = ?", reg.EventID).
		UpdateColumn("participants", gorm.Expr("participants + 1")).Error
}

func (d *Dao) SaveRegistration(c context.Context, tx *gorm.DB, reg *trbe.EventRegistration) error {
	return d.orDB(tx).WithContext(c).Save(reg).Error
}

// CancelRegistration flips the row to CANCELLED and releases the seat. The
// row stays so a later register call can revive it.
func (d *Dao) CancelRegistration(c context.Context, reg *trbe.EventRegistration) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		reg.Status = trbe.RegistrationStatusCancelled
		if err := tx.WithContext(c).Save(reg).Error; err != nil {
			return err
		}
		return tx.WithContext(c).Model(&trbe.Event{}).
			Where("id = ? AND participants > 0", reg.EventID).
			UpdateColumn("participants", gorm.Expr("participants - 1")).Error
	})
}

func (d *Dao) ListEventParticipants(c context.Context, eventID string, page, pageSize int) ([]trbe.EventRegistration, int64, error) {
	query := d.DB.WithContext(c).Model(&trbe.EventRegistration{}).Where("event_id = ?", eventID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var regs []trbe.EventRegistration
	err := query.Order("registered_at ASC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&regs).Error
	return regs, total, err
}

func (d *Dao) CreateCheckIn(c context.Context, tx *gorm.DB, checkIn *trbe.CheckIn) error {
	return d.orDB(tx).WithContext(c).Create(checkIn).Error
}

func (d *Dao) ListCheckIns(c context.Context, userID string, page, pageSize int) ([]trbe.CheckIn, int64, error) {
	query := d.DB.WithContext(c).Model(&trbe.CheckIn{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var checkIns []trbe.CheckIn
	err := query.Order("checked_in_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&checkIns).Error
	return checkIns, total, err
}

func (d *Dao) RecentCheckIns(c context.Context, userID string, limit int) ([]trbe.CheckIn, error) {
	var checkIns []trbe.CheckIn
	err := d.DB.WithContext(c).
		Where("user_id = ?", userID).
		Order("checked_in_at DESC").Limit(limit).
		Find(&checkIns).Error
	return checkIns, err
}
