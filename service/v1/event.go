package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Inteli-Club5/trbe-backend/errcode"
	"github.com/Inteli-Club5/trbe-backend/service/svc"
	"github.com/Inteli-Club5/trbe-backend/stores/gdb/trbe"
	types "github.com/Inteli-Club5/trbe-backend/types/v1"
)

func CreateEvent(ctx context.Context, svcCtx *svc.ServerCtx, req types.CreateEventReq) (*trbe.Event, error) {
	if req.ClubID != "" {
		if _, err := GetClub(ctx, svcCtx, req.ClubID); err != nil {
			return nil, err
		}
	}
	if req.FanGroupID != "" {
		if _, err := GetFanGroup(ctx, svcCtx, req.FanGroupID); err != nil {
			return nil, err
		}
	}

	event := &trbe.Event{
		Title:           req.Title,
		Description:     req.Description,
		Location:        req.Location,
		ClubID:          req.ClubID,
		FanGroupID:      req.FanGroupID,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Status:          trbe.EventStatusScheduled,
		MaxParticipants: req.MaxParticipants,
		Tokens:          req.Tokens,
		Experience:      req.Experience,
	}
	if err := svcCtx.Dao.CreateEvent(ctx, event); err != nil {
		return nil, errors.Wrap(err, "create event")
	}
	return event, nil
}

func GetEvent(ctx context.Context, svcCtx *svc.ServerCtx, eventID string) (*trbe.Event, error) {
	event, err := svcCtx.Dao.GetEventByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errcode.ErrEventNotFound
		}
		return nil, errors.Wrap(err, "get event")
	}
	return event, nil
}

func ListEvents(ctx context.Context, svcCtx *svc.ServerCtx, page, pageSize int, clubID string, status trbe.EventStatus) (*types.PageResult, error) {
	events, total, err := svcCtx.Dao.ListEvents(ctx, page, pageSize, clubID, status)
	if err != nil {
		return nil, errors.Wrap(err, "list events")
	}
	return types.NewPageResult(events, total, page, pageSize), nil
}

func UpdateEvent(ctx context.Context, svcCtx *svc.ServerCtx, eventID string, fields map[string]interface{}) (*trbe.Event, error) {
	if _, err := GetEvent(ctx, svcCtx, eventID); err != nil {
		return nil, err
	}
	if err := svcCtx.Dao.UpdateEventFields(ctx, eventID, fields); err != nil {
		return nil, errors.Wrap(err, "update event")
	}
	return svcCtx.Dao.GetEventByID(ctx, eventID)
}

func DeleteEvent(ctx context.Context, svcCtx *svc.ServerCtx, eventID string) error {
	if _, err := GetEvent(ctx, svcCtx, eventID); err != nil {
		return err
	}
	return svcCtx.Dao.DeleteEvent(ctx, eventID)
}

// RegisterForEvent books a spot. Capacity is enforced under a row lock on
// the event so two concurrent registrations cannot both take the last spot.
func RegisterForEvent(ctx context.Context, svcCtx *svc.ServerCtx, userID, eventID string) (*trbe.EventRegistration, error) {
	if _, err := GetUser(ctx, svcCtx, userID); err != nil {
		return nil, err
	}

	var reg *trbe.EventRegistration
	err := svcCtx.Dao.Transaction(func(tx *gorm.DB) error {
		event, err := svcCtx.Dao.GetEventForUpdate(ctx, tx, eventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errcode.ErrEventNotFound
			}
			return errors.Wrap(err, "load event")
		}
		if event.Status == trbe.EventStatusCancelled || event.Status == trbe.EventStatusFinished {
			return errcode.NewCustomErr("event is not open for registration")
		}
		if event.MaxParticipants > 0 && event.Participants >= event.MaxParticipants {
			return errcode.ErrEventFull
		}

		existing, err := svcCtx.Dao.GetRegistrationForUpdate(ctx, tx, userID, eventID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Wrap(err, "check registration")
		}
		if err == nil {
			if existing.Status != trbe.RegistrationStatusCancelled {
				return errcode.ErrAlreadyRegistered
			}
			existing.Status = trbe.RegistrationStatusRegistered
			existing.RegisteredAt = time.Now()
			if err := svcCtx.Dao.SaveRegistration(ctx, tx, existing); err != nil {
				return errors.Wrap(err, "re-register")
			}
			event.Participants++
			reg = existing
			return tx.Save(event).Error
		}

		reg = &trbe.EventRegistration{UserID: userID, EventID: eventID, Status: trbe.RegistrationStatusRegistered}
		return svcCtx.Dao.CreateRegistration(ctx, tx, reg)
	})
	if err != nil {
		return nil, err
	}
	return reg, nil
}

func CancelEventRegistration(ctx context.Context, svcCtx *svc.ServerCtx, userID, eventID string) error {
	reg, err := svcCtx.Dao.GetRegistration(ctx, userID, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errcode.ErrNotRegistered
		}
		return errors.Wrap(err, "get registration")
	}
	if reg.Status == trbe.RegistrationStatusCancelled {
		return errcode.ErrNotRegistered
	}
	if reg.Status == trbe.RegistrationStatusConfirmed {
		return errcode.NewCustomErr("attendance already confirmed")
	}
	return svcCtx.Dao.CancelRegistration(ctx, reg)
}

// ConfirmAttendance marks the user present and pays the event reward. The
// status flip and the payout share one transaction, so the reward is paid
// exactly once per registration.
func ConfirmAttendance(ctx context.Context, svcCtx *svc.ServerCtx, userID, eventID string) (*trbe.EventRegistration, error) {
	event, err := GetEvent(ctx, svcCtx, eventID)
	if err != nil {
		return nil, err
	}

	var reg *trbe.EventRegistration
	err = svcCtx.Dao.Transaction(func(tx *gorm.DB) error {
		var err error
		reg, err = svcCtx.Dao.GetRegistrationForUpdate(ctx, tx, userID, eventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errcode.ErrNotRegistered
			}
			return errors.Wrap(err, "load registration")
		}
		if reg.Status == trbe.RegistrationStatusConfirmed {
			return errcode.NewCustomErr("attendance already confirmed")
		}
		if reg.Status == trbe.RegistrationStatusCancelled {
			return errcode.ErrNotRegistered
		}

		now := time.Now()
		reg.Status = trbe.RegistrationStatusConfirmed
		reg.ConfirmedAt = &now
		if err := svcCtx.Dao.SaveRegistration(ctx, tx, reg); err != nil {
			return errors.Wrap(err, "save registration")
		}

		user, err := svcCtx.Dao.GetUserForUpdate(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errcode.ErrUserNotFound
			}
			return errors.Wrap(err, "load user")
		}
		if err := awardRewards(ctx, svcCtx, tx, user, event.Tokens, event.Experience, "event:"+event.ID); err != nil {
			return err
		}
		user.TotalEvents++
		return svcCtx.Dao.SaveUser(ctx, tx, user)
	})
	if err != nil {
		return nil, err
	}

	reg.Event = event
	return reg, nil
}

func ListEventParticipants(ctx context.Context, svcCtx *svc.ServerCtx, eventID string, page, pageSize int) (*types.PageResult, error) {
	if _, err := GetEvent(ctx, svcCtx, eventID); err != nil {
		return nil, err
	}
	regs, total, err := svcCtx.Dao.ListEventParticipants(ctx, eventID, page, pageSize)
	if err != nil {
		return nil, errors.Wrap(err, "list participants")
	}
	return types.NewPageResult(regs, total, page, pageSize), nil
}
