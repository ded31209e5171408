package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Inteli-Club5/trbe-backend/errcode"
	"github.com/Inteli-Club5/trbe-backend/service/svc"
	"github.com/Inteli-Club5/trbe-backend/stores/gdb/trbe"
)

// The progression rules live here and nowhere else. The frontend and the
// ScoreUser contract consume these numbers; they do not re-derive them.
const (
	ExperiencePerLevel = 1000

	ReputationFloor = 0
	ReputationCeil  = 1000
)

// LevelForExperience derives the level from cumulative experience:
// level = floor(exp/1000) + 1. Monotonic non-decreasing in exp.
func LevelForExperience(experience int64) int {
	if experience < 0 {
		experience = 0
	}
	return int(experience/ExperiencePerLevel) + 1
}

// ClampReputation bounds a score to [0, 1000]. Idempotent.
func ClampReputation(score int) int {
	if score < ReputationFloor {
		return ReputationFloor
	}
	if score > ReputationCeil {
		return ReputationCeil
	}
	return score
}

// SocialScore applies the weighted formula shared with the ScoreUser
// contract: likes + 2*comments + retweets + 3*hashtags + 3*checkEvents +
// 3*gamesId - 10*reports.
func SocialScore(s *trbe.SocialStats) int64 {
	return s.Likes +
		2*s.Comments +
		s.Retweets +
		3*s.Hashtags +
		3*s.CheckEvents +
		3*s.GamesID -
		10*s.Reports
}

// UpdateTokens applies a signed token delta to the user balance and appends
// the Transaction ledger row, both inside one transaction holding the user
// row lock. A delta that would drive the balance negative is rejected.
func UpdateTokens(ctx context.Context, svcCtx *svc.ServerCtx, userID string, amount int64, txType trbe.TransactionType) (*trbe.User, error) {
	var user *trbe.User
	err := svcCtx.Dao.Transaction(func(tx *gorm.DB) error {
		var err error
		user, err = svcCtx.Dao.GetUserForUpdate(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errcode.ErrUserNotFound
			}
			return errors.Wrap(err, "load user")
		}
		return applyTokenDelta(ctx, svcCtx, tx, user, amount, txType, "")
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// applyTokenDelta mutates an already-locked user row. reference links the
// ledger row back to the task/badge/event that caused the payout.
func applyTokenDelta(ctx context.Context, svcCtx *svc.ServerCtx, tx *gorm.DB, user *trbe.User, amount int64, txType trbe.TransactionType, reference string) error {
	balanceBefore := user.Tokens
	balanceAfter := balanceBefore + amount
	if balanceAfter < 0 {
		return errcode.ErrInsufficientToken
	}

	user.Tokens = balanceAfter
	if err := svcCtx.Dao.SaveUser(ctx, tx, user); err != nil {
		return errors.Wrap(err, "save user balance")
	}

	ledger := &trbe.Transaction{
		UserID:        user.ID,
		Type:          txType,
		Status:        trbe.TransactionStatusCompleted,
		Amount:        amount,
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,
		Description:   fmt.Sprintf("%s tokens", txType),
		Reference:     reference,
		ProcessedAt:   time.Now(),
	}
	if err := svcCtx.Dao.CreateTransaction(ctx, tx, ledger); err != nil {
		return errors.Wrap(err, "append transaction ledger")
	}
	return nil
}

// UpdateExperience adds experience and re-derives the level; both fields are
// written together. The experience path keeps no ledger of its own.
func UpdateExperience(ctx context.Context, svcCtx *svc.ServerCtx, userID string, experience int64) (*trbe.User, error) {
	var user *trbe.User
	err := svcCtx.Dao.Transaction(func(tx *gorm.DB) error {
		var err error
		user, err = svcCtx.Dao.GetUserForUpdate(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errcode.ErrUserNotFound
			}
			return errors.Wrap(err, "load user")
		}
		applyExperienceDelta(user, experience)
		return svcCtx.Dao.SaveUser(ctx, tx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func applyExperienceDelta(user *trbe.User, experience int64) {
	user.Experience += experience
	if user.Experience < 0 {
		user.Experience = 0
	}
	user.Level = LevelForExperience(user.Experience)
}

// UpdateReputation applies a clamped reputation delta and appends the
// ReputationHistory row. The ledger records both the requested points and
// the delta that actually landed after clamping, so the audit log always
// agrees with the stored score.
func UpdateReputation(ctx context.Context, svcCtx *svc.ServerCtx, userID string, points int, action trbe.ReputationAction, category trbe.ReputationCategory, reason string) (*trbe.User, error) {
	var user *trbe.User
	err := svcCtx.Dao.Transaction(func(tx *gorm.DB) error {
		var err error
		user, err = svcCtx.Dao.GetUserForUpdate(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errcode.ErrUserNotFound
			}
			return errors.Wrap(err, "load user")
		}

		before := user.ReputationScore
		user.ReputationScore = ClampReputation(before + points)
		if err := svcCtx.Dao.SaveUser(ctx, tx, user); err != nil {
			return errors.Wrap(err, "save user reputation")
		}

		history := &trbe.ReputationHistory{
			UserID:   user.ID,
			Action:   action,
			Category: category,
			Points:   points,
			Applied:  user.ReputationScore - before,
			Reason:   reason,
		}
		if err := svcCtx.Dao.CreateReputationHistory(ctx, tx, history); err != nil {
			return errors.Wrap(err, "append reputation ledger")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// awardRewards pays tokens and experience to an already-locked user row as
// part of a task/badge/event completion. Runs entirely inside the caller's
// transaction so a payout can never be applied without its status write.
func awardRewards(ctx context.Context, svcCtx *svc.ServerCtx, tx *gorm.DB, user *trbe.User, tokens, experience int64, reference string) error {
	if tokens > 0 {
		if err := applyTokenDelta(ctx, svcCtx, tx, user, tokens, trbe.TransactionTypeEarned, reference); err != nil {
			return err
		}
	}
	if experience > 0 {
		applyExperienceDelta(user, experience)
		if err := svcCtx.Dao.SaveUser(ctx, tx, user); err != nil {
			return errors.Wrap(err, "save user experience")
		}
	}
	return nil
}
