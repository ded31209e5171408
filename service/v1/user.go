package service

import (
	"context"
	"sort"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/zeromicro/go-zero/core/mr"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Inteli-Club5/trbe-backend/dao"
	"github.com/Inteli-Club5/trbe-backend/errcode"
	"github.com/Inteli-Club5/trbe-backend/logger/xzap"
	"github.com/Inteli-Club5/trbe-backend/service/svc"
	"github.com/Inteli-Club5/trbe-backend/stores/gdb/trbe"
	types "github.com/Inteli-Club5/trbe-backend/types/v1"
)

const recentActivityLimit = 10

func Register(ctx context.Context, svcCtx *svc.ServerCtx, req types.RegisterReq) (*trbe.User, error) {
	if _, err := svcCtx.Dao.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, errcode.ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "check email")
	}
	if _, err := svcCtx.Dao.GetUserByUsername(ctx, req.Username); err == nil {
		return nil, errcode.ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "check username")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	user := &trbe.User{
		Email:           req.Email,
		Username:        req.Username,
		PasswordHash:    string(hash),
		DisplayName:     req.DisplayName,
		WalletAddress:   req.WalletAddress,
		Role:            trbe.UserRoleFan,
		Status:          trbe.UserStatusActive,
		Level:           1,
		ReputationScore: 500,
	}
	if user.DisplayName == "" {
		user.DisplayName = req.Username
	}
	if err := svcCtx.Dao.CreateUser(ctx, user); err != nil {
		return nil, errors.Wrap(err, "create user")
	}
	return user, nil
}

func Login(ctx context.Context, svcCtx *svc.ServerCtx, req types.LoginReq) (*types.LoginResp, error) {
	user, err := svcCtx.Dao.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errcode.ErrUnauthorized
		}
		return nil, errors.Wrap(err, "get user")
	}
	if user.Status == trbe.UserStatusBanned || user.Status == trbe.UserStatusSuspended {
		return nil, errcode.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errcode.ErrUnauthorized
	}

	expiresAt := time.Now().Add(time.Duration(svcCtx.C.Jwt.ExpireHours) * time.Hour)
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"exp":  expiresAt.Unix(),
		"iat":  time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(svcCtx.C.Jwt.Secret))
	if err != nil {
		return nil, errors.Wrap(err, "sign token")
	}

	return &types.LoginResp{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func GetUser(ctx context.Context, svcCtx *svc.ServerCtx, userID string) (*trbe.User, error) {
	user, err := svcCtx.Dao.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errcode.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "get user")
	}
	return user, nil
}

func GetUserByWallet(ctx context.Context, svcCtx *svc.ServerCtx, address string) (*trbe.User, error) {
	user, err := svcCtx.Dao.GetUserByWallet(ctx, address)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errcode.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "get user by wallet")
	}
	return user, nil
}

func UpdateUser(ctx context.Context, svcCtx *svc.ServerCtx, userID string, req types.UpdateUserReq) (*trbe.User, error) {
	if _, err := GetUser(ctx, svcCtx, userID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
	}
	if req.DisplayName != nil {
		fields["display_name"] = *req.DisplayName
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if req.Avatar != nil {
		fields["avatar"] = *req.Avatar
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.Language != nil {
		fields["language"] = *req.Language
	}
	if req.WalletAddress != nil {
		fields["wallet_address"] = *req.WalletAddress
	}
	if len(fields) == 0 {
		return svcCtx.Dao.GetUserByID(ctx, userID)
	}
	if err := svcCtx.Dao.UpdateUserFields(ctx, userID, fields); err != nil {
		return nil, errors.Wrap(err, "update user")
	}
	return svcCtx.Dao.GetUserByID(ctx, userID)
}

// DeleteUser soft-deletes: the row stays for ledger integrity, the account
// is banned and excluded from every read path.
func DeleteUser(ctx context.Context, svcCtx *svc.ServerCtx, userID string) error {
	if _, err := GetUser(ctx, svcCtx, userID); err != nil {
		return err
	}
	return svcCtx.Dao.SoftDeleteUser(ctx, userID)
}

func ListUsers(ctx context.Context, svcCtx *svc.ServerCtx, page, pageSize int, filter dao.UserFilter) (*types.PageResult, error) {
	users, total, err := svcCtx.Dao.ListUsers(ctx, page, pageSize, filter)
	if err != nil {
		return nil, errors.Wrap(err, "list users")
	}
	return types.NewPageResult(users, total, page, pageSize), nil
}

// GetUserStats returns the progression snapshot for the profile page.
func GetUserStats(ctx context.Context, svcCtx *svc.ServerCtx, userID string) (*types.UserStatsResp, error) {
	user, err := GetUser(ctx, svcCtx, userID)
	if err != nil {
		return nil, err
	}
	return &types.UserStatsResp{
		UserID:        user.ID,
		Level:         user.Level,
		Experience:    user.Experience,
		NextLevelAt:   int64(user.Level) * ExperiencePerLevel,
		Tokens:        user.Tokens,
		Reputation:    user.ReputationScore,
		TotalTasks:    user.TotalTasks,
		TotalBadges:   user.TotalBadges,
		TotalCheckIns: user.TotalCheckIns,
		TotalEvents:   user.TotalEvents,
	}, nil
}

// GetUserRank positions the user on both leaderboards. Rank is 1 plus the
// number of users strictly ahead.
func GetUserRank(ctx context.Context, svcCtx *svc.ServerCtx, userID string) (*types.UserRankResp, error) {
	user, err := GetUser(ctx, svcCtx, userID)
	if err != nil {
		return nil, err
	}
	aheadTokens, err := svcCtx.Dao.CountUsersAheadByTokens(ctx, user.Tokens)
	if err != nil {
		return nil, errors.Wrap(err, "token rank")
	}
	aheadRep, err := svcCtx.Dao.CountUsersAheadByReputation(ctx, user.ReputationScore)
	if err != nil {
		return nil, errors.Wrap(err, "reputation rank")
	}
	return &types.UserRankResp{
		UserID:         user.ID,
		TokenRank:      aheadTokens + 1,
		ReputationRank: aheadRep + 1,
		Tokens:         user.Tokens,
		Reputation:     user.ReputationScore,
	}, nil
}

// GetRecentActivity fans out to the four activity sources concurrently and
// merges them into one feed ordered by timestamp, newest first.
func GetRecentActivity(ctx context.Context, svcCtx *svc.ServerCtx, userID string, limit int) ([]types.ActivityItem, error) {
	if _, err := GetUser(ctx, svcCtx, userID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 50 {
		limit = recentActivityLimit
	}

	var (
		tasks        []trbe.UserTask
		badges       []trbe.UserBadge
		transactions []trbe.Transaction
		checkIns     []trbe.CheckIn
	)
	err := mr.Finish(
		func() (err error) {
			tasks, err = svcCtx.Dao.RecentCompletedUserTasks(ctx, userID, limit)
			return err
		},
		func() (err error) {
			badges, err = svcCtx.Dao.RecentEarnedUserBadges(ctx, userID, limit)
			return err
		},
		func() (err error) {
			transactions, err = svcCtx.Dao.RecentTransactions(ctx, userID, limit)
			return err
		},
		func() (err error) {
			checkIns, err = svcCtx.Dao.RecentCheckIns(ctx, userID, limit)
			return err
		},
	)
	if err != nil {
		xzap.WithContext(ctx).Error("recent activity fan-out failed", zap.Error(err))
		return nil, errors.Wrap(err, "recent activity")
	}

	items := make([]types.ActivityItem, 0, len(tasks)+len(badges)+len(transactions)+len(checkIns))
	for i := range tasks {
		ts := tasks[i].UpdatedAt
		if tasks[i].CompletedAt != nil {
			ts = *tasks[i].CompletedAt
		}
		items = append(items, types.ActivityItem{Type: "task_completed", Timestamp: ts, Detail: tasks[i]})
	}
	for i := range badges {
		if badges[i].EarnedAt == nil {
			continue
		}
		items = append(items, types.ActivityItem{Type: "badge_earned", Timestamp: *badges[i].EarnedAt, Detail: badges[i]})
	}
	for i := range transactions {
		items = append(items, types.ActivityItem{Type: "transaction", Timestamp: transactions[i].CreatedAt, Detail: transactions[i]})
	}
	for i := range checkIns {
		items = append(items, types.ActivityItem{Type: "check_in", Timestamp: checkIns[i].CheckedInAt, Detail: checkIns[i]})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
