package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Inteli-Club5/trbe-backend/dao"
	"github.com/Inteli-Club5/trbe-backend/errcode"
	"github.com/Inteli-Club5/trbe-backend/service/svc"
	"github.com/Inteli-Club5/trbe-backend/stores/gdb/trbe"
	types "github.com/Inteli-Club5/trbe-backend/types/v1"
)

func GetTransaction(ctx context.Context, svcCtx *svc.ServerCtx, id string) (*trbe.Transaction, error) {
	t, err := svcCtx.Dao.GetTransactionByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errcode.ErrNotFound
		}
		return nil, errors.Wrap(err, "get transaction")
	}
	return t, nil
}

func ListUserTransactions(ctx context.Context, svcCtx *svc.ServerCtx, userID string, req types.TransactionListReq) (*types.PageResult, error) {
	if _, err := GetUser(ctx, svcCtx, userID); err != nil {
		return nil, err
	}

	filter := dao.TransactionFilter{Type: trbe.TransactionType(req.Type)}
	if req.DateFrom != "" {
		from, err := time.Parse(time.RFC3339, req.DateFrom)
		if err != nil {
			return nil, errcode.ErrInvalidParams
		}
		filter.DateFrom = &from
	}
	if req.DateTo != "" {
		to, err := time.Parse(time.RFC3339, req.DateTo)
		if err != nil {
			return nil, errcode.ErrInvalidParams
		}
		filter.DateTo = &to
	}

	transactions, total, err := svcCtx.Dao.ListTransactions(ctx, userID, req.Page, req.PageSize, filter)
	if err != nil {
		return nil, errors.Wrap(err, "list transactions")
	}
	return types.NewPageResult(transactions, total, req.Page, req.PageSize), nil
}

// GetTransactionSummary totals the user's ledger per type. EARNED, PURCHASED
// and REFUNDED count toward the net; SPENT amounts are already negative.
func GetTransactionSummary(ctx context.Context, svcCtx *svc.ServerCtx, userID string, from, to *time.Time) (*types.TransactionSummary, error) {
	if _, err := GetUser(ctx, svcCtx, userID); err != nil {
		return nil, err
	}

	sums, err := svcCtx.Dao.SumTransactionsByType(ctx, userID, from, to)
	if err != nil {
		return nil, errors.Wrap(err, "sum transactions")
	}

	summary := &types.TransactionSummary{
		UserID: userID,
		From:   from,
		To:     to,
		ByType: make(map[string]int64, len(sums)),
	}
	for txType, amount := range sums {
		summary.ByType[string(txType)] = amount
		summary.NetChange += amount
	}
	return summary, nil
}

func GetReputationHistory(ctx context.Context, svcCtx *svc.ServerCtx, userID string, page, pageSize int) (*types.PageResult, error) {
	if _, err := GetUser(ctx, svcCtx, userID); err != nil {
		return nil, err
	}
	history, total, err := svcCtx.Dao.ListReputationHistory(ctx, userID, page, pageSize)
	if err != nil {
		return nil, errors.Wrap(err, "list reputation history")
	}
	return types.NewPageResult(history, total, page, pageSize), nil
}
