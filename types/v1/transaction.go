package types

import "time"

type TransactionListReq struct {
	PageReq
	Type     string `form:"type" binding:"omitempty,oneof=EARNED SPENT PURCHASED REFUNDED"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
}

// TransactionSummary totals a user's ledger per transaction type over an
// optional date window.
type TransactionSummary struct {
	UserID    string           `json:"user_id"`
	From      *time.Time       `json:"from,omitempty"`
	To        *time.Time       `json:"to,omitempty"`
	ByType    map[string]int64 `json:"by_type"`
	NetChange int64            `json:"net_change"`
}
