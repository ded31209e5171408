package types

// SocialStatsReq carries the raw off-platform counters for a score update.
// Each field feeds the weighted reputation formula.
type SocialStatsReq struct {
	Likes       int64 `json:"likes" binding:"omitempty,min=0"`
	Comments    int64 `json:"comments" binding:"omitempty,min=0"`
	Retweets    int64 `json:"retweets" binding:"omitempty,min=0"`
	Hashtags    int64 `json:"hashtags" binding:"omitempty,min=0"`
	CheckEvents int64 `json:"check_events" binding:"omitempty,min=0"`
	GamesID     int64 `json:"games_id" binding:"omitempty,min=0"`
	Reports     int64 `json:"reports" binding:"omitempty,min=0"`
}

type SocialScoreResp struct {
	UserID        string `json:"user_id"`
	Score         int64  `json:"score"`
	OnChain       bool   `json:"on_chain"`
	OnChainScore  int64  `json:"on_chain_score,omitempty"`
	WalletAddress string `json:"wallet_address,omitempty"`
	TxHash        string `json:"tx_hash,omitempty"`
}

type RewardFanTokenReq struct {
	ClubID string `json:"club_id" binding:"required"`
	To     string `json:"to" binding:"required,len=42"`
	Token  string `json:"token" binding:"required,len=42"`
	Amount string `json:"amount" binding:"required"`
}

type ChainClubResp struct {
	ClubID    string `json:"club_id"`
	Owner     string `json:"owner"`
	JoinPrice string `json:"join_price"`
	Balance   string `json:"balance"`
	Members   int    `json:"members"`
}
