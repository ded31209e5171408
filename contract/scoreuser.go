package contract

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Inteli-Club5/trbe-backend/config"
)

// Weighted-score ABI of the ScoreUser contract. The contract applies the
// same formula the progression service hosts off-chain; the two ledgers are
// not reconciled.
const scoreUserABI = `[
    {
        "inputs": [
            {"internalType": "address", "name": "user", "type": "address"},
            {"internalType": "uint256", "name": "likes", "type": "uint256"},
            {"internalType": "uint256", "name": "comments", "type": "uint256"},
            {"internalType": "uint256", "name": "retweets", "type": "uint256"},
            {"internalType": "uint256", "name": "hashtag", "type": "uint256"},
            {"internalType": "uint256", "name": "checkEvents", "type": "uint256"},
            {"internalType": "uint256", "name": "gamesId", "type": "uint256"},
            {"internalType": "uint256", "name": "reports", "type": "uint256"}
        ],
        "name": "calculateReputation",
        "outputs": [],
        "stateMutability": "nonpayable",
        "type": "function"
    },
    {
        "inputs": [
            {"internalType": "address", "name": "user", "type": "address"}
        ],
        "name": "getReputation",
        "outputs": [
            {"internalType": "int256", "name": "", "type": "int256"}
        ],
        "stateMutability": "view",
        "type": "function"
    }
]`

// SocialActivity carries the raw counters the contract scores.
type SocialActivity struct {
	Likes       int64
	Comments    int64
	Retweets    int64
	Hashtags    int64
	CheckEvents int64
	GamesID     int64
	Reports     int64
}

type ScoreUserContract struct {
	*baseContract
}

func NewScoreUserContract(cfg *config.Chain) (*ScoreUserContract, error) {
	base, err := newBaseContract(cfg, scoreUserABI, cfg.ScoreUserAddress)
	if err != nil {
		return nil, err
	}
	return &ScoreUserContract{baseContract: base}, nil
}

// CalculateReputation submits the social counters on-chain and returns the
// transaction hash.
func (s *ScoreUserContract) CalculateReputation(ctx context.Context, user string, activity SocialActivity) (string, error) {
	return s.transact(ctx, "calculateReputation",
		common.HexToAddress(user),
		big.NewInt(activity.Likes),
		big.NewInt(activity.Comments),
		big.NewInt(activity.Retweets),
		big.NewInt(activity.Hashtags),
		big.NewInt(activity.CheckEvents),
		big.NewInt(activity.GamesID),
		big.NewInt(activity.Reports),
	)
}

func (s *ScoreUserContract) GetReputation(ctx context.Context, user string) (*big.Int, error) {
	var score *big.Int
	if err := s.call(ctx, &score, "getReputation", common.HexToAddress(user)); err != nil {
		return nil, err
	}
	return score, nil
}
