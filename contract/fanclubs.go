package contract

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/Inteli-Club5/trbe-backend/config"
)

// Subset of the FanClubs contract surface the backend drives. Member joins
// paid by the fans themselves happen from the wallet UI, not here.
const fanClubsABI = `[
    {
        "inputs": [
            {"internalType": "string", "name": "fanClubId", "type": "string"},
            {"internalType": "uint256", "name": "price", "type": "uint256"}
        ],
        "name": "createFanClub",
        "outputs": [],
        "stateMutability": "nonpayable",
        "type": "function"
    },
    {
        "inputs": [],
        "name": "getAllFanClubIds",
        "outputs": [
            {"internalType": "string[]", "name": "", "type": "string[]"}
        ],
        "stateMutability": "view",
        "type": "function"
    },
    {
        "inputs": [
            {"internalType": "string", "name": "fanClubId", "type": "string"}
        ],
        "name": "getJoinPrice",
        "outputs": [
            {"internalType": "uint256", "name": "", "type": "uint256"}
        ],
        "stateMutability": "view",
        "type": "function"
    },
    {
        "inputs": [
            {"internalType": "string", "name": "fanClubId", "type": "string"}
        ],
        "name": "getBalance",
        "outputs": [
            {"internalType": "uint256", "name": "", "type": "uint256"}
        ],
        "stateMutability": "view",
        "type": "function"
    },
    {
        "inputs": [
            {"internalType": "string", "name": "fanClubId", "type": "string"}
        ],
        "name": "getOwner",
        "outputs": [
            {"internalType": "address", "name": "", "type": "address"}
        ],
        "stateMutability": "view",
        "type": "function"
    },
    {
        "inputs": [
            {"internalType": "string", "name": "fanClubId", "type": "string"}
        ],
        "name": "getMembers",
        "outputs": [
            {"internalType": "address[]", "name": "", "type": "address[]"}
        ],
        "stateMutability": "view",
        "type": "function"
    },
    {
        "inputs": [
            {"internalType": "string", "name": "fanClubId", "type": "string"},
            {"internalType": "address", "name": "user", "type": "address"}
        ],
        "name": "checkMember",
        "outputs": [
            {"internalType": "bool", "name": "", "type": "bool"}
        ],
        "stateMutability": "view",
        "type": "function"
    },
    {
        "inputs": [
            {"internalType": "string", "name": "fanClubId", "type": "string"},
            {"internalType": "uint256", "name": "newPrice", "type": "uint256"}
        ],
        "name": "updatePrice",
        "outputs": [],
        "stateMutability": "nonpayable",
        "type": "function"
    },
    {
        "inputs": [
            {"internalType": "string", "name": "fanClubId", "type": "string"},
            {"internalType": "uint256", "name": "amount", "type": "uint256"}
        ],
        "name": "withdraw",
        "outputs": [],
        "stateMutability": "nonpayable",
        "type": "function"
    },
    {
        "inputs": [
            {"internalType": "string", "name": "fanClubId", "type": "string"},
            {"internalType": "address", "name": "token", "type": "address"},
            {"internalType": "address", "name": "to", "type": "address"},
            {"internalType": "uint256", "name": "amount", "type": "uint256"}
        ],
        "name": "rewardFanToken",
        "outputs": [],
        "stateMutability": "nonpayable",
        "type": "function"
    }
]`

type FanClubsContract struct {
	*baseContract
}

func NewFanClubsContract(cfg *config.Chain) (*FanClubsContract, error) {
	base, err := newBaseContract(cfg, fanClubsABI, cfg.FanClubsAddress)
	if err != nil {
		return nil, err
	}
	return &FanClubsContract{baseContract: base}, nil
}

func (f *FanClubsContract) CreateFanClub(ctx context.Context, fanClubID string, price decimal.Decimal) (string, error) {
	return f.transact(ctx, "createFanClub", fanClubID, ToWei(price))
}

func (f *FanClubsContract) GetAllFanClubIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := f.call(ctx, &ids, "getAllFanClubIds"); err != nil {
		return nil, err
	}
	return ids, nil
}

func (f *FanClubsContract) GetJoinPrice(ctx context.Context, fanClubID string) (*big.Int, error) {
	var price *big.Int
	if err := f.call(ctx, &price, "getJoinPrice", fanClubID); err != nil {
		return nil, err
	}
	return price, nil
}

func (f *FanClubsContract) GetBalance(ctx context.Context, fanClubID string) (*big.Int, error) {
	var balance *big.Int
	if err := f.call(ctx, &balance, "getBalance", fanClubID); err != nil {
		return nil, err
	}
	return balance, nil
}

func (f *FanClubsContract) GetOwner(ctx context.Context, fanClubID string) (common.Address, error) {
	var owner common.Address
	if err := f.call(ctx, &owner, "getOwner", fanClubID); err != nil {
		return common.Address{}, err
	}
	return owner, nil
}

func (f *FanClubsContract) GetMembers(ctx context.Context, fanClubID string) ([]common.Address, error) {
	var members []common.Address
	if err := f.call(ctx, &members, "getMembers", fanClubID); err != nil {
		return nil, err
	}
	return members, nil
}

func (f *FanClubsContract) CheckMember(ctx context.Context, fanClubID, user string) (bool, error) {
	var isMember bool
	if err := f.call(ctx, &isMember, "checkMember", fanClubID, common.HexToAddress(user)); err != nil {
		return false, err
	}
	return isMember, nil
}

func (f *FanClubsContract) UpdatePrice(ctx context.Context, fanClubID string, price decimal.Decimal) (string, error) {
	return f.transact(ctx, "updatePrice", fanClubID, ToWei(price))
}

func (f *FanClubsContract) Withdraw(ctx context.Context, fanClubID string, amount decimal.Decimal) (string, error) {
	return f.transact(ctx, "withdraw", fanClubID, ToWei(amount))
}

// RewardFanToken pays an ERC20 reward from the fan club treasury.
func (f *FanClubsContract) RewardFanToken(ctx context.Context, fanClubID, token, to string, amount decimal.Decimal) (string, error) {
	return f.transact(ctx, "rewardFanToken", fanClubID,
		common.HexToAddress(token), common.HexToAddress(to), ToWei(amount))
}
