package contract

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/shopspring/decimal"

	"github.com/Inteli-Club5/trbe-backend/config"
)

const (
	callTimeout = 30 * time.Second
	mineTimeout = 120 * time.Second
	dialRetries = 3
)

// baseContract carries the pieces both contract clients share: the node
// connection, the parsed ABI and the signer key.
type baseContract struct {
	client  *ethclient.Client
	cfg     *config.Chain
	abi     abi.ABI
	address common.Address
}

func newBaseContract(cfg *config.Chain, rawABI, address string) (*baseContract, error) {
	var client *ethclient.Client
	var err error

	for i := 0; i < dialRetries; i++ {
		client, err = dialWithTimeout(cfg.RPCEndpoint, callTimeout)
		if err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Ethereum node after %d attempts: %v", dialRetries, err)
	}

	parsedABI, err := abi.JSON(strings.NewReader(rawABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse contract ABI: %v", err)
	}

	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("invalid contract address: %s", address)
	}

	return &baseContract{
		client:  client,
		cfg:     cfg,
		abi:     parsedABI,
		address: common.HexToAddress(address),
	}, nil
}

func dialWithTimeout(endpoint string, timeout time.Duration) (*ethclient.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := ethclient.DialContext(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Ethereum node: %v", err)
	}
	return client, nil
}

// call executes a read-only contract method and unpacks the result into out.
func (b *baseContract) call(ctx context.Context, out interface{}, method string, args ...interface{}) error {
	data, err := b.abi.Pack(method, args...)
	if err != nil {
		return fmt.Errorf("failed to pack %s call: %v", method, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	result, err := b.client.CallContract(callCtx, ethereum.CallMsg{
		To:   &b.address,
		Data: data,
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to call %s: %v", method, err)
	}

	if err := b.abi.UnpackIntoInterface(out, method, result); err != nil {
		return fmt.Errorf("failed to unpack %s result: %v", method, err)
	}
	return nil
}

// transact signs and sends a state-changing contract method with the
// configured private key and waits for the transaction to be mined.
func (b *baseContract) transact(ctx context.Context, method string, args ...interface{}) (string, error) {
	privateKey, err := crypto.HexToECDSA(b.cfg.PrivateKey)
	if err != nil {
		return "", fmt.Errorf("invalid private key: %v", err)
	}

	data, err := b.abi.Pack(method, args...)
	if err != nil {
		return "", fmt.Errorf("failed to pack %s transaction: %v", method, err)
	}

	from := crypto.PubkeyToAddress(privateKey.PublicKey)

	nonceCtx, cancel := context.WithTimeout(ctx, callTimeout)
	nonce, err := b.client.PendingNonceAt(nonceCtx, from)
	cancel()
	if err != nil {
		return "", fmt.Errorf("failed to get nonce: %v", err)
	}

	gasCtx, cancel := context.WithTimeout(ctx, callTimeout)
	gasLimit, err := b.client.EstimateGas(gasCtx, ethereum.CallMsg{
		From:  from,
		To:    &b.address,
		Data:  data,
		Value: big.NewInt(0),
	})
	cancel()
	if err != nil {
		return "", fmt.Errorf("failed to estimate gas: %v", err)
	}

	tx := types.NewTransaction(nonce, b.address, big.NewInt(0), gasLimit,
		big.NewInt(b.cfg.GasPrice), data)

	signedTx, err := types.SignTx(tx, types.NewEIP155Signer(big.NewInt(b.cfg.ChainID)), privateKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign transaction: %v", err)
	}

	sendCtx, cancel := context.WithTimeout(ctx, callTimeout)
	err = b.client.SendTransaction(sendCtx, signedTx)
	cancel()
	if err != nil {
		return "", fmt.Errorf("failed to send transaction: %v", err)
	}

	mineCtx, cancel := context.WithTimeout(ctx, mineTimeout)
	receipt, err := bind.WaitMined(mineCtx, b.client, signedTx)
	cancel()
	if err != nil {
		return "", fmt.Errorf("failed to wait for transaction: %v", err)
	}
	if receipt.Status == 0 {
		return "", fmt.Errorf("transaction %s reverted", signedTx.Hash().Hex())
	}

	return signedTx.Hash().Hex(), nil
}

func (b *baseContract) Close() {
	if b.client != nil {
		b.client.Close()
	}
}

var weiPerEther = decimal.NewFromBigInt(big.NewInt(1), 18)

// ToWei converts a human token amount to wei.
func ToWei(amount decimal.Decimal) *big.Int {
	return amount.Mul(weiPerEther).BigInt()
}

// FromWei converts wei to a human token amount.
func FromWei(wei *big.Int) decimal.Decimal {
	return decimal.NewFromBigInt(wei, 0).Div(weiPerEther)
}
