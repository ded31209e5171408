package middleware

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gin-gonic/gin"

	"github.com/Inteli-Club5/trbe-backend/errcode"
	"github.com/Inteli-Club5/trbe-backend/xhttp"
)

const (
	HeaderWeb3Address   = "x-web3-address"
	HeaderWeb3Signature = "x-web3-signature"
	HeaderWeb3Timestamp = "x-web3-timestamp"
	HeaderWeb3Message   = "x-web3-message"

	CtxWalletAddress = "auth_wallet_address"

	// Signed messages older than this are rejected as replays.
	web3SignatureWindow = 5 * time.Minute
)

// Web3Auth authenticates the caller by an EIP-191 personal-sign signature
// over the message and timestamp headers. The recovered address must match
// x-web3-address and the timestamp must fall inside the replay window.
func Web3Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		address := c.GetHeader(HeaderWeb3Address)
		signature := c.GetHeader(HeaderWeb3Signature)
		timestamp := c.GetHeader(HeaderWeb3Timestamp)
		message := c.GetHeader(HeaderWeb3Message)
		if address == "" || signature == "" || timestamp == "" || message == "" {
			xhttp.Error(c, errcode.NewCustomErr("missing web3 auth headers"))
			c.Abort()
			return
		}

		ts, err := strconv.ParseInt(timestamp, 10, 64)
		if err != nil {
			xhttp.Error(c, errcode.NewCustomErr("invalid web3 timestamp"))
			c.Abort()
			return
		}
		age := time.Since(time.UnixMilli(ts))
		if age < -web3SignatureWindow || age > web3SignatureWindow {
			xhttp.Error(c, errcode.NewCustomErr("web3 signature expired"))
			c.Abort()
			return
		}

		recovered, err := recoverAddress(message+timestamp, signature)
		if err != nil || !strings.EqualFold(recovered, address) {
			xhttp.Error(c, errcode.ErrUnauthorized)
			c.Abort()
			return
		}

		c.Set(CtxWalletAddress, address)
		c.Next()
	}
}

func recoverAddress(message, signature string) (string, error) {
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return "", err
	}
	if len(sig) != 65 {
		return "", fmt.Errorf("bad signature length %d", len(sig))
	}
	// personal_sign sets V to 27/28; crypto.SigToPub expects 0/1.
	if sig[64] >= 27 {
		sig[64] -= 27
	}

	prefixed := fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(message), message)
	hash := crypto.Keccak256Hash([]byte(prefixed))

	pub, err := crypto.SigToPub(hash.Bytes(), sig)
	if err != nil {
		return "", err
	}
	return crypto.PubkeyToAddress(*pub).Hex(), nil
}

// WalletAddress returns the verified wallet set by Web3Auth.
func WalletAddress(c *gin.Context) string {
	return c.GetString(CtxWalletAddress)
}
