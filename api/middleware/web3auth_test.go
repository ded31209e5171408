package middleware

import (
	"crypto/ecdsa"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Inteli-Club5/trbe-backend/errcode"
	"github.com/Inteli-Club5/trbe-backend/xhttp"
)

func newWeb3Router() *gin.Engine {
	r := gin.New()
	r.GET("/chain/me", Web3Auth(), func(c *gin.Context) {
		xhttp.OkJson(c, gin.H{"wallet": WalletAddress(c)})
	})
	return r
}

// signPersonal signs message+timestamp the way a wallet's personal_sign does,
// including the 27/28 recovery id.
func signPersonal(t *testing.T, key *ecdsa.PrivateKey, message, timestamp string) []byte {
	t.Helper()
	payload := message + timestamp
	prefixed := fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(payload), payload)
	sig, err := crypto.Sign(crypto.Keccak256Hash([]byte(prefixed)).Bytes(), key)
	require.NoError(t, err)
	sig[64] += 27
	return sig
}

func doWeb3(r *gin.Engine, address, signature, timestamp, message string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/chain/me", nil)
	req.Header.Set(HeaderWeb3Address, address)
	req.Header.Set(HeaderWeb3Signature, signature)
	req.Header.Set(HeaderWeb3Timestamp, timestamp)
	req.Header.Set(HeaderWeb3Message, message)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWeb3AuthAcceptsSignedRequest(t *testing.T) {
	r := newWeb3Router()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey).Hex()
	ts := strconv.FormatInt(time.Now().UnixMilli(), 10)
	sig := signPersonal(t, key, "login", ts)

	// The address comparison is case insensitive.
	w := doWeb3(r, strings.ToLower(address), hexutil.Encode(sig), ts, "login")

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)
	assert.Equal(t, strings.ToLower(address), resp.Data.(map[string]interface{})["wallet"])
}

func TestWeb3AuthNormalizesRecoveryID(t *testing.T) {
	r := newWeb3Router()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey).Hex()
	ts := strconv.FormatInt(time.Now().UnixMilli(), 10)

	// Some signers emit the raw 0/1 recovery id instead of 27/28.
	sig := signPersonal(t, key, "login", ts)
	sig[64] -= 27

	w := doWeb3(r, address, hexutil.Encode(sig), ts, "login")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWeb3AuthRejectsStaleTimestamp(t *testing.T) {
	r := newWeb3Router()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey).Hex()
	ts := strconv.FormatInt(time.Now().Add(-10*time.Minute).UnixMilli(), 10)
	sig := signPersonal(t, key, "login", ts)

	w := doWeb3(r, address, hexutil.Encode(sig), ts, "login")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, int32(errcode.CustomCode), decodeEnvelope(t, w).Code)
}

func TestWeb3AuthRejectsWrongSigner(t *testing.T) {
	r := newWeb3Router()
	signer, err := crypto.GenerateKey()
	require.NoError(t, err)
	other, err := crypto.GenerateKey()
	require.NoError(t, err)
	ts := strconv.FormatInt(time.Now().UnixMilli(), 10)
	sig := signPersonal(t, signer, "login", ts)

	w := doWeb3(r, crypto.PubkeyToAddress(other.PublicKey).Hex(), hexutil.Encode(sig), ts, "login")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, errcode.ErrUnauthorized.Code(), decodeEnvelope(t, w).Code)
}

func TestWeb3AuthRejectsTamperedMessage(t *testing.T) {
	r := newWeb3Router()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey).Hex()
	ts := strconv.FormatInt(time.Now().UnixMilli(), 10)
	sig := signPersonal(t, key, "login", ts)

	w := doWeb3(r, address, hexutil.Encode(sig), ts, "login as admin")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWeb3AuthRejectsMissingHeaders(t *testing.T) {
	r := newWeb3Router()

	req := httptest.NewRequest(http.MethodGet, "/chain/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
