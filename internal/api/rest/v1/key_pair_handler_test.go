//go:build unit
// +build unit

package v1

import (
	"bytes"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MGTheTrain/toy-rsa/internal/domain/rsakeys"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testKeyPairID = "0b9d7e3c-6a57-4b4f-9f0e-0c1f6d2b8a11"

func testKeyPair() *rsakeys.KeyPair {
	n := big.NewInt(3233)
	return &rsakeys.KeyPair{
		ID:              testKeyPairID,
		Public:          rsakeys.NewPublicKey(n, big.NewInt(65537)),
		Private:         rsakeys.NewPrivateKey(n, big.NewInt(2753)),
		DateTimeCreated: time.Now().UTC(),
	}
}

func setupKeyPairHandler() (KeyPairHandler, *MockKeyPairService, *MockCipherService) {
	gin.SetMode(gin.TestMode)
	mockKeyPairService := new(MockKeyPairService)
	mockCipherService := new(MockCipherService)
	return NewKeyPairHandler(mockKeyPairService, mockCipherService, "byte"), mockKeyPairService, mockCipherService
}

func newTestContext(method, url, body string, params gin.Params) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, url, nil)
	} else {
		req, _ = http.NewRequest(method, url, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = params
	return c, w
}

func idParam() gin.Params {
	return gin.Params{gin.Param{Key: "id", Value: testKeyPairID}}
}

func TestKeyPairHandler_Derive_Success(t *testing.T) {
	handler, mockKeyPairService, _ := setupKeyPairHandler()

	mockKeyPairService.
		On("Derive", mock.Anything, mock.Anything, mock.MatchedBy(func(e *big.Int) bool { return e.Int64() == 65537 })).
		Return(testKeyPair(), nil)

	c, w := newTestContext("POST", "/keys", `{"p": "61", "q": "53", "e": "65537"}`, nil)
	handler.Derive(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response KeyPairResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, testKeyPairID, response.ID)
	assert.Equal(t, "3233", response.Modulus)
	assert.Equal(t, "65537", response.PublicExponent)
	assert.Equal(t, 12, response.ModulusBits)
	assert.NotContains(t, w.Body.String(), "2753")
	mockKeyPairService.AssertExpectations(t)
}

func TestKeyPairHandler_Derive_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"p": `},
		{"missing exponent", `{"p": "61", "q": "53"}`},
		{"no prime source", `{"e": "65537"}`},
		{"primes and bits", `{"p": "61", "q": "53", "bits": 64, "e": "65537"}`},
		{"one prime with bits", `{"p": "61", "bits": 16, "e": "65537"}`},
		{"composite prime", `{"p": "60", "q": "53", "e": "65537"}`},
		{"bits too small", `{"bits": 4, "e": "65537"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mockKeyPairService, _ := setupKeyPairHandler()

			c, w := newTestContext("POST", "/keys", tt.body, nil)
			handler.Derive(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			mockKeyPairService.AssertNotCalled(t, "Derive", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestKeyPairHandler_Derive_KeyDerivationError(t *testing.T) {
	handler, mockKeyPairService, _ := setupKeyPairHandler()

	derivationErr := &rsakeys.KeyDerivationError{E: big.NewInt(2), Phi: big.NewInt(3120), GCD: big.NewInt(2)}
	mockKeyPairService.On("Derive", mock.Anything, mock.Anything, mock.Anything).Return(nil, derivationErr)

	c, w := newTestContext("POST", "/keys", `{"p": "61", "q": "53", "e": "2"}`, nil)
	handler.Derive(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "not coprime")
}

func TestKeyPairHandler_List(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		handler, mockKeyPairService, _ := setupKeyPairHandler()
		mockKeyPairService.
			On("List", mock.Anything, mock.MatchedBy(func(q *rsakeys.KeyPairQuery) bool {
				return q.Limit == 5 && q.SortOrder == "desc"
			})).
			Return([]*rsakeys.KeyPair{testKeyPair()}, nil)

		c, w := newTestContext("GET", "/keys?limit=5&sortOrder=desc", "", nil)
		handler.List(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), testKeyPairID)
		mockKeyPairService.AssertExpectations(t)
	})

	t.Run("invalid sort order", func(t *testing.T) {
		handler, mockKeyPairService, _ := setupKeyPairHandler()

		c, w := newTestContext("GET", "/keys?sortOrder=sideways", "", nil)
		handler.List(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockKeyPairService.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("empty list", func(t *testing.T) {
		handler, mockKeyPairService, _ := setupKeyPairHandler()
		mockKeyPairService.On("List", mock.Anything, mock.Anything).Return([]*rsakeys.KeyPair{}, nil)

		c, w := newTestContext("GET", "/keys", "", nil)
		handler.List(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})
}

func TestKeyPairHandler_GetByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		handler, mockKeyPairService, _ := setupKeyPairHandler()
		mockKeyPairService.On("GetByID", mock.Anything, testKeyPairID).Return(testKeyPair(), nil)

		c, w := newTestContext("GET", "/keys/"+testKeyPairID, "", idParam())
		handler.GetByID(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), testKeyPairID)
	})

	t.Run("not found", func(t *testing.T) {
		handler, mockKeyPairService, _ := setupKeyPairHandler()
		mockKeyPairService.On("GetByID", mock.Anything, testKeyPairID).Return(nil, rsakeys.ErrKeyPairNotFound)

		c, w := newTestContext("GET", "/keys/"+testKeyPairID, "", idParam())
		handler.GetByID(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("internal error", func(t *testing.T) {
		handler, mockKeyPairService, _ := setupKeyPairHandler()
		mockKeyPairService.On("GetByID", mock.Anything, testKeyPairID).Return(nil, errors.New("connection reset"))

		c, w := newTestContext("GET", "/keys/"+testKeyPairID, "", idParam())
		handler.GetByID(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestKeyPairHandler_DeleteByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		handler, mockKeyPairService, _ := setupKeyPairHandler()
		mockKeyPairService.On("DeleteByID", mock.Anything, testKeyPairID).Return(nil)

		c, w := newTestContext("DELETE", "/keys/"+testKeyPairID, "", idParam())
		handler.DeleteByID(c)

		assert.Equal(t, http.StatusNoContent, w.Code)
		mockKeyPairService.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		handler, mockKeyPairService, _ := setupKeyPairHandler()
		mockKeyPairService.On("DeleteByID", mock.Anything, testKeyPairID).Return(rsakeys.ErrKeyPairNotFound)

		c, w := newTestContext("DELETE", "/keys/"+testKeyPairID, "", idParam())
		handler.DeleteByID(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestKeyPairHandler_Encrypt(t *testing.T) {
	t.Run("default codec", func(t *testing.T) {
		handler, _, mockCipherService := setupKeyPairHandler()
		ciphertext := []*big.Int{big.NewInt(1859), big.NewInt(2310), big.NewInt(2680), big.NewInt(2159)}
		mockCipherService.On("EncryptText", mock.Anything, testKeyPairID, "RUST", "byte").Return(ciphertext, nil)

		c, w := newTestContext("POST", "/keys/"+testKeyPairID+"/encrypt", `{"message": "RUST"}`, idParam())
		handler.Encrypt(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response EncryptResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, []string{"1859", "2310", "2680", "2159"}, response.Blocks)
		assert.Equal(t, "byte", response.Codec)
	})

	t.Run("unsupported codec", func(t *testing.T) {
		handler, _, mockCipherService := setupKeyPairHandler()

		c, w := newTestContext("POST", "/keys/"+testKeyPairID+"/encrypt", `{"message": "RUST", "codec": "base64"}`, idParam())
		handler.Encrypt(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockCipherService.AssertNotCalled(t, "EncryptText", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("message too large", func(t *testing.T) {
		handler, _, mockCipherService := setupKeyPairHandler()
		tooLarge := &rsakeys.MessageTooLargeError{Index: 0, Block: big.NewInt(255), Modulus: big.NewInt(187)}
		mockCipherService.On("EncryptText", mock.Anything, testKeyPairID, "RUST", "byte").Return(nil, tooLarge)

		c, w := newTestContext("POST", "/keys/"+testKeyPairID+"/encrypt", `{"message": "RUST"}`, idParam())
		handler.Encrypt(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "outside [0, 187)")
	})
}

func TestKeyPairHandler_Decrypt(t *testing.T) {
	t.Run("octet codec", func(t *testing.T) {
		handler, _, mockCipherService := setupKeyPairHandler()
		mockCipherService.
			On("DecryptText", mock.Anything, testKeyPairID, mock.MatchedBy(func(blocks []*big.Int) bool {
				return len(blocks) == 2 && blocks[0].Int64() == 1859 && blocks[1].Int64() == 2310
			}), "octet").
			Return("Ola!", nil)

		c, w := newTestContext("POST", "/keys/"+testKeyPairID+"/decrypt", `{"blocks": ["1859", "2310"], "codec": "octet"}`, idParam())
		handler.Decrypt(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Ola!")
		mockCipherService.AssertExpectations(t)
	})

	t.Run("non numeric block", func(t *testing.T) {
		handler, _, mockCipherService := setupKeyPairHandler()

		c, w := newTestContext("POST", "/keys/"+testKeyPairID+"/decrypt", `{"blocks": ["12a"]}`, idParam())
		handler.Decrypt(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockCipherService.AssertNotCalled(t, "DecryptText", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("malformed block", func(t *testing.T) {
		handler, _, mockCipherService := setupKeyPairHandler()
		mockCipherService.On("DecryptText", mock.Anything, testKeyPairID, mock.Anything, "octet").
			Return("", rsakeys.ErrMalformedBlock)

		c, w := newTestContext("POST", "/keys/"+testKeyPairID+"/decrypt", `{"blocks": ["7"], "codec": "octet"}`, idParam())
		handler.Decrypt(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown key pair", func(t *testing.T) {
		handler, _, mockCipherService := setupKeyPairHandler()
		mockCipherService.On("DecryptText", mock.Anything, testKeyPairID, mock.Anything, "byte").
			Return("", rsakeys.ErrKeyPairNotFound)

		c, w := newTestContext("POST", "/keys/"+testKeyPairID+"/decrypt", `{"blocks": ["7"]}`, idParam())
		handler.Decrypt(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
