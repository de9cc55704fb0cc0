//go:build unit
// +build unit

package v1

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// TestSetupRoutes_RoutesRegistered verifies that routes are properly registered
func TestSetupRoutes_RoutesRegistered(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockKeyPairService := new(MockKeyPairService)
	mockCipherService := new(MockCipherService)

	r := gin.New()

	mockKeyPairService.On("List", mock.Anything, mock.Anything).Return(nil, nil)
	mockKeyPairService.On("GetByID", mock.Anything, mock.Anything).Return(testKeyPair(), nil)
	mockKeyPairService.On("DeleteByID", mock.Anything, mock.Anything).Return(nil)

	SetupRoutes(r, mockKeyPairService, mockCipherService, "byte")

	tests := []struct {
		method string
		url    string
		body   string
	}{
		{"POST", "/api/v1/rsa/keys", `{}`},
		{"GET", "/api/v1/rsa/keys", ""},
		{"GET", "/api/v1/rsa/keys/" + testKeyPairID, ""},
		{"DELETE", "/api/v1/rsa/keys/" + testKeyPairID, ""},
		{"POST", "/api/v1/rsa/keys/" + testKeyPairID + "/encrypt", `{"codec": "base64"}`},
		{"POST", "/api/v1/rsa/keys/" + testKeyPairID + "/decrypt", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req, _ := http.NewRequest(tt.method, tt.url, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			// Just verify route exists (status != 404)
			assert.NotEqual(t, http.StatusNotFound, w.Code, "Route should be registered")
		})
	}
}
