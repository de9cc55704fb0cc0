package v1

import (
	"github.com/MGTheTrain/toy-rsa/internal/domain/rsakeys"

	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine,
	keyPairService rsakeys.KeyPairService,
	cipherService rsakeys.CipherService,
	defaultCodec string) {

	v1 := r.Group(BasePath) // lookup in version file

	keyPairHandler := NewKeyPairHandler(keyPairService, cipherService, defaultCodec)
	v1.POST("/keys", keyPairHandler.Derive)
	v1.GET("/keys", keyPairHandler.List)
	v1.GET("/keys/:id", keyPairHandler.GetByID)
	v1.DELETE("/keys/:id", keyPairHandler.DeleteByID)
	v1.POST("/keys/:id/encrypt", keyPairHandler.Encrypt)
	v1.POST("/keys/:id/decrypt", keyPairHandler.Decrypt)
}
