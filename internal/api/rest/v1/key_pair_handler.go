package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/MGTheTrain/toy-rsa/internal/domain/rsakeys"

	"github.com/gin-gonic/gin"
)

// KeyPairHandler defines the interface for handling key pair and cipher operations
type KeyPairHandler interface {
	Derive(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
	Encrypt(ctx *gin.Context)
	Decrypt(ctx *gin.Context)
}

// keyPairHandler struct holds the services
type keyPairHandler struct {
	keyPairService rsakeys.KeyPairService
	cipherService  rsakeys.CipherService
	defaultCodec   string
}

// NewKeyPairHandler creates a new KeyPairHandler. defaultCodec is used when a request names no codec.
func NewKeyPairHandler(keyPairService rsakeys.KeyPairService, cipherService rsakeys.CipherService, defaultCodec string) KeyPairHandler {
	return &keyPairHandler{
		keyPairService: keyPairService,
		cipherService:  cipherService,
		defaultCodec:   defaultCodec,
	}
}

// Derive handles the POST request to derive and store a key pair
// @Summary Derive an RSA key pair
// @Description Derive a key pair from two primes or from two random primes of the given size.
// @Tags KeyPair
// @Accept json
// @Produce json
// @Param requestBody body DeriveKeyPairRequest true "Derivation inputs"
// @Success 201 {object} KeyPairResponse
// @Failure 400 {object} ErrorResponse
// @Router /keys [post]
func (handler *keyPairHandler) Derive(ctx *gin.Context) {
	var request DeriveKeyPairRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid key pair data: %v", err)})
		return
	}

	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	source, err := request.PrimeSource()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	e, err := request.Exponent()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	keyPair, err := handler.keyPairService.Derive(ctx, source, e)
	if err != nil {
		respondError(ctx, fmt.Errorf("error deriving key pair: %w", err))
		return
	}

	ctx.JSON(http.StatusCreated, NewKeyPairResponse(keyPair))
}

// List handles the GET request to list stored key pairs
// @Summary List key pairs
// @Tags KeyPair
// @Produce json
// @Param dateTimeCreated query string false "Created at or after (RFC3339)"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Param sortBy query string false "id or date_time_created"
// @Param sortOrder query string false "asc or desc"
// @Success 200 {array} KeyPairResponse
// @Failure 400 {object} ErrorResponse
// @Router /keys [get]
func (handler *keyPairHandler) List(ctx *gin.Context) {
	query := &rsakeys.KeyPairQuery{}

	if dateTimeCreated := ctx.Query("dateTimeCreated"); len(dateTimeCreated) > 0 {
		parsedTime, err := time.Parse(time.RFC3339, dateTimeCreated)
		if err == nil {
			query.DateTimeCreated = parsedTime
		}
	}

	if limit := ctx.Query("limit"); len(limit) > 0 {
		query.Limit, _ = strconv.Atoi(limit)
	}

	if offset := ctx.Query("offset"); len(offset) > 0 {
		query.Offset, _ = strconv.Atoi(offset)
	}

	if sortBy := ctx.Query("sortBy"); len(sortBy) > 0 {
		query.SortBy = sortBy
	}

	if sortOrder := ctx.Query("sortOrder"); len(sortOrder) > 0 {
		query.SortOrder = sortOrder
	}

	if err := query.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	keyPairs, err := handler.keyPairService.List(ctx, query)
	if err != nil {
		respondError(ctx, fmt.Errorf("list query failed: %w", err))
		return
	}

	listResponse := []KeyPairResponse{}
	for _, keyPair := range keyPairs {
		listResponse = append(listResponse, NewKeyPairResponse(keyPair))
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// GetByID handles the GET request to retrieve a key pair by ID
// @Summary Retrieve a key pair by ID
// @Tags KeyPair
// @Produce json
// @Param id path string true "Key pair ID"
// @Success 200 {object} KeyPairResponse
// @Failure 404 {object} ErrorResponse
// @Router /keys/{id} [get]
func (handler *keyPairHandler) GetByID(ctx *gin.Context) {
	keyPairID := ctx.Param("id")

	keyPair, err := handler.keyPairService.GetByID(ctx, keyPairID)
	if err != nil {
		respondError(ctx, fmt.Errorf("key pair with id %s: %w", keyPairID, err))
		return
	}

	ctx.JSON(http.StatusOK, NewKeyPairResponse(keyPair))
}

// DeleteByID handles the DELETE request to delete a key pair by ID
// @Summary Delete a key pair by ID
// @Tags KeyPair
// @Produce json
// @Param id path string true "Key pair ID"
// @Success 204 {object} InfoResponse
// @Failure 404 {object} ErrorResponse
// @Router /keys/{id} [delete]
func (handler *keyPairHandler) DeleteByID(ctx *gin.Context) {
	keyPairID := ctx.Param("id")

	if err := handler.keyPairService.DeleteByID(ctx, keyPairID); err != nil {
		respondError(ctx, fmt.Errorf("error deleting key pair with id %s: %w", keyPairID, err))
		return
	}

	ctx.JSON(http.StatusNoContent, InfoResponse{Message: fmt.Sprintf("deleted key pair with id %s", keyPairID)})
}

// Encrypt handles the POST request to encrypt text with a stored key pair
// @Summary Encrypt text
// @Tags Cipher
// @Accept json
// @Produce json
// @Param id path string true "Key pair ID"
// @Param requestBody body EncryptRequest true "Plaintext"
// @Success 200 {object} EncryptResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /keys/{id}/encrypt [post]
func (handler *keyPairHandler) Encrypt(ctx *gin.Context) {
	keyPairID := ctx.Param("id")

	var request EncryptRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid encrypt request: %v", err)})
		return
	}

	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	codec := handler.codecOrDefault(request.Codec)
	ciphertext, err := handler.cipherService.EncryptText(ctx, keyPairID, request.Message, codec)
	if err != nil {
		respondError(ctx, fmt.Errorf("error encrypting with key pair %s: %w", keyPairID, err))
		return
	}

	ctx.JSON(http.StatusOK, EncryptResponse{
		KeyPairID: keyPairID,
		Codec:     codec,
		Blocks:    formatBlocks(ciphertext),
	})
}

// Decrypt handles the POST request to decrypt blocks with a stored key pair
// @Summary Decrypt ciphertext blocks
// @Tags Cipher
// @Accept json
// @Produce json
// @Param id path string true "Key pair ID"
// @Param requestBody body DecryptRequest true "Ciphertext blocks"
// @Success 200 {object} DecryptResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /keys/{id}/decrypt [post]
func (handler *keyPairHandler) Decrypt(ctx *gin.Context) {
	keyPairID := ctx.Param("id")

	var request DecryptRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid decrypt request: %v", err)})
		return
	}

	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	blocks, err := request.Ciphertext()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	message, err := handler.cipherService.DecryptText(ctx, keyPairID, blocks, handler.codecOrDefault(request.Codec))
	if err != nil {
		respondError(ctx, fmt.Errorf("error decrypting with key pair %s: %w", keyPairID, err))
		return
	}

	ctx.JSON(http.StatusOK, DecryptResponse{KeyPairID: keyPairID, Message: message})
}

func (handler *keyPairHandler) codecOrDefault(codec string) string {
	if codec == "" {
		return handler.defaultCodec
	}
	return codec
}

// respondError maps domain errors to status codes
func respondError(ctx *gin.Context, err error) {
	var derivationErr *rsakeys.KeyDerivationError
	var tooLargeErr *rsakeys.MessageTooLargeError

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, rsakeys.ErrKeyPairNotFound):
		status = http.StatusNotFound
	case errors.As(err, &derivationErr),
		errors.As(err, &tooLargeErr),
		errors.Is(err, rsakeys.ErrInvalidArgument),
		errors.Is(err, rsakeys.ErrModulusTooSmall),
		errors.Is(err, rsakeys.ErrMalformedBlock):
		status = http.StatusBadRequest
	}

	ctx.JSON(status, ErrorResponse{Message: err.Error()})
}
