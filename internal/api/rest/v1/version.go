package v1

// BasePath is the route prefix of all version 1 endpoints
const BasePath = "/api/v1/rsa"
