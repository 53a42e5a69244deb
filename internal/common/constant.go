package common

// AuthHeaderName is the HTTP header that carries the identity-provider token.
const AuthHeaderName = "Authorization"

// BearerPrefix is the scheme prefix expected on the auth header. A bare
// token without the prefix is accepted as well.
const BearerPrefix = "Bearer "
