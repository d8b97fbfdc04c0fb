// Package common contains shared constants and sentinel errors used across
// passvault components.
package common

// AuthorizationHeaderName is the HTTP header / gRPC metadata key that carries
// the bearer access token.
const AuthorizationHeaderName = "authorization"

// BearerScheme is the authorization scheme expected in AuthorizationHeaderName.
const BearerScheme = "Bearer"

// TagSeparator joins entry tags in their persisted form.
const TagSeparator = ","
