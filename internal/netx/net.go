// Package netx holds transport helpers shared by the HTTP and gRPC layers.
package netx

import (
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/passvault/internal/common"
)

var (
	ErrNoToken        = errors.New("no bearer token")
	ErrMalformedToken = errors.New("malformed authorization header")
)

// ExtractBearerToken parses "Bearer <token>". The scheme is matched
// case-insensitively. An empty header yields ErrNoToken.
func ExtractBearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", ErrNoToken
	}

	scheme, token, _ := strings.Cut(header, " ")
	if !strings.EqualFold(scheme, common.BearerScheme) {
		return "", ErrMalformedToken
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// ClientIP returns the remote host of r without the port.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
