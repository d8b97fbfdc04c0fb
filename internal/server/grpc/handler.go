package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/server/metrics"
	"github.com/dmitrijs2005/passvault/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	msgRegistered         = common.MsgRegistered
	msgLoggedIn           = common.MsgLoggedIn
	msgMissingCredentials = common.MsgMissingCredentials
	msgUsernameTaken      = common.MsgUsernameTaken
	msgInvalidCredentials = common.MsgInvalidCredentials
	msgUserNotFound       = common.MsgUserNotFound
	msgServerError        = common.MsgServerError
	msgNoToken            = common.MsgNoToken
	msgBadToken           = common.MsgBadToken
)

func toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrMissingField):
		return status.Error(codes.InvalidArgument, msgMissingCredentials)
	case errors.Is(err, common.ErrUsernameTaken):
		return status.Error(codes.AlreadyExists, msgUsernameTaken)
	case errors.Is(err, common.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, msgInvalidCredentials)
	case errors.Is(err, common.ErrUserNotFound), errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, msgUserNotFound)
	default:
		return status.Error(codes.Internal, msgServerError)
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case status.Code(toStatus(err)) == codes.Internal:
		return metrics.OutcomeError
	default:
		return metrics.OutcomeRejected
	}
}

func (s *GRPCServer) observeAuth(op string, err error) {
	if s.metrics != nil {
		s.metrics.ObserveAuth(op, outcome(err))
	}
}

func authReply(msg string, res *services.AuthResult) *AuthReply {
	return &AuthReply{
		Message:   msg,
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
		User:      User{ID: res.User.ID, Username: res.User.UserName},
	}
}

func (s *GRPCServer) Register(ctx context.Context, req *CredentialsRequest) (*AuthReply, error) {
	res, err := s.users.Register(ctx, req.Username, req.Password)
	s.observeAuth("register", err)
	if err != nil {
		return nil, toStatus(err)
	}
	return authReply(msgRegistered, res), nil
}

func (s *GRPCServer) Login(ctx context.Context, req *CredentialsRequest) (*AuthReply, error) {
	res, err := s.users.Login(ctx, req.Username, req.Password)
	s.observeAuth("login", err)
	if err != nil {
		return nil, toStatus(err)
	}
	return authReply(msgLoggedIn, res), nil
}

func (s *GRPCServer) Me(ctx context.Context, _ *MeRequest) (*MeReply, error) {
	userID, ok := userIDFrom(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, msgNoToken)
	}

	u, err := s.users.Identify(ctx, userID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &MeReply{User: Profile{
		ID:        u.ID,
		Username:  u.UserName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}}, nil
}
