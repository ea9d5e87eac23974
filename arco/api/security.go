package api

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/arco365/go-arco-pos/arco"
	"github.com/arco365/go-arco-pos/arco/model"
)

type SecurityService interface {
	Login(ctx context.Context, user, password, companyName string) (*model.LoginResponse, error)
}

type security struct {
	client Client
}

func NewSecurityService(client Client) SecurityService {
	return &security{client: client}
}

// Login exchanges operator credentials for an ERP token. Persisting the
// token is the caller's job.
func (s *security) Login(ctx context.Context, user, password, companyName string) (*model.LoginResponse, error) {

	log.Debugf("Login for user %s, company %s", user, companyName)

	res := &model.LoginResponse{}
	err := s.client.PostJsonNoAuth(ctx, "/Security/Login", model.LoginRequest{
		User:        user,
		Password:    password,
		CompanyName: companyName,
	}, res)
	if err != nil {
		return nil, err
	}

	if res.Token == "" {
		return nil, arco.ErrUnauthorized
	}
	return res, nil
}
