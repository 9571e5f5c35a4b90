package auth

import (
	"context"
	"fmt"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/constants"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/logger"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/utils"
	"time"
)

type Service struct {
	secret []byte
}

func NewService(secret string) *Service {
	return &Service{secret: []byte(secret)}
}

// IssueAdminToken mints a bearer token for the import endpoints.
func (svc *Service) IssueAdminToken(ctx context.Context, subject string, ttl time.Duration) (string, error) {
	if len(svc.secret) == 0 {
		return "", fmt.Errorf("auth.IssueAdminToken: empty secret_key")
	}

	w := &utils.AuthTokenWrapper{Role: constants.RoleAdmin}
	w.Subject = subject

	token, err := utils.GenerateAuthToken(w, svc.secret, ttl)
	if err != nil {
		return "", err
	}

	logger.Infof(ctx, "issued admin token for %q, ttl %s", subject, ttl)
	return token, nil
}

// VerifyAdmin accepts only unexpired admin tokens signed with the configured secret.
func (svc *Service) VerifyAdmin(token string) error {
	if len(svc.secret) == 0 {
		return constants.ErrUnauthorized
	}

	claims, err := utils.ParseAuthToken(token, svc.secret)
	if err != nil {
		return fmt.Errorf("%w: %s", constants.ErrUnauthorized, err.Error())
	}
	if claims.Role != constants.RoleAdmin {
		return constants.ErrUnauthorized
	}
	return nil
}
