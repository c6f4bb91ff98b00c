package api

import (
	"context"

	domainRepo "github.com/JaydevKalariyaa/proxima-sales/internal/domain/repository"
	"github.com/JaydevKalariyaa/proxima-sales/pkg/apperror"
)

type authRepository struct {
	client *Client
}

// NewAuthRepository creates the HTTP-backed auth repository.
func NewAuthRepository(client *Client) domainRepo.AuthRepository {
	return &authRepository{client: client}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (r *authRepository) Login(ctx context.Context, email, password string) (string, error) {
	res, err := r.client.newRequest(ctx).
		SetBody(loginRequest{Email: email, Password: password}).
		Post("/accounts/login/")
	if err != nil {
		return "", apperror.NewSubmissionError("could not reach the sales server", err)
	}
	// A 401 here is a bad credential, not an expired session; do not tear
	// the session down.
	if res.StatusCode() == 401 {
		return "", apperror.NewUnauthorizedError("invalid email or password")
	}
	if res.IsError() {
		return "", apperror.NewSubmissionError("the sales server rejected the request", nil)
	}

	var out loginResponse
	if err := decodeData(res.Bytes(), &out); err != nil {
		return "", apperror.NewSubmissionError("unexpected login response", err)
	}
	if out.Token == "" {
		return "", apperror.NewSubmissionError("server did not return a token", nil)
	}
	return out.Token, nil
}
