package core

import (
	"fmt"

	"LeadDesk/entity"
)

// AuthenticateByToken resolves a bearer token to an API user. The
// configured master key always authenticates as admin; other keys are
// looked up in the repository.
func (c *Core) AuthenticateByToken(token string) (*entity.UserAuth, error) {
	if token == "" {
		return nil, fmt.Errorf("empty token")
	}

	if c.authKey != "" && token == c.authKey {
		return &entity.UserAuth{Username: "admin", Key: token}, nil
	}

	if c.repo == nil {
		return nil, fmt.Errorf("unknown token")
	}

	username, err := c.repo.CheckApiKey(token)
	if err != nil {
		return nil, fmt.Errorf("unknown token: %w", err)
	}

	return &entity.UserAuth{Username: username, Key: token}, nil
}

// GenerateApiKey issues (or returns the existing) API key for a username.
func (c *Core) GenerateApiKey(username string) (string, error) {
	if c.repo == nil {
		return "", fmt.Errorf("key storage not available")
	}
	return c.repo.GenerateApiKey(username)
}
