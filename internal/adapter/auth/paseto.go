package auth

import (
	"errors"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/toppingfrozen/ordertrack/internal/core/domain"
	"github.com/toppingfrozen/ordertrack/internal/core/port"
)

const tokenDuration = 12 * time.Hour

type PasetoToken struct {
	parser *paseto.Parser
	key    *paseto.V4SymmetricKey
}

func New() (port.TokenService, error) {
	parser := paseto.NewParser()
	key := paseto.NewV4SymmetricKey()

	s := PasetoToken{
		parser: &parser,
		key:    &key,
	}

	return &s, nil
}

func (p *PasetoToken) CreateToken(user *domain.User) (string, error) {
	token := paseto.NewToken()
	token.SetIssuedAt(time.Now())
	token.SetExpiration(time.Now().Add(tokenDuration))

	payload := port.TokenPayload{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
	err := token.Set("payload", payload)
	if err != nil {
		return "", domain.ErrTokenCreation
	}

	return token.V4Encrypt(*p.key, nil), nil
}

func (p *PasetoToken) VerifyToken(token string) (*port.TokenPayload, error) {
	parsedToken, err := p.parser.ParseV4Local(*p.key, token, nil)
	if err != nil {
		// The only parser rules are time-based, so a rule failure
		// means the token aged out rather than failed decryption.
		if errors.Is(err, paseto.RuleError{}) {
			return nil, domain.ErrExpiredToken
		}
		return nil, domain.ErrInvalidToken
	}

	payload := port.TokenPayload{}
	err = parsedToken.Get("payload", &payload)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	return &payload, nil
}
