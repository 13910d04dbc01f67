package jwt

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	claimActor = "actor"
	claimType  = "type"

	tokenTypeAccess = "access"
)

var ErrMissingActor = errors.New("token has no actor claim")

type Service interface {
	// GenerateAccessToken mints an operator token; actor is recorded in the
	// attendance audit trail.
	GenerateAccessToken(actor string) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(actor string) (token string, expiresAt int64, err error) {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return "", 0, ErrMissingActor
	}

	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		claimActor: actor,
		claimType:  tokenTypeAccess,
		"iat":      time.Now().Unix(),
		"exp":      expiresAt,
	})
	return tokenString, expiresAt, err
}

// IsAccessToken reports whether the claims belong to an access token.
func IsAccessToken(claims map[string]interface{}) bool {
	tokenType, ok := claims[claimType].(string)
	return ok && tokenType == tokenTypeAccess
}

// ActorFromContext returns the actor of the verified token in ctx.
func ActorFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", err
	}
	actor, ok := claims[claimActor].(string)
	if !ok || actor == "" {
		return "", ErrMissingActor
	}
	return actor, nil
}
