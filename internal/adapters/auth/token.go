package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"eventory/internal/domain"
)

type jwtClaims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles"`
}

// role picks the strongest role carried by the token. Unknown roles are ignored.
func (c *jwtClaims) role() (domain.Role, bool) {
	var student bool
	for _, r := range c.Roles {
		switch domain.Role(r) {
		case domain.RoleAdmin:
			return domain.RoleAdmin, true
		case domain.RoleStudent:
			student = true
		}
	}
	if student {
		return domain.RoleStudent, true
	}
	return "", false
}

type jwtIssuer struct {
	secret []byte
	issuer string
	expiry time.Duration
}

// NewJWTIssuer returns a TokenIssuer that signs HS256 JWTs valid for expiry.
func NewJWTIssuer(secret, issuer string, expiry time.Duration) domain.TokenIssuer {
	return &jwtIssuer{secret: []byte(secret), issuer: issuer, expiry: expiry}
}

func (i *jwtIssuer) Issue(subject string, role domain.Role) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.expiry)),
		},
		Roles: []string{string(role)},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

type jwtVerifier struct {
	secret []byte
	issuer string
}

// NewJWTVerifier returns a TokenVerifier for HS256 tokens. When issuer is non-empty the iss claim must match.
func NewJWTVerifier(secret, issuer string) domain.TokenVerifier {
	return &jwtVerifier{secret: []byte(secret), issuer: issuer}
}

func (v *jwtVerifier) Verify(tokenString string) (*domain.Principal, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired()}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	claims := &jwtClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	role, ok := claims.role()
	if !ok {
		return nil, errors.New("token carries no known role")
	}
	return &domain.Principal{Subject: claims.Subject, Role: role}, nil
}
