package usecase

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/goerr/v2"
)

const tokenIssuer = "hireme"

// Token audiences keep admin session tokens and OAuth state tokens apart.
const (
	audienceAdmin       = "admin"
	audienceGoogleState = "google-link"
)

// tokenSigner issues and verifies HS256 JWTs.
type tokenSigner struct {
	key []byte
}

func newTokenSigner(key []byte) *tokenSigner {
	return &tokenSigner{key: key}
}

type tokenClaims struct {
	Subject  string
	Username string
}

func (s *tokenSigner) sign(audience string, claims tokenClaims, ttl time.Duration, now time.Time) (string, error) {
	builder := jwt.NewBuilder().
		Issuer(tokenIssuer).
		Audience([]string{audience}).
		Subject(claims.Subject).
		JwtID(uuid.NewString()).
		IssuedAt(now).
		Expiration(now.Add(ttl))
	if claims.Username != "" {
		builder = builder.Claim("username", claims.Username)
	}

	token, err := builder.Build()
	if err != nil {
		return "", goerr.Wrap(err, "failed to build token")
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, s.key))
	if err != nil {
		return "", goerr.Wrap(err, "failed to sign token")
	}
	return string(signed), nil
}

func (s *tokenSigner) verify(audience, raw string, now time.Time) (*tokenClaims, error) {
	token, err := jwt.Parse([]byte(raw),
		jwt.WithKey(jwa.HS256, s.key),
		jwt.WithValidate(true),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(audience),
		jwt.WithClock(jwt.ClockFunc(func() time.Time { return now })),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to verify token")
	}

	claims := &tokenClaims{Subject: token.Subject()}
	if v, ok := token.Get("username"); ok {
		claims.Username, _ = v.(string)
	}
	return claims, nil
}

func adminSubject(id int64) string {
	return strconv.FormatInt(id, 10)
}
