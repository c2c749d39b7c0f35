package services

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rohits-web03/goalai/internal/models"
	"github.com/rohits-web03/goalai/internal/utils"
)

var errMalformedToken = errors.New("malformed session token")

// SessionTokens signs the session id into the cookie value so clients
// cannot forge or guess ids. The session row stays the source of truth.
type SessionTokens struct {
	secret []byte
	now    func() time.Time
}

func NewSessionTokens(secret string, now func() time.Time) *SessionTokens {
	if now == nil {
		now = time.Now
	}
	return &SessionTokens{secret: []byte(secret), now: now}
}

func (t *SessionTokens) Sign(s *models.Session) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        s.ID,
		Subject:   strconv.FormatInt(s.UserID, 10),
		IssuedAt:  jwt.NewNumericDate(s.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// SessionID verifies the signature and expiry and returns the session id.
func (t *SessionTokens) SessionID(token string) (string, error) {
	return t.parse(token, jwt.WithTimeFunc(t.now))
}

// SessionIDIgnoringExpiry only verifies the signature, so expired cookies
// can still be cleaned up on logout.
func (t *SessionTokens) SessionIDIgnoringExpiry(token string) (string, error) {
	return t.parse(token, jwt.WithoutClaimsValidation())
}

func (t *SessionTokens) parse(token string, opts ...jwt.ParserOption) (string, error) {
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	}, opts...)
	if err != nil {
		return "", err
	}
	if !utils.ValidSessionID(claims.ID) {
		return "", errMalformedToken
	}
	return claims.ID, nil
}
