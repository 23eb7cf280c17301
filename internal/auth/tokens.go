package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"fieldmate/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Principal is the authenticated member behind a request.
type Principal = domain.Actor

type accessClaims struct {
	jwt.RegisteredClaims
	CompanyID int64       `json:"company_id"`
	Role      domain.Role `json:"role"`
}

// TokenManager signs and parses HS256 access tokens.
type TokenManager struct {
	signingKey []byte
	accessTTL  time.Duration
	now        func() time.Time
}

func NewTokenManager(signingKey string, accessTTL time.Duration) *TokenManager {
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	return &TokenManager{signingKey: []byte(signingKey), accessTTL: accessTTL, now: time.Now}
}

// AccessTTL is how long issued tokens stay valid.
func (m *TokenManager) AccessTTL() time.Duration { return m.accessTTL }

// Issue returns a signed access token for the member.
func (m *TokenManager) Issue(member domain.Member) (string, error) {
	now := m.now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(member.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		},
		CompanyID: member.CompanyID,
		Role:      member.Role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.signingKey)
}

// Parse validates the signature and expiry and returns the principal.
func (m *TokenManager) Parse(token string) (Principal, error) {
	tok, err := jwt.ParseWithClaims(token, &accessClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.signingKey, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := tok.Claims.(*accessClaims)
	if !ok || !tok.Valid {
		return Principal{}, ErrInvalidToken
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 || claims.CompanyID <= 0 || !claims.Role.Valid() {
		return Principal{}, ErrInvalidToken
	}
	return Principal{MemberID: id, CompanyID: claims.CompanyID, Role: claims.Role}, nil
}
