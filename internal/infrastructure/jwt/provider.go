package jwtinfra

import (
	"crypto/rsa"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/shop-assistant-api/internal/config"
)

const (
	purposeAccess      = "access"
	purposeVerifyEmail = "verify_email"
)

// ErrInvalidToken is returned for any token that fails parsing, signature,
// expiry or purpose checks.
var ErrInvalidToken = errors.New("invalid token")

// Claims holds the JWT payload fields.
type Claims struct {
	UserID  int64  `json:"user_id"`
	Email   string `json:"email,omitempty"`
	Role    string `json:"role,omitempty"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// Provider signs and verifies RS256 JWTs.
type Provider struct {
	privateKey   *rsa.PrivateKey
	publicKey    *rsa.PublicKey
	expiry       time.Duration
	verifyExpiry time.Duration
	now          func() time.Time
}

func NewProvider(cfg *config.Config) (*Provider, error) {
	privBytes, err := os.ReadFile(cfg.JWTPrivateKeyPath)
	if err != nil {
		return nil, errors.Wrap(err, "read private key")
	}
	privKey, err := jwt.ParseRSAPrivateKeyFromPEM(privBytes)
	if err != nil {
		return nil, errors.Wrap(err, "parse private key")
	}

	pubBytes, err := os.ReadFile(cfg.JWTPublicKeyPath)
	if err != nil {
		return nil, errors.Wrap(err, "read public key")
	}
	pubKey, err := jwt.ParseRSAPublicKeyFromPEM(pubBytes)
	if err != nil {
		return nil, errors.Wrap(err, "parse public key")
	}

	return NewProviderFromKeys(privKey, pubKey, cfg.JWTExpiry, cfg.VerifyTokenExpiry), nil
}

// NewProviderFromKeys builds a Provider from parsed keys.
func NewProviderFromKeys(priv *rsa.PrivateKey, pub *rsa.PublicKey, expiry, verifyExpiry time.Duration) *Provider {
	return &Provider{privateKey: priv, publicKey: pub, expiry: expiry, verifyExpiry: verifyExpiry, now: time.Now}
}

// Sign issues a bearer token for userID.
func (p *Provider) Sign(userID int64, role string) (string, error) {
	return p.sign(Claims{UserID: userID, Role: role, Purpose: purposeAccess}, p.expiry)
}

// SignVerification issues a single-purpose token embedded in the
// verification link mailed after registration.
func (p *Provider) SignVerification(userID int64, email string) (string, error) {
	return p.sign(Claims{UserID: userID, Email: email, Purpose: purposeVerifyEmail}, p.verifyExpiry)
}

func (p *Provider) sign(claims Claims, ttl time.Duration) (string, error) {
	now := p.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(claims.UserID, 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(p.privateKey)
	return signed, errors.Wrap(err, "sign token")
}

// Verify parses a bearer token.
func (p *Provider) Verify(tokenStr string) (*Claims, error) {
	return p.parse(tokenStr, purposeAccess)
}

// VerifyVerification parses an e-mail verification token.
func (p *Provider) VerifyVerification(tokenStr string) (*Claims, error) {
	return p.parse(tokenStr, purposeVerifyEmail)
}

func (p *Provider) parse(tokenStr, purpose string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return p.publicKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}), jwt.WithTimeFunc(p.now))
	if err != nil {
		return nil, errors.Wrap(ErrInvalidToken, err.Error())
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Purpose != purpose {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
