// Package auth provides authentication support for company sessions.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jcpaschoal/kangaroute/business/domain/companybus"
	"github.com/jcpaschoal/kangaroute/foundation/logger"
)

// Set of error variables for authentication.
var (
	ErrKIDMissing      = errors.New("kid missing from token header")
	ErrKIDMalformed    = errors.New("kid in token header is malformed")
	ErrSubjectMismatch = errors.New("token subject does not match company id")
	ErrCompanyLookup   = errors.New("company lookup failed")
)

// TokenTTL is how long an issued token stays valid.
const TokenTTL = 24 * time.Hour

// Claims represents the authorization claims transmitted via a JWT. The
// subject carries the company id as well.
type Claims struct {
	jwt.RegisteredClaims
	CompanyID     int64  `json:"companyId"`
	AdminUsername string `json:"adminUsername"`
	Email         string `json:"email"`
}

// KeyLookup declares a method set of behavior for looking up
// private and public keys for JWT use.
type KeyLookup interface {
	PrivateKey(kid string) (key string, err error)
	PublicKey(kid string) (key string, err error)
}

// Config represents information required to initialize auth.
type Config struct {
	Log        *logger.Logger
	CompanyBus *companybus.Core
	KeyLookup  KeyLookup
	Issuer     string
	ActiveKID  string
}

// Auth is used to authenticate clients.
type Auth struct {
	log        *logger.Logger
	keyLookup  KeyLookup
	companyBus *companybus.Core
	method     jwt.SigningMethod
	parser     *jwt.Parser
	issuer     string
	activeKID  string
}

// New creates an Auth to support authentication.
func New(cfg Config) *Auth {
	return &Auth{
		log:        cfg.Log,
		keyLookup:  cfg.KeyLookup,
		companyBus: cfg.CompanyBus,
		method:     jwt.GetSigningMethod(jwt.SigningMethodRS256.Name),
		parser:     jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Name}), jwt.WithExpirationRequired()),
		issuer:     cfg.Issuer,
		activeKID:  cfg.ActiveKID,
	}
}

// GenerateToken generates a signed JWT token string for the company, signed
// with the active key.
func (a *Auth) GenerateToken(cmp companybus.Company) (string, error) {
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(cmp.ID, 10),
			Issuer:    a.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		CompanyID:     cmp.ID,
		AdminUsername: cmp.AdminUsername,
		Email:         cmp.Email,
	}

	token := jwt.NewWithClaims(a.method, claims)
	token.Header["kid"] = a.activeKID

	privateKeyPEM, err := a.keyLookup.PrivateKey(a.activeKID)
	if err != nil {
		return "", fmt.Errorf("private key: %w", err)
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(privateKeyPEM))
	if err != nil {
		return "", fmt.Errorf("parsing private key from PEM: %w", err)
	}

	str, err := token.SignedString(privateKey)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return str, nil
}

// Authenticate processes the token to validate the sender's token is valid
// and that the company it names is still active.
func (a *Auth) Authenticate(ctx context.Context, bearerToken string) (Claims, error) {
	parts := strings.Split(bearerToken, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return Claims{}, errors.New("expected authorization header format: Bearer <token>")
	}

	jwtUnverified := parts[1]

	var claims Claims
	token, _, err := a.parser.ParseUnverified(jwtUnverified, &claims)
	if err != nil {
		return Claims{}, fmt.Errorf("error parsing token: %w", err)
	}

	kidRaw, exists := token.Header["kid"]
	if !exists {
		return Claims{}, ErrKIDMissing
	}

	kid, ok := kidRaw.(string)
	if !ok {
		return Claims{}, ErrKIDMalformed
	}

	pem, err := a.keyLookup.PublicKey(kid)
	if err != nil {
		return Claims{}, fmt.Errorf("fetching public key for kid %q: %w", kid, err)
	}

	claims, err = a.verifySignatureAndClaims(jwtUnverified, pem)
	if err != nil {
		a.log.Info(ctx, "**Authenticate-FAILED**", "kid", kid, "ERROR", err)
		return Claims{}, fmt.Errorf("authentication failed: %w", err)
	}

	if claims.Subject != strconv.FormatInt(claims.CompanyID, 10) {
		return Claims{}, ErrSubjectMismatch
	}

	if err := a.isCompanyActive(ctx, claims); err != nil {
		return Claims{}, fmt.Errorf("company not active: %w", err)
	}

	return claims, nil
}

// Login checks the admin credentials of a company. Unknown usernames and wrong
// passwords both return companybus.ErrAuthenticationFailure.
func (a *Auth) Login(ctx context.Context, username string, password string) (companybus.Company, error) {
	cmp, err := a.companyBus.Authenticate(ctx, username, password)
	if err != nil {
		return companybus.Company{}, fmt.Errorf("login: %w", err)
	}

	return cmp, nil
}

// isCompanyActive checks the company still exists and is active. Store
// failures are marked with ErrCompanyLookup.
func (a *Auth) isCompanyActive(ctx context.Context, claims Claims) error {
	if a.companyBus == nil {
		return nil
	}

	if _, err := a.companyBus.QueryByID(ctx, claims.CompanyID); err != nil {
		if errors.Is(err, companybus.ErrNotFound) {
			return fmt.Errorf("query company: %w", err)
		}
		return fmt.Errorf("%w: %w", ErrCompanyLookup, err)
	}

	return nil
}

// verifySignatureAndClaims parses the token with the public key, validates the
// signature and expiry, and checks the issuer claim.
func (a *Auth) verifySignatureAndClaims(tokenStr, pemStr string) (Claims, error) {
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pemStr))
	if err != nil {
		return Claims{}, fmt.Errorf("parsing public key: %w", err)
	}

	var claims Claims
	token, err := a.parser.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return publicKey, nil
	})

	if err != nil {
		return Claims{}, fmt.Errorf("validating token signature: %w", err)
	}

	if !token.Valid {
		return Claims{}, errors.New("token is invalid")
	}

	if claims.Issuer != a.issuer {
		return Claims{}, fmt.Errorf("invalid issuer: expected %q, got %q", a.issuer, claims.Issuer)
	}

	return claims, nil
}
