package main

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 24 * time.Hour

var (
	ErrInvalidCredentials = errors.New("GECERSIZ_GIRIS")
	ErrAccountBanned      = errors.New("HESAP_ENGELLI")
	ErrInvalidToken       = errors.New("GECERSIZ_TOKEN")
)

// Identity is the authenticated account as seen by the panel.
type Identity struct {
	AccountID int64  `json:"account_id"`
	Login     string `json:"login"`
}

type panelClaims struct {
	Login string `json:"login"`
	jwt.RegisteredClaims
}

// AuthService logs players in against the game's own account table and hands
// out signed tokens. It never creates accounts; the game server owns those.
type AuthService struct {
	reg    *Registry
	secret []byte
}

func NewAuthService(reg *Registry, secret []byte) *AuthService {
	return &AuthService{reg: reg, secret: secret}
}

// Login checks the credentials and ban status, then issues a token.
func (s *AuthService) Login(login, password string) (string, *Identity, error) {
	if login == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	account, err := s.reg.SelectOne("account",
		"SELECT id, login, password, status, availDt FROM account WHERE login = ?", login)
	if err != nil {
		return "", nil, err
	}
	if account == nil {
		return "", nil, ErrInvalidCredentials
	}

	status := valueString(account["status"])
	if status != "" && status != "OK" {
		banUntil := valueString(account["availDt"])
		if banUntil != "" {
			return "", nil, fmt.Errorf("%w (açılış: %s)", ErrAccountBanned, banUntil)
		}
		return "", nil, ErrAccountBanned
	}

	if !verifyGamePassword(password, valueString(account["password"])) {
		return "", nil, ErrInvalidCredentials
	}

	identity := &Identity{
		AccountID: valueInt(account["id"]),
		Login:     valueString(account["login"]),
	}
	token, err := s.issueToken(identity)
	if err != nil {
		return "", nil, err
	}
	return token, identity, nil
}

func (s *AuthService) issueToken(identity *Identity) (string, error) {
	now := time.Now()
	claims := panelClaims{
		Login: identity.Login,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", identity.AccountID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// parseToken verifies the signature and expiry without touching the database.
func (s *AuthService) parseToken(token string) (*Identity, error) {
	var claims panelClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	var accountID int64
	if _, err := fmt.Sscanf(claims.Subject, "%d", &accountID); err != nil || accountID <= 0 {
		return nil, ErrInvalidToken
	}
	return &Identity{AccountID: accountID, Login: claims.Login}, nil
}

// Validate parses the token and re-checks ban status; a ban issued after
// login invalidates outstanding tokens.
func (s *AuthService) Validate(token string) (*Identity, error) {
	identity, err := s.parseToken(token)
	if err != nil {
		return nil, err
	}

	account, err := s.reg.SelectOne("account",
		"SELECT status FROM account WHERE id = ?", identity.AccountID)
	if err != nil || account == nil {
		return nil, ErrInvalidToken
	}
	if status := valueString(account["status"]); status != "" && status != "OK" {
		return nil, ErrInvalidToken
	}
	return identity, nil
}

// FromRequest extracts and validates the Bearer token.
func (s *AuthService) FromRequest(r *http.Request) (*Identity, error) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return nil, ErrInvalidToken
	}
	return s.Validate(strings.TrimSpace(header[len(prefix):]))
}

// verifyGamePassword matches a password against the hash formats game servers
// store: MySQL PASSWORD() (41 chars, leading *), plain SHA1 hex, MD5 hex, or
// plaintext on badly configured servers. All comparisons are constant-time.
func verifyGamePassword(password, stored string) bool {
	// MySQL PASSWORD(): * followed by uppercase hex of SHA1(SHA1(binary)).
	if len(stored) == 41 && stored[0] == '*' {
		inner := sha1.Sum([]byte(password))
		outer := sha1.Sum(inner[:])
		expected := "*" + strings.ToUpper(hex.EncodeToString(outer[:]))
		return constantTimeEqual(expected, strings.ToUpper(stored))
	}

	if len(stored) == 40 && isHex(stored) {
		sum := sha1.Sum([]byte(password))
		return constantTimeEqual(hex.EncodeToString(sum[:]), strings.ToLower(stored))
	}

	if len(stored) == 32 && isHex(stored) {
		sum := md5.Sum([]byte(password))
		return constantTimeEqual(hex.EncodeToString(sum[:]), strings.ToLower(stored))
	}

	return constantTimeEqual(password, stored)
}

func constantTimeEqual(a, b string) bool {
	return len(a) == len(b) && subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
