package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	jwtExpiry        = 24 * time.Hour
	bcryptCost       = 12
	loginRateWindow  = 60 * time.Second
	maxLoginAttempts = 10
)

var (
	ErrBadCredentials = errors.New("invalid password")
	ErrRateLimited    = errors.New("too many login attempts")
)

// Auth guards the admin endpoints with a bcrypt-checked password and
// short-lived JWTs.
type Auth struct {
	passHash  []byte
	jwtSecret []byte

	rateMu  sync.Mutex
	rateMap map[string]*rateEntry
}

type rateEntry struct {
	Count   int
	ResetAt time.Time
}

// NewAuth hashes the admin password and loads or creates the signing
// secret. The secret is persisted in the settings table when a DB is
// available, so tokens survive restarts.
func NewAuth(password string, db *DB) (*Auth, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}
	return &Auth{
		passHash:  hash,
		jwtSecret: loadOrCreateSecret(db),
		rateMap:   make(map[string]*rateEntry),
	}, nil
}

func loadOrCreateSecret(db *DB) []byte {
	if h := db.GetSetting("jwt_secret"); h != "" {
		if b, err := hex.DecodeString(h); err == nil && len(b) == 32 {
			return b
		}
	}
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		panic("failed to generate JWT secret: " + err.Error())
	}
	if err := db.SetSetting("jwt_secret", hex.EncodeToString(secret)); err != nil {
		Log.Warnf("could not persist JWT secret: %v", err)
	}
	return secret
}

// Login verifies the password and returns a signed token. Attempts
// are rate-limited per IP.
func (a *Auth) Login(password, ip string) (string, error) {
	if !a.checkRate(ip) {
		return "", ErrRateLimited
	}
	if bcrypt.CompareHashAndPassword(a.passHash, []byte(password)) != nil {
		return "", ErrBadCredentials
	}
	return a.generateToken()
}

func (a *Auth) generateToken() (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin",
		"iat": now.Unix(),
		"exp": now.Add(jwtExpiry).Unix(),
	})
	return token.SignedString(a.jwtSecret)
}

// VerifyToken validates a token issued by Login.
func (a *Auth) VerifyToken(tokenStr string) error {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.jwtSecret, nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return errors.New("invalid token")
	}
	return nil
}

func (a *Auth) checkRate(ip string) bool {
	a.rateMu.Lock()
	defer a.rateMu.Unlock()

	now := time.Now()
	entry, ok := a.rateMap[ip]
	if !ok || now.After(entry.ResetAt) {
		a.rateMap[ip] = &rateEntry{Count: 1, ResetAt: now.Add(loginRateWindow)}
		return true
	}
	entry.Count++
	return entry.Count <= maxLoginAttempts
}
