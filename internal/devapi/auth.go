package devapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"organo/internal/domain"
)

type account struct {
	user         domain.User
	passwordHash []byte
}

type refreshGrant struct {
	userID  domain.ID
	expires time.Time
}

// Claims are carried by access tokens.
type Claims struct {
	jwt.RegisteredClaims
	Username domain.Username `json:"username"`
	Role     domain.Role     `json:"role"`
}

type ctxKey struct{}

func claimsFrom(ctx context.Context) *Claims {
	c, _ := ctx.Value(ctxKey{}).(*Claims)
	return c
}

func (s *Server) seedAccounts() {
	for _, u := range []struct {
		name domain.Username
		role domain.Role
	}{
		{"teacher", domain.RoleTeacher},
		{"student", domain.RoleStudent},
	} {
		// Seed passwords equal the usernames.
		hash, err := bcrypt.GenerateFromPassword([]byte(u.name), bcrypt.MinCost)
		if err != nil {
			panic(err)
		}
		s.users = append(s.users, account{
			user: domain.User{
				ID:       newID(),
				Username: u.name,
				Email:    string(u.name) + "@organo.local",
				Role:     u.role,
			},
			passwordHash: hash,
		})
	}
}

func (s *Server) findUser(match func(domain.User) bool) (account, bool) {
	for _, a := range s.users {
		if match(a.user) {
			return a, true
		}
	}
	return account{}, false
}

// issueLocked signs an access token and, when rotate is set, a fresh refresh
// token. Callers hold s.mu.
func (s *Server) issueLocked(u domain.User, rotate bool) (domain.TokenPair, error) {
	now := s.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "organo-devapi",
			Subject:   u.ID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
		Username: u.Username,
		Role:     u.Role,
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return domain.TokenPair{}, err
	}
	pair := domain.TokenPair{AccessToken: access}
	if rotate {
		pair.RefreshToken = uuid.NewString()
		s.refresh[pair.RefreshToken] = refreshGrant{userID: u.ID, expires: now.Add(s.refreshTTL)}
	}
	return pair, nil
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if !decode(w, r, &creds) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.findUser(func(u domain.User) bool { return u.Username == creds.Username })
	if !ok || bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(creds.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}
	pair, err := s.issueLocked(acc.user, true)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, domain.LoginResponse{TokenPair: pair, User: acc.user})
}

type refreshBody struct {
	RefreshToken string `json:"refresh_token"`
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var body refreshBody
	if !decode(w, r, &body) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	grant, ok := s.refresh[body.RefreshToken]
	if !ok || !s.now().Before(grant.expires) {
		delete(s.refresh, body.RefreshToken)
		writeError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}
	acc, ok := s.findUser(func(u domain.User) bool { return u.ID == grant.userID })
	if !ok {
		writeError(w, http.StatusUnauthorized, "unknown user")
		return
	}
	delete(s.refresh, body.RefreshToken)
	pair, err := s.issueLocked(acc.user, true)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, pair)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	var body refreshBody
	if !decode(w, r, &body) {
		return
	}
	s.mu.Lock()
	delete(s.refresh, body.RefreshToken)
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	c := claimsFrom(r.Context())
	s.mu.RLock()
	acc, ok := s.findUser(func(u domain.User) bool { return u.ID.String() == c.Subject })
	s.mu.RUnlock()
	if !ok {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, acc.user)
}

func (s *Server) parseToken(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		claims, err := s.parseToken(raw)
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			writeError(w, http.StatusUnauthorized, "token expired")
			return
		case err != nil:
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, claims)))
	})
}

func (s *Server) requireTeacher(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c := claimsFrom(r.Context()); c == nil || !c.Role.CanManageContent() {
			writeError(w, http.StatusForbidden, "teacher role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
