package jwt

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthCookieName is the cookie that carries the identity token.
const AuthCookieName = "auth"

// ErrNoToken is returned when a request carries no usable token.
var ErrNoToken = errors.New("no authorization token in request")

// CookieConfig holds the environment-dependent cookie attributes, resolved
// once at startup so the set and clear paths always agree.
type CookieConfig struct {
	Secure   bool
	SameSite http.SameSite
}

// ProductionCookies returns the cookie attributes for cross-site production
// deployments; DevelopmentCookies the relaxed local ones.
func ProductionCookies() CookieConfig {
	return CookieConfig{Secure: true, SameSite: http.SameSiteNoneMode}
}

func DevelopmentCookies() CookieConfig {
	return CookieConfig{Secure: false, SameSite: http.SameSiteLaxMode}
}

// JWT issues and verifies signed identity tokens and moves them between
// requests, responses and cookies.
type JWT struct {
	secretKey string
	exp       time.Duration
	cookies   CookieConfig
}

type Option func(*JWT)

func WithSecretKey(secret string) Option {
	return func(j *JWT) { j.secretKey = secret }
}

func WithExpiration(exp time.Duration) Option {
	return func(j *JWT) { j.exp = exp }
}

func WithCookieConfig(cfg CookieConfig) Option {
	return func(j *JWT) { j.cookies = cfg }
}

// New creates a JWT service. Defaults: 7-day expiration, development
// cookie attributes.
func New(opts ...Option) *JWT {
	j := &JWT{
		exp:     7 * 24 * time.Hour,
		cookies: DevelopmentCookies(),
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Generate creates a signed token carrying the user id.
func (j *JWT) Generate(ctx context.Context, userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(j.exp).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// GetUserID verifies the token and returns the user id it carries.
// Expired, malformed and badly signed tokens all fail the same way; callers
// only learn that no identity could be resolved.
func (j *JWT) GetUserID(ctx context.Context, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", errors.New("user_id not found in token")
	}
	return userID, nil
}

// GetTokensFromRequest extracts the request's token candidates in
// resolution order: the Authorization bearer header first, then the auth
// cookie. Callers try each candidate until one verifies, so a stale header
// token does not mask a valid cookie. ErrNoToken when the request carries
// neither.
func (j *JWT) GetTokensFromRequest(ctx context.Context, r *http.Request) ([]string, error) {
	var tokens []string

	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Fields(authHeader)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			tokens = append(tokens, parts[1])
		}
	}

	if cookie, err := r.Cookie(AuthCookieName); err == nil && cookie.Value != "" {
		tokens = append(tokens, cookie.Value)
	}

	if len(tokens) == 0 {
		return nil, ErrNoToken
	}
	return tokens, nil
}

// SetAuthCookie issues a token for the user and attaches it to the response
// as an http-only cookie. The token is also returned for clients that
// prefer the Authorization header.
func (j *JWT) SetAuthCookie(ctx context.Context, w http.ResponseWriter, userID string) (string, error) {
	token, err := j.Generate(ctx, userID)
	if err != nil {
		return "", err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(j.exp.Seconds()),
		HttpOnly: true,
		Secure:   j.cookies.Secure,
		SameSite: j.cookies.SameSite,
	})
	return token, nil
}

// ClearAuthCookie expires the auth cookie. Attributes must match the ones
// used by SetAuthCookie or browsers keep the old cookie.
func (j *JWT) ClearAuthCookie(ctx context.Context, w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   j.cookies.Secure,
		SameSite: j.cookies.SameSite,
	})
}
