package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/eleontev/flower-shop-api/internal/handlers"
	appjwt "github.com/eleontev/flower-shop-api/internal/jwt"
	"github.com/eleontev/flower-shop-api/internal/middlewares"
	"github.com/eleontev/flower-shop-api/internal/models"
	"github.com/eleontev/flower-shop-api/internal/repositories"
	"github.com/eleontev/flower-shop-api/internal/services"
	"github.com/eleontev/flower-shop-api/internal/storage"
)

// stubNotifier records forwarded messages in place of the Telegram facade.
type stubNotifier struct {
	texts []string
	err   error
}

func (s *stubNotifier) Send(ctx context.Context, text string) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.texts = append(s.texts, text)
	return int64(len(s.texts)), nil
}

// testServer assembles the full router over temp-dir stores the way the
// application entrypoint does.
type testServer struct {
	router     chi.Router
	tokens     *appjwt.JWT
	userRepo   *repositories.UserRepository
	cartRepo   *repositories.CartRepository
	passwords  *repositories.PasswordRepository
	contactBot *stubNotifier
	orderBot   *stubNotifier
}

func newTestServer(t *testing.T, adminEmails ...string) *testServer {
	t.Helper()
	dir := t.TempDir()

	seedFlowers(t, filepath.Join(dir, "flowers.json"))

	userDoc, err := storage.Open[models.User](filepath.Join(dir, "users.json"))
	require.NoError(t, err)
	cartDoc, err := storage.Open[models.CartItem](filepath.Join(dir, "cart.json"))
	require.NoError(t, err)
	passwordDoc, err := storage.Open[string](filepath.Join(dir, "passwords.json"))
	require.NoError(t, err)
	flowerDoc, err := storage.Open[models.Flower](filepath.Join(dir, "flowers.json"))
	require.NoError(t, err)

	userRepo := repositories.NewUserRepository(userDoc)
	cartRepo := repositories.NewCartRepository(cartDoc)
	passwordRepo := repositories.NewPasswordRepository(passwordDoc)
	flowerRepo := repositories.NewFlowerRepository(flowerDoc)

	tokens := appjwt.New(appjwt.WithSecretKey("test-secret"))
	contactBot := &stubNotifier{}
	orderBot := &stubNotifier{}

	authService := services.NewAuthService(userRepo, userRepo, passwordRepo)
	userService := services.NewUserService(userRepo, userRepo, userRepo, cartRepo, passwordRepo)
	cartService := services.NewCartService(cartRepo, orderBot, nil)
	adminService := services.NewAdminService(userRepo, userRepo, cartRepo, userService, adminEmails)

	authMiddleware := middlewares.AuthMiddleware(tokens)
	adminMiddleware := middlewares.AdminMiddleware(adminService)

	r := chi.NewRouter()

	r.Get("/", handlers.NewIndexHandler("test"))
	r.Get("/health", handlers.NewHealthHandler("test"))
	r.Post("/contact", handlers.NewContactHandler(contactBot))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", handlers.NewRegisterHandler(authService, tokens))
		r.Post("/login", handlers.NewLoginHandler(authService, tokens))
		r.Post("/logout", handlers.NewLogoutHandler(tokens))
		r.Get("/check", handlers.NewAuthCheckHandler(tokens, userRepo))
	})

	r.Route("/flowers", func(r chi.Router) {
		r.Get("/", handlers.NewListFlowersHandler(flowerRepo))
		r.Get("/{id}", handlers.NewGetFlowerHandler(flowerRepo))
		r.Patch("/{id}", handlers.NewRateFlowerHandler(flowerRepo))
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/me", handlers.NewGetProfileHandler(userService))
		r.Patch("/me", handlers.NewUpdateProfileHandler(userService))
		r.Delete("/me", handlers.NewDeleteProfileHandler(userService, tokens))
	})

	r.Route("/cart", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", handlers.NewGetCartHandler(cartService))
		r.Post("/add", handlers.NewAddToCartHandler(cartService))
		r.Post("/update", handlers.NewUpdateCartHandler(cartService))
		r.Post("/checkout", handlers.NewCheckoutHandler(cartService))
		r.Get("/total", handlers.NewCartTotalHandler(cartService))
		r.Delete("/", handlers.NewClearCartHandler(cartService))
		r.Delete("/{id}", handlers.NewRemoveFromCartHandler(cartService))
	})

	r.Route("/admin", func(r chi.Router) {
		r.Get("/check", handlers.NewAdminCheckHandler(tokens, adminService))
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(adminMiddleware)
			r.Get("/users", handlers.NewAdminListUsersHandler(adminService))
			r.Delete("/users/{userId}", handlers.NewAdminDeleteUserHandler(adminService))
		})
	})

	r.NotFound(handlers.NewNotFoundHandler())

	return &testServer{
		router:     r,
		tokens:     tokens,
		userRepo:   userRepo,
		cartRepo:   cartRepo,
		passwords:  passwordRepo,
		contactBot: contactBot,
		orderBot:   orderBot,
	}
}

func seedFlowers(t *testing.T, path string) {
	t.Helper()
	catalog := map[string]models.Flower{
		"1": {ID: 1, Name: "Rose", Price: 10, Image: "rose.jpg", Rating: 4, RatingCount: 1},
		"2": {ID: 2, Name: "Tulip", Price: 5.5, Image: "tulip.jpg"},
	}
	data, err := json.Marshal(catalog)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

// do issues a request against the router. A non-empty token goes into the
// Authorization header.
func (s *testServer) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// register creates an account through the API and returns the user id and
// token.
func (s *testServer) register(t *testing.T, username, email, password string) (userID, token string) {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/auth/register", "", `{"username":"`+username+`","email":"`+email+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp handlers.RegisterResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.User.ID, resp.Token
}
