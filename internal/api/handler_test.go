package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jobboard-service/internal/api"
	"jobboard-service/internal/jwt"
	"jobboard-service/internal/model"
	"jobboard-service/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) (uuid.UUID, error) {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return uuid.Nil, &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
		}
	}
	id := uuid.New()
	user.CreatedAt = time.Now()
	stored := *user
	stored.ID = id
	f.users[id] = &stored
	return id, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			found := *user
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if _, ok := f.users[id]; !ok {
		return false, nil
	}
	delete(f.users, id)
	return true, nil
}

type noopPublisher struct{}

func (noopPublisher) PublishUserRegistered(*model.User) error        { return nil }
func (noopPublisher) PublishOfferCreated(*model.JobOffer) error      { return nil }
func (noopPublisher) PublishOfferDeleted(offerID, _ uuid.UUID) error { return nil }

func newAuthApp(t *testing.T) (*fiber.App, *jwt.TokenService) {
	t.Helper()

	tokens := jwt.NewTokenService("test-secret", "jobboard-service", time.Hour)
	authService := service.NewAuthService(newFakeUserRepo(), tokens, noopPublisher{})
	handler := api.NewAuthHandler(authService)

	app := fiber.New()
	users := app.Group("/users")
	users.Post("/signup", handler.Signup)
	users.Post("/login", handler.Login)
	users.Delete("/:id", api.AuthMiddleware(tokens), handler.DeleteUser)

	return app, tokens
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestSignup_ReturnsPublicProjection(t *testing.T) {
	app, _ := newAuthApp(t)

	// short passwords are accepted; only absent or empty fields are rejected
	resp := postJSON(t, app, "/users/signup", fiber.Map{
		"firstName": "John",
		"lastName":  "Doe",
		"email":     "john@x.com",
		"password":  "pw123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NotContains(t, string(body), "password")
	require.NotContains(t, string(body), "hash")

	var user api.PublicUser
	require.NoError(t, json.Unmarshal(body, &user))
	require.NotEqual(t, uuid.Nil, user.ID)
	require.Equal(t, "john@x.com", user.Email)
	require.False(t, user.CreatedAt.IsZero())
}

func TestSignup_DuplicateEmailConflicts(t *testing.T) {
	app, _ := newAuthApp(t)

	payload := fiber.Map{
		"firstName": "John",
		"lastName":  "Doe",
		"email":     "john@x.com",
		"password":  "pw123secret",
	}

	resp := postJSON(t, app, "/users/signup", payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	payload["password"] = "a-different-password"
	resp = postJSON(t, app, "/users/signup", payload)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestSignup_MissingFields(t *testing.T) {
	app, _ := newAuthApp(t)

	resp := postJSON(t, app, "/users/signup", fiber.Map{
		"firstName": "John",
		"email":     "john@x.com",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogin_UniformInvalidCredentialsBody(t *testing.T) {
	app, _ := newAuthApp(t)

	resp := postJSON(t, app, "/users/signup", fiber.Map{
		"firstName": "John",
		"lastName":  "Doe",
		"email":     "john@x.com",
		"password":  "pw123secret",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	wrongPw := postJSON(t, app, "/users/login", fiber.Map{"email": "john@x.com", "password": "wrong-password"})
	unknownEmail := postJSON(t, app, "/users/login", fiber.Map{"email": "nobody@x.com", "password": "pw123secret"})

	require.Equal(t, http.StatusBadRequest, wrongPw.StatusCode)
	require.Equal(t, http.StatusBadRequest, unknownEmail.StatusCode)

	bodyWrongPw, err := io.ReadAll(wrongPw.Body)
	require.NoError(t, err)
	bodyUnknown, err := io.ReadAll(unknownEmail.Body)
	require.NoError(t, err)
	require.Equal(t, bodyWrongPw, bodyUnknown, "login failure bodies must be byte-identical")
}

func TestLogin_Success(t *testing.T) {
	app, tokens := newAuthApp(t)

	resp := postJSON(t, app, "/users/signup", fiber.Map{
		"firstName": "John",
		"lastName":  "Doe",
		"email":     "john@x.com",
		"password":  "pw123secret",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, app, "/users/login", fiber.Map{"email": "john@x.com", "password": "pw123secret"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login api.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))
	require.NotEmpty(t, login.Token)
	require.Equal(t, "john@x.com", login.User.Email)

	subject, err := tokens.Verify(login.Token)
	require.NoError(t, err)
	require.Equal(t, login.User.ID, subject)
}

func TestDeleteUser_RequiresToken(t *testing.T) {
	app, _ := newAuthApp(t)

	req := httptest.NewRequest(http.MethodDelete, "/users/"+uuid.New().String(), nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestDeleteUser_OwnerOnly(t *testing.T) {
	app, tokens := newAuthApp(t)

	resp := postJSON(t, app, "/users/signup", fiber.Map{
		"firstName": "John",
		"lastName":  "Doe",
		"email":     "john@x.com",
		"password":  "pw123secret",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var user api.PublicUser
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&user))

	strangerToken, err := tokens.Issue(uuid.New())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/users/"+user.ID.String(), nil)
	req.Header.Set(api.AuthTokenHeader, strangerToken)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	ownToken, err := tokens.Issue(user.ID)
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodDelete, "/users/"+user.ID.String(), nil)
	req.Header.Set(api.AuthTokenHeader, ownToken)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
