package handler

import (
	"net/http"
	"testing"

	"car-service/internal/model"
	"car-service/pkg/config"
	"car-service/pkg/jwtutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister_CreatesUserWithHashedPassword(t *testing.T) {
	db := openTestDB(t)
	h := NewUserHandler(db)

	c, rec := newContext(t, http.MethodPost, "/users/register",
		`{"username":"a","email":"a@x.com","password":"p"}`)
	require.NoError(t, h.Register(c))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Greater(t, body["id"].(float64), float64(0))

	var user model.User
	require.NoError(t, db.Where("username = ?", "a").First(&user).Error)
	assert.Equal(t, "a@x.com", user.Email)
	assert.NotEqual(t, "p", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("p")))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	h := NewUserHandler(openTestDB(t))

	c, rec := newContext(t, http.MethodPost, "/users/register",
		`{"username":"a","email":"a@x.com","password":"p"}`)
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = newContext(t, http.MethodPost, "/users/register",
		`{"username":"a","email":"other@x.com","password":"q"}`)
	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Username already exists", body["message"])
}

func TestRegister_DifferentUsernamesBothSucceed(t *testing.T) {
	h := NewUserHandler(openTestDB(t))

	for _, username := range []string{"alice", "bob"} {
		c, rec := newContext(t, http.MethodPost, "/users/register",
			`{"username":"`+username+`","email":"`+username+`@x.com","password":"p"}`)
		require.NoError(t, h.Register(c))
		assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
}

func TestLogin_UserNotFound(t *testing.T) {
	h := NewUserHandler(openTestDB(t))

	c, rec := newContext(t, http.MethodPost, "/users/login",
		`{"username":"ghost","password":"p"}`)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "User not found", body["message"])
}

func TestLogin_WrongPassword(t *testing.T) {
	db := openTestDB(t)
	h := NewUserHandler(db)

	c, rec := newContext(t, http.MethodPost, "/users/register",
		`{"username":"a","email":"a@x.com","password":"p"}`)
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = newContext(t, http.MethodPost, "/users/login",
		`{"username":"a","password":"wrong"}`)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid password", body["message"])
	assert.NotContains(t, body, "jwt_token")
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	jwtutil.Initialize(&config.JWTConfig{SigningKey: "login-test-secret"})

	db := openTestDB(t)
	h := NewUserHandler(db)

	c, rec := newContext(t, http.MethodPost, "/users/register",
		`{"username":"a","email":"a@x.com","password":"p"}`)
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = newContext(t, http.MethodPost, "/users/login",
		`{"username":"a","password":"p"}`)
	require.NoError(t, h.Login(c))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	token, ok := body["jwt_token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	claims, err := jwtutil.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "a", claims.Username)
}
