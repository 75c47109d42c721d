package userControllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/whoisaditya/IWP-Backend/middleware"
	"github.com/whoisaditya/IWP-Backend/models"
	"github.com/whoisaditya/IWP-Backend/testutil"
)

// captureMailer records the verification URL instead of sending anything.
type captureMailer struct {
	url string
}

func (m *captureMailer) SendVerification(name, email, url string) error {
	m.url = url
	return nil
}

func newRouter(db *gorm.DB, mailer *captureMailer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/user/signup", SignupHandler(db, mailer))
	r.GET("/user/confirmation/:token", ConfirmEmailHandler(db))
	r.POST("/user/login", LoginHandler(db))

	authed := r.Group("/", middleware.UserAuth(db))
	authed.GET("/user/me", MeHandler(db))
	authed.POST("/user/logout", LogoutHandler(db))
	return r
}

func postJSON(r *gin.Engine, path, body, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestSignupConfirmLoginFlow(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("EMAIL_SECRET", "email-secret")

	db := testutil.NewDB(t)
	mailer := &captureMailer{}
	r := newRouter(db, mailer)

	signup := `{"name":"alice","email":"alice@example.com","password":"hunter22",` +
		`"gender":"f","age":30,"phone":"55555"}`
	w := postJSON(r, "/user/signup", signup, "")
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotEmpty(t, mailer.url)

	login := `{"email":"alice@example.com","password":"hunter22"}`

	// Login is rejected until the email is verified.
	w = postJSON(r, "/user/login", login, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "verify your email")

	// Follow the confirmation link from the captured mail.
	confirmPath := mailer.url[strings.Index(mailer.url, "/user/confirmation/"):]
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, confirmPath, nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(r, "/user/login", login, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Status string `json:"status"`
		Data   struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	require.NotEmpty(t, body.Data.Token)

	// The issued token opens authenticated routes.
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/user/me", nil)
	req.Header.Set("Authorization", "Bearer "+body.Data.Token)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// Logout revokes it.
	w = postJSON(r, "/user/logout", "", body.Data.Token)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/user/me", nil)
	req.Header.Set("Authorization", "Bearer "+body.Data.Token)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSignup_RejectsUnderage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("EMAIL_SECRET", "email-secret")

	db := testutil.NewDB(t)
	r := newRouter(db, &captureMailer{})

	signup := `{"name":"kid","email":"kid@example.com","password":"hunter22",` +
		`"gender":"m","age":12,"phone":"55555"}`
	w := postJSON(r, "/user/signup", signup, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "too young")

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLogin_UnknownAccount(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	db := testutil.NewDB(t)
	r := newRouter(db, &captureMailer{})

	w := postJSON(r, "/user/login", `{"email":"ghost@example.com","password":"hunter22"}`, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Unable to login")
}
