package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"file-aggregator/identity"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) Verify(ctx context.Context, token string) (*identity.Identity, error) {
	args := m.Called(ctx, token)
	ident, _ := args.Get(0).(*identity.Identity)
	return ident, args.Error(1)
}

func newAuthRouter(verifier identity.Verifier, called *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/protected", AuthMiddleware(verifier), func(c *gin.Context) {
		*called = true
		ident, ok := IdentityFrom(c)
		if ok {
			c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(ContextKeyUserID), "email": ident.Email})
			return
		}
		c.JSON(http.StatusTeapot, gin.H{"anonymous": true})
	})
	return router
}

func TestAuthMiddleware_DisabledPassesThrough(t *testing.T) {
	var called bool
	router := newAuthRouter(nil, &called)

	for _, header := range []string{"", "garbage", "Bearer whatever"} {
		called = false
		req := httptest.NewRequest(http.MethodPost, "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.True(t, called)
		assert.Equal(t, http.StatusTeapot, w.Code)
		assert.JSONEq(t, `{"anonymous":true}`, w.Body.String())
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	testCases := []struct {
		name      string
		header    string
		setupMock func(m *mockVerifier)
		message   string
	}{
		{
			name:    "missing header",
			message: "missing authorization header",
		},
		{
			name:    "wrong scheme",
			header:  "Basic dXNlcjpwYXNz",
			message: "invalid authorization format",
		},
		{
			name:    "empty token",
			header:  "Bearer ",
			message: "invalid authorization format",
		},
		{
			name:   "provider rejects token",
			header: "Bearer bad",
			setupMock: func(m *mockVerifier) {
				m.On("Verify", mock.Anything, "bad").Return(nil, identity.ErrInvalidToken)
			},
			message: "invalid or expired token",
		},
		{
			name:   "provider unreachable",
			header: "Bearer token",
			setupMock: func(m *mockVerifier) {
				m.On("Verify", mock.Anything, "token").Return(nil, errors.New("connection refused"))
			},
			message: "invalid or expired token",
		},
		{
			name:   "provider returns no identity",
			header: "Bearer token",
			setupMock: func(m *mockVerifier) {
				m.On("Verify", mock.Anything, "token").Return(nil, nil)
			},
			message: "invalid or expired token",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			verifier := &mockVerifier{}
			if testCase.setupMock != nil {
				testCase.setupMock(verifier)
			}
			var called bool
			router := newAuthRouter(verifier, &called)

			req := httptest.NewRequest(http.MethodPost, "/protected", nil)
			if testCase.header != "" {
				req.Header.Set("Authorization", testCase.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.False(t, called)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"error":"`+testCase.message+`"}`, w.Body.String())
			verifier.AssertExpectations(t)
		})
	}
}

func TestAuthMiddleware_AttachesIdentity(t *testing.T) {
	verifier := &mockVerifier{}
	verifier.On("Verify", mock.Anything, "good").
		Return(&identity.Identity{ID: "user-1", Email: "a@b.c"}, nil)
	var called bool
	router := newAuthRouter(verifier, &called)

	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":"user-1","email":"a@b.c"}`, w.Body.String())
	verifier.AssertExpectations(t)
}

func TestExtractToken(t *testing.T) {
	assert.Equal(t, "abc", extractToken("Bearer abc"))
	assert.Equal(t, "", extractToken("bearer abc"))
	assert.Equal(t, "", extractToken("Bearer"))
	assert.Equal(t, "a b", extractToken("Bearer a b"))
}
