package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shopledger/internal/dto"
	"shopledger/internal/handler"
	"shopledger/internal/middleware"
	"shopledger/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubAuthService struct {
	resp *dto.LoginResponse
	err  error
}

func (s *stubAuthService) Login(_ context.Context, _ dto.LoginRequest) (*dto.LoginResponse, error) {
	return s.resp, s.err
}

var _ service.AuthService = (*stubAuthService)(nil)

func postLogin(svc service.AuthService) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.POST("/login", handler.NewAuthHandler(svc).Login)

	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"username":"admin","password":"s3cret"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLogin_Success(t *testing.T) {
	w := postLogin(&stubAuthService{resp: &dto.LoginResponse{
		Token: "tok", Role: "admin", Message: "Login successful as admin",
	}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token":"tok"`)
}

func TestLogin_BadCredentials(t *testing.T) {
	w := postLogin(&stubAuthService{err: service.ErrInvalidCredentials})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid credentials"}`, w.Body.String())
}

func TestLogin_InternalFailureIsNot401(t *testing.T) {
	// A token-signing failure is an internal error; it must take the
	// generic 500 path and never read as a credentials problem.
	w := postLogin(&stubAuthService{err: errors.New("key must be of type []byte")})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
}
