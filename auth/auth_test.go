package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *Service {
	t.Helper()
	s, err := NewService("test-secret", time.Hour)
	require.NoError(t, err)
	return s
}

func TestIssueValidate(t *testing.T) {
	s := newService(t)
	id := uuid.New()

	token, err := s.Issue(id)
	require.NoError(t, err)

	claims, err := s.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, id.String(), claims.Subject)
}

func TestValidate_Rejects(t *testing.T) {
	s := newService(t)
	id := uuid.New()

	other, err := NewService("other-secret", time.Hour)
	require.NoError(t, err)
	foreign, err := other.Issue(id)
	require.NoError(t, err)

	expiredSvc := newService(t)
	expiredSvc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredSvc.Issue(id)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: id})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noUser, err := s.Issue(uuid.Nil)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"empty":    "",
		"garbage":  "not.a.token",
		"foreign":  foreign,
		"expired":  expired,
		"alg none": unsigned,
		"nil user": noUser,
	} {
		_, err := s.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken, name)
	}
}

func TestNewService_EmptySecret(t *testing.T) {
	_, err := NewService("", 0)
	assert.Error(t, err)

	s, err := NewService("x", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTTL, s.ttl)
}

func TestMiddleware(t *testing.T) {
	s := newService(t)
	id := uuid.New()
	token, err := s.Issue(id)
	require.NoError(t, err)

	var seen uuid.UUID
	h := Middleware(s)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		header string
		want   int
	}{
		{"Bearer " + token, http.StatusNoContent},
		{"bearer " + token, http.StatusNoContent},
		{"", http.StatusUnauthorized},
		{"Basic abc", http.StatusUnauthorized},
		{"Bearer", http.StatusUnauthorized},
		{"Bearer nope", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		seen = uuid.Nil
		req := httptest.NewRequest(http.MethodGet, "/api/summaries", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, tt.want, rec.Code, tt.header)
		if tt.want == http.StatusNoContent {
			assert.Equal(t, id, seen)
		} else {
			assert.Contains(t, rec.Body.String(), `"error":"unauthorized"`)
		}
	}
}

func TestUserID_Missing(t *testing.T) {
	_, ok := UserID(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)
}
