package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequireGlobal(t *testing.T) {
	protegido := RequireGlobal(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	casos := []struct {
		papel  string
		status int
	}{
		{"global", http.StatusNoContent},
		{"master", http.StatusForbidden},
		{"assessor", http.StatusForbidden},
		{"", http.StatusForbidden},
	}
	for _, caso := range casos {
		req := httptest.NewRequest(http.MethodDelete, "/usuarios/1", nil)
		if caso.papel != "" {
			req = req.WithContext(context.WithValue(req.Context(), CtxPapel, caso.papel))
		}
		rec := httptest.NewRecorder()
		protegido.ServeHTTP(rec, req)
		assert.Equal(t, caso.status, rec.Code, "papel %q", caso.papel)
	}
}
