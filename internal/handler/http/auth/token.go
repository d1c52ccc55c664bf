// Package auth exposes the login endpoint and the JWT authorization
// middleware guarding admin routes.
package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"newsportal/internal/handler/http/requestid"
	authservice "newsportal/internal/service/auth"
)

const tokenTTL = time.Hour

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// TokenHandler authenticates an administrator and issues an HS256 JWT,
// rate-limited per client IP.
func TokenHandler(service *authservice.Service, limiter *LoginLimiter) http.HandlerFunc {
	return limitLogin(limiter, func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := slog.With(slog.String("request_id", requestid.FromContext(r.Context())))

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("authentication failed", slog.String("reason", "invalid_request"))
			recordAuth("failure", time.Since(start).Seconds())
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		admin, err := service.Authenticate(r.Context(), authservice.Credentials{
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			reason := "invalid_credentials"
			status := http.StatusUnauthorized
			if !errors.Is(err, authservice.ErrInvalidCredentials) {
				reason = "lookup_failed"
				status = http.StatusInternalServerError
			}
			logger.Warn("authentication failed",
				slog.String("reason", reason),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			recordAuth("failure", time.Since(start).Seconds())
			http.Error(w, "unauthorized", status)
			return
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":  admin.Email,
			"name": admin.Name,
			"role": "admin",
			"exp":  time.Now().Add(tokenTTL).Unix(),
		})
		signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
		if err != nil {
			logger.Error("token generation failed", slog.String("error", err.Error()))
			recordAuth("failure", time.Since(start).Seconds())
			http.Error(w, "token generation failed", http.StatusInternalServerError)
			return
		}

		logger.Info("authentication successful",
			slog.String("admin_email", admin.Email),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		recordAuth("success", time.Since(start).Seconds())

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(tokenResponse{Token: signed}); err != nil {
			logger.Error("failed to encode token response", slog.String("error", err.Error()))
		}
	})
}
