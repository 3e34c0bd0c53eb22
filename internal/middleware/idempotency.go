package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aditya/go-ridepool/pkg/utils"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	idempotencyTTL    = 24 * time.Hour
	idempotencyPrefix = "idempotency:"
)

// IdempotencyMiddleware replays the stored response when a client retries a
// write with the same Idempotency-Key, so a retried POST /bookings cannot
// book twice.
type IdempotencyMiddleware struct {
	redis *redis.Client
}

type cachedResponse struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Body       []byte            `json:"body"`
	BodyHash   string            `json:"body_hash"`
}

func NewIdempotencyMiddleware(redisClient *redis.Client) *IdempotencyMiddleware {
	return &IdempotencyMiddleware{redis: redisClient}
}

// responseWriter captures the response for caching
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.body.Write(b)
	return rw.ResponseWriter.Write(b)
}

func (m *IdempotencyMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost && r.Method != http.MethodPut && r.Method != http.MethodPatch {
			next.ServeHTTP(w, r)
			return
		}

		idempotencyKey := r.Header.Get(IdempotencyHeader)
		if idempotencyKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			utils.BadRequest(w, "failed to read request body")
			return
		}
		r.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		bodyHash := hashBody(bodyBytes)
		cacheKey := idempotencyPrefix + idempotencyKey

		ctx := r.Context()

		cached, err := m.getCachedResponse(ctx, cacheKey)
		if err == nil {
			if cached.BodyHash != bodyHash {
				utils.ErrorMessage(w, http.StatusConflict, "idempotency key already used with different request")
				return
			}

			for k, v := range cached.Headers {
				w.Header().Set(k, v)
			}
			w.WriteHeader(cached.StatusCode)
			w.Write(cached.Body)
			return
		}

		// One in-flight request per key at a time.
		lockKey := cacheKey + ":lock"
		locked, err := m.redis.SetNX(ctx, lockKey, "1", 30*time.Second).Result()
		if err != nil || !locked {
			utils.ErrorMessage(w, http.StatusConflict, "a request with this idempotency key is already being processed")
			return
		}
		defer m.redis.Del(ctx, lockKey)

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		// Only successful responses are replayable.
		if rw.statusCode >= 200 && rw.statusCode < 300 {
			headers := make(map[string]string)
			headers["Content-Type"] = rw.Header().Get("Content-Type")

			cached := cachedResponse{
				StatusCode: rw.statusCode,
				Headers:    headers,
				Body:       rw.body.Bytes(),
				BodyHash:   bodyHash,
			}

			data, _ := json.Marshal(cached)
			m.redis.Set(ctx, cacheKey, data, idempotencyTTL)
		}
	})
}

func (m *IdempotencyMiddleware) getCachedResponse(ctx context.Context, key string) (*cachedResponse, error) {
	data, err := m.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}

	var cached cachedResponse
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, err
	}

	return &cached, nil
}

func hashBody(body []byte) string {
	hash := sha256.Sum256(body)
	return hex.EncodeToString(hash[:])
}
