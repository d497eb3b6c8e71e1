package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-BookingEngine/internal/api/handlers"
	"github.com/m04kA/SMC-BookingEngine/pkg/metrics"
	"github.com/m04kA/SMC-BookingEngine/pkg/ttlcache"
)

const msgTooManyRequests = "слишком много запросов, повторите позже"

// limiterIdleTTL время, после которого лимитер неактивного клиента забывается
const limiterIdleTTL = 10 * time.Minute

// RateLimiter ограничивает частоту запросов на клиента (X-User-ID или IP)
type RateLimiter struct {
	limiters *ttlcache.Cache[string, *rate.Limiter]
	rps      rate.Limit
	burst    int
	metrics  *metrics.Metrics
}

// NewRateLimiter создает лимитер; maxClients ограничивает число отслеживаемых клиентов
func NewRateLimiter(rps float64, burst, maxClients int, m *metrics.Metrics) *RateLimiter {
	return &RateLimiter{
		limiters: ttlcache.New[string, *rate.Limiter](maxClients, limiterIdleTTL),
		rps:      rate.Limit(rps),
		burst:    burst,
		metrics:  m,
	}
}

// Middleware отвечает 429, когда клиент превысил лимит
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limiter := l.limiters.GetOrCreate(clientKey(r), func() *rate.Limiter {
			return rate.NewLimiter(l.rps, l.burst)
		})

		if !limiter.Allow() {
			if l.metrics != nil {
				l.metrics.RateLimitedRequests.WithLabelValues(routeTemplate(r)).Inc()
			}
			w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(l.rps)))
			handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	if userID, ok := parseUserID(r); ok {
		return "user:" + strconv.FormatInt(userID, 10)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

func retryAfterSeconds(rps rate.Limit) int {
	if rps <= 0 || rps >= 1 {
		return 1
	}
	return int(1/float64(rps)) + 1
}
