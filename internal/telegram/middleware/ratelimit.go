package middleware

import (
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	warningInterval   = 30 * time.Second
	cleanupInterval   = 10 * time.Minute
	inactiveThreshold = time.Hour
)

// userLimit tracks rate limit state for a single user
type userLimit struct {
	tokens        float64
	lastRefill    time.Time
	warningsSent  int
	lastWarningAt time.Time
	mu            sync.Mutex
}

// RateLimiterMiddleware implements token bucket rate limiting per user.
// The bucket holds burstSize tokens and refills at requestsPerMinute.
type RateLimiterMiddleware struct {
	limits     map[int64]*userLimit
	mu         sync.Mutex
	maxTokens  float64
	refillRate float64 // tokens per second
	now        func() time.Time
	logger     *zap.Logger
	bot        Sender
	done       chan struct{}
	closeOnce  sync.Once
}

// NewRateLimiterMiddleware creates a new rate limiter middleware. Close stops
// its cleanup goroutine.
func NewRateLimiterMiddleware(
	requestsPerMinute int,
	burstSize int,
	logger *zap.Logger,
	bot Sender,
) *RateLimiterMiddleware {
	rl := &RateLimiterMiddleware{
		limits:     make(map[int64]*userLimit),
		maxTokens:  float64(burstSize),
		refillRate: float64(requestsPerMinute) / 60.0,
		now:        time.Now,
		logger:     logger,
		bot:        bot,
		done:       make(chan struct{}),
	}

	go rl.cleanupInactiveUsers()

	return rl
}

// Handle processes the update through rate limiting
func (rl *RateLimiterMiddleware) Handle(update tgbotapi.Update, next func(tgbotapi.Update)) {
	userID, chatID, ok := origin(update)
	if !ok {
		// Unknown update type, allow it
		next(update)
		return
	}

	if !rl.Allow(userID, chatID) {
		rl.logger.Warn("rate limit exceeded",
			zap.Int64("user_id", userID),
			zap.Int64("chat_id", chatID),
		)
		return
	}

	next(update)
}

// Allow takes a token from the bucket of userID. When the bucket is empty it
// warns chatID at most once per warningInterval and returns false.
func (rl *RateLimiterMiddleware) Allow(userID, chatID int64) bool {
	now := rl.now()

	rl.mu.Lock()
	limit, exists := rl.limits[userID]
	if !exists {
		limit = &userLimit{
			tokens:     rl.maxTokens,
			lastRefill: now,
		}
		rl.limits[userID] = limit
	}
	rl.mu.Unlock()

	limit.mu.Lock()
	defer limit.mu.Unlock()

	elapsed := now.Sub(limit.lastRefill).Seconds()
	limit.tokens += elapsed * rl.refillRate
	if limit.tokens > rl.maxTokens {
		limit.tokens = rl.maxTokens
	}
	limit.lastRefill = now

	if limit.tokens >= 1.0 {
		limit.tokens -= 1.0
		limit.warningsSent = 0
		return true
	}

	if now.Sub(limit.lastWarningAt) > warningInterval {
		limit.warningsSent++
		limit.lastWarningAt = now
		rl.sendRateLimitWarning(chatID, limit.warningsSent)
	}

	return false
}

// sendRateLimitWarning sends a warning message to the user
func (rl *RateLimiterMiddleware) sendRateLimitWarning(chatID int64, warningCount int) {
	var text string
	switch {
	case warningCount == 1:
		text = "⚠️ Demasiadas solicitudes. Espera un momento, por favor."
	case warningCount == 2:
		text = "⚠️ Límite de solicitudes superado. Espera unos 30 segundos."
	default:
		text = "🛑 Estás enviando solicitudes con demasiada frecuencia. Espera un minuto."
	}

	if _, err := rl.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		rl.logger.Error("failed to send rate limit warning",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

// Close stops the cleanup goroutine
func (rl *RateLimiterMiddleware) Close() {
	rl.closeOnce.Do(func() { close(rl.done) })
}

// cleanupInactiveUsers removes users that haven't sent requests in an hour
func (rl *RateLimiterMiddleware) cleanupInactiveUsers() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.removeInactive()
		}
	}
}

func (rl *RateLimiterMiddleware) removeInactive() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for userID, limit := range rl.limits {
		limit.mu.Lock()
		inactive := now.Sub(limit.lastRefill) > inactiveThreshold
		limit.mu.Unlock()

		if inactive {
			delete(rl.limits, userID)
			rl.logger.Debug("cleaned up inactive user from rate limiter",
				zap.Int64("user_id", userID),
			)
		}
	}
}
