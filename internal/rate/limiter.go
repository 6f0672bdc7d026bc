package rate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// 試行回数の上限超過
var ErrRateLimited = errors.New("too many attempts")

// Configはレートリミッタの調整値
type Config struct {
	MaxLoginAttempts   int
	LoginCooldown      time.Duration
	MaxRefreshAttempts int
	RefreshCooldown    time.Duration
}

func DefaultConfig() Config {
	return Config{
		MaxLoginAttempts:   10,
		LoginCooldown:      5 * time.Minute,
		MaxRefreshAttempts: 30,
		RefreshCooldown:    time.Minute,
	}
}

// LimiterはRedisのカウンタ＋TTLでログイン/リフレッシュの試行回数を制限する。
// nilレシーバでも動く（制限なし）なのでRedisなし構成でもそのまま注入できる。
type Limiter struct {
	redis  redis.UniversalClient
	config Config
}

func New(redisClient redis.UniversalClient, cfg Config) *Limiter {
	return &Limiter{
		redis:  redisClient,
		config: cfg,
	}
}

// CheckLoginはidentifier+IPのログイン試行が予算内か確認する
func (l *Limiter) CheckLogin(ctx context.Context, identifier string, ip string) error {
	if l == nil {
		return nil
	}
	if err := l.checkCounter(ctx, loginKey(identifier), l.config.MaxLoginAttempts); err != nil {
		return err
	}
	if ip != "" {
		if err := l.checkCounter(ctx, loginIPKey(ip), l.config.MaxLoginAttempts); err != nil {
			return err
		}
	}
	return nil
}

// RecordLoginFailureは失敗したログイン試行を記録する
func (l *Limiter) RecordLoginFailure(ctx context.Context, identifier string, ip string) error {
	if l == nil {
		return nil
	}
	if _, err := l.incrementWithTTL(ctx, loginKey(identifier), l.config.LoginCooldown); err != nil {
		return err
	}
	if ip != "" {
		if _, err := l.incrementWithTTL(ctx, loginIPKey(ip), l.config.LoginCooldown); err != nil {
			return err
		}
	}
	return nil
}

// CheckRefreshはユーザー単位のリフレッシュ試行が予算内か確認し、試行を記録する
func (l *Limiter) CheckRefresh(ctx context.Context, userID string) error {
	if l == nil {
		return nil
	}
	count, err := l.incrementWithTTL(ctx, refreshKey(userID), l.config.RefreshCooldown)
	if err != nil {
		// Redis障害時は閉じずに通す
		return nil
	}
	if count > int64(l.config.MaxRefreshAttempts) {
		return ErrRateLimited
	}
	return nil
}

func (l *Limiter) checkCounter(ctx context.Context, key string, max int) error {
	count, err := l.redis.Get(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		// Redis障害時は閉じずに通す（認証自体はDB照合で守られている）
		return nil
	}
	if count >= int64(max) {
		return ErrRateLimited
	}
	return nil
}

func (l *Limiter) incrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	pipe := l.redis.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func loginKey(identifier string) string {
	return fmt.Sprintf("vidtube:login:user:%s", identifier)
}

func loginIPKey(ip string) string {
	return fmt.Sprintf("vidtube:login:ip:%s", ip)
}

func refreshKey(userID string) string {
	return fmt.Sprintf("vidtube:refresh:%s", userID)
}
