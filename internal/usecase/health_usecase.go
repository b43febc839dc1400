package usecase

import (
	"context"
	"time"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	db    Pinger
	redis func(ctx context.Context) error
}

// NewHealthUsecase accepts nil checks; a nil redis check reports "disabled".
func NewHealthUsecase(db Pinger, redis func(ctx context.Context) error) HealthUsecase {
	return &healthUsecase{db: db, redis: redis}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	result := map[string]string{
		"status":   "ok",
		"database": "ok",
		"redis":    "disabled",
	}

	if u.db != nil {
		if err := u.db.Ping(ctx); err != nil {
			result["status"] = "degraded"
			result["database"] = "unavailable"
		}
	}
	if u.redis != nil {
		result["redis"] = "ok"
		if err := u.redis(ctx); err != nil {
			result["status"] = "degraded"
			result["redis"] = "unavailable"
		}
	}
	return result
}
