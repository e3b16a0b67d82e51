package worker

// stock_alert_cron.go
// Background goroutine that looks for ingredients at or below their reorder
// level and e-mails one alert per ingredient per day.

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tavola/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const stockAlertTTL = 24 * time.Hour

// LowStockSource lists low-stock ingredients. Satisfied by repository.IngredientRepository.
type LowStockSource interface {
	ListLowStock(ctx context.Context) ([]model.Ingredient, error)
}

type StockAlertConfig struct {
	Ingredients LowStockSource
	RDB         *redis.Client
	Dispatcher  *Dispatcher
	AlertEmail  string
	Interval    time.Duration
}

// StartStockAlertCron ticks every cfg.Interval until ctx is cancelled.
// It does nothing when the interval, the recipient or Redis is missing.
func StartStockAlertCron(ctx context.Context, cfg StockAlertConfig) {
	if cfg.Interval <= 0 || cfg.AlertEmail == "" || cfg.RDB == nil {
		log.Info().Msg("stock_alert_cron: disabled")
		return
	}
	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		log.Info().Dur("interval", cfg.Interval).Msg("stock_alert_cron: started")
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("stock_alert_cron: shutting down")
				return
			case <-ticker.C:
				if n, err := CheckLowStock(ctx, cfg); err != nil {
					log.Error().Err(err).Msg("stock_alert_cron: check failed")
				} else if n > 0 {
					log.Info().Int("ingredients", n).Msg("stock_alert_cron: alert queued")
				}
			}
		}
	}()
}

// CheckLowStock queues one e-mail listing the low-stock ingredients not
// alerted in the last 24h and returns how many it included.
func CheckLowStock(ctx context.Context, cfg StockAlertConfig) (int, error) {
	low, err := cfg.Ingredients.ListLowStock(ctx)
	if err != nil {
		return 0, err
	}

	var lines []string
	for _, ing := range low {
		key := fmt.Sprintf("stock_alert:%d", ing.ID)
		fresh, err := cfg.RDB.SetNX(ctx, key, time.Now().Unix(), stockAlertTTL).Result()
		if err != nil {
			return 0, err
		}
		if !fresh {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s: %s %s (reorder level %s)",
			ing.Name, ing.CurrentStock.String(), ing.Unit, ing.ReorderLevel.String()))
	}
	if len(lines) == 0 {
		return 0, nil
	}

	err = cfg.Dispatcher.EnqueueEmail(ctx, EmailJobPayload{
		ToEmail: cfg.AlertEmail,
		Subject: fmt.Sprintf("Low stock: %d ingredient(s)", len(lines)),
		Body:    "The following ingredients are at or below their reorder level:\n\n" + strings.Join(lines, "\n"),
	})
	if err != nil {
		return 0, err
	}
	return len(lines), nil
}
