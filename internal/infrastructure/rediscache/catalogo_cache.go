package rediscache

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"github.com/almacen-pro/prestamos-api/internal/application/usecase"
	"github.com/almacen-pro/prestamos-api/pkg/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var _ usecase.CatalogoCache = (*CatalogoCache)(nil)

// CatalogoCache caché de catálogos sobre Redis con TTL fijo. Los valores se
// serializan como JSON.
type CatalogoCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New conecta con Redis y verifica la conexión.
func New(ctx context.Context, cfg config.RedisConfig) (*CatalogoCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	ttl := time.Duration(cfg.TTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &CatalogoCache{client: client, ttl: ttl}, nil
}

// Get deserializa el valor de la clave en destino; (false, nil) si no existe.
func (c *CatalogoCache) Get(ctx context.Context, clave string, destino any) (bool, error) {
	payload, err := c.client.Get(ctx, clave).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis get %s: %w", clave, err)
	}
	if err := json.Unmarshal(payload, destino); err != nil {
		return false, fmt.Errorf("unmarshal cache %s: %w", clave, err)
	}
	return true, nil
}

// Set serializa y guarda el valor con el TTL configurado.
func (c *CatalogoCache) Set(ctx context.Context, clave string, valor any) error {
	payload, err := json.Marshal(valor)
	if err != nil {
		return fmt.Errorf("marshal cache %s: %w", clave, err)
	}
	if err := c.client.Set(ctx, clave, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", clave, err)
	}
	return nil
}

// Invalidate elimina la clave.
func (c *CatalogoCache) Invalidate(ctx context.Context, clave string) error {
	if err := c.client.Del(ctx, clave).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", clave, err)
	}
	return nil
}

// Close cierra la conexión con Redis.
func (c *CatalogoCache) Close() error {
	return c.client.Close()
}
