package cache

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// AsyncCacheSet actualiza caché en background sin bloquear
func AsyncCacheSet(cache Cache, key string, value interface{}, ttl int, log *zap.Logger) {
	if cache == nil {
		return
	}

	go func() {
		// La petición original puede haberse cancelado ya; la escritura en caché
		// usa su propio contexto con timeout corto.
		cacheCtx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()

		if err := cache.Set(cacheCtx, key, value, ttl); err != nil {
			log.Warn("Cache update failed",
				zap.String("key", key),
				zap.Error(err))
		}
	}()
}

// GetOrLoad implementa cache-aside: intenta la caché y, si falla, llama a load
// y guarda el resultado en segundo plano.
func GetOrLoad[T any](ctx context.Context, cache Cache, key string, ttl int, log *zap.Logger, load func(ctx context.Context) (*T, error)) (*T, error) {
	if cache != nil {
		var cached T
		if hit, _ := cache.Get(ctx, key, &cached); hit {
			return &cached, nil
		}
	}

	v, err := load(ctx)
	if err != nil {
		return nil, err
	}

	AsyncCacheSet(cache, key, v, ttl, log)
	return v, nil
}

// Invalidate borra la key de forma síncrona para que la siguiente lectura vaya al repositorio.
// Un fallo de la caché no se propaga: solo se registra.
func Invalidate(ctx context.Context, cache Cache, key string, log *zap.Logger) {
	if cache == nil {
		return
	}
	if err := cache.Delete(ctx, key); err != nil {
		log.Warn("Cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}
