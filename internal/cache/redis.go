package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ChadiEch/ambassador-dashboard/internal/config"
	"github.com/ChadiEch/ambassador-dashboard/internal/utils"
	"github.com/redis/go-redis/v9"
)

// Client est le cache Redis optionnel des payloads analytics. Nil quand
// REDIS_ADDR n'est pas configuré : tous les helpers deviennent des no-ops et
// les handlers recalculent à chaque requête.
var Client *redis.Client

// DefaultTTL borne la fraîcheur des payloads analytics en cache
const DefaultTTL = 60 * time.Second

// Connect initialise le client Redis si l'adresse est configurée
func Connect(cfg *config.Config) error {
	if cfg.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return err
	}

	Client = client
	return nil
}

// GetJSON tente de lire une valeur en cache. Renvoie false sur miss, cache
// désactivé ou payload illisible ; une erreur de cache ne fait jamais échouer
// la requête.
func GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if Client == nil {
		return false
	}
	raw, err := Client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		utils.LogDebug("cache: payload illisible pour %s: %v", key, err)
		return false
	}
	return true
}

// SetJSON écrit une valeur en cache avec le TTL par défaut (best effort)
func SetJSON(ctx context.Context, key string, value interface{}) {
	if Client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := Client.Set(ctx, key, raw, DefaultTTL).Err(); err != nil {
		utils.LogDebug("cache: écriture échouée pour %s: %v", key, err)
	}
}

// Invalidate supprime des clés après une écriture qui les périme
func Invalidate(ctx context.Context, keys ...string) {
	if Client == nil || len(keys) == 0 {
		return
	}
	Client.Del(ctx, keys...)
}
