package infra_session_cache

import (
	"time"

	"github.com/go-redis/redis"
)

// Driver keeps session records under a shared key prefix so they never
// collide with anything else living in the same redis.
type Driver struct {
	client *redis.Client
	prefix string
}

func New(
	client *redis.Client,
	prefix string,
) *Driver {
	return &Driver{
		client: client,
		prefix: prefix,
	}
}

func (d *Driver) Set(key string, value string, ttl time.Duration) error {
	if err := d.client.Set(d.fullKey(key), value, ttl).Err(); err != nil {
		return err
	}
	return nil
}

// Get returns "" for missing keys; absence is not an error here.
func (d *Driver) Get(key string) (string, error) {
	val, err := d.client.Get(d.fullKey(key)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", err
	}
	return val, nil
}

func (d *Driver) fullKey(key string) string {
	if d.prefix != "" {
		return d.prefix + ":" + key
	}
	return key
}
