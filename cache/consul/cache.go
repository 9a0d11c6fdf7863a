package consul

import (
	"context"
	"fmt"
	"strings"

	"github.com/Gouterman/stencil/cache"
	"github.com/Gouterman/stencil/data"
	"github.com/hashicorp/consul/api"
)

// Cache stores entries in the Consul KV store below a prefix.
//
// Consul KV has a 512KB limit per value, large bundles do not fit.
type Cache struct {
	client *api.Client
	kv     *api.KV

	config *Config
}

// Config contains configuration options for the Consul cache
type Config struct {
	// Address of the Consul server (default: "127.0.0.1:8500")
	Address string

	// Token for Consul ACL authentication (optional)
	Token string

	// Datacenter to use (optional)
	Datacenter string

	// Namespace for Consul Enterprise (optional)
	Namespace string

	// Prefix for all keys in Consul KV (default: "stencil/cache")
	Prefix string
}

var _ cache.Cache = (*Cache)(nil)

func New(config *Config) (*Cache, error) {
	if config == nil {
		config = &Config{}
	}

	if config.Address == "" {
		config.Address = "127.0.0.1:8500"
	}
	if config.Prefix == "" {
		config.Prefix = "stencil/cache"
	}

	clientConfig := api.DefaultConfig()
	clientConfig.Address = config.Address
	if config.Token != "" {
		clientConfig.Token = config.Token
	}
	if config.Datacenter != "" {
		clientConfig.Datacenter = config.Datacenter
	}
	if config.Namespace != "" {
		clientConfig.Namespace = config.Namespace
	}

	client, err := api.NewClient(clientConfig)
	if err != nil {
		return nil, err
	}

	return &Cache{
		client: client,
		kv:     client.KV(),
		config: config,
	}, nil
}

// Returns the identifier name defined for this cache
func (*Cache) Name() string {
	return "consul"
}

func (c *Cache) Open(ctx context.Context) error {
	if _, err := c.client.Status().Leader(); err != nil {
		return fmt.Errorf("%w: %w", data.ErrCacheUnavailable, err)
	}

	return nil
}

func (c *Cache) Close(ctx context.Context) error {
	// Nothing to clean up - Consul client is stateless
	return nil
}

func (c *Cache) Get(ctx context.Context, key string) (string, bool, error) {
	pair, _, err := c.kv.Get(c.buildKey(key), (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return "", false, err
	}
	if pair == nil {
		return "", false, nil
	}

	return string(pair.Value), true, nil
}

func (c *Cache) Put(ctx context.Context, key, value string) error {
	_, err := c.kv.Put(&api.KVPair{
		Key:   c.buildKey(key),
		Value: []byte(value),
	}, (&api.WriteOptions{}).WithContext(ctx))

	return err
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	_, err := c.kv.Delete(c.buildKey(key), (&api.WriteOptions{}).WithContext(ctx))
	return err
}

// buildKey constructs the full Consul KV key from the cache key
func (c *Cache) buildKey(key string) string {
	return strings.TrimSuffix(c.config.Prefix, "/") + "/" + strings.TrimPrefix(key, "/")
}
