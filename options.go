package livio

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	datasetPath string
	matrixPath  string
	noCache     bool

	driver    string // "valkey" or "redis"
	addrs     []string
	password  string
	keyPrefix string
	ttl       time.Duration

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithDataset sets the tenant dataset CSV. Default: data/tenants_dataset.csv.
func WithDataset(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.datasetPath = path
	})
}

// WithMatrixFile caches the encoded matrix in a CSV file.
// Default: data/normalized_encoded.csv.
func WithMatrixFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.matrixPath = path
	})
}

// WithoutCache encodes the dataset in memory on every load.
func WithoutCache() Option {
	return optionFunc(func(c *clientConfig) {
		c.noCache = true
	})
}

// WithValkey caches the encoded matrix in a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis caches the encoded matrix in a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithKeyPrefix sets the Redis/Valkey key prefix. Default: "livio:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithCacheTTL expires cached matrices in Redis/Valkey. Default: no expiry.
func WithCacheTTL(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.ttl = ttl
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}

// MatchOption configures a single Recommend call.
type MatchOption func(*matchConfig)

type matchConfig struct {
	topN         int
	nonSmoker    bool
	healthyEater bool
	noPetAllergy bool
	locale       string
}

// TopN sets the number of matches. Default: 5.
func TopN(n int) MatchOption {
	return func(c *matchConfig) { c.topN = n }
}

// NonSmoker keeps only matches that do not smoke.
func NonSmoker() MatchOption {
	return func(c *matchConfig) { c.nonSmoker = true }
}

// HealthyEater keeps only matches that follow a diet.
func HealthyEater() MatchOption {
	return func(c *matchConfig) { c.healthyEater = true }
}

// NoPetAllergy keeps only matches without a pet allergy.
func NoPetAllergy() MatchOption {
	return func(c *matchConfig) { c.noPetAllergy = true }
}

// Locale selects the language of labels and messages: a tag such as "es",
// a language name such as "Español", or an Accept-Language value.
func Locale(lang string) MatchOption {
	return func(c *matchConfig) { c.locale = lang }
}
