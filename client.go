package livio

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/livio/internal/db"
	dbRedis "github.com/kailas-cloud/livio/internal/db/redis"
	"github.com/kailas-cloud/livio/internal/domain/match/filter"
	"github.com/kailas-cloud/livio/internal/domain/match/request"
	"github.com/kailas-cloud/livio/internal/domain/profile"
	"github.com/kailas-cloud/livio/internal/i18n"
	"github.com/kailas-cloud/livio/internal/repository/dataset"
	filematrix "github.com/kailas-cloud/livio/internal/repository/matrix/file"
	kvmatrix "github.com/kailas-cloud/livio/internal/repository/matrix/kv"
	"github.com/kailas-cloud/livio/internal/usecase/catalog"
	"github.com/kailas-cloud/livio/internal/usecase/encoding"
	matchuc "github.com/kailas-cloud/livio/internal/usecase/match"
	profileuc "github.com/kailas-cloud/livio/internal/usecase/profile"
)

const (
	defaultDatasetPath      = "data/tenants_dataset.csv"
	defaultMatrixPath       = "data/normalized_encoded.csv"
	defaultKeyPrefix        = "livio:"
	defaultReadinessTimeout = 10 * time.Second
)

// Client is the livio entry point. It is safe for concurrent use.
type Client struct {
	kv       db.Store
	catalog  *catalog.Service
	matches  *matchuc.Service
	profiles *profileuc.Service
	obs      *observer
}

// New loads and encodes the dataset. The encoded matrix is reused from the
// cache when the dataset has not changed.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		datasetPath: defaultDatasetPath,
		matrixPath:  defaultMatrixPath,
		keyPrefix:   defaultKeyPrefix,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	store, kv, err := createMatrixStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	c := wireClient(dataset.New(cfg.datasetPath, profile.DefaultSchema()), store, kv, obs)
	if err := c.Refresh(ctx, false); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func createMatrixStore(ctx context.Context, cfg *clientConfig) (encoding.MatrixStore, db.Store, error) {
	switch {
	case cfg.driver != "":
		s, err := dbRedis.NewStore(dbRedis.Config{Addrs: cfg.addrs, Password: cfg.password})
		if err != nil {
			return nil, nil, fmt.Errorf("livio: create %s store: %w", cfg.driver, err)
		}
		if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			s.Close()
			return nil, nil, fmt.Errorf("livio: %s not ready: %w", cfg.driver, err)
		}
		return kvmatrix.New(s, cfg.keyPrefix, cfg.ttl), s, nil
	case cfg.noCache:
		return nil, nil, nil
	default:
		return filematrix.New(cfg.matrixPath), nil, nil
	}
}

// wireClient takes a nil store to encode in memory and a nil kv when no
// Redis/Valkey connection is owned.
func wireClient(loader catalog.DatasetLoader, store encoding.MatrixStore, kv db.Store, obs *observer) *Client {
	cat := catalog.New(loader, encoding.New(store, zap.NewNop()), zap.NewNop())
	return &Client{
		kv:       kv,
		catalog:  cat,
		matches:  matchuc.New(cat),
		profiles: profileuc.New(cat),
		obs:      obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.kv != nil {
		c.kv.Close()
	}
}

// Ping checks the matrix cache connectivity. Always nil for file caches.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if c.kv == nil {
		return nil
	}
	if err := c.kv.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Refresh reloads the dataset. With force the cached matrix is regenerated.
func (c *Client) Refresh(ctx context.Context, force bool) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("refresh", start, err) }()

	if _, err := c.catalog.Refresh(ctx, force); err != nil {
		return fmt.Errorf("livio: %w", err)
	}
	return nil
}

// Count returns the number of tenants. Ids run from 1 to Count.
func (c *Client) Count(ctx context.Context) (int, error) {
	sum, err := c.profiles.Summary(ctx)
	if err != nil {
		return 0, fmt.Errorf("livio: %w", err)
	}
	return sum.Count, nil
}

// Recommend ranks every tenant against the seeds and returns the best matches.
// Filters apply after ranking, so fewer than TopN matches may come back; when
// none survive the error is ErrNoMatches.
func (c *Client) Recommend(ctx context.Context, seeds []int, opts ...MatchOption) (rec *Recommendation, err error) {
	start := time.Now()
	defer func() { c.obs.observe("recommend", start, err) }()

	mc := matchConfig{topN: request.DefaultTopN}
	for _, o := range opts {
		o(&mc)
	}

	var conds []filter.Condition
	if mc.nonSmoker {
		conds = append(conds, filter.NonSmoker)
	}
	if mc.healthyEater {
		conds = append(conds, filter.HealthyEater)
	}
	if mc.noPetAllergy {
		conds = append(conds, filter.NoPetAllergy)
	}
	set, err := filter.NewSet(conds...)
	if err != nil {
		return nil, fmt.Errorf("livio: %w", err)
	}

	req, err := request.New(seeds, mc.topN, set)
	if err != nil {
		return nil, fmt.Errorf("livio: %w", err)
	}

	out, err := c.matches.Recommend(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("livio: %w", err)
	}
	return recommendationFromDomain(out, i18n.Negotiate(mc.locale, "")), nil
}

// Profile returns the raw record of one tenant.
func (c *Client) Profile(ctx context.Context, id int, lang ...string) (p Profile, err error) {
	start := time.Now()
	defer func() { c.obs.observe("profile", start, err) }()

	t, err := c.profiles.Get(ctx, id)
	if err != nil {
		return Profile{}, fmt.Errorf("livio: %w", err)
	}
	if len(t.Rows()) == 0 {
		return Profile{}, fmt.Errorf("livio: profile %d: %w", id, ErrNotFound)
	}

	locale := i18n.English
	if len(lang) > 0 {
		locale = i18n.Negotiate(lang[0], "")
	}
	return Profile{
		ID:     id,
		Fields: columnsFromDomain(t.Attributes(), locale),
		Values: t.Rows()[0].Values(),
	}, nil
}
