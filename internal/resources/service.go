package resources

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"github.com/Hema-02/intent-cloud-project/internal/domain/resource"
	"github.com/Hema-02/intent-cloud-project/internal/provider"
	"github.com/Hema-02/intent-cloud-project/internal/provider/static"
	"github.com/Hema-02/intent-cloud-project/pkg/cache"
	"github.com/Hema-02/intent-cloud-project/pkg/logger"
	"github.com/Hema-02/intent-cloud-project/pkg/metrics"
	"github.com/Hema-02/intent-cloud-project/pkg/resilience"
)

const callTimeout = 10 * time.Second

// Service is the dispatch layer over provider backends. It owns the failure
// policy: reads degrade to substitute data, writes surface upstream errors.
type Service struct {
	registry *provider.Registry
	breakers map[string]*gobreaker.CircuitBreaker
	retry    resilience.RetryConfig
	cache    *cache.Cache
	logger   logger.Logger
}

func NewService(registry *provider.Registry, log logger.Logger) *Service {
	breakers := make(map[string]*gobreaker.CircuitBreaker)
	for _, name := range registry.Names() {
		breakers[name] = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    name,
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			// Not-found and unsupported are answers, not outages; they must
			// not open the breaker.
			IsSuccessful: func(err error) bool {
				return err == nil ||
					errors.Is(err, provider.ErrResourceNotFound) ||
					errors.Is(err, provider.ErrUnsupportedOperation)
			},
		})
	}
	return &Service{
		registry: registry,
		breakers: breakers,
		retry:    resilience.DefaultRetryConfig(),
		logger:   log,
	}
}

// WithCache enables read-through caching of listings. Safe to skip: a nil
// cache always misses.
func (s *Service) WithCache(c *cache.Cache) *Service {
	s.cache = c
	return s
}

// Providers lists the registered provider selectors.
func (s *Service) Providers() []string { return s.registry.Names() }

// ListResult is one type group of a listing, with a flag marking substitute
// data.
type ListResult struct {
	Groups   map[string][]resource.Resource
	Fallback bool
}

// List fetches and normalizes resources for one provider. typeFilter may be
// empty (all types) or any spelling ParseType accepts. Upstream failure
// never reaches the caller: the fixture dataset is substituted and the
// result flagged.
func (s *Service) List(ctx context.Context, providerName, typeFilter string) (*ListResult, error) {
	backend, err := s.registry.Get(providerName)
	if err != nil {
		return nil, err
	}

	types := resource.Types()
	if typeFilter != "" {
		typ, ok := resource.ParseType(typeFilter)
		if !ok {
			return nil, fmt.Errorf("%w %s: unknown type %q", provider.ErrUnsupportedOperation, providerName, typeFilter)
		}
		types = []resource.Type{typ}
	}

	cacheKey := s.listingKey(providerName, typeFilter)
	var cached ListResult
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	result := &ListResult{Groups: make(map[string][]resource.Resource)}
	for _, typ := range types {
		list, fellBack := s.listOne(ctx, backend, typ)
		result.Groups[typ.GroupKey()] = list
		result.Fallback = result.Fallback || fellBack
	}

	// Substitute data is never cached: the next request should retry the
	// provider rather than pin stale fixtures for the TTL.
	if !result.Fallback {
		if err := s.cache.Set(ctx, cacheKey, result); err != nil {
			s.logger.Warn("Failed to cache listing", "provider", providerName, "error", err)
		}
	}
	return result, nil
}

func (s *Service) listingKey(providerName, typeFilter string) string {
	if typeFilter == "" {
		typeFilter = "all"
	}
	return fmt.Sprintf("listings:%s:%s", providerName, typeFilter)
}

// invalidateListings drops cached listings after a mutation so reads observe
// the new state immediately.
func (s *Service) invalidateListings(ctx context.Context, providerName string) {
	if err := s.cache.Invalidate(ctx, "listings:"+providerName+":*"); err != nil {
		s.logger.Warn("Failed to invalidate cached listings", "provider", providerName, "error", err)
	}
}

func (s *Service) listOne(ctx context.Context, backend provider.Backend, typ resource.Type) ([]resource.Resource, bool) {
	list, err := read(s, ctx, backend, "ListResources", func(callCtx context.Context) ([]resource.Resource, error) {
		return backend.ListResources(callCtx, typ)
	})
	if err != nil {
		s.logger.Warn("Provider list failed, serving fallback data",
			"provider", backend.Name(), "type", typ, "error", err)
		metrics.ProviderFallbacksTotal.WithLabelValues(backend.Name(), "ListResources").Inc()
		return static.Fixtures(backend.Name(), typ), true
	}
	if list == nil {
		list = []resource.Resource{}
	}
	return list, false
}

// Get finds one resource by scanning the type's listing; listings are the
// only read every backend supports.
func (s *Service) Get(ctx context.Context, providerName, typeName, id string) (*resource.Resource, bool, error) {
	backend, err := s.registry.Get(providerName)
	if err != nil {
		return nil, false, err
	}
	typ, ok := resource.ParseType(typeName)
	if !ok {
		return nil, false, fmt.Errorf("%w %s: unknown type %q", provider.ErrUnsupportedOperation, providerName, typeName)
	}

	list, fellBack := s.listOne(ctx, backend, typ)
	for i := range list {
		if list[i].ID == id {
			return &list[i], fellBack, nil
		}
	}
	return nil, fellBack, fmt.Errorf("%w: %s", provider.ErrResourceNotFound, id)
}

// Create provisions a resource. Write failures propagate; there is no
// fallback for mutations.
func (s *Service) Create(ctx context.Context, providerName, typeName string, spec resource.CreateSpec) (*resource.Resource, error) {
	backend, err := s.registry.Get(providerName)
	if err != nil {
		return nil, err
	}
	typ, ok := resource.ParseType(typeName)
	if !ok {
		return nil, fmt.Errorf("%w %s: unknown type %q", provider.ErrUnsupportedOperation, providerName, typeName)
	}

	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	created, err := backend.CreateResource(callCtx, typ, spec)
	s.record(backend.Name(), "CreateResource", err)
	if err != nil {
		return nil, provider.Upstream(backend.Name(), "CreateResource", err)
	}
	s.invalidateListings(ctx, backend.Name())
	return created, nil
}

// UpdateState requests a start/stop transition. Write failures propagate.
func (s *Service) UpdateState(ctx context.Context, providerName, typeName, id, state string) error {
	backend, err := s.registry.Get(providerName)
	if err != nil {
		return err
	}
	typ, ok := resource.ParseType(typeName)
	if !ok {
		return fmt.Errorf("%w %s: unknown type %q", provider.ErrUnsupportedOperation, providerName, typeName)
	}
	desired, ok := resource.ParseDesiredState(state)
	if !ok {
		return fmt.Errorf("%w %s: unknown state %q", provider.ErrUnsupportedOperation, providerName, state)
	}

	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	err = backend.UpdateResourceState(callCtx, typ, id, desired)
	s.record(backend.Name(), "UpdateResourceState", err)
	if err == nil {
		s.invalidateListings(ctx, backend.Name())
	}
	return provider.Upstream(backend.Name(), "UpdateResourceState", err)
}

// Delete removes a resource. Write failures propagate.
func (s *Service) Delete(ctx context.Context, providerName, typeName, id string) error {
	backend, err := s.registry.Get(providerName)
	if err != nil {
		return err
	}
	typ, ok := resource.ParseType(typeName)
	if !ok {
		return fmt.Errorf("%w %s: unknown type %q", provider.ErrUnsupportedOperation, providerName, typeName)
	}

	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	err = backend.DeleteResource(callCtx, typ, id)
	s.record(backend.Name(), "DeleteResource", err)
	if err == nil {
		s.invalidateListings(ctx, backend.Name())
	}
	return provider.Upstream(backend.Name(), "DeleteResource", err)
}

// Metrics returns a utilization sample for one resource, synthesizing a
// tagged placeholder when the provider cannot answer.
func (s *Service) Metrics(ctx context.Context, providerName, id string) (*resource.MetricSample, error) {
	backend, err := s.registry.Get(providerName)
	if err != nil {
		return nil, err
	}

	sample, err := read(s, ctx, backend, "GetMetrics", func(callCtx context.Context) (*resource.MetricSample, error) {
		return backend.GetMetrics(callCtx, id)
	})
	if err != nil {
		if errors.Is(err, provider.ErrResourceNotFound) {
			return nil, err
		}
		s.logger.Warn("Provider metrics failed, synthesizing sample",
			"provider", backend.Name(), "resource", id, "error", err)
		metrics.ProviderFallbacksTotal.WithLabelValues(backend.Name(), "GetMetrics").Inc()
		return static.SyntheticMetrics(), nil
	}
	return sample, nil
}

// read runs an idempotent provider call through the circuit breaker with
// bounded retry and a per-call timeout. Never used for writes: retried
// creates or deletes could duplicate side effects.
func read[T any](s *Service, ctx context.Context, backend provider.Backend, op string, fn func(context.Context) (T, error)) (T, error) {
	cfg := s.retry
	cfg.ShouldRetry = func(err error) bool {
		// Local taxonomy errors are definitive answers, not outages.
		return !errors.Is(err, provider.ErrResourceNotFound) &&
			!errors.Is(err, provider.ErrUnsupportedOperation) &&
			!errors.Is(err, gobreaker.ErrOpenState)
	}

	return resilience.RetryWithResult(ctx, cfg, func() (T, error) {
		var zero T
		breaker := s.breakers[backend.Name()]
		out, err := breaker.Execute(func() (interface{}, error) {
			callCtx, cancel := context.WithTimeout(ctx, callTimeout)
			defer cancel()
			return fn(callCtx)
		})
		s.record(backend.Name(), op, err)
		if err != nil {
			return zero, err
		}
		return out.(T), nil
	})
}

func (s *Service) record(providerName, op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.ProviderCallsTotal.WithLabelValues(providerName, op, outcome).Inc()
}
