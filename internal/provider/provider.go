package provider

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/Hema-02/intent-cloud-project/internal/domain/resource"
)

// Backend is one cloud provider behind the normalization layer. A backend
// maps its native schema into the shared resource shapes; it does not decide
// fallback policy, that belongs to the dispatcher wrapping it.
type Backend interface {
	// Name returns the provider selector this backend serves (aws, gcp, ...).
	Name() string

	ListResources(ctx context.Context, typ resource.Type) ([]resource.Resource, error)
	CreateResource(ctx context.Context, typ resource.Type, spec resource.CreateSpec) (*resource.Resource, error)
	UpdateResourceState(ctx context.Context, typ resource.Type, id string, desired resource.DesiredState) error
	DeleteResource(ctx context.Context, typ resource.Type, id string) error
	GetMetrics(ctx context.Context, id string) (*resource.MetricSample, error)
}

// Demo is implemented by backends that serve substitute data instead of
// talking to a real provider API.
type Demo interface {
	DemoMode() bool
}

// HealthChecker is implemented by backends that can verify their upstream
// credentials with a cheap call.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

var (
	// ErrProviderNotFound means the request named a provider no backend is
	// registered for.
	ErrProviderNotFound = errors.New("provider not found")

	// ErrResourceNotFound means the provider has no resource with the given
	// id (or the id exists under a different type).
	ErrResourceNotFound = errors.New("resource not found")

	// ErrUnsupportedOperation means the resource type or state transition is
	// not implemented for the named provider.
	ErrUnsupportedOperation = errors.New("operation not supported for provider")
)

// UpstreamError wraps a transport/auth/quota failure from a provider SDK.
// Read paths swallow it and fall back; write paths surface it with details.
type UpstreamError struct {
	Provider string
	Op       string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Upstream wraps err as an UpstreamError unless it is already part of the
// local error taxonomy.
func Upstream(providerName, op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrResourceNotFound) || errors.Is(err, ErrUnsupportedOperation) {
		return err
	}
	return &UpstreamError{Provider: providerName, Op: op, Err: err}
}

// Registry maps provider selectors onto backends. It is populated once at
// startup and read-only afterwards, so it is safe for concurrent use.
type Registry struct {
	backends map[string]Backend
}

func NewRegistry() *Registry {
	return &Registry{backends: make(map[string]Backend)}
}

func (r *Registry) Register(b Backend) {
	r.backends[b.Name()] = b
}

func (r *Registry) Get(name string) (Backend, error) {
	b, ok := r.backends[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProviderNotFound, name)
	}
	return b, nil
}

// Names returns the registered provider selectors, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
