// Package static serves substitute resource data for providers that have no
// credentials configured, and supplies the fallback datasets read paths
// degrade to when a live provider call fails.
package static

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Hema-02/intent-cloud-project/internal/domain/resource"
	"github.com/Hema-02/intent-cloud-project/internal/provider"
	"github.com/Hema-02/intent-cloud-project/internal/provider/pricing"
)

// Backend keeps an in-memory resource list per type, seeded from fixtures.
// All access goes through one mutex; the store is shared across requests.
type Backend struct {
	name string

	mu    sync.Mutex
	store map[resource.Type][]resource.Resource
}

var _ provider.Backend = (*Backend)(nil)

// New builds a demo backend for the named provider, seeded with that
// provider's fixture set (AWS fixtures when the provider has none).
func New(name string) *Backend {
	b := &Backend{
		name:  name,
		store: make(map[resource.Type][]resource.Resource),
	}
	for _, typ := range resource.Types() {
		b.store[typ] = append([]resource.Resource(nil), Fixtures(name, typ)...)
	}
	return b
}

func (b *Backend) Name() string   { return b.name }
func (b *Backend) DemoMode() bool { return true }

func (b *Backend) ListResources(_ context.Context, typ resource.Type) ([]resource.Resource, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	list, ok := b.store[typ]
	if !ok {
		return nil, fmt.Errorf("%w %s: %s", provider.ErrUnsupportedOperation, b.name, typ)
	}
	out := make([]resource.Resource, len(list))
	copy(out, list)
	return out, nil
}

func (b *Backend) CreateResource(_ context.Context, typ resource.Type, spec resource.CreateSpec) (*resource.Resource, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.store[typ]; !ok {
		return nil, fmt.Errorf("%w %s: %s", provider.ErrUnsupportedOperation, b.name, typ)
	}

	name := spec.Name
	if name == "" {
		name = fmt.Sprintf("new-%s", typ)
	}
	sku := spec.SKU
	if sku == "" {
		sku = pricing.DefaultSKU(b.name)
	}
	region := spec.Region
	if region == "" {
		region = defaultRegion(b.name)
	}

	res := resource.Resource{
		ID:        fmt.Sprintf("%s-%s-%s", b.name, typ, uuid.New().String()[:8]),
		Name:      name,
		Type:      typ,
		SKU:       sku,
		Status:    resource.StatusCreating,
		Region:    region,
		Engine:    spec.Engine,
		Cost:      pricing.InstanceMonthly(b.name, sku),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	b.store[typ] = append(b.store[typ], res)
	return &res, nil
}

func (b *Backend) UpdateResourceState(_ context.Context, typ resource.Type, id string, desired resource.DesiredState) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	list, ok := b.store[typ]
	if !ok {
		return fmt.Errorf("%w %s: %s", provider.ErrUnsupportedOperation, b.name, typ)
	}
	for i := range list {
		if list[i].ID != id {
			continue
		}
		switch desired {
		case resource.DesiredStart:
			list[i].Status = resource.StatusRunning
		case resource.DesiredStop:
			list[i].Status = resource.StatusStopped
		}
		list[i].UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		return nil
	}
	return fmt.Errorf("%w: %s", provider.ErrResourceNotFound, id)
}

func (b *Backend) DeleteResource(_ context.Context, typ resource.Type, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	list, ok := b.store[typ]
	if !ok {
		return fmt.Errorf("%w %s: %s", provider.ErrUnsupportedOperation, b.name, typ)
	}
	for i := range list {
		if list[i].ID == id {
			b.store[typ] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", provider.ErrResourceNotFound, id)
}

func (b *Backend) GetMetrics(_ context.Context, id string) (*resource.MetricSample, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, list := range b.store {
		for _, r := range list {
			if r.ID == id {
				if r.Status == resource.StatusStopped {
					return &resource.MetricSample{Synthetic: true}, nil
				}
				return SyntheticMetrics(), nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", provider.ErrResourceNotFound, id)
}

// Get returns a copy of one stored resource.
func (b *Backend) Get(typ resource.Type, id string) (*resource.Resource, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, r := range b.store[typ] {
		if r.ID == id {
			out := r
			return &out, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", provider.ErrResourceNotFound, id)
}

// SyntheticMetrics returns a placeholder sample with uniformly distributed
// values in the valid range, tagged synthetic.
func SyntheticMetrics() *resource.MetricSample {
	return &resource.MetricSample{
		CPU:       rand.Float64() * 100,
		Memory:    rand.Float64() * 100,
		Network:   rand.Float64() * 10,
		Disk:      rand.Float64() * 100,
		Synthetic: true,
	}
}

func defaultRegion(providerName string) string {
	switch providerName {
	case "gcp":
		return "us-central1"
	case "azure":
		return "eastus"
	case "ibm":
		return "us-south"
	default:
		return "us-east-1"
	}
}
