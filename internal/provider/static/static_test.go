package static

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hema-02/intent-cloud-project/internal/domain/resource"
	"github.com/Hema-02/intent-cloud-project/internal/provider"
)

func TestSeededFromFixtures(t *testing.T) {
	b := New("aws")

	list, err := b.ListResources(context.Background(), resource.TypeInstance)
	require.NoError(t, err)
	require.NotEmpty(t, list)
	assert.Equal(t, "i-1234567890abc", list[0].ID)
	assert.Equal(t, resource.StatusRunning, list[0].Status)
}

func TestCreateUpdateDelete(t *testing.T) {
	b := New("gcp")
	ctx := context.Background()

	created, err := b.CreateResource(ctx, resource.TypeInstance, resource.CreateSpec{Name: "scratch-vm"})
	require.NoError(t, err)
	assert.Equal(t, resource.StatusCreating, created.Status)
	assert.Equal(t, "us-central1", created.Region)
	assert.NotEmpty(t, created.Cost)

	require.NoError(t, b.UpdateResourceState(ctx, resource.TypeInstance, created.ID, resource.DesiredStart))
	got, err := b.Get(resource.TypeInstance, created.ID)
	require.NoError(t, err)
	assert.Equal(t, resource.StatusRunning, got.Status)

	require.NoError(t, b.DeleteResource(ctx, resource.TypeInstance, created.ID))
	_, err = b.Get(resource.TypeInstance, created.ID)
	assert.ErrorIs(t, err, provider.ErrResourceNotFound)
}

func TestUnknownResource(t *testing.T) {
	b := New("azure")
	ctx := context.Background()

	err := b.DeleteResource(ctx, resource.TypeInstance, "vm-nope")
	assert.ErrorIs(t, err, provider.ErrResourceNotFound)

	err = b.UpdateResourceState(ctx, resource.TypeInstance, "vm-nope", resource.DesiredStop)
	assert.ErrorIs(t, err, provider.ErrResourceNotFound)

	_, err = b.GetMetrics(ctx, "vm-nope")
	assert.ErrorIs(t, err, provider.ErrResourceNotFound)
}

func TestMetricsAreTaggedSynthetic(t *testing.T) {
	b := New("ibm")

	sample, err := b.GetMetrics(context.Background(), "ibm-vsi-001")
	require.NoError(t, err)
	assert.True(t, sample.Synthetic)
	assert.LessOrEqual(t, sample.CPU, 100.0)
}

// The store is shared across requests; concurrent writers must not race.
func TestConcurrentWriters(t *testing.T) {
	b := New("aws")
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			created, err := b.CreateResource(ctx, resource.TypeInstance, resource.CreateSpec{
				Name: fmt.Sprintf("burst-%d", n),
			})
			if err == nil && n%2 == 0 {
				_ = b.DeleteResource(ctx, resource.TypeInstance, created.ID)
			}
		}(i)
	}
	wg.Wait()

	list, err := b.ListResources(ctx, resource.TypeInstance)
	require.NoError(t, err)
	// 3 fixtures + 16 surviving creates.
	assert.Len(t, list, 19)
}
