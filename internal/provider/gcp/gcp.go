// Package gcp backs the normalization layer with Compute Engine instances.
package gcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	compute "google.golang.org/api/compute/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/Hema-02/intent-cloud-project/internal/domain/resource"
	"github.com/Hema-02/intent-cloud-project/internal/provider"
	"github.com/Hema-02/intent-cloud-project/internal/provider/pricing"
	"github.com/Hema-02/intent-cloud-project/internal/provider/static"
	"github.com/Hema-02/intent-cloud-project/pkg/config"
	"github.com/Hema-02/intent-cloud-project/pkg/logger"
)

const providerName = "gcp"

const defaultImage = "projects/debian-cloud/global/images/family/debian-11"

var instanceStatus = map[string]resource.Status{
	"provisioning": resource.StatusCreating,
	"staging":      resource.StatusCreating,
	"pending":      resource.StatusCreating,
	"running":      resource.StatusRunning,
	"stopping":     resource.StatusStopping,
	"suspending":   resource.StatusStopping,
	"suspended":    resource.StatusStopped,
	"terminated":   resource.StatusStopped,
	"repairing":    resource.StatusMaintenance,
	"failed":       resource.StatusError,
}

type Backend struct {
	project string
	region  string
	zone    string
	compute *compute.Service
	logger  logger.Logger
}

var _ provider.Backend = (*Backend)(nil)

func New(ctx context.Context, cfg config.GCPConfig, log logger.Logger) (*Backend, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	svc, err := compute.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build GCP compute client: %w", err)
	}

	zone := cfg.Zone
	if zone == "" {
		zone = cfg.Region + "-a"
	}

	return &Backend{
		project: cfg.ProjectID,
		region:  cfg.Region,
		zone:    zone,
		compute: svc,
		logger:  log,
	}, nil
}

func (b *Backend) Name() string { return providerName }

func (b *Backend) HealthCheck(ctx context.Context) error {
	_, err := b.compute.Instances.List(b.project, b.zone).MaxResults(1).Context(ctx).Do()
	return err
}

// ListResources returns live Compute Engine instances. Databases and storage
// have no live backing on this project; those groups serve the demo dataset.
func (b *Backend) ListResources(ctx context.Context, typ resource.Type) ([]resource.Resource, error) {
	if typ != resource.TypeInstance {
		return static.Fixtures(providerName, typ), nil
	}

	out, err := b.compute.Instances.List(b.project, b.zone).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	resources := make([]resource.Resource, 0, len(out.Items))
	for _, inst := range out.Items {
		resources = append(resources, b.normalizeInstance(inst))
	}
	return resources, nil
}

func (b *Backend) normalizeInstance(inst *compute.Instance) resource.Resource {
	sku := lastPathSegment(inst.MachineType)
	res := resource.Resource{
		ID:        inst.Name,
		Name:      inst.Name,
		Type:      resource.TypeInstance,
		SKU:       sku,
		Status:    resource.NormalizeStatus(instanceStatus, inst.Status),
		Region:    b.region,
		Zone:      lastPathSegment(inst.Zone),
		Cost:      pricing.InstanceMonthly(providerName, sku),
		CreatedAt: inst.CreationTimestamp,
	}
	if res.Zone == "" {
		res.Zone = b.zone
	}
	return res
}

func (b *Backend) CreateResource(ctx context.Context, typ resource.Type, spec resource.CreateSpec) (*resource.Resource, error) {
	if typ != resource.TypeInstance {
		return nil, fmt.Errorf("%w %s: create %s", provider.ErrUnsupportedOperation, providerName, typ)
	}

	sku := spec.SKU
	if sku == "" {
		sku = pricing.DefaultSKU(providerName)
	}
	zone := spec.Zone
	if zone == "" {
		zone = b.zone
	}

	inst := &compute.Instance{
		Name:        spec.Name,
		MachineType: fmt.Sprintf("zones/%s/machineTypes/%s", zone, sku),
		Disks: []*compute.AttachedDisk{{
			Boot:       true,
			AutoDelete: true,
			InitializeParams: &compute.AttachedDiskInitializeParams{
				SourceImage: defaultImage,
			},
		}},
		NetworkInterfaces: []*compute.NetworkInterface{{
			Network: "global/networks/default",
			AccessConfigs: []*compute.AccessConfig{{
				Type: "ONE_TO_ONE_NAT",
				Name: "External NAT",
			}},
		}},
	}

	if _, err := b.compute.Instances.Insert(b.project, zone, inst).Context(ctx).Do(); err != nil {
		return nil, err
	}

	return &resource.Resource{
		ID:        spec.Name,
		Name:      spec.Name,
		Type:      resource.TypeInstance,
		SKU:       sku,
		Status:    resource.StatusCreating,
		Region:    b.region,
		Zone:      zone,
		Cost:      pricing.InstanceMonthly(providerName, sku),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (b *Backend) UpdateResourceState(ctx context.Context, typ resource.Type, id string, desired resource.DesiredState) error {
	if typ != resource.TypeInstance {
		return fmt.Errorf("%w %s: update %s", provider.ErrUnsupportedOperation, providerName, typ)
	}

	var err error
	switch desired {
	case resource.DesiredStart:
		_, err = b.compute.Instances.Start(b.project, b.zone, id).Context(ctx).Do()
	case resource.DesiredStop:
		_, err = b.compute.Instances.Stop(b.project, b.zone, id).Context(ctx).Do()
	default:
		return fmt.Errorf("%w %s: state %s", provider.ErrUnsupportedOperation, providerName, desired)
	}
	return mapNotFound(err)
}

func (b *Backend) DeleteResource(ctx context.Context, typ resource.Type, id string) error {
	if typ != resource.TypeInstance {
		return fmt.Errorf("%w %s: delete %s", provider.ErrUnsupportedOperation, providerName, typ)
	}
	_, err := b.compute.Instances.Delete(b.project, b.zone, id).Context(ctx).Do()
	return mapNotFound(err)
}

// GetMetrics verifies the instance exists, then synthesizes a tagged sample:
// the project has no Cloud Monitoring data source wired.
func (b *Backend) GetMetrics(ctx context.Context, id string) (*resource.MetricSample, error) {
	if _, err := b.compute.Instances.Get(b.project, b.zone, id).Context(ctx).Do(); err != nil {
		return nil, mapNotFound(err)
	}
	return static.SyntheticMetrics(), nil
}

func mapNotFound(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
		return fmt.Errorf("%w: %s", provider.ErrResourceNotFound, apiErr.Message)
	}
	return err
}

func lastPathSegment(url string) string {
	if url == "" {
		return ""
	}
	parts := strings.Split(url, "/")
	return parts[len(parts)-1]
}
