// Package ibm backs the normalization layer with IBM Cloud VPC virtual
// server instances.
package ibm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/IBM/go-sdk-core/v5/core"
	"github.com/IBM/vpc-go-sdk/vpcv1"

	"github.com/Hema-02/intent-cloud-project/internal/domain/resource"
	"github.com/Hema-02/intent-cloud-project/internal/provider"
	"github.com/Hema-02/intent-cloud-project/internal/provider/pricing"
	"github.com/Hema-02/intent-cloud-project/internal/provider/static"
	"github.com/Hema-02/intent-cloud-project/pkg/config"
	"github.com/Hema-02/intent-cloud-project/pkg/logger"
)

const providerName = "ibm"

// Last-resort Ubuntu image for us-south when the image catalog cannot be
// queried.
const fallbackImageID = "r006-14140f94-fcc4-11e9-96e7-a72723715315"

var instanceStatus = map[string]resource.Status{
	"pending":    resource.StatusCreating,
	"starting":   resource.StatusStarting,
	"running":    resource.StatusRunning,
	"stopping":   resource.StatusStopping,
	"stopped":    resource.StatusStopped,
	"restarting": resource.StatusStarting,
	"deleting":   resource.StatusStopping,
	"failed":     resource.StatusError,
}

type Backend struct {
	region          string
	resourceGroupID string
	vpcID           string
	vpc             *vpcv1.VpcV1
	logger          logger.Logger
}

var _ provider.Backend = (*Backend)(nil)

func New(cfg config.IBMConfig, log logger.Logger) (*Backend, error) {
	svc, err := vpcv1.NewVpcV1(&vpcv1.VpcV1Options{
		URL:           fmt.Sprintf("https://%s.iaas.cloud.ibm.com/v1", cfg.Region),
		Authenticator: &core.IamAuthenticator{ApiKey: cfg.APIKey},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build IBM VPC client: %w", err)
	}

	return &Backend{
		region:          cfg.Region,
		resourceGroupID: cfg.ResourceGroupID,
		vpcID:           cfg.VPCID,
		vpc:             svc,
		logger:          log,
	}, nil
}

func (b *Backend) Name() string { return providerName }

func (b *Backend) HealthCheck(ctx context.Context) error {
	opts := &vpcv1.ListInstancesOptions{Limit: core.Int64Ptr(1)}
	_, _, err := b.vpc.ListInstancesWithContext(ctx, opts)
	return err
}

// ListResources returns live virtual server instances. Databases and storage
// have no live backing on this account; those groups serve the demo dataset.
func (b *Backend) ListResources(ctx context.Context, typ resource.Type) ([]resource.Resource, error) {
	if typ != resource.TypeInstance {
		return static.Fixtures(providerName, typ), nil
	}

	collection, _, err := b.vpc.ListInstancesWithContext(ctx, &vpcv1.ListInstancesOptions{})
	if err != nil {
		return nil, err
	}

	resources := make([]resource.Resource, 0, len(collection.Instances))
	for i := range collection.Instances {
		resources = append(resources, b.normalizeInstance(&collection.Instances[i]))
	}
	return resources, nil
}

func (b *Backend) normalizeInstance(inst *vpcv1.Instance) resource.Resource {
	res := resource.Resource{
		Type:   resource.TypeInstance,
		SKU:    pricing.DefaultSKU(providerName),
		Region: b.region,
		Zone:   b.region + "-1",
	}
	if inst.ID != nil {
		res.ID = *inst.ID
	}
	if inst.Name != nil {
		res.Name = *inst.Name
	}
	if inst.Profile != nil && inst.Profile.Name != nil {
		res.SKU = *inst.Profile.Name
	}
	if inst.Status != nil {
		res.Status = resource.NormalizeStatus(instanceStatus, *inst.Status)
	}
	if inst.Zone != nil && inst.Zone.Name != nil {
		res.Zone = *inst.Zone.Name
	}
	if inst.CreatedAt != nil {
		res.CreatedAt = inst.CreatedAt.String()
	}
	res.Cost = pricing.InstanceMonthly(providerName, res.SKU)
	return res
}

// CreateResource provisions a virtual server instance. The VPC, subnet and
// image are resolved in sequence before the create call; a failure partway
// leaves nothing provisioned since the instance itself is the only mutation.
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
		zone = b.region + "-1"
	}

	vpcID, err := b.resolveVPC(ctx)
	if err != nil {
		return nil, err
	}
	subnetID, err := b.resolveSubnet(ctx, vpcID)
	if err != nil {
		return nil, err
	}

	prototype := &vpcv1.InstancePrototypeInstanceByImage{
		Name:    core.StringPtr(spec.Name),
		Profile: &vpcv1.InstanceProfileIdentityByName{Name: core.StringPtr(sku)},
		Image:   &vpcv1.ImageIdentityByID{ID: core.StringPtr(b.defaultImageID(ctx))},
		Zone:    &vpcv1.ZoneIdentityByName{Name: core.StringPtr(zone)},
		VPC:     &vpcv1.VPCIdentityByID{ID: core.StringPtr(vpcID)},
		PrimaryNetworkInterface: &vpcv1.NetworkInterfacePrototype{
			Subnet: &vpcv1.SubnetIdentityByID{ID: core.StringPtr(subnetID)},
		},
	}
	if b.resourceGroupID != "" {
		prototype.ResourceGroup = &vpcv1.ResourceGroupIdentityByID{ID: core.StringPtr(b.resourceGroupID)}
	}

	created, _, err := b.vpc.CreateInstanceWithContext(ctx, &vpcv1.CreateInstanceOptions{
		InstancePrototype: prototype,
	})
	if err != nil {
		return nil, err
	}

	res := b.normalizeInstance(created)
	res.Status = resource.StatusCreating
	if res.CreatedAt == "" {
		res.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	return &res, nil
}

func (b *Backend) resolveVPC(ctx context.Context) (string, error) {
	if b.vpcID != "" {
		return b.vpcID, nil
	}

	vpcs, _, err := b.vpc.ListVpcsWithContext(ctx, &vpcv1.ListVpcsOptions{})
	if err != nil {
		return "", err
	}
	if len(vpcs.Vpcs) == 0 || vpcs.Vpcs[0].ID == nil {
		return "", fmt.Errorf("no VPC available for instance creation")
	}
	return *vpcs.Vpcs[0].ID, nil
}

func (b *Backend) resolveSubnet(ctx context.Context, vpcID string) (string, error) {
	subnets, _, err := b.vpc.ListSubnetsWithContext(ctx, &vpcv1.ListSubnetsOptions{})
	if err != nil {
		return "", err
	}
	for i := range subnets.Subnets {
		subnet := &subnets.Subnets[i]
		if subnet.VPC != nil && subnet.VPC.ID != nil && *subnet.VPC.ID == vpcID && subnet.ID != nil {
			return *subnet.ID, nil
		}
	}
	return "", fmt.Errorf("no suitable subnet found for instance creation")
}

// defaultImageID picks an available Ubuntu image from the catalog, then any
// image, then a hard-coded constant.
func (b *Backend) defaultImageID(ctx context.Context) string {
	images, _, err := b.vpc.ListImagesWithContext(ctx, &vpcv1.ListImagesOptions{})
	if err != nil || len(images.Images) == 0 {
		b.logger.Warn("Image catalog lookup failed, using last-resort image", "error", err)
		return fallbackImageID
	}

	for i := range images.Images {
		img := &images.Images[i]
		if img.Name == nil || img.ID == nil || img.Status == nil {
			continue
		}
		if strings.Contains(strings.ToLower(*img.Name), "ubuntu") && *img.Status == "available" {
			return *img.ID
		}
	}
	if images.Images[0].ID != nil {
		return *images.Images[0].ID
	}
	return fallbackImageID
}

func (b *Backend) UpdateResourceState(ctx context.Context, typ resource.Type, id string, desired resource.DesiredState) error {
	if typ != resource.TypeInstance {
		return fmt.Errorf("%w %s: update %s", provider.ErrUnsupportedOperation, providerName, typ)
	}

	var action string
	switch desired {
	case resource.DesiredStart:
		action = "start"
	case resource.DesiredStop:
		action = "stop"
	default:
		return fmt.Errorf("%w %s: state %s", provider.ErrUnsupportedOperation, providerName, desired)
	}

	_, response, err := b.vpc.CreateInstanceActionWithContext(ctx, &vpcv1.CreateInstanceActionOptions{
		InstanceID: core.StringPtr(id),
		Type:       core.StringPtr(action),
	})
	return mapNotFound(response, err)
}

func (b *Backend) DeleteResource(ctx context.Context, typ resource.Type, id string) error {
	if typ != resource.TypeInstance {
		return fmt.Errorf("%w %s: delete %s", provider.ErrUnsupportedOperation, providerName, typ)
	}

	response, err := b.vpc.DeleteInstanceWithContext(ctx, &vpcv1.DeleteInstanceOptions{
		ID: core.StringPtr(id),
	})
	return mapNotFound(response, err)
}

// GetMetrics synthesizes a tagged sample from the instance's power state: the
// account has no IBM Cloud Monitoring data source wired. Stopped instances
// report zeroes.
func (b *Backend) GetMetrics(ctx context.Context, id string) (*resource.MetricSample, error) {
	inst, response, err := b.vpc.GetInstanceWithContext(ctx, &vpcv1.GetInstanceOptions{
		ID: core.StringPtr(id),
	})
	if err != nil {
		return nil, mapNotFound(response, err)
	}

	if inst.Status != nil && *inst.Status != "running" {
		return &resource.MetricSample{Synthetic: true}, nil
	}
	return static.SyntheticMetrics(), nil
}

func mapNotFound(response *core.DetailedResponse, err error) error {
	if err != nil && response != nil && response.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %v", provider.ErrResourceNotFound, err)
	}
	return err
}
