// Package azure backs the normalization layer with Azure virtual machines
// through the ARM compute API.
package azure

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v2"
	"github.com/google/uuid"

	"github.com/Hema-02/intent-cloud-project/internal/domain/resource"
	"github.com/Hema-02/intent-cloud-project/internal/provider"
	"github.com/Hema-02/intent-cloud-project/internal/provider/pricing"
	"github.com/Hema-02/intent-cloud-project/internal/provider/static"
	"github.com/Hema-02/intent-cloud-project/pkg/config"
	"github.com/Hema-02/intent-cloud-project/pkg/logger"
)

const providerName = "azure"

var vmStatus = map[string]resource.Status{
	"succeeded":    resource.StatusRunning,
	"creating":     resource.StatusCreating,
	"updating":     resource.StatusMaintenance,
	"deleting":     resource.StatusStopping,
	"failed":       resource.StatusError,
	"starting":     resource.StatusStarting,
	"running":      resource.StatusRunning,
	"stopping":     resource.StatusStopping,
	"stopped":      resource.StatusStopped,
	"deallocating": resource.StatusStopping,
	"deallocated":  resource.StatusStopped,
}

type Backend struct {
	subscriptionID string
	resourceGroup  string
	location       string
	vms            *armcompute.VirtualMachinesClient
	logger         logger.Logger
}

var _ provider.Backend = (*Backend)(nil)

func New(cfg config.AzureConfig, log logger.Logger) (*Backend, error) {
	cred, err := azidentity.NewClientSecretCredential(cfg.TenantID, cfg.ClientID, cfg.ClientSecret, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build Azure credential: %w", err)
	}

	vms, err := armcompute.NewVirtualMachinesClient(cfg.SubscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build Azure compute client: %w", err)
	}

	return &Backend{
		subscriptionID: cfg.SubscriptionID,
		resourceGroup:  cfg.ResourceGroup,
		location:       cfg.Location,
		vms:            vms,
		logger:         log,
	}, nil
}

func (b *Backend) Name() string { return providerName }

func (b *Backend) HealthCheck(ctx context.Context) error {
	pager := b.vms.NewListPager(b.resourceGroup, nil)
	_, err := pager.NextPage(ctx)
	return err
}

// ListResources returns live virtual machines. Databases and storage have no
// live backing on this account; those groups serve the demo dataset.
func (b *Backend) ListResources(ctx context.Context, typ resource.Type) ([]resource.Resource, error) {
	if typ != resource.TypeInstance {
		return static.Fixtures(providerName, typ), nil
	}

	var out []resource.Resource
	pager := b.vms.NewListPager(b.resourceGroup, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, vm := range page.Value {
			out = append(out, b.normalizeVM(vm))
		}
	}
	return out, nil
}

func (b *Backend) normalizeVM(vm *armcompute.VirtualMachine) resource.Resource {
	res := resource.Resource{
		Type:   resource.TypeInstance,
		Region: b.location,
	}
	if vm.Name != nil {
		res.ID = *vm.Name
		res.Name = *vm.Name
	}
	if vm.Location != nil {
		res.Region = *vm.Location
	}
	if len(vm.Zones) > 0 && vm.Zones[0] != nil {
		res.Zone = *vm.Zones[0]
	}
	if props := vm.Properties; props != nil {
		if props.HardwareProfile != nil && props.HardwareProfile.VMSize != nil {
			res.SKU = string(*props.HardwareProfile.VMSize)
		}
		if props.ProvisioningState != nil {
			res.Status = resource.NormalizeStatus(vmStatus, *props.ProvisioningState)
		}
		if props.TimeCreated != nil {
			res.CreatedAt = props.TimeCreated.UTC().Format(time.RFC3339)
		}
	}
	res.Cost = pricing.InstanceMonthly(providerName, res.SKU)
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
	location := spec.Region
	if location == "" {
		location = b.location
	}

	// The NIC is expected to be pre-provisioned alongside the resource group;
	// VM creation only references it.
	nicID := fmt.Sprintf(
		"/subscriptions/%s/resourceGroups/%s/providers/Microsoft.Network/networkInterfaces/%s-nic",
		b.subscriptionID, b.resourceGroup, spec.Name,
	)

	vm := armcompute.VirtualMachine{
		Location: to.Ptr(location),
		Properties: &armcompute.VirtualMachineProperties{
			HardwareProfile: &armcompute.HardwareProfile{
				VMSize: to.Ptr(armcompute.VirtualMachineSizeTypes(sku)),
			},
			StorageProfile: &armcompute.StorageProfile{
				ImageReference: &armcompute.ImageReference{
					Publisher: to.Ptr("Canonical"),
					Offer:     to.Ptr("0001-com-ubuntu-server-jammy"),
					SKU:       to.Ptr("22_04-lts-gen2"),
					Version:   to.Ptr("latest"),
				},
				OSDisk: &armcompute.OSDisk{
					CreateOption: to.Ptr(armcompute.DiskCreateOptionTypesFromImage),
				},
			},
			OSProfile: &armcompute.OSProfile{
				ComputerName:  to.Ptr(spec.Name),
				AdminUsername: to.Ptr("azureuser"),
				// One-time bootstrap password; real access is via SSH keys
				// rotated out of band.
				AdminPassword: to.Ptr("Boot-" + uuid.New().String()),
			},
			NetworkProfile: &armcompute.NetworkProfile{
				NetworkInterfaces: []*armcompute.NetworkInterfaceReference{
					{ID: to.Ptr(nicID)},
				},
			},
		},
	}

	if _, err := b.vms.BeginCreateOrUpdate(ctx, b.resourceGroup, spec.Name, vm, nil); err != nil {
		return nil, err
	}

	return &resource.Resource{
		ID:        spec.Name,
		Name:      spec.Name,
		Type:      resource.TypeInstance,
		SKU:       sku,
		Status:    resource.StatusCreating,
		Region:    location,
		Cost:      pricing.InstanceMonthly(providerName, sku),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// UpdateResourceState starts or deallocates a VM. The operation is accepted
// asynchronously; the poller is dropped and the transition observed through
// subsequent listings.
func (b *Backend) UpdateResourceState(ctx context.Context, typ resource.Type, id string, desired resource.DesiredState) error {
	if typ != resource.TypeInstance {
		return fmt.Errorf("%w %s: update %s", provider.ErrUnsupportedOperation, providerName, typ)
	}

	var err error
	switch desired {
	case resource.DesiredStart:
		_, err = b.vms.BeginStart(ctx, b.resourceGroup, id, nil)
	case resource.DesiredStop:
		_, err = b.vms.BeginDeallocate(ctx, b.resourceGroup, id, nil)
	default:
		return fmt.Errorf("%w %s: state %s", provider.ErrUnsupportedOperation, providerName, desired)
	}
	return mapNotFound(err)
}

func (b *Backend) DeleteResource(ctx context.Context, typ resource.Type, id string) error {
	if typ != resource.TypeInstance {
		return fmt.Errorf("%w %s: delete %s", provider.ErrUnsupportedOperation, providerName, typ)
	}
	_, err := b.vms.BeginDelete(ctx, b.resourceGroup, id, nil)
	return mapNotFound(err)
}

// GetMetrics verifies the VM exists, then synthesizes a tagged sample: the
// account has no Azure Monitor data source wired.
func (b *Backend) GetMetrics(ctx context.Context, id string) (*resource.MetricSample, error) {
	if _, err := b.vms.Get(ctx, b.resourceGroup, id, nil); err != nil {
		return nil, mapNotFound(err)
	}
	return static.SyntheticMetrics(), nil
}

func mapNotFound(err error) error {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", provider.ErrResourceNotFound, respErr.ErrorCode)
	}
	return err
}
