package static

import "github.com/Hema-02/intent-cloud-project/internal/domain/resource"

// Fixtures returns the canned dataset for one provider and type. Providers
// without their own fixtures reuse the AWS set so a fallback list is never
// empty.
func Fixtures(providerName string, typ resource.Type) []resource.Resource {
	sets, ok := fixtures[providerName]
	if !ok {
		sets = fixtures["aws"]
	}
	list := sets[typ]
	out := make([]resource.Resource, len(list))
	copy(out, list)
	return out
}

var fixtures = map[string]map[resource.Type][]resource.Resource{
	"aws": {
		resource.TypeInstance: {
			{ID: "i-1234567890abc", Name: "web-server-01", Type: resource.TypeInstance, SKU: "t3.large", Status: resource.StatusRunning, Region: "us-east-1", Cost: "$60.74/month"},
			{ID: "i-0987654321def", Name: "db-server-01", Type: resource.TypeInstance, SKU: "t2.micro", Status: resource.StatusStopped, Region: "us-west-2", Cost: "$8.76/month"},
			{ID: "i-abcdef123456", Name: "api-server-01", Type: resource.TypeInstance, SKU: "m5.xlarge", Status: resource.StatusRunning, Region: "eu-west-1", Cost: "$138.24/month"},
		},
		resource.TypeDatabase: {
			{ID: "db-1234567890", Name: "prod-database", Type: resource.TypeDatabase, Engine: "PostgreSQL", Status: resource.StatusAvailable, Region: "us-east-1", Cost: "$78.90/month"},
			{ID: "db-0987654321", Name: "test-database", Type: resource.TypeDatabase, Engine: "MySQL", Status: resource.StatusMaintenance, Region: "us-west-2", Cost: "$23.45/month"},
		},
		resource.TypeStorage: {
			{ID: "bucket-1234567", Name: "app-assets", Type: resource.TypeStorage, Size: "1.2TB", Status: resource.StatusActive, Region: "us-east-1", Cost: "$567.89/month"},
			{ID: "bucket-7654321", Name: "backup-data", Type: resource.TypeStorage, Size: "850GB", Status: resource.StatusActive, Region: "us-west-2", Cost: "$234.56/month"},
		},
	},
	"gcp": {
		resource.TypeInstance: {
			{ID: "gcp-inst-001", Name: "web-vm-01", Type: resource.TypeInstance, SKU: "n1-standard-2", Status: resource.StatusRunning, Region: "us-central1", Cost: "$48.54/month"},
			{ID: "gcp-inst-002", Name: "worker-vm-01", Type: resource.TypeInstance, SKU: "n1-standard-1", Status: resource.StatusStopped, Region: "europe-west1", Cost: "$24.27/month"},
		},
		resource.TypeDatabase: {
			{ID: "gcp-db-001", Name: "main-db", Type: resource.TypeDatabase, Engine: "PostgreSQL", Status: resource.StatusAvailable, Region: "us-central1", Cost: "$89.12/month"},
		},
		resource.TypeStorage: {
			{ID: "gcp-bucket-001", Name: "media-storage", Type: resource.TypeStorage, Size: "2.1TB", Status: resource.StatusActive, Region: "us-central1", Cost: "$423.67/month"},
		},
	},
	"azure": {
		resource.TypeInstance: {
			{ID: "azure-vm-001", Name: "app-server", Type: resource.TypeInstance, SKU: "Standard_D2s_v3", Status: resource.StatusRunning, Region: "eastus", Cost: "$70.08/month"},
			{ID: "azure-vm-002", Name: "test-server", Type: resource.TypeInstance, SKU: "Standard_B1s", Status: resource.StatusStopped, Region: "westus2", Cost: "$7.30/month"},
		},
		resource.TypeDatabase: {
			{ID: "azure-sql-001", Name: "production-db", Type: resource.TypeDatabase, Engine: "SQL Server", Status: resource.StatusAvailable, Region: "eastus", Cost: "$156.78/month"},
		},
		resource.TypeStorage: {
			{ID: "azure-storage-001", Name: "blob-storage", Type: resource.TypeStorage, Size: "1.8TB", Status: resource.StatusAvailable, Region: "eastus", Cost: "$634.56/month"},
		},
	},
	"ibm": {
		resource.TypeInstance: {
			{ID: "ibm-vsi-001", Name: "web-server-ibm", Type: resource.TypeInstance, SKU: "bx2-2x8", Status: resource.StatusRunning, Region: "us-south", Zone: "us-south-1", Cost: "$45.60/month"},
			{ID: "ibm-vsi-002", Name: "database-server-ibm", Type: resource.TypeInstance, SKU: "cx2-4x8", Status: resource.StatusRunning, Region: "us-south", Zone: "us-south-2", Cost: "$76.80/month"},
		},
		resource.TypeDatabase: {
			{ID: "ibm-db-001", Name: "production-db-ibm", Type: resource.TypeDatabase, Engine: "PostgreSQL", Status: resource.StatusRunning, Region: "us-south", Cost: "$89.12/month"},
		},
		resource.TypeStorage: {
			{ID: "ibm-cos-001", Name: "app-storage-ibm", Type: resource.TypeStorage, Size: "2.1TB", Status: resource.StatusActive, Region: "us-south", Cost: "$48.30/month"},
		},
	},
}
