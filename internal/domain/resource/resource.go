package resource

import "strings"

// Type classifies what kind of resource a record describes. The set is
// closed; providers expose more kinds but the dashboard only renders these.
type Type string

const (
	TypeInstance Type = "instance"
	TypeDatabase Type = "database"
	TypeStorage  Type = "storage"
)

// GroupKey is the plural key used when resources are grouped by type in an
// API response ("resources": {"instances": [...], ...}).
func (t Type) GroupKey() string {
	switch t {
	case TypeInstance:
		return "instances"
	case TypeDatabase:
		return "databases"
	case TypeStorage:
		return "storage"
	}
	return string(t)
}

// ParseType accepts both the canonical singular form and the plural form
// used in URLs and query strings.
func ParseType(s string) (Type, bool) {
	switch strings.ToLower(s) {
	case "instance", "instances", "vm", "vms":
		return TypeInstance, true
	case "database", "databases", "db":
		return TypeDatabase, true
	case "storage", "bucket", "buckets":
		return TypeStorage, true
	}
	return "", false
}

// Types lists every supported resource type.
func Types() []Type {
	return []Type{TypeInstance, TypeDatabase, TypeStorage}
}

// Status is the normalized lifecycle vocabulary. Provider-native statuses
// that no mapping table covers pass through unchanged; callers must tolerate
// strings outside this set.
type Status string

const (
	StatusRunning     Status = "running"
	StatusStopped     Status = "stopped"
	StatusCreating    Status = "creating"
	StatusStarting    Status = "starting"
	StatusStopping    Status = "stopping"
	StatusAvailable   Status = "available"
	StatusMaintenance Status = "maintenance"
	StatusActive      Status = "active"
	StatusError       Status = "error"
)

// NormalizeStatus runs a provider-native status through a mapping table.
// Unmapped values are returned as-is rather than erroring so that a new
// native status never breaks a listing.
func NormalizeStatus(table map[string]Status, native string) Status {
	if s, ok := table[strings.ToLower(native)]; ok {
		return s
	}
	return Status(native)
}

// Resource is the vendor-agnostic record every provider backend maps its
// native schema into.
type Resource struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      Type   `json:"type"`
	SKU       string `json:"sku,omitempty"` // provider machine/instance type
	Status    Status `json:"status"`
	Region    string `json:"region"`
	Zone      string `json:"zone,omitempty"`
	Engine    string `json:"engine,omitempty"` // databases
	Size      string `json:"size,omitempty"`   // storage
	Cost      string `json:"cost"`             // display estimate, not billing-grade
	CreatedAt string `json:"createdAt,omitempty"`
	CreatedBy string `json:"createdBy,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// CreateSpec carries the caller-supplied fields of a create request.
// Placement fields are optional; the provider layer substitutes configured
// defaults, then provider-queried defaults, then hard-coded constants.
type CreateSpec struct {
	Name   string `json:"name"`
	SKU    string `json:"instanceType"`
	Region string `json:"region"`
	Zone   string `json:"zone"`
	Engine string `json:"engine"`
}

// DesiredState names the state transition requested by an update call.
type DesiredState string

const (
	DesiredStart DesiredState = "start"
	DesiredStop  DesiredState = "stop"
)

// ParseDesiredState validates a requested state transition.
func ParseDesiredState(s string) (DesiredState, bool) {
	switch strings.ToLower(s) {
	case "start", "running":
		return DesiredStart, true
	case "stop", "stopped":
		return DesiredStop, true
	}
	return "", false
}

// MetricSample is a point-in-time utilization reading for one resource.
// Synthetic samples are tagged so that placeholders are never mistaken for
// measurements.
type MetricSample struct {
	CPU       float64 `json:"cpu"`
	Memory    float64 `json:"memory"`
	Network   float64 `json:"network"`
	Disk      float64 `json:"disk"`
	Synthetic bool    `json:"synthetic"`
}
