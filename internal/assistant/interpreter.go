// Package assistant turns free-text commands into dashboard actions using an
// ordered rule table. First match wins; unmatched input gets the help action.
package assistant

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Hema-02/intent-cloud-project/internal/resources"
	"github.com/Hema-02/intent-cloud-project/pkg/logger"
)

// Response is the interpreted command.
type Response struct {
	Action  string                 `json:"action"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details"`
}

type rule struct {
	action  string
	pattern *regexp.Regexp
	build   func(i *Interpreter, ctx context.Context, providerName string) *Response
}

// Rule order is significant: "start my instance" must hit the create rule
// before the generic status rule, and deletion words always win over listing.
var rules = []rule{
	{
		action:  "create_instance",
		pattern: regexp.MustCompile(`(?i)create|launch|start.*(?:instance|vm|server|machine)`),
		build:   (*Interpreter).createInstance,
	},
	{
		action:  "list_resources",
		pattern: regexp.MustCompile(`(?i)list|show|display.*(?:instance|vm|server|resource)`),
		build:   (*Interpreter).listResources,
	},
	{
		action:  "delete_resource",
		pattern: regexp.MustCompile(`(?i)delete|remove|terminate|destroy`),
		build:   (*Interpreter).deleteResource,
	},
	{
		action:  "scale_resources",
		pattern: regexp.MustCompile(`(?i)scale|resize|upgrade|expand`),
		build:   (*Interpreter).scaleResources,
	},
	{
		action:  "show_monitoring",
		pattern: regexp.MustCompile(`(?i)monitor|status|health|performance`),
		build:   (*Interpreter).showMonitoring,
	},
	{
		action:  "show_billing",
		pattern: regexp.MustCompile(`(?i)cost|billing|price|spend|budget`),
		build:   (*Interpreter).showBilling,
	},
	{
		action:  "show_security",
		pattern: regexp.MustCompile(`(?i)security|access|permission|vulnerability`),
		build:   (*Interpreter).showSecurity,
	},
}

type Interpreter struct {
	resources *resources.Service
	logger    logger.Logger
}

func NewInterpreter(res *resources.Service, log logger.Logger) *Interpreter {
	return &Interpreter{resources: res, logger: log}
}

// Interpret matches the command against the rule table.
func (i *Interpreter) Interpret(ctx context.Context, input, providerName string) *Response {
	command := strings.ToLower(strings.TrimSpace(input))
	for _, r := range rules {
		if r.pattern.MatchString(command) {
			response := r.build(i, ctx, providerName)
			response.Action = r.action
			return response
		}
	}
	return i.help(input, providerName)
}

func (i *Interpreter) createInstance(_ context.Context, providerName string) *Response {
	return &Response{
		Message: fmt.Sprintf("I'll help you create a new compute instance on %s.", strings.ToUpper(providerName)),
		Details: map[string]interface{}{
			"type":     "instance_creation",
			"provider": providerName,
			"suggestedConfig": map[string]interface{}{
				"instanceType":  "t3.medium",
				"region":        "us-east-1",
				"estimatedCost": "$0.0416/hour",
			},
			"nextSteps": []string{
				"Choose instance type and size",
				"Select region and availability zone",
				"Configure security groups",
				"Review and launch",
			},
		},
	}
}

// listResources answers with the live grouped listing rather than a canned
// snapshot, going through the same dispatch and fallback path as the REST
// listing.
func (i *Interpreter) listResources(ctx context.Context, providerName string) *Response {
	details := map[string]interface{}{
		"type":     "resource_listing",
		"provider": providerName,
	}

	listing, err := i.resources.List(ctx, providerName, "")
	if err != nil {
		i.logger.Warn("Assistant listing failed", "provider", providerName, "error", err)
		details["resources"] = map[string]interface{}{}
	} else {
		details["resources"] = listing.Groups
		if listing.Fallback {
			details["note"] = "Live provider data unavailable; showing substitute data."
		}
	}

	return &Response{
		Message: fmt.Sprintf("Here are your current resources on %s:", strings.ToUpper(providerName)),
		Details: details,
	}
}

func (i *Interpreter) deleteResource(_ context.Context, providerName string) *Response {
	return &Response{
		Message: "I can help you safely delete resources.",
		Details: map[string]interface{}{
			"type":     "resource_deletion",
			"provider": providerName,
			"warning":  "This action cannot be undone",
			"requirements": []string{
				"Specify the resource ID or name",
				"Confirm you have backed up important data",
				"Check for dependencies",
			},
			"safetyChecks": []string{
				"Backup verification",
				"Dependency analysis",
				"User confirmation required",
			},
		},
	}
}

func (i *Interpreter) scaleResources(_ context.Context, providerName string) *Response {
	return &Response{
		Message: fmt.Sprintf("I'll help you scale your %s resources.", strings.ToUpper(providerName)),
		Details: map[string]interface{}{
			"type":     "resource_scaling",
			"provider": providerName,
			"currentConfig": map[string]interface{}{
				"autoScalingGroups": 2,
				"currentCapacity":   "3-8 instances",
				"cpuTarget":         "70%",
				"scaleOutCooldown":  "300 seconds",
			},
			"scalingOptions": []string{
				"Vertical scaling (instance size)",
				"Horizontal scaling (instance count)",
				"Auto-scaling configuration",
				"Load balancer adjustment",
			},
		},
	}
}

func (i *Interpreter) showMonitoring(_ context.Context, providerName string) *Response {
	return &Response{
		Message: fmt.Sprintf("Current monitoring data for %s:", strings.ToUpper(providerName)),
		Details: map[string]interface{}{
			"type":         "monitoring_data",
			"provider":     providerName,
			"systemHealth": "Good",
			"metrics": map[string]interface{}{
				"cpu":     "67%",
				"memory":  "45%",
				"network": "2.3 GB/s",
				"disk":    "78%",
			},
			"alerts": []map[string]interface{}{
				{"severity": "high", "message": "High CPU on i-1234567890abc", "time": "2 min ago"},
				{"severity": "medium", "message": "Memory warning on db-server-01", "time": "15 min ago"},
			},
		},
	}
}

func (i *Interpreter) showBilling(_ context.Context, providerName string) *Response {
	return &Response{
		Message: fmt.Sprintf("Billing information for %s:", strings.ToUpper(providerName)),
		Details: map[string]interface{}{
			"type":         "billing_data",
			"provider":     providerName,
			"currentMonth": "$2,847.32",
			"breakdown": map[string]interface{}{
				"EC2 Instances":  "$1,245.67 (44%)",
				"S3 Storage":     "$567.89 (20%)",
				"RDS Databases":  "$423.12 (15%)",
				"Other Services": "$610.64 (21%)",
			},
			"trend":           "+7.3% from last month",
			"projectedAnnual": "$34.2K",
		},
	}
}

func (i *Interpreter) showSecurity(_ context.Context, providerName string) *Response {
	return &Response{
		Message: fmt.Sprintf("Security overview for %s:", strings.ToUpper(providerName)),
		Details: map[string]interface{}{
			"type":          "security_data",
			"provider":      providerName,
			"securityScore": "85/100",
			"status":        "Warning",
			"summary": map[string]interface{}{
				"securityGroups": 28,
				"iamPolicies":    156,
				"accessKeys":     12,
				"activeUsers":    45,
			},
			"vulnerabilities": []map[string]interface{}{
				{"severity": "high", "issue": "Unrestricted SSH access"},
				{"severity": "medium", "issue": "Unused access key"},
				{"severity": "low", "issue": "Weak password policy"},
			},
		},
	}
}

func (i *Interpreter) help(input, providerName string) *Response {
	return &Response{
		Action:  "help",
		Message: fmt.Sprintf("I understand you want to: %q", input),
		Details: map[string]interface{}{
			"type":     "help",
			"provider": providerName,
			"availableCommands": []string{
				"Create - Launch new instances, databases, storage",
				"List/Show - Display your current resources",
				"Delete - Safely remove resources",
				"Scale - Resize or auto-scale resources",
				"Monitor - Check system health and metrics",
				"Cost - View billing and usage information",
				"Security - Review security settings and alerts",
			},
			"examples": []string{
				"Create a new virtual machine",
				"Show me my running instances",
				"What is my current spending?",
				"Scale up my web servers",
				"Check system health",
			},
		},
	}
}
