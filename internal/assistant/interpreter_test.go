package assistant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hema-02/intent-cloud-project/internal/domain/resource"
	"github.com/Hema-02/intent-cloud-project/internal/provider"
	"github.com/Hema-02/intent-cloud-project/internal/provider/static"
	"github.com/Hema-02/intent-cloud-project/internal/resources"
	"github.com/Hema-02/intent-cloud-project/pkg/logger"
)

func newInterpreter() *Interpreter {
	registry := provider.NewRegistry()
	registry.Register(static.New("aws"))
	return NewInterpreter(resources.NewService(registry, logger.NewNop()), logger.NewNop())
}

func TestInterpretActions(t *testing.T) {
	i := newInterpreter()
	ctx := context.Background()

	cases := []struct {
		input  string
		action string
	}{
		{"Create a new virtual machine", "create_instance"},
		{"launch a web server", "create_instance"},
		{"Show me my running instances", "list_resources"},
		{"list everything", "list_resources"},
		{"terminate the old box", "delete_resource"},
		{"scale up my web servers", "scale_resources"},
		{"check system health", "show_monitoring"},
		{"what is my current spending?", "show_billing"},
		{"any vulnerabilities this week?", "show_security"},
		{"make me a sandwich", "help"},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			response := i.Interpret(ctx, tc.input, "aws")
			assert.Equal(t, tc.action, response.Action)
			assert.NotEmpty(t, response.Message)
			assert.NotNil(t, response.Details)
		})
	}
}

// The table is ordered and first match wins, so a command matching several
// rules lands on the earliest one.
func TestRuleOrder(t *testing.T) {
	i := newInterpreter()
	ctx := context.Background()

	response := i.Interpret(ctx, "start my instance", "aws")
	assert.Equal(t, "create_instance", response.Action)

	response = i.Interpret(ctx, "show and delete old instances", "aws")
	assert.Equal(t, "list_resources", response.Action)
}

func TestListResourcesCarriesLiveListing(t *testing.T) {
	i := newInterpreter()

	response := i.Interpret(context.Background(), "list my instances", "aws")
	require.Equal(t, "list_resources", response.Action)

	groups, ok := response.Details["resources"].(map[string][]resource.Resource)
	require.True(t, ok)
	assert.NotEmpty(t, groups["instances"], "listing comes from the live dispatch path")
}

func TestHelpEchoesInput(t *testing.T) {
	i := newInterpreter()

	response := i.Interpret(context.Background(), "do something weird", "gcp")
	assert.Equal(t, "help", response.Action)
	assert.Contains(t, response.Message, "do something weird")
	assert.Contains(t, response.Details, "availableCommands")
	assert.Contains(t, response.Details, "examples")
}
