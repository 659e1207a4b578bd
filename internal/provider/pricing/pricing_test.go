package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstanceMonthly(t *testing.T) {
	assert.Equal(t, "$60.74/month", InstanceMonthly("aws", "t3.large"))
	assert.Equal(t, "$48.54/month", InstanceMonthly("gcp", "n1-standard-2"))
	assert.Equal(t, "$45.60/month", InstanceMonthly("ibm", "bx2-2x8"))
}

func TestLookupIsTotal(t *testing.T) {
	t.Run("UnknownSKUFallsBackToDefault", func(t *testing.T) {
		assert.Equal(t, InstanceMonthly("gcp", "e2-medium"), InstanceMonthly("gcp", "z9-mega-128"))
	})

	t.Run("UnknownProviderFallsBackToAWS", func(t *testing.T) {
		assert.Equal(t, InstanceMonthly("aws", "t3.micro"), InstanceMonthly("oracle", "anything"))
	})

	t.Run("EmptyInputs", func(t *testing.T) {
		assert.NotEmpty(t, InstanceMonthly("", ""))
	})
}

func TestDefaultSKU(t *testing.T) {
	assert.Equal(t, "t3.micro", DefaultSKU("aws"))
	assert.Equal(t, "bx2-2x8", DefaultSKU("ibm"))
	assert.Equal(t, "t3.micro", DefaultSKU("unknown"))
}
