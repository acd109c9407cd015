package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCondition(t *testing.T) {
	for _, valid := range []string{"good", "service", "damaged", "broken"} {
		condition, err := NewCondition(valid)
		assert.NoError(t, err)
		assert.Equal(t, valid, condition.String())
	}

	_, err := NewCondition("excellent")
	assert.Error(t, err)

	_, err = NewCondition("")
	assert.Error(t, err)
}

func TestNewStatus(t *testing.T) {
	for _, valid := range []string{"available", "in_use", "maintenance", "missing"} {
		status, err := NewStatus(valid)
		assert.NoError(t, err)
		assert.Equal(t, valid, status.String())
	}

	// condition values are not availability values
	_, err := NewStatus("good")
	assert.Error(t, err)
}

func TestIsCondition(t *testing.T) {
	assert.True(t, IsCondition("good"))
	assert.True(t, IsCondition("broken"))
	assert.False(t, IsCondition("available"))
	assert.False(t, IsCondition(""))
}

func TestRequestStatusTerminal(t *testing.T) {
	assert.False(t, RequestPending.Terminal())
	assert.False(t, RequestAccepted.Terminal())
	assert.True(t, RequestDenied.Terminal())
	assert.True(t, RequestCompleted.Terminal())
}
