package statemachine

import (
	"testing"

	"food-ordering-api/models"

	"github.com/stretchr/testify/assert"
)

func TestOwnerTargets(t *testing.T) {
	assert.ElementsMatch(t,
		[]models.OrderStatus{models.StatusPreparing, models.StatusReady, models.StatusCompleted, models.StatusRejected},
		TargetsFor(ActorOwner))
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name    string
		from    models.OrderStatus
		to      models.OrderStatus
		actor   Actor
		wantErr error
	}{
		{"owner prepares placed order", models.StatusPlaced, models.StatusPreparing, ActorOwner, nil},
		{"owner completes placed order directly", models.StatusPlaced, models.StatusCompleted, ActorOwner, nil},
		{"owner marks ready", models.StatusPreparing, models.StatusReady, ActorOwner, nil},
		{"owner rejects", models.StatusPlaced, models.StatusRejected, ActorOwner, nil},
		{"unknown target", models.StatusPlaced, models.OrderStatus("shipped"), ActorOwner, ErrInvalidTarget},
		{"owner cannot cancel", models.StatusPlaced, models.StatusCancelled, ActorOwner, ErrInvalidTarget},
		{"owner cannot reopen completed", models.StatusCompleted, models.StatusPreparing, ActorOwner, ErrTerminal},
		{"owner cannot touch cancelled", models.StatusCancelled, models.StatusReady, ActorOwner, ErrTerminal},
		{"customer cancels placed", models.StatusPlaced, models.StatusCancelled, ActorCustomer, nil},
		{"customer cannot cancel preparing", models.StatusPreparing, models.StatusCancelled, ActorCustomer, ErrTerminal},
		{"customer cannot complete", models.StatusPlaced, models.StatusCompleted, ActorCustomer, ErrInvalidTarget},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CanTransition(tc.from, tc.to, tc.actor)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(models.StatusCompleted))
	assert.True(t, IsTerminal(models.StatusRejected))
	assert.True(t, IsTerminal(models.StatusCancelled))
	assert.False(t, IsTerminal(models.StatusReady))
}
