package events_test

import (
	"testing"

	amqp "github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"

	"yenesuq/pkg/events"
)

func TestNilClientPublishAndCloseAreNoOps(t *testing.T) {
	var client *events.Client

	assert.NoError(t, client.Publish(events.CartUpdated, map[string]interface{}{"count": 1}))
	assert.NoError(t, client.Close())
}

func TestNilClientConsumeFails(t *testing.T) {
	var client *events.Client

	err := client.Consume(func(amqp.Delivery) error { return nil })
	assert.Error(t, err)
}
