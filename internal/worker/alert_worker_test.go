package worker

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlertWorker_MalformedPayloadIsDropped(t *testing.T) {
	w := NewAlertWorker(nil, "shop@example.com")

	// A payload that cannot be decoded is unrecoverable: retrying it
	// would loop forever, so Process must swallow it.
	err := w.Process(context.Background(), json.RawMessage(`{not json`))
	assert.NoError(t, err)
}

func TestAlertWorker_NoRecipientConfigured(t *testing.T) {
	w := NewAlertWorker(nil, "")

	payload, err := json.Marshal(LowStockAlertPayload{ProductID: 1, ProductName: "Hammer", Stock: 2, Threshold: 5})
	require.NoError(t, err)

	assert.NoError(t, w.Process(context.Background(), payload))
}

func TestJobEnvelopeRoundTrip(t *testing.T) {
	payload, err := json.Marshal(LowStockAlertPayload{ProductID: 7, ProductName: "Wrench", Stock: 1, Threshold: 5})
	require.NoError(t, err)
	encoded, err := json.Marshal(Job{Type: "low_stock_alert", Payload: payload})
	require.NoError(t, err)

	var job Job
	require.NoError(t, json.Unmarshal(encoded, &job))
	assert.Equal(t, "low_stock_alert", job.Type)

	var decoded LowStockAlertPayload
	require.NoError(t, json.Unmarshal(job.Payload, &decoded))
	assert.Equal(t, uint(7), decoded.ProductID)
	assert.Equal(t, 1, decoded.Stock)
}
