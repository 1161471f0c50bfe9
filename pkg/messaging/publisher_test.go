package messaging

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilPublisherDropsEvents(t *testing.T) {
	var p *Publisher
	assert.NoError(t, p.Publish(context.Background(), "enrollment.created", map[string]string{"term": "2024FA"}))
	assert.NoError(t, p.Close())
	assert.Equal(t, "grade.updated", p.Subject("grade.updated"))
}

func TestSubjectUsesPrefix(t *testing.T) {
	p := &Publisher{prefix: "ledger"}
	assert.Equal(t, "ledger.enrollment.removed", p.Subject("enrollment.removed"))
}

func TestEncode(t *testing.T) {
	at := time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC)
	body, err := Encode("grade.updated", map[string]string{"grade": "B"}, at)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "grade.updated", decoded["type"])
	assert.Equal(t, "2024-09-01T08:00:00Z", decoded["occurred_at"])
	assert.Equal(t, map[string]interface{}{"grade": "B"}, decoded["payload"])
}
