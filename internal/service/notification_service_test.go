package service

import (
	"testing"

	"farmmarket-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPayloadHelpers(t *testing.T) {
	id := uuid.New()
	payload := map[string]interface{}{
		"farmer_id":   id.String(),
		"total_price": 250.5,
		"quantity":    float64(10), // json numbers decode as float64
		"bad_id":      "not-a-uuid",
	}

	got, ok := payloadUUID(payload, "farmer_id")
	assert.True(t, ok)
	assert.Equal(t, id, got)

	_, ok = payloadUUID(payload, "bad_id")
	assert.False(t, ok)

	_, ok = payloadUUID(payload, "missing")
	assert.False(t, ok)

	assert.Equal(t, 250.5, payloadFloat(payload, "total_price"))
	assert.Equal(t, 10, payloadInt(payload, "quantity"))
	assert.Equal(t, 0, payloadInt(payload, "missing"))
}

func TestEmbeddingText(t *testing.T) {
	desc := "Vine ripened, pesticide free."
	product := &entity.Product{
		Name:        "Tomatoes",
		Category:    "vegetables",
		Location:    "Nashik",
		Description: &desc,
	}

	text := EmbeddingText(product)
	assert.Equal(t, "Tomatoes. Category: vegetables. Location: Nashik. Vine ripened, pesticide free.", text)

	product.Description = nil
	assert.Equal(t, "Tomatoes. Category: vegetables. Location: Nashik", EmbeddingText(product))
}
