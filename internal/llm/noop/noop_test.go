package noop

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"llm-trade-journal/internal/types"
)

func TestNoopAlwaysFails(t *testing.T) {
	_, err := NewNoopOracle().Generate(context.Background(), "anything", types.GenerateOptions{})
	assert.ErrorIs(t, err, ErrNoOracle)
}
