package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/nammacity/city-buddy-api/logging"
)

func TestNew(t *testing.T) {
	logger := logging.New()

	assert.NotNil(t, logger)
	// the returned logger is also installed as the zap global
	assert.Same(t, logger.Desugar().Core(), zap.L().Core())
}
