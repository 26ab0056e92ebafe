package mocklogger

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/torrejonv/movecall/ulogger"
)

func TestRecordsCallsAndMessages(t *testing.T) {
	logger := NewTestLogger()

	logger.Infof("gas price %d", 750)
	logger.Infof("digest %s", "abc")
	logger.Errorf("boom")

	logger.AssertNumberOfCalls(t, "Infof", 2)
	logger.AssertNumberOfCalls(t, "Errorf", 1)
	logger.AssertNumberOfCalls(t, "Debugf", 0)

	assert.Equal(t, []string{"[test] gas price 750", "[test] digest abc"}, logger.Messages("Infof"))
	assert.True(t, logger.Contains("Errorf", "boom"))
	assert.False(t, logger.Contains("Warnf", "boom"))
}

func TestChildLoggersShareRecord(t *testing.T) {
	logger := NewTestLogger()

	var child ulogger.Logger = logger.New("node")
	child.Warnf("slow response")
	logger.Duplicate().Warnf("again")

	logger.AssertNumberOfCalls(t, "Warnf", 2)
	require.Len(t, logger.Messages("Warnf"), 2)
	assert.Equal(t, "[node] slow response", logger.Messages("Warnf")[0])
}

func TestReset(t *testing.T) {
	logger := NewTestLogger()
	logger.Debugf("one")
	logger.Fatalf("two")

	logger.Reset()

	logger.AssertNumberOfCalls(t, "Debugf", 0)
	logger.AssertNumberOfCalls(t, "Fatalf", 0)
	assert.Empty(t, logger.Messages("Debugf"))
}

func TestConcurrentAccess(t *testing.T) {
	logger := NewTestLogger()

	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for j := 0; j < 100; j++ {
				logger.Infof("message %d", j)
			}
		}()
	}

	wg.Wait()

	logger.AssertNumberOfCalls(t, "Infof", 1000)
	assert.Equal(t, 0, logger.LogLevel())
}
