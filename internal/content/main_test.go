package content_test

import (
	"testing"

	"go.uber.org/goleak"
)

// Timed-out and cancelled generations must not leave goroutines behind.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
