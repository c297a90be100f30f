package framepipe

import (
	"testing"

	"go.uber.org/goleak"
)

// Every pipeline run must join all of its goroutines before Run returns;
// no worker, ingest or delivery goroutine may be left blocked after any
// test, including the failure and cancellation paths.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
