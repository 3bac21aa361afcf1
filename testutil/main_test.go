package testutil_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/pkordes/flowdeck/testutil"
)

func TestMain(m *testing.M) {
	ctx := context.Background()
	teardown, err := testutil.SetupDatabase(ctx)
	if err != nil {
		log.Fatalf("TestMain: start database: %v", err)
	}
	code := m.Run()
	_ = teardown(ctx)
	os.Exit(code)
}
