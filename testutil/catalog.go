package testutil

import (
	"testing"

	"github.com/Devak1234/Fitness-Chatbot/catalog"
)

// Catalog returns the embedded catalog or fails the test.
func Catalog(t testing.TB) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return c
}
