package testutil

import (
	"strings"
	"testing"
)

// skipListMySQL57 defines tests that cannot pass on MySQL 5.7.
//
// 5.7 has no expression defaults and never marks generated defaults with
// DEFAULT_GENERATED.
var skipListMySQL57 = []string{
	"TestIntegrationExpressionDefault",
}

// skipListForVersion maps server version prefixes to their skip lists.
var skipListForVersion = map[string][]string{
	"5.7.": skipListMySQL57,
}

// ShouldSkipTest skips the test when it is listed for the server version.
// version is the VERSION() string, e.g. "5.7.44" or "8.0.36".
func ShouldSkipTest(t *testing.T, testName string, version string) {
	t.Helper()

	for prefix, skipPatterns := range skipListForVersion {
		if !strings.HasPrefix(version, prefix) {
			continue
		}
		for _, pattern := range skipPatterns {
			if testName == pattern || strings.HasPrefix(testName, pattern+"/") {
				t.Skipf("Skipping test %q on MySQL %s: not supported by this server version", testName, version)
			}
		}
	}
}
