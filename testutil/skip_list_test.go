package testutil

import "testing"

func TestShouldSkipTest(t *testing.T) {
	tests := []struct {
		name     string
		testName string
		version  string
		skip     bool
	}{
		{"listed on 5.7", "TestIntegrationExpressionDefault", "5.7.44", true},
		{"subtest on 5.7", "TestIntegrationExpressionDefault/case", "5.7.44-log", true},
		{"listed on 8.0", "TestIntegrationExpressionDefault", "8.0.36", false},
		{"unlisted on 5.7", "TestIntegrationDefaults", "5.7.44", false},
		{"mariadb", "TestIntegrationExpressionDefault", "10.11.6-MariaDB", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			skipped := true
			t.Run("inner", func(t *testing.T) {
				ShouldSkipTest(t, tt.testName, tt.version)
				skipped = false
			})
			if skipped != tt.skip {
				t.Errorf("ShouldSkipTest(%q, %q) skipped = %v, want %v", tt.testName, tt.version, skipped, tt.skip)
			}
		})
	}
}
