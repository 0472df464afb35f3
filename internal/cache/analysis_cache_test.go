// backend-go/internal/cache/analysis_cache_test.go
package cache

import (
	"strings"
	"testing"

	"github.com/andresuchdata/merchview/backend-go/internal/expiry"
)

func TestAnalysisFilterHash(t *testing.T) {
	t.Run("empty filter hashes to default", func(t *testing.T) {
		if got := analysisFilterHash(expiry.Filter{}); got != "default" {
			t.Errorf("hash = %q, want %q", got, "default")
		}
	})

	t.Run("wildcards equal empty", func(t *testing.T) {
		wild := analysisFilterHash(expiry.Filter{OutletID: "all", ProductID: "all"})
		if wild != "default" {
			t.Errorf("wildcard filter hash = %q, want %q", wild, "default")
		}
	})

	t.Run("distinct filters hash differently", func(t *testing.T) {
		a := analysisFilterHash(expiry.Filter{OutletID: "o1"})
		b := analysisFilterHash(expiry.Filter{OutletID: "o2"})
		c := analysisFilterHash(expiry.Filter{OutletID: "o1", StartDate: "2025-01-01"})
		if a == b || a == c || b == c {
			t.Errorf("hash collision: %q %q %q", a, b, c)
		}
	})

	t.Run("stable for identical input", func(t *testing.T) {
		f := expiry.Filter{OutletID: "o1", ProductID: "p1", StartDate: "2025-01-01", EndDate: "2025-12-31"}
		if analysisFilterHash(f) != analysisFilterHash(f) {
			t.Error("hash differs across calls for the same filter")
		}
	})
}

func TestBuildAnalysisKey(t *testing.T) {
	key := buildAnalysisKey(expiry.Filter{OutletID: "o1"})
	if !strings.HasPrefix(key, analysisKeyPrefix+":") {
		t.Errorf("key = %q, want prefix %q", key, analysisKeyPrefix+":")
	}
}
