package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Klingon-tech/seedphrase/internal/wallet"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 200 {
		t.Fatalf("scrape status = %d", rec.Code)
	}
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

func TestNew_ZeroSeries(t *testing.T) {
	body := scrape(t, New())
	for _, r := range results {
		line := `seedphrase_derivations_total{result="` + r + `"} 0`
		if !strings.Contains(body, line) {
			t.Errorf("missing %q", line)
		}
	}
	if !strings.Contains(body, "go_goroutines") {
		t.Error("Go runtime collector should be registered")
	}
}

func TestObserveDerivation(t *testing.T) {
	m := New()
	m.ObserveDerivation(nil, 10*time.Millisecond)
	m.ObserveDerivation(nil, 20*time.Millisecond)

	_, err := wallet.AddressFromMnemonic("")
	m.ObserveDerivation(err, time.Millisecond)

	body := scrape(t, m)
	for _, line := range []string{
		`seedphrase_derivations_total{result="ok"} 2`,
		`seedphrase_derivations_total{result="invalid_word_count"} 1`,
		`seedphrase_derivations_total{result="invalid_phrase"} 0`,
		`seedphrase_derivation_seconds_count 3`,
	} {
		if !strings.Contains(body, line) {
			t.Errorf("missing %q", line)
		}
	}
}

func TestObserveValidation(t *testing.T) {
	m := New()
	m.ObserveValidation(wallet.ValidateMnemonic("stove relax design safe deliver rigid height swamp know roof pitch abandon"))

	body := scrape(t, m)
	if !strings.Contains(body, `seedphrase_validations_total{result="invalid_phrase"} 1`) {
		t.Error("invalid_phrase validation not counted")
	}
}

func TestNew_Independent(t *testing.T) {
	a, b := New(), New()
	a.ObserveDerivation(nil, 0)
	if strings.Contains(scrape(t, b), `seedphrase_derivations_total{result="ok"} 1`) {
		t.Error("registries should be independent")
	}
}
