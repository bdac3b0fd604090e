package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vovakirdan/tui-defense/internal/games/defense/catalog"
)

func TestHTTPAdvisorSuccess(t *testing.T) {
	var got Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"recommendedTowers":["Bomber","Turret"]}`))
	}))
	defer srv.Close()

	a := NewHTTP(srv.URL, time.Second, WithHTTPClient(srv.Client()))
	req := Request{WaveNumber: 3, EnemyTypes: []string{"troop", "jeep"}, AvailableTowers: []string{"Turret", "Bomber"}}
	resp, err := a.Advise(context.Background(), req)
	if err != nil {
		t.Fatalf("Advise: %v", err)
	}
	if len(resp.RecommendedTowers) != 2 || resp.RecommendedTowers[0] != "Bomber" {
		t.Errorf("resp = %+v", resp)
	}
	if got.WaveNumber != 3 || len(got.EnemyTypes) != 2 || len(got.AvailableTowers) != 2 {
		t.Errorf("server saw %+v", got)
	}
}

func TestHTTPAdvisorFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"empty list", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"recommendedTowers":[]}`))
		}},
		{"garbage body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>`))
		}},
		{"too slow", func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(300 * time.Millisecond)
			w.Write([]byte(`{"recommendedTowers":["Turret"]}`))
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			a := NewHTTP(srv.URL, 100*time.Millisecond)
			_, err := a.Advise(context.Background(), Request{WaveNumber: 1})
			if !errors.Is(err, ErrAdvisoryUnavailable) {
				t.Errorf("err = %v, expected ErrAdvisoryUnavailable", err)
			}
		})
	}
}

func TestHTTPAdvisorNoEndpoint(t *testing.T) {
	_, err := NewHTTP("", 0).Advise(context.Background(), Request{})
	if !errors.Is(err, ErrAdvisoryUnavailable) {
		t.Errorf("err = %v", err)
	}
}

func TestLocalAdvisor(t *testing.T) {
	cat := catalog.Default()
	l := Local{Catalog: cat}

	resp, err := l.Advise(context.Background(), Request{
		WaveNumber:      1,
		EnemyTypes:      []string{"troop", "troop", "troop", "troop", "troop"},
		AvailableTowers: []string{"Turret", "Rapid Fire", "Bomber", "Barracks"},
	})
	if err != nil {
		t.Fatalf("Advise: %v", err)
	}
	if n := len(resp.RecommendedTowers); n == 0 || n > 3 {
		t.Fatalf("got %d picks", n)
	}
	for _, name := range resp.RecommendedTowers {
		if name == "Barracks" {
			t.Error("zero damage towers should never be recommended")
		}
	}

	if _, err := l.Advise(context.Background(), Request{WaveNumber: 1}); !errors.Is(err, ErrAdvisoryUnavailable) {
		t.Errorf("empty tower list err = %v", err)
	}
}

func TestFallback(t *testing.T) {
	down := NewHTTP("", 0)
	local := Local{Catalog: catalog.Default()}

	resp, err := Fallback{down, local}.Advise(context.Background(), Request{
		WaveNumber:      2,
		EnemyTypes:      []string{"troop"},
		AvailableTowers: []string{"Turret"},
	})
	if err != nil || len(resp.RecommendedTowers) != 1 || resp.RecommendedTowers[0] != "Turret" {
		t.Errorf("resp = %+v, err = %v", resp, err)
	}

	if _, err := (Fallback{}).Advise(context.Background(), Request{}); !errors.Is(err, ErrAdvisoryUnavailable) {
		t.Errorf("empty fallback err = %v", err)
	}
}
