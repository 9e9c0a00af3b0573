package restcountries

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/zoobzio/clockz"
)

func TestDatasetSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"name":{"common":"Andorra"},"region":"Europe","population":77265,"languages":{"cat":"Catalan"}},{"name":{"common":"Bouvet Island"},"languages":null}]`)
	}))
	defer srv.Close()

	c := NewClient(time.Second, WithURL(srv.URL))
	ds, err := c.Dataset(context.Background())
	if err != nil {
		t.Fatalf("Dataset: %v", err)
	}
	if ds.Len() != 2 || ds.Row(0).Name != "Andorra" || ds.Row(1).OfficialLanguageCount != 0 {
		t.Fatalf("unexpected rows: %+v", ds.Rows())
	}
	if ds.Source != srv.URL {
		t.Fatalf("source = %q", ds.Source)
	}
}

func TestDatasetDegradesOnHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	ds, err := NewClient(time.Second, WithURL(srv.URL)).Dataset(context.Background())
	var fe *FetchError
	if !errors.As(err, &fe) || fe.StatusCode != http.StatusNotFound {
		t.Fatalf("want FetchError 404, got %v", err)
	}
	if !strings.Contains(fe.Error(), "Not Found") {
		t.Fatalf("error should carry body: %v", fe)
	}
	if ds == nil || ds.Len() != 0 {
		t.Fatalf("want empty dataset on failure")
	}
}

func TestDatasetDegradesOnTransportAndBodyErrors(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":500}`)
	}))
	defer bad.Close()
	closed := httptest.NewServer(http.NotFoundHandler())
	closedURL := closed.URL
	closed.Close()

	for name, url := range map[string]string{"not array": bad.URL, "unreachable": closedURL} {
		ds, err := NewClient(time.Second, WithURL(url)).Dataset(context.Background())
		var fe *FetchError
		if !errors.As(err, &fe) {
			t.Fatalf("%s: want FetchError, got %v", name, err)
		}
		if fe.StatusCode != 0 || fe.Err == nil {
			t.Fatalf("%s: unexpected error shape %+v", name, fe)
		}
		if ds.Len() != 0 {
			t.Fatalf("%s: want empty dataset", name)
		}
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(0)
	if c.URL() != DefaultURL || c.httpClient.Timeout != 30*time.Second {
		t.Fatalf("defaults: %s %v", c.URL(), c.httpClient.Timeout)
	}
	if NewClient(time.Second, WithURL("")).URL() != DefaultURL {
		t.Fatalf("empty URL option should keep default")
	}
}

func TestDatasetStampsFetchedAtFromClock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	clock := clockz.NewFakeClock()
	clock.Advance(time.Hour)
	want := clock.Now()
	ds, err := NewClient(time.Second, WithURL(srv.URL), WithClock(clock)).Dataset(context.Background())
	if err != nil {
		t.Fatalf("Dataset: %v", err)
	}
	if !ds.FetchedAt.Equal(want) {
		t.Fatalf("FetchedAt = %v, want %v", ds.FetchedAt, want)
	}
}
