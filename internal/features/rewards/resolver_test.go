package rewards

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func catalogServer(t *testing.T, hits *int64, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(hits, 1)
		fmt.Fprint(w, body)
	}))
}

func TestResolveCustomPrefixShortCircuits(t *testing.T) {
	var hits int64
	srv := catalogServer(t, &hits, `{"events":[]}`)
	defer srv.Close()

	c := NewClient("brand-1", srv.URL, "", nil)
	assert.Equal(t, "custom_abc123", c.Resolve(context.Background(), "custom_abc123"))
	assert.EqualValues(t, 0, atomic.LoadInt64(&hits), "reserved-prefix names must not hit the catalog")
}

func TestResolveFriendlyName(t *testing.T) {
	var hits int64
	srv := catalogServer(t, &hits,
		`{"events":[{"eventId":"custom_zzz","eventType":"other"},{"eventId":"custom_abc123","eventType":"checkin_v2","friendlyName":"daily_checkin"}]}`)
	defer srv.Close()

	c := NewClient("brand-1", srv.URL, "", nil)
	assert.Equal(t, "custom_abc123", c.Resolve(context.Background(), "daily_checkin"))
}

func TestResolveLegacyEventType(t *testing.T) {
	var hits int64
	srv := catalogServer(t, &hits,
		`{"events":[{"eventId":"custom_abc123","eventType":"daily_checkin"}]}`)
	defer srv.Close()

	c := NewClient("brand-1", srv.URL, "", nil)
	assert.Equal(t, "custom_abc123", c.Resolve(context.Background(), "daily_checkin"))
}

func TestResolveNoMatchReturnsInput(t *testing.T) {
	var hits int64
	srv := catalogServer(t, &hits, `{"events":[{"eventId":"custom_x","eventType":"y"}]}`)
	defer srv.Close()

	c := NewClient("brand-1", srv.URL, "", nil)
	assert.Equal(t, "mystery", c.Resolve(context.Background(), "mystery"))
}

func TestResolveLookupFailureReturnsInput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient("brand-1", srv.URL, "", nil)
	assert.Equal(t, "daily_checkin", c.Resolve(context.Background(), "daily_checkin"))

	// Transport failure degrades the same way.
	srv.Close()
	assert.Equal(t, "daily_checkin", c.Resolve(context.Background(), "daily_checkin"))
}

func TestResolveIdempotent(t *testing.T) {
	var hits int64
	srv := catalogServer(t, &hits,
		`{"events":[{"eventId":"custom_abc123","eventType":"checkin_v2","friendlyName":"daily_checkin"}]}`)
	defer srv.Close()

	c := NewClient("brand-1", srv.URL, "", nil)
	first := c.Resolve(context.Background(), "daily_checkin")
	second := c.Resolve(context.Background(), "daily_checkin")
	assert.Equal(t, first, second)
}

func TestResolveInternalChannelPreferred(t *testing.T) {
	var internalHits, publicHits int64
	internalSrv := catalogServer(t, &internalHits, `{"events":[{"eventId":"custom_int","friendlyName":"daily"}]}`)
	defer internalSrv.Close()
	publicSrv := catalogServer(t, &publicHits, `{"events":[{"eventId":"custom_pub","friendlyName":"daily"}]}`)
	defer publicSrv.Close()

	c := NewClient("brand-1", publicSrv.URL, internalSrv.URL, nil)
	assert.Equal(t, "custom_int", c.Resolve(context.Background(), "daily"))
	assert.EqualValues(t, 0, atomic.LoadInt64(&publicHits))
}
