package telegram

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBotAPI stands in for api.telegram.org. Each method's response body is
// configurable; every hit is counted.
type fakeBotAPI struct {
	calls    int64
	status   string
	getMe    string
	lastForm map[string][]string
}

func (f *fakeBotAPI) server(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&f.calls, 1)
		switch {
		case strings.HasSuffix(r.URL.Path, "/getChatMember"):
			fmt.Fprintf(w, `{"ok":true,"result":{"status":%q,"user":{"id":7}}}`, f.status)
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			fmt.Fprintf(w, `{"ok":true,"result":{"username":%q}}`, f.getMe)
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			_ = r.ParseForm()
			f.lastForm = r.PostForm
			fmt.Fprint(w, `{"ok":true,"result":{"message_id":1}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestIsAdminPrivateChatBypassesAPI(t *testing.T) {
	api := &fakeBotAPI{}
	srv := api.server(t)
	defer srv.Close()

	c := NewClientWithBaseURL("token", srv.URL)
	assert.True(t, c.IsAdmin(context.Background(), 42, 7))
	assert.EqualValues(t, 0, atomic.LoadInt64(&api.calls), "private chat must not hit the API")
}

func TestIsAdminStatuses(t *testing.T) {
	cases := []struct {
		status string
		want   bool
	}{
		{"creator", true},
		{"administrator", true},
		{"member", false},
		{"left", false},
	}
	for _, tc := range cases {
		t.Run(tc.status, func(t *testing.T) {
			api := &fakeBotAPI{status: tc.status}
			srv := api.server(t)
			defer srv.Close()

			c := NewClientWithBaseURL("token", srv.URL)
			assert.Equal(t, tc.want, c.IsAdmin(context.Background(), -100, 7))
		})
	}
}

func TestIsAdminFailsClosed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "not json at all")
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("token", srv.URL)
	assert.False(t, c.IsAdmin(context.Background(), -100, 7))

	// Unreachable endpoint is also a denial, not an error.
	srv.Close()
	assert.False(t, c.IsAdmin(context.Background(), -100, 7))
}

func TestBotUsernameMemoized(t *testing.T) {
	api := &fakeBotAPI{getMe: "LoyalteezBot"}
	srv := api.server(t)
	defer srv.Close()

	c := NewClientWithBaseURL("token", srv.URL)
	require.Equal(t, "LoyalteezBot", c.BotUsername(context.Background()))
	require.Equal(t, "LoyalteezBot", c.BotUsername(context.Background()))
	assert.EqualValues(t, 1, atomic.LoadInt64(&api.calls), "getMe must be called once per process")
}

func TestBotUsernameEmptyOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("token", srv.URL)
	assert.Equal(t, "", c.BotUsername(context.Background()))
}

func TestSendMessageParameters(t *testing.T) {
	api := &fakeBotAPI{}
	srv := api.server(t)
	defer srv.Close()

	c := NewClientWithBaseURL("token", srv.URL)
	c.SendMessage(context.Background(), -100, "<b>hi</b>")

	require.NotNil(t, api.lastForm)
	assert.Equal(t, "-100", api.lastForm["chat_id"][0])
	assert.Equal(t, "<b>hi</b>", api.lastForm["text"][0])
	assert.Equal(t, "HTML", api.lastForm["parse_mode"][0])
	assert.Equal(t, "true", api.lastForm["disable_web_page_preview"][0])
}

func TestSendMessageWithoutTokenIsNoop(t *testing.T) {
	api := &fakeBotAPI{}
	srv := api.server(t)
	defer srv.Close()

	c := NewClientWithBaseURL("", srv.URL)
	c.SendMessage(context.Background(), -100, "hello")
	assert.EqualValues(t, 0, atomic.LoadInt64(&api.calls))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Ana Lima", User{FirstName: "Ana", LastName: "Lima"}.DisplayName())
	assert.Equal(t, "Ana", User{FirstName: "Ana"}.DisplayName())
	assert.Equal(t, "ana_l", User{Username: "ana_l"}.DisplayName())
}
