package cookiejar_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilnhq/kiln/pkg/cookiejar"
)

func TestFromRequest(t *testing.T) {
	t.Parallel()

	t.Run("parses the cookie header", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Cookie", "theme=dark; session=abc")

		jar := cookiejar.FromRequest(req)
		c := jar.FirstIncoming("theme")
		require.NotNil(t, c)
		assert.Equal(t, "dark", c.Value)
		require.NotNil(t, jar.FirstIncoming("session"))
		assert.Nil(t, jar.FirstIncoming("missing"))
	})

	t.Run("duplicate names keep source order", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Cookie", "pref=first; pref=second")

		jar := cookiejar.FromRequest(req)
		all := jar.Incoming("pref")
		require.Len(t, all, 2)
		assert.Equal(t, "first", jar.FirstIncoming("pref").Value)
		assert.Equal(t, "second", jar.LastIncoming("pref").Value)
	})

	t.Run("a malformed pair does not drop the valid ones", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Cookie", "theme=dark; broken pair; session=abc")

		jar := cookiejar.FromRequest(req)
		require.NotNil(t, jar.FirstIncoming("theme"))
		require.NotNil(t, jar.FirstIncoming("session"))
		assert.Equal(t, "abc", jar.FirstIncoming("session").Value)
	})

	t.Run("nil request yields an empty jar", func(t *testing.T) {
		t.Parallel()

		jar := cookiejar.FromRequest(nil)
		assert.Nil(t, jar.FirstIncoming("anything"))
		assert.Zero(t, jar.Len())
	})
}

func TestOutgoing(t *testing.T) {
	t.Parallel()

	t.Run("set replaces by name", func(t *testing.T) {
		t.Parallel()

		jar := cookiejar.New()
		jar.SetOutgoing(&http.Cookie{Name: "theme", Value: "light"})
		jar.SetOutgoing(&http.Cookie{Name: "theme", Value: "dark"})

		require.Equal(t, 1, jar.Len())
		assert.Equal(t, "dark", jar.FirstOutgoing("theme").Value)
	})

	t.Run("append keeps duplicates", func(t *testing.T) {
		t.Parallel()

		jar := cookiejar.New()
		jar.AppendOutgoing(&http.Cookie{Name: "pref", Value: "a"})
		jar.AppendOutgoing(&http.Cookie{Name: "pref", Value: "b"})

		assert.Len(t, jar.Outgoing("pref"), 2)
		assert.Equal(t, "a", jar.FirstOutgoing("pref").Value)
		assert.Equal(t, "b", jar.LastOutgoing("pref").Value)
	})

	t.Run("nil cookies are ignored", func(t *testing.T) {
		t.Parallel()

		jar := cookiejar.New()
		jar.SetOutgoing(nil)
		jar.AppendOutgoing(nil)
		assert.Zero(t, jar.Len())
	})

	t.Run("remove issues an expiring cookie", func(t *testing.T) {
		t.Parallel()

		jar := cookiejar.New()
		jar.SetOutgoing(&http.Cookie{Name: "session", Value: "abc"})
		jar.Remove("session")

		require.Equal(t, 1, jar.Len())
		c := jar.FirstOutgoing("session")
		assert.Empty(t, c.Value)
		assert.Equal(t, -1, c.MaxAge)
	})
}

func TestSerialize(t *testing.T) {
	t.Parallel()

	jar := cookiejar.New()
	jar.SetOutgoing(&http.Cookie{Name: "theme", Value: "dark", Path: "/"})
	jar.AppendOutgoing(&http.Cookie{Name: "session", Value: "abc", HttpOnly: true})

	out := jar.Serialize()
	require.Len(t, out, 2)
	assert.Equal(t, "theme=dark; Path=/", out[0])
	assert.Contains(t, out[1], "session=abc")
	assert.Contains(t, out[1], "HttpOnly")
}

func TestWriteTo(t *testing.T) {
	t.Parallel()

	h := http.Header{}
	h.Add("Set-Cookie", "existing=1")

	jar := cookiejar.New()
	jar.SetOutgoing(&http.Cookie{Name: "theme", Value: "dark"})
	jar.WriteTo(h)

	values := h.Values("Set-Cookie")
	require.Len(t, values, 2)
	assert.Equal(t, "existing=1", values[0])
	assert.Equal(t, "theme=dark", values[1])
}
