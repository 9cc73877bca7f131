package browser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"attendance-bot/internal/config"
	"attendance-bot/internal/domain/models"
	"attendance-bot/internal/lib/logger"

	"github.com/go-rod/rod/lib/launcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const portalPage = `<!doctype html>
<html>
<body>
<form id="login" onsubmit="event.preventDefault(); document.getElementById('dash').style.display = 'block';">
  <input name="username" value="stale">
  <input name="password" type="password">
  <button type="submit" class="btn bg-primary">Log in</button>
</form>
<div id="dash" style="display: none">
  <button id="sign-in" onclick="punch('sign-in')">Sign In</button>
  <button id="sign-out" onclick="punch('sign-out')">Sign Out</button>
</div>
<script>
function punch(action) {
  var u = document.querySelector('[name="username"]').value;
  var p = document.querySelector('[name="password"]').value;
  fetch('/punch?action=' + action + '&u=' + encodeURIComponent(u) + '&p=' + encodeURIComponent(p));
}
</script>
</body>
</html>`

func TestIsXPath(t *testing.T) {
	cases := map[string]bool{
		`//button[@type='submit']`:   true,
		`(//gt-button)[1]`:           true,
		`  /html/body`:               true,
		`[name="username"]`:          false,
		`#sign-in`:                   false,
		`div.btn-container > button`: false,
	}

	for selector, want := range cases {
		assert.Equal(t, want, IsXPath(selector), selector)
	}
}

func TestDriver_ActionSelector(t *testing.T) {
	d := New(logger.Discard(), config.Portal{
		Selectors: config.Selectors{SignIn: "#in", SignOut: "#out"},
	}, config.Browser{})

	sel, err := d.actionSelector(models.ActionSignIn)
	require.NoError(t, err)
	assert.Equal(t, "#in", sel)

	sel, err = d.actionSelector(models.ActionSignOut)
	require.NoError(t, err)
	assert.Equal(t, "#out", sel)

	_, err = d.actionSelector(models.Action("lunch"))
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestDriver_PunchUnknownActionLaunchesNothing(t *testing.T) {
	d := New(logger.Discard(), config.Portal{}, config.Browser{Bin: "/nonexistent/chrome"})

	err := d.Punch(context.Background(), models.Credentials{Username: "u", Password: "p"}, models.Action("lunch"))
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestDriver_PunchLaunchFailure(t *testing.T) {
	d := New(logger.Discard(), testPortal("http://127.0.0.1:1"), config.Browser{Bin: filepath.Join(t.TempDir(), "no-such-chrome")})

	err := d.Punch(context.Background(), models.Credentials{Username: "u", Password: "p"}, models.ActionSignIn)
	require.ErrorIs(t, err, ErrLaunch)
}

func TestDriver_Punch(t *testing.T) {
	bin := chromium(t)

	punches := make(chan url.Values, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/punch" {
			punches <- r.URL.Query()
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(portalPage))
	}))
	defer srv.Close()

	shots := t.TempDir()
	d := New(logger.Discard(), testPortal(srv.URL), config.Browser{
		Bin:           bin,
		WindowSize:    "1280,800",
		ScreenshotDir: shots,
	})

	creds := models.Credentials{Username: "jdoe", Password: "hunter2"}

	for _, action := range []models.Action{models.ActionSignIn, models.ActionSignOut} {
		t.Run(string(action), func(t *testing.T) {
			err := d.Punch(context.Background(), creds, action)
			require.NoError(t, err)

			select {
			case q := <-punches:
				assert.Equal(t, string(action), q.Get("action"))
				assert.Equal(t, "jdoe", q.Get("u"))
				assert.Equal(t, "hunter2", q.Get("p"))
			case <-time.After(5 * time.Second):
				t.Fatal("portal never received the punch")
			}
		})
	}

	entries, err := os.ReadDir(shots)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDriver_PunchMissingButton(t *testing.T) {
	bin := chromium(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(portalPage))
	}))
	defer srv.Close()

	portal := testPortal(srv.URL)
	portal.Selectors.SignOut = "#not-there"
	portal.ElementTimeout = 500 * time.Millisecond

	shots := t.TempDir()
	d := New(logger.Discard(), portal, config.Browser{Bin: bin, ScreenshotDir: shots})

	err := d.Punch(context.Background(), models.Credentials{Username: "jdoe", Password: "hunter2"}, models.ActionSignOut)
	require.Error(t, err)

	entries, err := os.ReadDir(shots)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestDriver_PunchCanceled(t *testing.T) {
	bin := chromium(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(portalPage))
	}))
	defer srv.Close()

	portal := testPortal(srv.URL)
	portal.LoginDelay = time.Minute

	d := New(logger.Discard(), portal, config.Browser{Bin: bin})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	start := time.Now()
	err := d.Punch(ctx, models.Credentials{Username: "jdoe", Password: "hunter2"}, models.ActionSignIn)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 30*time.Second)
}

func testPortal(u string) config.Portal {
	return config.Portal{
		URL: u,
		Selectors: config.Selectors{
			Username: `[name="username"]`,
			Password: `[name="password"]`,
			Submit:   `//button[@type='submit' and contains(@class, 'bg-primary')]`,
			SignIn:   `#sign-in`,
			SignOut:  `//div[@id='dash']/button[@id='sign-out']`,
		},
		PageLoadDelay:  50 * time.Millisecond,
		LoginDelay:     50 * time.Millisecond,
		ActionDelay:    300 * time.Millisecond,
		ElementTimeout: 5 * time.Second,
	}
}

// chromium skips the test unless a local browser binary exists.
func chromium(t *testing.T) string {
	t.Helper()

	if testing.Short() {
		t.Skip("browser test in short mode")
	}

	bin, ok := launcher.LookPath()
	if !ok {
		t.Skip("no chromium found")
	}

	return bin
}
