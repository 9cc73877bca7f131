// Package browser drives the attendance portal with a headless Chromium
// controlled over the DevTools protocol.
package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"attendance-bot/internal/config"
	"attendance-bot/internal/domain/models"
	"attendance-bot/internal/lib/logger/sl"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

var (
	ErrUnknownAction = errors.New("unknown action")
	// ErrLaunch marks failures to start or attach to the browser process.
	ErrLaunch = errors.New("failed to setup browser")
)

type Driver struct {
	log     *slog.Logger
	portal  config.Portal
	browser config.Browser

	newLauncher func(ctx context.Context) *launcher.Launcher
}

func New(log *slog.Logger, portal config.Portal, browser config.Browser) *Driver {
	d := &Driver{
		log:     log,
		portal:  portal,
		browser: browser,
	}
	d.newLauncher = d.launcher

	return d
}

// Punch logs into the portal in a fresh browser and clicks the button
// for action. The browser is torn down before Punch returns.
func (d *Driver) Punch(ctx context.Context, creds models.Credentials, action models.Action) (err error) {
	const op = "browser.Punch"

	log := d.log.With(slog.String("op", op), slog.String("action", string(action)))

	target, err := d.actionSelector(action)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	l := d.newLauncher(ctx)
	u, err := l.Launch()
	if err != nil {
		log.Error("failed to launch browser", sl.Error(err))
		return fmt.Errorf("%s: %w: %w", op, ErrLaunch, err)
	}
	defer l.Cleanup()

	browser := rod.New().ControlURL(u).Context(ctx)
	if err := browser.Connect(); err != nil {
		l.Kill()
		log.Error("failed to connect to browser", sl.Error(err))
		return fmt.Errorf("%s: %w: connect: %w", op, ErrLaunch, err)
	}
	defer func() {
		// The request context may already be gone.
		if err := browser.Context(context.Background()).Close(); err != nil {
			log.Warn("failed to close browser, killing it", sl.Error(err))
			l.Kill()
		}
		log.Debug("browser closed")
	}()

	log.Debug("browser launched")

	page, err := d.page(browser)
	if err != nil {
		return fmt.Errorf("%s: open page: %w", op, err)
	}

	s := &session{
		ctx:     ctx,
		page:    page,
		timeout: d.portal.ElementTimeout,
	}

	defer func() {
		if err != nil {
			d.screenshot(page, action, log)
		}
	}()

	if err := d.login(s, creds, log); err != nil {
		log.Error("login failed", sl.Error(err))
		return fmt.Errorf("%s: login: %w", op, err)
	}

	if err := s.click(string(action)+" button", target); err != nil {
		log.Error("action failed", sl.Error(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	log.Info("action button clicked")

	if err := s.sleep(d.portal.ActionDelay); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (d *Driver) login(s *session, creds models.Credentials, log *slog.Logger) error {
	log.Info("navigating to login page", slog.String("url", d.portal.URL))

	if err := s.page.Navigate(d.portal.URL); err != nil {
		return fmt.Errorf("navigate: %w", err)
	}
	if err := s.sleep(d.portal.PageLoadDelay); err != nil {
		return err
	}

	if err := s.fill("username field", d.portal.Selectors.Username, creds.Username); err != nil {
		return err
	}
	if err := s.fill("password field", d.portal.Selectors.Password, creds.Password); err != nil {
		return err
	}
	if err := s.click("submit button", d.portal.Selectors.Submit); err != nil {
		return err
	}
	log.Info("login submitted")

	// Dashboard load.
	return s.sleep(d.portal.LoginDelay)
}

func (d *Driver) actionSelector(action models.Action) (string, error) {
	switch action {
	case models.ActionSignIn:
		return d.portal.Selectors.SignIn, nil
	case models.ActionSignOut:
		return d.portal.Selectors.SignOut, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
}

func (d *Driver) launcher(ctx context.Context) *launcher.Launcher {
	l := launcher.New().
		Context(ctx).
		Headless(!d.browser.Headful).
		NoSandbox(!d.browser.Sandbox).
		Set("disable-dev-shm-usage").
		Set("disable-gpu").
		Set("disable-extensions").
		Set("disable-infobars")

	if d.browser.WindowSize != "" {
		l = l.Set("window-size", d.browser.WindowSize)
	}
	if d.browser.Bin != "" {
		l = l.Bin(d.browser.Bin)
	}

	return l
}

func (d *Driver) page(browser *rod.Browser) (*rod.Page, error) {
	if d.browser.NoStealth {
		return browser.Page(proto.TargetCreateTarget{})
	}

	return stealth.Page(browser)
}

// screenshot keeps a picture of the page a failed run ended on.
func (d *Driver) screenshot(page *rod.Page, action models.Action, log *slog.Logger) {
	if d.browser.ScreenshotDir == "" {
		return
	}

	img, err := page.Context(context.Background()).Timeout(d.portal.ElementTimeout).Screenshot(true, nil)
	if err != nil {
		log.Warn("failed to take screenshot", sl.Error(err))
		return
	}

	if err := os.MkdirAll(d.browser.ScreenshotDir, 0o755); err != nil {
		log.Warn("failed to create screenshot dir", sl.Error(err))
		return
	}

	name := fmt.Sprintf("%s-%s.png", action, time.Now().UTC().Format("20060102T150405.000"))
	path := filepath.Join(d.browser.ScreenshotDir, name)
	if err := os.WriteFile(path, img, 0o644); err != nil {
		log.Warn("failed to write screenshot", sl.Error(err))
		return
	}

	log.Info("screenshot saved", slog.String("path", path))
}

type session struct {
	ctx     context.Context
	page    *rod.Page
	timeout time.Duration
}

func (s *session) fill(name, selector, value string) error {
	return s.withElement(name, selector, func(el *rod.Element) error {
		if err := el.SelectAllText(); err != nil {
			return fmt.Errorf("clear: %w", err)
		}
		return el.Input(value)
	})
}

func (s *session) click(name, selector string) error {
	return s.withElement(name, selector, func(el *rod.Element) error {
		return el.Click(proto.InputMouseButtonLeft, 1)
	})
}

// withElement bounds both the lookup and fn by the element timeout.
func (s *session) withElement(name, selector string, fn func(el *rod.Element) error) error {
	p := s.page.Timeout(s.timeout)
	defer p.CancelTimeout()

	el, err := find(p, selector)
	if err != nil {
		return fmt.Errorf("find %s: %w", name, err)
	}

	if err := fn(el); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	return nil
}

func (s *session) sleep(d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-s.ctx.Done():
		return s.ctx.Err()
	case <-t.C:
		return nil
	}
}

func find(p *rod.Page, selector string) (*rod.Element, error) {
	if IsXPath(selector) {
		return p.ElementX(selector)
	}
	return p.Element(selector)
}

// IsXPath reports whether selector is an XPath expression rather than CSS.
func IsXPath(selector string) bool {
	s := strings.TrimSpace(selector)
	return strings.HasPrefix(s, "/") || strings.HasPrefix(s, "(")
}
