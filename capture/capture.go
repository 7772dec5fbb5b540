package capture

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// Device selects the emulated viewport profile.
type Device string

const (
	DeviceDesktop Device = "desktop"
	DeviceTablet  Device = "tablet"
	DeviceMobile  Device = "mobile"
)

// profile is one device emulation preset.
type profile struct {
	width, height int
	userAgent     string
	mobile        bool
}

var profiles = map[Device]profile{
	DeviceDesktop: {1920, 1080, "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36", false},
	DeviceTablet:  {768, 1024, "Mozilla/5.0 (iPad; CPU OS 14_0 like Mac OS X) AppleWebKit/605.1.15", true},
	DeviceMobile:  {375, 667, "Mozilla/5.0 (iPhone; CPU iPhone OS 14_0 like Mac OS X) AppleWebKit/605.1.15", true},
}

// profileFor returns the preset for d, falling back to desktop for unknown
// values. Input validation happens upstream; the fallback keeps this total.
func profileFor(d Device) profile {
	if p, ok := profiles[d]; ok {
		return p
	}
	return profiles[DeviceDesktop]
}

// Result is one rendered page.
type Result struct {
	HTML       string
	Screenshot []byte // full-page PNG
	Title      string
	Duration   time.Duration
}

// Capture opens a stealth tab emulating the given device, loads pageURL and
// returns the rendered HTML with a full-page screenshot. The tab is always
// closed before returning.
func (m *Manager) Capture(ctx context.Context, pageURL string, device Device) (*Result, error) {
	b := m.browserHandle()
	if b == nil {
		return nil, fmt.Errorf("capture %s: %w", pageURL, ErrUnavailable)
	}

	start := time.Now()

	page, err := stealth.Page(b)
	if err != nil {
		return nil, fmt.Errorf("capture: create tab: %w", err)
	}
	defer page.Close()

	p := profileFor(device)
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             p.width,
		Height:            p.height,
		DeviceScaleFactor: 1,
		Mobile:            p.mobile,
	}); err != nil {
		return nil, fmt.Errorf("capture: set viewport: %w", err)
	}
	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: p.userAgent}); err != nil {
		return nil, fmt.Errorf("capture: set user agent: %w", err)
	}

	navCtx, cancel := context.WithTimeout(ctx, m.cfg.NavigateTimeout)
	defer cancel()

	if err := page.Context(navCtx).Navigate(pageURL); err != nil {
		return nil, fmt.Errorf("capture: navigate %s: %w", pageURL, err)
	}
	if err := page.Context(navCtx).WaitLoad(); err != nil {
		m.cfg.Logger.Warn("capture: wait load timeout", "url", pageURL, "error", err)
	}

	// Consent banners cover content and skew the screenshot analysis.
	if clicked := acceptCookieBanner(navCtx, page); clicked {
		m.cfg.Logger.Debug("capture: dismissed cookie banner", "url", pageURL)
	}

	// Let late scripts and the banner dismissal settle.
	select {
	case <-time.After(m.cfg.SettleDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	htmlRes, err := page.Context(ctx).Eval(`() => document.documentElement.outerHTML`)
	if err != nil {
		return nil, fmt.Errorf("capture: read DOM: %w", err)
	}

	shot, err := page.Context(ctx).Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("capture: screenshot: %w", err)
	}

	titleRes, err := page.Context(ctx).Eval(`() => document.title`)
	if err != nil {
		return nil, fmt.Errorf("capture: read title: %w", err)
	}

	return &Result{
		HTML:       htmlRes.Value.Str(),
		Screenshot: shot,
		Title:      titleRes.Value.Str(),
		Duration:   time.Since(start),
	}, nil
}

// cookieConsentScript clicks the first visible element matching the common
// consent-button shapes. Best effort: returns whether anything was clicked.
const cookieConsentScript = `() => {
	const selectors = [
		'button[id*="accept"]',
		'button[id*="cookie"]',
		'button[class*="accept"]',
		'button[class*="cookie"]',
		'[data-testid="accept-cookies"]',
		'.cookie-accept',
		'#cookie-accept',
	];
	for (const sel of selectors) {
		const el = document.querySelector(sel);
		if (el && el.offsetParent !== null) {
			el.click();
			return true;
		}
	}
	const accepts = ['accept', 'agree', 'ok', '同意', '承認'];
	for (const btn of document.querySelectorAll('button')) {
		const text = (btn.textContent || '').trim().toLowerCase();
		if (accepts.includes(text) && btn.offsetParent !== null) {
			btn.click();
			return true;
		}
	}
	return false;
}`

func acceptCookieBanner(ctx context.Context, page *rod.Page) bool {
	res, err := page.Context(ctx).Eval(cookieConsentScript)
	if err != nil {
		return false
	}
	return res.Value.Bool()
}
