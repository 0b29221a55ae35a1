package browser

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Renderer loads pages in a headless Chromium instance. Every RenderHTML call
// launches its own browser and tears it down before returning, so concurrent
// extractions cannot leak state into each other.
type Renderer struct {
	headless    bool
	waitTimeout time.Duration
	logger      *slog.Logger
}

// NewRenderer creates a renderer. waitTimeout bounds the wait for the
// readiness selector after navigation.
func NewRenderer(headless bool, waitTimeout time.Duration, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		headless:    headless,
		waitTimeout: waitTimeout,
		logger:      logger,
	}
}

// RenderHTML navigates to pageURL, waits until waitSelector matches an
// element or the wait timeout elapses, and returns the rendered document.
// The browser session is released on every path; driver panics are converted
// to errors.
func (r *Renderer) RenderHTML(ctx context.Context, pageURL, waitSelector string) (html string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("browser session panic: %v", rec)
		}
	}()

	l := launcher.New().
		Headless(r.headless).
		NoSandbox(true).
		Leakless(false)

	controlURL, err := l.Launch()
	if err != nil {
		return "", fmt.Errorf("launch browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		l.Kill()
		return "", fmt.Errorf("connect browser: %w", err)
	}
	defer func() {
		// Release is unconditional, the caller may already have given up.
		_ = b.Close()
		l.Cleanup()
	}()

	page, err := b.Page(proto.TargetCreateTarget{URL: pageURL})
	if err != nil {
		return "", fmt.Errorf("open page %s: %w", pageURL, err)
	}

	page = page.Timeout(r.waitTimeout)
	if _, err := page.Element(waitSelector); err != nil {
		return "", fmt.Errorf("wait for %q on %s: %w", waitSelector, pageURL, err)
	}

	doc, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("read page html: %w", err)
	}

	r.logger.Debug("page rendered", "url", pageURL, "bytes", len(doc))
	return doc, nil
}
