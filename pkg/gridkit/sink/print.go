package sink

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/ukaji3/gridkit-go/pkg/gridkit/models"
)

// Opener opens an HTML document in a new browsing context.
type Opener interface {
	Open(ctx context.Context, html []byte) error
}

// PrintSink hands print documents to an Opener.
type PrintSink struct {
	Opener Opener
}

// Deliver opens the document. Failing to open a context yields an error
// wrapping ErrPopupBlocked.
func (s *PrintSink) Deliver(ctx context.Context, a *models.Artifact) <-chan error {
	return Func(func(ctx context.Context, a *models.Artifact) error {
		if s.Opener == nil {
			return ErrPopupBlocked
		}
		if err := s.Opener.Open(ctx, a.Data); err != nil {
			if errors.Is(err, ErrPopupBlocked) {
				return err
			}
			return fmt.Errorf("%w: %v", ErrPopupBlocked, err)
		}
		return nil
	}).Deliver(ctx, a)
}

// RodOpener opens documents in a visible Chromium window driven over the
// DevTools protocol. The page prints itself and closes on load.
type RodOpener struct {
	// Bin is the browser binary. Empty lets the launcher find or fetch one.
	Bin string
	// Timeout bounds launching the browser and loading the document.
	Timeout time.Duration
	// Linger bounds how long the window may stay open before the browser
	// is shut down regardless.
	Linger time.Duration
}

// Open launches a browser, creates a page and loads html into it. It returns
// once the document is loaded. The browser is closed and its temporary
// profile removed when the page closes or Linger elapses.
func (o *RodOpener) Open(ctx context.Context, html []byte) error {
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	linger := o.Linger
	if linger <= 0 {
		linger = 10 * time.Minute
	}
	openCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	life, stop := context.WithTimeout(context.WithoutCancel(ctx), linger)
	detach := context.AfterFunc(openCtx, stop)

	l := launcher.New().Headless(false).Leakless(false).Context(openCtx)
	if o.Bin != "" {
		l = l.Bin(o.Bin)
	}
	controlURL, err := l.Launch()
	if err != nil {
		stop()
		return fmt.Errorf("%w: launch browser: %v", ErrPopupBlocked, err)
	}
	release := []func(){func() {
		l.Kill()
		l.Cleanup()
		stop()
	}}
	fail := func(step string, err error) error {
		releaseAfter(func() {}, release...)
		return fmt.Errorf("%w: %s: %v", ErrPopupBlocked, step, err)
	}

	browser := rod.New().ControlURL(controlURL).Context(life)
	if err := browser.Connect(); err != nil {
		return fail("connect browser", err)
	}
	release = append(release, func() { _ = browser.Close() })

	setup := browser.Context(openCtx)
	if err := (proto.TargetSetDiscoverTargets{Discover: true}).Call(setup); err != nil {
		return fail("watch targets", err)
	}
	page, err := setup.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return fail("open page", err)
	}
	closed := browser.EachEvent(func(e *proto.TargetTargetDestroyed) bool {
		return e.TargetID == page.TargetID
	})
	if err := page.SetDocumentContent(string(html)); err != nil {
		return fail("load document", err)
	}

	detach()
	releaseAfter(closed, release...)
	return nil
}

// releaseAfter calls release in reverse order on a new goroutine once wait
// returns. The returned channel is closed when every release has run.
func releaseAfter(wait func(), release ...func()) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		wait()
		for i := len(release) - 1; i >= 0; i-- {
			release[i]()
		}
	}()
	return done
}
