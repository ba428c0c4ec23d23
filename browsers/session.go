package browsers

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/reusee/strudo/logs"
	"github.com/reusee/strudo/strudoconfigs"
)

const readyTimeout = 90 * time.Second

// Session is one headless Chromium tab with a Strudel harness loaded and
// window.strudelReady observed true.
type Session struct {
	tabCtx      context.Context
	cancels     []context.CancelFunc
	harnessPath string
}

type NewSession func(ctx context.Context, harness string) (*Session, error)

func (Module) NewSession(
	browserPath strudoconfigs.BrowserPath,
	bundleURL strudoconfigs.BundleURL,
	logger logs.Logger,
) NewSession {
	return func(ctx context.Context, harness string) (_ *Session, err error) {

		file, err := os.CreateTemp("", "strudo-harness-*.html")
		if err != nil {
			return nil, err
		}
		harnessPath := file.Name()
		_, err = file.WriteString(resolveBundle(harness, string(bundleURL)))
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			os.Remove(harnessPath)
			return nil, err
		}

		opts := append(
			chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("autoplay-policy", "no-user-gesture-required"),
		)
		if browserPath != "" {
			opts = append(opts, chromedp.ExecPath(string(browserPath)))
		}

		allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
		tabCtx, cancelTab := chromedp.NewContext(allocCtx)
		session := &Session{
			tabCtx: tabCtx,
			cancels: []context.CancelFunc{
				cancelTab,
				cancelAlloc,
			},
			harnessPath: harnessPath,
		}
		defer func() {
			if err != nil {
				session.Close()
			}
		}()

		logger.InfoContext(ctx, "starting headless browser",
			"harness", harnessPath,
		)

		var ready bool
		err = chromedp.Run(tabCtx,
			chromedp.Navigate("file://"+harnessPath),
			chromedp.Poll("window.strudelReady === true", &ready,
				chromedp.WithPollingTimeout(readyTimeout),
			),
		)
		if err != nil {
			return nil, fmt.Errorf("start headless browser (is Chromium installed?): %w", err)
		}

		return session, nil
	}
}

// Eval evaluates a promise-returning expression and decodes the resolved
// value into result.
func (s *Session) Eval(expr string, result any) error {
	return chromedp.Run(s.tabCtx,
		chromedp.Evaluate(expr, result,
			func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
				return p.WithAwaitPromise(true)
			},
		),
	)
}

func (s *Session) Close() {
	for _, cancel := range s.cancels {
		cancel()
	}
	if s.harnessPath != "" {
		os.Remove(s.harnessPath)
		s.harnessPath = ""
	}
}
