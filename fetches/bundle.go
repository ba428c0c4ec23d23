package fetches

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/reusee/strudo/logs"
	"github.com/reusee/strudo/nets"
)

const DefaultBundleDest = "assets/vendor/strudel-web.js"

// FetchBundle downloads the @strudel/web bundle so rendering can run
// offline, pointed at by the bundle_url config.
type FetchBundle func(ctx context.Context, url string, dest string) error

func (Module) FetchBundle(
	client nets.HTTPClient,
	logger logs.Logger,
) FetchBundle {
	return func(ctx context.Context, url string, dest string) error {

		if dest == "" {
			dest = DefaultBundleDest
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("fetch bundle: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("fetch bundle: %s returned %s", url, resp.Status)
		}

		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return err
		}
		file, err := os.Create(dest)
		if err != nil {
			return err
		}
		size, err := io.Copy(file, resp.Body)
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			os.Remove(dest)
			return err
		}

		logger.InfoContext(ctx, "strudel bundle fetched",
			"url", url,
			"dest", dest,
			"bytes", size,
		)
		return nil
	}
}
