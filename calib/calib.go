// Calibration coefficient files, fetched from the asset-management repository and cached on
// disk.  A coefficients file is keyed by the vendor asset UID; it is fetched at most once and
// reused by every later processing run.

package calib

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path"

	"cgharvest/status"
)

// Number of GET attempts before a fetch is abandoned.  The repository host throttles
// occasionally; a couple of immediate retries is usually enough.
const maxAttempts = 3

type Cache struct {
	// Directory holding cached coefficient files.
	Dir string

	// Base URL of the remote calibration repository.
	BaseURL string

	// Client for fetching; http.DefaultClient when nil.
	Client *http.Client

	Log status.Logger
}

// Resolve returns the local path of the coefficients file for uid, fetching it from the remote
// repository when it is not yet cached.  `url` is nonempty and `fetched` is true when a remote
// fetch happened on this call.

func (c *Cache) Resolve(uid string) (coeffFile string, url string, fetched bool, err error) {
	coeffFile = path.Join(c.Dir, uid+".csv")
	if info, statErr := os.Stat(coeffFile); statErr == nil && info.Size() > 0 {
		return coeffFile, "", false, nil
	}

	url = c.BaseURL + "/" + uid + ".csv"
	if c.Log != nil {
		c.Log.Infof("Fetching calibration coefficients for %s from %s", uid, url)
	}

	err = os.MkdirAll(c.Dir, 0755)
	if err != nil {
		return "", "", false, err
	}
	body, err := c.fetch(url)
	if err != nil {
		return "", "", false, fmt.Errorf("While fetching coefficients for %s: %w", uid, err)
	}

	// Write-then-rename so a failed fetch never leaves a truncated file for the next run to
	// mistake for a cached copy.
	tmp := coeffFile + ".tmp"
	err = os.WriteFile(tmp, body, 0644)
	if err == nil {
		err = os.Rename(tmp, coeffFile)
	}
	if err != nil {
		os.Remove(tmp)
		return "", "", false, err
	}
	return coeffFile, url, true, nil
}

func (c *Cache) fetch(url string) ([]byte, error) {
	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err := client.Get(url)
		if err != nil {
			lastErr = err
			continue
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if resp.StatusCode >= 300 {
			lastErr = fmt.Errorf("HTTP status=%d", resp.StatusCode)
			// A missing asset will stay missing, don't hammer the host.
			if resp.StatusCode == http.StatusNotFound {
				break
			}
			continue
		}
		if err != nil {
			lastErr = err
			continue
		}
		return body, nil
	}
	return nil, lastErr
}
