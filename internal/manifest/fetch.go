// Copyright © Rantau Kemiding Homestay, 2026.

// This file is part of Homestay.
//
// Homestay is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Homestay is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Homestay.  If not, see <https://www.gnu.org/licenses/>.

package manifest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// maximum manifest size accepted
const maxManifest = 4 * 1024 * 1024

// Fetcher reads the manifest from a URL. There is no retry and no caching.
type Fetcher struct {
	Client *http.Client
	URL    string
	Now    func() time.Time // for the cache-buster, defaults to time.Now
}

// Result is a loaded manifest.
type Result struct {
	Images  []Image
	Fetched int // entries in the manifest, including invalid ones
	Status  int // HTTP status, when a response was received
}

// Fetch returns the manifest body, requested with a timestamp query so that no cached copy is used.
func (f *Fetcher) Fetch(ctx context.Context) (body []byte, status int, err error) {

	u, err := f.requestURL()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, fmt.Errorf("%w: %s", ErrStatus, resp.Status)
	}

	body, err = io.ReadAll(io.LimitReader(resp.Body, maxManifest))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	return body, resp.StatusCode, nil
}

// Load fetches, parses and filters the manifest.
// On error, the result still reports what was known, for diagnostics.
func (f *Fetcher) Load(ctx context.Context) (*Result, error) {

	body, status, err := f.Fetch(ctx)
	r := &Result{Status: status}
	if err != nil {
		return r, err
	}

	entries, err := Parse(body)
	if err != nil {
		return r, err
	}
	r.Fetched = len(entries)

	r.Images, err = Accept(entries)
	return r, err
}

// requestURL adds the cache-buster to the manifest URL.
func (f *Fetcher) requestURL() (string, error) {

	u, err := url.Parse(f.URL)
	if err != nil {
		return "", err
	}

	now := time.Now
	if f.Now != nil {
		now = f.Now
	}

	q := u.Query()
	q.Set("v", strconv.FormatInt(now().UnixMilli(), 10))
	u.RawQuery = q.Encode()

	return u.String(), nil
}
