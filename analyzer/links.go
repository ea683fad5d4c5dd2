package analyzer

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/webcheck/backend/fetcher"
	"github.com/webcheck/backend/metrics"
)

const (
	// ProbeTimeout bounds a single link probe.
	ProbeTimeout = 5 * time.Second
	// ProbeMaxRedirects is the number of redirects a probe follows.
	ProbeMaxRedirects = 5

	maxInternalProbes = 10
	maxExternalProbes = 5
)

// LinkProber decides whether a URL is reachable.
type LinkProber interface {
	Probe(ctx context.Context, link string) bool
}

// HeadProber probes links with a HEAD request.
type HeadProber struct {
	client *http.Client
}

// NewHeadProber returns a prober with a 5 second timeout that follows up to
// five redirects.
func NewHeadProber() *HeadProber {
	return &HeadProber{
		client: &http.Client{
			Timeout: ProbeTimeout,
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				if len(via) > ProbeMaxRedirects {
					return fmt.Errorf("stopped after %d redirects", ProbeMaxRedirects)
				}
				return nil
			},
		},
	}
}

// Probe reports whether link answers with a status in [200, 400).
func (p *HeadProber) Probe(ctx context.Context, link string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, link, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", fetcher.UserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 400
}

// PageLinks holds every resolved anchor of a page in document order.
// Duplicates are kept.
type PageLinks struct {
	Internal []string
	External []string
}

// CollectLinks resolves every a[href] against base and splits the results by
// hostname. Hrefs that fail to parse are skipped.
func CollectLinks(doc Document, base *url.URL) PageLinks {
	host := strings.ToLower(base.Hostname())
	links := PageLinks{
		Internal: make([]string, 0),
		External: make([]string, 0),
	}

	for _, a := range doc.Find("a[href]") {
		href, _ := a.Attr("href")
		resolved, ok := resolveLink(base, href)
		if !ok {
			continue
		}
		if strings.ToLower(resolved.Hostname()) == host {
			links.Internal = append(links.Internal, resolved.String())
		} else {
			links.External = append(links.External, resolved.String())
		}
	}
	return links
}

var hrefStripper = strings.NewReplacer("\t", "", "\n", "", "\r", "")

func resolveLink(base *url.URL, href string) (*url.URL, bool) {
	href = hrefStripper.Replace(strings.TrimSpace(href))
	if href == "" {
		return nil, false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return nil, false
	}

	resolved := base.ResolveReference(ref)
	resolved.Host = strings.ToLower(resolved.Host)
	if (resolved.Scheme == "http" || resolved.Scheme == "https") && resolved.Host != "" && resolved.Path == "" && resolved.Opaque == "" {
		resolved.Path = "/"
	}
	return resolved, true
}

// Sample picks the links that get probed: the first ten distinct internal
// links followed by the first five distinct external ones.
func (l PageLinks) Sample() []string {
	seen := make(map[string]struct{}, maxInternalProbes+maxExternalProbes)
	sample := make([]string, 0, maxInternalProbes+maxExternalProbes)

	take := func(links []string, limit int) {
		taken := 0
		for _, link := range links {
			if taken == limit {
				return
			}
			if _, dup := seen[link]; dup {
				continue
			}
			seen[link] = struct{}{}
			sample = append(sample, link)
			taken++
		}
	}
	take(l.Internal, maxInternalProbes)
	take(l.External, maxExternalProbes)
	return sample
}

// CheckLinks probes the sample concurrently and returns the broken ones in
// sample order. A link counts as internal when it appears anywhere in the
// internal list.
func CheckLinks(ctx context.Context, prober LinkProber, links PageLinks, logger *zap.Logger) BrokenLinks {
	sample := links.Sample()
	alive := make([]bool, len(sample))

	var g errgroup.Group
	for i, link := range sample {
		g.Go(func() error {
			alive[i] = prober.Probe(ctx, link)
			return nil
		})
	}
	// Probes report liveness, never an error, so Wait only joins.
	g.Wait() //nolint:errcheck

	internal := make(map[string]struct{}, len(links.Internal))
	for _, link := range links.Internal {
		internal[link] = struct{}{}
	}

	broken := BrokenLinks{
		Internal: make([]string, 0),
		External: make([]string, 0),
	}
	for i, link := range sample {
		scope := "external"
		if _, ok := internal[link]; ok {
			scope = "internal"
		}
		metrics.ObserveLinkProbe(scope, !alive[i])
		if alive[i] {
			continue
		}
		logger.Debug("broken link", zap.String("link", link), zap.String("scope", scope))
		if scope == "internal" {
			broken.Internal = append(broken.Internal, link)
		} else {
			broken.External = append(broken.External, link)
		}
	}
	return broken
}
