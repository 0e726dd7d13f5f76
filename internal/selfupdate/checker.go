// Package selfupdate checks GitHub releases for a newer founderfit build and
// replaces the running binary with it.
package selfupdate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	defaultAPIBaseURL = "https://api.github.com"
	defaultTimeout    = 10 * time.Second
)

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
	ErrNoAsset       = errors.New("release has no asset for this platform")
)

// Release describes where builds are published and how their archives
// are named.
type Release struct {
	Owner  string
	Repo   string
	Binary string

	// AssetPattern names the archive of one platform build, without its
	// extension. {binary}, {version}, {os} and {arch} are substituted; the
	// version carries no leading "v".
	AssetPattern string

	// Checksums names the sha256 manifest asset.
	Checksums string
}

func (r Release) validate() error {
	switch {
	case r.Owner == "" || r.Repo == "":
		return errors.New("release owner and repo are required")
	case r.Binary == "":
		return errors.New("release binary name is required")
	case !strings.Contains(r.AssetPattern, "{os}") || !strings.Contains(r.AssetPattern, "{arch}"):
		return fmt.Errorf("asset pattern %q must contain {os} and {arch}", r.AssetPattern)
	case r.Checksums == "":
		return errors.New("release checksums asset is required")
	}
	return nil
}

// AssetName returns the archive name for one platform. Windows builds
// ship as zip, the rest as tar.gz.
func (r Release) AssetName(version, goos, goarch string) (string, error) {
	switch goos {
	case "linux", "darwin", "windows":
	default:
		return "", fmt.Errorf("%w: unsupported operating system %s", ErrNoAsset, goos)
	}
	switch goarch {
	case "amd64", "arm64":
	default:
		return "", fmt.Errorf("%w: unsupported architecture %s", ErrNoAsset, goarch)
	}

	name := strings.NewReplacer(
		"{binary}", r.Binary,
		"{version}", strings.TrimPrefix(version, "v"),
		"{os}", goos,
		"{arch}", goarch,
	).Replace(r.AssetPattern)
	if goos == "windows" {
		return name + ".zip", nil
	}
	return name + ".tar.gz", nil
}

// executableName is the file the archive holds for goos.
func (r Release) executableName(goos string) string {
	if goos == "windows" {
		return r.Binary + ".exe"
	}
	return r.Binary
}

// Updater checks a Release for newer builds and installs them.
type Updater struct {
	release      Release
	client       *http.Client
	apiBaseURL   string
	goos, goarch string
	execPath     func() (string, error)
}

// Option configures an Updater.
type Option func(*Updater)

// WithBaseURL points the release API at another host.
func WithBaseURL(url string) Option {
	return func(u *Updater) { u.apiBaseURL = url }
}

// WithTimeout bounds every HTTP request.
func WithTimeout(d time.Duration) Option {
	return func(u *Updater) { u.client.Timeout = d }
}

func withExecPath(fn func() (string, error)) Option {
	return func(u *Updater) { u.execPath = fn }
}

func withPlatform(goos, goarch string) Option {
	return func(u *Updater) { u.goos, u.goarch = goos, goarch }
}

// New returns an Updater for rel.
func New(rel Release, opts ...Option) (*Updater, error) {
	if err := rel.validate(); err != nil {
		return nil, err
	}
	u := &Updater{
		release:    rel,
		client:     &http.Client{Timeout: defaultTimeout},
		apiBaseURL: defaultAPIBaseURL,
		goos:       runtime.GOOS,
		goarch:     runtime.GOARCH,
		execPath:   currentExecutable,
	}
	for _, o := range opts {
		o(u)
	}
	return u, nil
}

func currentExecutable() (string, error) {
	p, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(p)
}

// CheckResult is the outcome of comparing the running version with the
// latest release.
type CheckResult struct {
	CurrentVersion  string
	LatestVersion   string
	UpdateAvailable bool
	ReleaseURL      string

	assets map[string]string
}

type releaseInfo struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
	Assets  []struct {
		Name string `json:"name"`
		URL  string `json:"browser_download_url"`
	} `json:"assets"`
}

// Check fetches the latest release and compares it with current. A
// current version that is not semver (a development build) never reports
// an update.
func (u *Updater) Check(ctx context.Context, current string) (*CheckResult, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest",
		strings.TrimRight(u.apiBaseURL, "/"), u.release.Owner, u.release.Repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", u.release.Binary+"/"+current)

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch latest release: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("release API returned HTTP %d", resp.StatusCode)
	}

	var rel releaseInfo
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}

	cur, latest := canonical(current), canonical(rel.TagName)
	if latest == "" {
		return nil, fmt.Errorf("release tag %q is not a semantic version", rel.TagName)
	}

	res := &CheckResult{
		CurrentVersion:  current,
		LatestVersion:   rel.TagName,
		UpdateAvailable: cur != "" && semver.Compare(latest, cur) > 0,
		ReleaseURL:      rel.HTMLURL,
		assets:          make(map[string]string, len(rel.Assets)),
	}
	for _, a := range rel.Assets {
		res.assets[a.Name] = a.URL
	}
	return res, nil
}

// canonical normalises "1.2.3" and "v1.2.3" to the semver form, or ""
// when v is not a version at all.
func canonical(v string) string {
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return semver.Canonical(v)
}
