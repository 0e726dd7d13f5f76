package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Stage names one step of an update.
type Stage string

const (
	StageCheck    Stage = "check"
	StageDownload Stage = "download"
	StageVerify   Stage = "verify"
	StageInstall  Stage = "install"
	StageDone     Stage = "done"
)

// Progress reports one update step.
type Progress struct {
	Stage   Stage
	Message string
}

// Update installs the latest release over the running executable.
// progress may be nil.
func (u *Updater) Update(ctx context.Context, current string, progress func(Progress)) error {
	if progress == nil {
		progress = func(Progress) {}
	}
	if canonical(current) == "" {
		return ErrDevBuild
	}

	progress(Progress{StageCheck, "Checking for the latest release..."})
	res, err := u.Check(ctx, current)
	if err != nil {
		return fmt.Errorf("check for updates: %w", err)
	}
	if !res.UpdateAvailable {
		return ErrAlreadyLatest
	}

	asset, err := u.release.AssetName(res.LatestVersion, u.goos, u.goarch)
	if err != nil {
		return err
	}
	assetURL, ok := res.assets[asset]
	if !ok {
		return fmt.Errorf("%w: %s is missing from %s", ErrNoAsset, asset, res.LatestVersion)
	}
	sumsURL, ok := res.assets[u.release.Checksums]
	if !ok {
		return fmt.Errorf("%w: %s is missing from %s", ErrChecksum, u.release.Checksums, res.LatestVersion)
	}

	progress(Progress{StageDownload, fmt.Sprintf("Downloading %s...", asset)})
	archive, err := u.download(ctx, assetURL)
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}

	progress(Progress{StageVerify, "Verifying checksum..."})
	sums, err := u.download(ctx, sumsURL)
	if err != nil {
		return fmt.Errorf("download checksums: %w", err)
	}
	if err := verifyChecksum(archive, parseChecksums(sums)[asset]); err != nil {
		return err
	}

	progress(Progress{StageInstall, "Installing..."})
	bin, err := extract(archive, asset, u.release.executableName(u.goos))
	if err != nil {
		return fmt.Errorf("extract binary: %w", err)
	}
	target, err := u.execPath()
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}
	if err := install(target, bin, u.goos == "windows"); err != nil {
		return fmt.Errorf("install: %w", err)
	}

	progress(Progress{StageDone, fmt.Sprintf("Updated to %s", res.LatestVersion)})
	return nil
}

func (u *Updater) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := u.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

// parseChecksums reads "<sha256>  <name>" lines.
func parseChecksums(data []byte) map[string]string {
	sums := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 2 {
			sums[fields[1]] = strings.ToLower(fields[0])
		}
	}
	return sums
}

func verifyChecksum(data []byte, want string) error {
	if want == "" {
		return fmt.Errorf("%w: no checksum listed", ErrChecksum)
	}
	sum := sha256.Sum256(data)
	if got := hex.EncodeToString(sum[:]); got != want {
		return fmt.Errorf("%w: expected %s, got %s", ErrChecksum, want, got)
	}
	return nil
}

// extract returns the named executable from a zip or tar.gz archive.
func extract(archive []byte, asset, name string) ([]byte, error) {
	if strings.HasSuffix(asset, ".zip") {
		zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
		if err != nil {
			return nil, fmt.Errorf("open zip: %w", err)
		}
		for _, f := range zr.File {
			if filepath.Base(f.Name) != name {
				continue
			}
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer func() { _ = rc.Close() }()
			return io.ReadAll(rc)
		}
		return nil, fmt.Errorf("%q not found in archive", name)
	}

	gz, err := gzip.NewReader(bytes.NewReader(archive))
	if err != nil {
		return nil, fmt.Errorf("open gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%q not found in archive", name)
		}
		if err != nil {
			return nil, fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag == tar.TypeReg && filepath.Base(hdr.Name) == name {
			return io.ReadAll(tr)
		}
	}
}

// install writes bin next to target and renames it into place, keeping
// target's mode. A running Windows executable cannot be overwritten, so
// it is moved aside to <target>.old first.
func install(target string, bin []byte, windows bool) error {
	info, err := os.Stat(target)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+"-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(bin); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), info.Mode().Perm()); err != nil {
		return err
	}

	if windows {
		old := target + ".old"
		_ = os.Remove(old)
		if err := os.Rename(target, old); err != nil {
			return fmt.Errorf("move current binary aside: %w", err)
		}
	}
	return os.Rename(tmp.Name(), target)
}
