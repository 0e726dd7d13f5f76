package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRelease = Release{
	Owner:        "abhisek",
	Repo:         "founderfit",
	Binary:       "founderfit",
	AssetPattern: "{binary}_{version}_{os}_{arch}",
	Checksums:    "checksums.txt",
}

func TestReleaseAssetName(t *testing.T) {
	tests := []struct {
		name    string
		goos    string
		goarch  string
		want    string
		wantErr bool
	}{
		{"linux amd64", "linux", "amd64", "founderfit_1.4.0_linux_amd64.tar.gz", false},
		{"linux arm64", "linux", "arm64", "founderfit_1.4.0_linux_arm64.tar.gz", false},
		{"darwin arm64", "darwin", "arm64", "founderfit_1.4.0_darwin_arm64.tar.gz", false},
		{"windows amd64", "windows", "amd64", "founderfit_1.4.0_windows_amd64.zip", false},
		{"unsupported os", "freebsd", "amd64", "", true},
		{"unsupported arch", "linux", "386", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := testRelease.AssetName("v1.4.0", tt.goos, tt.goarch)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNoAsset)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_ValidatesRelease(t *testing.T) {
	bad := testRelease
	bad.AssetPattern = "{binary}.tar.gz"
	_, err := New(bad)
	assert.ErrorContains(t, err, "{os} and {arch}")

	bad = testRelease
	bad.Binary = ""
	_, err = New(bad)
	assert.Error(t, err)

	_, err = New(testRelease)
	assert.NoError(t, err)
}

func TestParseChecksums(t *testing.T) {
	got := parseChecksums([]byte("ABC123  founderfit_1.4.0_linux_amd64.tar.gz\nbadline\n\nfoo bar baz\ndef456  checksums.txt\n"))
	assert.Equal(t, map[string]string{
		"founderfit_1.4.0_linux_amd64.tar.gz": "abc123",
		"checksums.txt":                       "def456",
	}, got)
}

func TestVerifyChecksum(t *testing.T) {
	data := []byte("hello founder")
	sum := sha256.Sum256(data)

	assert.NoError(t, verifyChecksum(data, hex.EncodeToString(sum[:])))
	assert.ErrorIs(t, verifyChecksum(data, "00"), ErrChecksum)
	assert.ErrorIs(t, verifyChecksum(data, ""), ErrChecksum)
}

func TestExtract(t *testing.T) {
	content := []byte("#!/bin/sh\necho founderfit")

	got, err := extract(buildTarGz(t, "dist/founderfit", content), "x.tar.gz", "founderfit")
	require.NoError(t, err)
	assert.Equal(t, content, got)

	got, err = extract(buildZip(t, "founderfit.exe", content), "x.zip", "founderfit.exe")
	require.NoError(t, err)
	assert.Equal(t, content, got)

	_, err = extract(buildTarGz(t, "README.md", content), "x.tar.gz", "founderfit")
	assert.ErrorContains(t, err, "not found")
}

func TestInstall_KeepsMode(t *testing.T) {
	target := filepath.Join(t.TempDir(), "founderfit")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0o750))

	require.NoError(t, install(target, []byte("new"), false))

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)
	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o750), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(target))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestInstall_WindowsMovesOldAside(t *testing.T) {
	target := filepath.Join(t.TempDir(), "founderfit.exe")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0o755))

	require.NoError(t, install(target, []byte("new"), true))

	old, err := os.ReadFile(target + ".old")
	require.NoError(t, err)
	assert.Equal(t, []byte("old"), old)
}

// releaseServer serves a latest release whose assets point back at itself.
// files maps asset names to their bodies.
func releaseServer(t *testing.T, tag string, files map[string][]byte) *httptest.Server {
	t.Helper()
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/repos/abhisek/founderfit/releases/latest" {
			assets := ""
			for name := range files {
				if assets != "" {
					assets += ","
				}
				assets += fmt.Sprintf(`{"name":%q,"browser_download_url":%q}`, name, server.URL+"/dl/"+name)
			}
			_, _ = fmt.Fprintf(w, `{"tag_name":%q,"html_url":"https://example.com/%s","assets":[%s]}`, tag, tag, assets)
			return
		}
		body, ok := files[filepath.Base(r.URL.Path)]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestUpdate(t *testing.T) {
	binary := []byte("new-founderfit-binary")
	const asset = "founderfit_2.0.0_linux_amd64.tar.gz"
	archive := buildTarGz(t, "founderfit", binary)
	sum := sha256.Sum256(archive)
	checksums := []byte(fmt.Sprintf("%s  %s\n", hex.EncodeToString(sum[:]), asset))

	newUpdater := func(t *testing.T, server *httptest.Server, execPath string) *Updater {
		t.Helper()
		u, err := New(testRelease,
			WithBaseURL(server.URL),
			withExecPath(func() (string, error) { return execPath, nil }),
			withPlatform("linux", "amd64"),
		)
		require.NoError(t, err)
		return u
	}

	t.Run("installs the platform build", func(t *testing.T) {
		execPath := filepath.Join(t.TempDir(), "founderfit")
		require.NoError(t, os.WriteFile(execPath, []byte("old"), 0o755))
		server := releaseServer(t, "v2.0.0", map[string][]byte{asset: archive, "checksums.txt": checksums})

		var stages []Stage
		err := newUpdater(t, server, execPath).Update(context.Background(), "v1.0.0", func(p Progress) {
			stages = append(stages, p.Stage)
		})
		require.NoError(t, err)

		got, err := os.ReadFile(execPath)
		require.NoError(t, err)
		assert.Equal(t, binary, got)
		assert.Equal(t, []Stage{StageCheck, StageDownload, StageVerify, StageInstall, StageDone}, stages)
	})

	t.Run("dev build", func(t *testing.T) {
		u, err := New(testRelease)
		require.NoError(t, err)
		assert.ErrorIs(t, u.Update(context.Background(), "(devel)", nil), ErrDevBuild)
	})

	t.Run("already latest", func(t *testing.T) {
		server := releaseServer(t, "v1.0.0", nil)
		err := newUpdater(t, server, "").Update(context.Background(), "1.0.0", nil)
		assert.ErrorIs(t, err, ErrAlreadyLatest)
	})

	t.Run("platform asset missing", func(t *testing.T) {
		server := releaseServer(t, "v2.0.0", map[string][]byte{"checksums.txt": checksums})
		err := newUpdater(t, server, "").Update(context.Background(), "v1.0.0", nil)
		assert.ErrorIs(t, err, ErrNoAsset)
	})

	t.Run("checksum mismatch", func(t *testing.T) {
		execPath := filepath.Join(t.TempDir(), "founderfit")
		require.NoError(t, os.WriteFile(execPath, []byte("old"), 0o755))
		bad := []byte(fmt.Sprintf("%064d  %s\n", 0, asset))
		server := releaseServer(t, "v2.0.0", map[string][]byte{asset: archive, "checksums.txt": bad})

		err := newUpdater(t, server, execPath).Update(context.Background(), "v1.0.0", nil)
		assert.ErrorIs(t, err, ErrChecksum)

		got, err := os.ReadFile(execPath)
		require.NoError(t, err)
		assert.Equal(t, []byte("old"), got)
	})
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		current string
		tag     string
		want    bool
	}{
		{"newer release", "v1.2.0", "v1.3.0", true},
		{"same release", "v1.3.0", "v1.3.0", false},
		{"older release", "v2.0.0", "v1.9.9", false},
		{"unprefixed current", "1.2.0", "v1.10.0", true},
		{"dev build", "(devel)", "v1.0.0", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := releaseServer(t, tt.tag, nil)
			u, err := New(testRelease, WithBaseURL(server.URL))
			require.NoError(t, err)

			got, err := u.Check(context.Background(), tt.current)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.UpdateAvailable)
			assert.Equal(t, tt.tag, got.LatestVersion)
			assert.Equal(t, "https://example.com/"+tt.tag, got.ReleaseURL)
		})
	}
}

func TestCheck_Errors(t *testing.T) {
	t.Run("http error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()
		u, err := New(testRelease, WithBaseURL(server.URL))
		require.NoError(t, err)
		_, err = u.Check(context.Background(), "v1.0.0")
		assert.ErrorContains(t, err, "HTTP 403")
	})

	t.Run("bad tag", func(t *testing.T) {
		server := releaseServer(t, "nightly", nil)
		u, err := New(testRelease, WithBaseURL(server.URL))
		require.NoError(t, err)
		_, err = u.Check(context.Background(), "v1.0.0")
		assert.ErrorContains(t, err, "not a semantic version")
	})
}

func buildTarGz(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name:     name,
		Size:     int64(len(content)),
		Mode:     0o755,
		Typeflag: tar.TypeReg,
	}))
	_, err := tw.Write(content)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	return buf.Bytes()
}

func buildZip(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(name)
	require.NoError(t, err)
	_, err = w.Write(content)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
