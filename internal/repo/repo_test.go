package repo

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"

	"github.com/danieljhkim/sbplan/internal/fsops"
)

const sampleIndex = `SLACKBUILD NAME: ffmpeg
SLACKBUILD LOCATION: ./multimedia/ffmpeg
SLACKBUILD FILES: README ffmpeg.SlackBuild ffmpeg.info slack-desc
SLACKBUILD VERSION: 4.4.4
SLACKBUILD DOWNLOAD: https://ffmpeg.org/releases/ffmpeg-4.4.4.tar.xz
SLACKBUILD DOWNLOAD_x86_64:
SLACKBUILD MD5SUM: 0123456789abcdef
SLACKBUILD MD5SUM_x86_64:
SLACKBUILD REQUIRES: lame x264
SLACKBUILD SHORT DESC: ffmpeg (Video converter)

SLACKBUILD NAME: lame
SLACKBUILD LOCATION: ./audio/lame
SLACKBUILD VERSION: 3.100
SLACKBUILD REQUIRES:
SLACKBUILD SHORT DESC: lame (LAME Ain't an MP3 Encoder)

SLACKBUILD NAME: x264
SLACKBUILD LOCATION: ./multimedia/x264
SLACKBUILD VERSION: 20230712
SLACKBUILD REQUIRES: %README%
SLACKBUILD SHORT DESC: x264 (H.264/AVC encoder)
`

func TestParseIndex(t *testing.T) {
	entries, err := ParseIndex(strings.NewReader(sampleIndex))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, IndexEntry{
		Name:        "ffmpeg",
		Category:    "multimedia",
		Version:     "4.4.4",
		Requires:    []string{"lame", "x264"},
		Description: "Video converter",
	}, entries[0])

	assert.Equal(t, "audio", entries[1].Category)
	assert.Empty(t, entries[1].Requires)
	assert.Equal(t, "LAME Ain't an MP3 Encoder", entries[1].Description)

	assert.Equal(t, []string{"%README%"}, entries[2].Requires)
}

func TestParseIndex_CRLFAndMissingTrailingBlank(t *testing.T) {
	input := "SLACKBUILD NAME: a\r\nSLACKBUILD VERSION: 1\r\nSLACKBUILD REQUIRES: b\r\n\r\nSLACKBUILD NAME: b\r\nSLACKBUILD VERSION: 2"
	entries, err := ParseIndex(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, []string{"b"}, entries[0].Requires)
	assert.Equal(t, "2", entries[1].Version)
}

func TestParseIndex_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"field before name", "SLACKBUILD VERSION: 1\n"},
		{"empty name", "SLACKBUILD NAME:\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseIndex(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, ErrMalformedIndex)
		})
	}
}

func TestShortDesc(t *testing.T) {
	assert.Equal(t, "Video converter", shortDesc("ffmpeg", "ffmpeg (Video converter)"))
	assert.Equal(t, "something else", shortDesc("ffmpeg", "something else"))
	assert.Equal(t, "ffmpeg (unterminated", shortDesc("ffmpeg", "ffmpeg (unterminated"))
}

func TestCategoryOf(t *testing.T) {
	assert.Equal(t, "multimedia", categoryOf("./multimedia/ffmpeg"))
	assert.Equal(t, "development", categoryOf("development/go"))
	assert.Equal(t, "", categoryOf("ffmpeg"))
}

func writeCompressed(t *testing.T, dir, name string) string {
	t.Helper()
	var buf bytes.Buffer

	switch filepath.Ext(name) {
	case ".gz":
		w := gzip.NewWriter(&buf)
		_, err := w.Write([]byte(sampleIndex))
		require.NoError(t, err)
		require.NoError(t, w.Close())
	case ".xz":
		w, err := xz.NewWriter(&buf)
		require.NoError(t, err)
		_, err = w.Write([]byte(sampleIndex))
		require.NoError(t, err)
		require.NoError(t, w.Close())
	default:
		buf.WriteString(sampleIndex)
	}

	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, buf.Bytes(), 0644))
	return p
}

func TestOpenIndex(t *testing.T) {
	fs := fsops.NewRealFS()

	for _, name := range []string{"SLACKBUILDS.TXT", "SLACKBUILDS.TXT.gz", "SLACKBUILDS.TXT.xz"} {
		t.Run(name, func(t *testing.T) {
			p := writeCompressed(t, t.TempDir(), name)

			r, err := OpenIndex(fs, p)
			require.NoError(t, err)
			entries, err := ParseIndex(r)
			require.NoError(t, err)
			require.NoError(t, r.Close())

			assert.Len(t, entries, 3)
		})
	}
}

func TestOpenIndex_Errors(t *testing.T) {
	fs := fsops.NewRealFS()
	dir := t.TempDir()

	_, err := OpenIndex(fs, filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)

	bogus := filepath.Join(dir, "bogus.gz")
	require.NoError(t, os.WriteFile(bogus, []byte("not gzip"), 0644))
	_, err = OpenIndex(fs, bogus)
	assert.Error(t, err)
}

func TestParsePackageID(t *testing.T) {
	tests := []struct {
		id   string
		want InstalledPackage
		ok   bool
	}{
		{"ffmpeg-4.4.4-x86_64-1_SBo", InstalledPackage{"ffmpeg", "4.4.4", "x86_64", "1_SBo"}, true},
		{"python3-build-1.0.3-noarch-2_SBo", InstalledPackage{"python3-build", "1.0.3", "noarch", "2_SBo"}, true},
		{"aaa_base-15.0-x86_64-3", InstalledPackage{"aaa_base", "15.0", "x86_64", "3"}, true},
		{"not-a-package", InstalledPackage{}, false},
		{"-1.0-x86_64-1", InstalledPackage{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, ok := ParsePackageID(tt.id)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func writePackageLog(t *testing.T, ids ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, id := range ids {
		require.NoError(t, os.WriteFile(filepath.Join(dir, id), []byte("PACKAGE NAME: "+id+"\n"), 0644))
	}
	return dir
}

func TestReadInstalled(t *testing.T) {
	dir := writePackageLog(t,
		"ffmpeg-4.4.1-x86_64-1_SBo",
		"lame-3.100-x86_64-1_SBo",
		"bash-5.2.015-x86_64-1",
		"README",
	)
	fs := fsops.NewRealFS()

	sbo, err := ReadInstalled(fs, dir, DefaultTag)
	require.NoError(t, err)
	require.Len(t, sbo, 2)
	assert.Equal(t, "ffmpeg", sbo[0].Name)
	assert.Equal(t, "lame", sbo[1].Name)

	all, err := ReadInstalled(fs, dir, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = ReadInstalled(fs, filepath.Join(dir, "nope"), DefaultTag)
	assert.Error(t, err)
}

func TestIsNewer(t *testing.T) {
	tests := []struct {
		installed, available string
		want                 bool
	}{
		{"4.4.1", "4.4.4", true},
		{"4.4.4", "4.4.4", false},
		{"4.4.4", "4.4.1", false},
		{"3.99", "3.100", true},
		{"20220101", "20230712", true},
		{"git20220101", "git20230712", true},
		{"git20230712", "git20230712", false},
		{"", "1.0", false},
		{"1.0", "", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsNewer(tt.installed, tt.available), "%s -> %s", tt.installed, tt.available)
	}
}

func TestLoad(t *testing.T) {
	indexPath := writeCompressed(t, t.TempDir(), "SLACKBUILDS.TXT.gz")
	logDir := writePackageLog(t,
		"ffmpeg-4.4.1-x86_64-1_SBo",
		"x264-20230712-x86_64-1_SBo",
		"oldtool-1.0-x86_64-1_SBo",
		"bash-5.2.015-x86_64-1",
	)

	cat, err := Load(fsops.NewRealFS(), Options{
		IndexPath:    indexPath,
		InstalledDir: logDir,
		Tag:          DefaultTag,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"ffmpeg", "lame", "oldtool", "x264"}, cat.Names())

	ffmpeg, ok := cat.Lookup("ffmpeg")
	require.True(t, ok)
	assert.True(t, ffmpeg.Installed)
	assert.True(t, ffmpeg.Upgradable)
	assert.Equal(t, "4.4.1", ffmpeg.InstalledVersion)
	assert.Equal(t, "4.4.4", ffmpeg.AvailableVersion)

	x264, _ := cat.Lookup("x264")
	assert.True(t, x264.Installed)
	assert.False(t, x264.Upgradable)

	lame, _ := cat.Lookup("lame")
	assert.False(t, lame.Installed)

	oldtool, _ := cat.Lookup("oldtool")
	assert.True(t, oldtool.Installed)
	assert.Empty(t, oldtool.Requires)

	_, ok = cat.Lookup("bash")
	assert.False(t, ok, "untagged packages are not SlackBuild installs")
}

func TestLoad_Errors(t *testing.T) {
	fs := fsops.NewRealFS()

	_, err := Load(fs, Options{})
	assert.ErrorIs(t, err, ErrNoIndex)

	indexPath := writeCompressed(t, t.TempDir(), "SLACKBUILDS.TXT")
	_, err = Load(fs, Options{IndexPath: indexPath, InstalledDir: filepath.Join(t.TempDir(), "missing")})
	assert.Error(t, err)
}

func TestMerge_DuplicateIndexEntries(t *testing.T) {
	pkgs := Merge([]IndexEntry{
		{Name: "a", Version: "1"},
		{Name: "a", Version: "2"},
	}, nil)

	require.Len(t, pkgs, 1)
	assert.Equal(t, "1", pkgs[0].AvailableVersion)
}
