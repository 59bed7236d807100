package cookiefile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/lightcookie"
)

// SidecarExt is appended to the PNG path to name the metadata file.
const SidecarExt = ".json"

// ErrExists is returned by Save when the cookie file is already present and
// overwriting was not requested.
var ErrExists = errors.New("cookiefile: file already exists")

// Saver writes cookies and their metadata.
type Saver struct {
	// DirMode is the mode for created folders.
	DirMode fs.FileMode

	// FileMode is the mode of written files.
	FileMode fs.FileMode
}

// NewSaver returns a saver with the usual 0755 folders and 0644 files.
func NewSaver() *Saver {
	return &Saver{DirMode: 0o755, FileMode: 0o644}
}

// Save writes buf to dir/name.png and meta to dir/name.png.json, creating
// dir when needed, and returns the PNG path. An existing PNG is replaced
// only when overwrite is set; otherwise Save fails with ErrExists and
// writes nothing.
func (s *Saver) Save(buf *lightcookie.Buffer, meta lightcookie.Metadata, dir, name string, overwrite bool) (string, error) {
	if buf == nil {
		return "", errors.New("cookiefile: nil buffer")
	}
	if err := checkName(name); err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}

	if err := os.MkdirAll(dir, s.DirMode); err != nil {
		return "", fmt.Errorf("cookiefile: %w", err)
	}

	path := filepath.Join(dir, name+".png")
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%w: %s", ErrExists, path)
		}
	}

	img, err := buf.PNG()
	if err != nil {
		return "", fmt.Errorf("cookiefile: encode %s: %w", path, err)
	}
	side, err := meta.Marshal()
	if err != nil {
		return "", fmt.Errorf("cookiefile: encode metadata: %w", err)
	}

	if err := s.writeFile(path, img); err != nil {
		return "", err
	}
	if err := s.writeFile(SidecarPath(path), side); err != nil {
		return "", err
	}

	lightcookie.Logger().Info("cookiefile: saved",
		"path", path, "resolution", buf.Size(), "overwrite", overwrite)
	return path, nil
}

// writeFile replaces path atomically.
func (s *Saver) writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".cookie-*")
	if err != nil {
		return fmt.Errorf("cookiefile: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("cookiefile: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("cookiefile: write %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), s.FileMode); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("cookiefile: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("cookiefile: %w", err)
	}
	return nil
}

func checkName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("cookiefile: invalid file name %q", name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("cookiefile: file name %q contains a path separator", name)
	}
	return nil
}

// SidecarPath returns the metadata path for a cookie PNG.
func SidecarPath(pngPath string) string {
	return pngPath + SidecarExt
}
