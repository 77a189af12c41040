package badge

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontSize is the size, in pixels, of badge text.
const FontSize = 11

// DefaultFontNames are the font files looked up in the system font store,
// in order of preference. shields.io measures text with Verdana.
var DefaultFontNames = []string{"verdana.ttf", "DejaVuSans.ttf"}

// FontSource provides a font face used to measure badge text.
type FontSource interface {
	Face(size float64) (font.Face, error)
	String() string
}

// FontResolutionError is returned when no font source could provide a face.
type FontResolutionError struct {
	Attempts []error
}

func (e *FontResolutionError) Error() string {
	if len(e.Attempts) == 0 {
		return "no font source configured"
	}
	msgs := make([]string, 0, len(e.Attempts))
	for _, err := range e.Attempts {
		msgs = append(msgs, err.Error())
	}
	return "no usable font: " + strings.Join(msgs, "; ")
}

func (e *FontResolutionError) Unwrap() []error { return e.Attempts }

// ResolveFace returns the face of the first source that provides one.
func ResolveFace(size float64, sources ...FontSource) (font.Face, error) {
	var attempts []error
	for _, src := range sources {
		face, err := src.Face(size)
		if err == nil {
			return face, nil
		}
		attempts = append(attempts, fmt.Errorf("%s: %w", src, err))
	}
	return nil, &FontResolutionError{Attempts: attempts}
}

func parseFace(data []byte, size float64) (font.Face, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	// 72 DPI makes the size a pixel size
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// SystemFont looks up a font file by name in the font directories of the
// host. Names are matched case-insensitively and tried in order.
type SystemFont struct {
	Names []string
	Dirs  []string
}

func (s SystemFont) String() string { return "system font store" }

// Face implements FontSource.
func (s SystemFont) Face(size float64) (font.Face, error) {
	names := s.Names
	if len(names) == 0 {
		names = DefaultFontNames
	}
	dirs := s.Dirs
	if len(dirs) == 0 {
		dirs = systemFontDirs()
	}

	found := make(map[string]string)
	for _, dir := range dirs {
		_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// unreadable directories are skipped
				return nil
			}
			if !d.IsDir() {
				key := strings.ToLower(d.Name())
				if _, ok := found[key]; !ok {
					found[key] = path
				}
			}
			return nil
		})
	}

	for _, name := range names {
		if path, ok := found[strings.ToLower(name)]; ok {
			return FileFont{Path: path}.Face(size)
		}
	}
	return nil, fmt.Errorf("none of %s found in %s", strings.Join(names, ", "), strings.Join(dirs, ", "))
}

func systemFontDirs() []string {
	var dirs []string
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "windows":
		dirs = append(dirs, filepath.Join(os.Getenv("WINDIR"), "Fonts"))
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			dirs = append(dirs, filepath.Join(local, "Microsoft", "Windows", "Fonts"))
		}
	case "darwin":
		dirs = append(dirs, "/Library/Fonts", "/System/Library/Fonts")
		if home != "" {
			dirs = append(dirs, filepath.Join(home, "Library", "Fonts"))
		}
	default:
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			dirs = append(dirs, filepath.Join(xdg, "fonts"))
		}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, ".local", "share", "fonts"), filepath.Join(home, ".fonts"))
		}
		dirs = append(dirs, "/usr/local/share/fonts", "/usr/share/fonts")
	}
	return dirs
}

// FileFont loads a TrueType or OpenType font from an explicit path.
type FileFont struct {
	Path string
}

func (f FileFont) String() string { return "font file " + f.Path }

// Face implements FontSource.
func (f FileFont) Face(size float64) (font.Face, error) {
	if f.Path == "" {
		return nil, errors.New("no font path configured")
	}
	data, err := os.ReadFile(f.Path) //nolint:gosec // path is from configuration
	if err != nil {
		return nil, err
	}
	return parseFace(data, size)
}

// BundledFont is the Go Regular font compiled into the binary, used when no
// system font is available.
type BundledFont struct{}

func (BundledFont) String() string { return "bundled font" }

// Face implements FontSource.
func (BundledFont) Face(size float64) (font.Face, error) {
	return parseFace(goregular.TTF, size)
}

// StaticFace always provides the same face, whatever the size.
type StaticFace struct {
	F font.Face
}

func (s StaticFace) String() string { return "static face" }

// Face implements FontSource.
func (s StaticFace) Face(float64) (font.Face, error) {
	if s.F == nil {
		return nil, errors.New("no face")
	}
	return s.F, nil
}
