package ideaxml

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/beevik/etree"
	"github.com/creachadair/atomicfile"
)

// DefaultDocument is written for settings files that do not exist yet.
const DefaultDocument = `<?xml version="1.0" encoding="UTF-8"?>
<project version="4">
</project>
`

var (
	// ErrParse is returned for malformed documents and fragments.
	ErrParse = errors.New("malformed xml")
	// ErrNoRoot is returned for documents without a root element.
	ErrNoRoot = errors.New("xml document has no root element")
)

const defaultFileMode fs.FileMode = 0o644

// Parse builds a mutable document tree from raw XML.
func Parse(data []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if doc.Root() == nil {
		return nil, ErrNoRoot
	}
	return doc, nil
}

// Read parses path, falling back to defaultXML when the file does not exist.
// Nothing is written; created reports whether the fallback was used.
func Read(path, defaultXML string) (doc *etree.Document, created bool, err error) {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		data, created = []byte(defaultXML), true
	case err != nil:
		return nil, false, fmt.Errorf("read %s: %w", path, err)
	}

	doc, err = Parse(data)
	if err != nil {
		return nil, created, fmt.Errorf("%s: %w", path, err)
	}
	return doc, created, nil
}

// Load writes defaultXML to path when the file is missing, then parses the
// file. The parent directory is created if needed.
func Load(path, defaultXML string) (*etree.Document, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", filepath.Dir(path), err)
		}
		if err := atomicfile.WriteData(path, []byte(defaultXML), defaultFileMode); err != nil {
			return nil, fmt.Errorf("write default %s: %w", path, err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	doc, _, err := Read(path, defaultXML)
	return doc, err
}

// Render serializes doc exactly as Save would write it. Whitespace inside
// attribute values is written as character references so readers do not
// normalize it to spaces, and quotes in text are left unescaped.
func Render(doc *etree.Document) ([]byte, error) {
	doc.WriteSettings.CanonicalAttrVal = true
	doc.WriteSettings.CanonicalText = true

	data, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serialize xml: %w", err)
	}
	return data, nil
}

// Save replaces path with the serialized document. The write is atomic and
// keeps the permissions of an existing file.
func Save(doc *etree.Document, path string) error {
	data, err := Render(doc)
	if err != nil {
		return err
	}

	mode := defaultFileMode
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}

	if err := atomicfile.WriteData(path, data, mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
