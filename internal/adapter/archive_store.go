package adapter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"

	m "github.com/mouse-blink/vislog/internal/model"
)

// ArchiveFile is a file copied from disk into an archive.
type ArchiveFile struct {
	Source m.Path
}

// ArchiveEntry is an in-memory text entry of an archive.
type ArchiveEntry struct {
	Name string
	Data []byte
}

// ArchiveLayout describes the complete contents of an archive to write.
type ArchiveLayout struct {
	Files   []ArchiveFile
	Entries []ArchiveEntry
}

// ArchiveStore writes and reads reproducibility archives.
type ArchiveStore interface {
	// Write creates a new archive at path, replacing any existing file.
	Write(path m.Path, layout ArchiveLayout) error
	// Read lists an archive and decodes the named version and modules entries.
	Read(path m.Path, versionEntry, modulesEntry string) (m.ArchiveContents, error)
}

// ZipArchiveStore stores archives as deflate-compressed zip files.
type ZipArchiveStore struct{}

// NewZipArchiveStore constructs a ZipArchiveStore.
func NewZipArchiveStore() *ZipArchiveStore {
	return &ZipArchiveStore{}
}

// Write implements ArchiveStore.
func (s *ZipArchiveStore) Write(path m.Path, layout ArchiveLayout) (err error) {
	// #nosec G304 - output path is chosen by the caller
	out, err := os.Create(string(path))
	if err != nil {
		return err
	}

	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	zw := zip.NewWriter(out)

	for _, file := range layout.Files {
		if err := addFile(zw, file.Source); err != nil {
			return err
		}
	}

	for _, entry := range layout.Entries {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: entry.Name, Method: zip.Deflate})
		if err != nil {
			return err
		}

		if _, err := w.Write(entry.Data); err != nil {
			return err
		}
	}

	return zw.Close()
}

// Read implements ArchiveStore.
func (s *ZipArchiveStore) Read(path m.Path, versionEntry, modulesEntry string) (m.ArchiveContents, error) {
	zr, err := zip.OpenReader(string(path))
	if err != nil {
		return m.ArchiveContents{}, err
	}

	defer func() { _ = zr.Close() }()

	contents := m.ArchiveContents{Path: path}

	for _, f := range zr.File {
		contents.Members = append(contents.Members, m.ArchiveMember{Name: f.Name, Size: f.UncompressedSize64})

		switch f.Name {
		case versionEntry:
			data, err := readMember(f)
			if err != nil {
				return m.ArchiveContents{}, err
			}

			contents.Version = string(data)
		case modulesEntry:
			data, err := readMember(f)
			if err != nil {
				return m.ArchiveContents{}, err
			}

			if len(data) > 0 {
				contents.Dependencies = strings.Split(string(data), "\n")
			}
		}
	}

	return contents, nil
}

// MemberName is the name a source file is stored under: the cleaned path
// without volume name or leading separators, using forward slashes.
func MemberName(path m.Path) string {
	p := filepath.Clean(string(path))
	p = strings.TrimPrefix(p, filepath.VolumeName(p))
	p = filepath.ToSlash(p)

	return strings.TrimLeft(p, "/")
}

func addFile(zw *zip.Writer, source m.Path) error {
	// #nosec G304 - sources come from the gathered source set
	in, err := os.Open(string(source))
	if err != nil {
		return err
	}

	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}

	header.Name = MemberName(source)
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}

	if _, err := io.Copy(w, in); err != nil {
		return fmt.Errorf("archive %s: %w", source, err)
	}

	return nil
}

func readMember(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}

	defer func() { _ = rc.Close() }()

	return io.ReadAll(rc)
}
