// Package classpath gathers class file bytes from .class files, directory
// trees and jar/zip archives, and decodes them in bulk.
package classpath

import (
	"archive/zip"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tliron/commonlog"
	"github.com/zeebo/blake3"
)

var archiveExts = map[string]bool{
	".jar": true,
	".zip": true,
	".war": true,
}

// Entry is one class file's bytes. Name is the file path, or
// "archive!/member" for classes read from a jar.
type Entry struct {
	Name string
	Data []byte
}

// Checksum is the BLAKE3-256 digest of the entry's bytes.
func (e Entry) Checksum() string {
	sum := blake3.Sum256(e.Data)
	return "blake3:" + hex.EncodeToString(sum[:])
}

// Load reads every class file reachable from path. A directory is walked
// recursively; archives found inside it are opened too. Entries are
// returned sorted by name.
func Load(path string) ([]Entry, error) {
	log := commonlog.GetLogger("cafebabe.classpath")

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	if !info.IsDir() {
		entries, err = loadFile(path)
		if err != nil {
			return nil, err
		}
		log.Debugf("loaded %d classes from %s", len(entries), path)
		return entries, nil
	}

	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isLoadable(p) {
			return nil
		}
		loaded, err := loadFile(p)
		if err != nil {
			return err
		}
		entries = append(entries, loaded...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", path, err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	log.Debugf("loaded %d classes from %s", len(entries), path)
	return entries, nil
}

func isLoadable(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".class" || archiveExts[ext]
}

func loadFile(path string) ([]Entry, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if archiveExts[ext] {
		return loadArchive(path)
	}
	if ext != ".class" {
		return nil, fmt.Errorf("unsupported file extension: %s (expected .class, .jar or .zip)", ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read class file: %w", err)
	}
	return []Entry{{Name: path, Data: data}}, nil
}

func loadArchive(path string) ([]Entry, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer r.Close()

	var entries []Entry
	for _, f := range r.File {
		if f.FileInfo().IsDir() || filepath.Ext(f.Name) != ".class" {
			continue
		}
		data, err := readMember(f)
		if err != nil {
			return nil, fmt.Errorf("read %s!/%s: %w", path, f.Name, err)
		}
		entries = append(entries, Entry{Name: path + "!/" + f.Name, Data: data})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func readMember(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
