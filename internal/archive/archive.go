package archive

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Directory and file patterns excluded from code bundles at any depth.
// Version-control metadata and bytecode caches are never needed by the
// workload and can be large.
var (
	excludedDirs     = map[string]struct{}{".git": {}, "__pycache__": {}}
	excludedSuffixes = []string{".pyc"}
)

// Create packages sourceDir into a gzip-compressed tarball in the
// system temp directory and returns its path. Entries are rooted at the
// base name of sourceDir, mirroring `tar -C parent dir`. The caller
// owns the returned file and must remove it.
func Create(ctx context.Context, sourceDir string) (string, error) {
	absSource, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve source path: %w", err)
	}

	info, err := os.Stat(absSource)
	if err != nil {
		return "", fmt.Errorf("failed to stat source tree: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("source path %s is not a directory", sourceDir)
	}

	out, err := os.CreateTemp("", "rllm-code-*.tar.gz")
	if err != nil {
		return "", fmt.Errorf("failed to create temp archive: %w", err)
	}

	if err := writeArchive(ctx, out, absSource); err != nil {
		out.Close()
		os.Remove(out.Name())
		return "", err
	}

	if err := out.Close(); err != nil {
		os.Remove(out.Name())
		return "", fmt.Errorf("failed to close archive: %w", err)
	}

	return out.Name(), nil
}

func writeArchive(ctx context.Context, out *os.File, absSource string) error {
	gzw := gzip.NewWriter(out)
	tw := tar.NewWriter(gzw)

	root := filepath.Base(absSource)

	walkErr := filepath.WalkDir(absSource, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(absSource, p)
		if err != nil {
			return err
		}

		if d.IsDir() {
			if _, skip := excludedDirs[d.Name()]; skip && rel != "." {
				return filepath.SkipDir
			}
		} else if excludedFile(d.Name()) {
			return nil
		}

		name := root
		if rel != "." {
			name = path.Join(root, filepath.ToSlash(rel))
		}

		return writeEntry(tw, p, name, d)
	})
	if walkErr != nil {
		return fmt.Errorf("failed to archive source tree: %w", walkErr)
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("failed to finalize tar stream: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return fmt.Errorf("failed to finalize gzip stream: %w", err)
	}
	return nil
}

func writeEntry(tw *tar.Writer, p, name string, d fs.DirEntry) error {
	info, err := d.Info()
	if err != nil {
		return err
	}

	link := ""
	if info.Mode()&fs.ModeSymlink != 0 {
		if link, err = os.Readlink(p); err != nil {
			return err
		}
	}

	hdr, err := tar.FileInfoHeader(info, link)
	if err != nil {
		return err
	}
	hdr.Name = name
	if info.IsDir() {
		hdr.Name += "/"
	}

	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return nil
	}

	f, err := os.Open(p)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(tw, f); err != nil {
		return fmt.Errorf("failed to archive %s: %w", name, err)
	}
	return nil
}

func excludedFile(name string) bool {
	for _, suffix := range excludedSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// List returns the entry names of a gzip-compressed tarball.
func List(archivePath string) ([]string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close()

	gzr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read gzip stream: %w", err)
	}
	defer gzr.Close()

	tr := tar.NewReader(gzr)

	var names []string
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tar stream: %w", err)
		}
		names = append(names, hdr.Name)
	}
	return names, nil
}

// CountEntries returns how many entries of a gzip-compressed tarball
// contain substr in their name. Used to sanity-check that an expected
// subdirectory made it into the bundle.
func CountEntries(archivePath, substr string) (int, error) {
	names, err := List(archivePath)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, name := range names {
		if strings.Contains(name, substr) {
			count++
		}
	}
	return count, nil
}
