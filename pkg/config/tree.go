package config

import (
	"fmt"
	"os"
	"path"

	"github.com/marmos91/fusekit/pkg/vfs"
	"github.com/marmos91/fusekit/pkg/vfs/static"
)

// BuildTree assembles the configured static tree into the registry.
//
// The root directory is bound as the registry root; every declared file
// becomes a static file resource and intermediate directories are
// created implicitly from the paths. Call Validate before this: the
// builder assumes paths are absolute and modes parse.
//
// Parameters:
//   - cfg: Configuration holding the tree declaration
//   - reg: Registry to populate (usually freshly created)
//
// Returns:
//   - error: Content loading or tree assembly error
func BuildTree(cfg *Config, reg *vfs.Registry) error {
	root := static.NewDirectory(vfs.NewDirAttr(vfs.AttrOpts{}))
	reg.SetRoot(vfs.NewDirectoryResource(root))

	dirs := map[string]*static.Directory{"/": root}
	files := make(map[string]struct{}, len(cfg.Tree))

	for i, entry := range cfg.Tree {
		clean := path.Clean(entry.Path)

		if _, isDir := dirs[clean]; isDir {
			return fmt.Errorf("tree entry %d: %s is already a directory", i, clean)
		}
		files[clean] = struct{}{}

		parent, err := ensureDir(reg, dirs, files, path.Dir(clean))
		if err != nil {
			return fmt.Errorf("tree entry %d (%s): %w", i, clean, err)
		}

		content, err := entryContent(entry)
		if err != nil {
			return fmt.Errorf("tree entry %d (%s): %w", i, clean, err)
		}

		modeStr := entry.Mode
		if modeStr == "" {
			modeStr = "0444"
		}
		mode, err := ParseMode(modeStr)
		if err != nil {
			return fmt.Errorf("tree entry %d (%s): %w", i, clean, err)
		}

		file := static.NewFile(vfs.NewFileAttr(vfs.AttrOpts{
			Mode: &mode,
			UID:  entry.UID,
			GID:  entry.GID,
		}))
		file.SetContent(content)

		ino := reg.Register(vfs.NewFileResource(file))
		parent.Bind(path.Base(clean), ino)
	}

	return nil
}

// ensureDir walks the directory chain down to p, creating and
// registering any missing intermediate directories.
func ensureDir(reg *vfs.Registry, dirs map[string]*static.Directory, files map[string]struct{}, p string) (*static.Directory, error) {
	if d, ok := dirs[p]; ok {
		return d, nil
	}
	if _, isFile := files[p]; isFile {
		return nil, fmt.Errorf("%s is already a file", p)
	}

	parent, err := ensureDir(reg, dirs, files, path.Dir(p))
	if err != nil {
		return nil, err
	}

	d := static.NewDirectory(vfs.NewDirAttr(vfs.AttrOpts{}))
	ino := reg.Register(vfs.NewDirectoryResource(d))
	parent.Bind(path.Base(p), ino)
	dirs[p] = d

	return d, nil
}

// entryContent resolves the content source of a tree entry.
func entryContent(entry TreeEntry) ([]byte, error) {
	if entry.ContentFile != "" {
		data, err := os.ReadFile(entry.ContentFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read content file: %w", err)
		}
		return data, nil
	}
	return []byte(entry.Content), nil
}
