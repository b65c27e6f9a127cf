package static

import (
	"fmt"

	"github.com/marmos91/fusekit/pkg/vfs"
)

// Directory is a directory resource with an explicit name to inode
// binding table. Register it wrapped: vfs.NewDirectoryResource(dir).
//
// Bindings reference children by inode, not by object, so the children
// must be registered before the directory is asked about them. A
// binding pointing at an identifier the registry does not know is a
// wiring bug in the embedding application and panics when hit.
type Directory struct {
	names []string
	binds map[string]vfs.Inode
	attr  vfs.Attr
}

// NewDirectory creates an empty static directory with the given
// attributes.
func NewDirectory(attr vfs.Attr) *Directory {
	return &Directory{
		binds: make(map[string]vfs.Inode),
		attr:  attr,
	}
}

// Attr returns the configured attributes.
func (d *Directory) Attr() vfs.Attr {
	return d.attr
}

// SetAttr replaces the configured attributes.
func (d *Directory) SetAttr(attr vfs.Attr) {
	d.attr = attr
}

// Bind adds name as a child referencing ino. Binding an existing name
// replaces its target and keeps its listing position.
func (d *Directory) Bind(name string, ino vfs.Inode) {
	if _, exists := d.binds[name]; !exists {
		d.names = append(d.names, name)
	}
	d.binds[name] = ino
}

// Unbind removes the binding for name and returns the inode it pointed
// at, if any. The child itself stays registered.
func (d *Directory) Unbind(name string) (vfs.Inode, bool) {
	ino, ok := d.binds[name]
	if !ok {
		return 0, false
	}
	delete(d.binds, name)
	for i, n := range d.names {
		if n == name {
			d.names = append(d.names[:i], d.names[i+1:]...)
			break
		}
	}
	return ino, true
}

// GetAttr returns the configured attributes. Type always reports a
// directory, whatever was configured.
func (d *Directory) GetAttr(_ *vfs.Request) (vfs.Attr, error) {
	attr := d.attr
	attr.Type = vfs.FileTypeDirectory
	return attr, nil
}

// Lookup resolves name through the binding table and returns the
// child's entry with its attributes freshly queried.
func (d *Directory) Lookup(req *vfs.Request, name string) (vfs.Entry, error) {
	ino, ok := d.binds[name]
	if !ok {
		return vfs.Entry{}, vfs.NewNoEntryError(vfs.OpLookup, name)
	}
	d.mustBeRegistered(req, name, ino)

	attr, err := req.GetAttr(ino)
	if err != nil {
		return vfs.Entry{}, err
	}
	return vfs.EntryOf(attr), nil
}

// ReadDir lists the bound children in binding order, querying each
// child's attributes for its node type.
func (d *Directory) ReadDir(req *vfs.Request) ([]vfs.DirEntry, error) {
	entries := make([]vfs.DirEntry, 0, len(d.names))
	for _, name := range d.names {
		ino := d.binds[name]
		d.mustBeRegistered(req, name, ino)

		attr, err := req.GetAttr(ino)
		if err != nil {
			return nil, err
		}
		entries = append(entries, vfs.DirEntry{
			Ino:  ino,
			Type: attr.Type,
			Name: name,
		})
	}
	return entries, nil
}

// mustBeRegistered panics when a binding points at an identifier the
// registry does not know. The binding table and the registry are both
// maintained by the embedding application; letting them drift apart is
// a bug there, not a runtime condition to report to the kernel.
func (d *Directory) mustBeRegistered(req *vfs.Request, name string, ino vfs.Inode) {
	if _, ok := req.Resolve(ino); !ok {
		panic(fmt.Sprintf("static: binding %q points at unregistered inode %d", name, ino))
	}
}
