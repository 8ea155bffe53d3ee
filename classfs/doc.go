// Package classfs implements a read-only FUSE filesystem showing the class
// versions inside a jar.
//
// Mounting a jar produces a directory tree mirroring its class entries. Each
// file holds the version of the class entry with the same path, for example
//
//	$ cat /mnt/jar/com/example/Main.class
//	61 (Java 17)
//
// and a top-level ".classver" file holds the largest version in the archive.
// Entries under META-INF/ are not shown.
//
// Versions are read once, sequentially, when the filesystem is created.
// Serving requests never touches the archive, so the filesystem is safe for
// the concurrent calls bazil.org/fuse makes.
package classfs
