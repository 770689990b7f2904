// Package memory is a page-granular address space: the mmap, munmap and
// sbrk back end of the syscall layer.  It tracks mappings and permissions
// only; no bytes are stored.
package memory
