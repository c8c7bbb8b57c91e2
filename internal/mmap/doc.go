// Package mmap maps local matrix files read-only so the text decoder can
// stream them without an intermediate copy.
//
//	m, err := mmap.Open("expression.tsv")
//	if err != nil { ... }
//	defer m.Close()
//	r := m.Reader()
//
// Unix uses mmap(2) and advises the kernel of sequential access. Windows uses
// CreateFileMapping/MapViewOfFile.
package mmap
