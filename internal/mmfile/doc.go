// Package mmfile loads whole files into memory, memory-mapping them where the
// platform allows. Resource forks are read through a bytes.Reader over the
// returned slice so the decoder still sees a seekable stream.
package mmfile
