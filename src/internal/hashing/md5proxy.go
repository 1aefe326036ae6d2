package hashing

import (
	"crypto/md5"
	"encoding/hex"
	"hash"
	"io"
)

// ChecksumWriterProxy forwards writes to an optional writer and keeps the
// MD5 of everything written.
type ChecksumWriterProxy struct {
	writer   io.Writer
	checksum hash.Hash
}

// NewMD5WriterProxy wraps writer. A nil writer only accumulates the checksum.
func NewMD5WriterProxy(writer io.Writer) *ChecksumWriterProxy {
	if writer == nil {
		writer = io.Discard
	}
	return &ChecksumWriterProxy{
		writer:   writer,
		checksum: md5.New(),
	}
}

// Write writes buf to the underlying writer and adds the written bytes to
// the checksum.
func (p *ChecksumWriterProxy) Write(buf []byte) (int, error) {
	n, err := p.writer.Write(buf)
	if n > 0 {
		// hash.Hash never returns an error
		_, _ = p.checksum.Write(buf[:n])
	}
	return n, err
}

// GetChecksum returns the MD5 of the bytes written so far as a hex string.
func (p *ChecksumWriterProxy) GetChecksum() string {
	return hex.EncodeToString(p.checksum.Sum(nil))
}
