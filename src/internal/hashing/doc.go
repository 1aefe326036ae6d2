// Package hashing computes MD5 fingerprints of serialized data.
//
// ChecksumWriterProxy sits in front of an io.Writer and hashes every byte
// that passes through, so a document can be written and fingerprinted in
// one pass:
//
//	var buf bytes.Buffer
//	proxy := hashing.NewMD5WriterProxy(&buf)
//	_ = json.NewEncoder(proxy).Encode(v)
//	fmt.Println(proxy.GetChecksum())
package hashing
