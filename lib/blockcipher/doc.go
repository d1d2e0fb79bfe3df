// Package blockcipher drives an RSA engine block by block over a byte
// stream.
//
// Encryption reads PlainWidth-byte chunks, pads each to PaddedWidth with the
// length-prefix scheme from lib/padding, and writes one CipherWidth-byte
// block per chunk. Decryption reads CipherWidth-byte blocks and writes the
// unpadded payloads. Blocks are transformed independently; there is no
// chaining between them.
//
// The engine returns minimal-width integers, so every output is
// left-padded with zero bytes back to its declared width before use. An
// output wider than the declared width means the configured widths do not
// match the key and aborts the operation.
//
// Any block failure stops the operation. Blocks already written stay in the
// destination; nothing is written for the failing block.
package blockcipher
