// Package config provides configuration management for reesa.
//
// # Configuration File
//
// Settings are read with viper from $HOME/.reesa/config.yaml unless a file is
// named explicitly through CfgFile (the --config flag). When the default file
// does not exist it is created from the compiled defaults on first run.
// Every key can also be overridden from the environment with the REESA_
// prefix, dots replaced by underscores (block.cipher_width becomes
// REESA_BLOCK_CIPHER_WIDTH).
//
// # Block Widths
//
// The block section fixes the stream protocol:
//   - block.plain_width: payload bytes per plaintext block before padding (15)
//   - block.cipher_width: bytes per ciphertext block (32)
//
// The padded width is always plain_width+1 because of the one-byte length
// prefix. Files encrypted with one set of widths can only be decrypted with
// the same widths.
//
// # Key Generation
//
// The key section controls gen_key:
//   - key.bits: modulus size in bits (256)
//   - key.public_exponent: public exponent (65537)
//
// Validate rejects combinations where a padded block could reach the modulus
// or where the modulus cannot fit into a cipher block.
package config
