// Package keys reads, writes and classifies RSA key records.
//
// Key file format (JSON object, all values decimal strings):
//
//	{
//	  "p": "...",
//	  "q": "...",
//	  "private_exponent": "...",
//	  "public_exponent": "...",
//	  "modulus": "...",
//	  "totient_modulus": "..."
//	}
//
// Field order is irrelevant and unknown fields are ignored. A public key is
// stored in the same shape with p, q, private_exponent and totient_modulus
// set to "0".
//
// Failures are reported as three distinct kinds so callers can tell them
// apart with errors.Is: ErrNotStructuredData (not a JSON object),
// ErrIncompleteKey (a required field is missing) and ErrUnacceptableKey
// (the engine rejected the numbers). The numeric consistency of a record is
// never checked here; that decision belongs to the engine.
package keys
