package keys

import (
	"bytes"
	"encoding/json"

	"github.com/samber/oops"
)

// Record is a parsed but not yet validated key record.
type Record map[string]json.RawMessage

var jsonNull = []byte("null")

// ParseRecord parses raw bytes as a flat JSON object.
func ParseRecord(raw []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, oops.Wrapf(ErrNotStructuredData, "%s", err.Error())
	}
	if rec == nil {
		return nil, oops.Wrapf(ErrNotStructuredData, "record is null")
	}
	return rec, nil
}

// ExtractFields pulls the six required string fields out of rec.
// A missing, null or non-string field is reported as ErrIncompleteKey.
func ExtractFields(rec Record) (KeyMaterial, error) {
	values := make(map[string]string, len(RequiredFields))
	for _, name := range RequiredFields {
		raw, ok := rec[name]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
			return KeyMaterial{}, oops.Wrapf(ErrIncompleteKey, "missing field %q", name)
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return KeyMaterial{}, oops.Wrapf(ErrIncompleteKey, "field %q is not a string", name)
		}
		values[name] = s
	}
	return KeyMaterial{
		P:               values[FieldP],
		Q:               values[FieldQ],
		PrivateExponent: values[FieldPrivateExponent],
		PublicExponent:  values[FieldPublicExponent],
		Modulus:         values[FieldModulus],
		TotientModulus:  values[FieldTotientModulus],
	}, nil
}

// Decode parses a key record and extracts its fields.
func Decode(raw []byte) (KeyMaterial, error) {
	rec, err := ParseRecord(raw)
	if err != nil {
		return KeyMaterial{}, err
	}
	return ExtractFields(rec)
}

// Encode serializes m as an indented JSON object with a trailing newline.
func Encode(m KeyMaterial) []byte {
	// cannot fail: every field is a string
	data, _ := json.MarshalIndent(m, "", "  ")
	return append(data, '\n')
}
