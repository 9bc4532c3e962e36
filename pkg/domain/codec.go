package domain

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// EncodeResultSet serializes rs as a JSON array of {"name","url"} objects.
// The output is byte-stable for equal input, so comparing encodings is a
// valid change check. A nil set encodes as [].
func EncodeResultSet(rs ResultSet) []byte {
	var e jx.Encoder
	encodeResultSet(&e, rs)

	return e.Bytes()
}

// EncodePayload serializes rs as the {"subdomains":[...]} response body.
func EncodePayload(rs ResultSet) []byte {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("subdomains")
	encodeResultSet(&e, rs)
	e.ObjEnd()

	return e.Bytes()
}

// EncodeError serializes msg as the {"error":"..."} response body.
func EncodeError(msg string) []byte {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("error")
	e.Str(msg)
	e.ObjEnd()

	return e.Bytes()
}

func encodeResultSet(e *jx.Encoder, rs ResultSet) {
	e.ArrStart()
	for _, r := range rs {
		e.ObjStart()
		e.FieldStart("name")
		e.Str(r.Name)
		e.FieldStart("url")
		e.Str(r.URL)
		e.ObjEnd()
	}
	e.ArrEnd()
}

// DecodeResultSet parses a JSON array produced by EncodeResultSet.
func DecodeResultSet(data []byte) (ResultSet, error) {
	rs, err := decodeResultSet(jx.DecodeBytes(data))
	if err != nil {
		return nil, errors.Wrap(err, "decode result set")
	}

	return rs, nil
}

// DecodePayload parses a {"subdomains":[...]} body. A body without a
// subdomains array is an error.
func DecodePayload(data []byte) (ResultSet, error) {
	var (
		rs    ResultSet
		found bool
	)
	if err := jx.DecodeBytes(data).Obj(func(d *jx.Decoder, key string) error {
		if key != "subdomains" || d.Next() == jx.Null {
			return d.Skip()
		}
		found = true
		var err error
		rs, err = decodeResultSet(d)

		return err
	}); err != nil {
		return nil, errors.Wrap(err, "decode payload")
	}
	if !found {
		return nil, errors.New("payload has no subdomains")
	}

	return rs, nil
}

func decodeResultSet(d *jx.Decoder) (ResultSet, error) {
	rs := ResultSet{}
	err := d.Arr(func(d *jx.Decoder) error {
		var r SubdomainRecord
		if err := d.Obj(func(d *jx.Decoder, key string) error {
			var err error
			switch key {
			case "name":
				r.Name, err = d.Str()
			case "url":
				r.URL, err = d.Str()
			default:
				err = d.Skip()
			}

			return err
		}); err != nil {
			return err
		}
		if r.Name == "" || r.URL == "" {
			return errors.Errorf("record %q is missing name or url", r.URL)
		}
		rs = append(rs, r)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return rs, nil
}
