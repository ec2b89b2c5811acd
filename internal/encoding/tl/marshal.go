// Copyright (c) 2024 Wiregram Authors

package tl

import (
	"bytes"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/fatih/structtag"
	"github.com/pkg/errors"
)

const tagName = "tl"

// Marshal encodes v into its TL wire form. Encoding runs on reflection and
// `tl:"flag:N"` struct tags, which is fine here: it only ever sees outbound
// payloads we build ourselves. Decoding is explicit and never reflects.
func Marshal(v any) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	e := NewEncoder(buf)

	if err := e.encodeValue(reflect.ValueOf(v)); err != nil {
		return nil, err
	}
	if err := e.CheckErr(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

type fieldTag struct {
	index     int  // flag:<N>
	optional  bool // omitempty or flag:<N>
	inBitflag bool // encoded_in_bitflags
	ignore    bool // -
}

func parseTag(st reflect.StructTag) (*fieldTag, error) {
	tags, err := structtag.Parse(string(st))
	if err != nil {
		return nil, errors.Wrap(err, "parsing struct tag")
	}
	if tags == nil {
		return nil, nil
	}

	tag, err := tags.Get(tagName)
	if err != nil {
		return nil, nil // no tl tag on this field
	}

	info := &fieldTag{}
	if tag.Name == "-" {
		info.ignore = true
		return info, nil
	}

	if strings.HasPrefix(tag.Name, "flag:") {
		num := strings.TrimPrefix(tag.Name, "flag:")
		index, err := strconv.ParseUint(num, 10, 5)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing flag index %q", num)
		}

		info.index = int(index)
		info.optional = true
	}

	if tag.HasOption("encoded_in_bitflags") {
		if !info.optional {
			return nil, errors.New("have 'encoded_in_bitflags' option without flag index")
		}
		info.inBitflag = true
	}

	if tag.HasOption("omitempty") {
		info.optional = true
	}

	return info, nil
}

func (e *Encoder) encodeValue(v reflect.Value) error {
	if !v.IsValid() {
		return errors.New("invalid value")
	}

	if v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		switch val := v.Interface().(type) {
		case Marshaler:
			return val.MarshalTL(e)
		case *Int128:
			e.PutRawBytes(val.Bytes())
			return e.CheckErr()
		case *Int256:
			e.PutRawBytes(val.Bytes())
			return e.CheckErr()
		}
	}

	switch v.Kind() {
	case reflect.Int32:
		e.PutInt(int32(v.Int()))
	case reflect.Int64:
		e.PutLong(v.Int())
	case reflect.Uint32:
		e.PutUint(uint32(v.Uint()))
	case reflect.Float64:
		e.PutDouble(v.Float())
	case reflect.Bool:
		e.PutBool(v.Bool())
	case reflect.String:
		e.PutString(v.String())
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			e.PutMessage(v.Bytes())
			break
		}
		return e.encodeVector(v)
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return errors.New("attempt to encode nil value")
		}
		if v.Kind() == reflect.Interface {
			return e.encodeValue(v.Elem())
		}
		if v.Elem().Kind() == reflect.Struct {
			return e.encodeStruct(v)
		}
		return e.encodeValue(v.Elem())
	case reflect.Struct:
		// encode through a pointer so the CRC method set is in reach
		ptr := reflect.New(v.Type())
		ptr.Elem().Set(v)
		return e.encodeStruct(ptr)
	default:
		return fmt.Errorf("unsupported type: %v", v.Type())
	}

	return e.CheckErr()
}

// encodeStruct writes the constructor tag, then the flags word when any
// field carries a flag tag, then the fields in declared order. Absent
// optional fields and bit-only booleans write nothing.
func (e *Encoder) encodeStruct(ptr reflect.Value) error {
	obj, ok := ptr.Interface().(Object)
	if !ok {
		return fmt.Errorf("%v doesn't implement tl.Object", ptr.Type())
	}

	e.PutCRC(obj.CRC())

	str := ptr.Elem()
	typ := str.Type()

	var flags uint32
	var haveFlags bool

	tags := make([]*fieldTag, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		info, err := parseTag(typ.Field(i).Tag)
		if err != nil {
			return errors.Wrapf(err, "field %v", typ.Field(i).Name)
		}
		tags[i] = info

		if info != nil && info.optional {
			haveFlags = true
			if !str.Field(i).IsZero() {
				flags |= 1 << uint(info.index)
			}
		}
	}

	if haveFlags {
		e.PutUint(flags)
	}

	for i := 0; i < typ.NumField(); i++ {
		info := tags[i]
		if info != nil && info.ignore {
			continue
		}
		if info != nil && info.optional && (info.inBitflag || str.Field(i).IsZero()) {
			continue
		}

		if err := e.encodeValue(str.Field(i)); err != nil {
			return errors.Wrapf(err, "encoding field %v", typ.Field(i).Name)
		}
	}

	return e.CheckErr()
}

func (e *Encoder) encodeVector(v reflect.Value) error {
	e.PutCRC(CrcVector)
	e.PutInt(int32(v.Len()))

	for i := 0; i < v.Len(); i++ {
		if err := e.encodeValue(v.Index(i)); err != nil {
			return errors.Wrapf(err, "encoding vector element %v", i)
		}
	}

	return e.CheckErr()
}
