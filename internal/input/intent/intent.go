// Package intent decodes and encodes UI intents.
//
// An intent is either a bare JSON string naming a command ("delete") or
// an object whose "type" names the command and whose other members are
// its arguments:
//
//	{"type":"edit","field":"label","value":"Kitchen"}
//	{"type":"change-z-index","op":"top"}
package intent

import (
	"errors"
	"fmt"
	"slices"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/tessera/internal/input"
)

// Errors returned by Decode.
var (
	ErrInvalidJSON = errors.New("intent: invalid JSON")
	ErrMissingType = errors.New("intent: missing type")
)

// Decode parses a single intent.
func Decode(data []byte) (input.Command, error) {
	if !gjson.ValidBytes(data) {
		return input.Command{}, ErrInvalidJSON
	}
	return fromResult(gjson.ParseBytes(data))
}

// DecodeString parses a single intent from a string.
func DecodeString(s string) (input.Command, error) {
	return Decode([]byte(s))
}

// DecodeAll parses a JSON array of intents, or a single intent.
func DecodeAll(data []byte) ([]input.Command, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		cmd, err := fromResult(root)
		if err != nil {
			return nil, err
		}
		return []input.Command{cmd}, nil
	}

	var cmds []input.Command
	var decodeErr error
	root.ForEach(func(i, v gjson.Result) bool {
		cmd, err := fromResult(v)
		if err != nil {
			decodeErr = fmt.Errorf("intent %d: %w", i.Int(), err)
			return false
		}
		cmds = append(cmds, cmd)
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return cmds, nil
}

func fromResult(r gjson.Result) (input.Command, error) {
	switch {
	case r.Type == gjson.String:
		if r.Str == "" {
			return input.Command{}, ErrMissingType
		}
		return input.Command{Name: r.Str, Source: input.SourceIntent}, nil
	case r.IsObject():
	default:
		return input.Command{}, fmt.Errorf("%w: expected string or object", ErrInvalidJSON)
	}

	typ := r.Get("type")
	if typ.Type != gjson.String || typ.Str == "" {
		return input.Command{}, ErrMissingType
	}
	cmd := input.Command{Name: typ.Str, Source: input.SourceIntent}
	r.ForEach(func(k, v gjson.Result) bool {
		if k.Str == "type" {
			return true
		}
		if cmd.Args == nil {
			cmd.Args = input.Args{}
		}
		cmd.Args[k.Str] = v.Value()
		return true
	})
	return cmd, nil
}

// Encode renders cmd as an intent object with arguments in key order.
func Encode(cmd input.Command) ([]byte, error) {
	if cmd.Name == "" {
		return nil, ErrMissingType
	}
	out, err := sjson.SetBytes([]byte(`{}`), "type", cmd.Name)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(cmd.Args))
	for k := range cmd.Args {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		out, err = sjson.SetBytes(out, escapePath(k), cmd.Args[k])
		if err != nil {
			return nil, fmt.Errorf("encode argument %q: %w", k, err)
		}
	}
	return out, nil
}

// escapePath escapes the characters sjson treats as path syntax.
func escapePath(k string) string {
	var b []byte
	for i := 0; i < len(k); i++ {
		switch k[i] {
		case '.', '*', '?', '|', '#', '@', '\\':
			b = append(b, '\\')
		}
		b = append(b, k[i])
	}
	return string(b)
}
