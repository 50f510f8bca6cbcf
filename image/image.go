// Package image serializes the data plane of a module to a portable
// snapshot: the variable names together with the values of the value
// types. Code objects (functions, closures, fibers, classes, instances,
// foreigns) are not serializable.
package image

import (
	"fmt"

	"github.com/redthing1/wren-port/vm"
)

// FormatVersion is the current image format. Restoring an image of a
// different version is an error.
const FormatVersion = 1

// ValueKind tags one serialized value.
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindBool
	KindNum
	KindString
	KindRange
	KindList
	KindMap
)

// ModuleImage is the snapshot of one module.
type ModuleImage struct {
	Version byte   `cbor:"1,keyasint"`
	VM      string `cbor:"2,keyasint"`           // producing VM instance
	Module  string `cbor:"3,keyasint,omitempty"` // empty for the core module

	Variables []Variable `cbor:"4,keyasint"`
}

// Variable is one captured top-level variable.
type Variable struct {
	Name  string     `cbor:"1,keyasint"`
	Value ValueImage `cbor:"2,keyasint"`
}

// ValueImage is the serialized form of a single value.
type ValueImage struct {
	Kind ValueKind `cbor:"1,keyasint"`

	Bool bool    `cbor:"2,keyasint,omitempty"`
	Num  float64 `cbor:"3,keyasint,omitempty"`
	Str  string  `cbor:"4,keyasint,omitempty"`

	// Range payload
	From      float64 `cbor:"5,keyasint,omitempty"`
	To        float64 `cbor:"6,keyasint,omitempty"`
	Inclusive bool    `cbor:"7,keyasint,omitempty"`

	Elements []ValueImage `cbor:"8,keyasint,omitempty"` // KindList
	Entries  []EntryImage `cbor:"9,keyasint,omitempty"` // KindMap
}

// EntryImage is one serialized map entry.
type EntryImage struct {
	Key   ValueImage `cbor:"1,keyasint"`
	Value ValueImage `cbor:"2,keyasint"`
}

// ---------------------------------------------------------------------------
// Capture
// ---------------------------------------------------------------------------

// Capture snapshots the variables of module. A variable holding a
// non-serializable value, or a self-referential list or map, yields an
// error naming the variable.
func Capture(v *vm.VM, module *vm.ObjModule) (*ModuleImage, error) {
	name := ""
	if module.Name != nil {
		name = module.Name.Value
	}

	img := &ModuleImage{
		Version: FormatVersion,
		VM:      v.ID,
		Module:  name,
	}

	for i, varName := range module.VariableNames {
		encoded, err := encodeValue(module.Variables[i], make(map[*vm.Obj]bool))
		if err != nil {
			return nil, fmt.Errorf("image: variable %q: %w", varName, err)
		}
		img.Variables = append(img.Variables, Variable{Name: varName, Value: encoded})
	}
	return img, nil
}

func encodeValue(value vm.Value, active map[*vm.Obj]bool) (ValueImage, error) {
	if value.IsNum() {
		return ValueImage{Kind: KindNum, Num: value.Num()}, nil
	}
	if value.IsNull() {
		return ValueImage{Kind: KindNull}, nil
	}
	if value.IsBool() {
		return ValueImage{Kind: KindBool, Bool: value.Bool()}, nil
	}
	if !value.IsObj() {
		return ValueImage{}, fmt.Errorf("not a serializable value")
	}

	obj := value.Obj()
	switch {
	case vm.IsString(value):
		return ValueImage{Kind: KindString, Str: vm.AsGoString(value)}, nil

	case vm.IsRange(value):
		r := vm.AsRange(value)
		return ValueImage{
			Kind:      KindRange,
			From:      r.From,
			To:        r.To,
			Inclusive: r.IsInclusive,
		}, nil

	case vm.IsList(value):
		if active[obj] {
			return ValueImage{}, fmt.Errorf("cyclic list")
		}
		active[obj] = true
		defer delete(active, obj)

		list := vm.AsList(value)
		encoded := ValueImage{Kind: KindList}
		for _, element := range list.Elements {
			e, err := encodeValue(element, active)
			if err != nil {
				return ValueImage{}, err
			}
			encoded.Elements = append(encoded.Elements, e)
		}
		return encoded, nil

	case vm.IsMap(value):
		if active[obj] {
			return ValueImage{}, fmt.Errorf("cyclic map")
		}
		active[obj] = true
		defer delete(active, obj)

		encoded := ValueImage{Kind: KindMap}
		var encodeErr error
		vm.AsMap(value).ForEach(func(key, val vm.Value) {
			if encodeErr != nil {
				return
			}
			k, err := encodeValue(key, active)
			if err != nil {
				encodeErr = err
				return
			}
			v, err := encodeValue(val, active)
			if err != nil {
				encodeErr = err
				return
			}
			encoded.Entries = append(encoded.Entries, EntryImage{Key: k, Value: v})
		})
		if encodeErr != nil {
			return ValueImage{}, encodeErr
		}
		return encoded, nil

	default:
		return ValueImage{}, fmt.Errorf("value of a non-serializable kind")
	}
}

// ---------------------------------------------------------------------------
// Restore
// ---------------------------------------------------------------------------

// Restore builds a new module from an image and registers it with the VM.
// Restoring an image of the core module is rejected: its variables are
// owned by the bootstrap.
func Restore(v *vm.VM, img *ModuleImage) (*vm.ObjModule, error) {
	if img.Version != FormatVersion {
		return nil, fmt.Errorf("image: version %d, want %d", img.Version, FormatVersion)
	}
	if img.Module == "" {
		return nil, fmt.Errorf("image: cannot restore over the core module")
	}

	module := v.NewModule(v.NewString(img.Module))
	v.RegisterModule(module)

	for _, variable := range img.Variables {
		value := decodeValue(v, variable.Value)
		if symbol := v.DefineVariable(module, variable.Name, value); symbol < 0 {
			return nil, fmt.Errorf("image: variable %q did not define", variable.Name)
		}
	}
	return module, nil
}

func decodeValue(v *vm.VM, img ValueImage) vm.Value {
	switch img.Kind {
	case KindNull:
		return vm.Null
	case KindBool:
		return vm.BoolVal(img.Bool)
	case KindNum:
		return vm.NumVal(img.Num)
	case KindString:
		return v.StringVal(img.Str)
	case KindRange:
		return v.RangeVal(img.From, img.To, img.Inclusive)
	case KindList:
		list := v.NewList(len(img.Elements))
		for i, element := range img.Elements {
			list.Elements[i] = decodeValue(v, element)
		}
		return vm.ObjVal(&list.Obj)
	case KindMap:
		m := v.NewMap()
		for _, entry := range img.Entries {
			m.Set(decodeValue(v, entry.Key), decodeValue(v, entry.Value))
		}
		return vm.ObjVal(&m.Obj)
	default:
		return vm.Null
	}
}
