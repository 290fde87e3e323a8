package types

import (
	"errors"
	"fmt"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"
)

// Builtins stores TypeIDs for primitive and well-known types.
type Builtins struct {
	Invalid TypeID
	Void    TypeID
	Null    TypeID
	Boolean TypeID
	Byte    TypeID
	Char    TypeID
	Short   TypeID
	Int     TypeID
	Long    TypeID
	Float   TypeID
	Double  TypeID
	Object  TypeID
	String  TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
type Interner struct {
	types    []Type
	index    map[Type]TypeID
	builtins Builtins
}

// NewInterner constructs an interner seeded with built-in types.
func NewInterner() *Interner {
	in := &Interner{
		index: make(map[Type]TypeID, 64),
	}
	in.seed()
	return in
}

func (in *Interner) seed() {
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Void = in.Intern(Type{Kind: KindVoid})
	in.builtins.Null = in.Intern(Type{Kind: KindNull})
	in.builtins.Boolean = in.Intern(Type{Kind: KindBoolean})
	in.builtins.Byte = in.Intern(Type{Kind: KindByte})
	in.builtins.Char = in.Intern(Type{Kind: KindChar})
	in.builtins.Short = in.Intern(Type{Kind: KindShort})
	in.builtins.Int = in.Intern(Type{Kind: KindInt})
	in.builtins.Long = in.Intern(Type{Kind: KindLong})
	in.builtins.Float = in.Intern(Type{Kind: KindFloat})
	in.builtins.Double = in.Intern(Type{Kind: KindDouble})
	in.builtins.Object = in.Class("java.lang.Object")
	in.builtins.String = in.Class("java.lang.String")
}

// Restore rebuilds an interner from a table previously returned by Table.
// Slot 0 must hold the invalid sentinel.
func Restore(table []Type) (*Interner, error) {
	if len(table) == 0 || table[0].Kind != KindInvalid {
		return nil, errors.New("types: table lacks invalid sentinel")
	}
	in := &Interner{
		types: make([]Type, 0, len(table)),
		index: make(map[Type]TypeID, len(table)),
	}
	for i, t := range table {
		if i > 0 && t.Kind == KindInvalid {
			return nil, fmt.Errorf("types: invalid descriptor at slot %d", i)
		}
		if t.Kind == KindArray && (t.Elem == NoTypeID || int(t.Elem) >= i) {
			return nil, fmt.Errorf("types: array at slot %d has dangling element %d", i, t.Elem)
		}
		if _, dup := in.index[t]; dup {
			return nil, fmt.Errorf("types: duplicate descriptor at slot %d", i)
		}
		in.internRaw(t)
	}
	// Builtins already present keep their slots; missing ones are appended.
	in.seed()
	return in, nil
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	if t.Kind == KindClass || t.Kind == KindRuntime {
		t.Name = norm.NFC.String(t.Name)
	}
	if id, ok := in.index[t]; ok {
		return id
	}
	return in.internRaw(t)
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	if id, ok := in.index[t]; ok && t.Kind == KindInvalid {
		return id
	}
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[t] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if in == nil || id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Class interns a declared reference type by qualified name.
func (in *Interner) Class(name string) TypeID {
	return in.Intern(MakeClass(name))
}

// Runtime interns a runtime-provided type by name.
func (in *Interner) Runtime(name string) TypeID {
	return in.Intern(MakeRuntime(name))
}

// ArrayOf interns elem[]...[] with dims levels. dims <= 0 returns elem.
func (in *Interner) ArrayOf(elem TypeID, dims int) TypeID {
	id := elem
	for range dims {
		id = in.Intern(MakeArray(id))
	}
	return id
}

// Len reports the number of interned descriptors, sentinel included.
func (in *Interner) Len() int {
	if in == nil {
		return 0
	}
	return len(in.types)
}

// Table returns a copy of the descriptor table in TypeID order.
func (in *Interner) Table() []Type {
	out := make([]Type, len(in.types))
	copy(out, in.types)
	return out
}
