package arrays

import (
	"fmt"

	"jlower/internal/types"
)

// SignatureCache memoizes one Signature per (shape, kind) for a unit. Repeat
// lookups return the identical *Signature, which is what lets the printer
// declare each constructor once.
//
// A cache is bound to one interner and is not safe for concurrent use; the
// driver gives every unit its own cache.
type SignatureCache struct {
	in      *types.Interner
	rt      Runtime
	tables  [shapeCount][kindCount]*Signature
	order   []*Signature
	created func(*Signature)
}

// NewSignatureCache creates an empty cache interning runtime types into in.
func NewSignatureCache(in *types.Interner, rt Runtime) *SignatureCache {
	return &SignatureCache{in: in, rt: rt}
}

// OnCreate registers fn to observe every newly synthesized signature.
func (c *SignatureCache) OnCreate(fn func(*Signature)) {
	c.created = fn
}

// Get returns the signature for (shape, kind), synthesizing it on first use.
func (c *SignatureCache) Get(shape Shape, kind Kind) (*Signature, error) {
	if int(shape) >= shapeCount || int(kind) >= kindCount {
		return nil, fmt.Errorf("%w: no %s signature for kind %s", ErrUnknownKind, shape, kind)
	}
	if sig := c.tables[shape][kind]; sig != nil {
		return sig, nil
	}
	sig := newSignature(c.in, c.rt, shape, kind)
	c.tables[shape][kind] = sig
	c.order = append(c.order, sig)
	if c.created != nil {
		c.created(sig)
	}
	return sig, nil
}

// Lookup returns the cached signature without synthesizing one.
func (c *SignatureCache) Lookup(shape Shape, kind Kind) (*Signature, bool) {
	if int(shape) >= shapeCount || int(kind) >= kindCount {
		return nil, false
	}
	sig := c.tables[shape][kind]
	return sig, sig != nil
}

// Len counts synthesized signatures.
func (c *SignatureCache) Len() int {
	return len(c.order)
}

// Signatures lists synthesized signatures ordered by shape, then kind.
func (c *SignatureCache) Signatures() []*Signature {
	out := make([]*Signature, 0, len(c.order))
	for _, shape := range Shapes {
		for _, kind := range Kinds {
			if sig := c.tables[shape][kind]; sig != nil {
				out = append(out, sig)
			}
		}
	}
	return out
}

// Created lists synthesized signatures in creation order.
func (c *SignatureCache) Created() []*Signature {
	out := make([]*Signature, len(c.order))
	copy(out, c.order)
	return out
}
