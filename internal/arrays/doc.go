// Package arrays lowers array construction and variable-arity calls into
// calls on the target runtime's array wrapper classes.
//
// The target runtime has no native arrays. Each element kind has a wrapper
// class (IOSIntArray, IOSObjectArray, ...) with three static constructors:
// one taking an element buffer, one taking a length, one taking a list of
// dimension lengths. The pass rewrites
//
//	new int[]{a, b}      -> IOSIntArray arrayWithInts:count:((native int[] a b), 2)
//	new String[n]        -> IOSObjectArray arrayWithLength:type:(n, String.class)
//	new int[r][c]        -> IOSIntArray arrayWithDimensions:lengths:(2, (native int[] r c))
//	f(x, y) for f(int...) -> f(IOSIntArray arrayWithInts:count:(...))
//
// and synthesizes each (shape, kind) constructor signature exactly once per
// unit so the printer declares it once.
package arrays
