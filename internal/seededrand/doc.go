// Package seededrand provides a reseedable pseudo-random sequence used for
// the random sorting method. The same seed always reproduces the same
// sequence, so a random gallery ordering is stable across recomputations.
//
//	g := seededrand.New(0)
//	g.SetSeed(len(items))
//	v := g.Next() // in [0, 1)
package seededrand
