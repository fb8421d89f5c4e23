// Package scenario reproduces two PHP teaching snippets with byte-exact output.
//
// The uppercase scenario uppercases a list in place and prints it the way
// print_r does:
//
//	Array
//	(
//	    [0] => A
//	    ...
//	)
//
// The construct scenario shows that building a DerivedEntity runs the
// BaseEntity constructor first, then echoes the sum of its two arguments:
//
//	_, err := scenario.NewDerivedEntity(os.Stdout, 7, 10.888, scenario.DefaultPrecision)
//	// In BaseClass constructor
//	// 17.888
package scenario
