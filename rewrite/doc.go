// Package rewrite holds the passes that prepare a decoded tree for a
// stricter encoder: Stringify turns keys, tag identifiers and byte strings
// into text, and EnumBools folds "true"/"false" unit tags into booleans.
//
// Both passes mutate the tree in place, visit children in stored order,
// never reorder siblings and never fail.
package rewrite
