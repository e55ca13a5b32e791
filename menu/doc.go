// Package menu turns network snapshots into tray menu trees.
//
// A Spec is an ordered tree of items with at most one level of submenus.
// Build is a pure function of a snapshot and the current time: the same
// inputs always produce an identical Spec, so publishers can compare specs
// to skip redundant updates.
//
// Every item carries an identifier. Actionable items use the encoding
// "{kind}-{resourceId}" or a fixed literal; ParseID decodes it back into a
// typed Action once, so dispatch never matches on substrings.
package menu
