// Package errors provides classified error primitives used across webhelp.
//
// A ClassifiedError carries a category (config, tree, render, cache, ...), a severity and
// a retry strategy together with structured context. Errors are built with the fluent
// ErrorBuilder and presented to users through the CLIErrorAdapter, which also maps
// categories to process exit codes.
//
//	err := errors.TreeError("command tree has no root").
//		WithContext("file", path).
//		Build()
package errors
