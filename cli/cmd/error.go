package cmd

import "github.com/ardnew/ctext/engine"

var (
	ErrYAMLMarshal = engine.NewError("marshal YAML")
	ErrJSONMarshal = engine.NewError("marshal JSON")
	ErrWriteConfig = engine.NewError("write configuration file")
	ErrFileExists  = engine.NewError("file exists (use --force to overwrite)")
	ErrReadStdin   = engine.NewError("read stdin")
	ErrNoOperator  = engine.NewError("no such operator")
)
