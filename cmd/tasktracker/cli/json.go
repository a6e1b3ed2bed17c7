// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"io"
	"os"
	"reflect"
)

// JSONOutput is embedded in params structs to add a --json flag.
//
//	type listParams struct {
//	    cli.JSONOutput
//	    Mine bool `json:"mine" flag:"mine" desc:"only tasks assigned to you"`
//	}
//
//	if done, err := params.EmitJSON(views); done {
//	    return err
//	}
//	// ... text formatting ...
type JSONOutput struct {
	OutputJSON bool `json:"-" flag:"json" desc:"output as JSON"`
}

// EmitJSON writes result to stdout as indented JSON when --json was
// given and reports whether it did. A nil slice is written as [] so
// that scripts can always iterate the output.
func (j *JSONOutput) EmitJSON(result any) (bool, error) {
	if !j.OutputJSON {
		return false, nil
	}
	if value := reflect.ValueOf(result); value.Kind() == reflect.Slice && value.IsNil() {
		result = reflect.MakeSlice(value.Type(), 0, 0).Interface()
	}
	return true, writeJSON(os.Stdout, result)
}

// writeJSON leaves HTML characters unescaped: task names are shown
// as typed.
func writeJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(value); err != nil {
		return Internal("encoding JSON output: %w", err)
	}
	return nil
}
