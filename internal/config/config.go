// Package config loads ymcalc settings from CUE files.
//
// A file is unified with an embedded #Config schema, so unknown keys and
// out-of-range values are rejected with their source position, and fields
// the file omits take the schema's defaults.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/temporal/internal/temporal"
)

//go:embed schema.cue
var schemaCUE string

// Config holds the defaults applied to every evaluation.
type Config struct {
	Calendar     string `json:"calendar"`
	Overflow     string `json:"overflow"`
	ShowCalendar string `json:"show_calendar"`
	RoundingMode string `json:"rounding_mode"`
	TimeZone     string `json:"time_zone"`
	Database     string `json:"database"`
}

// Error is a configuration failure, positioned when CUE reports a source
// location.
type Error struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Default returns the schema defaults.
func Default() Config {
	cfg, err := Parse("defaults.cue", nil)
	if err != nil {
		panic(fmt.Sprintf("config: embedded schema: %v", err))
	}
	return cfg
}

// Load reads and validates the CUE file at path. An empty path returns
// the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return Parse(path, data)
}

// Parse validates src, reported as filename in errors.
func Parse(filename string, src []byte) (Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, formatCUEError(err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	value := def
	if len(src) > 0 {
		file := ctx.CompileBytes(src, cue.Filename(filename))
		if err := file.Err(); err != nil {
			return Config{}, formatCUEError(err)
		}
		value = def.Unify(file)
	}
	if err := value.Validate(); err != nil {
		return Config{}, formatCUEError(err)
	}

	var cfg Config
	if err := value.Decode(&cfg); err != nil {
		return Config{}, formatCUEError(err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// validate checks what the schema cannot: identifiers only the engine
// knows.
func (c Config) validate() error {
	if !temporal.IsBuiltinCalendar(c.Calendar) {
		return &Error{Field: "calendar", Message: fmt.Sprintf("unsupported calendar %q", c.Calendar)}
	}
	if _, err := temporal.ToTemporalTimeZoneSlot(c.TimeZone); err != nil {
		return &Error{Field: "time_zone", Message: err.Error()}
	}
	return nil
}

// formatCUEError extracts the first error's position from a CUE error list.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &Error{Field: "cue", Message: err.Error()}
	}

	first := errs[0]
	format, args := first.Msg()
	out := &Error{Field: "cue", Message: fmt.Sprintf(format, args...)}
	if path := first.Path(); len(path) > 0 {
		out.Field = path[len(path)-1]
	}
	if positions := errors.Positions(first); len(positions) > 0 {
		out.Pos = positions[0]
	}
	return out
}
