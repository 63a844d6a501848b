package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/Alia5/padcore/internal/configpaths"
	"github.com/Alia5/padcore/options"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// ConfigCommand groups config-related subcommands.
type ConfigCommand struct {
	Init ConfigInit `cmd:"" help:"Generate a configuration template"`
}

// ConfigInit scaffolds a board file or a CLI config file for a command.
type ConfigInit struct {
	Kind   string `arg:"" optional:"" name:"kind" help:"Template to generate" enum:"board,simulate" default:"board"`
	Format string `help:"Output format" enum:"json,yaml,toml" default:"yaml"`
	Output string `help:"Destination file path (defaults to <kind>.<format> in the current directory)"`
	Force  bool   `help:"Overwrite if the file already exists"`

	Out io.Writer `kong:"-"`
}

// Run writes the template. Board templates hold the default board, gamepad
// and addon sections; command templates are built by reflection over the
// command's flags and their defaults.
func (c *ConfigInit) Run() error {
	format := normalizeFormat(c.Format)
	if format == "" {
		return fmt.Errorf("unsupported format: %s", c.Format)
	}

	var (
		data []byte
		err  error
	)
	switch c.Kind {
	case "board", "":
		data, err = options.Encode(options.DefaultFile(), format)
	case "simulate":
		data, err = encodeMap(flagTemplate(reflect.TypeFor[Simulate]()), format)
	default:
		return errors.New("unknown template; expected 'board' or 'simulate'")
	}
	if err != nil {
		return err
	}

	dest := c.Output
	if dest == "" {
		kind := c.Kind
		if kind == "" {
			kind = "board"
		}
		dest = kind + "." + configpaths.Ext(format)
	}

	if !c.Force {
		if _, err := os.Stat(dest); err == nil {
			return errors.New("destination exists; use --force to overwrite")
		}
	}
	if err := configpaths.EnsureDir(dest); err != nil {
		return err
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return err
	}
	if c.Out != nil {
		_, _ = fmt.Fprintf(c.Out, "wrote %s\n", dest)
	}
	return nil
}

func encodeMap(root map[string]any, format string) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(root, "", "  ")
	case "yaml":
		return yaml.Marshal(root)
	case "toml":
		return toml.Marshal(root)
	}
	return nil, options.ErrUnknownFormat
}

func normalizeFormat(f string) string {
	switch f = strings.ToLower(f); f {
	case "yml":
		return "yaml"
	case "json", "yaml", "toml":
		return f
	}
	return ""
}

var durationType = reflect.TypeFor[time.Duration]()

// flagTemplate maps a kong command struct onto the key layout the config
// resolvers read: lower camel field names, prefixed embeds nested under their
// prefix, plain embeds flattened.
func flagTemplate(t reflect.Type) map[string]any {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	out := map[string]any{}
	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() || f.Tag.Get("kong") == "-" || len(f.Index) > 1 {
			continue
		}
		if _, embedded := f.Tag.Lookup("embed"); embedded || f.Anonymous {
			sub := flagTemplate(f.Type)
			prefix := strings.TrimSuffix(f.Tag.Get("prefix"), ".")
			if prefix != "" {
				out[prefix] = sub
				continue
			}
			maps.Copy(out, sub)
			continue
		}
		if v, ok := flagDefault(f.Type, f.Tag.Get("default")); ok {
			key := []rune(f.Name)
			key[0] = unicode.ToLower(key[0])
			out[string(key)] = v
		}
	}
	return out
}

func flagDefault(t reflect.Type, def string) (any, bool) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == durationType {
		if def == "" {
			def = "0s"
		}
		return def, true
	}
	switch t.Kind() {
	case reflect.String:
		return def, true
	case reflect.Bool:
		b, _ := strconv.ParseBool(def)
		return b, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, _ := strconv.ParseInt(def, 0, 64)
		return n, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, _ := strconv.ParseUint(def, 0, 64)
		return n, true
	case reflect.Struct:
		return flagTemplate(t), true
	}
	return nil, false
}
