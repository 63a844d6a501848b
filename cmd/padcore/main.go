package main

import (
	"io"
	"os"
	"strings"

	"github.com/Alia5/padcore/internal/config"
	"github.com/Alia5/padcore/internal/configpaths"
	"github.com/Alia5/padcore/internal/log"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
)

func main() {
	args := os.Args[1:]

	var cli config.CLI
	opts := append([]kong.Option{
		kong.Name("padcore"),
		kong.Description("Arcade controller core: pins in, USB reports out"),
		kong.UsageOnError(),
	}, configResolvers(userConfigPath(args))...)

	parser, err := kong.New(&cli, opts...)
	if err != nil {
		panic(err)
	}
	kctx, err := parser.Parse(args)
	parser.FatalIfErrorf(err)

	logger, closers, err := log.SetupLogger(cli.Log.Level, cli.Log.File)
	if err != nil {
		_, _ = io.WriteString(os.Stderr, "padcore: logger: "+err.Error()+"\n")
		os.Exit(2)
	}
	defer closeAll(&closers)

	raw, rawFile, err := log.OpenRaw(cli.Log.RawFile, log.ParseLevel(cli.Log.Level) <= log.LevelTrace)
	if err != nil {
		logger.Error("raw report log disabled", "error", err)
	}
	if rawFile != nil {
		closers = append(closers, rawFile)
	}

	kctx.Bind(logger)
	kctx.BindTo(raw, (*log.RawLogger)(nil))
	kctx.FatalIfErrorf(kctx.Run())
}

// configResolvers reads CLI defaults from the first config file found;
// flags and env vars win over file values.
func configResolvers(userPath string) []kong.Option {
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userPath)
	return []kong.Option{
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	}
}

// userConfigPath finds --config before kong parses, since the resolvers
// must be known up front. PADCORE_CONFIG is the fallback.
func userConfigPath(args []string) string {
	for i, a := range args {
		if a == "--" {
			break
		}
		if v, ok := strings.CutPrefix(a, "--config="); ok {
			return v
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv("PADCORE_CONFIG")
}

func closeAll(closers *[]io.Closer) {
	for _, c := range *closers {
		_ = c.Close()
	}
}
