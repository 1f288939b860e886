// Command variantgen generates the payload-free tag type and the
// variant mapping for a sealed-interface union type, making it usable
// with variantset.Set. Intended to be run through go:generate:
//
//	//go:generate variantgen --type Event
package main

import (
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/fzft/go-variant-set/gen"
	"github.com/fzft/go-variant-set/log"
)

var cli struct {
	Type    string `help:"Name of the sealed interface union type." required:""`
	Dir     string `arg:"" optional:"" default:"." help:"Package directory to scan."`
	Output  string `short:"o" help:"Output file. Defaults to <type>_variant.go in the package directory."`
	Verbose bool   `short:"v" help:"Enable debug logging."`
}

func main() {
	kong.Parse(&cli,
		kong.Name("variantgen"),
		kong.Description("Generates the tag type and variant mapping for a sealed-interface union type."),
	)

	if err := log.InitLogger(cli.Verbose); err != nil {
		os.Exit(1)
	}
	defer log.Logger.Sync()

	u, err := gen.Parse(cli.Dir, cli.Type)
	if err != nil {
		log.Logger.Fatal("cannot resolve union type", zap.Error(err))
	}
	log.Logger.Debug("resolved union",
		zap.String("package", u.Package),
		zap.String("marker", u.Marker),
		zap.Strings("variants", u.Variants))

	src, err := u.Generate()
	if err != nil {
		log.Logger.Fatal("generation failed", zap.Error(err))
	}

	output := cli.Output
	if output == "" {
		output = gen.DefaultFilename(cli.Dir, cli.Type)
	}
	if err := os.WriteFile(output, src, 0o644); err != nil {
		log.Logger.Fatal("cannot write generated file", zap.Error(err))
	}
	log.Logger.Info("generated variant tags",
		zap.String("type", u.Name),
		zap.String("tag", u.TagName()),
		zap.Int("variants", len(u.Variants)),
		zap.String("file", output))
}
