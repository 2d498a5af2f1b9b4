package main

import (
	"fmt"
	"os"

	"github.com/MarkoPapic/static-website-builder/builder"
	"github.com/MarkoPapic/static-website-builder/logging"
	"github.com/MarkoPapic/static-website-builder/model"
	cli "github.com/jawher/mow.cli"
)

func main() {
	configFN := ""
	opts := model.Config{}
	set := minifySet{}

	app := cli.App("swb", "Static website builder: renders handlebars templates with per-language messages")
	app.Version("v version", "swb "+appVersion())
	app.StringOptPtr(&configFN, "c config", "", "a yaml file with the build configuration")
	app.StringOptPtr(&opts.SourceDir, "s source", "", "directory with templates, assets and message catalogs")
	app.StringOptPtr(&opts.OutputDir, "o output", "", "directory receiving the site, removed and recreated on every build")
	app.StringsOptPtr(&opts.Languages, "l lang", nil, "target language, repeat for several")
	app.StringsOptPtr(&opts.Ignore, "i ignore", nil, "regular expression matched against absolute paths, repeat for several")
	app.BoolPtr(&opts.Minify.HTML, cli.BoolOpt{Name: "minify-html", Desc: "minify rendered templates", SetByUser: &set.HTML})
	app.BoolPtr(&opts.Minify.CSS, cli.BoolOpt{Name: "minify-css", Desc: "minify stylesheets", SetByUser: &set.CSS})
	app.BoolPtr(&opts.Minify.XML, cli.BoolOpt{Name: "minify-xml", Desc: "collapse whitespace between tags in svg and xml files", SetByUser: &set.XML})
	app.IntOptPtr(&opts.LogLevel, "log-level", 0, "1=debug, 2=info, 3=warning, 4=error")
	app.StringOptPtr(&opts.LogFormat, "log-format", "", "text or json")

	app.Action = func() {
		cfg, err := loadConfig(configFN, &opts, set)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			cli.Exit(1)
		}

		log := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
		report, err := builder.Build(cfg, log)
		if err != nil {
			log.Error("build failed", "err", err)
			cli.Exit(1)
		}
		if n := len(report.Issues); n > 0 {
			log.Warn(fmt.Sprintf("%d output(s) skipped", n))
		}
	}

	app.Run(os.Args)
}

// minifySet records which minify toggles were given on the command line;
// `--minify-css=false` turns off a toggle the config file enables.
type minifySet struct {
	HTML, CSS, XML bool
}

// loadConfig reads the config file, if any, and lets command line values
// override it.
func loadConfig(fn string, flags *model.Config, set minifySet) (*model.Config, error) {
	cfg := &model.Config{}
	if fn != "" {
		var err error
		if cfg, err = model.LoadConfig(fn); err != nil {
			return nil, err
		}
	}

	if flags.SourceDir != "" {
		cfg.SourceDir = flags.SourceDir
	}
	if flags.OutputDir != "" {
		cfg.OutputDir = flags.OutputDir
	}
	if len(flags.Languages) > 0 {
		cfg.Languages = flags.Languages
	}
	if len(flags.Ignore) > 0 {
		cfg.Ignore = flags.Ignore
	}
	if set.HTML {
		cfg.Minify.HTML = flags.Minify.HTML
	}
	if set.CSS {
		cfg.Minify.CSS = flags.Minify.CSS
	}
	if set.XML {
		cfg.Minify.XML = flags.Minify.XML
	}
	if flags.LogLevel != 0 {
		cfg.LogLevel = flags.LogLevel
	}
	if flags.LogFormat != "" {
		cfg.LogFormat = flags.LogFormat
	}

	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}
