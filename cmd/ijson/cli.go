package main

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oarkflow/ijson"
	"github.com/oarkflow/ijson/arena"
	"github.com/oarkflow/ijson/decoder"
	"github.com/oarkflow/ijson/encoder"
	"github.com/oarkflow/ijson/formatter"
	"github.com/oarkflow/ijson/parser"
)

// Options holds the flags shared by every subcommand.
type Options struct {
	MaxDepth  int
	ChunkSize int
	LogLevel  string
	LogFormat string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *log.Logger
}

func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.IntVar(&o.MaxDepth, "max-depth", parser.DefaultMaxNestingLevels, "Maximum nesting of objects and arrays.")
	fs.IntVar(&o.ChunkSize, "chunk-size", arena.DefaultChunkSize, "Arena chunk size used for unescaped strings.")
	fs.StringVar(&o.LogLevel, "log-level", "info", "Log level (debug, info, warn, error).")
	fs.StringVar(&o.LogFormat, "log-format", "text", "Log format (text, json, logfmt).")
}

func (o *Options) setupLogger() error {
	level, err := log.ParseLevel(o.LogLevel)
	if err != nil {
		return errors.Wrapf(err, "--log-level")
	}
	var logFormatter log.Formatter
	switch strings.ToLower(o.LogFormat) {
	case "text":
		logFormatter = log.TextFormatter
	case "json":
		logFormatter = log.JSONFormatter
	case "logfmt":
		logFormatter = log.LogfmtFormatter
	default:
		return errors.Newf("--log-format: unknown format %q", o.LogFormat)
	}
	o.logger = log.NewWithOptions(o.stderr, log.Options{
		Level:     level,
		Prefix:    "ijson",
		Formatter: logFormatter,
	})
	marshalFn, unmarshalFn := ijson.Hooks()
	o.logger.Debug("configured", "max-depth", o.MaxDepth, "chunk-size", o.ChunkSize, "marshaler", marshalFn, "unmarshaler", unmarshalFn)
	return nil
}

func (o *Options) parserOptions() []parser.Option {
	return []parser.Option{
		parser.WithMaxNestingLevels(o.MaxDepth),
		parser.WithChunkSize(o.ChunkSize),
	}
}

// input opens the file named by args, or stdin when there is none.
func (o *Options) input(args []string) (io.ReadCloser, string, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(o.stdin), "<stdin>", nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, "", errors.Wrap(err, "open input")
	}
	return f, args[0], nil
}

func (o *Options) readAll(args []string) ([]byte, string, error) {
	r, name, err := o.input(args)
	if err != nil {
		return nil, "", err
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", errors.Wrapf(err, "read %s", name)
	}
	o.logger.Debug("read input", "name", name, "bytes", len(data))
	return data, name, nil
}

func NewRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	o := &Options{stdin: stdin, stdout: stdout, stderr: stderr}
	cmd := &cobra.Command{
		Use:           "ijson",
		Short:         "Parse, validate and format JSON documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.setupLogger()
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	o.AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(newFmtCommand(o), newCheckCommand(o), newCompleteCommand(o))
	return cmd
}

func newFmtCommand(o *Options) *cobra.Command {
	var (
		pretty       bool
		validateUTF8 bool
		stream       bool
	)
	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Reformat a document, compact by default",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if stream {
				return runFmtStream(o, args, pretty, validateUTF8)
			}
			data, name, err := o.readAll(args)
			if err != nil {
				return err
			}
			p := parser.New(o.parserOptions()...)
			if err := p.Parse(data); err != nil {
				o.logger.Error("parse failed", "name", name, "offset", parser.Offset(err), "err", err)
				return err
			}
			out, err := formatter.AppendWith(nil, p.Value(), formatter.Options{Pretty: pretty, ValidateUTF8: validateUTF8})
			if err != nil {
				return err
			}
			if !pretty {
				out = append(out, '\n')
			}
			_, err = o.stdout.Write(out)
			return err
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent output with tabs.")
	cmd.Flags().BoolVar(&validateUTF8, "validate-utf8", false, "Fail on strings that are not valid UTF-8.")
	cmd.Flags().BoolVar(&stream, "stream", false, "Treat the input as a sequence of documents.")
	return cmd
}

func runFmtStream(o *Options, args []string, pretty, validateUTF8 bool) error {
	r, name, err := o.input(args)
	if err != nil {
		return err
	}
	defer r.Close()

	dec := decoder.New(r,
		decoder.WithParserOptions(o.parserOptions()...),
		decoder.WithLogger(o.logger.With("name", name)),
	)
	enc := encoder.New(o.stdout)
	enc.SetPretty(pretty)
	enc.SetValidateUTF8(validateUTF8)
	for n := 0; ; n++ {
		var doc ijson.Value
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				o.logger.Debug("stream done", "documents", n)
				return nil
			}
			o.logger.Error("decode failed", "document", n, "err", err)
			return err
		}
		if err := enc.Encode(&doc); err != nil {
			return err
		}
	}
}

func newCheckCommand(o *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Validate a document and report where parsing failed",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, name, err := o.readAll(args)
			if err != nil {
				return err
			}
			p := parser.New(o.parserOptions()...)
			if err := p.Parse(data); err != nil {
				cmd.Printf("%s: %v\n", name, err)
				return err
			}
			stats := p.Arena().Stats()
			o.logger.Debug("parsed", "name", name, "kind", p.Value().Kind(), "arena-bytes", stats.Used, "arena-chunks", stats.Chunks)
			cmd.Printf("%s: ok\n", name)
			return nil
		},
	}
}

func newCompleteCommand(o *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "complete [file]",
		Short: "Report whether the input looks like a complete document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, _, err := o.readAll(args)
			if err != nil {
				return err
			}
			cmd.Println(parser.MayBeComplete(data))
			return nil
		},
	}
}
