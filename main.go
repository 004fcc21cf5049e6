package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
)

type cli struct {
	SN       string `arg:"" name:"sn" help:"serial number in ASCII (HWTC542D049B) or HEX (48575443542D049B) format, \"-\" separators are ignored"`
	Encoding string `name:"encoding" short:"e" help:"encoding used to convert between bytes and text" default:"utf-8"`
	Strict   bool   `name:"strict" short:"s" help:"strict mode: report why a 12 or 16 character SN could not be parsed instead of a generic unknown format error"`
	Verbose  int    `name:"verbose" short:"v" type:"counter" help:"log to standard error, repeat for more detail"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(argv []string, stdout, stderr io.Writer) int {
	var args cli
	exitCode := -1
	parser, err := kong.New(&args,
		kong.Name("gpon_sn"),
		kong.Description("GPON serial number converter (ASCII <-> HEX)"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) {
			if exitCode < 0 {
				exitCode = code
			}
		}),
	)
	if err != nil {
		fmt.Fprintf(stderr, "gpon_sn: %v\n", err)
		return 2
	}

	_, err = parser.Parse(argv)
	if exitCode >= 0 {
		return exitCode
	}
	if err != nil {
		fmt.Fprintf(stderr, "gpon_sn: error: %v\n", err)
		return 2
	}

	SetLevel(stderr, levelOf(args.Verbose))
	ctx := CtxAddKvs(context.Background(), "sn", args.SN, "encoding", args.Encoding, "strict", args.Strict)

	result, err := convertArgs(ctx, &args)
	if err != nil {
		LoggerOf(ctx).Info("convert failed", zap.Error(err))
		fmt.Fprintf(stdout, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintln(stdout, result)
	return 0
}

func convertArgs(ctx context.Context, args *cli) (string, error) {
	enc, err := lookupEncoding(args.Encoding)
	if err != nil {
		return "", err
	}

	result, form, err := Converter{Encoding: enc, Strict: args.Strict}.convertText(args.SN)
	LoggerOf(ctx).Debug("detected form", zap.Stringer("form", form))
	if err != nil {
		return "", err
	}

	LoggerOf(ctx).Info("converted", zap.Stringer("from", form), zap.String("result", result))
	return result, nil
}
