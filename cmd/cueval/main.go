// Command cueval evaluates and vets CUE documents through the cue-runtime
// binding.
//
//	cueval eval config.cue defaults.cue          # unify, validate, print JSON
//	cueval eval --out yaml config.cue            # YAML output
//	cueval vet schema.cue data1.cue data2.cue    # validate data against schema
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cueruntime "github.com/wippyai/cue-runtime"
	"github.com/wippyai/cue-runtime/engine"
)

func main() {
	var debug bool
	var out string

	root := &cobra.Command{
		Use:           "cueval",
		Short:         "Evaluate and vet CUE documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug {
				log, err := zap.NewDevelopment()
				if err != nil {
					return err
				}
				engine.SetLogger(log)
			}
			return nil
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "log engine resource events")

	evalCmd := &cobra.Command{
		Use:   "eval FILE...",
		Short: "Unify the given files, validate, and print the result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(args, out)
		},
	}
	evalCmd.Flags().StringVar(&out, "out", "json", "output encoding: json or yaml")
	root.AddCommand(evalCmd)

	root.AddCommand(&cobra.Command{
		Use:   "vet SCHEMA DATA...",
		Short: "Validate data files against a schema",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVet(args[0], args[1:])
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "cueval: %v\n", err)
		os.Exit(1)
	}
}

func runEval(files []string, out string) error {
	ctx, err := cueruntime.NewContext()
	if err != nil {
		return err
	}
	defer ctx.Close()

	merged, err := compileAll(ctx, files)
	if err != nil {
		return err
	}
	defer merged.Close()

	if err := merged.Validate(); err != nil {
		return err
	}

	var data []byte
	switch out {
	case "json":
		data, err = merged.ToJSON()
	case "yaml":
		data, err = merged.ToYAML()
	default:
		return fmt.Errorf("unknown output encoding %q", out)
	}
	if err != nil {
		return err
	}

	fmt.Println(string(data))
	return nil
}

func runVet(schemaFile string, dataFiles []string) error {
	ctx, err := cueruntime.NewContext()
	if err != nil {
		return err
	}
	defer ctx.Close()

	schema, err := compileFile(ctx, schemaFile)
	if err != nil {
		return err
	}
	defer schema.Close()

	failed := 0
	for _, f := range dataFiles {
		data, err := compileFile(ctx, f)
		if err != nil {
			return err
		}

		merged := schema.Unify(data)
		if err := merged.Validate(); err != nil {
			fmt.Printf("%s: %v\n", f, err)
			failed++
		} else {
			fmt.Printf("%s: ok\n", f)
		}
		merged.Close()
		data.Close()
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed validation", failed, len(dataFiles))
	}
	return nil
}

// compileAll compiles every file and unifies them left to right.
func compileAll(ctx *cueruntime.Context, files []string) (*cueruntime.Value, error) {
	var merged *cueruntime.Value
	for _, f := range files {
		v, err := compileFile(ctx, f)
		if err != nil {
			if merged != nil {
				merged.Close()
			}
			return nil, err
		}
		if merged == nil {
			merged = v
			continue
		}
		next := merged.Unify(v)
		merged.Close()
		v.Close()
		merged = next
	}
	return merged, nil
}

func compileFile(ctx *cueruntime.Context, path string) (*cueruntime.Value, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	v, err := ctx.CompileBytes(src)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", path, err)
	}
	return v, nil
}
