// FILE: docsync/cmd/docsync/commands.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/PaesslerAG/jsonpath"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"docsync"
	"docsync/internal/codec"
)

// app carries what the global flags resolve to.
type app struct {
	debug      bool
	jsonLog    bool
	configPath string
	format     string
	logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:          "docsync",
		Short:        "Inspect and edit files through docsync mappers",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSettings(a.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("json-log") {
				s.JSONLog = a.jsonLog
			}
			if a.format == "" {
				a.format = s.Format
			}
			a.logger = newLogger(cmd.ErrOrStderr(), s, a.debug)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging on stderr")
	cmd.PersistentFlags().BoolVar(&a.jsonLog, "json-log", false, "log as JSON instead of text")
	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "settings file (default: discovered docsync.toml)")
	cmd.PersistentFlags().StringVar(&a.format, "format", "", "document format: yaml, json or toml (default: by extension)")

	cmd.AddCommand(
		showCmd(a),
		getCmd(a),
		setCmd(a),
		queryCmd(a),
		dumpCmd(a),
	)
	return cmd
}

// open binds a fresh record to path with inferred attributes.
func (a *app) open(path string) (*docsync.Record, *docsync.Mapper, error) {
	format, err := codec.ParseFormat(a.format)
	if err != nil {
		return nil, nil, err
	}

	logger := a.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	b := docsync.NewBuilder().
		WithPath(path).
		WithAuto(false).
		WithFormat(format).
		WithLogger(logger).
		WithParseErrorHandler(func(path string, err error) {
			logger.Error("document.invalid", "path", path, "error", err)
		})

	rec, err := docsync.Bind(b, docsync.NewRecord(nil))
	if err != nil {
		return nil, nil, err
	}
	m, err := docsync.GetMapper(rec)
	if err != nil {
		return nil, nil, err
	}
	return rec, m, nil
}

func showCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show FILE",
		Short: "Print the document as docsync would write it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, m, err := a.open(args[0])
			if err != nil {
				return err
			}
			return m.Dump(cmd.OutOrStdout())
		},
	}
}

func getCmd(a *app) *cobra.Command {
	var flat bool

	cmd := &cobra.Command{
		Use:   "get FILE KEY",
		Short: "Print the value at a dot-separated key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, _, err := a.open(args[0])
			if err != nil {
				return err
			}
			segments, err := splitPath(args[1])
			if err != nil {
				return err
			}

			value, ok := lookupPath(rec.Map(), segments)
			if !ok {
				return fmt.Errorf("key %q not found in %s", args[1], args[0])
			}

			if nested, isMap := value.(map[string]any); isMap && flat {
				return printFlat(cmd.OutOrStdout(), flattenMap(nested, args[1]))
			}
			return printValue(cmd.OutOrStdout(), value)
		},
	}

	cmd.Flags().BoolVar(&flat, "flat", false, "print nested mappings as key=value lines")
	return cmd
}

func setCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set FILE KEY VALUE",
		Short: "Set the value at a dot-separated key; VALUE is read as a YAML scalar",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, m, err := a.open(args[0])
			if err != nil {
				return err
			}
			segments, err := splitPath(args[1])
			if err != nil {
				return err
			}

			value := codec.ParseScalar(args[2])
			top := segments[0]
			if len(segments) > 1 {
				nested, _ := rec.Map()[top].(map[string]any)
				if nested == nil {
					nested = make(map[string]any)
				}
				setNestedValue(nested, segments[1:], value)
				value = nested
			}

			if err := rec.Set(top, value); err != nil {
				return err
			}
			if err := m.Store(); err != nil {
				return err
			}
			a.logger.Info("document.updated", "path", m.Path(), "key", args[1])
			return nil
		},
	}
}

func queryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "query FILE EXPR",
		Short: "Evaluate a JSONPath expression, e.g. $.results[*].label",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, _, err := a.open(args[0])
			if err != nil {
				return err
			}

			result, err := jsonpath.Get(args[1], rec.Map())
			if err != nil {
				return fmt.Errorf("query %q failed: %w", args[1], err)
			}

			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode query result: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}

func dumpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dump FILE",
		Short: "Print mapper state and the Go values of every attribute",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, m, err := a.open(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if _, err := io.WriteString(out, m.Debug()); err != nil {
				return err
			}
			cfg := spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true}
			cfg.Fdump(out, rec.Map())
			return nil
		},
	}
}

// printValue prints scalars as text and containers as YAML.
func printValue(w io.Writer, value any) error {
	switch value.(type) {
	case map[string]any, []any:
		data, err := codec.For(codec.FormatYAML, "").Encode(value)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case nil:
		_, err := fmt.Fprintln(w, "null")
		return err
	default:
		_, err := fmt.Fprintln(w, value)
		return err
	}
}

func printFlat(w io.Writer, flat map[string]any) error {
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%s=%v\n", k, flat[k]); err != nil {
			return err
		}
	}
	return nil
}
