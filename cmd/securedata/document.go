// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-secure-data/internal/document"
	"github.com/MKhiriev/go-secure-data/internal/service"
)

var (
	errKeyNotFound = errors.New("key not found")
	errWrongType   = errors.New("value has another type")
)

// Value types accepted by --type.
const (
	typeString = "string"
	typeBool   = "bool"
	typeInt    = "int"
	typeLong   = "long"
	typeFloat  = "float"
	typeDouble = "double"
	typeObject = "object"
	typeArray  = "array"
)

func newDocCmd(a *app) *cobra.Command {
	var identity string

	cmd := &cobra.Command{
		Use:   "doc",
		Short: "Read and edit an encrypted JSON document",
	}
	cmd.PersistentFlags().StringVar(&identity, "identity", service.DefaultIdentity, "document identity in the blob store")

	cmd.AddCommand(
		newDocKeysCmd(a, &identity),
		newDocGetCmd(a, &identity),
		newDocPutCmd(a, &identity),
		newDocRemoveCmd(a, &identity),
		newDocDumpCmd(a, &identity),
		newDocClearCmd(a, &identity),
	)

	return cmd
}

// withDocument opens identity, runs fn and, when fn changed the document,
// saves it before the registry is closed.
func (a *app) withDocument(cmd *cobra.Command, identity string, fn func(*document.Document) error) (err error) {
	ctx := a.logger.WithContext(cmd.Context())

	password, err := a.password(cmd)
	if err != nil {
		return err
	}

	registry, closeRegistry, err := a.openRegistry(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeRegistry(); err == nil {
			err = cerr
		}
	}()

	f, err := registry.Open(ctx, identity, password)
	if err != nil {
		return fmt.Errorf("open %q: %w", identity, err)
	}

	if err = fn(f.Document); err != nil {
		return err
	}

	if f.Dirty() {
		return f.Save(ctx)
	}
	return nil
}

func newDocKeysCmd(a *app, identity *string) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List the document keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDocument(cmd, *identity, func(doc *document.Document) error {
				for _, k := range doc.Keys() {
					fmt.Fprintln(cmd.OutOrStdout(), k)
				}
				return nil
			})
		},
	}
}

func newDocGetCmd(a *app, identity *string) *cobra.Command {
	var (
		valueType string
		def       string
		copyValue bool
	)

	cmd := &cobra.Command{
		Use:   "get KEY",
		Short: "Print a value",
		Long: `Print the value stored under KEY, read as --type.

A missing or unreadable value is an error unless --default is given, in
which case the default is printed and stored under KEY.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			hasDefault := cmd.Flags().Changed("default")

			return a.withDocument(cmd, *identity, func(doc *document.Document) error {
				if !hasDefault && !doc.Has(key) {
					return fmt.Errorf("%w: %q", errKeyNotFound, key)
				}

				// Without --default a typed read must not rewrite the value,
				// so it runs against a scratch copy.
				target := doc
				if !hasDefault {
					scratch, err := document.Parse(doc.JSON())
					if err != nil {
						return err
					}
					target = scratch
				}

				value, err := getValue(target, key, valueType, def)
				if err != nil {
					return err
				}
				if !hasDefault && target.Revision() != 0 {
					return fmt.Errorf("%w: %q is not a %s", errWrongType, key, valueType)
				}

				if copyValue {
					if err = clipboard.WriteAll(value); err != nil {
						return fmt.Errorf("copy to clipboard: %w", err)
					}
					fmt.Fprintln(cmd.ErrOrStderr(), "copied to clipboard")
					return nil
				}

				fmt.Fprintln(cmd.OutOrStdout(), value)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&valueType, "type", "t", typeString, "string, bool, int, long, float, double, object or array")
	cmd.Flags().StringVar(&def, "default", "", "value to store and print when KEY is missing")
	cmd.Flags().BoolVar(&copyValue, "copy", false, "copy the value to the clipboard instead of printing it")

	return cmd
}

func newDocPutCmd(a *app, identity *string) *cobra.Command {
	var valueType string

	cmd := &cobra.Command{
		Use:   "put KEY VALUE",
		Short: "Store a value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDocument(cmd, *identity, func(doc *document.Document) error {
				return putValue(doc, args[0], valueType, args[1])
			})
		},
	}
	cmd.Flags().StringVarP(&valueType, "type", "t", typeString, "string, bool, int, long, float, double, object or array")

	return cmd
}

func newDocRemoveCmd(a *app, identity *string) *cobra.Command {
	return &cobra.Command{
		Use:     "rm KEY...",
		Aliases: []string{"remove"},
		Short:   "Remove keys",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDocument(cmd, *identity, func(doc *document.Document) error {
				for _, key := range args {
					doc.Remove(key)
				}
				return nil
			})
		},
	}
}

func newDocDumpCmd(a *app, identity *string) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the decrypted document as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDocument(cmd, *identity, func(doc *document.Document) error {
				var out bytes.Buffer
				if err := json.Indent(&out, doc.JSON(), "", "  "); err != nil {
					return err
				}
				out.WriteByte('\n')
				_, err := out.WriteTo(cmd.OutOrStdout())
				return err
			})
		},
	}
}

func newDocClearCmd(a *app, identity *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDocument(cmd, *identity, func(doc *document.Document) error {
				doc.Clear()
				return nil
			})
		},
	}
}

func getValue(doc *document.Document, key, valueType, def string) (string, error) {
	switch strings.ToLower(valueType) {
	case typeString:
		return doc.GetString(key, def), nil
	case typeBool:
		d, err := parseDefault(def, strconv.ParseBool)
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(doc.GetBool(key, d)), nil
	case typeInt:
		d, err := parseDefault(def, func(s string) (int64, error) { return strconv.ParseInt(s, 10, 32) })
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(int64(doc.GetInt(key, int32(d))), 10), nil
	case typeLong:
		d, err := parseDefault(def, func(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) })
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(doc.GetLong(key, d), 10), nil
	case typeFloat:
		d, err := parseDefault(def, func(s string) (float64, error) { return strconv.ParseFloat(s, 32) })
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(float64(doc.GetFloat(key, float32(d))), 'g', -1, 32), nil
	case typeDouble:
		d, err := parseDefault(def, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(doc.GetDouble(key, d), 'g', -1, 64), nil
	case typeObject:
		if obj := doc.GetObject(key); obj != nil {
			return marshalValue(obj)
		}
		if doc.Has(key) {
			return "", fmt.Errorf("%w: %q is not an object", errWrongType, key)
		}
		var obj map[string]any
		if err := json.Unmarshal([]byte(def), &obj); err != nil || obj == nil {
			return "", fmt.Errorf("invalid object default %q", def)
		}
		if err := doc.PutObject(key, obj); err != nil {
			return "", err
		}
		return marshalValue(doc.GetObject(key))
	case typeArray:
		if arr := doc.GetArray(key); arr != nil {
			return marshalValue(arr)
		}
		if doc.Has(key) {
			return "", fmt.Errorf("%w: %q is not an array", errWrongType, key)
		}
		var arr []any
		if err := json.Unmarshal([]byte(def), &arr); err != nil || arr == nil {
			return "", fmt.Errorf("invalid array default %q", def)
		}
		if err := doc.PutArray(key, arr); err != nil {
			return "", err
		}
		return marshalValue(doc.GetArray(key))
	default:
		return "", fmt.Errorf("unknown value type %q", valueType)
	}
}

func putValue(doc *document.Document, key, valueType, raw string) error {
	switch strings.ToLower(valueType) {
	case typeString:
		doc.PutString(key, raw)
	case typeBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		doc.PutBool(key, v)
	case typeInt:
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return err
		}
		doc.PutInt(key, int32(v))
	case typeLong:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return err
		}
		doc.PutLong(key, v)
	case typeFloat:
		v, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return err
		}
		doc.PutFloat(key, float32(v))
	case typeDouble:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return err
		}
		doc.PutDouble(key, v)
	case typeObject:
		var v map[string]any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return fmt.Errorf("parse object: %w", err)
		}
		return doc.PutObject(key, v)
	case typeArray:
		var v []any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return fmt.Errorf("parse array: %w", err)
		}
		return doc.PutArray(key, v)
	default:
		return fmt.Errorf("unknown value type %q", valueType)
	}
	return nil
}

// parseDefault parses def with parse; an empty def is the zero value.
func parseDefault[T any](def string, parse func(string) (T, error)) (T, error) {
	var zero T
	if def == "" {
		return zero, nil
	}
	v, err := parse(def)
	if err != nil {
		return zero, fmt.Errorf("invalid --default %q: %w", def, err)
	}
	return v, nil
}

func marshalValue(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
