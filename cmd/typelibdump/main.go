// Copyright 2024 The typelib Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	typelib "github.com/gobject-introspection/typelib"
)

var verbose bool

func openTypelib(path string) (*typelib.Handle, error) {
	return typelib.NewFromFile(path, nil)
}

func dump(cmd *cobra.Command, args []string) {
	path := args[0]
	h, err := openTypelib(path)
	if err != nil {
		log.Printf("error while opening %s: %s", path, err)
		return
	}
	defer h.Close()

	wantValidate, _ := cmd.Flags().GetBool("validate-only")
	if err := h.Validate(); err != nil {
		fmt.Printf("invalid typelib: %s\n", err)
		if wantValidate {
			os.Exit(1)
		}
		return
	}

	namespace, err := h.GetNamespace()
	if err != nil {
		log.Printf("error reading namespace: %s", err)
		return
	}

	type entryDump struct {
		Index int    `json:"index"`
		Name  string `json:"name"`
		Type  string `json:"type"`
	}
	var entries []entryDump
	for i := uint16(1); i <= h.NEntries(); i++ {
		entry, err := h.GetDirEntry(i)
		if err != nil {
			log.Printf("error reading entry %d: %s", i, err)
			continue
		}
		name, err := h.EntryName(entry)
		if err != nil {
			log.Printf("error reading entry %d name: %s", i, err)
			continue
		}
		entries = append(entries, entryDump{
			Index: int(i),
			Name:  name,
			Type:  entry.BlobType.String(),
		})
	}

	out, _ := json.MarshalIndent(struct {
		Namespace string      `json:"namespace"`
		Entries   []entryDump `json:"entries"`
	}{Namespace: namespace, Entries: entries}, "", "\t")
	fmt.Println(string(out))
}

func validate(cmd *cobra.Command, args []string) {
	path := args[0]
	h, err := openTypelib(path)
	if err != nil {
		fmt.Printf("error while opening %s: %s\n", path, err)
		os.Exit(1)
	}
	defer h.Close()

	if err := h.Validate(); err != nil {
		fmt.Printf("invalid: %s\n", err)
		os.Exit(1)
	}
	fmt.Println("valid")
}

func main() {
	var rootCmd = &cobra.Command{
		Use:   "typelibdump",
		Short: "A GObject-Introspection typelib reader",
		Long:  "Validates and dumps the structure of .typelib files",
	}

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("typelibdump version 0.0.1")
		},
	}

	var validateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Validate a typelib's structural integrity",
		Args:  cobra.ExactArgs(1),
		Run:   validate,
	}

	var dumpCmd = &cobra.Command{
		Use:   "dump",
		Short: "Dump a typelib's namespace and directory entries",
		Args:  cobra.ExactArgs(1),
		Run:   dump,
	}
	dumpCmd.Flags().Bool("validate-only", false, "exit non-zero on an invalid typelib instead of dumping")

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.AddCommand(versionCmd, validateCmd, dumpCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
