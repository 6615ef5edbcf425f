// Copyright 2018 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	as "github.com/aerospike/aerospike-client-go/v7"
	"github.com/chzyer/readline"
	"github.com/mattn/go-shellwords"
	"github.com/pingcap/errors"
	"github.com/spf13/cobra"

	"github.com/aerospike-workshop/exercises/pkg/db"
	"github.com/aerospike-workshop/exercises/pkg/record"
	"github.com/aerospike-workshop/exercises/pkg/util"
)

func newShellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive client for inspecting workshop records",
		Args:  cobra.NoArgs,
		Run:   runShellCommandFunc,
	}
}

var shellNamespace string

func runShellCommandFunc(cmd *cobra.Command, args []string) {
	initialGlobal()
	shellNamespace = globalDB.Namespace()

	shellLoop()
}

func runShellCommand(args []string) {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Workshop shell command",
	}

	cmd.SetArgs(args)
	cmd.ParseFlags(args)

	cmd.AddCommand(
		&cobra.Command{
			Use:                   "get set key [bin0 bin1 ...]",
			Short:                 "Read a record",
			Args:                  cobra.MinimumNArgs(2),
			Run:                   runShellGetCommand,
			DisableFlagsInUseLine: true,
		},
		&cobra.Command{
			Use:                   "exists set key",
			Short:                 "Check whether a record exists",
			Args:                  cobra.ExactArgs(2),
			Run:                   runShellExistsCommand,
			DisableFlagsInUseLine: true,
		},
		&cobra.Command{
			Use:                   "put set key bin0=value0 [bin1=value1 ...]",
			Short:                 "Write bins of a record",
			Args:                  cobra.MinimumNArgs(3),
			Run:                   runShellPutCommand,
			DisableFlagsInUseLine: true,
		},
		&cobra.Command{
			Use:                   "add set key bin0=delta0 [bin1=delta1 ...]",
			Short:                 "Increment integer bins of a record",
			Args:                  cobra.MinimumNArgs(3),
			Run:                   runShellAddCommand,
			DisableFlagsInUseLine: true,
		},
		&cobra.Command{
			Use:                   "delete set key",
			Short:                 "Delete a record",
			Args:                  cobra.ExactArgs(2),
			Run:                   runShellDeleteCommand,
			DisableFlagsInUseLine: true,
		},
		&cobra.Command{
			Use:                   "info command",
			Short:                 "Send an info command to the first node",
			Args:                  cobra.MinimumNArgs(1),
			Run:                   runShellInfoCommand,
			DisableFlagsInUseLine: true,
		},
		&cobra.Command{
			Use:                   "sindex",
			Short:                 "List the secondary indexes of the namespace",
			Args:                  cobra.NoArgs,
			Run:                   runShellSindexCommand,
			DisableFlagsInUseLine: true,
		},
		&cobra.Command{
			Use:                   "ns [namespace]",
			Short:                 "Get or [set] the namespace",
			Args:                  cobra.MaximumNArgs(1),
			Run:                   runShellNsCommand,
			DisableFlagsInUseLine: true,
		},
	)

	if err := cmd.Execute(); err != nil {
		fmt.Println(cmd.UsageString())
	}
}

func shellKey(set, userKey string) (*as.Key, error) {
	key, err := as.NewKey(shellNamespace, set, userKey)
	if err != nil {
		return nil, errors.Annotatef(err, "key %s/%s/%s", shellNamespace, set, userKey)
	}
	return key, nil
}

// parseValue reads integers and floats as numbers and keeps anything else
// as a string.
func parseValue(s string) interface{} {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func parseBins(args []string) (as.BinMap, error) {
	bins := make(as.BinMap, len(args))
	for _, arg := range args {
		sep := strings.SplitN(arg, "=", 2)
		if len(sep) != 2 || sep[0] == "" {
			return nil, errors.Errorf("bad bin: `%s`, expected format `bin=value`", arg)
		}
		bins[sep[0]] = parseValue(sep[1])
	}
	return bins, nil
}

func parseDeltas(args []string) ([]*as.Operation, error) {
	ops := make([]*as.Operation, 0, len(args)+1)
	for _, arg := range args {
		sep := strings.SplitN(arg, "=", 2)
		if len(sep) != 2 || sep[0] == "" {
			return nil, errors.Errorf("bad delta: `%s`, expected format `bin=delta`", arg)
		}
		delta, err := strconv.ParseInt(sep[1], 10, 64)
		if err != nil {
			return nil, errors.Errorf("invalid delta %s for bin %s", sep[1], sep[0])
		}
		ops = append(ops, as.AddOp(as.NewBin(sep[0], delta)))
	}
	return append(ops, as.GetOp()), nil
}

func runShellGetCommand(cmd *cobra.Command, args []string) {
	key, err := shellKey(args[0], args[1])
	if err != nil {
		fmt.Println(err)
		return
	}
	rec, err := globalDB.Get(globalContext, key, args[2:]...)
	if err != nil {
		fmt.Printf("Get %s failed %v\n", args[1], err)
		return
	}
	if rec == nil {
		fmt.Printf("Get empty for %s\n", args[1])
		return
	}
	record.PrintRecord(os.Stdout, key, rec)
}

func runShellExistsCommand(cmd *cobra.Command, args []string) {
	key, err := shellKey(args[0], args[1])
	if err != nil {
		fmt.Println(err)
		return
	}
	ok, err := globalDB.Exists(globalContext, key)
	if err != nil {
		fmt.Printf("Exists %s failed %v\n", args[1], err)
		return
	}
	fmt.Printf("%s exists: %v\n", args[1], ok)
}

func runShellPutCommand(cmd *cobra.Command, args []string) {
	key, err := shellKey(args[0], args[1])
	if err != nil {
		fmt.Println(err)
		return
	}
	bins, err := parseBins(args[2:])
	if err != nil {
		fmt.Println(err)
		return
	}
	if err = globalDB.Put(globalContext, nil, key, bins); err != nil {
		fmt.Printf("Put %s failed %v\n", args[1], err)
		return
	}
	fmt.Printf("Put %s ok\n", args[1])
}

func runShellAddCommand(cmd *cobra.Command, args []string) {
	key, err := shellKey(args[0], args[1])
	if err != nil {
		fmt.Println(err)
		return
	}
	ops, err := parseDeltas(args[2:])
	if err != nil {
		fmt.Println(err)
		return
	}
	rec, err := globalDB.Operate(globalContext, globalDB.WritePolicy(), key, ops...)
	if err != nil {
		fmt.Printf("Add %s failed %v\n", args[1], err)
		return
	}
	record.PrintRecord(os.Stdout, key, rec)
}

func runShellDeleteCommand(cmd *cobra.Command, args []string) {
	key, err := shellKey(args[0], args[1])
	if err != nil {
		fmt.Println(err)
		return
	}
	existed, err := globalDB.Delete(globalContext, key)
	if err != nil {
		fmt.Printf("Delete %s failed %v\n", args[1], err)
		return
	}
	if !existed {
		fmt.Printf("Delete %s: not found\n", args[1])
		return
	}
	fmt.Printf("Delete %s ok\n", args[1])
}

func runShellInfoCommand(cmd *cobra.Command, args []string) {
	command := strings.Join(args, " ")
	resp, err := globalDB.Info(globalContext, command)
	if err != nil {
		fmt.Printf("Info %s failed %v\n", command, err)
		return
	}
	for _, line := range strings.Split(resp, ";") {
		fmt.Println(line)
	}
}

func sindexRows(indexes []db.SecondaryIndex) [][]string {
	rows := make([][]string, 0, len(indexes))
	for _, idx := range indexes {
		rows = append(rows, []string{
			idx.Name, idx.Set, idx.Bin,
			string(idx.BinType), string(idx.IndexType), idx.State,
		})
	}
	return rows
}

func runShellSindexCommand(cmd *cobra.Command, args []string) {
	resp, err := globalDB.Info(globalContext, "sindex/"+shellNamespace)
	if err != nil {
		fmt.Printf("Sindex failed %v\n", err)
		return
	}
	indexes := db.ParseSecondaryIndexes(resp)
	if len(indexes) == 0 {
		fmt.Printf("No indexes in %s\n", shellNamespace)
		return
	}
	style := globalConfig.Output
	if style == util.OutputStylePlain {
		style = util.OutputStyleTable
	}
	util.Render(os.Stdout, style, []string{"Name", "Set", "Bin", "Bin Type", "Index Type", "State"}, sindexRows(indexes))
}

func runShellNsCommand(cmd *cobra.Command, args []string) {
	if len(args) == 1 {
		shellNamespace = args[0]
	}
	fmt.Printf("Using namespace %s\n", shellNamespace)
}

func shellLoop() {
	l, err := readline.NewEx(&readline.Config{
		Prompt:            "\033[31m»\033[0m ",
		HistoryFile:       filepath.Join(os.TempDir(), "workshop-readline.tmp"),
		InterruptPrompt:   "^C",
		EOFPrompt:         "^D",
		HistorySearchFold: true,
	})
	if err != nil {
		util.Fatal(err)
	}
	defer l.Close()

	for {
		line, err := l.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				return
			} else if err == io.EOF {
				return
			}
			continue
		}
		line = strings.TrimSpace(line)
		if line == "exit" {
			return
		}
		if line == "" {
			continue
		}
		args, err := shellwords.Parse(line)
		if err != nil {
			fmt.Printf("Parse %q failed %v\n", line, err)
			continue
		}
		runShellCommand(args)
	}
}
