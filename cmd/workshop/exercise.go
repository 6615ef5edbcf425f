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

	"github.com/spf13/cobra"

	"github.com/aerospike-workshop/exercises/pkg/exercise"
)

func newExerciseCommand(e exercise.Exercise) *cobra.Command {
	m := &cobra.Command{
		Use:   e.Name(),
		Short: fmt.Sprintf("Run the %s exercise", e.Title()),
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			runExercise(e)
		},
	}
	m.Flags().BoolVar(&printSummary, "summary", false, "Print operation latencies when the exercise completes")
	return m
}

func runExercise(e exercise.Exercise) {
	initialGlobal()

	fmt.Println(exercise.Banner(e))
	s := newSession()
	if err := e.Run(globalContext, s); err != nil {
		fatal(err)
	}
	if printSummary {
		s.PrintSummary()
	}
}

func newLoadCommand() *cobra.Command {
	m := &cobra.Command{
		Use:   "load",
		Short: "Create the geo indexes and load the airport and region data",
		Args:  cobra.NoArgs,
		Run:   runLoadCommandFunc,
	}
	m.Flags().BoolVar(&printSummary, "summary", false, "Print operation latencies when loading completes")
	return m
}

func runLoadCommandFunc(cmd *cobra.Command, args []string) {
	initialGlobal()

	s := newSession()
	loaded, err := exercise.Prepare(globalContext, s)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Loaded %d airports, %d countries and %d cities from %s\n",
		loaded.Airports, loaded.Countries, loaded.Cities, globalConfig.DataDir)
	if printSummary {
		s.PrintSummary()
	}
}
