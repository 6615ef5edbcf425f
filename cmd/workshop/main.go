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
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/magiconair/properties"
	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aerospike-workshop/exercises/config"
	"github.com/aerospike-workshop/exercises/pkg/db"
	"github.com/aerospike-workshop/exercises/pkg/exercise"
	"github.com/aerospike-workshop/exercises/pkg/logutil"
	"github.com/aerospike-workshop/exercises/pkg/util"
)

var (
	configFile     string
	propertyFiles  []string
	propertyValues []string
	printSummary   bool

	globalContext context.Context
	globalCancel  context.CancelFunc

	globalConfig *config.Config
	globalDB     *db.DB
)

// loadProperties reads the property files in order and then applies the
// name=value pairs, so values given on the command line win.
func loadProperties(files, values []string) (*properties.Properties, error) {
	p := properties.NewProperties()
	if len(files) > 0 {
		var err error
		if p, err = properties.LoadFiles(files, properties.UTF8, false); err != nil {
			return nil, errors.Annotate(err, "load property files")
		}
	}
	for _, v := range values {
		seps := strings.SplitN(v, "=", 2)
		if len(seps) != 2 {
			return nil, errors.Errorf("bad property: `%s`, expected format `name=value`", v)
		}
		if _, _, err := p.Set(seps[0], seps[1]); err != nil {
			return nil, errors.Annotatef(err, "property %s", seps[0])
		}
	}
	return p, nil
}

func loadConfig() (*config.Config, error) {
	cfg := config.NewDefaultConfig()
	if configFile != "" {
		if err := cfg.LoadFile(configFile); err != nil {
			return nil, err
		}
	}
	p, err := loadProperties(propertyFiles, propertyValues)
	if err != nil {
		return nil, err
	}
	if err = cfg.ApplyProperties(p); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fatal(err error) {
	log.Debug("exit", zap.String("error", fmt.Sprintf("%+v", err)))
	util.Fatalf("Critical error: %s", err)
}

func initialGlobal() {
	cfg, err := loadConfig()
	if err != nil {
		fatal(err)
	}
	if err = logutil.InitLogger(&cfg.Log); err != nil {
		fatal(err)
	}
	log.Info("connecting", zap.Stringer("config", cfg))
	globalConfig = cfg

	if globalDB, err = db.Open(globalContext, cfg); err != nil {
		fatal(err)
	}
}

func newSession() *exercise.Session {
	return exercise.NewSession(globalDB, globalConfig, os.Stdout)
}

func main() {
	defer logutil.LogPanic()

	globalContext, globalCancel = context.WithCancel(context.Background())

	sc := make(chan os.Signal, 1)
	signal.Notify(sc,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)

	closeDone := make(chan struct{}, 1)
	go func() {
		sig := <-sc
		fmt.Printf("\nGot signal [%v] to exit.\n", sig)
		globalCancel()

		select {
		case <-sc:
			// send signal again, return directly
			fmt.Printf("\nGot signal [%v] again to exit.\n", sig)
			os.Exit(1)
		case <-time.After(10 * time.Second):
			fmt.Print("\nWait 10s for closed, force exit\n")
			os.Exit(1)
		case <-closeDone:
			return
		}
	}()

	rootCmd := &cobra.Command{
		Use:   "workshop",
		Short: "Aerospike workshop exercises",
	}
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Config file in TOML format")
	flags.StringSliceVarP(&propertyFiles, "property_file", "P", nil, "Specify a property file")
	flags.StringSliceVarP(&propertyValues, "prop", "p", nil, "Specify a property value with name=value")

	for _, name := range exercise.Names() {
		rootCmd.AddCommand(newExerciseCommand(exercise.Get(name)))
	}
	rootCmd.AddCommand(
		newLoadCommand(),
		newShellCommand(),
	)

	cobra.EnablePrefixMatching = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(rootCmd.UsageString())
	}

	globalCancel()
	if globalDB != nil {
		globalDB.Close()
	}
	log.L().Sync()

	closeDone <- struct{}{}
}
