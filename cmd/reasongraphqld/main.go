// Copyright 2019 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Command reasongraphqld serves the example/starwars schema over HTTP,
// wiring together the graphqlhttp transport, OpenTelemetry field tracing,
// and structured request logging.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/caarlos0/env/v9"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jrmdayn/reasongraphql/example/starwars"
	"github.com/jrmdayn/reasongraphql/graphqlhttp"
	"github.com/jrmdayn/reasongraphql/graphqltrace"
)

type config struct {
	Addr       string `env:"ADDR" envDefault:":8080"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	PrettyLogs bool   `env:"PRETTY_LOGS" envDefault:"false"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()

	schema, err := starwars.Schema()
	if err != nil {
		return fmt.Errorf("build schema: %w", err)
	}
	root := starwars.NewRoot()

	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	handler := graphqlhttp.NewHandler(schema, root, root)
	handler.Tracer = graphqltrace.DefaultTracer(tp)

	mux := http.NewServeMux()
	mux.Handle("/graphql", withRequestLogging(logger, handler))

	logger.Info("listening", zap.String("addr", cfg.Addr))
	return http.ListenAndServe(cfg.Addr, mux)
}

func newLogger(cfg config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.LogLevel, err)
	}
	zcfg := zap.NewProductionConfig()
	if cfg.PrettyLogs {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}
