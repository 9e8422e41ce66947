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

// Package graphqlhttp provides functions for serving GraphQL over HTTP as
// described in https://graphql.org/learn/serving-over-http/.
package graphqlhttp

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"golang.org/x/xerrors"

	"github.com/jrmdayn/reasongraphql/graphql"
	"github.com/jrmdayn/reasongraphql/graphql/async"
	"github.com/jrmdayn/reasongraphql/graphql/gqlparse"
)

// Handler serves GraphQL HTTP requests by executing them against a Schema.
// QueryRoot and MutationRoot are the Go values passed to graphql.Execute as
// the respective operation roots; MutationRoot may be nil if the schema
// supports no mutations. Scheduler defaults to async.NewConcurrentScheduler
// if nil.
type Handler struct {
	Schema       *graphql.Schema
	QueryRoot    interface{}
	MutationRoot interface{}
	Scheduler    async.Scheduler
	// Tracer, if set, instruments every request's operation and field
	// resolution; see graphql.ContextWithTracer.
	Tracer graphql.Tracer
}

// NewHandler returns a new handler that executes requests against schema,
// using queryRoot and mutationRoot as the respective operation roots.
func NewHandler(schema *graphql.Schema, queryRoot, mutationRoot interface{}) *Handler {
	return &Handler{
		Schema:       schema,
		QueryRoot:    queryRoot,
		MutationRoot: mutationRoot,
	}
}

func (h *Handler) scheduler() async.Scheduler {
	if h.Scheduler != nil {
		return h.Scheduler
	}
	return async.NewConcurrentScheduler()
}

// ServeHTTP executes a GraphQL request.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	gqlRequest, err := Parse(r)
	if err != nil {
		code := StatusCode(err)
		if code == http.StatusMethodNotAllowed {
			w.Header().Set("Allow", "GET, HEAD, POST")
		}
		http.Error(w, err.Error(), code)
		return
	}
	ctx := r.Context()
	if h.Tracer != nil {
		ctx = graphql.ContextWithTracer(ctx, h.Tracer)
	}
	gqlResponse := graphql.Execute(ctx, h.Schema, h.scheduler(), h.QueryRoot, h.MutationRoot, gqlRequest)
	WriteResponse(w, gqlResponse)
}

// rawRequest is the wire shape of a GraphQL-over-HTTP request body, before
// the query text has been parsed and the variables decoded into Values.
type rawRequest struct {
	Query         string                     `json:"query"`
	OperationName string                     `json:"operationName"`
	Variables     map[string]json.RawMessage `json:"variables"`
}

// Parse parses a GraphQL HTTP request. If an error is returned, StatusCode
// will return the proper HTTP status code to use.
//
// Request methods may be GET, HEAD, or POST. If the method is not one of
// these, then an error is returned that will make StatusCode return
// http.StatusMethodNotAllowed.
func Parse(r *http.Request) (graphql.Request, error) {
	var raw rawRequest
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		raw.Query = r.URL.Query().Get("query")
		raw.OperationName = r.FormValue("operationName")
		if v := r.FormValue("variables"); v != "" {
			if err := json.Unmarshal([]byte(v), &raw.Variables); err != nil {
				return graphql.Request{}, &httpError{msg: "parse graphql request: ", code: http.StatusBadRequest, cause: err}
			}
		}
	case http.MethodPost:
		rawContentType := r.Header.Get("Content-Type")
		contentType, _, err := mime.ParseMediaType(rawContentType)
		if err != nil {
			return graphql.Request{}, &httpError{msg: "parse graphql request: invalid content type: " + rawContentType, code: http.StatusUnsupportedMediaType}
		}
		switch contentType {
		case "application/json":
			if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
				return graphql.Request{}, &httpError{msg: "parse graphql request: ", code: http.StatusBadRequest, cause: err}
			}
		case "application/x-www-form-urlencoded":
			raw.Query = r.FormValue("query")
			raw.OperationName = r.FormValue("operationName")
		case "application/graphql":
			data, err := io.ReadAll(r.Body)
			if err != nil {
				return graphql.Request{}, &httpError{msg: "parse graphql request: ", code: http.StatusBadRequest, cause: err}
			}
			raw.Query = string(data)
		default:
			return graphql.Request{}, &httpError{msg: "parse graphql request: unrecognized content type: " + contentType, code: http.StatusUnsupportedMediaType}
		}
	default:
		return graphql.Request{}, &httpError{msg: fmt.Sprintf("parse graphql request: method %s not allowed", r.Method), code: http.StatusMethodNotAllowed}
	}

	doc, err := gqlparse.Parse(r.URL.Path, raw.Query)
	if err != nil {
		return graphql.Request{}, &httpError{msg: "parse graphql request: ", code: http.StatusBadRequest, cause: err}
	}
	vars, err := decodeVariables(raw.Variables)
	if err != nil {
		return graphql.Request{}, &httpError{msg: "parse graphql request: ", code: http.StatusBadRequest, cause: err}
	}
	return graphql.Request{
		Document:      doc,
		OperationName: raw.OperationName,
		Variables:     vars,
	}, nil
}

// decodeVariables converts the JSON-decoded "variables" object into the
// map[string]graphql.Value shape graphql.Execute consumes.
func decodeVariables(raw map[string]json.RawMessage) (map[string]graphql.Value, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	vars := make(map[string]graphql.Value, len(raw))
	for name, data := range raw {
		var v interface{}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, xerrors.Errorf("variable $%s: %w", name, err)
		}
		vars[name] = jsonToValue(v)
	}
	return vars, nil
}

// jsonToValue converts a value produced by encoding/json's default decoding
// into interface{} (nil, bool, float64, string, []interface{},
// map[string]interface{}) into a graphql.Value.
func jsonToValue(v interface{}) graphql.Value {
	switch v := v.(type) {
	case nil:
		return graphql.Null()
	case bool:
		return graphql.Boolean(v)
	case float64:
		if i := int64(v); float64(i) == v {
			return graphql.Int(i)
		}
		return graphql.Float(v)
	case string:
		return graphql.String(v)
	case []interface{}:
		items := make([]graphql.Value, len(v))
		for i, item := range v {
			items[i] = jsonToValue(item)
		}
		return graphql.List(items...)
	case map[string]interface{}:
		entries := make([]graphql.MapEntry, 0, len(v))
		for k, val := range v {
			entries = append(entries, graphql.MapEntry{Key: k, Value: jsonToValue(val)})
		}
		return graphql.Map(entries...)
	default:
		return graphql.Null()
	}
}

type httpError struct {
	msg   string
	code  int
	cause error
}

func (e *httpError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return e.msg + e.cause.Error()
}

func (e *httpError) Unwrap() error {
	return e.cause
}

// StatusCode returns the HTTP status code an error indicates.
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var e *httpError
	if !xerrors.As(err, &e) {
		return http.StatusInternalServerError
	}
	return e.code
}

// WriteResponse writes a GraphQL result as an HTTP response.
func WriteResponse(w http.ResponseWriter, response graphql.Response) {
	payload, err := json.Marshal(response)
	if err != nil {
		http.Error(w, "GraphQL marshal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
	if _, err := w.Write(payload); err != nil {
		return
	}
}
