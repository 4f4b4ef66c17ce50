/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package grpcx exposes the classification pipeline as gRPC server
// interceptors.
//
// A handler error is classified into an *apierrors.Error, reported, and
// returned as a gRPC status whose code comes from the registry. The status
// carries a google.rpc.ErrorInfo detail (kind, HTTP status, reason and
// correlation in its metadata) and, for validation failures, a
// google.rpc.BadRequest listing every field message. The cause never
// leaves the server.
package grpcx

import (
	"context"
	"strconv"
	"strings"

	"dirpx.dev/apierrors"
	"dirpx.dev/apierrors/apis"
	"dirpx.dev/apierrors/classify"
	"dirpx.dev/apierrors/registry"
	"dirpx.dev/apierrors/report"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/protoadapt"
)

// DefaultDomain is the ErrorInfo domain used when none is configured.
const DefaultDomain = "apierrors.dirpx.dev"

// Metadata keys set on ErrorInfo.
const (
	MetaKind        = "kind"
	MetaHTTPStatus  = "http_status"
	MetaReason      = "reason"
	MetaCorrelation = "correlation"
)

// CorrelationKey is the incoming metadata key read as correlation id.
const CorrelationKey = "x-request-id"

type config struct {
	reg        apis.Registry
	classifier *classify.Classifier
	reporter   apis.Reporter
	domain     string
}

// Option configures the interceptors.
type Option func(*config)

// WithRegistry replaces registry.Default().
func WithRegistry(reg apis.Registry) Option {
	return func(c *config) {
		if reg != nil {
			c.reg = reg
		}
	}
}

// WithClassifier replaces classify.Default().
func WithClassifier(cl *classify.Classifier) Option {
	return func(c *config) {
		if cl != nil {
			c.classifier = cl
		}
	}
}

// WithReporter sets the reporting sink.
func WithReporter(r apis.Reporter) Option {
	return func(c *config) { c.reporter = r }
}

// WithDomain sets the ErrorInfo domain.
func WithDomain(domain string) Option {
	return func(c *config) {
		if domain != "" {
			c.domain = domain
		}
	}
}

func newConfig(opts []Option) *config {
	c := &config{
		reg:        registry.Default(),
		classifier: classify.Default(),
		domain:     DefaultDomain,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UnaryServerInterceptor converts handler errors into gRPC statuses.
// Errors that already carry a gRPC status are returned unchanged.
func UnaryServerInterceptor(opts ...Option) grpc.UnaryServerInterceptor {
	c := newConfig(opts)
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		return nil, c.convert(ctx, err)
	}
}

// StreamServerInterceptor is the streaming counterpart of
// UnaryServerInterceptor.
func StreamServerInterceptor(opts ...Option) grpc.StreamServerInterceptor {
	c := newConfig(opts)
	return func(srv any, ss grpc.ServerStream, _ *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		err := handler(srv, ss)
		if err == nil {
			return nil
		}
		return c.convert(ss.Context(), err)
	}
}

func (c *config) convert(ctx context.Context, err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}
	id := correlation(ctx)
	e := c.classifier.Classify(err)
	rctx := report.WithError(report.WithCorrelation(ctx, id), e)
	report.Hook{Sink: c.reporter}.Report(rctx, err)
	return ToStatus(e, c.reg, c.domain, id).Err()
}

func correlation(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if v := md.Get(CorrelationKey); len(v) > 0 {
		return v[0]
	}
	return ""
}

// ToStatus builds the gRPC status for e. It never includes the cause.
func ToStatus(e *apierrors.Error, reg apis.Registry, domain, correlation string) *status.Status {
	if reg == nil {
		reg = registry.Default()
	}
	if e == nil {
		return status.New(codes.Internal, "Internal Server Error")
	}
	e = e.Resolve(reg)
	code := reg.GRPCStatus(e.Kind(), e.Reason())
	if code == codes.OK {
		code = codes.Unknown
	}
	base := status.New(code, e.DisplayMessage(reg))

	info := &errdetails.ErrorInfo{
		Reason: strings.ToUpper(e.Kind().String()),
		Domain: domain,
		Metadata: map[string]string{
			MetaKind:       e.Kind().String(),
			MetaHTTPStatus: strconv.Itoa(e.Status()),
		},
	}
	if r := e.Reason().String(); r != "" {
		info.Metadata[MetaReason] = r
	}
	if correlation != "" {
		info.Metadata[MetaCorrelation] = correlation
	}
	details := []protoadapt.MessageV1{info}

	if fe := e.Fields(); !fe.Empty() {
		br := &errdetails.BadRequest{}
		for _, f := range fe.All() {
			for _, msg := range f.Messages {
				br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
					Field:       f.Name,
					Description: msg,
				})
			}
		}
		details = append(details, br)
	}

	with, err := base.WithDetails(details...)
	if err != nil {
		return base
	}
	return with
}

// ErrorInfo returns the ErrorInfo detail of a gRPC error, if present.
func ErrorInfo(err error) (*errdetails.ErrorInfo, bool) {
	return detail[*errdetails.ErrorInfo](err)
}

// BadRequest returns the BadRequest detail of a gRPC error, if present.
func BadRequest(err error) (*errdetails.BadRequest, bool) {
	return detail[*errdetails.BadRequest](err)
}

func detail[T any](err error) (T, bool) {
	var zero T
	st, ok := status.FromError(err)
	if !ok || st == nil {
		return zero, false
	}
	for _, d := range st.Details() {
		if v, ok := d.(T); ok {
			return v, true
		}
	}
	return zero, false
}

// MarshalStatus renders st as protojson (google.rpc.Status with typed
// details), for logs and diagnostics.
func MarshalStatus(st *status.Status) ([]byte, error) {
	return protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(st.Proto())
}
