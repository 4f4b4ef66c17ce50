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

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"dirpx.dev/apierrors"
	"dirpx.dev/apierrors/apis"
	"dirpx.dev/apierrors/config"
	"dirpx.dev/apierrors/grpcx"
	"dirpx.dev/apierrors/kind"
	"dirpx.dev/apierrors/reason"
	"dirpx.dev/apierrors/render"
	"github.com/spf13/cobra"
)

func newExplainCmd() *cobra.Command {
	var rulesFile string
	cmd := &cobra.Command{
		Use:   "explain KIND [REASON]",
		Short: "Show how a kind (and reason) resolves, with the JSON body and gRPC status",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := (&config.Config{RulesFile: rulesFile}).Registry()
			if err != nil {
				return err
			}
			k, err := kind.Parse(args[0])
			if err != nil {
				return err
			}
			r := reason.Empty
			if len(args) == 2 {
				if r, err = reason.Parse(args[1]); err != nil {
					return err
				}
			}
			return explain(cmd.OutOrStdout(), reg, k, r)
		},
	}
	cmd.Flags().StringVar(&rulesFile, "rules", "", "YAML rules file")
	return cmd
}

func explain(w io.Writer, reg apis.Registry, k kind.Kind, r reason.Reason) error {
	fmt.Fprintln(w, reg.Explain(k, r))

	e := apierrors.New(k, "").WithReason(r)
	resp := (&render.Renderer{Registry: reg}).Structured(e, render.Meta{})
	fmt.Fprintf(w, "\nHTTP %d\n", resp.Status)
	for name, values := range resp.Header {
		for _, v := range values {
			fmt.Fprintf(w, "%s: %s\n", name, v)
		}
	}
	fmt.Fprintf(w, "%s\n\n", resp.Body)

	b, err := grpcx.MarshalStatus(grpcx.ToStatus(e, reg, grpcx.DefaultDomain, ""))
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "gRPC\n%s\n", b)
	return nil
}

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the error kinds with their default statuses",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := (&config.Config{}).Registry()
			if err != nil {
				return err
			}
			return kinds(cmd.OutOrStdout(), reg)
		},
	}
}

func kinds(w io.Writer, reg apis.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tHTTP\tGRPC\tMESSAGE")
	for _, k := range kind.All() {
		d, ok := reg.Descriptor(k)
		if !ok {
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", k, d.HTTPStatus, d.GRPCCode, d.Message)
	}
	return tw.Flush()
}
