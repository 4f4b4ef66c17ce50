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

package registry

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"dirpx.dev/apierrors/kind"
	"google.golang.org/grpc/codes"
	"gopkg.in/yaml.v3"
)

// rulesDoc is the YAML form of registry options:
//
//	rules:
//	  - kind: unauthorized
//	    reason: auth.token.expired
//	    http: 419
//	    grpc: UNAUTHENTICATED
//	headers:
//	  - kind: unauthorized
//	    name: WWW-Authenticate
//	    value: Bearer realm="api"
type rulesDoc struct {
	Rules   []ruleDoc   `yaml:"rules"`
	Headers []headerDoc `yaml:"headers"`
}

type ruleDoc struct {
	Kind   string `yaml:"kind"`
	Reason string `yaml:"reason"`
	HTTP   int    `yaml:"http"`
	GRPC   string `yaml:"grpc"`
}

type headerDoc struct {
	Kind  string `yaml:"kind"`
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// LoadYAML reads a rules document and returns the equivalent Option.
// Unknown keys, unknown kinds and rules with neither http nor grpc are
// errors. Prefix and status validation happens later, in New.
func LoadYAML(r io.Reader) (Option, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc rulesDoc
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("registry: decode rules: %w", err)
	}

	var opts []Option
	for i, rd := range doc.Rules {
		k, err := kind.Parse(rd.Kind)
		if err != nil {
			return nil, fmt.Errorf("registry: rules[%d]: kind %q: %w", i, rd.Kind, err)
		}
		if rd.HTTP == 0 && rd.GRPC == "" {
			return nil, fmt.Errorf("registry: rules[%d]: neither http nor grpc set", i)
		}
		if rd.HTTP != 0 {
			opts = append(opts, WithHTTPPrefix(k, rd.Reason, rd.HTTP))
		}
		if rd.GRPC != "" {
			c, err := parseGRPCCode(rd.GRPC)
			if err != nil {
				return nil, fmt.Errorf("registry: rules[%d]: %w", i, err)
			}
			opts = append(opts, WithGRPCPrefix(k, rd.Reason, c))
		}
	}
	for i, hd := range doc.Headers {
		k, err := kind.Parse(hd.Kind)
		if err != nil {
			return nil, fmt.Errorf("registry: headers[%d]: kind %q: %w", i, hd.Kind, err)
		}
		opts = append(opts, WithHeader(k, hd.Name, hd.Value))
	}
	return WithOptions(opts...), nil
}

// parseGRPCCode accepts a numeric code or a canonical name such as
// "NOT_FOUND" (case-insensitive).
func parseGRPCCode(s string) (codes.Code, error) {
	s = strings.TrimSpace(s)
	raw := s
	if strings.Trim(s, "0123456789") != "" {
		raw = `"` + strings.ToUpper(s) + `"`
	}
	var c codes.Code
	if err := c.UnmarshalJSON([]byte(raw)); err != nil {
		return 0, fmt.Errorf("grpc code %q: %w", s, err)
	}
	return c, nil
}
