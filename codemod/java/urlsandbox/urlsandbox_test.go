// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package urlsandbox_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/osv-codefix/codemod/java/urlsandbox"
	"github.com/google/osv-codefix/search"
	"github.com/google/osv-codefix/testing/codemodtest"
)

const rule = "java/ssrf"

func TestRemediate(t *testing.T) {
	tests := []struct {
		name            string
		src             string
		want            string
		wantDescription string
		wantReasons     []string
	}{
		{
			name: "url_constructor",
			src: `package com.example;

import java.net.URL;

class Example {
    URL build(String input) throws Exception {
        return new URL(input);
    }
}
`,
			want: `package com.example;

import io.github.pixee.security.HostValidator;
import io.github.pixee.security.Urls;
import java.net.URL;

class Example {
    URL build(String input) throws Exception {
        return Urls.create(input, Urls.HTTP_PROTOCOLS, HostValidator.ALLOW_ALL);
    }
}
`,
			wantDescription: "Wrapped URL creation with a sandboxed factory",
			wantReasons:     []string{},
		},
		{
			name: "rest_template",
			src: `class Example {
    String fetch(RestTemplate restTemplate, String url) {
        return restTemplate.getForObject(url, String.class);
    }
}
`,
			want: `import io.github.pixee.security.HostValidator;
import io.github.pixee.security.Urls;

class Example {
    String fetch(RestTemplate restTemplate, String url) {
        return restTemplate.getForObject(Urls.create(url, Urls.HTTP_PROTOCOLS, HostValidator.ALLOW_ALL).toString(), String.class);
    }
}
`,
			wantDescription: "Sandboxed the URL passed to RestTemplate",
			wantReasons:     []string{},
		},
		{
			name: "constructor_shape_wins",
			src: `class Example {
    String fetch(RestTemplate restTemplate, String u) throws Exception {
        return restTemplate.getForObject(new URL(u).toString(), String.class);
    }
}
`,
			want: `import io.github.pixee.security.HostValidator;
import io.github.pixee.security.Urls;

class Example {
    String fetch(RestTemplate restTemplate, String u) throws Exception {
        return restTemplate.getForObject(Urls.create(u, Urls.HTTP_PROTOCOLS, HostValidator.ALLOW_ALL).toString(), String.class);
    }
}
`,
			wantDescription: "Wrapped URL creation with a sandboxed factory",
			wantReasons:     []string{},
		},
		{
			name: "literal_url",
			src: `class Example {
    URL build() throws Exception {
        return new URL("https://example.com");
    }
}
`,
			want: `class Example {
    URL build() throws Exception {
        return new URL("https://example.com");
    }
}
`,
			wantReasons: []string{search.ReasonNoCalls},
		},
		{
			name: "comment_in_arguments",
			src: `class Example {
    URL build(String input) throws Exception {
        return new URL(/* user controlled */ input);
    }
}
`,
			want: `class Example {
    URL build(String input) throws Exception {
        return new URL(/* user controlled */ input);
    }
}
`,
			wantReasons: []string{"comments in the argument list would be lost"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := urlsandbox.New()
			line, _ := codemodtest.LineOf(t, tc.src, "return")
			got, res := codemodtest.Run(t, c, tc.src, codemodtest.Finding("f1", rule, line, 0))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("RemediateAll() output diff (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.wantReasons, codemodtest.Reasons(res)); diff != "" {
				t.Errorf("RemediateAll() unfixed reasons diff (-want +got):\n%s", diff)
			}
			if len(res.Changes) == 0 {
				return
			}
			if diff := cmp.Diff(tc.wantDescription, res.Changes[0].Description); diff != "" {
				t.Errorf("RemediateAll() description diff (-want +got):\n%s", diff)
			}
			codemodtest.ExpectIdempotent(t, c, rule, got)
		})
	}
}
