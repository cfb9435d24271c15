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

package xmlinputfactory_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/osv-codefix/codemod/java/xmlinputfactory"
	"github.com/google/osv-codefix/finding"
	"github.com/google/osv-codefix/testing/codemodtest"
)

const rule = "java/xxe"

func TestRemediate(t *testing.T) {
	tests := []struct {
		name        string
		src         string
		lines       []int
		want        string
		wantReasons []string
	}{
		{
			name: "inject_helper",
			src: `class Example {
    XMLInputFactory create() {
        return XMLInputFactory.newInstance();
    }
}
`,
			lines: []int{3},
			want: `class Example {
    XMLInputFactory create() {
        return hardenXmlInputFactory(XMLInputFactory.newInstance());
    }

    private static XMLInputFactory hardenXmlInputFactory(final XMLInputFactory factory) {
        factory.setProperty(XMLInputFactory.SUPPORT_DTD, false);
        factory.setProperty(XMLInputFactory.IS_SUPPORTING_EXTERNAL_ENTITIES, false);
        return factory;
    }
}
`,
			wantReasons: []string{},
		},
		{
			name: "helper_is_shared",
			src: `class Example {
    void parse() {
        XMLInputFactory a = XMLInputFactory.newInstance();
        XMLInputFactory b = XMLInputFactory.newFactory();
    }
}
`,
			lines: []int{3, 4},
			want: `class Example {
    void parse() {
        XMLInputFactory a = hardenXmlInputFactory(XMLInputFactory.newInstance());
        XMLInputFactory b = hardenXmlInputFactory(XMLInputFactory.newFactory());
    }

    private static XMLInputFactory hardenXmlInputFactory(final XMLInputFactory factory) {
        factory.setProperty(XMLInputFactory.SUPPORT_DTD, false);
        factory.setProperty(XMLInputFactory.IS_SUPPORTING_EXTERNAL_ENTITIES, false);
        return factory;
    }
}
`,
			wantReasons: []string{},
		},
		{
			name: "helper_name_taken",
			src: `class Example {
    XMLInputFactory create() {
        return XMLInputFactory.newInstance();
    }

    void hardenXmlInputFactory() {}
}
`,
			lines: []int{3},
			want: `class Example {
    XMLInputFactory create() {
        return hardenXmlInputFactory_1(XMLInputFactory.newInstance());
    }

    void hardenXmlInputFactory() {}

    private static XMLInputFactory hardenXmlInputFactory_1(final XMLInputFactory factory) {
        factory.setProperty(XMLInputFactory.SUPPORT_DTD, false);
        factory.setProperty(XMLInputFactory.IS_SUPPORTING_EXTERNAL_ENTITIES, false);
        return factory;
    }
}
`,
			wantReasons: []string{},
		},
		{
			name: "inner_class",
			src: `class Outer {
    class Inner {
        XMLInputFactory create() {
            return XMLInputFactory.newInstance();
        }
    }
}
`,
			lines: []int{4},
			want: `class Outer {
    class Inner {
        XMLInputFactory create() {
            return XMLInputFactory.newInstance();
        }
    }
}
`,
			wantReasons: []string{"unsupported code context: inside an inner class"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := xmlinputfactory.New()
			var findings []finding.Finding
			for i, l := range tc.lines {
				findings = append(findings, codemodtest.Finding(string(rune('a'+i)), rule, l, 0))
			}
			got, res := codemodtest.Run(t, c, tc.src, findings...)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("RemediateAll() output diff (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.wantReasons, codemodtest.Reasons(res)); diff != "" {
				t.Errorf("RemediateAll() unfixed reasons diff (-want +got):\n%s", diff)
			}
			if len(res.Changes) > 0 {
				codemodtest.ExpectIdempotent(t, c, rule, got)
			}
		})
	}
}
