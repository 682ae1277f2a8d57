// SPDX-License-Identifier: Apache-2.0
package version

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCmd(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"", "marx version dev"},
		{"1.2.3", "marx version 1.2.3"},
	}

	for _, tt := range tests {
		cmd := NewVersionCmd(tt.version)
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs(nil)
		if err := cmd.Execute(); err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(out.String(), tt.want) {
			t.Errorf("output = %q, want prefix %q", out.String(), tt.want)
		}
	}
}
