package aggregator_test

import (
	"builtat/internal/aggregator"
	"builtat/pkg/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToRecord(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		parent string
		want   domain.SubdomainRecord
		ok     bool
	}{
		{
			name:   "simple subdomain",
			input:  "docs.built.at",
			parent: "built.at",
			want:   domain.SubdomainRecord{Name: "Docs", URL: "https://docs.built.at"},
			ok:     true,
		},
		{name: "bare parent excluded", input: "built.at", parent: "built.at"},
		{name: "bare parent with root dot excluded", input: "built.at.", parent: "built.at"},
		{name: "other domain", input: "docs.example.com", parent: "built.at"},
		{name: "suffix without dot boundary", input: "rebuilt.at", parent: "built.at"},
		{name: "empty label", input: ".built.at", parent: "built.at"},
		{name: "empty parent", input: "docs.built.at", parent: ""},
		{
			name:   "nested subdomain keeps full prefix",
			input:  "v2.api.built.at",
			parent: "built.at",
			want:   domain.SubdomainRecord{Name: "V2.api", URL: "https://v2.api.built.at"},
			ok:     true,
		},
		{
			name:   "case and whitespace normalized",
			input:  "  Blog.Built.AT ",
			parent: "built.at",
			want:   domain.SubdomainRecord{Name: "Blog", URL: "https://blog.built.at"},
			ok:     true,
		},
		{
			name:   "parent configured with leading case",
			input:  "shop.example.dev",
			parent: "Example.Dev",
			want:   domain.SubdomainRecord{Name: "Shop", URL: "https://shop.example.dev"},
			ok:     true,
		},
		{
			name:   "digit first label",
			input:  "404.built.at",
			parent: "built.at",
			want:   domain.SubdomainRecord{Name: "404", URL: "https://404.built.at"},
			ok:     true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := aggregator.ToRecord(tt.input, tt.parent)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestDisplayName(t *testing.T) {
	require.Equal(t, "Api", aggregator.DisplayName("api"))
	require.Equal(t, "Élan", aggregator.DisplayName("élan"))
	require.Equal(t, "", aggregator.DisplayName(""))
}
