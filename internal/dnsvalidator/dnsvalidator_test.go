// File: backend/internal/dnsvalidator/dnsvalidator_test.go
package dnsvalidator

import (
	"testing"

	"github.com/contactflow/backend/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestNewAppendsDNSPort(t *testing.T) {
	cfg := config.ConvertJSONToCrawlerConfig(config.CrawlerConfigJSON{
		Resolvers: []string{"1.1.1.1", "8.8.8.8:5353"},
	})

	dv := New(cfg)
	assert.Equal(t, []string{"1.1.1.1:53", "8.8.8.8:5353"}, dv.resolvers)
}

func TestDeduplicateIPs(t *testing.T) {
	out := deduplicateIPs([]string{"1.2.3.4", "5.6.7.8", "1.2.3.4", "1.2.3.4"})
	assert.Equal(t, []string{"1.2.3.4", "5.6.7.8"}, out)

	assert.Empty(t, deduplicateIPs(nil))
}
