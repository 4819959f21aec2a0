// File: backend/internal/dnsvalidator/dnsvalidator.go
package dnsvalidator

import (
	"context"
	"fmt"
	"log"
	"net"
	"strings"
	"time"

	"github.com/contactflow/backend/internal/config"
	"github.com/miekg/dns"
)

// DNSValidator checks that a target domain actually resolves before the
// crawler spends page timeouts on it.
type DNSValidator struct {
	resolvers []string
	timeout   time.Duration
}

// ValidationResult is the outcome of a single domain resolvability check.
type ValidationResult struct {
	Domain string   `json:"domain"`
	IPs    []string `json:"ips,omitempty"`
	Error  string   `json:"error,omitempty"`
}

// New builds a validator from the crawler configuration. Resolvers without
// a port get the standard DNS port appended.
func New(cfg config.CrawlerConfig) *DNSValidator {
	resolvers := make([]string, 0, len(cfg.Resolvers))
	for _, rAddr := range cfg.Resolvers {
		if !strings.Contains(rAddr, ":") {
			rAddr = net.JoinHostPort(rAddr, "53")
		}
		resolvers = append(resolvers, rAddr)
	}
	return &DNSValidator{resolvers: resolvers, timeout: 5 * time.Second}
}

// ValidateDomain queries A then AAAA records against each configured
// resolver in order and returns as soon as one answers with addresses.
func (dv *DNSValidator) ValidateDomain(ctx context.Context, domain string) ValidationResult {
	result := ValidationResult{Domain: domain}
	fqdn := dns.Fqdn(domain)

	var lastErr error
	for _, resolverAddr := range dv.resolvers {
		for _, recordType := range []uint16{dns.TypeA, dns.TypeAAAA} {
			ips, err := dv.queryRecord(ctx, fqdn, recordType, resolverAddr)
			if err != nil {
				lastErr = err
				continue
			}
			result.IPs = append(result.IPs, ips...)
		}
		if len(result.IPs) > 0 {
			result.IPs = deduplicateIPs(result.IPs)
			log.Printf("DNSValidator: Domain %s resolved to %d address(es) via %s", domain, len(result.IPs), resolverAddr)
			return result
		}
	}

	if lastErr != nil {
		result.Error = lastErr.Error()
	} else {
		result.Error = fmt.Sprintf("no A or AAAA records found for %s", domain)
	}
	return result
}

func (dv *DNSValidator) queryRecord(ctx context.Context, fqdn string, recordType uint16, resolverAddr string) ([]string, error) {
	m := new(dns.Msg)
	m.SetQuestion(fqdn, recordType)
	m.RecursionDesired = true

	client := &dns.Client{Timeout: dv.timeout}
	in, _, err := client.ExchangeContext(ctx, m, resolverAddr)
	if err != nil {
		return nil, fmt.Errorf("DNS query to %s failed: %w", resolverAddr, err)
	}
	if in.Rcode == dns.RcodeNameError {
		return nil, fmt.Errorf("NXDOMAIN for %s from %s", fqdn, resolverAddr)
	}
	if in.Rcode != dns.RcodeSuccess {
		return nil, fmt.Errorf("DNS query for %s returned rcode %s from %s", fqdn, dns.RcodeToString[in.Rcode], resolverAddr)
	}

	var ips []string
	for _, ans := range in.Answer {
		switch rr := ans.(type) {
		case *dns.A:
			ips = append(ips, rr.A.String())
		case *dns.AAAA:
			ips = append(ips, rr.AAAA.String())
		}
	}
	return ips, nil
}

func deduplicateIPs(ips []string) []string {
	seen := make(map[string]bool, len(ips))
	out := ips[:0]
	for _, ip := range ips {
		if !seen[ip] {
			seen[ip] = true
			out = append(out, ip)
		}
	}
	return out
}
