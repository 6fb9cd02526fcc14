package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

// NormalizeEmail lower-cases and trims an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// EmailDomain returns the part after the last "@", or "" when there is none.
func EmailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return ""
	}
	return email[at+1:]
}

// DomainChecker reports whether an email's domain resolves to a mail
// exchanger or at least an address.
type DomainChecker struct {
	Resolver *net.Resolver
	Timeout  time.Duration
}

func (d DomainChecker) Valid(ctx context.Context, email string) bool {
	domain := EmailDomain(email)
	if domain == "" {
		return false
	}

	r := d.Resolver
	if r == nil {
		r = net.DefaultResolver
	}
	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	if mx, err := r.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := r.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
