// Package clientip extracts the client IP address from HTTP requests.
//
// Headers are checked in this order, first valid address wins:
//  1. CF-Connecting-IP (Cloudflare)
//  2. DO-Connecting-IP (DigitalOcean)
//  3. X-Forwarded-For (leftmost entry)
//  4. X-Real-IP
//  5. RemoteAddr
//
// Addresses are validated and normalized with net/netip; 0.0.0.0 and the
// unspecified IPv6 address are rejected. When nothing valid is found the raw
// RemoteAddr is returned. These headers are client-controlled unless a
// trusted proxy overwrites them, so the result is suitable for logging, not
// for access control.
package clientip
