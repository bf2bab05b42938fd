// Package hostid derives the stable per-host identifier assigned to users.
package hostid

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"

	"pkt.systems/boxchat/schema"
)

// Provider hashes the primary hardware address and the host name into a
// lowercase hex SHA-256 digest. The zero value reads the live host.
type Provider struct {
	// Strict makes a missing input fatal. When false, the identity is
	// derived from whichever input is available.
	Strict bool

	HardwareAddr func() (net.HardwareAddr, error)
	Hostname     func() (string, error)
}

// New returns a Provider reading the live host.
func New(strict bool) *Provider {
	return &Provider{Strict: strict}
}

// Identity returns the host identity. Repeated calls on an unchanged host
// return the same value.
func (p *Provider) Identity() (schema.UserID, error) {
	hwFn := p.HardwareAddr
	if hwFn == nil {
		hwFn = PrimaryHardwareAddr
	}
	hostFn := p.Hostname
	if hostFn == nil {
		hostFn = Hostname
	}

	var mac string
	hw, hwErr := hwFn()
	if hwErr == nil {
		mac = FormatHardwareAddr(hw)
		if mac == "" {
			hwErr = schema.ErrNoHardwareAddr
		}
	}
	host, hostErr := hostFn()
	if hostErr == nil {
		host = strings.TrimSpace(host)
		if host == "" {
			hostErr = schema.ErrNoHostname
		}
	}

	if p.Strict {
		if hwErr != nil {
			return "", fmt.Errorf("read hardware address: %w", hwErr)
		}
		if hostErr != nil {
			return "", fmt.Errorf("read hostname: %w", hostErr)
		}
		return Compute(mac, host), nil
	}
	switch {
	case hwErr != nil && hostErr != nil:
		return "", fmt.Errorf("%w: %v; %v", schema.ErrNoIdentity, hwErr, hostErr)
	case hwErr != nil:
		return digest(host), nil
	case hostErr != nil:
		return digest(mac), nil
	}
	return Compute(mac, host), nil
}

// Compute joins the formatted hardware address and host name with a dash and
// returns the hex digest.
func Compute(mac, host string) schema.UserID {
	return digest(mac + "-" + host)
}

func digest(value string) schema.UserID {
	sum := sha256.Sum256([]byte(value))
	return schema.UserID(hex.EncodeToString(sum[:]))
}

// FormatHardwareAddr renders a hardware address as upper-case colon-separated hex.
func FormatHardwareAddr(hw net.HardwareAddr) string {
	if len(hw) == 0 {
		return ""
	}
	return strings.ToUpper(hw.String())
}

// PrimaryHardwareAddr returns the hardware address of the first non-loopback
// interface, preferring interfaces that are up.
func PrimaryHardwareAddr() (net.HardwareAddr, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	return pickHardwareAddr(ifaces)
}

func pickHardwareAddr(ifaces []net.Interface) (net.HardwareAddr, error) {
	var fallback net.HardwareAddr
	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 || isZeroAddr(iface.HardwareAddr) {
			continue
		}
		if iface.Flags&net.FlagUp != 0 {
			return iface.HardwareAddr, nil
		}
		if fallback == nil {
			fallback = iface.HardwareAddr
		}
	}
	if fallback == nil {
		return nil, schema.ErrNoHardwareAddr
	}
	return fallback, nil
}

// isZeroAddr reports an empty or all-zero address, as carried by dummy and
// tunnel devices.
func isZeroAddr(hw net.HardwareAddr) bool {
	for _, b := range hw {
		if b != 0 {
			return false
		}
	}
	return true
}

// Hostname returns the configured host name.
func Hostname() (string, error) {
	host, err := os.Hostname()
	if err != nil {
		return "", errors.Join(schema.ErrNoHostname, err)
	}
	return host, nil
}
