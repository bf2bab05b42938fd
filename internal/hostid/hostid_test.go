package hostid

import (
	"errors"
	"net"
	"testing"

	"pkt.systems/boxchat/schema"
)

var testMAC = net.HardwareAddr{0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}

func fixedProvider(strict bool) *Provider {
	return &Provider{
		Strict:       strict,
		HardwareAddr: func() (net.HardwareAddr, error) { return testMAC, nil },
		Hostname:     func() (string, error) { return "devbox\n", nil },
	}
}

func TestComputeKnownDigest(t *testing.T) {
	got := Compute("AA:BB:CC:DD:EE:FF", "devbox")
	want := schema.UserID("d7599c757f8b5a27c8bd5874b895ef0d1bbaeb313be104a29c687a11ebdac201")
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestIdentityIsStableAcrossCalls(t *testing.T) {
	p := fixedProvider(true)
	first, err := p.Identity()
	if err != nil {
		t.Fatalf("identity: %v", err)
	}
	second, err := fixedProvider(true).Identity()
	if err != nil {
		t.Fatalf("identity: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical identities, got %s and %s", first, second)
	}
	if first != Compute("AA:BB:CC:DD:EE:FF", "devbox") {
		t.Fatalf("expected trimmed hostname and upper-case mac to be hashed, got %s", first)
	}
}

func TestIdentityStrictFailsOnMissingInput(t *testing.T) {
	p := fixedProvider(true)
	p.HardwareAddr = func() (net.HardwareAddr, error) { return nil, schema.ErrNoHardwareAddr }
	if _, err := p.Identity(); !errors.Is(err, schema.ErrNoHardwareAddr) {
		t.Fatalf("expected ErrNoHardwareAddr, got %v", err)
	}

	p = fixedProvider(true)
	p.Hostname = func() (string, error) { return "  ", nil }
	if _, err := p.Identity(); !errors.Is(err, schema.ErrNoHostname) {
		t.Fatalf("expected ErrNoHostname, got %v", err)
	}
}

func TestIdentityLenientUsesAvailableInput(t *testing.T) {
	p := fixedProvider(false)
	p.Hostname = func() (string, error) { return "", errors.New("boom") }
	got, err := p.Identity()
	if err != nil {
		t.Fatalf("identity: %v", err)
	}
	want := schema.UserID("261900fb1113aa4db748173e13abd88ae0faf7536891ee956fea94d58673cbdb")
	if got != want {
		t.Fatalf("expected mac-only digest %s, got %s", want, got)
	}

	p = fixedProvider(false)
	p.HardwareAddr = func() (net.HardwareAddr, error) { return nil, schema.ErrNoHardwareAddr }
	got, err = p.Identity()
	if err != nil {
		t.Fatalf("identity: %v", err)
	}
	want = "2ff8ddd61f5e0a0c72ad9390b7c448e32b5055707f1be2e65a361b24f2a180ce"
	if got != want {
		t.Fatalf("expected hostname-only digest %s, got %s", want, got)
	}
}

func TestIdentityLenientFailsWhenBothMissing(t *testing.T) {
	p := &Provider{
		HardwareAddr: func() (net.HardwareAddr, error) { return nil, schema.ErrNoHardwareAddr },
		Hostname:     func() (string, error) { return "", schema.ErrNoHostname },
	}
	if _, err := p.Identity(); !errors.Is(err, schema.ErrNoIdentity) {
		t.Fatalf("expected ErrNoIdentity, got %v", err)
	}
}

func TestPickHardwareAddrSkipsLoopbackAndPrefersUp(t *testing.T) {
	down := net.HardwareAddr{0x02, 0, 0, 0, 0, 0x01}
	up := net.HardwareAddr{0x02, 0, 0, 0, 0, 0x02}
	ifaces := []net.Interface{
		{Index: 1, Name: "lo", Flags: net.FlagLoopback | net.FlagUp, HardwareAddr: net.HardwareAddr{1, 2, 3, 4, 5, 6}},
		{Index: 2, Name: "eth0", HardwareAddr: down},
		{Index: 3, Name: "eth1", Flags: net.FlagUp, HardwareAddr: up},
	}
	got, err := pickHardwareAddr(ifaces)
	if err != nil {
		t.Fatalf("pick: %v", err)
	}
	if got.String() != up.String() {
		t.Fatalf("expected up interface %s, got %s", up, got)
	}

	got, err = pickHardwareAddr(ifaces[:2])
	if err != nil {
		t.Fatalf("pick: %v", err)
	}
	if got.String() != down.String() {
		t.Fatalf("expected fallback %s, got %s", down, got)
	}

	if _, err := pickHardwareAddr(ifaces[:1]); !errors.Is(err, schema.ErrNoHardwareAddr) {
		t.Fatalf("expected ErrNoHardwareAddr, got %v", err)
	}

	dummy := net.Interface{Index: 4, Name: "dummy0", Flags: net.FlagUp, HardwareAddr: net.HardwareAddr{0, 0, 0, 0, 0, 0}}
	got, err = pickHardwareAddr([]net.Interface{dummy, ifaces[2]})
	if err != nil {
		t.Fatalf("pick: %v", err)
	}
	if got.String() != up.String() {
		t.Fatalf("expected all-zero address skipped in favour of %s, got %s", up, got)
	}
	if _, err := pickHardwareAddr([]net.Interface{dummy}); !errors.Is(err, schema.ErrNoHardwareAddr) {
		t.Fatalf("expected ErrNoHardwareAddr for only an all-zero address, got %v", err)
	}
}
