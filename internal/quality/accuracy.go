package quality

import (
	"fmt"
	"strings"

	"github.com/Travinkel/CortexCLI-sub002/internal/textutil"
)

// domainTerms is the networking vocabulary the accuracy check traces back
// to source text. Terms are matched case-insensitively as whole words.
var domainTerms = []string{
	"tcp", "udp", "ipv4", "ipv6", "osi", "ethernet", "vlan", "trunk",
	"router", "switch", "subnet", "gateway", "broadcast", "multicast",
	"unicast", "dns", "dhcp", "arp", "icmp", "nat", "acl", "stp", "ospf",
	"eigrp", "rip", "bgp", "cidr", "mac", "frame", "packet", "segment",
	"datagram", "checksum", "handshake", "socket", "telnet", "ssh",
	"http", "https", "ftp", "tftp", "snmp", "syslog", "ntp", "wlan",
	"ssid", "wpa", "poe", "hsrp", "vtp", "cdp", "lldp", "etherchannel",
}

// checkAccuracy measures what fraction of the atom's domain terms and IPv4
// literals also appear in the source text. This is the hallucination guard:
// generated content must be traceable to the section it came from.
func (e *Engine) checkAccuracy(front, back, sourceText string) []finding {
	text := strings.ToLower(front + " " + back)
	source := strings.ToLower(sourceText)

	matched, unmatched := 0, 0
	tally := func(token string) {
		if strings.Contains(source, token) {
			matched++
		} else {
			unmatched++
		}
	}

	words := tokenSet(text)
	for _, term := range domainTerms {
		if words[term] {
			tally(term)
		}
	}
	for _, ip := range textutil.IPv4Literals(text) {
		tally(ip)
	}

	total := matched + unmatched
	if total == 0 {
		return nil
	}
	confidence := float64(matched) / float64(total)
	if confidence >= e.cfg.AccuracyThreshold {
		return nil
	}
	return []finding{{
		issue:   IssueSourceMismatch,
		penalty: e.cfg.PenaltyInaccuracyMax * (1 - confidence),
		rec: fmt.Sprintf(
			"Only %d of %d technical terms trace back to the source; verify against the section.",
			matched, total),
	}}
}

// tokenSet splits text into lowercase word tokens.
func tokenSet(text string) map[string]bool {
	set := map[string]bool{}
	var b strings.Builder
	flush := func() {
		if b.Len() > 0 {
			set[b.String()] = true
			b.Reset()
		}
	}
	for _, r := range text {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
			continue
		}
		flush()
	}
	flush()
	return set
}
