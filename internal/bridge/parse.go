package bridge

import "strings"

// TurfReport is the structured form of an incoming turf attack notice.
type TurfReport struct {
	Attacker   string
	Begin      string
	ZoneName   string
	ZoneNumber string
}

// reportMarker identifies turf attack notices among relayed messages.
const reportMarker = "Auf eure Organisation"

// ParseTurfReport extracts the attack fields from a raw notice. Returns
// nil when the message is not a turf report. Missing fields keep their
// placeholder defaults so a partially garbled notice still relays.
func ParseTurfReport(msg string) *TurfReport {
	if !strings.Contains(msg, reportMarker) {
		return nil
	}

	report := &TurfReport{
		Attacker:   "Unknown",
		Begin:      "??:??",
		ZoneName:   "Unknown",
		ZoneNumber: "Unknown",
	}

	for _, line := range strings.Split(msg, "\n") {
		switch {
		case strings.Contains(line, "Angriff von "):
			rest := strings.SplitN(line, "Angriff von ", 2)[1]
			name := strings.SplitN(rest, " ver", 2)[0]
			if name = strings.TrimSpace(name); name != "" {
				report.Attacker = fixAttackerCasing(name)
			}
		case strings.HasPrefix(line, "Beginn:"):
			fields := strings.Fields(line)
			if len(fields) > 0 {
				begin := fields[len(fields)-1]
				if len(begin) > 5 {
					begin = begin[:5]
				}
				report.Begin = begin
			}
		case strings.HasPrefix(line, "Zonenname:"):
			report.ZoneName = strings.TrimSpace(strings.SplitN(line, ":", 2)[1])
		case strings.HasPrefix(line, "Zonennummer:"):
			report.ZoneNumber = strings.TrimSpace(strings.SplitN(line, ":", 2)[1])
		}
	}
	return report
}

// Org names arrive in wildly inconsistent casing. Capitalize each word
// except well-known abbreviations that are conventionally lowercase.
var preservedCasing = map[string]bool{
	"mc":   true,
	"e.v.": true,
	"ev":   true,
	"gmbh": true,
	"ag":   true,
}

func fixAttackerCasing(name string) string {
	parts := strings.Fields(name)
	for i, part := range parts {
		if preservedCasing[strings.ToLower(part)] {
			continue
		}
		parts[i] = capitalize(part)
	}
	return strings.Join(parts, " ")
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	return strings.ToUpper(string(runes[0])) + strings.ToLower(string(runes[1:]))
}
