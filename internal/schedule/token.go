package schedule

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Options controls classification and extraction. The zero value is not
// usable; start from DefaultOptions and override fields as needed.
type Options struct {
	// BaseYear seeds the working year for the first date header. Zero means
	// the current year. The page never prints years, so later headers infer
	// rollover from month regression.
	BaseYear int

	// Duration is the assumed event length. The page prints start times only.
	Duration time.Duration

	// Weekdays are the locale weekday names accepted in date headers,
	// lowercase. The weekday itself is informational and never validated
	// against the parsed date.
	Weekdays []string

	// Months maps locale month abbreviations, lowercase and in the exact
	// form the page prints them ("jan.", "maj"), to month numbers.
	Months map[string]time.Month

	// TimeWord is the locale keyword that may prefix a time header ("kl.").
	// The prefix is optional; a bare "18:00" line is still a time header.
	TimeWord string

	// BroadcastWord marks lines that announce where a match airs
	// ("Kampen afspilles på TV2 Sport"). Such lines win the channel scan.
	BroadcastWord string

	// Channels is the dictionary of known channel names. Matching is
	// case-insensitive, tolerates missing spaces ("TV2Sport") and always
	// tries longer names first so "TV2 Sport X" beats "TV2 Sport" beats
	// "TV2". The canonical dictionary spelling is what ends up on events.
	Channels []string

	// AllowedChannels restricts which resolved channels produce events.
	// Empty means no restriction. With a list set, an event is dropped when
	// its block resolved to a channel outside the list or to no channel at
	// all.
	AllowedChannels []string

	// FooterMarkers terminate the current block when a line contains one of
	// them (case-insensitive). They mark the end of meaningful content:
	// shop banners, CVR numbers, cookie boilerplate.
	FooterMarkers []string

	// MaxBlockLines caps how many content lines a single block may
	// accumulate before it is force-completed. Guards against structure
	// drift gluing the rest of the page onto one kick-off time.
	MaxBlockLines int
}

// DefaultOptions returns the options matching the Danish federation page.
func DefaultOptions() Options {
	return Options{
		Duration: 90 * time.Minute,
		Weekdays: []string{
			"mandag", "tirsdag", "onsdag", "torsdag", "fredag", "lørdag", "søndag",
		},
		Months: map[string]time.Month{
			"jan.": time.January, "feb.": time.February, "mar.": time.March,
			"apr.": time.April, "maj": time.May, "jun.": time.June,
			"jul.": time.July, "aug.": time.August, "sep.": time.September,
			"okt.": time.October, "nov.": time.November, "dec.": time.December,
		},
		TimeWord:      "kl.",
		BroadcastWord: "afspilles",
		Channels: []string{
			"TV2 Sport X", "TV2 Sport", "TV2 Play", "TV3 Sport", "TV3 MAX",
			"TV2", "DR1", "DR2",
		},
		FooterMarkers: []string{
			"Besøg Landsholdshoppen", "CVR", "GDPR", "Boozt.com",
		},
		MaxBlockLines: 12,
	}
}

// metadataRe spots competition metadata rather than team pairings: round
// numbers, tournament phase words and bare years. Used to keep banner lines
// like "EM-kvalifikation 2026" out of summaries when a real pairing exists.
var metadataRe = regexp.MustCompile(`(?i)runde|kval|pokal|cup|finale|pulje|gruppe|slutspil|\b(19|20)\d{2}\b`)

// pairingRe matches a team pairing on one line: text, a spaced hyphen or en
// dash, text. Unspaced hyphens ("Midtjylland-Skanderborg") are left alone on
// purpose; club names themselves contain hyphens.
var pairingRe = regexp.MustCompile(`.+\s[–-]\s.+`)

type dateToken struct {
	day   int
	month time.Month
}

type timeToken struct {
	hour   int
	minute int
}

// recognizer is an Options value compiled into matchers. Build one per Parse
// call; it is read-only afterwards.
type recognizer struct {
	opts     Options
	dateRe   *regexp.Regexp
	timeRe   *regexp.Regexp
	channels []channelEntry
	allowed  map[string]bool
	footers  []string
}

// channelEntry pairs a canonical channel name with its tolerant matcher.
type channelEntry struct {
	name string
	re   *regexp.Regexp
}

func newRecognizer(opts Options) (*recognizer, error) {
	if len(opts.Weekdays) == 0 {
		return nil, fmt.Errorf("no weekday names configured")
	}
	if len(opts.Months) == 0 {
		return nil, fmt.Errorf("no month abbreviations configured")
	}

	r := &recognizer{opts: opts}

	// "torsdag 15. jan." with any month-like token; the Months table decides
	// validity so unknown abbreviations skip the line instead of crashing.
	days := make([]string, len(opts.Weekdays))
	for i, d := range opts.Weekdays {
		days[i] = regexp.QuoteMeta(d)
	}
	var err error
	r.dateRe, err = regexp.Compile(`(?i)^(` + strings.Join(days, "|") + `)\s+(\d{1,2})\.\s+(\p{L}+\.?)$`)
	if err != nil {
		return nil, fmt.Errorf("compiling date pattern: %w", err)
	}

	// "kl. 18:00" or bare "18:00".
	timePat := `^(\d{1,2}):(\d{2})$`
	if opts.TimeWord != "" {
		timePat = `^(?:` + regexp.QuoteMeta(opts.TimeWord) + `\s*)?(\d{1,2}):(\d{2})$`
	}
	r.timeRe, err = regexp.Compile(`(?i)` + timePat)
	if err != nil {
		return nil, fmt.Errorf("compiling time pattern: %w", err)
	}

	names := make([]string, len(opts.Channels))
	copy(names, opts.Channels)
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		parts := strings.Fields(name)
		for i, p := range parts {
			parts[i] = regexp.QuoteMeta(p)
		}
		re, err := regexp.Compile(`(?i)\b` + strings.Join(parts, `\s*`) + `\b`)
		if err != nil {
			return nil, fmt.Errorf("compiling channel pattern for %q: %w", name, err)
		}
		r.channels = append(r.channels, channelEntry{name: name, re: re})
	}

	if len(opts.AllowedChannels) > 0 {
		r.allowed = make(map[string]bool, len(opts.AllowedChannels))
		for _, name := range opts.AllowedChannels {
			r.allowed[name] = true
		}
	}

	r.footers = make([]string, len(opts.FooterMarkers))
	for i, m := range opts.FooterMarkers {
		r.footers[i] = strings.ToLower(m)
	}

	return r, nil
}

// matchDate classifies a line as a date header. matched reports that the
// line has date-header shape; tok is nil when the shape matched but the day
// or month failed validation, in which case the line is skipped.
func (r *recognizer) matchDate(line string) (tok *dateToken, matched bool) {
	m := r.dateRe.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	day, err := strconv.Atoi(m[2])
	if err != nil || day < 1 || day > 31 {
		return nil, true
	}
	month, ok := r.opts.Months[strings.ToLower(m[3])]
	if !ok {
		return nil, true
	}
	return &dateToken{day: day, month: month}, true
}

// matchTime classifies a line as a time header, with the same three-state
// contract as matchDate.
func (r *recognizer) matchTime(line string) (tok *timeToken, matched bool) {
	m := r.timeRe.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	hour, err := strconv.Atoi(m[1])
	if err != nil || hour > 23 {
		return nil, true
	}
	minute, err := strconv.Atoi(m[2])
	if err != nil || minute > 59 {
		return nil, true
	}
	return &timeToken{hour: hour, minute: minute}, true
}

// findChannel returns the canonical name of the first dictionary channel
// mentioned in line, or "" when none matches. Entries are tried longest
// name first.
func (r *recognizer) findChannel(line string) string {
	for _, entry := range r.channels {
		if entry.re.MatchString(line) {
			return entry.name
		}
	}
	return ""
}

// channelAllowed reports whether an event resolved to channel may be kept.
// Without an allow-list everything passes. With one active, a missing
// channel is rejected the same as an unlisted one.
func (r *recognizer) channelAllowed(channel string) bool {
	if r.allowed == nil {
		return true
	}
	return r.allowed[channel]
}

func (r *recognizer) isFooter(line string) bool {
	lower := strings.ToLower(line)
	for _, marker := range r.footers {
		if marker != "" && strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func (r *recognizer) isMetadata(line string) bool {
	return metadataRe.MatchString(line)
}

// mentionsBroadcast reports whether line contains the broadcast keyword,
// marking it as an explicit "airs on" announcement.
func (r *recognizer) mentionsBroadcast(line string) bool {
	if r.opts.BroadcastWord == "" {
		return false
	}
	return strings.Contains(strings.ToLower(line), strings.ToLower(r.opts.BroadcastWord))
}
