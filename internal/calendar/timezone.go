package calendar

// Timezone is a static VTIMEZONE definition: one daylight and one standard
// transition, each recurring yearly. Event times are emitted as local
// wall-clock values labeled with the zone ID, so clients apply the right
// offset on either side of a DST switch without the generator caring.
type Timezone struct {
	ID       string
	Daylight Transition
	Standard Transition
}

// Transition is one recurring offset change inside a VTIMEZONE block.
// Offsets are RFC 5545 UTC offset strings ("+0100"), Start is the canonical
// 1970 anchor date-time and Rule the yearly recurrence.
type Transition struct {
	OffsetFrom string
	OffsetTo   string
	Name       string
	Start      string
	Rule       string
}

// Copenhagen is the broadcast zone of the source schedule. EU rules: last
// Sunday of March at 02:00 local, last Sunday of October at 03:00 local.
var Copenhagen = Timezone{
	ID: "Europe/Copenhagen",
	Daylight: Transition{
		OffsetFrom: "+0100",
		OffsetTo:   "+0200",
		Name:       "CEST",
		Start:      "19700329T020000",
		Rule:       "FREQ=YEARLY;BYMONTH=3;BYDAY=-1SU",
	},
	Standard: Transition{
		OffsetFrom: "+0200",
		OffsetTo:   "+0100",
		Name:       "CET",
		Start:      "19701025T030000",
		Rule:       "FREQ=YEARLY;BYMONTH=10;BYDAY=-1SU",
	},
}
