package trace

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota // no tracing
	LevelError               // ring dumps on failure
	LevelPhase               // driver + pass boundaries
	LevelDetail              // per-file events
	LevelDebug               // node-level events
)

var levelNames = nameTable[Level]{what: "level", names: map[Level]string{
	LevelOff:    "off",
	LevelError:  "error",
	LevelPhase:  "phase",
	LevelDetail: "detail",
	LevelDebug:  "debug",
}}

// finest is the deepest scope each level lets through.
var finest = map[Level]Scope{
	LevelPhase:  ScopePass,
	LevelDetail: ScopeFile,
	LevelDebug:  ScopeNode,
}

func (l Level) String() string { return levelNames.name(l) }

// ParseLevel converts a string to a Level; the empty string is off.
func ParseLevel(s string) (Level, error) {
	return levelNames.parse(s, "", "off")
}

// ShouldEmit reports whether events of scope pass at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	return scope <= finest[l]
}

// accepts is ShouldEmit for tracers: LevelError records everything so a
// dump after a failure has context.
func (l Level) accepts(ev *Event) bool {
	return l == LevelError || ev.Kind == KindHeartbeat || l.ShouldEmit(ev.Scope)
}

// leveled carries the Level and Enabled methods shared by tracers.
type leveled struct{ level Level }

func (l leveled) Level() Level  { return l.level }
func (l leveled) Enabled() bool { return l.level > LevelOff }
