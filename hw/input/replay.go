package input

import (
	"cmp"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/BurntSushi/toml"

	"nescore/emu/log"
)

// An Event sets the state of a paddle, starting at a given frame. The state
// holds until the next event for the same paddle.
type Event struct {
	Frame   uint64  `toml:"frame"`
	Player  int     `toml:"player"`
	Buttons Buttons `toml:"buttons"`
}

// A Script is a list of input events, sorted by frame. Scripts are stored as
// TOML:
//
//	[[events]]
//	frame = 120
//	player = 0
//	buttons = ["Start"]
type Script struct {
	Events []Event `toml:"events"`
}

// LoadScript reads and validates the script at path.
func LoadScript(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := ParseScript(f)
	if err != nil {
		return nil, fmt.Errorf("replay script %s: %w", path, err)
	}
	return s, nil
}

// ParseScript decodes and validates a script.
func ParseScript(r io.Reader) (*Script, error) {
	var s Script
	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return nil, err
	}
	if undec := md.Undecoded(); len(undec) != 0 {
		return nil, fmt.Errorf("unknown key %q", undec[0].String())
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Script) validate() error {
	for i, ev := range s.Events {
		if ev.Player != 0 && ev.Player != 1 {
			return fmt.Errorf("event %d: invalid player %d", i, ev.Player)
		}
	}
	if !slices.IsSortedFunc(s.Events, func(a, b Event) int {
		return cmp.Compare(a.Frame, b.Frame)
	}) {
		return fmt.Errorf("events are not sorted by frame")
	}
	return nil
}

// Save writes the script as TOML.
func (s *Script) Save(w io.Writer) error {
	return toml.NewEncoder(w).Encode(s)
}

// Replayer plays a script back, one frame at a time.
type Replayer struct {
	events []Event
	next   int
}

func NewReplayer(s *Script) *Replayer {
	return &Replayer{events: s.Events}
}

// Apply calls set for all events scheduled up to and including frame, which
// haven't been applied yet.
func (r *Replayer) Apply(frame uint64, set func(player int, mask uint8)) {
	for r.next < len(r.events) && r.events[r.next].Frame <= frame {
		ev := r.events[r.next]
		log.ModInput.DebugZ("replay").
			Uint64("frame", frame).
			Int("player", ev.Player).
			Stringer("buttons", ev.Buttons).
			End()
		set(ev.Player, ev.Buttons.Mask())
		r.next++
	}
}

// Done reports whether all events have been applied.
func (r *Replayer) Done() bool {
	return r.next >= len(r.events)
}
