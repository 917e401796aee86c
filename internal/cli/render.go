package cli

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/lazypower/soulgatchi/internal/engine"
	"github.com/lazypower/soulgatchi/internal/pet"
)

const barWidth = 20

func printStatus(w io.Writer, st engine.Status) {
	state := "alive"
	if !st.Alive {
		state = "passed away"
	}
	fmt.Fprintf(w, "%s %s  (%s, %s, age %dh, %s)\n",
		st.Profile.Emoji, st.Profile.Name, st.Mood, st.Stage, st.Profile.AgeHours, state)
	fmt.Fprintln(w)

	for _, s := range []pet.Stat{pet.Health, pet.Spirituality, pet.Energy, pet.Happiness} {
		v := st.Stats.Get(s)
		fmt.Fprintf(w, "  %-13s %s %5.1f\n", s, bar(v), v)
	}
	fmt.Fprintln(w)

	if st.Alive {
		fmt.Fprintf(w, "  next decay in %ds\n", st.SecondsUntilNextDecay)
	}

	var prayers []string
	for _, p := range pet.Prayers {
		mark := " "
		if st.Prayers[p] {
			mark = "x"
		}
		prayers = append(prayers, fmt.Sprintf("[%s] %s", mark, p))
	}
	fmt.Fprintf(w, "  prayers: %s\n", strings.Join(prayers, "  "))

	var rituals []string
	for _, name := range pet.CanonicalRituals {
		rituals = append(rituals, fmt.Sprintf("%s %d", name, st.Rituals[name]))
	}
	fmt.Fprintf(w, "  rituals: %s\n", strings.Join(rituals, ", "))

	if len(st.Achievements) > 0 {
		fmt.Fprintf(w, "  achievements: %s\n", strings.Join(st.Achievements, ", "))
	}
}

func printResult(w io.Writer, res engine.Result) {
	fmt.Fprintln(w, res.Message)
	if res.SetCompleted {
		fmt.Fprintf(w, "Set of %d complete!\n", pet.SetSize)
	}
	if res.MoodImproved {
		fmt.Fprintf(w, "%s is feeling %s now.\n", res.Status.Profile.Name, res.Mood)
	}
	fmt.Fprintf(w, "  %s\n", compactStats(res.Status.Stats))
}

func compactStats(s pet.Stats) string {
	return fmt.Sprintf("H %.1f  S %.1f  E %.1f  J %.1f", s.Health, s.Spirituality, s.Energy, s.Happiness)
}

func bar(v float64) string {
	n := int(math.Round(v / pet.MaxStat * barWidth))
	n = max(0, min(barWidth, n))
	return "[" + strings.Repeat("#", n) + strings.Repeat(".", barWidth-n) + "]"
}
