package pet

// Mood is a display classification derived from Stats.
type Mood string

const (
	MoodSad     Mood = "sad"
	MoodHungry  Mood = "hungry"
	MoodTired   Mood = "tired"
	MoodContent Mood = "content"
	MoodHappy   Mood = "happy"
)

const (
	lowThreshold  = 30
	highThreshold = 70
)

// moodRank orders moods from worst to best.
var moodRank = map[Mood]int{
	MoodSad:     0,
	MoodHungry:  1,
	MoodTired:   2,
	MoodContent: 3,
	MoodHappy:   4,
}

// Classify maps stats to a mood. Rules are checked in severity order:
// low health or spirituality first, then low energy, then low happiness.
func Classify(s Stats) Mood {
	switch {
	case s.Health < lowThreshold || s.Spirituality < lowThreshold:
		return MoodSad
	case s.Energy < lowThreshold:
		return MoodTired
	case s.Happiness < lowThreshold:
		return MoodHungry
	case s.Health > highThreshold && s.Spirituality > highThreshold && s.Happiness > highThreshold:
		return MoodHappy
	default:
		return MoodContent
	}
}

// Rank returns the position of m in the order sad < hungry < tired < content < happy.
// Unknown moods rank below sad.
func (m Mood) Rank() int {
	if r, ok := moodRank[m]; ok {
		return r
	}
	return -1
}

// Improved reports whether next is strictly better than prev.
func Improved(prev, next Mood) bool {
	return next.Rank() > prev.Rank()
}
